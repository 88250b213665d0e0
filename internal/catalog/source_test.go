package catalog

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
)

const sampleDocument = `{
	"weapons": [
		{"name": "Iron Sword", "price": 150},
		{"name": "Elven Longbow", "price": 320}
	],
	"potions": [
		{"name": "Minor Healing Potion", "price": 25}
	]
}`

func TestLoad_FlattensGroups(t *testing.T) {
	path := filepath.Join(t.TempDir(), "items.json")
	if err := os.WriteFile(path, []byte(sampleDocument), 0o644); err != nil {
		t.Fatal(err)
	}

	defs, err := NewDefinitionSource(path).Load(context.Background())
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if len(defs) != 3 {
		t.Fatalf("expected 3 definitions, got %d", len(defs))
	}

	byName := make(map[string]int)
	for _, def := range defs {
		byName[def.Name] = def.Price
	}
	if byName["Iron Sword"] != 150 || byName["Minor Healing Potion"] != 25 {
		t.Errorf("unexpected definitions: %v", byName)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	src := NewDefinitionSource(filepath.Join(t.TempDir(), "nope.json"))

	_, err := src.Load(context.Background())
	if !errors.Is(err, ErrSourceUnreadable) {
		t.Errorf("expected ErrSourceUnreadable, got: %v", err)
	}
}

func TestLoad_MalformedJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "items.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}

	_, err := NewDefinitionSource(path).Load(context.Background())
	if !errors.Is(err, ErrSourceMalformed) {
		t.Errorf("expected ErrSourceMalformed, got: %v", err)
	}
}

func TestLoad_HTTPSource(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(sampleDocument))
	}))
	defer server.Close()

	defs, err := NewDefinitionSource(server.URL).Load(context.Background())
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if len(defs) != 3 {
		t.Errorf("expected 3 definitions, got %d", len(defs))
	}
}

func TestLoad_HTTPErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer server.Close()

	_, err := NewDefinitionSource(server.URL).Load(context.Background())
	if !errors.Is(err, ErrSourceUnreadable) {
		t.Errorf("expected ErrSourceUnreadable, got: %v", err)
	}
}
