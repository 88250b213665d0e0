package catalog

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/williamzujkowski/fantasy-merchant/internal/models"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	path := filepath.Join(t.TempDir(), "catalog.db")
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Skipf("sqlite not available: %v", err)
	}
	if err := db.AutoMigrate(&models.Item{}, &models.PriceHistory{}); err != nil {
		t.Fatalf("migrate failed: %v", err)
	}
	return db
}

func TestGormStore_CreateAssignsID(t *testing.T) {
	store := NewGormStore(openTestDB(t))
	ctx := context.Background()

	item := &models.Item{Name: "Iron Sword", Price: 150}
	if err := store.Create(ctx, item); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if item.ID == "" {
		t.Fatal("expected generated id")
	}

	found, err := store.FindByName(ctx, "Iron Sword")
	if err != nil {
		t.Fatalf("find failed: %v", err)
	}
	if found.ID != item.ID || found.Price != 150 {
		t.Errorf("unexpected item: %+v", found)
	}
}

func TestGormStore_FindByNameMissing(t *testing.T) {
	store := NewGormStore(openTestDB(t))

	_, err := store.FindByName(context.Background(), "No Such Item")
	if !errors.Is(err, ErrItemNotFound) {
		t.Errorf("expected ErrItemNotFound, got: %v", err)
	}
}

func TestGormStore_UpdatePrice(t *testing.T) {
	store := NewGormStore(openTestDB(t))
	ctx := context.Background()

	item := &models.Item{Name: "Ring of Embers", Price: 220}
	if err := store.Create(ctx, item); err != nil {
		t.Fatal(err)
	}
	if err := store.UpdatePrice(ctx, item.ID, 198); err != nil {
		t.Fatalf("update failed: %v", err)
	}

	found, _ := store.FindByName(ctx, "Ring of Embers")
	if found.Price != 198 {
		t.Errorf("expected price 198, got %d", found.Price)
	}
}

func TestGormStore_HistoryInOrder(t *testing.T) {
	store := NewGormStore(openTestDB(t))
	ctx := context.Background()

	item := &models.Item{Name: "Amulet of the Moon", Price: 410}
	if err := store.Create(ctx, item); err != nil {
		t.Fatal(err)
	}

	store.RecordPrice(ctx, item.ID, 410)
	time.Sleep(5 * time.Millisecond)
	store.RecordPrice(ctx, item.ID, 395)

	history, err := store.History(ctx, item.ID)
	if err != nil {
		t.Fatalf("history failed: %v", err)
	}
	if len(history) != 2 || history[0].Price != 410 || history[1].Price != 395 {
		t.Errorf("unexpected history: %+v", history)
	}
}

func TestGormStore_ListSortsByName(t *testing.T) {
	store := NewGormStore(openTestDB(t))
	ctx := context.Background()

	store.Create(ctx, &models.Item{Name: "Obsidian Dagger", Price: 95})
	store.Create(ctx, &models.Item{Name: "Chainmail Hauberk", Price: 260})

	items, err := store.List(ctx)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(items) != 2 || items[0].Name != "Chainmail Hauberk" {
		t.Errorf("expected name-sorted list, got %+v", items)
	}
}
