package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/williamzujkowski/fantasy-merchant/internal/models"
)

var (
	ErrSourceUnreadable = errors.New("item source unreadable")
	ErrSourceMalformed  = errors.New("item source malformed")
)

// Source loads external item definitions for catalog reconciliation.
type Source interface {
	Load(ctx context.Context) ([]models.ItemDefinition, error)
}

// DefinitionSource reads a JSON document from disk, or over HTTP when the
// configured location is a URL. The document maps arbitrary group names to
// arrays of {name, price} records; all groups are flattened into one
// sequence.
type DefinitionSource struct {
	location string
	client   *resty.Client
}

func NewDefinitionSource(location string) *DefinitionSource {
	return &DefinitionSource{
		location: location,
		client:   resty.New().SetTimeout(10 * time.Second),
	}
}

func (s *DefinitionSource) Load(ctx context.Context) ([]models.ItemDefinition, error) {
	data, err := s.read(ctx)
	if err != nil {
		return nil, err
	}
	return parseDefinitions(data)
}

func (s *DefinitionSource) read(ctx context.Context) ([]byte, error) {
	if strings.HasPrefix(s.location, "http://") || strings.HasPrefix(s.location, "https://") {
		resp, err := s.client.R().SetContext(ctx).Get(s.location)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrSourceUnreadable, err)
		}
		if !resp.IsSuccess() {
			return nil, fmt.Errorf("%w: status %d from %s", ErrSourceUnreadable, resp.StatusCode(), s.location)
		}
		return resp.Body(), nil
	}

	data, err := os.ReadFile(s.location)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSourceUnreadable, err)
	}
	return data, nil
}

func parseDefinitions(data []byte) ([]models.ItemDefinition, error) {
	var groups map[string][]models.ItemDefinition
	if err := json.Unmarshal(data, &groups); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSourceMalformed, err)
	}

	var defs []models.ItemDefinition
	for _, group := range groups {
		defs = append(defs, group...)
	}
	return defs, nil
}
