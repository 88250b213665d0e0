package catalog

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/williamzujkowski/fantasy-merchant/internal/models"
)

var ErrItemNotFound = errors.New("item not found")

// Store is the persistence boundary for the shared item catalog.
type Store interface {
	List(ctx context.Context) ([]models.Item, error)
	FindByName(ctx context.Context, name string) (*models.Item, error)
	Create(ctx context.Context, item *models.Item) error
	UpdatePrice(ctx context.Context, id string, price int) error
	RecordPrice(ctx context.Context, id string, price int) error
	History(ctx context.Context, id string) ([]models.PriceHistory, error)
}

type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) List(ctx context.Context) ([]models.Item, error) {
	var items []models.Item
	err := s.db.WithContext(ctx).Order("name ASC").Find(&items).Error
	return items, err
}

func (s *GormStore) FindByName(ctx context.Context, name string) (*models.Item, error) {
	var item models.Item
	err := s.db.WithContext(ctx).Where("name = ?", name).First(&item).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrItemNotFound
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (s *GormStore) Create(ctx context.Context, item *models.Item) error {
	if item.ID == "" {
		item.ID = uuid.NewString()
	}
	return s.db.WithContext(ctx).Create(item).Error
}

// UpdatePrice replaces the price in a single UPDATE so concurrent readers
// never observe a half-updated item.
func (s *GormStore) UpdatePrice(ctx context.Context, id string, price int) error {
	return s.db.WithContext(ctx).Model(&models.Item{}).
		Where("id = ?", id).
		Update("price", price).Error
}

func (s *GormStore) RecordPrice(ctx context.Context, id string, price int) error {
	return s.db.WithContext(ctx).Create(&models.PriceHistory{
		ItemID:     id,
		Price:      price,
		RecordedAt: time.Now(),
	}).Error
}

func (s *GormStore) History(ctx context.Context, id string) ([]models.PriceHistory, error) {
	var history []models.PriceHistory
	err := s.db.WithContext(ctx).
		Where("item_id = ?", id).
		Order("recorded_at ASC").
		Find(&history).Error
	return history, err
}
