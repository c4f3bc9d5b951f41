package repository

import (
	"context"
	"errors"

	"merchant-api/internal/models"

	"github.com/shopspring/decimal"
)

var (
	ErrItemNotFound     = errors.New("item not found")
	ErrMerchantNotFound = errors.New("merchant not found")
)

// Store defines the persistence interface the handlers and resolvers call
// into. All lookups that order by name use ascending case-insensitive order
// with id as the tie-break, so repeated queries against an unchanged store
// return the same row.
type Store interface {
	ListMerchants(ctx context.Context) ([]models.Merchant, error)
	FindMerchant(ctx context.Context, id int64) (*models.Merchant, error)
	SearchMerchants(ctx context.Context, name string) ([]models.Merchant, error)
	ListMerchantItems(ctx context.Context, merchantID int64) ([]models.Item, error)

	ListItems(ctx context.Context) ([]models.Item, error)
	FindItem(ctx context.Context, id int64) (*models.Item, error)
	CreateItem(ctx context.Context, item *models.Item) error
	UpdateItem(ctx context.Context, item *models.Item) error
	DeleteItem(ctx context.Context, id int64) error

	FirstItemByName(ctx context.Context, name string) (*models.Item, error)
	FirstItemInPriceRange(ctx context.Context, min, max *decimal.Decimal) (*models.Item, error)
}
