// Package search implements the item and merchant search resolvers: query
// parameter validation and the filter branch executed against the store.
package search

import (
	"context"
	"net/url"

	"merchant-api/internal/models"

	"github.com/shopspring/decimal"
)

// ErrorKind classifies a query-parameter contract violation. All kinds map
// to HTTP 400.
type ErrorKind int

const (
	MissingParameter ErrorKind = iota
	ConflictingParameters
	InvalidRange
)

// QueryError is a typed validation failure raised before any store access.
type QueryError struct {
	Kind    ErrorKind
	Message string
}

func (e *QueryError) Error() string {
	return e.Message
}

// ItemQuery holds the recognized item search parameters. A nil field means
// the parameter was not supplied; a supplied-but-empty value still counts as
// present.
type ItemQuery struct {
	Name     *string
	MinPrice *decimal.Decimal
	MaxPrice *decimal.Decimal
}

// ParseItemQuery extracts the recognized parameters from the request query.
// Price values that fail to parse are treated as zero, matching the
// behavior callers of this API already depend on.
func ParseItemQuery(values url.Values) *ItemQuery {
	q := &ItemQuery{}

	if values.Has("name") {
		name := values.Get("name")
		q.Name = &name
	}
	if values.Has("min_price") {
		q.MinPrice = parsePrice(values.Get("min_price"))
	}
	if values.Has("max_price") {
		q.MaxPrice = parsePrice(values.Get("max_price"))
	}

	return q
}

func parsePrice(raw string) *decimal.Decimal {
	d, err := decimal.NewFromString(raw)
	if err != nil {
		d = decimal.Zero
	}
	return &d
}

// itemQueryRules is the ordered validation rule list. Rules run top to
// bottom; the first violation wins and aborts the query.
var itemQueryRules = []func(*ItemQuery) *QueryError{
	requireSearchParameter,
	rejectNameWithPriceRange,
	rejectNegativeMinPrice,
	rejectNegativeMaxPrice,
	rejectInvertedRange,
}

// Validate runs the ordered rule list and returns the first violation, or
// nil when the parameter combination is legal.
func (q *ItemQuery) Validate() *QueryError {
	for _, rule := range itemQueryRules {
		if err := rule(q); err != nil {
			return err
		}
	}
	return nil
}

func requireSearchParameter(q *ItemQuery) *QueryError {
	if q.Name == nil && q.MinPrice == nil && q.MaxPrice == nil {
		return &QueryError{Kind: MissingParameter, Message: "Must have either name or price range"}
	}
	return nil
}

func rejectNameWithPriceRange(q *ItemQuery) *QueryError {
	if q.Name != nil && (q.MinPrice != nil || q.MaxPrice != nil) {
		return &QueryError{Kind: ConflictingParameters, Message: "Cannot have name and price range at the same time"}
	}
	return nil
}

func rejectNegativeMinPrice(q *ItemQuery) *QueryError {
	if q.MinPrice != nil && q.MinPrice.IsNegative() {
		return &QueryError{Kind: InvalidRange, Message: "Minimum price cannot be negative"}
	}
	return nil
}

func rejectNegativeMaxPrice(q *ItemQuery) *QueryError {
	if q.MaxPrice != nil && q.MaxPrice.IsNegative() {
		return &QueryError{Kind: InvalidRange, Message: "Maximum price cannot be negative"}
	}
	return nil
}

func rejectInvertedRange(q *ItemQuery) *QueryError {
	if q.MinPrice != nil && q.MaxPrice != nil && q.MaxPrice.Cmp(*q.MinPrice) < 0 {
		return &QueryError{Kind: InvalidRange, Message: "Price range cannot be negative"}
	}
	return nil
}

// ItemFinder is the slice of the store the item resolver executes against.
type ItemFinder interface {
	FirstItemByName(ctx context.Context, name string) (*models.Item, error)
	FirstItemInPriceRange(ctx context.Context, min, max *decimal.Decimal) (*models.Item, error)
}

// MerchantFinder is the slice of the store the merchant resolver executes
// against.
type MerchantFinder interface {
	SearchMerchants(ctx context.Context, name string) ([]models.Merchant, error)
}

// ResolveItem executes exactly one filter branch for a validated query:
// either the name substring match or the price-range match. Validation
// guarantees the two are mutually exclusive.
func ResolveItem(ctx context.Context, finder ItemFinder, q *ItemQuery) (*models.Item, error) {
	if q.Name != nil {
		return finder.FirstItemByName(ctx, *q.Name)
	}
	return finder.FirstItemInPriceRange(ctx, q.MinPrice, q.MaxPrice)
}

// ResolveMerchants returns the full ordered set of merchants matching the
// name fragment. No parameter at all yields an empty set; there is no error
// path for missing parameters.
func ResolveMerchants(ctx context.Context, finder MerchantFinder, values url.Values) ([]models.Merchant, error) {
	if !values.Has("name") {
		return []models.Merchant{}, nil
	}
	return finder.SearchMerchants(ctx, values.Get("name"))
}
