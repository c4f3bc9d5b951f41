package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Merchant is a seller owning items and invoices.
type Merchant struct {
	ID        int64
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Item is a sellable product owned by exactly one merchant.
type Item struct {
	ID          int64
	Name        string
	Description string
	UnitPrice   decimal.Decimal
	MerchantID  int64
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Customer places invoices with merchants. Customers are seeded by external
// collaborators and never mutated through this API.
type Customer struct {
	ID        int64
	FirstName string
	LastName  string
}

// Invoice statuses.
const (
	InvoiceShipped    = "shipped"
	InvoiceCancelled  = "cancelled"
	InvoiceInProgress = "in_progress"
)

// Invoice is an order record linking a customer and a merchant through one or
// more invoice lines. An invoice left with zero lines after a cascading item
// delete is removed.
type Invoice struct {
	ID         int64
	CustomerID int64
	MerchantID int64
	Status     string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// InvoiceLine attaches an item to an invoice with quantity and price.
type InvoiceLine struct {
	ID        int64
	InvoiceID int64
	ItemID    int64
	Quantity  int
	UnitPrice decimal.Decimal
}
