package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Uncategorized is the aggregation bucket for receipts without a category.
const Uncategorized = "uncategorized"

// Receipt is a persisted purchase with its line items. It is created together
// with all of its items and never changes afterwards.
type Receipt struct {
	ID        int64
	AccountID int64
	Merchant  string
	Date      Date
	Total     decimal.Decimal
	// Category is nil when the receipt was submitted without one.
	Category  *string
	Items     []LineItem
	CreatedAt time.Time
}

// CategoryName returns the aggregation key of r.
func (r *Receipt) CategoryName() string {
	if r.Category == nil || *r.Category == "" {
		return Uncategorized
	}
	return *r.Category
}

// LineItem is one purchased item of a receipt.
type LineItem struct {
	ID        int64
	ReceiptID int64
	Name      string
	// Quantity is nil when not specified, which is distinct from "".
	Quantity *string
	Price    decimal.Decimal
}

// ValidatedReceipt is a normalized receipt that has not been stored yet.
// Items carry no ids.
type ValidatedReceipt struct {
	Merchant string
	Date     Date
	Total    decimal.Decimal
	Category *string
	Items    []LineItem
}
