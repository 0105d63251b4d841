package normalize

import (
	"context"
	"strings"

	"github.com/dmitrijs2005/receiptkeeper/internal/logging"
	"github.com/dmitrijs2005/receiptkeeper/internal/server/models"
	"github.com/shopspring/decimal"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Normalizer validates raw receipts. It has no state besides its logger and
// is safe for concurrent use.
type Normalizer struct {
	logger logging.Logger
}

func NewNormalizer(l logging.Logger) *Normalizer {
	return &Normalizer{logger: l.With("module", "normalizer")}
}

// Normalize checks every field of raw and returns the canonical receipt, or a
// *ValidationError listing all rejected fields. Nothing is returned
// partially: one bad field rejects the receipt.
//
// Zero totals and prices are accepted; negative amounts are not.
func (n *Normalizer) Normalize(ctx context.Context, raw RawReceipt) (*models.ValidatedReceipt, error) {
	var errs []FieldError
	fail := func(field string, index *int, msg string) {
		errs = append(errs, FieldError{Field: field, Index: index, Message: msg})
	}

	out := &models.ValidatedReceipt{Items: make([]models.LineItem, 0, len(raw.Items))}

	if merchant, ok := raw.Merchant.AsString(); ok && strings.TrimSpace(merchant) != "" {
		out.Merchant = Merchant(merchant)
	} else {
		fail(FieldMerchant, nil, "invalid merchant name")
	}

	if s, ok := raw.Date.AsString(); !ok {
		fail(FieldDate, nil, "invalid date format")
	} else if d, err := models.ParseDate(s); err != nil {
		fail(FieldDate, nil, "invalid date format")
	} else {
		out.Date = d
	}

	if total, ok := amount(raw.Total); ok {
		out.Total = total
	} else {
		fail(FieldTotal, nil, "invalid total amount")
	}

	if raw.Category.Present() {
		if c, ok := raw.Category.AsString(); !ok {
			fail(FieldCategory, nil, "invalid category")
		} else if c = strings.TrimSpace(c); c != "" {
			out.Category = &c
		}
	}

	for i, item := range raw.Items {
		idx := i
		var li models.LineItem

		if name, ok := item.Name.AsString(); ok && strings.TrimSpace(name) != "" {
			li.Name = strings.TrimSpace(name)
		} else {
			fail(FieldItemName, &idx, "invalid item name")
		}

		if item.Quantity.Present() {
			if q, ok := item.Quantity.AsString(); ok {
				q = strings.TrimSpace(q)
				li.Quantity = &q
			} else {
				fail(FieldItemQuantity, &idx, "invalid item quantity")
			}
		}

		if price, ok := amount(item.Price); ok {
			li.Price = price
		} else {
			fail(FieldItemPrice, &idx, "invalid item price")
		}

		out.Items = append(out.Items, li)
	}

	if len(errs) > 0 {
		verr := &ValidationError{Fields: errs}
		n.logger.Error(ctx, "receipt validation failed", "errors", verr.Messages())
		return nil, verr
	}
	return out, nil
}

// Merchant trims s and title-cases every word: " the coffee shop " becomes
// "The Coffee Shop". Inner spacing is kept as submitted.
func Merchant(s string) string {
	return cases.Title(language.Und).String(strings.TrimSpace(s))
}

// Money columns are NUMERIC(12,2).
const (
	maxAmountScale = 2
	maxAmountToken = 32
)

var maxAmount = decimal.New(1, 10)

// amount accepts present, numeric, non-negative values that fit a money
// column exactly: at most two fractional digits and below 1e10. Presence
// and sign are checked separately so that zero stays valid.
func amount(v Value) (decimal.Decimal, bool) {
	if !v.Present() || len(v.raw) > maxAmountToken {
		return decimal.Decimal{}, false
	}
	d, ok := v.AsDecimal()
	if !ok || d.IsNegative() {
		return decimal.Decimal{}, false
	}
	// bounds the exponent before any rescaling below
	if exp := d.Exponent(); exp > 10 || exp < -maxAmountToken {
		return decimal.Decimal{}, false
	}
	if d.GreaterThanOrEqual(maxAmount) || !d.Equal(d.Truncate(maxAmountScale)) {
		return decimal.Decimal{}, false
	}
	return d, true
}
