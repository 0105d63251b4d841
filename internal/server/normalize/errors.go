package normalize

import (
	"fmt"
	"strings"

	"github.com/dmitrijs2005/receiptkeeper/internal/common"
)

// Field names reported in FieldError.Field.
const (
	FieldBody         = "body"
	FieldMerchant     = "merchant"
	FieldDate         = "date"
	FieldTotal        = "total"
	FieldCategory     = "category"
	FieldItemName     = "item.name"
	FieldItemQuantity = "item.quantity"
	FieldItemPrice    = "item.price"
)

// FieldError describes one rejected field. Index is the item position for
// item.* fields and nil otherwise.
type FieldError struct {
	Field   string `json:"field"`
	Index   *int   `json:"index,omitempty"`
	Message string `json:"message"`
}

func (f FieldError) String() string {
	if f.Index != nil {
		return fmt.Sprintf("%s[%d]: %s", f.Field, *f.Index, f.Message)
	}
	return f.Field + ": " + f.Message
}

// ValidationError carries every field error found in one payload.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	return "validation failed: " + strings.Join(e.Messages(), "; ")
}

// Unwrap makes errors.Is(err, common.ErrorValidation) hold.
func (e *ValidationError) Unwrap() error {
	return common.ErrorValidation
}

// Messages returns one line per field error.
func (e *ValidationError) Messages() []string {
	out := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		out[i] = f.String()
	}
	return out
}

// Has reports whether field was rejected (at any item index).
func (e *ValidationError) Has(field string) bool {
	for _, f := range e.Fields {
		if f.Field == field {
			return true
		}
	}
	return false
}
