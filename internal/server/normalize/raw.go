// Package normalize turns untrusted receipt payloads into validated,
// canonical receipts.
package normalize

import (
	"encoding/json"
	"io"
)

// RawReceipt is a receipt as submitted. Every field is optional at this
// stage; Normalize decides what is acceptable.
type RawReceipt struct {
	Merchant Value     `json:"merchant"`
	Date     Value     `json:"date"`
	Total    Value     `json:"total"`
	Category Value     `json:"category"`
	Items    []RawItem `json:"items"`
}

// RawItem is one submitted line item.
type RawItem struct {
	Name     Value `json:"name"`
	Quantity Value `json:"quantity"`
	Price    Value `json:"price"`
}

// DecodeRawReceipt reads a JSON object into a RawReceipt. A body that is not
// an object, or whose items are not a list of objects, is reported as a
// *ValidationError.
func DecodeRawReceipt(r io.Reader) (RawReceipt, error) {
	var raw RawReceipt
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return RawReceipt{}, &ValidationError{Fields: []FieldError{{
			Field:   FieldBody,
			Message: "malformed receipt payload",
		}}}
	}
	return raw, nil
}
