package normalize

import (
	"bytes"
	"encoding/json"

	"github.com/shopspring/decimal"
)

// Value is one undecoded JSON token of a payload field. Keeping it raw lets
// the normalizer report a wrong type as a field error instead of failing the
// whole decode.
type Value struct {
	raw json.RawMessage
}

// NewString returns a Value holding a JSON string.
func NewString(s string) Value {
	b, _ := json.Marshal(s)
	return Value{raw: b}
}

// NewNumber returns a Value holding a JSON number.
func NewNumber(d decimal.Decimal) Value {
	return Value{raw: json.RawMessage(d.String())}
}

// NewRaw returns a Value holding the given JSON text verbatim.
func NewRaw(js string) Value {
	return Value{raw: json.RawMessage(js)}
}

func (v *Value) UnmarshalJSON(b []byte) error {
	v.raw = append(v.raw[:0], b...)
	return nil
}

func (v Value) MarshalJSON() ([]byte, error) {
	if len(v.raw) == 0 {
		return []byte("null"), nil
	}
	return v.raw, nil
}

// Present reports whether the field was given with a non-null value.
func (v Value) Present() bool {
	return len(v.raw) > 0 && !bytes.Equal(v.raw, []byte("null"))
}

// AsString returns the value if it is a JSON string.
func (v Value) AsString() (string, bool) {
	if len(v.raw) == 0 || v.raw[0] != '"' {
		return "", false
	}
	var s string
	if err := json.Unmarshal(v.raw, &s); err != nil {
		return "", false
	}
	return s, true
}

// AsDecimal returns the value if it is a JSON number. Quoted numbers are not
// numbers.
func (v Value) AsDecimal() (decimal.Decimal, bool) {
	if len(v.raw) == 0 {
		return decimal.Decimal{}, false
	}
	if c := v.raw[0]; c != '-' && (c < '0' || c > '9') {
		return decimal.Decimal{}, false
	}
	d, err := decimal.NewFromString(string(v.raw))
	if err != nil {
		return decimal.Decimal{}, false
	}
	return d, true
}
