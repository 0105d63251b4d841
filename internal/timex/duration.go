// Package timex holds time helpers shared by configuration loaders.
package timex

import (
	"encoding/json"
	"errors"
	"time"
)

// Duration is a time.Duration that unmarshals from JSON either as a Go
// duration string ("90s", "15m") or as integer nanoseconds.
type Duration struct {
	time.Duration
}

// MarshalJSON encodes the duration as a Go duration string.
func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

// UnmarshalJSON accepts "1m30s" style strings or integer nanoseconds.
func (d *Duration) UnmarshalJSON(b []byte) error {
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	switch value := v.(type) {
	case float64:
		d.Duration = time.Duration(value)
		return nil
	case string:
		parsed, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		d.Duration = parsed
		return nil
	default:
		return errors.New("invalid duration")
	}
}
