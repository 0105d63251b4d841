// Package models defines the receipt service's persisted entities.
package models

import "time"

// Account is a registered user. Name is unique as stored (case-sensitive).
type Account struct {
	ID         int64
	Name       string
	SecretHash []byte
	Salt       []byte
	CreatedAt  time.Time
}
