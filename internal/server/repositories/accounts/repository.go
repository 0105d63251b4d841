// Package accounts stores registered accounts.
package accounts

import (
	"context"

	"github.com/dmitrijs2005/receiptkeeper/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, account *models.Account) (*models.Account, error)
	GetByName(ctx context.Context, name string) (*models.Account, error)
}
