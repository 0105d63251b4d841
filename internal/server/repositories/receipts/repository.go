// Package receipts stores receipts and their line items.
package receipts

import (
	"context"

	"github.com/dmitrijs2005/receiptkeeper/internal/server/models"
)

type Repository interface {
	// Create inserts the receipt row only; items are added with AddItem in
	// the same transaction.
	Create(ctx context.Context, accountID int64, receipt *models.ValidatedReceipt) (int64, error)
	AddItem(ctx context.Context, receiptID int64, item *models.LineItem) (int64, error)

	GetByID(ctx context.Context, accountID, receiptID int64) (*models.Receipt, error)
	ListForAccount(ctx context.Context, accountID int64) ([]*models.Receipt, error)
	QueryByDateRange(ctx context.Context, accountID int64, start, end models.Date) ([]*models.Receipt, error)
}
