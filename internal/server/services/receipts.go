package services

import (
	"context"
	"database/sql"
	"errors"

	"github.com/dmitrijs2005/receiptkeeper/internal/common"
	"github.com/dmitrijs2005/receiptkeeper/internal/dbx"
	"github.com/dmitrijs2005/receiptkeeper/internal/logging"
	"github.com/dmitrijs2005/receiptkeeper/internal/server/models"
	"github.com/dmitrijs2005/receiptkeeper/internal/server/normalize"
	"github.com/dmitrijs2005/receiptkeeper/internal/server/repositories/repomanager"
)

// ReceiptService stores and reads receipts of one account at a time.
type ReceiptService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	normalizer  *normalize.Normalizer
	logger      logging.Logger
}

func NewReceiptService(db *sql.DB, m repomanager.RepositoryManager, n *normalize.Normalizer, l logging.Logger) *ReceiptService {
	return &ReceiptService{
		db:          db,
		repomanager: m,
		normalizer:  n,
		logger:      l.With("module", "receipts"),
	}
}

// Submit validates raw and stores it for accountID. Validation failures
// are returned as *normalize.ValidationError and nothing is written.
func (s *ReceiptService) Submit(ctx context.Context, raw normalize.RawReceipt, accountID int64) (int64, error) {
	receipt, err := s.normalizer.Normalize(ctx, raw)
	if err != nil {
		return 0, err
	}
	return s.Save(ctx, receipt, accountID)
}

// Save writes the receipt and all of its items in one READ COMMITTED
// transaction and returns the new receipt id. If any insert fails nothing
// is kept; the cause is logged and the caller gets common.ErrorStorage,
// or common.ErrorAccountNotFound when accountID does not exist.
func (s *ReceiptService) Save(ctx context.Context, receipt *models.ValidatedReceipt, accountID int64) (int64, error) {
	var receiptID int64

	err := dbx.WithTx(ctx, s.db, dbx.ReadCommitted, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Receipts(tx)

		id, err := repo.Create(ctx, accountID, receipt)
		if err != nil {
			return err
		}

		for i := range receipt.Items {
			if _, err := repo.AddItem(ctx, id, &receipt.Items[i]); err != nil {
				return err
			}
		}

		receiptID = id
		return nil
	})

	if err != nil {
		if errors.Is(err, common.ErrorAccountNotFound) {
			s.logger.Warn(ctx, "receipt for unknown account", "account_id", accountID)
			return 0, common.ErrorAccountNotFound
		}
		s.logger.Error(ctx, "saving receipt failed", "account_id", accountID, "items", len(receipt.Items), "error", err)
		return 0, common.ErrorStorage
	}

	s.logger.Info(ctx, "receipt saved", "account_id", accountID, "receipt_id", receiptID, "items", len(receipt.Items))
	return receiptID, nil
}

// Get returns one receipt of accountID. Receipts of other accounts are
// common.ErrorNotFound.
func (s *ReceiptService) Get(ctx context.Context, accountID, receiptID int64) (*models.Receipt, error) {
	r, err := s.repomanager.Receipts(s.db).GetByID(ctx, accountID, receiptID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorNotFound
		}
		return nil, s.storageError(ctx, "reading receipt failed", accountID, err)
	}
	return r, nil
}

// List returns all receipts of accountID ordered by id.
func (s *ReceiptService) List(ctx context.Context, accountID int64) ([]*models.Receipt, error) {
	list, err := s.repomanager.Receipts(s.db).ListForAccount(ctx, accountID)
	if err != nil {
		return nil, s.storageError(ctx, "listing receipts failed", accountID, err)
	}
	return list, nil
}

// QueryByDateRange returns receipts of accountID dated within [start, end].
func (s *ReceiptService) QueryByDateRange(ctx context.Context, accountID int64, start, end models.Date) ([]*models.Receipt, error) {
	list, err := s.repomanager.Receipts(s.db).QueryByDateRange(ctx, accountID, start, end)
	if err != nil {
		return nil, s.storageError(ctx, "querying receipts failed", accountID, err)
	}
	return list, nil
}

func (s *ReceiptService) storageError(ctx context.Context, msg string, accountID int64, err error) error {
	s.logger.Error(ctx, msg, "account_id", accountID, "error", err)
	return common.ErrorStorage
}
