package services

import (
	"context"

	"github.com/dmitrijs2005/receiptkeeper/internal/server/aggregate"
	"github.com/dmitrijs2005/receiptkeeper/internal/server/models"
	"github.com/shopspring/decimal"
)

// ReceiptQuerier is the read side ExpenseService needs.
type ReceiptQuerier interface {
	QueryByDateRange(ctx context.Context, accountID int64, start, end models.Date) ([]*models.Receipt, error)
}

// Chart is spending per category as parallel slices, largest first.
type Chart struct {
	Categories []string
	Values     []decimal.Decimal
}

// ExpenseService aggregates an account's spending over a date range.
type ExpenseService struct {
	receipts ReceiptQuerier
}

func NewExpenseService(q ReceiptQuerier) *ExpenseService {
	return &ExpenseService{receipts: q}
}

// Summary returns total spending per category within [start, end].
func (s *ExpenseService) Summary(ctx context.Context, accountID int64, start, end models.Date) (map[string]decimal.Decimal, error) {
	list, err := s.receipts.QueryByDateRange(ctx, accountID, start, end)
	if err != nil {
		return nil, err
	}
	return aggregate.Summarize(list), nil
}

// Chart returns the Summary ordered for display.
func (s *ExpenseService) Chart(ctx context.Context, accountID int64, start, end models.Date) (*Chart, error) {
	list, err := s.receipts.QueryByDateRange(ctx, accountID, start, end)
	if err != nil {
		return nil, err
	}
	categories, values := aggregate.ChartSeries(list)
	return &Chart{Categories: categories, Values: values}, nil
}
