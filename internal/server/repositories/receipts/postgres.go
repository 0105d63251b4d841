package receipts

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/receiptkeeper/internal/common"
	"github.com/dmitrijs2005/receiptkeeper/internal/dbx"
	"github.com/dmitrijs2005/receiptkeeper/internal/server/models"
	"github.com/shopspring/decimal"
)

// accountConstraint is the foreign key from receipts to accounts.
const accountConstraint = "receipts_account_id_fkey"

// selectReceipts reads receipts with their items in one statement, so a
// receipt and its items always come from the same snapshot.
const selectReceipts = `SELECT r.id, r.account_id, r.merchant, r.date, r.total, r.category, r.created_at,
		i.id, i.name, i.quantity, i.price
	FROM receipts r
	LEFT JOIN items i ON i.receipt_id = r.id
	WHERE r.account_id = $1`

const orderReceipts = `
	ORDER BY r.id, i.id`

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, accountID int64, receipt *models.ValidatedReceipt) (int64, error) {

	query :=
		`INSERT INTO receipts (account_id, merchant, date, total, category)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id
		 `

	var id int64
	err := r.db.QueryRowContext(ctx, query,
		accountID, receipt.Merchant, receipt.Date, receipt.Total, receipt.Category).Scan(&id)

	if err != nil {
		if dbx.IsForeignKeyViolation(err, accountConstraint) {
			return 0, common.ErrorAccountNotFound
		}
		return 0, fmt.Errorf("db error: %w", err)
	}

	return id, nil
}

func (r *PostgresRepository) AddItem(ctx context.Context, receiptID int64, item *models.LineItem) (int64, error) {

	query :=
		`INSERT INTO items (receipt_id, name, quantity, price)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id
		 `

	var id int64
	err := r.db.QueryRowContext(ctx, query,
		receiptID, item.Name, item.Quantity, item.Price).Scan(&id)

	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}

	return id, nil
}

// GetByID returns the receipt only if it belongs to accountID. A receipt of
// another account is reported as common.ErrorNotFound.
func (r *PostgresRepository) GetByID(ctx context.Context, accountID, receiptID int64) (*models.Receipt, error) {
	list, err := r.query(ctx, selectReceipts+` AND r.id = $2`+orderReceipts, accountID, receiptID)
	if err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return nil, common.ErrorNotFound
	}
	return list[0], nil
}

func (r *PostgresRepository) ListForAccount(ctx context.Context, accountID int64) ([]*models.Receipt, error) {
	return r.query(ctx, selectReceipts+orderReceipts, accountID)
}

// QueryByDateRange returns receipts dated within [start, end], both ends
// included. An inverted range matches nothing and skips the database.
func (r *PostgresRepository) QueryByDateRange(ctx context.Context, accountID int64, start, end models.Date) ([]*models.Receipt, error) {
	if start.After(end.Time) {
		return []*models.Receipt{}, nil
	}
	return r.query(ctx, selectReceipts+` AND r.date BETWEEN $2 AND $3`+orderReceipts, accountID, start, end)
}

// query folds the joined rows into receipts. Rows arrive ordered by receipt
// id, so a receipt is complete once the id changes.
func (r *PostgresRepository) query(ctx context.Context, query string, args ...any) ([]*models.Receipt, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	out := []*models.Receipt{}
	var cur *models.Receipt

	for rows.Next() {
		var (
			rec      models.Receipt
			category sql.NullString
			itemID   sql.NullInt64
			itemName sql.NullString
			quantity sql.NullString
			price    decimal.NullDecimal
		)

		if err := rows.Scan(&rec.ID, &rec.AccountID, &rec.Merchant, &rec.Date, &rec.Total, &category, &rec.CreatedAt,
			&itemID, &itemName, &quantity, &price); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}

		if cur == nil || cur.ID != rec.ID {
			if category.Valid {
				rec.Category = &category.String
			}
			rec.Items = []models.LineItem{}
			cur = &rec
			out = append(out, cur)
		}

		if !itemID.Valid {
			continue
		}
		item := models.LineItem{
			ID:        itemID.Int64,
			ReceiptID: cur.ID,
			Name:      itemName.String,
			Price:     price.Decimal,
		}
		if quantity.Valid {
			q := quantity.String
			item.Quantity = &q
		}
		cur.Items = append(cur.Items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return out, nil
}
