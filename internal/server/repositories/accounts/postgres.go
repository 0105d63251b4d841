package accounts

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/receiptkeeper/internal/common"
	"github.com/dmitrijs2005/receiptkeeper/internal/dbx"
	"github.com/dmitrijs2005/receiptkeeper/internal/server/models"
)

// nameConstraint is the unique constraint on accounts.name.
const nameConstraint = "accounts_name_key"

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create inserts account and fills its ID and CreatedAt. A taken name is
// reported as common.ErrorDuplicateName; concurrent registrations of the
// same name are decided by the unique constraint.
func (r *PostgresRepository) Create(ctx context.Context, account *models.Account) (*models.Account, error) {

	query :=
		`INSERT INTO accounts (name, secret_hash, salt)
		 VALUES ($1, $2, $3)
		 RETURNING id, created_at
		 `

	err := r.db.QueryRowContext(ctx, query,
		account.Name, account.SecretHash, account.Salt).Scan(&account.ID, &account.CreatedAt)

	if err != nil {
		if dbx.IsUniqueViolation(err, nameConstraint) {
			return nil, common.ErrorDuplicateName
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return account, nil
}

func (r *PostgresRepository) GetByName(ctx context.Context, name string) (*models.Account, error) {
	query :=
		`SELECT id, name, secret_hash, salt, created_at FROM accounts
		 WHERE name = $1
		 `

	account := &models.Account{}
	err := r.db.QueryRowContext(ctx, query, name).
		Scan(&account.ID, &account.Name, &account.SecretHash, &account.Salt, &account.CreatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return account, nil
}
