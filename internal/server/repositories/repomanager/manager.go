package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/receiptkeeper/internal/dbx"
	"github.com/dmitrijs2005/receiptkeeper/internal/server/repositories/accounts"
	"github.com/dmitrijs2005/receiptkeeper/internal/server/repositories/receipts"
)

// RepositoryManager vends repositories bound to a DBTX, so services can use
// the same repositories on a plain connection or inside a transaction.
type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Accounts(db dbx.DBTX) accounts.Repository
	Receipts(db dbx.DBTX) receipts.Repository
}
