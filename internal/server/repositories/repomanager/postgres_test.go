package repomanager

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/receiptkeeper/internal/server/repositories/accounts"
	"github.com/dmitrijs2005/receiptkeeper/internal/server/repositories/receipts"
	"github.com/pressly/goose/v3"
)

func newDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return db, mock
}

func TestFactories_ReturnConcreteRepos(t *testing.T) {
	db, _ := newDB(t)
	defer db.Close()

	m := NewPostgresRepositoryManager()

	if _, ok := m.Accounts(db).(*accounts.PostgresRepository); !ok {
		t.Fatal("Accounts() is not a PostgresRepository")
	}
	if _, ok := m.Receipts(db).(*receipts.PostgresRepository); !ok {
		t.Fatal("Receipts() is not a PostgresRepository")
	}
}

func TestFactories_BindToTx(t *testing.T) {
	db, mock := newDB(t)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectRollback()

	tx, err := db.Begin()
	if err != nil {
		t.Fatalf("begin: %v", err)
	}
	defer tx.Rollback()

	m := NewPostgresRepositoryManager()
	if m.Receipts(tx) == nil || m.Accounts(tx) == nil {
		t.Fatal("nil repository for tx")
	}
}

func TestRunMigrations_Success(t *testing.T) {
	db, _ := newDB(t)
	defer db.Close()

	orig := gooseUpContext
	gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
		if dir != "." {
			return errors.New("unexpected dir")
		}
		if len(opts) != 0 {
			return errors.New("unexpected opts")
		}
		return nil
	}
	defer func() { gooseUpContext = orig }()

	m := &PostgresRepositoryManager{}
	if err := m.RunMigrations(context.Background(), db); err != nil {
		t.Fatalf("RunMigrations error: %v", err)
	}
}

func TestRunMigrations_Error(t *testing.T) {
	db, _ := newDB(t)
	defer db.Close()

	orig := gooseUpContext
	gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
		return errors.New("boom")
	}
	defer func() { gooseUpContext = orig }()

	m := &PostgresRepositoryManager{}
	if err := m.RunMigrations(context.Background(), db); err == nil || err.Error() != "boom" {
		t.Fatalf("expected boom, got %v", err)
	}
}
