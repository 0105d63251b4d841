package admin

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/receiptkeeper/internal/dbx"
	"github.com/dmitrijs2005/receiptkeeper/internal/server/config"
	"github.com/dmitrijs2005/receiptkeeper/internal/server/repositories/accounts"
	"github.com/dmitrijs2005/receiptkeeper/internal/server/repositories/receipts"
	"github.com/dmitrijs2005/receiptkeeper/internal/server/repositories/repomanager"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const insertAccountQ = `(?s)^INSERT\s+INTO\s+accounts`

type fakeManager struct {
	migrateErr error
	migrated   bool
}

func (m *fakeManager) RunMigrations(context.Context, *sql.DB) error {
	m.migrated = true
	return m.migrateErr
}

func (m *fakeManager) Accounts(db dbx.DBTX) accounts.Repository {
	return accounts.NewPostgresRepository(db)
}

func (m *fakeManager) Receipts(db dbx.DBTX) receipts.Repository {
	return receipts.NewPostgresRepository(db)
}

func withSeams(t *testing.T, mgr *fakeManager) sqlmock.Sqlmock {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)

	origOpen, origMgr := openDB, newRepoMgr
	openDB = func(string) (*sql.DB, error) { return db, nil }
	newRepoMgr = func() repomanager.RepositoryManager { return mgr }
	t.Cleanup(func() { openDB, newRepoMgr = origOpen, origMgr })
	return mock
}

func newTestApp(t *testing.T, input string) (*App, *bytes.Buffer) {
	t.Helper()
	cfg := &config.Config{}
	cfg.LoadDefaults()
	cfg.LogLevel = "error"

	var out bytes.Buffer
	app, err := NewApp(cfg, strings.NewReader(input), &out)
	require.NoError(t, err)
	return app, &out
}

func TestRun_Migrate(t *testing.T) {
	mgr := &fakeManager{}
	mock := withSeams(t, mgr)
	mock.ExpectClose()

	app, out := newTestApp(t, "")
	require.NoError(t, app.Run(context.Background(), "migrate"))

	assert.True(t, mgr.migrated)
	assert.Contains(t, out.String(), "Schema is up to date")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRun_MigrateError(t *testing.T) {
	mock := withSeams(t, &fakeManager{migrateErr: errors.New("no db")})
	mock.ExpectClose()

	app, _ := newTestApp(t, "")
	err := app.Run(context.Background(), "migrate")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "migrations error")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRun_Register(t *testing.T) {
	mock := withSeams(t, &fakeManager{})
	stubPassword(t, "pw", nil)

	mock.ExpectQuery(insertAccountQ).
		WithArgs("alice", sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(int64(3), time.Now()))
	mock.ExpectClose()

	app, out := newTestApp(t, "alice\n")
	require.NoError(t, app.Run(context.Background(), "register"))

	assert.Contains(t, out.String(), `Account "alice" registered (id 3)`)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRun_RegisterDuplicate(t *testing.T) {
	mock := withSeams(t, &fakeManager{})
	stubPassword(t, "pw", nil)

	mock.ExpectQuery(insertAccountQ).
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "accounts_name_key"})
	mock.ExpectClose()

	app, _ := newTestApp(t, "alice\n")
	err := app.Run(context.Background(), "register")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")
}

func TestRun_RegisterEmptyPassword(t *testing.T) {
	mock := withSeams(t, &fakeManager{})
	stubPassword(t, "", nil)
	mock.ExpectClose()

	app, _ := newTestApp(t, "alice\n")
	err := app.Run(context.Background(), "register")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "must not be empty")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRun_RegisterPasswordReadError(t *testing.T) {
	mock := withSeams(t, &fakeManager{})
	stubPassword(t, "", errors.New("not a terminal"))
	mock.ExpectClose()

	app, _ := newTestApp(t, "alice\n")
	err := app.Run(context.Background(), "register")
	require.EqualError(t, err, "not a terminal")
}

func TestRun_UnknownCommand(t *testing.T) {
	app, out := newTestApp(t, "")

	err := app.Run(context.Background(), "drop")
	assert.ErrorIs(t, err, ErrUnknownCommand)
	assert.Contains(t, out.String(), "usage: receiptsctl")

	assert.ErrorIs(t, app.Run(context.Background(), ""), ErrUnknownCommand)
	assert.NoError(t, app.Run(context.Background(), "help"))
}

func TestRun_EmptyDSN(t *testing.T) {
	app, _ := newTestApp(t, "")
	app.config.DatabaseDSN = ""
	err := app.Run(context.Background(), "migrate")
	require.EqualError(t, err, "database DSN is empty")
}
