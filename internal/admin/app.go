// Package admin implements receiptsctl, the operator CLI that applies the
// baseline schema and registers accounts directly against the database.
package admin

import (
	"bufio"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"

	"github.com/dmitrijs2005/receiptkeeper/internal/common"
	"github.com/dmitrijs2005/receiptkeeper/internal/logging"
	"github.com/dmitrijs2005/receiptkeeper/internal/server/config"
	"github.com/dmitrijs2005/receiptkeeper/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/receiptkeeper/internal/server/services"
	_ "github.com/jackc/pgx/v5/stdlib"
)

// Seams for tests.
var (
	openDB     = func(dsn string) (*sql.DB, error) { return sql.Open("pgx", dsn) }
	newRepoMgr = repomanager.NewPostgresRepositoryManager
)

const usage = `usage: receiptsctl <command> [flags]

commands:
  migrate    apply the baseline schema
  register   create an account (prompts for name and password)

flags:
  -d string  PostgreSQL DSN
  -c string  path to JSON config file`

var ErrUnknownCommand = errors.New("unknown command")

type App struct {
	config *config.Config
	logger logging.Logger
	in     *bufio.Reader
	out    io.Writer
}

// NewApp builds the CLI around cfg. Prompts read from in and write to out.
func NewApp(cfg *config.Config, in io.Reader, out io.Writer) (*App, error) {
	logger, err := logging.New(cfg.LogFormat, cfg.LogLevel, out)
	if err != nil {
		return nil, fmt.Errorf("logger init error: %w", err)
	}
	return &App{
		config: cfg,
		logger: logger,
		in:     bufio.NewReader(in),
		out:    out,
	}, nil
}

// Run executes cmd. An empty or unknown command prints usage and returns
// ErrUnknownCommand.
func (a *App) Run(ctx context.Context, cmd string) error {
	switch cmd {
	case "migrate":
		return a.withDB(ctx, a.Migrate)
	case "register":
		return a.withDB(ctx, a.Register)
	case "help":
		fmt.Fprintln(a.out, usage)
		return nil
	default:
		fmt.Fprintln(a.out, usage)
		if cmd == "" {
			return ErrUnknownCommand
		}
		return fmt.Errorf("%w: %s", ErrUnknownCommand, cmd)
	}
}

func (a *App) withDB(ctx context.Context, fn func(context.Context, *sql.DB, repomanager.RepositoryManager) error) error {
	if a.config.DatabaseDSN == "" {
		return errors.New("database DSN is empty")
	}
	db, err := openDB(a.config.DatabaseDSN)
	if err != nil {
		return fmt.Errorf("db init error: %w", err)
	}
	defer db.Close()
	return fn(ctx, db, newRepoMgr())
}

// Migrate applies the embedded baseline schema.
func (a *App) Migrate(ctx context.Context, db *sql.DB, rm repomanager.RepositoryManager) error {
	if err := rm.RunMigrations(ctx, db); err != nil {
		return fmt.Errorf("migrations error: %w", err)
	}
	fmt.Fprintln(a.out, "Schema is up to date")
	return nil
}

// Register prompts for an account name and a hidden password and creates
// the account.
func (a *App) Register(ctx context.Context, db *sql.DB, rm repomanager.RepositoryManager) error {
	name, err := GetSimpleText(a.in, "Enter account name", a.out)
	if err != nil {
		return err
	}

	pw, err := GetPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(pw)

	svc := services.NewAccountService(db, rm, a.config, a.logger)
	account, err := svc.Register(ctx, name, string(pw))
	switch {
	case errors.Is(err, common.ErrorValidation):
		return errors.New("name and password must not be empty")
	case errors.Is(err, common.ErrorDuplicateName):
		return fmt.Errorf("account %q already exists", name)
	case err != nil:
		return err
	}

	fmt.Fprintf(a.out, "Account %q registered (id %d)\n", account.Name, account.ID)
	return nil
}
