// Package services contains server-side business logic: account
// registration and login, the receipt unit of work, and expense reports.
package services

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/dmitrijs2005/receiptkeeper/internal/common"
	"github.com/dmitrijs2005/receiptkeeper/internal/cryptox"
	"github.com/dmitrijs2005/receiptkeeper/internal/logging"
	"github.com/dmitrijs2005/receiptkeeper/internal/server/auth"
	"github.com/dmitrijs2005/receiptkeeper/internal/server/config"
	"github.com/dmitrijs2005/receiptkeeper/internal/server/models"
	"github.com/dmitrijs2005/receiptkeeper/internal/server/repositories/repomanager"
)

// AccountService registers accounts and exchanges credentials for access
// tokens.
type AccountService struct {
	db                          *sql.DB
	repomanager                 repomanager.RepositoryManager
	jwtSecret                   []byte
	accessTokenValidityDuration time.Duration
	logger                      logging.Logger
}

// NewAccountService constructs an AccountService using repositories and server config.
func NewAccountService(db *sql.DB, m repomanager.RepositoryManager, cfg *config.Config, l logging.Logger) *AccountService {
	return &AccountService{
		db:                          db,
		repomanager:                 m,
		jwtSecret:                   []byte(cfg.SecretKey),
		accessTokenValidityDuration: cfg.AccessTokenValidityDuration,
		logger:                      l.With("module", "accounts"),
	}
}

// Register creates an account named name. The secret is stored only as a
// salted argon2id hash. Blank name or secret gives common.ErrorValidation
// and a taken name gives common.ErrorDuplicateName.
func (s *AccountService) Register(ctx context.Context, name, secret string) (*models.Account, error) {
	if strings.TrimSpace(name) == "" || secret == "" {
		return nil, common.ErrorValidation
	}

	salt := cryptox.NewSalt()
	account := &models.Account{
		Name:       name,
		Salt:       salt,
		SecretHash: cryptox.HashSecret([]byte(secret), salt),
	}

	created, err := s.repomanager.Accounts(s.db).Create(ctx, account)
	if err != nil {
		if errors.Is(err, common.ErrorDuplicateName) {
			return nil, common.ErrorDuplicateName
		}
		s.logger.Error(ctx, "account registration failed", "name", name, "error", err)
		return nil, common.ErrorStorage
	}

	s.logger.Info(ctx, "account registered", "account_id", created.ID)
	return created, nil
}

// Login verifies the credentials and returns a signed access token.
// Unknown names and wrong secrets are both common.ErrorUnauthorized.
func (s *AccountService) Login(ctx context.Context, name, secret string) (string, error) {
	account, err := s.repomanager.Accounts(s.db).GetByName(ctx, name)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			// same work as a real check, so timing does not reveal the name
			cryptox.HashSecret([]byte(secret), cryptox.NewSalt())
			return "", common.ErrorUnauthorized
		}
		s.logger.Error(ctx, "account lookup failed", "error", err)
		return "", common.ErrorStorage
	}

	if !cryptox.VerifySecret(account.SecretHash, account.Salt, []byte(secret)) {
		return "", common.ErrorUnauthorized
	}

	token, err := auth.GenerateToken(account.ID, s.jwtSecret, s.accessTokenValidityDuration)
	if err != nil {
		s.logger.Error(ctx, "token signing failed", "error", err)
		return "", common.ErrorInternal
	}
	return token, nil
}

// Authenticate returns the account id carried by a valid access token.
func (s *AccountService) Authenticate(token string) (int64, error) {
	return auth.GetAccountIDFromToken(token, s.jwtSecret)
}
