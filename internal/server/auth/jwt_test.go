package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/dmitrijs2005/receiptkeeper/internal/common"
	"github.com/golang-jwt/jwt/v5"
)

func TestGenerateAndParse_Success(t *testing.T) {
	t.Parallel()

	secret := []byte("super-secret")

	tok, err := GenerateToken(123, secret, time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken error: %v", err)
	}

	got, err := GetAccountIDFromToken(tok, secret)
	if err != nil {
		t.Fatalf("GetAccountIDFromToken error: %v", err)
	}
	if got != 123 {
		t.Fatalf("account id mismatch: got %d want %d", got, 123)
	}
}

func TestGetAccountIDFromToken_Expired(t *testing.T) {
	t.Parallel()

	secret := []byte("secret")

	tok, err := GenerateToken(1, secret, -1*time.Minute)
	if err != nil {
		t.Fatalf("GenerateToken error: %v", err)
	}

	_, err = GetAccountIDFromToken(tok, secret)
	if !errors.Is(err, common.ErrTokenExpired) {
		t.Fatalf("expected common.ErrTokenExpired, got %v", err)
	}
}

func TestGetAccountIDFromToken_WrongSecret(t *testing.T) {
	t.Parallel()

	tok, err := GenerateToken(2, []byte("right-secret"), time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken error: %v", err)
	}

	_, err = GetAccountIDFromToken(tok, []byte("wrong-secret"))
	if !errors.Is(err, common.ErrInvalidToken) {
		t.Fatalf("expected common.ErrInvalidToken, got %v", err)
	}
}

func TestGetAccountIDFromToken_MalformedString(t *testing.T) {
	t.Parallel()

	_, err := GetAccountIDFromToken("not.a.jwt", []byte("k"))
	if !errors.Is(err, common.ErrInvalidToken) {
		t.Fatalf("expected common.ErrInvalidToken, got %v", err)
	}
}

func TestGetAccountIDFromToken_RejectsOtherAlgorithms(t *testing.T) {
	t.Parallel()

	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS512, Claims{AccountID: 5}).SignedString([]byte("k"))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	if _, err := GetAccountIDFromToken(tok, []byte("k")); !errors.Is(err, common.ErrInvalidToken) {
		t.Fatalf("expected common.ErrInvalidToken, got %v", err)
	}
}

func TestGetAccountIDFromToken_MissingAccount(t *testing.T) {
	t.Parallel()

	tok, err := GenerateToken(0, []byte("k"), time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken error: %v", err)
	}

	if _, err := GetAccountIDFromToken(tok, []byte("k")); !errors.Is(err, common.ErrInvalidToken) {
		t.Fatalf("expected common.ErrInvalidToken, got %v", err)
	}
}
