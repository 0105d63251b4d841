// Package auth issues and verifies the bearer access tokens of the API.
package auth

import (
	"errors"
	"time"

	"github.com/dmitrijs2005/receiptkeeper/internal/common"
	"github.com/golang-jwt/jwt/v5"
)

// Claims are the registered claims plus the id of the authenticated account.
type Claims struct {
	jwt.RegisteredClaims
	AccountID int64 `json:"account_id"`
}

func GenerateToken(accountID int64, secretKey []byte, validityDuration time.Duration) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(validityDuration)),
		},
		AccountID: accountID,
	})

	tokenString, err := token.SignedString(secretKey)
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

// GetAccountIDFromToken verifies tokenString and returns its account id.
// Expired tokens give common.ErrTokenExpired, anything else that does not
// verify gives common.ErrInvalidToken.
func GetAccountIDFromToken(tokenString string, secretKey []byte) (int64, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return secretKey, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return 0, common.ErrTokenExpired
		}
		return 0, common.ErrInvalidToken
	}

	if !token.Valid || claims.AccountID <= 0 {
		return 0, common.ErrInvalidToken
	}

	return claims.AccountID, nil
}
