// Package cryptox hashes and verifies account secrets with argon2id.
package cryptox

import (
	"crypto/subtle"

	"github.com/dmitrijs2005/receiptkeeper/internal/common"
	"golang.org/x/crypto/argon2"
)

// SaltSize is the length of the random salt generated per account.
const SaltSize = 16

const (
	argonTime    = 1
	argonMemory  = 64 * 1024
	argonThreads = 4
	argonKeyLen  = 32
)

// HashSecret derives an argon2id hash of secret using salt.
func HashSecret(secret []byte, salt []byte) []byte {
	return argon2.IDKey(secret, salt, argonTime, argonMemory, argonThreads, argonKeyLen)
}

// NewSalt returns a fresh random salt.
func NewSalt() []byte {
	return common.GenerateRandByteArray(SaltSize)
}

// VerifySecret reports whether candidate hashes to hash under salt. The
// comparison is constant time.
func VerifySecret(hash, salt, candidate []byte) bool {
	return subtle.ConstantTimeCompare(hash, HashSecret(candidate, salt)) == 1
}
