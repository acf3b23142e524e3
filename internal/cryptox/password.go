// Package cryptox implements one-way salted password hashing.
//
// Two algorithms are available behind the PasswordHasher interface:
// bcrypt (the default) and argon2id encoded in PHC string format. Both
// embed a random salt in their output, so hashing the same password twice
// yields different strings, and both verify in constant time.
package cryptox

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

const (
	AlgorithmBcrypt   = "bcrypt"
	AlgorithmArgon2id = "argon2id"

	// DefaultBcryptCost matches the cost the service has always used.
	DefaultBcryptCost = 10

	bcryptMaxPassword = 72
)

var (
	// ErrEmptyPassword is returned when hashing an empty password.
	ErrEmptyPassword = errors.New("empty password")
	// ErrPasswordTooLong is returned when the password exceeds what the
	// algorithm accepts (72 bytes for bcrypt).
	ErrPasswordTooLong = errors.New("password too long")
)

// PasswordHasher turns plaintext passwords into storable hashes and checks
// candidates against them. Verify never errors: a malformed hash or a
// mismatch both yield false.
type PasswordHasher interface {
	Hash(plain []byte) (string, error)
	Verify(plain []byte, hash string) bool
}

// NewPasswordHasher returns the hasher for the named algorithm.
// bcryptCost is ignored for argon2id.
func NewPasswordHasher(algorithm string, bcryptCost int) (PasswordHasher, error) {
	switch strings.ToLower(algorithm) {
	case AlgorithmBcrypt, "":
		return NewBcryptHasher(bcryptCost)
	case AlgorithmArgon2id:
		return NewArgon2Hasher(DefaultArgon2Params), nil
	default:
		return nil, fmt.Errorf("unknown password hash algorithm %q", algorithm)
	}
}

// BcryptHasher hashes with bcrypt at a fixed cost.
type BcryptHasher struct {
	cost int
}

func NewBcryptHasher(cost int) (*BcryptHasher, error) {
	if cost == 0 {
		cost = DefaultBcryptCost
	}
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		return nil, fmt.Errorf("bcrypt cost %d out of range [%d, %d]", cost, bcrypt.MinCost, bcrypt.MaxCost)
	}
	return &BcryptHasher{cost: cost}, nil
}

func (h *BcryptHasher) Hash(plain []byte) (string, error) {
	if len(plain) == 0 {
		return "", ErrEmptyPassword
	}
	hash, err := bcrypt.GenerateFromPassword(plain, h.cost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return "", ErrPasswordTooLong
		}
		return "", fmt.Errorf("bcrypt: %w", err)
	}
	return string(hash), nil
}

// Verify reports false for input longer than bcrypt can hash, since bcrypt
// would otherwise compare only its first 72 bytes.
func (h *BcryptHasher) Verify(plain []byte, hash string) bool {
	if len(plain) > bcryptMaxPassword {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(hash), plain) == nil
}
