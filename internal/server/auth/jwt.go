// Package auth issues and verifies the bearer tokens handed out at signup
// and login.
package auth

import (
	"errors"
	"time"

	"github.com/dmitrijs2005/gopherblog/internal/common"
	"github.com/golang-jwt/jwt/v5"
)

// DefaultValidity is the lifetime of an issued token.
const DefaultValidity = time.Hour

// Claims carries the user id next to the standard registered claims.
type Claims struct {
	jwt.RegisteredClaims
	UserID string `json:"userId"`
}

// Issuer signs and verifies HS256 tokens with one shared secret. It holds
// no mutable state and is safe for concurrent use.
type Issuer struct {
	secret   []byte
	validity time.Duration
	now      func() time.Time
}

func NewIssuer(secret []byte, validity time.Duration) *Issuer {
	if validity <= 0 {
		validity = DefaultValidity
	}
	return &Issuer{secret: secret, validity: validity, now: time.Now}
}

// Issue returns a signed token for userID expiring validity from now. Two
// tokens issued within the same second for the same user are identical.
func (i *Issuer) Issue(userID string) (string, error) {
	now := i.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(i.validity)),
		},
		UserID: userID,
	})

	return token.SignedString(i.secret)
}

// Verify checks the signature, algorithm and expiry of tokenString and
// returns the user id it carries. Every failure, expiry included, is
// reported as common.ErrInvalidToken.
func (i *Issuer) Verify(tokenString string) (string, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return i.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithStrictDecoding(),
		jwt.WithTimeFunc(i.now),
	)
	if err != nil {
		return "", errors.Join(common.ErrInvalidToken, err)
	}

	if !token.Valid || claims.UserID == "" {
		return "", common.ErrInvalidToken
	}

	return claims.UserID, nil
}
