// Package auth supplies the acting identity for a request: JWT issuing and
// parsing plus the HTTP middleware that puts the identity on the context.
package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Identity is the authenticated caller as seen by every protected operation.
type Identity struct {
	ID      int64
	Email   string
	IsAdmin bool
}

type claims struct {
	CustomerID int64  `json:"cid"`
	Email      string `json:"email"`
	IsAdmin    bool   `json:"admin"`
	jwt.RegisteredClaims
}

// Tokens issues and verifies HMAC-signed customer tokens.
type Tokens struct {
	key []byte
	ttl time.Duration
}

func NewTokens(key string, ttl time.Duration) *Tokens {
	return &Tokens{key: []byte(key), ttl: ttl}
}

func (t *Tokens) Issue(id Identity) (string, error) {
	now := time.Now().UTC()
	c := claims{
		CustomerID: id.ID,
		Email:      id.Email,
		IsAdmin:    id.IsAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(t.ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, c).SignedString(t.key)
}

func (t *Tokens) Parse(raw string) (Identity, error) {
	var c claims
	_, err := jwt.ParseWithClaims(raw, &c, func(tok *jwt.Token) (any, error) {
		if _, ok := tok.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", tok.Header["alg"])
		}
		return t.key, nil
	})
	if err != nil {
		return Identity{}, err
	}
	return Identity{ID: c.CustomerID, Email: c.Email, IsAdmin: c.IsAdmin}, nil
}
