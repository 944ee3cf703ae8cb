package utils

import (
	"errors"
	"time"

	"github.com/dgrijalva/jwt-go"
)

// Claims represents the JWT claims carried by a login token.
type Claims struct {
	Email string `json:"email"`
	Role  string `json:"role"`
	jwt.StandardClaims
}

// TokenIssuer signs login tokens with the configured secret.
type TokenIssuer struct {
	key []byte
}

// NewTokenIssuer builds an issuer from the signing secret. An empty secret
// is refused so tokens are never signed with an empty key.
func NewTokenIssuer(secret string) (*TokenIssuer, error) {
	if secret == "" {
		return nil, errors.New("JWT_SECRET is not set")
	}
	return &TokenIssuer{key: []byte(secret)}, nil
}

// Generate signs a token for a user.
func (ti *TokenIssuer) Generate(email, role string) (string, error) {
	expirationTime := time.Now().Add(24 * time.Hour)
	claims := &Claims{
		Email: email,
		Role:  role,
		StandardClaims: jwt.StandardClaims{
			ExpiresAt: expirationTime.Unix(),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(ti.key)
}
