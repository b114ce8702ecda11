package utils

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// IssueToken signs an HS256 bearer token whose subject is the cashier's user id.
// Tokens are normally issued by the identity provider in front of this service;
// this is used by tooling and tests.
func IssueToken(userID string, secret string, ttl time.Duration, issuer string) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Issuer:    issuer,
		Subject:   userID,
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		IssuedAt:  jwt.NewNumericDate(now),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}

// ParseToken verifies the signature and time claims of an HMAC-signed token.
// Errors wrap the jwt sentinels, so errors.Is(err, jwt.ErrTokenExpired) works.
func ParseToken(tokenString string, secret string) (*jwt.RegisteredClaims, error) {
	claims := &jwt.RegisteredClaims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, jwt.ErrTokenSignatureInvalid
	}
	return claims, nil
}
