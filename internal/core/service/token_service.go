package service

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/codetrail/marketplace-api/internal/core/domain"
	"github.com/codetrail/marketplace-api/internal/core/ports"
)

// TokenService issues and verifies HS256 bearer tokens. The secret comes
// from configuration; a zero ttl means tokens never expire.
type TokenService struct {
	secret []byte
	ttl    time.Duration
}

func NewTokenService(secret string, ttl time.Duration) *TokenService {
	return &TokenService{secret: []byte(secret), ttl: ttl}
}

func (t *TokenService) Issue(subjectID, email string, isAdmin bool) (string, error) {
	claims := jwt.MapClaims{
		"sub":      subjectID,
		"email":    email,
		"is_admin": isAdmin,
		"iat":      time.Now().Unix(),
		"jti":      uuid.NewString(),
	}
	if t.ttl > 0 {
		claims["exp"] = time.Now().Add(t.ttl).Unix()
	}

	tkn := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return tkn.SignedString(t.secret)
}

func (t *TokenService) Verify(token string) (*ports.TokenClaims, error) {
	claims := jwt.MapClaims{}
	tkn, err := jwt.ParseWithClaims(token, claims, func(tok *jwt.Token) (interface{}, error) {
		if tok.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return t.secret, nil
	})
	if err != nil || !tkn.Valid {
		return nil, domain.ErrInvalidToken
	}

	sub, _ := claims["sub"].(string)
	email, _ := claims["email"].(string)
	isAdmin, _ := claims["is_admin"].(bool)
	if sub == "" || email == "" {
		return nil, domain.ErrInvalidToken
	}

	return &ports.TokenClaims{Subject: sub, Email: email, IsAdmin: isAdmin}, nil
}
