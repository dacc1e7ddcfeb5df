package auth

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims do token de acesso: identidade, papel e tenant.
type Claims struct {
	UserID   uint `json:"userId"`
	IsAdmin  bool `json:"isAdmin"`
	TenantID uint `json:"tenantId"`
	jwt.RegisteredClaims
}

// Tempo de vida do access token.
const AccessTTL = 12 * time.Hour

func secret() ([]byte, error) {
	s := os.Getenv("AUTH_SECRET")
	if s == "" {
		return nil, errors.New("AUTH_SECRET não configurado")
	}
	return []byte(s), nil
}

// GenerateAccessToken gera um JWT HS256 com exp, iat e sub.
func GenerateAccessToken(userID uint, isAdmin bool, tenantID uint) (string, error) {
	key, err := secret()
	if err != nil {
		return "", err
	}

	now := time.Now()
	claims := &Claims{
		UserID:   userID,
		IsAdmin:  isAdmin,
		TenantID: tenantID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   fmt.Sprint(userID),
			ExpiresAt: jwt.NewNumericDate(now.Add(AccessTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now.Add(-1 * time.Minute)),
		},
	}

	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return tok.SignedString(key)
}

// ParseAndValidate valida assinatura e expiração e devolve as claims.
func ParseAndValidate(tokenStr string) (*Claims, error) {
	key, err := secret()
	if err != nil {
		return nil, err
	}

	parser := jwt.NewParser(jwt.WithValidMethods([]string{"HS256"}))
	tok, err := parser.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		return key, nil
	})
	if err != nil {
		return nil, err
	}
	if !tok.Valid {
		return nil, errors.New("token inválido")
	}

	c, ok := tok.Claims.(*Claims)
	if !ok {
		return nil, errors.New("claims inválidas")
	}
	if c.ExpiresAt == nil || time.Now().After(c.ExpiresAt.Time) {
		return nil, errors.New("token expirado")
	}
	return c, nil
}
