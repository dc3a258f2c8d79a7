/* JWT 토큰 생성 및 검증 */

package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

const (
	Issuer     = "geleza-smart-api"
	DefaultTTL = 720 * time.Hour
)

var ErrEmptySecret = errors.New("jwt secret must not be empty")

// Claims의 Subject가 학생 uid
type Claims struct {
	jwt.RegisteredClaims
}

type TokenManager struct {
	key []byte
	ttl time.Duration
	now func() time.Time
}

func NewTokenManager(secret string, ttl time.Duration) (*TokenManager, error) {
	if secret == "" {
		return nil, ErrEmptySecret
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &TokenManager{key: []byte(secret), ttl: ttl, now: time.Now}, nil
}

// Generate signs a token whose subject is uid.
func (m *TokenManager) Generate(uid string) (string, error) {
	if uid == "" {
		return "", errors.New("uid must not be empty")
	}
	now := m.now()
	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    Issuer,
			Subject:   uid,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.key)
}

// Validate returns the uid carried by tokenString.
func (m *TokenManager) Validate(tokenString string) (string, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return m.key, nil
	})
	if err != nil {
		return "", err
	}
	if !token.Valid || claims.Subject == "" || claims.Issuer != Issuer {
		return "", jwt.ErrTokenInvalidClaims
	}
	return claims.Subject, nil
}
