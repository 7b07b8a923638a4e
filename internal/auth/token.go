package auth

import (
	"errors"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
)

const gatewaySubject = "gateway"

// ServiceTokenManager issues and validates the HS256 tokens the gateway uses
// to authenticate itself to the server tier.
type ServiceTokenManager struct {
	secret []byte
	ttl    time.Duration
}

// NewServiceTokenManager builds a new manager.
func NewServiceTokenManager(secret string, ttlMinutes int) *ServiceTokenManager {
	if ttlMinutes <= 0 {
		ttlMinutes = 60
	}
	return &ServiceTokenManager{secret: []byte(secret), ttl: time.Duration(ttlMinutes) * time.Minute}
}

// Issue builds and signs a gateway trust token.
func (tm *ServiceTokenManager) Issue() (string, time.Time, error) {
	expiresAt := time.Now().Add(tm.ttl)
	claims := jwt.RegisteredClaims{
		Subject:   gatewaySubject,
		ExpiresAt: jwt.NewNumericDate(expiresAt),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(tm.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return tokenString, expiresAt, nil
}

// Verify validates a gateway trust token.
func (tm *ServiceTokenManager) Verify(tokenStr string) error {
	parsed, err := jwt.ParseWithClaims(tokenStr, &jwt.RegisteredClaims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, errors.New("unexpected signing method")
		}
		return tm.secret, nil
	})
	if err != nil {
		return err
	}

	claims, ok := parsed.Claims.(*jwt.RegisteredClaims)
	if !ok || !parsed.Valid {
		return errors.New("invalid token claims")
	}
	if claims.Subject != gatewaySubject {
		return errors.New("unexpected token subject")
	}
	return nil
}
