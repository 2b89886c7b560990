package jwt

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims subconjunto de claims que emite el backend SINV.
// La firma la valida el backend; la consola solo lee expiración y sujeto.
type Claims struct {
	jwt.RegisteredClaims
	Role string `json:"role,omitempty"`
}

// Info datos útiles de un token del backend.
type Info struct {
	Subject   string
	Role      string
	ExpiresAt time.Time // cero si el token no declara exp
}

// Expired indica si el token venció respecto a now.
func (i Info) Expired(now time.Time) bool {
	return !i.ExpiresAt.IsZero() && !now.Before(i.ExpiresAt)
}

// Inspect lee los claims sin verificar la firma (la consola no conoce el secreto del backend).
func Inspect(tokenString string) (Info, error) {
	if tokenString == "" {
		return Info{}, fmt.Errorf("jwt: token vacío")
	}
	claims := &Claims{}
	if _, _, err := jwt.NewParser().ParseUnverified(tokenString, claims); err != nil {
		return Info{}, fmt.Errorf("jwt: token malformado: %w", err)
	}
	info := Info{Subject: claims.Subject, Role: claims.Role}
	if claims.ExpiresAt != nil {
		info.ExpiresAt = claims.ExpiresAt.Time
	}
	return info, nil
}

// Generate genera un token HS256 con sujeto, rol y expiración. Lo usan los tests y el backend falso.
func Generate(secret, subject, role string, ttl time.Duration) (string, error) {
	if secret == "" {
		return "", fmt.Errorf("jwt: secret vacío")
	}
	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		Role: role,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}
