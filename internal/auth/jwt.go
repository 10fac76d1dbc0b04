package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// JWTValidator issues and validates HS256 operator tokens
type JWTValidator struct {
	secret []byte
	ttl    time.Duration
}

// Claims are the custom claims carried by operator tokens
type Claims struct {
	Name string `json:"name,omitempty"`
	jwt.RegisteredClaims
}

// NewJWTValidator creates a validator for the shared signing secret
func NewJWTValidator(secret string, ttl time.Duration) *JWTValidator {
	return &JWTValidator{secret: []byte(secret), ttl: ttl}
}

// IssueToken creates a signed token for the given subject
func (v *JWTValidator) IssueToken(subject, name string) (string, error) {
	if len(v.secret) == 0 {
		return "", fmt.Errorf("jwt secret not configured")
	}

	now := time.Now()
	claims := Claims{
		Name: name,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(v.ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(v.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// ValidateToken parses and verifies a token, returning the operator context
func (v *JWTValidator) ValidateToken(tokenString string) (*OperatorContext, error) {
	if len(v.secret) == 0 {
		return nil, fmt.Errorf("jwt secret not configured")
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return v.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("invalid token: %w", err)
	}
	if !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}

	return &OperatorContext{
		Subject:  claims.Subject,
		Name:     claims.Name,
		AuthType: "jwt",
	}, nil
}
