package auth

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/toiture-lv/quote-api/internal/config"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("token has expired")
	ErrInvalidRole  = errors.New("token carries no valid role")
)

// Claims are the bearer token claims
type Claims struct {
	Name string `json:"name"`
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// JWTValidator validates HS256 bearer tokens signed with the shared secret
type JWTValidator struct {
	secret []byte
	issuer string
}

func NewJWTValidator(cfg *config.AuthConfig) *JWTValidator {
	return &JWTValidator{
		secret: []byte(cfg.JWTSecret),
		issuer: cfg.JWTIssuer,
	}
}

// Enabled reports whether a signing secret is configured
func (v *JWTValidator) Enabled() bool {
	return len(v.secret) > 0
}

// ValidateToken validates a token and returns the caller it names
func (v *JWTValidator) ValidateToken(tokenString string) (*UserContext, error) {
	if !v.Enabled() {
		return nil, fmt.Errorf("%w: bearer tokens are not accepted", ErrInvalidToken)
	}

	opts := []jwt.ParserOption{jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()})}
	if v.issuer != "" {
		opts = append(opts, jwt.WithIssuer(v.issuer))
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return v.secret, nil
	}, opts...)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !token.Valid {
		return nil, ErrInvalidToken
	}

	name := strings.TrimSpace(claims.Name)
	if name == "" {
		name = strings.TrimSpace(claims.Subject)
	}
	if name == "" {
		return nil, fmt.Errorf("%w: missing name", ErrInvalidToken)
	}
	role, ok := ParseRole(claims.Role)
	if !ok {
		return nil, ErrInvalidRole
	}

	return &UserContext{Name: name, Role: role, AuthType: "jwt"}, nil
}

// IssueToken signs a token for the given caller. It is used by tooling and tests.
func (v *JWTValidator) IssueToken(name, role string, ttl time.Duration) (string, error) {
	if !v.Enabled() {
		return "", errors.New("jwt secret is not configured")
	}
	now := time.Now()
	claims := Claims{
		Name: name,
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   name,
			Issuer:    v.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(v.secret)
}
