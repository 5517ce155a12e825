package auth

import (
	"crypto/subtle"
	"time"

	"gallery/models"

	"github.com/golang-jwt/jwt/v5"
)

const (
	RoleAdmin     = "admin"
	TokenLifetime = 8 * time.Hour
)

// Principal is an authenticated admin
type Principal struct {
	Role      string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

type claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// Sessions issues and validates admin bearer tokens. Tokens are stateless,
// nothing is stored on the server.
type Sessions struct {
	Password string // login is disabled if empty
	Secret   []byte
	Now      func() time.Time
}

func (s *Sessions) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s *Sessions) Login(password string) (string, error) {
	if s.Password == "" || subtle.ConstantTimeCompare([]byte(password), []byte(s.Password)) != 1 {
		return "", &models.AuthError{Reason: "Invalid password"}
	}
	if len(s.Secret) == 0 {
		return "", &models.AuthError{Reason: "Admin login is not configured"}
	}
	now := s.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		Role: RoleAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(TokenLifetime)),
		},
	})
	return token.SignedString(s.Secret)
}

func (s *Sessions) Authenticate(token string) (*Principal, error) {
	if token == "" {
		return nil, &models.AuthError{Reason: "Authentication required"}
	}
	if len(s.Secret) == 0 {
		return nil, &models.AuthError{Reason: "Invalid token", Forbidden: true}
	}
	parsed := claims{}
	_, err := jwt.ParseWithClaims(token, &parsed, func(t *jwt.Token) (any, error) {
		return s.Secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(s.now),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return nil, &models.AuthError{Reason: "Invalid or expired token", Forbidden: true}
	}
	if parsed.Role != RoleAdmin {
		return nil, &models.AuthError{Reason: "Admin access required", Forbidden: true}
	}
	principal := &Principal{Role: parsed.Role}
	if parsed.IssuedAt != nil {
		principal.IssuedAt = parsed.IssuedAt.Time
	}
	if parsed.ExpiresAt != nil {
		principal.ExpiresAt = parsed.ExpiresAt.Time
	}
	return principal, nil
}
