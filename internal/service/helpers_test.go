package service_test

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"pactly/internal/config"
	"pactly/internal/domain"
	"pactly/internal/service"
)

func testJWTConfig() config.JWTConfig {
	return config.JWTConfig{
		Secret: "test-secret-key-for-unit-tests",
		Issuer: "pactly-test",
	}
}

func signToken(t *testing.T, secret string, claims *service.Claims) string {
	t.Helper()
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return tok
}

func validClaims(audience string) *service.Claims {
	now := time.Now()
	return &service.Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "pactly-test",
			Subject:   "user",
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(15 * time.Minute)),
			Audience:  jwt.ClaimStrings{audience},
		},
		TenantID: uuid.New(),
		UserID:   uuid.New(),
		Email:    "agent@acme.test",
		Role:     domain.RoleAdmin,
	}
}
