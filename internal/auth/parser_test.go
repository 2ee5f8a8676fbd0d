package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

func signToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func TestParseValidToken(t *testing.T) {
	parser := NewParser("segredo")
	raw := signToken(t, "segredo", jwt.MapClaims{
		"sub":  "user-1",
		"role": "admin",
		"exp":  time.Now().Add(time.Hour).Unix(),
	})

	principal, err := parser.Parse(raw)
	require.NoError(t, err)
	require.Equal(t, "user-1", principal.Subject)
	require.Equal(t, "admin", principal.Role)
}

func TestParseRejectsWrongSecret(t *testing.T) {
	parser := NewParser("segredo")
	raw := signToken(t, "outro", jwt.MapClaims{"sub": "user-1"})

	_, err := parser.Parse(raw)
	require.Error(t, err)
}

func TestParseRejectsMissingSubject(t *testing.T) {
	parser := NewParser("segredo")
	raw := signToken(t, "segredo", jwt.MapClaims{"role": "admin"})

	_, err := parser.Parse(raw)
	require.Error(t, err)
}

func TestParseRejectsEmptyToken(t *testing.T) {
	parser := NewParser("segredo")

	_, err := parser.Parse("  ")
	require.Error(t, err)
}
