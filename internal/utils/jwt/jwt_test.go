package jwt

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const secret = "test-secret"

func TestGenerateAndVerify(t *testing.T) {
	token, err := GenerateAccessToken("Learner@Example.com", "user", secret, 7*24*time.Hour)
	require.NoError(t, err)

	claims, err := VerifyToken(token, secret)
	require.NoError(t, err)
	assert.Equal(t, "learner@example.com", claims.Subject)
	assert.Equal(t, "user", claims.Role)
	assert.WithinDuration(t, time.Now().Add(7*24*time.Hour), claims.ExpiresAt.Time, 5*time.Second)
}

func TestVerifyRejects(t *testing.T) {
	expired, err := generateAt(time.Now().Add(-8*24*time.Hour), "a@b.co", "user", secret, 7*24*time.Hour)
	require.NoError(t, err)

	wrongKey, err := GenerateAccessToken("a@b.co", "user", "other", time.Hour)
	require.NoError(t, err)

	hs512, err := jwt.NewWithClaims(jwt.SigningMethodHS512, Claims{
		RegisteredClaims: jwt.RegisteredClaims{Subject: "a@b.co", ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour))},
	}).SignedString([]byte(secret))
	require.NoError(t, err)

	noExpiry, err := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{Subject: "a@b.co"},
	}).SignedString([]byte(secret))
	require.NoError(t, err)

	tests := []struct {
		name  string
		token string
		want  error
	}{
		{"expired", expired, ErrExpiredToken},
		{"wrong key", wrongKey, ErrInvalidToken},
		{"other algorithm", hs512, ErrInvalidToken},
		{"missing expiry", noExpiry, ErrInvalidToken},
		{"garbage", "not-a-token", ErrInvalidToken},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := VerifyToken(tt.token, secret)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}
