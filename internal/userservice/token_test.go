package userservice

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTokenRoundTrip(t *testing.T) {
	token, err := newToken(42, "secret", time.Hour)
	assert.NoError(t, err)
	assert.NotEmpty(t, token)

	id, err := verifyToken(token, "secret")
	assert.NoError(t, err)
	assert.Equal(t, 42, id)
}

func TestVerifyToken(t *testing.T) {
	testCases := []struct {
		name  string
		token func(t *testing.T) string
	}{
		{
			name: "expired token",
			token: func(t *testing.T) string {
				token, err := newToken(1, "secret", -time.Minute)
				assert.NoError(t, err)
				return token
			},
		},
		{
			name: "wrong secret",
			token: func(t *testing.T) string {
				token, err := newToken(1, "other-secret", time.Hour)
				assert.NoError(t, err)
				return token
			},
		},
		{
			name: "malformed token",
			token: func(t *testing.T) string {
				return "not-a-jwt"
			},
		},
		{
			name: "empty token",
			token: func(t *testing.T) string {
				return ""
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			id, err := verifyToken(tc.token(t), "secret")
			assert.ErrorIs(t, err, ErrInvalidToken)
			assert.Zero(t, id)
		})
	}
}
