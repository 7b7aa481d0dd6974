package userservice

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/quillhub/quillhub/internal/common"
)

func setupTestEnvironment(t *testing.T) (*UserService, *sql.DB) {
	t.Helper()

	db := common.TestDB("file://../../migrations", t)
	cache := common.NewCache(5*time.Minute, 10*time.Minute)

	return NewUserService(db, cache, "test-secret", time.Hour), db
}

func TestCreateUser(t *testing.T) {
	s, db := setupTestEnvironment(t)

	testCases := []struct {
		name        string
		firstName   string
		lastName    string
		email       string
		password    string
		setup       func(ctx context.Context) error
		expectedErr error
	}{
		{
			name:      "valid user",
			firstName: "Test",
			lastName:  "User",
			email:     "testuser@example.com",
			password:  "testpass123",
		},
		{
			name:      "duplicate email",
			firstName: "Other",
			lastName:  "User",
			email:     "taken@example.com",
			password:  "testpass123",
			setup: func(ctx context.Context) error {
				_, _, err := s.CreateUser(ctx, "First", "User", "taken@example.com", "testpass123")
				return err
			},
			expectedErr: ErrDuplicateEmail,
		},
		{
			name:        "invalid email",
			firstName:   "Test",
			lastName:    "User",
			email:       "not-an-email",
			password:    "testpass123",
			expectedErr: common.ValidationError{Errors: map[string]string{"email": "must be a valid email address"}},
		},
		{
			name:        "short password",
			firstName:   "Test",
			lastName:    "User",
			email:       "short@example.com",
			password:    "short",
			expectedErr: common.ValidationError{Errors: map[string]string{"password": "must be between 8 and 72 characters long"}},
		},
		{
			name:        "missing fields",
			expectedErr: common.ValidationError{Errors: map[string]string{"first_name": "must be provided", "last_name": "must be provided", "email": "must be provided", "password": "must be provided"}},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctx := context.Background()

			if tc.setup != nil {
				err := tc.setup(ctx)
				assert.NoError(t, err)
			}

			user, token, err := s.CreateUser(ctx, tc.firstName, tc.lastName, tc.email, tc.password)
			assert.Equal(t, tc.expectedErr, err)

			if err == nil {
				assert.NotZero(t, user.ID)
				assert.NotEmpty(t, token)
				assert.Equal(t, tc.email, user.Email)

				// the stored credential must be a hash, never the plaintext
				var stored []byte
				err := db.QueryRow("SELECT password FROM users WHERE id = $1", user.ID).Scan(&stored)
				assert.NoError(t, err)
				assert.NotEqual(t, []byte(tc.password), stored)
			}
		})
	}
}

func TestLoginUser(t *testing.T) {
	s, _ := setupTestEnvironment(t)

	ctx := context.Background()

	_, _, err := s.CreateUser(ctx, "Test", "User", "login@example.com", "testpass123")
	assert.NoError(t, err)

	testCases := []struct {
		name        string
		email       string
		password    string
		expectedErr error
	}{
		{
			name:     "valid credentials",
			email:    "login@example.com",
			password: "testpass123",
		},
		{
			name:        "wrong password",
			email:       "login@example.com",
			password:    "wrongpass123",
			expectedErr: ErrAuthenticationFailure,
		},
		{
			name:        "unknown email",
			email:       "missing@example.com",
			password:    "testpass123",
			expectedErr: ErrAuthenticationFailure,
		},
		{
			name:        "case-sensitive email lookup",
			email:       "LOGIN@example.com",
			password:    "testpass123",
			expectedErr: ErrAuthenticationFailure,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			user, token, err := s.LoginUser(ctx, tc.email, tc.password)
			assert.Equal(t, tc.expectedErr, err)

			if err == nil {
				assert.Equal(t, tc.email, user.Email)
				assert.NotEmpty(t, token)
			}
		})
	}
}

func TestGetUserByToken(t *testing.T) {
	s, db := setupTestEnvironment(t)

	ctx := context.Background()

	created, token, err := s.CreateUser(ctx, "Test", "User", "token@example.com", "testpass123")
	assert.NoError(t, err)

	t.Run("valid token", func(t *testing.T) {
		user, err := s.GetUserByToken(ctx, token)
		assert.NoError(t, err)
		assert.Equal(t, created.ID, user.ID)
		assert.Equal(t, created.Email, user.Email)
	})

	t.Run("cached lookup", func(t *testing.T) {
		// second resolution must come from the cache
		_, err := s.GetUserByToken(ctx, token)
		assert.NoError(t, err)

		cached, ok := s.c.Get(common.CacheKeyUserById(created.ID))
		assert.True(t, ok)
		assert.Equal(t, created.ID, cached.(*User).ID)
	})

	t.Run("invalid token", func(t *testing.T) {
		user, err := s.GetUserByToken(ctx, "garbage")
		assert.ErrorIs(t, err, ErrInvalidToken)
		assert.Nil(t, user)
	})

	t.Run("deleted user", func(t *testing.T) {
		other, otherToken, err := s.CreateUser(ctx, "Gone", "User", "gone@example.com", "testpass123")
		assert.NoError(t, err)

		_, err = db.Exec("DELETE FROM users WHERE id = $1", other.ID)
		assert.NoError(t, err)

		user, err := s.GetUserByToken(ctx, otherToken)
		assert.ErrorIs(t, err, ErrNotFound)
		assert.Nil(t, user)
	})
}
