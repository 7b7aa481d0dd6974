package userservice

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/quillhub/quillhub/internal/common"
)

var (
	ErrAuthenticationFailure = fmt.Errorf("invalid email or password")
)

func NewUserService(db *sql.DB, cache *common.Cache, secret string, tokenTime time.Duration) *UserService {
	if tokenTime <= 0 {
		tokenTime = DefaultTokenTime
	}

	return &UserService{
		m:         newUserModel(db),
		c:         cache,
		secret:    secret,
		tokenTime: tokenTime,
	}
}

// CreateUser registers a new user account and returns the user together with a
// signed bearer token. The plaintext password is hashed before it reaches the
// database and is never stored or logged.
func (s *UserService) CreateUser(ctx context.Context, firstName, lastName, email, password string) (*User, string, error) {
	v := common.NewValidator()
	validateName(v, firstName, "first_name")
	validateName(v, lastName, "last_name")
	validateEmail(v, email)
	validatePassword(v, password)
	if !v.Valid() {
		return nil, "", v.ValidationError()
	}

	u := User{
		FirstName: firstName,
		LastName:  lastName,
		Email:     email,
	}

	err := u.Password.set(password)
	if err != nil {
		return nil, "", err
	}

	err = s.m.insertUser(ctx, &u)
	if err != nil {
		return nil, "", err
	}

	token, err := newToken(u.ID, s.secret, s.tokenTime)
	if err != nil {
		return nil, "", err
	}

	return &u, token, nil
}

// LoginUser authenticates a user by email and password and returns a fresh
// bearer token. Unknown email and wrong password fail identically.
func (s *UserService) LoginUser(ctx context.Context, email, password string) (*User, string, error) {
	v := common.NewValidator()
	validateEmail(v, email)
	v.Check(password != "", "password", "must be provided")
	if !v.Valid() {
		return nil, "", v.ValidationError()
	}

	user, err := s.m.getUserByEmail(ctx, email)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			return nil, "", ErrAuthenticationFailure
		default:
			return nil, "", err
		}
	}

	ok, err := user.Password.compare(password)
	if err != nil {
		return nil, "", err
	}

	if !ok {
		return nil, "", ErrAuthenticationFailure
	}

	token, err := newToken(user.ID, s.secret, s.tokenTime)
	if err != nil {
		return nil, "", err
	}

	return user, token, nil
}

// GetUserByToken verifies a bearer token and resolves the user it identifies.
// Lookups are cached briefly since users are immutable except for passwords,
// which are not part of the resolved identity.
func (s *UserService) GetUserByToken(ctx context.Context, token string) (*User, error) {
	id, err := verifyToken(token, s.secret)
	if err != nil {
		return nil, err
	}

	key := common.CacheKeyUserById(id)
	if cached, ok := s.c.Get(key); ok {
		if user, ok := cached.(*User); ok {
			return user, nil
		}
	}

	user, err := s.m.getUserById(ctx, id)
	if err != nil {
		return nil, err
	}

	s.c.Set(key, user, userCacheTime)

	return user, nil
}

func (u *User) IsAnonymous() bool {
	return u == &AnonymousUser
}
