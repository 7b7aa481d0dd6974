package userservice

import (
	"database/sql"
	"time"

	"github.com/quillhub/quillhub/internal/common"
)

const (
	// DefaultTokenTime is used when no token lifetime is configured.
	DefaultTokenTime time.Duration = 1 * time.Hour

	userCacheTime time.Duration = 5 * time.Minute
)

var (
	AnonymousUser = User{}
)

type UserService struct {
	m         *DBModel
	c         *common.Cache
	secret    string
	tokenTime time.Duration
}

type DBModel struct {
	db *sql.DB
}

type User struct {
	ID        int       `json:"id"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Email     string    `json:"email"`
	Password  Password  `json:"-"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Password struct {
	Plain string `json:"-"`
	hash  []byte `json:"-"`
}
