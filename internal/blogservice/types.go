package blogservice

import (
	"database/sql"
	"time"
)

type BlogState string

const (
	StateDraft     BlogState = "draft"
	StatePublished BlogState = "published"
)

// Author carries the display fields of the owning user, resolved on read
// paths only.
type Author struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
}

type Blog struct {
	ID          int       `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Tags        []string  `json:"tags"`
	// Body is stored in Markdown format.
	Body        string    `json:"body"`
	State       BlogState `json:"state"`
	ReadingTime int       `json:"reading_time"`
	ReadCount   int       `json:"read_count"`
	UserID      int       `json:"user_id"`
	Author      *Author   `json:"author,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
	Version     int       `json:"version"`
}

// Filter narrows the published-blog listing. Zero values mean "no filter".
type Filter struct {
	AuthorID int
	Title    string
	Tags     []string
}

type BlogModel struct {
	db *sql.DB
}

type BlogService struct {
	m *BlogModel
}
