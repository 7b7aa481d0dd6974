package blogservice

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"
)

var (
	ErrRecordNotFound = errors.New("record not found")
	ErrDuplicateTitle = errors.New("duplicate title")
	ErrUserForeignKey = errors.New("user_id does not exist")
)

func newBlogModel(db *sql.DB) *BlogModel {
	return &BlogModel{db: db}
}

// ForeignKeyError is a helper function to check if the error is a foreign key
// constraint error.
func ForeignKeyError(err error, name string) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		if pqErr.Code == "23503" && pqErr.Constraint == name {
			return true
		}
	}

	return false
}

// UniqueViolationError is a helper function to check if the error is a unique
// constraint error.
func UniqueViolationError(err error, name string) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		if pqErr.Code == "23505" && pqErr.Constraint == name {
			return true
		}
	}

	return false
}

func (m *BlogModel) insert(ctx context.Context, blog *Blog) error {
	query := `
		INSERT INTO blogs (title, description, tags, body, reading_time, user_id)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, state, read_count, created_at, updated_at, version`

	args := []any{
		blog.Title,
		blog.Description,
		pq.Array(blog.Tags),
		blog.Body,
		blog.ReadingTime,
		blog.UserID,
	}

	err := m.db.QueryRowContext(ctx, query, args...).Scan(&blog.ID, &blog.State, &blog.ReadCount, &blog.CreatedAt, &blog.UpdatedAt, &blog.Version)
	if err != nil {
		switch {
		case UniqueViolationError(err, "blogs_title_key"):
			return ErrDuplicateTitle
		case ForeignKeyError(err, "blogs_user_id_fkey"):
			return ErrUserForeignKey
		default:
			return err
		}
	}

	return nil
}

func (m *BlogModel) titleExists(ctx context.Context, title string) (bool, error) {
	query := `
		SELECT EXISTS (SELECT 1 FROM blogs WHERE title = $1)`

	var exists bool
	err := m.db.QueryRowContext(ctx, query, title).Scan(&exists)
	if err != nil {
		return false, err
	}

	return exists, nil
}

// getBlogById returns a blog in any state without resolving author fields. It
// backs the owner checks on the mutating operations.
func (m *BlogModel) getBlogById(ctx context.Context, id int) (*Blog, error) {
	query := `
		SELECT id, title, description, tags, body, state, reading_time, read_count, user_id, created_at, updated_at, version
		FROM blogs
		WHERE id = $1`

	var blog Blog
	err := m.db.QueryRowContext(ctx, query, id).Scan(&blog.ID, &blog.Title, &blog.Description, pq.Array(&blog.Tags), &blog.Body, &blog.State, &blog.ReadingTime, &blog.ReadCount, &blog.UserID, &blog.CreatedAt, &blog.UpdatedAt, &blog.Version)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, ErrRecordNotFound
		default:
			return nil, err
		}
	}

	return &blog, nil
}

// getPublishedBlogById fetches a published blog and increments its read count
// in the same statement, so the counter is persisted before the caller sees
// the row. Draft blogs are indistinguishable from absent ones.
func (m *BlogModel) getPublishedBlogById(ctx context.Context, id int) (*Blog, error) {
	query := `
		UPDATE blogs b
		SET read_count = read_count + 1
		FROM users u
		WHERE b.id = $1 AND b.state = 'published' AND u.id = b.user_id
		RETURNING b.id, b.title, b.description, b.tags, b.body, b.state, b.reading_time, b.read_count, b.user_id, b.created_at, b.updated_at, b.version, u.first_name, u.last_name, u.email`

	var blog Blog
	var author Author

	err := m.db.QueryRowContext(ctx, query, id).Scan(&blog.ID, &blog.Title, &blog.Description, pq.Array(&blog.Tags), &blog.Body, &blog.State, &blog.ReadingTime, &blog.ReadCount, &blog.UserID, &blog.CreatedAt, &blog.UpdatedAt, &blog.Version, &author.FirstName, &author.LastName, &author.Email)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, ErrRecordNotFound
		default:
			return nil, err
		}
	}

	blog.Author = &author

	return &blog, nil
}

func (m *BlogModel) updateBlog(ctx context.Context, blog *Blog) error {
	query := `
		UPDATE blogs
		SET title = $1, description = $2, tags = $3, body = $4, reading_time = $5, updated_at = now(), version = version + 1
		WHERE id = $6 AND user_id = $7 AND version = $8
		RETURNING state, read_count, created_at, updated_at, version`

	args := []any{
		blog.Title,
		blog.Description,
		pq.Array(blog.Tags),
		blog.Body,
		blog.ReadingTime,
		blog.ID,
		blog.UserID,
		blog.Version,
	}

	err := m.db.QueryRowContext(ctx, query, args...).Scan(&blog.State, &blog.ReadCount, &blog.CreatedAt, &blog.UpdatedAt, &blog.Version)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return ErrRecordNotFound
		case UniqueViolationError(err, "blogs_title_key"):
			return ErrDuplicateTitle
		default:
			return err
		}
	}

	return nil
}

// publishBlog flips a blog to the published state. The transition is one-way;
// there is no statement that moves a blog back to draft.
func (m *BlogModel) publishBlog(ctx context.Context, blog *Blog) error {
	query := `
		UPDATE blogs
		SET state = 'published', updated_at = now(), version = version + 1
		WHERE id = $1 AND user_id = $2 AND version = $3
		RETURNING state, updated_at, version`

	err := m.db.QueryRowContext(ctx, query, blog.ID, blog.UserID, blog.Version).Scan(&blog.State, &blog.UpdatedAt, &blog.Version)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return ErrRecordNotFound
		default:
			return err
		}
	}

	return nil
}

func (m *BlogModel) deleteBlog(ctx context.Context, blogId, userId int) error {
	query := `
		DELETE FROM blogs
		WHERE id = $1 AND user_id = $2`

	res, err := m.db.ExecContext(ctx, query, blogId, userId)
	if err != nil {
		return err
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}

	if rows != 1 {
		switch {
		case rows == 0:
			return ErrRecordNotFound
		default:
			return fmt.Errorf("expected 1 row to be affected, got %d", rows)
		}
	}

	return nil
}

// getBlogsByUserId returns all blogs of a user regardless of state, newest
// first. No blogs is an empty result, not an error.
func (m *BlogModel) getBlogsByUserId(ctx context.Context, userID int) ([]Blog, error) {
	query := `
		SELECT id, title, description, tags, body, state, reading_time, read_count, user_id, created_at, updated_at, version
		FROM blogs
		WHERE user_id = $1
		ORDER BY created_at DESC`

	rows, err := m.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	blogs := []Blog{}
	for rows.Next() {
		var blog Blog
		err := rows.Scan(&blog.ID, &blog.Title, &blog.Description, pq.Array(&blog.Tags), &blog.Body, &blog.State, &blog.ReadingTime, &blog.ReadCount, &blog.UserID, &blog.CreatedAt, &blog.UpdatedAt, &blog.Version)
		if err != nil {
			return nil, err
		}
		blogs = append(blogs, blog)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return blogs, nil
}

// getPublishedBlogs lists published blogs with author fields resolved,
// AND-composing the filters that are set. sortColumn must come from the
// service's allow-list since it is interpolated into the query.
func (m *BlogModel) getPublishedBlogs(ctx context.Context, f Filter, sortColumn string, limit, offset int) ([]Blog, error) {
	query := `
		SELECT b.id, b.title, b.description, b.tags, b.body, b.state, b.reading_time, b.read_count, b.user_id, b.created_at, b.updated_at, b.version, u.first_name, u.last_name, u.email
		FROM blogs b
		JOIN users u ON u.id = b.user_id
		WHERE b.state = 'published'`

	var args []any

	if f.AuthorID > 0 {
		args = append(args, f.AuthorID)
		query += fmt.Sprintf(" AND b.user_id = $%d", len(args))
	}

	if f.Title != "" {
		args = append(args, f.Title)
		query += fmt.Sprintf(" AND b.title ILIKE '%%' || $%d || '%%'", len(args))
	}

	if len(f.Tags) > 0 {
		args = append(args, pq.Array(f.Tags))
		query += fmt.Sprintf(" AND b.tags && $%d", len(args))
	}

	args = append(args, limit, offset)
	query += fmt.Sprintf(" ORDER BY b.%s DESC LIMIT $%d OFFSET $%d", sortColumn, len(args)-1, len(args))

	rows, err := m.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	blogs := []Blog{}
	for rows.Next() {
		var blog Blog
		var author Author
		err := rows.Scan(&blog.ID, &blog.Title, &blog.Description, pq.Array(&blog.Tags), &blog.Body, &blog.State, &blog.ReadingTime, &blog.ReadCount, &blog.UserID, &blog.CreatedAt, &blog.UpdatedAt, &blog.Version, &author.FirstName, &author.LastName, &author.Email)
		if err != nil {
			return nil, err
		}
		blog.Author = &author
		blogs = append(blogs, blog)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return blogs, nil
}
