package blogservice

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/quillhub/quillhub/internal/common"
)

var ErrNotOwner = errors.New("not the blog owner")

// sortColumns is the allow-list of sort keys for the published listing.
// Unrecognized keys fall back to creation time rather than failing the query.
var sortColumns = map[string]string{
	"read_count":   "read_count",
	"reading_time": "reading_time",
	"timestamp":    "created_at",
}

const defaultPageSize = 20

func NewBlogService(db *sql.DB) *BlogService {
	return &BlogService{m: newBlogModel(db)}
}

type CreateBlogRequest struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Tags        []string `json:"tags"`
	Body        string   `json:"body"`
	UserID      int      `json:"user_id"`
}

// CreateBlog creates a new blog in the draft state with a server-derived
// reading time. The title-uniqueness check and the insert are not atomic; a
// concurrent create with the same title can pass the check and is then caught
// by the unique index instead.
func (s *BlogService) CreateBlog(ctx context.Context, req *CreateBlogRequest) (*Blog, error) {
	title := strings.TrimSpace(req.Title)
	body := strings.TrimSpace(req.Body)

	v := common.NewValidator()
	validateTitle(v, title)
	validateBody(v, body)
	validateInt(v, req.UserID, "user_id")
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	exists, err := s.m.titleExists(ctx, title)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrDuplicateTitle
	}

	body = sanitizeMarkdown(body)

	blog := &Blog{
		Title:       title,
		Description: strings.TrimSpace(req.Description),
		Tags:        req.Tags,
		Body:        body,
		ReadingTime: readingTime(body),
		UserID:      req.UserID,
	}

	if blog.Tags == nil {
		blog.Tags = []string{}
	}

	err = s.m.insert(ctx, blog)
	if err != nil {
		return nil, err
	}

	return blog, nil
}

type UpdateBlogRequest struct {
	Title       *string  `json:"title"`
	Description *string  `json:"description"`
	Tags        []string `json:"tags"`
	Body        *string  `json:"body"`
}

// UpdateBlog applies the provided subset of mutable fields to a blog. Only the
// author may update, in either state. A body change recomputes the reading
// time; reading time and read count are never writable directly.
func (s *BlogService) UpdateBlog(ctx context.Context, blogId, userId int, req *UpdateBlogRequest) (*Blog, error) {
	v := common.NewValidator()
	validateInt(v, blogId, "id")
	validateInt(v, userId, "user_id")
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	blog, err := s.m.getBlogById(ctx, blogId)
	if err != nil {
		return nil, err
	}

	if blog.UserID != userId {
		return nil, ErrNotOwner
	}

	if req.Title != nil {
		title := strings.TrimSpace(*req.Title)
		validateTitle(v, title)
		blog.Title = title
	}

	if req.Description != nil {
		blog.Description = strings.TrimSpace(*req.Description)
	}

	if req.Tags != nil {
		blog.Tags = req.Tags
	}

	if req.Body != nil {
		body := strings.TrimSpace(*req.Body)
		validateBody(v, body)
		body = sanitizeMarkdown(body)
		blog.Body = body
		blog.ReadingTime = readingTime(body)
	}

	if !v.Valid() {
		return nil, v.ValidationError()
	}

	err = s.m.updateBlog(ctx, blog)
	if err != nil {
		return nil, err
	}

	return blog, nil
}

// PublishBlog transitions a draft to the published state. Publishing an
// already-published blog is a no-op success.
func (s *BlogService) PublishBlog(ctx context.Context, blogId, userId int) (*Blog, error) {
	v := common.NewValidator()
	validateInt(v, blogId, "id")
	validateInt(v, userId, "user_id")
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	blog, err := s.m.getBlogById(ctx, blogId)
	if err != nil {
		return nil, err
	}

	if blog.UserID != userId {
		return nil, ErrNotOwner
	}

	if blog.State == StatePublished {
		return blog, nil
	}

	err = s.m.publishBlog(ctx, blog)
	if err != nil {
		return nil, err
	}

	return blog, nil
}

// DeleteBlog permanently removes a blog in any state. Only the author may
// delete.
func (s *BlogService) DeleteBlog(ctx context.Context, blogId, userId int) error {
	v := common.NewValidator()
	validateInt(v, blogId, "id")
	validateInt(v, userId, "user_id")
	if !v.Valid() {
		return v.ValidationError()
	}

	blog, err := s.m.getBlogById(ctx, blogId)
	if err != nil {
		return err
	}

	if blog.UserID != userId {
		return ErrNotOwner
	}

	return s.m.deleteBlog(ctx, blogId, userId)
}

// GetPublishedBlog returns a single published blog with author fields resolved
// and its read count incremented. Drafts and missing blogs both report
// ErrRecordNotFound.
func (s *BlogService) GetPublishedBlog(ctx context.Context, id int) (*Blog, error) {
	v := common.NewValidator()
	validateInt(v, id, "id")
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	return s.m.getPublishedBlogById(ctx, id)
}

// GetBlogsByUserId returns all blogs owned by a user regardless of state,
// newest first.
func (s *BlogService) GetBlogsByUserId(ctx context.Context, userId int) ([]Blog, error) {
	v := common.NewValidator()
	validateInt(v, userId, "user_id")
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	return s.m.getBlogsByUserId(ctx, userId)
}

// GetPublishedBlogs lists published blogs matching the filter. Pagination is
// 1-indexed; pages past the end yield an empty result.
func (s *BlogService) GetPublishedBlogs(ctx context.Context, f Filter, sortBy string, page, limit int) ([]Blog, error) {
	if page < 1 {
		page = 1
	}

	if limit < 1 {
		limit = defaultPageSize
	}

	column, ok := sortColumns[sortBy]
	if !ok {
		column = "created_at"
	}

	return s.m.getPublishedBlogs(ctx, f, column, limit, (page-1)*limit)
}
