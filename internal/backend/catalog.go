package backend

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/tadarrab/storefront/internal/domain"
)

// ListCourses fetches the full catalog. Read-only; used to populate item
// display fields.
func (c *Client) ListCourses(ctx context.Context) ([]domain.Course, error) {
	var out []domain.Course
	if err := c.call(ctx, http.MethodGet, "/courses", nil, &out); err != nil {
		return nil, fmt.Errorf("list courses: %w", err)
	}
	return out, nil
}

// GetCourseBySlug fetches one course by its URL slug.
func (c *Client) GetCourseBySlug(ctx context.Context, slug string) (*domain.Course, error) {
	var out domain.Course
	if err := c.call(ctx, http.MethodGet, "/courses/"+url.PathEscape(slug), nil, &out); err != nil {
		return nil, fmt.Errorf("get course %s: %w", slug, err)
	}
	return &out, nil
}

// ListCourseSessions fetches the scheduled sessions of a live course.
func (c *Client) ListCourseSessions(ctx context.Context, courseID string) ([]domain.Session, error) {
	var out []domain.Session
	path := "/courses/" + url.PathEscape(courseID) + "/sessions"
	if err := c.call(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, fmt.Errorf("list course sessions: %w", err)
	}
	return out, nil
}
