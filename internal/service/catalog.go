package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/tadarrab/storefront/internal/backend"
	"github.com/tadarrab/storefront/internal/domain"
)

// CatalogService reads catalog data used to populate cart and wishlist
// display fields. Read-only passthrough.
type CatalogService struct {
	backend *backend.Client
	logger  *slog.Logger
}

func NewCatalogService(bc *backend.Client, logger *slog.Logger) *CatalogService {
	return &CatalogService{backend: bc, logger: logger}
}

func (s *CatalogService) ListCourses(ctx context.Context) ([]domain.Course, error) {
	courses, err := s.backend.ListCourses(ctx)
	if err != nil {
		return nil, fmt.Errorf("list courses: %w", err)
	}
	return courses, nil
}

func (s *CatalogService) GetCourse(ctx context.Context, slug string) (*domain.Course, error) {
	course, err := s.backend.GetCourseBySlug(ctx, slug)
	if err != nil {
		return nil, fmt.Errorf("get course: %w", err)
	}
	return course, nil
}

func (s *CatalogService) ListSessions(ctx context.Context, courseID string) ([]domain.Session, error) {
	sessions, err := s.backend.ListCourseSessions(ctx, courseID)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	return sessions, nil
}
