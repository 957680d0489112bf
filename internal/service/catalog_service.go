package service

import (
	"github.com/noah-isme/edu-advisor-api/internal/models"
	appErrors "github.com/noah-isme/edu-advisor-api/pkg/errors"
)

type catalogSource interface {
	Colleges() []models.College
	Courses() []models.Course
	College(key string) (*models.College, bool)
	Course(key string) (*models.Course, bool)
}

// CatalogService serves the read-only college and course catalog.
type CatalogService struct {
	source catalogSource
}

// NewCatalogService constructs the service.
func NewCatalogService(source catalogSource) *CatalogService {
	return &CatalogService{source: source}
}

func (s *CatalogService) Colleges() []models.College { return s.source.Colleges() }

func (s *CatalogService) Courses() []models.Course { return s.source.Courses() }

// College resolves a college by id or name.
func (s *CatalogService) College(key string) (*models.College, error) {
	c, ok := s.source.College(key)
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "college not found")
	}
	return c, nil
}

// Course resolves a course by id or name.
func (s *CatalogService) Course(key string) (*models.Course, error) {
	c, ok := s.source.Course(key)
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "course not found")
	}
	return c, nil
}
