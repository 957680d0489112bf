package repository

import (
	_ "embed"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/noah-isme/edu-advisor-api/internal/models"
)

//go:embed data/catalog.yaml
var catalogYAML []byte

// CatalogRepository serves the read-only college and course catalog.
type CatalogRepository struct {
	catalog models.Catalog
}

// NewCatalogRepository parses the embedded catalog.
func NewCatalogRepository() (*CatalogRepository, error) {
	return ParseCatalog(catalogYAML)
}

// ParseCatalog builds a repository from raw YAML.
func ParseCatalog(raw []byte) (*CatalogRepository, error) {
	var catalog models.Catalog
	if err := yaml.Unmarshal(raw, &catalog); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}
	seen := make(map[string]struct{}, len(catalog.Colleges)+len(catalog.Courses))
	for _, c := range catalog.Colleges {
		if c.ID == "" {
			return nil, fmt.Errorf("parse catalog: college %q has no id", c.Name)
		}
		if _, dup := seen["college:"+c.ID]; dup {
			return nil, fmt.Errorf("parse catalog: duplicate college id %q", c.ID)
		}
		seen["college:"+c.ID] = struct{}{}
	}
	for _, c := range catalog.Courses {
		if c.ID == "" {
			return nil, fmt.Errorf("parse catalog: course %q has no id", c.Name)
		}
		if _, dup := seen["course:"+c.ID]; dup {
			return nil, fmt.Errorf("parse catalog: duplicate course id %q", c.ID)
		}
		seen["course:"+c.ID] = struct{}{}
	}
	return &CatalogRepository{catalog: catalog}, nil
}

// Colleges returns every college in catalog order.
func (r *CatalogRepository) Colleges() []models.College {
	return append([]models.College(nil), r.catalog.Colleges...)
}

// Courses returns every course in catalog order.
func (r *CatalogRepository) Courses() []models.Course {
	return append([]models.Course(nil), r.catalog.Courses...)
}

// College finds a college by id or, failing that, by name ignoring case.
func (r *CatalogRepository) College(key string) (*models.College, bool) {
	for i := range r.catalog.Colleges {
		c := r.catalog.Colleges[i]
		if c.ID == key || strings.EqualFold(c.Name, key) {
			return &c, true
		}
	}
	return nil, false
}

// Course finds a course by id or, failing that, by name ignoring case.
func (r *CatalogRepository) Course(key string) (*models.Course, bool) {
	for i := range r.catalog.Courses {
		c := r.catalog.Courses[i]
		if c.ID == key || strings.EqualFold(c.Name, key) {
			return &c, true
		}
	}
	return nil, false
}
