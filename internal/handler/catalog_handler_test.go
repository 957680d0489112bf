package handler

import (
	"net/http"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/edu-advisor-api/internal/models"
	appErrors "github.com/noah-isme/edu-advisor-api/pkg/errors"
)

type catalogMock struct {
	colleges []models.College
	courses  []models.Course
}

func (m *catalogMock) Colleges() []models.College { return m.colleges }

func (m *catalogMock) Courses() []models.Course { return m.courses }

func (m *catalogMock) College(key string) (*models.College, error) {
	for i := range m.colleges {
		if m.colleges[i].ID == key || strings.EqualFold(m.colleges[i].Name, key) {
			return &m.colleges[i], nil
		}
	}
	return nil, appErrors.Clone(appErrors.ErrNotFound, "college not found")
}

func (m *catalogMock) Course(key string) (*models.Course, error) {
	for i := range m.courses {
		if m.courses[i].ID == key {
			return &m.courses[i], nil
		}
	}
	return nil, appErrors.Clone(appErrors.ErrNotFound, "course not found")
}

func newCatalogHandler() *CatalogHandler {
	return NewCatalogHandler(&catalogMock{
		colleges: []models.College{{ID: "christ", Name: "Christ University"}},
		courses:  []models.Course{{ID: "bca", Name: "BCA"}, {ID: "mba", Name: "MBA"}},
	})
}

func TestCatalogHandlerLists(t *testing.T) {
	handler := newCatalogHandler()

	c, w := newGinContext(http.MethodGet, "/api/colleges", nil)
	handler.Colleges(c)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decodeBody(t, w)["colleges"], 1)

	c, w = newGinContext(http.MethodGet, "/api/courses", nil)
	handler.Courses(c)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decodeBody(t, w)["courses"], 2)
}

func TestCatalogHandlerLookup(t *testing.T) {
	handler := newCatalogHandler()

	c, w := newGinContext(http.MethodGet, "/api/colleges/christ%20university", nil)
	c.Params = gin.Params{{Key: "id", Value: "christ university"}}
	handler.College(c)
	require.Equal(t, http.StatusOK, w.Code)

	c, w = newGinContext(http.MethodGet, "/api/courses/llb", nil)
	c.Params = gin.Params{{Key: "id", Value: "llb"}}
	handler.Course(c)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
