package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/noah-isme/edu-advisor-api/internal/models"
	"github.com/noah-isme/edu-advisor-api/pkg/response"
)

type catalogService interface {
	Colleges() []models.College
	Courses() []models.Course
	College(key string) (*models.College, error)
	Course(key string) (*models.Course, error)
}

// CatalogHandler serves the read-only college and course catalog.
type CatalogHandler struct {
	catalog catalogService
}

// NewCatalogHandler constructs the handler.
func NewCatalogHandler(catalog catalogService) *CatalogHandler {
	return &CatalogHandler{catalog: catalog}
}

// Colleges godoc
// @Summary List colleges
// @Tags Catalog
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /colleges [get]
func (h *CatalogHandler) Colleges(c *gin.Context) {
	response.OK(c, gin.H{"colleges": h.catalog.Colleges()})
}

// College godoc
// @Summary Get a college by id or name
// @Tags Catalog
// @Produce json
// @Param id path string true "College id or name"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} response.ErrorBody
// @Router /colleges/{id} [get]
func (h *CatalogHandler) College(c *gin.Context) {
	college, err := h.catalog.College(c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, gin.H{"college": college})
}

// Courses godoc
// @Summary List courses
// @Tags Catalog
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /courses [get]
func (h *CatalogHandler) Courses(c *gin.Context) {
	response.OK(c, gin.H{"courses": h.catalog.Courses()})
}

// Course godoc
// @Summary Get a course by id or name
// @Tags Catalog
// @Produce json
// @Param id path string true "Course id or name"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} response.ErrorBody
// @Router /courses/{id} [get]
func (h *CatalogHandler) Course(c *gin.Context) {
	course, err := h.catalog.Course(c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, gin.H{"course": course})
}
