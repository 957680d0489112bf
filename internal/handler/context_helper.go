package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/edu-advisor-api/internal/middleware"
	"github.com/noah-isme/edu-advisor-api/internal/models"
	appErrors "github.com/noah-isme/edu-advisor-api/pkg/errors"
)

func claimsFromContext(c *gin.Context) *models.JWTClaims {
	value, exists := c.Get(middleware.ContextUserKey)
	if !exists {
		return nil
	}
	claims, ok := value.(*models.JWTClaims)
	if !ok {
		return nil
	}
	return claims
}

func invalidPayload(err error, msg string) error {
	return appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, msg)
}

// consultantTarget is the consultant a consultant-scoped route acts on. The
// RBAC middleware has already checked it against the caller.
func consultantTarget(c *gin.Context) (string, error) {
	id := middleware.TargetConsultant(c)
	if id == "" {
		return "", appErrors.Clone(appErrors.ErrValidation, "consultant_id is required")
	}
	return id, nil
}

// bindQueryOrJSON accepts the original query-string encoding and, when the
// request carries a JSON body, lets the body override it.
func bindQueryOrJSON(c *gin.Context, dest interface{}) error {
	if err := c.ShouldBindQuery(dest); err != nil {
		return err
	}
	if c.Request.ContentLength != 0 && c.ContentType() == gin.MIMEJSON {
		return c.ShouldBindJSON(dest)
	}
	return nil
}
