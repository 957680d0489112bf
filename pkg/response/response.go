package response

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	appErrors "github.com/noah-isme/edu-advisor-api/pkg/errors"
)

// ErrorBody is the failure contract: {success:false, detail, error}.
type ErrorBody struct {
	Success bool             `json:"success"`
	Detail  string           `json:"detail"`
	Error   *appErrors.Error `json:"error"`
}

// JSON sends a success response. Fields are merged next to "success": true.
func JSON(c *gin.Context, status int, fields gin.H) {
	c.Header("Cache-Control", "no-store")
	c.Header("Pragma", "no-cache")
	body := gin.H{"success": true}
	for k, v := range fields {
		if k == "success" {
			continue
		}
		body[k] = v
	}
	c.JSON(status, body)
}

// OK responds with HTTP 200.
func OK(c *gin.Context, fields gin.H) {
	JSON(c, http.StatusOK, fields)
}

// Created responds with HTTP 201 Created.
func Created(c *gin.Context, fields gin.H) {
	JSON(c, http.StatusCreated, fields)
}

// Accepted responds with HTTP 202 Accepted.
func Accepted(c *gin.Context, fields gin.H) {
	JSON(c, http.StatusAccepted, fields)
}

// Error sends an error response converting the error to the common structure.
func Error(c *gin.Context, err error) {
	appErr := appErrors.FromError(err)
	c.Header("Cache-Control", "no-store")
	c.Header("Pragma", "no-cache")
	if appErr.Status == http.StatusInternalServerError {
		_ = c.Error(err)
	}
	if appErr.RetryAfter > 0 {
		secs := int((appErr.RetryAfter + time.Second - 1) / time.Second)
		c.Header("Retry-After", strconv.Itoa(secs))
	}
	c.JSON(appErr.Status, ErrorBody{Success: false, Detail: appErr.Message, Error: appErr})
}

// Attachment streams a rendered file with a download filename.
func Attachment(c *gin.Context, filename, contentType string, data []byte) {
	c.Header("Cache-Control", "no-store")
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, contentType, data)
}

// NoContent sends a 204 response.
func NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}
