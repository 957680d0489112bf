package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/edu-advisor-api/internal/repository"
	appErrors "github.com/noah-isme/edu-advisor-api/pkg/errors"
)

func TestCatalogServiceLookups(t *testing.T) {
	repo, err := repository.NewCatalogRepository()
	require.NoError(t, err)
	svc := NewCatalogService(repo)

	colleges := svc.Colleges()
	require.NotEmpty(t, colleges)
	c, err := svc.College(colleges[0].ID)
	require.NoError(t, err)
	assert.Equal(t, colleges[0].Name, c.Name)

	courses := svc.Courses()
	require.NotEmpty(t, courses)
	course, err := svc.Course(courses[0].Name)
	require.NoError(t, err)
	assert.Equal(t, courses[0].ID, course.ID)

	_, err = svc.College("no-such-college")
	assert.True(t, appErrors.Is(err, appErrors.ErrNotFound))
	_, err = svc.Course("no-such-course")
	assert.True(t, appErrors.Is(err, appErrors.ErrNotFound))
}
