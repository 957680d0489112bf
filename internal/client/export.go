package client

import (
	"time"

	"github.com/noah-isme/edu-advisor-api/internal/models"
	"github.com/noah-isme/edu-advisor-api/pkg/export"
	"github.com/noah-isme/edu-advisor-api/pkg/records"
)

// File is a rendered export ready to be written to disk.
type File struct {
	Name        string
	ContentType string
	Rows        int
	Data        []byte
}

// QueryColumns is the enquiry export layout over the dashboard's view rows.
func QueryColumns(f *records.TimestampFormatter) []records.Column[models.QueryView] {
	return records.Adapt(models.QueryColumns(f), func(v models.QueryView) models.StudentQuery {
		return v.StudentQuery
	})
}

// Export renders the store's current filtered view. An empty view still
// yields a header-only file.
func Export[R records.Record](store *records.Store[R], dataset string, cols []records.Column[R], r export.Renderer, now time.Time) (*File, error) {
	view := store.View()
	data, err := r.Render(records.Project(dataset, view, cols))
	if err != nil {
		return nil, err
	}
	return &File{
		Name:        export.Filename(dataset, r.Extension(), now),
		ContentType: r.ContentType(),
		Rows:        len(view),
		Data:        data,
	}, nil
}
