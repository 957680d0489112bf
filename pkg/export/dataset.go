package export

import (
	"fmt"
	"time"
)

// Dataset defines tabular export content. Rows are aligned with Headers.
type Dataset struct {
	Name    string
	Headers []string
	Rows    [][]string
}

// Filename returns "<dataset>-<YYYY-MM-DD>.<ext>" using the UTC date of at.
func Filename(dataset, ext string, at time.Time) string {
	return fmt.Sprintf("%s-%s.%s", dataset, at.UTC().Format(time.DateOnly), ext)
}

// Renderer turns a dataset into file bytes.
type Renderer interface {
	Render(data Dataset) ([]byte, error)
	ContentType() string
	Extension() string
}
