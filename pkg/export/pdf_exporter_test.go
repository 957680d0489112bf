package export

import (
	"bytes"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPDFRenderProducesDocument(t *testing.T) {
	data := reportDataset()
	for i := 0; i < 60; i++ {
		data.Rows = append(data.Rows, []string{fmt.Sprintf("Student %d", i), "90000", "a fairly long remark that needs trimming to fit inside the column"})
	}

	out, err := NewPDFExporter("").Render(data)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF-")))
}

func TestPDFRenderRequiresHeaders(t *testing.T) {
	_, err := NewPDFExporter("x").Render(Dataset{})
	assert.Error(t, err)
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 50))
	assert.Equal(t, "abcdefg...", truncate("abcdefghijklmnop", 17))
}
