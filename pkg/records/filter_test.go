package records

import (
	"testing"
	"time"

	"cloud.google.com/go/civil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyUnconstrainedIsIdentity(t *testing.T) {
	rows := sample()
	out := Apply(rows, FilterState{SearchFields: []string{"name"}, Equals: []FieldConstraint{{Field: "status", Value: All}}})

	assert.Equal(t, rows, out)
	assert.Empty(t, Apply([]row{}, FilterState{SearchTerm: "x"}))
	assert.NotNil(t, Apply[row](nil, FilterState{}))
}

func TestApplyPreservesOrderAndNeverGrows(t *testing.T) {
	rows := append(sample(), row{id: "3", fields: map[string]string{"name": "Asha K", "status": "new"}})
	states := []FilterState{
		{},
		{SearchTerm: "asha", SearchFields: []string{"name"}},
		{Equals: []FieldConstraint{{Field: "status", Value: "new"}}},
		{SearchTerm: "a", SearchFields: []string{"name"}, Equals: []FieldConstraint{{Field: "status", Value: "new"}}},
	}
	for _, s := range states {
		out := Apply(rows, s)
		assert.LessOrEqual(t, len(out), len(rows))
		last := -1
		for _, r := range out {
			idx := indexOf(rows, r.id)
			assert.Greater(t, idx, last)
			last = idx
		}
	}

	assert.Equal(t, []string{"1", "3"}, ids(Apply(rows, states[3])))
}

func TestApplyCombinesWithAnd(t *testing.T) {
	ist := time.FixedZone("IST", 19800)
	day := civil.Date{Year: 2025, Month: 3, Day: 10}
	state := FilterState{
		SearchTerm:   "a",
		SearchFields: []string{"name"},
		Date:         &day,
		Location:     ist,
	}

	assert.Equal(t, []string{"2"}, ids(Apply(sample(), state)))
}

func TestFilterStateReset(t *testing.T) {
	day := civil.Date{Year: 2025, Month: 3, Day: 10}
	s := FilterState{SearchTerm: "x", SearchFields: []string{"name"}, Date: &day}
	s = s.WithEquals("status", "new")
	assert.True(t, s.Constrained())

	s.Reset()

	assert.False(t, s.Constrained())
	assert.Equal(t, []string{"name"}, s.SearchFields)
}

func TestWithEqualsReplaces(t *testing.T) {
	s := FilterState{}.WithEquals("status", "new").WithEquals("course", "BBA").WithEquals("status", "closed")

	assert.Equal(t, []FieldConstraint{{Field: "course", Value: "BBA"}, {Field: "status", Value: "closed"}}, s.Equals)
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("")
	require.NoError(t, err)
	assert.Nil(t, d)

	d, err = ParseDate("2025-03-11")
	require.NoError(t, err)
	assert.Equal(t, civil.Date{Year: 2025, Month: 3, Day: 11}, *d)

	_, err = ParseDate("11/03/2025")
	assert.Error(t, err)
}

func indexOf(rows []row, id string) int {
	for i, r := range rows {
		if r.id == id {
			return i
		}
	}
	return -1
}
