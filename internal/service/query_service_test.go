package service

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/noah-isme/edu-advisor-api/internal/dto"
	"github.com/noah-isme/edu-advisor-api/internal/models"
	appErrors "github.com/noah-isme/edu-advisor-api/pkg/errors"
	"github.com/noah-isme/edu-advisor-api/pkg/records"
)

type mockQueryRepo struct {
	rows      []models.StudentQuery
	created   []models.StudentQuery
	statusSet map[string]models.QueryStatus
	listLimit int
}

func (m *mockQueryRepo) List(ctx context.Context, limit int) ([]models.StudentQuery, error) {
	m.listLimit = limit
	return m.rows, nil
}

func (m *mockQueryRepo) FindByID(ctx context.Context, id string) (*models.StudentQuery, error) {
	for _, q := range m.rows {
		if q.ID == id {
			copy := q
			return &copy, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (m *mockQueryRepo) Create(ctx context.Context, q *models.StudentQuery) error {
	q.ID = "q-new"
	q.CreatedAt = time.Now().UTC()
	m.created = append(m.created, *q)
	return nil
}

func (m *mockQueryRepo) UpdateStatus(ctx context.Context, id string, status models.QueryStatus) error {
	if m.statusSet == nil {
		m.statusSet = make(map[string]models.QueryStatus)
	}
	m.statusSet[id] = status
	return nil
}

func (m *mockQueryRepo) Delete(ctx context.Context, id string) error {
	if _, err := m.FindByID(ctx, id); err != nil {
		return err
	}
	return nil
}

func sampleQueries() []models.StudentQuery {
	return []models.StudentQuery{
		{ID: "1", Name: "Aarav Mehta", Email: "aarav@example.com", Phone: "+919812345678", Course: "B.Tech CSE", Status: models.QueryStatusNew,
			CreatedAt: time.Date(2025, 3, 14, 20, 0, 0, 0, time.UTC)},
		{ID: "2", Name: "Diya Patel", Email: "diya@example.com", Phone: "+919876500000", Course: "MBBS", Status: models.QueryStatusContacted,
			CreatedAt: time.Date(2025, 3, 14, 10, 0, 0, 0, time.UTC)},
		{ID: "3", Name: "Kabir Rao", Email: "kabir@example.com", Phone: "+919800011111", Course: "BBA", Status: models.QueryStatusClosed,
			CreatedAt: time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)},
	}
}

func newTestQueryService(repo *mockQueryRepo) *QueryService {
	svc := NewQueryService(repo, nil, records.IST(), 24*time.Hour, zap.NewNop())
	svc.now = func() time.Time { return time.Date(2025, 3, 15, 6, 0, 0, 0, time.UTC) }
	return svc
}

func TestQueryServiceSubmitNormalisesPhone(t *testing.T) {
	repo := &mockQueryRepo{}
	svc := newTestQueryService(repo)

	q, err := svc.Submit(context.Background(), dto.CreateQueryRequest{
		Name:   "  Aarav Mehta ",
		Phone:  "098123 45678",
		Email:  "aarav@example.com",
		Course: "B.Tech CSE",
	})
	require.NoError(t, err)
	assert.Equal(t, "q-new", q.ID)
	assert.Equal(t, "Aarav Mehta", q.Name)
	assert.Equal(t, "+919812345678", q.Phone)
	assert.Equal(t, models.QueryStatusNew, q.Status)
}

func TestQueryServiceSubmitValidation(t *testing.T) {
	svc := newTestQueryService(&mockQueryRepo{})

	_, err := svc.Submit(context.Background(), dto.CreateQueryRequest{Name: "A", Phone: "1", Email: "not-an-email", Course: "X"})
	assert.True(t, appErrors.Is(err, appErrors.ErrValidation))
}

func TestQueryServiceListFilters(t *testing.T) {
	repo := &mockQueryRepo{rows: sampleQueries()}
	svc := newTestQueryService(repo)
	ctx := context.Background()

	all, err := svc.List(ctx, dto.QueryListFilter{Status: "all"})
	require.NoError(t, err)
	assert.Len(t, all, 3)
	assert.Equal(t, serverRowLimit, repo.listLimit)
	assert.True(t, all[0].IsNew)
	assert.False(t, all[2].IsNew)
	assert.Equal(t, "15 Mar 2025, 01:30 AM", all[0].CreatedAtDisplay)

	// 20:00 UTC on 14 March is 15 March in IST.
	byDate, err := svc.List(ctx, dto.QueryListFilter{Date: "2025-03-15"})
	require.NoError(t, err)
	require.Len(t, byDate, 1)
	assert.Equal(t, "1", byDate[0].ID)

	bySearch, err := svc.List(ctx, dto.QueryListFilter{Search: "MBBS"})
	require.NoError(t, err)
	require.Len(t, bySearch, 1)
	assert.Equal(t, "2", bySearch[0].ID)

	byStatus, err := svc.List(ctx, dto.QueryListFilter{Status: "closed"})
	require.NoError(t, err)
	require.Len(t, byStatus, 1)
	assert.Equal(t, "3", byStatus[0].ID)

	_, err = svc.List(ctx, dto.QueryListFilter{Status: "archived"})
	assert.True(t, appErrors.Is(err, appErrors.ErrValidation))

	_, err = svc.List(ctx, dto.QueryListFilter{Date: "15/03/2025"})
	assert.True(t, appErrors.Is(err, appErrors.ErrValidation))
}

func TestQueryServiceUpdateStatus(t *testing.T) {
	repo := &mockQueryRepo{rows: sampleQueries()}
	svc := newTestQueryService(repo)
	ctx := context.Background()

	view, err := svc.UpdateStatus(ctx, "1", dto.UpdateQueryStatusRequest{Status: models.QueryStatusContacted})
	require.NoError(t, err)
	assert.Equal(t, models.QueryStatusContacted, view.Status)
	assert.Equal(t, models.QueryStatusContacted, repo.statusSet["1"])

	_, err = svc.UpdateStatus(ctx, "3", dto.UpdateQueryStatusRequest{Status: models.QueryStatusNew})
	assert.True(t, appErrors.Is(err, appErrors.ErrConflict))

	_, err = svc.UpdateStatus(ctx, "3", dto.UpdateQueryStatusRequest{Status: models.QueryStatusContacted})
	assert.NoError(t, err)

	_, err = svc.UpdateStatus(ctx, "missing", dto.UpdateQueryStatusRequest{Status: models.QueryStatusClosed})
	assert.True(t, appErrors.Is(err, appErrors.ErrNotFound))

	_, err = svc.UpdateStatus(ctx, "1", dto.UpdateQueryStatusRequest{Status: "pending"})
	assert.True(t, appErrors.Is(err, appErrors.ErrValidation))
}

func TestQueryServiceGetAndDelete(t *testing.T) {
	svc := newTestQueryService(&mockQueryRepo{rows: sampleQueries()})
	ctx := context.Background()

	q, err := svc.Get(ctx, "2")
	require.NoError(t, err)
	assert.Equal(t, "Diya Patel", q.Name)

	_, err = svc.Get(ctx, "nope")
	assert.True(t, appErrors.Is(err, appErrors.ErrNotFound))

	assert.NoError(t, svc.Delete(ctx, "2"))
	assert.True(t, appErrors.Is(svc.Delete(ctx, "nope"), appErrors.ErrNotFound))
}
