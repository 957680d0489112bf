package service

import (
	"context"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/noah-isme/edu-advisor-api/internal/dto"
	"github.com/noah-isme/edu-advisor-api/internal/models"
	appErrors "github.com/noah-isme/edu-advisor-api/pkg/errors"
)

func newTestConsultantService(repo *mockConsultantRepo) *ConsultantService {
	svc := NewConsultantService(repo, nil, zap.NewNop())
	svc.cost = bcrypt.MinCost
	return svc
}

func TestConsultantServiceCreateHashesPassword(t *testing.T) {
	repo := newMockConsultantRepo()
	svc := newTestConsultantService(repo)

	resp, err := svc.Create(context.Background(), dto.CreateConsultantRequest{UserID: "priya", Name: "Priya", Password: "secret1"})
	require.NoError(t, err)
	assert.True(t, resp.Active)

	stored := repo.consultants["priya"]
	require.NotNil(t, stored)
	assert.NotEqual(t, "secret1", stored.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("secret1")))
}

func TestConsultantServiceCreateConflict(t *testing.T) {
	repo := newMockConsultantRepo()
	repo.createErr = &pq.Error{Code: "23505"}
	svc := newTestConsultantService(repo)

	_, err := svc.Create(context.Background(), dto.CreateConsultantRequest{UserID: "priya", Name: "Priya", Password: "secret1"})
	assert.True(t, appErrors.Is(err, appErrors.ErrConflict))
}

func TestConsultantServiceCreateValidation(t *testing.T) {
	svc := newTestConsultantService(newMockConsultantRepo())

	_, err := svc.Create(context.Background(), dto.CreateConsultantRequest{UserID: "p", Name: "Priya", Password: "123"})
	assert.True(t, appErrors.Is(err, appErrors.ErrValidation))
}

func TestConsultantServiceUpdate(t *testing.T) {
	repo := newMockConsultantRepo(models.Consultant{UserID: "priya", Name: "Priya", PasswordHash: "old", Active: true})
	svc := newTestConsultantService(repo)
	inactive := false

	resp, err := svc.Update(context.Background(), "priya", dto.UpdateConsultantRequest{Name: "Priya S", Active: &inactive})
	require.NoError(t, err)
	assert.Equal(t, "Priya S", resp.Name)
	assert.False(t, resp.Active)
	assert.Equal(t, "old", repo.consultants["priya"].PasswordHash)

	_, err = svc.Update(context.Background(), "priya", dto.UpdateConsultantRequest{Password: "newsecret"})
	require.NoError(t, err)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(repo.consultants["priya"].PasswordHash), []byte("newsecret")))

	_, err = svc.Update(context.Background(), "ghost", dto.UpdateConsultantRequest{Name: "x"})
	assert.True(t, appErrors.Is(err, appErrors.ErrNotFound))
}

func TestConsultantServiceListAndDelete(t *testing.T) {
	repo := newMockConsultantRepo(models.Consultant{UserID: "priya", Name: "Priya", PasswordHash: "h", Active: true})
	svc := newTestConsultantService(repo)

	list, err := svc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "priya", list[0].UserID)

	require.NoError(t, svc.Delete(context.Background(), "priya"))
	assert.True(t, appErrors.Is(svc.Delete(context.Background(), "priya"), appErrors.ErrNotFound))
}
