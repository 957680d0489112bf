package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/noah-isme/edu-advisor-api/internal/models"
	"github.com/noah-isme/edu-advisor-api/internal/repository"
	appErrors "github.com/noah-isme/edu-advisor-api/pkg/errors"
)

func hashPassword(t *testing.T, password string) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(hash)
}

type mockConsultantRepo struct {
	consultants map[string]*models.Consultant
	createErr   error
	updateErr   error
	findErr     error
}

func newMockConsultantRepo(list ...models.Consultant) *mockConsultantRepo {
	m := &mockConsultantRepo{consultants: make(map[string]*models.Consultant)}
	for i := range list {
		c := list[i]
		m.consultants[c.UserID] = &c
	}
	return m
}

func (m *mockConsultantRepo) FindByID(ctx context.Context, userID string) (*models.Consultant, error) {
	if m.findErr != nil {
		return nil, m.findErr
	}
	c, ok := m.consultants[userID]
	if !ok {
		return nil, sql.ErrNoRows
	}
	copy := *c
	return &copy, nil
}

func (m *mockConsultantRepo) List(ctx context.Context) ([]models.Consultant, error) {
	out := make([]models.Consultant, 0, len(m.consultants))
	for _, c := range m.consultants {
		out = append(out, *c)
	}
	return out, nil
}

func (m *mockConsultantRepo) Create(ctx context.Context, c *models.Consultant) error {
	if m.createErr != nil {
		return m.createErr
	}
	copy := *c
	m.consultants[c.UserID] = &copy
	return nil
}

func (m *mockConsultantRepo) Update(ctx context.Context, c *models.Consultant) error {
	if m.updateErr != nil {
		return m.updateErr
	}
	if _, ok := m.consultants[c.UserID]; !ok {
		return sql.ErrNoRows
	}
	copy := *c
	m.consultants[c.UserID] = &copy
	return nil
}

func (m *mockConsultantRepo) Delete(ctx context.Context, userID string) error {
	if _, ok := m.consultants[userID]; !ok {
		return sql.ErrNoRows
	}
	delete(m.consultants, userID)
	return nil
}

type mockSessionStore struct {
	mu      sync.Mutex
	revoked map[string]time.Time
	err     error
}

func (m *mockSessionStore) Revoke(ctx context.Context, tokenID string, expiresAt time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.revoked == nil {
		m.revoked = make(map[string]time.Time)
	}
	m.revoked[tokenID] = expiresAt
	return nil
}

func (m *mockSessionStore) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return false, m.err
	}
	_, ok := m.revoked[tokenID]
	return ok, nil
}

type stubPasswordVerifier struct {
	err   error
	calls int
}

func (s *stubPasswordVerifier) VerifyAdminPassword(password string) error {
	s.calls++
	return s.err
}

type mockScopedDeleter struct {
	scopes []repository.DeleteScope
	n      int64
	err    error
}

func (m *mockScopedDeleter) DeleteScope(ctx context.Context, scope repository.DeleteScope) (int64, error) {
	m.scopes = append(m.scopes, scope)
	return m.n, m.err
}

type mockCacheRepo struct {
	store      map[string][]byte
	gets       int
	invalidate []string
}

func (m *mockCacheRepo) Get(ctx context.Context, key string, dest interface{}) error {
	m.gets++
	raw, ok := m.store[key]
	if !ok {
		return appErrors.ErrCacheMiss
	}
	return json.Unmarshal(raw, dest)
}

func (m *mockCacheRepo) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	if m.store == nil {
		m.store = make(map[string][]byte)
	}
	m.store[key] = raw
	return nil
}

func (m *mockCacheRepo) DeleteByPattern(ctx context.Context, pattern string) error {
	m.invalidate = append(m.invalidate, pattern)
	prefix := strings.TrimSuffix(pattern, "*")
	for key := range m.store {
		if strings.HasPrefix(key, prefix) {
			delete(m.store, key)
		}
	}
	return nil
}
