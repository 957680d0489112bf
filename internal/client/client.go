// Package client is a typed REST client for the advisor API. It backs the
// dashboard record stores and the eductl command line tool.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/edu-advisor-api/internal/models"
	appErrors "github.com/noah-isme/edu-advisor-api/pkg/errors"
)

const defaultTimeout = 30 * time.Second

// AuthSession is the identity the dashboard acts as. Tokens are issued and
// checked by the server; the client only carries them.
type AuthSession struct {
	Token     string      `json:"token"`
	Role      models.Role `json:"role"`
	SubjectID string      `json:"subject_id"`
	Name      string      `json:"name"`
	ExpiresAt time.Time   `json:"expires_at"`
}

// Expired reports whether the session can no longer be presented.
func (s *AuthSession) Expired(now time.Time) bool {
	return s == nil || s.Token == "" || (!s.ExpiresAt.IsZero() && !now.Before(s.ExpiresAt))
}

// Client talks to the API over HTTP.
type Client struct {
	baseURL string
	http    *http.Client
	logger  *zap.Logger
	now     func() time.Time

	mu      sync.RWMutex
	session *AuthSession
}

// Option customises a Client.
type Option func(*Client)

// WithHTTPClient replaces the default http.Client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

// WithLogger sets the client logger.
func WithLogger(l *zap.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithSession starts the client with a previously issued session.
func WithSession(s *AuthSession) Option {
	return func(c *Client) { c.session = s }
}

// New builds a client for baseURL, e.g. "http://localhost:8080/api".
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: defaultTimeout},
		logger:  zap.NewNop(),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Session returns a copy of the active session, if any.
func (c *Client) Session() *AuthSession {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.session == nil {
		return nil
	}
	s := *c.session
	return &s
}

func (c *Client) setSession(s *AuthSession) {
	c.mu.Lock()
	c.session = s
	c.mu.Unlock()
}

// AdminLogin signs in as the back-office administrator.
func (c *Client) AdminLogin(ctx context.Context, username, password string) (*AuthSession, error) {
	var out struct {
		Token     string      `json:"token"`
		ExpiresAt time.Time   `json:"expires_at"`
		Role      models.Role `json:"role"`
	}
	body := map[string]string{"username": username, "password": password}
	if err := c.do(ctx, http.MethodPost, "/admin/login", nil, body, &out, false); err != nil {
		return nil, err
	}
	role := out.Role
	if role == "" {
		role = models.RoleAdmin
	}
	s := &AuthSession{Token: out.Token, Role: role, SubjectID: username, Name: username, ExpiresAt: out.ExpiresAt}
	c.setSession(s)
	c.logger.Info("admin session started", zap.Time("expires_at", s.ExpiresAt))
	return s, nil
}

// ConsultantLogin signs in as a consultant. Credentials travel as query
// parameters.
func (c *Client) ConsultantLogin(ctx context.Context, userID, password string) (*AuthSession, error) {
	var out struct {
		ConsultantID   string    `json:"consultant_id"`
		ConsultantName string    `json:"consultant_name"`
		Token          string    `json:"token"`
		ExpiresAt      time.Time `json:"expires_at"`
	}
	q := url.Values{"user_id": {userID}, "password": {password}}
	if err := c.do(ctx, http.MethodPost, "/consultant/login", q, nil, &out, false); err != nil {
		return nil, err
	}
	s := &AuthSession{
		Token:     out.Token,
		Role:      models.RoleConsultant,
		SubjectID: out.ConsultantID,
		Name:      out.ConsultantName,
		ExpiresAt: out.ExpiresAt,
	}
	c.setSession(s)
	c.logger.Info("consultant session started", zap.String("consultant_id", s.SubjectID))
	return s, nil
}

// Logout revokes the server token. The local session is dropped even when
// the server call fails.
func (c *Client) Logout(ctx context.Context) error {
	defer c.setSession(nil)
	if c.Session() == nil {
		return nil
	}
	return c.do(ctx, http.MethodPost, "/auth/logout", nil, nil, nil, true)
}

// Queries fetches the admin enquiry list.
func (c *Client) Queries(ctx context.Context) ([]models.QueryView, error) {
	var out struct {
		Queries []models.QueryView `json:"queries"`
	}
	if err := c.do(ctx, http.MethodGet, "/queries", nil, nil, &out, true); err != nil {
		return nil, err
	}
	return out.Queries, nil
}

// ConsultantReports fetches every consultant report for the admin dashboard.
func (c *Client) ConsultantReports(ctx context.Context) ([]models.ConsultantReport, error) {
	var out struct {
		Reports []models.ConsultantReport `json:"reports"`
	}
	if err := c.do(ctx, http.MethodGet, "/admin/consultant-reports", nil, nil, &out, true); err != nil {
		return nil, err
	}
	return out.Reports, nil
}

// MyReports fetches the signed-in consultant's own reports.
func (c *Client) MyReports(ctx context.Context) ([]models.ConsultantReport, error) {
	s := c.Session()
	if s == nil {
		return nil, appErrors.ErrUnauthorized
	}
	var out struct {
		Reports []models.ConsultantReport `json:"reports"`
	}
	path := "/consultant/reports/" + url.PathEscape(s.SubjectID)
	if err := c.do(ctx, http.MethodGet, path, nil, nil, &out, true); err != nil {
		return nil, err
	}
	return out.Reports, nil
}

// Admissions fetches the admin admissions list.
func (c *Client) Admissions(ctx context.Context) ([]models.Admission, error) {
	var out struct {
		Admissions []models.Admission `json:"admissions"`
	}
	if err := c.do(ctx, http.MethodGet, "/admin/admissions", nil, nil, &out, true); err != nil {
		return nil, err
	}
	return out.Admissions, nil
}

type errorEnvelope struct {
	Detail string           `json:"detail"`
	Error  *appErrors.Error `json:"error"`
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out interface{}, authed bool) error {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if authed {
		s := c.Session()
		if s.Expired(c.now()) {
			return appErrors.ErrUnauthorized
		}
		req.Header.Set("Authorization", "Bearer "+s.Token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Warn("api request failed", zap.String("method", method), zap.String("path", path), zap.Error(err))
		return appErrors.Wrap(err, appErrors.ErrUnavailable.Code, http.StatusServiceUnavailable, "api unreachable")
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrUnavailable.Code, http.StatusServiceUnavailable, "read api response")
	}

	if resp.StatusCode >= http.StatusBadRequest {
		return decodeError(resp, payload)
	}
	if out == nil || len(payload) == 0 {
		return nil
	}
	if err := json.Unmarshal(payload, out); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, http.StatusBadGateway, "malformed api response")
	}
	return nil
}

func decodeError(resp *http.Response, payload []byte) error {
	var env errorEnvelope
	if err := json.Unmarshal(payload, &env); err == nil && env.Error != nil {
		appErr := env.Error
		if appErr.Status == 0 {
			appErr.Status = resp.StatusCode
		}
		if resp.StatusCode == http.StatusTooManyRequests {
			appErr.RetryAfter = retryAfter(resp.Header.Get("Retry-After"))
		}
		return appErr
	}
	msg := env.Detail
	if msg == "" {
		msg = http.StatusText(resp.StatusCode)
	}
	return appErrors.New(fmt.Sprintf("HTTP_%d", resp.StatusCode), resp.StatusCode, msg)
}

func retryAfter(raw string) time.Duration {
	secs, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || secs < 0 {
		return 0
	}
	return time.Duration(secs) * time.Second
}
