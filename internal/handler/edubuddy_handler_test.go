package handler

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/edu-advisor-api/internal/dto"
	"github.com/noah-isme/edu-advisor-api/internal/models"
	"github.com/noah-isme/edu-advisor-api/internal/service"
	appErrors "github.com/noah-isme/edu-advisor-api/pkg/errors"
)

type eduBuddyMock struct {
	chatErr error
	profile dto.AnalyzeStudentRequest
}

func (m *eduBuddyMock) PopularQueries() []service.PopularQuery {
	return []service.PopularQuery{{Question: "Which course after 12th science?", Category: "Courses"}}
}

func (m *eduBuddyMock) Chat(ctx context.Context, req dto.ChatRequest) (*dto.ChatResponse, error) {
	if m.chatErr != nil {
		return nil, m.chatErr
	}
	session := req.SessionID
	if session == "" {
		session = "session-1"
	}
	return &dto.ChatResponse{Response: "Consider BCA.", SessionID: session}, nil
}

func (m *eduBuddyMock) AnalyzeStudent(ctx context.Context, req dto.AnalyzeStudentRequest) (*service.StudentAnalysis, error) {
	m.profile = req
	return &service.StudentAnalysis{
		Analysis: "Engineering suits you.",
		Profile:  models.StudentProfile{Subjects: req.Subjects, MarksPercentage: req.MarksPercentage, Interests: req.Interests, Category: "General"},
	}, nil
}

func TestEduBuddyHandlerPopularQueries(t *testing.T) {
	handler := NewEduBuddyHandler(&eduBuddyMock{})
	c, w := newGinContext(http.MethodGet, "/api/edu-buddy/popular-queries", nil)
	handler.PopularQueries(c)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decodeBody(t, w)["queries"], 1)
}

func TestEduBuddyHandlerChat(t *testing.T) {
	handler := NewEduBuddyHandler(&eduBuddyMock{})
	c, w := newGinContext(http.MethodPost, "/api/edu-buddy/chat", mustJSON(t, dto.ChatRequest{Message: "What after 12th?"}))
	handler.Chat(c)

	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, "Consider BCA.", body["response"])
	assert.Equal(t, "session-1", body["session_id"])
}

func TestEduBuddyHandlerChatUnavailable(t *testing.T) {
	handler := NewEduBuddyHandler(&eduBuddyMock{chatErr: appErrors.Clone(appErrors.ErrUnavailable, "edu buddy is not configured")})
	c, w := newGinContext(http.MethodPost, "/api/edu-buddy/chat", mustJSON(t, dto.ChatRequest{Message: "hi"}))
	handler.Chat(c)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestEduBuddyHandlerAnalyzeStudent(t *testing.T) {
	svc := &eduBuddyMock{}
	handler := NewEduBuddyHandler(svc)
	c, w := newGinContext(http.MethodPost, "/api/edu-buddy/analyze-student?subjects=PCM&marks_percentage=88.5&interests=robotics", nil)
	handler.AnalyzeStudent(c)

	require.Equal(t, http.StatusOK, w.Code)
	assert.InDelta(t, 88.5, svc.profile.MarksPercentage, 0.001)
	body := decodeBody(t, w)
	assert.Equal(t, "Engineering suits you.", body["analysis"])
	profile := body["student_profile"].(map[string]interface{})
	assert.Equal(t, "General", profile["category"])
}
