package handler

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/edu-advisor-api/internal/dto"
	"github.com/noah-isme/edu-advisor-api/internal/service"
	"github.com/noah-isme/edu-advisor-api/pkg/response"
)

type eduBuddyService interface {
	PopularQueries() []service.PopularQuery
	Chat(ctx context.Context, req dto.ChatRequest) (*dto.ChatResponse, error)
	AnalyzeStudent(ctx context.Context, req dto.AnalyzeStudentRequest) (*service.StudentAnalysis, error)
}

// EduBuddyHandler exposes the counselling assistant.
type EduBuddyHandler struct {
	buddy eduBuddyService
}

// NewEduBuddyHandler constructs the handler.
func NewEduBuddyHandler(buddy eduBuddyService) *EduBuddyHandler {
	return &EduBuddyHandler{buddy: buddy}
}

// PopularQueries godoc
// @Summary Suggested questions
// @Tags EduBuddy
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /edu-buddy/popular-queries [get]
func (h *EduBuddyHandler) PopularQueries(c *gin.Context) {
	response.OK(c, gin.H{"queries": h.buddy.PopularQueries()})
}

// Chat godoc
// @Summary Ask Edu Buddy
// @Tags EduBuddy
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body dto.ChatRequest true "Message"
// @Success 200 {object} map[string]interface{}
// @Failure 503 {object} response.ErrorBody
// @Router /edu-buddy/chat [post]
func (h *EduBuddyHandler) Chat(c *gin.Context) {
	var req dto.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, invalidPayload(err, "invalid chat payload"))
		return
	}

	reply, err := h.buddy.Chat(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, gin.H{"response": reply.Response, "session_id": reply.SessionID})
}

// AnalyzeStudent godoc
// @Summary Recommend courses for a student profile
// @Tags EduBuddy
// @Produce json
// @Security BearerAuth
// @Param subjects query string true "Subjects studied"
// @Param marks_percentage query number true "Marks percentage"
// @Param entrance_exams query string false "Entrance exams taken"
// @Param interests query string true "Interests"
// @Param category query string false "Category"
// @Success 200 {object} map[string]interface{}
// @Failure 503 {object} response.ErrorBody
// @Router /edu-buddy/analyze-student [post]
func (h *EduBuddyHandler) AnalyzeStudent(c *gin.Context) {
	var req dto.AnalyzeStudentRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.Error(c, invalidPayload(err, "invalid student profile"))
		return
	}

	analysis, err := h.buddy.AnalyzeStudent(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, gin.H{"analysis": analysis.Analysis, "student_profile": analysis.Profile})
}
