package service

import (
	"context"
	_ "embed"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/noah-isme/edu-advisor-api/internal/dto"
	"github.com/noah-isme/edu-advisor-api/internal/models"
	appErrors "github.com/noah-isme/edu-advisor-api/pkg/errors"
	"github.com/noah-isme/edu-advisor-api/pkg/gemini"
)

//go:embed assets/knowledge.md
var eduBuddyKnowledge string

//go:embed assets/popular_queries.yaml
var popularQueriesYAML []byte

// Generator produces a reply to a conversation under a system instruction.
type Generator interface {
	Generate(ctx context.Context, system string, turns []gemini.Turn) (string, error)
}

type chatHistory interface {
	Append(ctx context.Context, sessionID string, turns ...models.ChatTurn) error
	Recent(ctx context.Context, sessionID string) ([]models.ChatTurn, error)
}

// PopularQuery is a suggested question shown next to the chat box.
type PopularQuery struct {
	Question string `yaml:"question" json:"question"`
	Category string `yaml:"category" json:"category"`
}

// StudentAnalysis is the result of a profile analysis.
type StudentAnalysis struct {
	Analysis string                `json:"analysis"`
	Profile  models.StudentProfile `json:"student_profile"`
}

const eduBuddyGuidelines = `You are EDU BUDDY, an expert educational counselling assistant for Edu Advisor consultancy in India.

Your role is to help consultants provide accurate information to students about:
1. Entrance exam cut-offs (NEET, JEE Main, JEE Advanced, WBJEE, State CETs)
2. Course recommendations based on the student's 12th marks, subjects and interests
3. College suggestions with approximate fee structures
4. Career guidance and counselling

KNOWLEDGE BASE:
%s

GUIDELINES:
- Base answers on the knowledge base
- Cut-offs are approximate and vary year to year; say so
- Fee figures are approximate and subject to change; say so
- Be encouraging but realistic about the student's options
- Outside the knowledge base, give general guidance
- Use bullet points when listing several items
- Keep answers concise enough to read out on a phone call
- Always suggest a backup option next to the primary recommendation

RESPONSE FORMAT:
- Clear sections and bullet points
- Highlight important numbers (ranks, percentiles, fees)
- End with actionable advice when appropriate
`

// EduBuddyService is the counselling assistant used by consultants.
type EduBuddyService struct {
	generator Generator
	history   chatHistory
	validator *validator.Validate
	logger    *zap.Logger
	system    string
	popular   []PopularQuery
	now       func() time.Time
}

// NewEduBuddyService constructs the assistant. A nil generator disables chat
// and analysis while popular queries keep working.
func NewEduBuddyService(generator Generator, history chatHistory, validate *validator.Validate, logger *zap.Logger) (*EduBuddyService, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	var doc struct {
		Queries []PopularQuery `yaml:"queries"`
	}
	if err := yaml.Unmarshal(popularQueriesYAML, &doc); err != nil {
		return nil, fmt.Errorf("parse popular queries: %w", err)
	}
	return &EduBuddyService{
		generator: generator,
		history:   history,
		validator: validate,
		logger:    logger,
		system:    fmt.Sprintf(eduBuddyGuidelines, strings.TrimSpace(eduBuddyKnowledge)),
		popular:   doc.Queries,
		now:       time.Now,
	}, nil
}

// Enabled reports whether a model is configured.
func (s *EduBuddyService) Enabled() bool {
	return s != nil && s.generator != nil
}

// PopularQueries lists suggested questions.
func (s *EduBuddyService) PopularQueries() []PopularQuery {
	out := make([]PopularQuery, len(s.popular))
	copy(out, s.popular)
	return out
}

// Chat answers one message, continuing the session's recent history. An
// empty session id starts a new conversation.
func (s *EduBuddyService) Chat(ctx context.Context, req dto.ChatRequest) (*dto.ChatResponse, error) {
	if !s.Enabled() {
		return nil, appErrors.Clone(appErrors.ErrUnavailable, "edu buddy is not configured")
	}
	req.Message = strings.TrimSpace(req.Message)
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "message is required")
	}
	sessionID := req.SessionID
	if sessionID == "" {
		sessionID = uuid.NewString()
	}

	var past []models.ChatTurn
	if s.history != nil {
		turns, err := s.history.Recent(ctx, sessionID)
		if err != nil {
			s.logger.Warn("chat history unavailable", zap.String("session_id", sessionID), zap.Error(err))
		}
		past = turns
	}
	conversation := make([]gemini.Turn, 0, len(past)+1)
	for _, t := range past {
		conversation = append(conversation, gemini.Turn{Role: gemini.Role(t.Role), Text: t.Text})
	}
	conversation = append(conversation, gemini.Turn{Role: gemini.RoleUser, Text: req.Message})

	reply, err := s.generator.Generate(ctx, s.system, conversation)
	if err != nil {
		s.logger.Error("edu buddy chat failed", zap.String("session_id", sessionID), zap.Error(err))
		return nil, appErrors.Wrap(err, appErrors.ErrUnavailable.Code, appErrors.ErrUnavailable.Status, "edu buddy is unavailable, please try again")
	}

	if s.history != nil {
		now := s.now().UTC()
		if err := s.history.Append(ctx, sessionID,
			models.ChatTurn{Role: models.ChatRoleUser, Text: req.Message, At: now},
			models.ChatTurn{Role: models.ChatRoleModel, Text: reply, At: now},
		); err != nil {
			s.logger.Warn("chat history not saved", zap.String("session_id", sessionID), zap.Error(err))
		}
	}
	s.logger.Info("edu buddy replied", zap.String("session_id", sessionID))
	return &dto.ChatResponse{Response: reply, SessionID: sessionID}, nil
}

// AnalyzeStudent recommends courses and colleges for a student profile.
func (s *EduBuddyService) AnalyzeStudent(ctx context.Context, req dto.AnalyzeStudentRequest) (*StudentAnalysis, error) {
	if !s.Enabled() {
		return nil, appErrors.Clone(appErrors.ErrUnavailable, "edu buddy is not configured")
	}
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "subjects and interests are required; marks must be between 0 and 100")
	}
	profile := models.StudentProfile{
		Subjects:        strings.TrimSpace(req.Subjects),
		MarksPercentage: req.MarksPercentage,
		EntranceExams:   strings.TrimSpace(req.EntranceExams),
		Interests:       strings.TrimSpace(req.Interests),
		Category:        strings.TrimSpace(req.Category),
	}
	if profile.Category == "" {
		profile.Category = "General"
	}

	reply, err := s.generator.Generate(ctx, s.system, []gemini.Turn{{Role: gemini.RoleUser, Text: analysisPrompt(profile)}})
	if err != nil {
		s.logger.Error("student analysis failed", zap.Error(err))
		return nil, appErrors.Wrap(err, appErrors.ErrUnavailable.Code, appErrors.ErrUnavailable.Status, "failed to analyze student profile")
	}
	return &StudentAnalysis{Analysis: reply, Profile: profile}, nil
}

func analysisPrompt(p models.StudentProfile) string {
	orDefault := func(v string) string {
		if v == "" {
			return "Not specified"
		}
		return v
	}
	var b strings.Builder
	b.WriteString("Analyze this student profile and provide course recommendations:\n\n")
	b.WriteString("STUDENT PROFILE:\n")
	fmt.Fprintf(&b, "- 12th Subjects: %s\n", p.Subjects)
	fmt.Fprintf(&b, "- Marks Percentage: %g%%\n", p.MarksPercentage)
	fmt.Fprintf(&b, "- Entrance Exams Planning: %s\n", orDefault(p.EntranceExams))
	fmt.Fprintf(&b, "- Career Interests: %s\n", orDefault(p.Interests))
	fmt.Fprintf(&b, "- Category: %s\n\n", p.Category)
	b.WriteString("Based on this profile, provide:\n")
	b.WriteString("1. Top 5 recommended courses with reasons\n")
	b.WriteString("2. Best colleges for each course (with approximate fees)\n")
	b.WriteString("3. Required entrance exams and expected cut-offs\n")
	b.WriteString("4. Alternative career paths if the main goal isn't achieved\n")
	b.WriteString("5. Action plan for the student\n\n")
	b.WriteString("Be specific and practical in your recommendations.\n")
	return b.String()
}
