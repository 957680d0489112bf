package dto

// ChatRequest is one Edu Buddy message. An empty session id starts a new
// conversation.
type ChatRequest struct {
	Message   string `json:"message" validate:"required,max=4000"`
	SessionID string `json:"session_id" validate:"omitempty,max=64"`
}

// ChatResponse is the assistant reply.
type ChatResponse struct {
	Response  string `json:"response"`
	SessionID string `json:"session_id"`
}

// AnalyzeStudentRequest is the profile questionnaire.
type AnalyzeStudentRequest struct {
	Subjects        string  `form:"subjects" validate:"required,max=300"`
	MarksPercentage float64 `form:"marks_percentage" validate:"gte=0,lte=100"`
	EntranceExams   string  `form:"entrance_exams" validate:"max=300"`
	Interests       string  `form:"interests" validate:"required,max=500"`
	Category        string  `form:"category" validate:"max=60"`
}
