package models

import "time"

// ChatRole identifies who wrote a chat turn.
type ChatRole string

const (
	ChatRoleUser  ChatRole = "user"
	ChatRoleModel ChatRole = "model"
)

// ChatTurn is one message in an Edu Buddy conversation.
type ChatTurn struct {
	Role ChatRole  `json:"role"`
	Text string    `json:"text"`
	At   time.Time `json:"at"`
}

// StudentProfile is the input to the admission-readiness analysis.
type StudentProfile struct {
	Subjects        string  `json:"subjects"`
	MarksPercentage float64 `json:"marks_percentage"`
	EntranceExams   string  `json:"entrance_exams"`
	Interests       string  `json:"interests"`
	Category        string  `json:"category"`
}
