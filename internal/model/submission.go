package model

import "encoding/json"

// QuizSubmission is one completed quiz attempt. Records are append-only: a
// person may hold several submissions for the same module, and eligibility
// picks the best one rather than the latest.
// swagger:model QuizSubmission
type QuizSubmission struct {
	BaseModel
	Name       string `gorm:"size:255;not null" json:"name"`
	NameKey    string `gorm:"size:255;index" json:"-"`
	Email      string `gorm:"size:255;index" json:"email"`
	Department string `gorm:"size:100;not null" json:"department"`
	ModuleID   int    `gorm:"index;not null" json:"moduleId"`
	ModuleName string `gorm:"size:255" json:"moduleName"`

	// Answers holds the per-question detail map keyed by question id, rebuilt
	// server-side from the quiz bank before persisting.
	Answers json.RawMessage `gorm:"type:json" json:"answers"`

	Score            int    `gorm:"not null" json:"score"`
	TotalQuestions   int    `gorm:"not null" json:"totalQuestions"`
	TimeTakenSeconds int    `json:"timeTakenSeconds"`
	Feedback         string `gorm:"type:text" json:"feedback"`
}

func (QuizSubmission) TableName() string {
	return "quiz_submissions"
}

// Percent is the score as a percentage of the module's question count.
func (s *QuizSubmission) Percent() float64 {
	if s.TotalQuestions == 0 {
		return 0
	}
	return float64(s.Score) / float64(s.TotalQuestions) * 100
}

// AnswerDetail is the stored shape for a single answered question.
type AnswerDetail struct {
	Question      string `json:"question"`
	Selected      string `json:"selected"`
	Correct       bool   `json:"correct"`
	CorrectAnswer string `json:"correctAnswer"`
	Explanation   string `json:"explanation"`
}
