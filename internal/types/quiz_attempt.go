package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// QuizAttempt is one completed quiz, stored verbatim with the questions the
// user was shown and the answers they picked.
type QuizAttempt struct {
	ID             uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	UserID         uuid.UUID      `gorm:"index;not null;column:user_id" json:"user_id"`
	User           *User          `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"user,omitempty"`
	Score          int            `gorm:"not null;column:score" json:"score"`
	TotalQuestions int            `gorm:"not null;column:total_questions" json:"total_questions"`
	CorrectAnswers int            `gorm:"not null;column:correct_answers" json:"correct_answers"`
	Questions      datatypes.JSON `gorm:"column:questions" json:"questions"`
	CreatedAt      time.Time      `gorm:"not null" json:"created_at"`
}

func (QuizAttempt) TableName() string {
	return "quiz_attempt"
}
