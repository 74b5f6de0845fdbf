package models

import (
	"time"

	"gorm.io/gorm"
)

// AttemptStatus defines the lifecycle state of a quiz attempt
type AttemptStatus string

const (
	AttemptStatusNotStarted AttemptStatus = "not_started"
	AttemptStatusInProgress AttemptStatus = "in_progress"
	AttemptStatusCompleted  AttemptStatus = "completed"
)

// QuizAttempt is one user's engagement with one category's question set.
// There is at most one attempt per (user, category); StartQuiz is idempotent.
type QuizAttempt struct {
	gorm.Model
	UID        string        `gorm:"type:varchar(36);uniqueIndex;not null" json:"uid"`
	UserID     uint          `gorm:"not null;index" json:"user_id"`
	CategoryID uint          `gorm:"not null;index" json:"category_id"`
	Marks      int           `gorm:"default:0" json:"marks"`
	TotalMarks int           `gorm:"default:0" json:"total_marks"`
	Status     AttemptStatus `gorm:"type:varchar(20);default:'not_started'" json:"status"`
	StartTime  time.Time     `gorm:"not null" json:"start_time"`
	EndTime    *time.Time    `json:"end_time"`
	IsDeleted  bool          `gorm:"default:false" json:"-"`

	User           User                `gorm:"foreignKey:UserID" json:"-"`
	Category       Category            `gorm:"foreignKey:CategoryID" json:"-"`
	GivenQuestions []GivenQuizQuestion `gorm:"foreignKey:QuizAttemptID" json:"-"`
}

func (QuizAttempt) TableName() string {
	return "quiz_attempts"
}

// CompletionRate returns the attempt's score as a percentage of its total.
func (q *QuizAttempt) CompletionRate() float64 {
	if q.TotalMarks == 0 {
		return 0
	}
	return float64(q.Marks) / float64(q.TotalMarks) * 100
}
