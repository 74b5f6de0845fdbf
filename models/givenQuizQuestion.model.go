package models

import "gorm.io/gorm"

// GivenQuizQuestion records the answer a user chose for one question inside
// an attempt. At most one record exists per (attempt, question); the first
// submission wins regardless of correctness.
type GivenQuizQuestion struct {
	gorm.Model
	QuizAttemptID uint `gorm:"not null;index:idx_attempt_question,unique" json:"quiz_attempt_id"`
	QuestionID    uint `gorm:"not null;index:idx_attempt_question,unique" json:"question_id"`
	AnswerID      uint `gorm:"not null" json:"answer_id"`
	TimeTaken     int  `gorm:"default:0" json:"time_taken"`
	Points        int  `gorm:"default:0" json:"points"`

	Question Question `gorm:"foreignKey:QuestionID" json:"-"`
	Answer   Answer   `gorm:"foreignKey:AnswerID" json:"-"`
}

func (GivenQuizQuestion) TableName() string {
	return "given_quiz_questions"
}
