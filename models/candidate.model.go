package models

import (
	"time"

	"gorm.io/gorm"
)

const (
	CandidateStatusActive   = "active"
	CandidateStatusInactive = "inactive"
	CandidateStatusBanned   = "banned"
)

// Candidate is a standalone identity record kept for the management screens.
// It carries no foreign key to User or QuizAttempt.
type Candidate struct {
	gorm.Model
	Name        string    `gorm:"type:varchar(255);not null" json:"name"`
	Email       string    `gorm:"unique;not null" json:"email"`
	PhoneNumber string    `gorm:"type:varchar(20)" json:"phone_number"`
	Status      string    `gorm:"type:varchar(50);default:'active'" json:"status"`
	TotalScore  int       `gorm:"default:0" json:"total_score"`
	JoinedAt    time.Time `json:"joined_at"`
}
