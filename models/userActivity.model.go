package models

import (
	"time"

	"gorm.io/gorm"
)

// ActivityAction defines the kind of user action being logged
type ActivityAction string

const (
	ActivityLogin   ActivityAction = "login"
	ActivityQuiz    ActivityAction = "quiz"
	ActivityPayment ActivityAction = "payment"
)

// UserActivity is an append-only log of user actions.
type UserActivity struct {
	gorm.Model
	UserID      uint           `gorm:"not null;index" json:"user_id"`
	Action      ActivityAction `gorm:"type:varchar(20);not null" json:"action"`
	Description string         `gorm:"type:text" json:"description"`
	Timestamp   time.Time      `gorm:"not null" json:"timestamp"`

	User User `gorm:"foreignKey:UserID" json:"-"`
}

func (UserActivity) TableName() string {
	return "user_activities"
}
