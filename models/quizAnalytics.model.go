package models

import "gorm.io/gorm"

// QuizAnalytics holds per-category attempt aggregates, refreshed by the
// analytics scheduler rather than on every quiz write.
type QuizAnalytics struct {
	gorm.Model
	CategoryID    uint    `gorm:"not null;uniqueIndex" json:"category_id"`
	TotalAttempts int     `gorm:"default:0" json:"total_attempts"`
	AverageScore  float64 `gorm:"default:0" json:"average_score"`

	Category Category `gorm:"foreignKey:CategoryID" json:"-"`
}

func (QuizAnalytics) TableName() string {
	return "quiz_analytics"
}
