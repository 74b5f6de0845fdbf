package models

import "gorm.io/gorm"

type Answer struct {
	gorm.Model
	QuestionID uint   `gorm:"not null;index" json:"question_id"`
	Text       string `gorm:"type:text;not null" json:"text"`
	IsCorrect  bool   `gorm:"default:false" json:"is_correct"`
	IsDeleted  bool   `gorm:"default:false" json:"-"`

	Question Question `gorm:"foreignKey:QuestionID" json:"-"`
}
