package models

import "gorm.io/gorm"

type Question struct {
	gorm.Model
	CategoryID uint   `gorm:"not null;index" json:"category_id"`
	Text       string `gorm:"type:text;not null" json:"text"`
	Mark       int    `gorm:"default:5" json:"mark"`
	IsDeleted  bool   `gorm:"default:false" json:"-"`

	Category Category `gorm:"foreignKey:CategoryID" json:"-"`
	Answers  []Answer `gorm:"foreignKey:QuestionID" json:"-"`
}
