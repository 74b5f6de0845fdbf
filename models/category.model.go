package models

import "gorm.io/gorm"

// Category groups questions into one purchasable quiz topic.
type Category struct {
	gorm.Model
	Name        string `gorm:"unique;not null" json:"name"`
	Description string `gorm:"type:text" json:"description"`
	// TotalTime is the time budget for one attempt, in minutes.
	TotalTime int `gorm:"default:60" json:"total_time"`

	// Cached aggregates, refreshed by the analytics scheduler and the
	// explicit totals recompute. Not maintained on every write.
	TotalMarks     int `gorm:"default:0" json:"total_marks"`
	TotalQuestions int `gorm:"default:0" json:"total_questions"`

	// Uploaded media paths under the public uploads directory.
	Image   string `gorm:"default:''" json:"image"`
	PDFFile string `gorm:"default:''" json:"pdf_file"`

	IsDeleted bool `gorm:"default:false" json:"-"`

	Questions []Question `gorm:"foreignKey:CategoryID" json:"-"`
}
