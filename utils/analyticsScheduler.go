package utils

import (
	"errors"
	"log"

	"quizpay/database"
	"quizpay/models"

	"github.com/robfig/cron/v3"
	"gorm.io/gorm"
)

// InitializeAnalyticsScheduler sets up the nightly analytics refresh
func InitializeAnalyticsScheduler() {
	log.Println("[ANALYTICS-SCHEDULER] Initializing analytics scheduler...")

	c := cron.New()

	// Run daily at 2 AM to refresh per-category aggregates
	c.AddFunc("0 2 * * *", func() {
		log.Println("[ANALYTICS-SCHEDULER] Running daily analytics refresh...")
		RefreshQuizAnalytics(database.Database.Db)
	})

	c.Start()
	log.Println("[ANALYTICS-SCHEDULER] Analytics scheduler started - runs daily at 2 AM")
}

// RefreshQuizAnalytics recomputes attempt counts and average scores per
// category, and refreshes each category's cached question totals.
func RefreshQuizAnalytics(db *gorm.DB) {
	var categories []models.Category
	if err := db.Where("is_deleted = false").Find(&categories).Error; err != nil {
		log.Printf("[ANALYTICS-SCHEDULER] Error fetching categories: %v", err)
		return
	}

	for _, category := range categories {
		var row struct {
			TotalAttempts int64
			AverageScore  float64
		}
		err := db.Model(&models.QuizAttempt{}).
			Where("category_id = ? AND is_deleted = false", category.ID).
			Select("COUNT(*) AS total_attempts, COALESCE(AVG(marks), 0) AS average_score").
			Scan(&row).Error
		if err != nil {
			log.Printf("[ANALYTICS-SCHEDULER] Error aggregating category %d: %v", category.ID, err)
			continue
		}

		var analytics models.QuizAnalytics
		err = db.Where("category_id = ?", category.ID).First(&analytics).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			analytics = models.QuizAnalytics{CategoryID: category.ID}
		} else if err != nil {
			log.Printf("[ANALYTICS-SCHEDULER] Error loading analytics for category %d: %v", category.ID, err)
			continue
		}

		analytics.TotalAttempts = int(row.TotalAttempts)
		analytics.AverageScore = row.AverageScore
		if err := db.Save(&analytics).Error; err != nil {
			log.Printf("[ANALYTICS-SCHEDULER] Error saving analytics for category %d: %v", category.ID, err)
			continue
		}

		// Refresh the category's cached question totals while we are here
		var questionCount int64
		var markSum int64
		db.Model(&models.Question{}).
			Where("category_id = ? AND is_deleted = false", category.ID).
			Count(&questionCount)
		db.Model(&models.Question{}).
			Where("category_id = ? AND is_deleted = false", category.ID).
			Select("COALESCE(SUM(mark), 0)").
			Scan(&markSum)

		db.Model(&models.Category{}).Where("id = ?", category.ID).
			Updates(map[string]interface{}{
				"total_questions": questionCount,
				"total_marks":     markSum,
			})
	}

	log.Printf("[ANALYTICS-SCHEDULER] Refreshed analytics for %d categories", len(categories))
}
