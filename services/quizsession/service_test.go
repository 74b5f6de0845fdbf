package quizsession

import (
	"testing"
	"time"

	"quizpay/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestDb(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.Question{},
		&models.Answer{},
		&models.QuizAttempt{},
		&models.GivenQuizQuestion{},
	)
	require.NoError(t, err)

	return db
}

// seedMathCategory creates the "Math" fixture: one 5-point question with one
// correct answer (A) and one incorrect answer (B).
func seedMathCategory(t *testing.T, db *gorm.DB) (models.Category, models.Question, models.Answer, models.Answer) {
	t.Helper()

	category := models.Category{Name: "Math", TotalTime: 30}
	require.NoError(t, db.Create(&category).Error)

	question := models.Question{CategoryID: category.ID, Text: "2 + 2 = ?", Mark: 5}
	require.NoError(t, db.Create(&question).Error)

	answerA := models.Answer{QuestionID: question.ID, Text: "4", IsCorrect: true}
	answerB := models.Answer{QuestionID: question.ID, Text: "5", IsCorrect: false}
	require.NoError(t, db.Create(&answerA).Error)
	require.NoError(t, db.Create(&answerB).Error)

	return category, question, answerA, answerB
}

func TestGetOrCreateAttemptIdempotent(t *testing.T) {
	db := setupTestDb(t)
	svc := NewService(db)

	category, _, _, _ := seedMathCategory(t, db)

	first, err := svc.GetOrCreateAttempt(1, category.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, first.Marks)
	assert.Equal(t, models.AttemptStatusInProgress, first.Status)
	assert.NotEmpty(t, first.UID)

	second, err := svc.GetOrCreateAttempt(1, category.ID)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, first.UID, second.UID)

	var count int64
	db.Model(&models.QuizAttempt{}).Count(&count)
	assert.EqualValues(t, 1, count)
}

func TestGetOrCreateAttemptUnknownCategory(t *testing.T) {
	db := setupTestDb(t)
	svc := NewService(db)

	_, err := svc.GetOrCreateAttempt(1, 999)
	assert.ErrorIs(t, err, ErrNotFound)
}

// The first submission per question wins regardless of correctness: after a
// wrong answer, the right one is rejected as a duplicate and marks stay 0.
func TestFirstSubmissionWinsRegardlessOfCorrectness(t *testing.T) {
	db := setupTestDb(t)
	svc := NewService(db)

	category, question, answerA, answerB := seedMathCategory(t, db)

	_, err := svc.GetOrCreateAttempt(1, category.ID)
	require.NoError(t, err)

	// Wrong answer B first: recorded, no points
	result, err := svc.SubmitAnswer(1, question.ID, answerB.ID, 10)
	require.NoError(t, err)
	assert.False(t, result.IsCorrect)
	assert.False(t, result.Duplicate)
	assert.Equal(t, 0, result.Marks)

	// Correct answer A second: duplicate, marks unchanged at 0
	result, err = svc.SubmitAnswer(1, question.ID, answerA.ID, 5)
	require.NoError(t, err)
	assert.True(t, result.IsCorrect)
	assert.True(t, result.Duplicate)
	assert.Equal(t, 0, result.Marks)

	var count int64
	db.Model(&models.GivenQuizQuestion{}).Count(&count)
	assert.EqualValues(t, 1, count)
}

func TestSubmitAnswerAwardsPointsWhenCorrect(t *testing.T) {
	db := setupTestDb(t)
	svc := NewService(db)

	category, question, answerA, _ := seedMathCategory(t, db)

	_, err := svc.GetOrCreateAttempt(1, category.ID)
	require.NoError(t, err)

	result, err := svc.SubmitAnswer(1, question.ID, answerA.ID, 12)
	require.NoError(t, err)
	assert.True(t, result.IsCorrect)
	assert.False(t, result.Duplicate)
	assert.Equal(t, 5, result.Marks)

	var attempt models.QuizAttempt
	require.NoError(t, db.Where("user_id = ?", 1).First(&attempt).Error)
	assert.Equal(t, 5, attempt.Marks)
}

func TestSubmitAnswerMismatch(t *testing.T) {
	db := setupTestDb(t)
	svc := NewService(db)

	category, question, _, _ := seedMathCategory(t, db)

	other := models.Question{CategoryID: category.ID, Text: "3 + 3 = ?", Mark: 5}
	require.NoError(t, db.Create(&other).Error)
	otherAnswer := models.Answer{QuestionID: other.ID, Text: "6", IsCorrect: true}
	require.NoError(t, db.Create(&otherAnswer).Error)

	_, err := svc.GetOrCreateAttempt(1, category.ID)
	require.NoError(t, err)

	_, err = svc.SubmitAnswer(1, question.ID, otherAnswer.ID, 0)
	assert.ErrorIs(t, err, ErrAnswerMismatch)
}

func TestSubmitAnswerWithoutAttempt(t *testing.T) {
	db := setupTestDb(t)
	svc := NewService(db)

	_, question, answerA, _ := seedMathCategory(t, db)

	_, err := svc.SubmitAnswer(42, question.ID, answerA.ID, 0)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRecomputeMarksEqualsSumOfPoints(t *testing.T) {
	db := setupTestDb(t)
	svc := NewService(db)

	category, question, answerA, _ := seedMathCategory(t, db)

	second := models.Question{CategoryID: category.ID, Text: "10 / 2 = ?", Mark: 3}
	require.NoError(t, db.Create(&second).Error)
	secondCorrect := models.Answer{QuestionID: second.ID, Text: "5", IsCorrect: true}
	require.NoError(t, db.Create(&secondCorrect).Error)

	attempt, err := svc.GetOrCreateAttempt(1, category.ID)
	require.NoError(t, err)

	_, err = svc.SubmitAnswer(1, question.ID, answerA.ID, 0)
	require.NoError(t, err)
	_, err = svc.SubmitAnswer(1, second.ID, secondCorrect.ID, 0)
	require.NoError(t, err)

	// Recompute is idempotent: repeated calls return the same sum
	for i := 0; i < 3; i++ {
		marks, err := svc.RecomputeMarks(attempt)
		require.NoError(t, err)
		assert.Equal(t, 8, marks)
	}

	var total int64
	db.Model(&models.GivenQuizQuestion{}).
		Where("quiz_attempt_id = ?", attempt.ID).
		Select("COALESCE(SUM(points), 0)").
		Scan(&total)
	assert.EqualValues(t, attempt.Marks, total)
}

func TestRefreshAttemptSetsEndTimeAndTotals(t *testing.T) {
	db := setupTestDb(t)
	svc := NewService(db)

	category, question, answerA, _ := seedMathCategory(t, db)

	attempt, err := svc.GetOrCreateAttempt(1, category.ID)
	require.NoError(t, err)

	_, err = svc.SubmitAnswer(1, question.ID, answerA.ID, 0)
	require.NoError(t, err)

	require.NoError(t, svc.RefreshAttempt(attempt))

	assert.Equal(t, 5, attempt.TotalMarks)
	require.NotNil(t, attempt.EndTime)
	expectedEnd := attempt.StartTime.Add(time.Duration(category.TotalTime) * time.Minute)
	assert.WithinDuration(t, expectedEnd, *attempt.EndTime, time.Second)

	var stored models.QuizAttempt
	require.NoError(t, db.Where("id = ?", attempt.ID).First(&stored).Error)
	assert.Equal(t, 5, stored.TotalMarks)
	require.NotNil(t, stored.EndTime)
}

func TestAttemptedQuestionPayload(t *testing.T) {
	db := setupTestDb(t)
	svc := NewService(db)

	category, question, answerA, answerB := seedMathCategory(t, db)

	_, err := svc.GetOrCreateAttempt(1, category.ID)
	require.NoError(t, err)

	// Unattempted question reports not found
	_, err = svc.AttemptedQuestion(1, question.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = svc.SubmitAnswer(1, question.ID, answerB.ID, 0)
	require.NoError(t, err)

	payload, err := svc.AttemptedQuestion(1, question.ID)
	require.NoError(t, err)
	require.Len(t, payload, 2)

	for _, row := range payload {
		switch row.AnswerID {
		case answerA.ID:
			assert.True(t, row.IsCorrect)
			assert.False(t, row.IsSelected)
		case answerB.ID:
			assert.False(t, row.IsCorrect)
			assert.True(t, row.IsSelected)
		default:
			t.Fatalf("unexpected answer id %d", row.AnswerID)
		}
	}
}

func TestCategoryTotals(t *testing.T) {
	db := setupTestDb(t)
	svc := NewService(db)

	category, question, answerA, _ := seedMathCategory(t, db)

	_, err := svc.GetOrCreateAttempt(1, category.ID)
	require.NoError(t, err)
	_, err = svc.SubmitAnswer(1, question.ID, answerA.ID, 0)
	require.NoError(t, err)

	_, err = svc.GetOrCreateAttempt(2, category.ID)
	require.NoError(t, err)

	totalMarks, totalAttempts, err := svc.CategoryTotals(category.ID)
	require.NoError(t, err)
	assert.Equal(t, 5, totalMarks)
	assert.Equal(t, 2, totalAttempts)
}
