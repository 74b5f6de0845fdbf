package quizsession

import (
	"errors"
	"time"

	"quizpay/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Sentinel errors let callers tell failure kinds apart instead of collapsing
// everything into one generic not-found code.
var (
	ErrNotFound       = errors.New("quizsession: record not found")
	ErrAnswerMismatch = errors.New("quizsession: answer does not belong to question")
)

// Service owns the quiz attempt lifecycle: get-or-create, answer submission,
// and mark recomputation.
type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// SubmitResult reports the outcome of one answer submission.
type SubmitResult struct {
	IsCorrect bool `json:"is_correct"`
	Marks     int  `json:"marks"`
	Duplicate bool `json:"duplicate"`
}

// GetOrCreateAttempt returns the user's attempt for the category, creating
// one with zero marks if absent. Idempotent per (user, category).
func (s *Service) GetOrCreateAttempt(userID, categoryID uint) (*models.QuizAttempt, error) {
	var category models.Category
	if err := s.db.Where("id = ? AND is_deleted = false", categoryID).First(&category).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	var attempt models.QuizAttempt
	err := s.db.Where("user_id = ? AND category_id = ? AND is_deleted = false", userID, categoryID).
		First(&attempt).Error
	if err == nil {
		return &attempt, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	attempt = models.QuizAttempt{
		UID:        uuid.NewString(),
		UserID:     userID,
		CategoryID: categoryID,
		Marks:      0,
		TotalMarks: 0,
		Status:     models.AttemptStatusInProgress,
		StartTime:  time.Now(),
	}
	if err := s.db.Create(&attempt).Error; err != nil {
		return nil, err
	}
	return &attempt, nil
}

// SubmitAnswer records the chosen answer for a question within the user's
// attempt. The first submission per question wins regardless of correctness;
// later ones come back with Duplicate set and marks unchanged. Points equal
// the question's mark when the chosen answer is correct, zero otherwise.
func (s *Service) SubmitAnswer(userID, questionID, answerID uint, timeTaken int) (*SubmitResult, error) {
	var answer models.Answer
	if err := s.db.Where("id = ? AND is_deleted = false", answerID).First(&answer).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if answer.QuestionID != questionID {
		return nil, ErrAnswerMismatch
	}

	var question models.Question
	if err := s.db.Where("id = ? AND is_deleted = false", questionID).First(&question).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	var attempt models.QuizAttempt
	err := s.db.Where("user_id = ? AND category_id = ? AND is_deleted = false", userID, question.CategoryID).
		First(&attempt).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	// Duplicate detection by existence of a recorded answer for this
	// question inside the attempt.
	var existing models.GivenQuizQuestion
	err = s.db.Where("quiz_attempt_id = ? AND question_id = ?", attempt.ID, questionID).
		First(&existing).Error
	if err == nil {
		return &SubmitResult{
			IsCorrect: answer.IsCorrect,
			Marks:     attempt.Marks,
			Duplicate: true,
		}, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	points := 0
	if answer.IsCorrect {
		points = question.Mark
	}

	given := models.GivenQuizQuestion{
		QuizAttemptID: attempt.ID,
		QuestionID:    questionID,
		AnswerID:      answerID,
		TimeTaken:     timeTaken,
		Points:        points,
	}
	if err := s.db.Create(&given).Error; err != nil {
		return nil, err
	}

	marks, err := s.RecomputeMarks(&attempt)
	if err != nil {
		return nil, err
	}

	return &SubmitResult{
		IsCorrect: answer.IsCorrect,
		Marks:     marks,
		Duplicate: false,
	}, nil
}

// RecomputeMarks sums points across the attempt's recorded answers and
// writes the total back only when it changed. Safe to call repeatedly; it
// keeps no memory of prior calls.
func (s *Service) RecomputeMarks(attempt *models.QuizAttempt) (int, error) {
	var total int64
	err := s.db.Model(&models.GivenQuizQuestion{}).
		Where("quiz_attempt_id = ?", attempt.ID).
		Select("COALESCE(SUM(points), 0)").
		Scan(&total).Error
	if err != nil {
		return 0, err
	}

	marks := int(total)
	if attempt.Marks != marks {
		attempt.Marks = marks
		if err := s.db.Model(&models.QuizAttempt{}).Where("id = ?", attempt.ID).
			Update("marks", marks).Error; err != nil {
			return 0, err
		}
	}
	return marks, nil
}

// RefreshAttempt is the explicit finalize-or-refresh operation: it recomputes
// marks, derives the attempt's total from the category's question marks, and
// sets the end time from the category time budget. Callers invoke it when
// they want the attempt brought up to date; nothing runs it implicitly.
func (s *Service) RefreshAttempt(attempt *models.QuizAttempt) error {
	if _, err := s.RecomputeMarks(attempt); err != nil {
		return err
	}

	var category models.Category
	if err := s.db.Where("id = ?", attempt.CategoryID).First(&category).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}

	var totalMarks int64
	if err := s.db.Model(&models.Question{}).
		Where("category_id = ? AND is_deleted = false", category.ID).
		Select("COALESCE(SUM(mark), 0)").
		Scan(&totalMarks).Error; err != nil {
		return err
	}

	endTime := attempt.StartTime.Add(time.Duration(category.TotalTime) * time.Minute)
	attempt.TotalMarks = int(totalMarks)
	attempt.EndTime = &endTime

	return s.db.Model(&models.QuizAttempt{}).Where("id = ?", attempt.ID).
		Updates(map[string]interface{}{
			"total_marks": attempt.TotalMarks,
			"end_time":    endTime,
		}).Error
}

// AttemptedAnswer is one answer row in the attempted-question review payload.
type AttemptedAnswer struct {
	AnswerID   uint `json:"answer_id"`
	IsCorrect  bool `json:"is_correct"`
	IsSelected bool `json:"is_selected"`
}

// AttemptedQuestion returns the review payload for a question the user has
// already answered: every answer of the question plus which one was chosen.
func (s *Service) AttemptedQuestion(userID, questionID uint) ([]AttemptedAnswer, error) {
	var given models.GivenQuizQuestion
	err := s.db.Joins("JOIN quiz_attempts ON quiz_attempts.id = given_quiz_questions.quiz_attempt_id").
		Where("quiz_attempts.user_id = ? AND given_quiz_questions.question_id = ?", userID, questionID).
		First(&given).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	var answers []models.Answer
	if err := s.db.Where("question_id = ? AND is_deleted = false", questionID).
		Order("id").Find(&answers).Error; err != nil {
		return nil, err
	}

	payload := make([]AttemptedAnswer, len(answers))
	for i, a := range answers {
		payload[i] = AttemptedAnswer{
			AnswerID:   a.ID,
			IsCorrect:  a.IsCorrect,
			IsSelected: a.ID == given.AnswerID,
		}
	}
	return payload, nil
}

// CategoryTotals aggregates marks and attempt counts for one category.
func (s *Service) CategoryTotals(categoryID uint) (totalMarks int, totalAttempts int, err error) {
	var row struct {
		TotalMarks    int64
		TotalAttempts int64
	}
	err = s.db.Model(&models.QuizAttempt{}).
		Where("category_id = ? AND is_deleted = false", categoryID).
		Select("COALESCE(SUM(marks), 0) AS total_marks, COUNT(*) AS total_attempts").
		Scan(&row).Error
	if err != nil {
		return 0, 0, err
	}
	return int(row.TotalMarks), int(row.TotalAttempts), nil
}
