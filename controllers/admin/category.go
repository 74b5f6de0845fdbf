package adminController

import (
	"strconv"

	"quizpay/config"
	"quizpay/database"
	"quizpay/middleware"
	"quizpay/models"
	"quizpay/utils"

	"github.com/gofiber/fiber/v2"
)

// CreateCategory creates a quiz category with optional image and PDF uploads
func CreateCategory(c *fiber.Ctx) error {
	name := c.FormValue("name")
	description := c.FormValue("description")
	totalTime, _ := strconv.Atoi(c.FormValue("total_time", "60"))

	if name == "" {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Category name is required!", nil)
	}
	if totalTime < 1 {
		totalTime = 60
	}

	db := database.Database.Db

	if err := db.Where("name = ? AND is_deleted = false", name).First(&models.Category{}).Error; err == nil {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Category already exists!", nil)
	}

	category := models.Category{
		Name:        name,
		Description: description,
		TotalTime:   totalTime,
	}

	if file, err := c.FormFile("image"); err == nil {
		path, err := utils.SaveUploadedFile(file, config.AppConfig.UploadDir)
		if err != nil {
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to save image!", nil)
		}
		category.Image = path
	}

	if file, err := c.FormFile("pdf_file"); err == nil {
		path, err := utils.SaveUploadedFile(file, config.AppConfig.UploadDir)
		if err != nil {
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to save PDF!", nil)
		}
		category.PDFFile = path
	}

	if err := db.Create(&category).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create category!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Category created!", category)
}

// AddQuestion adds a question with its answers to a category
func AddQuestion(c *fiber.Ctx) error {
	categoryId, err := c.ParamsInt("id")
	if err != nil || categoryId < 1 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid category id!", nil)
	}

	db := database.Database.Db

	var category models.Category
	if err := db.Where("id = ? AND is_deleted = false", categoryId).First(&category).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Category not found!", nil)
	}

	reqData := new(struct {
		Text    string `json:"text"`
		Mark    int    `json:"mark"`
		Answers []struct {
			Text      string `json:"text"`
			IsCorrect bool   `json:"is_correct"`
		} `json:"answers"`
	})
	if err := c.BodyParser(reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	if reqData.Text == "" {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Question text is required!", nil)
	}
	if len(reqData.Answers) == 0 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "At least one answer is required!", nil)
	}
	if reqData.Mark < 1 {
		reqData.Mark = 5
	}

	question := models.Question{
		CategoryID: uint(categoryId),
		Text:       reqData.Text,
		Mark:       reqData.Mark,
	}

	tx := db.Begin()

	if err := tx.Create(&question).Error; err != nil {
		tx.Rollback()
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create question!", nil)
	}

	answers := make([]models.Answer, len(reqData.Answers))
	for i, a := range reqData.Answers {
		answers[i] = models.Answer{
			QuestionID: question.ID,
			Text:       a.Text,
			IsCorrect:  a.IsCorrect,
		}
	}
	if err := tx.Create(&answers).Error; err != nil {
		tx.Rollback()
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create answers!", nil)
	}

	tx.Commit()

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Question created!", fiber.Map{
		"question": question,
		"answers":  answers,
	})
}
