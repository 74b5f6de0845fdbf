package main

import (
	"log"

	"quizpay/config"
	paymentControllers "quizpay/controllers/payment"
	"quizpay/database"
	adminRoutes "quizpay/routers/adminRoutes"
	authRoutes "quizpay/routers/authRoutes"
	paymentRoutes "quizpay/routers/paymentRoutes"
	quizRoutes "quizpay/routers/quizRoutes"
	"quizpay/services/chapa"
	"quizpay/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
)

func main() {
	config.LoadConfig()
	database.ConnectDb()

	gateway, err := chapa.New(chapa.Config{
		Secret:      config.AppConfig.ChapaSecret,
		APIURL:      config.AppConfig.ChapaAPIURL,
		APIVersion:  config.AppConfig.ChapaAPIVersion,
		CallbackURL: config.AppConfig.ChapaCallbackURL,
		ReturnURL:   config.AppConfig.ChapaReturnURL,
	})
	if err != nil {
		log.Fatalf("Failed to configure payment gateway: %v", err)
	}
	paymentControllers.Gateway = gateway

	utils.InitializeAnalyticsScheduler()

	app := fiber.New()

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,PATCH,DELETE",
		AllowHeaders: "Content-Type,Authorization",
	}))

	// Enable the built-in logger middleware to log all requests
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${ip} ${method} ${path} ${status} ${latency}\n",
	}))

	// Serve uploaded category media
	app.Static("/", "./public")

	authRoutes.SetupAuthRoutes(app)
	quizRoutes.SetupQuizRoutes(app)
	paymentRoutes.SetupPaymentRoutes(app)
	adminRoutes.SetupAdminRoutes(app)

	log.Printf("Server is running on port %s", config.AppConfig.Port)
	log.Fatal(app.Listen(":" + config.AppConfig.Port))
}
