package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	Port      string
	JWTKey    string
	SaltRound int

	EmailSender string
	Password    string // SMTP Password

	UploadDir string // Destination for category images and PDFs

	ChapaSecret      string
	ChapaAPIURL      string
	ChapaAPIVersion  string
	ChapaCallbackURL string
	ChapaReturnURL   string
}

// AppConfig is a global variable to access configuration
var AppConfig *Config

// LoadConfig initializes configuration from environment variables or defaults
func LoadConfig() {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found. Using system environment variables.")
	}

	AppConfig = &Config{
		Port:      getEnv("PORT", "3000"),
		JWTKey:    getEnv("JWT_SECRET_KEY", "defaultSecret"),
		SaltRound: getEnvInt("SALT_ROUND", 10),

		EmailSender: getEnv("EMAIL_SENDER", ""),
		Password:    getEnv("PASSWORD", ""),

		UploadDir: getEnv("UPLOAD_DIR", "./public/uploads"),

		ChapaSecret:      getEnv("CHAPA_SECRET", ""),
		ChapaAPIURL:      getEnv("CHAPA_API_URL", "https://api.chapa.co"),
		ChapaAPIVersion:  getEnv("CHAPA_API_VERSION", "v1"),
		ChapaCallbackURL: getEnv("CHAPA_CALLBACK_URL", "http://127.0.0.1:3000/payment/callback"),
		ChapaReturnURL:   getEnv("CHAPA_RETURN_URL", "http://127.0.0.1:3000/payment/return"),
	}

	// Validate critical configuration
	if AppConfig.JWTKey == "defaultSecret" {
		log.Println("Warning: Using default JWT_SECRET_KEY. Update it in your environment.")
	}
	if AppConfig.ChapaSecret == "" {
		log.Println("Warning: CHAPA_SECRET is not set. Payment initialization will fail.")
	}
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// getEnvInt retrieves an environment variable as an integer or returns the default integer value
func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	intValue, err := strconv.Atoi(value)
	if err != nil {
		log.Printf("Error converting environment variable %s to int: %v", key, err)
		return defaultValue
	}
	return intValue
}
