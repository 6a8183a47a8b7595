package configs

import (
	"fmt"
	"os"
	"strconv"
)

type Config struct {
	AppPort string
	BaseURL string

	DBHost string
	DBPort string
	DBUser string
	DBPass string
	DBName string

	JWTSecret        string
	AccessTokenMins  int
	ConfirmTokenMins int

	MailgunDomain string
	MailgunAPIKey string
	MailFrom      string

	ImageGenURL    string
	ImageGenAPIKey string

	S3Endpoint  string
	S3AccessKey string
	S3SecretKey string
	S3Bucket    string
	S3UseSSL    bool
}

func LoadConfig() *Config {
	return &Config{
		AppPort: getEnv("APP_PORT", ":8080"),
		BaseURL: getEnv("BASE_URL", "http://localhost:8080"),

		DBHost: getEnv("DB_HOST", "localhost"),
		DBPort: getEnv("DB_PORT", "5432"),
		DBUser: getEnv("DB_USER", "postgres"),
		DBPass: getEnv("DB_PASS", "postgres"),
		DBName: getEnv("DB_NAME", "store_db"),

		JWTSecret:        getEnv("JWT_SECRET", "replace-this-with-a-strong-secret"),
		AccessTokenMins:  getEnvInt("ACCESS_TOKEN_MINUTES", 30),
		ConfirmTokenMins: getEnvInt("CONFIRM_TOKEN_MINUTES", 1440),

		MailgunDomain: getEnv("MAILGUN_DOMAIN", ""),
		MailgunAPIKey: getEnv("MAILGUN_API_KEY", ""),
		MailFrom:      getEnv("MAIL_FROM", ""),

		ImageGenURL:    getEnv("IMAGEGEN_URL", "https://api.deepai.org/api/cute-creature-generator"),
		ImageGenAPIKey: getEnv("IMAGEGEN_API_KEY", ""),

		S3Endpoint:  getEnv("S3_ENDPOINT", "localhost:9000"),
		S3AccessKey: getEnv("S3_ACCESS_KEY", "minio"),
		S3SecretKey: getEnv("S3_SECRET_KEY", "minio123"),
		S3Bucket:    getEnv("S3_BUCKET_NAME", "uploads"),
		S3UseSSL:    getEnv("S3_USE_SSL", "false") == "true",
	}
}

func (c *Config) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		c.DBHost, c.DBPort, c.DBUser, c.DBPass, c.DBName,
	)
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		if n, err := strconv.Atoi(val); err == nil && n > 0 {
			return n
		}
	}
	return fallback
}
