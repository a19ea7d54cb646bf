package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

const defaultMaxAvatarBytes = 5 * 1024 * 1024 // 5 MiB

// loads configuration from environment variables
func LoadEnvironmentVariables() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		_ = err // not an error - production environments may not have .env file
	}

	databaseURL := os.Getenv("DATABASE_URL")
	jwtSecret := os.Getenv("JWT_SECRET")
	sessionSecret := os.Getenv("SESSION_SECRET")
	environment := os.Getenv("ENVIRONMENT")
	baseURL := os.Getenv("BASE_URL")
	port := os.Getenv("PORT")

	if databaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL environment variable is required")
	}

	if jwtSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET environment variable is required")
	}

	if sessionSecret == "" {
		return nil, fmt.Errorf("SESSION_SECRET environment variable is required")
	}

	if environment == "" {
		environment = "development"
	}

	if baseURL == "" {
		baseURL = "http://localhost:8080"
	}

	if port == "" {
		port = "8080"
	}

	smtpPort := 587
	if p := os.Getenv("SMTP_PORT"); p != "" {
		parsed, err := strconv.Atoi(p)
		if err != nil {
			return nil, fmt.Errorf("invalid SMTP_PORT %q: %w", p, err)
		}
		smtpPort = parsed
	}

	maxAvatarBytes := int64(defaultMaxAvatarBytes)
	if m := os.Getenv("MAX_AVATAR_BYTES"); m != "" {
		parsed, err := strconv.ParseInt(m, 10, 64)
		if err != nil || parsed <= 0 {
			return nil, fmt.Errorf("invalid MAX_AVATAR_BYTES %q", m)
		}
		maxAvatarBytes = parsed
	}

	return &Config{
		DatabaseURL:   databaseURL,
		JWTSecret:     jwtSecret,
		SessionSecret: sessionSecret,
		Environment:   environment,
		BaseURL:       baseURL,
		Port:          port,

		GoogleClientID:     os.Getenv("GOOGLE_CLIENT_ID"),
		GoogleClientSecret: os.Getenv("GOOGLE_CLIENT_SECRET"),
		GithubClientID:     os.Getenv("GITHUB_CLIENT_ID"),
		GithubClientSecret: os.Getenv("GITHUB_CLIENT_SECRET"),

		SMTPHost:     os.Getenv("SMTP_HOST"),
		SMTPPort:     smtpPort,
		SMTPUser:     os.Getenv("SMTP_USER"),
		SMTPPassword: os.Getenv("SMTP_PASSWORD"),
		MailFrom:     os.Getenv("MAIL_FROM"),

		ContactEmailTo: os.Getenv("CONTACT_EMAIL_TO"),

		S3Bucket:          os.Getenv("S3_BUCKET"),
		S3Region:          os.Getenv("S3_REGION"),
		S3AccessKeyID:     os.Getenv("S3_ACCESS_KEY_ID"),
		S3SecretAccessKey: os.Getenv("S3_SECRET_ACCESS_KEY"),
		S3PublicBaseURL:   os.Getenv("S3_PUBLIC_BASE_URL"),

		MaxAvatarBytes: maxAvatarBytes,
	}, nil
}
