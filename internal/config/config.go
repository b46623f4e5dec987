package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port        string
	DatabaseURL string
	LogLevel    string
	CORSOrigins []string

	// S3 archive of uploaded files; disabled when S3Endpoint is empty
	S3Endpoint        string
	S3AccessKeyID     string
	S3SecretAccessKey string
	S3BucketName      string
	S3UseSSL          bool

	// Completion service
	OpenAIAPIKey      string
	OpenAIBaseURL     string
	OpenAIModel       string
	CompletionTimeout time.Duration
	CompletionRetries int
	PromptTemplate    string
	PromptFile        string

	// Outbound mail; a logging mailer is used when SMTPHost is empty
	SMTPHost         string
	SMTPPort         int
	SMTPUsername     string
	SMTPPassword     string
	DefaultFromEmail string

	JWTSecret string

	StrictReportTransitions bool
	TesseractPath           string

	// Upload limits
	MaxFileSize int64
}

// DefaultModel is the fine-tuned contract-law model.
const DefaultModel = "ft:gpt-3.5-turbo-0125:personal:legal-assistance:BFR7HUPE"

// Load reads configuration from the environment, after merging an optional .env file.
func Load() (*Config, error) {
	_ = godotenv.Load()
	return FromEnv()
}

func FromEnv() (*Config, error) {
	timeout, err := time.ParseDuration(getEnv("COMPLETION_TIMEOUT", "120s"))
	if err != nil {
		return nil, fmt.Errorf("invalid COMPLETION_TIMEOUT: %w", err)
	}

	retries, err := strconv.Atoi(getEnv("COMPLETION_RETRIES", "1"))
	if err != nil || retries < 0 {
		return nil, fmt.Errorf("invalid COMPLETION_RETRIES %q", os.Getenv("COMPLETION_RETRIES"))
	}

	smtpPort, err := strconv.Atoi(getEnv("SMTP_PORT", "587"))
	if err != nil {
		return nil, fmt.Errorf("invalid SMTP_PORT: %w", err)
	}

	maxFileSize, err := strconv.ParseInt(getEnv("MAX_FILE_SIZE", strconv.Itoa(10<<20)), 10, 64)
	if err != nil || maxFileSize <= 0 {
		return nil, fmt.Errorf("invalid MAX_FILE_SIZE %q", os.Getenv("MAX_FILE_SIZE"))
	}

	cfg := &Config{
		Port:                    getEnv("PORT", "8080"),
		DatabaseURL:             getEnv("DATABASE_URL", "data/contracts.db"),
		LogLevel:                getEnv("LOG_LEVEL", "info"),
		CORSOrigins:             splitList(getEnv("CORS_ORIGINS", "*")),
		S3Endpoint:              getEnv("S3_ENDPOINT", ""),
		S3AccessKeyID:           getEnv("S3_ACCESS_KEY_ID", "minioadmin"),
		S3SecretAccessKey:       getEnv("S3_SECRET_ACCESS_KEY", "minioadmin"),
		S3BucketName:            getEnv("S3_BUCKET_NAME", "documents"),
		S3UseSSL:                getEnv("S3_USE_SSL", "false") == "true",
		OpenAIAPIKey:            getEnv("OPENAI_API_KEY", ""),
		OpenAIBaseURL:           getEnv("OPENAI_BASE_URL", ""),
		OpenAIModel:             getEnv("OPENAI_MODEL", DefaultModel),
		CompletionTimeout:       timeout,
		CompletionRetries:       retries,
		PromptTemplate:          getEnv("PROMPT_TEMPLATE", "legal_officer"),
		PromptFile:              getEnv("PROMPT_FILE", ""),
		SMTPHost:                getEnv("SMTP_HOST", ""),
		SMTPPort:                smtpPort,
		SMTPUsername:            getEnv("SMTP_USERNAME", ""),
		SMTPPassword:            getEnv("SMTP_PASSWORD", ""),
		DefaultFromEmail:        getEnv("DEFAULT_FROM_EMAIL", "noreply@localhost"),
		JWTSecret:               getEnv("JWT_SECRET", ""),
		StrictReportTransitions: getEnv("STRICT_REPORT_TRANSITIONS", "false") == "true",
		TesseractPath:           getEnv("TESSERACT_PATH", "tesseract"),
		MaxFileSize:             maxFileSize,
	}

	if cfg.OpenAIAPIKey == "" {
		return nil, fmt.Errorf("OPENAI_API_KEY is required")
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
