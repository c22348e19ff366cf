package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App       AppConfig
	Database  DatabaseConfig
	SMTP      SMTPConfig
	Google    GoogleConfig
	SecureGPT SecureGPTConfig
	Export    ExportConfig
	Models    ModelConfig
}

type AppConfig struct {
	Port               string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
	NatsURL            string
	RedisURL           string
	SessionTTL         time.Duration
}

type DatabaseConfig struct {
	Connection string
}

type SMTPConfig struct {
	Host       string
	Port       int
	Email      string
	Password   string
	SenderName string
}

type GoogleConfig struct {
	ProjectID       string
	Location        string
	Bucket          string
	ServiceAccount  string
	MemoOutlineURI  string
	MemoOutlineMime string
	HeadingsPath    string
	SubheadingsPath string
}

type SecureGPTConfig struct {
	TokenURL     string
	APIURL       string
	ClientID     string
	ClientSecret string
}

type ExportConfig struct {
	PandocPath string
	PDFEngine  string
	Margin     string
}

type ModelConfig struct {
	SummaryModel string
	ChatModel    string
	MemoModel    string
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, using system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "3000"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "app.log.csv"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
			NatsURL:            getEnv("NATS_URL", "nats://localhost:4222"),
			RedisURL:           getEnv("REDIS_URL", "redis://localhost:6379"),
			SessionTTL:         getEnvAsDuration("SESSION_TTL", 4*time.Hour),
		},
		Database: DatabaseConfig{
			Connection: getEnv("DB_CONNECTION_STRING", ""),
		},
		SMTP: SMTPConfig{
			Host:       getEnv("SMTP_HOST", ""),
			Port:       getEnvAsInt("SMTP_PORT", 587),
			Email:      getEnv("SMTP_EMAIL", ""),
			Password:   getEnv("SMTP_PASSWORD", ""),
			SenderName: getEnv("SMTP_SENDER_NAME", "CIM Memo"),
		},
		Google: GoogleConfig{
			ProjectID:       getEnv("GOOGLE_CLOUD_PROJECT", ""),
			Location:        getEnv("GOOGLE_CLOUD_LOCATION", "us-central1"),
			Bucket:          getEnv("GOOGLE_CLOUD_BUCKET", ""),
			ServiceAccount:  getEnv("GOOGLE_SERVICE_ACCOUNT", ""),
			MemoOutlineURI:  getEnv("MEMO_OUTLINE_URI", ""),
			MemoOutlineMime: getEnv("MEMO_OUTLINE_MIME", "application/pdf"),
			HeadingsPath:    getEnv("MEMO_HEADINGS_PATH", ""),
			SubheadingsPath: getEnv("MEMO_SUBHEADINGS_PATH", ""),
		},
		SecureGPT: SecureGPTConfig{
			TokenURL:     getEnv("SECURE_GPT_TOKEN_URL", ""),
			APIURL:       getEnv("SECURE_GPT_API_URL", ""),
			ClientID:     getEnv("SECURE_GPT_CLIENT_ID", ""),
			ClientSecret: getEnv("SECURE_GPT_CLIENT_SECRET", ""),
		},
		Export: ExportConfig{
			PandocPath: getEnv("PANDOC_PATH", "pandoc"),
			PDFEngine:  getEnv("PANDOC_PDF_ENGINE", "pdflatex"),
			Margin:     getEnv("PANDOC_PDF_MARGIN", "1.5cm"),
		},
		Models: ModelConfig{
			SummaryModel: getEnv("SUMMARY_MODEL", "gemini-2.5-flash"),
			ChatModel:    getEnv("CHAT_MODEL", "gemini-2.5-flash"),
			MemoModel:    getEnv("MEMO_MODEL", "gemini-2.5-pro"),
		},
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	strValue := getEnv(key, "")
	if value, err := strconv.Atoi(strValue); err == nil {
		return value
	}
	return fallback
}

func getEnvAsDuration(key string, fallback time.Duration) time.Duration {
	strValue := getEnv(key, "")
	if value, err := time.ParseDuration(strValue); err == nil {
		return value
	}
	return fallback
}
