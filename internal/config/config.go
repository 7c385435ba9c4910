package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App     AppConfig
	Ai      AIConfig
	Summary SummaryConfig
	Session SessionConfig
	Assets  AssetsConfig
	Tracing TracingConfig
}

type AppConfig struct {
	Port               string
	Environment        string
	LogFilePath        string
	LogLevel           string
	LogMaxSizeMB       int
	LogMaxBackups      int
	LogMaxAgeDays      int
	CorsAllowedOrigins string
	MaxUploadMB        int
	RedisURL           string
	EventsTopic        string
}

type AIConfig struct {
	Provider           string // "huggingface"
	BaseURL            string
	ApiKey             string
	SummarizationModel string
	TranslationModel   string
	RequestTimeout     time.Duration
}

// SummaryConfig holds the slider bounds and defaults of the summary page.
type SummaryConfig struct {
	MinLengthDefault int
	MaxLengthDefault int
}

type SessionConfig struct {
	Store           string // "memory" or "redis"
	TTL             time.Duration
	CleanupInterval time.Duration
	Secret          string
	CookieName      string
}

type AssetsConfig struct {
	Dir         string
	BannerImage string
	LogoImage   string
}

type TracingConfig struct {
	Enabled     bool
	Endpoint    string
	ServiceName string
	SampleRatio float64
}

const devSessionSecret = "dev-only-session-secret"

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	cfg := &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "8501"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "logs/summarizer.log"),
			LogLevel:           getEnv("LOG_LEVEL", "info"),
			LogMaxSizeMB:       getEnvAsInt("LOG_MAX_SIZE_MB", 10),
			LogMaxBackups:      getEnvAsInt("LOG_MAX_BACKUPS", 5),
			LogMaxAgeDays:      getEnvAsInt("LOG_MAX_AGE_DAYS", 30),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "*"),
			MaxUploadMB:        getEnvAsInt("MAX_UPLOAD_MB", 10),
			RedisURL:           getEnv("REDIS_URL", "redis://localhost:6379"),
			EventsTopic:        getEnv("EVENTS_TOPIC", "summarizer.events"),
		},
		Ai: AIConfig{
			Provider:           getEnv("INFERENCE_PROVIDER", "huggingface"),
			BaseURL:            getEnv("HF_BASE_URL", "https://router.huggingface.co/hf-inference/models"),
			ApiKey:             getEnv("HF_API_KEY", ""),
			SummarizationModel: getEnv("SUMMARIZATION_MODEL", "google-t5/t5-small"),
			TranslationModel:   getEnv("TRANSLATION_MODEL", "Helsinki-NLP/opus-mt-en-ur"),
			RequestTimeout:     getEnvAsDuration("INFERENCE_TIMEOUT", 120*time.Second),
		},
		Summary: SummaryConfig{
			MinLengthDefault: getEnvAsInt("SUMMARY_MIN_LENGTH_DEFAULT", 20),
			MaxLengthDefault: getEnvAsInt("SUMMARY_MAX_LENGTH_DEFAULT", 250),
		},
		Session: SessionConfig{
			Store:           getEnv("SESSION_STORE", "memory"),
			TTL:             getEnvAsDuration("SESSION_TTL", time.Hour),
			CleanupInterval: getEnvAsDuration("SESSION_CLEANUP_INTERVAL", 10*time.Minute),
			Secret:          getEnv("SESSION_SECRET", devSessionSecret),
			CookieName:      getEnv("SESSION_COOKIE_NAME", "summarizer_session"),
		},
		Assets: AssetsConfig{
			Dir:         getEnv("ASSETS_DIR", "./assets"),
			BannerImage: getEnv("BANNER_IMAGE", "banner.svg"),
			LogoImage:   getEnv("LOGO_IMAGE", "logo.svg"),
		},
		Tracing: TracingConfig{
			Enabled:     getEnv("OTEL_ENABLED", "false") == "true",
			Endpoint:    getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4318"),
			ServiceName: getEnv("OTEL_SERVICE_NAME", "text-summarizer-backend"),
			SampleRatio: getEnvAsFloat("OTEL_SAMPLE_RATIO", 1),
		},
	}

	if cfg.Session.Secret == devSessionSecret {
		log.Println("[WARN] SESSION_SECRET is not set, using the development secret")
	}

	return cfg
}

func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

func (c *Config) MaxUploadBytes() int {
	return c.App.MaxUploadMB * 1024 * 1024
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

func getEnvAsFloat(key string, fallback float64) float64 {
	strValue := getEnv(key, "")
	if value, err := strconv.ParseFloat(strValue, 64); err == nil {
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
