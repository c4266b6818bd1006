package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/AtharvaKhot17/QuickHireAI/internal/providers/llm"
)

type AppConfig struct {
	Server    ServerConfig
	Interview InterviewConfig
	Session   SessionConfig
	Auth      AuthConfig
	Reports   ReportConfig
	Storage   StorageConfig
	Speech    SpeechConfig
	LLM       llm.Config
}

type ServerConfig struct {
	Port            string
	GinMode         string
	CORSOrigins     []string
	ShutdownTimeout time.Duration
	AutoMigrate     bool
}

type InterviewConfig struct {
	TotalQuestions   int
	MaxQuestions     int
	QuestionBankPath string
}

type SessionConfig struct {
	Store         string // memory | redis | mongo
	TTL           time.Duration
	SweepInterval time.Duration
}

type AuthConfig struct {
	JWTSecret string
	JWTIssuer string
	JWTTTL    time.Duration
}

type ReportConfig struct {
	Workers int
	Stream  string
}

type StorageConfig struct {
	GCSBucket string
	GCSPrefix string
}

type SpeechConfig struct {
	Enabled bool
}

func LoadAppConfig() *AppConfig {
	return &AppConfig{
		Server: ServerConfig{
			Port:            getEnv("PORT", "8080"),
			GinMode:         getEnv("GIN_MODE", ""),
			CORSOrigins:     getEnvAsList("CORS_ORIGINS", []string{"http://localhost:5173"}),
			ShutdownTimeout: getEnvAsDuration("SHUTDOWN_TIMEOUT", 15*time.Second),
			AutoMigrate:     getEnvAsBool("AUTO_MIGRATE", true),
		},
		Interview: InterviewConfig{
			TotalQuestions:   getEnvAsInt("INTERVIEW_TOTAL_QUESTIONS", 5),
			MaxQuestions:     getEnvAsInt("INTERVIEW_MAX_QUESTIONS", 20),
			QuestionBankPath: getEnv("QUESTION_BANK_PATH", ""),
		},
		Session: SessionConfig{
			Store:         strings.ToLower(getEnv("SESSION_STORE", "memory")),
			TTL:           getEnvAsDuration("SESSION_TTL", 24*time.Hour),
			SweepInterval: getEnvAsDuration("SESSION_SWEEP_INTERVAL", 10*time.Minute),
		},
		Auth: AuthConfig{
			JWTSecret: getEnv("JWT_SECRET", ""),
			JWTIssuer: getEnv("JWT_ISSUER", "quickhire"),
			JWTTTL:    getEnvAsDuration("JWT_TTL", 24*time.Hour),
		},
		Reports: ReportConfig{
			Workers: getEnvAsInt("REPORT_WORKERS", 2),
			Stream:  getEnv("REPORT_STREAM", "interview:completed"),
		},
		Storage: StorageConfig{
			GCSBucket: getEnv("GCS_BUCKET", ""),
			GCSPrefix: getEnv("GCS_PREFIX", "quickhire"),
		},
		Speech: SpeechConfig{
			Enabled: getEnvAsBool("SPEECH_ENABLED", false),
		},
		LLM: loadLLMConfig(),
	}
}

func loadLLMConfig() llm.Config {
	c := llm.DefaultConfig()
	c.Provider = strings.ToLower(getEnv("LLM_PROVIDER", c.Provider))
	c.Gemini.APIKey = getEnv("GEMINI_API_KEY", "")
	c.Gemini.Model = getEnv("GEMINI_MODEL", c.Gemini.Model)
	c.Gemini.EmbeddingModel = getEnv("EMBEDDING_MODEL", c.Gemini.EmbeddingModel)
	c.Vertex.ProjectID = getEnv("VERTEX_PROJECT", "")
	c.Vertex.Location = getEnv("VERTEX_LOCATION", c.Vertex.Location)
	c.Vertex.Model = getEnv("VERTEX_MODEL", c.Vertex.Model)
	c.OpenAI.APIKey = getEnv("OPENAI_API_KEY", "")
	c.OpenAI.Model = getEnv("OPENAI_MODEL", c.OpenAI.Model)
	c.OpenAI.BaseURL = getEnv("OPENAI_BASE_URL", "")
	c.Anthropic.APIKey = getEnv("ANTHROPIC_API_KEY", "")
	c.Anthropic.Model = getEnv("ANTHROPIC_MODEL", c.Anthropic.Model)
	c.Timeout = getEnvAsDuration("LLM_TIMEOUT", c.Timeout)
	c.Retry.MaxAttempts = getEnvAsInt("LLM_MAX_ATTEMPTS", c.Retry.MaxAttempts)
	return c
}

func getEnv(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(strings.TrimSpace(value)); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(strings.TrimSpace(value)); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(strings.TrimSpace(value)); err == nil {
			return duration
		}
	}
	return defaultValue
}

func getEnvAsList(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}
