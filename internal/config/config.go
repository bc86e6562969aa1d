package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App      AppConfig
	Session  SessionConfig
	Pipeline PipelineConfig
	Ai       AIConfig
	Keys     APIKeys
}

type AppConfig struct {
	Port               string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
	RedisURL           string
}

type SessionConfig struct {
	Store         string // "redis" or "memory"
	TTL           time.Duration
	HistoryWindow int
}

type PipelineConfig struct {
	ChunkSize  int
	Overlap    int
	RetrievalK int
}

type AIConfig struct {
	EmbeddingProvider string // "ollama", "openai" or "gemini"
	EmbeddingModel    string
	OllamaBaseURL     string
	LLMProvider       string // "openai", "gemini" or "ollama"
	LLMModel          string
}

type APIKeys struct {
	OpenAI       string
	GoogleGemini string
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, using system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "8000"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "app.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:3000"),
			RedisURL:           getEnv("REDIS_URL", "redis://localhost:6379"),
		},
		Session: SessionConfig{
			Store:         getEnv("SESSION_STORE", "redis"),
			TTL:           getEnvAsDuration("SESSION_TTL", 24*time.Hour),
			HistoryWindow: getEnvAsInt("HISTORY_WINDOW", 5),
		},
		Pipeline: PipelineConfig{
			ChunkSize:  getEnvAsInt("CHUNK_SIZE", 500),
			Overlap:    getEnvAsInt("CHUNK_OVERLAP", 50),
			RetrievalK: getEnvAsInt("RETRIEVAL_K", 3),
		},
		Ai: AIConfig{
			EmbeddingProvider: getEnv("EMBEDDING_PROVIDER", "ollama"),
			EmbeddingModel:    getEnv("EMBEDDING_MODEL", ""),
			OllamaBaseURL:     getEnv("OLLAMA_BASE_URL", "http://localhost:11434"),
			LLMProvider:       getEnv("LLM_PROVIDER", "openai"),
			LLMModel:          getEnv("LLM_MODEL", ""),
		},
		Keys: APIKeys{
			OpenAI:       getEnv("OPENAI_API_KEY", ""),
			GoogleGemini: getEnv("GEMINI_API_KEY", ""),
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
