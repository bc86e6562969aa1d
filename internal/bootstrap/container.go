package bootstrap

import (
	"context"
	"log"

	goredis "github.com/redis/go-redis/v9"

	"docchat-be/internal/config"
	"docchat-be/internal/controller"
	"docchat-be/internal/pkg/logger"
	"docchat-be/internal/repository/contract"
	"docchat-be/internal/repository/memory"
	redisrepo "docchat-be/internal/repository/redis"
	"docchat-be/internal/service"
	"docchat-be/pkg/embedding"
	"docchat-be/pkg/extractor"
	"docchat-be/pkg/llm/factory"
)

type Container struct {
	// Controllers
	SessionController controller.ISessionController
	ChatController    controller.IChatController

	// Exposed for graceful shutdown
	Logger logger.ILogger
}

func NewContainer(cfg *config.Config) *Container {
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	// Session store: redis with native TTL by default, go-cache for
	// single-process development.
	var sessionRepo contract.ISessionRepository
	if cfg.Session.Store == "memory" {
		sessionRepo = memory.NewSessionRepository(cfg.Session.HistoryWindow)
		log.Printf("[INFO] Using Session Store: MEMORY")
	} else {
		opt, err := goredis.ParseURL(cfg.App.RedisURL)
		if err != nil {
			log.Printf("[WARN] Failed to parse Redis URL: %v. Using direct Addr", err)
			opt = &goredis.Options{
				Addr: cfg.App.RedisURL,
			}
		}
		rdb := goredis.NewClient(opt)
		if _, err := rdb.Ping(context.Background()).Result(); err != nil {
			log.Printf("[WARN] Failed to connect to Redis: %v", err)
		}
		sessionRepo = redisrepo.NewSessionRepository(rdb, cfg.Session.HistoryWindow)
		log.Printf("[INFO] Using Session Store: REDIS")
	}

	// Embedding provider behind the lazy initialization gate: the backend is
	// constructed on first use, exactly once, no matter how many requests
	// race on it.
	embedder := embedding.NewLazy(func() (embedding.EmbeddingProvider, error) {
		switch cfg.Ai.EmbeddingProvider {
		case "openai":
			return embedding.NewOpenAIProvider(cfg.Keys.OpenAI, cfg.Ai.EmbeddingModel)
		case "gemini":
			return embedding.NewGeminiProvider(cfg.Keys.GoogleGemini, cfg.Ai.EmbeddingModel), nil
		default:
			return embedding.NewOllamaProvider(cfg.Ai.OllamaBaseURL, cfg.Ai.EmbeddingModel), nil
		}
	})
	log.Printf("[INFO] Using Embedding Provider: %s", cfg.Ai.EmbeddingProvider)

	// Generation backend is selected once at startup; an unknown provider
	// name is fatal here instead of failing every request later.
	llmProvider, err := factory.NewLLMProvider(cfg.Ai.LLMProvider, factory.Config{
		ModelName:     cfg.Ai.LLMModel,
		OpenAIKey:     cfg.Keys.OpenAI,
		GeminiKey:     cfg.Keys.GoogleGemini,
		OllamaBaseURL: cfg.Ai.OllamaBaseURL,
	})
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize LLM Provider: %v", err)
	}
	log.Printf("[INFO] Using LLM Provider: %s (%s)", cfg.Ai.LLMProvider, cfg.Ai.LLMModel)

	sessionService := service.NewSessionService(sessionRepo, cfg.Session.TTL, sysLogger)
	chatService := service.NewChatService(
		sessionRepo,
		extractor.NewPDF(),
		embedder,
		llmProvider,
		service.PipelineConfig{
			ChunkSize:  cfg.Pipeline.ChunkSize,
			Overlap:    cfg.Pipeline.Overlap,
			RetrievalK: cfg.Pipeline.RetrievalK,
		},
		sysLogger,
	)

	return &Container{
		SessionController: controller.NewSessionController(sessionService),
		ChatController:    controller.NewChatController(chatService),
		Logger:            sysLogger,
	}
}
