package bootstrap

import (
	"log"

	"rag-kb-be/internal/config"
	"rag-kb-be/internal/controller"
	"rag-kb-be/internal/pkg/logger"
	"rag-kb-be/internal/repository/memory"
	"rag-kb-be/internal/repository/unitofwork"
	"rag-kb-be/internal/service"
	"rag-kb-be/pkg/embedding"
	"rag-kb-be/pkg/llm/factory"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	IngestController     controller.IIngestController
	QueryController      controller.IQueryController
	SessionController    controller.ISessionController
	CollectionController controller.ICollectionController

	// Background services, exposed for main.go to run
	IngestService service.IIngestService

	Logger logger.ILogger
}

// llmBaseURL picks the completion endpoint for the configured provider.
// The openai and ollama hosts are configured independently; handing the
// factory the wrong one would silently point completions at the wrong
// service.
func llmBaseURL(ai *config.AIConfig) string {
	if ai.LLMProvider == "ollama" {
		return ai.OllamaBaseURL
	}
	return ai.OpenAIBaseURL
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// Core facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	// Event bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// Embedding provider
	var embeddingProvider embedding.Provider
	if cfg.Ai.EmbeddingProvider == "ollama" {
		embeddingProvider = embedding.NewOllamaProvider(
			cfg.Ai.OllamaBaseURL,
			cfg.Ai.OllamaModel,
		)
		log.Printf("[INFO] Using Embedding Provider: OLLAMA (%s)", cfg.Ai.OllamaModel)
	} else {
		embeddingProvider = embedding.NewOpenAIProvider(
			cfg.Ai.OpenAIBaseURL,
			cfg.Ai.OpenAIAPIKey,
			cfg.Ai.EmbeddingModel,
		)
		log.Printf("[INFO] Using Embedding Provider: OPENAI (%s)", cfg.Ai.EmbeddingModel)
	}

	// LLM provider
	llmProvider, err := factory.NewLLMProvider(
		cfg.Ai.LLMProvider,
		cfg.Ai.LLMModel,
		llmBaseURL(&cfg.Ai),
		cfg.Ai.OpenAIAPIKey,
	)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize LLM Provider: %v", err)
	}
	log.Printf("[INFO] Using LLM Provider: %s (%s)", cfg.Ai.LLMProvider, cfg.Ai.LLMModel)

	// In-memory job status store
	jobStatusRepo := memory.NewJobStatusRepository()

	// Services
	publisherService := service.NewPublisherService(cfg.Ingest.TopicName, pubSub)
	ingestService := service.NewIngestService(
		uowFactory,
		embeddingProvider,
		publisherService,
		jobStatusRepo,
		pubSub,
		sysLogger,
		cfg.Ingest,
		cfg.Ai.EmbeddingModel,
	)
	qaService := service.NewQaService(
		uowFactory,
		embeddingProvider,
		llmProvider,
		sysLogger,
		cfg.Ingest,
	)
	sessionService := service.NewSessionService(uowFactory, sysLogger)
	collectionService := service.NewCollectionService(uowFactory, sysLogger)

	// Controllers
	return &Container{
		IngestController:     controller.NewIngestController(ingestService, cfg.Ingest.UploadDir),
		QueryController:      controller.NewQueryController(qaService),
		SessionController:    controller.NewSessionController(sessionService),
		CollectionController: controller.NewCollectionController(collectionService),
		IngestService:        ingestService,
		Logger:               sysLogger,
	}
}
