package main

import (
	"fmt"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/studyloop/studyloop/internal/config"
	"github.com/studyloop/studyloop/internal/database"
	"github.com/studyloop/studyloop/internal/extraction"
	"github.com/studyloop/studyloop/internal/inference"
	"github.com/studyloop/studyloop/internal/inference/openai"
	"github.com/studyloop/studyloop/internal/planner"
	"github.com/studyloop/studyloop/internal/quiz"
	"github.com/studyloop/studyloop/internal/server"
	"github.com/studyloop/studyloop/internal/store"
	"github.com/studyloop/studyloop/schemas"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	_ = godotenv.Load()

	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("loadConfig() > %w", err)
	}

	logger, err := newLogger(cfg.Server.Mode)
	if err != nil {
		return fmt.Errorf("newLogger() > %w", err)
	}
	defer func() {
		_ = logger.Sync()
	}()
	sugar := logger.Sugar()

	gin.SetMode(cfg.Server.Mode)

	var inferenceClient inference.Client
	var extractor extraction.Extractor = extraction.NewStubExtractor()
	if cfg.OpenAI.APIKey != "" {
		client := openai.NewClient(cfg.OpenAI.APIKey, cfg.OpenAI.Model, inference.DefaultMaxRetryAttempts)
		inferenceClient = client
		extractor = extraction.NewLLMExtractor(client)
		sugar.Infow("using OpenAI inference", "model", cfg.OpenAI.Model)
	} else {
		sugar.Infow("no OpenAI API key, using deterministic extraction and quiz templates")
	}

	plans, topics, err := newStores(cfg, sugar)
	if err != nil {
		return fmt.Errorf("newStores() > %w", err)
	}

	s := server.New(
		planner.New(),
		plans,
		topics,
		extractor,
		quiz.NewGenerator(inferenceClient),
		cfg.Planner,
		server.WithLogger(sugar),
		server.WithClock(time.Now),
	)

	sugar.Infow("starting server", "address", cfg.Server.Address, "store", cfg.Store.Backend)
	return s.Router(cfg.Server.AllowedOrigins).Run(cfg.Server.Address)
}

func loadConfig() (*config.Config, error) {
	return config.Load(os.Getenv("STUDYLOOP_CONFIG"))
}

func newLogger(mode string) (*zap.Logger, error) {
	if mode == "release" {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}

func newStores(cfg *config.Config, logger *zap.SugaredLogger) (store.PlanStore, store.TopicStore, error) {
	switch cfg.Store.Backend {
	case "supabase":
		s := store.NewSupabaseStore(store.SupabaseConfig{
			URL:   cfg.Supabase.URL,
			Key:   cfg.Supabase.Key,
			Table: cfg.Supabase.Table,
		})
		return s, s.Topics(), nil
	case "mysql":
		db, err := database.Open(cfg.Database)
		if err != nil {
			return nil, nil, fmt.Errorf("database.Open() > %w", err)
		}
		if err := database.Migrate(db, schemas.Migrations); err != nil {
			return nil, nil, fmt.Errorf("database.Migrate() > %w", err)
		}
		s := store.NewMySQLStore(db)
		return s, s.Topics(), nil
	default:
		logger.Warnw("using in-memory store, plans are lost on restart")
		s := store.NewMemoryStore()
		return s, s.Topics(), nil
	}
}
