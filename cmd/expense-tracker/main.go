package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"github.com/chakit07/Expense-Tracker-with-Ai-Insights/internal/auth"
	"github.com/chakit07/Expense-Tracker-with-Ai-Insights/internal/cache"
	"github.com/chakit07/Expense-Tracker-with-Ai-Insights/internal/config"
	apphttp "github.com/chakit07/Expense-Tracker-with-Ai-Insights/internal/http"
	"github.com/chakit07/Expense-Tracker-with-Ai-Insights/internal/insights"
	"github.com/chakit07/Expense-Tracker-with-Ai-Insights/internal/log"
	"github.com/chakit07/Expense-Tracker-with-Ai-Insights/internal/storage"
)

const shutdownTimeout = 30 * time.Second

func main() {
	// .env is optional outside local development
	_ = godotenv.Load()

	logger := log.New(log.DefaultConfig())
	log.SetDefault(logger)

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", log.FieldError, err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	mongoClient, err := storage.Connect(ctx, cfg.MongoURI, logger)
	if err != nil {
		logger.Error("Failed to connect to MongoDB", log.FieldError, err)
		os.Exit(1)
	}
	defer func() {
		disconnectCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := mongoClient.Disconnect(disconnectCtx); err != nil {
			logger.Error("MongoDB disconnect failed", log.FieldError, err)
		}
	}()

	provider := storage.NewMongoProvider(mongoClient, cfg.MongoDatabase)
	if err := provider.EnsureIndexes(ctx); err != nil {
		logger.Error("Failed to ensure indexes", log.FieldError, err)
		os.Exit(1)
	}

	users := storage.NewUserRepository(provider)
	transactions := storage.NewTransactionRepository(provider)

	verifier, err := auth.NewFirebaseVerifier(ctx, cfg.FirebaseCredentialsFile)
	if err != nil {
		logger.Error("Failed to initialize identity provider", log.FieldError, err)
		os.Exit(1)
	}

	// The generator degrades to a configuration error per request when no
	// API key is set; the rest of the API stays up.
	var model insights.ModelClient
	if cfg.GeminiAPIKey != "" {
		client, err := insights.NewGeminiClient(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
		if err != nil {
			logger.Error("Failed to initialize Gemini client", log.FieldError, err)
			os.Exit(1)
		}
		model = client
	} else {
		logger.Warn("GEMINI_API_KEY not set, AI insights disabled")
	}
	generator := insights.NewGenerator(transactions, model, cfg.InsightFetchLimit, logger)

	var responseCache cache.Cache
	if cfg.RedisAddr != "" {
		redisCache, err := cache.NewRedisCache(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.CacheTTL, logger)
		if err != nil {
			logger.Error("Failed to connect to Redis", log.FieldError, err)
			os.Exit(1)
		}
		defer redisCache.Close()
		responseCache = redisCache
	} else {
		lru := cache.NewLRUCache(1024, cfg.CacheTTL)
		defer lru.Stop()
		responseCache = lru
	}

	server := apphttp.NewServer(cfg, apphttp.Dependencies{
		Verifier:     verifier,
		Users:        users,
		Transactions: transactions,
		Insights:     generator,
		Cache:        responseCache,
		Ready:        provider.Ping,
	}, logger)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(server.ListenAndServe)
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("Shutdown signal received", log.FieldOperation, log.OpShutdown)

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logger.Error("Server exited with error", log.FieldError, err)
		os.Exit(1)
	}
	logger.Info("Server stopped")
}
