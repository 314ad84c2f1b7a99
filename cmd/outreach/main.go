package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/emailcraft/outreach/internal/config"
	dbRedis "github.com/emailcraft/outreach/internal/db/redis"
	"github.com/emailcraft/outreach/internal/domain"
	"github.com/emailcraft/outreach/internal/embed"
	"github.com/emailcraft/outreach/internal/llm"
	logpkg "github.com/emailcraft/outreach/internal/logger"
	"github.com/emailcraft/outreach/internal/metrics"
	portfoliorepo "github.com/emailcraft/outreach/internal/repository/portfolio"
	templatesrepo "github.com/emailcraft/outreach/internal/repository/templates"
	"github.com/emailcraft/outreach/internal/store/lexical"
	"github.com/emailcraft/outreach/internal/store/redisstore"
	"github.com/emailcraft/outreach/internal/store/sqlitestore"
	"github.com/emailcraft/outreach/internal/transport/httpapi"
	openaiEmb "github.com/emailcraft/outreach/internal/transport/openai"
	portfoliouc "github.com/emailcraft/outreach/internal/usecase/portfolio"
	templatesuc "github.com/emailcraft/outreach/internal/usecase/templates"
	"github.com/emailcraft/outreach/internal/version"
)

func main() {
	env := config.GetEnv()

	cfg, err := config.Load(env)
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	logger, err := logpkg.New(env, cfg.Logging.Level)
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting outreach retrieval server",
		zap.String("build", version.String()),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.String("backend", cfg.Retrieval.Backend),
	)

	metrics.RegisterEmbeddingMetrics()
	metrics.RegisterRetrievalMetrics()

	ctx := context.Background()

	var (
		templatesColl templatesuc.Collection
		portfolioColl portfoliouc.Collection
		pinger        httpapi.Pinger
		kv            embed.KV = embed.NewMemoryKV()
	)

	switch cfg.Retrieval.Backend {
	case "lexical":
		// No embedder: pure keyword matching in memory.
		templatesColl = lexical.New()
		portfolioColl = lexical.New()

	case "sqlite":
		db, err := sqlitestore.Open(cfg.Retrieval.SQLitePath)
		if err != nil {
			logger.Fatal("Failed to open sqlite store", zap.Error(err))
		}
		defer db.Close()

		embedder := buildEmbedder(cfg, kv, logger)
		templatesColl = sqlitestore.NewCollection(db, embedder, "templates")
		portfolioColl = sqlitestore.NewCollection(db, embedder, "portfolio")

	case "redis":
		rdb, err := dbRedis.NewStore(dbRedis.Config{
			Addrs:    cfg.Database.Addrs,
			Password: cfg.Database.Password,
		})
		if err != nil {
			logger.Fatal("Failed to create redis store", zap.Error(err))
		}
		defer rdb.Close()

		if err := rdb.WaitForReady(ctx, time.Duration(cfg.Database.ReadinessTimeout)*time.Second); err != nil {
			logger.Fatal("Redis not ready", zap.Error(err))
		}
		logger.Info("Connected to redis")

		kv = rdb
		pinger = rdb
		embedder := buildEmbedder(cfg, kv, logger)

		templatesColl, err = redisstore.New(ctx, rdb, embedder, "templates", cfg.Embedding.Dimensions, logger)
		if err != nil {
			logger.Fatal("Failed to create templates collection", zap.Error(err))
		}
		portfolioColl, err = redisstore.New(ctx, rdb, embedder, "portfolio", cfg.Embedding.Dimensions, logger)
		if err != nil {
			logger.Fatal("Failed to create portfolio collection", zap.Error(err))
		}

	default:
		logger.Fatal("Unknown retrieval backend", zap.String("backend", cfg.Retrieval.Backend))
	}

	opts := templatesuc.Options{
		TopK:             cfg.Retrieval.TopK,
		FallbackDistance: cfg.Retrieval.FallbackDistance,
	}

	tmplSvc := templatesuc.New(templatesColl, templatesrepo.New(cfg.Retrieval.TemplatesPath, logger), opts)
	if err := tmplSvc.Init(ctx); err != nil {
		logger.Fatal("Failed to initialize template service", zap.Error(err))
	}

	portSvc := portfoliouc.New(portfolioColl, portfoliorepo.New(cfg.Retrieval.PortfolioPath, logger), portfoliouc.Options{
		TopK:             opts.TopK,
		FallbackDistance: opts.FallbackDistance,
	})
	if err := portSvc.Init(ctx); err != nil {
		logger.Fatal("Failed to initialize portfolio service", zap.Error(err))
	}

	// The completion client is wired for the generation stages downstream of
	// retrieval; warm-up failure only costs first-call latency.
	if cfg.Completion.APIKey != "" {
		completions := llm.New(llm.Config{
			APIKey:            cfg.Completion.APIKey,
			BaseURL:           cfg.Completion.BaseURL,
			Model:             cfg.Completion.Model,
			Temperature:       cfg.Completion.Temperature,
			MaxTokens:         cfg.Completion.MaxTokens,
			RequestsPerMinute: cfg.Completion.RequestsPerMinute,
		}, logger)
		go completions.WarmUp(ctx)
	}

	server := httpapi.NewServer(tmplSvc, portSvc, pinger, logger)

	addr := fmt.Sprintf(":%d", cfg.HTTP.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      server.Router(),
		ReadTimeout:  time.Duration(cfg.HTTP.ReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(cfg.HTTP.WriteTimeoutSec) * time.Second,
	}

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Info("Starting HTTP server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	<-quit
	logger.Info("Received shutdown signal")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.HTTP.ShutdownSec)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Error during shutdown", zap.Error(err))
	}

	logger.Info("Server stopped gracefully")
}

// buildEmbedder assembles the embedder chain: provider -> cache.
func buildEmbedder(cfg config.Config, kv embed.KV, logger *zap.Logger) domain.Embedder {
	var base domain.Embedder
	switch cfg.Embedding.Provider {
	case "hash":
		hashEmb, err := embed.NewHashEmbedder(cfg.Embedding.Dimensions, logger)
		if err != nil {
			logger.Fatal("Failed to create hash embedder", zap.Error(err))
		}
		base = hashEmb
	default:
		base = openaiEmb.NewEmbedder(openaiEmb.Config{
			APIKey:     cfg.Embedding.APIKey,
			BaseURL:    cfg.Embedding.BaseURL,
			Model:      cfg.Embedding.Model,
			Dimensions: cfg.Embedding.Dimensions,
		})
	}

	return embed.NewCachedEmbedder(base, kv, metrics.EmbeddingCacheTotal, logger)
}
