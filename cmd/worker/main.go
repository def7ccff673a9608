package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/hibiken/asynq"

	"github.com/lcabrel/medialib-go/internal/cache"
	"github.com/lcabrel/medialib-go/internal/config"
	"github.com/lcabrel/medialib-go/internal/conversion"
	"github.com/lcabrel/medialib-go/internal/converter"
	"github.com/lcabrel/medialib-go/internal/db"
	"github.com/lcabrel/medialib-go/internal/event"
	workerHandler "github.com/lcabrel/medialib-go/internal/handler/worker"
	"github.com/lcabrel/medialib-go/internal/logger"
	"github.com/lcabrel/medialib-go/internal/optimiser"
	"github.com/lcabrel/medialib-go/internal/pathgen"
	"github.com/lcabrel/medialib-go/internal/port"
	"github.com/lcabrel/medialib-go/internal/repository/mariadb"
	"github.com/lcabrel/medialib-go/internal/storage"
	"github.com/lcabrel/medialib-go/internal/task"
	mediaSvc "github.com/lcabrel/medialib-go/internal/usecase/media"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		logger.Errorf(ctx, "❌  Configuration error: %v", err)
		os.Exit(1)
	}
	if cfg.RedisAddr == "" {
		logger.Error(ctx, "⚠️  REDIS_ADDR must be set to run the worker")
		os.Exit(1)
	}

	logger.Init()

	database := initDb(cfg)
	defer func() {
		if err := database.Close(); err != nil {
			logger.Warnf(ctx, "DB close error: %v", err)
		}
	}()

	strg := initStorage(cfg)
	initDisks(strg, cfg.Disks)

	repo := mariadb.NewMediaRepository(database.DB)
	paths := pathgen.New(cfg.Conversions)
	provider := conversion.NewStaticProvider(cfg.Conversions)
	ca := cache.NewCache(cfg.RedisAddr, cfg.RedisPassword)
	notifier := event.NewNotifier(event.NewInProcessPubSub())

	fo := optimiser.NewOptimiser(optimiser.NewWebPEncoder())
	engine := converter.NewEngine(
		converter.NewImageGenerator(strg, paths, fo),
		converter.NewVideoGenerator(strg, paths, converter.NewFFmpeg(cfg.FFmpegPath)),
	)

	conversionsSvc := mediaSvc.NewConversionGenerator(repo, engine, provider, ca, notifier)
	removerSvc := mediaSvc.NewFileRemover(strg, paths)

	mux := asynq.NewServeMux()
	mux.HandleFunc(task.TypeGenerateConversions, func(ctx context.Context, t *asynq.Task) error {
		p, err := task.ParseGenerateConversionsPayload(t)
		if err != nil {
			return err
		}
		return workerHandler.GenerateConversionsHandler(ctx, p, conversionsSvc)
	})
	mux.HandleFunc(task.TypeRemoveFiles, func(ctx context.Context, t *asynq.Task) error {
		p, err := task.ParseRemoveFilesPayload(t)
		if err != nil {
			return err
		}
		return workerHandler.RemoveFilesHandler(ctx, p, removerSvc)
	})

	runWorker(ctx, mux, cfg, database)
}

func initDb(cfg *config.Settings) *db.Database {
	ctx := context.Background()
	logger.Info(ctx, "initialising database...")

	database, err := db.New(cfg.MariaDBDSN, cfg.MaxOpenConns, cfg.MaxIdleConns, cfg.ConnMaxLifetime)
	if err != nil {
		logger.Errorf(ctx, "❌  Failed to connect to db: %v", err)
		os.Exit(1)
	}
	return database
}

func initStorage(cfg *config.Settings) port.Storage {
	strg, err := storage.NewMinioStorage(
		cfg.MinioEndpoint,
		cfg.MinioAccessKey,
		cfg.MinioSecretKey,
		cfg.MinioUseSSL,
	)
	if err != nil {
		logger.Errorf(context.Background(), "❌  Failed to initialize MinIO client: %v", err)
		os.Exit(1)
	}

	return strg
}

func initDisks(strg port.Storage, disks []string) {
	for _, d := range disks {
		if err := strg.InitDisk(d); err != nil {
			logger.Errorf(context.Background(), "❌  Failed to initialize disk %q: %v", d, err)
			os.Exit(1)
		}
	}
}

func runWorker(ctx context.Context, mux *asynq.ServeMux, cfg *config.Settings, database *db.Database) {
	srv := asynq.NewServer(asynq.RedisClientOpt{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
	}, asynq.Config{Concurrency: 10})

	// Run server in background
	go func() {
		if err := srv.Run(mux); err != nil {
			logger.Errorf(context.Background(), "❌  Worker failed: %v", err)
			os.Exit(1)
		}
	}()
	logger.Info(ctx, "🚀 Worker started")

	// Wait for interrupt signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh
	logger.Info(ctx, "🛑 Shutdown signal received, exiting…")

	// Give Asynq up to 30 sec to finish tasks
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	srv.Shutdown()       // stop accepting new tasks, finish in-flight
	<-shutdownCtx.Done() // either timeout or done

	// Close DB
	if err := database.Close(); err != nil {
		logger.Warnf(ctx, "DB close error: %v", err)
	}
	logger.Info(ctx, "✅  Worker gracefully stopped")
}
