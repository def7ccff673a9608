package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	_ "github.com/go-sql-driver/mysql"

	"github.com/lcabrel/medialib-go/internal/cache"
	"github.com/lcabrel/medialib-go/internal/config"
	"github.com/lcabrel/medialib-go/internal/conversion"
	"github.com/lcabrel/medialib-go/internal/converter"
	"github.com/lcabrel/medialib-go/internal/db"
	"github.com/lcabrel/medialib-go/internal/event"
	"github.com/lcabrel/medialib-go/internal/handler/api"
	"github.com/lcabrel/medialib-go/internal/logger"
	cMiddleware "github.com/lcabrel/medialib-go/internal/middleware"
	"github.com/lcabrel/medialib-go/internal/optimiser"
	"github.com/lcabrel/medialib-go/internal/pathgen"
	"github.com/lcabrel/medialib-go/internal/port"
	"github.com/lcabrel/medialib-go/internal/repository/mariadb"
	"github.com/lcabrel/medialib-go/internal/storage"
	"github.com/lcabrel/medialib-go/internal/task"
	"github.com/lcabrel/medialib-go/internal/urlgen"
	mediaSvc "github.com/lcabrel/medialib-go/internal/usecase/media"
	msuuid "github.com/lcabrel/medialib-go/internal/uuid"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		logger.Errorf(ctx, "❌  Configuration error: %v", err)
		os.Exit(1)
	}

	logger.Init()

	database := initDb(ctx, cfg)

	r := initRouter()

	strg := initStorage(ctx, cfg)
	initDisks(ctx, strg, cfg.Disks)

	mediaRepo := mariadb.NewMediaRepository(database.DB)

	provider := conversion.NewStaticProvider(cfg.Conversions)
	paths := pathgen.New(cfg.Conversions)
	urls := urlgen.New(paths, strg)

	var ca port.Cache
	if cfg.RedisAddr != "" {
		ca = cache.NewCache(cfg.RedisAddr, cfg.RedisPassword)
		logger.Info(ctx, "✅  Redis cache enabled")
	} else {
		ca = cache.NewNoop()
		logger.Warn(ctx, "⚠️  Redis not configured — caching is disabled")
	}

	notifier := event.NewNotifier(event.NewInProcessPubSub())

	fo := optimiser.NewOptimiser(optimiser.NewWebPEncoder())
	engine := converter.NewEngine(
		converter.NewImageGenerator(strg, paths, fo),
		converter.NewVideoGenerator(strg, paths, converter.NewFFmpeg(cfg.FFmpegPath)),
	)
	conversionsSvc := mediaSvc.NewConversionGenerator(mediaRepo, engine, provider, ca, notifier)
	removerSvc := mediaSvc.NewFileRemover(strg, paths)

	var dispatcher port.TaskDispatcher
	if cfg.RedisAddr != "" && cfg.QueueConversions {
		dispatcher = task.NewDispatcher(cfg.RedisAddr, cfg.RedisPassword)
		logger.Info(ctx, "✅  Task queue enabled")
	} else {
		dispatcher = task.NewInlineDispatcher(conversionsSvc, removerSvc)
		logger.Warn(ctx, "⚠️  Task queue disabled — conversions and file removal run in-request")
	}

	addMediaSvc := mediaSvc.NewMediaAdder(mediaRepo, strg, paths, dispatcher, notifier, msuuid.NewUUID, mediaSvc.AddMediaOptions{
		DefaultDisk:      cfg.DefaultDisk,
		MaxFileSize:      cfg.MaxFileSize,
		AllowedMimeTypes: cfg.AllowedMimeTypes,
	})
	r.Post("/medias", api.AddMediaHandler(addMediaSvc))

	getMediaSvc := mediaSvc.NewMediaGetter(mediaRepo, urls, provider, ca)
	r.With(cMiddleware.WithMediaID()).
		Get("/medias/{id}", api.GetMediaHandler(getMediaSvc))

	updateMediaSvc := mediaSvc.NewMediaUpdater(mediaRepo, strg, paths, ca)
	r.With(cMiddleware.WithMediaID()).
		Patch("/medias/{id}", api.UpdateMediaHandler(updateMediaSvc))

	deleteMediaSvc := mediaSvc.NewMediaDeleter(mediaRepo, dispatcher, ca, notifier)
	r.With(cMiddleware.WithMediaID()).
		Delete("/medias/{id}", api.DeleteMediaHandler(deleteMediaSvc))
	r.Post("/medias/bulk_delete", api.BulkDeleteHandler(deleteMediaSvc))

	r.With(cMiddleware.WithMediaID()).
		Post("/medias/{id}/regenerate", api.RegenerateHandler(dispatcher))

	listMediaSvc := mediaSvc.NewMediaLister(mediaRepo)
	r.Get("/medias/search", api.SearchMediaHandler(listMediaSvc))
	r.Get("/owners/{ownerType}/{ownerID}/medias", api.ListMediaHandler(listMediaSvc))
	r.Get("/owners/{ownerType}/{ownerID}/collections", api.CollectionsHandler(listMediaSvc))

	reorderSvc := mediaSvc.NewCollectionReorderer(mediaRepo, ca)
	r.Post("/owners/{ownerType}/{ownerID}/collections/{collection}/reorder", api.ReorderHandler(reorderSvc))

	listenRouter(ctx, r, cfg, database)
}

func initDb(ctx context.Context, cfg *config.Settings) *db.Database {
	logger.Info(ctx, "initialising database...")

	database, err := db.New(cfg.MariaDBDSN, cfg.MaxOpenConns, cfg.MaxIdleConns, cfg.ConnMaxLifetime)
	if err != nil {
		logger.Errorf(ctx, "❌  Failed to connect to db: %v", err)
		os.Exit(1)
	}

	return database
}

func initRouter() *chi.Mux {
	r := chi.NewRouter()

	r.Use(chiMiddleware.Logger)
	r.Use(chiMiddleware.Recoverer)

	r.NotFound(api.NotFoundHandler())
	r.MethodNotAllowed(api.MethodNotAllowedHandler())

	return r
}

func initStorage(ctx context.Context, cfg *config.Settings) port.Storage {
	strg, err := storage.NewMinioStorage(
		cfg.MinioEndpoint,
		cfg.MinioAccessKey,
		cfg.MinioSecretKey,
		cfg.MinioUseSSL,
	)
	if err != nil {
		logger.Errorf(ctx, "❌  Failed to initialize MinIO client: %v", err)
		os.Exit(1)
	}

	return strg
}

func initDisks(ctx context.Context, strg port.Storage, disks []string) {
	for _, d := range disks {
		if err := strg.InitDisk(d); err != nil {
			logger.Errorf(ctx, "❌  Failed to initialize disk %q: %v", d, err)
			os.Exit(1)
		}
	}
}

func listenRouter(ctx context.Context, r *chi.Mux, cfg *config.Settings, database *db.Database) {
	srv := &http.Server{Addr: ":" + strconv.Itoa(cfg.ServerPort), Handler: r}

	// start serving
	go func() {
		logger.Infof(ctx, "🚀 API listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			logger.Errorf(ctx, "❌  Listen error: %v", err)
			os.Exit(1)
		}
	}()

	// block until we get SIGINT/SIGTERM
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info(ctx, "🛑 Shutdown signal received, exiting…")

	// graceful shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Errorf(ctx, "❌  Server shutdown failed: %v", err)
		os.Exit(1)
	}
	logger.Info(ctx, "✅  Server gracefully stopped")

	if err := database.Close(); err != nil {
		logger.Errorf(ctx, "DB close error: %v", err)
		os.Exit(1)
	}
}
