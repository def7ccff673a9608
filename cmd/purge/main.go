package main

import (
	"context"
	"log"
	"time"

	_ "github.com/go-sql-driver/mysql"

	"github.com/lcabrel/medialib-go/internal/config"
	"github.com/lcabrel/medialib-go/internal/conversion"
	"github.com/lcabrel/medialib-go/internal/db"
	"github.com/lcabrel/medialib-go/internal/pathgen"
	"github.com/lcabrel/medialib-go/internal/repository/mariadb"
	"github.com/lcabrel/medialib-go/internal/storage"
	mediaSvc "github.com/lcabrel/medialib-go/internal/usecase/media"
)

// purge hard-deletes records that stayed soft-deleted past the configured
// retention, removing their files along the way. Meant to run from cron.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌  Configuration error: %v", err)
	}

	database := initDb(cfg)
	defer func() {
		if err := database.Close(); err != nil {
			log.Printf("DB close error: %v", err)
		}
	}()

	strg, err := storage.NewMinioStorage(cfg.MinioEndpoint, cfg.MinioAccessKey, cfg.MinioSecretKey, cfg.MinioUseSSL)
	if err != nil {
		log.Fatalf("❌  Failed to initialize MinIO client: %v", err)
	}

	repo := mariadb.NewMediaRepository(database.DB)
	paths := pathgen.New(conversion.Defaults())
	remover := mediaSvc.NewFileRemover(strg, paths)

	purger := mediaSvc.NewMediaPurger(repo, remover)
	cutoff := time.Now().Add(-cfg.SoftDeleteRetention)
	purged, err := purger.PurgeDeletedBefore(context.Background(), cutoff)
	if err != nil {
		log.Fatalf("❌  Purge failed: %v", err)
	}
	log.Printf("✅  Purged %d medias soft-deleted before %s", purged, cutoff.Format(time.RFC3339))
}

func initDb(cfg *config.Settings) *db.Database {
	log.Println("initialising database...")
	database, err := db.New(cfg.MariaDBDSN, cfg.MaxOpenConns, cfg.MaxIdleConns, cfg.ConnMaxLifetime)
	if err != nil {
		log.Fatalf("❌  Failed to connect to db: %v", err)
	}
	return database
}
