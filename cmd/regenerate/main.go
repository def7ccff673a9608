package main

import (
	"context"
	"flag"
	"log"

	_ "github.com/go-sql-driver/mysql"

	"github.com/lcabrel/medialib-go/internal/config"
	"github.com/lcabrel/medialib-go/internal/db"
	"github.com/lcabrel/medialib-go/internal/port"
	"github.com/lcabrel/medialib-go/internal/repository/mariadb"
	"github.com/lcabrel/medialib-go/internal/task"
)

// regenerate schedules a fresh conversion run for one media (-id) or for the
// whole library.
func main() {
	var mediaID uint64
	flag.Uint64Var(&mediaID, "id", 0, "regenerate a single media by internal id (0 = everything)")
	flag.Parse()

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

	dispatcher := initDispatcher(cfg)
	repo := mariadb.NewMediaRepository(database.DB)

	ctx := context.Background()

	ids := []uint64{mediaID}
	if mediaID == 0 {
		ids, err = repo.ListIDs(ctx)
		if err != nil {
			log.Fatalf("❌  Failed to list media ids: %v", err)
		}
	}

	scheduled := 0
	for _, id := range ids {
		if err := dispatcher.EnqueueGenerateConversions(ctx, id); err != nil {
			log.Printf("❌  Failed to schedule regeneration for media #%d: %v", id, err)
			continue
		}
		scheduled++
	}
	log.Printf("✅  Scheduled conversion regeneration for %d medias", scheduled)
}

func initDb(cfg *config.Settings) *db.Database {
	log.Println("initialising database...")
	database, err := db.New(cfg.MariaDBDSN, cfg.MaxOpenConns, cfg.MaxIdleConns, cfg.ConnMaxLifetime)
	if err != nil {
		log.Fatalf("❌  Failed to connect to db: %v", err)
	}
	return database
}

func initDispatcher(cfg *config.Settings) port.TaskDispatcher {
	if cfg.RedisAddr == "" {
		log.Fatalf("❌  Redis not configured: this command requires a running Redis instance")
	}
	return task.NewDispatcher(cfg.RedisAddr, cfg.RedisPassword)
}
