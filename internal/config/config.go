package config

import (
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/lcabrel/medialib-go/internal/conversion"
)

type Settings struct {
	MariaDBDSN      string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ServerPort      int

	MinioEndpoint  string
	MinioAccessKey string
	MinioSecretKey string
	MinioUseSSL    bool

	// Disks is every storage disk the service may address; DefaultDisk is
	// where new uploads land unless the caller picks one.
	Disks       []string
	DefaultDisk string

	RedisAddr     string
	RedisPassword string

	// QueueConversions routes conversion generation through the task queue.
	// When false conversions run inline in the ingest request.
	QueueConversions bool

	MaxFileSize int64

	// AllowedMimeTypes overrides the ingest accept-list. Nil keeps the
	// service's built-in list.
	AllowedMimeTypes map[string]bool

	// Conversions is the derivative set applied to every owner type.
	Conversions []conversion.Conversion

	// FFmpegPath overrides PATH lookup of the frame extractor binary.
	FFmpegPath string

	// SoftDeleteRetention is how long soft-deleted records are kept before
	// the purge pass hard-deletes them.
	SoftDeleteRetention time.Duration
}

func Load() (*Settings, error) {
	if err := godotenv.Load(".env"); err != nil {
		log.Println("No .env file found; proceeding with OS environment variables")
	}

	viper.AutomaticEnv()

	viper.SetConfigFile(".env")
	viper.SetConfigType("env")

	if err := viper.ReadInConfig(); err != nil {
		log.Printf("Warning: could not read .env file: %v", err)
	}

	for _, key := range []string{
		"MARIADB_DSN",
		"MARIADB_MAX_OPEN_CONN",
		"MARIADB_MAX_IDLE_CONNS",
		"MARIADB_CONN_MAX_LIFETIME",
		"SERVER_PORT",
		"MINIO_ENDPOINT",
		"MINIO_ACCESS_KEY",
		"MINIO_SECRET_KEY",
	} {
		if !viper.IsSet(key) {
			return nil, fmt.Errorf("%s is required", key)
		}
	}

	viper.SetDefault("STORAGE_DISKS", "media")
	viper.SetDefault("QUEUE_CONVERSIONS", true)
	viper.SetDefault("MAX_FILE_SIZE", int64(50*1024*1024))
	viper.SetDefault("SOFT_DELETE_RETENTION_DAYS", 30)

	disks := splitList(viper.GetString("STORAGE_DISKS"))
	if len(disks) == 0 {
		return nil, fmt.Errorf("STORAGE_DISKS must name at least one disk")
	}
	defaultDisk := viper.GetString("STORAGE_DEFAULT_DISK")
	if defaultDisk == "" {
		defaultDisk = disks[0]
	}
	if !contains(disks, defaultDisk) {
		return nil, fmt.Errorf("STORAGE_DEFAULT_DISK %q is not in STORAGE_DISKS", defaultDisk)
	}

	conversions := conversion.Defaults()
	if raw := viper.GetString("CONVERSIONS"); raw != "" {
		var err error
		if conversions, err = parseConversions(raw); err != nil {
			return nil, err
		}
	}

	return &Settings{
		MariaDBDSN:      viper.GetString("MARIADB_DSN"),
		MaxOpenConns:    viper.GetInt("MARIADB_MAX_OPEN_CONN"),
		MaxIdleConns:    viper.GetInt("MARIADB_MAX_IDLE_CONNS"),
		ConnMaxLifetime: time.Duration(viper.GetInt("MARIADB_CONN_MAX_LIFETIME")) * time.Second,
		ServerPort:      viper.GetInt("SERVER_PORT"),

		MinioEndpoint:  viper.GetString("MINIO_ENDPOINT"),
		MinioAccessKey: viper.GetString("MINIO_ACCESS_KEY"),
		MinioSecretKey: viper.GetString("MINIO_SECRET_KEY"),
		MinioUseSSL:    viper.GetBool("MINIO_USE_SSL"),

		Disks:       disks,
		DefaultDisk: defaultDisk,

		RedisAddr:     viper.GetString("REDIS_ADDR"),
		RedisPassword: viper.GetString("REDIS_PASSWORD"),

		QueueConversions: viper.GetBool("QUEUE_CONVERSIONS"),

		MaxFileSize: viper.GetInt64("MAX_FILE_SIZE"),

		AllowedMimeTypes: parseMimeSet(viper.GetString("ALLOWED_MIME_TYPES")),
		Conversions:      conversions,

		FFmpegPath: viper.GetString("FFMPEG_PATH"),

		SoftDeleteRetention: time.Duration(viper.GetInt("SOFT_DELETE_RETENTION_DAYS")) * 24 * time.Hour,
	}, nil
}

// parseMimeSet reads a comma-separated accept-list; empty means "use the
// built-in list".
func parseMimeSet(raw string) map[string]bool {
	list := splitList(raw)
	if len(list) == 0 {
		return nil
	}
	set := make(map[string]bool, len(list))
	for _, m := range list {
		set[strings.ToLower(m)] = true
	}
	return set
}

// parseConversions reads a compact definition list, e.g.
// "thumb:300x300:crop:80:webp,large:1920x1080:contain:90". The trailing
// format is optional; without it the raster-to-webp default applies.
func parseConversions(raw string) ([]conversion.Conversion, error) {
	var out []conversion.Conversion
	for _, entry := range splitList(raw) {
		parts := strings.Split(entry, ":")
		if len(parts) < 4 || len(parts) > 5 {
			return nil, fmt.Errorf("CONVERSIONS entry %q must be name:WIDTHxHEIGHT:fit:quality[:format]", entry)
		}
		dims := strings.SplitN(parts[1], "x", 2)
		if len(dims) != 2 {
			return nil, fmt.Errorf("CONVERSIONS entry %q has malformed dimensions %q", entry, parts[1])
		}
		w, errW := strconv.Atoi(dims[0])
		h, errH := strconv.Atoi(dims[1])
		q, errQ := strconv.Atoi(parts[3])
		if errW != nil || errH != nil || errQ != nil {
			return nil, fmt.Errorf("CONVERSIONS entry %q has non-numeric dimensions or quality", entry)
		}
		fit := conversion.Fit(parts[2])
		switch fit {
		case conversion.FitContain, conversion.FitCover, conversion.FitCrop, conversion.FitFill:
		default:
			return nil, fmt.Errorf("CONVERSIONS entry %q has unknown fit %q", entry, parts[2])
		}
		opts := []conversion.Option{
			conversion.Width(w),
			conversion.Height(h),
			conversion.WithFit(fit),
			conversion.Quality(q),
		}
		if len(parts) == 5 {
			opts = append(opts, conversion.Format(parts[4]))
		}
		out = append(out, conversion.New(parts[0], opts...))
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("CONVERSIONS must name at least one conversion")
	}
	return out, nil
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func contains(list []string, want string) bool {
	for _, v := range list {
		if v == want {
			return true
		}
	}
	return false
}
