package config

import (
	"os"
	"testing"
	"time"

	"github.com/lcabrel/medialib-go/internal/conversion"
)

func requiredEnv() map[string]string {
	return map[string]string{
		"MARIADB_DSN":               "user:pass@tcp(localhost:3306)/db",
		"MARIADB_MAX_OPEN_CONN":     "10",
		"MARIADB_MAX_IDLE_CONNS":    "5",
		"MARIADB_CONN_MAX_LIFETIME": "30",
		"SERVER_PORT":               "8080",
		"MINIO_ENDPOINT":            "localhost:9000",
		"MINIO_ACCESS_KEY":          "minio",
		"MINIO_SECRET_KEY":          "secret",
	}
}

// chdirTemp isolates the test from any real .env at the repo root.
func chdirTemp(t *testing.T) {
	t.Helper()
	origDir, err := os.Getwd()
	if err != nil {
		t.Fatalf("could not get working directory: %v", err)
	}
	if err := os.Chdir(t.TempDir()); err != nil {
		t.Fatalf("could not chdir to temp dir: %v", err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(origDir); err != nil {
			t.Fatalf("could not chdir back to original dir: %v", err)
		}
	})
}

func TestLoad_Success(t *testing.T) {
	chdirTemp(t)

	reqs := requiredEnv()
	for k, v := range reqs {
		t.Setenv(k, v)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if cfg.MariaDBDSN != reqs["MARIADB_DSN"] {
		t.Errorf("MariaDBDSN: expected %q, got %q", reqs["MARIADB_DSN"], cfg.MariaDBDSN)
	}
	if cfg.MaxOpenConns != 10 {
		t.Errorf("MaxOpenConns: expected %d, got %d", 10, cfg.MaxOpenConns)
	}
	if cfg.ConnMaxLifetime != 30*time.Second {
		t.Errorf("ConnMaxLifetime: expected %v, got %v", 30*time.Second, cfg.ConnMaxLifetime)
	}
	if cfg.ServerPort != 8080 {
		t.Errorf("ServerPort: expected %d, got %d", 8080, cfg.ServerPort)
	}
	if cfg.MinioEndpoint != "localhost:9000" {
		t.Errorf("MinioEndpoint: expected %q, got %q", "localhost:9000", cfg.MinioEndpoint)
	}
}

func TestLoad_Defaults(t *testing.T) {
	chdirTemp(t)

	for k, v := range requiredEnv() {
		t.Setenv(k, v)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if len(cfg.Disks) != 1 || cfg.Disks[0] != "media" {
		t.Errorf("Disks: expected [media], got %v", cfg.Disks)
	}
	if cfg.DefaultDisk != "media" {
		t.Errorf("DefaultDisk: expected %q, got %q", "media", cfg.DefaultDisk)
	}
	if !cfg.QueueConversions {
		t.Error("QueueConversions: expected true by default")
	}
	if cfg.MaxFileSize != 50*1024*1024 {
		t.Errorf("MaxFileSize: expected %d, got %d", 50*1024*1024, cfg.MaxFileSize)
	}
	if cfg.SoftDeleteRetention != 30*24*time.Hour {
		t.Errorf("SoftDeleteRetention: expected %v, got %v", 30*24*time.Hour, cfg.SoftDeleteRetention)
	}
	if cfg.AllowedMimeTypes != nil {
		t.Errorf("AllowedMimeTypes: expected nil (built-in list), got %v", cfg.AllowedMimeTypes)
	}
	if len(cfg.Conversions) != 3 ||
		cfg.Conversions[0].Name != "thumb" ||
		cfg.Conversions[1].Name != "medium" ||
		cfg.Conversions[2].Name != "large" {
		t.Errorf("Conversions: expected stock thumb/medium/large set, got %v", cfg.Conversions)
	}
}

func TestLoad_CustomConversions(t *testing.T) {
	chdirTemp(t)

	for k, v := range requiredEnv() {
		t.Setenv(k, v)
	}
	t.Setenv("CONVERSIONS", "thumb:200x200:crop:70:webp, poster:1280x720:contain:75")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if len(cfg.Conversions) != 2 {
		t.Fatalf("expected 2 conversions, got %v", cfg.Conversions)
	}
	thumb := cfg.Conversions[0]
	if thumb.Name != "thumb" || thumb.Width != 200 || thumb.Height != 200 ||
		thumb.Fit != conversion.FitCrop || thumb.Quality != 70 || thumb.Format != "webp" {
		t.Errorf("thumb parsed wrong: %+v", thumb)
	}
	poster := cfg.Conversions[1]
	if poster.Name != "poster" || poster.Width != 1280 || poster.Height != 720 ||
		poster.Fit != conversion.FitContain || poster.Quality != 75 || poster.Format != "" {
		t.Errorf("poster parsed wrong: %+v", poster)
	}
}

func TestLoad_MalformedConversions(t *testing.T) {
	cases := map[string]string{
		"missing fields": "thumb:300x300",
		"bad dimensions": "thumb:300:crop:80",
		"unknown fit":    "thumb:300x300:sideways:80",
		"bad quality":    "thumb:300x300:crop:high",
	}
	for name, raw := range cases {
		t.Run(name, func(t *testing.T) {
			chdirTemp(t)

			for k, v := range requiredEnv() {
				t.Setenv(k, v)
			}
			t.Setenv("CONVERSIONS", raw)

			if _, err := Load(); err == nil {
				t.Fatalf("expected an error for CONVERSIONS=%q", raw)
			}
		})
	}
}

func TestLoad_AllowedMimeTypes(t *testing.T) {
	chdirTemp(t)

	for k, v := range requiredEnv() {
		t.Setenv(k, v)
	}
	t.Setenv("ALLOWED_MIME_TYPES", "image/png, IMAGE/JPEG")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if len(cfg.AllowedMimeTypes) != 2 || !cfg.AllowedMimeTypes["image/png"] || !cfg.AllowedMimeTypes["image/jpeg"] {
		t.Errorf("AllowedMimeTypes: expected lowercased png+jpeg set, got %v", cfg.AllowedMimeTypes)
	}
}

func TestLoad_DiskList(t *testing.T) {
	chdirTemp(t)

	for k, v := range requiredEnv() {
		t.Setenv(k, v)
	}
	t.Setenv("STORAGE_DISKS", "media, archive")
	t.Setenv("STORAGE_DEFAULT_DISK", "archive")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if len(cfg.Disks) != 2 || cfg.Disks[0] != "media" || cfg.Disks[1] != "archive" {
		t.Errorf("Disks: expected [media archive], got %v", cfg.Disks)
	}
	if cfg.DefaultDisk != "archive" {
		t.Errorf("DefaultDisk: expected %q, got %q", "archive", cfg.DefaultDisk)
	}
}

func TestLoad_DefaultDiskMustBeKnown(t *testing.T) {
	chdirTemp(t)

	for k, v := range requiredEnv() {
		t.Setenv(k, v)
	}
	t.Setenv("STORAGE_DISKS", "media")
	t.Setenv("STORAGE_DEFAULT_DISK", "missing")

	if _, err := Load(); err == nil {
		t.Fatal("expected an error for an unknown default disk")
	}
}

func TestLoad_MissingRequiredVars(t *testing.T) {
	for missingKey := range requiredEnv() {
		t.Run(missingKey, func(t *testing.T) {
			chdirTemp(t)

			for k, v := range requiredEnv() {
				if k == missingKey {
					if err := os.Unsetenv(k); err != nil {
						t.Fatalf("could not unset key %s in env: %v", k, err)
					}
				} else {
					t.Setenv(k, v)
				}
			}

			cfg, err := Load()
			if err == nil {
				t.Fatalf("expected error for missing %s, got nil", missingKey)
			}
			wantErr := missingKey + " is required"
			if err.Error() != wantErr {
				t.Errorf("error = %q; want %q", err.Error(), wantErr)
			}
			if cfg != nil {
				t.Errorf("expected cfg nil on error, got %#v", cfg)
			}
		})
	}
}
