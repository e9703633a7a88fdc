package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	EnvDevelopment = "development"

	StorageFile     = "file"
	StoragePostgres = "postgres"

	devSessionSecret = "slotpoll-development-secret"
)

// Config is loaded once at process start and passed down by value.
type Config struct {
	Env      string
	HTTPAddr string

	Storage     string
	DataDir     string
	DatabaseURL string

	AdminPassword string
	SessionSecret string

	LogLevel string
	LogFile  string
	Debug    bool

	// UsingDevSecret is set when the session secret fell back to the
	// development default.
	UsingDevSecret bool
}

func (c Config) IsDevelopment() bool {
	return c.Env == EnvDevelopment
}

// Load reads an optional .env file and then the environment. Each setting
// accepts a SLOTPOLL_ prefixed name; the data dir, admin password and session
// secret also accept their historical unprefixed names.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("failed to load .env: %w", err)
	}
	return load(viper.New())
}

func load(v *viper.Viper) (Config, error) {
	v.SetEnvPrefix("SLOTPOLL")
	v.AutomaticEnv()

	v.SetDefault("env", EnvDevelopment)
	v.SetDefault("http_addr", "0.0.0.0:8080")
	v.SetDefault("storage", StorageFile)
	v.SetDefault("data_dir", "data")
	v.SetDefault("log_level", "info")
	v.SetDefault("debug", false)

	_ = v.BindEnv("data_dir", "SLOTPOLL_DATA_DIR", "DATA_DIR")
	_ = v.BindEnv("admin_password", "SLOTPOLL_ADMIN_PASSWORD", "ADMIN_PASSWORD")
	_ = v.BindEnv("session_secret", "SLOTPOLL_SESSION_SECRET", "ORGANIZER_SESSION_SECRET")

	cfg := Config{
		Env:           strings.ToLower(v.GetString("env")),
		HTTPAddr:      v.GetString("http_addr"),
		Storage:       strings.ToLower(v.GetString("storage")),
		DataDir:       v.GetString("data_dir"),
		DatabaseURL:   v.GetString("database_url"),
		AdminPassword: v.GetString("admin_password"),
		SessionSecret: v.GetString("session_secret"),
		LogLevel:      v.GetString("log_level"),
		LogFile:       v.GetString("log_file"),
		Debug:         v.GetBool("debug"),
	}

	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = postgresURLFromParts(v)
	}

	switch cfg.Storage {
	case StorageFile:
		if cfg.DataDir == "" {
			return Config{}, errors.New("data dir must not be empty")
		}
	case StoragePostgres:
		if cfg.DatabaseURL == "" {
			return Config{}, errors.New("postgres storage needs SLOTPOLL_DATABASE_URL or POSTGRES_* settings")
		}
	default:
		return Config{}, fmt.Errorf("unknown storage backend %q", cfg.Storage)
	}

	if cfg.SessionSecret == "" {
		if !cfg.IsDevelopment() {
			return Config{}, errors.New("ORGANIZER_SESSION_SECRET is required outside development")
		}
		cfg.SessionSecret = devSessionSecret
		cfg.UsingDevSecret = true
	}
	if cfg.AdminPassword == "" && !cfg.IsDevelopment() {
		return Config{}, errors.New("ADMIN_PASSWORD is required outside development")
	}

	return cfg, nil
}

// postgresURLFromParts builds a connection string from the POSTGRES_* variables
// used by the compose setup.
func postgresURLFromParts(v *viper.Viper) string {
	for _, key := range []string{"postgres_host", "postgres_port", "postgres_user", "postgres_password", "postgres_db"} {
		_ = v.BindEnv(key, strings.ToUpper(key))
	}
	host := v.GetString("postgres_host")
	if host == "" {
		return ""
	}
	port := v.GetString("postgres_port")
	if port == "" {
		port = "5432"
	}
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		v.GetString("postgres_user"), v.GetString("postgres_password"), host, port, v.GetString("postgres_db"))
}
