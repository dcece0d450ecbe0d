package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const (
	StorageMemory   = "memory"
	StorageFile     = "file"
	StoragePostgres = "postgres"
)

type Config struct {
	AppEnv   string
	LogLevel string

	GRPCPort int
	HTTPPort int

	CatalogBaseURL string
	CatalogTimeout time.Duration

	CartStorage    string
	CartStorageDir string
	CartKey        string

	CartPersistTimeout time.Duration

	Postgres Postgres
}

type Postgres struct {
	Host      string
	Port      int
	User      string
	Pass      string
	DB        string
	SSLMode   string
	Adapter   string
	SlotTable string
}

// Load reads the environment, after merging an optional .env file from the
// working directory. Variables already set in the environment win.
func Load() Config {
	_ = godotenv.Load()

	return Config{
		AppEnv:         getEnv("APP_ENV", "dev"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		HTTPPort:       getEnvInt("HTTP_PORT", 8080),
		GRPCPort:       getEnvInt("GRPC_PORT", 8081),
		CatalogBaseURL: getEnv("CATALOG_BASE_URL", "https://v2.api.noroff.dev"),
		CatalogTimeout: getEnvDuration("CATALOG_TIMEOUT", 10*time.Second),
		CartStorage:    getEnv("CART_STORAGE", StorageFile),
		CartStorageDir: getEnv("CART_STORAGE_DIR", "./data"),
		CartKey:        getEnv("CART_KEY", "cart"),

		CartPersistTimeout: getEnvDuration("CART_PERSIST_TIMEOUT", 5*time.Second),
		Postgres: Postgres{
			Host:      getEnv("POSTGRES_HOST", "localhost"),
			Port:      getEnvInt("POSTGRES_PORT", 5432),
			User:      getEnv("POSTGRES_USER", "storefront"),
			Pass:      getEnv("POSTGRES_PASSWORD", "storefront"),
			DB:        getEnv("POSTGRES_DB", "storefront"),
			SSLMode:   getEnv("POSTGRES_SSLMODE", "disable"),
			Adapter:   getEnv("POSTGRES_ADAPTER", "pgx"),
			SlotTable: getEnv("POSTGRES_SLOT_TABLE", "storage_slots"),
		},
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	v := os.Getenv(key)

	if v == "" {
		return def
	}

	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}

	return n
}

func getEnvDuration(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)

	if v == "" {
		return def
	}

	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		return def
	}

	return d
}
