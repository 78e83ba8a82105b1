package config

import (
	"errors"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

// Drivers de almacenamiento soportados
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverMongoDB  = "mongodb"
	DriverMemory   = "memory"
)

// ErrMissingSessionSecret se devuelve cuando SESSION_SECRET no está definido.
// Sin secreto cualquiera podría firmar una sesión de profesor.
var ErrMissingSessionSecret = errors.New("SESSION_SECRET is required")

type Config struct {
	StorageDriver string `env:"STORAGE_DRIVER" env-default:"sqlite"`
	SQLitePath    string `env:"SQLITE_PATH" env-default:"./cursolab.db"`
	DatabaseURL   string `env:"DATABASE_URL" env-default:"postgres://localhost:5432/cursolab?sslmode=disable"`
	MongoURI      string `env:"MONGO_URI" env-default:"mongodb://localhost:27017"`
	MongoDB       string `env:"MONGO_DB" env-default:"cursolab"`

	RedisAddr string        `env:"REDIS_ADDR" env-default:"localhost:6379"`
	CacheTTL  time.Duration `env:"CACHE_TTL" env-default:"5m"`

	UseKafka     bool     `env:"USE_KAFKA" env-default:"false"`
	KafkaBrokers []string `env:"KAFKA_BROKERS" env-separator:"," env-default:"localhost:9092"`

	SessionSecret string        `env:"SESSION_SECRET"`
	SessionCookie string        `env:"SESSION_COOKIE" env-default:"SESSION"`
	SessionTTL    time.Duration `env:"SESSION_TTL" env-default:"8h"`

	HTTPPort string `env:"HTTP_PORT" env-default:"8081"`
	LogLevel string `env:"LOG_LEVEL" env-default:"info"`

	// SeedDemo carga un alumno y un evento de ejemplo al arrancar.
	SeedDemo bool `env:"SEED_DEMO" env-default:"false"`
}

// LoadConfig lee un .env opcional y después el entorno del proceso.
// Las variables ya definidas en el entorno tienen prioridad sobre el .env.
func LoadConfig() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, err
	}
	if strings.TrimSpace(cfg.SessionSecret) == "" {
		return nil, ErrMissingSessionSecret
	}
	return &cfg, nil
}
