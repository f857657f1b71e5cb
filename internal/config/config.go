package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

// Config is built once in main and passed down explicitly; nothing in the
// application reads the environment after Load returns.
type Config struct {
	ListenAddr string

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string
	DBTimezone string

	JWTSecret string

	// AssetDir is the disk root for uploaded shipment photos;
	// PublicBaseURL prefixes the URLs handed back to clients.
	AssetDir      string
	PublicBaseURL string

	// KafkaBrokers empty means status events go to the log only.
	KafkaBrokers []string

	// ServiceKey guards the admin provisioning endpoints. Empty means
	// they respond 500, mirroring an unconfigured service credential.
	ServiceKey string

	// AnonKey is accepted on public read endpoints.
	AnonKey string
}

// Load reads .env (when present) and the environment.
func Load() Config {
	if err := godotenv.Load(); err != nil {
		logrus.Info("no .env file found, relying on env vars")
	}

	cfg := Config{
		ListenAddr:    getEnv("LISTEN_ADDR", "0.0.0.0:8080"),
		DBHost:        getEnv("DB_HOST", "localhost"),
		DBPort:        getEnv("DB_PORT", "5432"),
		DBUser:        getEnv("DB_USER", "postgres"),
		DBPassword:    getEnv("DB_PASSWORD", "password"),
		DBName:        getEnv("DB_NAME", "shiptrack"),
		DBSSLMode:     getEnv("DB_SSLMODE", "disable"),
		DBTimezone:    getEnv("DB_TIMEZONE", "UTC"),
		JWTSecret:     getEnv("JWT_SECRET", "supersecret"),
		AssetDir:      getEnv("ASSET_DIR", "./data/assets"),
		PublicBaseURL: getEnv("PUBLIC_BASE_URL", "http://localhost:8080"),
		ServiceKey:    os.Getenv("SERVICE_ROLE_KEY"),
		AnonKey:       getEnv("ANON_KEY", "anon"),
	}

	if brokers := os.Getenv("KAFKA_BROKERS"); brokers != "" {
		for _, broker := range strings.Split(brokers, ",") {
			if broker = strings.TrimSpace(broker); broker != "" {
				cfg.KafkaBrokers = append(cfg.KafkaBrokers, broker)
			}
		}
	}

	return cfg
}

// DSN builds the Postgres data source name.
func (c Config) DSN() string {
	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=%s",
		c.DBHost, c.DBUser, c.DBPassword, c.DBName, c.DBPort, c.DBSSLMode, c.DBTimezone,
	)
}

// getEnv reads an environment variable or returns the provided default
func getEnv(key, defaultValue string) string {
	if v, exists := os.LookupEnv(key); exists {
		return v
	}
	return defaultValue
}
