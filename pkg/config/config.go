// Файл: pkg/config/config.go
package config

import (
	"errors"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type JWTConfig struct {
	SecretKey      string
	AccessTokenTTL time.Duration
}

type AuthConfig struct {
	// Сколько живет в Redis запись о текущей сессии пользователя
	SessionCacheTTL time.Duration
}

type ServerConfig struct {
	Port string
}

type PostgresConfig struct {
	DSN string
}

type RedisConfig struct {
	Address  string
	Password string
	DB       int
}

type SeedConfig struct {
	AdminUsername string
	AdminPassword string
}

type LogConfig struct {
	Level string
	File  string
}

type ClientConfig struct {
	BaseURL     string
	Timeout     time.Duration
	SessionFile string
}

type Config struct {
	Server   ServerConfig
	Postgres PostgresConfig
	Redis    RedisConfig
	JWT      JWTConfig
	Auth     AuthConfig
	Seed     SeedConfig
	Log      LogConfig
	Client   ClientConfig
}

func New() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Предупреждение: .env файл не найден или не удалось его загрузить.")
	}

	return &Config{
		Server: ServerConfig{
			Port: getEnv("SERVER_PORT", "8080"),
		},
		Postgres: PostgresConfig{
			DSN: getEnv("DATABASE_URL", ""),
		},
		Redis: RedisConfig{
			Address:  getEnv("REDIS_ADDRESS", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
		},
		JWT: JWTConfig{
			SecretKey:      getEnv("JWT_SECRET_KEY", ""),
			AccessTokenTTL: getEnvDuration("JWT_ACCESS_TTL", time.Hour*12),
		},
		Auth: AuthConfig{
			SessionCacheTTL: getEnvDuration("SESSION_CACHE_TTL", time.Minute*10),
		},
		Seed: SeedConfig{
			AdminUsername: getEnv("SEED_ADMIN_USERNAME", "admin"),
			AdminPassword: getEnv("SEED_ADMIN_PASSWORD", ""),
		},
		Log: LogConfig{
			Level: getEnv("LOG_LEVEL", "debug"),
			File:  getEnv("LOG_FILE", "./logs/app.log"),
		},
		Client: ClientConfig{
			BaseURL:     getEnv("INVENTORY_API_URL", "http://localhost:8080"),
			Timeout:     getEnvDuration("INVENTORY_API_TIMEOUT", 30*time.Second),
			SessionFile: getEnv("INVENTORY_SESSION_FILE", defaultSessionFile()),
		},
	}
}

// Validate проверяет параметры, без которых сервер запускать нельзя.
// Секреты и строка подключения в код не зашиваются.
func (c *Config) Validate() error {
	var errs []error
	if c.Postgres.DSN == "" {
		errs = append(errs, errors.New("не задана переменная DATABASE_URL"))
	}
	if c.JWT.SecretKey == "" {
		errs = append(errs, errors.New("не задана переменная JWT_SECRET_KEY"))
	}
	if c.JWT.AccessTokenTTL <= 0 {
		errs = append(errs, errors.New("JWT_ACCESS_TTL должен быть положительным"))
	}
	return errors.Join(errs...)
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	value, exists := os.LookupEnv(key)
	if !exists {
		return fallback
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		log.Printf("Предупреждение: некорректное значение %s=%q, используется %d", key, value, fallback)
		return fallback
	}
	return n
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	value, exists := os.LookupEnv(key)
	if !exists {
		return fallback
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		log.Printf("Предупреждение: некорректное значение %s=%q, используется %s", key, value, fallback)
		return fallback
	}
	return d
}

func defaultSessionFile() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ".inventory-session.json"
	}
	return dir + string(os.PathSeparator) + "inventory-system" + string(os.PathSeparator) + "session.json"
}
