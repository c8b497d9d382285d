package config

import (
	"fmt"
	"log"
	"os"

	"writer-server/internal/utils"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config holds the application configuration.
type Config struct {
	Env        string `envconfig:"ENV" default:"development"`
	LogLevel   string `envconfig:"LOG_LEVEL" default:"debug"`
	ServerPort string `envconfig:"SERVER_PORT" default:"8080"`

	// Database (PostgreSQL)
	DBHost    string `envconfig:"DB_HOST" required:"true"`
	DBPort    string `envconfig:"DB_PORT" required:"true"`
	DBUser    string `envconfig:"DB_USER" required:"true"`
	DBName    string `envconfig:"DB_NAME" required:"true"`
	DBSSLMode string `envconfig:"DB_SSL_MODE" default:"disable"`
	// Секретное поле БЕЗ envconfig тега
	DBPassword string

	// Redis (rate limiting)
	RedisAddr string `envconfig:"REDIS_ADDR" default:"localhost:6379"`
	RedisDB   int    `envconfig:"REDIS_DB" default:"0"`
	// Секретное поле БЕЗ envconfig тега
	RedisPassword string

	// JWT - секретное поле БЕЗ envconfig тега
	JWTSecret string

	// Ключ шифрования API-ключей провайдеров (>= 32 байт) - секретное поле
	AppEncryptionKey string

	// Лимит запросов генерации на пользователя в минуту
	GenerateRateLimit uint `envconfig:"GENERATE_RATE_LIMIT" default:"10"`

	// CORS Settings
	CORSAllowedOrigins string `envconfig:"CORS_ALLOWED_ORIGINS" default:"http://localhost:3000"`
}

// LoadConfig loads configuration from environment variables and secrets.
func LoadConfig(envFilePath string) (*Config, error) {
	if _, err := os.Stat(envFilePath); err == nil {
		if err := godotenv.Load(envFilePath); err != nil {
			log.Printf("Warning: Could not load %s file: %v", envFilePath, err)
		} else {
			log.Printf("Loaded configuration from %s", envFilePath)
		}
	} else if !os.IsNotExist(err) {
		log.Printf("Warning: Error checking %s file: %v", envFilePath, err)
	}

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process env config: %w", err)
	}

	// Секреты читаем из Docker Secrets, с fallback на переменные окружения
	// для локальной разработки.
	var err error
	if cfg.DBPassword, err = loadSecret("db_password", "DB_PASSWORD"); err != nil {
		return nil, err
	}
	if cfg.JWTSecret, err = loadSecret("jwt_secret", "JWT_SECRET"); err != nil {
		return nil, err
	}
	if cfg.AppEncryptionKey, err = loadSecret("app_encryption_key", "APP_ENCRYPTION_KEY"); err != nil {
		return nil, err
	}
	// Пароль Redis опционален
	cfg.RedisPassword, _ = loadSecret("redis_password", "REDIS_PASSWORD")

	return &cfg, nil
}

// loadSecret читает Docker-секрет secretName; если файла нет,
// берет значение из переменной окружения envName.
func loadSecret(secretName, envName string) (string, error) {
	if secret, err := utils.ReadSecret(secretName); err == nil {
		return secret, nil
	}
	if val := os.Getenv(envName); val != "" {
		return val, nil
	}
	return "", fmt.Errorf("secret %s is not configured (docker secret or %s env var)", secretName, envName)
}
