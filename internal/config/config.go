package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Database DatabaseConfig
	App      AppConfig
	JWT      JWTConfig
	Telegram TelegramConfig
	CheckIn  CheckInConfig
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
}

// AppConfig holds application configuration
type AppConfig struct {
	Port     int
	Env      string
	LogLevel string
	// Timezone is the single organization timezone used for every
	// date-boundary and trigger-time computation, independent of the
	// server locale.
	Timezone *time.Location
}

type JWTConfig struct {
	Secret                    string
	AccessTokenExpirationTime string
}

type TelegramConfig struct {
	BotToken string
	// AdminChatIDs receive report pushes and admin notifications.
	AdminChatIDs []int64
}

// CheckInConfig holds the parameters of the external verification gate.
type CheckInConfig struct {
	WorkLatitude        float64
	WorkLongitude       float64
	AllowedRadiusMeters float64
	// FaceSimilarityThreshold is the minimum similarity percentage for a
	// check-in selfie to be accepted.
	FaceSimilarityThreshold float64
	// FaceServiceURL points at the face comparison service.
	FaceServiceURL string
}

func Load() (*Config, error) {
	// Missing .env is fine in deployed environments; env vars win anyway.
	_ = godotenv.Load()

	config := &Config{}

	dbPort, err := strconv.Atoi(getEnv("DB_PORT", "5432"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_PORT: %w", err)
	}

	config.Database = DatabaseConfig{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     dbPort,
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", ""),
		Name:     getEnv("DB_NAME", "checkin"),
		SSLMode:  getEnv("DB_SSL_MODE", "disable"),
	}

	appPort, err := strconv.Atoi(getEnv("APP_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid APP_PORT: %w", err)
	}

	tzName := getEnv("ORG_TIMEZONE", "Asia/Almaty")
	tz, err := time.LoadLocation(tzName)
	if err != nil {
		return nil, fmt.Errorf("invalid ORG_TIMEZONE %q: %w", tzName, err)
	}

	config.App = AppConfig{
		Port:     appPort,
		Env:      getEnv("APP_ENV", "development"),
		LogLevel: getEnv("LOG_LEVEL", "info"),
		Timezone: tz,
	}

	config.JWT = JWTConfig{
		Secret:                    getEnv("JWT_SECRET_KEY", ""),
		AccessTokenExpirationTime: getEnv("JWT_ACCESS_TOKEN_EXPIRATION", "24h"),
	}

	adminIDs, err := getEnvInt64Slice("ADMIN_CHAT_IDS")
	if err != nil {
		return nil, fmt.Errorf("invalid ADMIN_CHAT_IDS: %w", err)
	}
	config.Telegram = TelegramConfig{
		BotToken:     getEnv("TELEGRAM_BOT_TOKEN", ""),
		AdminChatIDs: adminIDs,
	}

	workLat, err := strconv.ParseFloat(getEnv("WORK_LOCATION_LAT", "43.2583546"), 64)
	if err != nil {
		return nil, fmt.Errorf("invalid WORK_LOCATION_LAT: %w", err)
	}
	workLon, err := strconv.ParseFloat(getEnv("WORK_LOCATION_LON", "76.8827974"), 64)
	if err != nil {
		return nil, fmt.Errorf("invalid WORK_LOCATION_LON: %w", err)
	}
	radius, err := strconv.ParseFloat(getEnv("ALLOWED_RADIUS_METERS", "200"), 64)
	if err != nil {
		return nil, fmt.Errorf("invalid ALLOWED_RADIUS_METERS: %w", err)
	}
	faceThreshold, err := strconv.ParseFloat(getEnv("FACE_SIMILARITY_THRESHOLD", "40"), 64)
	if err != nil {
		return nil, fmt.Errorf("invalid FACE_SIMILARITY_THRESHOLD: %w", err)
	}
	config.CheckIn = CheckInConfig{
		WorkLatitude:            workLat,
		WorkLongitude:           workLon,
		AllowedRadiusMeters:     radius,
		FaceSimilarityThreshold: faceThreshold,
		FaceServiceURL:          getEnv("FACE_SERVICE_URL", "http://localhost:8500"),
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Database.Password == "" {
		return fmt.Errorf("DB_PASSWORD is required")
	}
	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT_SECRET_KEY is required")
	}
	if c.Telegram.BotToken == "" {
		return fmt.Errorf("TELEGRAM_BOT_TOKEN is required")
	}
	if len(c.Telegram.AdminChatIDs) == 0 {
		return fmt.Errorf("ADMIN_CHAT_IDS is required")
	}
	return nil
}

// DatabaseURL returns the PostgreSQL connection string
func (c *Config) DatabaseURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt64Slice(env string) ([]int64, error) {
	value := getEnv(env, "")
	if value == "" {
		return nil, nil
	}
	var result []int64
	for _, part := range strings.Split(value, ",") {
		id, err := strconv.ParseInt(strings.TrimSpace(part), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("parse %q: %w", part, err)
		}
		result = append(result, id)
	}
	return result, nil
}
