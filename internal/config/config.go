package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/cmlabs-hris/checkin-backend-go/internal/pkg/clock"
	"github.com/cmlabs-hris/checkin-backend-go/internal/pkg/geo"
	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
)

type Config struct {
	App        AppConfig
	Database   DatabaseConfig
	Attendance AttendanceConfig
	Session    SessionConfig
	Office     OfficeConfig
	Admin      AdminConfig
	Notify     NotifyConfig
	Security   SecurityConfig
	Report     ReportConfig
}

// AppConfig holds application configuration
type AppConfig struct {
	Port           int
	Env            string
	LogLevel       string
	PublicURL      string
	AllowedOrigins []string
}

type DatabaseConfig struct {
	// URL, when set, wins over the individual fields.
	URL      string
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
}

type AttendanceConfig struct {
	Timezone string
	Deadline clock.TimeOfDay
	Midday   clock.TimeOfDay
}

type SessionConfig struct {
	Secret string
	Window time.Duration
}

// OfficeConfig places the geofence. A zero latitude or longitude disables it.
type OfficeConfig struct {
	Latitude    float64
	Longitude   float64
	MaxDistance float64
}

type AdminConfig struct {
	Password         string
	JWTSecret        string
	AccessExpiration time.Duration
}

type NotifyConfig struct {
	SlackWebhookURL string
	SlackBotToken   string
	SlackChannelID  string
	Interval        time.Duration
}

type SecurityConfig struct {
	BcryptCost int
}

type ReportConfig struct {
	// Institution is the letterhead, one entry per line.
	Institution []string
}

func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}

	config := &Config{}

	// Application configuration
	appPort, err := strconv.Atoi(getEnv("APP_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid APP_PORT: %w", err)
	}

	config.App = AppConfig{
		Port:           appPort,
		Env:            getEnv("APP_ENV", "development"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		PublicURL:      getEnv("APP_PUBLIC_URL", "http://localhost:8080"),
		AllowedOrigins: getEnvSlice("CORS_ALLOWED_ORIGINS", ","),
	}
	if len(config.App.AllowedOrigins) == 0 {
		config.App.AllowedOrigins = []string{"http://localhost:3000"}
	}

	// Database configuration
	dbPort, err := strconv.Atoi(getEnv("DB_PORT", "5432"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_PORT: %w", err)
	}

	config.Database = DatabaseConfig{
		URL:      getEnv("DATABASE_URL", ""),
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     dbPort,
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", ""),
		Name:     getEnv("DB_NAME", "checkin"),
		SSLMode:  getEnv("DB_SSL_MODE", "disable"),
	}

	// Attendance rules
	deadline, err := clock.ParseTimeOfDay(getEnv("CHECKIN_DEADLINE", "07:30"))
	if err != nil {
		return nil, fmt.Errorf("invalid CHECKIN_DEADLINE: %w", err)
	}
	midday, err := clock.ParseTimeOfDay(getEnv("MIDDAY_CUTOFF", "12:00"))
	if err != nil {
		return nil, fmt.Errorf("invalid MIDDAY_CUTOFF: %w", err)
	}

	config.Attendance = AttendanceConfig{
		Timezone: getEnv("TIMEZONE", clock.DefaultTimezone),
		Deadline: deadline,
		Midday:   midday,
	}

	// Session configuration
	sessionWindow, err := time.ParseDuration(getEnv("SESSION_WINDOW", "20m"))
	if err != nil {
		return nil, fmt.Errorf("invalid SESSION_WINDOW: %w", err)
	}

	config.Session = SessionConfig{
		Secret: getEnv("SESSION_SECRET", ""),
		Window: sessionWindow,
	}

	// Office location
	config.Office.Latitude, err = getEnvFloat("OFFICE_LAT", 0)
	if err != nil {
		return nil, err
	}
	config.Office.Longitude, err = getEnvFloat("OFFICE_LNG", 0)
	if err != nil {
		return nil, err
	}
	config.Office.MaxDistance, err = getEnvFloat("MAX_DISTANCE_METERS", 100)
	if err != nil {
		return nil, err
	}

	// Admin configuration
	accessExpiration, err := time.ParseDuration(getEnv("JWT_ACCESS_EXPIRATION_TIME", "8h"))
	if err != nil {
		return nil, fmt.Errorf("invalid JWT_ACCESS_EXPIRATION_TIME: %w", err)
	}

	config.Admin = AdminConfig{
		Password:         getEnv("ADMIN_PASSWORD", ""),
		JWTSecret:        getEnv("JWT_SECRET_KEY", ""),
		AccessExpiration: accessExpiration,
	}

	// Notifications
	notifyInterval, err := time.ParseDuration(getEnv("NOTIFY_INTERVAL", "15m"))
	if err != nil {
		return nil, fmt.Errorf("invalid NOTIFY_INTERVAL: %w", err)
	}

	config.Notify = NotifyConfig{
		SlackWebhookURL: getEnv("SLACK_WEBHOOK_URL", ""),
		SlackBotToken:   getEnv("SLACK_BOT_TOKEN", ""),
		SlackChannelID:  getEnv("SLACK_CHANNEL_ID", ""),
		Interval:        notifyInterval,
	}

	bcryptCost, err := strconv.Atoi(getEnv("BCRYPT_COST", strconv.Itoa(bcrypt.DefaultCost)))
	if err != nil {
		return nil, fmt.Errorf("invalid BCRYPT_COST: %w", err)
	}
	config.Security = SecurityConfig{BcryptCost: bcryptCost}

	config.Report = ReportConfig{
		Institution: getEnvSlice("REPORT_INSTITUTION", "|"),
	}

	// Validate required fields
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Database.URL == "" && c.Database.Password == "" {
		return fmt.Errorf("DB_PASSWORD or DATABASE_URL is required")
	}
	if len(c.Session.Secret) < 16 {
		return fmt.Errorf("SESSION_SECRET is required and must be at least 16 characters")
	}
	if c.Session.Window <= 0 {
		return fmt.Errorf("SESSION_WINDOW must be positive")
	}
	if c.Admin.Password != "" && c.Admin.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET_KEY is required when ADMIN_PASSWORD is set")
	}
	if c.Office.MaxDistance <= 0 {
		return fmt.Errorf("MAX_DISTANCE_METERS must be positive")
	}
	if c.Security.BcryptCost < bcrypt.MinCost || c.Security.BcryptCost > bcrypt.MaxCost {
		return fmt.Errorf("BCRYPT_COST must be between %d and %d", bcrypt.MinCost, bcrypt.MaxCost)
	}
	if c.Notify.SlackBotToken != "" && c.Notify.SlackChannelID == "" {
		return fmt.Errorf("SLACK_CHANNEL_ID is required when SLACK_BOT_TOKEN is set")
	}
	if c.Notify.Interval <= 0 {
		return fmt.Errorf("NOTIFY_INTERVAL must be positive")
	}
	if _, err := clock.NewZone(c.Attendance.Timezone); err != nil {
		return fmt.Errorf("invalid TIMEZONE: %w", err)
	}
	return nil
}

// DatabaseURL returns the PostgreSQL connection string
func (c *Config) DatabaseURL() string {
	if c.Database.URL != "" {
		return c.Database.URL
	}
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

// OfficePoint returns nil when the geofence is disabled.
func (c *Config) OfficePoint() *geo.Point {
	if c.Office.Latitude == 0 || c.Office.Longitude == 0 {
		return nil
	}
	return &geo.Point{Latitude: c.Office.Latitude, Longitude: c.Office.Longitude}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) (float64, error) {
	value := getEnv(key, "")
	if value == "" {
		return fallback, nil
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return f, nil
}

func getEnvSlice(env, sep string) []string {
	value := getEnv(env, "")
	if value == "" {
		return []string{}
	}
	var result []string
	for _, item := range strings.Split(value, sep) {
		if item = strings.TrimSpace(item); item != "" {
			result = append(result, item)
		}
	}
	return result
}
