package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Gateway  GatewayConfig
	SMTP     SMTPConfig
	Auth     AuthConfig
}

type ServerConfig struct {
	Port        string
	Environment string
	// BaseURL is used when building payment return URLs and email links.
	BaseURL string
	// Redirect targets for the gateway return URL.
	PaymentSuccessURL string
	PaymentFailedURL  string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
	MaxConns int32
	MinConns int32
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

type GatewayConfig struct {
	BaseURL    string
	MerchantID string
	APIKey     string
	Timeout    time.Duration
}

type SMTPConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	From     string
}

type AuthConfig struct {
	JWTSecret     string
	TokenTTL      time.Duration
	MaxAttempts   int
	LockoutWindow time.Duration
}

var AppConfig *Config

func LoadConfig() *Config {
	AppConfig = &Config{
		Server:   GetServerConfig(),
		Database: GetDatabaseConfig(),
		Redis:    GetRedisConfig(),
		Gateway:  GetGatewayConfig(),
		SMTP:     GetSMTPConfig(),
		Auth:     GetAuthConfig(),
	}

	return AppConfig
}

func LoadTestConfig() *Config {
	testDBConfig := DatabaseConfig{
		Host:     "localhost",
		Port:     "5433", // test DB on 5433
		User:     "postgres",
		Password: "postgres",
		DBName:   "test_db",
		SSLMode:  "disable",
		MaxConns: 5,
		MinConns: 1,
	}

	testRedisConfig := RedisConfig{
		Host:     "localhost",
		Port:     "6380", // test Redis on 6380
		Password: "",
		DB:       1,
	}

	return &Config{
		Server:   GetServerConfig(),
		Database: testDBConfig,
		Redis:    testRedisConfig,
		Gateway:  GatewayConfig{Timeout: time.Second},
		SMTP:     SMTPConfig{},
		Auth: AuthConfig{
			JWTSecret:     "test-secret",
			TokenTTL:      time.Hour,
			MaxAttempts:   5,
			LockoutWindow: 15 * time.Minute,
		},
	}
}

func GetServerConfig() ServerConfig {
	return ServerConfig{
		Port:              getEnv("PORT", "8080"),
		Environment:       getEnv("ENVIRONMENT", "development"),
		BaseURL:           getEnv("BASE_URL", "http://localhost:8080"),
		PaymentSuccessURL: getEnv("PAYMENT_SUCCESS_URL", "/payment/success"),
		PaymentFailedURL:  getEnv("PAYMENT_FAILED_URL", "/payment/failed"),
	}
}

func GetDatabaseConfig() DatabaseConfig {
	return DatabaseConfig{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     getEnv("DB_PORT", "5432"),
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", "postgres"),
		DBName:   getEnv("DB_NAME", "summit"),
		SSLMode:  getEnv("DB_SSL_MODE", "disable"),
		MaxConns: int32(getEnvAsInt("DB_MAX_CONNS", 25)),
		MinConns: int32(getEnvAsInt("DB_MIN_CONNS", 5)),
	}
}

func GetRedisConfig() RedisConfig {
	return RedisConfig{
		Host:     getEnv("REDIS_HOST", "localhost"),
		Port:     getEnv("REDIS_PORT", "6379"),
		Password: getEnv("REDIS_PASSWORD", ""),
		DB:       getEnvAsInt("REDIS_DB", 0),
	}
}

func GetGatewayConfig() GatewayConfig {
	return GatewayConfig{
		BaseURL:    getEnv("GATEWAY_BASE_URL", ""),
		MerchantID: getEnv("GATEWAY_MERCHANT_ID", ""),
		APIKey:     getEnv("GATEWAY_API_KEY", ""),
		Timeout:    getEnvAsDuration("GATEWAY_TIMEOUT", "15s"),
	}
}

func GetSMTPConfig() SMTPConfig {
	return SMTPConfig{
		Host:     getEnv("SMTP_HOST", ""),
		Port:     getEnv("SMTP_PORT", "587"),
		User:     getEnv("SMTP_USER", ""),
		Password: getEnv("SMTP_PASSWORD", ""),
		From:     getEnv("SMTP_FROM", "tickets@synergysummit.example"),
	}
}

func GetAuthConfig() AuthConfig {
	return AuthConfig{
		JWTSecret:     getEnv("JWT_SECRET", "change-me"),
		TokenTTL:      getEnvAsDuration("JWT_TTL", "12h"),
		MaxAttempts:   getEnvAsInt("LOGIN_MAX_ATTEMPTS", 5),
		LockoutWindow: getEnvAsDuration("LOGIN_LOCKOUT_WINDOW", "15m"),
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvAsDuration(key, fallback string) time.Duration {
	d, err := time.ParseDuration(getEnv(key, fallback))
	if err != nil {
		d, _ = time.ParseDuration(fallback)
	}
	return d
}
