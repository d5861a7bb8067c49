package config

import (
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	JWT      JWTConfig
	OTP      OTPConfig
	Search   SearchConfig
}

type ServerConfig struct {
	Port         string
	Env          string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

type DatabaseConfig struct {
	DSN             string
	MaxIdleConns    int
	MaxOpenConns    int
	ConnMaxLifetime time.Duration
}

type JWTConfig struct {
	AccessSecret  string
	RefreshSecret string
	AccessExpiry  time.Duration
	RefreshExpiry time.Duration
	Issuer        string
}

type OTPConfig struct {
	TTL            time.Duration
	RequestsPerMin int
}

type SearchConfig struct {
	NearestLimit int
	MaxRadiusKm  float64
}

// Load reads configuration from the environment (and an optional .env
// file in the working directory) with development defaults.
func Load() *Config {
	v := viper.New()
	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	v.AutomaticEnv()
	_ = v.ReadInConfig() // .env is optional

	v.SetDefault("PORT", "8080")
	v.SetDefault("ENV", "development")
	v.SetDefault("READ_TIMEOUT_SEC", 10)
	v.SetDefault("WRITE_TIMEOUT_SEC", 10)
	v.SetDefault("DB_DSN", "gymhub:gymhub@tcp(localhost:3306)/gymhub?charset=utf8mb4&parseTime=True&loc=Local")
	v.SetDefault("DB_MAX_IDLE_CONNS", 10)
	v.SetDefault("DB_MAX_OPEN_CONNS", 100)
	v.SetDefault("DB_CONN_MAX_LIFETIME_MIN", 60)
	v.SetDefault("JWT_ACCESS_SECRET", "change-me-in-production")
	v.SetDefault("JWT_REFRESH_SECRET", "change-me-refresh")
	v.SetDefault("JWT_ACCESS_EXPIRY_MIN", 15)
	v.SetDefault("JWT_REFRESH_EXPIRY_HOURS", 168)
	v.SetDefault("JWT_ISSUER", "gymhub")
	v.SetDefault("OTP_TTL_SEC", 120)
	v.SetDefault("OTP_REQUESTS_PER_MIN", 3)
	v.SetDefault("SEARCH_NEAREST_LIMIT", 5)
	v.SetDefault("SEARCH_MAX_RADIUS_KM", 50)

	return &Config{
		Server: ServerConfig{
			Port:         v.GetString("PORT"),
			Env:          v.GetString("ENV"),
			ReadTimeout:  time.Duration(v.GetInt("READ_TIMEOUT_SEC")) * time.Second,
			WriteTimeout: time.Duration(v.GetInt("WRITE_TIMEOUT_SEC")) * time.Second,
		},
		Database: DatabaseConfig{
			DSN:             v.GetString("DB_DSN"),
			MaxIdleConns:    v.GetInt("DB_MAX_IDLE_CONNS"),
			MaxOpenConns:    v.GetInt("DB_MAX_OPEN_CONNS"),
			ConnMaxLifetime: time.Duration(v.GetInt("DB_CONN_MAX_LIFETIME_MIN")) * time.Minute,
		},
		JWT: JWTConfig{
			AccessSecret:  v.GetString("JWT_ACCESS_SECRET"),
			RefreshSecret: v.GetString("JWT_REFRESH_SECRET"),
			AccessExpiry:  time.Duration(v.GetInt("JWT_ACCESS_EXPIRY_MIN")) * time.Minute,
			RefreshExpiry: time.Duration(v.GetInt("JWT_REFRESH_EXPIRY_HOURS")) * time.Hour,
			Issuer:        v.GetString("JWT_ISSUER"),
		},
		OTP: OTPConfig{
			TTL:            time.Duration(v.GetInt("OTP_TTL_SEC")) * time.Second,
			RequestsPerMin: v.GetInt("OTP_REQUESTS_PER_MIN"),
		},
		Search: SearchConfig{
			NearestLimit: v.GetInt("SEARCH_NEAREST_LIMIT"),
			MaxRadiusKm:  v.GetFloat64("SEARCH_MAX_RADIUS_KM"),
		},
	}
}
