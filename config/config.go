package config

import (
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	Port    string
	GinMode string

	DBDriver   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string
	DBPath     string
	DBLogLevel string

	JWTSecret     string
	JWTTTLHours   int
	OTPTTLMinutes int

	CORSAllowedOrigins []string
	SeedCategories     bool
	MailFrom           string
}

// DefaultJWTSecret is only meant for local development.
const DefaultJWTSecret = "default-secret"

var defaults = map[string]interface{}{
	"PORT":                 "8080",
	"GIN_MODE":             "debug",
	"DB_DRIVER":            "postgres",
	"DB_HOST":              "localhost",
	"DB_PORT":              "5432",
	"DB_USER":              "postgres",
	"DB_PASSWORD":          "",
	"DB_NAME":              "blog",
	"DB_SSLMODE":           "disable",
	"DB_PATH":              "data/blog.db",
	"DB_LOG_LEVEL":         "warn",
	"JWT_SECRET":           DefaultJWTSecret,
	"JWT_TTL_HOURS":        24,
	"OTP_TTL_MINUTES":      10,
	"CORS_ALLOWED_ORIGINS": "http://localhost:3000",
	"SEED_CATEGORIES":      true,
	"MAIL_FROM":            "no-reply@blog.local",
}

// Load reads config.yaml from the working directory when present and lets
// environment variables override every key.
func Load() *Config {
	v := viper.New()
	for key, val := range defaults {
		v.SetDefault(key, val)
	}

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			log.Printf("Error reading config file: %v", err)
		}
	}

	return fromViper(v)
}

func fromViper(v *viper.Viper) *Config {
	return &Config{
		Port:               v.GetString("PORT"),
		GinMode:            v.GetString("GIN_MODE"),
		DBDriver:           strings.ToLower(v.GetString("DB_DRIVER")),
		DBHost:             v.GetString("DB_HOST"),
		DBPort:             v.GetString("DB_PORT"),
		DBUser:             v.GetString("DB_USER"),
		DBPassword:         v.GetString("DB_PASSWORD"),
		DBName:             v.GetString("DB_NAME"),
		DBSSLMode:          v.GetString("DB_SSLMODE"),
		DBPath:             v.GetString("DB_PATH"),
		DBLogLevel:         strings.ToLower(v.GetString("DB_LOG_LEVEL")),
		JWTSecret:          v.GetString("JWT_SECRET"),
		JWTTTLHours:        v.GetInt("JWT_TTL_HOURS"),
		OTPTTLMinutes:      v.GetInt("OTP_TTL_MINUTES"),
		CORSAllowedOrigins: splitList(v.GetString("CORS_ALLOWED_ORIGINS")),
		SeedCategories:     v.GetBool("SEED_CATEGORIES"),
		MailFrom:           v.GetString("MAIL_FROM"),
	}
}

func (c *Config) UsesDefaultJWTSecret() bool {
	return c.JWTSecret == DefaultJWTSecret
}

func (c *Config) DatabaseURL() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSSLMode)
}

func splitList(raw string) []string {
	var out []string
	for _, item := range strings.Split(raw, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
