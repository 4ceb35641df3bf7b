package config

import (
	"fmt"
	"os"
	"strconv"
	"sync"
)

var (
	config     *Config
	configOnce sync.Once
)

// Config stores all configuration of the application, loaded from
// environment variables (optionally via a .env file).
type Config struct {
	// Database
	DBHost     string
	DBUser     string
	DBPassword string
	DBName     string
	DBPort     string

	// Server
	ServerPort string

	// JWT authentication
	JWTSecretKey   string
	TokenTTLHours  int

	// Bootstrap
	DefaultAdminPassword string
}

// LoadConfig reads configuration from the environment with defaults
// suitable for local development.
func LoadConfig() *Config {
	tokenTTL, err := strconv.Atoi(getEnv("TOKEN_TTL_HOURS", "24"))
	if err != nil || tokenTTL <= 0 {
		tokenTTL = 24
	}

	return &Config{
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBUser:     getEnv("DB_USER", "root"),
		DBPassword: getEnv("DB_PASSWORD", ""),
		DBName:     getEnv("DB_NAME", "bluemoon_fees"),
		DBPort:     getEnv("DB_PORT", "3306"),

		ServerPort: getEnv("SERVER_PORT", "8080"),

		JWTSecretKey:  getEnv("JWT_SECRET_KEY", "bluemoon-secret-key-change-in-production"),
		TokenTTLHours: tokenTTL,

		DefaultAdminPassword: getEnv("DEFAULT_ADMIN_PASSWORD", "admin123"),
	}
}

// GetConfig returns the application configuration as a singleton.
func GetConfig() *Config {
	configOnce.Do(func() {
		config = LoadConfig()
	})
	return config
}

// GetDSN returns the MySQL connection string.
func (c *Config) GetDSN() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		c.DBUser, c.DBPassword, c.DBHost, c.DBPort, c.DBName)
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}
