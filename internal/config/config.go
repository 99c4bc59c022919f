package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Show creation policies
const (
	ShowIDPolicyTitle = "title"
	ShowIDPolicyID    = "id"
)

// Config holds all application configuration
type Config struct {
	// Server configuration
	Port        string
	CORSOrigins string

	// Database configuration
	DBType            string // mysql, mariadb, postgres, sqlite, sqlite-pure, sqlserver
	DBHost            string
	DBPort            string
	DBDatabase        string
	DBUser            string
	DBPassword        string
	DBConnectionLimit int
	DBLogLevel        string

	// Token configuration
	JWTSecret   string
	JWTIssuer   string
	JWTAudience string
	JWTTTL      time.Duration

	// Optional Redis store for revoked tokens
	RedisURL string

	// TMDB configuration
	TMDBAPIKey  string
	TMDBBaseURL string

	// ShowIDPolicy selects how duplicate shows are detected on creation
	ShowIDPolicy string
}

// Load loads configuration from environment variables.
// When ENV_FILE is set, that dotenv file is loaded first without overriding the environment.
func Load() (*Config, error) {
	if envFile := os.Getenv("ENV_FILE"); envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			return nil, fmt.Errorf("failed to load %s: %w", envFile, err)
		}
		log.Printf("Loaded environment from %s", envFile)
	}

	cfg := &Config{
		Port:              getEnv("PORT", "3000"),
		CORSOrigins:       getEnv("CORS_ORIGINS", "http://localhost:4200, https://localhost:4200"),
		DBType:            strings.ToLower(getEnv("DB_TYPE", "mysql")),
		DBHost:            getEnv("DB_HOST", "localhost"),
		DBPort:            getEnv("DB_PORT", "3306"),
		DBDatabase:        getEnv("DB_DATABASE", ""),
		DBUser:            getEnv("DB_USER", ""),
		DBPassword:        getEnv("DB_PASSWORD", ""),
		DBConnectionLimit: getEnvAsInt("DB_CONNECTION_LIMIT", 5),
		DBLogLevel:        strings.ToLower(getEnv("DB_LOG_LEVEL", "warn")),
		JWTSecret:         getEnv("JWT_SECRET", ""),
		JWTIssuer:         getEnv("JWT_ISSUER", "movieapp"),
		JWTAudience:       getEnv("JWT_AUDIENCE", "movieapp-api"),
		JWTTTL:            time.Duration(getEnvAsInt("JWT_TTL_MINUTES", 60)) * time.Minute,
		RedisURL:          getEnv("REDIS_URL", ""),
		TMDBAPIKey:        getEnv("TMDB_API_KEY", ""),
		TMDBBaseURL:       getEnv("TMDB_BASE_URL", "https://api.themoviedb.org/3"),
		ShowIDPolicy:      strings.ToLower(getEnv("SHOW_ID_POLICY", ShowIDPolicyTitle)),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks required fields and enumerated values
func (cfg *Config) Validate() error {
	if cfg.DBDatabase == "" {
		return fmt.Errorf("DB_DATABASE is required")
	}
	if cfg.DBUser == "" && !cfg.IsSQLite() {
		return fmt.Errorf("DB_USER is required")
	}
	if cfg.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}
	if cfg.JWTTTL <= 0 {
		return fmt.Errorf("JWT_TTL_MINUTES must be positive")
	}
	switch cfg.ShowIDPolicy {
	case ShowIDPolicyTitle, ShowIDPolicyID:
	default:
		return fmt.Errorf("SHOW_ID_POLICY must be %q or %q, got %q", ShowIDPolicyTitle, ShowIDPolicyID, cfg.ShowIDPolicy)
	}
	return nil
}

// IsSQLite reports whether the configured database is a SQLite file
func (cfg *Config) IsSQLite() bool {
	return cfg.DBType == "sqlite" || cfg.DBType == "sqlite-pure"
}

// AllowedOrigins returns the CORS origins as a trimmed list
func (cfg *Config) AllowedOrigins() []string {
	var origins []string
	for _, origin := range strings.Split(cfg.CORSOrigins, ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			origins = append(origins, origin)
		}
	}
	return origins
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsInt gets an environment variable as an integer or returns a default value
func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}
