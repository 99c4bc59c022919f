package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/localnerve/movieapp/internal/config"
	"github.com/localnerve/movieapp/internal/utils"
	"gorm.io/gorm"
)

// HealthCheckResult represents the result of a health check
type HealthCheckResult struct {
	Status       string            `json:"status"`
	Database     string            `json:"database"`
	TMDB         string            `json:"tmdb"`
	Revocation   string            `json:"revocation"`
	Details      map[string]string `json:"details,omitempty"`
	ErrorMessage string            `json:"error,omitempty"`
}

// pinger is implemented by revokers backed by a remote store
type pinger interface {
	Ping(ctx context.Context) error
}

// HealthCheck checks the database, the TMDB API when a key is configured, and a remote
// revocation store when one is used
func HealthCheck(cfg *config.Config, db *gorm.DB, revoker TokenRevoker) HealthCheckResult {
	result := HealthCheckResult{
		Status:  "healthy",
		Details: make(map[string]string),
	}

	fail := func(component, message string, err error) {
		result.Status = "unhealthy"
		result.Details[component+"_error"] = err.Error()
		msg := fmt.Sprintf("%s: %v", message, err)
		if result.ErrorMessage == "" {
			result.ErrorMessage = msg
		} else {
			result.ErrorMessage += "; " + msg
		}
		log.Printf("Health check failed - %s", msg)
	}

	sqlDB, err := db.DB()
	if err != nil {
		result.Database = "error"
		fail("database", "Database connection error", err)
	} else if err := sqlDB.Ping(); err != nil {
		result.Database = "unreachable"
		fail("database", "Database ping failed", err)
	} else {
		result.Database = "ok"
		result.Details["database_type"] = cfg.DBType
		result.Details["database_name"] = cfg.DBDatabase
	}

	if cfg.TMDBAPIKey == "" {
		result.TMDB = "disabled"
	} else if err := utils.PingTMDB(cfg.TMDBBaseURL); err != nil {
		result.TMDB = "unreachable"
		fail("tmdb", "TMDB ping failed", err)
	} else {
		result.TMDB = "ok"
		result.Details["tmdb_url"] = cfg.TMDBBaseURL
	}

	if p, ok := revoker.(pinger); ok {
		ctx, cancel := context.WithTimeout(context.Background(), 1500*time.Millisecond)
		defer cancel()
		if err := p.Ping(ctx); err != nil {
			result.Revocation = "unreachable"
			fail("redis", "Redis ping failed", err)
		} else {
			result.Revocation = "redis"
		}
	} else {
		result.Revocation = "memory"
	}

	if result.Status == "healthy" {
		log.Println("Health check passed - all systems operational")
	}

	return result
}
