package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func setRequired(t *testing.T) {
	t.Setenv("DB_TYPE", "sqlite")
	t.Setenv("DB_DATABASE", "movieapp.db")
	t.Setenv("JWT_SECRET", "test-secret")
}

func TestLoadDefaults(t *testing.T) {
	setRequired(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Port != "3000" {
		t.Errorf("Expected default port 3000, got %s", cfg.Port)
	}
	if cfg.JWTTTL != time.Hour {
		t.Errorf("Expected 1h token lifetime, got %s", cfg.JWTTTL)
	}
	if cfg.ShowIDPolicy != ShowIDPolicyTitle {
		t.Errorf("Expected title policy, got %s", cfg.ShowIDPolicy)
	}
	if got := cfg.AllowedOrigins(); len(got) != 2 || got[0] != "http://localhost:4200" {
		t.Errorf("Unexpected origins: %v", got)
	}
}

func TestLoadRequiresSecretAndUser(t *testing.T) {
	t.Setenv("DB_TYPE", "mysql")
	t.Setenv("DB_DATABASE", "movieapp")
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("DB_USER", "")
	if _, err := Load(); err == nil {
		t.Fatal("Expected DB_USER to be required for mysql")
	}

	setRequired(t)
	t.Setenv("JWT_SECRET", "")
	if _, err := Load(); err == nil {
		t.Fatal("Expected JWT_SECRET to be required")
	}
}

func TestLoadRejectsUnknownShowPolicy(t *testing.T) {
	setRequired(t)
	t.Setenv("SHOW_ID_POLICY", "random")
	if _, err := Load(); err == nil {
		t.Fatal("Expected invalid SHOW_ID_POLICY to fail")
	}
}

func TestLoadEnvFile(t *testing.T) {
	dir := t.TempDir()
	envFile := filepath.Join(dir, ".env")
	content := "DB_TYPE=sqlite\nDB_DATABASE=from-file.db\nJWT_SECRET=file-secret\nJWT_TTL_MINUTES=15\n"
	if err := os.WriteFile(envFile, []byte(content), 0o600); err != nil {
		t.Fatalf("write env file: %v", err)
	}

	// godotenv does not override variables that are already set, so clear them first.
	for _, key := range []string{"DB_TYPE", "DB_DATABASE", "JWT_SECRET", "JWT_TTL_MINUTES"} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
	t.Setenv("ENV_FILE", envFile)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.DBDatabase != "from-file.db" {
		t.Errorf("Expected database from env file, got %s", cfg.DBDatabase)
	}
	if cfg.JWTTTL != 15*time.Minute {
		t.Errorf("Expected 15m lifetime, got %s", cfg.JWTTTL)
	}
}
