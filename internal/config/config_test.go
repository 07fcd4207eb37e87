package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	cfg, err := LoadConfig(t.TempDir())
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}

	if cfg.Server.Address != ":8080" {
		t.Errorf("server.address = %q", cfg.Server.Address)
	}
	if cfg.Server.WriteTimeout != 90*time.Second {
		t.Errorf("server.write_timeout = %v", cfg.Server.WriteTimeout)
	}
	if cfg.Database.Driver != DriverMongo {
		t.Errorf("database.driver = %q", cfg.Database.Driver)
	}
	if cfg.AI.Model != "gpt-4o-mini" || cfg.AI.Temperature != 0.3 {
		t.Errorf("ai = %+v", cfg.AI)
	}
	if cfg.AI.RequireAuth {
		t.Error("generation route should be public by default")
	}
	if !cfg.AI.LogRawOutput {
		t.Error("raw output logging should default to on")
	}
	if cfg.JWT.Expiration != 24*time.Hour {
		t.Errorf("jwt.expiration = %v", cfg.JWT.Expiration)
	}
	if cfg.S3.Enabled() {
		t.Error("s3 should be disabled without a bucket")
	}
}

func TestLoadConfigEnvOverrides(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("DATABASE_DRIVER", "sqlite")
	t.Setenv("DATABASE_URI", "file::memory:")
	t.Setenv("AI_MAX_CONCURRENT", "4")
	t.Setenv("AI_REQUIRE_AUTH", "true")
	t.Setenv("OPENAI_API_KEY", "sk-test")

	cfg, err := LoadConfig(t.TempDir())
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Database.Driver != DriverSQLite || cfg.Database.URI != "file::memory:" {
		t.Errorf("database = %+v", cfg.Database)
	}
	if cfg.AI.MaxConcurrent != 4 {
		t.Errorf("ai.max_concurrent = %d", cfg.AI.MaxConcurrent)
	}
	if !cfg.AI.RequireAuth {
		t.Error("ai.require_auth not applied")
	}
	if cfg.AI.APIKey != "sk-test" {
		t.Errorf("ai.api_key = %q", cfg.AI.APIKey)
	}
}

func TestLoadConfigFileAndDotEnv(t *testing.T) {
	dir := t.TempDir()
	yaml := "server:\n  address: \":9090\"\nai:\n  model: gpt-4o\n"
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0o600); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, ".env"), []byte("JWT_SECRET=from-dotenv\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	prev, had := os.LookupEnv("JWT_SECRET")
	os.Unsetenv("JWT_SECRET")
	t.Cleanup(func() {
		if had {
			os.Setenv("JWT_SECRET", prev)
		} else {
			os.Unsetenv("JWT_SECRET")
		}
	})

	cfg, err := LoadConfig(dir)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Server.Address != ":9090" {
		t.Errorf("server.address = %q", cfg.Server.Address)
	}
	if cfg.AI.Model != "gpt-4o" {
		t.Errorf("ai.model = %q", cfg.AI.Model)
	}
	if cfg.JWT.Secret != "from-dotenv" {
		t.Errorf("jwt.secret = %q", cfg.JWT.Secret)
	}
}

func TestValidate(t *testing.T) {
	base := Config{
		Database: DatabaseConfig{Driver: DriverMongo, URI: "mongodb://localhost"},
		JWT:      JWTConfig{Secret: "s"},
		AI:       AIConfig{Temperature: 0.3},
	}
	if err := base.Validate(); err != nil {
		t.Fatalf("valid config rejected: %v", err)
	}

	cases := map[string]func(c *Config){
		"jwt.secret":        func(c *Config) { c.JWT.Secret = "" },
		"database.driver":   func(c *Config) { c.Database.Driver = "mysql" },
		"database.uri":      func(c *Config) { c.Database.URI = "" },
		"ai.temperature":    func(c *Config) { c.AI.Temperature = 2.5 },
		"ai.max_concurrent": func(c *Config) { c.AI.MaxConcurrent = -1 },
	}
	for key, mutate := range cases {
		c := base
		mutate(&c)
		err := c.Validate()
		if err == nil {
			t.Errorf("%s: expected error", key)
			continue
		}
		if !strings.Contains(err.Error(), key) {
			t.Errorf("%s: error %q does not name the key", key, err)
		}
	}
}
