package config

import (
	"errors"
	"flag"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	apperrors "github.com/agbru/bigcalc/internal/errors"
)

func TestParseConfig(t *testing.T) {
	t.Parallel()

	t.Run("DefaultValues", func(t *testing.T) {
		t.Parallel()
		cfg, err := ParseConfig("bigcalc", []string{}, io.Discard)
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		if cfg.Timeout != DefaultTimeout {
			t.Errorf("Expected default Timeout %v, got %v", DefaultTimeout, cfg.Timeout)
		}
		if cfg.MaxDigits != DefaultMaxDigits {
			t.Errorf("Expected default MaxDigits %d, got %d", DefaultMaxDigits, cfg.MaxDigits)
		}
		if cfg.Port != DefaultPort {
			t.Errorf("Expected default Port %s, got %s", DefaultPort, cfg.Port)
		}
		if cfg.LogLevel != DefaultLogLevel {
			t.Errorf("Expected default LogLevel %s, got %s", DefaultLogLevel, cfg.LogLevel)
		}
		if len(cfg.Expressions) != 0 {
			t.Errorf("Expected no expressions, got %v", cfg.Expressions)
		}
	})

	t.Run("ValidFlags", func(t *testing.T) {
		t.Parallel()
		args := []string{
			"-f", "batch.txt",
			"-v",
			"-timeout", "10s",
			"-concurrency", "3",
			"-max-digits", "500",
			"-q",
			"-o", "out.txt",
			"-log-level", "debug",
			"1 + 2", "3 * 4",
		}
		cfg, err := ParseConfig("bigcalc", args, io.Discard)
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		if cfg.File != "batch.txt" {
			t.Errorf("Expected File batch.txt, got %s", cfg.File)
		}
		if !cfg.Verbose || !cfg.Quiet {
			t.Error("Expected Verbose and Quiet true")
		}
		if cfg.Timeout != 10*time.Second {
			t.Errorf("Expected Timeout 10s, got %v", cfg.Timeout)
		}
		if cfg.Concurrency != 3 || cfg.MaxDigits != 500 {
			t.Errorf("Expected Concurrency 3 and MaxDigits 500, got %d and %d", cfg.Concurrency, cfg.MaxDigits)
		}
		if cfg.OutputFile != "out.txt" {
			t.Errorf("Expected OutputFile out.txt, got %s", cfg.OutputFile)
		}
		if cfg.LogLevel != "debug" {
			t.Errorf("Expected LogLevel debug, got %s", cfg.LogLevel)
		}
		if strings.Join(cfg.Expressions, "|") != "1 + 2|3 * 4" {
			t.Errorf("Expected positional expressions, got %q", cfg.Expressions)
		}
	})

	t.Run("ServerFlags", func(t *testing.T) {
		t.Parallel()
		cfg, err := ParseConfig("bigcalc", []string{"-server", "-port", "9090"}, io.Discard)
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		if !cfg.ServerMode || cfg.Port != "9090" {
			t.Errorf("Expected server on 9090, got %v %s", cfg.ServerMode, cfg.Port)
		}
	})

	t.Run("Help", func(t *testing.T) {
		t.Parallel()
		var out strings.Builder
		_, err := ParseConfig("bigcalc", []string{"-h"}, &out)
		if !errors.Is(err, flag.ErrHelp) {
			t.Fatalf("Expected flag.ErrHelp, got %v", err)
		}
		if !strings.Contains(out.String(), "-max-digits") {
			t.Errorf("usage does not list flags: %q", out.String())
		}
	})

	t.Run("InvalidFlags", func(t *testing.T) {
		t.Parallel()
		if _, err := ParseConfig("bigcalc", []string{"-unknown"}, io.Discard); err == nil {
			t.Error("Expected error for unknown flag")
		}
	})

	t.Run("ValidationFailure", func(t *testing.T) {
		t.Parallel()
		_, err := ParseConfig("bigcalc", []string{"-interactive", "-server"}, io.Discard)
		var cfgErr apperrors.ConfigError
		if !errors.As(err, &cfgErr) {
			t.Errorf("Expected ConfigError, got %v", err)
		}
	})
}

func TestParseConfigEnvOverrides(t *testing.T) {
	env := map[string]string{
		"BIGCALC_FILE":        "exprs.txt",
		"BIGCALC_TIMEOUT":     "2m",
		"BIGCALC_CONCURRENCY": "6",
		"BIGCALC_MAX_DIGITS":  "42",
		"BIGCALC_SERVER":      "yes",
		"BIGCALC_PORT":        "3000",
		"BIGCALC_JSON":        "1",
		"BIGCALC_VERBOSE":     "true",
		"BIGCALC_NO_COLOR":    "true",
		"BIGCALC_OUTPUT":      "out.json",
		"BIGCALC_LOG_LEVEL":   "warn",
	}
	for k, v := range env {
		t.Setenv(k, v)
	}

	cfg, err := ParseConfig("bigcalc", []string{}, io.Discard)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if cfg.File != "exprs.txt" {
		t.Errorf("Expected File from env, got %s", cfg.File)
	}
	if cfg.Timeout != 2*time.Minute {
		t.Errorf("Expected Timeout 2m, got %v", cfg.Timeout)
	}
	if cfg.Concurrency != 6 || cfg.MaxDigits != 42 {
		t.Errorf("Expected Concurrency 6 and MaxDigits 42, got %d and %d", cfg.Concurrency, cfg.MaxDigits)
	}
	if !cfg.ServerMode || cfg.Port != "3000" {
		t.Errorf("Expected server on 3000, got %v %s", cfg.ServerMode, cfg.Port)
	}
	if !cfg.JSONOutput || !cfg.Verbose || !cfg.NoColor {
		t.Error("Expected JSONOutput, Verbose and NoColor from env")
	}
	if cfg.OutputFile != "out.json" || cfg.LogLevel != "warn" {
		t.Errorf("Expected OutputFile and LogLevel from env, got %s %s", cfg.OutputFile, cfg.LogLevel)
	}
}

func TestParseConfigFlagPrecedenceOverEnv(t *testing.T) {
	t.Setenv("BIGCALC_MAX_DIGITS", "200")
	t.Setenv("BIGCALC_QUIET", "true")

	cfg, err := ParseConfig("bigcalc", []string{"-max-digits", "300", "-q=false"}, io.Discard)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if cfg.MaxDigits != 300 {
		t.Errorf("Expected MaxDigits 300 from flag, got %d", cfg.MaxDigits)
	}
	if cfg.Quiet {
		t.Error("Expected explicit -q=false to win over BIGCALC_QUIET")
	}
}

func TestParseConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bigcalc.toml")
	content := `
timeout     = "45s"
concurrency = 4
max_digits  = 1000
port        = 9191
log_level   = "error"
verbose     = true
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("BIGCALC_CONCURRENCY", "8")

	cfg, err := ParseConfig("bigcalc", []string{"-config", path, "-max-digits", "7"}, io.Discard)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if cfg.Timeout != 45*time.Second {
		t.Errorf("Expected Timeout from file, got %v", cfg.Timeout)
	}
	if cfg.Concurrency != 8 {
		t.Errorf("Expected env to override file concurrency, got %d", cfg.Concurrency)
	}
	if cfg.MaxDigits != 7 {
		t.Errorf("Expected flag to override file max_digits, got %d", cfg.MaxDigits)
	}
	if cfg.Port != "9191" || cfg.LogLevel != "error" || !cfg.Verbose {
		t.Errorf("Expected port, log level and verbose from file, got %+v", cfg)
	}
}

func TestParseConfigFileErrors(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	tests := []struct {
		name    string
		content string
		msgPart string
	}{
		{"syntax", "timeout = ", "failed to parse TOML"},
		{"unknown key", "threads = 4", `unknown key "threads"`},
		{"bad duration", `timeout = "soon"`, "invalid timeout"},
		{"port range", "port = 70000", "port out of range"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			path := filepath.Join(dir, strings.ReplaceAll(tt.name, " ", "_")+".toml")
			if err := os.WriteFile(path, []byte(tt.content), 0o600); err != nil {
				t.Fatal(err)
			}
			_, err := ParseConfig("bigcalc", []string{"-config", path}, io.Discard)
			var cfgErr apperrors.ConfigError
			if !errors.As(err, &cfgErr) {
				t.Fatalf("Expected ConfigError, got %v", err)
			}
			if !strings.Contains(err.Error(), tt.msgPart) {
				t.Errorf("error %q does not contain %q", err, tt.msgPart)
			}
		})
	}

	if _, err := ParseConfig("bigcalc", []string{"-config", filepath.Join(dir, "missing.toml")}, io.Discard); err == nil {
		t.Error("Expected error for missing config file")
	}
}

func TestConfigValidate(t *testing.T) {
	t.Parallel()
	valid := AppConfig{Timeout: time.Second, Port: "8080", LogLevel: "info"}

	tests := []struct {
		name    string
		mutate  func(*AppConfig)
		wantErr bool
	}{
		{"valid", func(*AppConfig) {}, false},
		{"zero timeout", func(c *AppConfig) { c.Timeout = 0 }, true},
		{"negative concurrency", func(c *AppConfig) { c.Concurrency = -1 }, true},
		{"negative max digits", func(c *AppConfig) { c.MaxDigits = -5 }, true},
		{"interactive and server", func(c *AppConfig) { c.Interactive, c.ServerMode = true, true }, true},
		{"json and quiet", func(c *AppConfig) { c.JSONOutput, c.Quiet = true, true }, true},
		{"port not numeric", func(c *AppConfig) { c.Port = "http" }, true},
		{"port zero", func(c *AppConfig) { c.Port = "0" }, true},
		{"port too large", func(c *AppConfig) { c.Port = "65536" }, true},
		{"unknown log level", func(c *AppConfig) { c.LogLevel = "chatty" }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			c := valid
			tt.mutate(&c)
			err := c.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestEnvHelpers(t *testing.T) {
	prefix := EnvPrefix

	t.Run("getEnvString", func(t *testing.T) {
		t.Setenv(prefix+"TEST_STRING", "value")
		if val := getEnvString("TEST_STRING", "default"); val != "value" {
			t.Errorf("Expected 'value', got '%s'", val)
		}
		if val := getEnvString("NONEXISTENT", "default"); val != "default" {
			t.Errorf("Expected 'default', got '%s'", val)
		}
	})

	t.Run("getEnvInt", func(t *testing.T) {
		t.Setenv(prefix+"TEST_INT", "-123")
		t.Setenv(prefix+"TEST_BAD_INT", "abc")
		if val := getEnvInt("TEST_INT", 0); val != -123 {
			t.Errorf("Expected -123, got %d", val)
		}
		if val := getEnvInt("TEST_BAD_INT", 999); val != 999 {
			t.Errorf("Expected default 999 for invalid input, got %d", val)
		}
	})

	t.Run("getEnvBool", func(t *testing.T) {
		key := "TEST_BOOL"
		t.Setenv(prefix+key, "true")
		if val := getEnvBool(key, false); !val {
			t.Error("Expected true")
		}
		t.Setenv(prefix+key, "0")
		if val := getEnvBool(key, true); val {
			t.Error("Expected false for '0'")
		}
		t.Setenv(prefix+key, "invalid")
		if val := getEnvBool(key, true); !val {
			t.Error("Expected default true for invalid input")
		}
	})

	t.Run("getEnvDuration", func(t *testing.T) {
		t.Setenv(prefix+"TEST_DURATION", "1h")
		if val := getEnvDuration("TEST_DURATION", 0); val != time.Hour {
			t.Errorf("Expected 1h, got %v", val)
		}
	})
}

func TestParsePort(t *testing.T) {
	t.Parallel()
	if p, err := ParsePort("443"); err != nil || p != 443 {
		t.Errorf("ParsePort(443) = %d, %v", p, err)
	}
	if _, err := ParsePort("-1"); err == nil {
		t.Error("Expected error for negative port")
	}
}
