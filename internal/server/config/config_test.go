package config

import (
	"os"
	"testing"
	"time"
)

// clearEnv unsets variables for the duration of the test; t.Setenv registers
// the restore before the unset so ambient values come back afterwards.
func clearEnv(t *testing.T, keys ...string) {
	t.Helper()
	for _, k := range keys {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t, "HOST", "PORT", "FRONTEND_URL", "AI_PROVIDER",
		"AI_TIMEOUT_MS", "AI_MAX_RETRIES", "AI_RETRY_DELAY_MS", "AI_THINKING_DELAY_MS")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Port != 3001 {
		t.Fatalf("default port %d", cfg.Port)
	}
	if cfg.AIProvider != ProviderGroq {
		t.Fatalf("default provider %q", cfg.AIProvider)
	}
	if cfg.Addr() != "localhost:3001" {
		t.Fatalf("addr %q", cfg.Addr())
	}
	if cfg.AITimeout() != 30*time.Second {
		t.Fatalf("timeout %v", cfg.AITimeout())
	}
	if cfg.AIThinkingDelay() != time.Second {
		t.Fatalf("thinking delay %v", cfg.AIThinkingDelay())
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("AI_PROVIDER", "openai")
	t.Setenv("AI_RETRY_DELAY_MS", "50")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Port != 9000 {
		t.Fatalf("port override ignored: %d", cfg.Port)
	}
	if cfg.AIProvider != ProviderOpenAI {
		t.Fatalf("provider override ignored: %q", cfg.AIProvider)
	}
	if cfg.AIRetryDelay() != 50*time.Millisecond {
		t.Fatalf("retry delay %v", cfg.AIRetryDelay())
	}
}

func TestLoadRejectsGarbage(t *testing.T) {
	t.Setenv("PORT", "not-a-number")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error for non-numeric PORT")
	}
}
