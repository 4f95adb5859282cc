package config_test

import (
	"testing"
	"time"

	cfg "orderdesk/config"
)

// TestLoadWithPrefix_Defaults — проверка наличия значений по умолчанию.
func TestLoadWithPrefix_Defaults(t *testing.T) {
	t.Parallel()

	c, err := cfg.LoadWithPrefix("ORDERDESK_TEST_DEFAULTS")
	if err != nil {
		t.Fatalf("LoadWithPrefix error: %v", err)
	}

	// Remote
	if c.Remote.Token != "" || c.Remote.OrdersDB != "" || c.Remote.SuppliersDB != "" {
		t.Fatalf("Remote identifiers should default to empty: %+v", c.Remote)
	}
	if c.Remote.BaseURL != "https://api.notion.com" {
		t.Fatalf("Remote.BaseURL: want https://api.notion.com, got %q", c.Remote.BaseURL)
	}
	if c.Remote.Timeout != 30*time.Second {
		t.Fatalf("Remote.Timeout: want 30s, got %v", c.Remote.Timeout)
	}
	if c.Remote.RetryAttempts != 3 || c.Remote.RetryDelay != 350*time.Millisecond {
		t.Fatalf("Remote retry defaults wrong: %+v", c.Remote)
	}

	// SMTP
	if c.SMTP.Host != "smtp.office365.com" || c.SMTP.Port != 587 {
		t.Fatalf("SMTP defaults wrong: %+v", c.SMTP)
	}

	// Cache
	if c.Cache.TTL != 300*time.Second {
		t.Fatalf("Cache.TTL: want 300s, got %v", c.Cache.TTL)
	}

	// Bridge
	if c.Bridge.PollInterval != 100*time.Millisecond || c.Bridge.Buffer != 256 {
		t.Fatalf("Bridge defaults wrong: %+v", c.Bridge)
	}

	// Пулы
	if c.Pregen.MaxWorkers != 4 {
		t.Fatalf("Pregen.MaxWorkers: want 4, got %d", c.Pregen.MaxWorkers)
	}
	if c.Fanout.MaxWorkers != 3 || c.Fanout.CallDelay != 350*time.Millisecond {
		t.Fatalf("Fanout defaults wrong: %+v", c.Fanout)
	}

	// Paths
	if c.Paths.SaveDir != "orders" || c.Paths.SettingsFile != "settings.toml" {
		t.Fatalf("Paths defaults wrong: %+v", c.Paths)
	}
	if c.Paths.AuditLog != "logs/email_send.log" {
		t.Fatalf("Paths.AuditLog: want logs/email_send.log, got %q", c.Paths.AuditLog)
	}

	// Diag
	if c.Diag.Addr != ":2112" || c.Diag.GinMode != "debug" {
		t.Fatalf("Diag defaults wrong: %+v", c.Diag)
	}

	// Logger
	if c.Logger.IsProd {
		t.Fatalf("Logger.IsProd: want false, got true")
	}
}

// Меняем окружение.
func TestLoadWithPrefix_Overrides(t *testing.T) {
	const p = "ORDERDESK_TEST_OVR"

	t.Setenv(p+"_REMOTE_TOKEN", "secret-token")
	t.Setenv(p+"_REMOTE_ORDERS_DB", "db-orders")
	t.Setenv(p+"_REMOTE_SUPPLIERS_DB", "db-suppliers")
	t.Setenv(p+"_REMOTE_BASE_URL", "http://localhost:9011")
	t.Setenv(p+"_REMOTE_TIMEOUT", "5s")
	t.Setenv(p+"_REMOTE_RETRY_ATTEMPTS", "5")
	t.Setenv(p+"_REMOTE_RETRY_DELAY", "10ms")

	t.Setenv(p+"_SMTP_HOST", "mail.example.com")
	t.Setenv(p+"_SMTP_PORT", "2525")

	t.Setenv(p+"_CACHE_TTL", "30s")
	t.Setenv(p+"_BRIDGE_POLL_INTERVAL", "50ms")
	t.Setenv(p+"_BRIDGE_BUFFER", "16")
	t.Setenv(p+"_PREGEN_MAX_WORKERS", "2")
	t.Setenv(p+"_FANOUT_MAX_WORKERS", "1")
	t.Setenv(p+"_FANOUT_CALL_DELAY", "5ms")

	t.Setenv(p+"_PATHS_SAVE_DIR", "/tmp/orders")
	t.Setenv(p+"_PATHS_SETTINGS_FILE", "/tmp/settings.toml")
	t.Setenv(p+"_PATHS_AUDIT_LOG", "/tmp/audit.log")

	t.Setenv(p+"_DIAG_ADDR", ":9998")
	t.Setenv(p+"_DIAG_GIN_MODE", "release")
	t.Setenv(p+"_LOGGER_IS_PROD", "true")

	c, err := cfg.LoadWithPrefix(p)
	if err != nil {
		t.Fatalf("LoadWithPrefix error: %v", err)
	}

	// Проверки
	if c.Remote.Token != "secret-token" || c.Remote.OrdersDB != "db-orders" || c.Remote.SuppliersDB != "db-suppliers" {
		t.Fatalf("Remote identifiers override wrong: %+v", c.Remote)
	}
	if c.Remote.BaseURL != "http://localhost:9011" || c.Remote.Timeout != 5*time.Second {
		t.Fatalf("Remote overrides wrong: %+v", c.Remote)
	}
	if c.Remote.RetryAttempts != 5 || c.Remote.RetryDelay != 10*time.Millisecond {
		t.Fatalf("Remote retry overrides wrong: %+v", c.Remote)
	}
	if c.SMTP.Host != "mail.example.com" || c.SMTP.Port != 2525 {
		t.Fatalf("SMTP overrides wrong: %+v", c.SMTP)
	}
	if c.Cache.TTL != 30*time.Second {
		t.Fatalf("Cache.TTL override wrong: %v", c.Cache.TTL)
	}
	if c.Bridge.PollInterval != 50*time.Millisecond || c.Bridge.Buffer != 16 {
		t.Fatalf("Bridge overrides wrong: %+v", c.Bridge)
	}
	if c.Pregen.MaxWorkers != 2 || c.Fanout.MaxWorkers != 1 || c.Fanout.CallDelay != 5*time.Millisecond {
		t.Fatalf("pool overrides wrong: pregen=%+v fanout=%+v", c.Pregen, c.Fanout)
	}
	if c.Paths.SaveDir != "/tmp/orders" || c.Paths.SettingsFile != "/tmp/settings.toml" || c.Paths.AuditLog != "/tmp/audit.log" {
		t.Fatalf("Paths overrides wrong: %+v", c.Paths)
	}
	if c.Diag.Addr != ":9998" || c.Diag.GinMode != "release" {
		t.Fatalf("Diag overrides wrong: %+v", c.Diag)
	}
	if !c.Logger.IsProd {
		t.Fatalf("Logger.IsProd override wrong: %+v", c.Logger)
	}
}

// Тоже меняем окружение — но с невалидным значением.
func TestLoadWithPrefix_InvalidValue_ReturnsError(t *testing.T) {
	const p = "ORDERDESK_TEST_BAD"
	t.Setenv(p+"_CACHE_TTL", "not-a-duration")

	if _, err := cfg.LoadWithPrefix(p); err == nil {
		t.Fatalf("expected error for invalid duration, got nil")
	}
}
