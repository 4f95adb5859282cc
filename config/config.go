package config

import (
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Remote struct {
	Token         string        `envconfig:"TOKEN"`
	OrdersDB      string        `envconfig:"ORDERS_DB"`
	SuppliersDB   string        `envconfig:"SUPPLIERS_DB"`
	BaseURL       string        `default:"https://api.notion.com" envconfig:"BASE_URL"`
	Timeout       time.Duration `default:"30s" envconfig:"TIMEOUT"`
	RetryAttempts int           `default:"3" envconfig:"RETRY_ATTEMPTS"`
	RetryDelay    time.Duration `default:"350ms" envconfig:"RETRY_DELAY"`
}

type SMTP struct {
	Host string `default:"smtp.office365.com" envconfig:"HOST"`
	Port int    `default:"587" envconfig:"PORT"`
}

type Mail struct {
	Subject  string `default:"Purchase Order" envconfig:"SUBJECT"`
	Greeting string `default:"Thank you for your continued support." envconfig:"GREETING"`
	Body     string `default:"Please find attached our purchase order. Kindly confirm the delivery dates within 2 business days." envconfig:"BODY"`
}

type Cache struct {
	TTL time.Duration `default:"300s" envconfig:"TTL"`
}

type Bridge struct {
	PollInterval time.Duration `default:"100ms" envconfig:"POLL_INTERVAL"`
	Buffer       int           `default:"256" envconfig:"BUFFER"`
}

type Pregen struct {
	MaxWorkers int `default:"4" envconfig:"MAX_WORKERS"`
}

type Fanout struct {
	MaxWorkers int           `default:"3" envconfig:"MAX_WORKERS"`
	CallDelay  time.Duration `default:"350ms" envconfig:"CALL_DELAY"`
}

type Paths struct {
	SaveDir      string `default:"orders" envconfig:"SAVE_DIR"`
	SettingsFile string `default:"settings.toml" envconfig:"SETTINGS_FILE"`
	AuditLog     string `default:"logs/email_send.log" envconfig:"AUDIT_LOG"`
}

type Diag struct {
	Addr    string `default:":2112" envconfig:"ADDR"`
	GinMode string `default:"debug" envconfig:"GIN_MODE"`
}

type Logger struct {
	IsProd bool `default:"false" envconfig:"IS_PROD"`
}

type Config struct {
	Remote Remote
	SMTP   SMTP
	Mail   Mail
	Cache  Cache
	Bridge Bridge
	Pregen Pregen
	Fanout Fanout
	Paths  Paths
	Diag   Diag
	Logger Logger
}

// Load — конфигурация из окружения со стандартным префиксом ORDERDESK.
func Load() (Config, error) {
	return LoadWithPrefix("ORDERDESK")
}

// LoadWithPrefix — то же с произвольным префиксом (используется в тестах,
// чтобы не пересекаться с реальным окружением).
func LoadWithPrefix(prefix string) (Config, error) {
	var c Config

	if err := envconfig.Process(prefix, &c); err != nil {
		return Config{}, err
	}

	return c, nil
}
