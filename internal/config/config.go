package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// ErrConfig marks a mandatory setting that is missing or malformed.
var ErrConfig = errors.New("configuration error")

type Config struct {
	Server   Server
	Supabase Supabase
	Clover   Clover
	Commerce Commerce
	Database Database
	Redis    Redis
	Kafka    Kafka
	Tracing  Tracing
}

type Server struct {
	Port          string        `envconfig:"PORT" default:"8080"`
	Env           string        `envconfig:"APP_ENV" default:"development"`
	LogFile       string        `envconfig:"LOG_FILE"`
	CookieSecure  bool          `envconfig:"COOKIE_SECURE" default:"false"`
	VendorTimeout time.Duration `envconfig:"VENDOR_TIMEOUT" default:"10s"`
	TemplatesDir  string        `envconfig:"TEMPLATES_DIR" default:"./web/templates"`
	StaticDir     string        `envconfig:"STATIC_DIR" default:"./web/static"`
}

// Supabase holds the hosted database and auth project. All three keys are
// mandatory: the site does not serve without its booking store.
type Supabase struct {
	URL            string `envconfig:"SUPABASE_URL" required:"true"`
	AnonKey        string `envconfig:"SUPABASE_ANON_KEY" required:"true"`
	ServiceRoleKey string `envconfig:"SUPABASE_SERVICE_ROLE_KEY" required:"true"`
}

// Clover is the point-of-sale integration. It is optional.
type Clover struct {
	APIURL     string `envconfig:"CLOVER_API_URL" default:"https://api.clover.com"`
	Token      string `envconfig:"CLOVER_API_TOKEN"`
	MerchantID string `envconfig:"CLOVER_MERCHANT_ID"`
}

// Commerce is the product catalog integration. It is optional.
type Commerce struct {
	APIURL  string `envconfig:"COMMERCE_API_URL" default:"https://api.bigcommerce.com"`
	StoreID string `envconfig:"COMMERCE_STORE_ID"`
	Token   string `envconfig:"COMMERCE_API_TOKEN"`
}

// Database optionally points the repositories straight at a SQL database
// instead of the hosted REST data API.
type Database struct {
	URL string `envconfig:"DATABASE_URL"`
}

type Redis struct {
	Addr     string `envconfig:"REDIS_ADDR"`
	Password string `envconfig:"REDIS_PASSWORD"`
	DB       int    `envconfig:"REDIS_DB" default:"0"`
}

type Kafka struct {
	Brokers []string `envconfig:"KAFKA_BROKERS"`
	Topic   string   `envconfig:"KAFKA_TOPIC" default:"installbay.events"`
}

type Tracing struct {
	Endpoint string `envconfig:"OTEL_EXPORTER_OTLP_ENDPOINT"`
}

// Load reads .env (if present) and the process environment. A missing
// mandatory variable returns an error wrapping ErrConfig.
func Load() (Config, error) {
	_ = godotenv.Load()

	var cfg Config
	sections := []struct {
		name string
		dst  any
	}{
		{"server", &cfg.Server},
		{"supabase", &cfg.Supabase},
		{"clover", &cfg.Clover},
		{"commerce", &cfg.Commerce},
		{"database", &cfg.Database},
		{"redis", &cfg.Redis},
		{"kafka", &cfg.Kafka},
		{"tracing", &cfg.Tracing},
	}
	for _, s := range sections {
		if err := envconfig.Process("", s.dst); err != nil {
			return Config{}, fmt.Errorf("%w: %s: %v", ErrConfig, s.name, err)
		}
	}
	// envconfig accepts a required key that is present but blank.
	for key, v := range map[string]string{
		"SUPABASE_URL":              cfg.Supabase.URL,
		"SUPABASE_ANON_KEY":         cfg.Supabase.AnonKey,
		"SUPABASE_SERVICE_ROLE_KEY": cfg.Supabase.ServiceRoleKey,
	} {
		if strings.TrimSpace(v) == "" {
			return Config{}, fmt.Errorf("%w: supabase: %s is empty", ErrConfig, key)
		}
	}
	cfg.Supabase.URL = strings.TrimRight(cfg.Supabase.URL, "/")
	cfg.Clover.APIURL = strings.TrimRight(cfg.Clover.APIURL, "/")
	cfg.Commerce.APIURL = strings.TrimRight(cfg.Commerce.APIURL, "/")
	return cfg, nil
}

// Missing lists the unset Clover variables; empty means the integration can
// be used.
func (c Clover) Missing() []string {
	var out []string
	if c.APIURL == "" {
		out = append(out, "CLOVER_API_URL")
	}
	if c.Token == "" {
		out = append(out, "CLOVER_API_TOKEN")
	}
	if c.MerchantID == "" {
		out = append(out, "CLOVER_MERCHANT_ID")
	}
	return out
}

func (c Commerce) Missing() []string {
	var out []string
	if c.APIURL == "" {
		out = append(out, "COMMERCE_API_URL")
	}
	if c.StoreID == "" {
		out = append(out, "COMMERCE_STORE_ID")
	}
	if c.Token == "" {
		out = append(out, "COMMERCE_API_TOKEN")
	}
	return out
}
