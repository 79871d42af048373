package config

import (
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server struct {
		Port string `yaml:"port"`
	} `yaml:"server"`
	Postgres struct {
		URL string `yaml:"url"`
	} `yaml:"postgres"`
	Redis struct {
		Addr     string `yaml:"addr"`
		Password string `yaml:"password"`
		DB       int    `yaml:"db"`
	} `yaml:"redis"`
	Funnel struct {
		TTL         string `yaml:"ttl"`
		RedirectURL string `yaml:"redirect_url"`
	} `yaml:"funnel"`
	Twilio struct {
		AccountSID string `yaml:"account_sid"`
		AuthToken  string `yaml:"auth_token"`
		From       string `yaml:"from"`
		NotifyTo   string `yaml:"notify_to"`
	} `yaml:"twilio"`
	Admin struct {
		SessionTTL           string `yaml:"session_ttl"`
		LoginTimeout         string `yaml:"login_timeout"`
		AllowUnauthenticated bool   `yaml:"allow_unauthenticated"`
	} `yaml:"admin"`
	Dashboard struct {
		CacheTTL string `yaml:"cache_ttl"`
	} `yaml:"dashboard"`
}

// Load reads YAML config from path and applies credential overrides from the
// environment.
func Load(path string) (Config, error) {
	cfg := Config{}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	applyEnv(&cfg)
	return cfg, nil
}

// applyEnv lets deployments keep secrets out of the config file.
func applyEnv(cfg *Config) {
	overrides := []struct {
		key string
		dst *string
	}{
		{"DATABASE_URL", &cfg.Postgres.URL},
		{"REDIS_ADDR", &cfg.Redis.Addr},
		{"REDIS_PASSWORD", &cfg.Redis.Password},
		{"TWILIO_ACCOUNT_SID", &cfg.Twilio.AccountSID},
		{"TWILIO_AUTH_TOKEN", &cfg.Twilio.AuthToken},
		{"TWILIO_PHONE_NUMBER", &cfg.Twilio.From},
		{"TWILIO_NOTIFY_NUMBER", &cfg.Twilio.NotifyTo},
	}
	for _, o := range overrides {
		if v := os.Getenv(o.key); v != "" {
			*o.dst = v
		}
	}
}

// Capabilities is resolved once at startup and decides which collaborators
// run live and which fall back to their disabled stand-ins. Call sites never
// re-check configuration presence.
type Capabilities struct {
	Persistence   bool
	Notifications bool
	Auth          bool
	Redis         bool
}

// Capabilities derives the capability set from configured credentials.
// Auth rides on Postgres: operator accounts live in the same database as the
// leads.
func (c Config) Capabilities() Capabilities {
	return Capabilities{
		Persistence:   c.Postgres.URL != "",
		Notifications: c.Twilio.AccountSID != "" && c.Twilio.AuthToken != "" && c.Twilio.From != "",
		Auth:          c.Postgres.URL != "",
		Redis:         c.Redis.Addr != "",
	}
}

// TTLDuration parses a duration string or returns the fallback if empty or
// invalid.
func TTLDuration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}
	if d, err := time.ParseDuration(raw); err == nil {
		return d
	}
	return fallback
}
