package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type HTTPConfig struct {
	Host           string
	Port           int
	AllowedOrigins []string
}

type DBConfig struct {
	DSN             string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime string
}

type AuthConfig struct {
	AccessSecret string
	AccessTTL    time.Duration
}

type PaginationConfig struct {
	DefaultSize int
	MaxSize     int
}

type QuotationsConfig struct {
	ValidityDays   int
	ExpiryInterval time.Duration
	Currency       string
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type SummaryConfig struct {
	APIKey   string
	Model    string
	CacheTTL time.Duration
}

type DemoConfig struct {
	Seed     bool
	Company  string
	Email    string
	Password string
}

type Config struct {
	Environment string
	HTTP        HTTPConfig
	DB          DBConfig
	Auth        AuthConfig
	Pagination  PaginationConfig
	Quotations  QuotationsConfig
	Redis       RedisConfig
	Summary     SummaryConfig
	Demo        DemoConfig
}

func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigName("app")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("./deploy")
	v.AddConfigPath("./internal/config")
	v.AutomaticEnv()

	_ = v.ReadInConfig()

	cfg := &Config{
		Environment: v.GetString("APP_ENV"),
		HTTP: HTTPConfig{
			Host:           v.GetString("HTTP_HOST"),
			Port:           v.GetInt("HTTP_PORT"),
			AllowedOrigins: parseList(v.GetString("CORS_ALLOWED_ORIGINS")),
		},
		DB: DBConfig{
			DSN:             v.GetString("DB_DSN"),
			MaxOpenConns:    v.GetInt("DB_MAX_OPEN_CONNS"),
			MaxIdleConns:    v.GetInt("DB_MAX_IDLE_CONNS"),
			ConnMaxLifetime: v.GetString("DB_CONN_MAX_LIFETIME"),
		},
		Auth: AuthConfig{
			AccessSecret: v.GetString("JWT_ACCESS_SECRET"),
			AccessTTL:    v.GetDuration("JWT_ACCESS_TTL"),
		},
		Pagination: PaginationConfig{
			DefaultSize: v.GetInt("PAGINATION_DEFAULT_SIZE"),
			MaxSize:     v.GetInt("PAGINATION_MAX_SIZE"),
		},
		Quotations: QuotationsConfig{
			ValidityDays:   v.GetInt("QUOTATION_VALIDITY_DAYS"),
			ExpiryInterval: v.GetDuration("JOBS_QUOTATION_EXPIRY_INTERVAL"),
			Currency:       v.GetString("QUOTATION_CURRENCY"),
		},
		Redis: RedisConfig{
			Addr:     v.GetString("REDIS_ADDR"),
			Password: v.GetString("REDIS_PASSWORD"),
			DB:       v.GetInt("REDIS_DB"),
		},
		Summary: SummaryConfig{
			APIKey:   v.GetString("GENAI_API_KEY"),
			Model:    v.GetString("GENAI_MODEL"),
			CacheTTL: v.GetDuration("SUMMARY_CACHE_TTL"),
		},
		Demo: DemoConfig{
			Seed:     v.GetBool("DEMO_SEED"),
			Company:  v.GetString("DEMO_COMPANY"),
			Email:    v.GetString("DEMO_EMAIL"),
			Password: v.GetString("DEMO_PASSWORD"),
		},
	}

	applyDefaults(cfg)

	if err := validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.Environment == "" {
		cfg.Environment = "development"
	}
	if cfg.HTTP.Host == "" {
		cfg.HTTP.Host = "0.0.0.0"
	}
	if cfg.HTTP.Port == 0 {
		cfg.HTTP.Port = 7090
	}
	if len(cfg.HTTP.AllowedOrigins) == 0 {
		cfg.HTTP.AllowedOrigins = []string{"*"}
	}
	if cfg.Auth.AccessTTL <= 0 {
		cfg.Auth.AccessTTL = 12 * time.Hour
	}
	if cfg.Pagination.DefaultSize <= 0 {
		cfg.Pagination.DefaultSize = 20
	}
	if cfg.Pagination.MaxSize <= 0 {
		cfg.Pagination.MaxSize = 100
	}
	if cfg.Pagination.DefaultSize > cfg.Pagination.MaxSize {
		cfg.Pagination.DefaultSize = cfg.Pagination.MaxSize
	}
	if cfg.Quotations.ValidityDays <= 0 {
		cfg.Quotations.ValidityDays = 30
	}
	if cfg.Quotations.ExpiryInterval <= 0 {
		cfg.Quotations.ExpiryInterval = time.Hour
	}
	if cfg.Quotations.Currency == "" {
		cfg.Quotations.Currency = "£"
	}
	if cfg.Summary.Model == "" {
		cfg.Summary.Model = "gemini-2.5-flash"
	}
	if cfg.Summary.CacheTTL <= 0 {
		cfg.Summary.CacheTTL = 24 * time.Hour
	}
	if cfg.Demo.Company == "" {
		cfg.Demo.Company = "Demo Construction Ltd"
	}
	if cfg.Demo.Email == "" {
		cfg.Demo.Email = "admin@demo.local"
	}
}

func validate(cfg *Config) error {
	if cfg.DB.DSN == "" {
		return fmt.Errorf("DB_DSN is required")
	}
	if cfg.Auth.AccessSecret == "" {
		return fmt.Errorf("JWT_ACCESS_SECRET is required")
	}
	if cfg.Demo.Seed && cfg.Demo.Password == "" {
		return fmt.Errorf("DEMO_PASSWORD is required when DEMO_SEED is enabled")
	}
	return nil
}

func parseList(raw string) []string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	items := strings.Split(raw, ",")
	result := make([]string, 0, len(items))
	for _, item := range items {
		item = strings.TrimSpace(item)
		if item != "" {
			result = append(result, item)
		}
	}
	return result
}
