package config

import (
	"fmt"
	"strings"

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
}

// Report snapshot sources.
const (
	SourcePostgres = "postgres"
	SourceMongo    = "mongo"
)

type AnalyticsConfig struct {
	// Source selects where reports read their snapshot from. Writes always
	// go to the relational store.
	Source        string
	RecordQueries bool
	QueryLogLimit int
}

type MongoConfig struct {
	URI      string
	Database string
}

type Config struct {
	Environment string
	HTTP        HTTPConfig
	DB          DBConfig
	Auth        AuthConfig
	Analytics   AnalyticsConfig
	Mongo       MongoConfig
}

func Load() (*Config, error) {
	cfg := read()
	if err := validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadImporter reads the same sources as Load but only requires the settings
// the legacy importer uses.
func LoadImporter() (*Config, error) {
	cfg := read()
	if cfg.DB.DSN == "" {
		return nil, fmt.Errorf("DB_DSN is required")
	}
	if cfg.Mongo.URI == "" {
		return nil, fmt.Errorf("MONGO_URI is required")
	}
	return cfg, nil
}

func read() *Config {
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
			AllowedOrigins: splitList(v.GetString("CORS_ALLOWED_ORIGINS")),
		},
		DB: DBConfig{
			DSN:             v.GetString("DB_DSN"),
			MaxOpenConns:    v.GetInt("DB_MAX_OPEN_CONNS"),
			MaxIdleConns:    v.GetInt("DB_MAX_IDLE_CONNS"),
			ConnMaxLifetime: v.GetString("DB_CONN_MAX_LIFETIME"),
		},
		Auth: AuthConfig{
			AccessSecret: v.GetString("JWT_ACCESS_SECRET"),
		},
		Analytics: AnalyticsConfig{
			Source:        strings.ToLower(strings.TrimSpace(v.GetString("ANALYTICS_SOURCE"))),
			RecordQueries: v.GetBool("ANALYTICS_RECORD_QUERIES"),
			QueryLogLimit: v.GetInt("ANALYTICS_QUERY_LOG_LIMIT"),
		},
		Mongo: MongoConfig{
			URI:      v.GetString("MONGO_URI"),
			Database: v.GetString("MONGO_DATABASE"),
		},
	}

	if cfg.HTTP.Host == "" {
		cfg.HTTP.Host = "0.0.0.0"
	}
	if cfg.HTTP.Port == 0 {
		cfg.HTTP.Port = 7090
	}
	if len(cfg.HTTP.AllowedOrigins) == 0 {
		cfg.HTTP.AllowedOrigins = []string{"http://localhost:5173"}
	}
	if cfg.Environment == "" {
		cfg.Environment = "development"
	}
	if cfg.Analytics.Source == "" {
		cfg.Analytics.Source = SourcePostgres
	}
	if cfg.Analytics.QueryLogLimit <= 0 {
		cfg.Analytics.QueryLogLimit = 100
	}
	if cfg.Mongo.Database == "" {
		cfg.Mongo.Database = "photoshop_contest"
	}

	return cfg
}

func validate(cfg *Config) error {
	if cfg.DB.DSN == "" {
		return fmt.Errorf("DB_DSN is required")
	}
	if cfg.Auth.AccessSecret == "" {
		return fmt.Errorf("JWT_ACCESS_SECRET is required")
	}
	switch cfg.Analytics.Source {
	case SourcePostgres:
	case SourceMongo:
		if cfg.Mongo.URI == "" {
			return fmt.Errorf("MONGO_URI is required when ANALYTICS_SOURCE=%s", SourceMongo)
		}
	default:
		return fmt.Errorf("unsupported ANALYTICS_SOURCE %q", cfg.Analytics.Source)
	}
	return nil
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
