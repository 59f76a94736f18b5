package config

import (
	"errors"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

// FailurePolicy controls what happens when the initial database
// connection cannot be established.
type FailurePolicy string

const (
	// FailurePolicyRetry keeps the process running and re-attempts the
	// connection in the background.
	FailurePolicyRetry FailurePolicy = "retry"
	// FailurePolicyExit aborts startup on the first failed attempt.
	FailurePolicyExit FailurePolicy = "exit"
)

type Config struct {
	Env        string
	Port       int
	APIVersion string

	Database DatabaseConfig
	CORS     CORSConfig
	Log      LogConfig
}

type DatabaseConfig struct {
	Host         string
	Port         int
	User         string
	Password     string
	Name         string
	SSLMode      string
	MaxOpenConns int
	MaxIdleConns int

	OnConnectFailure FailurePolicy
	RetryInterval    time.Duration
}

type CORSConfig struct {
	AllowedOrigins []string
}

type LogConfig struct {
	Level  string
	Format string
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
	}

	cfg := &Config{}

	cfg.Env = v.GetString("ENV")
	cfg.Port = v.GetInt("PORT")
	cfg.APIVersion = v.GetString("API_VERSION")

	// Cloud-provisioned RDS_* variables win over the generic DB_* names;
	// the hard defaults come last via setDefaults.
	cfg.Database = DatabaseConfig{
		Host:             firstNonEmpty(v.GetString("RDS_HOSTNAME"), v.GetString("DB_HOST")),
		Port:             firstNonZero(v.GetInt("RDS_PORT"), v.GetInt("DB_PORT")),
		User:             firstNonEmpty(v.GetString("RDS_USERNAME"), v.GetString("DB_USER")),
		Password:         firstNonEmpty(v.GetString("RDS_PASSWORD"), v.GetString("DB_PASSWORD")),
		Name:             firstNonEmpty(v.GetString("RDS_DB_NAME"), v.GetString("DB_NAME")),
		SSLMode:          v.GetString("DB_SSL_MODE"),
		MaxOpenConns:     v.GetInt("DB_MAX_OPEN_CONNS"),
		MaxIdleConns:     v.GetInt("DB_MAX_IDLE_CONNS"),
		OnConnectFailure: failurePolicy(v.GetString("ON_CONNECT_FAILURE"), cfg.Env),
		RetryInterval:    parseDuration(v.GetString("DB_RETRY_INTERVAL"), 5*time.Second),
	}

	origins := splitAndTrim(v.GetString("ALLOWED_ORIGINS"))
	if frontend := v.GetString("FRONTEND_URL"); frontend != "" {
		origins = append(origins, frontend)
	}
	cfg.CORS = CORSConfig{AllowedOrigins: origins}

	cfg.Log = LogConfig{
		Level:  v.GetString("LOG_LEVEL"),
		Format: v.GetString("LOG_FORMAT"),
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ENV", EnvDevelopment)
	v.SetDefault("PORT", 5000)
	v.SetDefault("API_VERSION", "v1")

	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", 5432)
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "postgres")
	v.SetDefault("DB_NAME", "repair_shop")
	v.SetDefault("DB_SSL_MODE", "disable")
	v.SetDefault("DB_MAX_OPEN_CONNS", 10)
	v.SetDefault("DB_MAX_IDLE_CONNS", 5)
	v.SetDefault("DB_RETRY_INTERVAL", "5s")

	v.SetDefault("ALLOWED_ORIGINS", "http://localhost:3000")
	v.SetDefault("FRONTEND_URL", "")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")
}

// failurePolicy resolves the startup policy, deriving it from the run mode
// when not set explicitly: production stays up and retries, anything else
// fails fast.
func failurePolicy(raw, env string) FailurePolicy {
	switch FailurePolicy(strings.ToLower(strings.TrimSpace(raw))) {
	case FailurePolicyRetry:
		return FailurePolicyRetry
	case FailurePolicyExit:
		return FailurePolicyExit
	}
	if env == EnvProduction {
		return FailurePolicyRetry
	}
	return FailurePolicyExit
}

func parseDuration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}

	d, err := time.ParseDuration(raw)
	if err != nil {
		return fallback
	}

	return d
}

func firstNonEmpty(values ...string) string {
	for _, value := range values {
		if value != "" {
			return value
		}
	}
	return ""
}

func firstNonZero(values ...int) int {
	for _, value := range values {
		if value != 0 {
			return value
		}
	}
	return 0
}

func splitAndTrim(raw string) []string {
	if raw == "" {
		return nil
	}

	parts := strings.Split(raw, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}

	return result
}
