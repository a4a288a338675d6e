package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"kanban-board.com/kanban-board/internal/constants"
)

type Config struct {
	AppURL                 string
	DatabaseDriver         string
	DatabaseDSN            string
	DatabaseMaxOpenConns   int
	StatusMode             constants.StatusMode
	ColumnStages           []ColumnStage
	Auth                   AuthConfig
	Redis                  RedisConfig
	WSMaxConnPerUser       int
	CORSAllowedOrigins     []string
	RateLimit              int
	LogLevel               logrus.Level
	ShutdownTimeoutSeconds int
}

type AuthConfig struct {
	JWKSURL      string
	SharedSecret string
	Audience     string
	Issuer       string
	Algorithms   []string
}

type RedisConfig struct {
	Enabled       bool
	Addr          string
	EventsChannel string
}

// ColumnStage binds a column name to the stage tasks take when they land in it.
type ColumnStage struct {
	ColumnName string
	Stage      constants.TaskStage
}

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"

	defaultColumnStages = "À faire=todo,En cours=in_progress,Terminé=done"
)

func Load() (Config, error) {
	appHost := getEnv("APP_HOST", "0.0.0.0")
	appPort := getEnv("APP_PORT", "8080")
	redisHost := getEnv("REDIS_HOST", "127.0.0.1")
	redisPort := getEnv("REDIS_PORT", "6379")

	stages, err := ParseColumnStages(getEnv("COLUMN_STAGE_MAP", defaultColumnStages))
	if err != nil {
		return Config{}, err
	}

	level, err := logrus.ParseLevel(getEnv("LOG_LEVEL", "info"))
	if err != nil {
		return Config{}, fmt.Errorf("invalid LOG_LEVEL: %w", err)
	}

	redisEnabled, err := getEnvAsBool("REDIS_ENABLED", false)
	if err != nil {
		return Config{}, err
	}

	maxOpen, err := getEnvAsInt("DATABASE_MAX_OPEN_CONNS", 10)
	if err != nil {
		return Config{}, err
	}
	maxConn, err := getEnvAsInt("WS_MAX_CONN_PER_USER", 5)
	if err != nil {
		return Config{}, err
	}
	rateLimit, err := getEnvAsInt("RATE_LIMIT_PER_MINUTE", 120)
	if err != nil {
		return Config{}, err
	}
	shutdown, err := getEnvAsInt("SHUTDOWN_TIMEOUT_SECONDS", 20)
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		AppURL:               fmt.Sprintf("%s:%s", appHost, appPort),
		DatabaseDriver:       strings.ToLower(getEnv("DATABASE_DRIVER", DriverSQLite)),
		DatabaseDSN:          getEnv("DATABASE_DSN", "kanban.db"),
		DatabaseMaxOpenConns: maxOpen,
		StatusMode:           constants.StatusMode(strings.ToLower(getEnv("STATUS_MODE", string(constants.StatusModeReferenced)))),
		ColumnStages:         stages,
		Auth: AuthConfig{
			JWKSURL:      getEnv("AUTH_JWKS_URL", ""),
			SharedSecret: getEnv("AUTH_SHARED_SECRET", ""),
			Audience:     getEnv("AUTH_AUDIENCE", ""),
			Issuer:       getEnv("AUTH_ISSUER", ""),
			Algorithms:   splitList(getEnv("AUTH_ALGORITHMS", "EdDSA,RS256")),
		},
		Redis: RedisConfig{
			Enabled:       redisEnabled,
			Addr:          fmt.Sprintf("%s:%s", redisHost, redisPort),
			EventsChannel: getEnv("REDIS_EVENTS_CHANNEL", "kanban:events"),
		},
		WSMaxConnPerUser:       maxConn,
		CORSAllowedOrigins:     splitList(getEnv("CORS_ALLOWED_ORIGINS", "*")),
		RateLimit:              rateLimit,
		LogLevel:               level,
		ShutdownTimeoutSeconds: shutdown,
	}

	if err := validate(cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) ShutdownTimeout() time.Duration {
	return time.Duration(c.ShutdownTimeoutSeconds) * time.Second
}

func validate(cfg Config) error {
	switch cfg.DatabaseDriver {
	case DriverSQLite, DriverPostgres:
	default:
		return fmt.Errorf("DATABASE_DRIVER must be %q or %q, got %q", DriverSQLite, DriverPostgres, cfg.DatabaseDriver)
	}
	if cfg.DatabaseDSN == "" {
		return errors.New("DATABASE_DSN must not be empty")
	}
	if cfg.DatabaseMaxOpenConns <= 0 {
		return errors.New("DATABASE_MAX_OPEN_CONNS must be greater than 0")
	}
	switch cfg.StatusMode {
	case constants.StatusModeReferenced, constants.StatusModeColumn:
	default:
		return fmt.Errorf("STATUS_MODE must be %q or %q", constants.StatusModeReferenced, constants.StatusModeColumn)
	}
	if cfg.Auth.JWKSURL == "" && cfg.Auth.SharedSecret == "" {
		return errors.New("either AUTH_JWKS_URL or AUTH_SHARED_SECRET must be set")
	}
	if cfg.Auth.JWKSURL != "" && len(cfg.Auth.Algorithms) == 0 {
		return errors.New("AUTH_ALGORITHMS must list at least one algorithm")
	}
	if cfg.WSMaxConnPerUser <= 0 {
		return errors.New("WS_MAX_CONN_PER_USER must be greater than 0")
	}
	if cfg.RateLimit <= 0 {
		return errors.New("RATE_LIMIT_PER_MINUTE must be greater than 0")
	}
	if cfg.ShutdownTimeoutSeconds <= 0 {
		return errors.New("SHUTDOWN_TIMEOUT_SECONDS must be greater than 0")
	}
	if cfg.Redis.Enabled && cfg.Redis.EventsChannel == "" {
		return errors.New("REDIS_EVENTS_CHANNEL must not be empty when REDIS_ENABLED is set")
	}
	return nil
}

// ParseColumnStages reads "Column name=stage" pairs separated by commas.
func ParseColumnStages(raw string) ([]ColumnStage, error) {
	var stages []ColumnStage
	for _, pair := range splitList(raw) {
		name, stage, ok := strings.Cut(pair, "=")
		name = strings.TrimSpace(name)
		stage = strings.TrimSpace(stage)
		if !ok || name == "" {
			return nil, fmt.Errorf("invalid COLUMN_STAGE_MAP entry %q", pair)
		}
		s := constants.TaskStage(stage)
		if !s.Valid() {
			return nil, fmt.Errorf("invalid stage %q for column %q in COLUMN_STAGE_MAP", stage, name)
		}
		stages = append(stages, ColumnStage{ColumnName: name, Stage: s})
	}
	return stages, nil
}

func getEnv(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func getEnvAsInt(key string, defaultVal int) (int, error) {
	if v := os.Getenv(key); v != "" {
		i, err := strconv.Atoi(v)
		if err != nil {
			return 0, fmt.Errorf("invalid integer value for %s", key)
		}
		return i, nil
	}
	return defaultVal, nil
}

func getEnvAsBool(key string, defaultVal bool) (bool, error) {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return false, fmt.Errorf("invalid boolean value for %s", key)
		}
		return b, nil
	}
	return defaultVal, nil
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
