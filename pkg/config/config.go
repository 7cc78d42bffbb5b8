package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const (
	EnvPrefix = "FREEZERPLAN"

	AppEnvDev  = "dev"
	AppEnvProd = "prod"

	EnvAppEnv         = "FREEZERPLAN_APP_ENV"
	EnvPort           = "FREEZERPLAN_APP_PORT"
	EnvLogLevel       = "FREEZERPLAN_LOG_LEVEL"
	EnvDBPath         = "FREEZERPLAN_DB_PATH"
	EnvRedisAddr      = "FREEZERPLAN_REDIS_ADDR"
	EnvCalendarTTL    = "FREEZERPLAN_CALENDAR_CACHE_TTL"
	EnvFitPasses      = "FREEZERPLAN_BUDGET_FIT_PASSES"
	EnvStartLeadDays  = "FREEZERPLAN_CALENDAR_LEAD_DAYS"
	EnvAutoMigrate    = "FREEZERPLAN_AUTO_MIGRATE"
	EnvCORSOrigins    = "FREEZERPLAN_CORS_ORIGINS"
	EnvMetricsEnabled = "FREEZERPLAN_METRICS_ENABLED"
)

type Config struct {
	App          AppConfig
	Service      ServiceConfig
	DB           DBConfig
	Redis        RedisConfig
	Planner      PlannerConfig
	FeatureFlags FeatureFlagsConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Planner.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string   `envconfig:"FREEZERPLAN_APP_ENV" required:"true"`
	Port         string   `envconfig:"FREEZERPLAN_APP_PORT" default:"8080"`
	LogLevel     string   `envconfig:"FREEZERPLAN_LOG_LEVEL" default:"info"`
	LogWarnStack bool     `envconfig:"FREEZERPLAN_LOG_WARN_STACK" default:"false"`
	CORSOrigins  []string `envconfig:"FREEZERPLAN_CORS_ORIGINS" default:"http://localhost:3000"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type ServiceConfig struct {
	Kind string `envconfig:"FREEZERPLAN_SERVICE_KIND" default:"api"`
}

// DBConfig points at the local sqlite session store.
type DBConfig struct {
	Path string `envconfig:"FREEZERPLAN_DB_PATH" default:"freezerplan.db"`

	MaxOpenConns    int           `envconfig:"FREEZERPLAN_DB_MAX_OPEN_CONNS" default:"1"`
	MaxIdleConns    int           `envconfig:"FREEZERPLAN_DB_MAX_IDLE_CONNS" default:"1"`
	ConnMaxLifetime time.Duration `envconfig:"FREEZERPLAN_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"FREEZERPLAN_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

// DSN returns the sqlite connection string with foreign keys and WAL enabled.
func (d DBConfig) DSN() string {
	path := strings.TrimSpace(d.Path)
	if path == "" {
		path = "freezerplan.db"
	}
	if strings.Contains(path, "?") {
		return path
	}
	return path + "?_foreign_keys=on&_journal_mode=WAL"
}

// RedisConfig configures the optional calendar cache. An empty address disables it.
type RedisConfig struct {
	Address      string        `envconfig:"FREEZERPLAN_REDIS_ADDR"`
	Password     string        `envconfig:"FREEZERPLAN_REDIS_PASSWORD"`
	DB           int           `envconfig:"FREEZERPLAN_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"FREEZERPLAN_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"FREEZERPLAN_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"FREEZERPLAN_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"FREEZERPLAN_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"FREEZERPLAN_REDIS_WRITE_TIMEOUT" default:"5s"`
}

func (r RedisConfig) Enabled() bool {
	return strings.TrimSpace(r.Address) != ""
}

type PlannerConfig struct {
	CalendarCacheTTL time.Duration `envconfig:"FREEZERPLAN_CALENDAR_CACHE_TTL" default:"24h"`
	BudgetFitPasses  int           `envconfig:"FREEZERPLAN_BUDGET_FIT_PASSES" default:"4"`
	StartLeadDays    int           `envconfig:"FREEZERPLAN_CALENDAR_LEAD_DAYS" default:"7"`
}

func (p PlannerConfig) validate() error {
	if p.BudgetFitPasses < 1 {
		return fmt.Errorf("%s must be at least 1", EnvFitPasses)
	}
	if p.StartLeadDays < 0 {
		return fmt.Errorf("%s must not be negative", EnvStartLeadDays)
	}
	return nil
}

type FeatureFlagsConfig struct {
	AutoMigrate    bool `envconfig:"FREEZERPLAN_AUTO_MIGRATE" default:"false"`
	MetricsEnabled bool `envconfig:"FREEZERPLAN_METRICS_ENABLED" default:"true"`
}
