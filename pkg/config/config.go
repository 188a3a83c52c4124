package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App          AppConfig
	DB           DBConfig
	Redis        RedisConfig
	Webhook      WebhookConfig
	FeatureFlags FeatureFlagsConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.DB.ensureDSN(cfg.FeatureFlags.UseSQLite); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"XMX_APP_ENV" required:"true"`
	Port         string `envconfig:"XMX_APP_PORT" default:"8000"`
	LogLevel     string `envconfig:"XMX_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"XMX_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(strings.TrimSpace(a.Env), AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(strings.TrimSpace(a.Env), AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"XMX_DB_DSN"`
	Driver string `envconfig:"XMX_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"XMX_DB_HOST"`
	LegacyPort     int    `envconfig:"XMX_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"XMX_DB_USER"`
	LegacyPassword string `envconfig:"XMX_DB_PASSWORD"`
	LegacyName     string `envconfig:"XMX_DB_NAME"`
	LegacySSLMode  string `envconfig:"XMX_DB_SSLMODE" default:"disable"`

	SQLitePath string `envconfig:"XMX_SQLITE_PATH" default:"xmx.db"`

	MaxOpenConns    int           `envconfig:"XMX_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"XMX_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"XMX_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"XMX_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"XMX_REDIS_URL"`
	Address      string        `envconfig:"XMX_REDIS_ADDR"`
	Password     string        `envconfig:"XMX_REDIS_PASSWORD"`
	DB           int           `envconfig:"XMX_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"XMX_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"XMX_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"XMX_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"XMX_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"XMX_REDIS_WRITE_TIMEOUT" default:"5s"`
}

// WebhookConfig carries the CartPanda shared secret and the delivery
// dedup window. The secret variable keeps the name the sender's
// integration guide documents.
type WebhookConfig struct {
	Secret   string        `envconfig:"CARTPANDA_WEBHOOK_SECRET"`
	DedupTTL time.Duration `envconfig:"XMX_WEBHOOK_DEDUP_TTL" default:"720h"`
}

type FeatureFlagsConfig struct {
	UseSQLite   bool `envconfig:"XMX_USE_SQLITE" default:"false"`
	AutoMigrate bool `envconfig:"XMX_AUTO_MIGRATE" default:"false"`
}

// SignatureEnforced reports whether inbound webhook signatures must be
// verified. Only an environment value reading exactly as development
// disables enforcement, so a missing or garbled flag fails closed.
func (c *Config) SignatureEnforced() bool {
	return !c.App.IsDev()
}

func (db *DBConfig) ensureDSN(useSQLite bool) error {
	if useSQLite || db.DSN != "" {
		return nil
	}

	missing := []string{}
	legacyValues := map[string]string{
		EnvDBHost: db.LegacyHost,
		EnvDBUser: db.LegacyUser,
		EnvDBName: db.LegacyName,
	}
	for _, env := range legacyDBEnvVars {
		if legacyValues[env] == "" {
			missing = append(missing, env)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("either %s or %s are required", EnvDBDSN, strings.Join(missing, ", "))
	}

	userInfo := url.User(db.LegacyUser)
	if db.LegacyPassword != "" {
		userInfo = url.UserPassword(db.LegacyUser, db.LegacyPassword)
	}

	u := &url.URL{
		Scheme: "postgres",
		User:   userInfo,
		Host:   fmt.Sprintf("%s:%d", db.LegacyHost, db.LegacyPort),
		Path:   db.LegacyName,
	}

	if db.LegacySSLMode != "" {
		q := u.Query()
		q.Set("sslmode", db.LegacySSLMode)
		u.RawQuery = q.Encode()
	}

	db.DSN = u.String()
	return nil
}
