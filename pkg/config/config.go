package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App      AppConfig
	Storage  StorageConfig
	Redis    RedisConfig
	Password PasswordConfig
	Auth     AuthConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Storage.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"ARMONIA_APP_ENV" default:"dev"`
	LogLevel     string `envconfig:"ARMONIA_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"ARMONIA_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type StorageConfig struct {
	Backend string `envconfig:"ARMONIA_STORAGE_BACKEND" default:"file"`
	Dir     string `envconfig:"ARMONIA_STORAGE_DIR" default:".armonia"`
}

func (s *StorageConfig) validate() error {
	backend := strings.ToLower(strings.TrimSpace(s.Backend))
	switch backend {
	case StorageBackendMemory, StorageBackendFile, StorageBackendRedis:
		s.Backend = backend
		return nil
	default:
		return fmt.Errorf("unsupported storage backend %q", s.Backend)
	}
}

type RedisConfig struct {
	URL          string        `envconfig:"ARMONIA_REDIS_URL"`
	Address      string        `envconfig:"ARMONIA_REDIS_ADDR"`
	Password     string        `envconfig:"ARMONIA_REDIS_PASSWORD"`
	DB           int           `envconfig:"ARMONIA_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"ARMONIA_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"ARMONIA_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"ARMONIA_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"ARMONIA_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"ARMONIA_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type PasswordConfig struct {
	BcryptCost int `envconfig:"ARMONIA_BCRYPT_COST" default:"12"`
}

type AuthConfig struct {
	// Artificial latency applied unconditionally around login/signup so
	// loading states stay visible in demos. Zero disables it.
	LoginDelay  time.Duration `envconfig:"ARMONIA_AUTH_LOGIN_DELAY" default:"0"`
	SignupDelay time.Duration `envconfig:"ARMONIA_AUTH_SIGNUP_DELAY" default:"0"`

	ErrorClearAfter time.Duration `envconfig:"ARMONIA_AUTH_ERROR_CLEAR_AFTER" default:"5s"`
}
