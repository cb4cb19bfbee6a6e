package config

const (
	EnvPrefix = "ARMONIA"

	AppEnvDev  = "dev"
	AppEnvProd = "production"

	StorageBackendMemory = "memory"
	StorageBackendFile   = "file"
	StorageBackendRedis  = "redis"

	EnvAppEnv         = "ARMONIA_APP_ENV"
	EnvLogLevel       = "ARMONIA_LOG_LEVEL"
	EnvStorageBackend = "ARMONIA_STORAGE_BACKEND"
	EnvStorageDir     = "ARMONIA_STORAGE_DIR"
	EnvRedisURL       = "ARMONIA_REDIS_URL"
	EnvBcryptCost     = "ARMONIA_BCRYPT_COST"
)
