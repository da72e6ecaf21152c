package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config aggregates runtime configuration for the gateway.
type Config struct {
	App       AppConfig
	Logger    LoggerConfig
	Auth      AuthConfig
	Directory DirectoryConfig
	Cache     CacheConfig
	Redis     RedisConfig
	Triton    TritonConfig
}

// AppConfig controls server level behavior.
type AppConfig struct {
	Name                  string
	Env                   string
	Host                  string
	Port                  string
	Version               string
	RequestTimeoutSeconds int
}

// LoggerConfig configures logging behavior.
type LoggerConfig struct {
	Level string
}

// AuthConfig defines token and login parameters.
type AuthConfig struct {
	JWTSecret          string
	JWTExpirationHours int
	DevLoginsEnabled   bool
}

// DirectoryConfig holds UFDS/LDAP connection values.
type DirectoryConfig struct {
	URL                string
	BaseDN             string
	UserDNTemplate     string
	VerifyCertificates bool
	BindTimeoutSeconds int
	BindWorkers        int
}

// CacheConfig selects and tunes the principal cache.
type CacheConfig struct {
	Backend    string
	TTLMinutes int
}

// RedisConfig holds Redis connection values.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// TritonConfig holds upstream service endpoints.
type TritonConfig struct {
	Datacenter string
	VMAPIURL   string
	CNAPIURL   string
	NAPIURL    string
	IMGAPIURL  string
	PAPIURL    string
}

// Cache backend identifiers.
const (
	CacheBackendMemory = "memory"
	CacheBackendRedis  = "redis"
)

// Load reads configuration from environment variables, applying defaults where possible.
// A missing signing secret or directory endpoint is a hard error: the process
// must not come up able to mint unverifiable tokens or with nowhere to bind.
func Load() (*Config, error) {
	_ = godotenv.Load()

	env := getEnv("APP_ENV", "development")

	secret := os.Getenv("AUTH_JWT_SECRET")
	if secret == "" {
		return nil, fmt.Errorf("AUTH_JWT_SECRET is required")
	}

	ufdsURL := os.Getenv("UFDS_URL")
	if ufdsURL == "" {
		return nil, fmt.Errorf("UFDS_URL is required")
	}

	redisDB, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
	}

	cacheBackend := strings.ToLower(getEnv("CACHE_BACKEND", CacheBackendMemory))
	switch cacheBackend {
	case CacheBackendMemory, CacheBackendRedis:
	default:
		return nil, fmt.Errorf("invalid CACHE_BACKEND %q", cacheBackend)
	}

	cfg := &Config{
		App: AppConfig{
			Name:                  getEnv("APP_NAME", "triton-admin-gateway"),
			Env:                   env,
			Host:                  getEnv("APP_HOST", "0.0.0.0"),
			Port:                  getEnv("APP_PORT", "8080"),
			Version:               getEnv("APP_VERSION", "dev"),
			RequestTimeoutSeconds: getEnvAsInt("HTTP_REQUEST_TIMEOUT_SECONDS", 30),
		},
		Logger: LoggerConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
		Auth: AuthConfig{
			JWTSecret:          secret,
			JWTExpirationHours: getEnvAsInt("AUTH_JWT_EXPIRATION_HOURS", 24),
			DevLoginsEnabled:   getEnvAsBool("AUTH_DEV_LOGINS", env == "development"),
		},
		Directory: DirectoryConfig{
			URL:                ufdsURL,
			BaseDN:             getEnv("UFDS_BASE_DN", "o=smartdc"),
			UserDNTemplate:     getEnv("UFDS_USER_DN_TEMPLATE", "cn=%s,ou=users,o=smartdc"),
			VerifyCertificates: getEnvAsBool("LDAP_VERIFY_CERTIFICATES", true),
			BindTimeoutSeconds: getEnvAsInt("UFDS_BIND_TIMEOUT_SECONDS", 10),
			BindWorkers:        getEnvAsInt("UFDS_BIND_WORKERS", 4),
		},
		Cache: CacheConfig{
			Backend:    cacheBackend,
			TTLMinutes: getEnvAsInt("CACHE_TTL_MINUTES", 15),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", "127.0.0.1:6379"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       redisDB,
		},
		Triton: TritonConfig{
			Datacenter: getEnv("TRITON_DATACENTER", ""),
			VMAPIURL:   getEnv("VMAPI_URL", ""),
			CNAPIURL:   getEnv("CNAPI_URL", ""),
			NAPIURL:    getEnv("NAPI_URL", ""),
			IMGAPIURL:  getEnv("IMGAPI_URL", ""),
			PAPIURL:    getEnv("PAPI_URL", ""),
		},
	}

	return cfg, nil
}

// Addr returns the HTTP bind address.
func (a AppConfig) Addr() string {
	return fmt.Sprintf("%s:%s", a.Host, a.Port)
}

// RequestTimeout returns the configured request timeout duration.
func (a AppConfig) RequestTimeout() time.Duration {
	if a.RequestTimeoutSeconds <= 0 {
		return 0
	}
	return time.Duration(a.RequestTimeoutSeconds) * time.Second
}

// BindTimeout returns the directory bind deadline.
func (d DirectoryConfig) BindTimeout() time.Duration {
	if d.BindTimeoutSeconds <= 0 {
		return 10 * time.Second
	}
	return time.Duration(d.BindTimeoutSeconds) * time.Second
}

// TTL returns the principal cache lifetime.
func (c CacheConfig) TTL() time.Duration {
	if c.TTLMinutes <= 0 {
		return 15 * time.Minute
	}
	return time.Duration(c.TTLMinutes) * time.Minute
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(val)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvAsBool(key string, fallback bool) bool {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(val)
	if err != nil {
		return fallback
	}
	return parsed
}
