package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	StoreMemory   = "memory"
	StorePostgres = "postgres"
	StoreRedis    = "redis"
)

type Config struct {
	App      AppConfig
	Server   ServerConfig
	Database DatabaseConfig
	JWT      JWTConfig
	Redis    RedisConfig
	Bandit   BanditConfig
	Emotion  EmotionConfig
}

type AppConfig struct {
	Name        string
	Version     string
	Environment string
	// zap output path; empty means stderr
	LogOutput string
}

type ServerConfig struct {
	Port           string
	RequestTimeout time.Duration
	AllowOrigins   []string
}

type DatabaseConfig struct {
	Enabled  bool
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
}

type JWTConfig struct {
	SecretKey string
	TTL       time.Duration
}

type RedisConfig struct {
	RedisHost     string
	RedisPort     string
	RedisUsername string
	RedisPassword string
	RedisDB       int
	PoolSize      int
	MinIdleConns  int
	// arm statistics live under <KeyPrefix>:arm:<key>
	KeyPrefix string
}

type BanditConfig struct {
	// memory, postgres or redis
	Store               string
	Seed                int64
	AssumedSatisfaction float64
	SuccessThreshold    float64
	AssumeSatisfaction  bool
	PerUserArms         bool
}

type EmotionConfig struct {
	LexiconPath string
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	redisDB, err := getEnvInt("REDIS_DB", 0)
	if err != nil {
		return nil, errors.New("invalid redis database")
	}
	redisPool, err := getEnvInt("REDIS_POOL_SIZE", 10)
	if err != nil {
		return nil, errors.New("invalid redis pool size")
	}
	redisIdle, err := getEnvInt("REDIS_MIN_IDLE_CONNS", 2)
	if err != nil {
		return nil, errors.New("invalid redis min idle conns")
	}
	seed, err := getEnvInt64("BANDIT_SEED", time.Now().UnixNano())
	if err != nil {
		return nil, errors.New("invalid bandit seed")
	}
	assumed, err := getEnvFloat("BANDIT_ASSUMED_SATISFACTION", 0.8)
	if err != nil {
		return nil, errors.New("invalid bandit assumed satisfaction")
	}
	threshold, err := getEnvFloat("BANDIT_SUCCESS_THRESHOLD", 0.6)
	if err != nil {
		return nil, errors.New("invalid bandit success threshold")
	}
	timeout, err := time.ParseDuration(getEnv("REQUEST_TIMEOUT", "5s"))
	if err != nil {
		return nil, errors.New("invalid request timeout")
	}
	jwtTTL, err := time.ParseDuration(getEnv("JWT_TTL", "24h"))
	if err != nil {
		return nil, errors.New("invalid jwt ttl")
	}

	cfg := &Config{
		App: AppConfig{
			Name:        getEnv("APP_NAME", "Decision Coach API"),
			Version:     getEnv("APP_VERSION", "1.0.0"),
			Environment: getEnv("APP_ENV", "development"),
			LogOutput:   getEnv("LOG_OUTPUT", ""),
		},
		Server: ServerConfig{
			Port:           getEnv("PORT", "8080"),
			RequestTimeout: timeout,
			AllowOrigins:   []string{getEnv("CORS_ORIGIN", "http://localhost:3000")},
		},
		Database: DatabaseConfig{
			Enabled:  getEnvBool("DB_ENABLED", true),
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", ""),
			Name:     getEnv("DB_NAME", "decision_coach"),
			SSLMode:  getEnv("DB_SSL_MODE", "disable"),
		},
		JWT: JWTConfig{
			SecretKey: getEnv("JWT_SECRET", ""),
			TTL:       jwtTTL,
		},
		Redis: RedisConfig{
			RedisHost:     getEnv("REDIS_HOST", "localhost"),
			RedisPort:     getEnv("REDIS_PORT", "6379"),
			RedisUsername: getEnv("REDIS_USERNAME", ""),
			RedisPassword: getEnv("REDIS_PASSWORD", ""),
			RedisDB:       redisDB,
			PoolSize:      redisPool,
			MinIdleConns:  redisIdle,
			KeyPrefix:     getEnv("REDIS_KEY_PREFIX", "decision"),
		},
		Bandit: BanditConfig{
			Store:               getEnv("BANDIT_STORE", StoreMemory),
			Seed:                seed,
			AssumedSatisfaction: assumed,
			SuccessThreshold:    threshold,
			AssumeSatisfaction:  getEnvBool("BANDIT_ASSUME_SATISFACTION", true),
			PerUserArms:         getEnvBool("BANDIT_PER_USER_ARMS", false),
		},
		Emotion: EmotionConfig{
			LexiconPath: getEnv("EMOTION_LEXICON_PATH", ""),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.JWT.SecretKey == "" {
		return errors.New("missing jwt secret")
	}

	if c.Database.Enabled && c.Database.Password == "" {
		return errors.New("missing database password")
	}

	switch c.Bandit.Store {
	case StoreMemory:
	case StoreRedis:
		if c.Redis.KeyPrefix == "" || strings.ContainsAny(c.Redis.KeyPrefix, " \t\n") {
			return fmt.Errorf("invalid redis key prefix %q", c.Redis.KeyPrefix)
		}
		if c.Redis.PoolSize <= 0 || c.Redis.MinIdleConns < 0 || c.Redis.MinIdleConns > c.Redis.PoolSize {
			return errors.New("redis pool size must be positive and not below min idle conns")
		}
	case StorePostgres:
		if !c.Database.Enabled {
			return errors.New("postgres bandit store requires DB_ENABLED")
		}
	default:
		return fmt.Errorf("unknown bandit store %q", c.Bandit.Store)
	}

	if c.Bandit.AssumedSatisfaction < 0 || c.Bandit.AssumedSatisfaction > 1 {
		return errors.New("bandit assumed satisfaction must be within [0, 1]")
	}
	if c.Bandit.SuccessThreshold < 0 || c.Bandit.SuccessThreshold > 1 {
		return errors.New("bandit success threshold must be within [0, 1]")
	}

	return nil
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}

	return defaultVal
}

func getEnvInt(key string, defaultVal int) (int, error) {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal, nil
	}
	return strconv.Atoi(val)
}

func getEnvInt64(key string, defaultVal int64) (int64, error) {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal, nil
	}
	return strconv.ParseInt(val, 10, 64)
}

func getEnvFloat(key string, defaultVal float64) (float64, error) {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal, nil
	}
	return strconv.ParseFloat(val, 64)
}

func getEnvBool(key string, defaultVal bool) bool {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	b, err := strconv.ParseBool(val)
	if err != nil {
		return defaultVal
	}
	return b
}
