package config

import (
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	DefaultPageSize       = 10
	MaxPageSize           = 100
	DefaultLogPageSize    = 20
	TrendingCategoryLimit = 10
	RecentAdminLogs       = 10
	SearchLimit           = 20
)

type Config struct {
	AppEnv   string
	LogLevel string
	Port     string

	MongoURI string
	MongoDB  string

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	JWTSecret          string
	TokenTTL           time.Duration
	SessionIdleTimeout time.Duration
	RequestTimeout     time.Duration

	CORSOrigins    string
	RateLimitRPS   float64
	RateLimitBurst int
}

func (c Config) IsDevelopment() bool {
	return strings.EqualFold(c.AppEnv, "development")
}

func LoadConfig() Config {
	// .env is optional; real environment variables win over viper defaults either way
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, using system environment variables")
	}

	v := viper.New()
	v.AutomaticEnv()
	setDefaults(v)

	return Config{
		AppEnv:             v.GetString("APP_ENV"),
		LogLevel:           v.GetString("LOG_LEVEL"),
		Port:               v.GetString("PORT"),
		MongoURI:           v.GetString("MONGO_URI"),
		MongoDB:            v.GetString("MONGO_DB"),
		RedisAddr:          v.GetString("REDIS_ADDR"),
		RedisPassword:      v.GetString("REDIS_PASSWORD"),
		RedisDB:            v.GetInt("REDIS_DB"),
		JWTSecret:          v.GetString("JWT_SECRET"),
		TokenTTL:           v.GetDuration("TOKEN_TTL"),
		SessionIdleTimeout: v.GetDuration("SESSION_IDLE_TIMEOUT"),
		RequestTimeout:     v.GetDuration("REQUEST_TIMEOUT"),
		CORSOrigins:        v.GetString("CORS_ORIGINS"),
		RateLimitRPS:       v.GetFloat64("RATE_LIMIT_RPS"),
		RateLimitBurst:     v.GetInt("RATE_LIMIT_BURST"),
	}
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("PORT", "3000")
	v.SetDefault("MONGO_URI", "mongodb://localhost:27017")
	v.SetDefault("MONGO_DB", "forum")
	v.SetDefault("REDIS_ADDR", "localhost:6379")
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("JWT_SECRET", "")
	v.SetDefault("TOKEN_TTL", "72h")
	v.SetDefault("SESSION_IDLE_TIMEOUT", "30m")
	v.SetDefault("REQUEST_TIMEOUT", "5s")
	v.SetDefault("CORS_ORIGINS", "*")
	v.SetDefault("RATE_LIMIT_RPS", 5)
	v.SetDefault("RATE_LIMIT_BURST", 10)
}
