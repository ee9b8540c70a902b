package config

import (
	"log"

	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	AppPort           string `mapstructure:"APP_PORT"`
	Env               string `mapstructure:"ENV"`
	LogLevel          string `mapstructure:"LOG_LEVEL"`
	JWTSecret         string `mapstructure:"JWT_SECRET"`
	MaxRequestsPerMin int    `mapstructure:"MAX_REQUESTS_PER_MIN"`

	// Storage configuration. STORAGE_DRIVER selects "memory" (JSON-snapshot
	// backed maps) or "mongo" (document store) behind the same repositories.
	StorageDriver string `mapstructure:"STORAGE_DRIVER"`
	DatabaseURL   string `mapstructure:"DATABASE_URL"`
	DatabaseName  string `mapstructure:"DATABASE_NAME"`
	DataFile      string `mapstructure:"DATA_FILE"`
	FlushSpec     string `mapstructure:"FLUSH_SPEC"`

	// Redis configuration.
	RedisAddr     string `mapstructure:"REDIS_ADDR"`
	RedisPassword string `mapstructure:"REDIS_PASSWORD"`
	RedisCacheDB  int    `mapstructure:"REDIS_CACHE_DB"`
	RedisQueueDB  int    `mapstructure:"REDIS_QUEUE_DB"`

	// Visitor parking tariff defaults, overridable by the administration at
	// runtime through the admin tariff endpoint.
	TariffFreeMinutes     int   `mapstructure:"TARIFF_FREE_MINUTES"`
	TariffHourlyRate      int64 `mapstructure:"TARIFF_HOURLY_RATE"`
	TariffHourlyCeiling   int   `mapstructure:"TARIFF_HOURLY_CEILING_HOURS"`
	TariffDailyRate       int64 `mapstructure:"TARIFF_DAILY_RATE"`
	TariffDayLengthHours  int   `mapstructure:"TARIFF_DAY_LENGTH_HOURS"`
	PlateLockWaitSeconds  int   `mapstructure:"PLATE_LOCK_WAIT_SECONDS"`
}

var AppConfig Config

func LoadConfig() {
	// Look for a config file named "config.yaml" in the current and "config" directory.
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	// Automatically use environment variables where available.
	viper.AutomaticEnv()

	// Set default values.
	viper.SetDefault("APP_PORT", "8080")
	viper.SetDefault("ENV", "development")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("MAX_REQUESTS_PER_MIN", 100)
	viper.SetDefault("STORAGE_DRIVER", "memory")
	viper.SetDefault("DATABASE_URL", "mongodb://localhost:27017")
	viper.SetDefault("DATABASE_NAME", "conjunto")
	viper.SetDefault("DATA_FILE", "data.json")
	viper.SetDefault("FLUSH_SPEC", "@every 5m")
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_CACHE_DB", 0)
	viper.SetDefault("REDIS_QUEUE_DB", 1)
	viper.SetDefault("TARIFF_FREE_MINUTES", 120)
	viper.SetDefault("TARIFF_HOURLY_RATE", 3000)
	viper.SetDefault("TARIFF_HOURLY_CEILING_HOURS", 9)
	viper.SetDefault("TARIFF_DAILY_RATE", 16000)
	viper.SetDefault("TARIFF_DAY_LENGTH_HOURS", 24)
	viper.SetDefault("PLATE_LOCK_WAIT_SECONDS", 2)

	if err := viper.ReadInConfig(); err != nil {
		log.Println("No config file found, using environment variables only")
	}

	if err := viper.Unmarshal(&AppConfig); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
}

func GetEnv() string {
	return AppConfig.Env
}

func IsProduction() bool {
	return GetEnv() == "production"
}
