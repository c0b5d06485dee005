package config

import (
	"log"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App       AppConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	OrderAPI  OrderAPIConfig
	Sale      SaleConfig
	CORS      CORSConfig
	RateLimit RateLimitConfig
}

type AppConfig struct {
	Name  string
	Env   string
	Port  string
	Debug bool
}

type DatabaseConfig struct {
	Host     string
	Port     string
	Name     string
	User     string
	Password string
	SSLMode  string
	Timezone string
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type OrderAPIConfig struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration
}

// SaleConfig tunes the create-sale wizard. DraftKey plus DraftVersion form
// the draft slot name; bumping the version orphans old drafts instead of
// failing on them.
type SaleConfig struct {
	MinDeliveryDays         int
	MaxDeliveryDays         int
	DefaultDeliveryFeeCents int64
	MaxDiscountPercent      float64
	DraftKey                string
	DraftVersion            string
	DraftTTL                time.Duration
	ToastDuration           time.Duration
	DebounceDelay           time.Duration
	WhiteGloveFeeCents      int64
	RemovalFeeCents         int64
	SetupFeeCents           int64
}

type CORSConfig struct {
	AllowedOrigins []string
	AllowedMethods []string
	AllowedHeaders []string
}

type RateLimitConfig struct {
	Requests int
	Duration int
}

func Load() *Config {
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		log.Printf("Warning: .env file not found, using environment variables: %v", err)
	}

	// Set defaults
	viper.SetDefault("APP_NAME", "schedular-api")
	viper.SetDefault("APP_ENV", "development")
	viper.SetDefault("APP_PORT", "8080")
	viper.SetDefault("APP_DEBUG", true)
	viper.SetDefault("DB_HOST", "localhost")
	viper.SetDefault("DB_PORT", "5432")
	viper.SetDefault("DB_NAME", "schedular")
	viper.SetDefault("DB_USER", "postgres")
	viper.SetDefault("DB_PASSWORD", "postgres")
	viper.SetDefault("DB_SSL_MODE", "disable")
	viper.SetDefault("DB_TIMEZONE", "UTC")
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_DB", 0)
	viper.SetDefault("ORDER_API_BASE_URL", "http://localhost:9090")
	viper.SetDefault("ORDER_API_KEY", "")
	viper.SetDefault("ORDER_API_TIMEOUT_SECONDS", 15)
	viper.SetDefault("SALE_MIN_DELIVERY_DAYS", 7)
	viper.SetDefault("SALE_MAX_DELIVERY_DAYS", 30)
	viper.SetDefault("SALE_DEFAULT_DELIVERY_FEE_CENTS", 0)
	viper.SetDefault("SALE_MAX_DISCOUNT_PERCENT", 50)
	viper.SetDefault("SALE_DRAFT_KEY", "schedular.saleWizardDraft")
	viper.SetDefault("SALE_DRAFT_VERSION", "v1")
	viper.SetDefault("SALE_DRAFT_TTL_HOURS", 24)
	viper.SetDefault("SALE_TOAST_DURATION_MS", 5000)
	viper.SetDefault("SALE_DEBOUNCE_MS", 500)
	viper.SetDefault("SALE_WHITE_GLOVE_FEE_CENTS", 15000)
	viper.SetDefault("SALE_REMOVAL_FEE_CENTS", 5000)
	viper.SetDefault("SALE_SETUP_FEE_CENTS", 7500)
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")
	viper.SetDefault("CORS_ALLOWED_HEADERS", []string{})
	viper.SetDefault("RATE_LIMIT_REQUESTS", 100)
	viper.SetDefault("RATE_LIMIT_DURATION", 60)

	return &Config{
		App: AppConfig{
			Name:  viper.GetString("APP_NAME"),
			Env:   viper.GetString("APP_ENV"),
			Port:  viper.GetString("APP_PORT"),
			Debug: viper.GetBool("APP_DEBUG"),
		},
		Database: DatabaseConfig{
			Host:     viper.GetString("DB_HOST"),
			Port:     viper.GetString("DB_PORT"),
			Name:     viper.GetString("DB_NAME"),
			User:     viper.GetString("DB_USER"),
			Password: viper.GetString("DB_PASSWORD"),
			SSLMode:  viper.GetString("DB_SSL_MODE"),
			Timezone: viper.GetString("DB_TIMEZONE"),
		},
		Redis: RedisConfig{
			Addr:     viper.GetString("REDIS_ADDR"),
			Password: viper.GetString("REDIS_PASSWORD"),
			DB:       viper.GetInt("REDIS_DB"),
		},
		OrderAPI: OrderAPIConfig{
			BaseURL: viper.GetString("ORDER_API_BASE_URL"),
			APIKey:  viper.GetString("ORDER_API_KEY"),
			Timeout: time.Duration(viper.GetInt("ORDER_API_TIMEOUT_SECONDS")) * time.Second,
		},
		Sale: SaleConfig{
			MinDeliveryDays:         viper.GetInt("SALE_MIN_DELIVERY_DAYS"),
			MaxDeliveryDays:         viper.GetInt("SALE_MAX_DELIVERY_DAYS"),
			DefaultDeliveryFeeCents: viper.GetInt64("SALE_DEFAULT_DELIVERY_FEE_CENTS"),
			MaxDiscountPercent:      viper.GetFloat64("SALE_MAX_DISCOUNT_PERCENT"),
			DraftKey:                viper.GetString("SALE_DRAFT_KEY"),
			DraftVersion:            viper.GetString("SALE_DRAFT_VERSION"),
			DraftTTL:                time.Duration(viper.GetInt("SALE_DRAFT_TTL_HOURS")) * time.Hour,
			ToastDuration:           time.Duration(viper.GetInt("SALE_TOAST_DURATION_MS")) * time.Millisecond,
			DebounceDelay:           time.Duration(viper.GetInt("SALE_DEBOUNCE_MS")) * time.Millisecond,
			WhiteGloveFeeCents:      viper.GetInt64("SALE_WHITE_GLOVE_FEE_CENTS"),
			RemovalFeeCents:         viper.GetInt64("SALE_REMOVAL_FEE_CENTS"),
			SetupFeeCents:           viper.GetInt64("SALE_SETUP_FEE_CENTS"),
		},
		CORS: CORSConfig{
			AllowedOrigins: viper.GetStringSlice("CORS_ALLOWED_ORIGINS"),
			AllowedMethods: viper.GetStringSlice("CORS_ALLOWED_METHODS"),
			AllowedHeaders: viper.GetStringSlice("CORS_ALLOWED_HEADERS"),
		},
		RateLimit: RateLimitConfig{
			Requests: viper.GetInt("RATE_LIMIT_REQUESTS"),
			Duration: viper.GetInt("RATE_LIMIT_DURATION"),
		},
	}
}

func (c *DatabaseConfig) DSN() string {
	return "host=" + c.Host +
		" user=" + c.User +
		" password=" + c.Password +
		" dbname=" + c.Name +
		" port=" + c.Port +
		" sslmode=" + c.SSLMode +
		" TimeZone=" + c.Timezone
}
