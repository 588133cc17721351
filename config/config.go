package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	Port        string
	Env         string
	LogDir      string
	CORSOrigins []string

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	RazorpayKeyID         string
	RazorpayKeySecret     string
	RazorpayWebhookSecret string
	Currency              string
	PacksFile             string

	RedisAddr    string
	KafkaBrokers []string
	KafkaTopic   string

	StoreTimeout       time.Duration
	ProcessorTimeout   time.Duration
	StaleOrderAge      time.Duration
	StaleOrderSchedule string
}

// LoadConfig loads configuration from a .env file, when present, and the
// environment
func LoadConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("error loading .env file: %v", err)
	}

	storeTimeout, err := getDuration("STORE_TIMEOUT", 5*time.Second)
	if err != nil {
		return nil, err
	}
	processorTimeout, err := getDuration("PROCESSOR_TIMEOUT", 10*time.Second)
	if err != nil {
		return nil, err
	}
	staleAge, err := getDuration("STALE_ORDER_AGE", 24*time.Hour)
	if err != nil {
		return nil, err
	}

	config := &Config{
		Port:        getenv("PORT", "8080"),
		Env:         getenv("ENV", "development"),
		LogDir:      getenv("LOG_DIR", "logs"),
		CORSOrigins: splitCSV(getenv("CORS_ORIGINS", "*")),

		DBHost:     getenv("DB_HOST", "localhost"),
		DBPort:     getenv("DB_PORT", "5432"),
		DBUser:     getenv("DB_USER", "postgres"),
		DBPassword: getenv("DB_PASSWORD", "postgres"),
		DBName:     getenv("DB_NAME", "slotpay"),
		DBSSLMode:  getenv("DB_SSLMODE", "disable"),

		RazorpayKeyID:         os.Getenv("RAZORPAY_KEY_ID"),
		RazorpayKeySecret:     os.Getenv("RAZORPAY_KEY_SECRET"),
		RazorpayWebhookSecret: os.Getenv("RAZORPAY_WEBHOOK_SECRET"),
		Currency:              getenv("PAYMENT_CURRENCY", "INR"),
		PacksFile:             os.Getenv("PACKS_FILE"),

		RedisAddr:    os.Getenv("REDIS_ADDR"),
		KafkaBrokers: splitCSV(os.Getenv("KAFKA_BROKERS")),
		KafkaTopic:   getenv("KAFKA_TOPIC", "slots.credited"),

		StoreTimeout:       storeTimeout,
		ProcessorTimeout:   processorTimeout,
		StaleOrderAge:      staleAge,
		StaleOrderSchedule: getenv("STALE_ORDER_SCHEDULE", "@every 30m"),
	}

	return config, nil
}

// Validate reports configuration the service cannot start without
func (c *Config) Validate() error {
	var missing []string
	if c.RazorpayKeyID == "" {
		missing = append(missing, "RAZORPAY_KEY_ID")
	}
	if c.RazorpayKeySecret == "" {
		missing = append(missing, "RAZORPAY_KEY_SECRET")
	}
	if c.RazorpayWebhookSecret == "" {
		missing = append(missing, "RAZORPAY_WEBHOOK_SECRET")
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required configuration: %s", strings.Join(missing, ", "))
	}
	if c.StoreTimeout <= 0 || c.ProcessorTimeout <= 0 {
		return errors.New("timeouts must be positive")
	}
	return nil
}

// DSN returns the Postgres connection string
func (c *Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSSLMode)
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getDuration(key string, def time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %v", key, err)
	}
	return d, nil
}

func splitCSV(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			out = append(out, t)
		}
	}
	return out
}
