package config

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application level configuration loaded from environment and flags.
type Config struct {
	RunAddress  string
	DatabaseURI string
	RedisAddr   string

	GatewayBaseURL        string
	GatewayConsumerKey    string
	GatewayConsumerSecret string
	GatewayShortCode      string
	GatewayPasskey        string
	GatewayCallbackURL    string

	TokenSecret string

	PaymentExpiry      time.Duration
	ReaperInterval     time.Duration
	ReaperBatchSize    int
	ReaperWorkers      int
	ShutdownTimeout    time.Duration
	RestockThreshold   int
	StoreName          string
	SMTPAddr           string
	SMTPFrom           string
	SMTPUser           string
	SMTPPassword       string
	NotificationsDebug bool
}

const (
	defaultRunAddress       = ":8080"
	defaultRedisAddr        = "localhost:6379"
	defaultTokenSecret      = "change-me-in-production"
	defaultPaymentExpiry    = 10 * time.Minute
	defaultReaperInterval   = time.Minute
	defaultReaperBatchSize  = 32
	defaultReaperWorkers    = 4
	defaultShutdownTimeout  = 10 * time.Second
	defaultRestockThreshold = 3
	defaultStoreName        = "Duka"
)

// Load parses configuration from a .env file, environment variables and flags.
func Load() (*Config, error) {
	_ = godotenv.Load()
	return load(os.Args[1:], os.LookupEnv)
}

type envLookup func(string) (string, bool)

func load(args []string, lookup envLookup) (*Config, error) {
	cfg := &Config{
		RunAddress:            getString(lookup, "RUN_ADDRESS", defaultRunAddress),
		DatabaseURI:           getString(lookup, "DATABASE_URI", ""),
		RedisAddr:             getString(lookup, "REDIS_ADDR", defaultRedisAddr),
		GatewayBaseURL:        getString(lookup, "MPESA_BASE_URL", ""),
		GatewayConsumerKey:    getString(lookup, "MPESA_CONSUMER_KEY", ""),
		GatewayConsumerSecret: getString(lookup, "MPESA_CONSUMER_SECRET", ""),
		GatewayShortCode:      getString(lookup, "MPESA_SHORTCODE", ""),
		GatewayPasskey:        getString(lookup, "MPESA_PASSKEY", ""),
		GatewayCallbackURL:    getString(lookup, "MPESA_CALLBACK_URL", ""),
		TokenSecret:           getString(lookup, "TOKEN_SECRET", defaultTokenSecret),
		PaymentExpiry:         getDuration(lookup, "PAYMENT_EXPIRY", defaultPaymentExpiry),
		ReaperInterval:        getDuration(lookup, "REAPER_INTERVAL", defaultReaperInterval),
		ReaperBatchSize:       getInt(lookup, "REAPER_BATCH_SIZE", defaultReaperBatchSize),
		ReaperWorkers:         getInt(lookup, "REAPER_WORKERS", defaultReaperWorkers),
		ShutdownTimeout:       getDuration(lookup, "SHUTDOWN_TIMEOUT", defaultShutdownTimeout),
		RestockThreshold:      getInt(lookup, "RESTOCK_THRESHOLD", defaultRestockThreshold),
		StoreName:             getString(lookup, "STORE_NAME", defaultStoreName),
		SMTPAddr:              getString(lookup, "SMTP_ADDR", ""),
		SMTPFrom:              getString(lookup, "SMTP_FROM", ""),
		SMTPUser:              getString(lookup, "SMTP_USER", ""),
		SMTPPassword:          getString(lookup, "SMTP_PASSWORD", ""),
		NotificationsDebug:    getBool(lookup, "NOTIFICATIONS_DEBUG", false),
	}

	fs := flag.NewFlagSet("duka", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	var (
		paymentExpiryStr   = cfg.PaymentExpiry.String()
		reaperIntervalStr  = cfg.ReaperInterval.String()
		shutdownTimeoutStr = cfg.ShutdownTimeout.String()
	)

	fs.StringVar(&cfg.RunAddress, "a", cfg.RunAddress, "HTTP server listen address")
	fs.StringVar(&cfg.DatabaseURI, "d", cfg.DatabaseURI, "PostgreSQL DSN")
	fs.StringVar(&cfg.RedisAddr, "redis", cfg.RedisAddr, "Redis server address")
	fs.StringVar(&cfg.GatewayBaseURL, "gateway", cfg.GatewayBaseURL, "Payment gateway base URL")
	fs.StringVar(&cfg.TokenSecret, "token-secret", cfg.TokenSecret, "Secret for signing auth tokens")
	fs.StringVar(&paymentExpiryStr, "payment-expiry", paymentExpiryStr, "TTL for pending payment attempts")
	fs.StringVar(&reaperIntervalStr, "reaper-interval", reaperIntervalStr, "Interval between expiry sweeps")
	fs.IntVar(&cfg.ReaperBatchSize, "reaper-batch", cfg.ReaperBatchSize, "Maximum attempts expired per sweep")
	fs.IntVar(&cfg.ReaperWorkers, "reaper-workers", cfg.ReaperWorkers, "Number of concurrent sweep workers")
	fs.StringVar(&shutdownTimeoutStr, "shutdown-timeout", shutdownTimeoutStr, "Graceful shutdown timeout")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("parse flags: %w", err)
	}

	var err error

	if cfg.PaymentExpiry, err = time.ParseDuration(paymentExpiryStr); err != nil {
		return nil, fmt.Errorf("invalid payment expiry: %w", err)
	}

	if cfg.ReaperInterval, err = time.ParseDuration(reaperIntervalStr); err != nil {
		return nil, fmt.Errorf("invalid reaper interval: %w", err)
	}

	if cfg.ShutdownTimeout, err = time.ParseDuration(shutdownTimeoutStr); err != nil {
		return nil, fmt.Errorf("invalid shutdown timeout: %w", err)
	}

	if secretFile, ok := lookup("TOKEN_SECRET_FILE"); ok && secretFile != "" {
		content, err := os.ReadFile(secretFile)
		if err != nil {
			return nil, fmt.Errorf("read token secret file: %w", err)
		}
		cfg.TokenSecret = string(content)
	}

	if cfg.PaymentExpiry <= 0 {
		cfg.PaymentExpiry = defaultPaymentExpiry
	}

	if cfg.ReaperInterval <= 0 {
		cfg.ReaperInterval = defaultReaperInterval
	}

	if cfg.ReaperBatchSize <= 0 {
		cfg.ReaperBatchSize = defaultReaperBatchSize
	}

	if cfg.ReaperWorkers <= 0 {
		cfg.ReaperWorkers = defaultReaperWorkers
	}

	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = defaultShutdownTimeout
	}

	if cfg.RestockThreshold <= 0 {
		cfg.RestockThreshold = defaultRestockThreshold
	}

	if cfg.DatabaseURI == "" {
		return nil, fmt.Errorf("database URI must be provided")
	}

	if cfg.GatewayBaseURL == "" {
		return nil, fmt.Errorf("payment gateway base URL must be provided")
	}

	return cfg, nil
}

func getString(lookup envLookup, key, def string) string {
	if v, ok := lookup(key); ok && v != "" {
		return v
	}
	return def
}

func getInt(lookup envLookup, key string, def int) int {
	if v, ok := lookup(key); ok && v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func getBool(lookup envLookup, key string, def bool) bool {
	if v, ok := lookup(key); ok && v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return def
}

func getDuration(lookup envLookup, key string, def time.Duration) time.Duration {
	if v, ok := lookup(key); ok && v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}
