package config

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Store drivers.
const (
	StoreDriverPostgres = "postgres"
	StoreDriverMemory   = "memory"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL     string
	Port            string
	IsProduction    bool
	EnableDBCheck   bool
	JWTSecret       string
	StoreDriver     string
	TxTimeout       time.Duration
	RateLimit       string // ulule/limiter format, e.g. "300-M"
	FrontendBaseURL string `mapstructure:"FRONTEND_BASE_URL"`
	MigrationsPath  string
}

const (
	defaultJWTSecret     = "a-very-secret-key-should-be-longer-and-random"
	defaultTxTimeout     = 5 * time.Second
	devRateLimit         = "1000-M"
	productionRateLimit  = "300-M"
	defaultMigrationsDir = "file://migrations"
)

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("ENABLE_DB_CHECK", false)
	viper.SetDefault("JWT_SECRET", defaultJWTSecret)
	viper.SetDefault("STORE_DRIVER", StoreDriverPostgres)
	viper.SetDefault("TX_TIMEOUT", defaultTxTimeout.String())
	viper.SetDefault("RATE_LIMIT", "")
	viper.SetDefault("FRONTEND_BASE_URL", "http://localhost:3000")
	viper.SetDefault("MIGRATIONS_PATH", defaultMigrationsDir)

	viper.AutomaticEnv()

	cfg := &Config{
		DatabaseURL:     viper.GetString("PGSQL_URL"),
		Port:            viper.GetString("PORT"),
		IsProduction:    viper.GetBool("IS_PRODUCTION"),
		EnableDBCheck:   viper.GetBool("ENABLE_DB_CHECK"),
		JWTSecret:       viper.GetString("JWT_SECRET"),
		StoreDriver:     strings.ToLower(viper.GetString("STORE_DRIVER")),
		FrontendBaseURL: viper.GetString("FRONTEND_BASE_URL"),
		MigrationsPath:  viper.GetString("MIGRATIONS_PATH"),
	}

	if cfg.Port == "" {
		cfg.Port = "8080"
		log.Printf("Warning: PORT environment variable not set. Defaulting to %s\n", cfg.Port)
	}

	switch cfg.StoreDriver {
	case StoreDriverPostgres:
		if cfg.DatabaseURL == "" {
			log.Println("Warning: PGSQL_URL environment variable not set.")
		}
	case StoreDriverMemory:
		if cfg.IsProduction {
			return nil, fmt.Errorf("STORE_DRIVER=%s is not allowed in production", StoreDriverMemory)
		}
	default:
		return nil, fmt.Errorf("unknown STORE_DRIVER %q", cfg.StoreDriver)
	}

	if cfg.JWTSecret == "" || cfg.JWTSecret == defaultJWTSecret {
		if cfg.IsProduction {
			return nil, fmt.Errorf("JWT_SECRET must be set in production")
		}
		cfg.JWTSecret = defaultJWTSecret // !! CHANGE IN PRODUCTION !!
		log.Println("Warning: JWT_SECRET environment variable not set. Using default insecure key.")
	}

	txTimeoutStr := viper.GetString("TX_TIMEOUT")
	txTimeout, err := time.ParseDuration(txTimeoutStr)
	if err != nil || txTimeout <= 0 {
		txTimeout = defaultTxTimeout
		log.Printf("Warning: Invalid value for TX_TIMEOUT ('%s'). Defaulting to %s.\n", txTimeoutStr, txTimeout)
	}
	cfg.TxTimeout = txTimeout

	cfg.RateLimit = viper.GetString("RATE_LIMIT")
	if cfg.RateLimit == "" {
		cfg.RateLimit = devRateLimit
		if cfg.IsProduction {
			cfg.RateLimit = productionRateLimit
		}
	}

	return cfg, nil
}
