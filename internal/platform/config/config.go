package config

import (
	"fmt"
	"log"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL   string
	Port          string
	IsProduction  bool
	EnableDBCheck bool

	// RestockBudget is the operating budget subtracted from the net total
	// before the remainder is split between the owners.
	RestockBudget decimal.Decimal

	// RateLimitPerMinute caps requests per client IP. Zero disables limiting.
	RateLimitPerMinute int
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("ENABLE_DB_CHECK", false)
	viper.SetDefault("RESTOCK_BUDGET", "0")
	viper.SetDefault("RATE_LIMIT_PER_MINUTE", 300)

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	cfg.Port = viper.GetString("PORT")
	if cfg.Port == "" {
		cfg.Port = "8080"
		log.Printf("Warning: PORT environment variable not set. Defaulting to %s\n", cfg.Port)
	}

	budgetStr := viper.GetString("RESTOCK_BUDGET")
	budget, err := decimal.NewFromString(budgetStr)
	if err != nil {
		return nil, fmt.Errorf("invalid value for RESTOCK_BUDGET (%q): %w", budgetStr, err)
	}
	cfg.RestockBudget = budget

	cfg.RateLimitPerMinute = viper.GetInt("RATE_LIMIT_PER_MINUTE")
	if cfg.RateLimitPerMinute < 0 {
		return nil, fmt.Errorf("RATE_LIMIT_PER_MINUTE cannot be negative")
	}

	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")
	cfg.EnableDBCheck = viper.GetBool("ENABLE_DB_CHECK")

	return cfg, nil
}
