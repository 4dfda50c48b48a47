package utils

import (
	"errors"
	"os"

	"github.com/spf13/viper"
)

type Config struct {
	App      AppConfig
	Store    StoreConfig
	Database DatabaseConfig
	Pricing  PricingConfig
	Seating  SeatingConfig
	Session  SessionConfig
}

type AppConfig struct {
	Name    string
	Port    string
	Debug   bool
	LogPath string
}

// StoreConfig selects the reservation store driver and the flat-file
// locations used by the file driver.
type StoreConfig struct {
	Driver           string // "file" or "postgres"
	MoviesFile       string
	ReservationsFile string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	Name     string
	User     string
	Password string
	MaxConns int32
}

// PricingConfig is the per-age-group ticket price table in integer
// currency units (won).
type PricingConfig struct {
	Adult int64
	Teen  int64
	Child int64
}

type SeatingConfig struct {
	Rows int
	Cols int
}

type SessionConfig struct {
	ExpiryHours int
}

func LoadConfig() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.SetConfigType("env")

	// Set defaults
	viper.SetDefault("APP_NAME", "movie-reservation")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("DEBUG", false)
	viper.SetDefault("LOG_PATH", "logs/")
	viper.SetDefault("STORE_DRIVER", "file")
	viper.SetDefault("MOVIES_FILE", "data/movies.txt")
	viper.SetDefault("RESERVATIONS_FILE", "data/reservations.json")
	viper.SetDefault("DB_MAX_CONNS", 10)
	viper.SetDefault("PRICE_ADULT", 18000)
	viper.SetDefault("PRICE_TEEN", 15000)
	viper.SetDefault("PRICE_CHILD", 9000)
	viper.SetDefault("SEAT_ROWS", 6)
	viper.SetDefault("SEAT_COLS", 6)
	viper.SetDefault("SESSION_EXPIRY_HOURS", 24)

	// A missing .env is fine; defaults and real env vars still apply.
	if err := viper.ReadInConfig(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, err
	}

	viper.AutomaticEnv()

	config := &Config{
		App: AppConfig{
			Name:    viper.GetString("APP_NAME"),
			Port:    viper.GetString("PORT"),
			Debug:   viper.GetBool("DEBUG"),
			LogPath: viper.GetString("LOG_PATH"),
		},
		Store: StoreConfig{
			Driver:           viper.GetString("STORE_DRIVER"),
			MoviesFile:       viper.GetString("MOVIES_FILE"),
			ReservationsFile: viper.GetString("RESERVATIONS_FILE"),
		},
		Database: DatabaseConfig{
			Host:     viper.GetString("DB_HOST"),
			Port:     viper.GetString("DB_PORT"),
			Name:     viper.GetString("DB_NAME"),
			User:     viper.GetString("DB_USER"),
			Password: viper.GetString("DB_PASS"),
			MaxConns: viper.GetInt32("DB_MAX_CONNS"),
		},
		Pricing: PricingConfig{
			Adult: viper.GetInt64("PRICE_ADULT"),
			Teen:  viper.GetInt64("PRICE_TEEN"),
			Child: viper.GetInt64("PRICE_CHILD"),
		},
		Seating: SeatingConfig{
			Rows: viper.GetInt("SEAT_ROWS"),
			Cols: viper.GetInt("SEAT_COLS"),
		},
		Session: SessionConfig{
			ExpiryHours: viper.GetInt("SESSION_EXPIRY_HOURS"),
		},
	}

	return config, nil
}
