package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// LoadDotEnv loads environment variables from a .env file if present.
// Existing environment variables are not overwritten.
func LoadDotEnv(path string) error {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	return godotenv.Load(path)
}

type Config struct {
	Port           string
	AuthToken      string
	DBHost         string
	DBPort         int
	DBUser         string
	DBPassword     string
	DBName         string
	DBMaxOpenConns int
}

func Default() Config {
	return Config{
		Port:           "3000",
		DBPort:         3306,
		DBMaxOpenConns: 5,
	}
}

// Load reads the configuration from the environment. A missing required
// value is an error; the caller is expected to treat it as fatal.
func Load() (Config, error) {
	cfg := Default()
	if raw := os.Getenv("PORT"); raw != "" {
		cfg.Port = raw
	}
	if raw := os.Getenv("MYSQL_PORT"); raw != "" {
		value, err := strconv.Atoi(raw)
		if err != nil || value <= 0 {
			return Config{}, fmt.Errorf("invalid MYSQL_PORT %q", raw)
		}
		cfg.DBPort = value
	}
	if raw := os.Getenv("DB_MAX_OPEN_CONNS"); raw != "" {
		if value, err := strconv.Atoi(raw); err == nil && value > 0 {
			cfg.DBMaxOpenConns = value
		}
	}
	cfg.AuthToken = os.Getenv("AUTH_TOKEN")
	cfg.DBHost = os.Getenv("MYSQL_HOST")
	cfg.DBUser = os.Getenv("MYSQL_USER")
	cfg.DBPassword = os.Getenv("MYSQL_PASSWORD")
	cfg.DBName = os.Getenv("MYSQL_DATABASE")

	for key, value := range map[string]string{
		"AUTH_TOKEN":     cfg.AuthToken,
		"MYSQL_HOST":     cfg.DBHost,
		"MYSQL_USER":     cfg.DBUser,
		"MYSQL_PASSWORD": cfg.DBPassword,
		"MYSQL_DATABASE": cfg.DBName,
	} {
		if value == "" {
			return Config{}, fmt.Errorf("%s is not set", key)
		}
	}
	return cfg, nil
}

// DSN builds the MariaDB connection string for the gorm driver.
func (c Config) DSN() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?parseTime=true",
		c.DBUser, c.DBPassword, c.DBHost, c.DBPort, c.DBName)
}

// MigrationURL builds the connection URL for golang-migrate.
func (c Config) MigrationURL() string {
	return "mysql://" + c.DSN()
}
