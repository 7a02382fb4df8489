package config

import (
	"fmt"
	"log"

	"github.com/spf13/viper"
)

// Config holds the full application configuration loaded from environment variables or .env file.
//
// Example ENV equivalent:
//
//	INGEST_DIR=.
//	INGEST_NAME_FRAGMENT=price
//	INGEST_EXTENSION=.csv
//	EXPORT_PATH=prices.html
//	EXPORT_POSTGRES=false
//	SERVER_PORT=8080
//	POSTGRES_HOST=localhost
//	POSTGRES_PORT=5432
//	POSTGRES_USER=postgres
//	POSTGRES_PASSWORD=postgres
//	POSTGRES_DB=pricemachine
//	POSTGRES_SSLMODE=disable
type Config struct {
	Ingest   IngestConfig   // Where and which price lists are read
	Export   ExportConfig   // Report destinations
	Server   ServerConfig   // HTTP server configuration (api mode)
	Postgres PostgresConfig // PostgreSQL report sink
}

// IngestConfig selects the price list files.
//
// Fields:
//   - Dir: directory scanned (non-recursive).
//   - NameFragment: case-insensitive fragment the file name must contain.
//   - Extension: case-sensitive file name suffix.
type IngestConfig struct {
	Dir          string
	NameFragment string
	Extension    string
}

// ExportConfig controls where the report is written.
type ExportConfig struct {
	Path     string // HTML report destination
	Postgres bool   // also mirror the report into PostgreSQL
}

// ServerConfig holds HTTP server settings such as the port to listen on.
type ServerConfig struct {
	Port string
}

// PostgresConfig defines connection details for PostgreSQL.
//
// Fields:
//   - Host, Port, User, Password, DBName, SSLMode: connection parameters.
//   - URL: computed DSN used by database/sql to connect.
type PostgresConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string
	URL      string
}

// AppConfig is the globally accessible configuration instance, populated once via LoadConfig().
var AppConfig Config

// LoadConfig initializes the global AppConfig by reading from .env file
// or directly from environment variables.
//
// Precedence (from lowest to highest):
//  1. Defaults set in this function.
//  2. Values from .env file (if present).
//  3. Environment variables.
//
// Command-line flags in cmd/main.go override the result.
func LoadConfig() {
	viper.SetDefault("INGEST_DIR", ".")
	viper.SetDefault("INGEST_NAME_FRAGMENT", "price")
	viper.SetDefault("INGEST_EXTENSION", ".csv")

	viper.SetDefault("EXPORT_PATH", "prices.html")
	viper.SetDefault("EXPORT_POSTGRES", false)

	viper.SetDefault("SERVER_PORT", "8080")

	viper.SetDefault("POSTGRES_HOST", "localhost")
	viper.SetDefault("POSTGRES_PORT", 5432)
	viper.SetDefault("POSTGRES_USER", "postgres")
	viper.SetDefault("POSTGRES_PASSWORD", "postgres")
	viper.SetDefault("POSTGRES_DB", "pricemachine")
	viper.SetDefault("POSTGRES_SSLMODE", "disable")

	// Optionally read from .env if present (common in local dev)
	viper.SetConfigFile(".env")
	_ = viper.ReadInConfig() // ignore error if no .env

	viper.AutomaticEnv()

	AppConfig = Config{
		Ingest: IngestConfig{
			Dir:          viper.GetString("INGEST_DIR"),
			NameFragment: viper.GetString("INGEST_NAME_FRAGMENT"),
			Extension:    viper.GetString("INGEST_EXTENSION"),
		},
		Export: ExportConfig{
			Path:     viper.GetString("EXPORT_PATH"),
			Postgres: viper.GetBool("EXPORT_POSTGRES"),
		},
		Server: ServerConfig{
			Port: viper.GetString("SERVER_PORT"),
		},
		Postgres: PostgresConfig{
			Host:     viper.GetString("POSTGRES_HOST"),
			Port:     viper.GetInt("POSTGRES_PORT"),
			User:     viper.GetString("POSTGRES_USER"),
			Password: viper.GetString("POSTGRES_PASSWORD"),
			DBName:   viper.GetString("POSTGRES_DB"),
			SSLMode:  viper.GetString("POSTGRES_SSLMODE"),
		},
	}

	AppConfig.Postgres.URL = AppConfig.Postgres.DSN()

	validateConfig()
}

// DSN builds the PostgreSQL connection string.
func (p PostgresConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		p.User,
		p.Password,
		p.Host,
		p.Port,
		p.DBName,
		p.SSLMode,
	)
}

// validateConfig ensures required variables are present and terminates
// the application if they are missing. Postgres settings are only required
// when the PostgreSQL sink is enabled.
func validateConfig() {
	if missing := missingKeys(AppConfig); len(missing) > 0 {
		log.Fatalf("❌ Missing required environment variables: %v\n", missing)
	}
}

func missingKeys(cfg Config) []string {
	var missing []string

	if cfg.Ingest.Dir == "" {
		missing = append(missing, "INGEST_DIR")
	}
	if cfg.Ingest.NameFragment == "" {
		missing = append(missing, "INGEST_NAME_FRAGMENT")
	}
	if cfg.Ingest.Extension == "" {
		missing = append(missing, "INGEST_EXTENSION")
	}
	if cfg.Export.Path == "" {
		missing = append(missing, "EXPORT_PATH")
	}
	if cfg.Server.Port == "" {
		missing = append(missing, "SERVER_PORT")
	}

	if cfg.Export.Postgres {
		if cfg.Postgres.Host == "" {
			missing = append(missing, "POSTGRES_HOST")
		}
		if cfg.Postgres.Port == 0 {
			missing = append(missing, "POSTGRES_PORT")
		}
		if cfg.Postgres.User == "" {
			missing = append(missing, "POSTGRES_USER")
		}
		if cfg.Postgres.Password == "" {
			missing = append(missing, "POSTGRES_PASSWORD")
		}
		if cfg.Postgres.DBName == "" {
			missing = append(missing, "POSTGRES_DB")
		}
	}

	return missing
}
