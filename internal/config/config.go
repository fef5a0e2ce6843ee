package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"go.mongodb.org/mongo-driver/x/mongo/driver/connstring"
)

// Database drivers.
const (
	DriverMongo    = "mongo"
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
	DriverMemory   = "memory"
)

// Log formats.
const (
	LogFormatText = "text"
	LogFormatJSON = "json"
)

// DefaultDatabaseName is used when the Mongo URL names no database.
const DefaultDatabaseName = "project2db"

// Config is the runtime configuration of the service.
type Config struct {
	Port        string
	Database    Database
	RabbitMQURL string
	Log         Log
}

// Database selects and locates the product store.
type Database struct {
	Driver string
	URL    string // connection string or DSN, depending on Driver
	Name   string // Mongo database name
}

// Log configures the process logger.
type Log struct {
	Format    string
	Level     slog.Level
	AccessLog bool
}

// Addr is the listen address derived from Port.
func (c Config) Addr() string {
	if strings.Contains(c.Port, ":") {
		return c.Port
	}
	return ":" + c.Port
}

// Load reads configuration from the environment, after loading envFile
// (if it exists) into the environment. Variables already set win over
// the file.
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to load %s: %w", envFile, err)
		}
	}

	v := viper.New()
	v.SetDefault("PORT", "3000")
	v.SetDefault("DB", "mongodb://localhost:27017/project2db")
	v.SetDefault("DB_DRIVER", DriverMongo)
	v.SetDefault("DB_NAME", "")
	v.SetDefault("RABBITMQ_URL", "")
	v.SetDefault("LOG_FORMAT", LogFormatText)
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("ACCESS_LOG", true)
	v.AutomaticEnv()

	return fromViper(v)
}

func fromViper(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		Port: v.GetString("PORT"),
		Database: Database{
			Driver: strings.ToLower(v.GetString("DB_DRIVER")),
			URL:    v.GetString("DB"),
			Name:   v.GetString("DB_NAME"),
		},
		RabbitMQURL: v.GetString("RABBITMQ_URL"),
		Log: Log{
			Format:    strings.ToLower(v.GetString("LOG_FORMAT")),
			AccessLog: v.GetBool("ACCESS_LOG"),
		},
	}

	switch cfg.Database.Driver {
	case DriverMongo:
		if cfg.Database.Name == "" {
			cs, err := connstring.ParseAndValidate(cfg.Database.URL)
			if err != nil {
				return nil, fmt.Errorf("invalid DB connection string: %w", err)
			}
			cfg.Database.Name = cs.Database
		}
		if cfg.Database.Name == "" {
			cfg.Database.Name = DefaultDatabaseName
		}
	case DriverPostgres, DriverSQLite, DriverMemory:
	default:
		return nil, fmt.Errorf("unknown DB_DRIVER %q", cfg.Database.Driver)
	}

	switch cfg.Log.Format {
	case LogFormatText, LogFormatJSON:
	default:
		return nil, fmt.Errorf("unknown LOG_FORMAT %q", cfg.Log.Format)
	}

	if err := cfg.Log.Level.UnmarshalText([]byte(v.GetString("LOG_LEVEL"))); err != nil {
		return nil, fmt.Errorf("invalid LOG_LEVEL: %w", err)
	}

	return cfg, nil
}
