package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Service   ServiceConfig   `mapstructure:"service"`
	Databases DatabasesConfig `mapstructure:"databases"`
	AWS       AWSConfig       `mapstructure:"aws"`
}

type ServiceConfig struct {
	Port           string        `mapstructure:"port"`
	LogLevel       string        `mapstructure:"logLevel"`
	LogToFile      bool          `mapstructure:"logToFile"`
	LogFile        string        `mapstructure:"logFile"`
	RequestTimeout time.Duration `mapstructure:"requestTimeout"`
	MaxUploadBytes int64         `mapstructure:"maxUploadBytes"`
	AllowedOrigins []string      `mapstructure:"allowedOrigins"`
}

type DatabasesConfig struct {
	SQL SQLConfig `mapstructure:"sql"`
}

type SQLDriver string

const (
	PostgresDriver SQLDriver = "postgres"
	MemoryDriver   SQLDriver = "memory"
)

type SQLConfig struct {
	Driver           SQLDriver `mapstructure:"driver"`
	Host             string    `mapstructure:"host"`
	Port             string    `mapstructure:"port"`
	Username         string    `mapstructure:"username"`
	Password         string    `mapstructure:"password"`
	PasswordSecretID string    `mapstructure:"passwordSecretId"`
	Database         string    `mapstructure:"database"`
	ConnectionString string    `mapstructure:"connection_string"`
	MaxConns         int32     `mapstructure:"maxConns"`
	MinConns         int32     `mapstructure:"minConns"`
}

// DSN returns the configured connection string, or builds one from the
// individual fields when it is empty.
func (c SQLConfig) DSN() string {
	if c.ConnectionString != "" {
		return c.ConnectionString
	}
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		c.Host,
		c.Username,
		c.Password,
		c.Database,
		c.Port)
}

type AWSConfig struct {
	Region string `mapstructure:"region"`
}

// LoadConfig reads appsettings.yaml from path and, when env is not empty,
// merges appsettings.<env>.yaml over it. A .env file in the working directory
// is loaded first so its variables can override any key, e.g.
// DATABASES_SQL_HOST for databases.sql.host.
func LoadConfig(path string, env string) (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)

	v.AddConfigPath(path)
	v.SetConfigName("appsettings")
	v.SetConfigType("yaml")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("read %s: %w", filepath.Join(path, "appsettings.yaml"), err)
	}

	if env != "" {
		v.SetConfigName("appsettings." + env)
		if err := v.MergeInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("merge %s settings: %w", env, err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("service.port", "8000")
	v.SetDefault("service.logLevel", "info")
	v.SetDefault("service.logToFile", false)
	v.SetDefault("service.logFile", "ledger.log")
	v.SetDefault("service.requestTimeout", 10*time.Second)
	v.SetDefault("service.maxUploadBytes", 10<<20)
	v.SetDefault("service.allowedOrigins", []string{"http://localhost:3000"})
	v.SetDefault("databases.sql.driver", string(PostgresDriver))
	v.SetDefault("databases.sql.maxConns", 5)
	v.SetDefault("databases.sql.minConns", 1)
}
