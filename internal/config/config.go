package config

import (
	"os"

	"github.com/spf13/viper"
)

type Config struct {
	Env      string         `yaml:"env"`      // Env is the current environment: local, development, production.
	Postgres PostgresConfig `yaml:"postgres"` // Postgres holds the database configuration.
	Server   ServerConfig   `yaml:"server"`   // Server holds the HTTP listener configuration.
}

// PostgresConfig struct holds the configuration details for connecting to a PostgreSQL database.
type PostgresConfig struct {
	Host     string `yaml:"host"`     // Host is the database server address.
	Port     string `yaml:"port"`     // Port is the database server port.
	User     string `yaml:"user"`     // User is the database user.
	Password string `yaml:"password"` // Password is the database user's password.
	Dbname   string `yaml:"db_name"`  // Dbname is the name of the database.
}

// ServerConfig struct holds the configuration details for the HTTP API listener.
type ServerConfig struct {
	Host string `yaml:"host"` // Host is the interface to bind, e.g. 0.0.0.0.
	Port string `yaml:"port"` // Port is the HTTP listener port.
}

// MustLoad loads the configuration from a YAML file and returns a Config struct.
func MustLoad() *Config {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		panic("config path is empty")
	}

	// check if file exists
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		panic("config file does not exist: " + configPath)
	}

	viper.SetConfigFile(configPath)
	if err := viper.ReadInConfig(); err != nil {
		panic("config error: " + err.Error())
	}

	viper.SetDefault("postgres.port", "5432")
	viper.SetDefault("server.host", "0.0.0.0")
	viper.SetDefault("server.port", "8080")

	return &Config{
		Env: viper.GetString("env"),
		Postgres: PostgresConfig{
			Host:     viper.GetString("postgres.host"),
			Port:     viper.GetString("postgres.port"),
			User:     viper.GetString("postgres.user"),
			Password: viper.GetString("postgres.password"),
			Dbname:   viper.GetString("postgres.db_name"),
		},
		Server: ServerConfig{
			Host: viper.GetString("server.host"),
			Port: viper.GetString("server.port"),
		},
	}
}
