package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// Default values applied before any file or environment source.
const (
	DefaultPort          = 8080
	DefaultLogLevel      = "info"
	DefaultAllowedOrigin = "*"
	DefaultBackendURL    = "http://localhost:8080"
	DefaultEventWorkers  = 2
	DefaultEventQueue    = 100
)

// envBindings maps config keys to the environment variables that may set them.
// The unprefixed names come first so deployments can keep using PORT and friends.
var envBindings = []struct {
	key     string
	envVars []string
}{
	{"server.port", []string{"PORT", "TODO_SERVER_PORT"}},
	{"server.log_level", []string{"LOG_LEVEL", "TODO_SERVER_LOG_LEVEL"}},
	{"cors.allowed_origin", []string{"ALLOWED_ORIGIN", "TODO_CORS_ALLOWED_ORIGIN"}},
	{"client.backend_url", []string{"BACKEND_URL", "TODO_CLIENT_BACKEND_URL"}},
	{"events.workers", []string{"TODO_EVENTS_WORKERS"}},
	{"events.queue_size", []string{"TODO_EVENTS_QUEUE_SIZE"}},
}

// Load reads configuration from environment variables and, if present, a
// config.yaml in the working directory. Environment variables take precedence
// over values from the file.
func Load() (*Config, error) {
	return LoadFile("")
}

// LoadFile behaves like Load but reads the given config file instead of
// searching the working directory. A missing file at an explicit path is an error.
func LoadFile(path string) (*Config, error) {
	cfg, err := ReadFile(path)
	if err != nil {
		return nil, err
	}

	if err := Validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// ReadFile layers defaults, the config file and the environment like
// LoadFile but leaves validation to the caller, so that later sources such
// as command-line flags can still replace invalid values.
func ReadFile(path string) (*Config, error) {
	v := viper.New()

	v.SetDefault("server.port", DefaultPort)
	v.SetDefault("server.log_level", DefaultLogLevel)
	v.SetDefault("cors.allowed_origin", DefaultAllowedOrigin)
	v.SetDefault("client.backend_url", DefaultBackendURL)
	v.SetDefault("events.workers", DefaultEventWorkers)
	v.SetDefault("events.queue_size", DefaultEventQueue)

	v.SetConfigType("yaml")
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("error reading config file %s: %w", path, err)
		}
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("error reading config file: %w", err)
			}
		}
	}

	v.SetEnvPrefix("TODO")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	for _, b := range envBindings {
		args := append([]string{b.key}, b.envVars...)
		if err := v.BindEnv(args...); err != nil {
			return nil, fmt.Errorf("error binding environment variables for %s: %w", b.key, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshalling config: %w", err)
	}

	return &cfg, nil
}

// Validate checks the struct tags on cfg.
func Validate(cfg *Config) error {
	if err := validator.New().Struct(cfg); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}
	return nil
}
