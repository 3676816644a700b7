package config

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server ServerConfig `mapstructure:"server" validate:"required"`
	CORS   CORSConfig   `mapstructure:"cors" validate:"required"`
	Client ClientConfig `mapstructure:"client" validate:"required"`
	Events EventsConfig `mapstructure:"events" validate:"required"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port" validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
}

// CORSConfig controls which browser origins may call the API.
type CORSConfig struct {
	// AllowedOrigin is "*", a single origin, or a comma-separated list.
	AllowedOrigin string `mapstructure:"allowed_origin" validate:"required"`
}

// ClientConfig holds values injected into the browser client at page load.
type ClientConfig struct {
	BackendURL string `mapstructure:"backend_url" validate:"required,url"`
}

// EventsConfig sizes the background delivery of todo change events.
type EventsConfig struct {
	Workers   int `mapstructure:"workers" validate:"required,gt=0"`
	QueueSize int `mapstructure:"queue_size" validate:"required,gt=0"`
}
