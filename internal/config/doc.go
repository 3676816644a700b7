// Package config handles configuration loading, parsing, and validation
// from environment variables and an optional YAML file. It provides
// type-safe access to the settings needed by the server, the CORS layer
// and the browser client.
package config
