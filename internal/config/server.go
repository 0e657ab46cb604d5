package config

import (
	"fmt"
	"net"
	"strings"
	"time"
)

// ServerConfig controls the HTTP listener serving the dashboard API.
type ServerConfig struct {
	// Host to bind; empty binds every interface.
	Host string
	// Port with or without the leading colon.
	Port string
	// ReadTimeout bounds reading one request.
	ReadTimeout time.Duration
	// WriteTimeout bounds writing one response. The metrics endpoints
	// aggregate several upstream calls, so this runs longer than the
	// read side.
	WriteTimeout time.Duration
	// IdleTimeout bounds keep-alive waits between requests.
	IdleTimeout time.Duration
}

// LoadServerConfigFromEnv reads the SERVER_* variables.
func LoadServerConfigFromEnv() ServerConfig {
	return ServerConfig{
		Host:         GetEnv("SERVER_HOST", ""),
		Port:         GetEnv("SERVER_PORT", "8080"),
		ReadTimeout:  GetEnvDuration("SERVER_READ_TIMEOUT", 10*time.Second),
		WriteTimeout: GetEnvDuration("SERVER_WRITE_TIMEOUT", 30*time.Second),
		IdleTimeout:  GetEnvDuration("SERVER_IDLE_TIMEOUT", 120*time.Second),
	}
}

// GetAddress renders the host:port pair handed to the HTTP server.
func (c ServerConfig) GetAddress() string {
	port := strings.TrimPrefix(c.Port, ":")
	if c.Host == "" {
		return ":" + port
	}
	return net.JoinHostPort(c.Host, port)
}

// Validate rejects non-positive timeouts.
func (c ServerConfig) Validate() error {
	if c.ReadTimeout <= 0 {
		return fmt.Errorf("server read timeout must be positive, got %s", c.ReadTimeout)
	}
	if c.WriteTimeout <= 0 {
		return fmt.Errorf("server write timeout must be positive, got %s", c.WriteTimeout)
	}
	if c.IdleTimeout <= 0 {
		return fmt.Errorf("server idle timeout must be positive, got %s", c.IdleTimeout)
	}
	return nil
}
