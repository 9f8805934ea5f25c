// Package config provides configuration management for the capstone web server.
package config

import (
	"fmt"
	"net"
	"strconv"
	"time"
)

var AppVersion = "-unset-" // will be set at build time

const (
	// Default listener settings
	DefaultListenAddr      = "0.0.0.0"
	DefaultListenPort      = 80
	DefaultShutdownTimeout = 10 * time.Second
)

// WebConfig holds web server configuration
type WebConfig struct {
	ListenAddr      string        `json:"listen_addr"`
	ListenPort      int           `json:"listen_port"`
	Debug           bool          `json:"debug"`                   // gin debug mode: route dump and verbose logging
	AllowedHosts    []string      `json:"allowed_hosts,omitempty"` // empty accepts any Host header
	ShutdownTimeout time.Duration `json:"shutdown_timeout"`
}

// NewDefaultConfig returns a configuration listening on all interfaces, port 80
func NewDefaultConfig() *WebConfig {
	return &WebConfig{
		ListenAddr:      DefaultListenAddr,
		ListenPort:      DefaultListenPort,
		ShutdownTimeout: DefaultShutdownTimeout,
	}
}

// Address returns the host:port the server binds to
func (c *WebConfig) Address() string {
	return net.JoinHostPort(c.ListenAddr, strconv.Itoa(c.ListenPort))
}

// Validate checks the values a user can set from the command line
func (c *WebConfig) Validate() error {
	if c.ListenPort < 1 || c.ListenPort > 65535 {
		return fmt.Errorf("invalid port number: %d (must be between 1 and 65535)", c.ListenPort)
	}
	if c.ListenAddr != "" && net.ParseIP(c.ListenAddr) == nil {
		return fmt.Errorf("invalid listen address: %q", c.ListenAddr)
	}
	if c.ShutdownTimeout <= 0 {
		return fmt.Errorf("invalid shutdown timeout: %v", c.ShutdownTimeout)
	}
	return nil
}
