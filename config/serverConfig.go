// Package config holds the compiled-in settings of the static server.
// There are no config files, environment variables or flags.
package config

import (
	"fmt"
	"net"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/pelageech/staticserv/cachecontrol"
)

const (
	// Port is the TCP port the server listens on.
	Port = 3000

	// Host is empty so that the server binds all local interfaces.
	Host = ""

	announceHost = "localhost"
)

// ServerConfig is a struct for the static server config.
type ServerConfig struct {
	Host         string `validate:"omitempty,hostname|ip"`
	Port         int    `validate:"min=0,max=65535"`
	Root         string `validate:"required,dir"`
	CacheControl string `validate:"required"`
}

// NewServerConfig creates the config served from root with the compiled-in
// port and caching disabled.
func NewServerConfig(root string) *ServerConfig {
	return &ServerConfig{
		Host:         Host,
		Port:         Port,
		Root:         root,
		CacheControl: cachecontrol.Disabled.String(),
	}
}

// Validate checks the config with the given validator.
func (c *ServerConfig) Validate(v *validator.Validate) error {
	if err := v.Struct(c); err != nil {
		return fmt.Errorf("invalid server config: %w", err)
	}
	return nil
}

// Addr is the address passed to net.Listen.
func (c *ServerConfig) Addr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

// URL is the address announced on startup.
func (c *ServerConfig) URL() string {
	host := c.Host
	if host == "" {
		host = announceHost
	}
	return "http://" + net.JoinHostPort(host, strconv.Itoa(c.Port))
}
