// Package listener serves a configuration file over HTTP, converted on
// request into the format named by the requested file extension.
package listener

import "errors"

// DefaultAddress is the default address for the HTTP listener.
const DefaultAddress = ":8080"

// ErrEmptyAddress is returned when the address is empty.
var ErrEmptyAddress = errors.New("address must not be empty")

// ErrEmptyFile is returned when no configuration file is configured.
var ErrEmptyFile = errors.New("file must not be empty")

// ErrListenFailed is returned when the server fails to listen on the configured address.
var ErrListenFailed = errors.New("failed to listen")

// ErrShutdownFailed is returned when the server fails to shut down gracefully.
var ErrShutdownFailed = errors.New("shutdown failed")

// ErrNilHandler is returned when a nil http.Handler is provided.
var ErrNilHandler = errors.New("handler must not be nil")

// Config holds the configuration for the HTTP listener.
type Config struct {
	// Address is the TCP address to listen on.
	Address string
	// File is the configuration file served to clients.
	File string
}

// SetDefaults sets default values for the Config.
func (c *Config) SetDefaults() {
	if c.Address == "" {
		c.Address = DefaultAddress
	}
}

// Validate validates the Config.
func (c *Config) Validate() error {
	if c.Address == "" {
		return ErrEmptyAddress
	}

	if c.File == "" {
		return ErrEmptyFile
	}

	return nil
}
