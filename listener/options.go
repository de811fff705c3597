package listener

// Option defines a function type for configuring the HTTP listener.
type Option func(*Config)

// WithAddress sets the address for the HTTP listener.
func WithAddress(addr string) Option {
	return func(cfg *Config) {
		cfg.Address = addr
	}
}

// WithFile sets the configuration file the listener serves.
func WithFile(file string) Option {
	return func(cfg *Config) {
		cfg.File = file
	}
}
