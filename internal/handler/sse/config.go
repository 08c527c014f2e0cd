package sse

import "time"

// Config holds configuration for export event streams
type Config struct {
	// KeepAliveInterval is how often a comment line goes out so proxies
	// keep an idle stream open
	KeepAliveInterval time.Duration

	// Retry is sent once as the client's reconnection delay. Zero omits it.
	Retry time.Duration
}

// DefaultConfig returns the default SSE configuration
func DefaultConfig() *Config {
	return &Config{
		KeepAliveInterval: 10 * time.Second,
		Retry:             3 * time.Second,
	}
}
