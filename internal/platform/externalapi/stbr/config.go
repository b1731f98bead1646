// Package stbr provides a client for the STBR web application backend.
package stbr

import "time"

// Config holds configuration for the STBR backend client.
type Config struct {
	BaseURL string        // Base URL of the backend (e.g., "http://localhost:5001")
	Timeout time.Duration // HTTP request timeout applied by the transport
}
