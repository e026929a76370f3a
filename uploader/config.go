package uploader

import (
	"fmt"
	"time"
)

// Config holds the configuration for publishing rendered charts to GCS
type Config struct {
	Bucket       string `yaml:"bucket"`                  // GCS bucket name (required)
	ObjectPrefix string `yaml:"object_prefix,omitempty"` // Object prefix (e.g., "pals/nightly")

	ChunkSize           int `yaml:"chunk_size,omitempty"`             // Files above this are uploaded in parallel chunks (default: 8MB)
	MaxChunksPerCompose int `yaml:"max_chunks_per_compose,omitempty"` // Maximum sources per compose call (default: 32)

	MaxRetries int           `yaml:"max_retries,omitempty"` // Max retry attempts (default: 3)
	RetryDelay time.Duration `yaml:"retry_delay,omitempty"` // Delay between retries (default: 2s)

	Concurrency  int `yaml:"concurrency,omitempty"`    // Files uploaded at once (default: 4)
	GRPCPoolSize int `yaml:"grpc_pool_size,omitempty"` // gRPC connection pool size (default: 4)

	// Endpoint points the client at a storage emulator over plaintext gRPC
	// without authentication (e.g. "localhost:4443")
	Endpoint string `yaml:"endpoint,omitempty"`
}

// DefaultConfig returns an upload configuration with defaults
func DefaultConfig(bucket string) Config {
	return Config{
		Bucket:              bucket,
		ObjectPrefix:        "",
		ChunkSize:           8 * 1024 * 1024, // 8MB
		MaxChunksPerCompose: 32,              // GCS limit
		MaxRetries:          3,
		RetryDelay:          2 * time.Second,
		Concurrency:         4,
		GRPCPoolSize:        4,
	}
}

// Validate checks if the upload configuration is valid and applies defaults where needed
func (c *Config) Validate() error {
	if c.Bucket == "" {
		return fmt.Errorf("bucket name is required")
	}

	if c.ChunkSize <= 0 {
		c.ChunkSize = 8 * 1024 * 1024
	}

	if c.MaxChunksPerCompose <= 1 {
		c.MaxChunksPerCompose = 32
	}
	if c.MaxChunksPerCompose > 32 {
		return fmt.Errorf("MaxChunksPerCompose %d exceeds the GCS compose limit of 32", c.MaxChunksPerCompose)
	}

	if c.MaxRetries <= 0 {
		c.MaxRetries = 3
	}

	if c.RetryDelay <= 0 {
		c.RetryDelay = 2 * time.Second
	}

	if c.Concurrency <= 0 {
		c.Concurrency = 4
	}

	if c.GRPCPoolSize <= 0 {
		c.GRPCPoolSize = 4
	}

	return nil
}
