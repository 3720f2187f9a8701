// Package config provides configuration management, validation, and provider logic for the orders service.
package config

import (
	"context"
	"database/sql"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/redis/go-redis/v9"

	"github.com/STaninnat/orders/internal/database"
)

// interfaces.go: Interfaces for configuration, providers, and validation.

// Provider supplies configuration values layered from a base file, an
// environment-named override file, and environment variables.
type Provider interface {
	GetString(key string) string
	GetStringOrDefault(key, defaultValue string) string
	GetRequiredString(key string) (string, error)
	GetInt(key string) int
	GetIntOrDefault(key string, defaultValue int) int
	GetBool(key string) bool
	GetBoolOrDefault(key string, defaultValue bool) bool
}

// DatabaseProvider defines the interface for database connections.
type DatabaseProvider interface {
	Connect(ctx context.Context) (*sql.DB, *database.Queries, error)
	Close() error
}

// RedisProvider defines the interface for Redis connections.
type RedisProvider interface {
	Connect(ctx context.Context) (redis.Cmdable, error)
	Close() error
}

// S3Provider defines the interface for object-storage client creation.
type S3Provider interface {
	CreateClient(ctx context.Context, region string) (*s3.Client, error)
}

// Validator validates configuration values and settings.
type Validator interface {
	Validate(config *APIConfig) error
	ValidatePartial(config *APIConfig) error
}

// Builder builds the application configuration using various providers.
type Builder interface {
	WithProvider(provider Provider) Builder
	WithDatabase(provider DatabaseProvider) Builder
	WithRedis(provider RedisProvider) Builder
	WithS3(provider S3Provider) Builder
	Build(ctx context.Context) (*APIConfig, error)
}
