// Package config provides configuration management, validation, and provider logic for the orders service.
package config

import (
	"context"
	"database/sql"
	"log"
	"os"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/redis/go-redis/v9"

	"github.com/STaninnat/orders/internal/database"
)

// config.go: main APIConfig struct, loading, and environment integration.

// ListenConfig is the HTTP bind address, key listen.host/listen.port.
type ListenConfig struct {
	Host string
	Port string
}

// SentOrdersConfig drives the shipping-tracker loader, key prefix sent_orders.
type SentOrdersConfig struct {
	IntervalS                 int
	SentStateDurationDays     int
	UpsAPIURL                 string
	UpsAPIAccessLicenseNumber string
}

// DeliveredOrdersConfig drives the delivery-completion loader, key prefix delivered_orders.
type DeliveredOrdersConfig struct {
	IntervalS                 int
	DeliveryStateDurationDays int
	SagaURL                   string
}

// PaidDeliveredReportConfig drives the report loader, key prefix paid_delivered_report.
type PaidDeliveredReportConfig struct {
	IntervalS int
}

// S3Config is the object-storage target for the report loader, key prefix s3.
type S3Config struct {
	Region string
	Bucket string
	ACL    string
	Key    string
	Secret string
}

// APIConfig holds all configuration for the orders service.
type APIConfig struct {
	Listen ListenConfig

	DBDSN  string
	DBConn *sql.DB
	DB     *database.Queries

	RedisClient redis.Cmdable

	S3Client *s3.Client
	S3       S3Config

	SentOrders          SentOrdersConfig
	DeliveredOrders     DeliveredOrdersConfig
	PaidDeliveredReport PaidDeliveredReportConfig
}

// LoadConfig loads configuration from config/base(+RUN_MODE)+environment
// and initializes database/Redis/S3 connections, calling log.Fatal on error.
// Prefer LoadConfigWithError for graceful error handling.
func LoadConfig(configDir string) *APIConfig {
	cfg, err := LoadConfigWithError(context.Background(), configDir)
	if err != nil {
		log.Fatal("Failed to load configuration:", err)
	}
	return cfg
}

// LoadConfigWithError loads the layered configuration and wires real providers.
func LoadConfigWithError(ctx context.Context, configDir string) (*APIConfig, error) {
	provider, err := NewViperProvider(configDir, os.Getenv("RUN_MODE"))
	if err != nil {
		return nil, err
	}

	dsn := provider.GetString("db.dsn")

	return LoadConfigWithProviders(
		ctx,
		provider,
		NewPostgresProvider(dsn),
		NewRedisProvider(provider.GetString("redis.addr"), provider.GetString("redis.username"), provider.GetString("redis.password")),
		NewS3Provider(),
	)
}

// LoadConfigWithProviders builds APIConfig via the Builder, connecting to
// whichever providers are non-nil, then validates the result.
func LoadConfigWithProviders(
	ctx context.Context,
	provider Provider,
	dbProvider DatabaseProvider,
	redisProvider RedisProvider,
	s3Provider S3Provider,
) (*APIConfig, error) {
	builder := NewConfigBuilder().
		WithProvider(provider).
		WithDatabase(dbProvider).
		WithRedis(redisProvider).
		WithS3(s3Provider)

	cfg, err := builder.Build(ctx)
	if err != nil {
		return nil, err
	}

	validator := NewConfigValidator()
	if err := validator.ValidatePartial(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// LoadConfigForTesting returns a minimal config with mock values and no
// live connections, suitable for unit tests.
func LoadConfigForTesting(ctx context.Context) (*APIConfig, error) {
	mockProvider := NewMockConfigProvider(map[string]string{
		"listen.host": "0.0.0.0",
		"listen.port": "8080",
		"db.dsn":      "postgres://test",
		"s3.bucket":   "test-bucket",
		"s3.region":   "us-east-1",
	})

	return LoadConfigWithProviders(ctx, mockProvider, nil, nil, nil)
}
