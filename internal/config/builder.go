// Package config provides configuration management, validation, and provider logic for the orders service.
package config

import (
	"context"
	"fmt"
)

// builder.go: configuration builder pattern and construction logic.

// BuilderImpl implements Builder, assembling an APIConfig from whichever
// providers are supplied.
type BuilderImpl struct {
	provider Provider
	database DatabaseProvider
	redis    RedisProvider
	s3       S3Provider
}

// NewConfigBuilder returns a new, empty BuilderImpl.
func NewConfigBuilder() *BuilderImpl {
	return &BuilderImpl{}
}

func (b *BuilderImpl) WithProvider(provider Provider) Builder {
	b.provider = provider
	return b
}

func (b *BuilderImpl) WithDatabase(provider DatabaseProvider) Builder {
	b.database = provider
	return b
}

func (b *BuilderImpl) WithRedis(provider RedisProvider) Builder {
	b.redis = provider
	return b
}

func (b *BuilderImpl) WithS3(provider S3Provider) Builder {
	b.s3 = provider
	return b
}

func (b *BuilderImpl) loadListenConfig() ListenConfig {
	return ListenConfig{
		Host: b.provider.GetStringOrDefault("listen.host", "0.0.0.0"),
		Port: b.provider.GetStringOrDefault("listen.port", "8080"),
	}
}

func (b *BuilderImpl) loadSentOrdersConfig() SentOrdersConfig {
	return SentOrdersConfig{
		IntervalS:                 b.provider.GetIntOrDefault("sent_orders.interval_s", 3600),
		SentStateDurationDays:     b.provider.GetIntOrDefault("sent_orders.sent_state_duration_days", 0),
		UpsAPIURL:                 b.provider.GetString("sent_orders.ups_api_url"),
		UpsAPIAccessLicenseNumber: b.provider.GetString("sent_orders.ups_api_access_license_number"),
	}
}

func (b *BuilderImpl) loadDeliveredOrdersConfig() DeliveredOrdersConfig {
	return DeliveredOrdersConfig{
		IntervalS:                 b.provider.GetIntOrDefault("delivered_orders.interval_s", 86400),
		DeliveryStateDurationDays: b.provider.GetIntOrDefault("delivered_orders.delivery_state_duration_days", 1),
		SagaURL:                   b.provider.GetString("delivered_orders.saga_url"),
	}
}

func (b *BuilderImpl) loadPaidDeliveredReportConfig() PaidDeliveredReportConfig {
	return PaidDeliveredReportConfig{
		IntervalS: b.provider.GetIntOrDefault("paid_delivered_report.interval_s", 3600),
	}
}

func (b *BuilderImpl) loadS3Config() S3Config {
	return S3Config{
		Region: b.provider.GetString("s3.region"),
		Bucket: b.provider.GetString("s3.bucket"),
		ACL:    b.provider.GetStringOrDefault("s3.acl", "private"),
		Key:    b.provider.GetString("s3.key"),
		Secret: b.provider.GetString("s3.secret"),
	}
}

func (b *BuilderImpl) connectDatabase(ctx context.Context, cfg *APIConfig) error {
	dsn, err := b.provider.GetRequiredString("db.dsn")
	if err != nil {
		return err
	}
	cfg.DBDSN = dsn

	db, queries, err := b.database.Connect(ctx)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	cfg.DBConn = db
	cfg.DB = queries
	return nil
}

func (b *BuilderImpl) connectRedis(ctx context.Context, cfg *APIConfig) error {
	client, err := b.redis.Connect(ctx)
	if err != nil {
		return fmt.Errorf("failed to connect to Redis: %w", err)
	}
	cfg.RedisClient = client
	return nil
}

func (b *BuilderImpl) createS3Client(ctx context.Context, cfg *APIConfig) error {
	client, err := b.s3.CreateClient(ctx, cfg.S3.Region)
	if err != nil {
		return fmt.Errorf("failed to create S3 client: %w", err)
	}
	cfg.S3Client = client
	return nil
}

// Build constructs APIConfig from the provider, connecting to the
// database, Redis, and S3 when their respective providers are supplied.
func (b *BuilderImpl) Build(ctx context.Context) (*APIConfig, error) {
	if b.provider == nil {
		return nil, fmt.Errorf("config provider is required")
	}

	cfg := &APIConfig{
		Listen:              b.loadListenConfig(),
		SentOrders:          b.loadSentOrdersConfig(),
		DeliveredOrders:     b.loadDeliveredOrdersConfig(),
		PaidDeliveredReport: b.loadPaidDeliveredReportConfig(),
		S3:                  b.loadS3Config(),
	}

	if b.database != nil {
		if err := b.connectDatabase(ctx, cfg); err != nil {
			return nil, err
		}
	}
	if b.redis != nil {
		if err := b.connectRedis(ctx, cfg); err != nil {
			return nil, err
		}
	}
	if b.s3 != nil {
		if err := b.createS3Client(ctx, cfg); err != nil {
			return nil, err
		}
	}

	return cfg, nil
}
