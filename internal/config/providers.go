// Package config provides configuration management, validation, and provider logic for the orders service.
package config

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/viper"

	"github.com/STaninnat/orders/internal/database"
)

// providers.go: layered-file/environment, database, Redis and S3 provider implementations.

const strTrue = "true"

// envPrefix is the environment variable prefix recognized on top of any
// file-based configuration, e.g. STQ_ORDERS_DB_DSN overrides db.dsn.
const envPrefix = "STQ_ORDERS"

// ViperProvider implements Provider on top of spf13/viper, merging a base
// config file, an optional RUN_MODE-named override file, and environment
// variables prefixed by envPrefix — the Go-native equivalent of the
// original Rust service's config crate layering.
type ViperProvider struct {
	v *viper.Viper
}

// NewViperProvider loads "config/base.{yaml,yml,json,toml}" plus an optional
// "config/{runMode}" override from configDir, then layers environment
// variables on top. runMode is typically read from RUN_MODE/APP_MODE and
// may be empty, in which case only the base file and env vars apply.
func NewViperProvider(configDir, runMode string) (*ViperProvider, error) {
	v := viper.New()
	v.AddConfigPath(configDir)
	v.SetConfigName("base")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read base config: %w", err)
		}
	}

	if runMode != "" {
		override := viper.New()
		override.AddConfigPath(configDir)
		override.SetConfigName(runMode)
		if err := override.ReadInConfig(); err == nil {
			if err := v.MergeConfigMap(override.AllSettings()); err != nil {
				return nil, fmt.Errorf("failed to merge %s config: %w", runMode, err)
			}
		} else if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read %s config: %w", runMode, err)
		}
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	return &ViperProvider{v: v}, nil
}

// GetString retrieves a layered string value, or "" if unset anywhere.
func (p *ViperProvider) GetString(key string) string {
	return p.v.GetString(key)
}

// GetStringOrDefault retrieves a layered string value, falling back to defaultValue.
func (p *ViperProvider) GetStringOrDefault(key, defaultValue string) string {
	if value := p.v.GetString(key); value != "" {
		return value
	}
	return defaultValue
}

// GetRequiredString retrieves a layered string value or an error if unset.
func (p *ViperProvider) GetRequiredString(key string) (string, error) {
	value := p.v.GetString(key)
	if value == "" {
		return "", fmt.Errorf("required configuration key %s is not set", key)
	}
	return value, nil
}

// GetInt retrieves a layered integer value, or 0 if unset or unparsable.
func (p *ViperProvider) GetInt(key string) int {
	return p.v.GetInt(key)
}

// GetIntOrDefault retrieves a layered integer value, falling back to defaultValue.
func (p *ViperProvider) GetIntOrDefault(key string, defaultValue int) int {
	if !p.v.IsSet(key) {
		return defaultValue
	}
	return p.v.GetInt(key)
}

// GetBool retrieves a layered boolean value, accepting "true"/"1"/"yes".
func (p *ViperProvider) GetBool(key string) bool {
	value := strings.ToLower(p.v.GetString(key))
	return value == strTrue || value == "1" || value == "yes"
}

// GetBoolOrDefault retrieves a layered boolean value, falling back to defaultValue.
func (p *ViperProvider) GetBoolOrDefault(key string, defaultValue bool) bool {
	if !p.v.IsSet(key) {
		return defaultValue
	}
	return p.GetBool(key)
}

// MockConfigProvider is a map-backed Provider for tests that don't want to
// touch the filesystem or environment.
type MockConfigProvider struct {
	values map[string]string
}

// NewMockConfigProvider builds a MockConfigProvider from a plain map.
func NewMockConfigProvider(values map[string]string) *MockConfigProvider {
	return &MockConfigProvider{values: values}
}

func (m *MockConfigProvider) GetString(key string) string { return m.values[key] }

func (m *MockConfigProvider) GetStringOrDefault(key, defaultValue string) string {
	if value, exists := m.values[key]; exists && value != "" {
		return value
	}
	return defaultValue
}

func (m *MockConfigProvider) GetRequiredString(key string) (string, error) {
	if value, exists := m.values[key]; exists && value != "" {
		return value, nil
	}
	return "", fmt.Errorf("required configuration key %s is not set", key)
}

func (m *MockConfigProvider) GetInt(key string) int {
	value := m.values[key]
	if intValue, err := strconv.Atoi(value); err == nil {
		return intValue
	}
	return 0
}

func (m *MockConfigProvider) GetIntOrDefault(key string, defaultValue int) int {
	value, exists := m.values[key]
	if !exists {
		return defaultValue
	}
	if intValue, err := strconv.Atoi(value); err == nil {
		return intValue
	}
	return defaultValue
}

func (m *MockConfigProvider) GetBool(key string) bool {
	value := strings.ToLower(m.values[key])
	return value == strTrue || value == "1" || value == "yes"
}

func (m *MockConfigProvider) GetBoolOrDefault(key string, defaultValue bool) bool {
	if _, exists := m.values[key]; !exists {
		return defaultValue
	}
	return m.GetBool(key)
}

// PostgresProvider implements DatabaseProvider for PostgreSQL.
type PostgresProvider struct {
	dbURL   string
	db      *sql.DB
	sqlOpen func(driverName, dataSourceName string) (*sql.DB, error)
}

// NewPostgresProvider creates a new PostgresProvider for the given DSN.
func NewPostgresProvider(dbURL string) *PostgresProvider {
	return &PostgresProvider{dbURL: dbURL, sqlOpen: sql.Open}
}

// Connect opens and pings the database, returning both the raw *sql.DB
// (needed for transactions) and the generated Queries wrapper.
func (p *PostgresProvider) Connect(ctx context.Context) (*sql.DB, *database.Queries, error) {
	sqlOpen := p.sqlOpen
	if sqlOpen == nil {
		sqlOpen = sql.Open
	}
	db, err := sqlOpen("postgres", p.dbURL)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open database connection: %w", err)
	}

	if err := db.PingContext(ctx); err != nil {
		return nil, nil, fmt.Errorf("failed to ping database: %w", err)
	}

	p.db = db
	return db, database.New(db), nil
}

// Close closes the underlying connection pool.
func (p *PostgresProvider) Close() error {
	if p.db != nil {
		return p.db.Close()
	}
	return nil
}

// RedisProviderImpl implements RedisProvider, backing the rate limiter.
type RedisProviderImpl struct {
	addr      string
	username  string
	password  string
	client    *redis.Client
	newClient func(opt *redis.Options) *redis.Client
}

// NewRedisProvider creates a new RedisProviderImpl.
func NewRedisProvider(addr, username, password string) *RedisProviderImpl {
	return &RedisProviderImpl{addr: addr, username: username, password: password, newClient: redis.NewClient}
}

// Connect opens and pings the Redis connection.
func (r *RedisProviderImpl) Connect(ctx context.Context) (redis.Cmdable, error) {
	newClient := r.newClient
	if newClient == nil {
		newClient = redis.NewClient
	}
	client := newClient(&redis.Options{
		Addr:     r.addr,
		Username: r.username,
		Password: r.password,
		DB:       0,
	})

	if _, err := client.Ping(ctx).Result(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	r.client = client
	return client, nil
}

// Close closes the Redis client.
func (r *RedisProviderImpl) Close() error {
	if r.client != nil {
		return r.client.Close()
	}
	return nil
}

// S3ProviderImpl implements S3Provider, backing the report loader's upload target.
type S3ProviderImpl struct {
	loadConfig func(ctx context.Context, optFns ...func(*awsconfig.LoadOptions) error) (aws.Config, error)
}

// NewS3Provider creates a new S3ProviderImpl.
func NewS3Provider() *S3ProviderImpl {
	return &S3ProviderImpl{loadConfig: awsconfig.LoadDefaultConfig}
}

// CreateClient builds an S3 client scoped to region.
func (s *S3ProviderImpl) CreateClient(ctx context.Context, region string) (*s3.Client, error) {
	loadConfig := s.loadConfig
	if loadConfig == nil {
		loadConfig = awsconfig.LoadDefaultConfig
	}
	awsCfg, err := loadConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}
	return s3.NewFromConfig(awsCfg), nil
}
