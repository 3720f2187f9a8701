// Package config provides configuration management, validation, and provider logic for the orders service.
package config

import (
	"fmt"
	"strings"
)

// validator.go: configuration validation logic.

// ValidatorImpl implements Validator.
type ValidatorImpl struct{}

// NewConfigValidator returns a new ValidatorImpl.
func NewConfigValidator() *ValidatorImpl {
	return &ValidatorImpl{}
}

// Validate performs full validation, requiring live database/S3 clients.
func (v *ValidatorImpl) Validate(cfg *APIConfig) error {
	errs := v.commonErrors(cfg)

	if cfg.DBConn == nil {
		errs = append(errs, "database connection is required")
	}
	if cfg.S3.Bucket != "" && cfg.S3Client == nil {
		errs = append(errs, "S3 client is required when s3.bucket is configured")
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}

// ValidatePartial validates only configuration that must be present
// regardless of which providers were wired, suitable for tests.
func (v *ValidatorImpl) ValidatePartial(cfg *APIConfig) error {
	errs := v.commonErrors(cfg)
	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}

func (v *ValidatorImpl) commonErrors(cfg *APIConfig) []string {
	if cfg == nil {
		return []string{"config cannot be nil"}
	}

	var errs []string
	if cfg.Listen.Port == "" {
		errs = append(errs, "listen.port is required")
	}
	return errs
}
