package config

import (
	"fmt"
	"strings"
)

// DefaultJWTExpirationHours is the token lifetime when none is configured
const DefaultJWTExpirationHours = 24

// JWTIssuer is the issuer claim on tokens minted by this service
const JWTIssuer = "lift"

// JWTConfig holds configuration for JWT token generation and validation.
type JWTConfig struct {
	Secret          string
	ExpirationHours int
	Issuer          string
}

// NewJWTConfig creates a JWT configuration, defaulting the expiration to 24 hours.
func NewJWTConfig(secret string, expirationHours int) (*JWTConfig, error) {
	if expirationHours == 0 {
		expirationHours = DefaultJWTExpirationHours
	}

	config := &JWTConfig{
		Secret:          strings.TrimSpace(secret),
		ExpirationHours: expirationHours,
		Issuer:          JWTIssuer,
	}

	if err := config.normalize(); err != nil {
		return nil, err
	}

	return config, nil
}

// JWT returns the JWT configuration, or nil when no secret is configured (auth disabled).
func (c *Config) JWT() (*JWTConfig, error) {
	if strings.TrimSpace(c.JWTSecret) == "" {
		return nil, nil
	}
	return NewJWTConfig(c.JWTSecret, c.JWTExpirationHours)
}

// normalize validates the configuration.
func (c *JWTConfig) normalize() error {
	if c.Secret == "" {
		return fmt.Errorf("JWT secret cannot be empty")
	}
	if len(c.Secret) < 16 {
		return fmt.Errorf("JWT secret must be at least 16 characters")
	}
	if c.ExpirationHours < 1 {
		return fmt.Errorf("JWT expiration must be at least 1 hour, got: %d", c.ExpirationHours)
	}
	return nil
}
