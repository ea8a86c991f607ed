// Package config provides configuration loading and validation for the Lift service and CLI.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/jonathan/lift/internal/llm"
	"github.com/jonathan/lift/internal/observability"
)

// Defaults
const (
	DefaultPort               = 8080
	DefaultCompletionTimeout  = 6 * time.Second
	DefaultNotesTimeout       = 25 * time.Second
	DefaultPreferenceCacheTTL = 60 * time.Second
	DefaultMaxUploadBytes     = 10 << 20
	DefaultLogLevel           = "info"
	DefaultLogFormat          = "json"
)

// Config represents the service configuration that can be loaded from a JSON or YAML file
// and overridden from the environment. All fields are optional.
type Config struct {
	// Server
	Port        int      `json:"port,omitempty" yaml:"port,omitempty"`
	CORSOrigins []string `json:"cors_origins,omitempty" yaml:"cors_origins,omitempty"` // Allowed origins; empty allows all

	// Completion provider
	AIProvider        string   `json:"ai_provider,omitempty" yaml:"ai_provider,omitempty"` // openai (default) or gemini
	Model             string   `json:"model,omitempty" yaml:"model,omitempty"`             // Overrides the provider's default model
	OpenAIAPIKey      string   `json:"openai_api_key,omitempty" yaml:"openai_api_key,omitempty"`
	OpenAIURL         string   `json:"openai_url,omitempty" yaml:"openai_url,omitempty"`
	GeminiAPIKey      string   `json:"gemini_api_key,omitempty" yaml:"gemini_api_key,omitempty"`
	CompletionTimeout Duration `json:"completion_timeout,omitempty" yaml:"completion_timeout,omitempty"` // Per provider call
	NotesTimeout      Duration `json:"notes_timeout,omitempty" yaml:"notes_timeout,omitempty"`           // Whole notes request

	// Preferences storage (at most one)
	DatabaseURL        string   `json:"database_url,omitempty" yaml:"database_url,omitempty"` // PostgreSQL connection URL
	SQLitePath         string   `json:"sqlite_path,omitempty" yaml:"sqlite_path,omitempty"`   // SQLite file for local use
	PreferenceCacheTTL Duration `json:"preference_cache_ttl,omitempty" yaml:"preference_cache_ttl,omitempty"`

	// Auth
	JWTSecret          string `json:"jwt_secret,omitempty" yaml:"jwt_secret,omitempty"` // Empty disables auth
	JWTExpirationHours int    `json:"jwt_expiration_hours,omitempty" yaml:"jwt_expiration_hours,omitempty"`

	// Uploads
	MaxUploadBytes int64 `json:"max_upload_bytes,omitempty" yaml:"max_upload_bytes,omitempty"`

	// Logging
	LogLevel  string `json:"log_level,omitempty" yaml:"log_level,omitempty"`
	LogFormat string `json:"log_format,omitempty" yaml:"log_format,omitempty"` // json or text
	LogFile   string `json:"log_file,omitempty" yaml:"log_file,omitempty"`     // Rotated log file; empty logs to stderr
}

// Duration is a time.Duration that reads a Go duration string ("6s") or a number of seconds
type Duration struct {
	time.Duration
}

// UnmarshalJSON implements json.Unmarshaler
func (d *Duration) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		parsed, err := time.ParseDuration(s)
		if err != nil {
			return fmt.Errorf("invalid duration %q: %w", s, err)
		}
		d.Duration = parsed
		return nil
	}

	var seconds float64
	if err := json.Unmarshal(data, &seconds); err != nil {
		return fmt.Errorf("duration must be a string or number of seconds")
	}
	d.Duration = time.Duration(seconds * float64(time.Second))
	return nil
}

// MarshalJSON implements json.Marshaler
func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

// UnmarshalYAML implements yaml.Unmarshaler
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	if tag := value.ShortTag(); tag == "!!int" || tag == "!!float" {
		var seconds float64
		if err := value.Decode(&seconds); err != nil {
			return fmt.Errorf("invalid duration %q: %w", value.Value, err)
		}
		d.Duration = time.Duration(seconds * float64(time.Second))
		return nil
	}

	parsed, err := time.ParseDuration(value.Value)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", value.Value, err)
	}
	d.Duration = parsed
	return nil
}

// Defaults returns the built-in configuration
func Defaults() Config {
	return Config{
		Port:               DefaultPort,
		AIProvider:         string(llm.ProviderOpenAI),
		CompletionTimeout:  Duration{DefaultCompletionTimeout},
		NotesTimeout:       Duration{DefaultNotesTimeout},
		PreferenceCacheTTL: Duration{DefaultPreferenceCacheTTL},
		JWTExpirationHours: DefaultJWTExpirationHours,
		MaxUploadBytes:     DefaultMaxUploadBytes,
		LogLevel:           DefaultLogLevel,
		LogFormat:          DefaultLogFormat,
	}
}

// LoadConfig loads configuration from a JSON file, or YAML for .yaml/.yml paths.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	// Resolve path relative to current directory if not absolute
	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config YAML: %w", err)
		}
	default:
		if err := json.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config JSON: %w", err)
		}
	}

	return &cfg, nil
}

// Load reads the optional config file, applies environment overrides, fills
// defaults and validates the result.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if path != "" {
		loaded, err := LoadConfig(path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}

	merged := cfg.MergeWithDefaults(Defaults())
	if err := merged.Validate(); err != nil {
		return nil, err
	}
	return &merged, nil
}

// ApplyEnv overrides fields from environment variables that are set.
func (c *Config) ApplyEnv() error {
	setString := func(key string, dst *string) {
		if v, ok := os.LookupEnv(key); ok && strings.TrimSpace(v) != "" {
			*dst = strings.TrimSpace(v)
		}
	}

	setString("LIFT_AI_PROVIDER", &c.AIProvider)
	setString("LIFT_MODEL", &c.Model)
	setString("OPENAI_API_KEY", &c.OpenAIAPIKey)
	setString("OPENAI_BASE_URL", &c.OpenAIURL)
	setString("GEMINI_API_KEY", &c.GeminiAPIKey)
	setString("DATABASE_URL", &c.DatabaseURL)
	setString("LIFT_SQLITE_PATH", &c.SQLitePath)
	setString("JWT_SECRET", &c.JWTSecret)
	setString("LIFT_LOG_LEVEL", &c.LogLevel)
	setString("LIFT_LOG_FORMAT", &c.LogFormat)
	setString("LIFT_LOG_FILE", &c.LogFile)

	if v := strings.TrimSpace(os.Getenv("LIFT_CORS_ORIGINS")); v != "" {
		c.CORSOrigins = nil
		for _, origin := range strings.Split(v, ",") {
			if origin = strings.TrimSpace(origin); origin != "" {
				c.CORSOrigins = append(c.CORSOrigins, origin)
			}
		}
	}

	ints := []struct {
		key string
		dst *int
	}{
		{"LIFT_PORT", &c.Port},
		{"JWT_EXPIRATION_HOURS", &c.JWTExpirationHours},
	}
	for _, entry := range ints {
		if v := strings.TrimSpace(os.Getenv(entry.key)); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil {
				return fmt.Errorf("invalid %s: %w", entry.key, err)
			}
			*entry.dst = n
		}
	}

	durations := []struct {
		key string
		dst *Duration
	}{
		{"LIFT_COMPLETION_TIMEOUT", &c.CompletionTimeout},
		{"LIFT_NOTES_TIMEOUT", &c.NotesTimeout},
		{"LIFT_PREFERENCE_CACHE_TTL", &c.PreferenceCacheTTL},
	}
	for _, entry := range durations {
		if v := strings.TrimSpace(os.Getenv(entry.key)); v != "" {
			d, err := time.ParseDuration(v)
			if err != nil {
				return fmt.Errorf("invalid %s: %w", entry.key, err)
			}
			entry.dst.Duration = d
		}
	}

	return nil
}

// Validate checks that the configuration has valid values.
func (c *Config) Validate() error {
	switch strings.ToLower(c.AIProvider) {
	case "", string(llm.ProviderOpenAI), string(llm.ProviderGemini):
	default:
		return fmt.Errorf("config error: 'ai_provider' must be openai or gemini, got %q", c.AIProvider)
	}

	if c.DatabaseURL != "" && c.SQLitePath != "" {
		return fmt.Errorf("config error: 'database_url' and 'sqlite_path' are mutually exclusive")
	}

	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("config error: 'port' must be between 0 and 65535")
	}
	if c.CompletionTimeout.Duration < 0 || c.NotesTimeout.Duration < 0 || c.PreferenceCacheTTL.Duration < 0 {
		return fmt.Errorf("config error: durations must be non-negative")
	}
	if c.JWTExpirationHours < 0 {
		return fmt.Errorf("config error: 'jwt_expiration_hours' must be non-negative")
	}
	if c.MaxUploadBytes < 0 {
		return fmt.Errorf("config error: 'max_upload_bytes' must be non-negative")
	}

	switch strings.ToLower(c.LogFormat) {
	case "", "json", "text":
	default:
		return fmt.Errorf("config error: 'log_format' must be json or text, got %q", c.LogFormat)
	}

	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from defaults.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	// String fields: use default if empty
	mergeString(&result.AIProvider, defaults.AIProvider)
	mergeString(&result.Model, defaults.Model)
	mergeString(&result.OpenAIAPIKey, defaults.OpenAIAPIKey)
	mergeString(&result.OpenAIURL, defaults.OpenAIURL)
	mergeString(&result.GeminiAPIKey, defaults.GeminiAPIKey)
	mergeString(&result.DatabaseURL, defaults.DatabaseURL)
	mergeString(&result.SQLitePath, defaults.SQLitePath)
	mergeString(&result.JWTSecret, defaults.JWTSecret)
	mergeString(&result.LogLevel, defaults.LogLevel)
	mergeString(&result.LogFormat, defaults.LogFormat)
	mergeString(&result.LogFile, defaults.LogFile)

	// Numeric fields: use default if zero
	if result.Port == 0 {
		result.Port = defaults.Port
	}
	if result.JWTExpirationHours == 0 {
		result.JWTExpirationHours = defaults.JWTExpirationHours
	}
	if result.MaxUploadBytes == 0 {
		result.MaxUploadBytes = defaults.MaxUploadBytes
	}
	if result.CompletionTimeout.Duration == 0 {
		result.CompletionTimeout = defaults.CompletionTimeout
	}
	if result.NotesTimeout.Duration == 0 {
		result.NotesTimeout = defaults.NotesTimeout
	}
	if result.PreferenceCacheTTL.Duration == 0 {
		result.PreferenceCacheTTL = defaults.PreferenceCacheTTL
	}

	if len(result.CORSOrigins) == 0 {
		result.CORSOrigins = defaults.CORSOrigins
	}

	return result
}

func mergeString(dst *string, fallback string) {
	if *dst == "" {
		*dst = fallback
	}
}

// LLMConfig returns the provider selection and credentials
func (c *Config) LLMConfig() *llm.Config {
	return &llm.Config{
		Provider:     llm.ParseProviderName(c.AIProvider),
		Model:        c.Model,
		OpenAIAPIKey: c.OpenAIAPIKey,
		OpenAIURL:    c.OpenAIURL,
		GeminiAPIKey: c.GeminiAPIKey,
	}
}

// LogConfig returns the logger settings
func (c *Config) LogConfig() observability.LogConfig {
	return observability.LogConfig{
		Level:  c.LogLevel,
		Format: c.LogFormat,
		File:   c.LogFile,
	}
}
