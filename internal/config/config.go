// Package config provides configuration loading and validation for the CLI.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Environment variables consulted for credentials.
const (
	EnvOpenAIKey    = "OPENAI_API_KEY"
	EnvGeminiKey    = "GEMINI_API_KEY"
	EnvSearchKey    = "GOOGLE_SEARCH_API_KEY"
	EnvSearchEngine = "GOOGLE_SEARCH_CX"
)

// Defaults applied by MergeWithDefaults when neither the file nor flags set a value.
const (
	DefaultProvider       = "openai"
	DefaultTimeoutSeconds = 10
	DefaultFormat         = "markdown"
	DefaultLogLevel       = "info"
	DefaultLogFormat      = "console"
	DefaultOutputDir      = "."
)

// Config represents the CLI configuration that can be loaded from a JSON file.
// All fields are optional; missing values use defaults or must be provided via CLI flags.
type Config struct {
	// Research input
	SeedURL string `json:"seed_url,omitempty" validate:"omitempty,url"` // Company home page
	Company string `json:"company,omitempty"`                           // Company name, resolved through search when no seed URL is set
	Role    string `json:"role,omitempty"`                              // Requester role (display name or slug)

	// Summarizer
	Provider string `json:"provider,omitempty" validate:"omitempty,oneof=openai gemini"`
	Model    string `json:"model,omitempty"`                             // Overrides the advanced-tier model
	BaseURL  string `json:"base_url,omitempty" validate:"omitempty,url"` // OpenAI-compatible endpoint
	APIKey   string `json:"api_key,omitempty"`                           // Summarizer API key

	// Fetching
	TimeoutSeconds int    `json:"timeout_seconds,omitempty" validate:"gte=0,lte=300"`
	UserAgent      string `json:"user_agent,omitempty"`

	// Output
	OutputDir string `json:"output_dir,omitempty"`
	Format    string `json:"format,omitempty" validate:"omitempty,oneof=markdown md json"`

	// Logging
	LogLevel  string `json:"log_level,omitempty" validate:"omitempty,oneof=debug info warn error"`
	LogFormat string `json:"log_format,omitempty" validate:"omitempty,oneof=console json"`
	Verbose   bool   `json:"verbose,omitempty"` // Print gathered pages and team records
}

var validate = newValidator()

// newValidator reports fields by their JSON names.
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// LoadConfig loads configuration from a JSON file.
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
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// Validate checks that the configuration has valid values.
// Required inputs are checked by the commands after merging with flags.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) {
			msgs := make([]string, 0, len(fieldErrs))
			for _, fe := range fieldErrs {
				msgs = append(msgs, fmt.Sprintf("'%s' failed '%s'", fe.Field(), fe.Tag()))
			}
			return fmt.Errorf("config error: %s", strings.Join(msgs, "; "))
		}
		return fmt.Errorf("config error: %w", err)
	}
	if c.SeedURL != "" && !strings.HasPrefix(c.SeedURL, "http://") && !strings.HasPrefix(c.SeedURL, "https://") {
		return fmt.Errorf("config error: 'seed_url' must use http or https")
	}
	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from defaults,
// then from the package defaults.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	fill := func(dst *string, values ...string) {
		for _, v := range values {
			if *dst != "" {
				return
			}
			*dst = v
		}
	}

	fill(&result.SeedURL, defaults.SeedURL)
	fill(&result.Company, defaults.Company)
	fill(&result.Role, defaults.Role)
	fill(&result.Provider, defaults.Provider, DefaultProvider)
	fill(&result.Model, defaults.Model)
	fill(&result.BaseURL, defaults.BaseURL)
	fill(&result.APIKey, defaults.APIKey)
	fill(&result.UserAgent, defaults.UserAgent)
	fill(&result.OutputDir, defaults.OutputDir, DefaultOutputDir)
	fill(&result.Format, defaults.Format, DefaultFormat)
	fill(&result.LogLevel, defaults.LogLevel, DefaultLogLevel)
	fill(&result.LogFormat, defaults.LogFormat, DefaultLogFormat)

	if result.TimeoutSeconds == 0 {
		result.TimeoutSeconds = defaults.TimeoutSeconds
	}
	if result.TimeoutSeconds == 0 {
		result.TimeoutSeconds = DefaultTimeoutSeconds
	}

	// Bool fields: cannot distinguish unset from false, so we don't merge
	// (CLI flags should always win for bools)

	return result
}

// APIKeyFromEnv returns the summarizer key for provider from the environment.
func APIKeyFromEnv(provider string) string {
	if provider == "gemini" {
		return os.Getenv(EnvGeminiKey)
	}
	return os.Getenv(EnvOpenAIKey)
}

// SearchCredentialsFromEnv returns the Programmable Search key and engine ID.
func SearchCredentialsFromEnv() (apiKey, cx string) {
	return os.Getenv(EnvSearchKey), os.Getenv(EnvSearchEngine)
}
