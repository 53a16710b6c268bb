// Package config describes the resume-parser configuration and its defaults.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"

	"github.com/spigell/resume-parser/internal/backend"
	"github.com/spigell/resume-parser/internal/form"
)

// EnvPrefix prefixes every environment variable, e.g. RESUME_PARSER_BASE_URL.
const EnvPrefix = "RESUME_PARSER"

type Config struct {
	BaseURL   string        `mapstructure:"base-url" validate:"required,url"`
	Timeout   time.Duration `mapstructure:"timeout" validate:"gte=0"`
	UserAgent string        `mapstructure:"user-agent"`
	Token     string        `mapstructure:"token"`
	TokenFile string        `mapstructure:"token-file"`
	Debug     bool          `mapstructure:"debug"`
	JSON      bool          `mapstructure:"json"`

	Settle *SettleConfig `mapstructure:"settle" validate:"required"`
	Serve  *ServeConfig  `mapstructure:"serve" validate:"required"`
}

type SettleConfig struct {
	Delay        time.Duration `mapstructure:"delay" validate:"gte=0"`
	PollAttempts int           `mapstructure:"poll-attempts" validate:"gte=1"`
	PollInterval time.Duration `mapstructure:"poll-interval" validate:"gte=0"`
}

type ServeConfig struct {
	Listen         string        `mapstructure:"listen" validate:"required"`
	AllowedOrigins []string      `mapstructure:"allowed-origins"`
	SessionTTL     time.Duration `mapstructure:"session-ttl" validate:"gt=0"`
}

var validate = validator.New()

// SetDefaults registers the default values on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("base-url", backend.DefaultBaseURL)
	v.SetDefault("timeout", time.Duration(0))
	v.SetDefault("user-agent", "")
	v.SetDefault("token", "")
	v.SetDefault("token-file", "")

	v.SetDefault("settle.delay", form.DefaultSettle.Delay)
	v.SetDefault("settle.poll-attempts", form.DefaultSettle.PollAttempts)
	v.SetDefault("settle.poll-interval", form.DefaultSettle.PollInterval)

	v.SetDefault("serve.listen", ":3000")
	v.SetDefault("serve.allowed-origins", []string{"http://localhost:3000"})
	v.SetDefault("serve.session-ttl", 30*time.Minute)
}

// BindEnv makes every known key overridable by a prefixed environment variable.
func BindEnv(v *viper.Viper) {
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()
}

// Load unmarshals and validates the configuration held by v.
func Load(v *viper.Viper) (*Config, error) {
	var cfg *Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if cfg == nil {
		return nil, errors.New("config is empty")
	}

	cfg.BaseURL = strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")

	if err := Validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks cfg against its struct tags and reports every invalid key.
func Validate(cfg *Config) error {
	err := validate.Struct(cfg)
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return err
	}

	problems := make([]string, 0, len(validationErrors))
	for _, e := range validationErrors {
		problems = append(problems, fmt.Sprintf("%s: %s", e.Namespace(), formatValidationError(e)))
	}

	return fmt.Errorf("invalid config: %s", strings.Join(problems, "; "))
}

func formatValidationError(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "this field is required"
	case "url":
		return "must be an absolute URL"
	case "gte":
		return "must be at least " + e.Param()
	case "gt":
		return "must be greater than " + e.Param()
	default:
		return "invalid value"
	}
}

// BackendOptions returns the client options for the analysis backend.
func (c *Config) BackendOptions(token string) backend.Options {
	return backend.Options{
		BaseURL:   c.BaseURL,
		Token:     token,
		UserAgent: c.UserAgent,
		Timeout:   c.Timeout,
	}
}

// FormSettle returns the settle policy of the submission pipeline.
func (c *Config) FormSettle() form.Settle {
	return form.Settle{
		Delay:        c.Settle.Delay,
		PollAttempts: c.Settle.PollAttempts,
		PollInterval: c.Settle.PollInterval,
	}
}
