// Package config loads snipfmt settings from flags, environment and the
// optional .snipfmt.yaml file.
package config

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"

	"github.com/jmylchreest/snipfmt/pkg/transform"
)

// EnvPrefix is prepended to environment variable names, e.g.
// SNIPFMT_BATCH_CONCURRENCY.
const EnvPrefix = "SNIPFMT"

// Config holds every tunable setting.
type Config struct {
	// MaxInputSize caps a single input, as a human size ("5MB", "512KiB").
	MaxInputSize string       `mapstructure:"max_input_size" validate:"required"`
	Fetch        FetchConfig  `mapstructure:"fetch"`
	Batch        BatchConfig  `mapstructure:"batch"`
	Report       ReportConfig `mapstructure:"report"`
}

// FetchConfig controls URL sources.
type FetchConfig struct {
	Timeout   time.Duration `mapstructure:"timeout" validate:"gt=0"`
	UserAgent string        `mapstructure:"user_agent"`
}

// BatchConfig controls the batch command.
type BatchConfig struct {
	Concurrency int `mapstructure:"concurrency" validate:"min=1,max=256"`
	// Suffix is inserted before the extension of output files. Empty means
	// the default for the direction, see SuffixFor.
	Suffix string `mapstructure:"suffix" validate:"omitempty,startswith=.,excludesall=/"`
}

// SuffixFor returns the configured suffix, or DefaultMinifySuffix or
// DefaultBeautifySuffix by direction.
func (b BatchConfig) SuffixFor(dir transform.Direction) string {
	switch {
	case b.Suffix != "":
		return b.Suffix
	case dir == transform.Beautify:
		return DefaultBeautifySuffix
	default:
		return DefaultMinifySuffix
	}
}

// ReportConfig selects the report format. Empty means no report.
type ReportConfig struct {
	Format string `mapstructure:"format" validate:"omitempty,oneof=json jsonl yaml text"`
}

// Defaults
const (
	DefaultMaxInputSize = "10MB"
	DefaultFetchTimeout = 30 * time.Second
	DefaultConcurrency  = 4

	DefaultMinifySuffix   = ".min"
	DefaultBeautifySuffix = ".pretty"
)

// SetDefaults registers default values and environment binding on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("max_input_size", DefaultMaxInputSize)
	v.SetDefault("fetch.timeout", DefaultFetchTimeout)
	v.SetDefault("fetch.user_agent", "")
	v.SetDefault("batch.concurrency", DefaultConcurrency)
	v.SetDefault("batch.suffix", "")
	v.SetDefault("report.format", "")

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
}

// Load decodes and validates the settings held by v.
func Load(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("mapstructure"), ",")
		if name == "" || name == "-" {
			return f.Name
		}
		return name
	})
	return v
}

// Validate checks field constraints and that MaxInputSize parses.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return fmt.Errorf("invalid config: %w", err)
		}
		msgs := make([]string, 0, len(verrs))
		for _, fe := range verrs {
			msgs = append(msgs, describe(fe))
		}
		return fmt.Errorf("invalid config: %s", strings.Join(msgs, "; "))
	}

	if _, err := humanize.ParseBytes(c.MaxInputSize); err != nil {
		return fmt.Errorf("invalid config: max_input_size %q: %w", c.MaxInputSize, err)
	}
	return nil
}

// describe renders a validation failure with the config key name.
func describe(fe validator.FieldError) string {
	key := fe.Namespace()
	if _, rest, ok := strings.Cut(key, "."); ok {
		key = rest
	}

	switch fe.Tag() {
	case "required":
		return key + " is required"
	case "min", "gt":
		return fmt.Sprintf("%s must be greater than %s (got %v)", key, minBound(fe), fe.Value())
	case "max":
		return fmt.Sprintf("%s must be at most %s (got %v)", key, fe.Param(), fe.Value())
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s] (got %v)", key, fe.Param(), fe.Value())
	default:
		return fmt.Sprintf("%s failed %s=%s (got %v)", key, fe.Tag(), fe.Param(), fe.Value())
	}
}

func minBound(fe validator.FieldError) string {
	if fe.Tag() == "gt" {
		return fe.Param()
	}
	return "or equal to " + fe.Param()
}

// MaxInputBytes returns MaxInputSize in bytes. Load has already validated it.
func (c *Config) MaxInputBytes() uint64 {
	n, err := humanize.ParseBytes(c.MaxInputSize)
	if err != nil {
		return 0
	}
	return n
}
