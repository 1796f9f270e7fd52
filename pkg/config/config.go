package config

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/ccollicutt/logsift/pkg/analyzer"
)

var validate = newValidator()

// newValidator reports fields by their YAML names.
func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("yaml"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Load reads and validates a configuration file.
// Files ending in .toml are decoded as TOML; anything else as YAML.
func Load(_ context.Context, path string) (*Config, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- user-provided config path is expected
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := decode(path, data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	cfg.applyEnvironmentOverrides()

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

func decode(path string, data []byte, cfg *Config) error {
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		return toml.Unmarshal(data, cfg)
	}
	return yaml.Unmarshal(data, cfg)
}

// Validate checks a configuration for errors, fills in defaults and expands
// environment variables in log sources.
func Validate(cfg *Config) error {
	if cfg.Output.Format == "" {
		cfg.Output.Format = DefaultOutputFormat
	}

	if err := validate.Struct(cfg); err != nil {
		return describeValidationError(err)
	}

	for i, src := range cfg.LogSources {
		cfg.LogSources[i] = os.ExpandEnv(src)
	}

	names := make(map[string]bool, len(cfg.Queries))
	for i := range cfg.Queries {
		q := &cfg.Queries[i]
		if names[q.Name] {
			return fmt.Errorf("queries[%d] (%s): duplicate query name", i, q.Name)
		}
		names[q.Name] = true

		if err := analyzer.ValidateQuery(q.Query()); err != nil {
			return fmt.Errorf("queries[%d] (%s): %w", i, q.Name, err)
		}
		if q.Level != "" {
			level, _ := analyzer.ParseLevel(q.Level)
			q.Level = string(level)
		}
	}

	return nil
}

// describeValidationError turns the first struct validation failure into a message
// naming the offending field, e.g. "queries[1].name: is required".
func describeValidationError(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return err
	}

	fe := verrs[0]
	field := fe.Namespace()
	if _, rest, ok := strings.Cut(field, "."); ok {
		field = rest
	}

	switch fe.Tag() {
	case "required":
		return fmt.Errorf("%s: is required", field)
	case "required_without":
		return fmt.Errorf("%s: is required when %s is empty", field, strings.ToLower(fe.Param()))
	case "min":
		if fe.Kind() == reflect.Slice {
			return fmt.Errorf("%s: at least %s entry is required", field, fe.Param())
		}
		return fmt.Errorf("%s: must be at least %s characters", field, fe.Param())
	case "max":
		return fmt.Errorf("%s: exceeds %s characters", field, fe.Param())
	case "oneof":
		return fmt.Errorf("%s: invalid value %q (must be one of: %s)", field, fe.Value(), fe.Param())
	default:
		return fmt.Errorf("%s: failed %q validation", field, fe.Tag())
	}
}
