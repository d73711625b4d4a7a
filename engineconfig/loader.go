package engineconfig

import (
	"fmt"
	"os"
	"reflect"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/flowmesh/agentdag/engine"
)

// fileConfig mirrors engine.Config with the yaml/env tags the loader
// needs; engine.Config itself stays free of serialization tags since it
// is also constructed directly by callers that never touch YAML.
type fileConfig struct {
	DefaultMaxRetries         int     `yaml:"default_max_retries" env:"DEFAULT_MAX_RETRIES"`
	DefaultTimeoutSeconds     float64 `yaml:"default_timeout_seconds" env:"DEFAULT_TIMEOUT_SECONDS"`
	MaxConcurrentAgents       int     `yaml:"max_concurrent_agents" env:"MAX_CONCURRENT_AGENTS"`
	ExecutionContextRetention int     `yaml:"execution_context_retention" env:"EXECUTION_CONTEXT_RETENTION"`
	ContinueOnErrorDefault    bool    `yaml:"continue_on_error_default" env:"CONTINUE_ON_ERROR_DEFAULT"`
	BackoffJitter             bool    `yaml:"backoff_jitter" env:"BACKOFF_JITTER"`
	MetricsNamespace          string  `yaml:"metrics_namespace" env:"METRICS_NAMESPACE"`
}

func toFileConfig(c engine.Config) fileConfig {
	return fileConfig{
		DefaultMaxRetries:         c.DefaultMaxRetries,
		DefaultTimeoutSeconds:     c.DefaultTimeoutSeconds,
		MaxConcurrentAgents:       c.MaxConcurrentAgents,
		ExecutionContextRetention: c.ExecutionContextRetention,
		ContinueOnErrorDefault:    c.ContinueOnErrorDefault,
		BackoffJitter:             c.BackoffJitter,
		MetricsNamespace:          c.MetricsNamespace,
	}
}

func fromFileConfig(f fileConfig) engine.Config {
	return engine.Config{
		DefaultMaxRetries:         f.DefaultMaxRetries,
		DefaultTimeoutSeconds:     f.DefaultTimeoutSeconds,
		MaxConcurrentAgents:       f.MaxConcurrentAgents,
		ExecutionContextRetention: f.ExecutionContextRetention,
		ContinueOnErrorDefault:    f.ContinueOnErrorDefault,
		BackoffJitter:             f.BackoffJitter,
		MetricsNamespace:          f.MetricsNamespace,
	}
}

// Loader loads an engine.Config with priority: defaults -> YAML file ->
// environment variables.
type Loader struct {
	configPath string
	envPrefix  string
}

// NewLoader creates a Loader with the module's default environment prefix.
func NewLoader() *Loader {
	return &Loader{envPrefix: "AGENTDAG"}
}

// WithConfigPath sets the YAML file to load. A missing file is not an
// error — defaults and environment overrides still apply.
func (l *Loader) WithConfigPath(path string) *Loader {
	l.configPath = path
	return l
}

// WithEnvPrefix overrides the environment variable prefix.
func (l *Loader) WithEnvPrefix(prefix string) *Loader {
	l.envPrefix = prefix
	return l
}

// Load runs the defaults -> file -> env pipeline and returns the result.
func (l *Loader) Load() (engine.Config, error) {
	cfg := toFileConfig(engine.DefaultConfig())

	if l.configPath != "" {
		if err := l.loadFromFile(&cfg); err != nil {
			return engine.Config{}, fmt.Errorf("engineconfig: load from file: %w", err)
		}
	}

	if err := setFieldsFromEnv(reflect.ValueOf(&cfg).Elem(), l.envPrefix); err != nil {
		return engine.Config{}, fmt.Errorf("engineconfig: load from env: %w", err)
	}

	return fromFileConfig(cfg), nil
}

func (l *Loader) loadFromFile(cfg *fileConfig) error {
	data, err := os.ReadFile(l.configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	return nil
}

// setFieldsFromEnv walks v's fields, overriding each from
// prefix_ENVTAG when that variable is set.
func setFieldsFromEnv(v reflect.Value, prefix string) error {
	t := v.Type()

	for i := 0; i < v.NumField(); i++ {
		field := v.Field(i)
		envTag := t.Field(i).Tag.Get("env")
		if envTag == "" || envTag == "-" {
			continue
		}

		envValue := os.Getenv(prefix + "_" + envTag)
		if envValue == "" {
			continue
		}

		if err := setFieldValue(field, envValue); err != nil {
			return fmt.Errorf("set %s_%s: %w", prefix, envTag, err)
		}
	}
	return nil
}

func setFieldValue(field reflect.Value, value string) error {
	if !field.CanSet() {
		return nil
	}

	switch field.Kind() {
	case reflect.String:
		field.SetString(value)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		i, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return err
		}
		field.SetInt(i)
	case reflect.Float32, reflect.Float64:
		f, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return err
		}
		field.SetFloat(f)
	case reflect.Bool:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return err
		}
		field.SetBool(b)
	}
	return nil
}
