// internal/config/config.go
package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/npillmayer/schuko/tracing"

	"github.com/ava12/rulematch"
	"github.com/ava12/rulematch/matcher"
	"github.com/ava12/rulematch/ruledef"
)

const (
	WrongValueError = iota + rulematch.ConfigErrors
	InvalidConfigError
)

// Config holds command line settings.
type Config struct {
	Strategy         string `json:"strategy" validate:"oneof=first backtrack"`
	Workers          int    `json:"workers" validate:"gte=1,lte=1024"`
	MaxInputLen      int    `json:"max_input_len" validate:"gt=0"`
	Trace            string `json:"trace" validate:"oneof=debug info error"`
	NFC              bool   `json:"nfc"`
	RequireComposite bool   `json:"require_composite"`
}

// Load returns configuration with defaults taken from environment variables.
func Load() (*Config, error) {
	cfg := &Config{}
	var e error

	cfg.Strategy = strings.ToLower(getEnv("RULEMATCH_STRATEGY", matcher.FirstMatch.String()))
	cfg.Trace = strings.ToLower(getEnv("RULEMATCH_TRACE", "error"))

	if cfg.Workers, e = getEnvInt("RULEMATCH_WORKERS", 1); e != nil {
		return nil, e
	}
	if cfg.MaxInputLen, e = getEnvInt("RULEMATCH_MAX_LEN", matcher.DefaultMaxInputLen); e != nil {
		return nil, e
	}
	if cfg.NFC, e = getEnvBool("RULEMATCH_NFC", false); e != nil {
		return nil, e
	}
	if cfg.RequireComposite, e = getEnvBool("RULEMATCH_REQUIRE_COMPOSITE", false); e != nil {
		return nil, e
	}

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) (int, error) {
	value, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue, nil
	}

	n, e := strconv.Atoi(strings.TrimSpace(value))
	if e != nil {
		return 0, rulematch.FormatError(WrongValueError, "%s: integer expected, got %q", key, value)
	}
	return n, nil
}

func getEnvBool(key string, defaultValue bool) (bool, error) {
	value, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue, nil
	}

	b, e := strconv.ParseBool(strings.TrimSpace(value))
	if e != nil {
		return false, rulematch.FormatError(WrongValueError, "%s: boolean expected, got %q", key, value)
	}
	return b, nil
}

var validate = validator.New()

// Validate checks field values.
func (c *Config) Validate() error {
	e := validate.Struct(c)
	if e == nil {
		return nil
	}

	verrs, valid := e.(validator.ValidationErrors)
	if !valid {
		return rulematch.FormatError(InvalidConfigError, "invalid configuration: %s", e.Error())
	}

	fields := make([]string, len(verrs))
	for i, fe := range verrs {
		fields[i] = fe.Field() + " (" + fe.Tag() + " " + fe.Param() + ")"
	}
	return rulematch.FormatError(InvalidConfigError, "invalid configuration: %s", strings.Join(fields, ", "))
}

// MatcherOptions converts configuration to matcher options.
func (c *Config) MatcherOptions() ([]matcher.Option, error) {
	s, e := matcher.ParseStrategy(c.Strategy)
	if e != nil {
		return nil, e
	}

	opts := []matcher.Option{
		matcher.WithStrategy(s),
		matcher.WithMaxInputLen(c.MaxInputLen),
	}
	if c.RequireComposite {
		opts = append(opts, matcher.RequireComposite())
	}
	return opts, nil
}

// RuleDefOptions converts configuration to rule parser options.
func (c *Config) RuleDefOptions() []ruledef.Option {
	if c.NFC {
		return []ruledef.Option{ruledef.NFC()}
	}
	return nil
}

// TraceLevel converts Trace setting to tracing level, unknown values mean errors only.
func (c *Config) TraceLevel() tracing.TraceLevel {
	switch c.Trace {
	case "debug":
		return tracing.LevelDebug
	case "info":
		return tracing.LevelInfo
	default:
		return tracing.LevelError
	}
}
