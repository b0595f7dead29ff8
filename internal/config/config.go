// Package config loads the colt.yml file controlling which diagnostics the
// front-end emits.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/Masterminds/semver/v3"
	"gopkg.in/yaml.v3"
)

// LanguageVersion is the version of the language implemented by this
// front-end. A configuration can require a range of versions.
const LanguageVersion = "0.3.0"

// DefaultFile is the name of the configuration file looked up by the tools
const DefaultFile = "colt.yml"

// WarnFor dictates which warnings the AST maker reports
type WarnFor struct {
	VarShadowing            bool
	ConstantFoldingNaN      bool
	ConstantFoldingSigned   bool
	ConstantFoldingUnsigned bool
	ConstantFoldingShift    bool
}

// WarnAll enables every warning
func WarnAll() WarnFor {
	return WarnFor{
		VarShadowing:            true,
		ConstantFoldingNaN:      true,
		ConstantFoldingSigned:   true,
		ConstantFoldingUnsigned: true,
		ConstantFoldingShift:    true,
	}
}

// Limits bounds the number of diagnostics printed per level. 0 means no
// limit.
type Limits struct {
	MaxErrors   uint64
	MaxWarnings uint64
	MaxMessages uint64
}

// ColorMode controls colored console output
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"
	ColorAlways ColorMode = "always"
	ColorNever  ColorMode = "never"
)

// IsValid reports whether the mode is recognised.
func (m ColorMode) IsValid() bool {
	switch m {
	case ColorAuto, ColorAlways, ColorNever:
		return true
	}
	return false
}

// Config is the validated content of a configuration file
type Config struct {
	Path     string
	Language *semver.Constraints
	Warnings WarnFor
	Limits   Limits
	Color    ColorMode
	// WarningsAsErrors promotes every warning to an error
	WarningsAsErrors bool
}

// Default returns the configuration used when no file exists
func Default() *Config {
	return &Config{
		Warnings: WarnAll(),
		Color:    ColorAuto,
	}
}

// ValidationError aggregates configuration validation failures.
type ValidationError struct {
	Path   string
	Issues []string
}

func (e *ValidationError) Error() string {
	if len(e.Issues) == 0 {
		return "config: invalid configuration"
	}
	var b strings.Builder
	b.WriteString("config validation failed")
	if e.Path != "" {
		b.WriteString(" for ")
		b.WriteString(e.Path)
	}
	b.WriteString(":")
	for _, issue := range e.Issues {
		b.WriteString("\n- ")
		b.WriteString(issue)
	}
	return b.String()
}

type warningsFile struct {
	VarShadowing     *bool `yaml:"var_shadowing"`
	NaN              *bool `yaml:"constant_folding_nan"`
	SignedOU         *bool `yaml:"constant_folding_signed_ou"`
	UnsignedOU       *bool `yaml:"constant_folding_unsigned_ou"`
	InvalidShift     *bool `yaml:"constant_folding_invalid_shift"`
	WarningsAsErrors bool  `yaml:"as_errors"`
}

type limitsFile struct {
	MaxErrors   *int64 `yaml:"max_errors"`
	MaxWarnings *int64 `yaml:"max_warnings"`
	MaxMessages *int64 `yaml:"max_messages"`
}

type configFile struct {
	Language string       `yaml:"language"`
	Color    string       `yaml:"color"`
	Warnings warningsFile `yaml:"warnings"`
	Limits   limitsFile   `yaml:"limits"`
}

// Load parses a configuration file from disk. A missing file returns the
// default configuration.
func Load(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config: empty path")
	}
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			cfg := Default()
			cfg.Path = path
			return cfg, nil
		}
		return nil, fmt.Errorf("config: open %s: %w", path, err)
	}
	defer file.Close()

	return Decode(path, file)
}

// Decode parses a configuration from r. path is only used in errors.
func Decode(path string, r io.Reader) (*Config, error) {
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)

	var raw configFile
	if err := decoder.Decode(&raw); err != nil {
		if errors.Is(err, io.EOF) {
			cfg := Default()
			cfg.Path = path
			return cfg, nil
		}
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	return raw.toConfig(path)
}

func (f *configFile) toConfig(path string) (*Config, error) {
	cfg := Default()
	cfg.Path = path
	errs := ValidationError{Path: path}

	if f.Language != "" {
		c, err := semver.NewConstraint(f.Language)
		if err != nil {
			errs.Issues = append(errs.Issues, fmt.Sprintf("language: invalid constraint %q: %v", f.Language, err))
		} else {
			cfg.Language = c
		}
	}

	if f.Color != "" {
		cfg.Color = ColorMode(strings.ToLower(f.Color))
		if !cfg.Color.IsValid() {
			errs.Issues = append(errs.Issues, fmt.Sprintf("color: unsupported mode %q", f.Color))
		}
	}

	setBool := func(dst *bool, src *bool) {
		if src != nil {
			*dst = *src
		}
	}
	setBool(&cfg.Warnings.VarShadowing, f.Warnings.VarShadowing)
	setBool(&cfg.Warnings.ConstantFoldingNaN, f.Warnings.NaN)
	setBool(&cfg.Warnings.ConstantFoldingSigned, f.Warnings.SignedOU)
	setBool(&cfg.Warnings.ConstantFoldingUnsigned, f.Warnings.UnsignedOU)
	setBool(&cfg.Warnings.ConstantFoldingShift, f.Warnings.InvalidShift)
	cfg.WarningsAsErrors = f.Warnings.WarningsAsErrors

	setLimit := func(name string, dst *uint64, src *int64) {
		if src == nil {
			return
		}
		if *src < 0 {
			errs.Issues = append(errs.Issues, fmt.Sprintf("limits.%s: must not be negative", name))
			return
		}
		*dst = uint64(*src)
	}
	setLimit("max_errors", &cfg.Limits.MaxErrors, f.Limits.MaxErrors)
	setLimit("max_warnings", &cfg.Limits.MaxWarnings, f.Limits.MaxWarnings)
	setLimit("max_messages", &cfg.Limits.MaxMessages, f.Limits.MaxMessages)

	if len(errs.Issues) > 0 {
		return nil, &errs
	}
	return cfg, nil
}

// CheckLanguage returns an error if the configuration requires a language
// version this front-end does not implement.
func (c *Config) CheckLanguage() error {
	if c.Language == nil {
		return nil
	}
	v := semver.MustParse(LanguageVersion)
	if ok, reasons := c.Language.Validate(v); !ok {
		msgs := make([]string, 0, len(reasons))
		for _, r := range reasons {
			msgs = append(msgs, r.Error())
		}
		return fmt.Errorf("config: %s requires language %s, this front-end implements %s (%s)",
			c.Path, c.Language, LanguageVersion, strings.Join(msgs, "; "))
	}
	return nil
}
