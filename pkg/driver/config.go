// Package driver loads the optional arbor.yml run-configuration file that
// sits alongside a source file, and constructs an *interpreter.Interpreter
// from it: decode with yaml.v3 in strict mode, merge user-supplied fields
// over a documented default, then validate.
package driver

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"dario.cat/mergo"
	"gopkg.in/yaml.v3"

	"github.com/arbor-lang/arbor/pkg/interpreter"
)

// Config is the parsed contents of arbor.yml.
type Config struct {
	// Entry is the source file to run when none is given on the command
	// line.
	Entry string `yaml:"entry"`
	// DisabledBuiltins turns off individual built-in functions by name,
	// so a restricted teaching sandbox can, e.g., drop `print`.
	DisabledBuiltins []string `yaml:"disabled_builtins"`
	// MaxCallDepth overrides the interpreter's recursion ceiling.
	MaxCallDepth int `yaml:"max_call_depth"`
}

// DefaultConfig is merged underneath whatever arbor.yml supplies, so a
// config file only needs to mention the fields it wants to override.
func DefaultConfig() Config {
	return Config{
		MaxCallDepth: 4000,
	}
}

// ValidationError aggregates configuration validation failures.
type ValidationError struct {
	Issues []string
}

func (e *ValidationError) Error() string {
	if len(e.Issues) == 0 {
		return "config: invalid configuration"
	}
	var b strings.Builder
	b.WriteString("arbor.yml validation failed:")
	for _, issue := range e.Issues {
		b.WriteString("\n- ")
		b.WriteString(issue)
	}
	return b.String()
}

// LoadConfig reads and decodes arbor.yml at path, merging it over
// DefaultConfig. A missing file is not an error: callers get the default
// configuration back.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	file, err := os.Open(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return Config{}, fmt.Errorf("config: open %s: %w", path, err)
	}
	defer file.Close()

	decoder := yaml.NewDecoder(file)
	decoder.KnownFields(true)
	// Decoding over a copy of the defaults leaves absent fields at their
	// default value and keeps an explicit zero (max_call_depth: 0) so that
	// validate() sees it.
	override := DefaultConfig()
	if err := decoder.Decode(&override); err != nil {
		if errors.Is(err, io.EOF) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}

	if err := mergo.Merge(&cfg, override, mergo.WithOverride, mergo.WithOverwriteWithEmptyValue); err != nil {
		return Config{}, fmt.Errorf("config: merge %s: %w", path, err)
	}
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	var errs ValidationError
	if c.MaxCallDepth <= 0 {
		errs.Issues = append(errs.Issues, "max_call_depth must be positive")
	}
	for _, name := range c.DisabledBuiltins {
		if name == "" {
			errs.Issues = append(errs.Issues, "disabled_builtins entries must be non-empty")
		}
	}
	if len(errs.Issues) > 0 {
		return &errs
	}
	return nil
}

// NewInterpreter builds an Interpreter reflecting this configuration:
// MaxCallDepth applied, and any DisabledBuiltins removed from the global
// scope after construction.
func (c Config) NewInterpreter() *interpreter.Interpreter {
	interp := interpreter.New()
	interp.MaxCallDepth = c.MaxCallDepth
	for _, name := range c.DisabledBuiltins {
		interp.Globals.Undefine(name)
	}
	return interp
}
