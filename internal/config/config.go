// Package config loads the optional YAML configuration of the gosdml
// command.
//
// The file is named by the --config flag or, failing that, the
// GOSDML_CONFIG environment variable. There is no discovery: without either
// the built-in defaults apply. Command-line flags override file values.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// EnvVar names the environment variable consulted when no --config flag is
// given.
const EnvVar = "GOSDML_CONFIG"

// Config is the command configuration.
type Config struct {
	Output OutputConfig `yaml:"output"`
	Load   LoadConfig   `yaml:"load"`
}

// OutputConfig controls encoded and rendered output.
type OutputConfig struct {
	// Format is the codec used by encode and decode: binary, json or cbor.
	// Default: binary
	Format string `yaml:"format"`

	// Compression wraps the codec: "", zstd or lz4.
	Compression string `yaml:"compression"`

	// Indent is the starting indent of SDML/DDML output; -1 writes one line.
	Indent int `yaml:"indent"`

	// Tab is the number of spaces per nesting level.
	// Default: 2
	Tab int `yaml:"tab"`
}

// LoadConfig bounds schema documents.
type LoadConfig struct {
	// MaxDepth limits element nesting; 0 disables the limit.
	MaxDepth int `yaml:"max_depth"`

	// MaxBytes limits document size; 0 disables the limit.
	MaxBytes int64 `yaml:"max_bytes"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Output: OutputConfig{Format: "binary", Tab: 2},
		Load:   LoadConfig{MaxDepth: 64, MaxBytes: 16 << 20},
	}
}

// Load returns the configuration named by path, or by GOSDML_CONFIG when path
// is empty, or the defaults when neither is set.
func Load(path string) (*Config, error) {
	if path == "" {
		path = os.Getenv(EnvVar)
	}
	if path == "" {
		return Default(), nil
	}
	return LoadFile(path)
}

// LoadFile reads path over the defaults. Unknown keys are rejected.
func LoadFile(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	cfg := Default()
	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	var errs []error
	switch c.Output.Format {
	case "binary", "json", "cbor":
	default:
		errs = append(errs, fmt.Errorf("output.format must be one of binary, json, cbor; got %q", c.Output.Format))
	}
	switch c.Output.Compression {
	case "", "zstd", "lz4":
	default:
		errs = append(errs, fmt.Errorf("output.compression must be zstd or lz4; got %q", c.Output.Compression))
	}
	if c.Output.Tab < 0 {
		errs = append(errs, fmt.Errorf("output.tab must not be negative"))
	}
	if c.Load.MaxDepth < 0 || c.Load.MaxBytes < 0 {
		errs = append(errs, fmt.Errorf("load limits must not be negative"))
	}
	return errors.Join(errs...)
}

// CodecName is the codec.ByName name for the output settings.
func (c *Config) CodecName() string {
	if c.Output.Compression == "" {
		return c.Output.Format
	}
	return c.Output.Format + "+" + c.Output.Compression
}
