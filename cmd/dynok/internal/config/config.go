// Package config loads the dynok CLI settings. Values are layered, later
// sources winning: built-in defaults, an optional YAML file, DYNOK_*
// environment variables and finally command-line flags.
package config

import (
	"bytes"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	errs "github.com/bdlm/errors"
	"github.com/joeshaw/envdecode"
	"gopkg.in/yaml.v3"

	"github.com/reoring/dynok"
)

// Config holds the decode and output settings shared by every subcommand.
type Config struct {
	// Driver is the JSON tokenizer: "go-json" or "encoding/json". ENV: DYNOK_DRIVER
	Driver string `yaml:"driver" env:"DYNOK_DRIVER"`
	// Numbers is the number mode: "wide" or "narrow". ENV: DYNOK_NUMBERS
	Numbers string `yaml:"numbers" env:"DYNOK_NUMBERS"`
	// Unknown is the envelope field policy: "strip" or "strict". ENV: DYNOK_UNKNOWN
	Unknown string `yaml:"unknown" env:"DYNOK_UNKNOWN"`
	// Duplicates is the duplicate key policy: "error", "warn" or "ignore". ENV: DYNOK_DUPLICATES
	Duplicates string `yaml:"duplicates" env:"DYNOK_DUPLICATES"`
	MaxDepth   int    `yaml:"maxDepth" env:"DYNOK_MAX_DEPTH"`
	MaxBytes   int64  `yaml:"maxBytes" env:"DYNOK_MAX_BYTES"`
	Indent     string `yaml:"indent" env:"DYNOK_INDENT"`
	Compact    bool   `yaml:"compact" env:"DYNOK_COMPACT"`
	// Language selects the error message catalog ("en", "ja"). ENV: DYNOK_LANG
	Language string `yaml:"language" env:"DYNOK_LANG"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Driver:     "go-json",
		Numbers:    "wide",
		Unknown:    "strip",
		Duplicates: "error",
		Indent:     "  ",
		Language:   "en",
	}
}

// RegisterFlags binds the settings to fs using the current values as flag
// defaults.
func (c *Config) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.Driver, "driver", c.Driver, "JSON driver: go-json or encoding/json")
	fs.StringVar(&c.Numbers, "numbers", c.Numbers, "number mode: wide or narrow")
	fs.StringVar(&c.Unknown, "unknown", c.Unknown, "unknown envelope fields: strip or strict")
	fs.StringVar(&c.Duplicates, "duplicates", c.Duplicates, "duplicate keys: error, warn or ignore")
	fs.IntVar(&c.MaxDepth, "max-depth", c.MaxDepth, "maximum nesting depth (0 = unlimited)")
	fs.Int64Var(&c.MaxBytes, "max-bytes", c.MaxBytes, "maximum input size in bytes (0 = unlimited)")
	fs.StringVar(&c.Indent, "indent", c.Indent, "indentation used for output")
	fs.BoolVar(&c.Compact, "compact", c.Compact, "print compact JSON")
	fs.StringVar(&c.Language, "lang", c.Language, "error message language")
}

// LoadFile overlays the YAML document at path. Unknown keys are rejected.
func (c *Config) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return errs.Wrap(err, 0, "error reading config file")
	}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(c); err != nil && !errors.Is(err, io.EOF) {
		return errs.Wrap(err, 0, "error parsing config file %s", path)
	}
	return nil
}

// LoadEnv overlays DYNOK_* environment variables that are set.
func (c *Config) LoadEnv() error {
	if err := envdecode.Decode(c); err != nil && !errors.Is(err, envdecode.ErrNoTargetFieldsAreSet) {
		return errs.Wrap(err, 0, "error reading environment")
	}
	return nil
}

// DecodeOpt converts the settings into decoder options.
func (c Config) DecodeOpt() (dynok.DecodeOpt, error) {
	var (
		opt dynok.DecodeOpt
		err error
	)
	if opt.Driver, err = dynok.ParseDriver(c.Driver); err != nil {
		return opt, err
	}
	if opt.NumberMode, err = dynok.ParseNumberMode(c.Numbers); err != nil {
		return opt, err
	}
	if opt.Unknown, err = dynok.ParseUnknownPolicy(c.Unknown); err != nil {
		return opt, err
	}
	if opt.OnDuplicateKey, err = dynok.ParseDuplicatePolicy(c.Duplicates); err != nil {
		return opt, err
	}
	if c.MaxDepth < 0 || c.MaxBytes < 0 {
		return opt, fmt.Errorf("limits must not be negative (max-depth %d, max-bytes %d)", c.MaxDepth, c.MaxBytes)
	}
	opt.MaxDepth, opt.MaxBytes = c.MaxDepth, c.MaxBytes
	return opt, nil
}

// Load registers the settings and a -config flag on fs, parses args and
// returns the layered configuration. The -config flag defaults to
// $DYNOK_CONFIG.
func Load(fs *flag.FlagSet, args []string) (Config, error) {
	cfg := Default()
	file := os.Getenv("DYNOK_CONFIG")
	fs.StringVar(&file, "config", file, "YAML config file")
	cfg.RegisterFlags(fs)
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	layered := Default()
	if file != "" {
		if err := layered.LoadFile(file); err != nil {
			return Config{}, err
		}
	}
	if err := layered.LoadEnv(); err != nil {
		return Config{}, err
	}

	// Flags given explicitly win over the file and the environment.
	explicit := flag.NewFlagSet(fs.Name(), flag.ContinueOnError)
	layered.RegisterFlags(explicit)
	var setErr error
	fs.Visit(func(f *flag.Flag) {
		if explicit.Lookup(f.Name) == nil || setErr != nil {
			return
		}
		setErr = explicit.Set(f.Name, f.Value.String())
	})
	if setErr != nil {
		return Config{}, setErr
	}
	return layered, nil
}
