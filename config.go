package niceid

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"

	"github.com/paraglidehq/niceid/alphabet"
)

// Environment variables read by LoadConfig.
const (
	EnvSecret     = "NICEID_SECRET"
	EnvCharacters = "NICEID_CHARACTERS"
	EnvMinLength  = "NICEID_MIN_LENGTH"
)

// Config is the plain-value form of an Encoder's settings.
type Config struct {
	Secret     string
	Characters string
	MinLength  int
}

// DefaultConfig returns the settings New uses when given no options.
func DefaultConfig() Config {
	return Config{
		Secret:     DefaultSecret,
		Characters: alphabet.DefaultCharacters,
		MinLength:  DefaultMinLength,
	}
}

// ConfigOf returns the settings of e.
func ConfigOf(e *Encoder) Config {
	return Config{
		Secret:     e.Secret(),
		Characters: e.Characters(),
		MinLength:  e.MinLength(),
	}
}

// LoadConfig starts from DefaultConfig, applies the given dotenv files in
// order, then the process environment. Empty values are ignored. The
// files are read without touching the process environment.
func LoadConfig(files ...string) (Config, error) {
	cfg := DefaultConfig()

	if len(files) > 0 {
		vars, err := godotenv.Read(files...)
		if err != nil {
			return cfg, fmt.Errorf("niceid: read env files: %w", err)
		}
		lookup := func(k string) (string, bool) {
			v, ok := vars[k]
			return v, ok
		}
		if err := cfg.apply(lookup); err != nil {
			return cfg, err
		}
	}

	if err := cfg.apply(os.LookupEnv); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func (c *Config) apply(lookup func(string) (string, bool)) error {
	if v, ok := lookup(EnvSecret); ok && v != "" {
		c.Secret = v
	}
	if v, ok := lookup(EnvCharacters); ok && v != "" {
		c.Characters = v
	}
	if v, ok := lookup(EnvMinLength); ok && v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%w: %s=%q is not an integer", ErrConfig, EnvMinLength, v)
		}
		c.MinLength = n
	}
	return nil
}

// Encoder builds an Encoder from c. Extra options are applied last.
func (c Config) Encoder(opts ...Option) (*Encoder, error) {
	base := []Option{WithCharacters(c.Characters), WithMinLength(c.MinLength)}
	return New(c.Secret, append(base, opts...)...)
}
