// Package config gathers host settings from flags, the environment and an
// optional .env file, and resolves them into an engine configuration.
package config

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"backdrop/internal/background"

	"github.com/joho/godotenv"
)

// EnvPrefix prefixes environment variables that map onto engine keys, so
// BACKDROP_NODES sets "nodes".
const EnvPrefix = "BACKDROP_"

type kvList []string

func (l *kvList) String() string {
	return strings.Join(*l, ",")
}

func (l *kvList) Set(value string) error {
	*l = append(*l, value)
	return nil
}

// Config represents the command-line parameters shared by the hosts.
type Config struct {
	Width   int
	Height  int
	FPS     int
	Opacity float64
	HUD     bool
	EnvFile string

	Overrides kvList

	// Engine is filled in by Load.
	Engine background.Config
}

// NewConfig returns a Config populated with sensible defaults.
func NewConfig() *Config {
	return &Config{
		Width:   1280,
		Height:  720,
		FPS:     60,
		Opacity: 0.6,
		EnvFile: ".env",
		Engine:  background.DefaultConfig(),
	}
}

// Bind attaches the configuration to the provided FlagSet. -seed and -theme
// are shorthands for the matching -set overrides.
func (c *Config) Bind(fs *flag.FlagSet) {
	fs.IntVar(&c.Width, "width", c.Width, "initial surface width")
	fs.IntVar(&c.Height, "height", c.Height, "initial surface height")
	fs.IntVar(&c.FPS, "fps", c.FPS, "frames per second")
	fs.Float64Var(&c.Opacity, "opacity", c.Opacity, "background layer opacity in [0,1]")
	fs.BoolVar(&c.HUD, "hud", c.HUD, "show the parameter panel on start")
	fs.StringVar(&c.EnvFile, "env", c.EnvFile, "optional .env file with "+EnvPrefix+"* variables")
	fs.Var(&c.Overrides, "set", "engine override in key=value form (repeatable)")
	fs.Func("seed", "seed for entity placement", func(v string) error {
		return c.Overrides.Set("seed=" + v)
	})
	fs.Func("theme", "palette: "+strings.Join(background.ThemeNames(), ", "), func(v string) error {
		return c.Overrides.Set("theme=" + v)
	})
}

// Load resolves the engine configuration. Values from the env file are
// overridden by the process environment, which is in turn overridden by
// -set flags. A missing env file is not an error. Seed 0 picks a seed from
// the clock.
func (c *Config) Load() error {
	return c.load(os.LookupEnv)
}

func (c *Config) load(lookup func(string) (string, bool)) error {
	if c.FPS <= 0 {
		return fmt.Errorf("config: fps must be positive, got %d", c.FPS)
	}
	if c.Width < 0 || c.Height < 0 {
		return fmt.Errorf("config: negative size %dx%d", c.Width, c.Height)
	}
	if c.Opacity < 0 || c.Opacity > 1 {
		return fmt.Errorf("config: opacity %v outside [0,1]", c.Opacity)
	}

	file := map[string]string{}
	if c.EnvFile != "" {
		m, err := godotenv.Read(c.EnvFile)
		switch {
		case err == nil:
			file = m
		case errors.Is(err, fs.ErrNotExist):
		default:
			return fmt.Errorf("config: read %s: %w", c.EnvFile, err)
		}
	}

	values := map[string]string{}
	for _, key := range background.Keys() {
		name := EnvPrefix + strings.ToUpper(key)
		if v, ok := file[name]; ok {
			values[key] = v
		}
		if v, ok := lookup(name); ok {
			values[key] = v
		}
	}

	known := map[string]bool{}
	for _, key := range background.Keys() {
		known[key] = true
	}
	for _, kv := range c.Overrides {
		key, value, ok := strings.Cut(kv, "=")
		if !ok {
			return fmt.Errorf("config: override %q is not key=value", kv)
		}
		key = strings.TrimSpace(key)
		if !known[key] {
			return fmt.Errorf("config: unknown engine key %q", key)
		}
		values[key] = strings.TrimSpace(value)
	}

	c.Engine = background.FromMap(values)
	if c.Engine.Seed == 0 {
		c.Engine.Seed = time.Now().UnixNano()
	}
	return nil
}
