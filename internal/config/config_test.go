package config

import (
	"flag"
	"os"
	"path/filepath"
	"testing"

	"backdrop/internal/background"
)

func env(m map[string]string) func(string) (string, bool) {
	return func(k string) (string, bool) {
		v, ok := m[k]
		return v, ok
	}
}

func TestBindParsesFlags(t *testing.T) {
	c := NewConfig()
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	c.Bind(fs)
	err := fs.Parse([]string{"-width", "800", "-fps", "30", "-hud", "-seed", "7", "-theme", "mono", "-set", "nodes=4"})
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	c.EnvFile = ""
	if err := c.load(env(nil)); err != nil {
		t.Fatalf("load: %v", err)
	}
	if c.Width != 800 || c.FPS != 30 || !c.HUD {
		t.Fatalf("host flags not applied: %+v", c)
	}
	if c.Engine.Seed != 7 || c.Engine.Theme != "mono" || c.Engine.Nodes != 4 {
		t.Fatalf("engine overrides not applied: %+v", c.Engine)
	}
	if c.Engine.Signals != 15 {
		t.Fatalf("untouched key changed: signals=%d", c.Engine.Signals)
	}
}

func TestLoadPrecedence(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "backdrop.env")
	data := "BACKDROP_NODES=12\nBACKDROP_SIGNALS=9\nBACKDROP_THEME=amber\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("write env file: %v", err)
	}

	c := NewConfig()
	c.EnvFile = path
	c.Overrides = kvList{"signals=3"}
	err := c.load(env(map[string]string{"BACKDROP_NODES": "20", "UNRELATED": "x"}))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if c.Engine.Nodes != 20 {
		t.Fatalf("process environment should beat the file: nodes=%d", c.Engine.Nodes)
	}
	if c.Engine.Signals != 3 {
		t.Fatalf("-set should beat the environment: signals=%d", c.Engine.Signals)
	}
	if c.Engine.Theme != "amber" {
		t.Fatalf("file value lost: theme=%q", c.Engine.Theme)
	}
}

func TestLoadMissingEnvFile(t *testing.T) {
	c := NewConfig()
	c.EnvFile = filepath.Join(t.TempDir(), "absent.env")
	if err := c.load(env(nil)); err != nil {
		t.Fatalf("missing env file should be ignored: %v", err)
	}
	if c.Engine != background.DefaultConfig() {
		t.Fatalf("defaults changed: %+v", c.Engine)
	}
}

func TestLoadRejectsBadInput(t *testing.T) {
	cases := map[string]func(*Config){
		"malformed override": func(c *Config) { c.Overrides = kvList{"nodes"} },
		"unknown key":        func(c *Config) { c.Overrides = kvList{"speed=3"} },
		"zero fps":           func(c *Config) { c.FPS = 0 },
		"opacity":            func(c *Config) { c.Opacity = 1.5 },
		"size":               func(c *Config) { c.Height = -1 },
	}
	for name, mutate := range cases {
		c := NewConfig()
		c.EnvFile = ""
		mutate(c)
		if err := c.load(env(nil)); err == nil {
			t.Fatalf("%s: expected an error", name)
		}
	}
}

func TestZeroSeedPicksOne(t *testing.T) {
	c := NewConfig()
	c.EnvFile = ""
	c.Overrides = kvList{"seed=0"}
	if err := c.load(env(nil)); err != nil {
		t.Fatalf("load: %v", err)
	}
	if c.Engine.Seed == 0 {
		t.Fatal("seed 0 was not replaced")
	}
}
