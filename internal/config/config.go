// Package config loads roshambo settings from an HCL file with environment
// overrides.
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/caarlos0/env/v11"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/hashicorp/hcl/v2/hclwrite"
	"github.com/zclconf/go-cty/cty"

	"github.com/lox/roshambo/internal/fileutil"
	"github.com/lox/roshambo/internal/game"
)

// DefaultFilename is looked up in the working directory when no path is given.
const DefaultFilename = "roshambo.hcl"

// Config represents the complete configuration
type Config struct {
	Game   *GameSettings   `hcl:"game,block"`
	UI     *UISettings     `hcl:"ui,block"`
	Server *ServerSettings `hcl:"server,block"`
}

// GameSettings configures the engine
type GameSettings struct {
	TotalRounds int    `hcl:"total_rounds,optional"`
	Seed        *int64 `hcl:"seed,optional"`
}

// UISettings contains logging and presentation settings
type UISettings struct {
	LogLevel string `hcl:"log_level,optional"`
	LogFile  string `hcl:"log_file,optional"`
	Theme    string `hcl:"theme,optional"`
}

// ServerSettings configures the browser shell
type ServerSettings struct {
	Address string `hcl:"address,optional"`
	Port    int    `hcl:"port,optional"`
}

// envOverrides are read from the process environment after the file.
type envOverrides struct {
	TotalRounds int    `env:"ROSHAMBO_TOTAL_ROUNDS"`
	LogLevel    string `env:"ROSHAMBO_LOG_LEVEL"`
	Address     string `env:"ROSHAMBO_ADDRESS"`
	Port        int    `env:"ROSHAMBO_PORT"`
}

// Default returns the default configuration
func Default() *Config {
	return &Config{
		Game: &GameSettings{
			TotalRounds: game.DefaultTotalRounds,
		},
		UI: &UISettings{
			LogLevel: "info",
			LogFile:  "roshambo.log",
			Theme:    "default",
		},
		Server: &ServerSettings{
			Address: "localhost",
			Port:    8080,
		},
	}
}

// Load reads filename, fills in defaults and applies environment
// overrides. A missing file is not an error.
func Load(filename string) (*Config, error) {
	return load(filename, nil)
}

// LoadWithEnv is Load with an explicit environment instead of os.Environ.
func LoadWithEnv(filename string, environ map[string]string) (*Config, error) {
	if environ == nil {
		environ = map[string]string{}
	}
	return load(filename, environ)
}

func load(filename string, environ map[string]string) (*Config, error) {
	cfg := &Config{}

	_, err := os.Stat(filename)
	switch {
	case errors.Is(err, os.ErrNotExist):
		cfg = Default()
	case err != nil:
		return nil, fmt.Errorf("failed to stat config file: %w", err)
	default:
		parser := hclparse.NewParser()
		file, diags := parser.ParseHCLFile(filename)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
		}
		if diags := gohcl.DecodeBody(file.Body, nil, cfg); diags.HasErrors() {
			return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
		}
		cfg.applyDefaults()
	}

	if err := cfg.applyEnv(environ); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyDefaults() {
	defaults := Default()

	if c.Game == nil {
		c.Game = defaults.Game
	}
	if c.Game.TotalRounds == 0 {
		c.Game.TotalRounds = defaults.Game.TotalRounds
	}

	if c.UI == nil {
		c.UI = defaults.UI
	}
	if c.UI.LogLevel == "" {
		c.UI.LogLevel = defaults.UI.LogLevel
	}
	if c.UI.LogFile == "" {
		c.UI.LogFile = defaults.UI.LogFile
	}
	if c.UI.Theme == "" {
		c.UI.Theme = defaults.UI.Theme
	}

	if c.Server == nil {
		c.Server = defaults.Server
	}
	if c.Server.Address == "" {
		c.Server.Address = defaults.Server.Address
	}
	if c.Server.Port == 0 {
		c.Server.Port = defaults.Server.Port
	}
}

func (c *Config) applyEnv(environ map[string]string) error {
	var overrides envOverrides
	opts := env.Options{}
	if environ != nil {
		opts.Environment = environ
	}
	if err := env.ParseWithOptions(&overrides, opts); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}

	if overrides.TotalRounds != 0 {
		c.Game.TotalRounds = overrides.TotalRounds
	}
	if overrides.LogLevel != "" {
		c.UI.LogLevel = overrides.LogLevel
	}
	if overrides.Address != "" {
		c.Server.Address = overrides.Address
	}
	if overrides.Port != 0 {
		c.Server.Port = overrides.Port
	}
	return nil
}

// Validate checks the configuration for values the shells cannot use.
func (c *Config) Validate() error {
	if c.Game.TotalRounds < 1 {
		return fmt.Errorf("total rounds must be at least 1, got %d", c.Game.TotalRounds)
	}

	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLogLevels[c.UI.LogLevel] {
		return fmt.Errorf("invalid log level: %s", c.UI.LogLevel)
	}

	validThemes := map[string]bool{
		"default": true,
		"dark":    true,
		"light":   true,
	}
	if !validThemes[c.UI.Theme] {
		return fmt.Errorf("invalid theme: %s", c.UI.Theme)
	}

	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server port out of range: %d", c.Server.Port)
	}
	return nil
}

// Addr returns the listen address for the browser shell.
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Server.Address, c.Server.Port)
}

// Encode renders the configuration as HCL.
func (c *Config) Encode() []byte {
	f := hclwrite.NewEmptyFile()
	root := f.Body()

	gameBody := root.AppendNewBlock("game", nil).Body()
	gameBody.SetAttributeValue("total_rounds", cty.NumberIntVal(int64(c.Game.TotalRounds)))
	if c.Game.Seed != nil {
		gameBody.SetAttributeValue("seed", cty.NumberIntVal(*c.Game.Seed))
	}
	root.AppendNewline()

	uiBody := root.AppendNewBlock("ui", nil).Body()
	uiBody.SetAttributeValue("log_level", cty.StringVal(c.UI.LogLevel))
	uiBody.SetAttributeValue("log_file", cty.StringVal(c.UI.LogFile))
	uiBody.SetAttributeValue("theme", cty.StringVal(c.UI.Theme))
	root.AppendNewline()

	serverBody := root.AppendNewBlock("server", nil).Body()
	serverBody.SetAttributeValue("address", cty.StringVal(c.Server.Address))
	serverBody.SetAttributeValue("port", cty.NumberIntVal(int64(c.Server.Port)))

	return f.Bytes()
}

// Write stores the configuration at filename, replacing any existing file
// atomically.
func (c *Config) Write(filename string) error {
	if err := fileutil.WriteFileAtomic(filename, c.Encode(), 0o644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}
