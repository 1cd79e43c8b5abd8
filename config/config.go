package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"

	"github.com/milk9111/blocklevel/common"
	"github.com/milk9111/blocklevel/obj"
	"github.com/milk9111/blocklevel/tile"
	"gopkg.in/yaml.v3"
)

//go:embed default.yaml
var defaultYAML []byte

var ErrInvalidConfig = errors.New("config: invalid value")

// Config holds the level build settings.
type Config struct {
	TargetHeight    float64 `yaml:"target_height"`
	StripCells      int     `yaml:"strip_cells"`
	BreakDuration   float64 `yaml:"break_duration"`
	ScanOrder       string  `yaml:"scan_order"`
	SplitBreakables bool    `yaml:"split_breakables"`
	// Textures maps a tile type name to an image path.
	Textures map[string]string `yaml:"textures"`
}

// Default returns the embedded defaults.
func Default() *Config {
	var cfg Config
	if err := yaml.Unmarshal(defaultYAML, &cfg); err != nil {
		panic(fmt.Sprintf("config: embedded default.yaml: %v", err))
	}
	return &cfg
}

// Load reads the YAML file at path over the defaults. Keys missing from the
// file keep their default; texture entries are merged by type name. An empty
// path returns the defaults.
func Load(path string) (*Config, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: load %s: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes data over the defaults and validates the result.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: unmarshal: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if !(c.TargetHeight > 0) || !common.Finite(c.TargetHeight) {
		return fmt.Errorf("%w: target_height %g", ErrInvalidConfig, c.TargetHeight)
	}
	if c.StripCells <= 0 {
		return fmt.Errorf("%w: strip_cells %d", ErrInvalidConfig, c.StripCells)
	}
	if !(c.BreakDuration > 0) || !common.Finite(c.BreakDuration) {
		return fmt.Errorf("%w: break_duration %g", ErrInvalidConfig, c.BreakDuration)
	}
	if _, err := tile.ParseScanOrder(c.ScanOrder); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if _, err := c.TexturePaths(); err != nil {
		return err
	}
	return nil
}

// TexturePaths resolves the texture table keys to tile types.
func (c *Config) TexturePaths() (map[tile.Type]string, error) {
	out := make(map[tile.Type]string, len(c.Textures))
	for name, path := range c.Textures {
		t, err := tile.ParseType(name)
		if err != nil {
			return nil, fmt.Errorf("%w: textures: %v", ErrInvalidConfig, err)
		}
		if t == tile.Spawn {
			return nil, fmt.Errorf("%w: textures: spawn cells are never drawn", ErrInvalidConfig)
		}
		out[t] = path
	}
	return out, nil
}

// BuildOptions converts the config for obj.Build. textures may be nil.
func (c *Config) BuildOptions(textures obj.TextureLookup) obj.BuildOptions {
	order, _ := tile.ParseScanOrder(c.ScanOrder)
	return obj.BuildOptions{
		StripCells:      c.StripCells,
		BreakDuration:   c.BreakDuration,
		Order:           order,
		SplitBreakables: c.SplitBreakables,
		Textures:        textures,
	}
}
