package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/toonvert/toonvert/internal/style"
)

// Tuning overrides a subset of one style's parameters. Zero fields leave
// the built-in value in place.
type Tuning struct {
	Clusters   int     `yaml:"clusters"`
	Saturation float64 `yaml:"saturation"`
	Brightness float64 `yaml:"brightness"`
	Lightness  float64 `yaml:"lightness"`
	SmoothOver int     `yaml:"smoothing_passes"`
}

type tuningFile struct {
	Styles map[string]Tuning `yaml:"styles"`
}

// ApplyTuning reads a YAML tuning file and re-registers the named styles
// with the overridden parameters. Naming a style the registry does not
// know is an error so typos surface at startup, not at request time.
func ApplyTuning(reg *style.Registry, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("style tuning: %w", err)
	}

	var tf tuningFile
	if err := yaml.Unmarshal(data, &tf); err != nil {
		return fmt.Errorf("style tuning %s: %w", path, err)
	}

	for name, t := range tf.Styles {
		cfg, err := reg.Resolve(name)
		if err != nil {
			return fmt.Errorf("style tuning %s: %w", path, err)
		}
		if t.Clusters > 0 {
			cfg.Quant.K = t.Clusters
		}
		if t.Saturation > 0 {
			cfg.Enhance.SatScale = t.Saturation
		}
		if t.Brightness > 0 {
			cfg.Enhance.ValScale = t.Brightness
		}
		if t.Lightness > 0 {
			cfg.Enhance.LightScale = t.Lightness
		}
		if t.SmoothOver > 0 {
			cfg.Smooth.Passes = t.SmoothOver
		}
		reg.Register(cfg)
	}
	return nil
}
