package facecensoring

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"thaitanloi365/go-face-censor/mode"
	"thaitanloi365/go-face-censor/region"
)

// Config config
type Config struct {
	Angle        float64 `yaml:"angle"`
	CascadeFile  string  `yaml:"cascade"`
	Puploc       string  `yaml:"puploc"`
	Flploc       string  `yaml:"flploc"`
	MinSize      int     `yaml:"min_size"`
	MaxSize      int     `yaml:"max_size"`
	ShiftFactor  float64 `yaml:"shift_factor"`
	ScaleFactor  float64 `yaml:"scale_factor"`
	IouThreshold float64 `yaml:"iou_threshold"`
	MinQuality   float32 `yaml:"min_quality"`
	Perturbs     int     `yaml:"perturbs"`
	Padding      float64 `yaml:"padding"`
	Mode         string  `yaml:"mode"`
	Workers      int     `yaml:"workers"`
	MarkRegions  bool    `yaml:"mark_regions"`
}

// LoadConfig reads a YAML config file. Missing values keep their defaults.
func LoadConfig(fileName string) (*Config, error) {
	data, err := os.ReadFile(fileName)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", fileName, err)
	}

	var c Config
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", fileName, err)
	}

	c.applyDefaults()

	return &c, nil
}

func (c *Config) applyDefaults() {
	if c.MinSize == 0 {
		c.MinSize = 20
	}

	if c.MaxSize == 0 {
		c.MaxSize = 1000
	}

	if c.ShiftFactor == 0 {
		c.ShiftFactor = 0.1
	}

	if c.ScaleFactor == 0 {
		c.ScaleFactor = 1.1
	}

	if c.IouThreshold == 0 {
		c.IouThreshold = 0.2
	}

	if c.MinQuality == 0 {
		c.MinQuality = 5.0
	}

	if c.Perturbs == 0 {
		c.Perturbs = 63
	}

	if c.Padding == 0 {
		c.Padding = region.DefaultPadding
	}

	if c.Mode == "" {
		c.Mode = string(mode.Default)
	}

	if c.Workers < 1 {
		c.Workers = 1
	}
}
