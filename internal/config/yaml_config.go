package config

import (
	"os"

	"gopkg.in/yaml.v3"

	"launchdash/internal/models"
)

// YAMLConfig represents the structure of the config.yaml file.
// Dashboard layout that's easier to manage in YAML than env vars.
type YAMLConfig struct {
	Sites       []SiteConfig `yaml:"sites"`
	DefaultSite string       `yaml:"default_site"`
	Slider      SliderConfig `yaml:"slider"`
}

// SiteConfig is one entry of the site dropdown.
type SiteConfig struct {
	Name  string `yaml:"name"`            // Value matched against the dataset
	Label string `yaml:"label,omitempty"` // Display text, defaults to Name
}

// SliderConfig defines the payload slider scale in kilograms.
type SliderConfig struct {
	Min  float64 `yaml:"min"`
	Max  float64 `yaml:"max"`
	Step float64 `yaml:"step"`
}

// DefaultSlider matches the original dashboard's payload slider.
var DefaultSlider = SliderConfig{Min: 0, Max: 10000, Step: 1000}

// LoadYAMLConfig loads the YAML configuration file.
// Path is determined by CONFIG_FILE env var, defaulting to "config.yaml".
// Returns nil without error if the config file doesn't exist.
func LoadYAMLConfig() (*YAMLConfig, error) {
	return LoadYAMLConfigFile(getEnv("CONFIG_FILE", "config.yaml"))
}

// LoadYAMLConfigFile loads the YAML configuration from path.
func LoadYAMLConfigFile(path string) (*YAMLConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			// Config file is optional
			return nil, nil
		}
		return nil, err
	}

	var cfg YAMLConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	// Set defaults
	if cfg.DefaultSite == "" {
		cfg.DefaultSite = models.SiteAll
	}
	if cfg.Slider.Max <= cfg.Slider.Min {
		cfg.Slider.Min, cfg.Slider.Max = DefaultSlider.Min, DefaultSlider.Max
	}
	if cfg.Slider.Step <= 0 {
		cfg.Slider.Step = DefaultSlider.Step
	}
	for i := range cfg.Sites {
		if cfg.Sites[i].Label == "" {
			cfg.Sites[i].Label = cfg.Sites[i].Name
		}
	}

	return &cfg, nil
}

// SiteOptions returns the dropdown entries, led by the all-sites option. When
// no sites are configured, fallback names are used.
func (c *YAMLConfig) SiteOptions(fallback []string) []SiteConfig {
	opts := []SiteConfig{{Name: models.SiteAll, Label: "All Sites"}}
	if c == nil || len(c.Sites) == 0 {
		for _, name := range fallback {
			opts = append(opts, SiteConfig{Name: name, Label: name})
		}
		return opts
	}
	return append(opts, c.Sites...)
}

// GetSlider returns the slider scale, or DefaultSlider when unset.
func (c *YAMLConfig) GetSlider() SliderConfig {
	if c == nil {
		return DefaultSlider
	}
	return c.Slider
}

// GetDefaultSite returns the initial site selector.
func (c *YAMLConfig) GetDefaultSite() string {
	if c == nil || c.DefaultSite == "" {
		return models.SiteAll
	}
	return c.DefaultSite
}
