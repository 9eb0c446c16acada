package toolbox

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the file form of the ToolBox options.
//
//	strict: false
//	name_mappings:
//	  - func: lookup
//	    schema: search
type Config struct {
	// Strict defaults to true when absent.
	Strict       *bool         `yaml:"strict,omitempty"`
	NameMappings []NameMapping `yaml:"name_mappings,omitempty"`
}

// LoadConfig reads a YAML config file.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read toolbox config %s: %w", path, err)
	}
	cfg, err := ParseConfig(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse toolbox config %s: %w", path, err)
	}
	return cfg, nil
}

// ParseConfig decodes YAML config data and validates it.
func ParseConfig(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks that every name mapping names both sides.
func (c *Config) Validate() error {
	for i, m := range c.NameMappings {
		if m.Func == "" || m.Schema == "" {
			return fmt.Errorf("name_mappings[%d]: func and schema are required", i)
		}
	}
	return nil
}

// Options converts the config into ToolBox options.
func (c *Config) Options() []Option {
	var opts []Option
	if c.Strict != nil {
		opts = append(opts, WithStrict(*c.Strict))
	}
	if len(c.NameMappings) > 0 {
		opts = append(opts, WithNameMappings(c.NameMappings...))
	}
	return opts
}
