package config

import (
	_ "embed"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

var defaults = func() Config {
	cfg, err := newDefault()
	if err != nil {
		panic(err)
	}
	return *cfg
}()

func newDefault() (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(defaultsYAML, &cfg); err != nil {
		return nil, err
	}
	if err := validateConfig(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Default returns a copy of the built-in configuration.
func Default() *Config {
	cfg := defaults
	return &cfg
}
