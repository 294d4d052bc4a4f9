package main

import (
	"fmt"
	"os"
	"time"

	"github.com/kevin-cantwell/askcii"
	"gopkg.in/yaml.v2"
)

const (
	defaultConfigPath = "askcii.yaml"
	tokenEnv          = "ASKCII_API_TOKEN"
)

type config struct {
	Model    string        `yaml:"model"`
	Steps    int           `yaml:"steps"`
	Endpoint string        `yaml:"endpoint"`
	Token    string        `yaml:"token"`
	Output   string        `yaml:"output"`
	Ramp     string        `yaml:"ramp"`
	Timeout  time.Duration `yaml:"timeout"`
}

func defaultConfig() config {
	return config{
		Model:    askcii.DefaultModel,
		Steps:    askcii.DefaultSteps,
		Endpoint: askcii.DefaultEndpoint,
		Output:   askcii.DefaultOutputPath,
		Ramp:     askcii.DefaultRamp.String(),
		Timeout:  2 * time.Minute,
	}
}

// loadConfig layers the YAML file at path (or ./askcii.yaml if it exists
// and path is empty) and the token environment variable over the defaults.
// The result is not validated; flags may still override bad values.
func loadConfig(path string) (config, error) {
	cfg := defaultConfig()

	explicit := path != ""
	if !explicit {
		path = defaultConfigPath
	}
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.UnmarshalStrict(data, &cfg); err != nil {
			return cfg, fmt.Errorf("config %s: %w", path, err)
		}
	case explicit || !os.IsNotExist(err):
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}

	if token := os.Getenv(tokenEnv); token != "" {
		cfg.Token = token
	}
	return cfg, nil
}

// flagSource is the part of *cli.Context that applyFlags reads.
type flagSource interface {
	IsSet(name string) bool
	String(name string) string
	Int(name string) int
}

// applyFlags overrides cfg with the flags the user actually passed.
func applyFlags(flags flagSource, cfg *config) {
	if flags.IsSet("model") {
		cfg.Model = flags.String("model")
	}
	if flags.IsSet("steps") {
		cfg.Steps = flags.Int("steps")
	}
	if flags.IsSet("output") {
		cfg.Output = flags.String("output")
	}
}

func (cfg config) validate() error {
	if cfg.Steps <= 0 {
		return fmt.Errorf("config: steps must be positive, got %d", cfg.Steps)
	}
	if cfg.Output == "" {
		return fmt.Errorf("config: output path is empty")
	}
	if _, err := askcii.NewRamp(cfg.Ramp); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}
