package config

import (
	"os"

	"github.com/san-kum/fluxsim/internal/field"
	"github.com/san-kum/fluxsim/internal/initial"
	"github.com/san-kum/fluxsim/internal/potentials"
	"gopkg.in/yaml.v3"
)

const (
	DefaultScenario = "soliton1d"
	DefaultLength   = 20.0
	DefaultPoints   = 200
	DefaultDt       = 0.01
	DefaultSteps    = 500
	DefaultMass     = 1.0
	DefaultCoupling = 1.0
	DefaultLogEvery = 100
)

type Config struct {
	Scenario   string            `yaml:"scenario"`
	Length     float64           `yaml:"length"`
	Points     []int             `yaml:"points"`
	Dt         float64           `yaml:"dt"`
	Steps      int               `yaml:"steps"`
	Mass       float64           `yaml:"mass"`
	Coupling   float64           `yaml:"coupling"`
	Initial    string            `yaml:"initial"`
	InitParams initial.Params    `yaml:"init_params"`
	Terms      []potentials.Spec `yaml:"terms"`
	LogEvery   int               `yaml:"log_every"`
}

func DefaultConfig() *Config {
	return &Config{
		Scenario: DefaultScenario,
		Length:   DefaultLength,
		Points:   []int{DefaultPoints},
		Dt:       DefaultDt,
		Steps:    DefaultSteps,
		Mass:     DefaultMass,
		Coupling: DefaultCoupling,
		Initial:  "kink",
		LogEvery: DefaultLogEvery,
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Clone returns a deep copy so presets are never mutated by overrides.
func (c *Config) Clone() *Config {
	out := *c
	out.Points = append([]int(nil), c.Points...)
	out.Terms = append([]potentials.Spec(nil), c.Terms...)
	out.InitParams = c.InitParams.Clone()
	return &out
}

func (c *Config) Grid() (*field.Grid, error) {
	return field.NewGrid(c.Length, c.Points...)
}

func (c *Config) Params() field.Params {
	return field.Params{
		Mass:     c.Mass,
		Coupling: c.Coupling,
		Dt:       c.Dt,
		Steps:    c.Steps,
	}
}

// Resize sets every axis to n points while keeping the dimension.
func (c *Config) Resize(n int) {
	for i := range c.Points {
		c.Points[i] = n
	}
}
