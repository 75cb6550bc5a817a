package config

// RawLoggingConfig mirrors LoggingConfig with optional fields.
type RawLoggingConfig struct {
	Level *string `yaml:"level"`
	File  *string `yaml:"file"`
}

type RawBenchConfig struct {
	Iterations *int `yaml:"iterations"`
	Warmup     *int `yaml:"warmup"`
}

// RawConfig is one YAML file as written: nil means "not set here".
type RawConfig struct {
	Display  *string           `yaml:"display"`
	Stacking *string           `yaml:"stacking"`
	Output   *OutputMode       `yaml:"output"`
	Color    *ColorMode        `yaml:"color"`
	Logging  *RawLoggingConfig `yaml:"logging"`
	Bench    *RawBenchConfig   `yaml:"bench"`
}

// apply writes every set field of c onto cfg.
func (c RawConfig) apply(cfg *Config) {
	if c.Display != nil {
		cfg.Display = *c.Display
	}
	if c.Stacking != nil {
		cfg.Stacking = *c.Stacking
	}
	if c.Output != nil {
		cfg.Output = normalizeEnum(*c.Output)
	}
	if c.Color != nil {
		cfg.Color = normalizeEnum(*c.Color)
	}
	if c.Logging != nil {
		if c.Logging.Level != nil {
			cfg.Logging.Level = *c.Logging.Level
		}
		if c.Logging.File != nil {
			cfg.Logging.File = *c.Logging.File
		}
	}
	if c.Bench != nil {
		if c.Bench.Iterations != nil {
			cfg.Bench.Iterations = *c.Bench.Iterations
		}
		if c.Bench.Warmup != nil {
			cfg.Bench.Warmup = *c.Bench.Warmup
		}
	}
}
