// Package config handles application configuration loading and management.
package config

// Config holds all application settings.
type Config struct {
	Sheet   SheetConfig   `yaml:"sheet"`
	Nesting NestingConfig `yaml:"nesting"`
	Output  OutputConfig  `yaml:"output"`
	Server  ServerConfig  `yaml:"server"`
	Logging LoggingConfig `yaml:"logging"`
}

// SheetConfig describes the stock sheets parts are nested onto.
type SheetConfig struct {
	Width  float64 `yaml:"width"`  // mm
	Height float64 `yaml:"height"` // mm
}

// NestingConfig holds nesting parameters.
type NestingConfig struct {
	Spacing float64 `yaml:"spacing"` // manufacturing gap between parts, mm
}

// OutputConfig holds artifact output settings.
type OutputConfig struct {
	Dir string `yaml:"dir"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Addr string `yaml:"addr"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Sheet: SheetConfig{
			Width:  2440.0,
			Height: 1220.0,
		},
		Nesting: NestingConfig{
			Spacing: 8.0,
		},
		Output: OutputConfig{
			Dir: "out",
		},
		Server: ServerConfig{
			Addr: ":8000",
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}
