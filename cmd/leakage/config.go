package main

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/cwbudde/algo-leakage/dsp/spectrum"
	"github.com/cwbudde/algo-leakage/dsp/window"
)

const (
	appName   = "leakage"
	envPrefix = "LEAKAGE"
)

var validFormats = []string{"table", "csv", "json", "yaml"}

// Config holds every setting the commands read. Values come, in order of
// precedence, from flags, LEAKAGE_* environment variables, a YAML config file
// and the defaults below.
type Config struct {
	Size         int      `mapstructure:"size" yaml:"size"`
	Period       float64  `mapstructure:"period" yaml:"period"`
	Windows      []string `mapstructure:"windows" yaml:"windows"`
	Periodic     bool     `mapstructure:"periodic" yaml:"periodic"`
	FloorDB      float64  `mapstructure:"floor_db" yaml:"floor_db"`
	Backend      string   `mapstructure:"backend" yaml:"backend"`
	OutputFormat string   `mapstructure:"output_format" yaml:"output_format"`
	Verbose      bool     `mapstructure:"verbose" yaml:"verbose"`
	LogLevel     string   `mapstructure:"log_level" yaml:"log_level"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("size", 32)
	v.SetDefault("period", 10.3)
	v.SetDefault("windows", []string{"rectangular", "hann"})
	v.SetDefault("periodic", false)
	v.SetDefault("floor_db", -120.0)
	v.SetDefault("backend", spectrum.BackendAuto.String())
	v.SetDefault("output_format", "table")
	v.SetDefault("verbose", false)
	v.SetDefault("log_level", "info")
}

// readConfigFile loads the file named by --config, or searches the working
// directory and the user config directory for leakage.yaml. A missing
// default file is not an error.
func readConfigFile(v *viper.Viper, file string) error {
	if file != "" {
		v.SetConfigFile(file)
	} else {
		v.SetConfigName(appName)
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if dir, err := os.UserConfigDir(); err == nil {
			v.AddConfigPath(filepath.Join(dir, appName))
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if file == "" && errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("read config: %w", err)
	}
	return nil
}

func bindEnv(v *viper.Viper) {
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()
}

// loadConfig decodes and validates the merged settings held by v.
func loadConfig(v *viper.Viper) (*Config, error) {
	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unable to decode configuration: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.Size < 1 {
		return fmt.Errorf("size must be positive, got %d", c.Size)
	}

	if math.IsNaN(c.Period) || math.IsInf(c.Period, 0) {
		return fmt.Errorf("period must be finite, got %v", c.Period)
	}

	if len(c.Windows) == 0 {
		return errors.New("at least one window is required")
	}

	if _, err := c.windowTypes(); err != nil {
		return err
	}

	if _, err := spectrum.ParseBackend(c.Backend); err != nil {
		return err
	}

	if c.FloorDB >= 0 || math.IsNaN(c.FloorDB) {
		return fmt.Errorf("floor-db must be negative, got %v", c.FloorDB)
	}

	c.OutputFormat = strings.ToLower(c.OutputFormat)
	for _, f := range validFormats {
		if c.OutputFormat == f {
			return nil
		}
	}
	return fmt.Errorf("unknown output format %q (want one of %s)", c.OutputFormat, strings.Join(validFormats, ", "))
}

func (c *Config) windowTypes() ([]window.Type, error) {
	types := make([]window.Type, 0, len(c.Windows))
	for _, name := range c.Windows {
		t, err := window.ParseType(name)
		if err != nil {
			return nil, err
		}
		if t == window.TypeCosineSum {
			return nil, fmt.Errorf("window %q needs coefficients and is library-only", name)
		}
		types = append(types, t)
	}
	return types, nil
}

func (c *Config) windowOptions() []window.Option {
	if c.Periodic {
		return []window.Option{window.WithPeriodic()}
	}
	return nil
}

func (c *Config) transformer() (spectrum.Transformer, error) {
	b, err := spectrum.ParseBackend(c.Backend)
	if err != nil {
		return nil, err
	}
	return spectrum.NewTransformer(b)
}
