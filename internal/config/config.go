package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"

	"github.com/zavul0nn/portreclaim/internal/inspector"
	"github.com/zavul0nn/portreclaim/internal/terminator"
)

// DefaultPort is the port reclaimed when neither flag nor config names one.
const DefaultPort = 5000

// FileConfig represents the top-level TOML structure.
type FileConfig struct {
	Reclaim ReclaimConfig `toml:"reclaim" mapstructure:"reclaim"`
	Log     LogConfig     `toml:"log" mapstructure:"log"`
	Metrics MetricsConfig `toml:"metrics" mapstructure:"metrics"`
}

type ReclaimConfig struct {
	Port      int           `toml:"port" mapstructure:"port"`
	GraceWait time.Duration `toml:"grace_wait" mapstructure:"grace_wait"`
	KillWait  time.Duration `toml:"kill_wait" mapstructure:"kill_wait"`
	Backends  []string      `toml:"backends" mapstructure:"backends"`
}

type LogConfig struct {
	Level      string `toml:"level" mapstructure:"level"`
	Format     string `toml:"format" mapstructure:"format"`
	Color      bool   `toml:"color" mapstructure:"color"`
	File       string `toml:"file" mapstructure:"file"`
	MaxSizeMB  int    `toml:"max_size_mb" mapstructure:"max_size_mb"`
	MaxBackups int    `toml:"max_backups" mapstructure:"max_backups"`
	MaxAgeDays int    `toml:"max_age_days" mapstructure:"max_age_days"`
	Compress   bool   `toml:"compress" mapstructure:"compress"`
}

type MetricsConfig struct {
	PushgatewayURL string `toml:"pushgateway_url" mapstructure:"pushgateway_url"`
	Job            string `toml:"job" mapstructure:"job"`
}

// Default returns a FileConfig with every knob at its built-in value.
func Default() FileConfig {
	return FileConfig{
		Reclaim: ReclaimConfig{
			Port:      DefaultPort,
			GraceWait: terminator.DefaultGraceWait,
			KillWait:  terminator.DefaultKillWait,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
			Color:  true,
		},
		Metrics: MetricsConfig{
			Job: "portreclaim",
		},
	}
}

// Load parses a TOML config file, layering it over Default. Unset fields
// keep their defaults.
func Load(path string) (FileConfig, error) {
	fc := Default()
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("toml")
	if err := v.ReadInConfig(); err != nil {
		return fc, err
	}
	if err := v.Unmarshal(&fc); err != nil {
		return fc, err
	}
	if err := fc.Validate(); err != nil {
		return fc, err
	}
	return fc, nil
}

// Validate checks ranges and backend names.
func (fc FileConfig) Validate() error {
	if fc.Reclaim.Port < 1 || fc.Reclaim.Port > 65535 {
		return fmt.Errorf("port %d out of range 1..65535", fc.Reclaim.Port)
	}
	if fc.Reclaim.GraceWait < 0 {
		return fmt.Errorf("grace_wait cannot be negative")
	}
	if fc.Reclaim.KillWait < 0 {
		return fmt.Errorf("kill_wait cannot be negative")
	}
	if _, err := Backends(fc.Reclaim.Backends); err != nil {
		return err
	}
	return nil
}

// Backends maps configured backend names to implementations, preserving
// order. An empty list selects the default chain.
func Backends(names []string) ([]inspector.Backend, error) {
	if len(names) == 0 {
		return inspector.DefaultBackends(), nil
	}
	out := make([]inspector.Backend, 0, len(names))
	for _, name := range names {
		switch name {
		case "lsof":
			out = append(out, inspector.LsofBackend{})
		case "fuser":
			out = append(out, inspector.FuserBackend{})
		case "netstat":
			out = append(out, inspector.NetstatBackend{})
		case "ss":
			out = append(out, inspector.SsBackend{})
		default:
			return nil, fmt.Errorf("unknown discovery backend %q (want lsof, fuser, netstat or ss)", name)
		}
	}
	return out, nil
}
