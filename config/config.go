// Package config resolves run settings from defaults, CORELAT_* environment
// variables and command-line flags, in increasing order of precedence.
package config

import (
	"fmt"
	"strings"

	"corelat/constants"
	"corelat/report"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment override, e.g. CORELAT_ITERATIONS.
const EnvPrefix = "CORELAT"

// Setting keys.
const (
	KeyIterations = "iterations"
	KeyFormat     = "format"
	KeyVerbose    = "verbose"
	KeyGC         = "gc"
)

// Config holds the settings that are not positional arguments.
type Config struct {
	Iterations uint64
	Format     report.Format
	Verbose    bool
	GC         bool // Leave the garbage collector enabled during the timed region
}

// New returns a viper instance with defaults and environment binding applied.
func New() *viper.Viper {
	v := viper.New()
	SetDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
	return v
}

// SetDefaults registers the default value of every key.
func SetDefaults(v *viper.Viper) {
	v.SetDefault(KeyIterations, constants.DefaultIterations)
	v.SetDefault(KeyFormat, string(report.Text))
	v.SetDefault(KeyVerbose, false)
	v.SetDefault(KeyGC, false)
}

// Flags registers the command-line flags for every key on fs.
func Flags(fs *pflag.FlagSet) {
	fs.Uint64(KeyIterations, constants.DefaultIterations, "target iteration count (rounds)")
	fs.String(KeyFormat, string(report.Text), `report format: "text" or "json"`)
	fs.BoolP(KeyVerbose, "v", false, "log setup diagnostics to stderr")
	fs.Bool(KeyGC, false, "keep the garbage collector enabled while timing")
}

// Bind makes flags on fs override environment and defaults in v.
func Bind(v *viper.Viper, fs *pflag.FlagSet) error {
	for _, key := range []string{KeyIterations, KeyFormat, KeyVerbose, KeyGC} {
		if err := v.BindPFlag(key, fs.Lookup(key)); err != nil {
			return fmt.Errorf("bind flag %s: %w", key, err)
		}
	}
	return nil
}

// Load reads and validates the resolved settings.
func Load(v *viper.Viper) (Config, error) {
	format, err := report.ParseFormat(v.GetString(KeyFormat))
	if err != nil {
		return Config{}, err
	}
	return Config{
		Iterations: v.GetUint64(KeyIterations),
		Format:     format,
		Verbose:    v.GetBool(KeyVerbose),
		GC:         v.GetBool(KeyGC),
	}, nil
}
