// Package config merges the config file and EOLBOX_* environment
// variables into the parsed flags. Flags given on the command line win.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/sokinpui/eolbox/cli"
)

// Keys of the config file, with the flag each one backs.
var flagKeys = map[string]string{
	"host":             "host",
	"default_eol":      "default-eol",
	"convert_inserted": "convert-inserted",
	"debug":            "debug",
	"log_file":         "log-file",
}

// eolTrackingKey is the positive form of --no-eol-tracking.
const eolTrackingKey = "eol_tracking"

// DefaultPath returns $XDG_CONFIG_HOME/eolbox/config.yaml or its platform
// equivalent.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "eolbox", "config.yaml"), nil
}

// Load applies config file and environment values to cfg. It returns the
// config file used, or "" when there was none.
func Load(cfg *cli.Config, flags *pflag.FlagSet) (string, error) {
	v := viper.New()
	v.SetEnvPrefix("EOLBOX")
	v.AutomaticEnv()

	explicit := cfg.ConfigFile != ""
	path := cfg.ConfigFile
	if !explicit {
		var err error
		if path, err = DefaultPath(); err != nil {
			path = ""
		}
	}

	used := ""
	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType(strings.TrimPrefix(filepath.Ext(path), "."))
		if err := v.ReadInConfig(); err != nil {
			if explicit || !errors.Is(err, os.ErrNotExist) {
				return "", fmt.Errorf("failed to read config %s: %w", path, err)
			}
		} else {
			used = path
		}
	}

	for key, flag := range flagKeys {
		if err := v.BindPFlag(key, flags.Lookup(flag)); err != nil {
			return "", fmt.Errorf("failed to bind flag %s: %w", flag, err)
		}
	}

	cfg.Host = v.GetString("host")
	cfg.DefaultEOL = v.GetString("default_eol")
	cfg.ConvertInserted = v.GetBool("convert_inserted")
	cfg.Debug = v.GetBool("debug")
	cfg.LogFile = v.GetString("log_file")

	if !flags.Changed("no-eol-tracking") && v.IsSet(eolTrackingKey) {
		cfg.NoEOLTracking = !v.GetBool(eolTrackingKey)
	}
	return used, nil
}
