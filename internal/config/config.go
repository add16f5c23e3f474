// Package config loads listr settings from flags, environment variables and
// an optional YAML file, in that order of precedence.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	appDir     = ".listr"
	configName = "config"
	dbFile     = "listr.db"
)

// Config holds the resolved settings
type Config struct {
	// DBPath is the SQLite file holding tasks and history.
	DBPath string
	// Verbose enables SQL tracing on stderr.
	Verbose bool
	// ClearRedoOnWrite empties the redo log whenever a new mutation is made.
	ClearRedoOnWrite bool
}

// DefaultDir returns ~/.listr
func DefaultDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, appDir), nil
}

// Load resolves the configuration. dir is searched for config.yaml and is
// the home of the default database. flags may be nil; when given, its "db"
// and "verbose" flags take precedence over every other source.
func Load(dir string, flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	v.SetConfigName(configName)
	v.SetConfigType("yaml")
	v.AddConfigPath(dir)

	v.SetDefault("db_path", filepath.Join(dir, dbFile))
	v.SetDefault("verbose", false)
	v.SetDefault("history.clear_redo_on_write", true)

	// DB_PATH is kept for databases created by earlier releases.
	if err := v.BindEnv("db_path", "LISTR_DB_PATH", "DB_PATH"); err != nil {
		return nil, err
	}
	if err := v.BindEnv("verbose", "LISTR_VERBOSE"); err != nil {
		return nil, err
	}
	if err := v.BindEnv("history.clear_redo_on_write", "LISTR_CLEAR_REDO_ON_WRITE"); err != nil {
		return nil, err
	}

	if flags != nil {
		for key, name := range map[string]string{"db_path": "db", "verbose": "verbose"} {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, err
				}
			}
		}
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading %s.yaml: %w", configName, err)
		}
	}

	cfg := &Config{
		DBPath:           expandHome(v.GetString("db_path")),
		Verbose:          v.GetBool("verbose"),
		ClearRedoOnWrite: v.GetBool("history.clear_redo_on_write"),
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate reports settings that cannot be used.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.DBPath) == "" {
		return fmt.Errorf("db_path must not be empty")
	}
	return nil
}

func expandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(homeDir, strings.TrimPrefix(path, "~"))
}
