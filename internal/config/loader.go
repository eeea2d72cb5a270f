package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// InitViper initializes Viper with the configuration file and environment
// variables. If configFile is empty, it searches for peopledesk.yaml/.yml
// in standard locations. The search requires an explicit YAML extension to
// avoid matching the binary itself.
func InitViper(configFile string) {
	if configFile != "" {
		viper.SetConfigFile(configFile)
	} else if found := findConfigFile(); found != "" {
		viper.SetConfigFile(found)
	} else {
		// No config file found in any standard location. Set name/type
		// without search paths so ReadInConfig returns
		// ConfigFileNotFoundError (handled gracefully by callers).
		viper.SetConfigName("peopledesk")
		viper.SetConfigType("yaml")
	}

	// Environment variable support: PEOPLEDESK_STORE_BACKEND etc.
	viper.SetEnvPrefix("PEOPLEDESK")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	viper.AutomaticEnv()

	bindNestedEnvKeys()
}

// findConfigFile searches standard locations for a peopledesk config file
// with an explicit YAML extension (.yaml or .yml).
func findConfigFile() string {
	home, _ := os.UserHomeDir()
	paths := []string{
		".",
		filepath.Join(home, ".peopledesk"),
		"/etc/peopledesk",
	}
	for _, dir := range paths {
		for _, ext := range []string{".yaml", ".yml"} {
			path := filepath.Join(dir, "peopledesk"+ext)
			if _, err := os.Stat(path); err == nil {
				return path
			}
		}
	}
	return ""
}

// bindNestedEnvKeys binds all config keys for environment variable support.
// Example: PEOPLEDESK_SESSION_TIMEOUT overrides session.timeout.
func bindNestedEnvKeys() {
	_ = viper.BindEnv("store.backend")
	_ = viper.BindEnv("store.path")
	_ = viper.BindEnv("store.namespace")
	_ = viper.BindEnv("session.timeout")
	_ = viper.BindEnv("log_level")
	_ = viper.BindEnv("late_threshold")
}
