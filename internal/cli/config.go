package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

const defaultServerURL = "http://localhost:8000"

// CLIConfig holds the client-side settings saved between runs.
type CLIConfig struct {
	// ServerURL is the API server used by the property commands.
	ServerURL string `yaml:"server_url,omitempty"`

	// Format is the output format used when --format is not given.
	Format string `yaml:"format,omitempty"`

	// ServerConfig is the server config file read by serve, owner and
	// trace when --config is not given.
	ServerConfig string `yaml:"server_config,omitempty"`
}

// settingKeys maps each config key to the field it sets.
var settingKeys = map[string]func(*CLIConfig) *string{
	"server_url":    func(c *CLIConfig) *string { return &c.ServerURL },
	"format":        func(c *CLIConfig) *string { return &c.Format },
	"server_config": func(c *CLIConfig) *string { return &c.ServerConfig },
}

// set assigns value to key after checking it.
func (c *CLIConfig) set(key, value string) error {
	field, ok := settingKeys[key]
	if !ok {
		return fmt.Errorf("unknown key %q (valid: %s)", key, strings.Join(settingKeyNames(), ", "))
	}

	switch key {
	case "format":
		if err := checkFormat(value); err != nil {
			return err
		}
	case "server_url":
		value = strings.TrimRight(value, "/")
	case "server_config":
		if value != "" {
			abs, err := filepath.Abs(value)
			if err != nil {
				return fmt.Errorf("resolving %s: %w", value, err)
			}
			value = abs
		}
	}

	*field(c) = value
	return nil
}

func settingKeyNames() []string {
	names := make([]string, 0, len(settingKeys))
	for k := range settingKeys {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

func checkFormat(f string) error {
	if f != "text" && f != "json" {
		return fmt.Errorf("unknown format %q (valid: text, json)", f)
	}
	return nil
}

// configPath returns ~/.config/rsapi/config.yaml.
func configPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("finding home directory: %w", err)
	}
	return filepath.Join(home, ".config", "rsapi", "config.yaml"), nil
}

// loadConfig reads the saved settings. A missing file yields the zero value.
func loadConfig() (CLIConfig, error) {
	path, err := configPath()
	if err != nil {
		return CLIConfig{}, err
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return CLIConfig{}, nil
	}
	if err != nil {
		return CLIConfig{}, fmt.Errorf("reading %s: %w", path, err)
	}

	var cfg CLIConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return CLIConfig{}, fmt.Errorf("parsing %s: %w", path, err)
	}
	return cfg, nil
}

// saveConfig writes the settings, creating the directory if needed.
func saveConfig(cfg CLIConfig) error {
	path, err := configPath()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

// applySavedDefaults fills --format and --config from the saved settings
// when they were not given on the command line.
func applySavedDefaults(cmd *cobra.Command) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if !flags.Changed("format") && cfg.Format != "" {
		flagFormat = cfg.Format
	}
	if !flags.Changed("config") && cfg.ServerConfig != "" {
		flagConfig = cfg.ServerConfig
	}
	return checkFormat(flagFormat)
}

// getServerURL returns the server URL from RSAPI_SERVER_URL, the saved
// settings, or the default.
func getServerURL() string {
	if v := os.Getenv("RSAPI_SERVER_URL"); v != "" {
		return v
	}
	cfg, err := loadConfig()
	if err == nil && cfg.ServerURL != "" {
		return cfg.ServerURL
	}
	return defaultServerURL
}

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show or change saved CLI settings",
	}
	cmd.AddCommand(newConfigShowCmd(), newConfigSetCmd())
	return cmd
}

func newConfigShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the saved settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if isJSON() {
				return printJSON(cmd.OutOrStdout(), map[string]string{
					"server_url":    cfg.ServerURL,
					"format":        cfg.Format,
					"server_config": cfg.ServerConfig,
				})
			}
			for _, k := range settingKeyNames() {
				fmt.Fprintf(cmd.OutOrStdout(), "%-14s %s\n", k+":", *settingKeys[k](&cfg))
			}
			return nil
		},
	}
}

func newConfigSetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Save a setting (server_url, format, server_config)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if err := cfg.set(args[0], args[1]); err != nil {
				return err
			}
			if err := saveConfig(cfg); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Saved %s.\n", args[0])
			return nil
		},
	}
}
