package cmd

import (
	"fmt"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/Iron-Ham/tripflow/internal/config"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "View or modify tripflow configuration",
	Long: `View or modify tripflow configuration.

Without arguments, displays the current configuration.
Use subcommands to modify settings or create a config file.`,
	RunE: runConfigShow,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	RunE:  runConfigShow,
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration value",
	Long: `Set a configuration value in the user's config file.

Keys use dot notation, e.g.:
  tripflow config set client.base_url http://localhost:9000
  tripflow config set wizard.default_days 5
  tripflow config set logging.level debug

Valid keys:
  server.addr                     - Listen address for 'tripflow serve'
  server.search_cache_ttl_seconds - Location-search cache TTL
  server.max_search_results       - Max candidates per search
  client.base_url                 - Decision-service base URL
  client.timeout_seconds          - Stage request timeout
  wizard.debounce_ms              - Search debounce interval
  wizard.min_query_length         - Min query length for search
  wizard.default_days             - Initial trip duration
  session.state_dir               - Trip state directory
  logging.level                   - debug, info, warn, or error
  logging.dir                     - Log file directory`,
	Args: cobra.ExactArgs(2),
	RunE: runConfigSet,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a default config file",
	Long:  `Create a default config file at ~/.config/tripflow/config.yaml with all available options.`,
	RunE:  runConfigInit,
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Show the config file path",
	RunE:  runConfigPath,
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configPathCmd)
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	cfg := config.Get()

	fmt.Println("Current configuration:")
	fmt.Println()

	// Show where config is being read from
	if viper.ConfigFileUsed() != "" {
		fmt.Printf("Config file: %s\n", viper.ConfigFileUsed())
	} else {
		fmt.Printf("Config file: (none - using defaults)\n")
	}
	fmt.Println()

	fmt.Println("server:")
	fmt.Printf("  addr: %s\n", cfg.Server.Addr)
	fmt.Printf("  search_cache_ttl_seconds: %d\n", cfg.Server.SearchCacheTTLSeconds)
	fmt.Printf("  max_search_results: %d\n", cfg.Server.MaxSearchResults)

	fmt.Println("client:")
	fmt.Printf("  base_url: %s\n", cfg.Client.BaseURL)
	fmt.Printf("  timeout_seconds: %d\n", cfg.Client.TimeoutSeconds)

	fmt.Println("wizard:")
	fmt.Printf("  debounce_ms: %d\n", cfg.Wizard.DebounceMs)
	fmt.Printf("  min_query_length: %d\n", cfg.Wizard.MinQueryLength)
	fmt.Printf("  default_days: %d\n", cfg.Wizard.DefaultDays)

	fmt.Println("session:")
	fmt.Printf("  state_dir: %s\n", cfg.Session.StateDir)

	fmt.Println("logging:")
	fmt.Printf("  level: %s\n", cfg.Logging.Level)
	fmt.Printf("  dir: %s\n", cfg.Logging.Dir)

	return nil
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	key := args[0]
	value := args[1]

	// Validate the key exists
	validKeys := map[string]string{
		"server.addr":                     "string",
		"server.search_cache_ttl_seconds": "int",
		"server.max_search_results":       "int",
		"client.base_url":                 "string",
		"client.timeout_seconds":          "int",
		"wizard.debounce_ms":              "int",
		"wizard.min_query_length":         "int",
		"wizard.default_days":             "int",
		"session.state_dir":               "string",
		"logging.level":                   "string",
		"logging.dir":                     "string",
	}

	keyType, ok := validKeys[key]
	if !ok {
		return fmt.Errorf("unknown configuration key: %s\nRun 'tripflow config set --help' to see valid keys", key)
	}

	// Validate the value based on type
	var typedValue interface{}
	switch keyType {
	case "string":
		if key == "logging.level" && !slices.Contains(config.ValidLogLevels(), strings.ToLower(value)) {
			return fmt.Errorf("invalid value for %s: %s\nValid options: %s",
				key, value, strings.Join(config.ValidLogLevels(), ", "))
		}
		typedValue = value
	case "int":
		intVal, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid value for %s: expected integer", key)
		}
		if intVal < 0 {
			return fmt.Errorf("invalid value for %s: must be non-negative", key)
		}
		typedValue = intVal
	}

	// Ensure config directory exists
	configDir := config.ConfigDir()
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	// Set the value in viper
	viper.Set(key, typedValue)

	// Write to config file
	configFile := config.ConfigFile()
	if err := viper.WriteConfigAs(configFile); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	fmt.Printf("Set %s = %v\n", key, typedValue)
	fmt.Printf("Config saved to %s\n", configFile)

	return nil
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	configDir := config.ConfigDir()
	configFile := config.ConfigFile()

	// Check if config file already exists
	if _, err := os.Stat(configFile); err == nil {
		return fmt.Errorf("config file already exists at %s\nUse 'tripflow config set' to modify values", configFile)
	}

	// Create config directory
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	// Generate a commented config file
	configContent := `# Tripflow Configuration

# Decision-service API server ('tripflow serve')
server:
  # Listen address
  addr: ":8400"
  # How long location-search responses stay cached
  search_cache_ttl_seconds: 300
  # Max candidates returned per search query
  max_search_results: 7

# How the wizard reaches the decision service
client:
  base_url: "http://localhost:8400"
  # Timeout per stage request; a timeout counts as a stage failure
  timeout_seconds: 15

# Interactive wizard behavior
wizard:
  # Quiet interval after a keystroke before a search is dispatched
  debounce_ms: 400
  # Minimum query length that triggers a search
  min_query_length: 2
  # Initial trip duration
  default_days: 3

# Trip state persistence
session:
  # Empty means {config dir}/state
  state_dir: ""

# Structured logging
logging:
  # debug, info, warn, or error
  level: "info"
  # Empty means stderr for the server, the state dir for the wizard
  dir: ""
`

	if err := os.WriteFile(configFile, []byte(configContent), 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	fmt.Printf("Created config file at %s\n", configFile)
	return nil
}

func runConfigPath(cmd *cobra.Command, args []string) error {
	fmt.Println(config.ConfigFile())
	return nil
}
