package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/veracitylabs/claimcheck/internal/model"
)

// configCmd represents the config command
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage claimcheck configuration",
	Long: `Manage claimcheck configuration files and settings.

Configuration hierarchy (highest to lowest priority):
1. CLI flags
2. Environment variables (CLAIMCHECK_*, provider API keys)
3. Config file (~/.claimcheck/config.yaml)
4. Defaults`,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := loadConfig()

		if configFile := viper.ConfigFileUsed(); configFile != "" {
			fmt.Fprintf(os.Stderr, "Configuration file: %s\n\n", configFile)
		} else {
			fmt.Fprintf(os.Stderr, "No configuration file found (using defaults)\n\n")
		}

		yamlData, err := yaml.Marshal(cfg)
		if err != nil {
			return fmt.Errorf("error marshaling config: %w", err)
		}
		fmt.Println(string(yamlData))

		fmt.Println("API keys are read from the environment:")
		fmt.Println("  OPENAI_API_KEY   claim classifier")
		fmt.Println("  GEMINI_API_KEY   grounded verifier")
		fmt.Println("  QUOTE_API_KEY    financial data (optional)")
		fmt.Println("  NEWS_API_KEY     news search (optional)")
		fmt.Println("  DATABASE_URL     postgres cache backend")

		return nil
	},
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize default configuration file",
	RunE: func(cmd *cobra.Command, args []string) error {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("error finding home directory: %w", err)
		}

		configDir := home + "/.claimcheck"
		configPath := configDir + "/config.yaml"

		if _, err := os.Stat(configPath); err == nil {
			return fmt.Errorf("config file already exists: %s", configPath)
		}

		if err := os.MkdirAll(configDir, 0755); err != nil {
			return fmt.Errorf("error creating config directory: %w", err)
		}

		yamlData, err := yaml.Marshal(model.DefaultConfig())
		if err != nil {
			return fmt.Errorf("error marshaling config: %w", err)
		}

		header := "# claimcheck configuration file\n" +
			"#\n" +
			"# Configuration hierarchy (highest to lowest priority):\n" +
			"#   1. CLI flags\n" +
			"#   2. Environment variables (CLAIMCHECK_*)\n" +
			"#   3. This config file\n" +
			"#   4. Built-in defaults\n" +
			"#\n" +
			"# API keys come from the environment, never from this file:\n" +
			"#   OPENAI_API_KEY, GEMINI_API_KEY, QUOTE_API_KEY, NEWS_API_KEY, DATABASE_URL\n\n"

		if err := os.WriteFile(configPath, append([]byte(header), yamlData...), 0644); err != nil {
			return fmt.Errorf("error writing config: %w", err)
		}

		fmt.Printf("Created default configuration: %s\n", configPath)
		return nil
	},
}

// loadConfig assembles the effective configuration: defaults, then
// config file / CLAIMCHECK_* values via viper, then API keys from the
// environment.
func loadConfig() model.Config {
	cfg := model.DefaultConfig()

	if v := viper.GetString("server.addr"); v != "" {
		cfg.Server.Addr = v
	}
	if v := viper.GetString("classifier.model"); v != "" {
		cfg.Classifier.Model = v
	}
	if v := viper.GetString("classifier.base_url"); v != "" {
		cfg.Classifier.BaseURL = v
	}
	if v := viper.GetString("verifier.model"); v != "" {
		cfg.Verifier.Model = v
	}
	if v := viper.GetString("financial.base_url"); v != "" {
		cfg.Financial.BaseURL = v
	}
	if v := viper.GetString("news.base_url"); v != "" {
		cfg.News.BaseURL = v
	}
	if v := viper.GetString("cache.backend"); v != "" {
		cfg.Cache.Backend = v
	}
	if v := viper.GetDuration("cache.ttl"); v > 0 {
		cfg.Cache.TTL = v
	}
	if v := viper.GetInt("concurrency.workers"); v > 0 {
		cfg.Concurrency.Workers = v
	}
	if v := viper.GetString("log.level"); v != "" {
		cfg.Log.Level = v
	}
	if v := viper.GetString("log.env"); v != "" {
		cfg.Log.Env = v
	}

	cfg.Classifier.APIKey = os.Getenv("OPENAI_API_KEY")
	cfg.Verifier.APIKey = os.Getenv("GEMINI_API_KEY")
	cfg.Financial.APIKey = os.Getenv("QUOTE_API_KEY")
	cfg.News.APIKey = os.Getenv("NEWS_API_KEY")
	cfg.Cache.DatabaseURL = os.Getenv("DATABASE_URL")

	return cfg
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configInitCmd)
}
