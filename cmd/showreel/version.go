package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/pders01/showreel/internal/config"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("showreel %s\n", Version)
		fmt.Println("Agency showreel")
		fmt.Println("github.com/pders01/showreel")
	},
}

var forceConfig bool

var configGenCmd = &cobra.Command{
	Use:   "generate-config",
	Short: "Generate default config file",
	Run: func(cmd *cobra.Command, args []string) {
		home, _ := os.UserHomeDir()
		configFile := filepath.Join(home, ".config", "showreel", "config.toml")

		if _, err := os.Stat(configFile); err == nil && !forceConfig {
			fmt.Printf("Config already exists at: %s (use --force to overwrite)\n", configFile)
			return
		}
		if err := os.MkdirAll(filepath.Dir(configFile), 0o755); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to create config directory: %v\n", err)
			return
		}
		if err := config.GenerateDefaultConfig(configFile); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to generate config: %v\n", err)
			return
		}
		fmt.Printf("Generated default configuration at: %s\n", configFile)
	},
}

func init() {
	configGenCmd.Flags().BoolVar(&forceConfig, "force", false, "Overwrite an existing config file")
	rootCmd.AddCommand(versionCmd, configGenCmd)
}
