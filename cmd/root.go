package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	scanDir string
	cfgFile string
)

var RootCmd = &cobra.Command{
	Use:   "sql-audit",
	Short: "A SQL schema audit and documentation tool",
	Long: `
  ____   ___  _          _   _   _ ____ ___ _____
 / ___| / _ \| |        / \ | | | |  _ \_ _|_   _|
 \___ \| | | | |       / _ \| | | | | | | |  | |
  ___) | |_| | |___   / ___ \ |_| | |_| | |  | |
 |____/ \__\_\_____| /_/   \_\___/|____/___| |_|

SQL AUDIT 🔍 - Static Schema Analyzer & Report Generator
`,
}

func Execute() {
	if err := RootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	// Define flags
	RootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./sql-audit.yaml)")
	RootCmd.PersistentFlags().StringVar(&scanDir, "dir", "", "Directory scanned for .sql files")

	// Bind dir flag to viper
	viper.BindPFlag("scan.dir", RootCmd.PersistentFlags().Lookup("dir"))

	// Set default for Viper (fallback if no config/flag)
	viper.SetDefault("scan.dir", ".")
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		// 1. Executable Directory (Priority 1)
		ex, err := os.Executable()
		if err == nil {
			exePath := filepath.Dir(ex)
			viper.AddConfigPath(exePath)
		}

		// 2. Current Directory (Priority 2)
		viper.AddConfigPath(".")

		viper.SetConfigName("sql-audit")
		viper.SetConfigType("yaml")
	}

	viper.AutomaticEnv() // read in environment variables that match

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err == nil {
		fmt.Println("Using config file:", viper.ConfigFileUsed())
	}
}
