package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/psantana5/fnmon/pkg/config"
	"github.com/psantana5/fnmon/pkg/logging"
)

var (
	cfgFile      string
	outputFormat string
	cfg          config.Config
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "fnmon",
	Short: "Function execution monitoring toolkit",
	Long: `fnmon wraps ordinary functions with execution timing, memory/CPU
sampling, input/output validation and structured result logging.`,
}

// Execute adds all child commands to the root command and sets flags appropriately
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (YAML, optional)")
	rootCmd.PersistentFlags().StringVar(&outputFormat, "output", "table", "output format: table or json")
}

// initConfig loads wrapper defaults from the config file and environment
func initConfig() {
	if cfgFile != "" {
		loaded, err := config.LoadFile(cfgFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}
		cfg = loaded
	} else {
		cfg = config.Load()
	}

	logging.Init(logging.NewLogger(cfg.LogLevel(), true))
}
