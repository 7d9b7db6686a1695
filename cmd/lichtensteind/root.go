package main

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile  string
	logLevel string

	vpr = viper.New()
)

// rootCmd is the lichtensteind root command, built in the teacher's
// cobra-wrapping style: PersistentFlags bound directly onto the package's
// own viper instance (config/components/log/config.go's
// RegisterFlag/BindPFlag pattern, minus the nabbar-golib/viper wrapper
// this module doesn't carry).
var rootCmd = &cobra.Command{
	Use:   "lichtensteind",
	Short: "Lichtenstein fabric node client",
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "path to lichtensteind.yaml (default: /etc/lichtenstein/lichtensteind.yaml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level: debug, info, warn, error")

	_ = vpr.BindPFlag("logLevel", rootCmd.PersistentFlags().Lookup("log-level"))

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(versionCmd)
}

func initConfig() {
	if cfgFile != "" {
		vpr.SetConfigFile(cfgFile)
	} else {
		vpr.SetConfigName("lichtensteind")
		vpr.SetConfigType("yaml")
		vpr.AddConfigPath("/etc/lichtenstein")
		vpr.AddConfigPath(".")
	}

	vpr.SetEnvPrefix("LICHTENSTEIN")
	vpr.AutomaticEnv()

	// A missing config file is not fatal here: every key has a flag/env
	// fallback, and loadConfig validates the merged result before run()
	// does any I/O, per spec.md §7's "invalid inputs before any I/O".
	_ = vpr.ReadInConfig()
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
