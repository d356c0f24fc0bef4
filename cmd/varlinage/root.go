package main

import (
	"github.com/spf13/cobra"
)

var (
	// configFlag is the CLI --config flag value
	configFlag string
)

var rootCmd = &cobra.Command{
	Use:   "varlinage",
	Short: "varlinage - variable history slicing over execution traces",
	Long: `varlinage explains how a variable acquired its value during one program run.
It links a recorded execution trace into a flow graph and walks it backward from
the register(<name>) call, reporting where tracked values appeared, changed or
crossed a call boundary.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFlag, "config", "", "Config file (yaml, json or toml)")
}
