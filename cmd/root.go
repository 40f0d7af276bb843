// Package cmd wires the correction pipeline into a cobra CLI, the way
// jjti-repp/cmd builds plade's subcommands around a shared rootCmd with
// viper-bound persistent flags.
package cmd

import (
	"log"

	"github.com/spf13/cobra"
)

var settingsFile string

// rootCmd is the base command when seqcore is called without subcommands.
var rootCmd = &cobra.Command{
	Use:     "seqcore",
	Short:   "Error-correct short sequencing reads against a k-mer spectrum and overlap evidence",
	Version: "0.1.0",
}

// Execute runs the root command. Called once from main.main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		log.Fatalf("%v", err)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&settingsFile, "settings", "s", "", "path to a correction settings file (YAML/JSON/TOML)")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(archiveCmd)
}
