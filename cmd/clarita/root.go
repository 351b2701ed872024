package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "clarita",
	Short: "Clarita turns feature requests into development tickets",
	Long: `Clarita analyzes free-text feature requests, asks clarifying questions
when details are missing, and generates a structured set of development
tickets once enough is known. Suspended conversations persist across
invocations and transports.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "Path to a YAML config file")
	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug logging")
}
