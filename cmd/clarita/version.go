package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/clarita-pm/clarita"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of clarita",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("clarita version %s\n", strings.TrimSpace(clarita.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
