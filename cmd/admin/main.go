package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:          "admin",
	Short:        "Offline tools for the planning service data directory",
	SilenceUsage: true,
}

func init() {
	rootCmd.AddCommand(genRegionCmd, inspectCmd, plansCmd, healthCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
