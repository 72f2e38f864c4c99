package main

import (
	"fmt"
	"strings"

	"github.com/aretw0/todolists"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of todolists",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "todolists version %s\n", strings.TrimSpace(todolists.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
