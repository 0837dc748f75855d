package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aretw0/cofiy"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of cofiy",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "cofiy version %s\n", strings.TrimSpace(cofiy.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
