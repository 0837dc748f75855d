package main

import (
	"github.com/spf13/cobra"

	"github.com/aretw0/cofiy/pkg/adapters/fs"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create the data directory and an empty store",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := openService()
		if err != nil {
			return err
		}
		where := cfg.Data.Dir
		if repo, ok := svc.Repository().(*fs.Repository); ok {
			where = repo.DocumentPath()
		}
		printOK(cmd.OutOrStdout(), "Store ready at %s", where)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
