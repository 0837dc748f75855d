package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aretw0/cofiy/pkg/core"
)

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Find companies and notes containing the query",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := openService()
		if err != nil {
			return err
		}
		results := svc.Search(cmd.Context(), strings.Join(args, " "))
		out := cmd.OutOrStdout()
		if len(results) == 0 {
			dimColor.Fprintln(out, "No matches.")
			return nil
		}
		for _, r := range results {
			switch r.Kind {
			case core.ResultCompany:
				fmt.Fprintf(out, "company  %s  %s\n", r.Company.ID, r.Title())
			case core.ResultNote:
				fmt.Fprintf(out, "note     %s/%s  %s\n", r.Company.ID, r.Note.ID, r.Title())
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(searchCmd)
}
