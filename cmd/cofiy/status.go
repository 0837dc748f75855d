package main

import (
	"encoding/json"
	"fmt"

	"github.com/aretw0/introspection"
	"github.com/spf13/cobra"

	"github.com/aretw0/cofiy/pkg/adapters/fs"
)

var statusJSON bool

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show where the store lives and what it holds",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := openService()
		if err != nil {
			return err
		}
		sum := svc.Summary(cmd.Context())
		out := cmd.OutOrStdout()

		if statusJSON {
			encoder := json.NewEncoder(out)
			encoder.SetIndent("", "  ")
			return encoder.Encode(map[string]any{
				"summary":    sum,
				"service":    svc.State(),
				"repository": introspect(svc.Repository()),
			})
		}

		if repo, ok := svc.Repository().(*fs.Repository); ok {
			fmt.Fprintf(out, "Store:       %s\n", repo.DocumentPath())
			if repo.IsReadOnly() {
				warnColor.Fprintln(out, "Mode:        read-only")
			}
		}
		fmt.Fprintf(out, "Companies:   %d\n", sum.Companies)
		fmt.Fprintf(out, "Notes:       %d\n", sum.Notes)
		fmt.Fprintf(out, "Attachments: %d\n", sum.Attachments)
		return nil
	},
}

func introspect(v any) any {
	if s, ok := v.(introspection.Introspectable); ok {
		return s.State()
	}
	return nil
}

func init() {
	rootCmd.AddCommand(statusCmd)
	statusCmd.Flags().BoolVar(&statusJSON, "json", false, "Output in JSON format")
}
