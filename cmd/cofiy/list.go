package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var (
	listJSON bool
	listYAML bool
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List companies with their notes",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := openService()
		if err != nil {
			return err
		}
		doc := svc.LoadStore(cmd.Context())
		out := cmd.OutOrStdout()

		switch {
		case listJSON:
			encoder := json.NewEncoder(out)
			encoder.SetIndent("", "  ")
			return encoder.Encode(doc)
		case listYAML:
			encoder := yaml.NewEncoder(out)
			encoder.SetIndent(2)
			if err := encoder.Encode(doc); err != nil {
				return err
			}
			return encoder.Close()
		}

		if len(doc.Companies) == 0 {
			dimColor.Fprintln(out, "No companies yet.")
			return nil
		}
		for _, c := range doc.Companies {
			fmt.Fprintf(out, "%s  %s (%d notes, %d attachments)\n", c.ID, c.Name, len(c.Notes), c.AttachmentCount())
			for _, n := range c.Notes {
				fmt.Fprintf(out, "    %s  [%s] %s\n", n.ID, n.Priority, n.Title)
				for _, a := range n.Attachments {
					dimColor.Fprintf(out, "        %s (%s) %s\n", a.Title, a.Type, a.FilePath)
				}
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
	listCmd.Flags().BoolVar(&listJSON, "json", false, "Output in JSON format")
	listCmd.Flags().BoolVar(&listYAML, "yaml", false, "Output in YAML format")
	listCmd.MarkFlagsMutuallyExclusive("json", "yaml")
}
