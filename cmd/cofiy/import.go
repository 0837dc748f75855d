package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/aretw0/cofiy/pkg/core"
)

var importDest string

var importCmd = &cobra.Command{
	Use:   "import <bundle>",
	Short: "Import a JSON or ZIP bundle",
	Long: `Import a bundle. The format comes from the extension (.json or .zip).

Attachments are placed in an attachments/ folder next to the bundle, or
under --dest. JSON bundles skip companies that already exist. A ZIP bundle
holds one company and is refused if that company already exists.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := openService()
		if err != nil {
			return err
		}
		ctx := cmd.Context()
		out := cmd.OutOrStdout()

		var report *core.ImportReport
		if importDest == "" {
			report, err = svc.ImportFile(ctx, args[0])
		} else {
			var format core.Format
			format, err = core.FormatFromPath(args[0])
			if err != nil {
				return err
			}
			var data []byte
			data, err = os.ReadFile(args[0])
			if err != nil {
				return err
			}
			report, err = svc.Import(ctx, data, format, importDest)
		}
		if err != nil {
			return err
		}

		printWarnings(out, report.Warnings)
		for _, c := range report.Skipped {
			warnColor.Fprintf(out, "- skipped %s (%s): already exists\n", c.Name, c.ID)
		}
		if report.NoOp {
			printOK(out, "Nothing to import, all %d companies already exist", len(report.Skipped))
			return nil
		}
		for _, c := range report.Added {
			printOK(out, "Imported %s (%s)", c.Name, c.ID)
		}
		if len(report.Extracted) > 0 {
			dimColor.Fprintf(out, "  %d attachments extracted to %s\n", len(report.Extracted), report.AttachmentsDir)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(importCmd)
	importCmd.Flags().StringVar(&importDest, "dest", "", "Directory receiving the attachments folder (default: the bundle's directory)")
}
