package main

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/aretw0/cofiy/pkg/adapters/fs"
	"github.com/aretw0/cofiy/pkg/core"
)

var (
	exportFormat   string
	exportOutput   string
	exportArchives bool
)

var exportCmd = &cobra.Command{
	Use:   "export [company-id]",
	Short: "Export one company, or all of them, as a bundle",
	Long: `Export one company, or all companies when no id is given.

  --format json  metadata only, attachment paths are kept as they are
  --format zip   metadata plus the attachment files
  --archives     one ZIP per company inside a single archive (backup only)

The bundle is written to --output, or to the suggested name in the export
directory when --output is empty or a directory.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := openService()
		if err != nil {
			return err
		}
		ctx := cmd.Context()
		out := cmd.OutOrStdout()

		if exportArchives {
			res, err := svc.ExportArchives(svc.LoadStore(ctx))
			if err != nil {
				return err
			}
			path, err := writeBundle(res.SuggestedName, res.Data)
			if err != nil {
				return err
			}
			printWarnings(out, res.Warnings)
			printOK(out, "Archived %d companies to %s", res.CompanyCount, path)
			return nil
		}

		format := core.Format(cfg.Export.Format)
		if cmd.Flags().Changed("format") {
			format = core.Format(exportFormat)
		}
		var selected string
		if len(args) == 1 {
			selected = args[0]
		}

		res, err := svc.Export(ctx, format, selected)
		if err != nil {
			return err
		}
		path, err := writeBundle(res.SuggestedName, res.Data)
		if err != nil {
			return err
		}
		printWarnings(out, res.Warnings)
		printOK(out, "Exported %s bundle to %s", format, path)
		return nil
	},
}

// writeBundle resolves the destination and writes data atomically.
func writeBundle(suggested string, data []byte) (string, error) {
	path := exportOutput
	if path == "" {
		path = cfg.Export.Dir
	}
	if info, err := os.Stat(path); err == nil && info.IsDir() {
		path = filepath.Join(path, suggested)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return "", err
	}
	if err := fs.WriteFileAtomic(path, data, 0644); err != nil {
		return "", err
	}
	return path, nil
}

func init() {
	rootCmd.AddCommand(exportCmd)
	exportCmd.Flags().StringVarP(&exportFormat, "format", "f", "zip", "Bundle format: json or zip")
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "Output file or directory")
	exportCmd.Flags().BoolVar(&exportArchives, "archives", false, "Export one archive per company")
	exportCmd.MarkFlagsMutuallyExclusive("archives", "format")
}
