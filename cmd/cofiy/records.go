package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/aretw0/cofiy/pkg/core"
)

var (
	companyID   string
	companyName string

	noteCompany  string
	noteID       string
	noteTitle    string
	noteContent  string
	notePriority string
	noteCategory string

	attachCompany     string
	attachNote        string
	attachFile        string
	attachTitle       string
	attachDescription string
)

var companyCmd = &cobra.Command{
	Use:   "company",
	Short: "Manage companies",
}

var companyAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a company",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := openService()
		if err != nil {
			return err
		}
		id := companyID
		if id == "" {
			id = uuid.NewString()
		}

		err = svc.Update(cmd.Context(), func(doc *core.Document) error {
			return doc.AddCompany(core.Company{ID: id, Name: companyName, CreatedAt: time.Now().UTC()})
		})
		if err != nil {
			return err
		}
		printOK(cmd.OutOrStdout(), "Added company %s (%s)", companyName, id)
		return nil
	},
}

var noteCmd = &cobra.Command{
	Use:   "note",
	Short: "Manage notes",
}

var noteAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a note to a company",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		priority := core.Priority(notePriority)
		switch priority {
		case core.PriorityLow, core.PriorityNormal, core.PriorityMedium, core.PriorityHigh:
		default:
			return fmt.Errorf("priority must be one of low, normal, medium, high")
		}

		svc, err := openService()
		if err != nil {
			return err
		}
		id := noteID
		if id == "" {
			id = uuid.NewString()
		}

		now := time.Now().UTC()
		err = svc.Update(cmd.Context(), func(doc *core.Document) error {
			return doc.AddNote(noteCompany, core.Note{
				ID:        id,
				Title:     noteTitle,
				Content:   noteContent,
				Priority:  priority,
				Category:  noteCategory,
				CreatedAt: now,
				UpdatedAt: now,
			})
		})
		if err != nil {
			return err
		}
		printOK(cmd.OutOrStdout(), "Added note %s to %s", id, noteCompany)
		return nil
	},
}

var attachCmd = &cobra.Command{
	Use:   "attach",
	Short: "Attach a file to a note",
	Long: `Attach a file to a note. The file stays where it is; the store only
records its path. The attachment type is derived from the extension.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := filepath.Abs(attachFile)
		if err != nil {
			return err
		}
		if info, err := os.Stat(path); err != nil {
			return fmt.Errorf("cannot attach %s: %w", attachFile, err)
		} else if info.IsDir() {
			return fmt.Errorf("cannot attach %s: is a directory", attachFile)
		}

		svc, err := openService()
		if err != nil {
			return err
		}
		a := core.NewAttachment(path, attachTitle, attachDescription, time.Now().UTC())
		err = svc.Update(cmd.Context(), func(doc *core.Document) error {
			return doc.AddAttachment(attachCompany, attachNote, a)
		})
		if err != nil {
			return err
		}
		printOK(cmd.OutOrStdout(), "Attached %s (%s) to %s/%s", a.FileName, a.Type, attachCompany, attachNote)
		return nil
	},
}

func init() {
	companyAddCmd.Flags().StringVar(&companyName, "name", "", "Company name")
	companyAddCmd.Flags().StringVar(&companyID, "id", "", "Company id (default: a new UUID)")
	_ = companyAddCmd.MarkFlagRequired("name")
	companyCmd.AddCommand(companyAddCmd)

	noteAddCmd.Flags().StringVar(&noteCompany, "company", "", "Company id")
	noteAddCmd.Flags().StringVar(&noteID, "id", "", "Note id (default: a new UUID)")
	noteAddCmd.Flags().StringVar(&noteTitle, "title", "", "Note title")
	noteAddCmd.Flags().StringVar(&noteContent, "content", "", "Note content")
	noteAddCmd.Flags().StringVar(&notePriority, "priority", string(core.PriorityNormal), "low, normal, medium or high")
	noteAddCmd.Flags().StringVar(&noteCategory, "category", "", "Note category")
	_ = noteAddCmd.MarkFlagRequired("company")
	_ = noteAddCmd.MarkFlagRequired("title")
	noteCmd.AddCommand(noteAddCmd)

	attachCmd.Flags().StringVar(&attachCompany, "company", "", "Company id")
	attachCmd.Flags().StringVar(&attachNote, "note", "", "Note id")
	attachCmd.Flags().StringVar(&attachFile, "file", "", "File to attach")
	attachCmd.Flags().StringVar(&attachTitle, "title", "", "Title (default: file name up to the first dot)")
	attachCmd.Flags().StringVar(&attachDescription, "description", "", "Description")
	_ = attachCmd.MarkFlagRequired("company")
	_ = attachCmd.MarkFlagRequired("note")
	_ = attachCmd.MarkFlagRequired("file")

	rootCmd.AddCommand(companyCmd, noteCmd, attachCmd)
}
