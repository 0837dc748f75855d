package bundle

import (
	"archive/zip"
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"time"

	"github.com/aretw0/cofiy/pkg/core"
)

// companyArchive is the metadata written to company.json. It carries no id,
// so these archives are backups rather than import bundles.
type companyArchive struct {
	Name      string      `json:"name"`
	Notes     []core.Note `json:"notes"`
	CreatedAt time.Time   `json:"createdAt,omitzero"`
	UpdatedAt time.Time   `json:"updatedAt,omitzero"`
}

// ExportArchives builds one archive per company and nests them in a single
// umbrella archive. Attachments are stored under attachments/{fileName}
// without rewriting any path.
func (c *Codec) ExportArchives(doc core.Document) (*core.ArchiveExport, error) {
	if len(doc.Companies) == 0 {
		return nil, core.ErrNoCompanies
	}

	var buf bytes.Buffer
	umbrella := zip.NewWriter(&buf)
	entries := make(map[string]string, len(doc.Companies))
	out := &core.ArchiveExport{SuggestedName: ArchivesName}

	for _, co := range doc.Companies {
		data, warnings, err := c.companyArchive(co)
		if err != nil {
			return nil, fmt.Errorf("archive company %s: %w", co.ID, err)
		}
		out.Warnings = append(out.Warnings, warnings...)

		name, _ := entryName(SanitizeName(co.Name)+".zip", co.ID, entries)
		entries[name] = co.ID

		w, err := umbrella.Create(name)
		if err != nil {
			return nil, fmt.Errorf("write %s: %w", name, err)
		}
		if _, err := w.Write(data); err != nil {
			return nil, fmt.Errorf("write %s: %w", name, err)
		}
		out.CompanyCount++
		c.logger.Debug("archived company", "company", co.ID, "entry", name)
	}

	if err := umbrella.Close(); err != nil {
		return nil, fmt.Errorf("finalize zip: %w", err)
	}
	out.Data = buf.Bytes()
	return out, nil
}

func (c *Codec) companyArchive(co core.Company) ([]byte, []core.Warning, error) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	var warnings []core.Warning
	written := make(map[string]string)

	for _, n := range co.Notes {
		for _, a := range n.Attachments {
			src, ok := c.resolve(a)
			if !ok {
				warnings = append(warnings, core.Warning{
					Kind: core.WarnMissingSource, CompanyID: co.ID, NoteID: n.ID, Path: a.FilePath,
				})
				continue
			}
			fileName := entryPart(a.FileName)
			if fileName == "" {
				fileName = entryPart(filepath.Base(src))
			}
			fileName, seen := entryName(fileName, src, written)
			if seen {
				continue
			}
			data, err := os.ReadFile(src)
			if err != nil {
				warnings = append(warnings, core.Warning{
					Kind: core.WarnReadFailed, CompanyID: co.ID, NoteID: n.ID, Path: src, Err: err,
				})
				continue
			}
			w, err := zw.Create(path.Join(AttachmentsDir, fileName))
			if err != nil {
				return nil, nil, err
			}
			if _, err := w.Write(data); err != nil {
				return nil, nil, err
			}
			written[fileName] = src
		}
	}

	notes := co.Notes
	if notes == nil {
		notes = []core.Note{}
	}
	meta, err := json.MarshalIndent(companyArchive{
		Name:      co.Name,
		Notes:     notes,
		CreatedAt: co.CreatedAt,
		UpdatedAt: co.UpdatedAt,
	}, "", "  ")
	if err != nil {
		return nil, nil, err
	}
	w, err := zw.Create(CompanyEntry)
	if err != nil {
		return nil, nil, err
	}
	if _, err := w.Write(meta); err != nil {
		return nil, nil, err
	}
	if err := zw.Close(); err != nil {
		return nil, nil, err
	}
	return buf.Bytes(), warnings, nil
}
