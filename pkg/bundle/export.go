package bundle

import (
	"archive/zip"
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path"
	"path/filepath"

	"github.com/aretw0/cofiy/pkg/core"
)

// selectCompanies returns a deep copy of the selected companies and the base
// name suggested for the bundle.
func selectCompanies(doc core.Document, companyID string) ([]core.Company, string, error) {
	if companyID == "" {
		return doc.Clone().Companies, ExportAllName, nil
	}
	i := doc.IndexOf(companyID)
	if i < 0 {
		return nil, "", &core.ValidationError{Err: core.ErrCompanyNotFound, CompanyID: companyID}
	}
	c := doc.Companies[i]
	return []core.Company{c.Clone()}, SanitizeName(c.Name), nil
}

func marshalDocument(companies []core.Company) ([]byte, error) {
	if companies == nil {
		companies = []core.Company{}
	}
	data, err := json.MarshalIndent(core.Document{Companies: companies}, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal bundle: %w", err)
	}
	return data, nil
}

// ExportJSON returns the selected companies verbatim. Attachment paths are
// left as they are, so the bundle is only useful on the same filesystem.
func (c *Codec) ExportJSON(doc core.Document, companyID string) (*core.Export, error) {
	companies, base, err := selectCompanies(doc, companyID)
	if err != nil {
		return nil, err
	}
	data, err := marshalDocument(companies)
	if err != nil {
		return nil, err
	}
	return &core.Export{Data: data, SuggestedName: base + ".json"}, nil
}

// ExportZip embeds every resolvable attachment and rewrites its filePath to
// the entry inside the archive. The caller's document is never modified.
//
// Entries are named {companyId}_{noteId}_{basename}, so attachments sharing a
// basename in different notes do not collide. Path separators inside those
// parts become underscores.
func (c *Codec) ExportZip(doc core.Document, companyID string) (*core.Export, error) {
	companies, base, err := selectCompanies(doc, companyID)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	var warnings []core.Warning
	// entry name -> resolved source, to avoid writing the same entry twice
	written := make(map[string]string)

	var writeErr error
	core.EachAttachment(companies, func(co *core.Company, n *core.Note, a *core.Attachment) {
		if writeErr != nil {
			return
		}
		src, ok := c.resolve(*a)
		if !ok {
			warnings = append(warnings, core.Warning{
				Kind: core.WarnMissingSource, CompanyID: co.ID, NoteID: n.ID, Path: a.FilePath,
			})
			return
		}

		entry := fmt.Sprintf("%s_%s_%s", entryPart(co.ID), entryPart(n.ID), entryPart(filepath.Base(src)))
		name, seen := entryName(entry, src, written)
		if !seen {
			data, err := os.ReadFile(src)
			if err != nil {
				warnings = append(warnings, core.Warning{
					Kind: core.WarnReadFailed, CompanyID: co.ID, NoteID: n.ID, Path: src, Err: err,
				})
				return
			}
			w, err := zw.Create(path.Join(AttachmentsDir, name))
			if err != nil {
				writeErr = err
				return
			}
			if _, err := w.Write(data); err != nil {
				writeErr = err
				return
			}
			written[name] = src
			c.logger.Debug("embedded attachment", "entry", name, "source", src)
		}

		if a.OriginalPath == "" {
			a.OriginalPath = src
		}
		a.FilePath = path.Join(AttachmentsDir, name)
		a.ExportedFileName = name
	})
	if writeErr != nil {
		return nil, fmt.Errorf("write zip entry: %w", writeErr)
	}

	meta, err := marshalDocument(companies)
	if err != nil {
		return nil, err
	}
	w, err := zw.Create(DocumentEntry)
	if err != nil {
		return nil, fmt.Errorf("write %s: %w", DocumentEntry, err)
	}
	if _, err := w.Write(meta); err != nil {
		return nil, fmt.Errorf("write %s: %w", DocumentEntry, err)
	}
	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("finalize zip: %w", err)
	}

	return &core.Export{Data: buf.Bytes(), SuggestedName: base + ".zip", Warnings: warnings}, nil
}

// entryName picks the entry for src starting from base. An entry already
// written for the same source is reused (seen is true); an entry taken by
// another source moves src to base_2, base_3... before the extension.
func entryName(base, src string, used map[string]string) (name string, seen bool) {
	ext := filepath.Ext(base)
	stem := base[:len(base)-len(ext)]
	name = base
	for i := 2; ; i++ {
		prev, taken := used[name]
		if !taken {
			return name, false
		}
		if prev == src {
			return name, true
		}
		name = fmt.Sprintf("%s_%d%s", stem, i, ext)
	}
}
