package bundle

import (
	"archive/zip"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/aretw0/cofiy/pkg/core"
)

// extractPattern selects the archive entries that are attachments.
const extractPattern = AttachmentsDir + "/**"

// Import decodes a bundle and places its attachments under
// {destDir}/attachments. The returned companies point at the placed files.
// The store is not touched; reconciliation is the caller's job.
func (c *Codec) Import(data []byte, format core.Format, destDir string) (*core.Import, error) {
	switch format {
	case core.FormatJSON:
		return c.importJSON(data, destDir)
	case core.FormatZip:
		return c.importZip(data, destDir)
	default:
		return nil, fmt.Errorf("%w: %s", core.ErrUnsupportedFormat, format)
	}
}

// Inspect returns the validated companies of a bundle. Nothing is written.
func (c *Codec) Inspect(data []byte, format core.Format) ([]core.Company, error) {
	switch format {
	case core.FormatJSON:
		return decodeCompanies(data)
	case core.FormatZip:
		_, companies, err := openZipBundle(data)
		return companies, err
	default:
		return nil, fmt.Errorf("%w: %s", core.ErrUnsupportedFormat, format)
	}
}

// decodeCompanies parses {"companies": [...]} and validates the result.
func decodeCompanies(data []byte) ([]core.Company, error) {
	var raw struct {
		Companies *json.RawMessage `json:"companies"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, &core.ValidationError{Err: core.ErrInvalidFormat, Details: []string{err.Error()}}
	}
	if raw.Companies == nil {
		return nil, &core.ValidationError{Err: core.ErrInvalidFormat, Details: []string{"missing companies"}}
	}
	var companies []core.Company
	if err := json.Unmarshal(*raw.Companies, &companies); err != nil {
		return nil, &core.ValidationError{Err: core.ErrInvalidFormat, Details: []string{"companies: " + err.Error()}}
	}
	if companies == nil {
		return nil, &core.ValidationError{Err: core.ErrInvalidFormat, Details: []string{"companies is not an array"}}
	}
	if err := core.ValidateCompanies(companies); err != nil {
		return nil, err
	}
	return companies, nil
}

func (c *Codec) importJSON(data []byte, destDir string) (*core.Import, error) {
	companies, err := decodeCompanies(data)
	if err != nil {
		return nil, err
	}

	attDir := filepath.Join(destDir, AttachmentsDir)
	imp := &core.Import{Companies: companies, Format: core.FormatJSON, AttachmentsDir: attDir}

	var dirErr error
	core.EachAttachment(companies, func(co *core.Company, n *core.Note, a *core.Attachment) {
		dest := filepath.Join(attDir, filepath.Base(a.FilePath))

		if _, err := os.Stat(a.FilePath); err != nil {
			imp.Warnings = append(imp.Warnings, core.Warning{
				Kind: core.WarnMissingSource, CompanyID: co.ID, NoteID: n.ID, Path: a.FilePath, Err: err,
			})
		} else {
			if dirErr == nil {
				dirErr = os.MkdirAll(attDir, 0755)
			}
			err := dirErr
			if err == nil {
				err = copyFile(a.FilePath, dest)
			}
			if err != nil {
				imp.Warnings = append(imp.Warnings, core.Warning{
					Kind: core.WarnCopyFailed, CompanyID: co.ID, NoteID: n.ID, Path: a.FilePath, Err: err,
				})
			}
		}

		if a.OriginalPath == "" {
			a.OriginalPath = a.FilePath
		}
		a.FilePath = dest
	})

	return imp, nil
}

// openZipBundle opens the archive and decodes its companies.json.
func openZipBundle(data []byte) (*zip.Reader, []core.Company, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, nil, &core.ValidationError{Err: core.ErrInvalidFormat, Details: []string{"unreadable archive: " + err.Error()}}
	}

	var docFile *zip.File
	for _, f := range zr.File {
		if f.Name == DocumentEntry {
			docFile = f
			break
		}
	}
	if docFile == nil {
		return nil, nil, &core.ValidationError{Err: core.ErrInvalidFormat, Details: []string{"missing " + DocumentEntry}}
	}
	meta, err := readEntry(docFile)
	if err != nil {
		return nil, nil, &core.ValidationError{Err: core.ErrInvalidFormat, Details: []string{DocumentEntry + ": " + err.Error()}}
	}
	companies, err := decodeCompanies(meta)
	if err != nil {
		return nil, nil, err
	}
	return zr, companies, nil
}

func (c *Codec) importZip(data []byte, destDir string) (*core.Import, error) {
	zr, companies, err := openZipBundle(data)
	if err != nil {
		return nil, err
	}

	attDir := filepath.Join(destDir, AttachmentsDir)
	if err := os.MkdirAll(attDir, 0755); err != nil {
		return nil, fmt.Errorf("create attachments dir: %w", err)
	}

	imp := &core.Import{Companies: companies, Format: core.FormatZip, AttachmentsDir: attDir}
	for _, f := range zr.File {
		if f.FileInfo().IsDir() {
			continue
		}
		if ok, _ := doublestar.Match(extractPattern, f.Name); !ok {
			continue
		}

		fileName := path.Base(f.Name)
		dest := filepath.Join(attDir, fileName)
		if err := extractEntry(f, dest); err != nil {
			imp.Warnings = append(imp.Warnings, core.Warning{Kind: core.WarnExtractFailed, Path: f.Name, Err: err})
			continue
		}
		imp.Extracted = append(imp.Extracted, f.Name)
		c.logger.Debug("extracted attachment", "entry", f.Name, "dest", dest)

		core.EachAttachment(companies, func(_ *core.Company, _ *core.Note, a *core.Attachment) {
			if a.ExportedFileName != fileName {
				return
			}
			if a.OriginalPath == "" {
				a.OriginalPath = a.FilePath
			}
			a.FilePath = dest
			a.ImportedFromZip = true
		})
	}

	return imp, nil
}

func readEntry(f *zip.File) ([]byte, error) {
	rc, err := f.Open()
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return io.ReadAll(rc)
}

func extractEntry(f *zip.File, dest string) error {
	data, err := readEntry(f)
	if err != nil {
		return err
	}
	return os.WriteFile(dest, data, 0644)
}

// copyFile copies src to dst. Copying a file onto itself is a no-op.
func copyFile(src, dst string) error {
	if same, err := samePath(src, dst); err == nil && same {
		return nil
	}
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		return errors.Join(err, out.Close())
	}
	return out.Close()
}

func samePath(a, b string) (bool, error) {
	absA, err := filepath.Abs(a)
	if err != nil {
		return false, err
	}
	absB, err := filepath.Abs(b)
	if err != nil {
		return false, err
	}
	if absA == absB {
		return true, nil
	}
	infoA, errA := os.Stat(absA)
	infoB, errB := os.Stat(absB)
	if errA != nil || errB != nil {
		return false, nil
	}
	return os.SameFile(infoA, infoB), nil
}
