package core

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
)

// Service handles the collaborator-facing operations: loading and saving the
// store, exporting bundles and importing them back.
type Service struct {
	repo   Repository
	codec  Codec
	logger *slog.Logger

	mu              sync.RWMutex
	eventBufferSize int
}

// NewService creates a new Service. A nil logger discards output.
func NewService(repo Repository, codec Codec, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Service{repo: repo, codec: codec, logger: logger, eventBufferSize: 100}
}

// SetEventBuffer sets the channel size used by Watch. Zero keeps the default.
func (s *Service) SetEventBuffer(size int) {
	if size <= 0 {
		return
	}
	s.mu.Lock()
	s.eventBufferSize = size
	s.mu.Unlock()
}

// Repository returns the underlying repository.
func (s *Service) Repository() Repository {
	return s.repo
}

// LoadStore returns the current document. Load failures are logged and an
// empty document is returned instead, so callers always get a usable value.
func (s *Service) LoadStore(ctx context.Context) Document {
	doc, err := s.repo.Load(ctx)
	if err != nil {
		s.logger.Error("failed to load store, continuing with an empty one", "error", err)
		return NewDocument()
	}
	if doc.Companies == nil {
		doc.Companies = []Company{}
	}
	return doc
}

// loadForWrite returns the stored document or the load error. Writers must
// not fall back to an empty document or they would overwrite the store.
func (s *Service) loadForWrite(ctx context.Context) (Document, error) {
	doc, err := s.repo.Load(ctx)
	if err != nil {
		s.logger.Error("failed to load store for writing", "error", err)
		return Document{}, fmt.Errorf("load store: %w", err)
	}
	if doc.Companies == nil {
		doc.Companies = []Company{}
	}
	return doc, nil
}

// Update loads the store, applies fn and saves the result. Nothing is saved
// when the load or fn fails.
func (s *Service) Update(ctx context.Context, fn func(doc *Document) error) error {
	doc, err := s.loadForWrite(ctx)
	if err != nil {
		return err
	}
	if err := fn(&doc); err != nil {
		return err
	}
	return s.SaveStore(ctx, doc)
}

// SaveStore replaces the stored document.
func (s *Service) SaveStore(ctx context.Context, doc Document) error {
	if doc.Companies == nil {
		doc.Companies = []Company{}
	}
	if err := s.repo.Save(ctx, doc); err != nil {
		s.logger.Error("failed to save store", "error", err)
		return fmt.Errorf("save store: %w", err)
	}
	return nil
}

// ExportJSON builds a JSON bundle of one company, or of all companies when
// companyID is empty.
func (s *Service) ExportJSON(doc Document, companyID string) (*Export, error) {
	return s.codec.ExportJSON(doc, companyID)
}

// ExportZip builds a ZIP bundle with attachment bytes embedded.
func (s *Service) ExportZip(doc Document, companyID string) (*Export, error) {
	out, err := s.codec.ExportZip(doc, companyID)
	if err != nil {
		return nil, err
	}
	s.logWarnings("export", out.Warnings)
	return out, nil
}

// ExportArchives builds one archive per company inside an umbrella archive.
func (s *Service) ExportArchives(doc Document) (*ArchiveExport, error) {
	out, err := s.codec.ExportArchives(doc)
	if err != nil {
		return nil, err
	}
	s.logWarnings("archive export", out.Warnings)
	return out, nil
}

// ImportBundle decodes a bundle without touching the store.
func (s *Service) ImportBundle(data []byte, format Format, destDir string) (*Import, error) {
	imp, err := s.codec.Import(data, format, destDir)
	if err != nil {
		return nil, err
	}
	s.logWarnings("import", imp.Warnings)
	return imp, nil
}

// Export loads the store and builds a bundle in the given format.
func (s *Service) Export(ctx context.Context, format Format, companyID string) (*Export, error) {
	doc := s.LoadStore(ctx)
	switch format {
	case FormatJSON:
		return s.ExportJSON(doc, companyID)
	case FormatZip:
		return s.ExportZip(doc, companyID)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
	}
}

// ImportReport is the outcome of an import merged into the store.
type ImportReport struct {
	Reconciliation
	Format         Format
	Extracted      []string
	AttachmentsDir string
	Warnings       []Warning
}

// Import decodes a bundle, reconciles it against the stored document and
// saves the result. Nothing is saved unless loading, decoding and
// reconciliation all succeed. A ZIP bundle that would be rejected is refused
// before any attachment is extracted.
func (s *Service) Import(ctx context.Context, data []byte, format Format, destDir string) (*ImportReport, error) {
	doc, err := s.loadForWrite(ctx)
	if err != nil {
		return nil, err
	}

	if format == FormatZip {
		companies, err := s.codec.Inspect(data, format)
		if err != nil {
			return nil, err
		}
		if _, _, err := Reconcile(doc, &Import{Companies: companies, Format: format}); err != nil {
			return nil, err
		}
	}

	imp, err := s.ImportBundle(data, format, destDir)
	if err != nil {
		return nil, err
	}

	merged, rec, err := Reconcile(doc, imp)
	if err != nil {
		return nil, err
	}

	report := &ImportReport{
		Reconciliation: rec,
		Format:         imp.Format,
		Extracted:      imp.Extracted,
		AttachmentsDir: imp.AttachmentsDir,
		Warnings:       imp.Warnings,
	}

	if rec.NoOp {
		s.logger.Info("import added nothing, all companies already exist", "skipped", len(rec.Skipped))
		return report, nil
	}

	if err := s.SaveStore(ctx, merged); err != nil {
		return nil, err
	}
	s.logger.Info("import complete", "format", imp.Format, "added", len(rec.Added), "skipped", len(rec.Skipped))
	return report, nil
}

// ImportFile imports the bundle at path. The format comes from the file
// extension and attachments are placed next to the bundle.
func (s *Service) ImportFile(ctx context.Context, path string) (*ImportReport, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read bundle: %w", err)
	}
	return s.Import(ctx, data, format, filepath.Dir(path))
}

// Search runs a substring search over the stored document.
func (s *Service) Search(ctx context.Context, query string) []SearchResult {
	return Search(s.LoadStore(ctx), query)
}

// ErrWatchUnsupported is returned by Watch for repositories that cannot
// report changes.
var ErrWatchUnsupported = errors.New("repository does not support watching")

// Watch observes changes in the repository if supported.
func (s *Service) Watch(ctx context.Context) (<-chan Event, error) {
	s.mu.RLock()
	size := s.eventBufferSize
	s.mu.RUnlock()

	if bw, ok := s.repo.(interface {
		WatchBuffered(ctx context.Context, size int) (<-chan Event, error)
	}); ok {
		return bw.WatchBuffered(ctx, size)
	}
	w, ok := s.repo.(Watchable)
	if !ok {
		return nil, ErrWatchUnsupported
	}
	return w.Watch(ctx)
}

func (s *Service) logWarnings(op string, warnings []Warning) {
	for _, w := range warnings {
		s.logger.Warn(op+" attachment skipped",
			"kind", w.Kind,
			"company", w.CompanyID,
			"note", w.NoteID,
			"path", w.Path,
			"error", w.Err,
		)
	}
}
