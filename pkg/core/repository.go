package core

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
)

// Repository defines the contract for the canonical store document.
// Adhering to this interface allows the core to be independent of where the
// document lives (local file, memory, ...).
type Repository interface {
	// Load returns the current document. Implementations create an empty
	// document on first use.
	Load(ctx context.Context) (Document, error)

	// Save replaces the stored document as a whole.
	Save(ctx context.Context, doc Document) error

	// Initialize ensures the underlying storage is ready (e.g. create directories
	// and an empty document).
	Initialize(ctx context.Context) error
}

// Watchable defines an interface for repositories that can report external
// changes to the stored document.
type Watchable interface {
	Watch(ctx context.Context) (<-chan Event, error)
}

// EventType represents the type of change to the stored document.
type EventType string

const (
	EventCreate EventType = "CREATE"
	EventModify EventType = "MODIFY"
	EventDelete EventType = "DELETE"
)

// Event represents a change to the stored document.
type Event struct {
	Type      EventType
	Path      string
	Timestamp int64 // Unix timestamp
}

func (e Event) String() string {
	return fmt.Sprintf("%s %s", e.Type, e.Path)
}

// Format tags a bundle.
type Format string

const (
	FormatJSON Format = "json"
	FormatZip  Format = "zip"
)

// FormatFromPath derives the bundle format from a file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".zip":
		return FormatZip, nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, filepath.Base(path))
	}
}

// Export is a finished bundle ready to be written wherever the caller wants.
type Export struct {
	Data          []byte
	SuggestedName string
	Warnings      []Warning
}

// ArchiveExport is the umbrella archive holding one archive per company.
type ArchiveExport struct {
	Data          []byte
	SuggestedName string
	CompanyCount  int
	Warnings      []Warning
}

// Import is a decoded bundle. Companies have their attachment paths already
// pointing at the files written under AttachmentsDir.
type Import struct {
	Companies      []Company
	Format         Format
	Extracted      []string
	AttachmentsDir string
	Warnings       []Warning
}

// Codec turns documents into bundles and bundles back into companies.
// Implementations must not mutate the documents they are given.
type Codec interface {
	ExportJSON(doc Document, companyID string) (*Export, error)
	ExportZip(doc Document, companyID string) (*Export, error)
	ExportArchives(doc Document) (*ArchiveExport, error)
	Import(data []byte, format Format, destDir string) (*Import, error)
	// Inspect decodes and validates the companies of a bundle without
	// writing anything to disk.
	Inspect(data []byte, format Format) ([]Company, error)
}
