// Package bundle converts store documents into portable bundles and back.
//
// Two wire formats are supported. A JSON bundle is the document subset with
// attachment paths left untouched. A ZIP bundle embeds attachment bytes under
// attachments/ and rewrites each attachment's filePath to its entry, with a
// companies.json entry holding the metadata.
//
// The per-company archive export is a backup format: one archive per company
// nested inside an umbrella archive. It is not importable by Import.
package bundle

import (
	"io"
	"log/slog"

	"github.com/aretw0/cofiy/pkg/core"
)

const (
	// DocumentEntry is the metadata entry of a ZIP bundle.
	DocumentEntry = "companies.json"
	// CompanyEntry is the metadata entry of a per-company archive.
	CompanyEntry = "company.json"
	// AttachmentsDir is the attachments area, both inside archives and on disk.
	AttachmentsDir = "attachments"

	// ExportAllName is the base name suggested when every company is exported.
	ExportAllName = "companies_export"
	// ArchivesName is the name suggested for the umbrella archive.
	ArchivesName = "all_companies_export.zip"
)

// Codec implements core.Codec over the local filesystem.
type Codec struct {
	logger    *slog.Logger
	resolvers []Resolver
}

// Option configures a Codec.
type Option func(*Codec)

// WithLogger sets the logger used for debug output.
func WithLogger(l *slog.Logger) Option {
	return func(c *Codec) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithResolvers replaces the attachment resolver chain.
func WithResolvers(r ...Resolver) Option {
	return func(c *Codec) {
		c.resolvers = r
	}
}

// NewCodec creates a Codec. By default attachments are resolved by filePath
// first, then originalPath.
func NewCodec(opts ...Option) *Codec {
	c := &Codec{
		logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
		resolvers: DefaultResolvers(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

var _ core.Codec = (*Codec)(nil)
