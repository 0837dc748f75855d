// Package core holds the domain of cofiy: companies, their notes and the
// attachments referenced by those notes, plus the ports the adapters implement.
package core

import (
	"fmt"
	"time"
)

// Priority ranks a note.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityNormal Priority = "normal"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// Document is the canonical store document. It is the only unit the
// Repository reads and writes.
type Document struct {
	Companies []Company `json:"companies" yaml:"companies"`
}

// Company is the root of the ownership tree and the merge key for imports.
type Company struct {
	ID        string    `json:"id" yaml:"id" validate:"required"`
	Name      string    `json:"name" yaml:"name" validate:"required"`
	Notes     []Note    `json:"notes" yaml:"notes" validate:"dive"`
	CreatedAt time.Time `json:"createdAt,omitzero" yaml:"createdAt,omitempty"`
	UpdatedAt time.Time `json:"updatedAt,omitzero" yaml:"updatedAt,omitempty"`
}

// Note belongs to exactly one company. Its ID is unique within that company.
type Note struct {
	ID          string       `json:"id" yaml:"id" validate:"required"`
	Title       string       `json:"title" yaml:"title"`
	Content     string       `json:"content" yaml:"content"`
	Priority    Priority     `json:"priority,omitempty" yaml:"priority,omitempty" validate:"omitempty,oneof=low normal medium high"`
	Category    string       `json:"category,omitempty" yaml:"category,omitempty"`
	Attachments []Attachment `json:"attachments" yaml:"attachments" validate:"dive"`
	CreatedAt   time.Time    `json:"createdAt,omitzero" yaml:"createdAt,omitempty"`
	UpdatedAt   time.Time    `json:"updatedAt,omitzero" yaml:"updatedAt,omitempty"`
}

// Attachment references a file on disk. The file itself is never owned or
// deleted by cofiy.
//
// FilePath is where bytes are read from now. OriginalPath is the first path
// the attachment was ever known under and is never overwritten once set.
// ExportedFileName is the entry name used inside a ZIP bundle.
type Attachment struct {
	Title            string         `json:"title" yaml:"title"`
	Description      string         `json:"description,omitempty" yaml:"description,omitempty"`
	FileName         string         `json:"fileName" yaml:"fileName"`
	Type             AttachmentType `json:"type" yaml:"type"`
	FilePath         string         `json:"filePath" yaml:"filePath" validate:"required"`
	OriginalPath     string         `json:"originalPath,omitempty" yaml:"originalPath,omitempty"`
	ExportedFileName string         `json:"exportedFileName,omitempty" yaml:"exportedFileName,omitempty"`
	ImportedFromZip  bool           `json:"importedFromZip,omitempty" yaml:"importedFromZip,omitempty"`
	AddedAt          time.Time      `json:"addedAt,omitzero" yaml:"addedAt,omitempty"`
}

// NewDocument returns an empty document whose company list serializes as [].
func NewDocument() Document {
	return Document{Companies: []Company{}}
}

// Clone returns a deep copy of the document.
func (d Document) Clone() Document {
	out := Document{Companies: make([]Company, len(d.Companies))}
	for i, c := range d.Companies {
		out.Companies[i] = c.Clone()
	}
	return out
}

// Clone returns a deep copy of the company and everything it owns.
func (c Company) Clone() Company {
	out := c
	if c.Notes != nil {
		out.Notes = make([]Note, len(c.Notes))
		for i, n := range c.Notes {
			out.Notes[i] = n.Clone()
		}
	}
	return out
}

// Clone returns a deep copy of the note.
func (n Note) Clone() Note {
	out := n
	if n.Attachments != nil {
		out.Attachments = make([]Attachment, len(n.Attachments))
		copy(out.Attachments, n.Attachments)
	}
	return out
}

// IndexOf returns the index of the company with the given id, or -1.
func (d Document) IndexOf(id string) int {
	for i := range d.Companies {
		if d.Companies[i].ID == id {
			return i
		}
	}
	return -1
}

// HasCompany reports whether a company with the given id exists.
func (d Document) HasCompany(id string) bool {
	return d.IndexOf(id) >= 0
}

// AddCompany appends a company, refusing ids that already exist.
func (d *Document) AddCompany(c Company) error {
	if c.ID == "" {
		return &ValidationError{Err: ErrInvalidRecord, Name: c.Name}
	}
	if i := d.IndexOf(c.ID); i >= 0 {
		return &ValidationError{Err: ErrDuplicateCompany, CompanyID: c.ID, Name: d.Companies[i].Name}
	}
	if c.Notes == nil {
		c.Notes = []Note{}
	}
	d.Companies = append(d.Companies, c)
	return nil
}

// AddNote appends a note to the company with the given id.
func (d *Document) AddNote(companyID string, n Note) error {
	i := d.IndexOf(companyID)
	if i < 0 {
		return &ValidationError{Err: ErrCompanyNotFound, CompanyID: companyID}
	}
	if n.ID == "" {
		return &ValidationError{Err: ErrInvalidRecord, CompanyID: companyID}
	}
	for _, existing := range d.Companies[i].Notes {
		if existing.ID == n.ID {
			return fmt.Errorf("note %s already exists in company %s: %w", n.ID, companyID, ErrInvalidRecord)
		}
	}
	if n.Priority == "" {
		n.Priority = PriorityNormal
	}
	if n.Attachments == nil {
		n.Attachments = []Attachment{}
	}
	d.Companies[i].Notes = append(d.Companies[i].Notes, n)
	return nil
}

// AddAttachment appends an attachment to a note and stamps the note's
// UpdatedAt with the attachment's AddedAt.
func (d *Document) AddAttachment(companyID, noteID string, a Attachment) error {
	i := d.IndexOf(companyID)
	if i < 0 {
		return &ValidationError{Err: ErrCompanyNotFound, CompanyID: companyID}
	}
	notes := d.Companies[i].Notes
	for j := range notes {
		if notes[j].ID != noteID {
			continue
		}
		notes[j].Attachments = append(notes[j].Attachments, a)
		notes[j].UpdatedAt = a.AddedAt
		return nil
	}
	return fmt.Errorf("note %s in company %s: %w", noteID, companyID, ErrNoteNotFound)
}

// EachAttachment calls fn for every attachment in encounter order
// (company, then note, then attachment). The pointer may be modified.
func (d *Document) EachAttachment(fn func(c *Company, n *Note, a *Attachment)) {
	EachAttachment(d.Companies, fn)
}

// EachAttachment walks a company slice the same way Document.EachAttachment does.
func EachAttachment(companies []Company, fn func(c *Company, n *Note, a *Attachment)) {
	for ci := range companies {
		c := &companies[ci]
		for ni := range c.Notes {
			n := &c.Notes[ni]
			for ai := range n.Attachments {
				fn(c, n, &n.Attachments[ai])
			}
		}
	}
}

// AttachmentCount returns the total number of attachments under a company.
func (c Company) AttachmentCount() int {
	total := 0
	for _, n := range c.Notes {
		total += len(n.Attachments)
	}
	return total
}
