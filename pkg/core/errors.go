package core

import (
	"errors"
	"fmt"
	"strings"
)

// Common errors.
var (
	ErrReadOnly = errors.New("repository is in read-only mode")

	ErrInvalidFormat          = errors.New("invalid bundle format")
	ErrUnsupportedFormat      = errors.New("unsupported bundle format")
	ErrCompanyNotFound        = errors.New("company not found")
	ErrNoteNotFound           = errors.New("note not found")
	ErrNoCompanies            = errors.New("no companies to export")
	ErrMultipleCompaniesInZip = errors.New("zip bundle must contain exactly one company")
	ErrDuplicateCompany       = errors.New("company already exists")
	ErrInvalidRecord          = errors.New("invalid record")
)

// ValidationError carries the context a caller needs to render a domain
// failure. Err is always one of the sentinels above, so errors.Is works.
type ValidationError struct {
	Err       error
	CompanyID string
	Name      string
	Count     int
	Details   []string
}

func (e *ValidationError) Error() string {
	var b strings.Builder
	b.WriteString(e.Err.Error())
	switch {
	case e.CompanyID != "" && e.Name != "":
		fmt.Fprintf(&b, ": %s (id %s)", e.Name, e.CompanyID)
	case e.CompanyID != "":
		fmt.Fprintf(&b, ": id %s", e.CompanyID)
	case e.Name != "":
		fmt.Fprintf(&b, ": %s", e.Name)
	}
	if errors.Is(e.Err, ErrMultipleCompaniesInZip) {
		fmt.Fprintf(&b, " (found %d)", e.Count)
	}
	if len(e.Details) > 0 {
		b.WriteString(": ")
		b.WriteString(strings.Join(e.Details, "; "))
	}
	return b.String()
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// WarningKind classifies a non-fatal attachment problem.
type WarningKind string

const (
	WarnMissingSource WarningKind = "missing_source"
	WarnReadFailed    WarningKind = "read_failed"
	WarnCopyFailed    WarningKind = "copy_failed"
	WarnExtractFailed WarningKind = "extract_failed"
)

// Warning records an attachment that could not be resolved, copied or
// extracted. Warnings never abort the bundle operation that produced them.
type Warning struct {
	Kind      WarningKind `json:"kind"`
	CompanyID string      `json:"companyId,omitempty"`
	NoteID    string      `json:"noteId,omitempty"`
	Path      string      `json:"path"`
	Err       error       `json:"-"`
}

func (w Warning) String() string {
	s := fmt.Sprintf("%s: %s", w.Kind, w.Path)
	if w.Err != nil {
		s += " (" + w.Err.Error() + ")"
	}
	return s
}
