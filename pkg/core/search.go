package core

import (
	"strings"

	"golang.org/x/text/cases"
)

// ResultKind tells whether a search hit is a company or a note.
type ResultKind string

const (
	ResultCompany ResultKind = "company"
	ResultNote    ResultKind = "note"
)

// SearchResult is a single hit. Note is only set for note hits.
type SearchResult struct {
	Kind    ResultKind
	Company Company
	Note    *Note
}

// Title returns the text shown for the hit.
func (r SearchResult) Title() string {
	if r.Note != nil {
		return r.Note.Title
	}
	return r.Company.Name
}

// Search matches query case-insensitively as a substring of company names,
// note titles and note contents. Hits follow store order; a company hit is
// listed before the hits on its notes. A blank query matches nothing.
func Search(doc Document, query string) []SearchResult {
	if strings.TrimSpace(query) == "" {
		return nil
	}
	fold := cases.Fold()
	q := fold.String(query)

	var results []SearchResult
	for _, c := range doc.Companies {
		if strings.Contains(fold.String(c.Name), q) {
			results = append(results, SearchResult{Kind: ResultCompany, Company: c})
		}
		for i := range c.Notes {
			n := c.Notes[i]
			if strings.Contains(fold.String(n.Title), q) || strings.Contains(fold.String(n.Content), q) {
				results = append(results, SearchResult{Kind: ResultNote, Company: c, Note: &n})
			}
		}
	}
	return results
}
