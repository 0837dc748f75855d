package core

// Reconciliation describes how an import was merged into a document.
type Reconciliation struct {
	Added   []Company
	Skipped []Company
	// NoOp is set when nothing was added; the document is returned unchanged.
	NoOp bool
}

// Reconcile merges imported companies into doc under the identifier
// collision policy of the bundle's format. It returns a new document and
// never modifies doc. On error the returned document is doc itself.
//
// JSON bundles skip companies whose id already exists (including ids that
// appear twice in the same bundle). ZIP bundles must hold exactly one
// company, and that company must be new.
func Reconcile(doc Document, imp *Import) (Document, Reconciliation, error) {
	var rec Reconciliation

	switch imp.Format {
	case FormatZip:
		if len(imp.Companies) != 1 {
			return doc, rec, &ValidationError{Err: ErrMultipleCompaniesInZip, Count: len(imp.Companies)}
		}
		c := imp.Companies[0]
		if i := doc.IndexOf(c.ID); i >= 0 {
			return doc, rec, &ValidationError{Err: ErrDuplicateCompany, CompanyID: c.ID, Name: doc.Companies[i].Name}
		}
		rec.Added = []Company{c}

	case FormatJSON:
		seen := make(map[string]bool, len(doc.Companies)+len(imp.Companies))
		for _, c := range doc.Companies {
			seen[c.ID] = true
		}
		for _, c := range imp.Companies {
			if seen[c.ID] {
				rec.Skipped = append(rec.Skipped, c)
				continue
			}
			seen[c.ID] = true
			rec.Added = append(rec.Added, c)
		}
		if len(rec.Added) == 0 {
			rec.NoOp = true
			return doc, rec, nil
		}

	default:
		return doc, rec, ErrUnsupportedFormat
	}

	out := doc.Clone()
	for _, c := range rec.Added {
		out.Companies = append(out.Companies, c.Clone())
	}
	return out, rec, nil
}
