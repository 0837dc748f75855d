// Package cofiy is the composition root of a small record store for
// companies, their notes and the files attached to those notes.
//
// The store is a single document on disk (data/companies.json by default).
// Around it sits a bundle engine that exports a company, or all of them, as
// a JSON or ZIP bundle and imports bundles back, reconciling company ids
// against what is already stored:
//
//   - JSON bundles keep attachment paths as they are. On import every file
//     is copied into an attachments/ folder next to the bundle and companies
//     whose id already exists are skipped.
//   - ZIP bundles embed attachment bytes. On import they are extracted next
//     to the bundle. A ZIP holds exactly one company, and importing a company
//     that already exists is refused.
//   - Archives are a backup format holding one ZIP per company.
//
// Nothing is saved unless the whole bundle decodes and reconciles cleanly.
// Attachment problems (a missing source file, a failed copy) never abort an
// operation; they are returned as core.Warning values.
//
// Usage:
//
//	svc, err := cofiy.New("./data", cofiy.WithLogger(logger))
//	if err != nil {
//		return err
//	}
//	out, err := svc.Export(ctx, core.FormatZip, "acme")
//	if err != nil {
//		return err
//	}
//	report, err := svc.ImportFile(ctx, "/backups/Acme.zip")
package cofiy
