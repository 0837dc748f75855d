package cofiy_test

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/aretw0/cofiy"
	"github.com/aretw0/cofiy/pkg/core"
)

// Example_exportImport exports a company with an attachment to a ZIP bundle
// and imports it into a second, empty store.
func Example_exportImport() {
	tmpDir, err := os.MkdirTemp("", "cofiy-example-*")
	if err != nil {
		log.Fatal(err)
	}
	defer os.RemoveAll(tmpDir)

	ctx := context.Background()
	source, err := cofiy.New(filepath.Join(tmpDir, "source"))
	if err != nil {
		log.Fatal(err)
	}

	contract := filepath.Join(tmpDir, "contract.pdf")
	if err := os.WriteFile(contract, []byte("%PDF-1.4"), 0644); err != nil {
		log.Fatal(err)
	}

	now := time.Now().UTC()
	doc := source.LoadStore(ctx)
	if err := doc.AddCompany(core.Company{ID: "acme", Name: "Acme Corp", CreatedAt: now}); err != nil {
		log.Fatal(err)
	}
	if err := doc.AddNote("acme", core.Note{ID: "n1", Title: "Kickoff", CreatedAt: now}); err != nil {
		log.Fatal(err)
	}
	if err := doc.AddAttachment("acme", "n1", core.NewAttachment(contract, "", "", now)); err != nil {
		log.Fatal(err)
	}
	if err := source.SaveStore(ctx, doc); err != nil {
		log.Fatal(err)
	}

	out, err := source.Export(ctx, core.FormatZip, "acme")
	if err != nil {
		log.Fatal(err)
	}
	bundlePath := filepath.Join(tmpDir, "inbox", out.SuggestedName)
	if err := os.MkdirAll(filepath.Dir(bundlePath), 0755); err != nil {
		log.Fatal(err)
	}
	if err := os.WriteFile(bundlePath, out.Data, 0644); err != nil {
		log.Fatal(err)
	}

	target, err := cofiy.New(filepath.Join(tmpDir, "target"))
	if err != nil {
		log.Fatal(err)
	}
	report, err := target.ImportFile(ctx, bundlePath)
	if err != nil {
		log.Fatal(err)
	}

	imported := target.LoadStore(ctx).Companies[0]
	a := imported.Notes[0].Attachments[0]
	fmt.Println(out.SuggestedName)
	fmt.Println(len(report.Added), imported.Name, a.Type, a.ImportedFromZip)
	// Output:
	// Acme_Corp.zip
	// 1 Acme Corp PDF true
}

// Example_duplicateZip shows that a ZIP bundle cannot overwrite an existing company.
func Example_duplicateZip() {
	tmpDir, err := os.MkdirTemp("", "cofiy-example-*")
	if err != nil {
		log.Fatal(err)
	}
	defer os.RemoveAll(tmpDir)

	ctx := context.Background()
	svc, err := cofiy.New(tmpDir)
	if err != nil {
		log.Fatal(err)
	}
	doc := svc.LoadStore(ctx)
	if err := doc.AddCompany(core.Company{ID: "acme", Name: "Acme Corp"}); err != nil {
		log.Fatal(err)
	}
	if err := svc.SaveStore(ctx, doc); err != nil {
		log.Fatal(err)
	}

	out, err := svc.Export(ctx, core.FormatZip, "acme")
	if err != nil {
		log.Fatal(err)
	}
	_, err = svc.Import(ctx, out.Data, core.FormatZip, tmpDir)
	fmt.Println(err)
	// Output:
	// company already exists: Acme Corp (id acme)
}
