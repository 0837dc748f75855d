package core_test

import (
	"archive/zip"
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/cofiy/pkg/adapters/fs"
	"github.com/aretw0/cofiy/pkg/adapters/memory"
	"github.com/aretw0/cofiy/pkg/bundle"
	"github.com/aretw0/cofiy/pkg/core"
)

func newService(doc core.Document) (*core.Service, *memory.Repository) {
	repo := memory.NewRepository(doc)
	return core.NewService(repo, bundle.NewCodec(), nil), repo
}

// seeded returns a store whose single company owns attachmentCount files.
func seeded(t *testing.T, attachmentCount int) core.Document {
	t.Helper()
	dir := t.TempDir()
	doc := core.NewDocument()
	require.NoError(t, doc.AddCompany(core.Company{ID: "acme", Name: "Acme Corp", CreatedAt: time.Now().UTC()}))
	require.NoError(t, doc.AddNote("acme", core.Note{ID: "n1", Title: "Kickoff"}))
	for i := range attachmentCount {
		p := filepath.Join(dir, "file"+string(rune('a'+i))+".txt")
		require.NoError(t, os.WriteFile(p, []byte("bytes "+p), 0644))
		require.NoError(t, doc.AddAttachment("acme", "n1", core.NewAttachment(p, "", "", time.Now().UTC())))
	}
	return doc
}

func TestServiceLoadStoreSoftFail(t *testing.T) {
	svc, repo := newService(store("a"))
	repo.FailLoad(errors.New("disk on fire"))

	doc := svc.LoadStore(context.Background())
	assert.NotNil(t, doc.Companies)
	assert.Empty(t, doc.Companies)
}

func TestServiceWritesRefuseUnreadableStore(t *testing.T) {
	ctx := context.Background()
	svc, repo := newService(store("a"))
	repo.FailLoad(errors.New("disk on fire"))

	err := svc.Update(ctx, func(doc *core.Document) error {
		return doc.AddCompany(core.Company{ID: "b", Name: "B"})
	})
	assert.ErrorContains(t, err, "disk on fire")

	bundleSvc, _ := newService(store("c"))
	out, err := bundleSvc.Export(ctx, core.FormatJSON, "")
	require.NoError(t, err)
	_, err = svc.Import(ctx, out.Data, core.FormatJSON, t.TempDir())
	assert.ErrorContains(t, err, "disk on fire")
	assert.Zero(t, repo.Saves())
}

func TestServiceImportKeepsCorruptStoreFile(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	corrupt := `{"companies":[{"id":"a","name":"Keep Me","notes":[]},]}`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "companies.json"), []byte(corrupt), 0644))

	repo := fs.NewRepository(fs.Config{Path: dir, AutoInit: true})
	svc := core.NewService(repo, bundle.NewCodec(), nil)

	data := []byte(`{"companies":[{"id":"b","name":"New","notes":[]}]}`)
	_, err := svc.Import(ctx, data, core.FormatJSON, t.TempDir())
	require.Error(t, err)

	err = svc.Update(ctx, func(doc *core.Document) error {
		return doc.AddCompany(core.Company{ID: "b", Name: "New"})
	})
	require.Error(t, err)

	got, err := os.ReadFile(filepath.Join(dir, "companies.json"))
	require.NoError(t, err)
	assert.Equal(t, corrupt, string(got))

	assert.Empty(t, svc.LoadStore(ctx).Companies, "reads still fall back to an empty store")
}

func TestServiceUpdate(t *testing.T) {
	ctx := context.Background()
	svc, repo := newService(store("a"))

	require.NoError(t, svc.Update(ctx, func(doc *core.Document) error {
		return doc.AddCompany(core.Company{ID: "b", Name: "B"})
	}))
	assert.Equal(t, 1, repo.Saves())
	assert.True(t, svc.LoadStore(ctx).HasCompany("b"))

	err := svc.Update(ctx, func(doc *core.Document) error {
		return doc.AddCompany(core.Company{ID: "a", Name: "again"})
	})
	assert.ErrorIs(t, err, core.ErrDuplicateCompany)
	assert.Equal(t, 1, repo.Saves())
}

func TestServiceSaveStoreReportsErrors(t *testing.T) {
	svc, repo := newService(core.NewDocument())
	repo.SetReadOnly(true)
	err := svc.SaveStore(context.Background(), store("a"))
	assert.ErrorIs(t, err, core.ErrReadOnly)
}

func TestServiceZipRoundTrip(t *testing.T) {
	ctx := context.Background()
	src := seeded(t, 3)
	exporter, _ := newService(src)

	out, err := exporter.Export(ctx, core.FormatZip, "acme")
	require.NoError(t, err)

	importer, repo := newService(core.NewDocument())
	report, err := importer.Import(ctx, out.Data, core.FormatZip, t.TempDir())
	require.NoError(t, err)
	assert.Len(t, report.Added, 1)
	assert.Len(t, report.Extracted, 3)
	assert.Equal(t, 1, repo.Saves())

	got := importer.LoadStore(ctx)
	require.Len(t, got.Companies, 1)
	assert.Equal(t, "Acme Corp", got.Companies[0].Name)
	require.Len(t, got.Companies[0].Notes[0].Attachments, 3)
	for i, a := range got.Companies[0].Notes[0].Attachments {
		orig := src.Companies[0].Notes[0].Attachments[i]
		want, err := os.ReadFile(orig.FilePath)
		require.NoError(t, err)
		have, err := os.ReadFile(a.FilePath)
		require.NoError(t, err)
		assert.Equal(t, want, have)
	}
}

func TestServiceDuplicateZipLeavesStoreUnchanged(t *testing.T) {
	ctx := context.Background()
	doc := seeded(t, 1)
	svc, repo := newService(doc)

	out, err := svc.ExportZip(svc.LoadStore(ctx), "acme")
	require.NoError(t, err)

	dest := t.TempDir()
	_, err = svc.Import(ctx, out.Data, core.FormatZip, dest)
	require.ErrorIs(t, err, core.ErrDuplicateCompany)
	assert.Zero(t, repo.Saves())
	assert.Equal(t, doc, svc.LoadStore(ctx))
	assert.NoDirExists(t, filepath.Join(dest, "attachments"), "a rejected bundle extracts nothing")
}

func TestServicePartialDuplicateJSON(t *testing.T) {
	ctx := context.Background()
	svc, repo := newService(store("a", "b"))
	bundleSvc, _ := newService(store("b", "c"))

	out, err := bundleSvc.Export(ctx, core.FormatJSON, "")
	require.NoError(t, err)

	report, err := svc.Import(ctx, out.Data, core.FormatJSON, t.TempDir())
	require.NoError(t, err)
	assert.Len(t, report.Added, 1)
	assert.Len(t, report.Skipped, 1)
	assert.Equal(t, 1, repo.Saves())

	ids := []string{}
	for _, c := range svc.LoadStore(ctx).Companies {
		ids = append(ids, c.ID)
	}
	assert.Equal(t, []string{"a", "b", "c"}, ids)

	t.Run("Reimport Is A No-Op", func(t *testing.T) {
		report, err := svc.Import(ctx, out.Data, core.FormatJSON, t.TempDir())
		require.NoError(t, err)
		assert.True(t, report.NoOp)
		assert.Equal(t, 1, repo.Saves())
	})
}

func TestServiceMissingFileResilience(t *testing.T) {
	ctx := context.Background()
	doc := seeded(t, 2)
	require.NoError(t, os.Remove(doc.Companies[0].Notes[0].Attachments[1].FilePath))
	svc, _ := newService(doc)

	out, err := svc.Export(ctx, core.FormatZip, "acme")
	require.NoError(t, err)
	require.Len(t, out.Warnings, 1)
	assert.Equal(t, core.WarnMissingSource, out.Warnings[0].Kind)
}

func TestServiceMultiCompanyZipRejected(t *testing.T) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, err := zw.Create("companies.json")
	require.NoError(t, err)
	_, err = w.Write([]byte(`{"companies":[{"id":"x","name":"X","notes":[]},{"id":"y","name":"Y","notes":[]}]}`))
	require.NoError(t, err)
	require.NoError(t, zw.Close())

	svc, repo := newService(core.NewDocument())
	dest := t.TempDir()
	_, err = svc.Import(context.Background(), buf.Bytes(), core.FormatZip, dest)
	require.ErrorIs(t, err, core.ErrMultipleCompaniesInZip)
	assert.Zero(t, repo.Saves())
	assert.NoDirExists(t, filepath.Join(dest, "attachments"))
}

func TestServiceExportArchivesEmptyStore(t *testing.T) {
	svc, _ := newService(core.NewDocument())
	out, err := svc.ExportArchives(svc.LoadStore(context.Background()))
	require.ErrorIs(t, err, core.ErrNoCompanies)
	assert.Nil(t, out)
}

func TestServiceImportFile(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	exporter, _ := newService(seeded(t, 1))
	out, err := exporter.Export(ctx, core.FormatZip, "acme")
	require.NoError(t, err)

	bundlePath := filepath.Join(dir, out.SuggestedName)
	require.NoError(t, os.WriteFile(bundlePath, out.Data, 0644))

	svc, _ := newService(core.NewDocument())
	report, err := svc.ImportFile(ctx, bundlePath)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "attachments"), report.AttachmentsDir)

	_, err = svc.ImportFile(ctx, filepath.Join(dir, "bundle.rar"))
	assert.ErrorIs(t, err, core.ErrUnsupportedFormat)
}

func TestServiceWatchUnsupported(t *testing.T) {
	svc, _ := newService(core.NewDocument())
	_, err := svc.Watch(context.Background())
	assert.ErrorIs(t, err, core.ErrWatchUnsupported)
}

func TestServiceState(t *testing.T) {
	svc, _ := newService(core.NewDocument())
	svc.SetEventBuffer(16)
	state, ok := svc.State().(core.ServiceState)
	require.True(t, ok)
	assert.Equal(t, "memory", state.Repository)
	assert.False(t, state.WatchSupported)
	assert.Equal(t, 16, state.EventBuffer)
	assert.True(t, state.Codec)
	assert.Equal(t, "service", svc.ComponentType())
}

func TestServiceSummary(t *testing.T) {
	doc := core.NewDocument()
	require.NoError(t, doc.AddCompany(core.Company{ID: "acme", Name: "Acme"}))
	require.NoError(t, doc.AddCompany(core.Company{ID: "globex", Name: "Globex"}))
	require.NoError(t, doc.AddNote("acme", core.Note{ID: "n1", Title: "Kickoff"}))
	require.NoError(t, doc.AddAttachment("acme", "n1", core.Attachment{FileName: "a.pdf"}))
	svc, _ := newService(doc)

	assert.Equal(t, core.StoreSummary{Companies: 2, Notes: 1, Attachments: 1}, svc.Summary(context.Background()))
}
