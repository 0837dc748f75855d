package platform_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/cofiy/internal/platform"
	"github.com/aretw0/cofiy/pkg/adapters/fs"
	"github.com/aretw0/cofiy/pkg/adapters/memory"
	"github.com/aretw0/cofiy/pkg/core"
)

func TestInit(t *testing.T) {
	t.Run("Creates Data Directory And Document", func(t *testing.T) {
		dataPath := filepath.Join(t.TempDir(), "data")

		repo, err := platform.Init(dataPath, platform.WithForceTemp(true))
		require.NoError(t, err)

		fsRepo, ok := repo.(*fs.Repository)
		require.True(t, ok, "expected fs repository")
		assert.Equal(t, dataPath, fsRepo.Path)
		assert.FileExists(t, filepath.Join(dataPath, "companies.json"))
	})

	t.Run("MustExist Fails If Directory Missing", func(t *testing.T) {
		dataPath := filepath.Join(t.TempDir(), "missing")
		_, err := platform.Init(dataPath, platform.WithMustExist(true), platform.WithForceTemp(true))
		assert.Error(t, err)
	})

	t.Run("Read Only Does Not Create Anything", func(t *testing.T) {
		dataPath := filepath.Join(t.TempDir(), "ro")
		repo, err := platform.Init(dataPath, platform.WithReadOnly(true))
		require.NoError(t, err)
		assert.True(t, repo.(*fs.Repository).IsReadOnly())
		assert.NoDirExists(t, dataPath)
	})

	t.Run("Custom Data File", func(t *testing.T) {
		dataPath := filepath.Join(t.TempDir(), "data")
		_, err := platform.Init(dataPath, platform.WithDataFile("store.yaml"), platform.WithForceTemp(true))
		require.NoError(t, err)
		assert.FileExists(t, filepath.Join(dataPath, "store.yaml"))
	})

	t.Run("Injected Repository", func(t *testing.T) {
		mem := memory.NewRepository(core.NewDocument())
		repo, err := platform.Init("ignored", platform.WithRepository(mem))
		require.NoError(t, err)
		assert.Same(t, mem, repo)
	})
}

func TestNew(t *testing.T) {
	ctx := context.Background()
	dataPath := filepath.Join(t.TempDir(), "data")

	svc, err := platform.New(dataPath, platform.WithForceTemp(true), platform.WithEventBuffer(8))
	require.NoError(t, err)

	doc := svc.LoadStore(ctx)
	require.NoError(t, doc.AddCompany(core.Company{ID: "c1", Name: "Acme"}))
	require.NoError(t, svc.SaveStore(ctx, doc))

	out, err := svc.Export(ctx, core.FormatJSON, "c1")
	require.NoError(t, err)
	assert.Equal(t, "Acme.json", out.SuggestedName)

	state := svc.State().(core.ServiceState)
	assert.Equal(t, "fs", state.Repository)
	assert.Equal(t, 8, state.EventBuffer)
}

func TestResolveDataPath(t *testing.T) {
	assert.Equal(t, "data", platform.ResolveDataPath("", false))
	assert.Equal(t, "./mine", platform.ResolveDataPath("./mine", false))

	inTemp := filepath.Join(os.TempDir(), "already-safe")
	assert.Equal(t, inTemp, platform.ResolveDataPath(inTemp, true))

	assert.Equal(t, filepath.Join(os.TempDir(), platform.DevDirName, "data"), platform.ResolveDataPath("/srv/app/data", true))
	assert.Equal(t, filepath.Join(os.TempDir(), platform.DevDirName, "data"), platform.ResolveDataPath("", true))
}

func TestIsDevRun(t *testing.T) {
	assert.True(t, platform.IsDevRun(), "test binaries count as dev runs")
}

func TestFindRoot(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "data"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "data", "companies.json"), []byte(`{"companies":[]}`), 0644))
	nested := filepath.Join(root, "a", "b")
	require.NoError(t, os.MkdirAll(nested, 0755))

	got, err := platform.FindRoot(nested)
	require.NoError(t, err)
	want, err := filepath.EvalSymlinks(root)
	require.NoError(t, err)
	gotEval, err := filepath.EvalSymlinks(got)
	require.NoError(t, err)
	assert.Equal(t, want, gotEval)
}
