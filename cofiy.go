package cofiy

import (
	"log/slog"

	"github.com/aretw0/cofiy/internal/platform"
	"github.com/aretw0/cofiy/pkg/core"
)

// --- Configuration ---

// Option defines a functional option for configuring cofiy.
type Option = platform.Option

// WithLogger sets the logger for the service, the store and the codec.
func WithLogger(logger *slog.Logger) Option {
	return platform.WithLogger(logger)
}

// WithRepository injects a storage adapter instead of the filesystem one.
func WithRepository(repo core.Repository) Option {
	return platform.WithRepository(repo)
}

// WithCodec replaces the bundle codec.
func WithCodec(codec core.Codec) Option {
	return platform.WithCodec(codec)
}

// WithDataFile sets the store document name (companies.json by default).
func WithDataFile(name string) Option {
	return platform.WithDataFile(name)
}

// WithAutoInit creates the data directory and an empty store when missing.
func WithAutoInit(auto bool) Option {
	return platform.WithAutoInit(auto)
}

// WithMustExist requires the data directory to exist already.
func WithMustExist(must bool) Option {
	return platform.WithMustExist(must)
}

// WithReadOnly refuses every write to the store.
func WithReadOnly(enabled bool) Option {
	return platform.WithReadOnly(enabled)
}

// WithForceTemp relocates the data directory into the temp dir.
func WithForceTemp(force bool) Option {
	return platform.WithForceTemp(force)
}

// WithDevSafety controls the temp-dir sandbox used under go run and go test.
func WithDevSafety(enabled bool) Option {
	return platform.WithDevSafety(enabled)
}

// WithEventBuffer sets the size of the watch channel.
func WithEventBuffer(size int) Option {
	return platform.WithEventBuffer(size)
}

// WithWatcherErrorHandler receives errors raised while watching the store.
func WithWatcherErrorHandler(fn func(error)) Option {
	return platform.WithWatcherErrorHandler(fn)
}

// --- Factory ---

// New creates a service over the store in the data directory at path.
func New(path string, opts ...Option) (*core.Service, error) {
	return platform.New(path, opts...)
}

// Init prepares the store explicitly and returns its repository.
func Init(path string, opts ...Option) (core.Repository, error) {
	return platform.Init(path, opts...)
}

// --- Safety & Utils ---

// ResolveDataPath determines the actual data directory based on safety rules.
func ResolveDataPath(userPath string, forceTemp bool) string {
	return platform.ResolveDataPath(userPath, forceTemp)
}

// IsDevRun reports whether the binary was built by go run or go test.
func IsDevRun() bool {
	return platform.IsDevRun()
}

// FindRoot looks upwards from startDir for a directory holding a store.
func FindRoot(startDir string) (string, error) {
	return platform.FindRoot(startDir)
}
