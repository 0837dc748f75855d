package fs

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/aretw0/cofiy/pkg/core"
)

// DefaultFileName is the canonical store document inside the data directory.
const DefaultFileName = "companies.json"

// Repository implements core.Repository on a single document file.
type Repository struct {
	Path string // data directory

	file        string
	config      Config
	cache       *docCache
	serializers map[string]Serializer
	readOnly    bool

	mu            sync.RWMutex
	watcherActive bool
	lastLoad      *time.Time
}

// Config holds the configuration for the filesystem repository.
type Config struct {
	Path      string // data directory
	FileName  string // defaults to companies.json; the extension picks the serializer
	AutoInit  bool   // create the document on Load when it is missing
	MustExist bool   // fail Initialize if the data directory is missing
	ReadOnly  bool
	Logger    *slog.Logger
	// ErrorHandler receives watcher failures. Nil means log only.
	ErrorHandler func(error)
}

// NewRepository creates a new filesystem-backed repository.
func NewRepository(config Config) *Repository {
	if config.FileName == "" {
		config.FileName = DefaultFileName
	}
	if config.Logger == nil {
		config.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Repository{
		Path:        config.Path,
		file:        filepath.Join(config.Path, config.FileName),
		config:      config,
		cache:       newDocCache(),
		serializers: DefaultSerializers(),
		readOnly:    config.ReadOnly,
	}
}

// DocumentPath returns the full path of the canonical document.
func (r *Repository) DocumentPath() string {
	return r.file
}

// IsReadOnly reports whether Save is refused.
func (r *Repository) IsReadOnly() bool {
	return r.readOnly
}

func (r *Repository) serializer() (Serializer, error) {
	ext := strings.ToLower(filepath.Ext(r.file))
	s, ok := r.serializers[ext]
	if !ok {
		return nil, fmt.Errorf("no serializer for %q", ext)
	}
	return s, nil
}

// Initialize creates the data directory and, if absent, an empty document.
func (r *Repository) Initialize(ctx context.Context) error {
	if r.config.MustExist {
		info, err := os.Stat(r.Path)
		if os.IsNotExist(err) {
			return fmt.Errorf("data path does not exist: %s", r.Path)
		}
		if err != nil {
			return fmt.Errorf("failed to stat data path: %w", err)
		}
		if !info.IsDir() {
			return fmt.Errorf("data path is not a directory: %s", r.Path)
		}
	} else if !r.readOnly {
		if err := os.MkdirAll(r.Path, 0755); err != nil {
			return fmt.Errorf("failed to create data directory: %w", err)
		}
	}

	if _, err := os.Stat(r.file); err == nil || !os.IsNotExist(err) {
		return err
	}
	if r.readOnly {
		return nil
	}
	r.config.Logger.Info("creating empty store", "path", r.file)
	return r.write(core.NewDocument())
}

// Load reads the canonical document. A missing document is created first
// when AutoInit is set, otherwise an empty document is returned.
func (r *Repository) Load(ctx context.Context) (core.Document, error) {
	if err := ctx.Err(); err != nil {
		return core.Document{}, err
	}

	info, err := os.Stat(r.file)
	if os.IsNotExist(err) {
		if !r.config.AutoInit || r.readOnly {
			return core.NewDocument(), nil
		}
		if err := r.Initialize(ctx); err != nil {
			return core.Document{}, err
		}
		info, err = os.Stat(r.file)
	}
	if err != nil {
		return core.Document{}, fmt.Errorf("failed to stat store: %w", err)
	}

	if doc, ok := r.cache.Get(info); ok {
		r.config.Logger.Debug("store served from cache", "path", r.file)
		return doc, nil
	}

	s, err := r.serializer()
	if err != nil {
		return core.Document{}, err
	}
	data, err := os.ReadFile(r.file)
	if err != nil {
		return core.Document{}, fmt.Errorf("failed to read store: %w", err)
	}
	doc, err := s.Parse(bytes.NewReader(data))
	if err != nil {
		return core.Document{}, fmt.Errorf("failed to parse %s: %w", r.file, err)
	}

	r.cache.Set(info, doc)
	r.recordLoad()
	return doc, nil
}

// Save atomically replaces the canonical document.
func (r *Repository) Save(ctx context.Context, doc core.Document) error {
	if r.readOnly {
		return core.ErrReadOnly
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := os.MkdirAll(r.Path, 0755); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}
	return r.write(doc)
}

func (r *Repository) write(doc core.Document) error {
	s, err := r.serializer()
	if err != nil {
		return err
	}
	data, err := s.Serialize(doc)
	if err != nil {
		return fmt.Errorf("failed to serialize store: %w", err)
	}
	if err := WriteFileAtomic(r.file, data, 0644); err != nil {
		r.cache.Invalidate()
		return err
	}

	info, err := os.Stat(r.file)
	if err != nil {
		r.cache.Invalidate()
		return nil
	}
	if doc.Companies == nil {
		doc.Companies = []core.Company{}
	}
	r.cache.Set(info, doc)
	r.config.Logger.Debug("store saved", "path", r.file, "companies", len(doc.Companies))
	return nil
}

func (r *Repository) recordLoad() {
	r.mu.Lock()
	defer r.mu.Unlock()
	now := time.Now()
	r.lastLoad = &now
}

func (r *Repository) setWatcherActive(active bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.watcherActive = active
}

func (r *Repository) handleError(err error) {
	if r.config.ErrorHandler != nil {
		r.config.ErrorHandler(err)
		return
	}
	r.config.Logger.Error("watcher error", "error", err)
}

// ErrWatcherActive is returned when Watch is called on a repository that is
// already being watched.
var ErrWatcherActive = errors.New("watcher already active")

var _ core.Repository = (*Repository)(nil)
var _ core.Watchable = (*Repository)(nil)
