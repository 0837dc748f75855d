// Package memory provides an in-memory core.Repository, useful for tests and
// for embedding cofiy without touching the disk.
package memory

import (
	"context"
	"sync"

	"github.com/aretw0/cofiy/pkg/core"
)

// Repository keeps the document in memory. Documents are copied on the way
// in and out, so callers never share state with the store.
type Repository struct {
	mu       sync.RWMutex
	doc      core.Document
	readOnly bool
	loadErr  error
	saves    int
}

// NewRepository returns a repository seeded with doc.
func NewRepository(doc core.Document) *Repository {
	if doc.Companies == nil {
		doc.Companies = []core.Company{}
	}
	return &Repository{doc: doc.Clone()}
}

// SetReadOnly makes Save fail with core.ErrReadOnly.
func (r *Repository) SetReadOnly(ro bool) {
	r.mu.Lock()
	r.readOnly = ro
	r.mu.Unlock()
}

// FailLoad makes every Load return err until it is called with nil.
func (r *Repository) FailLoad(err error) {
	r.mu.Lock()
	r.loadErr = err
	r.mu.Unlock()
}

// Saves reports how many times Save succeeded.
func (r *Repository) Saves() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.saves
}

func (r *Repository) Initialize(ctx context.Context) error {
	return nil
}

func (r *Repository) Load(ctx context.Context) (core.Document, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.loadErr != nil {
		return core.Document{}, r.loadErr
	}
	return r.doc.Clone(), nil
}

func (r *Repository) Save(ctx context.Context, doc core.Document) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.readOnly {
		return core.ErrReadOnly
	}
	r.doc = doc.Clone()
	if r.doc.Companies == nil {
		r.doc.Companies = []core.Company{}
	}
	r.saves++
	return nil
}

// ComponentType implements introspection.Component.
func (r *Repository) ComponentType() string {
	return "memory"
}

var _ core.Repository = (*Repository)(nil)
