package policy

import (
	"context"
	"os"
	"sync/atomic"
	"time"

	pkgLog "intent-routing-engine/pkg/log"
)

// Store holds the active policy document behind a single atomically swapped
// pointer. Readers never block on a reload and never observe a partially
// constructed document: Load builds and validates the entire replacement off
// to the side and publishes it with one atomic write.
type Store struct {
	l      pkgLog.Logger
	active atomic.Pointer[Document]
}

// NewStore creates an empty Store. No document is active until the first
// successful Load.
func NewStore(l pkgLog.Logger) *Store {
	return &Store{l: l}
}

// Load parses, validates, and atomically publishes a policy document.
// On any failure the currently active document keeps serving untouched.
func (s *Store) Load(ctx context.Context, data []byte) (string, error) {
	doc, err := Parse(data)
	if err != nil {
		return "", err
	}

	if errs := Validate(doc); len(errs) > 0 {
		s.l.Warnf(ctx, "policy version %q rejected: %v", doc.Version, errs.Invariants())
		return "", errs
	}

	doc.PublishedAt = time.Now().UTC()

	prev := s.active.Swap(doc)
	if prev != nil {
		s.l.Infof(ctx, "policy published: %s (replaces %s)", doc.Version, prev.Version)
	} else {
		s.l.Infof(ctx, "policy published: %s", doc.Version)
	}

	return doc.Version, nil
}

// LoadFile reads a policy document from disk and publishes it via Load.
func (s *Store) LoadFile(ctx context.Context, path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return s.Load(ctx, data)
}

// Reload is the hot-reload entry point; semantics are identical to Load.
func (s *Store) Reload(ctx context.Context, data []byte) (string, error) {
	return s.Load(ctx, data)
}

// Active returns the current document snapshot, or nil before the first
// publish. Callers evaluating a request must call Active exactly once and
// reuse the returned snapshot throughout, so a concurrent reload cannot split
// one request across two policy versions.
func (s *Store) Active() *Document {
	return s.active.Load()
}

// Version returns the active policy version, or "" before the first publish.
func (s *Store) Version() string {
	if doc := s.active.Load(); doc != nil {
		return doc.Version
	}
	return ""
}
