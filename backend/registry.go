package backend

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/grokify/mogo/log/slogutil"

	"github.com/c2fo/azfs"
)

// Key identifies a cached Backend.  Fingerprint comes from azfs.Credential.Fingerprint, so secrets never appear in
// the key and two credentials never share a handle.
type Key struct {
	Endpoint
	Fingerprint string
}

// Registry lazily builds and caches one Backend per Key.  It is safe for concurrent use.
type Registry struct {
	mu        sync.Mutex
	handles   map[Key]azfs.Backend
	overrides map[azfs.Kind]azfs.Backend
	urls      map[azfs.Kind]string
	lookup    func(azfs.Kind) Factory
	logger    *slog.Logger
}

// NewRegistry returns an empty Registry that resolves factories through Lookup.
func NewRegistry(logger *slog.Logger) *Registry {
	if logger == nil {
		logger = slogutil.Null()
	}
	return &Registry{
		handles:   map[Key]azfs.Backend{},
		overrides: map[azfs.Kind]azfs.Backend{},
		urls:      map[azfs.Kind]string{},
		lookup:    Lookup,
		logger:    logger,
	}
}

// Override pins b for every account of kind.  Passing nil removes the override.
func (r *Registry) Override(kind azfs.Kind, b azfs.Backend) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if b == nil {
		delete(r.overrides, kind)
		return
	}
	r.overrides[kind] = b
}

// SetServiceURL makes handles of kind talk to serviceURL instead of the public endpoint, ie: an emulator.
func (r *Registry) SetServiceURL(kind azfs.Kind, serviceURL string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.urls[kind] = serviceURL
}

// GetOrCreate returns the cached Backend for (endpoint, credential), building it on first use.  Construction runs
// under the registry lock so a key is never built twice.
func (r *Registry) GetOrCreate(ep Endpoint, cred azfs.Credential) (azfs.Backend, error) {
	if err := cred.Validate(); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if b, ok := r.overrides[ep.Kind]; ok {
		return b, nil
	}

	key := Key{Endpoint: ep, Fingerprint: cred.Fingerprint()}
	if b, ok := r.handles[key]; ok {
		return b, nil
	}

	factory := r.lookup(ep.Kind)
	if factory == nil {
		return nil, fmt.Errorf("no backend registered for %s: %w", ep.Kind, azfs.ErrUnsupportedOperation)
	}

	r.logger.Debug("creating backend",
		slog.String("kind", ep.Kind.String()),
		slog.String("account", ep.Account),
		slog.String("credential", key.Fingerprint),
	)
	b, err := factory(Config{Endpoint: ep, Credential: cred, Logger: r.logger, ServiceURL: r.urls[ep.Kind]})
	if err != nil {
		return nil, MapError("connect", ep.ServiceURL(), err)
	}
	r.handles[key] = b
	return b, nil
}

// Len returns the number of cached handles.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.handles)
}

// Close drops every cached handle.  Overrides are kept.
func (r *Registry) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.handles = map[Key]azfs.Backend{}
}
