package backend

import (
	"fmt"
	"log/slog"
	"sort"
	"sync"

	"github.com/c2fo/azfs"
)

// Endpoint identifies a storage service endpoint of one account.
type Endpoint struct {
	Kind           azfs.Kind
	Account        string
	EndpointSuffix string
}

// ServiceURL returns the https endpoint, ie: https://acct.blob.core.windows.net
func (e Endpoint) ServiceURL() string {
	return fmt.Sprintf("https://%s.%s.%s", e.Account, e.Kind, e.EndpointSuffix)
}

// Config is what a Factory receives to build a Backend.
type Config struct {
	Endpoint
	Credential azfs.Credential
	Logger     *slog.Logger

	// ServiceURL overrides Endpoint.ServiceURL(), ie: an emulator endpoint.
	ServiceURL string
}

// URL returns the service URL the backend should talk to.
func (c Config) URL() string {
	if c.ServiceURL != "" {
		return c.ServiceURL
	}
	return c.Endpoint.ServiceURL()
}

// Factory builds a Backend for one account and credential.
type Factory func(cfg Config) (azfs.Backend, error)

var mmu sync.RWMutex
var m map[azfs.Kind]Factory

// Register a backend factory for a storage kind.  Called from each backend package's init().
func Register(kind azfs.Kind, f Factory) {
	mmu.Lock()
	m[kind] = f
	mmu.Unlock()
}

// Unregister removes the factory of a storage kind
func Unregister(kind azfs.Kind) {
	mmu.Lock()
	delete(m, kind)
	mmu.Unlock()
}

// UnregisterAll removes every registered factory
func UnregisterAll() {
	// mainly for tests
	mmu.Lock()
	m = make(map[azfs.Kind]Factory)
	mmu.Unlock()
}

// Lookup returns the factory registered for kind, or nil.
func Lookup(kind azfs.Kind) Factory {
	mmu.RLock()
	defer mmu.RUnlock()
	return m[kind]
}

// RegisteredKinds returns every kind with a registered factory, sorted.
func RegisteredKinds() []azfs.Kind {
	var f []azfs.Kind
	mmu.RLock()
	for k := range m {
		f = append(f, k)
	}
	mmu.RUnlock()
	sort.Slice(f, func(i, j int) bool { return f[i] < f[j] })
	return f
}

func init() {
	m = make(map[azfs.Kind]Factory)
}
