package dynlib

import (
	"errors"
	"fmt"
	"log"
	"sort"
	"strings"
	"sync"
)

// Registry keeps track of the libraries a process has opened, keyed by name.
// Acquiring a name that is already loaded returns the same Library and bumps
// its reference count; the library is closed when the count drops to zero.
//
// Names are case-insensitive on Windows and case-sensitive elsewhere unless
// configured with WithCaseInsensitiveNames.
type Registry struct {
	mu      sync.Mutex
	cfg     config
	entries map[string]*registryEntry
}

type registryEntry struct {
	lib      *Library
	refCount int
}

// NewRegistry returns an empty Registry. opts apply to every library it opens.
func NewRegistry(opts ...Option) (*Registry, error) {
	cfg, err := resolveLoadConfig(opts...)
	if err != nil {
		return nil, err
	}
	return &Registry{cfg: cfg, entries: make(map[string]*registryEntry)}, nil
}

func (r *Registry) key(name string) string {
	if r.cfg.caseInsensitive {
		return strings.ToLower(name)
	}
	return name
}

// Acquire returns the library registered under name, opening it on first use.
// A registered library that was closed directly is reopened.
func (r *Registry) Acquire(name string) (*Library, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := r.key(name)
	if entry, ok := r.entries[key]; ok {
		if entry.lib.Handle() != 0 {
			entry.refCount++
			return entry.lib, nil
		}
		// Closed behind the registry's back; its references are void.
		delete(r.entries, key)
	}

	lib, err := open(name, r.cfg)
	if err != nil {
		return nil, err
	}
	r.entries[key] = &registryEntry{lib: lib, refCount: 1}
	return lib, nil
}

// Lookup returns the loaded library registered under name without taking a reference.
func (r *Registry) Lookup(name string) (*Library, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	entry, ok := r.entries[r.key(name)]
	if !ok || entry.lib.Handle() == 0 {
		return nil, false
	}
	return entry.lib, true
}

// Release drops one reference to the library registered under name and
// closes it when no references remain. A library the caller already closed
// is dropped without error.
func (r *Registry) Release(name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := r.key(name)
	entry, ok := r.entries[key]
	if !ok {
		return fmt.Errorf("library %q is not loaded", name)
	}
	if entry.lib.Handle() == 0 {
		delete(r.entries, key)
		return nil
	}

	entry.refCount--
	if entry.refCount > 0 {
		return nil
	}

	delete(r.entries, key)
	if err := entry.lib.Close(); err != nil && !errors.Is(err, ErrClosed) {
		return err
	}
	return nil
}

// Loaded returns the names of the loaded libraries, sorted.
func (r *Registry) Loaded() []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	names := make([]string, 0, len(r.entries))
	for _, entry := range r.entries {
		if entry.lib.Handle() == 0 {
			continue
		}
		names = append(names, entry.lib.Name())
	}
	sort.Strings(names)
	return names
}

// Close closes every loaded library regardless of its reference count.
func (r *Registry) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	var errs []error
	for key, entry := range r.entries {
		if err := entry.lib.Close(); err != nil && !errors.Is(err, ErrClosed) {
			log.Printf("WARNING: failed to unload %q: %v", entry.lib.Name(), err)
			errs = append(errs, err)
		}
		delete(r.entries, key)
	}
	return errors.Join(errs...)
}
