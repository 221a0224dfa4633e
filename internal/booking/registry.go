package booking

import (
	"context"
	"errors"
	"sync"

	"github.com/iliyamo/cinema-seat-booking/internal/store"
)

// Registry hands out one initialized Manager per profile.  Managers are
// built lazily from the profile's store on first use and kept for the life
// of the process.
type Registry struct {
	factory store.Factory
	opts    Options

	mu       sync.Mutex
	managers map[string]*entry
}

type entry struct {
	once sync.Once
	m    *Manager
	err  error
}

// NewRegistry returns a registry that builds managers with opts.  The
// ProfileID field of opts is ignored and set per profile.
func NewRegistry(factory store.Factory, opts Options) (*Registry, error) {
	if factory == nil {
		return nil, errors.New("booking: nil store factory")
	}
	// Validate the options once up front so Get only fails on storage errors.
	if _, err := NewManager(store.NewMemory().Scoped(""), opts); err != nil {
		return nil, err
	}
	return &Registry{factory: factory, opts: opts, managers: make(map[string]*entry)}, nil
}

// Catalog returns the movie catalog shared by every manager.
func (r *Registry) Catalog() Catalog { return r.opts.Catalog }

// Get returns the manager of profileID, initializing it from the store on
// first access.  A failed initialization is not cached.
func (r *Registry) Get(ctx context.Context, profileID string) (*Manager, error) {
	r.mu.Lock()
	e, ok := r.managers[profileID]
	if !ok {
		e = &entry{}
		r.managers[profileID] = e
	}
	r.mu.Unlock()

	e.once.Do(func() {
		opts := r.opts
		opts.ProfileID = profileID
		m, err := NewManager(r.factory(profileID), opts)
		if err == nil {
			_, err = m.Initialize(ctx)
		}
		e.m, e.err = m, err
	})
	if e.err != nil {
		r.mu.Lock()
		if r.managers[profileID] == e {
			delete(r.managers, profileID)
		}
		r.mu.Unlock()
		return nil, e.err
	}
	return e.m, nil
}
