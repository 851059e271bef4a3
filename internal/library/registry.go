package library

import "sync"

// Registry hands out one shared Manager. The process creates a single
// Registry at startup and passes it to whatever needs the catalog; there is
// no package-level instance.
type Registry struct {
	once     sync.Once
	notifier Notifier
	opts     []Option
	manager  *Manager
}

func NewRegistry(notifier Notifier, opts ...Option) *Registry {
	return &Registry{notifier: notifier, opts: opts}
}

// Manager returns the shared Manager, creating it on first use.
func (r *Registry) Manager() *Manager {
	r.once.Do(func() {
		r.manager = NewManager(r.notifier, r.opts...)
	})
	return r.manager
}
