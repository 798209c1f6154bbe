package plcdata

import (
	"fmt"

	"github.com/puzpuzpuz/xsync/v3"
)

// Registry holds named frame templates.
//
// Applications that exchange more than one message type build each layout
// once, register it under a stable name, and clone it per transmission.
// Registry is safe for concurrent use.
type Registry struct {
	templates *xsync.MapOf[string, *Frame]
}

// NewRegistry creates an empty template registry.
func NewRegistry() *Registry {
	return &Registry{
		templates: xsync.NewMapOf[string, *Frame](),
	}
}

// Register stores template under name. ErrTemplateExists is returned if the
// name is already taken; templates are never silently replaced.
func (r *Registry) Register(name string, template *Frame) error {
	if _, loaded := r.templates.LoadOrStore(name, template); loaded {
		return fmt.Errorf("%w: %q", ErrTemplateExists, name)
	}

	return nil
}

// Get returns the template registered under name, or false if none exists.
func (r *Registry) Get(name string) (*Frame, bool) {
	return r.templates.Load(name)
}

// Names returns the names of all registered templates, in no particular
// order.
func (r *Registry) Names() []string {
	names := make([]string, 0, r.templates.Size())
	r.templates.Range(func(name string, _ *Frame) bool {
		names = append(names, name)
		return true
	})

	return names
}
