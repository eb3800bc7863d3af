// Package registry tracks which debug images have inspection support
// installed, keyed by image identity.
//
// A debugger front end drives the lifecycle explicitly: when it loads an
// image it registers that image's symbol table here, and when the image is
// unloaded it unregisters it. Both operations are idempotent and report
// whether they changed anything, so a front end that replays load events
// never double-installs.
package registry

import (
	"sort"
	"sync"

	"go.uber.org/zap"

	csdinspect "github.com/csgtools/csd-inspect"
	"github.com/csgtools/csd-inspect/errors"
	"github.com/csgtools/csd-inspect/inspect"
)

// ImageID identifies one loaded debug image, typically its file path or
// the debugger's own object identifier.
type ImageID string

// Registry maps loaded images to their symbol tables. The zero value is
// not usable; call New.
type Registry struct {
	mu     sync.RWMutex
	images map[ImageID]csdinspect.SymbolTable
}

// New creates an empty registry.
func New() *Registry {
	return &Registry{images: make(map[ImageID]csdinspect.SymbolTable)}
}

// Register installs the symbol table for an image. It returns false if the
// image is already registered, in which case the existing table is kept.
func (r *Registry) Register(id ImageID, table csdinspect.SymbolTable) bool {
	if table == nil {
		return false
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.images[id]; ok {
		Logger().Debug("image already registered", zap.String("image", string(id)))
		return false
	}
	r.images[id] = table
	Logger().Info("registered image", zap.String("image", string(id)))
	return true
}

// Unregister removes an image. It returns false if the image was not
// registered.
func (r *Registry) Unregister(id ImageID) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.images[id]; !ok {
		return false
	}
	delete(r.images, id)
	Logger().Info("unregistered image", zap.String("image", string(id)))
	return true
}

// Lookup returns the symbol table registered for an image.
func (r *Registry) Lookup(id ImageID) (csdinspect.SymbolTable, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	t, ok := r.images[id]
	return t, ok
}

// Images returns the registered image IDs in sorted order.
func (r *Registry) Images() []ImageID {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := make([]ImageID, 0, len(r.images))
	for id := range r.images {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// Inspect classifies a value against the symbol table of the given image.
// Inspecting against an unregistered image is an error; a registered image
// behaves like inspect.Inspect.
func (r *Registry) Inspect(id ImageID, v csdinspect.Value) (inspect.Rendering, error) {
	table, ok := r.Lookup(id)
	if !ok {
		return nil, errors.InvalidTarget("no symbol table registered for image "+string(id), nil)
	}
	return inspect.Inspect(v, table)
}
