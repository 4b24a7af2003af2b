package world

import (
	"sync"
	"sync/atomic"

	"github.com/elliotchance/orderedmap/v2"
	"github.com/ethaniccc/float32-cube/cube"
	"github.com/oomph-ac/gamemove/collision"
	"github.com/oomph-ac/gamemove/oerror"
)

var currentWorldId atomic.Uint64

// Brush is an axis-aligned volume of the world: solid geometry, a liquid, a ladder or a clip.
type Brush struct {
	Name     string
	Box      cube.BBox
	Contents collision.Contents
	Surface  collision.Surface
	// Entity is the handle reported when a sweep stops against the brush. Zero means the world.
	Entity collision.Handle
	Group  collision.Group
}

// World is an in-memory brush world that answers hull sweeps and point contents queries. Brushes
// are kept in insertion order so that sweeps tie-break identically on every query.
type World struct {
	id      uint64
	brushes *orderedmap.OrderedMap[string, Brush]

	sync.RWMutex
}

// New returns an empty world.
func New() *World {
	return &World{
		id:      currentWorldId.Add(1),
		brushes: orderedmap.NewOrderedMap[string, Brush](),
	}
}

// ID returns the unique ID of the world.
func (w *World) ID() uint64 {
	return w.id
}

// AddBrush adds b to the world. Brush names must be unique.
func (w *World) AddBrush(b Brush) error {
	if b.Name == "" {
		return oerror.New("world: brush without a name")
	}
	if b.Box.Min() == b.Box.Max() {
		return oerror.New("world: brush %q has zero volume", b.Name)
	}
	if b.Contents == collision.ContentsEmpty {
		b.Contents = collision.ContentsSolid
	}
	if b.Surface.Name == "" {
		b.Surface = collision.DefaultSurface
	}
	if b.Entity == collision.NoEntity {
		b.Entity = collision.WorldEntity
	}

	w.Lock()
	defer w.Unlock()
	if _, ok := w.brushes.Get(b.Name); ok {
		return oerror.New("world: brush %q already exists", b.Name)
	}
	w.brushes.Set(b.Name, b)
	return nil
}

// MustAddBrush adds every brush passed and panics on the first failure. It is intended for tests
// and static fixtures.
func (w *World) MustAddBrush(brushes ...Brush) *World {
	for _, b := range brushes {
		if err := w.AddBrush(b); err != nil {
			panic(err)
		}
	}
	return w
}

// RemoveBrush removes the brush with the given name, returning false if there was none.
func (w *World) RemoveBrush(name string) bool {
	w.Lock()
	defer w.Unlock()
	return w.brushes.Delete(name)
}

// Brush returns the brush with the given name.
func (w *World) Brush(name string) (Brush, bool) {
	w.RLock()
	defer w.RUnlock()
	return w.brushes.Get(name)
}

// Brushes returns every brush in insertion order.
func (w *World) Brushes() []Brush {
	w.RLock()
	defer w.RUnlock()

	brushes := make([]Brush, 0, w.brushes.Len())
	for el := w.brushes.Front(); el != nil; el = el.Next() {
		brushes = append(brushes, el.Value)
	}
	return brushes
}

// Len returns the amount of brushes in the world.
func (w *World) Len() int {
	w.RLock()
	defer w.RUnlock()
	return w.brushes.Len()
}
