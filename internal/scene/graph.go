package scene

import "errors"

// ErrAlreadyInGraph is returned when an object is added to the graph a second time.
var ErrAlreadyInGraph = errors.New("scene: object already in graph")

// Object is anything the graph can hold: *Mesh or *Light.
type Object interface {
	isObject()
}

// Graph is the flat scene graph. Objects are kept in insertion order (draw order) and are never removed.
type Graph struct {
	objects []Object
	index   map[Object]struct{}
}

// NewGraph returns an empty graph.
func NewGraph() *Graph {
	return &Graph{index: make(map[Object]struct{})}
}

// Add appends o. Adding the same object twice returns ErrAlreadyInGraph and leaves the graph unchanged.
func (g *Graph) Add(o Object) error {
	if _, ok := g.index[o]; ok {
		return ErrAlreadyInGraph
	}
	g.index[o] = struct{}{}
	g.objects = append(g.objects, o)
	return nil
}

// Contains reports whether o has been added.
func (g *Graph) Contains(o Object) bool {
	_, ok := g.index[o]
	return ok
}

// Len returns the number of objects.
func (g *Graph) Len() int {
	return len(g.objects)
}

// Objects returns the objects in insertion order. The slice must not be modified.
func (g *Graph) Objects() []Object {
	return g.objects
}

// Meshes returns the meshes in insertion order.
func (g *Graph) Meshes() []*Mesh {
	out := make([]*Mesh, 0, len(g.objects))
	for _, o := range g.objects {
		if m, ok := o.(*Mesh); ok {
			out = append(out, m)
		}
	}
	return out
}

// Lights returns the lights in insertion order.
func (g *Graph) Lights() []*Light {
	var out []*Light
	for _, o := range g.objects {
		if l, ok := o.(*Light); ok {
			out = append(out, l)
		}
	}
	return out
}
