package scene

import "github.com/lucasb-eyer/go-colorful"

// Scene is the container handed to a renderer: meshes, lights, cameras and the
// optional 2D chrome drawn on top.
type Scene struct {
	Background colorful.Color
	Chrome     *Chrome

	nodes []Node
}

func New() *Scene {
	return &Scene{}
}

// Add appends nodes in draw order. Adding the same node twice is a no-op.
func (s *Scene) Add(nodes ...Node) {
	for _, n := range nodes {
		if !s.contains(n) {
			s.nodes = append(s.nodes, n)
		}
	}
}

func (s *Scene) contains(n Node) bool {
	for _, existing := range s.nodes {
		if existing == n {
			return true
		}
	}
	return false
}

// Len returns the number of nodes added.
func (s *Scene) Len() int {
	return len(s.nodes)
}

func (s *Scene) Meshes() []*Mesh {
	var out []*Mesh
	for _, n := range s.nodes {
		if m, ok := n.(*Mesh); ok {
			out = append(out, m)
		}
	}
	return out
}

func (s *Scene) Lights() []*PointLight {
	var out []*PointLight
	for _, n := range s.nodes {
		if l, ok := n.(*PointLight); ok {
			out = append(out, l)
		}
	}
	return out
}

func (s *Scene) Cameras() []*PerspectiveCamera {
	var out []*PerspectiveCamera
	for _, n := range s.nodes {
		if c, ok := n.(*PerspectiveCamera); ok {
			out = append(out, c)
		}
	}
	return out
}
