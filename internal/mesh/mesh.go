// Package mesh generates procedural asteroid meshes. A mesh is a pure function
// of (radius, shapeSeed): building it twice yields bit-identical geometry.
package mesh

import (
	"math"

	"github.com/vovakirdan/rockfield/internal/core"
)

// mergePrecision is the grid size used to detect coincident vertices.
const mergePrecision = 1e4

// Mesh is an indexed triangle mesh with per-vertex normals.
type Mesh struct {
	Positions []core.Vec3
	Normals   []core.Vec3
	Indices   []uint32 // Three per triangle, counter-clockwise seen from outside

	Base   Solid // Base polyhedron the mesh was built from
	Detail int   // Subdivision level
}

// Triangles returns the number of triangles.
func (m *Mesh) Triangles() int {
	return len(m.Indices) / 3
}

// Bounds returns the smallest and largest vertex distance from the origin.
func (m *Mesh) Bounds() (minR, maxR float64) {
	if len(m.Positions) == 0 {
		return 0, 0
	}
	minR = math.Inf(1)
	for _, p := range m.Positions {
		l := p.Length()
		minR = math.Min(minR, l)
		maxR = math.Max(maxR, l)
	}
	return minR, maxR
}

// fromSoup merges coincident vertices of a triangle soup into an indexed mesh.
func fromSoup(soup []core.Vec3) *Mesh {
	type key struct{ x, y, z int64 }

	lookup := make(map[key]uint32, len(soup)/4)
	m := &Mesh{
		Positions: make([]core.Vec3, 0, len(soup)/4),
		Indices:   make([]uint32, 0, len(soup)),
	}

	for _, p := range soup {
		k := key{
			x: int64(math.Round(p.X * mergePrecision)),
			y: int64(math.Round(p.Y * mergePrecision)),
			z: int64(math.Round(p.Z * mergePrecision)),
		}
		idx, ok := lookup[k]
		if !ok {
			idx = uint32(len(m.Positions))
			lookup[k] = idx
			m.Positions = append(m.Positions, p)
		}
		m.Indices = append(m.Indices, idx)
	}

	// Drop triangles that collapsed onto fewer than three distinct vertices.
	kept := m.Indices[:0]
	for i := 0; i+2 < len(m.Indices); i += 3 {
		a, b, c := m.Indices[i], m.Indices[i+1], m.Indices[i+2]
		if a == b || b == c || a == c {
			continue
		}
		kept = append(kept, a, b, c)
	}
	m.Indices = kept

	m.computeNormals()
	return m
}

// computeNormals sets each vertex normal to the normalized sum of the
// area-weighted normals of the faces that share it.
func (m *Mesh) computeNormals() {
	normals := make([]core.Vec3, len(m.Positions))
	for i := 0; i+2 < len(m.Indices); i += 3 {
		ia, ib, ic := m.Indices[i], m.Indices[i+1], m.Indices[i+2]
		a, b, c := m.Positions[ia], m.Positions[ib], m.Positions[ic]
		n := b.Sub(a).Cross(c.Sub(a))
		normals[ia] = normals[ia].Add(n)
		normals[ib] = normals[ib].Add(n)
		normals[ic] = normals[ic].Add(n)
	}
	for i := range normals {
		n := normals[i].Normalize()
		if n.IsZero() {
			// Isolated vertex; fall back to the radial direction.
			n = m.Positions[i].Normalize()
		}
		normals[i] = n
	}
	m.Normals = normals
}
