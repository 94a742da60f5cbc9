package mesh

import (
	"math"

	"github.com/vovakirdan/rockfield/internal/core"
)

// Solid identifies a base polyhedron.
type Solid int

const (
	Icosahedron Solid = iota
	Dodecahedron
	Octahedron
)

// String returns the solid's name.
func (s Solid) String() string {
	switch s {
	case Icosahedron:
		return "icosahedron"
	case Dodecahedron:
		return "dodecahedron"
	case Octahedron:
		return "octahedron"
	default:
		return "unknown"
	}
}

var phi = (1 + math.Sqrt(5)) / 2

// baseSolid returns the unit-scale vertices and triangle indices of a solid.
func baseSolid(s Solid) ([]core.Vec3, []int) {
	switch s {
	case Dodecahedron:
		r := 1 / phi
		t := phi
		verts := []core.Vec3{
			// (±1, ±1, ±1)
			{X: -1, Y: -1, Z: -1}, {X: -1, Y: -1, Z: 1}, {X: -1, Y: 1, Z: -1}, {X: -1, Y: 1, Z: 1},
			{X: 1, Y: -1, Z: -1}, {X: 1, Y: -1, Z: 1}, {X: 1, Y: 1, Z: -1}, {X: 1, Y: 1, Z: 1},
			// (0, ±1/φ, ±φ)
			{X: 0, Y: -r, Z: -t}, {X: 0, Y: -r, Z: t}, {X: 0, Y: r, Z: -t}, {X: 0, Y: r, Z: t},
			// (±1/φ, ±φ, 0)
			{X: -r, Y: -t, Z: 0}, {X: -r, Y: t, Z: 0}, {X: r, Y: -t, Z: 0}, {X: r, Y: t, Z: 0},
			// (±φ, 0, ±1/φ)
			{X: -t, Y: 0, Z: -r}, {X: t, Y: 0, Z: -r}, {X: -t, Y: 0, Z: r}, {X: t, Y: 0, Z: r},
		}
		// Twelve pentagons, each fanned into three triangles.
		idx := []int{
			3, 11, 7, 3, 7, 15, 3, 15, 13,
			7, 19, 17, 7, 17, 6, 7, 6, 15,
			17, 4, 8, 17, 8, 10, 17, 10, 6,
			8, 0, 16, 8, 16, 2, 8, 2, 10,
			0, 12, 1, 0, 1, 18, 0, 18, 16,
			6, 10, 2, 6, 2, 13, 6, 13, 15,
			2, 16, 18, 2, 18, 3, 2, 3, 13,
			18, 1, 9, 18, 9, 11, 18, 11, 3,
			4, 14, 12, 4, 12, 0, 4, 0, 8,
			11, 9, 5, 11, 5, 19, 11, 19, 7,
			19, 5, 14, 19, 14, 4, 19, 4, 17,
			1, 12, 14, 1, 14, 5, 1, 5, 9,
		}
		return verts, idx

	case Octahedron:
		verts := []core.Vec3{
			{X: 1}, {X: -1}, {Y: 1}, {Y: -1}, {Z: 1}, {Z: -1},
		}
		idx := []int{
			0, 2, 4, 0, 4, 3, 0, 3, 5, 0, 5, 2,
			1, 2, 5, 1, 5, 3, 1, 3, 4, 1, 4, 2,
		}
		return verts, idx

	default:
		t := phi
		verts := []core.Vec3{
			{X: -1, Y: t}, {X: 1, Y: t}, {X: -1, Y: -t}, {X: 1, Y: -t},
			{Y: -1, Z: t}, {Y: 1, Z: t}, {Y: -1, Z: -t}, {Y: 1, Z: -t},
			{X: t, Z: -1}, {X: t, Z: 1}, {X: -t, Z: -1}, {X: -t, Z: 1},
		}
		idx := []int{
			0, 11, 5, 0, 5, 1, 0, 1, 7, 0, 7, 10, 0, 10, 11,
			1, 5, 9, 5, 11, 4, 11, 10, 2, 10, 7, 6, 7, 1, 8,
			3, 9, 4, 3, 4, 2, 3, 2, 6, 3, 6, 8, 3, 8, 9,
			4, 9, 5, 2, 4, 11, 6, 2, 10, 8, 6, 7, 9, 8, 1,
		}
		return verts, idx
	}
}

// subdivide builds a triangle soup for solid s at the given detail level,
// with every vertex projected onto the sphere of radius. Each base face is
// split into (detail+1)² triangles, all wound counter-clockwise seen from outside.
func subdivide(s Solid, detail int, radius float64) []core.Vec3 {
	verts, idx := baseSolid(s)
	cols := detail + 1
	soup := make([]core.Vec3, 0, len(idx)*cols*cols)

	for f := 0; f+2 < len(idx); f += 3 {
		a, b, c := verts[idx[f]], verts[idx[f+1]], verts[idx[f+2]]

		// Orient outward so face normals point away from the center.
		centroid := a.Add(b).Add(c)
		if b.Sub(a).Cross(c.Sub(a)).Dot(centroid) < 0 {
			b, c = c, b
		}

		soup = subdivideFace(soup, a, b, c, cols)
	}

	for i := range soup {
		soup[i] = soup[i].Normalize().Scale(radius)
	}
	return soup
}

// subdivideFace appends the cols² triangles covering face (a, b, c).
func subdivideFace(dst []core.Vec3, a, b, c core.Vec3, cols int) []core.Vec3 {
	grid := make([][]core.Vec3, cols+1)
	for i := 0; i <= cols; i++ {
		ai := a.Lerp(c, float64(i)/float64(cols))
		bi := b.Lerp(c, float64(i)/float64(cols))
		rows := cols - i
		grid[i] = make([]core.Vec3, rows+1)
		for j := 0; j <= rows; j++ {
			if j == 0 && i == cols {
				grid[i][j] = ai
				continue
			}
			grid[i][j] = ai.Lerp(bi, float64(j)/float64(rows))
		}
	}

	for i := 0; i < cols; i++ {
		for j := 0; j < 2*(cols-i)-1; j++ {
			k := j / 2
			if j%2 == 0 {
				dst = append(dst, grid[i][k], grid[i][k+1], grid[i+1][k])
			} else {
				dst = append(dst, grid[i][k+1], grid[i+1][k+1], grid[i+1][k])
			}
		}
	}
	return dst
}
