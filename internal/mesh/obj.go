package mesh

import (
	"bufio"
	"fmt"
	"io"
)

// WriteOBJ writes the mesh as Wavefront OBJ with vertex normals.
func (m *Mesh) WriteOBJ(w io.Writer, name string) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintf(bw, "# rockfield asteroid: %s detail %d\n", m.Base, m.Detail)
	fmt.Fprintf(bw, "# %d vertices, %d triangles\n", len(m.Positions), m.Triangles())
	if name != "" {
		fmt.Fprintf(bw, "o %s\n", name)
	}

	for _, p := range m.Positions {
		fmt.Fprintf(bw, "v %.6f %.6f %.6f\n", p.X, p.Y, p.Z)
	}
	for _, n := range m.Normals {
		fmt.Fprintf(bw, "vn %.6f %.6f %.6f\n", n.X, n.Y, n.Z)
	}

	// OBJ indices are 1-based
	for i := 0; i+2 < len(m.Indices); i += 3 {
		a, b, c := m.Indices[i]+1, m.Indices[i+1]+1, m.Indices[i+2]+1
		fmt.Fprintf(bw, "f %d//%d %d//%d %d//%d\n", a, a, b, b, c, c)
	}

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("mesh: cannot write obj: %w", err)
	}
	return nil
}
