// Package objio reads and writes the minimal subset of Wavefront OBJ the
// CLI needs: "v" position lines and "f" face lines. It exists only to get
// a position stream and index buffer in and out of a file; normals, UVs
// and materials are ignored, and faces with more than three corners are
// fan-triangulated on read.
package objio

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// Mesh is a flat position stream (stride 12, x/y/z only) and a triangle
// index buffer, the same shapes the simplify package's public API expects.
type Mesh struct {
	Positions []float32
	Indices   []uint32
}

// Read parses an OBJ file at path into a Mesh. Faces with more than three
// vertices are fan-triangulated from their first corner.
func Read(path string) (Mesh, error) {
	f, err := os.Open(path)
	if err != nil {
		return Mesh{}, err
	}
	defer f.Close()
	return Decode(f)
}

// Decode parses OBJ content read from r into a Mesh.
func Decode(r io.Reader) (Mesh, error) {
	var m Mesh

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if i := strings.IndexByte(line, '#'); i >= 0 {
			line = line[:i]
		}
		if line == "" {
			continue
		}

		fields := strings.Fields(line)
		switch fields[0] {
		case "v":
			if len(fields) < 4 {
				return Mesh{}, fmt.Errorf("objio: line %d: want 3 coordinates after v", lineNo)
			}
			for _, s := range fields[1:4] {
				v, err := strconv.ParseFloat(s, 32)
				if err != nil {
					return Mesh{}, fmt.Errorf("objio: line %d: %w", lineNo, err)
				}
				m.Positions = append(m.Positions, float32(v))
			}

		case "f":
			if len(fields) < 4 {
				return Mesh{}, fmt.Errorf("objio: line %d: face needs at least 3 corners", lineNo)
			}
			corners := make([]uint32, 0, len(fields)-1)
			for _, s := range fields[1:] {
				s = strings.SplitN(s, "/", 2)[0]
				v, err := strconv.Atoi(s)
				if err != nil {
					return Mesh{}, fmt.Errorf("objio: line %d: %w", lineNo, err)
				}
				if v < 0 {
					v = len(m.Positions)/3 + v + 1
				}
				corners = append(corners, uint32(v-1))
			}
			for i := 1; i+1 < len(corners); i++ {
				m.Indices = append(m.Indices, corners[0], corners[i], corners[i+1])
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return Mesh{}, err
	}
	return m, nil
}

// Write emits m to path as a triangulated OBJ file.
func Write(path string, m Mesh) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return Encode(f, m)
}

// Encode writes m to w as a triangulated OBJ file.
func Encode(w io.Writer, m Mesh) error {
	bw := bufio.NewWriter(w)

	for i := 0; i+3 <= len(m.Positions); i += 3 {
		if _, err := fmt.Fprintf(bw, "v %g %g %g\n", m.Positions[i], m.Positions[i+1], m.Positions[i+2]); err != nil {
			return err
		}
	}
	for i := 0; i+3 <= len(m.Indices); i += 3 {
		if _, err := fmt.Fprintf(bw, "f %d %d %d\n", m.Indices[i]+1, m.Indices[i+1]+1, m.Indices[i+2]+1); err != nil {
			return err
		}
	}
	return bw.Flush()
}
