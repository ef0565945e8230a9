package objio

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecode_TriangleFaces(t *testing.T) {
	src := `
# a comment line
v 0 0 0
v 1 0 0
v 0 1 0
f 1 2 3
`
	m, err := Decode(strings.NewReader(src))
	require.NoError(t, err)

	assert.Equal(t, []float32{0, 0, 0, 1, 0, 0, 0, 1, 0}, m.Positions)
	assert.Equal(t, []uint32{0, 1, 2}, m.Indices)
}

func TestDecode_FanTriangulatesQuadFace(t *testing.T) {
	src := `
v 0 0 0
v 1 0 0
v 1 1 0
v 0 1 0
f 1 2 3 4
`
	m, err := Decode(strings.NewReader(src))
	require.NoError(t, err)

	assert.Equal(t, []uint32{0, 1, 2, 0, 2, 3}, m.Indices)
}

func TestDecode_IgnoresTexCoordAndNormalIndices(t *testing.T) {
	src := `
v 0 0 0
v 1 0 0
v 0 1 0
f 1/1/1 2/2/1 3/3/1
`
	m, err := Decode(strings.NewReader(src))
	require.NoError(t, err)
	assert.Equal(t, []uint32{0, 1, 2}, m.Indices)
}

func TestEncodeDecode_RoundTrips(t *testing.T) {
	in := Mesh{
		Positions: []float32{0, 0, 0, 1, 0, 0, 0, 1, 0},
		Indices:   []uint32{0, 1, 2},
	}

	var buf strings.Builder
	require.NoError(t, Encode(&buf, in))

	out, err := Decode(strings.NewReader(buf.String()))
	require.NoError(t, err)

	assert.Equal(t, in.Positions, out.Positions)
	assert.Equal(t, in.Indices, out.Indices)
}
