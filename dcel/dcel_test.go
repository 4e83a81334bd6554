package dcel

import (
	"testing"

	"github.com/mcorte/mapoverlay/point"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ring builds the directed edge cycle through the given corners.
func ring(corners ...point.Point) []Edge {
	edges := make([]Edge, 0, len(corners))
	for i := range corners {
		edges = append(edges, Edge{
			Origin:      corners[i],
			Destination: corners[(i+1)%len(corners)],
		})
	}
	return edges
}

func square(x, y, side float64) []Edge {
	return ring(
		point.New(x, y),
		point.New(x+side, y),
		point.New(x+side, y+side),
		point.New(x, y+side),
	)
}

// assertInvariants checks the structural invariants every DCEL must satisfy:
// twin/next/prev consistency, clockwise incident order with the face-cycle
// successor rule, closed face walks with the right signed-area signs, and a
// unique external face.
func assertInvariants(t *testing.T, d *DCEL) {
	t.Helper()

	for id, e := range d.Edges {
		twin, ok := d.Edges[e.Twin]
		require.True(t, ok, "edge %s: twin %s missing", id, e.Twin)
		assert.Equal(t, id, twin.Twin, "twin(twin(%s))", id)

		next, ok := d.Edges[e.Next]
		require.True(t, ok, "edge %s: next %s missing", id, e.Next)
		// Compared by location: an overlay keeps one vertex record per operand
		// at a coordinate both operands share.
		assert.True(t, d.Vertices[twin.Origin].Coordinates.Eq(d.Vertices[next.Origin].Coordinates),
			"origin(next(%s)) must be destination(%s)", id, id)
		assert.Equal(t, id, next.Prev, "prev(next(%s))", id)

		prev, ok := d.Edges[e.Prev]
		require.True(t, ok, "edge %s: prev %s missing", id, e.Prev)
		assert.Equal(t, id, prev.Next, "next(prev(%s))", id)

		assert.False(t, e.IncidentFace.IsNull(), "edge %s has no incident face", id)
	}

	for vid, v := range d.Vertices {
		require.GreaterOrEqual(t, len(v.IncidentEdges), 2, "vertex %s", vid)
		assert.Equal(t, d.sortIncidentClockwise(v.IncidentEdges), v.IncidentEdges,
			"vertex %s incident edges not in clockwise order", vid)
		n := len(v.IncidentEdges)
		for i := 0; i < n; i++ {
			e1 := v.IncidentEdges[i]
			e2 := v.IncidentEdges[(i+1)%n]
			assert.Equal(t, e2, d.Edges[d.Edges[e1].Twin].Next,
				"vertex %s: next(twin(%s))", vid, e1)
		}
	}

	externals := 0
	for _, f := range d.Faces {
		if f.IsExternal() {
			externals++
			require.NotEmpty(t, f.InnerComponents)
			for _, inner := range f.InnerComponents {
				cycle, err := d.Boundary(inner)
				require.NoError(t, err)
				assert.Negative(t, d.cycleArea(cycle), "external cycle at %s", inner)
				for _, eid := range cycle {
					assert.Equal(t, f.ID, d.Edges[eid].IncidentFace)
				}
			}
			continue
		}
		cycle, err := d.Boundary(f.OuterComponent)
		require.NoError(t, err)
		assert.Positive(t, d.cycleArea(cycle), "face %s", f.ID)
		for _, eid := range cycle {
			assert.Equal(t, f.ID, d.Edges[eid].IncidentFace)
		}
	}
	assert.Equal(t, 1, externals, "expected exactly one external face")
}

func TestNew_SingleSquare(t *testing.T) {
	d, err := New([][]Edge{square(0, 0, 2)}, "s1")
	require.NoError(t, err)

	assertInvariants(t, d)
	assert.Len(t, d.Vertices, 4)
	assert.Len(t, d.Edges, 8)
	assert.Equal(t, 1, d.InternalFaceCount())
	assert.Len(t, d.Faces, 2)

	v, ok := d.VertexAt(point.New(2, 2))
	require.True(t, ok)
	assert.Len(t, v.IncidentEdges, 2)

	_, ok = d.VertexAt(point.New(1, 1))
	assert.False(t, ok)
}

func TestNew_Triangle(t *testing.T) {
	d, err := New([][]Edge{ring(
		point.New(0, 0), point.New(4, 0), point.New(2, 3),
	)}, "s1")
	require.NoError(t, err)

	assertInvariants(t, d)
	assert.Equal(t, 1, d.InternalFaceCount())
}

func TestNew_DisjointSquares(t *testing.T) {
	d, err := New([][]Edge{square(0, 0, 1), square(5, 5, 1)}, "s1")
	require.NoError(t, err)

	assertInvariants(t, d)
	assert.Equal(t, 2, d.InternalFaceCount())

	external, ok := d.ExternalFace()
	require.True(t, ok)
	assert.Len(t, external.InnerComponents, 2)
}

func TestNew_Empty(t *testing.T) {
	d, err := New(nil, "s1")
	require.NoError(t, err)
	assert.Empty(t, d.Vertices)
	assert.Empty(t, d.Edges)
	assert.Empty(t, d.Faces)
}

func TestNew_InvalidPrefix(t *testing.T) {
	var dcelErr DcelError

	_, err := New(nil, "")
	require.ErrorAs(t, err, &dcelErr)

	_, err = New(nil, "s_1")
	require.ErrorAs(t, err, &dcelErr)
}

func TestNew_DanglingEdgeRejected(t *testing.T) {
	// A lone directed edge leaves both endpoints with a single incident
	// half-edge each.
	_, err := New([][]Edge{{
		{Origin: point.New(0, 0), Destination: point.New(1, 0)},
	}}, "s1")

	var dcelErr DcelError
	require.ErrorAs(t, err, &dcelErr)
}

func TestDCEL_IdentifierNaming(t *testing.T) {
	d, err := New([][]Edge{square(0, 0, 2)}, "s1")
	require.NoError(t, err)

	for vid := range d.Vertices {
		assert.Regexp(t, `^s1_v_\d+$`, string(vid))
	}
	for eid, e := range d.Edges {
		assert.Regexp(t, `^s1_e_\d+_\d+$`, string(eid))
		assert.Equal(t, "s1", eid.Prefix())
		expected := EdgeIDFromVertices(e.Origin, d.Edges[e.Twin].Origin, "s1")
		assert.Equal(t, expected, eid)
	}
}

func TestDCEL_SegmentsRoundTrip(t *testing.T) {
	original := square(0, 0, 2)
	d, err := New([][]Edge{original}, "s1")
	require.NoError(t, err)

	faces, err := d.Segments()
	require.NoError(t, err)
	require.Len(t, faces, 1)
	boundary := faces[0]
	require.Len(t, boundary, len(original))

	// The boundary is the original ring up to a cyclic rotation.
	offset := -1
	for i, e := range boundary {
		if e.Origin.Eq(original[0].Origin) {
			offset = i
			break
		}
	}
	require.GreaterOrEqual(t, offset, 0, "original first corner not on the boundary")
	for i := range original {
		got := boundary[(offset+i)%len(boundary)]
		assert.True(t, got.Origin.Eq(original[i].Origin), "edge %d origin", i)
		assert.True(t, got.Destination.Eq(original[i].Destination), "edge %d destination", i)
	}
}

func TestDCEL_Boundary(t *testing.T) {
	d, err := New([][]Edge{square(0, 0, 2)}, "s1")
	require.NoError(t, err)

	face, ok := d.ExternalFace()
	require.True(t, ok)
	cycle, err := d.Boundary(face.InnerComponents[0])
	require.NoError(t, err)
	assert.Len(t, cycle, 4)
}
