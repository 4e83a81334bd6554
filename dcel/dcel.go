// Package dcel implements the doubly-connected edge list representation of a
// planar subdivision, and the overlay operation that combines two
// subdivisions into one.
//
// # Data Model
//
// A DCEL stores its vertices, half-edges and faces in three owning maps
// keyed by stable string identifiers; every cross-reference (twin, next,
// prev, incident face, incident edges) is an identifier, never a pointer.
// Updates replace whole records, which keeps the densely cyclic half-edge
// graph free of aliasing hazards.
//
// Identifiers are structured. A vertex id carries the owner prefix and an
// allocation index ("s1_v_17"); a half-edge id encodes the owner prefix and
// the indices of its origin and destination vertices ("s1_e_17_4"). The
// overlay relies on the prefix to tell which input subdivision an element
// came from, so the two operands of [Overlay] must carry distinct prefixes.
//
// # Invariants
//
// Every DCEL constructed from at least one polygon satisfies twin(twin(e)) =
// e, origin(twin(e)) = destination(e), prev(next(e)) = e, and next(e).origin
// = destination(e). The incident edges of every vertex are kept in clockwise
// order of outgoing direction, and for consecutive incident edges e1, e2 the
// face-cycle rule next(twin(e1)) = e2 holds. Every half-edge has a non-null
// incident face and exactly one face, the external one, has a null outer
// component. In an overlay result a coordinate shared by both operands keeps
// one vertex record per operand, so there the vertex equalities hold by
// location rather than by record id.
package dcel

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/mcorte/mapoverlay/point"
)

// VertexID identifies a vertex. The zero value is the null id.
type VertexID string

// EdgeID identifies a half-edge. The zero value is the null id.
type EdgeID string

// FaceID identifies a face. The zero value is the null id.
type FaceID string

// IsNull reports whether the id is the null vertex id.
func (id VertexID) IsNull() bool { return id == "" }

// IsNull reports whether the id is the null edge id.
func (id EdgeID) IsNull() bool { return id == "" }

// IsNull reports whether the id is the null face id.
func (id FaceID) IsNull() bool { return id == "" }

func newVertexID(prefix string, n int) VertexID {
	return VertexID(fmt.Sprintf("%s_v_%d", prefix, n))
}

// index returns the allocation index part of the vertex id.
func (id VertexID) index() string {
	return string(id[strings.LastIndex(string(id), "_")+1:])
}

// Prefix returns the owner prefix of the edge id.
func (id EdgeID) Prefix() string {
	return string(id[:strings.Index(string(id), "_")])
}

// EdgeIDFromVertices builds the id of the half-edge directed from origin to
// destination, owned by prefix.
func EdgeIDFromVertices(origin, destination VertexID, prefix string) EdgeID {
	return EdgeID(fmt.Sprintf("%s_e_%s_%s", prefix, origin.index(), destination.index()))
}

// Vertex is a vertex record: its coordinates and the outgoing half-edges,
// kept in clockwise angular order once the DCEL is wired.
type Vertex struct {
	ID            VertexID
	Coordinates   point.Point
	IncidentEdges []EdgeID
}

// HalfEdge is a half-edge record. Twin is the oppositely directed half-edge
// of the same geometric edge; Next and Prev chain the boundary cycle of
// IncidentFace.
type HalfEdge struct {
	ID           EdgeID
	Origin       VertexID
	Twin         EdgeID
	IncidentFace FaceID
	Next         EdgeID
	Prev         EdgeID
}

// Face is a face record. The external face has a null OuterComponent and
// lists the boundary cycles it encloses in InnerComponents.
type Face struct {
	ID              FaceID
	OuterComponent  EdgeID
	InnerComponents []EdgeID
}

// IsExternal reports whether the face is the unbounded external face.
func (f Face) IsExternal() bool { return f.OuterComponent.IsNull() }

// Edge is a directed input edge, used to describe polygon rings when
// constructing a DCEL and to report face boundaries.
type Edge struct {
	Origin      point.Point
	Destination point.Point
}

// DCEL is a planar subdivision as a doubly-connected edge list.
type DCEL struct {
	Faces    map[FaceID]Face
	Edges    map[EdgeID]HalfEdge
	Vertices map[VertexID]Vertex

	points map[point.Key]VertexID
	prefix string
}

// New constructs a DCEL from a list of polygon rings, each given as an
// ordered list of directed edges forming a closed simple cycle, under the
// given owner prefix. The prefix must be non-empty and must not contain
// underscores, which separate the id fields. An empty polygon list yields an
// empty DCEL with no vertices, edges or faces.
func New(polygons [][]Edge, prefix string) (*DCEL, error) {
	if prefix == "" || strings.Contains(prefix, "_") {
		return nil, DcelError{Message: fmt.Sprintf("invalid prefix %q", prefix)}
	}

	d := &DCEL{
		Faces:    make(map[FaceID]Face),
		Edges:    make(map[EdgeID]HalfEdge),
		Vertices: make(map[VertexID]Vertex),
		points:   make(map[point.Key]VertexID),
		prefix:   prefix,
	}
	if len(polygons) == 0 {
		return d, nil
	}

	// Vertices: one per distinct coordinate.
	for _, ring := range polygons {
		for _, e := range ring {
			d.ensureVertex(e.Origin)
			d.ensureVertex(e.Destination)
		}
	}

	// Half-edges: a twin pair per distinct directed edge.
	for _, ring := range polygons {
		for _, e := range ring {
			vo := d.points[e.Origin.Key()]
			vd := d.points[e.Destination.Key()]
			eid := EdgeIDFromVertices(vo, vd, prefix)
			tid := EdgeIDFromVertices(vd, vo, prefix)

			if _, ok := d.Edges[eid]; !ok {
				d.Edges[eid] = HalfEdge{ID: eid, Origin: vo, Twin: tid}
				d.addIncident(vo, eid)
			}
			if _, ok := d.Edges[tid]; !ok {
				d.Edges[tid] = HalfEdge{ID: tid, Origin: vd, Twin: eid}
				d.addIncident(vd, tid)
			}
		}
	}

	for id, v := range d.Vertices {
		if len(v.IncidentEdges) < 2 {
			return nil, DcelError{Message: fmt.Sprintf("vertex %s has fewer than two incident half-edges", id)}
		}
	}

	// Rotational order: sort each vertex's outgoing edges clockwise and wire
	// the face-cycle successor rule around it.
	for _, id := range sortedVertexIDs(d) {
		v := d.Vertices[id]
		v.IncidentEdges = d.sortIncidentClockwise(v.IncidentEdges)
		d.Vertices[id] = v
		d.wireRotation(v.IncidentEdges)
	}

	if err := d.assignFaces(); err != nil {
		return nil, err
	}
	return d, nil
}

// Prefix returns the owner prefix of the subdivision.
func (d *DCEL) Prefix() string { return d.prefix }

// VertexAt returns the vertex located at p, if any.
func (d *DCEL) VertexAt(p point.Point) (Vertex, bool) {
	id, ok := d.points[p.Key()]
	if !ok {
		return Vertex{}, false
	}
	return d.Vertices[id], true
}

// Boundary walks the next-cycle starting at edge and returns the cycle's
// edges in order. A broken chain (null or dangling next reference) is a
// DcelError.
func (d *DCEL) Boundary(edge EdgeID) ([]EdgeID, error) {
	boundary := []EdgeID{edge}
	next := d.Edges[edge].Next
	for next != edge {
		if next.IsNull() {
			return nil, DcelError{Message: fmt.Sprintf("broken face cycle at edge %s", edge)}
		}
		if _, ok := d.Edges[next]; !ok {
			return nil, DcelError{Message: fmt.Sprintf("face cycle of %s references missing edge %s", edge, next)}
		}
		if len(boundary) > len(d.Edges) {
			return nil, DcelError{Message: fmt.Sprintf("face cycle at edge %s does not close", edge)}
		}
		boundary = append(boundary, next)
		next = d.Edges[next].Next
	}
	return boundary, nil
}

// Segments returns, for every non-external face, the ordered list of
// directed edges on its outer boundary.
func (d *DCEL) Segments() ([][]Edge, error) {
	var segments [][]Edge
	for _, fid := range sortedFaceIDs(d) {
		face := d.Faces[fid]
		if face.IsExternal() {
			continue
		}
		boundary, err := d.Boundary(face.OuterComponent)
		if err != nil {
			return nil, err
		}
		faceSegments := make([]Edge, 0, len(boundary))
		for _, eid := range boundary {
			e := d.Edges[eid]
			faceSegments = append(faceSegments, Edge{
				Origin:      d.Vertices[e.Origin].Coordinates,
				Destination: d.Vertices[d.Edges[e.Next].Origin].Coordinates,
			})
		}
		segments = append(segments, faceSegments)
	}
	return segments, nil
}

// ExternalFace returns the unbounded face.
func (d *DCEL) ExternalFace() (Face, bool) {
	for _, f := range d.Faces {
		if f.IsExternal() {
			return f, true
		}
	}
	return Face{}, false
}

// InternalFaceCount returns the number of faces excluding the external one.
func (d *DCEL) InternalFaceCount() int {
	count := 0
	for _, f := range d.Faces {
		if !f.IsExternal() {
			count++
		}
	}
	return count
}

func (d *DCEL) ensureVertex(p point.Point) VertexID {
	key := p.Key()
	if id, ok := d.points[key]; ok {
		return id
	}
	id := newVertexID(d.prefix, len(d.Vertices))
	d.Vertices[id] = Vertex{ID: id, Coordinates: p}
	d.points[key] = id
	return id
}

func (d *DCEL) addIncident(vid VertexID, eid EdgeID) {
	v := d.Vertices[vid]
	for _, existing := range v.IncidentEdges {
		if existing == eid {
			return
		}
	}
	v.IncidentEdges = append(v.IncidentEdges, eid)
	d.Vertices[vid] = v
}

// angle returns the outgoing direction of the half-edge in degrees,
// normalised to [0, 360).
func (d *DCEL) angle(e HalfEdge) float64 {
	origin := d.Vertices[e.Origin].Coordinates
	destination := d.Vertices[d.Edges[e.Twin].Origin].Coordinates
	deg := math.Atan2(destination.Y()-origin.Y(), destination.X()-origin.X()) * 180 / math.Pi
	if deg < 0 {
		deg += 360
	}
	return deg
}

// sortIncidentClockwise orders outgoing half-edges clockwise (descending
// angle), breaking exact angle ties by id for determinism.
func (d *DCEL) sortIncidentClockwise(incident []EdgeID) []EdgeID {
	ordered := append([]EdgeID{}, incident...)
	sort.SliceStable(ordered, func(i, j int) bool {
		ai := d.angle(d.Edges[ordered[i]])
		aj := d.angle(d.Edges[ordered[j]])
		if ai == aj {
			return ordered[i] < ordered[j]
		}
		return ai > aj
	})
	return ordered
}

// wireRotation applies the face-cycle successor rule around one vertex: for
// every adjacent pair (e1, e2) of the clockwise incident order,
// twin(e1).next = e2 and e2.prev = twin(e1).
func (d *DCEL) wireRotation(ordered []EdgeID) {
	n := len(ordered)
	for i := 0; i < n; i++ {
		e1 := ordered[i]
		e2 := ordered[(i+1)%n]

		twin := d.Edges[d.Edges[e1].Twin]
		twin.Next = e2
		d.Edges[twin.ID] = twin

		rec := d.Edges[e2]
		rec.Prev = twin.ID
		d.Edges[e2] = rec
	}
}

// assignFaces recomputes the face set from scratch: every next-cycle becomes
// a face, interior faces have positive signed area, and all negative-area
// cycles attach to the single external face.
func (d *DCEL) assignFaces() error {
	d.Faces = make(map[FaceID]Face)
	for id, e := range d.Edges {
		e.IncidentFace = ""
		d.Edges[id] = e
	}

	var negatives []FaceID
	for _, eid := range sortedEdgeIDs(d) {
		if !d.Edges[eid].IncidentFace.IsNull() {
			continue
		}
		cycle, err := d.Boundary(eid)
		if err != nil {
			return err
		}
		fid := FaceID(fmt.Sprintf("f_%d", len(d.Faces)))
		for _, cid := range cycle {
			rec := d.Edges[cid]
			rec.IncidentFace = fid
			d.Edges[cid] = rec
		}
		d.Faces[fid] = Face{ID: fid, OuterComponent: eid}
		if d.cycleArea(cycle) < 0 {
			negatives = append(negatives, fid)
		}
	}

	if len(negatives) == 0 {
		return DcelError{Message: "no external face found"}
	}

	// All clockwise cycles bound the unbounded region; they collapse into
	// the single external face, which records them as inner components.
	external := d.Faces[negatives[0]]
	external.InnerComponents = []EdgeID{external.OuterComponent}
	external.OuterComponent = ""
	for _, fid := range negatives[1:] {
		face := d.Faces[fid]
		cycle, err := d.Boundary(face.OuterComponent)
		if err != nil {
			return err
		}
		for _, cid := range cycle {
			rec := d.Edges[cid]
			rec.IncidentFace = external.ID
			d.Edges[cid] = rec
		}
		external.InnerComponents = append(external.InnerComponents, face.OuterComponent)
		delete(d.Faces, fid)
	}
	d.Faces[external.ID] = external
	return nil
}

// cycleArea computes the signed area of a face cycle with the shoelace
// formula over the cycle's origins: positive for counterclockwise (interior)
// cycles, negative for clockwise ones.
func (d *DCEL) cycleArea(cycle []EdgeID) float64 {
	area := 0.0
	for _, eid := range cycle {
		e := d.Edges[eid]
		origin := d.Vertices[e.Origin].Coordinates
		destination := d.Vertices[d.Edges[e.Next].Origin].Coordinates
		area += origin.X()*destination.Y() - origin.Y()*destination.X()
	}
	return area / 2
}

func sortedVertexIDs(d *DCEL) []VertexID {
	ids := make([]VertexID, 0, len(d.Vertices))
	for id := range d.Vertices {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

func sortedEdgeIDs(d *DCEL) []EdgeID {
	ids := make([]EdgeID, 0, len(d.Edges))
	for id := range d.Edges {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

func sortedFaceIDs(d *DCEL) []FaceID {
	ids := make([]FaceID, 0, len(d.Faces))
	for id := range d.Faces {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}
