package dcel

import (
	"fmt"
	"sort"
	"strings"

	"github.com/mcorte/mapoverlay"
	"github.com/mcorte/mapoverlay/linesegment"
	"github.com/mcorte/mapoverlay/numeric"
	"github.com/mcorte/mapoverlay/point"
)

// overlayPrefix owns every element the overlay allocates itself: the merged
// subdivision, the vertices materialised at novel intersection points, and
// chain edges whose index-derived id would clash with an existing one.
const overlayPrefix = "overlay"

// Overlay computes the overlay of two planar subdivisions: the subdivision
// whose faces are the non-empty pairwise intersections of a face of s1 with
// a face of s2, and whose edges are the maximal portions of input edges not
// crossed by another input edge.
//
// The operands must carry distinct owner prefixes (DcelError otherwise) and
// are left untouched; the result is a new DCEL. Collinear non-horizontal
// overlaps between input edges are unsupported and surface as a
// CollinearityError from the sweep.
//
// The construction merges the two edge lists, runs the sweep-line
// intersection over the canonical segments of the union, materialises a
// vertex at every intersection point that is not already a vertex, replaces
// each subdivided edge by a chain of half-edge pairs through its subdivision
// points, re-establishes the clockwise rotational order at every vertex
// whose incident set changed, and finally recomputes the face set from the
// rewired next-cycles.
func Overlay(s1, s2 *DCEL) (*DCEL, error) {
	if s1.prefix == s2.prefix {
		return nil, DcelError{Message: fmt.Sprintf("overlay operands share prefix %q", s1.prefix)}
	}

	m, overlapping, err := merge(s1, s2)
	if err != nil {
		return nil, err
	}

	segments, segmentEdge := m.canonicalSegments()
	result, err := linesegment.SweepLineIntersection(segments)
	if err != nil {
		return nil, err
	}

	// Vertices whose rotational order must be rebuilt: every coordinate
	// shared by both operands, every intersection point, and later the
	// subdivision points of split edges.
	touched := make(map[point.Key]bool, len(overlapping)+len(result.Intersections))
	for key := range overlapping {
		touched[key] = true
	}

	interKeys := make([]point.Key, 0, len(result.Intersections))
	for key := range result.Intersections {
		interKeys = append(interKeys, key)
	}
	sort.Slice(interKeys, func(i, j int) bool {
		if interKeys[i].Y != interKeys[j].Y {
			return interKeys[i].Y > interKeys[j].Y
		}
		return interKeys[i].X < interKeys[j].X
	})
	for _, key := range interKeys {
		touched[key] = true
		if _, ok := m.points[key]; !ok {
			vid := newVertexID(overlayPrefix, len(m.Vertices))
			m.Vertices[vid] = Vertex{ID: vid, Coordinates: result.Intersections[key].Point}
			m.points[key] = vid
		}
	}

	type splitJob struct {
		eid   EdgeID
		split *linesegment.SplitSegment
	}
	jobs := make([]splitJob, 0, len(result.SplitSegments))
	for segKey, split := range result.SplitSegments {
		jobs = append(jobs, splitJob{eid: segmentEdge[segKey], split: split})
	}
	sort.Slice(jobs, func(i, j int) bool { return jobs[i].eid < jobs[j].eid })
	for _, job := range jobs {
		if err := m.splitEdge(overlapping, job.eid, job.split, touched); err != nil {
			return nil, err
		}
	}

	keys := make([]point.Key, 0, len(touched))
	for key := range touched {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].Y != keys[j].Y {
			return keys[i].Y > keys[j].Y
		}
		return keys[i].X < keys[j].X
	})
	for _, key := range keys {
		m.rewireAt(overlapping, key)
	}

	if err := m.assignFaces(); err != nil {
		return nil, err
	}
	return m, nil
}

// merge builds the disjoint union of the two subdivisions under the overlay
// prefix: all vertex and half-edge records survive, faces are cleared. A
// coordinate present in both operands keeps both vertex records, which from
// then on share the union of their incident-edge lists; the overlapping map
// records those coordinates.
func merge(s1, s2 *DCEL) (*DCEL, map[point.Key][]VertexID, error) {
	m := &DCEL{
		Faces:    make(map[FaceID]Face),
		Edges:    make(map[EdgeID]HalfEdge, len(s1.Edges)+len(s2.Edges)),
		Vertices: make(map[VertexID]Vertex, len(s1.Vertices)+len(s2.Vertices)),
		points:   make(map[point.Key]VertexID, len(s1.points)+len(s2.points)),
		prefix:   overlayPrefix,
	}
	overlapping := make(map[point.Key][]VertexID)

	for _, src := range []*DCEL{s1, s2} {
		for _, vid := range sortedVertexIDs(src) {
			v := src.Vertices[vid]
			m.Vertices[vid] = Vertex{
				ID:            vid,
				Coordinates:   v.Coordinates,
				IncidentEdges: append([]EdgeID{}, v.IncidentEdges...),
			}
		}
		for _, eid := range sortedEdgeIDs(src) {
			if _, dup := m.Edges[eid]; dup {
				return nil, nil, DcelError{Message: fmt.Sprintf("edge id %s present in both operands", eid)}
			}
			e := src.Edges[eid]
			e.IncidentFace = ""
			m.Edges[eid] = e
		}
	}

	for _, vid := range sortedVertexIDs(s1) {
		m.points[s1.Vertices[vid].Coordinates.Key()] = vid
	}
	for _, vid := range sortedVertexIDs(s2) {
		key := s2.Vertices[vid].Coordinates.Key()
		existing, ok := m.points[key]
		if !ok {
			m.points[key] = vid
			continue
		}

		overlapping[key] = []VertexID{existing, vid}
		union := appendMissingEdges(
			append([]EdgeID{}, m.Vertices[existing].IncidentEdges...),
			m.Vertices[vid].IncidentEdges,
		)
		for _, rid := range []VertexID{existing, vid} {
			rec := m.Vertices[rid]
			rec.IncidentEdges = append([]EdgeID{}, union...)
			m.Vertices[rid] = rec
		}
	}

	return m, overlapping, nil
}

// canonicalSegments extracts one segment per geometric edge of the
// subdivision, directed from the y-upper to the y-lower endpoint and tagged
// with the id of the half-edge it came from. Twins and duplicate edges
// (equal endpoint sets) collapse onto the first id in sorted order.
func (d *DCEL) canonicalSegments() ([]linesegment.LineSegment, map[linesegment.SegmentKey]EdgeID) {
	index := make(map[linesegment.SegmentKey]EdgeID, len(d.Edges)/2)
	segments := make([]linesegment.LineSegment, 0, len(d.Edges)/2)

	for _, eid := range sortedEdgeIDs(d) {
		e := d.Edges[eid]
		origin := d.Vertices[e.Origin].Coordinates
		destination := d.Vertices[d.Edges[e.Twin].Origin].Coordinates

		upper, lower := linesegment.NewFromPoints(origin, destination).OrderByY()
		seg := linesegment.NewWithID(string(eid), upper, lower)
		key := seg.Key()
		if _, ok := index[key]; ok {
			continue
		}
		index[key] = eid
		segments = append(segments, seg)
	}
	return segments, index
}

// splitEdge replaces the half-edge pair of eid by a chain of half-edge pairs
// through the subdivision points of its segment, in order along the original
// edge direction. Edges without interior subdivision points are left alone.
func (d *DCEL) splitEdge(overlapping map[point.Key][]VertexID, eid EdgeID, split *linesegment.SplitSegment, touched map[point.Key]bool) error {
	e, ok := d.Edges[eid]
	if !ok {
		return nil
	}
	twin := d.Edges[e.Twin]
	originCoord := d.Vertices[e.Origin].Coordinates
	destCoord := d.Vertices[twin.Origin].Coordinates

	pts := append([]point.Point{}, split.Points...)
	pts = appendMissingPoint(pts, originCoord)
	pts = appendMissingPoint(pts, destCoord)
	sortSweepOrder(pts)
	if len(pts) <= 2 {
		return nil
	}

	// Orient the chain from the half-edge's origin to its destination.
	switch {
	case pts[0].Key() == originCoord.Key():
	case pts[len(pts)-1].Key() == originCoord.Key():
		for i, j := 0, len(pts)-1; i < j; i, j = i+1, j-1 {
			pts[i], pts[j] = pts[j], pts[i]
		}
	default:
		return OverlayError{Message: fmt.Sprintf("endpoints of edge %s do not bound its subdivision", eid)}
	}

	prefix := eid.Prefix()
	vids := make([]VertexID, len(pts))
	for i, p := range pts {
		vid := d.resolveVertex(overlapping, p.Key(), prefix)
		if vid.IsNull() {
			return OverlayError{Message: fmt.Sprintf("no vertex at %s for subdivided edge %s", p, eid)}
		}
		vids[i] = vid
		touched[p.Key()] = true
	}

	d.removeEdgeEverywhere(overlapping, eid)
	d.removeEdgeEverywhere(overlapping, e.Twin)

	forward := make([]EdgeID, 0, len(vids)-1)
	backward := make([]EdgeID, 0, len(vids)-1)
	for i := 0; i+1 < len(vids); i++ {
		fwd, rev, err := d.ensureEdgePair(overlapping, vids[i], vids[i+1], prefix)
		if err != nil {
			return err
		}
		forward = append(forward, fwd)
		backward = append(backward, rev)
	}

	for i := 0; i+1 < len(forward); i++ {
		d.link(forward[i], forward[i+1])
		d.link(backward[i+1], backward[i])
	}

	// Stitch the chain into the surrounding face cycles. When a neighbour
	// was itself subdivided these links are stale, and the rotational pass
	// at the chain endpoints replaces them.
	if _, ok := d.Edges[e.Prev]; ok {
		d.link(e.Prev, forward[0])
	}
	if _, ok := d.Edges[e.Next]; ok {
		d.link(forward[len(forward)-1], e.Next)
	}
	if _, ok := d.Edges[twin.Prev]; ok {
		d.link(twin.Prev, backward[len(backward)-1])
	}
	if _, ok := d.Edges[twin.Next]; ok {
		d.link(backward[0], twin.Next)
	}

	return nil
}

// ensureEdgePair returns the half-edge pair from vo to vd, creating it if no
// geometrically identical edge exists yet. Collinear horizontal overlaps
// make two owners contribute the same chain link; the second contribution
// reuses the first's pair.
func (d *DCEL) ensureEdgePair(overlapping map[point.Key][]VertexID, vo, vd VertexID, prefix string) (EdgeID, EdgeID, error) {
	oKey := d.Vertices[vo].Coordinates.Key()
	dKey := d.Vertices[vd].Coordinates.Key()

	for _, rid := range d.recordsAt(overlapping, oKey) {
		for _, cand := range d.Vertices[rid].IncidentEdges {
			rec, ok := d.Edges[cand]
			if !ok {
				continue
			}
			candTwin, ok := d.Edges[rec.Twin]
			if !ok {
				continue
			}
			if d.Vertices[candTwin.Origin].Coordinates.Key() == dKey {
				return rec.ID, rec.Twin, nil
			}
		}
	}

	fid := EdgeIDFromVertices(vo, vd, prefix)
	tid := EdgeIDFromVertices(vd, vo, prefix)
	if _, clash := d.Edges[fid]; clash {
		// Vertex indices are only unique per owner, so the index-derived id
		// can collide with an unrelated edge; allocate in the overlay
		// namespace instead.
		fid = EdgeIDFromVertices(vo, vd, overlayPrefix)
		tid = EdgeIDFromVertices(vd, vo, overlayPrefix)
		if _, clash := d.Edges[fid]; clash {
			return "", "", OverlayError{Message: fmt.Sprintf("cannot allocate an edge id between %s and %s", vo, vd)}
		}
	}

	d.Edges[fid] = HalfEdge{ID: fid, Origin: vo, Twin: tid}
	d.Edges[tid] = HalfEdge{ID: tid, Origin: vd, Twin: fid}
	for _, rid := range d.recordsAt(overlapping, oKey) {
		d.addIncident(rid, fid)
	}
	for _, rid := range d.recordsAt(overlapping, dKey) {
		d.addIncident(rid, tid)
	}
	return fid, tid, nil
}

// resolveVertex maps a coordinate to the vertex a chain should pass through.
// At coordinates shared by both operands the vertex of the subdivision
// owning the split segment is preferred.
//
// TODO: when an intersection coincides with a vertex of only one operand,
// the other operand's chains adopt that operand's vertex; segments whose
// endpoint is a vertex for one owner but not the other still need a
// dedicated reconciliation pass.
func (d *DCEL) resolveVertex(overlapping map[point.Key][]VertexID, key point.Key, prefix string) VertexID {
	if ids, ok := overlapping[key]; ok {
		for _, id := range ids {
			if strings.HasPrefix(string(id), prefix+"_") {
				return id
			}
		}
		return ids[0]
	}
	return d.points[key]
}

// recordsAt returns every vertex record located at the coordinate: both
// owners' records for overlapping points, the single known record otherwise.
func (d *DCEL) recordsAt(overlapping map[point.Key][]VertexID, key point.Key) []VertexID {
	if ids, ok := overlapping[key]; ok {
		return ids
	}
	if id, ok := d.points[key]; ok {
		return []VertexID{id}
	}
	return nil
}

// removeEdgeEverywhere deletes the half-edge record and unregisters it from
// every vertex record at its origin coordinate.
func (d *DCEL) removeEdgeEverywhere(overlapping map[point.Key][]VertexID, eid EdgeID) {
	rec, ok := d.Edges[eid]
	if !ok {
		return
	}
	key := d.Vertices[rec.Origin].Coordinates.Key()
	delete(d.Edges, eid)
	for _, rid := range d.recordsAt(overlapping, key) {
		v := d.Vertices[rid]
		kept := v.IncidentEdges[:0:0]
		for _, id := range v.IncidentEdges {
			if id != eid {
				kept = append(kept, id)
			}
		}
		v.IncidentEdges = kept
		d.Vertices[rid] = v
	}
}

// rewireAt rebuilds the clockwise incident order at a coordinate and
// re-applies the rotational rule around it. All vertex records at the
// coordinate end up sharing the combined, sorted incident list, so both
// owner prefixes see the same rotation.
func (d *DCEL) rewireAt(overlapping map[point.Key][]VertexID, key point.Key) {
	records := d.recordsAt(overlapping, key)
	if len(records) == 0 {
		return
	}

	var union []EdgeID
	for _, rid := range records {
		for _, eid := range d.Vertices[rid].IncidentEdges {
			if _, ok := d.Edges[eid]; !ok {
				continue
			}
			union = appendMissingEdges(union, []EdgeID{eid})
		}
	}
	if len(union) == 0 {
		return
	}

	sorted := d.sortIncidentClockwise(union)
	for _, rid := range records {
		rec := d.Vertices[rid]
		rec.IncidentEdges = append([]EdgeID{}, sorted...)
		d.Vertices[rid] = rec
	}
	d.wireRotation(sorted)
}

// link chains a into b: next(a) = b and prev(b) = a.
func (d *DCEL) link(a, b EdgeID) {
	ra := d.Edges[a]
	ra.Next = b
	d.Edges[a] = ra

	rb := d.Edges[b]
	rb.Prev = a
	d.Edges[b] = rb
}

func appendMissingEdges(dst []EdgeID, src []EdgeID) []EdgeID {
	for _, id := range src {
		present := false
		for _, existing := range dst {
			if existing == id {
				present = true
				break
			}
		}
		if !present {
			dst = append(dst, id)
		}
	}
	return dst
}

func appendMissingPoint(pts []point.Point, p point.Point) []point.Point {
	key := p.Key()
	for _, existing := range pts {
		if existing.Key() == key {
			return pts
		}
	}
	return append(pts, p)
}

// sortSweepOrder sorts points the way the sweep visits them: y descending,
// ties x ascending.
func sortSweepOrder(pts []point.Point) {
	eps := mapoverlay.Epsilon()
	sort.SliceStable(pts, func(i, j int) bool {
		if numeric.Equals(pts[i].Y(), pts[j].Y(), eps) {
			return pts[i].X() < pts[j].X()
		}
		return pts[i].Y() > pts[j].Y()
	})
}
