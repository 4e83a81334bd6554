package linesegment

import (
	"sort"
	"strings"

	rbt "github.com/emirpasic/gods/trees/redblacktree"
	"github.com/mcorte/mapoverlay"
	"github.com/mcorte/mapoverlay/numeric"
	"github.com/mcorte/mapoverlay/point"
)

// statusKey orders the entries of the status structure. The primary key is
// the segment's score: the x-coordinate at which its supporting line crossed
// the reference line of the most recent insertion into the status (a
// horizontal segment keeps the score it was given on insertion). The segment key
// is a deterministic tie-break for the rare case of exactly equal scores.
type statusKey struct {
	score float64
	seg   SegmentKey
}

func statusKeyComparator(a, b interface{}) int {
	ka := a.(statusKey)
	kb := b.(statusKey)
	if ka.score < kb.score {
		return -1
	}
	if ka.score > kb.score {
		return 1
	}
	return compareSegmentKeys(ka.seg, kb.seg)
}

// statusStructure is the ordered sequence of segments currently crossing the
// sweep line, left to right. It is backed by a red-black tree keyed by the
// segments' x-intersection with a reference line slightly below the current
// event, which breaks ties deterministically at event points.
//
// Horizontal segments coincide with the sweep line and have no unique
// x-intersection; on insertion they are placed at the right end of the
// newly-inserted block by scoring them just past the block's maximum (or just
// left of their own left endpoint when the block is otherwise empty), and a
// previously scored horizontal segment retains its score on later re-sorts.
type statusStructure struct {
	tree   *rbt.Tree
	scores map[SegmentKey]float64
}

func newStatusStructure() *statusStructure {
	return &statusStructure{
		tree:   rbt.NewWith(statusKeyComparator),
		scores: make(map[SegmentKey]float64),
	}
}

// Len returns the number of segments on the sweep line.
func (s *statusStructure) Len() int {
	return s.tree.Size()
}

// segments returns the segments on the sweep line in left-to-right order.
func (s *statusStructure) segments() []LineSegment {
	ordered := make([]LineSegment, 0, s.tree.Size())
	it := s.tree.Iterator()
	for it.Next() {
		ordered = append(ordered, it.Value().(LineSegment))
	}
	return ordered
}

type statusEntry struct {
	seg   LineSegment
	score float64
}

// add inserts the given segments, scoring them against the reference line,
// and re-sorts the whole status: members already on the sweep line are
// rescored at the new reference line as well, except horizontal members,
// which keep their previous score.
func (s *statusStructure) add(segments []LineSegment, refLine Line) {
	eps := mapoverlay.Epsilon()

	existing := make([]statusEntry, 0, s.tree.Size())
	it := s.tree.Iterator()
	for it.Next() {
		seg := it.Value().(LineSegment)
		score := s.scores[seg.Key()]
		if !seg.IsHorizontal() {
			if ip, ok := seg.IntersectionWithLine(refLine); ok {
				score = ip.X()
			}
		}
		existing = append(existing, statusEntry{seg: seg, score: score})
	}

	block := make([]statusEntry, 0, len(segments))
	horizontals := make([]LineSegment, 0, 1)
	for _, seg := range segments {
		if _, present := s.scores[seg.Key()]; present {
			continue
		}
		if seg.IsHorizontal() {
			horizontals = append(horizontals, seg)
			continue
		}
		ip, ok := seg.IntersectionWithLine(refLine)
		if !ok {
			continue
		}
		block = append(block, statusEntry{seg: seg, score: ip.X()})
	}
	sort.SliceStable(block, func(i, j int) bool { return block[i].score < block[j].score })
	for _, h := range horizontals {
		var score float64
		if len(block) > 0 {
			score = block[len(block)-1].score + eps
		} else {
			left, _ := h.OrderByX()
			score = left.X() - eps
		}
		block = append(block, statusEntry{seg: h, score: score})
	}

	s.tree.Clear()
	s.scores = make(map[SegmentKey]float64, len(existing)+len(block))
	for _, e := range append(existing, block...) {
		key := e.seg.Key()
		s.scores[key] = e.score
		s.tree.Put(statusKey{score: e.score, seg: key}, e.seg)
	}
}

// remove deletes the given segments from the sweep line.
func (s *statusStructure) remove(segments []LineSegment) {
	for _, seg := range segments {
		key := seg.Key()
		score, ok := s.scores[key]
		if !ok {
			continue
		}
		s.tree.Remove(statusKey{score: score, seg: key})
		delete(s.scores, key)
	}
}

// neighbours returns the pair of segments immediately to the left and right
// of x-coordinate p.X() on the sweep line y = p.Y(). The third return value
// is false when no bracketing pair exists (p is extremal).
func (s *statusStructure) neighbours(p point.Point) (left, right LineSegment, ok bool) {
	eps := mapoverlay.Epsilon()
	sweep := HorizontalLine(p.Y())

	entries := make([]statusEntry, 0, s.tree.Size())
	it := s.tree.Iterator()
	for it.Next() {
		seg := it.Value().(LineSegment)
		x := s.scores[seg.Key()]
		if !seg.IsHorizontal() {
			if ip, intersects := seg.IntersectionWithLine(sweep); intersects {
				x = ip.X()
			}
		}
		entries = append(entries, statusEntry{seg: seg, score: x})
	}
	sort.SliceStable(entries, func(i, j int) bool { return entries[i].score < entries[j].score })

	for i := 0; i+1 < len(entries); i++ {
		if numeric.LessThanOrEqualTo(entries[i].score, p.X(), eps) &&
			numeric.LessThanOrEqualTo(p.X(), entries[i+1].score, eps) {
			return entries[i].seg, entries[i+1].seg, true
		}
	}
	return LineSegment{}, LineSegment{}, false
}

// flanks locates the leftmost and rightmost members of the given subset on
// the sweep line, together with their outer neighbours. Nil pointers signal
// that the corresponding segment does not exist.
func (s *statusStructure) flanks(subset []LineSegment) (leftNeighbour, leftmost, rightmost, rightNeighbour *LineSegment) {
	inSubset := make(map[SegmentKey]bool, len(subset))
	for _, seg := range subset {
		inSubset[seg.Key()] = true
	}

	ordered := s.segments()
	first, last := -1, -1
	for i, seg := range ordered {
		if inSubset[seg.Key()] {
			if first == -1 {
				first = i
			}
			last = i
		}
	}
	if first == -1 {
		return nil, nil, nil, nil
	}

	leftmost = &ordered[first]
	rightmost = &ordered[last]
	if first > 0 {
		leftNeighbour = &ordered[first-1]
	}
	if last+1 < len(ordered) {
		rightNeighbour = &ordered[last+1]
	}
	return leftNeighbour, leftmost, rightmost, rightNeighbour
}

// String renders the status left to right, for debug traces.
func (s *statusStructure) String() string {
	builder := strings.Builder{}
	builder.WriteString("status:")
	for _, seg := range s.segments() {
		builder.WriteString(" ")
		builder.WriteString(seg.String())
	}
	return builder.String()
}
