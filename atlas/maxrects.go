package atlas

import (
	"math"

	"atlaspack/geom"
)

// MaxRectsEngine is the MAXRECTS free-space engine: it tracks a bin's placed
// rectangles and a list of maximal (possibly overlapping) free rectangles, and
// places new rectangles either one at a time (Insert) or as a batch
// (InsertBatch) by scoring every candidate free rectangle under one of the
// five MaxRectsHeuristic strategies.
//
// Grounded on the ForeverZer0 maxrects.go reference: newMaxRects,
// findPositionBestShortSideFit/BestLongSideFit/BestAreaFit/BottomLeft/
// ContactPoint, splitFreeNode and pruneFreeList. The free-list pruning here is
// the full pairwise O(n^2) scan the packing invariants require, rather than
// the new-vs-old-only check that reference performs.
type MaxRectsEngine struct {
	binWidth, binHeight int
	allowRotate         bool

	used     []geom.Rect
	free     []geom.Rect
	usedArea int64

	newFree  []geom.Rect
	verifier disjointVerifier
}

// NewMaxRectsEngine returns an engine for a bin of the given size. When
// allowRotate is true, a piece may be placed with its width and height
// swapped whenever that orientation scores better.
func NewMaxRectsEngine(binWidth, binHeight int, allowRotate bool) *MaxRectsEngine {
	e := &MaxRectsEngine{}
	e.Init(binWidth, binHeight, allowRotate)
	return e
}

// Init resets the engine to a fresh bin of the given size, discarding any
// prior placements. It lets a caller reuse one engine across trial packings
// instead of allocating a new one per heuristic per candidate size.
func (e *MaxRectsEngine) Init(binWidth, binHeight int, allowRotate bool) {
	e.binWidth, e.binHeight = binWidth, binHeight
	e.allowRotate = allowRotate
	e.used = e.used[:0]
	e.free = e.free[:0]
	e.usedArea = 0
	e.verifier.reset()
	if binWidth > 0 && binHeight > 0 {
		e.free = append(e.free, geom.NewRect(0, 0, binWidth, binHeight))
	}
}

// Used returns the rectangles placed so far, in placement order.
func (e *MaxRectsEngine) Used() []geom.Rect { return e.used }

// Free returns the current maximal free-rectangle list. Entries may overlap
// each other; only Used entries are guaranteed disjoint.
func (e *MaxRectsEngine) Free() []geom.Rect { return e.free }

// Occupancy returns the fraction of the bin's area covered by placed
// rectangles, in [0, 1].
func (e *MaxRectsEngine) Occupancy() float64 {
	total := int64(e.binWidth) * int64(e.binHeight)
	if total == 0 {
		return 0
	}
	return float64(e.usedArea) / float64(total)
}

// Insert places a single w x h rectangle online under the given heuristic. It
// returns the placed rectangle, whose width and height may be swapped from the
// input when allowRotate picked the rotated orientation, or a degenerate
// (zero height) rectangle if no free rectangle could hold it.
func (e *MaxRectsEngine) Insert(w, h int, heuristic MaxRectsHeuristic) geom.Rect {
	rect, _, _, _, ok := e.bestFit(w, h, heuristic)
	if !ok {
		return geom.Rect{}
	}
	e.place(rect)
	return rect
}

// InsertBatch places as many items as will fit, offline: at each step it picks
// the (item, free rectangle, orientation) triple with the lowest lexicographic
// (score1, score2) pair across every remaining item, places it, and repeats.
// It returns the placements made, in placement order, and any items that could
// not be placed.
func (e *MaxRectsEngine) InsertBatch(items []Item, heuristic MaxRectsHeuristic) (placed []PlacedItem, unplaced []Item) {
	remaining := make([]Item, len(items))
	copy(remaining, items)

	for len(remaining) > 0 {
		bestIdx := -1
		var bestRect geom.Rect
		var bestRotated bool
		bestScore1, bestScore2 := math.MaxInt, math.MaxInt

		for i, it := range remaining {
			rect, rotated, s1, s2, ok := e.bestFit(it.Size.Width, it.Size.Height, heuristic)
			if !ok {
				continue
			}
			if s1 < bestScore1 || (s1 == bestScore1 && s2 < bestScore2) {
				bestIdx, bestRect, bestRotated = i, rect, rotated
				bestScore1, bestScore2 = s1, s2
			}
		}

		if bestIdx == -1 {
			break
		}
		e.place(bestRect)
		placed = append(placed, PlacedItem{ID: remaining[bestIdx].ID, Rect: bestRect, Rotated: bestRotated})
		remaining[bestIdx] = remaining[len(remaining)-1]
		remaining = remaining[:len(remaining)-1]
	}

	return placed, remaining
}

// bestFit scans every free rectangle (and, if allowRotate, both orientations
// of w x h) and returns the best-scoring candidate under heuristic. For
// MaxRectsCP, "best" means highest contact score; score1 is reported negated
// so InsertBatch's uniform "lower is better" comparison still applies.
func (e *MaxRectsEngine) bestFit(w, h int, heuristic MaxRectsHeuristic) (rect geom.Rect, rotated bool, score1, score2 int, ok bool) {
	if heuristic == MaxRectsCP {
		return e.bestFitContactPoint(w, h)
	}

	scorer := maxRectsScorer(heuristic)
	score1, score2 = math.MaxInt, math.MaxInt

	for _, fr := range e.free {
		if w <= fr.Width && h <= fr.Height {
			s1, s2 := scorer(fr, w, h)
			if s1 < score1 || (s1 == score1 && s2 < score2) {
				score1, score2 = s1, s2
				rect = geom.NewRect(fr.X, fr.Y, w, h)
				rotated, ok = false, true
			}
		}
		if e.allowRotate && h <= fr.Width && w <= fr.Height {
			s1, s2 := scorer(fr, h, w)
			if s1 < score1 || (s1 == score1 && s2 < score2) {
				score1, score2 = s1, s2
				rect = geom.NewRect(fr.X, fr.Y, h, w)
				rotated, ok = true, true
			}
		}
	}
	return rect, rotated, score1, score2, ok
}

func (e *MaxRectsEngine) bestFitContactPoint(w, h int) (rect geom.Rect, rotated bool, score1, score2 int, ok bool) {
	best := -1
	for _, fr := range e.free {
		if w <= fr.Width && h <= fr.Height {
			if s := e.contactScore(fr.X, fr.Y, w, h); s > best {
				best = s
				rect = geom.NewRect(fr.X, fr.Y, w, h)
				rotated, ok = false, true
			}
		}
		if e.allowRotate && h <= fr.Width && w <= fr.Height {
			if s := e.contactScore(fr.X, fr.Y, h, w); s > best {
				best = s
				rect = geom.NewRect(fr.X, fr.Y, h, w)
				rotated, ok = true, true
			}
		}
	}
	score1 = -best
	return rect, rotated, score1, 0, ok
}

// contactScore sums the length of every edge the candidate at (x, y, w, h)
// would share with the bin border or an already-placed rectangle.
func (e *MaxRectsEngine) contactScore(x, y, w, h int) int {
	score := 0
	if x == 0 || x+w == e.binWidth {
		score += h
	}
	if y == 0 || y+h == e.binHeight {
		score += w
	}
	for _, u := range e.used {
		if u.X == x+w || u.Right() == x {
			score += geom.OverlapLength(u.Y, u.Bottom(), y, y+h)
		}
		if u.Y == y+h || u.Bottom() == y {
			score += geom.OverlapLength(u.X, u.Right(), x, x+w)
		}
	}
	return score
}

func maxRectsScorer(h MaxRectsHeuristic) func(free geom.Rect, w, h int) (int, int) {
	switch h {
	case MaxRectsBLSF:
		return func(free geom.Rect, w, h int) (int, int) {
			dw, dh := geom.AbsDiff(free.Width, w), geom.AbsDiff(free.Height, h)
			return max(dw, dh), min(dw, dh)
		}
	case MaxRectsBAF:
		return func(free geom.Rect, w, h int) (int, int) {
			dw, dh := geom.AbsDiff(free.Width, w), geom.AbsDiff(free.Height, h)
			return int(free.Area()) - w*h, min(dw, dh)
		}
	case MaxRectsBL:
		return func(free geom.Rect, w, h int) (int, int) {
			return free.Y + h, free.X
		}
	default: // MaxRectsBSSF
		return func(free geom.Rect, w, h int) (int, int) {
			dw, dh := geom.AbsDiff(free.Width, w), geom.AbsDiff(free.Height, h)
			return min(dw, dh), max(dw, dh)
		}
	}
}

// place commits node as a used rectangle: every free rectangle it overlaps is
// removed and replaced with the up-to-four residual slabs from splitFreeNode,
// then the whole free list is pruned of duplicates and contained rectangles.
func (e *MaxRectsEngine) place(node geom.Rect) {
	if !e.verifier.add(node) {
		panic("atlas: MaxRectsEngine placed an overlapping rectangle")
	}

	e.newFree = e.newFree[:0]
	for i := 0; i < len(e.free); {
		if splitFreeNode(e.free[i], node, &e.newFree) {
			last := len(e.free) - 1
			e.free[i] = e.free[last]
			e.free = e.free[:last]
		} else {
			i++
		}
	}
	e.free = append(e.free, e.newFree...)
	e.pruneFreeList()

	e.used = append(e.used, node)
	e.usedArea += node.Area()
}

// splitFreeNode tests freeNode against usedNode using the separating-axis
// test; if they overlap, it appends the up-to-four rectangles left over from
// subtracting usedNode out of freeNode and returns true. The emitted slabs may
// overlap each other or other free rectangles; PruneFreeList is what enforces
// maximality afterwards.
func splitFreeNode(freeNode, usedNode geom.Rect, out *[]geom.Rect) bool {
	if usedNode.X >= freeNode.Right() || usedNode.Right() <= freeNode.X ||
		usedNode.Y >= freeNode.Bottom() || usedNode.Bottom() <= freeNode.Y {
		return false
	}
	if usedNode.X > freeNode.X {
		*out = append(*out, geom.NewRect(freeNode.X, freeNode.Y, usedNode.X-freeNode.X, freeNode.Height))
	}
	if usedNode.Right() < freeNode.Right() {
		*out = append(*out, geom.NewRect(usedNode.Right(), freeNode.Y, freeNode.Right()-usedNode.Right(), freeNode.Height))
	}
	if usedNode.Y > freeNode.Y {
		*out = append(*out, geom.NewRect(freeNode.X, freeNode.Y, freeNode.Width, usedNode.Y-freeNode.Y))
	}
	if usedNode.Bottom() < freeNode.Bottom() {
		*out = append(*out, geom.NewRect(freeNode.X, usedNode.Bottom(), freeNode.Width, freeNode.Bottom()-usedNode.Bottom()))
	}
	return true
}

// PruneFreeList removes every free rectangle that is a duplicate of, or
// wholly contained within, another free rectangle. O(n^2) in the size of the
// free list, run once per placement.
func (e *MaxRectsEngine) PruneFreeList() { e.pruneFreeList() }

func (e *MaxRectsEngine) pruneFreeList() {
	for i := 0; i < len(e.free); i++ {
		for j := i + 1; j < len(e.free); {
			switch {
			case e.free[i].ContainsRect(e.free[j]):
				last := len(e.free) - 1
				e.free[j] = e.free[last]
				e.free = e.free[:last]
			case e.free[j].ContainsRect(e.free[i]):
				last := len(e.free) - 1
				e.free[i] = e.free[last]
				e.free = e.free[:last]
				j = i + 1
			default:
				j++
			}
		}
	}
}
