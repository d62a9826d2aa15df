package atlas

import (
	"math"

	"atlaspack/geom"
)

// GuillotineEngine is the GUILLOTINE free-space engine: every placement cuts
// its chosen free rectangle along a single straight line into at most two
// residual rectangles, so the free list stays pairwise disjoint by
// construction (unlike MAXRECTS's maximal, possibly overlapping, free list).
//
// Grounded on the ForeverZer0 guillotine.go reference for the placement and
// split heuristics and the overall Insert/InsertBatch shape. Its mergeFreeList
// compared a free rectangle's fields against themselves instead of against the
// other candidate, so it never merged anything; MergeFreeList here compares
// the two candidates and only coalesces rectangles that share a full edge.
type GuillotineEngine struct {
	binWidth, binHeight int
	allowRotate         bool

	used     []geom.Rect
	free     []geom.Rect
	usedArea int64

	verifier disjointVerifier
}

// NewGuillotineEngine returns an engine for a bin of the given size.
func NewGuillotineEngine(binWidth, binHeight int, allowRotate bool) *GuillotineEngine {
	e := &GuillotineEngine{}
	e.Init(binWidth, binHeight, allowRotate)
	return e
}

// Init resets the engine to a fresh bin, discarding any prior placements.
func (e *GuillotineEngine) Init(binWidth, binHeight int, allowRotate bool) {
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
func (e *GuillotineEngine) Used() []geom.Rect { return e.used }

// Free returns the current free-rectangle list. Unlike MaxRectsEngine's, these
// are always pairwise disjoint.
func (e *GuillotineEngine) Free() []geom.Rect { return e.free }

// Occupancy returns the fraction of the bin's area covered by placed
// rectangles, in [0, 1].
func (e *GuillotineEngine) Occupancy() float64 {
	total := int64(e.binWidth) * int64(e.binHeight)
	if total == 0 {
		return 0
	}
	return float64(e.usedArea) / float64(total)
}

// Insert places a single w x h rectangle online, splitting the chosen free
// rectangle under splitH and merging afterwards if merge is true. It returns
// the placed rectangle or a degenerate (zero height) rectangle if nothing
// fit.
func (e *GuillotineEngine) Insert(w, h int, merge bool, placeH GuillotinePlacementHeuristic, splitH GuillotineSplitHeuristic) geom.Rect {
	idx, rect, rotated, ok := e.bestFree(w, h, placeH)
	if !ok {
		return geom.Rect{}
	}
	e.place(idx, rect, rotated, splitH, merge)
	return rect
}

// InsertBatch places as many items as will fit, offline: at each step it
// scans every remaining item against every free rectangle and both
// orientations, places the single best-scoring (item, free rectangle,
// orientation) triple, and repeats. A perfect fit in either orientation
// short-circuits the scan for that step.
func (e *GuillotineEngine) InsertBatch(items []Item, merge bool, placeH GuillotinePlacementHeuristic, splitH GuillotineSplitHeuristic) (placed []PlacedItem, unplaced []Item) {
	remaining := make([]Item, len(items))
	copy(remaining, items)

	for len(remaining) > 0 {
		bestItem := -1
		bestFreeIdx := -1
		var bestRect geom.Rect
		var bestRotated bool
		bestScore := math.MaxInt

	scan:
		for i, it := range remaining {
			for f, fr := range e.free {
				if it.Size.Width <= fr.Width && it.Size.Height <= fr.Height {
					s := guillotineScore(placeH, fr, it.Size.Width, it.Size.Height)
					if s < bestScore {
						bestItem, bestFreeIdx = i, f
						bestRect = geom.NewRect(fr.X, fr.Y, it.Size.Width, it.Size.Height)
						bestRotated = false
						bestScore = s
						if s == math.MinInt {
							break scan
						}
					}
				}
				if e.allowRotate && it.Size.Height <= fr.Width && it.Size.Width <= fr.Height {
					s := guillotineScore(placeH, fr, it.Size.Height, it.Size.Width)
					if s < bestScore {
						bestItem, bestFreeIdx = i, f
						bestRect = geom.NewRect(fr.X, fr.Y, it.Size.Height, it.Size.Width)
						bestRotated = true
						bestScore = s
						if s == math.MinInt {
							break scan
						}
					}
				}
			}
		}

		if bestItem == -1 {
			break
		}
		e.place(bestFreeIdx, bestRect, bestRotated, splitH, merge)
		placed = append(placed, PlacedItem{ID: remaining[bestItem].ID, Rect: bestRect, Rotated: bestRotated})
		remaining[bestItem] = remaining[len(remaining)-1]
		remaining = remaining[:len(remaining)-1]
	}

	return placed, remaining
}

func (e *GuillotineEngine) bestFree(w, h int, placeH GuillotinePlacementHeuristic) (idx int, rect geom.Rect, rotated bool, ok bool) {
	idx = -1
	best := math.MaxInt
	for f, fr := range e.free {
		if w <= fr.Width && h <= fr.Height {
			if s := guillotineScore(placeH, fr, w, h); s < best {
				idx, rect, rotated, ok, best = f, geom.NewRect(fr.X, fr.Y, w, h), false, true, s
				if s == math.MinInt {
					return
				}
			}
		}
		if e.allowRotate && h <= fr.Width && w <= fr.Height {
			if s := guillotineScore(placeH, fr, h, w); s < best {
				idx, rect, rotated, ok, best = f, geom.NewRect(fr.X, fr.Y, h, w), true, true, s
				if s == math.MinInt {
					return
				}
			}
		}
	}
	return
}

// guillotineScore scores placing a w x h piece into free rectangle fr under
// placeH. A perfect fit (both dimensions equal to the free rectangle's)
// short-circuits with math.MinInt so it always wins.
func guillotineScore(placeH GuillotinePlacementHeuristic, fr geom.Rect, w, h int) int {
	if fr.Width == w && fr.Height == h {
		return math.MinInt
	}
	dw, dh := fr.Width-w, fr.Height-h
	switch placeH {
	case GuillotineBestShortSideFit:
		return min(dw, dh)
	case GuillotineBestLongSideFit:
		return max(dw, dh)
	case GuillotineWorstAreaFit:
		return -(int(fr.Area()) - w*h)
	case GuillotineWorstShortSideFit:
		return -min(dw, dh)
	case GuillotineWorstLongSideFit:
		return -max(dw, dh)
	default: // GuillotineBestAreaFit
		return int(fr.Area()) - w*h
	}
}

// place removes free rectangle idx, splits it around rect using splitH, and
// re-adds any non-degenerate residuals; it then merges the free list if merge
// is set, and records rect as used.
func (e *GuillotineEngine) place(idx int, rect geom.Rect, rotated bool, splitH GuillotineSplitHeuristic, merge bool) {
	if !e.verifier.add(rect) {
		panic("atlas: GuillotineEngine placed an overlapping rectangle")
	}

	fr := e.free[idx]
	last := len(e.free) - 1
	e.free[idx] = e.free[last]
	e.free = e.free[:last]

	horizontal := splitHorizontal(splitH, fr, rect.Width, rect.Height)
	bottom, right := splitAlongAxis(fr, rect, horizontal)
	if !bottom.IsDegenerate() {
		e.free = append(e.free, bottom)
	}
	if !right.IsDegenerate() {
		e.free = append(e.free, right)
	}

	if merge {
		e.MergeFreeList()
	}

	e.used = append(e.used, rect)
	e.usedArea += rect.Area()
}

// splitAlongAxis divides fr around placed, which occupies fr's top-left
// corner. When horizontal is true the cut runs the full width of fr, giving a
// bottom strip spanning fr's width and a right strip confined to placed's
// height; when false the roles swap.
func splitAlongAxis(fr, placed geom.Rect, horizontal bool) (bottom, right geom.Rect) {
	if horizontal {
		bottom = geom.NewRect(fr.X, fr.Y+placed.Height, fr.Width, fr.Height-placed.Height)
		right = geom.NewRect(fr.X+placed.Width, fr.Y, fr.Width-placed.Width, placed.Height)
	} else {
		bottom = geom.NewRect(fr.X, fr.Y+placed.Height, placed.Width, fr.Height-placed.Height)
		right = geom.NewRect(fr.X+placed.Width, fr.Y, fr.Width-placed.Width, fr.Height)
	}
	return bottom, right
}

// splitHorizontal decides whether the cut separating the placed piece from
// its free rectangle's remainder should run horizontally (true) or vertically
// (false), by the rules of splitH.
func splitHorizontal(splitH GuillotineSplitHeuristic, fr geom.Rect, w, h int) bool {
	leftoverW, leftoverH := fr.Width-w, fr.Height-h
	switch splitH {
	case SplitLongerLeftoverAxis:
		return leftoverW > leftoverH
	case SplitMinimizeArea:
		return w*leftoverH > leftoverW*h
	case SplitMaximizeArea:
		return w*leftoverH <= leftoverW*h
	case SplitShorterAxis:
		return fr.Width <= fr.Height
	case SplitLongerAxis:
		return fr.Width > fr.Height
	default: // SplitShorterLeftoverAxis
		return leftoverW <= leftoverH
	}
}

// MergeFreeList scans every pair of free rectangles and coalesces any two that
// share a full edge into one; after a merge, the grown rectangle is compared
// again against every rectangle after it in the list. Rectangles earlier in
// the list are not revisited, so a single call can leave a mergeable pair
// behind that a further call would merge. It runs in O(n^2) and does not
// attempt three-way merges: three rectangles that would tile into one larger
// rectangle only pairwise merge if two of them already share a full edge.
func (e *GuillotineEngine) MergeFreeList() {
	for i := 0; i < len(e.free); i++ {
		for j := i + 1; j < len(e.free); {
			if merged, ok := tryMergeRects(e.free[i], e.free[j]); ok {
				e.free[i] = merged
				last := len(e.free) - 1
				e.free[j] = e.free[last]
				e.free = e.free[:last]
				j = i + 1
			} else {
				j++
			}
		}
	}
}

func tryMergeRects(a, b geom.Rect) (geom.Rect, bool) {
	if a.Width == b.Width && a.X == b.X {
		if a.Bottom() == b.Y {
			return geom.NewRect(a.X, a.Y, a.Width, a.Height+b.Height), true
		}
		if b.Bottom() == a.Y {
			return geom.NewRect(a.X, b.Y, a.Width, a.Height+b.Height), true
		}
	}
	if a.Height == b.Height && a.Y == b.Y {
		if a.Right() == b.X {
			return geom.NewRect(a.X, a.Y, a.Width+b.Width, a.Height), true
		}
		if b.Right() == a.X {
			return geom.NewRect(b.X, a.Y, a.Width+b.Width, a.Height), true
		}
	}
	return geom.Rect{}, false
}
