package atlas

import "atlaspack/geom"

// TextureBinPacker plans how to lay a set of SourceImage rectangles out into a
// single atlas no larger than maxTextureSize, honoring a size restriction and
// a reserved border, and optionally allowing 90-degree rotation.
//
// Grounded on the teacher's TextureBinPacker / try_process: sort the inputs
// descending by area, take the fast path when they are all the same size,
// otherwise search candidate atlas sizes against the fixed MAXRECTS heuristic
// order (BSSF, BLSF, BL, CP, BAF).
type TextureBinPacker struct {
	maxTextureSize geom.Size
	restriction    Restriction
	allowRotate    bool
	border         geom.Thickness
}

// NewTextureBinPacker returns a planner constrained to atlases no larger than
// maxTextureSize, of the given size restriction, with border pixels reserved
// on each side and no source image ever placed within it.
func NewTextureBinPacker(maxTextureSize geom.Size, restriction Restriction, allowRotate bool, border geom.Thickness) *TextureBinPacker {
	return &TextureBinPacker{
		maxTextureSize: maxTextureSize,
		restriction:    restriction,
		allowRotate:    allowRotate,
		border:         border,
	}
}

var generalHeuristicOrder = [...]MaxRectsHeuristic{
	MaxRectsBSSF,
	MaxRectsBLSF,
	MaxRectsBL,
	MaxRectsCP,
	MaxRectsBAF,
}

// TryProcess packs sources into a single atlas. It never mutates sources; the
// returned Placement.Dest coordinates are in the shrunken coordinate space
// left after reserving the border on each axis, so a caller compositing the
// atlas must translate every Dest by (border.Left, border.Top) itself.
func (p *TextureBinPacker) TryProcess(sources []SourceImage) (PackResult, error) {
	if sources == nil {
		return PackResult{}, &ArgumentError{Message: "sources must not be nil"}
	}
	if len(sources) == 0 {
		return p.degenerateResult(nil), nil
	}

	order := sortOrder(sources)
	sorted := make([]SourceImage, len(sources))
	for i, idx := range order {
		sorted[i] = sources[idx]
	}

	summary := summarize(sorted)

	var result PackResult
	switch {
	case summary.TotalArea == 0:
		result = p.degenerateResult(sorted)
	case summary.Uniform:
		r, ok := p.tryUniformGrid(sorted, summary)
		if !ok {
			return PackResult{Valid: false}, nil
		}
		result = r
	default:
		result = p.tryGeneral(sorted, summary)
	}

	if !result.Valid {
		return result, nil
	}
	return restorePlacementOrder(result, order), nil
}

// restorePlacementOrder undoes the descending-area sort applied before
// packing, so result.Placements lines up positionally with the sources slice
// TryProcess was originally called with.
func restorePlacementOrder(result PackResult, order []int) PackResult {
	placements := make([]Placement, len(result.Placements))
	for sortedIdx, origIdx := range order {
		placements[origIdx] = result.Placements[sortedIdx]
	}
	result.Placements = placements
	return result
}

// degenerateResult is the atlas produced for an empty input list, or an input
// list whose every rectangle has zero area: a minimal atlas sized only to
// contain the reserved border, with every source given a zero destRect.
func (p *TextureBinPacker) degenerateResult(sources []SourceImage) PackResult {
	placements := make([]Placement, len(sources))
	for i, s := range sources {
		placements[i] = Placement{Source: s}
	}
	size := geom.NewSize(max(1, p.border.SumX()), max(1, p.border.SumY()))
	return PackResult{Size: size, Placements: placements, Valid: true}
}

func (p *TextureBinPacker) candidateSizes(minArea int64, minRect geom.Size) []geom.Size {
	base := CalcMinimumTextureSize(minArea, minRect, p.maxTextureSize, p.border, p.restriction)
	if p.restriction == RestrictionAny {
		if base.Width > p.maxTextureSize.Width || base.Height > p.maxTextureSize.Height {
			return nil
		}
		return []geom.Size{base}
	}
	return EnqueuePow2Sizes(base, p.maxTextureSize, p.restriction)
}

// tryUniformGrid is the fast path for a batch of equally-sized sources: find a
// candidate atlas whose usable interior fits an N-cell grid of the shared
// size, and emit placements row-major with no rotation and no search.
func (p *TextureBinPacker) tryUniformGrid(sources []SourceImage, summary PackSummary) (PackResult, bool) {
	n := len(sources)
	w, h := summary.MaxSize.Width, summary.MaxSize.Height
	minRect := geom.NewSize(w, h)
	minArea := int64(n) * int64(w) * int64(h)

	for {
		for _, sz := range p.candidateSizes(minArea, minRect) {
			usableW, usableH := sz.Width-p.border.SumX(), sz.Height-p.border.SumY()
			if usableW < w || usableH < h {
				continue
			}
			cols, rows := usableW/w, usableH/h
			if cols <= 0 || int64(cols)*int64(rows) < int64(n) {
				continue
			}
			placements := make([]Placement, n)
			for i, src := range sources {
				dest := geom.NewRect((i%cols)*w, (i/cols)*h, w, h)
				placements[i] = Placement{Source: src, Dest: dest}
			}
			return PackResult{Size: sz, Placements: placements, Valid: true}, true
		}

		if p.restriction != RestrictionAny {
			return PackResult{}, false
		}
		next := minArea + max(minArea/10, 1)
		candidate := CalcMinimumTextureSize(next, minRect, p.maxTextureSize, p.border, p.restriction)
		if candidate.Width > p.maxTextureSize.Width || candidate.Height > p.maxTextureSize.Height {
			return PackResult{}, false
		}
		minArea = next
	}
}

// tryGeneral is the search path for non-uniform batches: candidate sizes are
// tried in order, and at each size the fixed heuristic order is tried until
// one heuristic places every source. Zero-area sources are held out of the
// engine and given a zero destRect directly, matching the degenerate handling
// used when every source is zero-area.
func (p *TextureBinPacker) tryGeneral(sources []SourceImage, summary PackSummary) PackResult {
	var real []SourceImage
	var realIdx []int
	for i, s := range sources {
		if s.Rect.IsDegenerate() {
			continue
		}
		real = append(real, s)
		realIdx = append(realIdx, i)
	}

	minArea := summary.TotalArea
	minRect := summary.MaxSize

	for {
		var worstMissing int64 = -1
		for _, sz := range p.candidateSizes(minArea, minRect) {
			binW, binH := sz.Width-p.border.SumX(), sz.Height-p.border.SumY()
			if binW <= 0 || binH <= 0 {
				continue
			}
			for _, h := range generalHeuristicOrder {
				placed, missing, ok := attemptMaxRects(real, binW, binH, p.allowRotate, h)
				if ok {
					return p.assembleResult(sz, sources, realIdx, placed)
				}
				if missing > worstMissing {
					worstMissing = missing
				}
			}
		}

		if p.restriction != RestrictionAny {
			return PackResult{Valid: false}
		}
		if worstMissing < 0 {
			worstMissing = 1
		}
		minArea += max(worstMissing/10, 1)
		candidate := CalcMinimumTextureSize(minArea, minRect, p.maxTextureSize, p.border, p.restriction)
		if candidate.Width > p.maxTextureSize.Width || candidate.Height > p.maxTextureSize.Height {
			return PackResult{Valid: false}
		}
	}
}

// PackOneAtlas packs as many of sources as fit into a single atlas sized to
// this planner's configured maximum (rounded down to satisfy the size
// restriction), trying the fixed heuristic order and keeping whichever
// heuristic placed the most items. It returns the placements made and the
// sources that did not fit, for a caller to feed into a following atlas.
//
// This is a coarser operation than TryProcess: TryProcess searches for the
// smallest atlas that fits everything, while PackOneAtlas always packs at the
// single largest permitted size and reports the leftover, which is what a
// multi-atlas overflow loop needs and TryProcess alone cannot answer.
func (p *TextureBinPacker) PackOneAtlas(sources []SourceImage) (PackResult, []SourceImage, error) {
	if sources == nil {
		return PackResult{}, nil, &ArgumentError{Message: "sources must not be nil"}
	}
	if len(sources) == 0 {
		return p.degenerateResult(nil), nil, nil
	}

	sorted := make([]SourceImage, len(sources))
	copy(sorted, sources)
	sortSourcesDescending(sorted)

	binSize := p.largestPermittedSize()
	binW, binH := binSize.Width-p.border.SumX(), binSize.Height-p.border.SumY()
	if binW <= 0 || binH <= 0 {
		return PackResult{}, sorted, nil
	}

	items := make([]Item, len(sorted))
	for i, s := range sorted {
		items[i] = Item{ID: i, Size: s.Rect.Size()}
	}

	var best []PlacedItem
	bestUnplaced := len(sorted) + 1
	for _, h := range generalHeuristicOrder {
		engine := NewMaxRectsEngine(binW, binH, p.allowRotate)
		placed, unplaced := engine.InsertBatch(items, h)
		if len(unplaced) < bestUnplaced {
			best, bestUnplaced = placed, len(unplaced)
		}
		if bestUnplaced == 0 {
			break
		}
	}

	placedIDs := make(map[int]bool, len(best))
	placements := make([]Placement, 0, len(best))
	for _, pl := range best {
		placements = append(placements, Placement{Source: sorted[pl.ID], Dest: pl.Rect, Rotated: pl.Rotated})
		placedIDs[pl.ID] = true
	}
	var leftover []SourceImage
	for i, s := range sorted {
		if !placedIDs[i] {
			leftover = append(leftover, s)
		}
	}
	return PackResult{Size: binSize, Placements: placements, Valid: len(placements) > 0}, leftover, nil
}

// largestPermittedSize returns the largest size no bigger than
// maxTextureSize on either axis that also satisfies the restriction.
func (p *TextureBinPacker) largestPermittedSize() geom.Size {
	switch p.restriction {
	case RestrictionPow2Square:
		s := NextPow2(max(p.maxTextureSize.Width, p.maxTextureSize.Height))
		for s > p.maxTextureSize.Width || s > p.maxTextureSize.Height {
			s /= 2
		}
		return geom.NewSize(s, s)
	case RestrictionPow2:
		w, h := NextPow2(p.maxTextureSize.Width), NextPow2(p.maxTextureSize.Height)
		for w > p.maxTextureSize.Width {
			w /= 2
		}
		for h > p.maxTextureSize.Height {
			h /= 2
		}
		return geom.NewSize(w, h)
	default:
		return p.maxTextureSize
	}
}

func attemptMaxRects(sources []SourceImage, binW, binH int, allowRotate bool, heuristic MaxRectsHeuristic) (placed []PlacedItem, missingArea int64, ok bool) {
	items := make([]Item, len(sources))
	for i, s := range sources {
		items[i] = Item{ID: i, Size: s.Rect.Size()}
	}
	engine := NewMaxRectsEngine(binW, binH, allowRotate)
	placed, unplaced := engine.InsertBatch(items, heuristic)
	if len(unplaced) == 0 {
		return placed, 0, true
	}
	for _, u := range unplaced {
		missingArea += u.Size.Area()
	}
	return placed, missingArea, false
}

func (p *TextureBinPacker) assembleResult(size geom.Size, sources []SourceImage, realIdx []int, placed []PlacedItem) PackResult {
	placements := make([]Placement, len(sources))
	for i, s := range sources {
		placements[i] = Placement{Source: s}
	}
	for _, pl := range placed {
		origIdx := realIdx[pl.ID]
		placements[origIdx] = Placement{Source: sources[origIdx], Dest: pl.Rect, Rotated: pl.Rotated}
	}
	return PackResult{Size: size, Placements: placements, Valid: true}
}
