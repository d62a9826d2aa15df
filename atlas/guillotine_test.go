package atlas

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"atlaspack/geom"
)

func TestGuillotineFreeRectsStayDisjoint(t *testing.T) {
	e := NewGuillotineEngine(100, 100, false)
	sizes := []geom.Size{{Width: 30, Height: 40}, {Width: 50, Height: 20}, {Width: 10, Height: 10}}
	for _, sz := range sizes {
		e.Insert(sz.Width, sz.Height, false, GuillotineBestAreaFit, SplitShorterLeftoverAxis)
	}
	free := e.Free()
	for i := 0; i < len(free); i++ {
		for j := i + 1; j < len(free); j++ {
			assert.True(t, free[i].Disjoint(free[j]), "free rects %v and %v overlap", free[i], free[j])
		}
	}
}

func TestGuillotineMergeCoalescesAdjacentFreeRects(t *testing.T) {
	e := NewGuillotineEngine(10, 10, false)
	e.free = []geom.Rect{
		geom.NewRect(0, 0, 10, 4),
		geom.NewRect(0, 4, 10, 6),
	}
	e.MergeFreeList()
	require.Len(t, e.Free(), 1)
	assert.Equal(t, geom.NewRect(0, 0, 10, 10), e.Free()[0])
}

func TestGuillotineMergeIsIdempotent(t *testing.T) {
	e := NewGuillotineEngine(100, 100, false)
	e.Insert(30, 30, true, GuillotineBestAreaFit, SplitMinimizeArea)
	e.Insert(20, 20, true, GuillotineBestAreaFit, SplitMinimizeArea)
	before := append([]geom.Rect(nil), e.Free()...)
	e.MergeFreeList()
	assert.ElementsMatch(t, before, e.Free())
}

func TestGuillotineInsertDegenerateWhenNoFit(t *testing.T) {
	e := NewGuillotineEngine(10, 10, false)
	r := e.Insert(11, 11, false, GuillotineBestAreaFit, SplitShorterAxis)
	assert.True(t, r.IsDegenerate())
}

func TestGuillotinePerfectFitShortCircuitsScoring(t *testing.T) {
	e := NewGuillotineEngine(10, 10, false)
	e.free = []geom.Rect{
		geom.NewRect(0, 0, 5, 5),
		geom.NewRect(5, 0, 5, 10),
	}
	items := []Item{
		{ID: 1, Size: geom.NewSize(5, 10)},
	}
	placed, unplaced := e.InsertBatch(items, false, GuillotineBestAreaFit, SplitShorterLeftoverAxis)
	require.Len(t, placed, 1)
	assert.Empty(t, unplaced)
	assert.Equal(t, geom.NewRect(5, 0, 5, 10), placed[0].Rect)
}

func TestSplitHorizontalShorterVsLongerLeftoverAxis(t *testing.T) {
	// fr is 10x10, placing 4x2 leaves leftoverW=6, leftoverH=8: unequal, so the
	// two leftover-axis heuristics must disagree on the cut direction.
	shorter := NewGuillotineEngine(10, 10, false)
	shorter.Insert(4, 2, false, GuillotineBestAreaFit, SplitShorterLeftoverAxis)
	assert.ElementsMatch(t, []geom.Rect{
		geom.NewRect(0, 2, 10, 8),
		geom.NewRect(4, 0, 6, 2),
	}, shorter.Free())

	longer := NewGuillotineEngine(10, 10, false)
	longer.Insert(4, 2, false, GuillotineBestAreaFit, SplitLongerLeftoverAxis)
	assert.ElementsMatch(t, []geom.Rect{
		geom.NewRect(0, 2, 4, 8),
		geom.NewRect(4, 0, 6, 10),
	}, longer.Free())
}

func TestSplitHorizontalMinimizeVsMaximizeArea(t *testing.T) {
	// fr is 10x10, placing 3x6 leaves leftoverW=7, leftoverH=4: w*leftoverH=12
	// and leftoverW*h=42, unequal, so Minimize and Maximize must disagree.
	minimize := NewGuillotineEngine(10, 10, false)
	minimize.Insert(3, 6, false, GuillotineBestAreaFit, SplitMinimizeArea)
	assert.ElementsMatch(t, []geom.Rect{
		geom.NewRect(0, 6, 3, 4),
		geom.NewRect(3, 0, 7, 10),
	}, minimize.Free())

	maximize := NewGuillotineEngine(10, 10, false)
	maximize.Insert(3, 6, false, GuillotineBestAreaFit, SplitMaximizeArea)
	assert.ElementsMatch(t, []geom.Rect{
		geom.NewRect(0, 6, 10, 4),
		geom.NewRect(3, 0, 7, 6),
	}, maximize.Free())
}

func TestGuillotineInsertBatchReportsUnplaced(t *testing.T) {
	e := NewGuillotineEngine(10, 10, false)
	items := []Item{
		{ID: 1, Size: geom.NewSize(10, 10)},
		{ID: 2, Size: geom.NewSize(5, 5)},
	}
	placed, unplaced := e.InsertBatch(items, true, GuillotineBestAreaFit, SplitShorterLeftoverAxis)
	require.Len(t, placed, 1)
	require.Len(t, unplaced, 1)
	assert.Equal(t, 2, unplaced[0].ID)
}
