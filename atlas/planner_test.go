package atlas

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"atlaspack/geom"
)

func TestTryProcessRejectsNilInput(t *testing.T) {
	p := NewTextureBinPacker(geom.NewSize(1024, 1024), RestrictionAny, false, geom.Thickness{})
	_, err := p.TryProcess(nil)
	require.Error(t, err)
	var argErr *ArgumentError
	assert.ErrorAs(t, err, &argErr)
}

func TestTryProcessEmptyInputIsValidAndDegenerate(t *testing.T) {
	border := geom.NewThickness(1, 2, 3, 4)
	p := NewTextureBinPacker(geom.NewSize(1024, 1024), RestrictionAny, false, border)
	result, err := p.TryProcess([]SourceImage{})
	require.NoError(t, err)
	assert.True(t, result.Valid)
	assert.Empty(t, result.Placements)
	assert.Equal(t, geom.NewSize(4, 6), result.Size)
}

func TestTryProcessZeroAreaInputsAreDegenerate(t *testing.T) {
	p := NewTextureBinPacker(geom.NewSize(1024, 1024), RestrictionAny, false, geom.Thickness{})
	sources := []SourceImage{
		{Rect: geom.NewRect(0, 0, 0, 0), Tag: "a"},
		{Rect: geom.NewRect(0, 0, 0, 5), Tag: "b"},
	}
	result, err := p.TryProcess(sources)
	require.NoError(t, err)
	require.True(t, result.Valid)
	require.Len(t, result.Placements, 2)
	for _, pl := range result.Placements {
		assert.True(t, pl.Dest.IsDegenerate())
	}
}

func TestTryProcessUniformGridPacksAllInputs(t *testing.T) {
	p := NewTextureBinPacker(geom.NewSize(1024, 1024), RestrictionPow2, false, geom.Thickness{})
	sources := make([]SourceImage, 16)
	for i := range sources {
		sources[i] = SourceImage{Rect: geom.NewRect(0, 0, 32, 32), Tag: i}
	}
	result, err := p.TryProcess(sources)
	require.NoError(t, err)
	require.True(t, result.Valid)
	assertPlacementsCoverInputsDisjointly(t, sources, result)
}

func TestTryProcessGeneralSearchPacksMixedSizes(t *testing.T) {
	p := NewTextureBinPacker(geom.NewSize(1024, 1024), RestrictionAny, true, geom.Thickness{})
	sources := []SourceImage{
		{Rect: geom.NewRect(0, 0, 64, 32), Tag: "a"},
		{Rect: geom.NewRect(0, 0, 32, 64), Tag: "b"},
		{Rect: geom.NewRect(0, 0, 16, 16), Tag: "c"},
		{Rect: geom.NewRect(0, 0, 48, 20), Tag: "d"},
		{Rect: geom.NewRect(0, 0, 10, 90), Tag: "e"},
	}
	result, err := p.TryProcess(sources)
	require.NoError(t, err)
	require.True(t, result.Valid)
	assertPlacementsCoverInputsDisjointly(t, sources, result)
}

func TestTryProcessInvalidWhenNothingFitsWithinMax(t *testing.T) {
	p := NewTextureBinPacker(geom.NewSize(8, 8), RestrictionPow2, false, geom.Thickness{})
	sources := []SourceImage{
		{Rect: geom.NewRect(0, 0, 100, 100)},
	}
	result, err := p.TryProcess(sources)
	require.NoError(t, err)
	assert.False(t, result.Valid)
}

func TestTryProcessIsDeterministicAcrossRuns(t *testing.T) {
	p := NewTextureBinPacker(geom.NewSize(1024, 1024), RestrictionAny, true, geom.Thickness{})
	sources := []SourceImage{
		{Rect: geom.NewRect(0, 0, 40, 40)},
		{Rect: geom.NewRect(0, 0, 20, 60)},
		{Rect: geom.NewRect(0, 0, 60, 20)},
		{Rect: geom.NewRect(0, 0, 10, 10)},
	}
	first, err := p.TryProcess(sources)
	require.NoError(t, err)
	second, err := p.TryProcess(sources)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestPackOneAtlasSplitsOverflowIntoLeftover(t *testing.T) {
	p := NewTextureBinPacker(geom.NewSize(64, 64), RestrictionAny, false, geom.Thickness{})
	sources := make([]SourceImage, 8)
	for i := range sources {
		sources[i] = SourceImage{Rect: geom.NewRect(0, 0, 40, 40), Tag: i}
	}
	placed, leftover, err := p.PackOneAtlas(sources)
	require.NoError(t, err)
	assert.True(t, placed.Valid)
	assert.NotEmpty(t, placed.Placements)
	assert.NotEmpty(t, leftover)
	assert.Equal(t, len(sources), len(placed.Placements)+len(leftover))
}

func assertPlacementsCoverInputsDisjointly(t *testing.T, sources []SourceImage, result PackResult) {
	t.Helper()
	require.Len(t, result.Placements, len(sources))
	for i, pl := range result.Placements {
		want := sources[i].Rect.Size()
		got := pl.Dest.Size()
		if pl.Rotated {
			got = got.Swapped()
		}
		assert.Equal(t, want, got, "placement %d changed size beyond rotation", i)
		assert.True(t, geom.NewRect(0, 0, result.Size.Width, result.Size.Height).ContainsRect(pl.Dest))
	}
	for i := 0; i < len(result.Placements); i++ {
		for j := i + 1; j < len(result.Placements); j++ {
			assert.True(t, result.Placements[i].Dest.Disjoint(result.Placements[j].Dest),
				"placements %d and %d overlap", i, j)
		}
	}
}
