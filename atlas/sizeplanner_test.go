package atlas

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"atlaspack/geom"
)

func TestNextPow2(t *testing.T) {
	cases := map[int]int{0: 1, 1: 1, 2: 2, 3: 4, 5: 8, 1024: 1024, 1025: 2048}
	for in, want := range cases {
		assert.Equal(t, want, NextPow2(in), "NextPow2(%d)", in)
	}
}

func TestCeilDiv(t *testing.T) {
	assert.Equal(t, 3, CeilDiv(9, 3))
	assert.Equal(t, 4, CeilDiv(10, 3))
	assert.Equal(t, 0, CeilDiv(0, 3))
}

func TestCalcMinimumTextureSizeRespectsPow2Square(t *testing.T) {
	sz := CalcMinimumTextureSize(1000, geom.NewSize(1, 1), geom.NewSize(4096, 4096), geom.Thickness{}, RestrictionPow2Square)
	assert.Equal(t, sz.Width, sz.Height)
	assert.GreaterOrEqual(t, sz.Area(), int64(1000))
}

func TestCalcMinimumTextureSizeHonorsBorder(t *testing.T) {
	border := geom.Uniform(2)
	sz := CalcMinimumTextureSize(64, geom.NewSize(1, 1), geom.NewSize(256, 256), border, RestrictionAny)
	assert.GreaterOrEqual(t, usableArea(sz.Width, sz.Height, border), int64(64))
}

func TestCalcMinimumTextureSizeAtLeastMinRectSize(t *testing.T) {
	sz := CalcMinimumTextureSize(1, geom.NewSize(100, 50), geom.NewSize(4096, 4096), geom.Thickness{}, RestrictionAny)
	assert.GreaterOrEqual(t, sz.Width, 100)
	assert.GreaterOrEqual(t, sz.Height, 50)
}

func TestEnqueuePow2SizesIsMonotoneInArea(t *testing.T) {
	sizes := EnqueuePow2Sizes(geom.NewSize(16, 16), geom.NewSize(256, 256), RestrictionPow2)
	for i := 1; i < len(sizes); i++ {
		assert.GreaterOrEqual(t, sizes[i].Area(), sizes[i-1].Area())
	}
}

func TestEnqueuePow2SizesAnyReturnsNil(t *testing.T) {
	assert.Nil(t, EnqueuePow2Sizes(geom.NewSize(16, 16), geom.NewSize(256, 256), RestrictionAny))
}
