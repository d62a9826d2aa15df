package atlasimage

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetImageBBoxTrimsTransparentBorder(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 10, 10))
	img.Set(3, 4, color.NRGBA{R: 255, A: 255})
	img.Set(6, 7, color.NRGBA{R: 255, A: 255})

	bbox := GetImageBBox(img, 0)
	assert.Equal(t, image.Rect(3, 4, 7, 8), bbox)
}

func TestGetImageBBoxFullyTransparentReturnsBounds(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 5, 5))
	bbox := GetImageBBox(img, 0)
	assert.Equal(t, img.Bounds(), bbox)
}

func TestParallelVisitsEveryIndexExactlyOnce(t *testing.T) {
	const n = 257
	seen := make([]int, n)
	Parallel(n, func(i int) {
		seen[i]++
	})
	for i, count := range seen {
		assert.Equal(t, 1, count, "index %d visited %d times", i, count)
	}
}
