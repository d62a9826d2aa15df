package atlasimage

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"os"
	"path/filepath"
	"sync"

	"github.com/disintegration/imaging"

	"atlaspack/atlas"
	"atlaspack/geom"
)

// GetImageBBox returns the smallest rectangle containing every pixel of img
// whose alpha exceeds alphaThreshold. If img is fully transparent, it returns
// img's own bounds unchanged, so trimming never produces a zero-area result
// for an entirely blank sprite.
//
// Grounded on the teacher's GetImageBBox: its two pixel-format fast paths
// (image.RGBA, image.NRGBA) share one loop over their common Pix/stride
// layout, and every other image type goes through a generic At-based loop.
func GetImageBBox(img image.Image, alphaThreshold uint8) image.Rectangle {
	bounds := img.Bounds()
	if bounds.Empty() {
		return image.Rectangle{}
	}

	var pix []uint8
	var stride int
	switch src := img.(type) {
	case *image.RGBA:
		pix, stride = src.Pix, src.Stride
	case *image.NRGBA:
		pix, stride = src.Pix, src.Stride
	}

	minX, minY := bounds.Max.X, bounds.Max.Y
	maxX, maxY := bounds.Min.X, bounds.Min.Y
	found := false

	grow := func(x, y int) {
		found = true
		minX, minY = min(minX, x), min(minY, y)
		maxX, maxY = max(maxX, x), max(maxY, y)
	}

	if pix != nil {
		for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
			row := (y - bounds.Min.Y) * stride
			for x := bounds.Min.X; x < bounds.Max.X; x++ {
				i := row + (x-bounds.Min.X)*4
				if pix[i+3] > alphaThreshold {
					grow(x, y)
				}
			}
		}
	} else {
		for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
			for x := bounds.Min.X; x < bounds.Max.X; x++ {
				_, _, _, a := img.At(x, y).RGBA()
				if uint8(a>>8) > alphaThreshold {
					grow(x, y)
				}
			}
		}
	}

	if !found {
		return bounds
	}
	return image.Rect(minX, minY, maxX+1, maxY+1)
}

// LoadSource is the on-disk identity of one sprite, carried in
// atlas.SourceImage.Tag through the packing step so BuildAtlas can find the
// pixels again afterwards.
type LoadSource struct {
	Path        string
	OriginalDim image.Rectangle
	TrimmedFrom image.Rectangle
}

// LoadSources reads the dimensions of every path, optionally trimming
// transparent borders first, and returns one atlas.SourceImage per path ready
// to hand to a atlas.TextureBinPacker. When trim is false, only each image's
// header is decoded; when true, the whole image is decoded to compute its
// trimmed bounding box.
func LoadSources(paths []string, trim bool, alphaThreshold uint8) ([]atlas.SourceImage, error) {
	sources := make([]atlas.SourceImage, len(paths))
	errs := make([]error, len(paths))

	Parallel(len(paths), func(i int) {
		path := paths[i]
		file, err := os.Open(path)
		if err != nil {
			errs[i] = err
			return
		}
		defer file.Close()

		if trim {
			img, err := imaging.Decode(file)
			if err != nil {
				errs[i] = fmt.Errorf("decode %s: %w", path, err)
				return
			}
			origBounds := img.Bounds()
			trimmed := GetImageBBox(img, alphaThreshold)
			sources[i] = atlas.SourceImage{
				Rect: geom.NewRect(0, 0, trimmed.Dx(), trimmed.Dy()),
				Tag:  LoadSource{Path: path, OriginalDim: origBounds, TrimmedFrom: trimmed},
			}
			return
		}

		cfg, _, err := image.DecodeConfig(file)
		if err != nil {
			errs[i] = fmt.Errorf("decode config %s: %w", path, err)
			return
		}
		bounds := image.Rect(0, 0, cfg.Width, cfg.Height)
		sources[i] = atlas.SourceImage{
			Rect: geom.NewRect(0, 0, cfg.Width, cfg.Height),
			Tag:  LoadSource{Path: path, OriginalDim: bounds, TrimmedFrom: bounds},
		}
	})

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return sources, nil
}

// BuildAtlas composites every placement in result onto a single image sized
// to result.Size plus the reserved border, decoding each sprite's source file
// on demand, and returns both the finished image and the manifest describing
// where each sprite ended up.
//
// Grounded on the teacher's CreateAtlasImage: fan the placements out over
// Parallel's worker batches, rotate with
// imaging.Rotate270 when a piece was placed rotated, and recompute the
// trimmed source rectangle in the rotated image's coordinate space.
func BuildAtlas(result atlas.PackResult, border geom.Thickness) (*image.NRGBA, map[string]SpriteInfo, error) {
	width := result.Size.Width + border.SumX()
	height := result.Size.Height + border.SumY()
	dst := imaging.New(width, height, color.NRGBA{})

	sprites := make(map[string]SpriteInfo, len(result.Placements))
	var mu sync.Mutex
	errs := make([]error, len(result.Placements))

	Parallel(len(result.Placements), func(i int) {
		pl := result.Placements[i]
		if pl.Dest.IsDegenerate() {
			return
		}
		src, ok := pl.Source.Tag.(LoadSource)
		if !ok {
			errs[i] = fmt.Errorf("placement %d: source tag is not a LoadSource", i)
			return
		}

		file, err := os.Open(src.Path)
		if err != nil {
			errs[i] = err
			return
		}
		img, err := imaging.Decode(file)
		file.Close()
		if err != nil {
			errs[i] = fmt.Errorf("decode %s: %w", src.Path, err)
			return
		}

		srcRect := src.TrimmedFrom
		if pl.Rotated {
			img = imaging.Rotate270(img)
			origHeight := src.OriginalDim.Dy()
			srcRect = image.Rect(
				origHeight-src.TrimmedFrom.Min.Y-src.TrimmedFrom.Dy(),
				src.TrimmedFrom.Min.X,
				origHeight-src.TrimmedFrom.Min.Y-src.TrimmedFrom.Dy()+src.TrimmedFrom.Dy(),
				src.TrimmedFrom.Min.X+src.TrimmedFrom.Dx(),
			)
		}

		info := SpriteInfo{
			Filename: filepath.Base(src.Path),
			Region: Rect{
				X: pl.Dest.X + border.Left,
				Y: pl.Dest.Y + border.Top,
				W: pl.Dest.Width,
				H: pl.Dest.Height,
			},
			Source:  Size{W: src.OriginalDim.Dx(), H: src.OriginalDim.Dy()},
			Rotated: pl.Rotated,
		}
		if src.TrimmedFrom != src.OriginalDim {
			info.Trimmed = true
			info.SourceRect = Rect{X: src.TrimmedFrom.Min.X, Y: src.TrimmedFrom.Min.Y, W: src.TrimmedFrom.Dx(), H: src.TrimmedFrom.Dy()}
		}

		destRect := image.Rect(info.Region.X, info.Region.Y, info.Region.X+info.Region.W, info.Region.Y+info.Region.H)

		mu.Lock()
		draw.Draw(dst, destRect, img, srcRect.Min, draw.Src)
		sprites[src.Path] = info
		mu.Unlock()
	})

	for _, err := range errs {
		if err != nil {
			return nil, nil, err
		}
	}
	return dst, sprites, nil
}
