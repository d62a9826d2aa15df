package atlasimage

import (
	"encoding/json"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	_ "image/jpeg"
	"image/png"
	"os"
	"path/filepath"

	"github.com/disintegration/imaging"
)

func rotate90(img image.Image) image.Image {
	return imaging.Rotate90(img)
}

// Unpack reverses BuildAtlas: it reads the manifest at manifestPath, loads
// each atlas image it references (relative to the manifest's own directory),
// and writes every sprite back out under outputDir as an individual PNG,
// restoring any transparent border that was trimmed away before packing and
// undoing any rotation applied during packing.
//
// Grounded on the teacher's unpack().
func Unpack(manifestPath, outputDir string) error {
	data, err := os.ReadFile(manifestPath)
	if err != nil {
		return fmt.Errorf("read manifest: %w", err)
	}

	var manifest Manifest
	if err := json.Unmarshal(data, &manifest); err != nil {
		return fmt.Errorf("parse manifest: %w", err)
	}

	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	manifestDir := filepath.Dir(manifestPath)
	for _, atlas := range manifest.Atlases {
		if err := unpackAtlas(atlas, manifestDir, outputDir); err != nil {
			return err
		}
	}
	return nil
}

func unpackAtlas(atlas AtlasManifest, manifestDir, outputDir string) error {
	atlasPath := filepath.Join(manifestDir, atlas.AtlasName)
	file, err := os.Open(atlasPath)
	if err != nil {
		return fmt.Errorf("open atlas image %s: %w", atlas.AtlasName, err)
	}
	img, _, err := image.Decode(file)
	file.Close()
	if err != nil {
		return fmt.Errorf("decode atlas image %s: %w", atlas.AtlasName, err)
	}

	for name, sprite := range atlas.Sprites {
		if err := unpackSprite(img, name, sprite, outputDir); err != nil {
			return err
		}
	}
	return nil
}

func unpackSprite(atlasImg image.Image, name string, sprite SpriteInfo, outputDir string) error {
	sub := image.NewNRGBA(image.Rect(0, 0, sprite.Region.W, sprite.Region.H))
	region := image.Rect(sprite.Region.X, sprite.Region.Y, sprite.Region.X+sprite.Region.W, sprite.Region.Y+sprite.Region.H)
	draw.Draw(sub, sub.Bounds(), atlasImg, region.Min, draw.Src)

	var out image.Image = sub
	if sprite.Rotated {
		out = rotate90(out)
	}
	if sprite.Trimmed {
		full := image.NewNRGBA(image.Rect(0, 0, sprite.Source.W, sprite.Source.H))
		draw.Draw(full, full.Bounds(), image.NewUniform(color.NRGBA{}), image.Point{}, draw.Src)
		dstRect := image.Rect(sprite.SourceRect.X, sprite.SourceRect.Y,
			sprite.SourceRect.X+sprite.SourceRect.W, sprite.SourceRect.Y+sprite.SourceRect.H)
		draw.Draw(full, dstRect, out, out.Bounds().Min, draw.Src)
		out = full
	}

	outputPath := filepath.Join(outputDir, name)
	if err := os.MkdirAll(filepath.Dir(outputPath), 0o755); err != nil {
		return fmt.Errorf("create output subdir: %w", err)
	}
	outFile, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("create output file %s: %w", outputPath, err)
	}
	defer outFile.Close()
	if err := png.Encode(outFile, out); err != nil {
		return fmt.Errorf("encode png %s: %w", outputPath, err)
	}
	return nil
}
