// Command atlaspack packs a directory of PNG sprites into one or more texture
// atlases plus a JSON manifest, and can reverse the process to unpack a
// previously built atlas back into individual sprite files.
//
// Grounded on the teacher's main.go: the same flag surface, the same
// print-timings-on-exit debug mode, and the same "pack, then keep re-packing
// whatever didn't fit into a fresh atlas" loop for overflow.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/disintegration/imaging"
	"github.com/maruel/natural"

	"atlaspack/atlas"
	"atlaspack/atlasimage"
	"atlaspack/geom"
)

const version = "0.1.0"

type options struct {
	unpackPath      string
	inputDir        string
	outputDir       string
	maxWidth        int
	maxHeight       int
	border          int
	allowRotate     bool
	trimTransparent bool
	alphaThreshold  uint
	sortFiles       bool
	restriction     string
	debug           bool
}

type runStats struct {
	debug       bool
	loadImages  time.Duration
	pack        time.Duration
	buildAtlas  time.Duration
	writeOutput time.Duration
	total       time.Duration
}

func (s *runStats) track(d *time.Duration) func() {
	if !s.debug {
		return func() {}
	}
	start := time.Now()
	return func() { *d += time.Since(start) }
}

func (s *runStats) report() {
	if !s.debug {
		return
	}
	fmt.Printf("load images: %v\n", s.loadImages)
	fmt.Printf("pack:        %v\n", s.pack)
	fmt.Printf("build atlas: %v\n", s.buildAtlas)
	fmt.Printf("write output:%v\n", s.writeOutput)
	fmt.Printf("total:       %v\n", s.total)
}

func parseFlags() options {
	var o options
	flag.StringVar(&o.unpackPath, "unpack", "", "path to an atlases.json manifest to unpack instead of packing")
	flag.StringVar(&o.inputDir, "input", "input", "directory of PNG sprites to pack")
	flag.StringVar(&o.outputDir, "output", "output", "directory to write atlas images and manifest into")
	flag.IntVar(&o.maxWidth, "width", 4096, "maximum atlas width")
	flag.IntVar(&o.maxHeight, "height", 4096, "maximum atlas height")
	flag.IntVar(&o.border, "border", 0, "pixels of border reserved on every edge of the atlas")
	flag.BoolVar(&o.allowRotate, "rotate", true, "allow sprites to be rotated 90 degrees")
	flag.BoolVar(&o.trimTransparent, "trim", true, "trim transparent borders before packing")
	flag.UintVar(&o.alphaThreshold, "threshold", 0, "alpha value at or below which a pixel is considered transparent")
	flag.BoolVar(&o.sortFiles, "sort", true, "sort input files in natural filename order before packing")
	flag.StringVar(&o.restriction, "restriction", "Any", "atlas size restriction (Any, Pow2, Pow2Square)")
	flag.BoolVar(&o.debug, "debug", false, "print timing information")
	flag.Parse()
	return o
}

func main() {
	opts := parseFlags()

	if opts.unpackPath != "" {
		if err := atlasimage.Unpack(opts.unpackPath, opts.outputDir); err != nil {
			fmt.Fprintln(os.Stderr, "atlaspack:", err)
			os.Exit(1)
		}
		fmt.Println("unpacked to", opts.outputDir)
		return
	}

	if err := run(opts); err != nil {
		fmt.Fprintln(os.Stderr, "atlaspack:", err)
		os.Exit(1)
	}
}

func run(opts options) error {
	stats := &runStats{debug: opts.debug}
	stopTotal := stats.track(&stats.total)

	restriction, err := atlas.ParseRestriction(opts.restriction)
	if err != nil {
		return err
	}

	paths, err := findSpritePaths(opts.inputDir, opts.sortFiles)
	if err != nil {
		return err
	}
	fmt.Printf("found %d sprite files\n", len(paths))

	var sources []atlas.SourceImage
	func() {
		defer stats.track(&stats.loadImages)()
		sources, err = atlasimage.LoadSources(paths, opts.trimTransparent, uint8(opts.alphaThreshold))
	}()
	if err != nil {
		return err
	}

	border := geom.Uniform(opts.border)
	planner := atlas.NewTextureBinPacker(geom.NewSize(opts.maxWidth, opts.maxHeight), restriction, opts.allowRotate, border)

	var results []atlas.PackResult
	func() {
		defer stats.track(&stats.pack)()
		results, err = packOverflowing(planner, sources)
	}()
	if err != nil {
		return err
	}
	for i, r := range results {
		fmt.Printf("atlas #%d: %dx%d, %d sprites\n", i, r.Size.Width, r.Size.Height, len(r.Placements))
	}

	if err := os.MkdirAll(opts.outputDir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	manifest := atlasimage.Manifest{}
	manifest.Meta.Version = version
	manifest.Meta.Timestamp = time.Now().Format(time.RFC3339)

	func() {
		defer stats.track(&stats.buildAtlas)()
		for i, r := range results {
			img, sprites, buildErr := atlasimage.BuildAtlas(r, border)
			if buildErr != nil {
				err = buildErr
				return
			}
			name := "atlas.png"
			if len(results) > 1 {
				name = fmt.Sprintf("atlas_%d.png", i)
			}
			byName := make(map[string]atlasimage.SpriteInfo, len(sprites))
			for _, info := range sprites {
				byName[info.Filename] = info
			}
			manifest.Atlases = append(manifest.Atlases, atlasimage.AtlasManifest{
				AtlasName: name,
				Sprites:   byName,
				TotalSize: atlasimage.Size{W: r.Size.Width + border.SumX(), H: r.Size.Height + border.SumY()},
			})
			outPath := filepath.Join(opts.outputDir, name)
			file, createErr := os.Create(outPath)
			if createErr != nil {
				err = createErr
				return
			}
			encErr := imaging.Encode(file, img, imaging.PNG)
			file.Close()
			if encErr != nil {
				err = encErr
				return
			}
		}
	}()
	if err != nil {
		return err
	}

	func() {
		defer stats.track(&stats.writeOutput)()
		data, marshalErr := json.MarshalIndent(manifest, "", "  ")
		if marshalErr != nil {
			err = marshalErr
			return
		}
		err = os.WriteFile(filepath.Join(opts.outputDir, "atlases.json"), data, 0o644)
	}()
	if err != nil {
		return err
	}

	stopTotal()
	stats.report()
	return nil
}

func findSpritePaths(inputDir string, naturalSort bool) ([]string, error) {
	if _, err := os.Stat(inputDir); err != nil {
		return nil, fmt.Errorf("input directory %s: %w", inputDir, err)
	}
	paths, err := filepath.Glob(filepath.Join(inputDir, "*.png"))
	if err != nil {
		return nil, err
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("no PNG files found in %s", inputDir)
	}
	if naturalSort {
		sort.Sort(natural.StringSlice(paths))
	}
	return paths, nil
}

// packOverflowing packs sources into as many atlases as it takes: it first asks
// TryProcess to fit everything that remains into one atlas, and when that
// fails it packs as much as fits into one atlas of the largest permitted size
// with PackOneAtlas and repeats with whatever PackOneAtlas left over.
//
// This loop, not the single-atlas try_process search, is what the teacher's
// main() did with its pakerList/GetUnpackedRects loop; the split comes from
// PackOneAtlas's MaxRectsEngine.InsertBatch pass at the atlas's maximum usable
// size rather than the planner's own size search, since TryProcess only
// answers "does it all fit in one atlas of some size", not "how much fits in
// a fixed size".
func packOverflowing(planner *atlas.TextureBinPacker, sources []atlas.SourceImage) ([]atlas.PackResult, error) {
	var results []atlas.PackResult
	remaining := sources

	for len(remaining) > 0 {
		result, err := planner.TryProcess(remaining)
		if err != nil {
			return nil, err
		}
		if result.Valid {
			results = append(results, result)
			return results, nil
		}

		placed, leftover, err := planner.PackOneAtlas(remaining)
		if err != nil {
			return nil, err
		}
		if len(placed.Placements) == 0 {
			return nil, fmt.Errorf("%d sprite(s) too large to fit in any atlas up to the configured maximum size", len(remaining))
		}
		results = append(results, placed)
		remaining = leftover
	}
	return results, nil
}
