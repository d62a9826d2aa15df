// Package atlas implements the texture-atlas rectangle packer: the MAXRECTS and
// GUILLOTINE free-space engines, the candidate-size planner, and the top-level
// planner that searches over sizes and heuristics to lay out a set of source
// rectangles into a single enclosing atlas.
//
// The package performs no I/O, no image decoding, and no logging; it is pure
// arithmetic and list manipulation over geom.Rect/geom.Size values, synchronous
// and single-threaded within a single TryProcess call, per its design brief.
package atlas

import "atlaspack/geom"

// Restriction constrains the admissible dimensions of the atlas the planner may
// choose.
type Restriction int

const (
	// RestrictionAny permits any non-negative integer width and height.
	RestrictionAny Restriction = iota
	// RestrictionPow2 requires both sides to be a power of two.
	RestrictionPow2
	// RestrictionPow2Square requires both sides to be equal powers of two.
	RestrictionPow2Square
)

func (r Restriction) String() string {
	switch r {
	case RestrictionAny:
		return "Any"
	case RestrictionPow2:
		return "Pow2"
	case RestrictionPow2Square:
		return "Pow2Square"
	default:
		return "Unknown"
	}
}

// ParseRestriction resolves a restriction by name, mirroring the way the
// teacher's ResolveAlgorithm turns command-line strings into enum values, but
// reporting unknown names as an *UnsupportedOptionError instead of silently
// returning a sentinel.
func ParseRestriction(name string) (Restriction, error) {
	switch name {
	case "Any":
		return RestrictionAny, nil
	case "Pow2":
		return RestrictionPow2, nil
	case "Pow2Square":
		return RestrictionPow2Square, nil
	default:
		return 0, &UnsupportedOptionError{Option: "restriction", Value: name}
	}
}

// SourceImage is one caller-supplied rectangle to be placed into the atlas. Tag
// is an opaque handle that is never inspected, only echoed back in the
// resulting Placement.
type SourceImage struct {
	Rect geom.Rect
	Tag  any
}

// Placement is the outcome of packing one SourceImage: where it landed in the
// atlas, and whether it was rotated 90 degrees to get there.
type Placement struct {
	Source  SourceImage
	Dest    geom.Rect
	Rotated bool
}

// PackResult is the outcome of a TryProcess call. When Valid is false, Size and
// Placements carry no meaning; the caller should treat the input as unable to
// fit under the configured constraints.
type PackResult struct {
	Size       geom.Size
	Placements []Placement
	Valid      bool
}

// PackSummary describes a batch of source images ahead of packing: their
// smallest and largest per-axis dimensions, the total pixel area they occupy,
// and whether every entry shares the same size (which enables the fast uniform
// grid path instead of the general MAXRECTS search).
type PackSummary struct {
	Sources   []SourceImage
	MinSize   geom.Size
	MaxSize   geom.Size
	TotalArea int64
	Uniform   bool
}

func summarize(sources []SourceImage) PackSummary {
	summary := PackSummary{Sources: sources}
	if len(sources) == 0 {
		return summary
	}
	minW, minH := sources[0].Rect.Width, sources[0].Rect.Height
	maxW, maxH := sources[0].Rect.Width, sources[0].Rect.Height
	first := sources[0].Rect.Size()
	uniform := true
	for _, src := range sources {
		w, h := src.Rect.Width, src.Rect.Height
		minW, minH = min(minW, w), min(minH, h)
		maxW, maxH = max(maxW, w), max(maxH, h)
		summary.TotalArea += src.Rect.Area()
		if !src.Rect.Size().Eq(first) {
			uniform = false
		}
	}
	summary.MinSize = geom.NewSize(minW, minH)
	summary.MaxSize = geom.NewSize(maxW, maxH)
	summary.Uniform = uniform
	return summary
}
