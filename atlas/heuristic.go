package atlas

// MaxRectsHeuristic selects how the MAXRECTS engine scores a candidate free
// rectangle when placing a piece.
type MaxRectsHeuristic int

const (
	// MaxRectsBSSF places into the free rectangle that leaves the least leftover
	// on its shorter side (Best Short Side Fit).
	MaxRectsBSSF MaxRectsHeuristic = iota
	// MaxRectsBLSF places into the free rectangle that leaves the least leftover
	// on its longer side (Best Long Side Fit).
	MaxRectsBLSF
	// MaxRectsBAF places into the free rectangle with the least leftover area
	// (Best Area Fit).
	MaxRectsBAF
	// MaxRectsBL places as low and as far left as possible (Bottom Left).
	MaxRectsBL
	// MaxRectsCP places to maximize the length of touching edges against the bin
	// border and already-placed rectangles (Contact Point).
	MaxRectsCP
)

func (h MaxRectsHeuristic) String() string {
	switch h {
	case MaxRectsBSSF:
		return "BestShortSideFit"
	case MaxRectsBLSF:
		return "BestLongSideFit"
	case MaxRectsBAF:
		return "BestAreaFit"
	case MaxRectsBL:
		return "BottomLeft"
	case MaxRectsCP:
		return "ContactPoint"
	default:
		return "Unknown"
	}
}

// ParseMaxRectsHeuristic resolves a MAXRECTS heuristic by name.
func ParseMaxRectsHeuristic(name string) (MaxRectsHeuristic, error) {
	switch name {
	case "BestShortSideFit":
		return MaxRectsBSSF, nil
	case "BestLongSideFit":
		return MaxRectsBLSF, nil
	case "BestAreaFit":
		return MaxRectsBAF, nil
	case "BottomLeft":
		return MaxRectsBL, nil
	case "ContactPoint":
		return MaxRectsCP, nil
	default:
		return 0, &UnsupportedOptionError{Option: "maxrects heuristic", Value: name}
	}
}

// GuillotinePlacementHeuristic selects which free rectangle a GUILLOTINE
// engine chooses for a piece. The Worst* variants exist because a guillotine
// split consumes its whole free rectangle, so sometimes leaving the *most*
// leftover in the chosen rectangle produces a more useful remainder than the
// least.
type GuillotinePlacementHeuristic int

const (
	GuillotineBestAreaFit GuillotinePlacementHeuristic = iota
	GuillotineBestShortSideFit
	GuillotineBestLongSideFit
	GuillotineWorstAreaFit
	GuillotineWorstShortSideFit
	GuillotineWorstLongSideFit
)

func (h GuillotinePlacementHeuristic) String() string {
	switch h {
	case GuillotineBestAreaFit:
		return "BestAreaFit"
	case GuillotineBestShortSideFit:
		return "BestShortSideFit"
	case GuillotineBestLongSideFit:
		return "BestLongSideFit"
	case GuillotineWorstAreaFit:
		return "WorstAreaFit"
	case GuillotineWorstShortSideFit:
		return "WorstShortSideFit"
	case GuillotineWorstLongSideFit:
		return "WorstLongSideFit"
	default:
		return "Unknown"
	}
}

// ParseGuillotinePlacementHeuristic resolves a GUILLOTINE placement heuristic
// by name.
func ParseGuillotinePlacementHeuristic(name string) (GuillotinePlacementHeuristic, error) {
	switch name {
	case "BestAreaFit":
		return GuillotineBestAreaFit, nil
	case "BestShortSideFit":
		return GuillotineBestShortSideFit, nil
	case "BestLongSideFit":
		return GuillotineBestLongSideFit, nil
	case "WorstAreaFit":
		return GuillotineWorstAreaFit, nil
	case "WorstShortSideFit":
		return GuillotineWorstShortSideFit, nil
	case "WorstLongSideFit":
		return GuillotineWorstLongSideFit, nil
	default:
		return 0, &UnsupportedOptionError{Option: "guillotine placement heuristic", Value: name}
	}
}

// GuillotineSplitHeuristic selects which of the two candidate cuts (horizontal
// or vertical) a GUILLOTINE engine takes when dividing a free rectangle around
// a placed piece.
type GuillotineSplitHeuristic int

const (
	SplitShorterLeftoverAxis GuillotineSplitHeuristic = iota
	SplitLongerLeftoverAxis
	SplitMinimizeArea
	SplitMaximizeArea
	SplitShorterAxis
	SplitLongerAxis
)

func (h GuillotineSplitHeuristic) String() string {
	switch h {
	case SplitShorterLeftoverAxis:
		return "ShorterLeftoverAxis"
	case SplitLongerLeftoverAxis:
		return "LongerLeftoverAxis"
	case SplitMinimizeArea:
		return "MinimizeArea"
	case SplitMaximizeArea:
		return "MaximizeArea"
	case SplitShorterAxis:
		return "ShorterAxis"
	case SplitLongerAxis:
		return "LongerAxis"
	default:
		return "Unknown"
	}
}

// ParseGuillotineSplitHeuristic resolves a GUILLOTINE split heuristic by name.
func ParseGuillotineSplitHeuristic(name string) (GuillotineSplitHeuristic, error) {
	switch name {
	case "ShorterLeftoverAxis":
		return SplitShorterLeftoverAxis, nil
	case "LongerLeftoverAxis":
		return SplitLongerLeftoverAxis, nil
	case "MinimizeArea":
		return SplitMinimizeArea, nil
	case "MaximizeArea":
		return SplitMaximizeArea, nil
	case "ShorterAxis":
		return SplitShorterAxis, nil
	case "LongerAxis":
		return SplitLongerAxis, nil
	default:
		return 0, &UnsupportedOptionError{Option: "guillotine split heuristic", Value: name}
	}
}
