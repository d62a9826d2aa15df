package atlas

import "atlaspack/geom"

// Item is one piece to place, addressed by an index the caller assigns and
// understands; the engines never interpret ID beyond using it to label
// PlacedItem and unplaced results.
type Item struct {
	ID   int
	Size geom.Size
}

// PlacedItem is where an Item landed after a batch insertion.
type PlacedItem struct {
	ID      int
	Rect    geom.Rect
	Rotated bool
}
