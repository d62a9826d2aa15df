//go:build atlasdebug

package atlas

import "atlaspack/geom"

// disjointVerifier is a development-time invariant monitor: every rectangle
// handed to add is checked against every rectangle already accepted, and
// rejected if it overlaps one. Engines call it for every placement, before
// committing the rectangle, so a
// violation panics at the point it was introduced rather than surfacing later
// as a corrupted atlas. The O(n^2) cost of this and its slice of retained
// rectangles are why it is compiled in only under the atlasdebug build tag.
type disjointVerifier struct {
	accepted []geom.Rect
}

func (v *disjointVerifier) add(r geom.Rect) bool {
	for _, a := range v.accepted {
		if a.Intersects(r) {
			return false
		}
	}
	v.accepted = append(v.accepted, r)
	return true
}

func (v *disjointVerifier) reset() {
	v.accepted = v.accepted[:0]
}
