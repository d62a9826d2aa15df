// Package atlasimage decodes source images, composites them into atlas
// textures according to an atlas.PackResult, writes the accompanying JSON
// manifest, and reverses the process to unpack a previously built atlas back
// into individual sprite files.
//
// Grounded on the teacher's image.go (CreateAtlasImage, GetImageBBox),
// unpack.go (Parallel, unpack) and main.go (SpriteInfo, MultiAtlasData), with
// the JSON field names kept as the teacher chose them.
package atlasimage

// SpriteInfo records where one sprite landed inside an atlas image, and
// enough of its original geometry to reconstruct it exactly on unpack.
type SpriteInfo struct {
	Filename string `json:"filename"`
	Region   Rect   `json:"region"`
	Source   Size   `json:"sourceSize"`
	// SourceRect is only populated when the sprite's transparent border was
	// trimmed before packing; Trimmed is false and this is the zero value
	// otherwise.
	SourceRect Rect `json:"sourceRect,omitempty"`
	Trimmed    bool `json:"trimmed"`
	Rotated    bool `json:"rotated"`
}

// Rect is a JSON-friendly rectangle, kept distinct from geom.Rect so the
// manifest's wire format doesn't change if geom.Rect's fields ever do.
type Rect struct {
	X int `json:"x"`
	Y int `json:"y"`
	W int `json:"w"`
	H int `json:"h"`
}

// Size is a JSON-friendly width/height pair.
type Size struct {
	W int `json:"w"`
	H int `json:"h"`
}

// AtlasManifest describes one packed atlas image: its file name, the sprites
// placed within it, and the atlas's own pixel size.
type AtlasManifest struct {
	AtlasName string                `json:"atlasName"`
	Sprites   map[string]SpriteInfo `json:"spriteList"`
	TotalSize Size                  `json:"totalSize"`
}

// Manifest is the top-level JSON document written alongside one or more atlas
// images, describing every atlas produced by a single packing run.
type Manifest struct {
	Meta struct {
		Version   string `json:"version"`
		Timestamp string `json:"timestamp"`
	} `json:"meta"`
	Atlases []AtlasManifest `json:"atlases"`
}
