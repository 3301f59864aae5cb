// Package parallel provides tile scheduling and parallel execution for
// gogpu/diffuse.
//
// A processing rectangle is divided into tiles (64x64 by default) whose
// target rectangles partition it exactly. Each tile also carries a source
// rectangle: the target grown by a halo margin and clipped to the image
// bounds, which is the footprint the tile is allowed to read.
//
// Tiles of one pass only read a frozen buffer and write disjoint pixels of
// another, so they run on a WorkerPool without locks. A Sweep returns only
// after every tile has finished, which is the barrier between passes.
package parallel

import "github.com/gogpu/diffuse/internal/image"

// Default tile size, chosen so a tile plus a 2-pixel halo and four float32
// scratch planes stays within a typical L2 cache.
const (
	// TileWidth is the default width of a tile in pixels.
	TileWidth = 64

	// TileHeight is the default height of a tile in pixels.
	TileHeight = 64
)

// Tile is one independently processable unit of a pass.
type Tile struct {
	// Col is the tile column index (0-based).
	Col int

	// Row is the tile row index (0-based).
	Row int

	// Target is the rectangle whose pixels this tile writes.
	Target image.Rect

	// Source is Target expanded by the halo and clipped to the image bounds.
	Source image.Rect
}

// Index returns the row-major tile index within a grid that is tilesX wide.
func (t Tile) Index(tilesX int) int {
	return t.Row*tilesX + t.Col
}

// Halo returns the per-side margin between Target and Source.
// Margins are smaller than the grid halo where Source was clipped.
func (t Tile) Halo() (left, top, right, bottom int) {
	return t.Target.X - t.Source.X,
		t.Target.Y - t.Source.Y,
		t.Source.MaxX() - t.Target.MaxX(),
		t.Source.MaxY() - t.Target.MaxY()
}

// SourceOffset returns the offset of a target-space pixel within Source,
// in samples of a single-channel plane Source.Width wide.
// Returns -1 if the pixel is outside Source.
func (t Tile) SourceOffset(x, y int) int {
	if !t.Source.Contains(x, y) {
		return -1
	}
	return (y-t.Source.Y)*t.Source.Width + (x - t.Source.X)
}
