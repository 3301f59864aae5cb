package parallel

import "github.com/gogpu/diffuse/internal/image"

// TileGrid partitions a processing rectangle into halo-expanded tiles.
//
// Target rectangles are laid out row-major starting at the area's top-left
// corner. Edge tiles are smaller when the area is not evenly divisible by the
// tile size. The union of all targets equals the area and no two overlap.
//
// TileGrid is immutable after construction and safe for concurrent reads.
type TileGrid struct {
	// tiles is a flat slice of all tiles (row-major order).
	tiles []Tile

	tilesX int
	tilesY int
	tileW  int
	tileH  int

	area   image.Rect
	bounds image.Rect
	halo   int
}

// NewTileGrid creates a grid covering area with the default tile size.
// Source rectangles are grown by halo and clipped to bounds.
func NewTileGrid(area, bounds image.Rect, halo int) *TileGrid {
	return NewTileGridSize(area, bounds, halo, TileWidth, TileHeight)
}

// NewTileGridSize creates a grid with a custom tile size.
// Non-positive tile dimensions fall back to the defaults; a negative halo is
// treated as zero. An empty area yields a grid with no tiles.
func NewTileGridSize(area, bounds image.Rect, halo, tileW, tileH int) *TileGrid {
	if tileW <= 0 {
		tileW = TileWidth
	}
	if tileH <= 0 {
		tileH = TileHeight
	}
	halo = max(halo, 0)

	g := &TileGrid{area: area, bounds: bounds, halo: halo, tileW: tileW, tileH: tileH}
	if area.Empty() {
		return g
	}

	g.tilesX = (area.Width + tileW - 1) / tileW
	g.tilesY = (area.Height + tileH - 1) / tileH
	g.tiles = make([]Tile, 0, g.tilesX*g.tilesY)

	for ty := range g.tilesY {
		for tx := range g.tilesX {
			x := area.X + tx*tileW
			y := area.Y + ty*tileH
			// Right and bottom edge tiles may be smaller
			w := min(tileW, area.MaxX()-x)
			h := min(tileH, area.MaxY()-y)

			target := image.NewRect(x, y, w, h)
			g.tiles = append(g.tiles, Tile{
				Col:    tx,
				Row:    ty,
				Target: target,
				Source: target.Expand(halo).Intersect(bounds),
			})
		}
	}
	return g
}

// TileAt returns the tile at tile coordinates (tx, ty).
// Returns false if coordinates are out of range.
func (g *TileGrid) TileAt(tx, ty int) (Tile, bool) {
	if tx < 0 || tx >= g.tilesX || ty < 0 || ty >= g.tilesY {
		return Tile{}, false
	}
	return g.tiles[ty*g.tilesX+tx], true
}

// TileAtPixel returns the tile whose target contains pixel (px, py).
func (g *TileGrid) TileAtPixel(px, py int) (Tile, bool) {
	if !g.area.Contains(px, py) {
		return Tile{}, false
	}
	return g.TileAt((px-g.area.X)/g.tileW, (py-g.area.Y)/g.tileH)
}

// Tiles returns all tiles in row-major order.
// The returned slice should not be modified.
func (g *TileGrid) Tiles() []Tile {
	return g.tiles
}

// TileCount returns the total number of tiles in the grid.
func (g *TileGrid) TileCount() int {
	return len(g.tiles)
}

// TilesX returns the number of tiles horizontally.
func (g *TileGrid) TilesX() int {
	return g.tilesX
}

// TilesY returns the number of tiles vertically.
func (g *TileGrid) TilesY() int {
	return g.tilesY
}

// Area returns the rectangle partitioned by the grid.
func (g *TileGrid) Area() image.Rect {
	return g.area
}

// Halo returns the halo margin applied to source rectangles.
func (g *TileGrid) Halo() int {
	return g.halo
}

// ForEach calls fn for each tile in row-major order.
func (g *TileGrid) ForEach(fn func(tile Tile)) {
	for _, tile := range g.tiles {
		fn(tile)
	}
}
