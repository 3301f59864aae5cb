package parallel

// TileFunc processes one tile of a pass.
type TileFunc func(tile Tile) error

// Sweeper runs one pass of a TileFunc over every tile of a grid.
//
// With a nil pool, tiles run sequentially in row-major order on the calling
// goroutine. With a pool, tiles run concurrently. Either way Sweep returns
// only after every tile has finished, so consecutive sweeps are separated by
// a full barrier. Results are identical in both modes as long as the TileFunc
// reads only frozen state and writes only its tile's target pixels.
type Sweeper struct {
	grid *TileGrid
	pool *WorkerPool
}

// NewSweeper creates a sweeper over grid. pool may be nil.
func NewSweeper(grid *TileGrid, pool *WorkerPool) *Sweeper {
	return &Sweeper{grid: grid, pool: pool}
}

// Grid returns the underlying TileGrid.
func (s *Sweeper) Grid() *TileGrid {
	return s.grid
}

// Parallel reports whether tiles are dispatched to a worker pool.
func (s *Sweeper) Parallel() bool {
	return s.pool != nil && s.pool.Workers() > 1 && s.grid.TileCount() > 1
}

// Sweep runs fn over every tile and returns the first error.
func (s *Sweeper) Sweep(fn TileFunc) error {
	tiles := s.grid.Tiles()
	if len(tiles) == 0 {
		return nil
	}

	if !s.Parallel() {
		for _, tile := range tiles {
			if err := fn(tile); err != nil {
				return err
			}
		}
		return nil
	}

	work := make([]func() error, len(tiles))
	for i, tile := range tiles {
		work[i] = func() error {
			return fn(tile)
		}
	}
	return s.pool.Run(work)
}
