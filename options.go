package diffuse

import "log/slog"

// Option configures an Engine during creation.
// Use functional options to customize Engine behavior.
//
// Example:
//
//	// Default: one worker per CPU, 64x64 tiles, package logger
//	eng, err := diffuse.NewEngine(cfg)
//
//	// Sequential processing with a progress callback
//	eng, err := diffuse.NewEngine(cfg,
//	    diffuse.WithWorkers(1),
//	    diffuse.WithProgress(func(i, n int) { fmt.Printf("%d/%d\n", i, n) }),
//	)
type Option func(*engineOptions)

// ProgressFunc is called after every completed iteration with the number
// of finished iterations and the total.
type ProgressFunc func(iteration, total int)

// engineOptions holds optional configuration for Engine creation.
type engineOptions struct {
	workers     int
	tileWidth   int
	tileHeight  int
	logger      *slog.Logger
	memoryLimit int64
	progress    ProgressFunc
}

// defaultOptions returns the default engine options.
func defaultOptions() engineOptions {
	return engineOptions{
		workers:    0, // GOMAXPROCS
		tileWidth:  0, // parallel.TileWidth
		tileHeight: 0, // parallel.TileHeight
	}
}

// WithWorkers sets the number of tile workers. n <= 0 uses GOMAXPROCS and
// n == 1 processes tiles sequentially on the calling goroutine. Results are
// identical for every worker count.
func WithWorkers(n int) Option {
	return func(o *engineOptions) {
		o.workers = n
	}
}

// WithTileSize sets the tile target size. Non-positive values keep the
// default of 64.
func WithTileSize(width, height int) Option {
	return func(o *engineOptions) {
		o.tileWidth = width
		o.tileHeight = height
	}
}

// WithLogger gives the engine its own logger instead of the package logger
// configured with SetLogger.
func WithLogger(l *slog.Logger) Option {
	return func(o *engineOptions) {
		o.logger = l
	}
}

// WithMemoryLimit caps the bytes the engine may hold in working buffers for
// one Process call. Zero or negative means no limit. Process fails with
// ErrAllocation before touching the output when the limit would be exceeded.
func WithMemoryLimit(bytes int64) Option {
	return func(o *engineOptions) {
		o.memoryLimit = bytes
	}
}

// WithProgress installs a callback fired after each iteration barrier.
// It runs on the goroutine that called Process.
func WithProgress(fn ProgressFunc) Option {
	return func(o *engineOptions) {
		o.progress = fn
	}
}
