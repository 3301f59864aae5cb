package diffuse

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/gogpu/diffuse/internal/diffusion"
	intImage "github.com/gogpu/diffuse/internal/image"
	"github.com/gogpu/diffuse/internal/parallel"
)

// State is the iteration controller state of an Engine.
type State int32

const (
	// StateIdle means no Process call has started yet.
	StateIdle State = iota

	// StateRunning means a Process call is executing iterations.
	StateRunning

	// StateDone means the last Process call finished, successfully or not.
	StateDone
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "Idle"
	case StateRunning:
		return "Running"
	case StateDone:
		return "Done"
	default:
		return "Unknown"
	}
}

// Engine runs iterated diffusion over rectangles of float32 RGBA buffers.
//
// An Engine holds no image state between calls. It owns a worker pool and a
// pool of working buffers that are reused across Process calls.
//
// Thread safety: Process calls on one Engine are serialized. Use separate
// engines to process independent images concurrently.
type Engine struct {
	cfg     Config
	kernel  diffusion.Kernel
	opts    engineOptions
	workers *parallel.WorkerPool
	buffers *intImage.Pool

	mu        sync.Mutex
	closed    bool
	state     atomic.Int32
	iteration atomic.Int32
}

// NewEngine validates cfg and creates an engine.
func NewEngine(cfg Config, opts ...Option) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	e := &Engine{
		cfg:     cfg,
		kernel:  cfg.kernel(),
		opts:    o,
		buffers: intImage.NewPool(2),
	}
	if o.workers != 1 {
		e.workers = parallel.NewWorkerPool(o.workers)
	}
	return e, nil
}

// Config returns the engine configuration.
func (e *Engine) Config() Config {
	return e.cfg
}

// State returns the current controller state.
func (e *Engine) State() State {
	return State(e.state.Load())
}

// Iteration returns the index of the iteration in progress while Running,
// or the number of completed iterations otherwise.
func (e *Engine) Iteration() int {
	return int(e.iteration.Load())
}

// Halo returns the margin, in pixels, the configured strategy reads around
// each tile.
func (e *Engine) Halo() int {
	return e.kernel.Halo()
}

// Prepare declares the pixel format the engine consumes and produces.
func (e *Engine) Prepare() Format {
	return FormatRGBAFloat
}

// BoundingBox returns the output extent for input: the input bounds, or an
// empty rectangle when there is no input.
func (e *Engine) BoundingBox(input *ImageBuf) Rect {
	if input == nil {
		return Rect{}
	}
	return input.Bounds()
}

// RequiredForOutput returns the input region needed to produce roi. The
// halo is handled internally, so this is roi itself.
func (e *Engine) RequiredForOutput(roi Rect) Rect {
	return roi
}

// Close releases the worker pool. Process fails with ErrClosed afterwards.
// Close is idempotent.
func (e *Engine) Close() {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.closed {
		return
	}
	e.closed = true
	if e.workers != nil {
		e.workers.Close()
	}
}

// Run processes the whole of input into a new buffer with the same bounds.
func (e *Engine) Run(ctx context.Context, input *ImageBuf) (*ImageBuf, error) {
	if input == nil {
		return nil, ErrNilBuffer
	}
	out, err := intImage.NewImageBufAt(input.Bounds())
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrAllocation, err)
	}
	if err := e.Process(ctx, input, out, input.Bounds(), 0); err != nil {
		return nil, err
	}
	return out, nil
}

// Process diffuses roi of input and writes the result into the same
// rectangle of output. input and output may be the same buffer.
//
// roi is clipped to the input bounds. level is an opaque resolution hint
// that is passed through unchanged. Pixels of input outside roi are read as
// frozen context and never modified.
//
// Process either writes the whole of roi or leaves output untouched: on
// allocation failure, on an invalid output, and when ctx is done before the
// last iteration finishes. ctx is checked between iterations.
func (e *Engine) Process(ctx context.Context, input, output *ImageBuf, roi Rect, level int) error {
	if input == nil || output == nil {
		return ErrNilBuffer
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return ErrClosed
	}

	log := e.logger()
	bounds := input.Bounds()
	roi = roi.Intersect(bounds)
	if roi.Empty() {
		log.Debug("diffuse: empty target", "bounds", bounds)
		return nil
	}
	if !output.Bounds().ContainsRect(roi) {
		return fmt.Errorf("%w: output %+v, target %+v", ErrFormatMismatch, output.Bounds(), roi)
	}

	e.iteration.Store(0)
	e.state.Store(int32(StateIdle))

	if minSize := diffusion.MinSize(e.kernel); roi.Width < minSize || roi.Height < minSize {
		log.Warn("diffuse: target below gradient support, copying through",
			"target", roi, "min", minSize)
		intImage.CopyRect(output, input, roi)
		e.state.Store(int32(StateDone))
		return nil
	}

	if err := ctx.Err(); err != nil {
		return err
	}

	halo := e.kernel.Halo()
	work := roi.Expand(halo + 1).Intersect(bounds)
	cur, next, err := e.acquire(input, work)
	if err != nil {
		return err
	}
	defer func() {
		e.buffers.Put(cur)
		e.buffers.Put(next)
	}()

	grid := parallel.NewTileGridSize(roi, bounds, halo, e.opts.tileWidth, e.opts.tileHeight)
	sweeper := parallel.NewSweeper(grid, e.workers)
	total := e.cfg.Iterations

	log.Debug("diffuse: start",
		"strategy", e.cfg.Strategy,
		"target", roi,
		"arena", work,
		"tiles", grid.TileCount(),
		"parallel", sweeper.Parallel(),
		"iterations", total,
		"level", level)

	e.state.Store(int32(StateRunning))
	defer e.state.Store(int32(StateDone))

	for i := range total {
		if err := ctx.Err(); err != nil {
			log.Debug("diffuse: canceled", "iteration", i, "err", err)
			return err
		}
		e.iteration.Store(int32(i))

		src := intImage.NewSampler(cur, input, bounds, e.cfg.EdgeMode)
		dst := next
		err := sweeper.Sweep(func(tile parallel.Tile) error {
			e.kernel.Step(src, dst, tile)
			return nil
		})
		if err != nil {
			return fmt.Errorf("diffuse: iteration %d: %w", i, err)
		}
		cur, next = next, cur

		e.iteration.Store(int32(i + 1))
		if e.opts.progress != nil {
			e.opts.progress(i+1, total)
		}
	}

	intImage.CopyRect(output, cur, roi)
	log.Debug("diffuse: done", "target", roi)
	return nil
}

// acquire obtains both arena buffers for work and seeds them from input, so
// pixels outside the target hold frozen context in either role.
func (e *Engine) acquire(input *ImageBuf, work Rect) (cur, next *ImageBuf, err error) {
	n, err := intImage.SampleCount(work.Width, work.Height)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: arena %+v: %w", ErrAllocation, work, err)
	}
	need := 2 * int64(n) * int64(FormatRGBAFloat.Info().BytesPerChannel)
	if limit := e.opts.memoryLimit; limit > 0 && need > limit {
		return nil, nil, fmt.Errorf("%w: arena needs %d bytes, limit %d", ErrAllocation, need, limit)
	}

	cur, err = e.buffers.Get(work)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %w", ErrAllocation, err)
	}
	next, err = e.buffers.Get(work)
	if err != nil {
		e.buffers.Put(cur)
		return nil, nil, fmt.Errorf("%w: %w", ErrAllocation, err)
	}
	intImage.CopyRect(cur, input, work)
	intImage.CopyRect(next, input, work)
	return cur, next, nil
}

// logger returns the engine logger, falling back to the package logger.
func (e *Engine) logger() *slog.Logger {
	if e.opts.logger != nil {
		return e.opts.logger
	}
	return Logger()
}
