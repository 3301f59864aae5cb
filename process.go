package diffuse

import "context"

// Process runs cfg once over roi with a temporary engine. Callers that
// process many rectangles should keep an Engine instead, which reuses its
// workers and buffers.
func Process(ctx context.Context, cfg Config, input, output *ImageBuf, roi Rect, opts ...Option) error {
	e, err := NewEngine(cfg, opts...)
	if err != nil {
		return err
	}
	defer e.Close()
	return e.Process(ctx, input, output, roi, 0)
}
