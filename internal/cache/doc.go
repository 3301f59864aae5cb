// Package cache provides a small generic LRU cache.
//
// The diffusion engine uses it for values that are expensive to build and
// requested with a small set of keys, such as Gaussian kernels keyed by
// quantized sigma.
//
//	c := cache.New[int, []float32](64)
//	kernel := c.GetOrCreate(1000, func() []float32 { return build(1.0) })
//
// # Thread Safety
//
// Cache is safe for concurrent use and must not be copied after creation.
package cache
