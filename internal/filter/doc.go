// Package filter provides the smoothing primitives used by the diffusion
// engine.
//
// This package contains:
//   - Gaussian kernel generation with a shared kernel cache
//   - Separable blur over single-channel float fields (clamp at edges)
//   - A scratch pool for tile-local intermediate planes
//
// All filters are designed for:
//   - Zero-allocation hot paths where possible
//   - Cache-friendly row-major access
package filter
