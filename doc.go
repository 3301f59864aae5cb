// Package diffuse provides a tiled, edge-preserving diffusion engine for
// float32 RGBA rasters.
//
// # Overview
//
// The engine smooths an image while keeping its edges. Two strategies are
// available and share one iteration and tiling skeleton:
//
//   - [StrategyTensor] estimates local orientation with a smoothed
//     structure tensor and diffuses along edges more than across them.
//   - [StrategyScalar] is Perona-Malik diffusion: every neighbor direction
//     gets its own conductance from the local gradient magnitude.
//
// # Quick Start
//
//	import "github.com/gogpu/diffuse"
//
//	img, err := diffuse.LoadImage("photo.png")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	eng, err := diffuse.NewEngine(diffuse.DefaultTensorConfig())
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer eng.Close()
//
//	out, err := eng.Run(context.Background(), img)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	out.SavePNG("smooth.png")
//
// # Processing Model
//
// [Engine.Process] updates a target rectangle of an output buffer from an
// input buffer. Each iteration sweeps the target tile by tile, reading only
// the previous iteration and writing only its own tile, so tiles run in
// parallel on a worker pool with a barrier between iterations. Pixels of the
// input outside the target are frozen context: they feed the halo of border
// tiles but are never updated. Reads outside the image follow the
// configured [EdgeMode].
//
// Output values are always clamped to [0, 1]. Targets too small for the
// gradient stencil are copied through unchanged.
//
// # Coordinate System
//
// Buffers are addressed in image coordinates with the origin at the top-left,
// X increasing right and Y increasing down. A buffer may cover any window of
// the logical image.
package diffuse

// Version information
const (
	// Version is the current version of the library
	Version = "0.1.0-alpha.1"

	// VersionMajor is the major version
	VersionMajor = 0

	// VersionMinor is the minor version
	VersionMinor = 1

	// VersionPatch is the patch version
	VersionPatch = 0

	// VersionPrerelease is the prerelease identifier
	VersionPrerelease = "alpha.1"
)
