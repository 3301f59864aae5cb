package image

// EdgeMode determines how reads outside the logical image bounds resolve.
type EdgeMode uint8

const (
	// EdgeClamp returns the nearest in-bounds pixel (default).
	EdgeClamp EdgeMode = iota

	// EdgeWrap tiles the image; coordinates wrap modulo the image size.
	EdgeWrap

	// EdgeNone returns transparent black for every out-of-bounds read.
	EdgeNone
)

const unknownMode = "Unknown"

// String returns a string representation of the edge mode.
func (m EdgeMode) String() string {
	switch m {
	case EdgeClamp:
		return "Clamp"
	case EdgeWrap:
		return "Wrap"
	case EdgeNone:
		return "None"
	default:
		return unknownMode
	}
}

// IsValid reports whether m is a known edge mode.
func (m EdgeMode) IsValid() bool {
	return m <= EdgeNone
}

// ResolveCoord maps coordinate c onto [lo, lo+n) according to mode.
// The boolean is false when the read must yield zero (EdgeNone outside bounds).
func ResolveCoord(c, lo, n int, mode EdgeMode) (int, bool) {
	if c >= lo && c < lo+n {
		return c, true
	}
	switch mode {
	case EdgeWrap:
		r := (c - lo) % n
		if r < 0 {
			r += n
		}
		return lo + r, true
	case EdgeNone:
		return 0, false
	default:
		if c < lo {
			return lo, true
		}
		return lo + n - 1, true
	}
}

// Sampler resolves pixel reads against a logical image for one pass.
//
// Reads are first mapped into Bounds by the edge mode. A resolved pixel is
// served from Live when Live covers it and from Base otherwise, which lets a
// working buffer that covers only part of the image fall back to frozen
// context.
//
// Thread safety: Sampler is read-only and safe for concurrent use as long as
// Live and Base are not written during the pass.
type Sampler struct {
	live   *ImageBuf
	base   *ImageBuf
	bounds Rect
	mode   EdgeMode
}

// NewSampler creates a sampler over bounds. base may be nil when live covers
// every pixel that can be read.
func NewSampler(live, base *ImageBuf, bounds Rect, mode EdgeMode) *Sampler {
	return &Sampler{live: live, base: base, bounds: bounds, mode: mode}
}

// Bounds returns the logical image bounds.
func (s *Sampler) Bounds() Rect {
	return s.bounds
}

// Mode returns the edge mode.
func (s *Sampler) Mode() EdgeMode {
	return s.mode
}

// Resolve maps (x, y) into the logical bounds. ok is false for zero reads.
func (s *Sampler) Resolve(x, y int) (rx, ry int, ok bool) {
	rx, ok = ResolveCoord(x, s.bounds.X, s.bounds.Width, s.mode)
	if !ok {
		return 0, 0, false
	}
	ry, ok = ResolveCoord(y, s.bounds.Y, s.bounds.Height, s.mode)
	if !ok {
		return 0, 0, false
	}
	return rx, ry, true
}

// At returns the pixel at (x, y).
func (s *Sampler) At(x, y int) [Channels]float32 {
	rx, ry, ok := s.Resolve(x, y)
	if !ok {
		return [Channels]float32{}
	}
	if off := s.live.PixelOffset(rx, ry); off >= 0 {
		var px [Channels]float32
		copy(px[:], s.live.data[off:off+Channels])
		return px
	}
	if s.base != nil {
		return s.base.Pixel(rx, ry)
	}
	return [Channels]float32{}
}

// Channel returns channel ch of the pixel at (x, y).
func (s *Sampler) Channel(x, y, ch int) float32 {
	rx, ry, ok := s.Resolve(x, y)
	if !ok {
		return 0
	}
	if off := s.live.PixelOffset(rx, ry); off >= 0 {
		return s.live.data[off+ch]
	}
	if off := s.base.pixelOffsetOrNeg(rx, ry); off >= 0 {
		return s.base.data[off+ch]
	}
	return 0
}

// pixelOffsetOrNeg is PixelOffset that tolerates a nil receiver.
func (b *ImageBuf) pixelOffsetOrNeg(x, y int) int {
	if b == nil {
		return -1
	}
	return b.PixelOffset(x, y)
}
