package image

// Format describes the pixel layout a consumer must supply.
type Format uint8

const (
	// FormatRGBAFloat is straight-alpha RGBA with one float32 per channel.
	// Values are conceptually in [0, 1]; only outputs are guaranteed to be.
	FormatRGBAFloat Format = iota

	// formatCount is the number of formats (for internal use).
	formatCount
)

// FormatInfo contains metadata about a pixel format.
type FormatInfo struct {
	// Name is the canonical name of the format.
	Name string

	// Channels is the number of channels per pixel.
	Channels int

	// BytesPerChannel is the storage size of one channel.
	BytesPerChannel int

	// HasAlpha indicates if the format has an alpha channel.
	HasAlpha bool

	// IsPremultiplied indicates if alpha is premultiplied.
	IsPremultiplied bool
}

var formatInfoTable = [formatCount]FormatInfo{
	FormatRGBAFloat: {
		Name:            "RGBA float",
		Channels:        Channels,
		BytesPerChannel: 4,
		HasAlpha:        true,
		IsPremultiplied: false,
	},
}

// Info returns the format metadata. Unknown formats return the zero value.
func (f Format) Info() FormatInfo {
	if !f.IsValid() {
		return FormatInfo{}
	}
	return formatInfoTable[f]
}

// IsValid reports whether f is a known format.
func (f Format) IsValid() bool {
	return f < formatCount
}

// BytesPerPixel returns the storage size of one pixel.
func (f Format) BytesPerPixel() int {
	info := f.Info()
	return info.Channels * info.BytesPerChannel
}

// String returns the format name.
func (f Format) String() string {
	if !f.IsValid() {
		return unknownMode
	}
	return formatInfoTable[f].Name
}
