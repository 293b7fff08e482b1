// Package timing defines the canonical display timing record produced by the
// CEA-861 and VESA DMT table parsers and consumed by the emitter.
package timing

// XY holds one integer quantity per raster axis, horizontal then vertical.
type XY struct {
	X int `json:"x" yaml:"x"`
	Y int `json:"y" yaml:"y"`
}

// DisplayMode is one canonical video timing. All pixel/line offsets are
// measured from the start of the active area, matching the layout of the
// downstream pivid::DisplayMode struct.
type DisplayMode struct {
	// Size is the visible raster (active pixels, active lines).
	Size XY `json:"size" yaml:"size"`

	// ScanSize is the total raster including the blanking interval.
	ScanSize XY `json:"scan_size" yaml:"scan_size"`

	// SyncStart and SyncEnd bound the sync pulse on each axis.
	SyncStart XY `json:"sync_start" yaml:"sync_start"`
	SyncEnd   XY `json:"sync_end" yaml:"sync_end"`

	// SyncPolarity is +1 for an active-high pulse, -1 for active-low.
	SyncPolarity XY `json:"sync_polarity" yaml:"sync_polarity"`

	// Doubling.X is 1 when each pixel is clocked twice (low-bandwidth legacy
	// modes); Doubling.Y is -1 for interlaced scan, 0 for progressive.
	Doubling XY `json:"doubling" yaml:"doubling"`

	// Aspect is the display aspect ratio. CEA-861 only; zero for VESA modes.
	Aspect XY `json:"aspect" yaml:"aspect"`

	// PixelKHz is the pixel clock frequency in kHz.
	PixelKHz int `json:"pixel_khz" yaml:"pixel_khz"`

	// NominalHz is the rounded vertical refresh rate.
	NominalHz int `json:"nominal_hz" yaml:"nominal_hz"`
}

// InterlaceFactor is 2 for interlaced modes and 1 for progressive, the scale
// applied to per-field vertical counts to get per-frame counts.
func (m *DisplayMode) InterlaceFactor() int {
	if m.Doubling.Y < 0 {
		return 2
	}
	return 1
}

// Interlaced reports whether the mode uses interlaced scan.
func (m *DisplayMode) Interlaced() bool {
	return m.Doubling.Y < 0
}
