// Package emit serializes validated display mode collections into the
// static C++ table compiled into the downstream video output layer. The
// formatting is part of the consumer contract and must stay byte-stable:
// regenerating from identical source text yields identical output.
package emit

import (
	"fmt"
	"io"

	"modetab/pkg/timing"
)

// Tables writes the two standard mode arrays: CEA-861 modes (already in
// ascending VIC order) and VESA DMT modes (in source block order).
func Tables(w io.Writer, cta, vesa []timing.DisplayMode) error {
	if err := Table(w, "cta_861_modes", cta); err != nil {
		return err
	}
	return Table(w, "vesa_dmt_modes", vesa)
}

// Table writes one named static array of DisplayMode literals.
func Table(w io.Writer, name string, modes []timing.DisplayMode) error {
	if _, err := fmt.Fprintf(w, "std::vector<pivid::DisplayMode> const %s = {\n", name); err != nil {
		return err
	}
	for _, m := range modes {
		_, err := fmt.Fprintf(w,
			"  {.size=%s, .scan_size=%s, .sync_start=%s, .sync_end=%s, "+
				".sync_polarity=%s, .doubling=%s, .aspect=%s, "+
				".pixel_khz=%d, .nominal_hz=%d, },\n",
			pair(m.Size), pair(m.ScanSize), pair(m.SyncStart), pair(m.SyncEnd),
			pair(m.SyncPolarity), pair(m.Doubling), pair(m.Aspect),
			m.PixelKHz, m.NominalHz)
		if err != nil {
			return err
		}
	}
	_, err := fmt.Fprint(w, "};\n\n")
	return err
}

// pair formats an XY as a brace initializer.
func pair(xy timing.XY) string {
	return fmt.Sprintf("{%d, %d}", xy.X, xy.Y)
}
