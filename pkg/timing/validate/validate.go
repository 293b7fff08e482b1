// Package validate cross-checks every derived quantity in a parsed mode set
// against the redundant published fields of the source tables. The checks
// are the correctness oracle of the generator: a violation means the
// transcribed standards text and the computed timing disagree, and the
// record must not be emitted.
package validate

import (
	"fmt"
	"math"
	"strings"

	"modetab/pkg/timing/cta861"
	"modetab/pkg/timing/vesadmt"
)

// Tolerances for checks against published frequency and aspect fields.
const (
	hFreqTol  = 1e-3
	vFreqTol  = 1e-2
	aspectTol = 1e-3
	addrTol   = 1.0
	// The tables round interlaced vertical blanking to half lines, so the
	// back-porch sum may fall short of the total by up to two lines.
	vSlackLines = 2
)

// Violation is one failed consistency check, identified by mode and check
// name with a human-readable detail line.
type Violation struct {
	Mode   string `json:"mode" yaml:"mode"`
	Check  string `json:"check" yaml:"check"`
	Detail string `json:"detail" yaml:"detail"`
}

// String implements fmt.Stringer.
func (v Violation) String() string {
	return fmt.Sprintf("%s: %s: %s", v.Mode, v.Check, v.Detail)
}

// CTA861 checks every CEA-861 record. The published horizontal counts are
// raw table values, so they are halved before comparison when the record
// was pixel-doubled.
func CTA861(recs []*cta861.Record) []Violation {
	var out []Violation
	for _, rec := range recs {
		out = append(out, ctaRecord(rec)...)
	}
	return out
}

func ctaRecord(rec *cta861.Record) []Violation {
	var out []Violation
	mode := &rec.Mode
	pub := &rec.Published
	id := fmt.Sprintf("vic %d (%s)", rec.VIC, rec.Name)
	add := func(check, detail string, args ...any) {
		out = append(out, Violation{Mode: id, Check: check, Detail: fmt.Sprintf(detail, args...)})
	}

	hDiv := float64(int(1) << mode.Doubling.X)
	iDouble := float64(mode.InterlaceFactor())

	if got, want := float64(mode.ScanSize.X), float64(mode.Size.X)+pub.HBlank/hDiv; got != want {
		add("horizontal blanking", "scan width %v, active + blanking %v", got, want)
	}
	if got, want := float64(mode.ScanSize.Y), float64(mode.Size.Y)+pub.VBlank*iDouble; got != want {
		add("vertical blanking", "scan height %v, active + blanking %v", got, want)
	}

	hFreq := float64(mode.PixelKHz) / float64(mode.ScanSize.X)
	if math.Abs(hFreq-pub.HFreqKHz) >= hFreqTol {
		add("horizontal frequency", "derived %.4f kHz, published %.4f kHz", hFreq, pub.HFreqKHz)
	}
	vFreq := float64(mode.PixelKHz) * 1e3 / float64(mode.ScanSize.X) / float64(mode.ScanSize.Y)
	if math.Abs(vFreq-pub.VFreqHz/iDouble) >= vFreqTol {
		add("vertical frequency", "derived %.4f Hz, published %.4f Hz", vFreq, pub.VFreqHz/iDouble)
	}

	if got, want := float64(mode.ScanSize.X), float64(mode.SyncEnd.X)+float64(pub.HBackPorch)/hDiv; got != want {
		add("horizontal back porch", "scan width %v, sync end + back porch %v", got, want)
	}
	slack := float64(mode.ScanSize.Y) - (float64(mode.SyncEnd.Y) + float64(pub.VBackPorch)*iDouble)
	if slack < 0 || slack > vSlackLines {
		add("vertical back porch", "scan height exceeds sync end + back porch by %v lines (allowed 0..%d)", slack, vSlackLines)
	}

	if h, v, ok := simpleRatio(pub.PixelAspect); ok {
		got := float64(h) / float64(v)
		want := (float64(mode.Aspect.X) / float64(mode.Size.X)) / (float64(mode.Aspect.Y) / float64(mode.Size.Y))
		if math.Abs(got-want) >= aspectTol {
			add("pixel aspect ratio", "published %d:%d, derived %.4f", h, v, want)
		}
	}
	return out
}

// simpleRatio reports whether a pixel-aspect field is a single unambiguous
// h:v ratio. Ranged or multi-valued fields (e.g. "2:9 - 20:9",
// "4:9 or 8:9") are informational only and are never checked.
func simpleRatio(field string) (h, v int, ok bool) {
	if field == "" || strings.ContainsAny(field, " -,") {
		return 0, 0, false
	}
	hs, vs, found := strings.Cut(field, ":")
	if !found {
		return 0, 0, false
	}
	if _, err := fmt.Sscanf(hs+" "+vs, "%d %d", &h, &v); err != nil {
		return 0, 0, false
	}
	if v == 0 {
		return 0, 0, false
	}
	return h, v, true
}

// VESADMT checks every DMT record: the addressable width and height implied
// by the published times must match the active raster within one pixel
// period or line period.
func VESADMT(recs []*vesadmt.Record) []Violation {
	var out []Violation
	for _, rec := range recs {
		mode := &rec.Mode
		pub := &rec.Published

		if d := math.Abs(pub.HorAddrTime - float64(mode.Size.X)*pub.PixUsec); d >= addrTol {
			out = append(out, Violation{
				Mode:   rec.Name,
				Check:  "horizontal addressable time",
				Detail: fmt.Sprintf("published %.3f usec differs from %d pixels by %.3f usec", pub.HorAddrTime, mode.Size.X, d),
			})
		}
		if d := math.Abs(pub.VerAddrTime - float64(mode.Size.Y)*pub.LineMsec); d >= addrTol {
			out = append(out, Violation{
				Mode:   rec.Name,
				Check:  "vertical addressable time",
				Detail: fmt.Sprintf("published %.3f msec differs from %d lines by %.3f msec", pub.VerAddrTime, mode.Size.Y, d),
			})
		}
	}
	return out
}

// Modes runs both check families and returns the aggregated result.
func Modes(cta []*cta861.Record, vesa []*vesadmt.Record) []Violation {
	return append(CTA861(cta), VESADMT(vesa)...)
}
