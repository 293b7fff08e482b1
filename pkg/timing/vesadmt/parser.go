package vesadmt

import (
	"math"
	"strconv"
	"strings"

	"modetab/pkg/errors"
	"modetab/pkg/timing"
)

// blockMarker separates the per-timing parameter blocks in the source text.
const blockMarker = "Detailed Timing Parameters"

// Record is one fully populated DMT timing.
type Record struct {
	Name      string             `json:"name" yaml:"name"`
	Mode      timing.DisplayMode `json:"mode" yaml:"mode"`
	Published Published          `json:"-" yaml:"-"`
}

// Published holds the redundant block fields the validation pass re-derives:
// the addressable time per axis, plus the pixel and line periods every
// pixel/line count was divided out with.
type Published struct {
	HorAddrTime float64 // usec
	VerAddrTime float64 // msec
	PixUsec     float64 // derived pixel period
	LineMsec    float64 // derived line period
}

// block is the raw key/value form of one parameter block. Keys keep the
// exact spelling of the source text; commented-out lines land here too
// (with their "//" prefix) and are never looked up.
type block map[string]string

// Modes parses the embedded DMT parameter blocks, in source order.
func Modes() ([]*Record, error) {
	return Parse(dmtText)
}

// Parse splits text on the block marker and converts every non-empty block.
func Parse(text string) ([]*Record, error) {
	var recs []*Record
	for _, chunk := range strings.Split(text, blockMarker) {
		b, err := parseBlock(chunk)
		if err != nil {
			return nil, err
		}
		if len(b) == 0 {
			continue
		}
		rec, err := b.record()
		if err != nil {
			return nil, err
		}
		recs = append(recs, rec)
	}
	return recs, nil
}

// parseBlock scrapes "Key = Value; // comment" lines into a map.
func parseBlock(text string) (block, error) {
	b := make(block)
	for _, line := range strings.Split(text, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		key, value, ok := strings.Cut(line, "=")
		if !ok {
			return nil, errors.NewParseError("vesa dmt", strings.TrimSpace(line), "expected 'Key = Value' line")
		}
		value, _, _ = strings.Cut(value, "//")
		b[strings.TrimSpace(key)] = strings.TrimSuffix(strings.TrimSpace(value), ";")
	}
	return b, nil
}

// record converts one block, enumerating every required key explicitly so a
// missing or misspelled key surfaces as a named error instead of a zero.
func (b block) record() (*Record, error) {
	name, err := b.lookup("Timing Name")
	if err != nil {
		return nil, err
	}
	rec := &Record{Name: name}
	mode := &rec.Mode

	horPixels, err := b.intval("Hor Pixels")
	if err != nil {
		return nil, err
	}
	verPixels, err := b.intval("Ver Pixels")
	if err != nil {
		return nil, err
	}
	verFreq, err := b.floatval("Ver Frequency")
	if err != nil {
		return nil, err
	}
	clockMHz, err := b.floatval("Pixel Clock")
	if err != nil {
		return nil, err
	}

	mode.Size = timing.XY{X: horPixels, Y: verPixels}
	mode.NominalHz = int(math.Round(verFreq))
	mode.PixelKHz = int(math.Round(clockMHz * 1e3))

	// All remaining geometry is published as elapsed time; divide by the
	// pixel or line period and round back to pixel/line counts.
	pixUsec := 1e3 / float64(mode.PixelKHz)
	horTotal, err := b.floatval("Hor Total Time")
	if err != nil {
		return nil, err
	}
	lineMsec := horTotal * 1e-3

	hvals, err := b.pixels(pixUsec, "Hor Total Time", "Hor Sync Start", "Hor Sync Time")
	if err != nil {
		return nil, err
	}
	vvals, err := b.lines(lineMsec, "Ver Total Time", "Ver Sync Start", "Ver Sync Time")
	if err != nil {
		return nil, err
	}

	mode.ScanSize = timing.XY{X: hvals[0], Y: vvals[0]}
	mode.SyncStart = timing.XY{X: hvals[1], Y: vvals[1]}
	mode.SyncEnd = timing.XY{X: hvals[1] + hvals[2], Y: vvals[1] + vvals[2]}

	hPol, err := b.polarity("Hor Sync Polarity")
	if err != nil {
		return nil, err
	}
	vPol, err := b.polarity("Ver Sync Polarity")
	if err != nil {
		return nil, err
	}
	mode.SyncPolarity = timing.XY{X: hPol, Y: vPol}

	scan, err := b.lookup("Scan Type")
	if err != nil {
		return nil, err
	}
	switch scan {
	case "NONINTERLACED":
		mode.Doubling = timing.XY{X: 0, Y: 0}
	case "INTERLACED":
		mode.Doubling = timing.XY{X: 0, Y: -1}
	default:
		return nil, errors.NewParseError("vesa dmt", name, "unknown scan type "+strconv.Quote(scan))
	}

	rec.Published.PixUsec = pixUsec
	rec.Published.LineMsec = lineMsec
	if rec.Published.HorAddrTime, err = b.floatval("Hor Addr Time"); err != nil {
		return nil, err
	}
	if rec.Published.VerAddrTime, err = b.floatval("Ver Addr Time"); err != nil {
		return nil, err
	}
	return rec, nil
}

// lookup fetches a required key.
func (b block) lookup(key string) (string, error) {
	value, ok := b[key]
	if !ok {
		return "", errors.NewMissingKeyError(b["Timing Name"], key)
	}
	return value, nil
}

// intval fetches a required integer field.
func (b block) intval(key string) (int, error) {
	value, err := b.lookup(key)
	if err != nil {
		return 0, err
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, &errors.ParseError{Table: "vesa dmt", Line: b["Timing Name"], Message: "bad " + key, Err: err}
	}
	return n, nil
}

// floatval fetches a required float field.
func (b block) floatval(key string) (float64, error) {
	value, err := b.lookup(key)
	if err != nil {
		return 0, err
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, &errors.ParseError{Table: "vesa dmt", Line: b["Timing Name"], Message: "bad " + key, Err: err}
	}
	return f, nil
}

// pixels converts the named usec time fields to pixel counts.
func (b block) pixels(pixUsec float64, keys ...string) ([]int, error) {
	out := make([]int, len(keys))
	for i, key := range keys {
		t, err := b.floatval(key)
		if err != nil {
			return nil, err
		}
		out[i] = int(math.Round(t / pixUsec))
	}
	return out, nil
}

// lines converts the named msec time fields to line counts.
func (b block) lines(lineMsec float64, keys ...string) ([]int, error) {
	out := make([]int, len(keys))
	for i, key := range keys {
		t, err := b.floatval(key)
		if err != nil {
			return nil, err
		}
		out[i] = int(math.Round(t / lineMsec))
	}
	return out, nil
}

// polarity maps a POSITIVE/NEGATIVE token to +1/-1.
func (b block) polarity(key string) (int, error) {
	value, err := b.lookup(key)
	if err != nil {
		return 0, err
	}
	switch value {
	case "POSITIVE":
		return +1, nil
	case "NEGATIVE":
		return -1, nil
	}
	return 0, errors.NewParseError("vesa dmt", b["Timing Name"], "unknown sync polarity "+strconv.Quote(value))
}
