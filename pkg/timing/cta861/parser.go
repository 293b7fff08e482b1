package cta861

import (
	"math"
	"sort"
	"strconv"
	"strings"

	"modetab/pkg/errors"
	"modetab/pkg/timing"
)

// Record pairs a display mode under construction with the redundant
// published quantities the validation pass checks it against.
type Record struct {
	VIC       int                `json:"vic" yaml:"vic"`
	Name      string             `json:"name" yaml:"name"`
	Mode      timing.DisplayMode `json:"mode" yaml:"mode"`
	Published Published          `json:"-" yaml:"-"`
}

// Published holds the fields of the source tables that restate quantities
// derivable from the mode itself. Horizontal counts are raw table values:
// for pixel-doubled records the mode's horizontal quantities are halved but
// these are not.
type Published struct {
	HFreqKHz   float64 // Table 1 horizontal frequency, kHz
	VFreqHz    float64 // Table 1 vertical (field) frequency, Hz
	HBlank     float64 // Table 1 total horizontal blanking, pixels
	VBlank     float64 // Table 1 vertical blanking, lines per field
	HBackPorch int     // Table 2 horizontal back porch, pixels
	VBackPorch int     // Table 2 vertical back porch, lines per field
	// PixelAspect is the raw Table 3 pixel-aspect-ratio field. It is only a
	// checkable single ratio for some rows; others are ranges or lists.
	PixelAspect string
}

// Modes parses the embedded CTA-861-G tables. Records are returned in
// ascending VIC order.
func Modes() ([]*Record, error) {
	return Parse(table1Text, table2Text, table3Text)
}

// Parse runs the three table passes over the given table text.
func Parse(table1, table2, table3 string) ([]*Record, error) {
	byVIC, err := parseTable1(table1)
	if err != nil {
		return nil, err
	}
	if err := parseTable2(table2, byVIC); err != nil {
		return nil, err
	}
	if err := parseTable3(table3, byVIC); err != nil {
		return nil, err
	}

	vics := make([]int, 0, len(byVIC))
	for vic := range byVIC {
		vics = append(vics, vic)
	}
	sort.Ints(vics)

	recs := make([]*Record, 0, len(vics))
	for _, vic := range vics {
		recs = append(recs, byVIC[vic])
	}
	return recs, nil
}

// rows splits table text into whitespace-tokenized rows, dropping blanks.
func rows(text string) [][]string {
	var out [][]string
	for _, line := range strings.Split(text, "\n") {
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		out = append(out, fields)
	}
	return out
}

// vicList parses the leading comma-separated VIC field of a row. A row can
// define several VICs that share one timing.
func vicList(field, table, line string) ([]int, error) {
	parts := strings.Split(field, ",")
	vics := make([]int, 0, len(parts))
	for _, p := range parts {
		vic, err := strconv.Atoi(p)
		if err != nil {
			return nil, &errors.ParseError{Table: table, Line: line, Message: "bad VIC " + strconv.Quote(p), Err: err}
		}
		vics = append(vics, vic)
	}
	return vics, nil
}

// parseTable1 builds the keyed record collection from the detailed timing
// table. Row layout:
//
//	60,65 1280 720 Prog 3300 2020 750 30 18.000 24.0003 59.400
//	VICs  hact vact scan htot hblk vtot vblk hkhz  vhz    clkmhz
//
// A VIC may appear on several rows (alternate total-line variants); the last
// row wins, matching the source pipeline.
func parseTable1(text string) (map[int]*Record, error) {
	const table = "cta-861 table 1"
	byVIC := make(map[int]*Record)

	for _, fields := range rows(text) {
		line := strings.Join(fields, " ")
		if len(fields) != 11 {
			return nil, errors.NewParseError(table, line, "expected 11 fields")
		}

		vics, err := vicList(fields[0], table, line)
		if err != nil {
			return nil, err
		}

		var vert int
		switch fields[3] {
		case "Prog":
			vert = 0
		case "Int":
			vert = -1
		default:
			return nil, errors.NewParseError(table, line, "unknown scan type "+strconv.Quote(fields[3]))
		}

		nums, err := floats(fields[1:], table, line,
			"active width", "active height", "", "total width", "h blanking",
			"total height", "v blanking", "h frequency", "v frequency", "pixel clock")
		if err != nil {
			return nil, err
		}

		for _, vic := range vics {
			rec := byVIC[vic]
			if rec == nil {
				rec = &Record{VIC: vic}
				byVIC[vic] = rec
			}
			rec.Mode.Size = timing.XY{X: int(nums[0]), Y: int(nums[1])}
			rec.Mode.ScanSize = timing.XY{X: int(nums[3]), Y: int(nums[5])}
			rec.Mode.Doubling = timing.XY{X: 0, Y: vert}
			rec.Mode.PixelKHz = int(math.Round(nums[9] * 1e3))
			rec.Mode.NominalHz = int(math.Round(nums[8]))

			rec.Published.HBlank = nums[4]
			rec.Published.VBlank = nums[6]
			rec.Published.HFreqKHz = nums[7]
			rec.Published.VFreqHz = nums[8]
		}
	}
	return byVIC, nil
}

// parseTable2 adds sync geometry from the detailed sync table. Row layout:
//
//	60,65 2 1760 40 220 P 5 5 20 P 1 SMPTE 296M [61] 1,2,25
//	VICs  . hfp  hsw hbp hp vfp vsw vbp vp <provenance, ignored>
//
// Vertical counts are per field; they are scaled by the interlace factor to
// get frame-relative line offsets.
func parseTable2(text string, byVIC map[int]*Record) error {
	const table = "cta-861 table 2"

	for _, fields := range rows(text) {
		line := strings.Join(fields, " ")
		if len(fields) < 10 {
			return errors.NewParseError(table, line, "expected at least 10 fields")
		}

		vics, err := vicList(fields[0], table, line)
		if err != nil {
			return err
		}

		nums, err := ints(fields, table, line,
			map[int]string{2: "h front porch", 3: "h sync width", 4: "h back porch",
				6: "v front porch", 7: "v sync width", 8: "v back porch"})
		if err != nil {
			return err
		}
		hPol, err := polarity(fields[5], table, line)
		if err != nil {
			return err
		}
		vPol, err := polarity(fields[9], table, line)
		if err != nil {
			return err
		}

		for _, vic := range vics {
			rec, ok := byVIC[vic]
			if !ok {
				return errors.NewUnknownVICError(table, vic)
			}
			iDouble := rec.Mode.InterlaceFactor()
			rec.Mode.SyncStart = timing.XY{
				X: rec.Mode.Size.X + nums[2],
				Y: rec.Mode.Size.Y + nums[6]*iDouble,
			}
			rec.Mode.SyncEnd = timing.XY{
				X: rec.Mode.SyncStart.X + nums[3],
				Y: rec.Mode.SyncStart.Y + nums[7]*iDouble,
			}
			rec.Mode.SyncPolarity = timing.XY{X: hPol, Y: vPol}

			rec.Published.HBackPorch = nums[4]
			rec.Published.VBackPorch = nums[8]
		}
	}
	return nil
}

// parseTable3 finalizes records with name, aspect ratio, and pixel-doubling
// correction. Row layout:
//
//	7 720(1440)x480i 59.94Hz/60Hz 16:9 32:27
//	VIC name         refresh      aspect pixel-aspect
//
// Rows for forbidden or reserved VIC ranges are skipped. A parenthesized
// width marks a pixel-doubled mode: the raw tables describe the doubled
// raster, so the record's horizontal quantities and pixel clock are halved.
func parseTable3(text string, byVIC map[int]*Record) error {
	const table = "cta-861 table 3"

	for _, fields := range rows(text) {
		line := strings.Join(fields, " ")
		if len(fields) >= 2 {
			switch fields[1] {
			case "Forbidden", "Reserved", "No":
				continue
			}
		}
		if len(fields) < 5 {
			return errors.NewParseError(table, line, "expected at least 5 fields")
		}

		vic, err := strconv.Atoi(fields[0])
		if err != nil {
			return &errors.ParseError{Table: table, Line: line, Message: "bad VIC", Err: err}
		}
		rec, ok := byVIC[vic]
		if !ok {
			return errors.NewUnknownVICError(table, vic)
		}

		aspect, err := ratio(fields[3])
		if err != nil {
			return &errors.ParseError{Table: table, Line: line, Message: "bad aspect ratio", Err: err}
		}
		rec.Name = fields[1]
		rec.Mode.Aspect = aspect

		if err := applyName(rec, fields[1], table, line); err != nil {
			return err
		}

		// Retained raw: the validation pass decides whether it is a single
		// checkable ratio or an informational range/list.
		rec.Published.PixelAspect = strings.Join(fields[4:], " ")
	}
	return nil
}

// applyName checks the mode name against the record and applies the
// pixel-doubling correction when the name carries a parenthesized width.
func applyName(rec *Record, name, table, line string) error {
	scan := name[len(name)-1:]
	want := "p"
	if rec.Mode.Interlaced() {
		want = "i"
	}
	if scan != want {
		return errors.NewParseError(table, line, "scan suffix "+strconv.Quote(scan)+" does not match record scan type")
	}

	body, vertStr, ok := strings.Cut(name[:len(name)-1], "x")
	if !ok {
		return errors.NewParseError(table, line, "mode name has no 'x' separator")
	}
	horStr := body
	fullStr := body
	if open := strings.IndexByte(body, '('); open >= 0 {
		horStr = body[:open]
		fullStr = strings.TrimSuffix(body[open+1:], ")")
	}

	full, err := strconv.Atoi(fullStr)
	if err != nil {
		return &errors.ParseError{Table: table, Line: line, Message: "bad width in mode name", Err: err}
	}
	hor, err := strconv.Atoi(horStr)
	if err != nil {
		return &errors.ParseError{Table: table, Line: line, Message: "bad width in mode name", Err: err}
	}
	vert, err := strconv.Atoi(vertStr)
	if err != nil {
		return &errors.ParseError{Table: table, Line: line, Message: "bad height in mode name", Err: err}
	}

	if (timing.XY{X: full, Y: vert}) != rec.Mode.Size {
		return errors.NewParseError(table, line, "mode name size does not match detailed timing")
	}
	if full == hor {
		return nil
	}
	if full != hor*2 {
		return errors.NewParseError(table, line, "doubled width is not twice the base width")
	}

	rec.Mode.Size.X = hor
	rec.Mode.ScanSize.X /= 2
	rec.Mode.SyncStart.X /= 2
	rec.Mode.SyncEnd.X /= 2
	rec.Mode.PixelKHz /= 2
	rec.Mode.Doubling.X = 1
	return nil
}

// ratio parses an "h:v" integer pair.
func ratio(s string) (timing.XY, error) {
	hs, vs, ok := strings.Cut(s, ":")
	if !ok {
		return timing.XY{}, errors.New("no ':' separator in " + strconv.Quote(s))
	}
	h, err := strconv.Atoi(hs)
	if err != nil {
		return timing.XY{}, err
	}
	v, err := strconv.Atoi(vs)
	if err != nil {
		return timing.XY{}, err
	}
	return timing.XY{X: h, Y: v}, nil
}

// polarity maps a P/N sync polarity token to +1/-1.
func polarity(tok, table, line string) (int, error) {
	switch tok {
	case "P":
		return +1, nil
	case "N":
		return -1, nil
	}
	return 0, errors.NewParseError(table, line, "unknown sync polarity "+strconv.Quote(tok))
}

// floats parses fields as float64, in order. An empty name skips a field.
func floats(fields []string, table, line string, names ...string) ([]float64, error) {
	out := make([]float64, len(names))
	for i, name := range names {
		if name == "" {
			continue
		}
		f, err := strconv.ParseFloat(fields[i], 64)
		if err != nil {
			return nil, &errors.ParseError{Table: table, Line: line, Message: "bad " + name, Err: err}
		}
		out[i] = f
	}
	return out, nil
}

// ints parses the named field positions as integers.
func ints(fields []string, table, line string, names map[int]string) (map[int]int, error) {
	out := make(map[int]int, len(names))
	for i, name := range names {
		n, err := strconv.Atoi(fields[i])
		if err != nil {
			return nil, &errors.ParseError{Table: table, Line: line, Message: "bad " + name, Err: err}
		}
		out[i] = n
	}
	return out, nil
}
