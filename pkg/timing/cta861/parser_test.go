package cta861

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"modetab/pkg/errors"
	"modetab/pkg/timing"
)

// Single-mode table rows used by the structural failure tests. VIC 4 is
// 1280x720p60, VIC 6 is the pixel-doubled 720(1440)x480i60.
const (
	vic4Table1 = "4,69 1280 720 Prog 1650 370 750 30 45.000 60.0003 74.250\n"
	vic4Table2 = "4,69 2 110 40 220 P 5 5 20 P 1 CTA-770.3 [31] 1,2\n"
	vic4Table3 = "4 1280x720p 59.94Hz/60Hz 16:9 1:1\n69 1280x720p 59.94Hz/60Hz 64:27 4:3\n"

	vic6Table1 = "6,7 1440 480 Int 1716 276 525 22.5 15.734 59.9403 27.000\n"
	vic6Table2 = "6,7 3 38 124 114 N 4 3 15 N 4 CTA-770.2 [30] 2,15\n"
	vic6Table3 = "6 720(1440)x480i 59.94Hz/60Hz 4:3 8:9\n7 720(1440)x480i 59.94Hz/60Hz 16:9 32:27\n"
)

func modeByVIC(t *testing.T, recs []*Record, vic int) *Record {
	t.Helper()
	for _, rec := range recs {
		if rec.VIC == vic {
			return rec
		}
	}
	t.Fatalf("no record for VIC %d", vic)
	return nil
}

func TestModes_EmbeddedTables(t *testing.T) {
	recs, err := Modes()
	require.NoError(t, err)
	assert.Len(t, recs, 154)

	for i := 1; i < len(recs); i++ {
		assert.Greater(t, recs[i].VIC, recs[i-1].VIC, "records must be in ascending VIC order")
	}
}

func TestModes_VIC4EndToEnd(t *testing.T) {
	recs, err := Modes()
	require.NoError(t, err)

	rec := modeByVIC(t, recs, 4)
	assert.Equal(t, "1280x720p", rec.Name)
	assert.Equal(t, timing.DisplayMode{
		Size:         timing.XY{X: 1280, Y: 720},
		ScanSize:     timing.XY{X: 1650, Y: 750},
		SyncStart:    timing.XY{X: 1390, Y: 725},
		SyncEnd:      timing.XY{X: 1430, Y: 730},
		SyncPolarity: timing.XY{X: 1, Y: 1},
		Doubling:     timing.XY{X: 0, Y: 0},
		Aspect:       timing.XY{X: 16, Y: 9},
		PixelKHz:     74250,
		NominalHz:    60,
	}, rec.Mode)
}

func TestModes_InterlacedVIC5(t *testing.T) {
	recs, err := Modes()
	require.NoError(t, err)

	mode := modeByVIC(t, recs, 5).Mode
	assert.Equal(t, timing.XY{X: 0, Y: -1}, mode.Doubling)
	assert.Equal(t, 2, mode.InterlaceFactor())
	// Vertical sync offsets are per frame: field counts from the sync table
	// scaled by the interlace factor.
	assert.Equal(t, timing.XY{X: 2008, Y: 1084}, mode.SyncStart)
	assert.Equal(t, timing.XY{X: 2052, Y: 1094}, mode.SyncEnd)
}

func TestModes_PixelDoubledVIC6(t *testing.T) {
	recs, err := Modes()
	require.NoError(t, err)

	for _, vic := range []int{6, 7} {
		mode := modeByVIC(t, recs, vic).Mode
		assert.Equal(t, timing.XY{X: 720, Y: 480}, mode.Size, "vic %d", vic)
		assert.Equal(t, timing.XY{X: 1, Y: -1}, mode.Doubling, "vic %d", vic)
		// Raw table values are for the doubled 1440-wide raster; the
		// record halves them, including the 27 MHz clock.
		assert.Equal(t, timing.XY{X: 858, Y: 525}, mode.ScanSize, "vic %d", vic)
		assert.Equal(t, 13500, mode.PixelKHz, "vic %d", vic)
	}
}

func TestParse_DuplicateRowsLastWins(t *testing.T) {
	// VIC 23/24 has three total-height variants in Table 1; the final
	// record keeps the last.
	recs, err := Modes()
	require.NoError(t, err)

	mode := modeByVIC(t, recs, 23).Mode
	assert.Equal(t, 314, mode.ScanSize.Y)
	assert.Equal(t, 50, mode.NominalHz)
}

func TestParse_UnknownVICInSyncTable(t *testing.T) {
	_, err := Parse(vic4Table1, "5 4 88 44 148 P 2 5 15 P 1 x\n", vic4Table3)
	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrUnknownVIC)

	var unknown *errors.UnknownVICError
	require.ErrorAs(t, err, &unknown)
	assert.Equal(t, 5, unknown.VIC)
}

func TestParse_UnknownVICInAspectTable(t *testing.T) {
	_, err := Parse(vic4Table1, vic4Table2, "5 1920x1080i 59.94Hz/60Hz 16:9 1:1\n")
	assert.ErrorIs(t, err, errors.ErrUnknownVIC)
}

func TestParse_ScanSuffixMismatch(t *testing.T) {
	_, err := Parse(vic4Table1, vic4Table2, "4 1280x720i 59.94Hz/60Hz 16:9 1:1\n69 1280x720p 59.94Hz/60Hz 64:27 4:3\n")
	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrMalformedTable)
	assert.Contains(t, err.Error(), "scan suffix")
}

func TestParse_NameSizeMismatch(t *testing.T) {
	_, err := Parse(vic4Table1, vic4Table2, "4 1280x768p 59.94Hz/60Hz 16:9 1:1\n69 1280x720p 59.94Hz/60Hz 64:27 4:3\n")
	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrMalformedTable)
}

func TestParse_DoubledWidthMismatch(t *testing.T) {
	// 730*2 != 1440, so the parenthesized width relation is broken.
	t3 := "6 730(1440)x480i 59.94Hz/60Hz 4:3 8:9\n7 720(1440)x480i 59.94Hz/60Hz 16:9 32:27\n"
	_, err := Parse(vic6Table1, vic6Table2, t3)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "twice")
}

func TestParse_UnknownScanType(t *testing.T) {
	_, err := Parse("4 1280 720 Frog 1650 370 750 30 45.000 60.0003 74.250\n", "", "")
	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrMalformedTable)
}

func TestParse_ReservedRowsSkipped(t *testing.T) {
	t3 := vic6Table3 + "128-192 Forbidden\n220-255 Reserved for the Future\n0 No Video Identification Code Available (Used with AVI InfoFrame only)\n"
	recs, err := Parse(vic6Table1, vic6Table2, t3)
	require.NoError(t, err)
	assert.Len(t, recs, 2)
}

func TestParse_RangedPixelAspectRetainedRaw(t *testing.T) {
	recs, err := Modes()
	require.NoError(t, err)

	// VIC 10's pixel aspect field is a range and must be kept verbatim for
	// the validation pass to classify.
	rec := modeByVIC(t, recs, 10)
	assert.Contains(t, rec.Published.PixelAspect, "2:9")
	assert.NotEqual(t, "2:9", rec.Published.PixelAspect)
}
