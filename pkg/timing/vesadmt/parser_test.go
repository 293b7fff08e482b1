package vesadmt

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"modetab/pkg/errors"
	"modetab/pkg/timing"
)

// minimal valid block, 640x480@60Hz
const testBlock = `
Timing Name = 640 x 480 @ 60Hz;
Hor Pixels = 640; // Pixels
Ver Pixels = 480; // Lines
Hor Frequency = 31.469; // kHz
Ver Frequency = 59.940; // Hz
Pixel Clock = 25.175; // MHz
Scan Type = NONINTERLACED;
Hor Sync Polarity = NEGATIVE;
Ver Sync Polarity = NEGATIVE;
Hor Total Time = 31.778; // (usec)
Hor Addr Time = 25.422; // (usec)
Hor Sync Start = 26.058; // (usec)
Hor Sync Time = 3.813; // (usec)
Ver Total Time = 16.683; // (msec)
Ver Addr Time = 15.253; // (msec)
Ver Sync Start = 15.571; // (msec)
Ver Sync Time = 0.064; // (msec)
`

func recordByName(t *testing.T, recs []*Record, name string) *Record {
	t.Helper()
	for _, rec := range recs {
		if rec.Name == name {
			return rec
		}
	}
	t.Fatalf("no record named %q", name)
	return nil
}

func TestModes_EmbeddedTable(t *testing.T) {
	recs, err := Modes()
	require.NoError(t, err)
	assert.Len(t, recs, 88)

	// Parse order follows the source document, which starts at 640x350.
	assert.Equal(t, "640 x 350 @ 85Hz", recs[0].Name)
	assert.Equal(t, timing.XY{X: 640, Y: 350}, recs[0].Mode.Size)
	assert.Equal(t, timing.XY{X: 832, Y: 445}, recs[0].Mode.ScanSize)
}

func TestModes_640x480At60(t *testing.T) {
	recs, err := Modes()
	require.NoError(t, err)

	mode := recordByName(t, recs, "640 x 480 @ 60Hz").Mode
	assert.Equal(t, timing.DisplayMode{
		Size:         timing.XY{X: 640, Y: 480},
		ScanSize:     timing.XY{X: 800, Y: 525},
		SyncStart:    timing.XY{X: 656, Y: 490},
		SyncEnd:      timing.XY{X: 752, Y: 492},
		SyncPolarity: timing.XY{X: -1, Y: -1},
		PixelKHz:     25175,
		NominalHz:    60,
	}, mode)
}

func TestModes_InterlacedScanType(t *testing.T) {
	recs, err := Modes()
	require.NoError(t, err)

	mode := recordByName(t, recs, "1024 x 768 @ 43Hz (Interlaced)").Mode
	assert.Equal(t, timing.XY{X: 0, Y: -1}, mode.Doubling)

	// Every other DMT mode is progressive.
	interlaced := 0
	for _, rec := range recs {
		if rec.Mode.Interlaced() {
			interlaced++
		}
	}
	assert.Equal(t, 1, interlaced)
}

func TestModes_NoAspect(t *testing.T) {
	recs, err := Modes()
	require.NoError(t, err)
	for _, rec := range recs {
		assert.Equal(t, timing.XY{}, rec.Mode.Aspect, "DMT records carry no aspect ratio")
	}
}

func TestParse_SingleBlock(t *testing.T) {
	recs, err := Parse(testBlock)
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, 25175, recs[0].Mode.PixelKHz)
	assert.Equal(t, timing.XY{X: 800, Y: 525}, recs[0].Mode.ScanSize)
}

func TestParse_MissingKey(t *testing.T) {
	broken := strings.Replace(testBlock, "Pixel Clock", "Pixel Cloak", 1)
	_, err := Parse(broken)
	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrMissingKey)

	var missing *errors.MissingKeyError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, "Pixel Clock", missing.Key)
	assert.Equal(t, "640 x 480 @ 60Hz", missing.Block)
}

func TestParse_BadPolarityToken(t *testing.T) {
	broken := strings.Replace(testBlock, "NEGATIVE", "NEUTRAL", 1)
	_, err := Parse(broken)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "polarity")
}

func TestParse_BadScanType(t *testing.T) {
	broken := strings.Replace(testBlock, "NONINTERLACED", "PROGRESSIVE", 1)
	_, err := Parse(broken)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "scan type")
}

func TestParse_EmptyBlocksSkipped(t *testing.T) {
	recs, err := Parse("\n  \n" + blockMarker + "\n  \n" + blockMarker + testBlock)
	require.NoError(t, err)
	assert.Len(t, recs, 1)
}

func TestParse_CommentedLinesIgnored(t *testing.T) {
	withComments := testBlock + "// H Front Porch = 0.318; // (usec)\n"
	recs, err := Parse(withComments)
	require.NoError(t, err)
	require.Len(t, recs, 1)
}
