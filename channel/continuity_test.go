package channel

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ephys-tools/ncs2mat/errs"
)

// uniformTimestamps builds n block timestamps spaced for the given rate.
func uniformTimestamps(n int, start uint64, sampleRate float64) []uint64 {
	spacing := uint64(ExpectedBlockSpacing(sampleRate))
	ts := make([]uint64, n)
	for i := range ts {
		ts[i] = start + uint64(i)*spacing
	}

	return ts
}

func TestExpectedBlockSpacing(t *testing.T) {
	// 512 samples at 32 kHz span 16 ms.
	require.Equal(t, int64(16000), ExpectedBlockSpacing(32000))
	// 512 samples at 1 kHz span 512 ms.
	require.Equal(t, int64(512000), ExpectedBlockSpacing(1000))
}

func TestCheckContinuityUniform(t *testing.T) {
	ts := uniformTimestamps(100, 1_000_000, 32000)
	require.NoError(t, CheckContinuity(ts, 32000))
}

func TestCheckContinuityJitterWithinTolerance(t *testing.T) {
	// Spacing off by less than one full expected interval still passes; the
	// tolerance equals the expected spacing itself.
	ts := uniformTimestamps(10, 1_000_000, 32000)
	for i := 3; i < len(ts); i++ {
		ts[i] += 15999 // one short of doubling the spacing
	}
	require.NoError(t, CheckContinuity(ts, 32000))
}

func TestCheckContinuityGapFails(t *testing.T) {
	ts := uniformTimestamps(50, 1_000_000, 32000)
	for i := 25; i < len(ts); i++ {
		ts[i] += 2 * uint64(ExpectedBlockSpacing(32000)) // a pause in the recording
	}

	err := CheckContinuity(ts, 32000)
	require.ErrorIs(t, err, errs.ErrNotContinuous)
}

func TestCheckContinuityBackwardsJumpFails(t *testing.T) {
	ts := uniformTimestamps(10, 10_000_000, 32000)
	ts[5] = ts[4] // zero spacing deviates by a full interval

	err := CheckContinuity(ts, 32000)
	require.ErrorIs(t, err, errs.ErrNotContinuous)
}

func TestCheckContinuityShortVectors(t *testing.T) {
	require.NoError(t, CheckContinuity(nil, 32000))
	require.NoError(t, CheckContinuity([]uint64{123}, 32000))
}
