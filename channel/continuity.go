package channel

import (
	"github.com/ephys-tools/ncs2mat/errs"
)

// BlockSamples is the fixed number of samples per timestamped block.
const BlockSamples = 512

// ExpectedBlockSpacing returns the nominal microsecond spacing between
// consecutive block timestamps at the given sampling rate.
func ExpectedBlockSpacing(sampleRate float64) int64 {
	return int64(BlockSamples * (1e6 / sampleRate))
}

// CheckContinuity verifies that a channel's block timestamps form a uniform,
// gap-free sequence.
//
// The set of distinct consecutive differences is compared against the
// expected spacing; every distinct difference must lie within one full
// expected spacing of it.
//
// Returns errs.ErrNotContinuous if any spacing falls outside the tolerance.
// A gap means the recording was paused, so the whole run is aborted.
func CheckContinuity(timestamps []uint64, sampleRate float64) error {
	if len(timestamps) < 2 {
		return nil
	}

	expected := ExpectedBlockSpacing(sampleRate)
	seen := make(map[int64]struct{})

	for i := 1; i < len(timestamps); i++ {
		diff := int64(timestamps[i]) - int64(timestamps[i-1])
		if _, ok := seen[diff]; ok {
			continue
		}
		seen[diff] = struct{}{}

		dev := diff - expected
		if dev < 0 {
			dev = -dev
		}
		if dev >= expected {
			return errs.ErrNotContinuous
		}
	}

	return nil
}
