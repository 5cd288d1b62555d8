package channel

import "github.com/ephys-tools/ncs2mat/header"

// Record is the decoded content of one channel stream, as produced by a
// channel decoder. A Record is consumed immediately after decoding: its
// timestamps feed the Grouper, its header joins the manifest accumulator
// and its samples are written out, after which the Record is discarded.
type Record struct {
	// Index is the channel's position in the sorted stream-file list.
	Index int
	// Header is the channel's parsed header block.
	Header *header.Header
	// SampleRate is the declared sampling frequency in Hz.
	SampleRate float64
	// Timestamps holds one block-start time per 512-sample block, in
	// microseconds.
	Timestamps []uint64
	// Samples holds the channel's readings, flattened across blocks. Empty
	// for channels that recorded no data.
	Samples []float64
	// WasScaled reports whether Samples were rescaled to volts via the
	// header's ADBitVolts factor.
	WasScaled bool
	// WasInverted reports whether Samples were negated to undo hardware
	// input inversion.
	WasInverted bool
}

// HasData reports whether the channel recorded any samples.
func (r *Record) HasData() bool {
	return len(r.Samples) > 0
}

// TimestartOffset returns the nominal start time of the recording for this
// channel: the first block timestamp minus one sample interval, in
// microseconds.
func (r *Record) TimestartOffset() float64 {
	if len(r.Timestamps) == 0 || r.SampleRate == 0 {
		return 0
	}

	return float64(r.Timestamps[0]) - 1e6/r.SampleRate
}

// Invert negates all samples in place and marks the record inverted.
func (r *Record) Invert() {
	for i := range r.Samples {
		r.Samples[i] = -r.Samples[i]
	}
	r.WasInverted = true
}
