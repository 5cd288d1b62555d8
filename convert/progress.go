package convert

import "time"

// Estimator projects remaining conversion time from observed throughput.
// It is pure accounting over bytes: the total input size is fixed up
// front, processed bytes accumulate as channels complete, and the estimate
// extrapolates the observed seconds-per-byte rate over the remainder.
type Estimator struct {
	totalBytes     int64
	processedBytes int64
}

// NewEstimator creates an Estimator for a run over totalBytes of input.
func NewEstimator(totalBytes int64) *Estimator {
	return &Estimator{totalBytes: totalBytes}
}

// Add records n more input bytes as processed.
func (e *Estimator) Add(n int64) {
	e.processedBytes += n
}

// Processed returns the bytes processed so far.
func (e *Estimator) Processed() int64 {
	return e.processedBytes
}

// Estimate projects the remaining time after elapsed wall-clock time.
//
// Before any bytes are processed there is no observed rate; the second
// return value is false and the estimate must be treated as unavailable
// rather than zero.
func (e *Estimator) Estimate(elapsed time.Duration) (time.Duration, bool) {
	if e.processedBytes <= 0 {
		return 0, false
	}

	perByte := float64(elapsed) / float64(e.processedBytes)
	remaining := perByte * float64(e.totalBytes-e.processedBytes)
	if remaining < 0 {
		remaining = 0
	}

	return time.Duration(remaining), true
}
