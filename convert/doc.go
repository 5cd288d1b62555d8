// Package convert orchestrates the conversion of one or more Neuralynx
// recordings into MAT output bundles.
//
// A run walks a fixed sequence of states: scan and sort the input files,
// read the single mandatory event stream, process every channel stream in
// sorted order (continuity check, timestamp grouping, per-channel output),
// aggregate the collected headers, and finally write the timestamps and
// header manifests. The per-channel outputs are written while channels are
// processed, so a failure mid-run leaves the two manifests absent, which
// marks the bundle as incomplete.
//
// The pipeline itself is strictly sequential; timestamp grouping and the
// running throughput estimate both depend on processing order. The only
// concurrency is structural: a front-end runs the conversion in a worker
// goroutine and receives progress through a Reporter, typically the
// channel-backed ChanReporter.
package convert
