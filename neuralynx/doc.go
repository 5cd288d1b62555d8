// Package neuralynx decodes the raw Neuralynx acquisition formats consumed
// by the conversion pipeline: NCS channel streams (block-segmented sample
// records), NEV event streams and the fixed 16 KiB ASCII header block both
// formats carry.
//
// The pipeline depends only on the decoder interfaces declared in the
// convert package; this package is the concrete implementation wired in by
// default.
package neuralynx
