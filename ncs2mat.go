// Package ncs2mat converts Neuralynx electrophysiology recordings into MAT
// file bundles.
//
// A recording is a directory of per-channel NCS stream files plus exactly
// one NEV event file. A conversion produces, per recording:
//
//   - events.mat: the (n,2) array of event timestamps and TTL values
//   - one <channel>.mat per non-empty channel, with the sample vector and
//     the channel's nominal start time
//   - timestamps.mat: the deduplicated block-timestamp vectors, with the
//     channel-to-group mapping in both directions
//   - ncs_headers.mat: the aggregated header manifest
//
// Channels sharing identical block-timestamp vectors are stored as one
// timestamp group, which is what makes the bundle compact: a tetrode-style
// recording has many channels but few distinct timestamp vectors.
//
// # Basic Usage
//
// Converting a single recording directory:
//
//	err := ncs2mat.Convert("/data/session1", "/data/session1_mat")
//
// A directory whose entries are subdirectories is treated as a set of
// recordings, each converted into a like-named output subdirectory.
//
// For progress reporting, custom decoders or a different output backend,
// build a convert.Converter directly:
//
//	c, err := convert.New(
//	    convert.WithReporter(reporter),
//	    convert.WithApplyInversion(true),
//	)
//	if err != nil {
//	    return err
//	}
//	return c.Convert(inputDir, outputDir)
//
// The output backend is selected at build time: the default writes MAT
// level 5 files with zlib compression, the hdf5 build tag switches to an
// HDF5-based writer.
package ncs2mat

import "github.com/ephys-tools/ncs2mat/convert"

// Convert converts the recording(s) under inputDir into outputDir using the
// default stack: Neuralynx decoders, the build-selected output backend,
// rescaling to volts enabled and hardware-inversion compensation disabled.
func Convert(inputDir, outputDir string, opts ...convert.Option) error {
	c, err := convert.New(opts...)
	if err != nil {
		return err
	}

	return c.Convert(inputDir, outputDir)
}
