// Package errs defines the sentinel errors shared across the ncs2mat
// packages.
//
// Errors that abort an entire conversion run (spec'd as fatal) live here so
// callers can classify failures with errors.Is without importing the package
// that produced them.
package errs

import "errors"

// Recording-level errors. Any of these aborts the whole conversion run.
var (
	// ErrNotContinuous indicates a channel's block timestamps are not
	// uniformly spaced, i.e. the recording contains an unexplained pause.
	ErrNotContinuous = errors.New("recording is not continuous (there were pauses in the recording)")

	// ErrNoEventFile indicates the recording directory contains no event
	// stream (.nev) file.
	ErrNoEventFile = errors.New("recording has no events .nev file")

	// ErrTooManyEventFiles indicates the recording directory contains more
	// than one event stream (.nev) file.
	ErrTooManyEventFiles = errors.New("recording has more than one events .nev file")
)

// Decoder errors.
var (
	// ErrShortHeader indicates a stream file is smaller than the fixed
	// 16 KiB Neuralynx header block.
	ErrShortHeader = errors.New("stream file is shorter than its header block")

	// ErrTruncatedRecord indicates a stream file ends in the middle of a
	// fixed-size record.
	ErrTruncatedRecord = errors.New("stream file ends mid-record")
)

// Writer errors.
var (
	// ErrFieldNameTooLong indicates a manifest struct field name exceeds the
	// 31-character limit of the MAT-file level 5 format.
	ErrFieldNameTooLong = errors.New("struct field name exceeds 31 characters")
)
