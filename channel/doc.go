// Package channel handles the per-channel side of a recording: ordering the
// raw channel-stream files, validating the continuity of a channel's sample
// block timestamps, and clustering channels into groups that share an
// identical timestamp vector.
//
// Channels are processed strictly sequentially and in sorted order; the
// Grouper depends on that ordering because a new group starts exactly when a
// channel's timestamp vector differs from the immediately preceding one.
package channel
