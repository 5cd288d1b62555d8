package channel

import (
	"github.com/cespare/xxhash/v2"

	"github.com/ephys-tools/ncs2mat/endian"
)

// Group is one finalized timestamp group: the channels that share one
// canonical timestamp vector.
type Group struct {
	// Members lists the member channel indices, 1-based, in processing
	// order. The manifest is consumed by 1-based tooling.
	Members []int
	// Timestamps is the group's canonical timestamp vector.
	Timestamps []uint64
}

// Grouper clusters sequentially processed channels into timestamp groups.
//
// The first channel with data establishes the canonical vector (after a
// continuity check); each later channel either matches the current canonical
// vector pointwise and joins the open group, or differs and starts a new
// group with its own vector as canonical. Later canonical vectors are not
// re-checked for continuity, mirroring the acquisition-side convention.
//
// Vector identity uses a 64-bit xxHash fingerprint of the raw timestamp
// bytes as a fast path; pointwise comparison confirms a fingerprint match,
// so a hash collision can never merge two distinct groups.
type Grouper struct {
	mapping   []int
	groups    []Group
	canonical []uint64
	fp        uint64
	started   bool
}

// NewGrouper creates a Grouper for a recording with total channel slots.
func NewGrouper(total int) *Grouper {
	return &Grouper{
		mapping: make([]int, total),
	}
}

// Observe registers channel idx (0-based) with its timestamp vector.
//
// The continuity check runs only when the very first canonical vector is
// established; its failure is fatal to the run.
func (g *Grouper) Observe(idx int, timestamps []uint64, sampleRate float64) error {
	fp := fingerprint(timestamps)

	switch {
	case !g.started:
		if err := CheckContinuity(timestamps, sampleRate); err != nil {
			return err
		}
		g.started = true
		g.startGroup(idx, timestamps, fp)

	case fp == g.fp && equalVectors(timestamps, g.canonical):
		last := &g.groups[len(g.groups)-1]
		last.Members = append(last.Members, idx+1)

	default:
		g.startGroup(idx, timestamps, fp)
	}

	g.mapping[idx] = len(g.groups)

	return nil
}

// Skip records channel idx (0-based) as having no data. The channel keeps
// its slot in the mapping, marked 0, and joins no group.
func (g *Grouper) Skip(idx int) {
	g.mapping[idx] = 0
}

// Mapping returns the per-channel group index, 1-based, 0 for channels
// without a group. The returned slice is owned by the Grouper.
func (g *Grouper) Mapping() []int {
	return g.mapping
}

// Groups returns the finalized groups in creation order.
func (g *Grouper) Groups() []Group {
	return g.groups
}

func (g *Grouper) startGroup(idx int, timestamps []uint64, fp uint64) {
	g.canonical = timestamps
	g.fp = fp
	g.groups = append(g.groups, Group{
		Members:    []int{idx + 1},
		Timestamps: timestamps,
	})
}

func fingerprint(timestamps []uint64) uint64 {
	engine := endian.GetLittleEndianEngine()
	d := xxhash.New()

	var buf [8]byte
	for _, ts := range timestamps {
		engine.PutUint64(buf[:], ts)
		_, _ = d.Write(buf[:])
	}

	return d.Sum64()
}

func equalVectors(a, b []uint64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}

	return true
}
