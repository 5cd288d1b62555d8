package header

import (
	"fmt"
	"strings"
)

// ManifestField is one reconciled field of the recording manifest.
type ManifestField struct {
	// Name is the field name as found in the headers (not yet sanitized).
	Name string
	// Static reports whether the field holds one value for the whole
	// recording.
	Static bool
	// Value is the recording-wide value. Set only when Static.
	Value Value
	// PerChannel holds one value per channel in processing order, absent
	// for channels whose header lacks the field. Set only when not Static.
	PerChannel []Value
}

// Aggregate is the reconciled view over all channel headers of a run.
type Aggregate struct {
	// Fields lists the manifest fields in the field order of the first
	// channel's header.
	Fields []ManifestField
	// Anomalies lists non-fatal irregularities observed while reconciling:
	// fields outside the catalog and headers whose field set differs from
	// the first channel's. They are logged, never fatal.
	Anomalies []string
}

// AggregateHeaders reconciles the ordered per-channel headers into one
// manifest.
//
// The first channel's field set is the reference: every reference field that
// is a static candidate and holds the same value on every channel is
// emitted once; a static candidate observed to differ is reclassified as
// varying for this run; varying candidates always emit the full per-channel
// sequence. Fields ending in InternalSuffix are dropped. Reference fields
// outside the catalog are warned about and skipped.
//
// The reconciliation runs in two passes: the first collects per-field
// distinctness across channels, the second emits, so classification never
// mutates mid-emit.
func AggregateHeaders(headers []*Header, catalog *Catalog) *Aggregate {
	agg := &Aggregate{}
	if len(headers) == 0 {
		return agg
	}

	agg.Anomalies = append(agg.Anomalies, catalogAnomalies(headers, catalog)...)
	agg.Anomalies = append(agg.Anomalies, fieldSetAnomalies(headers)...)

	reference := headers[0]

	// Pass 1: observe which reference fields hold one distinct value.
	uniform := make(map[string]bool, reference.Len())
	for _, name := range reference.Names() {
		first := headers[0].Get(name)
		same := true
		for _, hdr := range headers[1:] {
			if !hdr.Get(name).Equal(first) {
				same = false
				break
			}
		}
		uniform[name] = same
	}

	// Pass 2: emit in reference order.
	for _, name := range reference.Names() {
		if strings.HasSuffix(name, InternalSuffix) {
			continue
		}

		switch {
		case catalog.IsStatic(name) && uniform[name]:
			agg.Fields = append(agg.Fields, ManifestField{
				Name:   name,
				Static: true,
				Value:  reference.Get(name),
			})
		case catalog.IsStatic(name) || catalog.IsVarying(name):
			perChannel := make([]Value, len(headers))
			for i, hdr := range headers {
				perChannel[i] = hdr.Get(name)
			}
			agg.Fields = append(agg.Fields, ManifestField{
				Name:       name,
				PerChannel: perChannel,
			})
		}
		// Reference fields outside the catalog were warned about above and
		// are not exported.
	}

	return agg
}

func catalogAnomalies(headers []*Header, catalog *Catalog) []string {
	var anomalies []string
	warned := make(map[string]struct{})

	for _, hdr := range headers {
		for _, name := range hdr.Names() {
			if catalog.Known(name) {
				continue
			}
			if _, ok := warned[name]; ok {
				continue
			}
			warned[name] = struct{}{}
			anomalies = append(anomalies, fmt.Sprintf("header field %q is not in the known field catalog", name))
		}
	}

	return anomalies
}

func fieldSetAnomalies(headers []*Header) []string {
	var anomalies []string

	reference := headers[0]
	for idx, hdr := range headers[1:] {
		if sameFieldSet(reference, hdr) {
			continue
		}
		anomalies = append(anomalies, fmt.Sprintf("header %d field set differs from the first channel's", idx+1))
	}

	return anomalies
}

func sameFieldSet(a, b *Header) bool {
	if a.Len() != b.Len() {
		return false
	}
	for _, name := range b.Names() {
		if !a.Has(name) {
			return false
		}
	}

	return true
}
