package neuralynx

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/ephys-tools/ncs2mat/endian"
	"github.com/ephys-tools/ncs2mat/errs"
)

// NEV record layout, little-endian. Only the timestamp and TTL word are
// exported; the packet bookkeeping, extra words and the free-form event
// string are skipped.
const (
	// NEVRecordSize is the fixed on-disk size of one event record.
	NEVRecordSize = 184

	nevOffTimestamp = 6  // uint64, event time in microseconds
	nevOffTTL       = 16 // int16, TTL input state
)

// EventDecoder decodes NEV event streams.
type EventDecoder struct {
	engine endian.EndianEngine
}

// NewEventDecoder creates an NEV decoder.
func NewEventDecoder() *EventDecoder {
	return &EventDecoder{engine: endian.GetLittleEndianEngine()}
}

// ReadEvents decodes the named NEV file in dir into (timestamp, TTL) pairs
// in file order.
func (d *EventDecoder) ReadEvents(dir, name string) ([][2]int64, error) {
	path := filepath.Join(dir, name)
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if len(raw) < HeaderBlockSize {
		return nil, fmt.Errorf("%s: %w", path, errs.ErrShortHeader)
	}

	body := raw[HeaderBlockSize:]
	if len(body)%NEVRecordSize != 0 {
		return nil, fmt.Errorf("%s: %w", path, errs.ErrTruncatedRecord)
	}

	n := len(body) / NEVRecordSize
	events := make([][2]int64, 0, n)
	for i := 0; i < n; i++ {
		rec := body[i*NEVRecordSize : (i+1)*NEVRecordSize]
		ts := int64(d.engine.Uint64(rec[nevOffTimestamp:]))
		ttl := int64(int16(d.engine.Uint16(rec[nevOffTTL:])))
		events = append(events, [2]int64{ts, ttl})
	}

	return events, nil
}
