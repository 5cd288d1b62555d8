package neuralynx

import (
	"fmt"
	"os"

	"github.com/ephys-tools/ncs2mat/channel"
	"github.com/ephys-tools/ncs2mat/endian"
	"github.com/ephys-tools/ncs2mat/errs"
	"github.com/ephys-tools/ncs2mat/header"
)

// NCS record layout: a 20-byte record header followed by 512 signed 16-bit
// samples, all little-endian.
const (
	ncsRecordHeaderSize = 20
	// NCSRecordSize is the fixed on-disk size of one sample-block record.
	NCSRecordSize = ncsRecordHeaderSize + 2*channel.BlockSamples

	ncsOffTimestamp    = 0  // uint64, block start in microseconds
	ncsOffChannel      = 8  // uint32, acquisition channel number
	ncsOffSampleFreq   = 12 // uint32, sampling frequency in Hz
	ncsOffValidSamples = 16 // uint32, valid samples in this block
)

// ChannelDecoder decodes NCS channel streams into channel Records.
type ChannelDecoder struct {
	engine endian.EndianEngine
}

// NewChannelDecoder creates an NCS decoder.
func NewChannelDecoder() *ChannelDecoder {
	return &ChannelDecoder{engine: endian.GetLittleEndianEngine()}
}

// ReadHeader reads and parses only the header block of the named stream
// file in dir.
func (d *ChannelDecoder) ReadHeader(dir, name string) (*header.Header, error) {
	return ReadFileHeader(dir, name)
}

// ReadChannel decodes the NCS file at path. With rescale set, raw AD counts
// are converted to volts via the header's ADBitVolts factor.
//
// A file holding only the header block yields a Record with no samples and
// no timestamps; the caller marks such channels absent rather than failing.
func (d *ChannelDecoder) ReadChannel(path string, rescale bool) (*channel.Record, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if len(raw) < HeaderBlockSize {
		return nil, fmt.Errorf("%s: %w", path, errs.ErrShortHeader)
	}

	hdr := ParseHeader(raw[:HeaderBlockSize])
	body := raw[HeaderBlockSize:]
	if len(body)%NCSRecordSize != 0 {
		return nil, fmt.Errorf("%s: %w", path, errs.ErrTruncatedRecord)
	}

	adBitVolts := numericField(hdr, "ADBitVolts")
	scale := rescale && adBitVolts != 0

	n := len(body) / NCSRecordSize
	rec := &channel.Record{
		Header:     hdr,
		SampleRate: numericField(hdr, "SamplingFrequency"),
		Timestamps: make([]uint64, 0, n),
		Samples:    make([]float64, 0, n*channel.BlockSamples),
		WasScaled:  scale,
	}

	for i := 0; i < n; i++ {
		block := body[i*NCSRecordSize : (i+1)*NCSRecordSize]

		rec.Timestamps = append(rec.Timestamps, d.engine.Uint64(block[ncsOffTimestamp:]))

		if rec.SampleRate == 0 {
			rec.SampleRate = float64(d.engine.Uint32(block[ncsOffSampleFreq:]))
		}

		valid := int(d.engine.Uint32(block[ncsOffValidSamples:]))
		if valid > channel.BlockSamples {
			return nil, fmt.Errorf("%s: record %d claims %d valid samples: %w",
				path, i, valid, errs.ErrTruncatedRecord)
		}

		samples := block[ncsRecordHeaderSize:]
		for j := 0; j < valid; j++ {
			v := float64(int16(d.engine.Uint16(samples[2*j:])))
			if scale {
				v *= adBitVolts
			}
			rec.Samples = append(rec.Samples, v)
		}
	}

	return rec, nil
}

// numericField returns a header field as float64, zero when the field is
// absent or non-numeric.
func numericField(hdr *header.Header, name string) float64 {
	v := hdr.Get(name)
	switch v.Kind() {
	case header.KindFloat:
		return v.Float()
	case header.KindInt:
		return float64(v.Int())
	default:
		return 0
	}
}
