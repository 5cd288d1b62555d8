package neuralynx

import (
	"encoding/binary"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ephys-tools/ncs2mat/channel"
)

// buildHeaderBlock renders header lines into a NUL-padded 16 KiB block the
// way the acquisition software writes it.
func buildHeaderBlock(lines []string) []byte {
	block := make([]byte, HeaderBlockSize)
	text := "######## Neuralynx Data File Header\r\n" + strings.Join(lines, "\r\n") + "\r\n"
	copy(block, text)

	return block
}

type ncsBlock struct {
	ts      uint64
	freq    uint32
	samples []int16
}

func writeNCSFile(t *testing.T, path string, hdrLines []string, blocks []ncsBlock) {
	t.Helper()

	buf := buildHeaderBlock(hdrLines)
	for _, blk := range blocks {
		rec := make([]byte, NCSRecordSize)
		binary.LittleEndian.PutUint64(rec[ncsOffTimestamp:], blk.ts)
		binary.LittleEndian.PutUint32(rec[ncsOffChannel:], 1)
		binary.LittleEndian.PutUint32(rec[ncsOffSampleFreq:], blk.freq)
		binary.LittleEndian.PutUint32(rec[ncsOffValidSamples:], uint32(len(blk.samples)))
		for j, s := range blk.samples {
			binary.LittleEndian.PutUint16(rec[ncsRecordHeaderSize+2*j:], uint16(s))
		}
		buf = append(buf, rec...)
	}

	require.NoError(t, os.WriteFile(path, buf, 0o644))
}

func writeNEVFile(t *testing.T, path string, events [][2]int64) {
	t.Helper()

	buf := buildHeaderBlock([]string{"-FileType Event"})
	for _, ev := range events {
		rec := make([]byte, NEVRecordSize)
		binary.LittleEndian.PutUint64(rec[nevOffTimestamp:], uint64(ev[0]))
		binary.LittleEndian.PutUint16(rec[nevOffTTL:], uint16(int16(ev[1])))
		buf = append(buf, rec...)
	}

	require.NoError(t, os.WriteFile(path, buf, 0o644))
}

// fullBlock returns 512 samples ramping from base.
func fullBlock(base int16) []int16 {
	samples := make([]int16, channel.BlockSamples)
	for i := range samples {
		samples[i] = base + int16(i%32)
	}

	return samples
}

func tmpPath(t *testing.T, name string) string {
	t.Helper()
	return filepath.Join(t.TempDir(), name)
}
