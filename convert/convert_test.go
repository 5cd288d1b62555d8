package convert

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/ephys-tools/ncs2mat/channel"
	"github.com/ephys-tools/ncs2mat/errs"
	"github.com/ephys-tools/ncs2mat/header"
	"github.com/ephys-tools/ncs2mat/matfile"
)

type fakeChannelDecoder struct {
	records map[string]*channel.Record
}

func (d *fakeChannelDecoder) ReadChannel(path string, rescale bool) (*channel.Record, error) {
	rec, ok := d.records[filepath.Base(path)]
	if !ok {
		return nil, fmt.Errorf("no fake record for %s", path)
	}

	return rec, nil
}

type fakeEventDecoder struct {
	events [][2]int64
	err    error
}

func (d *fakeEventDecoder) ReadEvents(dir, name string) ([][2]int64, error) {
	return d.events, d.err
}

type encodedFile struct {
	path  string
	order []string
	vars  map[string]matfile.Value
}

type fakeEncoder struct {
	files []encodedFile
}

func (e *fakeEncoder) Encode(path string, vars []matfile.Var) error {
	f := encodedFile{path: path, vars: make(map[string]matfile.Value, len(vars))}
	for _, v := range vars {
		f.order = append(f.order, v.Name)
		f.vars[v.Name] = v.Value
	}
	e.files = append(e.files, f)

	return nil
}

func (e *fakeEncoder) baseNames() []string {
	names := make([]string, len(e.files))
	for i, f := range e.files {
		names[i] = filepath.Base(f.path)
	}

	return names
}

func (e *fakeEncoder) file(t *testing.T, base string) encodedFile {
	t.Helper()
	for _, f := range e.files {
		if filepath.Base(f.path) == base {
			return f
		}
	}
	t.Fatalf("no encoded file named %s", base)

	return encodedFile{}
}

type captureReporter struct {
	lines        []string
	fileProgress [][2]int
	recProgress  [][2]int
	estimateOKs  []bool
}

func (r *captureReporter) FileProgress(done, total int) {
	r.fileProgress = append(r.fileProgress, [2]int{done, total})
}

func (r *captureReporter) RecordingProgress(done, total int) {
	r.recProgress = append(r.recProgress, [2]int{done, total})
}

func (r *captureReporter) Estimate(remaining time.Duration, ok bool) {
	r.estimateOKs = append(r.estimateOKs, ok)
}

func (r *captureReporter) LogLine(text string) {
	r.lines = append(r.lines, text)
}

func (r *captureReporter) hasLine(text string) bool {
	for _, line := range r.lines {
		if line == text {
			return true
		}
	}

	return false
}

// writeInputFiles creates placeholder input files. The fake decoders never
// read their content; the scanner only needs names and sizes.
func writeInputFiles(t *testing.T, dir string, names ...string) {
	t.Helper()
	for _, name := range names {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), make([]byte, 100), 0o644))
	}
}

func testHeader(acqEnt string, inverted bool) *header.Header {
	h := header.New()
	h.Set("FileType", header.String("NCS"))
	h.Set("SamplingFrequency", header.Float(1000))
	h.Set("AcqEntName", header.String(acqEnt))
	h.Set("InputInverted", header.Bool(inverted))

	return h
}

// stamps returns n block timestamps at the regular 1 kHz block spacing.
func stamps(start uint64, n int) []uint64 {
	ts := make([]uint64, n)
	for i := range ts {
		ts[i] = start + uint64(i)*512_000
	}

	return ts
}

func testRecord(acqEnt string, ts []uint64, samples []float64) *channel.Record {
	return &channel.Record{
		Header:     testHeader(acqEnt, false),
		SampleRate: 1000,
		Timestamps: ts,
		Samples:    samples,
		WasScaled:  len(samples) > 0,
	}
}

func newTestConverter(t *testing.T, chans ChannelDecoder, events EventDecoder, enc matfile.Encoder, rep Reporter) *Converter {
	t.Helper()
	c, err := New(WithDecoders(chans, events), WithEncoder(enc), WithReporter(rep))
	require.NoError(t, err)

	return c
}

func TestConvertRecordingFullRun(t *testing.T) {
	readDir := t.TempDir()
	writeDir := filepath.Join(t.TempDir(), "out")
	writeInputFiles(t, readDir, "CSC1.ncs", "CSC2.ncs", "CSC10.ncs", "Events.nev")

	shared := stamps(1_000_000, 3)
	chans := &fakeChannelDecoder{records: map[string]*channel.Record{
		"CSC1.ncs":  testRecord("CSC1", shared, []float64{1, 2, 3}),
		"CSC2.ncs":  testRecord("CSC2", shared, []float64{4, 5, 6}),
		"CSC10.ncs": testRecord("CSC10", shared, []float64{7, 8, 9}),
	}}
	events := &fakeEventDecoder{events: [][2]int64{{100, 1}, {200, 0}}}
	enc := &fakeEncoder{}
	rep := &captureReporter{}

	c := newTestConverter(t, chans, events, enc, rep)
	require.NoError(t, c.ConvertRecording(readDir, writeDir))

	// Events first, then the channels in numeric order, then the manifests.
	require.Equal(t, []string{
		"events.mat", "CSC1.mat", "CSC2.mat", "CSC10.mat", "timestamps.mat", "ncs_headers.mat",
	}, enc.baseNames())

	_, err := os.Stat(writeDir)
	require.NoError(t, err)

	ev := enc.file(t, "events.mat")
	require.Equal(t, &matfile.Longs{Rows: 2, Cols: 2, Data: []int64{100, 200, 1, 0}}, ev.vars["events"])

	csc1 := enc.file(t, "CSC1.mat")
	require.Equal(t, []string{"data", "timestartOffset"}, csc1.order)
	require.Equal(t, matfile.Column([]float64{1, 2, 3}), csc1.vars["data"])
	require.Equal(t, matfile.Scalar(999_000), csc1.vars["timestartOffset"])

	ts := enc.file(t, "timestamps.mat")
	require.Equal(t, matfile.TextCellColumn([]string{"CSC1.mat", "CSC2.mat", "CSC10.mat"}), ts.vars["files"])
	require.Equal(t, matfile.IntColumn([]int32{1, 1, 1}), ts.vars["mapping"])
	require.Equal(t, &matfile.CellColumn{Elems: []matfile.Value{matfile.UintRow(shared)}}, ts.vars["timestamps"])
	require.Equal(t, &matfile.CellColumn{Elems: []matfile.Value{matfile.IntRow([]int32{1, 2, 3})}}, ts.vars["mapping_reverse"])

	hdr := enc.file(t, "ncs_headers.mat")
	s, ok := hdr.vars["ncs_headers"].(*matfile.Struct)
	require.True(t, ok)
	require.Equal(t, matfile.Text("0.1"), s.Get("export_version"))
	require.Equal(t, matfile.Text("timestamps.mat"), s.Get("timestamp_file"))
	require.Equal(t, matfile.Text("events.mat"), s.Get("event_file"))
	require.Equal(t, matfile.TextCellColumn([]string{"CSC1.mat", "CSC2.mat", "CSC10.mat"}), s.Get("data_files"))
	require.Equal(t, matfile.LogicalColumn([]bool{true, true, true}), s.Get("has_data"))
	require.Equal(t, matfile.LogicalColumn([]bool{true, true, true}), s.Get("scaling_applied"))
	require.Equal(t, matfile.LogicalColumn([]bool{false, false, false}), s.Get("inversion_applied"))

	// Aggregated fields: static uniform stays scalar, varying strings become
	// a cell column, varying floats a numeric column.
	require.Equal(t, matfile.Text("NCS"), s.Get("FileType"))
	require.Equal(t, matfile.LogicalScalar(false), s.Get("InputInverted"))
	require.Equal(t, matfile.Column([]float64{1000, 1000, 1000}), s.Get("SamplingFrequency"))
	require.Equal(t, matfile.TextCellColumn([]string{"CSC1", "CSC2", "CSC10"}), s.Get("AcqEntName"))

	require.True(t, rep.hasLine("Done!"))
	require.Equal(t, [2]int{0, 3}, rep.fileProgress[0])
	require.Equal(t, [2]int{3, 3}, rep.fileProgress[len(rep.fileProgress)-1])
	require.False(t, rep.estimateOKs[0])
	require.True(t, rep.estimateOKs[len(rep.estimateOKs)-1])
}

func TestConvertRecordingSkipsEmptyChannel(t *testing.T) {
	readDir := t.TempDir()
	writeInputFiles(t, readDir, "CSC1.ncs", "CSC2.ncs", "CSC3.ncs", "Events.nev")

	shared := stamps(1_000_000, 3)
	chans := &fakeChannelDecoder{records: map[string]*channel.Record{
		"CSC1.ncs": testRecord("CSC1", shared, []float64{1, 2, 3}),
		"CSC2.ncs": testRecord("CSC2", nil, nil),
		"CSC3.ncs": testRecord("CSC3", shared, []float64{7, 8, 9}),
	}}
	enc := &fakeEncoder{}
	rep := &captureReporter{}

	c := newTestConverter(t, chans, &fakeEventDecoder{}, enc, rep)
	require.NoError(t, c.ConvertRecording(readDir, t.TempDir()))

	require.Equal(t, []string{
		"events.mat", "CSC1.mat", "CSC3.mat", "timestamps.mat", "ncs_headers.mat",
	}, enc.baseNames())
	require.True(t, rep.hasLine("File CSC2.ncs is empty. Skipping."))

	ts := enc.file(t, "timestamps.mat")
	require.Equal(t, matfile.TextCellColumn([]string{"CSC1.mat", "IGNORED", "CSC3.mat"}), ts.vars["files"])
	require.Equal(t, matfile.IntColumn([]int32{1, 0, 1}), ts.vars["mapping"])
	require.Equal(t, &matfile.CellColumn{Elems: []matfile.Value{matfile.IntRow([]int32{1, 3})}}, ts.vars["mapping_reverse"])

	hdr := enc.file(t, "ncs_headers.mat")
	s := hdr.vars["ncs_headers"].(*matfile.Struct)
	require.Equal(t, matfile.LogicalColumn([]bool{true, false, true}), s.Get("has_data"))
	require.Equal(t, matfile.LogicalColumn([]bool{true, false, true}), s.Get("scaling_applied"))
}

func TestConvertRecordingSplitsTimestampGroups(t *testing.T) {
	readDir := t.TempDir()
	writeInputFiles(t, readDir, "CSC1.ncs", "CSC2.ncs", "CSC3.ncs", "Events.nev")

	first := stamps(1_000_000, 3)
	second := stamps(2_000_000, 3)
	chans := &fakeChannelDecoder{records: map[string]*channel.Record{
		"CSC1.ncs": testRecord("CSC1", first, []float64{1}),
		"CSC2.ncs": testRecord("CSC2", second, []float64{2}),
		"CSC3.ncs": testRecord("CSC3", second, []float64{3}),
	}}
	enc := &fakeEncoder{}

	c := newTestConverter(t, chans, &fakeEventDecoder{}, enc, NopReporter{})
	require.NoError(t, c.ConvertRecording(readDir, t.TempDir()))

	ts := enc.file(t, "timestamps.mat")
	require.Equal(t, matfile.IntColumn([]int32{1, 2, 2}), ts.vars["mapping"])
	require.Equal(t, &matfile.CellColumn{Elems: []matfile.Value{
		matfile.UintRow(first),
		matfile.UintRow(second),
	}}, ts.vars["timestamps"])
	require.Equal(t, &matfile.CellColumn{Elems: []matfile.Value{
		matfile.IntRow([]int32{1}),
		matfile.IntRow([]int32{2, 3}),
	}}, ts.vars["mapping_reverse"])
}

func TestConvertRecordingEventFileCount(t *testing.T) {
	t.Run("missing", func(t *testing.T) {
		readDir := t.TempDir()
		writeInputFiles(t, readDir, "CSC1.ncs")

		c := newTestConverter(t, &fakeChannelDecoder{}, &fakeEventDecoder{}, &fakeEncoder{}, NopReporter{})
		err := c.ConvertRecording(readDir, t.TempDir())
		require.ErrorIs(t, err, errs.ErrNoEventFile)
	})

	t.Run("ambiguous", func(t *testing.T) {
		readDir := t.TempDir()
		writeInputFiles(t, readDir, "CSC1.ncs", "Events.nev", "Events2.nev")

		c := newTestConverter(t, &fakeChannelDecoder{}, &fakeEventDecoder{}, &fakeEncoder{}, NopReporter{})
		err := c.ConvertRecording(readDir, t.TempDir())
		require.ErrorIs(t, err, errs.ErrTooManyEventFiles)
	})
}

func TestConvertRecordingContinuityFailureIsFatal(t *testing.T) {
	readDir := t.TempDir()
	writeInputFiles(t, readDir, "CSC1.ncs", "Events.nev")

	broken := []uint64{1_000_000, 1_512_000, 9_000_000}
	chans := &fakeChannelDecoder{records: map[string]*channel.Record{
		"CSC1.ncs": testRecord("CSC1", broken, []float64{1, 2, 3}),
	}}

	c := newTestConverter(t, chans, &fakeEventDecoder{}, &fakeEncoder{}, NopReporter{})
	err := c.ConvertRecording(readDir, t.TempDir())
	require.ErrorIs(t, err, errs.ErrNotContinuous)
	require.ErrorContains(t, err, "processing channels")
	require.ErrorContains(t, err, "CSC1.ncs")
}

func TestConvertRecordingAppliesInversionWhenEnabled(t *testing.T) {
	readDir := t.TempDir()
	writeInputFiles(t, readDir, "CSC1.ncs", "Events.nev")

	rec := testRecord("CSC1", stamps(1_000_000, 2), []float64{1, -2})
	rec.Header.Set("InputInverted", header.Bool(true))
	chans := &fakeChannelDecoder{records: map[string]*channel.Record{"CSC1.ncs": rec}}
	enc := &fakeEncoder{}

	c, err := New(
		WithDecoders(chans, &fakeEventDecoder{}),
		WithEncoder(enc),
		WithApplyInversion(true),
	)
	require.NoError(t, err)
	require.NoError(t, c.ConvertRecording(readDir, t.TempDir()))

	csc1 := enc.file(t, "CSC1.mat")
	require.Equal(t, matfile.Column([]float64{-1, 2}), csc1.vars["data"])

	s := enc.file(t, "ncs_headers.mat").vars["ncs_headers"].(*matfile.Struct)
	require.Equal(t, matfile.LogicalColumn([]bool{true}), s.Get("inversion_applied"))
}

func TestConvertFlatDirectoryReportsInactiveRecordingGauge(t *testing.T) {
	inputDir := t.TempDir()
	writeInputFiles(t, inputDir, "CSC1.ncs", "Events.nev")

	chans := &fakeChannelDecoder{records: map[string]*channel.Record{
		"CSC1.ncs": testRecord("CSC1", stamps(1_000_000, 2), []float64{1, 2}),
	}}
	rep := &captureReporter{}

	c := newTestConverter(t, chans, &fakeEventDecoder{}, &fakeEncoder{}, rep)
	require.NoError(t, c.Convert(inputDir, t.TempDir()))

	require.Equal(t, [][2]int{{0, 0}}, rep.recProgress)
}

func TestConvertMultipleRecordings(t *testing.T) {
	inputDir := t.TempDir()
	outputDir := t.TempDir()
	for _, rec := range []string{"2026-08-01", "2026-08-02"} {
		dir := filepath.Join(inputDir, rec)
		require.NoError(t, os.Mkdir(dir, 0o755))
		writeInputFiles(t, dir, "CSC1.ncs", "Events.nev")
	}

	chans := &fakeChannelDecoder{records: map[string]*channel.Record{
		"CSC1.ncs": testRecord("CSC1", stamps(1_000_000, 2), []float64{1, 2}),
	}}
	enc := &fakeEncoder{}
	rep := &captureReporter{}

	c := newTestConverter(t, chans, &fakeEventDecoder{}, enc, rep)
	require.NoError(t, c.Convert(inputDir, outputDir))

	require.Equal(t, [][2]int{{0, 2}, {1, 2}, {2, 2}}, rep.recProgress)
	// Four files per recording: events, the channel, the two manifests.
	require.Len(t, enc.files, 8)
	require.Equal(t, filepath.Join(outputDir, "2026-08-01", "events.mat"), enc.files[0].path)
	require.Equal(t, filepath.Join(outputDir, "2026-08-02", "events.mat"), enc.files[4].path)
}
