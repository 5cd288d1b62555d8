package convert

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/ephys-tools/ncs2mat/channel"
	"github.com/ephys-tools/ncs2mat/errs"
	"github.com/ephys-tools/ncs2mat/header"
	"github.com/ephys-tools/ncs2mat/matfile"
)

// Output schema, fixed by the consumer tooling.
const (
	// ExportVersion is the schema version recorded in the header manifest.
	ExportVersion = "0.1"
	// EventFileName is the output file holding the event array.
	EventFileName = "events" + channel.OutputExt
	// TimestampFileName is the output file holding the timestamps/groups
	// manifest.
	TimestampFileName = "timestamps" + channel.OutputExt
	// HeaderFileName is the output file holding the header manifest.
	HeaderFileName = "ncs_headers" + channel.OutputExt
	// IgnoredSentinel marks channels without data in the manifest file list.
	IgnoredSentinel = "IGNORED"
)

// state tracks a run through its fixed sequence of phases.
type state uint8

const (
	stateScanning state = iota
	stateReadingEvents
	stateProcessingChannels
	stateAggregatingHeaders
	stateWriting
	stateDone
	stateFailed
)

func (s state) String() string {
	switch s {
	case stateScanning:
		return "scanning input files"
	case stateReadingEvents:
		return "reading events"
	case stateProcessingChannels:
		return "processing channels"
	case stateAggregatingHeaders:
		return "aggregating headers"
	case stateWriting:
		return "writing manifests"
	case stateDone:
		return "done"
	case stateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Convert converts the recording(s) under inputDir into outputDir.
//
// An input directory containing subdirectories is treated as a set of
// recordings, each converted into a like-named subdirectory of outputDir
// with recording-level progress reported. A flat directory is a single
// recording; the recording-level gauge is reported inactive (0 of 0).
func (c *Converter) Convert(inputDir, outputDir string) error {
	entries, err := os.ReadDir(inputDir)
	if err != nil {
		return fmt.Errorf("scanning input files: %w", err)
	}

	var recordings []string
	for _, entry := range entries {
		if entry.IsDir() {
			recordings = append(recordings, entry.Name())
		}
	}
	sort.Strings(recordings)

	if len(recordings) == 0 {
		c.reporter.RecordingProgress(0, 0)
		return c.ConvertRecording(inputDir, outputDir)
	}

	c.reporter.RecordingProgress(0, len(recordings))
	for i, name := range recordings {
		err := c.ConvertRecording(filepath.Join(inputDir, name), filepath.Join(outputDir, name))
		if err != nil {
			return fmt.Errorf("recording %s: %w", name, err)
		}
		c.reporter.RecordingProgress(i+1, len(recordings))
	}

	return nil
}

// ConvertRecording converts the single recording in readDir into writeDir,
// creating writeDir if needed.
func (c *Converter) ConvertRecording(readDir, writeDir string) error {
	r := &run{c: c, readDir: readDir, writeDir: writeDir}
	return r.execute()
}

// run is the per-recording state: the sorted file list, the accumulating
// per-channel lists, and the grouping/throughput trackers. It lives for
// exactly one ConvertRecording call and has a single writer; reporters
// only ever see snapshotted values.
type run struct {
	c        *Converter
	readDir  string
	writeDir string
	st       state

	allFiles    []string
	streamFiles []string
	sizes       []int64
	estimator   *Estimator
	started     time.Time

	grouper   *channel.Grouper
	headers   []*header.Header
	agg       *header.Aggregate
	dataFiles []string
	hasData   []bool
	scaling   []bool
	inversion []bool
}

func (r *run) execute() error {
	r.log("Using output backend: " + matfile.BackendName())

	steps := []struct {
		st state
		fn func() error
	}{
		{stateScanning, r.scan},
		{stateReadingEvents, r.readEvents},
		{stateProcessingChannels, r.processChannels},
		{stateAggregatingHeaders, r.aggregateHeaders},
		{stateWriting, r.writeManifests},
	}

	for _, step := range steps {
		r.st = step.st
		if err := step.fn(); err != nil {
			r.st = stateFailed
			return fmt.Errorf("%s: %w", step.st, err)
		}
	}
	r.st = stateDone

	r.log("Done!")
	elapsed := strings.TrimSpace(humanize.RelTime(r.started, r.c.now(), "", ""))
	r.log("Elapsed time: " + elapsed)

	return nil
}

func (r *run) scan() error {
	if err := os.MkdirAll(r.writeDir, 0o755); err != nil {
		return err
	}

	entries, err := os.ReadDir(r.readDir)
	if err != nil {
		return err
	}
	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if !entry.IsDir() {
			names = append(names, entry.Name())
		}
	}

	r.allFiles = channel.Sort(names)
	r.streamFiles = channel.Streams(r.allFiles)
	r.c.reporter.FileProgress(0, len(r.streamFiles))

	r.log("Checking file sizes")
	var total int64
	r.sizes = make([]int64, len(r.streamFiles))
	for i, name := range r.streamFiles {
		fi, err := os.Stat(filepath.Join(r.readDir, name))
		if err != nil {
			return err
		}
		r.sizes[i] = fi.Size()
		total += fi.Size()
	}
	r.log(fmt.Sprintf("Total input size: %s", humanize.Bytes(uint64(total))))

	r.estimator = NewEstimator(total)
	r.c.reporter.Estimate(0, false)

	return nil
}

func (r *run) readEvents() error {
	eventFiles := channel.Events(r.allFiles)
	switch {
	case len(eventFiles) == 0:
		return errs.ErrNoEventFile
	case len(eventFiles) > 1:
		return fmt.Errorf("%w: found %d", errs.ErrTooManyEventFiles, len(eventFiles))
	}

	r.log("Reading events")
	events, err := r.c.events.ReadEvents(r.readDir, eventFiles[0])
	if err != nil {
		return err
	}

	// (n,2) column-major: the timestamp column, then the TTL column.
	data := make([]int64, 0, 2*len(events))
	for _, ev := range events {
		data = append(data, ev[0])
	}
	for _, ev := range events {
		data = append(data, ev[1])
	}

	r.log("Saving events")

	return r.c.encoder.Encode(filepath.Join(r.writeDir, EventFileName), []matfile.Var{
		{Name: "events", Value: &matfile.Longs{Rows: len(events), Cols: 2, Data: data}},
	})
}

func (r *run) processChannels() error {
	n := len(r.streamFiles)
	r.grouper = channel.NewGrouper(n)
	r.headers = make([]*header.Header, 0, n)
	r.dataFiles = make([]string, 0, n)
	r.hasData = make([]bool, 0, n)
	r.scaling = make([]bool, 0, n)
	r.inversion = make([]bool, 0, n)

	r.log(fmt.Sprintf("Found %d %s files. Processing:", n, channel.StreamExt))
	r.started = r.c.now()

	for i, name := range r.streamFiles {
		r.log("Reading ncs file: " + name)
		rec, err := r.c.channels.ReadChannel(filepath.Join(r.readDir, name), r.c.rescale)
		if err != nil {
			return fmt.Errorf("channel %s: %w", name, err)
		}
		rec.Index = i

		if !rec.HasData() {
			r.grouper.Skip(i)
			r.appendChannel(rec.Header, IgnoredSentinel, false, false, false)
			r.log(fmt.Sprintf("File %s is empty. Skipping.", name))
			r.finishFile(i)
			continue
		}

		if r.c.applyInversion && rec.Header.Get("InputInverted").Bool() {
			rec.Invert()
		}

		if err := r.grouper.Observe(i, rec.Timestamps, rec.SampleRate); err != nil {
			return fmt.Errorf("channel %s: %w", name, err)
		}

		outName := channel.OutputName(name)
		r.log("Writing mat file: " + outName)
		err = r.c.encoder.Encode(filepath.Join(r.writeDir, outName), []matfile.Var{
			{Name: "data", Value: matfile.Column(rec.Samples)},
			{Name: "timestartOffset", Value: matfile.Scalar(rec.TimestartOffset())},
		})
		if err != nil {
			return fmt.Errorf("channel %s: %w", name, err)
		}

		r.appendChannel(rec.Header, outName, true, rec.WasScaled, rec.WasInverted)
		r.finishFile(i)
	}

	return nil
}

func (r *run) appendChannel(hdr *header.Header, dataFile string, hasData, scaled, inverted bool) {
	r.headers = append(r.headers, hdr)
	r.dataFiles = append(r.dataFiles, dataFile)
	r.hasData = append(r.hasData, hasData)
	r.scaling = append(r.scaling, scaled)
	r.inversion = append(r.inversion, inverted)
}

// finishFile updates the throughput estimate and the file-level progress
// after channel i has been fully handled.
func (r *run) finishFile(i int) {
	r.estimator.Add(r.sizes[i])
	remaining, ok := r.estimator.Estimate(r.c.now().Sub(r.started))
	r.c.reporter.Estimate(remaining, ok)
	r.c.reporter.FileProgress(i+1, len(r.streamFiles))
}

func (r *run) aggregateHeaders() error {
	r.log("Processing headers")
	r.agg = header.AggregateHeaders(r.headers, header.DefaultCatalog())
	for _, anomaly := range r.agg.Anomalies {
		r.log(anomaly)
	}

	return nil
}

func (r *run) writeManifests() error {
	r.log("Saving unique timestamp arrays")

	groups := r.grouper.Groups()
	tsCells := make([]matfile.Value, len(groups))
	reverseCells := make([]matfile.Value, len(groups))
	for i, g := range groups {
		tsCells[i] = matfile.UintRow(g.Timestamps)
		members := make([]int32, len(g.Members))
		for j, m := range g.Members {
			members[j] = int32(m)
		}
		reverseCells[i] = matfile.IntRow(members)
	}

	mapping := r.grouper.Mapping()
	forward := make([]int32, len(mapping))
	for i, g := range mapping {
		forward[i] = int32(g)
	}

	err := r.c.encoder.Encode(filepath.Join(r.writeDir, TimestampFileName), []matfile.Var{
		{Name: "files", Value: matfile.TextCellColumn(r.dataFiles)},
		{Name: "timestamps", Value: &matfile.CellColumn{Elems: tsCells}},
		{Name: "mapping", Value: matfile.IntColumn(forward)},
		{Name: "mapping_reverse", Value: &matfile.CellColumn{Elems: reverseCells}},
	})
	if err != nil {
		return err
	}

	r.log("Saving headers")

	return r.c.encoder.Encode(filepath.Join(r.writeDir, HeaderFileName), []matfile.Var{
		{Name: "ncs_headers", Value: r.buildManifest()},
	})
}

func (r *run) log(text string) {
	r.c.reporter.LogLine(text)
}
