package convert

import (
	"time"

	"github.com/sirupsen/logrus"
)

// Reporter receives progress and log events from a conversion run.
//
// The worker invokes these callbacks synchronously between pipeline steps;
// implementations that bridge to an interactive front-end must hand the
// values over to their own goroutine (see ChanReporter) instead of mutating
// front-end state directly.
type Reporter interface {
	// FileProgress reports done of total channel files processed within the
	// current recording.
	FileProgress(done, total int)
	// RecordingProgress reports done of total recordings processed. A total
	// of zero means the run converts a single flat recording and the
	// recording-level gauge is inactive.
	RecordingProgress(done, total int)
	// Estimate reports the projected remaining time. ok is false while no
	// throughput has been observed yet.
	Estimate(remaining time.Duration, ok bool)
	// LogLine delivers one human-readable log line.
	LogLine(text string)
}

// NopReporter discards all events.
type NopReporter struct{}

func (NopReporter) FileProgress(done, total int)              {}
func (NopReporter) RecordingProgress(done, total int)         {}
func (NopReporter) Estimate(remaining time.Duration, ok bool) {}
func (NopReporter) LogLine(text string)                       {}

// LogReporter renders every event as plain text on a logrus logger: the
// headless mode used when no interactive front-end is attached.
type LogReporter struct {
	Logger logrus.FieldLogger
}

func (r *LogReporter) FileProgress(done, total int) {
	r.Logger.WithFields(logrus.Fields{"done": done, "total": total}).Debug("file progress")
}

func (r *LogReporter) RecordingProgress(done, total int) {
	if total == 0 {
		return
	}
	r.Logger.WithFields(logrus.Fields{"done": done, "total": total}).Info("recording progress")
}

func (r *LogReporter) Estimate(remaining time.Duration, ok bool) {
	if !ok {
		return
	}
	r.Logger.WithField("remaining", remaining.Round(time.Second)).Debug("estimated time left")
}

func (r *LogReporter) LogLine(text string) {
	r.Logger.Info(text)
}

// EventKind discriminates Event payloads.
type EventKind uint8

const (
	// EventLog carries a log line in Text.
	EventLog EventKind = iota
	// EventFileProgress carries Done/Total channel-file counts.
	EventFileProgress
	// EventRecordingProgress carries Done/Total recording counts.
	EventRecordingProgress
	// EventEstimate carries Remaining/EstimateOK.
	EventEstimate
)

// Event is one progress or log update crossing the worker boundary.
type Event struct {
	Kind       EventKind
	Done       int
	Total      int
	Remaining  time.Duration
	EstimateOK bool
	Text       string
}

// ChanReporter marshals events onto a bounded channel so a front-end
// goroutine can apply them to its own state. Sends block when the channel
// is full; the consumer must drain Events until the worker closes the
// reporter.
type ChanReporter struct {
	ch chan Event
}

// NewChanReporter creates a ChanReporter with the given buffer size.
func NewChanReporter(size int) *ChanReporter {
	return &ChanReporter{ch: make(chan Event, size)}
}

// Events returns the receive side of the reporter.
func (r *ChanReporter) Events() <-chan Event {
	return r.ch
}

// Close signals the consumer that no further events follow. Only the
// worker side may call Close, after the conversion returns.
func (r *ChanReporter) Close() {
	close(r.ch)
}

func (r *ChanReporter) FileProgress(done, total int) {
	r.ch <- Event{Kind: EventFileProgress, Done: done, Total: total}
}

func (r *ChanReporter) RecordingProgress(done, total int) {
	r.ch <- Event{Kind: EventRecordingProgress, Done: done, Total: total}
}

func (r *ChanReporter) Estimate(remaining time.Duration, ok bool) {
	r.ch <- Event{Kind: EventEstimate, Remaining: remaining, EstimateOK: ok}
}

func (r *ChanReporter) LogLine(text string) {
	r.ch <- Event{Kind: EventLog, Text: text}
}
