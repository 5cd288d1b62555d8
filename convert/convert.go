package convert

import (
	"fmt"
	"time"

	"github.com/ephys-tools/ncs2mat/internal/options"
	"github.com/ephys-tools/ncs2mat/matfile"
	"github.com/ephys-tools/ncs2mat/neuralynx"
)

// Converter runs conversions. Configure one with New and the With...
// options; the zero value is not usable.
//
// A Converter holds no per-run state and may be reused for consecutive
// runs, but a single run is strictly sequential and a Converter must not
// be shared by concurrent runs.
type Converter struct {
	channels       ChannelDecoder
	events         EventDecoder
	encoder        matfile.Encoder
	reporter       Reporter
	rescale        bool
	applyInversion bool
	now            func() time.Time
}

// Option configures a Converter.
type Option = options.Option[*Converter]

// WithReporter routes progress and log events to r.
func WithReporter(r Reporter) Option {
	return options.New(func(c *Converter) error {
		if r == nil {
			return fmt.Errorf("reporter must not be nil")
		}
		c.reporter = r

		return nil
	})
}

// WithRescale controls whether samples are rescaled to volts via the
// header's ADBitVolts factor. Default true.
func WithRescale(rescale bool) Option {
	return options.NoError(func(c *Converter) {
		c.rescale = rescale
	})
}

// WithApplyInversion controls whether channels recorded with hardware
// input inversion have their samples negated back. Default false: the
// inversion is recorded in the manifest but left in the data.
func WithApplyInversion(apply bool) Option {
	return options.NoError(func(c *Converter) {
		c.applyInversion = apply
	})
}

// WithEncoder replaces the build-selected output encoder.
func WithEncoder(e matfile.Encoder) Option {
	return options.New(func(c *Converter) error {
		if e == nil {
			return fmt.Errorf("encoder must not be nil")
		}
		c.encoder = e

		return nil
	})
}

// WithDecoders replaces the default Neuralynx decoders, e.g. with fakes in
// tests.
func WithDecoders(channels ChannelDecoder, events EventDecoder) Option {
	return options.New(func(c *Converter) error {
		if channels == nil || events == nil {
			return fmt.Errorf("decoders must not be nil")
		}
		c.channels = channels
		c.events = events

		return nil
	})
}

// New creates a Converter with the default stack: Neuralynx decoders, the
// build-selected matfile backend, rescaling on, inversion off, and a
// no-op reporter.
func New(opts ...Option) (*Converter, error) {
	c := &Converter{
		channels: neuralynx.NewChannelDecoder(),
		events:   neuralynx.NewEventDecoder(),
		encoder:  matfile.NewEncoder(),
		reporter: NopReporter{},
		rescale:  true,
		now:      time.Now,
	}

	if err := options.Apply(c, opts...); err != nil {
		return nil, fmt.Errorf("invalid converter option: %w", err)
	}

	return c, nil
}
