// Command ncs2mat converts Neuralynx recordings (NCS channel streams plus
// one NEV event stream) into a bundle of MAT files.
package main

import (
	"os"

	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"

	"github.com/ephys-tools/ncs2mat/convert"
)

func main() {
	if err := newApp().Run(os.Args); err != nil {
		logrus.Fatal(err)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "ncs2mat",
		Usage: "convert Neuralynx NCS/NEV recordings to MAT files",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "input",
				Aliases: []string{"i"},
				Usage:   "recording directory, or a directory of recording subdirectories",
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "output directory",
			},
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "YAML configuration file",
			},
			&cli.BoolFlag{
				Name:  "no-rescale",
				Usage: "keep raw AD counts instead of rescaling samples to volts",
			},
			&cli.BoolFlag{
				Name:  "apply-inversion",
				Usage: "negate channels recorded with hardware input inversion",
			},
			&cli.BoolFlag{
				Name:    "verbose",
				Aliases: []string{"v"},
				Usage:   "log per-file progress and time estimates",
			},
		},
		Action: runConvert,
	}
}

func runConvert(ctx *cli.Context) error {
	input := ctx.String("input")
	output := ctx.String("output")
	rescale := !ctx.Bool("no-rescale")
	applyInversion := ctx.Bool("apply-inversion")
	verbose := ctx.Bool("verbose")

	if path := ctx.String("config"); path != "" {
		cfg, err := LoadConfig(path)
		if err != nil {
			return err
		}
		if input == "" {
			input = cfg.InputDir
		}
		if output == "" {
			output = cfg.OutputDir
		}
		if !ctx.IsSet("no-rescale") && cfg.Rescale != nil {
			rescale = *cfg.Rescale
		}
		if !ctx.IsSet("apply-inversion") && cfg.ApplyInversion != nil {
			applyInversion = *cfg.ApplyInversion
		}
		verbose = verbose || cfg.Verbose
	}
	if input == "" || output == "" {
		return cli.Exit("both --input and --output are required", 2)
	}

	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	if verbose {
		logger.SetLevel(logrus.DebugLevel)
	}

	// The conversion runs on a worker goroutine; events cross to the
	// front-end over a bounded channel. A headless run renders them on the
	// logger, an interactive front-end would apply them to its widgets.
	reporter := convert.NewChanReporter(64)
	conv, err := convert.New(
		convert.WithReporter(reporter),
		convert.WithRescale(rescale),
		convert.WithApplyInversion(applyInversion),
	)
	if err != nil {
		return err
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- conv.Convert(input, output)
		reporter.Close()
	}()

	drainEvents(&convert.LogReporter{Logger: logger}, reporter.Events())

	return <-errCh
}

func drainEvents(front convert.Reporter, events <-chan convert.Event) {
	for ev := range events {
		switch ev.Kind {
		case convert.EventLog:
			front.LogLine(ev.Text)
		case convert.EventFileProgress:
			front.FileProgress(ev.Done, ev.Total)
		case convert.EventRecordingProgress:
			front.RecordingProgress(ev.Done, ev.Total)
		case convert.EventEstimate:
			front.Estimate(ev.Remaining, ev.EstimateOK)
		}
	}
}
