package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/sibexico/pagesim/eventlog"
	"github.com/sibexico/pagesim/paging"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(args []string) error {
	fs := flag.NewFlagSet("pagesim", flag.ContinueOnError)
	configPath := fs.String("config", "", "JSON configuration file (defaults to PAGESIM_* environment variables)")
	frameSize := fs.Int("frame-size", 0, "slots per frame")
	numFrames := fs.Int("frames", 0, "number of frames")
	policy := fs.String("policy", "", "replacement policy (fifo, lru)")
	sequence := fs.String("seq", "", "comma separated page sequence to run in batch mode")
	interactive := fs.Bool("i", false, "read commands from stdin after the batch run")
	exportPath := fs.String("export", "", "write the event log to this file on exit")
	compression := fs.String("compression", "", "event log compression (none, lz4, snappy)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	config, ignored, err := loadConfig(*configPath)
	if err != nil {
		return err
	}
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "frame-size":
			config.FrameSize = *frameSize
		case "frames":
			config.NumFrames = *numFrames
		case "policy":
			config.Policy = *policy
		case "export":
			config.EventLogPath = *exportPath
		case "compression":
			config.EventLogCompression = *compression
		}
	})
	if err := config.Validate(); err != nil {
		return err
	}

	logger := newLogger(config.LogLevel, os.Stderr)
	for _, err := range ignored {
		logger.Warn("ignoring environment value", slog.Any("error", err))
	}

	sim, err := paging.NewSimulator(config)
	if err != nil {
		return err
	}
	sim.Subscribe(paging.NewLogObserver(logger))

	events := eventlog.New()
	if config.EventLogPath != "" {
		sim.Subscribe(events)
	}

	logger.Info("memory initialized",
		slog.Int("frames", config.NumFrames),
		slog.Int("frame_size", config.FrameSize),
		slog.String("policy", sim.Policy().String()),
		slog.Int("segments", len(config.Segments)),
	)

	sess := newSession(sim, os.Stdout, logger)
	if *sequence != "" {
		if err := sess.runSequence(*sequence); err != nil {
			return err
		}
		sess.printFrames()
	}
	if *sequence == "" || *interactive {
		fmt.Fprintln(os.Stdout, helpText)
		if err := sess.run(os.Stdin); err != nil {
			return err
		}
	}

	if m := sim.Metrics(); m != nil {
		m.LogMetrics(logger)
	}

	if config.EventLogPath != "" {
		c, err := eventlog.ParseCompression(config.EventLogCompression)
		if err != nil {
			return err
		}
		if err := events.Export(config.EventLogPath, c); err != nil {
			return err
		}
		logger.Info("event log exported",
			slog.String("path", config.EventLogPath),
			slog.Int("events", events.Len()),
			slog.String("compression", c.String()),
		)
	}
	return nil
}

// loadConfig reads path, or the environment when path is empty. The
// returned slice lists environment values that could not be parsed.
func loadConfig(path string) (*paging.Config, []error, error) {
	if path == "" {
		config, ignored := paging.LoadConfigFromEnvWithErrors()
		return config, ignored, nil
	}
	config, err := paging.LoadConfigFromFile(path)
	return config, nil, err
}
