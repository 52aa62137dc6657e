package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/ideamans/go-l10n"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/urfave/cli/v2"

	"github.com/user/vszip/pkg/adapters/filesink"
	"github.com/user/vszip/pkg/adapters/ggrenderer"
	"github.com/user/vszip/pkg/adapters/logger"
	"github.com/user/vszip/pkg/adapters/mp4clip"
	"github.com/user/vszip/pkg/adapters/nullsink"
	"github.com/user/vszip/pkg/adapters/osfilesystem"
	"github.com/user/vszip/pkg/adapters/promrecorder"
	"github.com/user/vszip/pkg/config"
	"github.com/user/vszip/pkg/orchestrator"
	"github.com/user/vszip/pkg/pipeline"
	"github.com/user/vszip/pkg/ports"
	"github.com/user/vszip/pkg/stages/render"
	"github.com/user/vszip/pkg/stages/source"
	"github.com/user/vszip/pkg/stages/splice"
	"github.com/user/vszip/pkg/stages/timeline"
	"github.com/user/vszip/pkg/summarizer"
	"github.com/user/vszip/pkg/video"
)

func rfsAction(c *cli.Context) error {
	if c.NArg() != 1 {
		return cli.Exit(l10n.T("rfs takes exactly one script path"), 2)
	}

	cfg, err := config.LoadFromFile(c.Args().First())
	if errors.Is(err, config.ErrInvalidScript) {
		return cli.Exit(err, 2)
	}
	if err != nil {
		return cli.Exit(err, 1)
	}
	return run(c, cfg)
}

func probeAction(c *cli.Context) error {
	if c.NArg() != 2 {
		return cli.Exit(l10n.T("probe takes two MP4 paths"), 2)
	}

	cfg := config.Defaults()
	cfg.ClipA.Source = c.Args().Get(0)
	cfg.ClipB.Source = c.Args().Get(1)
	return run(c, cfg)
}

func formatsAction(c *cli.Context) error {
	tw := table.NewWriter()
	tw.SetOutputMirror(c.App.Writer)
	tw.Style().Format.Header = text.FormatDefault
	tw.AppendHeader(table.Row{"Name", "Family", "Sample", "Bits", "Subsampling"})
	for _, f := range video.Presets() {
		tw.AppendRow(table.Row{f.Name, f.Family, f.SampleType, f.BitsPerSample, fmt.Sprintf("%d,%d", f.SubSamplingW, f.SubSamplingH)})
	}
	tw.Render()
	return nil
}

// applyOverrides copies explicitly set flags over the script values and
// validates the result.
func applyOverrides(c *cli.Context, cfg *config.Config) error {
	if c.IsSet("frames") {
		frames, err := config.ParseFrameList(c.String("frames"))
		if err != nil {
			return fmt.Errorf("--frames: %w", err)
		}
		cfg.Frames = frames
	}
	if c.IsSet("mismatch") {
		cfg.Mismatch = c.Bool("mismatch")
	}
	if c.IsSet("direction") {
		cfg.Direction = c.String("direction")
	}
	if c.IsSet("workers") {
		cfg.Workers = c.Int("workers")
	}
	if c.IsSet("summary") {
		cfg.Outputs.Summary = c.String("summary")
	}
	if c.IsSet("timeline") {
		cfg.Outputs.Timeline = c.String("timeline")
	}
	if c.IsSet("metrics") {
		cfg.Outputs.Metrics = c.String("metrics")
	}
	if c.Bool("debug") || c.IsSet("debug-dir") {
		cfg.Outputs.DebugDir = c.String("debug-dir")
	}
	if c.IsSet("log-level") {
		cfg.LogLevel = c.String("log-level")
	}
	if c.Bool("quiet") {
		cfg.LogLevel = "quiet"
	}
	return cfg.Validate()
}

func run(c *cli.Context, cfg config.Config) error {
	if err := applyOverrides(c, &cfg); err != nil {
		return cli.Exit(err, 2)
	}

	var log ports.Logger
	if cfg.LogLevel == "quiet" {
		log = logger.NewNoop()
	} else {
		level, _ := ports.ParseLogLevel(cfg.LogLevel)
		log = logger.NewConsole(level)
	}

	ctx, cancel := context.WithCancel(c.Context)
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)
	go func() {
		select {
		case <-sigCh:
			log.Warn("Interrupted, shutting down...")
			cancel()
		case <-ctx.Done():
		}
	}()

	// Adapters
	fs := osfilesystem.New()
	renderer := ggrenderer.New()
	opener := mp4clip.NewOpener(fs)

	var sink ports.DebugSink
	if cfg.Outputs.DebugDir != "" {
		if err := fs.MkdirAll(cfg.Outputs.DebugDir); err != nil {
			return cli.Exit(fmt.Errorf("create debug directory: %w", err), 1)
		}
		sink = filesink.New(cfg.Outputs.DebugDir, fs, renderer)
	} else {
		sink = nullsink.New()
	}

	var recorder ports.PullRecorder = promrecorder.NewNoop()
	metrics := promrecorder.New()
	if cfg.Outputs.Metrics != "" {
		recorder = metrics
	}

	workers := cfg.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	// Stages
	orch := orchestrator.New(
		source.NewStage(opener, log),
		splice.NewStage(log),
		render.NewStage(renderer, sink, recorder, log, workers),
		timeline.NewStage(renderer, log),
		fs,
		sink,
		log,
	)

	orchConfig := cfg.ToOrchestratorConfig()
	result, err := orch.Run(ctx, orchConfig)
	if err != nil {
		return cli.Exit(err, 1)
	}

	// print(rfs)
	fmt.Fprint(c.App.Writer, result.Node.String())
	printPulls(c.App.Writer, result.Pulls)

	if cfg.Outputs.Metrics != "" {
		if err := metrics.WriteTextfile(cfg.Outputs.Metrics); err != nil {
			return cli.Exit(fmt.Errorf("write metrics: %w", err), 1)
		}
		log.Info("Output saved to %s", cfg.Outputs.Metrics)
	}

	if cfg.Outputs.Summary != "" {
		w := summarizer.NewWriter(summarizer.FormatterFor(cfg.Outputs.Summary,
			summarizer.WithTranslator(l10n.T),
			summarizer.WithVersion(version),
		), fs)
		if err := w.Write(cfg.Outputs.Summary, result.Summary(orchConfig, workers)); err != nil {
			return cli.Exit(err, 1)
		}
		log.Info("Output saved to %s", cfg.Outputs.Summary)
	}

	if result.Failed > 0 {
		return cli.Exit(l10n.F("%d of %d pulls failed", result.Failed, len(result.Pulls)), 3)
	}
	return nil
}

func printPulls(w io.Writer, pulls []pipeline.Pull) {
	tw := table.NewWriter()
	tw.SetOutputMirror(w)
	tw.Style().Format.Header = text.FormatDefault
	tw.AppendHeader(table.Row{"Frame", "Source", "Size", "Format", "Bytes", "Result"})
	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignRight},
		{Number: 5, Align: text.AlignRight},
	})

	for _, p := range pulls {
		if !p.OK() {
			tw.AppendRow(table.Row{p.Index, p.Source, "-", "-", "-", p.Err.Error()})
			continue
		}
		tw.AppendRow(table.Row{p.Index, p.Source, p.Geometry.Size(), p.Geometry.Format, p.Bytes, "ok"})
	}
	tw.Render()
}
