// Package main provides the CLI entry point for vszip.
package main

import (
	"fmt"
	"os"

	"github.com/ideamans/go-l10n"
	"github.com/urfave/cli/v2"
)

var version = "dev"

func main() {
	if err := newApp().Run(os.Args); err != nil {
		cli.HandleExitCoder(err)
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:    "vszip",
		Usage:   l10n.T("Splice two clips frame by frame with the RFS filter"),
		Version: version,
		Commands: []*cli.Command{
			{
				Name:      "rfs",
				Usage:     l10n.T("Run an RFS script"),
				ArgsUsage: "<script.yaml|script.toml>",
				Flags:     runFlags(false),
				Action:    rfsAction,
			},
			{
				Name:      "probe",
				Usage:     l10n.T("Splice two MP4 files without a script"),
				ArgsUsage: "<clipa.mp4> <clipb.mp4>",
				Flags:     runFlags(true),
				Action:    probeAction,
			},
			{
				Name:   "formats",
				Usage:  l10n.T("List pixel format presets"),
				Action: formatsAction,
			},
		},
		// Exit codes are handled in main so Run always returns.
		ExitErrHandler: func(c *cli.Context, err error) {},
	}
}

// runFlags returns the flags shared by rfs and probe. probe requires
// --frames since there is no script to take them from.
func runFlags(framesRequired bool) []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{Name: "frames", Aliases: []string{"f"}, Required: framesRequired, Usage: l10n.T("Frame list, e.g. 0,3,5-7")},
		&cli.BoolFlag{Name: "mismatch", Usage: l10n.T("Allow clips with different formats")},
		&cli.StringFlag{Name: "direction", Usage: l10n.T("replace (listed frames from clipb) or keep (listed frames from clipa)")},
		&cli.IntFlag{Name: "workers", Aliases: []string{"w"}, Usage: l10n.T("Number of pull workers (0 = number of CPUs)")},
		&cli.StringFlag{Name: "summary", Usage: l10n.T("Write a markdown run summary to this path")},
		&cli.StringFlag{Name: "timeline", Usage: l10n.T("Write a timeline PNG to this path")},
		&cli.StringFlag{Name: "metrics", Usage: l10n.T("Write prometheus metrics to this path")},
		&cli.BoolFlag{Name: "debug", Aliases: []string{"d"}, Usage: l10n.T("Enable debug output")},
		&cli.StringFlag{Name: "debug-dir", Value: "./debug", Usage: l10n.T("Directory for debug output")},
		&cli.StringFlag{Name: "log-level", Aliases: []string{"l"}, Usage: l10n.T("Log level (debug, info, warn, error)")},
		&cli.BoolFlag{Name: "quiet", Aliases: []string{"Q"}, Usage: l10n.T("Suppress all log output")},
	}
}
