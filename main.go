package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/dtnitsch/transcript-signal/internal/alpha"
	"github.com/dtnitsch/transcript-signal/internal/clean"
	"github.com/dtnitsch/transcript-signal/internal/run"
	"github.com/dtnitsch/transcript-signal/internal/score"
	"github.com/dtnitsch/transcript-signal/internal/signalcmd"
)

func main() {
	app := &cli.App{
		Name:  "transcript-signal",
		Usage: "clean earnings-call transcripts, score sentiment, derive trade signals, backtest alpha",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "config",
				Value: "config.yaml",
				Usage: "path to the YAML config file",
			},
			&cli.BoolFlag{
				Name:  "quiet",
				Usage: "only log errors",
			},
		},
		Commands: []*cli.Command{
			{
				Name:  "run",
				Usage: "full pipeline for one company: clean, score, signals, alpha",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "company", Usage: "company name, also the raw subdirectory (e.g. INFY)"},
					&cli.StringFlag{Name: "ticker", Usage: "price-service ticker (defaults to company)"},
				},
				Action: run.Action,
			},
			{
				Name:  "clean",
				Usage: "clean transcripts to pipe-delimited sentence files",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "company", Usage: "company name"},
					&cli.StringFlag{Name: "dir", Usage: "transcript directory (defaults to <raw>/<company>)"},
					&cli.IntFlag{Name: "workers", Value: 4, Usage: "number of cleaning workers"},
				},
				Action: clean.Action,
			},
			{
				Name:  "score",
				Usage: "score one cleaned transcript",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "file", Usage: "cleaned transcript path", Required: true},
					&cli.StringFlag{Name: "model", Usage: "vader, finbert, or ensemble (defaults to config)"},
					&cli.StringFlag{Name: "out-dir", Usage: "write per-sentence CSVs here (omit to skip)"},
				},
				Action: score.Action,
			},
			{
				Name:  "signals",
				Usage: "derive LONG/SHORT/HOLD signals from recorded scores",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "company", Usage: "company name"},
				},
				Action: signalcmd.Action,
			},
			{
				Name:  "alpha",
				Usage: "backtest signals against realized returns",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "company", Usage: "company name"},
					&cli.StringFlag{Name: "ticker", Usage: "price-service ticker (defaults to company)"},
					&cli.StringFlag{Name: "signals", Usage: "signals JSON path (defaults to <signals>/<company>_signals.json)"},
				},
				Action: alpha.Action,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
