package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	internaldb "statboard/internal/db"
	"statboard/internal/refresh"
	"statboard/pkg/help"
)

func main() {
	dbFlag := &cli.StringFlag{
		Name:  "db",
		Usage: "database path (default: statboard.db next to the binary)",
	}

	app := &cli.App{
		Name:  "statboard",
		Usage: "Aggregate loosely-shaped admin analytics endpoints into one dashboard view",
		Commands: []*cli.Command{
			{
				Name:  "refresh",
				Usage: "Fetch every configured endpoint and compose a full view model",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "config",
						Value: "config.yaml",
						Usage: "endpoint config file (keys, URLs, roles)",
					},
					&cli.StringFlag{
						Name:  "format",
						Value: "yaml",
						Usage: "output format: yaml or json",
					},
					&cli.StringFlag{
						Name:  "max-age",
						Value: "15m",
						Usage: "reuse cached payloads newer than this",
					},
					&cli.BoolFlag{
						Name:  "force-fetch",
						Usage: "bypass the payload cache entirely",
					},
					&cli.StringFlag{
						Name:  "cache-dir",
						Value: "statboard-cache",
						Usage: "payload cache directory",
					},
					&cli.StringFlag{
						Name:  "output-dir",
						Usage: "results directory (overrides config results_dir)",
					},
					&cli.StringFlag{
						Name:  "out",
						Usage: "also write the output document to this file",
					},
					&cli.IntFlag{
						Name:  "workers",
						Usage: "worker count (overrides config)",
					},
					dbFlag,
					&cli.BoolFlag{
						Name:  "quiet",
						Usage: "log errors only",
					},
				},
				Action: refresh.RefreshAction,
			},
			{
				Name:  "cycles",
				Usage: "List past refresh cycles",
				Flags: []cli.Flag{
					&cli.IntFlag{Name: "limit", Value: 20, Usage: "max cycles to show (0 = all)"},
					dbFlag,
				},
				Action: internaldb.CyclesAction,
			},
			{
				Name:      "cycle",
				Usage:     "Show slot outcomes and records for a cycle (latest if omitted)",
				ArgsUsage: "[cycle_id]",
				Flags:     []cli.Flag{dbFlag},
				Action:    internaldb.CycleAction,
			},
			{
				Name:      "show",
				Usage:     "Print the stored report for a cycle (latest if omitted)",
				ArgsUsage: "[cycle_id]",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "fields",
						Usage: "project cards to these fields, e.g. \"label,value,confidence\"",
					},
					dbFlag,
				},
				Action: internaldb.ShowAction,
			},
			{
				Name:  "endpoints",
				Usage: "List configured endpoints with recent fetch attempts",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "config", Value: "config.yaml", Usage: "endpoint config file"},
					dbFlag,
				},
				Action: internaldb.EndpointsAction,
			},
			{
				Name:   "users",
				Usage:  "List every user seen across cycles",
				Flags:  []cli.Flag{dbFlag},
				Action: internaldb.UsersAction,
			},
			{
				Name:  "coldstart",
				Usage: "Print a machine-readable quick start reference",
				Action: func(c *cli.Context) error {
					fmt.Print(help.ColdstartYAML)
					return nil
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(2)
	}
}
