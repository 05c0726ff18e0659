package main

import (
	"encoding/json"
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/sarchlab/scholar/timing/latency"
)

var OutFlag = &cli.PathFlag{
	Name:  "out",
	Usage: "Write the configuration to this file instead of stdout",
}

func configCommand() *cli.Command {
	return &cli.Command{
		Name:  "config",
		Usage: "Create and check timing configuration files",
		Subcommands: []*cli.Command{
			{
				Name:   "default",
				Usage:  "Print the default timing configuration",
				Flags:  []cli.Flag{OutFlag},
				Action: DefaultConfig,
			},
			{
				Name:      "check",
				Usage:     "Load and validate a timing configuration",
				ArgsUsage: "<config.json>",
				Action:    CheckConfig,
			},
		},
	}
}

// DefaultConfig prints or saves the default timing configuration.
func DefaultConfig(ctx *cli.Context) error {
	config := latency.DefaultTimingConfig()

	if path := ctx.Path(OutFlag.Name); path != "" {
		return config.SaveConfig(path)
	}

	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize timing config: %w", err)
	}

	_, err = fmt.Fprintln(ctx.App.Writer, string(data))
	return err
}

// CheckConfig validates a configuration file and echoes the effective values.
func CheckConfig(ctx *cli.Context) error {
	if ctx.NArg() != 1 {
		return fmt.Errorf("expected one configuration file")
	}

	config, err := latency.LoadConfig(ctx.Args().First())
	if err != nil {
		return err
	}

	_, err = fmt.Fprintf(ctx.App.Writer, "ok: %+v\n", *config)
	return err
}
