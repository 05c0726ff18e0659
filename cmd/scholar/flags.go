package main

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/sarchlab/scholar/insts"
	"github.com/sarchlab/scholar/timing/latency"
)

var (
	VerboseFlag = &cli.BoolFlag{
		Name:    "verbose",
		Aliases: []string{"v"},
		Usage:   "Print load and run details",
	}
	TraceFlag = &cli.BoolFlag{
		Name:  "trace",
		Usage: "Log every retire, stall and skip to stderr",
	}
	PProfCPUFlag = &cli.BoolFlag{
		Name:  "pprof-cpu",
		Usage: "Write a CPU profile to the working directory",
	}
	XLENFlag = &cli.IntFlag{
		Name:  "xlen",
		Usage: "Machine word width, 32 or 64. ELF programs take it from the file class",
		Value: 64,
	}
	TimingFlag = &cli.PathFlag{
		Name:  "timing",
		Usage: "Path to a timing configuration JSON file",
	}
	DCacheFlag = &cli.BoolFlag{
		Name:  "dcache",
		Usage: "Put the L1 data cache in front of memory",
	}
	MaxCyclesFlag = &cli.Uint64Flag{
		Name:  "max-cycles",
		Usage: "Stop after this many cycles, 0 for no limit",
		Value: 100_000_000,
	}
	RawFlag = &cli.BoolFlag{
		Name:  "raw",
		Usage: "Treat the program as a flat little-endian image instead of an ELF file",
	}
	HexFlag = &cli.BoolFlag{
		Name:  "hex",
		Usage: "Treat the program as an addr:word hex firmware image",
	}
	BaseFlag = &cli.Uint64Flag{
		Name:  "base",
		Usage: "Load and reset address for raw images; reset address for hex images (default: lowest word)",
		Value: 0x1000,
	}
	EngineFlag = &cli.BoolFlag{
		Name:  "engine",
		Usage: "Drive the core from an akita serial engine instead of a direct tick loop",
	}
	StatsFlag = &cli.BoolFlag{
		Name:  "stats",
		Usage: "Print statistics and counter values after the run",
	}
	FormatFlag = &cli.StringFlag{
		Name:  "format",
		Usage: "Output format: table, csv or json",
		Value: "table",
	}
)

func xlenFrom(ctx *cli.Context) (insts.XLEN, error) {
	return insts.ParseXLEN(ctx.Int(XLENFlag.Name))
}

func timingFrom(ctx *cli.Context) (*latency.TimingConfig, error) {
	path := ctx.Path(TimingFlag.Name)
	if path == "" {
		return latency.DefaultTimingConfig(), nil
	}

	config, err := latency.LoadConfig(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load timing config: %w", err)
	}

	return config, nil
}
