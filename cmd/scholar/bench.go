package main

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/sarchlab/scholar/benchmarks"
)

var OnlyFlag = &cli.StringSliceFlag{
	Name:  "only",
	Usage: "Run only the named microbenchmarks",
}

func benchCommand(state *appState) *cli.Command {
	return &cli.Command{
		Name:  "bench",
		Usage: "Run the timing microbenchmarks",
		Flags: []cli.Flag{
			XLENFlag,
			TimingFlag,
			DCacheFlag,
			FormatFlag,
			OnlyFlag,
		},
		Action: func(ctx *cli.Context) error {
			failed, err := Bench(ctx)
			if err != nil {
				return err
			}

			if failed > 0 {
				state.exitCode = 1
			}
			return nil
		},
	}
}

func selectBenchmarks(names []string) ([]benchmarks.Benchmark, error) {
	if len(names) == 0 {
		return benchmarks.GetMicrobenchmarks(), nil
	}

	selected := make([]benchmarks.Benchmark, 0, len(names))
	for _, name := range names {
		b, ok := benchmarks.Lookup(name)
		if !ok {
			return nil, fmt.Errorf("unknown benchmark %q", name)
		}
		selected = append(selected, b)
	}

	return selected, nil
}

// Bench runs the selected microbenchmarks and reports how many did not halt
// with their expected exit code.
func Bench(ctx *cli.Context) (failed int, err error) {
	config := benchmarks.DefaultConfig()
	config.Output = ctx.App.Writer
	config.EnableDCache = ctx.Bool(DCacheFlag.Name)
	config.Verbose = ctx.Bool(VerboseFlag.Name)

	if config.XLEN, err = xlenFrom(ctx); err != nil {
		return 0, err
	}
	if config.Timing, err = timingFrom(ctx); err != nil {
		return 0, err
	}

	selected, err := selectBenchmarks(ctx.StringSlice(OnlyFlag.Name))
	if err != nil {
		return 0, err
	}

	harness := benchmarks.NewHarness(config)
	harness.AddBenchmarks(selected)
	results := harness.RunAll()

	switch ctx.String(FormatFlag.Name) {
	case "table":
		harness.PrintResults(results)
	case "csv":
		harness.PrintCSV(results)
	case "json":
		if err := harness.PrintJSON(results); err != nil {
			return 0, err
		}
	default:
		return 0, fmt.Errorf("unknown format %q", ctx.String(FormatFlag.Name))
	}

	for i, r := range results {
		if r.Error != "" || r.ExitCode != selected[i].ExpectedExit {
			failed++
		}
	}

	return failed, nil
}
