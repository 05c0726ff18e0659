package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/sarchlab/akita/v4/sim"
	"github.com/urfave/cli/v2"

	"github.com/sarchlab/scholar/emu"
	"github.com/sarchlab/scholar/insts"
	"github.com/sarchlab/scholar/loader"
	"github.com/sarchlab/scholar/timing/cache"
	"github.com/sarchlab/scholar/timing/core"
	"github.com/sarchlab/scholar/timing/csr"
)

// checkInterval is how many cycles run between interrupt checks.
const checkInterval = 1 << 16

func runCommand(state *appState) *cli.Command {
	return &cli.Command{
		Name:      "run",
		Usage:     "Run a program until it halts and exit with its a0",
		ArgsUsage: "<program>",
		Flags: []cli.Flag{
			XLENFlag,
			TimingFlag,
			DCacheFlag,
			MaxCyclesFlag,
			RawFlag,
			HexFlag,
			BaseFlag,
			EngineFlag,
			StatsFlag,
		},
		Action: func(ctx *cli.Context) error {
			code, err := Run(ctx)
			if err != nil {
				return err
			}

			state.exitCode = int(code)
			return nil
		},
	}
}

// image is a program placed in memory, ready for a core.
type image struct {
	xlen    insts.XLEN
	memory  *emu.Memory
	entry   uint64
	stackSP uint64
}

func loadImage(ctx *cli.Context, path string) (*image, error) {
	xlen, err := xlenFrom(ctx)
	if err != nil {
		return nil, err
	}

	memory := emu.NewMemory()

	if ctx.Bool(RawFlag.Name) && ctx.Bool(HexFlag.Name) {
		return nil, fmt.Errorf("--raw and --hex are mutually exclusive")
	}

	if ctx.Bool(HexFlag.Name) {
		hex, err := loader.LoadHex(path)
		if err != nil {
			return nil, err
		}
		hex.LoadIntoMemory(memory)

		entry := hex.LowestAddr()
		if ctx.IsSet(BaseFlag.Name) {
			entry = ctx.Uint64(BaseFlag.Name)
		}

		return &image{xlen: xlen, memory: memory, entry: entry}, nil
	}

	if ctx.Bool(RawFlag.Name) {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read raw image: %w", err)
		}

		base := ctx.Uint64(BaseFlag.Name)
		memory.WriteBytes(base, data)

		return &image{xlen: xlen, memory: memory, entry: base}, nil
	}

	prog, err := loader.Load(path)
	if err != nil {
		return nil, err
	}

	if ctx.IsSet(XLENFlag.Name) && prog.XLEN != xlen {
		return nil, fmt.Errorf("--xlen %d does not match the %v ELF file", int(xlen), prog.XLEN)
	}

	prog.LoadIntoMemory(memory)

	return &image{
		xlen:    prog.XLEN,
		memory:  memory,
		entry:   prog.EntryPoint,
		stackSP: prog.InitialSP,
	}, nil
}

// Run loads and runs the program named by the first argument.
func Run(ctx *cli.Context) (int64, error) {
	if ctx.NArg() != 1 {
		return 0, fmt.Errorf("expected exactly one program, got %d arguments", ctx.NArg())
	}
	path := ctx.Args().First()

	img, err := loadImage(ctx, path)
	if err != nil {
		return 0, err
	}

	timing, err := timingFrom(ctx)
	if err != nil {
		return 0, err
	}

	builder := core.NewBuilder().
		WithXLEN(img.xlen).
		WithMemory(img.memory).
		WithResetPC(img.entry).
		WithTimingConfig(timing).
		WithMaxCycles(ctx.Uint64(MaxCyclesFlag.Name))
	if ctx.Bool(DCacheFlag.Name) {
		builder = builder.WithDataCache(cache.DefaultL1DConfig())
	}
	if ctx.Bool(EngineFlag.Name) {
		builder = builder.WithEngine(sim.NewSerialEngine())
	}

	c := builder.Build("Core")
	if img.stackSP != 0 {
		c.RegFile().WriteReg(insts.RegSP, img.stackSP)
	}

	out := ctx.App.Writer
	if ctx.Bool(VerboseFlag.Name) {
		_, _ = fmt.Fprintf(out, "Loaded: %s (%v)\n", path, img.xlen)
		_, _ = fmt.Fprintf(out, "Entry point: 0x%X\n", img.entry)
	}

	var exitCode int64
	if ctx.Bool(EngineFlag.Name) {
		exitCode, err = c.Run()
	} else {
		exitCode, err = runInterruptible(ctx.Context, c)
	}

	if ctx.Bool(StatsFlag.Name) || ctx.Bool(VerboseFlag.Name) {
		printStats(out, c, exitCode)
	}

	if err != nil {
		return 0, err
	}

	return exitCode, nil
}

// runInterruptible ticks c in slices so a cancelled context stops the run.
func runInterruptible(ctx context.Context, c *core.Core) (int64, error) {
	for !c.Halted() {
		if err := ctx.Err(); err != nil {
			return 0, err
		}

		before := c.Stats().Cycles
		c.RunCycles(checkInterval)
		if c.Stats().Cycles == before {
			break
		}
	}

	return c.Run()
}

func printStats(out io.Writer, c *core.Core, exitCode int64) {
	stats := c.Stats()

	t := table.NewWriter()
	t.SetOutputMirror(out)
	t.SetTitle(fmt.Sprintf("%s statistics", c.Name()))
	t.AppendHeader(table.Row{"Metric", "Value"})
	t.AppendRows([]table.Row{
		{"Halted", c.Halted()},
		{"Exit code", exitCode},
		{"Cycles", stats.Cycles},
		{"Instructions", stats.Instructions},
		{"CPI", fmt.Sprintf("%.3f", stats.CPI())},
		{"Stall cycles", stats.Stalls},
		{"Skipped", stats.Skipped},
		{"Taken branches", stats.TakenBranches},
		{"Loads", stats.Loads},
		{"Stores", stats.Stores},
	})
	if c.DataCache() != nil {
		t.AppendRows([]table.Row{
			{"D-cache hits", stats.CacheHits},
			{"D-cache misses", stats.CacheMisses},
		})
	}

	t.AppendSeparator()
	for _, addr := range []uint16{csr.MCycle, csr.MHPMCounter3, csr.MHPMCounter4} {
		t.AppendRow(table.Row{csr.Name(addr), c.CSR().Read(addr)})
	}

	t.Render()
}
