package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/urfave/cli/v2"

	"github.com/sarchlab/scholar/timing/latency"
	"github.com/sarchlab/scholar/timing/pipeline"
)

func decodeCommand() *cli.Command {
	return &cli.Command{
		Name:      "decode",
		Usage:     "Show the control signals decode produces for instruction words",
		ArgsUsage: "<hex word>...",
		Flags: []cli.Flag{
			XLENFlag,
			TimingFlag,
		},
		Action: Decode,
	}
}

func parseWord(s string) (uint32, error) {
	s = strings.TrimPrefix(strings.ToLower(s), "0x")
	s = strings.ReplaceAll(s, "_", "")

	w, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return 0, fmt.Errorf("bad instruction word %q: %w", s, err)
	}

	return uint32(w), nil
}

// Decode prints one table row per word given on the command line. Register
// operands are taken as zero.
func Decode(ctx *cli.Context) error {
	if ctx.NArg() == 0 {
		return fmt.Errorf("expected at least one instruction word")
	}

	xlen, err := xlenFrom(ctx)
	if err != nil {
		return err
	}

	timing, err := timingFrom(ctx)
	if err != nil {
		return err
	}

	stage := pipeline.NewDecodeStage(xlen)
	lat := latency.NewTableWithConfig(timing)

	t := table.NewWriter()
	t.SetOutputMirror(ctx.App.Writer)
	t.SetTitle(fmt.Sprintf("%v decode", xlen))
	t.AppendHeader(table.Row{
		"Word", "Opcode", "Disassembly", "Class", "ALU", "Mem", "WB", "PC", "Latency",
	})

	for _, arg := range ctx.Args().Slice() {
		word, err := parseWord(arg)
		if err != nil {
			return err
		}

		d := stage.Decode(pipeline.DecodeInput{Word: word, DownstreamReady: true})
		opcode := fmt.Sprintf("%#02x", d.Inst.Opcode())
		if !d.Inst.Supported() {
			t.AppendRow(table.Row{
				fmt.Sprintf("%08x", word), opcode, d.Inst.String(), d.Inst.Class,
				"-", "-", "-", "-", "-",
			})
			continue
		}

		t.AppendRow(table.Row{
			fmt.Sprintf("%08x", word),
			opcode,
			d.Inst.String(),
			d.Inst.Class,
			d.ALUOp,
			d.MemOp,
			d.WBSource,
			d.PCCtrl,
			lat.GetLatency(d.Inst),
		})
	}

	t.Render()
	return nil
}
