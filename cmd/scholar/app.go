package main

import (
	"log/slog"

	"github.com/pkg/profile"
	"github.com/tebeka/atexit"
	"github.com/urfave/cli/v2"

	"github.com/sarchlab/scholar/timing/core"
)

// appState carries what a command hands back to main.
type appState struct {
	exitCode int
}

func newApp(state *appState) *cli.App {
	app := cli.NewApp()
	app.Name = "scholar"
	app.Usage = "RISC-V RV32I/RV64I cycle-level core model"
	app.Description = "Run programs on a single-issue in-order RISC-V core and report its performance counters."
	app.Flags = []cli.Flag{
		VerboseFlag,
		TraceFlag,
		PProfCPUFlag,
	}
	app.Before = func(ctx *cli.Context) error {
		setupLogging(ctx)
		startProfile(ctx)
		return nil
	}
	app.Commands = []*cli.Command{
		runCommand(state),
		decodeCommand(),
		benchCommand(state),
		configCommand(),
	}

	return app
}

func setupLogging(ctx *cli.Context) {
	level := slog.LevelWarn
	if ctx.Bool(TraceFlag.Name) {
		level = core.LevelTrace
	}

	handler := slog.NewTextHandler(ctx.App.ErrWriter, &slog.HandlerOptions{Level: level})
	slog.SetDefault(slog.New(handler))
}

// startProfile writes a CPU profile to the working directory. main leaves
// through atexit, so the profile is stopped from there.
func startProfile(ctx *cli.Context) {
	if !ctx.Bool(PProfCPUFlag.Name) {
		return
	}

	p := profile.Start(profile.NoShutdownHook, profile.ProfilePath("."), profile.CPUProfile)
	atexit.Register(p.Stop)
}
