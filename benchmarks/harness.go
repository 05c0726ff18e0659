// Package benchmarks provides timing benchmark infrastructure for core
// calibration.
package benchmarks

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/sarchlab/scholar/emu"
	"github.com/sarchlab/scholar/insts"
	"github.com/sarchlab/scholar/timing/cache"
	"github.com/sarchlab/scholar/timing/core"
	"github.com/sarchlab/scholar/timing/csr"
	"github.com/sarchlab/scholar/timing/latency"
)

// ProgramBase is the address every benchmark program is loaded at.
const ProgramBase = 0x1000

// StackTop is the initial sp for every benchmark.
const StackTop = 0x10000

// BenchmarkResult holds the timing results for a single benchmark run.
type BenchmarkResult struct {
	Name        string `json:"name"`
	Description string `json:"description"`

	SimulatedCycles     uint64  `json:"simulated_cycles"`
	InstructionsRetired uint64  `json:"instructions_retired"`
	CPI                 float64 `json:"cpi"`
	StallCycles         uint64  `json:"stall_cycles"`
	SkippedInstructions uint64  `json:"skipped_instructions"`
	TakenBranches       uint64  `json:"taken_branches"`
	Loads               uint64  `json:"loads"`
	Stores              uint64  `json:"stores"`

	// DCacheHits/Misses (if cache enabled)
	DCacheHits   uint64 `json:"dcache_hits,omitempty"`
	DCacheMisses uint64 `json:"dcache_misses,omitempty"`

	// Counter values as software would read them after the run.
	Counters csr.State `json:"counters"`

	ExitCode int64 `json:"exit_code"`

	// Error is set when the program did not halt.
	Error string `json:"error,omitempty"`

	WallTime time.Duration `json:"wall_time_ns"`
}

// Benchmark defines a single benchmark program.
type Benchmark struct {
	Name        string
	Description string

	// Setup prepares registers and memory before the first cycle.
	Setup func(regFile *emu.RegFile, memory *emu.Memory)

	// Program holds the instruction words loaded at ProgramBase.
	Program []uint32

	// ExpectedExit is the expected exit code (for validation)
	ExpectedExit int64
}

// HarnessConfig configures the benchmark harness.
type HarnessConfig struct {
	// XLEN selects RV32 or RV64 cores.
	XLEN insts.XLEN

	// Timing is the latency configuration. Nil means the default.
	Timing *latency.TimingConfig

	// EnableDCache puts DCache in front of memory.
	EnableDCache bool
	DCache       cache.Config

	// MaxCycles bounds each run. Zero uses core.DefaultMaxCycles.
	MaxCycles uint64

	// Output is where to write results (default: os.Stdout)
	Output io.Writer

	Verbose bool
}

// DefaultConfig returns a default harness configuration.
func DefaultConfig() HarnessConfig {
	return HarnessConfig{
		XLEN:         insts.XLEN64,
		Timing:       latency.DefaultTimingConfig(),
		EnableDCache: false,
		DCache:       cache.DefaultL1DConfig(),
		Output:       os.Stdout,
	}
}

// Harness runs timing benchmarks and reports results.
type Harness struct {
	config     HarnessConfig
	benchmarks []Benchmark
}

// NewHarness creates a new benchmark harness.
func NewHarness(config HarnessConfig) *Harness {
	if config.Output == nil {
		config.Output = os.Stdout
	}
	if !config.XLEN.Valid() {
		config.XLEN = insts.XLEN64
	}
	if config.Timing == nil {
		config.Timing = latency.DefaultTimingConfig()
	}
	if config.MaxCycles == 0 {
		config.MaxCycles = core.DefaultMaxCycles
	}

	return &Harness{config: config}
}

// AddBenchmark adds a benchmark to the harness.
func (h *Harness) AddBenchmark(b Benchmark) {
	h.benchmarks = append(h.benchmarks, b)
}

// AddBenchmarks adds multiple benchmarks to the harness.
func (h *Harness) AddBenchmarks(benchmarks []Benchmark) {
	h.benchmarks = append(h.benchmarks, benchmarks...)
}

// RunAll executes all benchmarks and returns results.
func (h *Harness) RunAll() []BenchmarkResult {
	results := make([]BenchmarkResult, 0, len(h.benchmarks))

	for _, bench := range h.benchmarks {
		results = append(results, h.runBenchmark(bench))
	}

	return results
}

func (h *Harness) buildCore(bench Benchmark) *core.Core {
	builder := core.NewBuilder().
		WithXLEN(h.config.XLEN).
		WithTimingConfig(h.config.Timing).
		WithResetPC(ProgramBase).
		WithMaxCycles(h.config.MaxCycles)
	if h.config.EnableDCache {
		builder = builder.WithDataCache(h.config.DCache)
	}

	c := builder.Build("Core")
	c.RegFile().WriteReg(insts.RegSP, StackTop)
	c.Memory().LoadProgram(ProgramBase, bench.Program...)

	if bench.Setup != nil {
		bench.Setup(c.RegFile(), c.Memory())
	}

	return c
}

func (h *Harness) runBenchmark(bench Benchmark) BenchmarkResult {
	c := h.buildCore(bench)

	start := time.Now()
	exitCode, err := c.Run()
	wallTime := time.Since(start)

	stats := c.Stats()
	result := BenchmarkResult{
		Name:                bench.Name,
		Description:         bench.Description,
		SimulatedCycles:     stats.Cycles,
		InstructionsRetired: stats.Instructions,
		CPI:                 stats.CPI(),
		StallCycles:         stats.Stalls,
		SkippedInstructions: stats.Skipped,
		TakenBranches:       stats.TakenBranches,
		Loads:               stats.Loads,
		Stores:              stats.Stores,
		DCacheHits:          stats.CacheHits,
		DCacheMisses:        stats.CacheMisses,
		Counters:            c.CSR().State(),
		ExitCode:            exitCode,
		WallTime:            wallTime,
	}
	if err != nil {
		result.Error = err.Error()
	}

	if h.config.Verbose {
		_, _ = fmt.Fprintf(h.config.Output, "ran %s: %d cycles, exit %d\n",
			bench.Name, stats.Cycles, exitCode)
	}

	return result
}

// PrintResults outputs benchmark results as a table.
func (h *Harness) PrintResults(results []BenchmarkResult) {
	t := table.NewWriter()
	t.SetOutputMirror(h.config.Output)
	t.SetTitle(fmt.Sprintf("RV%d Timing Benchmark Results", h.config.XLEN))
	t.AppendHeader(table.Row{
		"Benchmark", "Exit", "Cycles", "Insts", "CPI",
		"Stalls", "Taken", "Loads", "Stores", "D$ Hit", "D$ Miss", "Wall",
	})

	for _, r := range results {
		exit := fmt.Sprintf("%d", r.ExitCode)
		if r.Error != "" {
			exit = "-"
		}

		t.AppendRow(table.Row{
			r.Name, exit, r.SimulatedCycles, r.InstructionsRetired,
			fmt.Sprintf("%.3f", r.CPI), r.StallCycles, r.TakenBranches,
			r.Loads, r.Stores, r.DCacheHits, r.DCacheMisses, r.WallTime,
		})
	}

	t.Render()
}

// PrintCSV outputs benchmark results in CSV format for easy comparison.
func (h *Harness) PrintCSV(results []BenchmarkResult) {
	_, _ = fmt.Fprintln(h.config.Output,
		"name,cycles,instructions,cpi,stalls,skipped,taken,loads,stores,dcache_hits,dcache_misses,exit_code")

	for _, r := range results {
		_, _ = fmt.Fprintf(h.config.Output, "%s,%d,%d,%.3f,%d,%d,%d,%d,%d,%d,%d,%d\n",
			r.Name,
			r.SimulatedCycles,
			r.InstructionsRetired,
			r.CPI,
			r.StallCycles,
			r.SkippedInstructions,
			r.TakenBranches,
			r.Loads,
			r.Stores,
			r.DCacheHits,
			r.DCacheMisses,
			r.ExitCode,
		)
	}
}

// BenchmarkReport is the complete output format for benchmark results.
type BenchmarkReport struct {
	Metadata ReportMetadata    `json:"metadata"`
	Results  []BenchmarkResult `json:"results"`
	Summary  ReportSummary     `json:"summary"`
}

// ReportMetadata contains information about the benchmark run.
type ReportMetadata struct {
	Timestamp string                `json:"timestamp"`
	XLEN      int                   `json:"xlen"`
	DCache    bool                  `json:"dcache_enabled"`
	Timing    *latency.TimingConfig `json:"timing"`
}

// ReportSummary contains aggregate statistics across all benchmarks.
type ReportSummary struct {
	TotalBenchmarks   int           `json:"total_benchmarks"`
	TotalCycles       uint64        `json:"total_cycles"`
	TotalInstructions uint64        `json:"total_instructions"`
	AverageCPI        float64       `json:"average_cpi"`
	Failures          int           `json:"failures"`
	TotalWallTime     time.Duration `json:"total_wall_time_ns"`
}

// Summarize computes aggregate statistics over results.
func Summarize(results []BenchmarkResult) ReportSummary {
	s := ReportSummary{TotalBenchmarks: len(results)}
	for _, r := range results {
		s.TotalCycles += r.SimulatedCycles
		s.TotalInstructions += r.InstructionsRetired
		s.TotalWallTime += r.WallTime
		if r.Error != "" {
			s.Failures++
		}
	}

	if s.TotalInstructions > 0 {
		s.AverageCPI = float64(s.TotalCycles) / float64(s.TotalInstructions)
	}

	return s
}

// PrintJSON outputs benchmark results in JSON format for automated comparison.
func (h *Harness) PrintJSON(results []BenchmarkResult) error {
	report := BenchmarkReport{
		Metadata: ReportMetadata{
			Timestamp: time.Now().UTC().Format(time.RFC3339),
			XLEN:      int(h.config.XLEN),
			DCache:    h.config.EnableDCache,
			Timing:    h.config.Timing,
		},
		Results: results,
		Summary: Summarize(results),
	}

	encoder := json.NewEncoder(h.config.Output)
	encoder.SetIndent("", "  ")
	return encoder.Encode(report)
}
