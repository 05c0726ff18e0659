package core

import (
	"github.com/sarchlab/akita/v4/sim"

	"github.com/sarchlab/scholar/emu"
	"github.com/sarchlab/scholar/insts"
	"github.com/sarchlab/scholar/timing/cache"
	"github.com/sarchlab/scholar/timing/csr"
	"github.com/sarchlab/scholar/timing/latency"
	"github.com/sarchlab/scholar/timing/pipeline"
)

// DefaultMaxCycles bounds Run when no other limit is configured.
const DefaultMaxCycles = 100_000_000

// Builder can create new cores.
type Builder struct {
	engine          sim.Engine
	freq            sim.Freq
	xlen            insts.XLEN
	memory          *emu.Memory
	resetPC         uint64
	timing          *latency.TimingConfig
	dcache          *cache.Config
	downstreamReady func() bool
	maxCycles       uint64
}

// NewBuilder returns a builder for an RV64 core at 1 GHz with the default
// timing configuration.
func NewBuilder() Builder {
	return Builder{
		freq:      1 * sim.GHz,
		xlen:      insts.XLEN64,
		timing:    latency.DefaultTimingConfig(),
		maxCycles: DefaultMaxCycles,
	}
}

// WithEngine sets the engine.
func (b Builder) WithEngine(engine sim.Engine) Builder {
	b.engine = engine
	return b
}

// WithFreq sets the frequency of the core.
func (b Builder) WithFreq(freq sim.Freq) Builder {
	b.freq = freq
	return b
}

// WithXLEN sets the machine word width.
func (b Builder) WithXLEN(xlen insts.XLEN) Builder {
	if !xlen.Valid() {
		panic("xlen must be 32 or 64")
	}
	b.xlen = xlen
	return b
}

// WithMemory sets the memory the core fetches from and accesses. A fresh
// memory is created when none is given.
func (b Builder) WithMemory(memory *emu.Memory) Builder {
	b.memory = memory
	return b
}

// WithResetPC sets the program counter the core starts from and returns to
// on reset.
func (b Builder) WithResetPC(pc uint64) Builder {
	b.resetPC = pc
	return b
}

// WithTimingConfig sets the latency configuration. A nil config selects
// the default timing; an invalid one panics.
func (b Builder) WithTimingConfig(config *latency.TimingConfig) Builder {
	if config == nil {
		b.timing = latency.DefaultTimingConfig()
		return b
	}

	if err := config.Validate(); err != nil {
		panic("invalid timing config: " + err.Error())
	}

	b.timing = config.Clone()
	return b
}

// WithDataCache puts a data cache in front of memory. Load latency then
// follows the cache instead of the timing configuration.
func (b Builder) WithDataCache(config cache.Config) Builder {
	b.dcache = &config
	return b
}

// WithDownstreamReady injects an extra backpressure source. Decode only
// hands an instruction over in cycles where ready returns true.
func (b Builder) WithDownstreamReady(ready func() bool) Builder {
	b.downstreamReady = ready
	return b
}

// WithMaxCycles sets the cycle budget of Run. Zero means unlimited.
func (b Builder) WithMaxCycles(cycles uint64) Builder {
	b.maxCycles = cycles
	return b
}

// Build creates a core.
func (b Builder) Build(name string) *Core {
	memory := b.memory
	if memory == nil {
		memory = emu.NewMemory()
	}

	c := &Core{
		engine:          b.engine,
		xlen:            b.xlen,
		regFile:         &emu.RegFile{},
		memory:          memory,
		csr:             csr.NewUnit(b.xlen),
		fetchStage:      pipeline.NewFetchStage(memory),
		decodeStage:     pipeline.NewDecodeStage(b.xlen),
		executeStage:    pipeline.NewExecuteStage(b.xlen),
		memoryStage:     pipeline.NewMemoryStage(emu.NewLoadStoreUnit(memory, b.xlen)),
		writebackStage:  pipeline.NewWritebackStage(b.xlen),
		hazardUnit:      pipeline.NewHazardUnit(),
		latencyTable:    latency.NewTableWithConfig(b.timing.Clone()),
		downstreamReady: b.downstreamReady,
		resetPC:         b.xlen.Trunc(b.resetPC),
		pc:              b.xlen.Trunc(b.resetPC),
		maxCycles:       b.maxCycles,
	}

	if b.dcache != nil {
		c.dcache = cache.New(*b.dcache)
	}

	c.TickingComponent = sim.NewTickingComponent(name, b.engine, b.freq, c)

	return c
}
