// Package core provides the cycle-level RISC-V core model. Each tick runs one
// instruction through decode and execute and commits it through the register
// file, memory and performance counters.
package core

import (
	"errors"
	"fmt"

	"github.com/sarchlab/akita/v4/sim"

	"github.com/sarchlab/scholar/emu"
	"github.com/sarchlab/scholar/insts"
	"github.com/sarchlab/scholar/timing/cache"
	"github.com/sarchlab/scholar/timing/csr"
	"github.com/sarchlab/scholar/timing/latency"
	"github.com/sarchlab/scholar/timing/pipeline"
)

// ErrCycleLimit is returned by Run when the core does not halt within its
// cycle budget.
var ErrCycleLimit = errors.New("cycle limit reached")

// RegA0 holds the exit code when the core halts.
const RegA0 = insts.RegA0

// Stats holds performance statistics for the core.
type Stats struct {
	// Cycles is the total number of cycles simulated, reset cycles included.
	Cycles uint64
	// Instructions is the number of instructions retired.
	Instructions uint64
	// Stalls is the number of cycles a supported instruction waited in decode.
	Stalls uint64
	// Skipped is the number of unsupported instructions stepped over.
	Skipped uint64
	// TakenBranches counts branches and jumps that left the sequential path.
	TakenBranches uint64
	// Loads is the number of retired loads.
	Loads uint64
	// Stores is the number of retired stores.
	Stores uint64
	// CacheHits and CacheMisses count data cache accesses, if a cache is
	// configured.
	CacheHits   uint64
	CacheMisses uint64
}

// CPI returns cycles per retired instruction, or 0 before the first one.
func (s Stats) CPI() float64 {
	if s.Instructions == 0 {
		return 0
	}
	return float64(s.Cycles) / float64(s.Instructions)
}

type pendingWrite struct {
	reg     uint8
	value   uint64
	readyAt uint64
}

// Core is a single-issue in-order RISC-V core.
type Core struct {
	*sim.TickingComponent

	engine sim.Engine
	xlen   insts.XLEN

	regFile *emu.RegFile
	memory  *emu.Memory
	csr     *csr.Unit
	dcache  *cache.Cache

	fetchStage     *pipeline.FetchStage
	decodeStage    *pipeline.DecodeStage
	executeStage   *pipeline.ExecuteStage
	memoryStage    *pipeline.MemoryStage
	writebackStage *pipeline.WritebackStage
	hazardUnit     *pipeline.HazardUnit
	latencyTable   *latency.Table

	ifid pipeline.IFIDRegister
	exwb pipeline.EXWBRegister

	pc      uint64
	resetPC uint64
	reset   bool

	pending         []pendingWrite
	memBusy         uint64
	downstreamReady func() bool

	maxCycles uint64
	halted    bool
	exitCode  int64
	stats     Stats
}

// XLEN returns the machine word width.
func (c *Core) XLEN() insts.XLEN {
	return c.xlen
}

// RegFile returns the register file.
func (c *Core) RegFile() *emu.RegFile {
	return c.regFile
}

// Memory returns the memory the core is attached to.
func (c *Core) Memory() *emu.Memory {
	return c.memory
}

// CSR returns the performance counter unit.
func (c *Core) CSR() *csr.Unit {
	return c.csr
}

// DataCache returns the data cache, or nil if none is configured.
func (c *Core) DataCache() *cache.Cache {
	return c.dcache
}

// PC returns the program counter of the next instruction to decode.
func (c *Core) PC() uint64 {
	return c.pc
}

// SetPC sets the program counter.
func (c *Core) SetPC(pc uint64) {
	c.pc = c.xlen.Trunc(pc)
}

// Halted returns true if the core has halted.
func (c *Core) Halted() bool {
	return c.halted
}

// ExitCode returns the value of a0 at the time the core halted.
func (c *Core) ExitCode() int64 {
	return c.exitCode
}

// Stats returns performance statistics for the core.
func (c *Core) Stats() Stats {
	return c.stats
}

// Fetched returns the IF/ID register of the last cycle.
func (c *Core) Fetched() pipeline.IFIDRegister {
	return c.ifid
}

// LastRetired returns the EX/WB register of the last cycle. It is invalid
// when no instruction left decode in that cycle.
func (c *Core) LastRetired() pipeline.EXWBRegister {
	return c.exwb
}

// SetReset holds or releases the core in reset. While held, no instruction
// is accepted, the counters stay at zero and the PC returns to the reset
// vector.
func (c *Core) SetReset(reset bool) {
	c.reset = reset
	c.csr.SetReset(reset)

	if reset {
		c.pc = c.resetPC
		c.pending = nil
		c.memBusy = 0
		c.ifid.Clear()
		c.exwb.Clear()
		c.regFile.Reset()
	}
}

// Reset clears all core state and restarts at the reset vector.
func (c *Core) Reset() {
	c.SetReset(true)
	c.SetReset(false)

	c.halted = false
	c.exitCode = 0
	c.stats = Stats{}

	if c.dcache != nil {
		c.dcache.Reset()
	}
}

// Tick executes one cycle. It returns false once the core has halted or used
// up its cycle budget.
func (c *Core) Tick() (madeProgress bool) {
	if c.halted {
		return false
	}

	if c.maxCycles > 0 && c.stats.Cycles >= c.maxCycles {
		return false
	}

	c.retirePending(c.stats.Cycles)

	word := c.fetchStage.Fetch(c.pc)
	c.ifid = pipeline.IFIDRegister{Valid: true, PC: c.pc, InstructionWord: word}
	c.exwb.Clear()

	in := c.decodeStage.Gather(word, c.pc, c.regFile, c.csr)
	in.Reset = c.reset
	in.DownstreamReady = c.downstreamAccepts()
	d := c.decodeStage.Decode(in)

	var events csr.Events
	committed := false

	switch {
	case c.reset:
	case d.Ready && d.Valid:
		events.Event = c.commit(d)
		committed = true
	case c.hazardUnit.Stalled(c.reset, d):
		events.Stall = true
		c.stats.Stalls++
		if TraceEnabled() {
			Trace("Stall",
				"pc", fmt.Sprintf("%#x", d.PC),
				"inst", d.Inst.String(),
				"rs1_dirty", in.Rs1Dirty,
				"rs2_dirty", in.Rs2Dirty,
			)
		}
	case d.Ready:
		c.pc = c.xlen.Trunc(c.pc + 4)
		c.stats.Skipped++
		if TraceEnabled() {
			Trace("Skip", "pc", fmt.Sprintf("%#x", d.PC), "word", fmt.Sprintf("%#08x", word))
		}
	}

	if !committed && c.memBusy > 0 {
		c.memBusy--
	}

	c.csr.Tick(events)
	c.stats.Cycles++

	return true
}

func (c *Core) downstreamAccepts() bool {
	if c.memBusy > 0 {
		return false
	}

	if c.downstreamReady != nil {
		return c.downstreamReady()
	}

	return true
}

// commit executes an accepted instruction and reports whether it redirected
// control flow.
func (c *Core) commit(d pipeline.DecodeResult) bool {
	result := c.executeStage.Execute(d)
	lat := c.latencyTable.GetLatency(d.Inst)

	var memData uint64
	if d.MemOp != insts.MemIdle {
		memData = c.memoryStage.Access(d, result)
		lat = c.accessCache(d, result, lat)
		c.memBusy = c.latencyTable.MemoryBusyCycles(d.Inst)
	}

	if value, ok := c.writebackStage.Value(d, result, memData); ok {
		c.scheduleWrite(d.Rd, value, c.stats.Cycles+lat)
	}

	nextPC, taken := c.executeStage.NextPC(d, result)

	c.exwb = pipeline.EXWBRegister{
		Valid:     true,
		Decoded:   d,
		ALUResult: result,
		MemData:   memData,
		NextPC:    nextPC,
		Taken:     taken,
	}

	c.countRetired(d, taken)

	if TraceEnabled() {
		Trace("Retire",
			"pc", fmt.Sprintf("%#x", d.PC),
			"inst", d.Inst.String(),
			"result", fmt.Sprintf("%#x", result),
			"next_pc", fmt.Sprintf("%#x", nextPC),
		)
	}

	c.checkHalt(d, nextPC)
	c.pc = nextPC

	return taken
}

func (c *Core) accessCache(d pipeline.DecodeResult, addr uint64, lat uint64) uint64 {
	if c.dcache == nil {
		return lat
	}

	access := c.dcache.Access(d.MemOp, c.xlen.Trunc(addr))
	if access.Hit {
		c.stats.CacheHits++
	} else {
		c.stats.CacheMisses++
	}

	if d.MemOp.IsRead() {
		return access.Latency
	}
	return lat
}

func (c *Core) countRetired(d pipeline.DecodeResult, taken bool) {
	c.stats.Instructions++

	if taken {
		c.stats.TakenBranches++
	}

	switch {
	case c.latencyTable.IsLoadOp(d.Inst):
		c.stats.Loads++
	case c.latencyTable.IsStoreOp(d.Inst):
		c.stats.Stores++
	}
}

// checkHalt stops the core on ecall, ebreak or a jump to itself.
func (c *Core) checkHalt(d pipeline.DecodeResult, nextPC uint64) {
	word := d.Inst.Word
	selfLoop := d.PCCtrl == insts.PCAdd && nextPC == d.PC

	if word != insts.ECALL() && word != insts.EBREAK() && !selfLoop {
		return
	}

	c.drainPending()
	c.halted = true
	c.exitCode = c.xlen.Signed(c.regFile.ReadReg(RegA0))

	Trace("Halt", "pc", fmt.Sprintf("%#x", d.PC), "exit_code", c.exitCode)
}

// scheduleWrite queues a register write that becomes visible at cycle
// readyAt. The register reads dirty until then. A newer write to the same
// register replaces an older one still in flight.
func (c *Core) scheduleWrite(reg uint8, value uint64, readyAt uint64) {
	kept := c.pending[:0]
	for _, p := range c.pending {
		if p.reg != reg {
			kept = append(kept, p)
		}
	}

	c.pending = append(kept, pendingWrite{reg: reg, value: value, readyAt: readyAt})
	c.regFile.MarkDirty(reg)
}

func (c *Core) retirePending(now uint64) {
	kept := c.pending[:0]
	for _, p := range c.pending {
		if p.readyAt > now {
			kept = append(kept, p)
			continue
		}

		c.regFile.WriteReg(p.reg, p.value)
		c.regFile.ClearDirty(p.reg)
	}

	c.pending = kept
}

func (c *Core) drainPending() {
	for _, p := range c.pending {
		c.regFile.WriteReg(p.reg, p.value)
		c.regFile.ClearDirty(p.reg)
	}

	c.pending = c.pending[:0]
}

// RunCycles executes the core for the specified number of cycles.
// Returns true if still running, false if halted.
func (c *Core) RunCycles(cycles uint64) bool {
	for i := uint64(0); i < cycles; i++ {
		if !c.Tick() {
			break
		}
	}

	return !c.halted
}

// Run executes the core until it halts and returns the exit code. With an
// engine the ticks are scheduled as simulation events; otherwise Run ticks
// directly.
func (c *Core) Run() (int64, error) {
	if c.engine != nil {
		c.TickNow()
		if err := c.engine.Run(); err != nil {
			return 0, fmt.Errorf("failed to run simulation: %w", err)
		}
	} else {
		for c.Tick() {
		}
	}

	if !c.halted {
		return 0, fmt.Errorf("%w after %d cycles", ErrCycleLimit, c.stats.Cycles)
	}

	return c.exitCode, nil
}
