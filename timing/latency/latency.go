// Package latency provides the instruction timing model of the core.
//
// Latencies are looked up per opcode class and can be configured via
// TimingConfig.
package latency

import (
	"github.com/sarchlab/scholar/insts"
)

// Table provides instruction latency lookups.
type Table struct {
	config *TimingConfig
}

// NewTable creates a new latency table with default timing values.
func NewTable() *Table {
	return &Table{
		config: DefaultTimingConfig(),
	}
}

// NewTableWithConfig creates a new latency table with custom timing configuration.
func NewTableWithConfig(config *TimingConfig) *Table {
	return &Table{
		config: config,
	}
}

// GetLatency returns the latency in cycles for the given instruction.
func (t *Table) GetLatency(inst *insts.Instruction) uint64 {
	if inst == nil {
		return 1
	}

	switch inst.Class {
	case insts.ClassImm, insts.ClassImmW,
		insts.ClassReg, insts.ClassRegW,
		insts.ClassLUI, insts.ClassAUIPC:
		return t.config.ALULatency

	case insts.ClassBranch:
		return t.config.BranchLatency

	case insts.ClassJAL, insts.ClassJALR:
		return t.config.JumpLatency

	case insts.ClassLoad:
		return t.config.LoadLatency

	case insts.ClassStore:
		return t.config.StoreLatency

	case insts.ClassCSR:
		return t.config.CSRLatency

	default:
		return 1
	}
}

// MemoryBusyCycles returns how long the memory stage stays busy after
// accepting inst.
func (t *Table) MemoryBusyCycles(inst *insts.Instruction) uint64 {
	if !t.IsMemoryOp(inst) {
		return 0
	}
	return t.config.MemoryBusyCycles
}

// IsMemoryOp returns true if the instruction accesses memory.
func (t *Table) IsMemoryOp(inst *insts.Instruction) bool {
	return t.IsLoadOp(inst) || t.IsStoreOp(inst)
}

// IsLoadOp returns true if the instruction is a load operation.
func (t *Table) IsLoadOp(inst *insts.Instruction) bool {
	if inst == nil {
		return false
	}
	return inst.Class == insts.ClassLoad
}

// IsStoreOp returns true if the instruction is a store operation.
func (t *Table) IsStoreOp(inst *insts.Instruction) bool {
	if inst == nil {
		return false
	}
	return inst.Class == insts.ClassStore
}

// IsBranchOp returns true if the instruction may redirect control flow.
func (t *Table) IsBranchOp(inst *insts.Instruction) bool {
	if inst == nil {
		return false
	}
	switch inst.Class {
	case insts.ClassBranch, insts.ClassJAL, insts.ClassJALR:
		return true
	default:
		return false
	}
}

// Config returns the current timing configuration.
func (t *Table) Config() *TimingConfig {
	return t.config
}
