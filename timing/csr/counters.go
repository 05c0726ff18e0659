// Package csr implements the read-only performance counters of the core and
// their RISC-V CSR address map.
package csr

import "github.com/sarchlab/scholar/insts"

// Counter CSR addresses. On RV32 the H addresses expose the upper 32 bits; on
// RV64 both addresses of a counter read the full value.
const (
	MCycle        uint16 = 0xB00
	MHPMCounter3  uint16 = 0xB03
	MHPMCounter4  uint16 = 0xB04
	MCycleH       uint16 = 0xB80
	MHPMCounter3H uint16 = 0xB83
	MHPMCounter4H uint16 = 0xB84
)

// Events are the counter inputs sampled in one cycle.
type Events struct {
	// Stall is asserted while a supported instruction is held in decode.
	Stall bool

	// Event is asserted when an instruction redirects control flow.
	Event bool
}

// State is the value of the three counters.
type State struct {
	Cycles uint64 `json:"cycles"`
	Stalls uint64 `json:"stalls"`
	Events uint64 `json:"events"`
}

// Tick returns the state after one active cycle with the given inputs.
func (s State) Tick(e Events) State {
	next := s
	next.Cycles++

	if e.Stall {
		next.Stalls++
	}

	if e.Event {
		next.Events++
	}

	return next
}

// Unit owns the counter state and serves CSR reads.
type Unit struct {
	xlen  insts.XLEN
	state State
	reset bool
}

// NewUnit creates a counter unit with all counters at zero.
func NewUnit(xlen insts.XLEN) *Unit {
	return &Unit{xlen: xlen}
}

// Tick advances the counters by one clock. While reset is held they stay at
// zero.
func (u *Unit) Tick(e Events) {
	if u.reset {
		u.state = State{}
		return
	}

	u.state = u.state.Tick(e)
}

// Reset clears every counter.
func (u *Unit) Reset() {
	u.state = State{}
}

// SetReset holds or releases the reset input.
func (u *Unit) SetReset(reset bool) {
	u.reset = reset
	if reset {
		u.state = State{}
	}
}

// InReset reports whether reset is held.
func (u *Unit) InReset() bool {
	return u.reset
}

// State returns the current counter values.
func (u *Unit) State() State {
	return u.state
}

// Read returns the value at a CSR address. Unknown addresses read 0.
func (u *Unit) Read(addr uint16) uint64 {
	var (
		value uint64
		high  bool
	)

	switch addr {
	case MCycle:
		value = u.state.Cycles
	case MCycleH:
		value, high = u.state.Cycles, true
	case MHPMCounter3:
		value = u.state.Stalls
	case MHPMCounter3H:
		value, high = u.state.Stalls, true
	case MHPMCounter4:
		value = u.state.Events
	case MHPMCounter4H:
		value, high = u.state.Events, true
	default:
		return 0
	}

	if u.xlen == insts.XLEN64 {
		return value
	}

	if high {
		return value >> 32
	}
	return value & 0xFFFF_FFFF
}

// Write is accepted for bus compatibility and ignored.
func (u *Unit) Write(addr uint16, value uint64) {}

// Name returns the conventional name of a counter address, or "" for an
// unknown address.
func Name(addr uint16) string {
	switch addr {
	case MCycle:
		return "mcycle"
	case MCycleH:
		return "mcycleh"
	case MHPMCounter3:
		return "mhpmcounter3"
	case MHPMCounter3H:
		return "mhpmcounter3h"
	case MHPMCounter4:
		return "mhpmcounter4"
	case MHPMCounter4H:
		return "mhpmcounter4h"
	default:
		return ""
	}
}
