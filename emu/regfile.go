package emu

// RegFile represents the RISC-V general purpose register file together with
// its scoreboard. Register x0 is hard-wired to zero and is never dirty.
type RegFile struct {
	// X holds general-purpose registers x0-x31. X[0] is never written.
	X [32]uint64

	// dirty marks registers with a pending write whose value is not yet
	// readable.
	dirty [32]bool
}

// ReadReg reads a register value. Register 0 and out-of-range indices read 0.
func (r *RegFile) ReadReg(reg uint8) uint64 {
	if reg == 0 || reg >= 32 {
		return 0
	}
	return r.X[reg]
}

// WriteReg writes a value to a register. Writes to x0 are ignored.
func (r *RegFile) WriteReg(reg uint8, value uint64) {
	if reg == 0 || reg >= 32 {
		return
	}
	r.X[reg] = value
}

// Dirty reports whether reg has a pending write.
func (r *RegFile) Dirty(reg uint8) bool {
	if reg == 0 || reg >= 32 {
		return false
	}
	return r.dirty[reg]
}

// MarkDirty records a pending write to reg. x0 is ignored.
func (r *RegFile) MarkDirty(reg uint8) {
	if reg == 0 || reg >= 32 {
		return
	}
	r.dirty[reg] = true
}

// ClearDirty marks reg readable again.
func (r *RegFile) ClearDirty(reg uint8) {
	if reg >= 32 {
		return
	}
	r.dirty[reg] = false
}

// Reset clears all registers and scoreboard entries.
func (r *RegFile) Reset() {
	*r = RegFile{}
}
