package pipeline

// HazardUnit implements the decode ready/valid handshake. It has no state;
// every output is a function of the current cycle's inputs.
type HazardUnit struct{}

// NewHazardUnit creates a new hazard unit.
func NewHazardUnit() *HazardUnit {
	return &HazardUnit{}
}

// Handshake computes the ready/valid pair for the instruction in decode.
//
// While reset is held both signals are low. An unsupported instruction is
// never valid but is always ready, so the fetch side can advance past it. A
// supported instruction is valid only when neither source register is dirty,
// and ready only when it is valid and the downstream stage can accept it.
func (h *HazardUnit) Handshake(
	reset, supported bool,
	rs1Dirty, rs2Dirty bool,
	downstreamReady bool,
) (ready, valid bool) {
	if reset {
		return false, false
	}

	if !supported {
		return true, false
	}

	valid = !(rs1Dirty || rs2Dirty)
	ready = valid && downstreamReady

	return ready, valid
}

// Stalled reports whether a supported instruction is held in decode this
// cycle, either by a pending operand or by downstream backpressure.
func (h *HazardUnit) Stalled(reset bool, r DecodeResult) bool {
	if reset || r.Inst == nil || !r.Inst.Supported() {
		return false
	}

	return !r.Ready
}
