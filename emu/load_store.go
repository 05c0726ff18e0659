package emu

import "github.com/sarchlab/scholar/insts"

// LoadStoreUnit performs the memory stage access for a decoded MemOp.
type LoadStoreUnit struct {
	memory *Memory
	xlen   insts.XLEN
}

// NewLoadStoreUnit creates a new LoadStoreUnit connected to the given memory.
func NewLoadStoreUnit(memory *Memory, xlen insts.XLEN) *LoadStoreUnit {
	return &LoadStoreUnit{
		memory: memory,
		xlen:   xlen,
	}
}

// Access executes op at addr. Reads return the loaded value extended to the
// machine word; writes store the low bytes of data and return 0. MemIdle does
// nothing.
func (lsu *LoadStoreUnit) Access(op insts.MemOp, addr, data uint64) uint64 {
	addr = lsu.xlen.Trunc(addr)

	switch {
	case op.IsRead():
		return lsu.load(op, addr)
	case op.IsWrite():
		lsu.store(op, addr, data)
	}

	return 0
}

func (lsu *LoadStoreUnit) load(op insts.MemOp, addr uint64) uint64 {
	var raw uint64
	switch op.Size() {
	case 1:
		raw = uint64(lsu.memory.Read8(addr))
	case 2:
		raw = uint64(lsu.memory.Read16(addr))
	case 4:
		raw = uint64(lsu.memory.Read32(addr))
	case 8:
		raw = lsu.memory.Read64(addr)
	}

	if op.Signed() {
		return lsu.xlen.SignExtend(raw, uint(op.Size()*8))
	}
	return lsu.xlen.Trunc(raw)
}

func (lsu *LoadStoreUnit) store(op insts.MemOp, addr, data uint64) {
	switch op.Size() {
	case 1:
		lsu.memory.Write8(addr, uint8(data))
	case 2:
		lsu.memory.Write16(addr, uint16(data))
	case 4:
		lsu.memory.Write32(addr, uint32(data))
	case 8:
		lsu.memory.Write64(addr, data)
	}
}
