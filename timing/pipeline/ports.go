package pipeline

// RegisterReader is the register file port sampled by decode. It returns the
// value of a source register and whether a write to it is still pending.
type RegisterReader interface {
	ReadReg(reg uint8) uint64
	Dirty(reg uint8) bool
}

// CSRReader is the CSR read port sampled by decode.
type CSRReader interface {
	Read(addr uint16) uint64
}
