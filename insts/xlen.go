package insts

import "fmt"

// XLEN is the native integer width of the core in bits.
type XLEN uint8

// Supported machine word widths.
const (
	XLEN32 XLEN = 32
	XLEN64 XLEN = 64
)

// ParseXLEN converts a bit width into an XLEN.
func ParseXLEN(bits int) (XLEN, error) {
	switch bits {
	case 32:
		return XLEN32, nil
	case 64:
		return XLEN64, nil
	default:
		return 0, fmt.Errorf("unsupported xlen %d: must be 32 or 64", bits)
	}
}

// Valid reports whether x is one of the supported widths.
func (x XLEN) Valid() bool {
	return x == XLEN32 || x == XLEN64
}

// Mask returns a mask covering one machine word.
func (x XLEN) Mask() uint64 {
	if x == XLEN32 {
		return 0xFFFF_FFFF
	}
	return ^uint64(0)
}

// Trunc truncates v to the machine word width.
func (x XLEN) Trunc(v uint64) uint64 {
	return v & x.Mask()
}

// ShiftMask returns the mask applied to shift amounts (log2(XLEN) bits).
func (x XLEN) ShiftMask() uint64 {
	if x == XLEN32 {
		return 0x1F
	}
	return 0x3F
}

// SignExtend sign-extends the low `bits` bits of v to the machine word width.
func (x XLEN) SignExtend(v uint64, bits uint) uint64 {
	return x.Trunc(SignExtend(v, bits))
}

// Signed reinterprets a machine word as a two's-complement integer.
func (x XLEN) Signed(v uint64) int64 {
	if x == XLEN32 {
		return int64(int32(uint32(v)))
	}
	return int64(v)
}

// String returns the conventional ISA name for the width.
func (x XLEN) String() string {
	return fmt.Sprintf("RV%dI", uint8(x))
}

// SignExtend sign-extends the low `bits` bits of v to 64 bits.
func SignExtend(v uint64, bits uint) uint64 {
	if bits == 0 || bits >= 64 {
		return v
	}
	shift := 64 - bits
	return uint64(int64(v<<shift) >> shift)
}
