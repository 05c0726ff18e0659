package insts

// ABI names of the integer registers used by the tooling.
const (
	RegZero uint8 = 0
	RegRA   uint8 = 1
	RegSP   uint8 = 2
	RegT0   uint8 = 5
	RegT1   uint8 = 6
	RegT2   uint8 = 7
	RegS0   uint8 = 8
	RegS1   uint8 = 9
	RegA0   uint8 = 10
	RegA1   uint8 = 11
	RegA2   uint8 = 12
)
