package pipeline

// IFIDRegister holds state between the Fetch and Decode stages.
type IFIDRegister struct {
	// Valid indicates if this pipeline register contains valid data.
	Valid bool

	// PC is the program counter of the fetched instruction.
	PC uint64

	// InstructionWord is the raw 32-bit instruction word.
	InstructionWord uint32
}

// Clear resets the IF/ID register to empty state.
func (r *IFIDRegister) Clear() {
	*r = IFIDRegister{}
}

// EXWBRegister holds the instruction that was accepted from decode in the
// last cycle, together with what it produced.
type EXWBRegister struct {
	// Valid indicates if this pipeline register contains valid data.
	Valid bool

	// Decoded is the accepted decode result.
	Decoded DecodeResult

	// ALUResult is the execute stage output.
	ALUResult uint64

	// MemData is the value returned by a load.
	MemData uint64

	// NextPC is the resolved program counter after this instruction.
	NextPC uint64

	// Taken indicates the instruction redirected control flow.
	Taken bool
}

// Clear resets the EX/WB register to empty state.
func (r *EXWBRegister) Clear() {
	*r = EXWBRegister{}
}
