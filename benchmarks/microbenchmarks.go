package benchmarks

import (
	"github.com/sarchlab/scholar/emu"
	"github.com/sarchlab/scholar/insts"
	"github.com/sarchlab/scholar/timing/csr"
)

const dataBase = 0x8000

// GetMicrobenchmarks returns the standard set of microbenchmarks. Each one
// targets a single timing characteristic of the core. All of them run
// unchanged on RV32 and RV64.
func GetMicrobenchmarks() []Benchmark {
	return []Benchmark{
		arithmeticSequential(),
		dependencyChain(),
		memorySequential(),
		pointerChase(),
		functionCalls(),
		branchLoop(),
		counterRead(),
		mixedOperations(),
	}
}

// GetCoreBenchmarks returns a minimal set for quick validation: a loop,
// calls and memory traffic.
func GetCoreBenchmarks() []Benchmark {
	return []Benchmark{
		branchLoop(),
		functionCalls(),
		memorySequential(),
	}
}

// Lookup returns the microbenchmark called name.
func Lookup(name string) (Benchmark, bool) {
	for _, b := range GetMicrobenchmarks() {
		if b.Name == name {
			return b, true
		}
	}
	return Benchmark{}, false
}

func arithmeticSequential() Benchmark {
	regs := []uint8{insts.RegT0, insts.RegT1, insts.RegT2, insts.RegS1, insts.RegA0}

	program := make([]uint32, 0, 21)
	for round := 0; round < 4; round++ {
		for _, r := range regs {
			program = append(program, insts.ADDI(r, r, 1))
		}
	}
	program = append(program, insts.ECALL())

	return Benchmark{
		Name:         "arithmetic_sequential",
		Description:  "20 independent ADDIs over 5 registers - measures ALU throughput",
		Program:      program,
		ExpectedExit: 4,
	}
}

func dependencyChain() Benchmark {
	return Benchmark{
		Name:         "dependency_chain",
		Description:  "20 dependent ADDIs (a0 = a0 + 1) - measures ALU result latency",
		Program:      buildDependencyChain(20),
		ExpectedExit: 20,
	}
}

func buildDependencyChain(n int) []uint32 {
	program := make([]uint32, 0, n+1)
	for i := 0; i < n; i++ {
		program = append(program, insts.ADDI(insts.RegA0, insts.RegA0, 1))
	}
	return append(program, insts.ECALL())
}

func memorySequential() Benchmark {
	program := make([]uint32, 0, 21)
	for i := int64(0); i < 10; i++ {
		program = append(program,
			insts.SW(insts.RegA0, insts.RegT0, 4*i),
			insts.LW(insts.RegA0, insts.RegT0, 4*i),
		)
	}
	program = append(program, insts.ECALL())

	return Benchmark{
		Name:        "memory_sequential",
		Description: "10 store/load pairs to sequential words - each store waits on the previous load",
		Setup: func(regFile *emu.RegFile, memory *emu.Memory) {
			regFile.WriteReg(insts.RegT0, dataBase)
			regFile.WriteReg(insts.RegA0, 42)
		},
		Program:      program,
		ExpectedExit: 42,
	}
}

func pointerChase() Benchmark {
	const nodes = 8

	return Benchmark{
		Name:        "pointer_chase",
		Description: "Walk an 8-node linked list - measures load-to-branch latency",
		Setup: func(regFile *emu.RegFile, memory *emu.Memory) {
			for i := uint64(0); i < nodes; i++ {
				next := uint32(dataBase + 16*(i+1))
				if i == nodes-1 {
					next = 0
				}
				memory.Write32(dataBase+16*i, next)
			}
			regFile.WriteReg(insts.RegT0, dataBase)
		},
		Program: []uint32{
			insts.LW(insts.RegT0, insts.RegT0, 0),
			insts.ADDI(insts.RegA0, insts.RegA0, 1),
			insts.BNE(insts.RegT0, insts.RegZero, -8),
			insts.ECALL(),
		},
		ExpectedExit: nodes,
	}
}

func functionCalls() Benchmark {
	const calls = 5
	const function = calls + 1

	program := make([]uint32, 0, function+2)
	for i := 0; i < calls; i++ {
		program = append(program, insts.JAL(insts.RegRA, int64(function-i)*4))
	}
	program = append(program,
		insts.ECALL(),
		insts.ADDI(insts.RegA0, insts.RegA0, 1),
		insts.JALR(insts.RegZero, insts.RegRA, 0),
	)

	return Benchmark{
		Name:         "function_calls",
		Description:  "5 JAL/JALR call-return pairs - measures jump overhead",
		Program:      program,
		ExpectedExit: calls,
	}
}

func branchLoop() Benchmark {
	return Benchmark{
		Name:        "branch_loop",
		Description: "10-iteration countdown loop closed by BNE - measures taken-branch cost",
		Program: []uint32{
			insts.ADDI(insts.RegT0, insts.RegZero, 10),
			insts.ADDI(insts.RegA0, insts.RegA0, 1),
			insts.ADDI(insts.RegT0, insts.RegT0, -1),
			insts.BNE(insts.RegT0, insts.RegZero, -8),
			insts.ECALL(),
		},
		ExpectedExit: 10,
	}
}

func counterRead() Benchmark {
	return Benchmark{
		Name:        "counter_read",
		Description: "Read mcycle after 5 NOPs - checks the cycle counter seen by software",
		Program: []uint32{
			insts.NOP(),
			insts.NOP(),
			insts.NOP(),
			insts.NOP(),
			insts.NOP(),
			insts.CSRR(insts.RegA0, csr.MCycle),
			insts.ECALL(),
		},
		ExpectedExit: 5,
	}
}

func mixedOperations() Benchmark {
	return Benchmark{
		Name:        "mixed_operations",
		Description: "Shift, logic, compare and subtract on a short dependency graph",
		Program: []uint32{
			insts.ADDI(insts.RegT0, insts.RegZero, 7),
			insts.SLLI(insts.RegT0, insts.RegT0, 3),
			insts.ADDI(insts.RegT1, insts.RegZero, 5),
			insts.XOR(insts.RegT2, insts.RegT0, insts.RegT1),
			insts.SLT(insts.RegA1, insts.RegT1, insts.RegT0),
			insts.ADD(insts.RegA0, insts.RegT2, insts.RegA1),
			insts.SUB(insts.RegA0, insts.RegA0, insts.RegT1),
			insts.ECALL(),
		},
		ExpectedExit: 57,
	}
}
