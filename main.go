// Package main provides the entry point for Scholar.
// Scholar is a cycle-level RISC-V RV32I/RV64I core model built on Akita.
//
// For the full CLI, use: go run ./cmd/scholar
package main

import (
	"fmt"
	"os"
)

func main() {
	fmt.Println("Scholar - RISC-V Core Model")
	fmt.Println("Built on Akita simulation framework")
	fmt.Println("")
	fmt.Println("Usage: scholar <command> [options]")
	fmt.Println("")
	fmt.Println("Commands:")
	fmt.Println("  run       Run an ELF or raw image until it halts")
	fmt.Println("  decode    Show decode control signals for instruction words")
	fmt.Println("  bench     Run the timing microbenchmarks")
	fmt.Println("  config    Create and check timing configuration files")
	fmt.Println("")
	fmt.Println("Run 'go run ./cmd/scholar' for the full CLI.")

	if len(os.Args) > 1 {
		fmt.Println("\nNote: You provided arguments. Use 'go run ./cmd/scholar' instead.")
	}
}
