package latency

import (
	"encoding/json"
	"fmt"
	"os"
)

// TimingConfig holds latency values for the instruction classes of the core.
// A latency of L cycles means the destination register becomes readable L
// cycles after the instruction leaves decode.
type TimingConfig struct {
	// ALULatency is the result latency of register and immediate arithmetic,
	// LUI and AUIPC. Default: 1 cycle.
	ALULatency uint64 `json:"alu_latency"`

	// BranchLatency is the latency of conditional branches. Default: 1 cycle.
	BranchLatency uint64 `json:"branch_latency"`

	// JumpLatency is the return address latency of JAL and JALR.
	// Default: 1 cycle.
	JumpLatency uint64 `json:"jump_latency"`

	// LoadLatency is the latency of loads. Default: 2 cycles.
	LoadLatency uint64 `json:"load_latency"`

	// StoreLatency is the latency of stores. Default: 1 cycle.
	StoreLatency uint64 `json:"store_latency"`

	// CSRLatency is the latency of counter reads. Default: 1 cycle.
	CSRLatency uint64 `json:"csr_latency"`

	// MemoryBusyCycles is how long the memory stage deasserts downstream
	// ready after accepting a load or store. Default: 0 cycles.
	MemoryBusyCycles uint64 `json:"memory_busy_cycles"`
}

// DefaultTimingConfig returns a TimingConfig for a simple five-stage core
// with a one-cycle load-use bubble.
func DefaultTimingConfig() *TimingConfig {
	return &TimingConfig{
		ALULatency:       1,
		BranchLatency:    1,
		JumpLatency:      1,
		LoadLatency:      2,
		StoreLatency:     1,
		CSRLatency:       1,
		MemoryBusyCycles: 0,
	}
}

// LoadConfig loads a TimingConfig from a JSON file. Fields missing from the
// file keep their default values.
func LoadConfig(path string) (*TimingConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read timing config file: %w", err)
	}

	config := DefaultTimingConfig()
	if err := json.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse timing config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid timing config %s: %w", path, err)
	}

	return config, nil
}

// SaveConfig writes a TimingConfig to a JSON file.
func (c *TimingConfig) SaveConfig(path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize timing config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write timing config file: %w", err)
	}

	return nil
}

// Validate rejects zero latencies. MemoryBusyCycles may be zero.
func (c *TimingConfig) Validate() error {
	fields := []struct {
		name  string
		value uint64
	}{
		{"alu_latency", c.ALULatency},
		{"branch_latency", c.BranchLatency},
		{"jump_latency", c.JumpLatency},
		{"load_latency", c.LoadLatency},
		{"store_latency", c.StoreLatency},
		{"csr_latency", c.CSRLatency},
	}

	for _, f := range fields {
		if f.value == 0 {
			return fmt.Errorf("%s must be > 0", f.name)
		}
	}

	return nil
}

// Clone returns a deep copy of the TimingConfig.
func (c *TimingConfig) Clone() *TimingConfig {
	clone := *c
	return &clone
}
