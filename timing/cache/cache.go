// Package cache models the timing of the L1 data cache that sits in front of
// the core's memory.
//
// Only tags, dirty bits and LRU order are tracked, in an Akita cache
// directory. Data lives in emu.Memory, which the load/store unit has already
// read or written by the time the cache is consulted, so the cache decides
// how long an access takes and never what it returns.
package cache

import (
	"fmt"

	akitacache "github.com/sarchlab/akita/v4/mem/cache"

	"github.com/sarchlab/scholar/insts"
)

// Config holds cache geometry and latencies.
type Config struct {
	Size          int    `json:"size"`
	Associativity int    `json:"associativity"`
	BlockSize     int    `json:"block_size"`
	HitLatency    uint64 `json:"hit_latency"`
	// MissLatency includes the fill from memory.
	MissLatency uint64 `json:"miss_latency"`
}

// DefaultL1DConfig returns a 16KB 4-way cache with 64B lines, a 2-cycle
// load-to-use hit and a 12-cycle miss.
func DefaultL1DConfig() Config {
	return Config{
		Size:          16 * 1024,
		Associativity: 4,
		BlockSize:     64,
		HitLatency:    2,
		MissLatency:   12,
	}
}

// NumSets returns the number of sets the geometry describes.
func (c Config) NumSets() int {
	return c.Size / (c.Associativity * c.BlockSize)
}

// Validate checks that the geometry describes at least one full set.
func (c Config) Validate() error {
	if c.BlockSize <= 0 || c.Associativity <= 0 {
		return fmt.Errorf("cache block size and associativity must be > 0")
	}
	if c.Size < c.BlockSize*c.Associativity || c.Size%(c.BlockSize*c.Associativity) != 0 {
		return fmt.Errorf("cache size %d is not a multiple of %d-way %dB sets",
			c.Size, c.Associativity, c.BlockSize)
	}
	if c.HitLatency == 0 || c.MissLatency < c.HitLatency {
		return fmt.Errorf("cache latencies must satisfy 0 < hit <= miss")
	}
	return nil
}

// StoreForwardLatency is added to a load hit that reads exactly the address
// written by the most recent store.
const StoreForwardLatency uint64 = 1

// AccessResult describes the timing outcome of one access.
type AccessResult struct {
	Hit     bool
	Latency uint64

	// Evicted is set when the fill displaced a valid line.
	Evicted     bool
	EvictedAddr uint64
	// Writeback is set when the displaced line was dirty.
	Writeback bool
}

// Statistics holds cache performance statistics.
type Statistics struct {
	Reads      uint64 `json:"reads"`
	Writes     uint64 `json:"writes"`
	Hits       uint64 `json:"hits"`
	Misses     uint64 `json:"misses"`
	Evictions  uint64 `json:"evictions"`
	Writebacks uint64 `json:"writebacks"`
}

// HitRate returns hits over all accesses, or 0 before the first access.
func (s Statistics) HitRate() float64 {
	total := s.Hits + s.Misses
	if total == 0 {
		return 0
	}
	return float64(s.Hits) / float64(total)
}

// Cache is a write-back, write-allocate, LRU data cache timing model.
type Cache struct {
	config    Config
	directory *akitacache.DirectoryImpl
	stats     Statistics

	lastStoreAddr  uint64
	lastStoreValid bool
}

// New creates an empty cache. It panics if the configuration is invalid.
func New(config Config) *Cache {
	if err := config.Validate(); err != nil {
		panic(err)
	}

	return &Cache{
		config: config,
		directory: akitacache.NewDirectory(
			config.NumSets(),
			config.Associativity,
			config.BlockSize,
			akitacache.NewLRUVictimFinder(),
		),
	}
}

// Config returns the cache configuration.
func (c *Cache) Config() Config {
	return c.config
}

// Stats returns cache statistics.
func (c *Cache) Stats() Statistics {
	return c.stats
}

// ResetStats clears cache statistics.
func (c *Cache) ResetStats() {
	c.stats = Statistics{}
}

func (c *Cache) blockAddr(addr uint64) uint64 {
	size := uint64(c.config.BlockSize)
	return addr / size * size
}

func (c *Cache) lookup(addr uint64) *akitacache.Block {
	block := c.directory.Lookup(0, c.blockAddr(addr))
	if block == nil || !block.IsValid {
		return nil
	}
	return block
}

// Contains reports whether the line holding addr is resident.
func (c *Cache) Contains(addr uint64) bool {
	return c.lookup(addr) != nil
}

// Access runs the timing of a decoded memory operation at addr. Idle
// operations do not touch the cache.
func (c *Cache) Access(op insts.MemOp, addr uint64) AccessResult {
	switch {
	case op.IsRead():
		return c.read(addr)
	case op.IsWrite():
		return c.write(addr)
	default:
		return AccessResult{}
	}
}

func (c *Cache) read(addr uint64) AccessResult {
	c.stats.Reads++

	forwarded := c.lastStoreValid && c.lastStoreAddr == addr
	c.lastStoreValid = false

	if block := c.lookup(addr); block != nil {
		c.stats.Hits++
		c.directory.Visit(block)

		latency := c.config.HitLatency
		if forwarded {
			latency += StoreForwardLatency
		}
		return AccessResult{Hit: true, Latency: latency}
	}

	c.stats.Misses++
	return c.fill(addr, false)
}

func (c *Cache) write(addr uint64) AccessResult {
	c.stats.Writes++
	c.lastStoreAddr = addr
	c.lastStoreValid = true

	if block := c.lookup(addr); block != nil {
		c.stats.Hits++
		c.directory.Visit(block)
		block.IsDirty = true
		return AccessResult{Hit: true, Latency: c.config.HitLatency}
	}

	c.stats.Misses++
	return c.fill(addr, true)
}

// fill allocates the line holding addr, displacing the LRU way of its set.
func (c *Cache) fill(addr uint64, dirty bool) AccessResult {
	result := AccessResult{Latency: c.config.MissLatency}

	tag := c.blockAddr(addr)
	victim := c.directory.FindVictim(tag)
	if victim == nil {
		return result
	}

	if victim.IsValid {
		c.stats.Evictions++
		result.Evicted = true
		result.EvictedAddr = victim.Tag

		if victim.IsDirty {
			c.stats.Writebacks++
			result.Writeback = true
		}
	}

	victim.Tag = tag
	victim.IsValid = true
	victim.IsDirty = dirty
	c.directory.Visit(victim)

	return result
}

// Invalidate drops the line holding addr without writing it back.
func (c *Cache) Invalidate(addr uint64) {
	if block := c.lookup(addr); block != nil {
		block.IsValid = false
		block.IsDirty = false
	}
}

// Flush invalidates every line and returns how many of them were dirty.
func (c *Cache) Flush() int {
	dirty := 0
	for _, set := range c.directory.GetSets() {
		for _, block := range set.Blocks {
			if block.IsValid && block.IsDirty {
				dirty++
			}
			block.IsValid = false
			block.IsDirty = false
		}
	}

	c.stats.Writebacks += uint64(dirty)
	return dirty
}

// Reset invalidates all lines and clears the statistics.
func (c *Cache) Reset() {
	c.directory.Reset()
	c.stats = Statistics{}
	c.lastStoreValid = false
	c.lastStoreAddr = 0
}
