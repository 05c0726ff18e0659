package main

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/scholar/insts"
)

var _ = Describe("scholar", func() {
	var (
		tempDir string
		out     *bytes.Buffer
		state   *appState
	)

	run := func(args ...string) error {
		app := newApp(state)
		app.Writer = out
		app.ErrWriter = out
		return app.Run(append([]string{"scholar"}, args...))
	}

	writeRaw := func(words ...uint32) string {
		buf := make([]byte, 4*len(words))
		for i, w := range words {
			binary.LittleEndian.PutUint32(buf[4*i:], w)
		}

		path := filepath.Join(tempDir, "prog.bin")
		Expect(os.WriteFile(path, buf, 0644)).To(Succeed())
		return path
	}

	BeforeEach(func() {
		tempDir = GinkgoT().TempDir()
		out = &bytes.Buffer{}
		state = &appState{}
	})

	Describe("run", func() {
		It("should exit with a0 of a raw image", func() {
			path := writeRaw(insts.ADDI(10, 0, 42), insts.ECALL())

			Expect(run("run", "--raw", path)).To(Succeed())
			Expect(state.exitCode).To(Equal(42))
		})

		It("should give the same result on the akita engine", func() {
			path := writeRaw(insts.ADDI(10, 0, 7), insts.ADDI(10, 10, 1), insts.ECALL())

			Expect(run("run", "--raw", "--engine", path)).To(Succeed())
			Expect(state.exitCode).To(Equal(8))
		})

		It("should print statistics and counters", func() {
			path := writeRaw(insts.NOP(), insts.ECALL())

			Expect(run("run", "--raw", "--stats", "--dcache", path)).To(Succeed())
			Expect(out.String()).To(ContainSubstring("mcycle"))
			Expect(out.String()).To(ContainSubstring("mhpmcounter3"))
			Expect(out.String()).To(ContainSubstring("D-cache hits"))
		})

		It("should honour --base", func() {
			path := writeRaw(insts.AUIPC(10, 0), insts.ECALL())

			Expect(run("run", "--raw", "--base", "0x2000", path)).To(Succeed())
			Expect(state.exitCode).To(Equal(0x2000))
		})

		It("should run addr:word hex firmware from its lowest address", func() {
			path := filepath.Join(tempDir, "firmware.hex")
			text := fmt.Sprintf("00000100:%08x\n00000104:%08x\n00000200:0000002a\n",
				insts.LW(10, 0, 0x200), insts.ECALL())
			Expect(os.WriteFile(path, []byte(text), 0644)).To(Succeed())

			Expect(run("run", "--hex", "--xlen", "32", path)).To(Succeed())
			Expect(state.exitCode).To(Equal(42))
		})

		It("should start hex firmware at --base when given", func() {
			path := filepath.Join(tempDir, "firmware.hex")
			text := fmt.Sprintf("00000100:%08x\n00000104:%08x\n00000108:%08x\n",
				insts.ADDI(10, 0, 1), insts.ADDI(10, 0, 9), insts.ECALL())
			Expect(os.WriteFile(path, []byte(text), 0644)).To(Succeed())

			Expect(run("run", "--hex", "--base", "0x104", path)).To(Succeed())
			Expect(state.exitCode).To(Equal(9))
		})

		It("should reject --raw together with --hex", func() {
			path := writeRaw(insts.ECALL())

			Expect(run("run", "--raw", "--hex", path)).To(MatchError(ContainSubstring("mutually exclusive")))
		})

		It("should run RV32 images", func() {
			path := writeRaw(insts.ADDI(10, 0, -1), insts.ECALL())

			Expect(run("run", "--raw", "--xlen", "32", path)).To(Succeed())
			Expect(state.exitCode).To(Equal(-1))
		})

		It("should report the cycle limit", func() {
			path := writeRaw(insts.ADDI(10, 10, 1), insts.JAL(0, -4))

			err := run("run", "--raw", "--max-cycles", "50", path)
			Expect(err).To(MatchError(ContainSubstring("cycle limit")))
		})

		It("should load a timing configuration", func() {
			configPath := filepath.Join(tempDir, "timing.json")
			Expect(os.WriteFile(configPath, []byte(`{"load_latency": 5}`), 0644)).To(Succeed())
			path := writeRaw(
				insts.LD(5, 0, 0x100),
				insts.ADD(6, 5, 5),
				insts.CSRR(10, 0xB03),
				insts.ECALL(),
			)

			Expect(run("run", "--raw", "--timing", configPath, path)).To(Succeed())
			Expect(state.exitCode).To(Equal(4))
		})

		It("should reject a bad xlen", func() {
			path := writeRaw(insts.ECALL())

			Expect(run("run", "--raw", "--xlen", "128", path)).To(MatchError(ContainSubstring("unsupported xlen")))
		})

		It("should require a program", func() {
			Expect(run("run")).To(MatchError(ContainSubstring("exactly one program")))
		})

		It("should fail on a missing ELF file", func() {
			err := run("run", filepath.Join(tempDir, "missing.elf"))
			Expect(err).To(MatchError(ContainSubstring("failed to open")))
		})
	})

	Describe("decode", func() {
		It("should show control signals", func() {
			Expect(run("decode", "0x00a00513", "ffffffff")).To(Succeed())

			text := out.String()
			Expect(text).To(ContainSubstring("00a00513"))
			Expect(text).To(ContainSubstring("addi x10, x0, 10"))
			Expect(text).To(ContainSubstring("unknown 0xffffffff"))
			Expect(text).To(ContainSubstring("0x13"))
			Expect(text).To(ContainSubstring("0x7f"))
		})

		It("should reject a malformed word", func() {
			Expect(run("decode", "xyz")).To(MatchError(ContainSubstring("bad instruction word")))
		})

		It("should require a word", func() {
			Expect(run("decode")).To(HaveOccurred())
		})
	})

	Describe("bench", func() {
		It("should run selected benchmarks as CSV", func() {
			Expect(run("bench", "--format", "csv", "--only", "branch_loop")).To(Succeed())

			Expect(out.String()).To(HavePrefix("name,cycles,"))
			Expect(out.String()).To(ContainSubstring("branch_loop,32,32,"))
			Expect(state.exitCode).To(Equal(0))
		})

		It("should run all benchmarks on RV32", func() {
			Expect(run("bench", "--xlen", "32", "--format", "json")).To(Succeed())
			Expect(out.String()).To(ContainSubstring(`"xlen": 32`))
			Expect(state.exitCode).To(Equal(0))
		})

		It("should reject unknown benchmarks and formats", func() {
			Expect(run("bench", "--only", "nope")).To(MatchError(ContainSubstring("unknown benchmark")))
			Expect(run("bench", "--format", "xml")).To(MatchError(ContainSubstring("unknown format")))
		})
	})

	Describe("config", func() {
		It("should print the default configuration", func() {
			Expect(run("config", "default")).To(Succeed())
			Expect(out.String()).To(ContainSubstring(`"load_latency": 2`))
		})

		It("should save and check a configuration", func() {
			path := filepath.Join(tempDir, "timing.json")

			Expect(run("config", "default", "--out", path)).To(Succeed())
			Expect(run("config", "check", path)).To(Succeed())
			Expect(out.String()).To(ContainSubstring("ok:"))
		})

		It("should reject an invalid configuration", func() {
			path := filepath.Join(tempDir, "bad.json")
			Expect(os.WriteFile(path, []byte(`{"alu_latency": 0}`), 0644)).To(Succeed())

			Expect(run("config", "check", path)).To(MatchError(ContainSubstring("alu_latency")))
		})
	})
})
