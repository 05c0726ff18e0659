package loader_test

import (
	"os"
	"path/filepath"
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/scholar/emu"
	"github.com/sarchlab/scholar/loader"
)

var _ = Describe("Hex images", func() {
	It("should parse code and data words of mixed widths", func() {
		img, err := loader.ParseHex(strings.NewReader(
			"00001000:00a00513\n" +
				"\n" +
				"# data\n" +
				"0000000000002000:1122334455667788\n" +
				"00003000:ab\n",
		))

		Expect(err).NotTo(HaveOccurred())
		Expect(img.Words).To(Equal([]loader.HexWord{
			{Addr: 0x1000, Value: 0x00a00513, Size: 4},
			{Addr: 0x2000, Value: 0x1122334455667788, Size: 8},
			{Addr: 0x3000, Value: 0xab, Size: 1},
		}))
		Expect(img.LowestAddr()).To(Equal(uint64(0x1000)))
	})

	It("should store words little-endian", func() {
		img, err := loader.ParseHex(strings.NewReader("1000:00a00513\n2000:1122334455667788\n"))
		Expect(err).NotTo(HaveOccurred())

		mem := emu.NewMemory()
		img.LoadIntoMemory(mem)

		Expect(mem.Read8(0x1000)).To(Equal(uint8(0x13)))
		Expect(mem.Read32(0x1000)).To(Equal(uint32(0x00a00513)))
		Expect(mem.Read8(0x2000)).To(Equal(uint8(0x88)))
		Expect(mem.Read64(0x2000)).To(Equal(uint64(0x1122334455667788)))
	})

	It("should report the line of a malformed entry", func() {
		_, err := loader.ParseHex(strings.NewReader("1000:00a00513\nnot a word\n"))
		Expect(err).To(MatchError(ContainSubstring("line 2")))

		_, err = loader.ParseHex(strings.NewReader("1000:abc\n"))
		Expect(err).To(MatchError(ContainSubstring("1, 2, 4 or 8 bytes")))

		_, err = loader.ParseHex(strings.NewReader("zz:00000013\n"))
		Expect(err).To(MatchError(ContainSubstring("bad address")))
	})

	It("should load from a file", func() {
		path := filepath.Join(GinkgoT().TempDir(), "firmware.hex")
		Expect(os.WriteFile(path, []byte("2000:00000073\n"), 0644)).To(Succeed())

		img, err := loader.LoadHex(path)
		Expect(err).NotTo(HaveOccurred())
		Expect(img.Words).To(HaveLen(1))

		_, err = loader.LoadHex(filepath.Join(GinkgoT().TempDir(), "missing.hex"))
		Expect(err).To(HaveOccurred())
	})
})
