package loader

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/sarchlab/scholar/emu"
)

// HexWord is one "addr:word" line of a hex firmware image. Size is the word
// width in bytes, taken from the number of hex digits.
type HexWord struct {
	Addr  uint64
	Value uint64
	Size  int
}

// HexImage is a firmware image in the "addr:word" text format. Words are
// written most significant digit first and stored little-endian.
type HexImage struct {
	Words []HexWord
}

// LoadHex reads a hex firmware image from a file.
func LoadHex(path string) (*HexImage, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open hex image: %w", err)
	}
	defer func() { _ = f.Close() }()

	return ParseHex(f)
}

// ParseHex parses "addr:word" lines. Blank lines and lines starting with #
// are ignored.
func ParseHex(r io.Reader) (*HexImage, error) {
	img := &HexImage{}
	scanner := bufio.NewScanner(r)

	for lineNo := 1; scanner.Scan(); lineNo++ {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		w, err := parseHexLine(line)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}
		img.Words = append(img.Words, w)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read hex image: %w", err)
	}

	return img, nil
}

func parseHexLine(line string) (HexWord, error) {
	addrText, wordText, ok := strings.Cut(line, ":")
	if !ok {
		return HexWord{}, fmt.Errorf("expected addr:word, got %q", line)
	}

	addr, err := strconv.ParseUint(strings.TrimSpace(addrText), 16, 64)
	if err != nil {
		return HexWord{}, fmt.Errorf("bad address %q: %w", addrText, err)
	}

	wordText = strings.TrimSpace(wordText)
	size := len(wordText) / 2
	if len(wordText)%2 != 0 || (size != 1 && size != 2 && size != 4 && size != 8) {
		return HexWord{}, fmt.Errorf("word %q must be 1, 2, 4 or 8 bytes", wordText)
	}

	value, err := strconv.ParseUint(wordText, 16, 64)
	if err != nil {
		return HexWord{}, fmt.Errorf("bad word %q: %w", wordText, err)
	}

	return HexWord{Addr: addr, Value: value, Size: size}, nil
}

// LowestAddr returns the smallest address in the image, or 0 when empty.
func (h *HexImage) LowestAddr() uint64 {
	if len(h.Words) == 0 {
		return 0
	}

	lowest := h.Words[0].Addr
	for _, w := range h.Words[1:] {
		lowest = min(lowest, w.Addr)
	}
	return lowest
}

// LoadIntoMemory writes every word into mem.
func (h *HexImage) LoadIntoMemory(mem *emu.Memory) {
	for _, w := range h.Words {
		switch w.Size {
		case 1:
			mem.Write8(w.Addr, uint8(w.Value))
		case 2:
			mem.Write16(w.Addr, uint16(w.Value))
		case 4:
			mem.Write32(w.Addr, uint32(w.Value))
		case 8:
			mem.Write64(w.Addr, w.Value)
		}
	}
}
