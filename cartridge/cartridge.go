package cartridge

import (
	"errors"
	"fmt"
	"io"
	"os"
)

// Bank sizes fixed by the iNES container format.
const (
	HeaderSize     = 10
	TrainerSize    = 512
	PRGBankSize    = 16 * 1024
	CHRBankSize    = 8 * 1024
	PlayChoiceSize = 8 * 1024
)

// ErrFormat reports a malformed iNES container. Loading errors are
// recoverable values: a bad file never corrupts partially-loaded state and
// never brings down the caller.
var ErrFormat = errors.New("invalid iNES format")

var magic = [4]byte{'N', 'E', 'S', 0x1A}

// Mirroring is the nametable arrangement requested by the cartridge.
type Mirroring byte

const (
	MirrorHorizontal Mirroring = iota
	MirrorVertical
)

func (m Mirroring) String() string {
	switch m {
	case MirrorHorizontal:
		return "horizontal"
	case MirrorVertical:
		return "vertical"
	}
	return fmt.Sprintf("Mirroring(%d)", byte(m))
}

// Header flag 6 bits.
const (
	flag6Mirroring        = 0b0000_0001
	flag6PersistentMemory = 0b0000_0010
	flag6Trainer          = 0b0000_0100
	flag6IgnoreMirroring  = 0b0000_1000
	flag6MapperLower      = 0b1111_0000
)

// Header flag 7 bits.
const (
	flag7VSUnisystem  = 0b0000_0001
	flag7PlayChoice10 = 0b0000_0010
	flag7NES2Format   = 0b0000_1100
	flag7MapperUpper  = 0b1111_0000
)

// Header is the fixed 10-byte iNES header. Fields are extracted at explicit
// byte offsets; nothing here depends on in-memory struct layout.
type Header struct {
	PRGBanks    byte
	CHRBanks    byte
	Flag6       byte
	Flag7       byte
	PRGRAMBanks byte
	Flag9       byte
}

// ReadHeader reads and validates the container header. The magic signature
// must match before anything else is trusted.
func ReadHeader(r io.Reader) (Header, error) {
	var buf [HeaderSize]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return Header{}, fmt.Errorf("%w: truncated header: %v", ErrFormat, err)
	}

	if [4]byte(buf[0:4]) != magic {
		return Header{}, fmt.Errorf("%w: bad magic signature % X", ErrFormat, buf[0:4])
	}

	return Header{
		PRGBanks:    buf[4],
		CHRBanks:    buf[5],
		Flag6:       buf[6],
		Flag7:       buf[7],
		PRGRAMBanks: buf[8],
		Flag9:       buf[9],
	}, nil
}

// HasTrainer reports whether a 512-byte trainer block precedes the PRG banks.
func (h Header) HasTrainer() bool {
	return h.Flag6&flag6Trainer != 0
}

// HasPersistentMemory reports whether the cartridge carries battery-backed RAM.
func (h Header) HasPersistentMemory() bool {
	return h.Flag6&flag6PersistentMemory != 0
}

// HasPlayChoice10 reports whether a PlayChoice-10 block follows the CHR banks.
func (h Header) HasPlayChoice10() bool {
	return h.Flag7&flag7PlayChoice10 != 0
}

// HasVSUnisystem reports the VS Unisystem bit.
func (h Header) HasVSUnisystem() bool {
	return h.Flag7&flag7VSUnisystem != 0
}

// IsNES2 reports whether the container declares the NES 2.0 format revision.
func (h Header) IsNES2() bool {
	return h.Flag7&flag7NES2Format == 0b1000
}

// Mirroring returns the nametable mirroring mode.
func (h Header) Mirroring() Mirroring {
	if h.Flag6&flag6Mirroring == 0 {
		return MirrorHorizontal
	}
	return MirrorVertical
}

// IgnoreMirroring reports the four-screen override bit.
func (h Header) IgnoreMirroring() bool {
	return h.Flag6&flag6IgnoreMirroring != 0
}

// Mapper assembles the mapper number from its two header nibbles: the high
// nibble of flag 7 and the high nibble of flag 6.
func (h Header) Mapper() byte {
	return h.Flag7&flag7MapperUpper | (h.Flag6&flag6MapperLower)>>4
}

// ROM is a fully loaded cartridge container: the header plus every bank,
// pre-sliced and immutable. The bus is seeded from these copies; the core
// never reads the container on the hot path.
type ROM struct {
	Header       Header
	Trainer      []byte
	PRGBanks     [][]byte
	CHRBanks     [][]byte
	PlayChoice10 []byte
}

// Load parses an iNES image from r. Banks are read in container order:
// trainer (if flagged), PRG banks, CHR banks, PlayChoice-10 block (if
// flagged). Every bank must be present at its full fixed size.
func Load(r io.Reader) (*ROM, error) {
	header, err := ReadHeader(r)
	if err != nil {
		return nil, err
	}

	rom := &ROM{Header: header}

	if header.HasTrainer() {
		if rom.Trainer, err = readBank(r, "trainer", TrainerSize); err != nil {
			return nil, err
		}
	}

	for i := 0; i < int(header.PRGBanks); i++ {
		bank, err := readBank(r, "PRG", PRGBankSize)
		if err != nil {
			return nil, err
		}
		rom.PRGBanks = append(rom.PRGBanks, bank)
	}

	for i := 0; i < int(header.CHRBanks); i++ {
		bank, err := readBank(r, "CHR", CHRBankSize)
		if err != nil {
			return nil, err
		}
		rom.CHRBanks = append(rom.CHRBanks, bank)
	}

	if header.HasPlayChoice10() {
		if rom.PlayChoice10, err = readBank(r, "PlayChoice-10", PlayChoiceSize); err != nil {
			return nil, err
		}
	}

	return rom, nil
}

// Open loads an iNES image from a .nes file.
func Open(path string) (*ROM, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	return Load(file)
}

// PRGBank returns the program bank at index, or nil when out of range.
func (r *ROM) PRGBank(index int) []byte {
	if index < 0 || index >= len(r.PRGBanks) {
		return nil
	}
	return r.PRGBanks[index]
}

// CHRBank returns the graphics bank at index, or nil when out of range.
func (r *ROM) CHRBank(index int) []byte {
	if index < 0 || index >= len(r.CHRBanks) {
		return nil
	}
	return r.CHRBanks[index]
}

func readBank(r io.Reader, name string, size int) ([]byte, error) {
	bank := make([]byte, size)
	if _, err := io.ReadFull(r, bank); err != nil {
		return nil, fmt.Errorf("%w: truncated %s bank: %v", ErrFormat, name, err)
	}
	return bank, nil
}
