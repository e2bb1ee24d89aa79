package codec

import (
	"errors"
	"fmt"
)

// The Shearwater native log is stored LRE-compressed in 144-byte blocks
// of 9-bit packed symbols, then obfuscated with a byte-wise XOR against
// the output 32 bytes back. Layout reverse-engineered; the vendor
// publishes no documentation for it.

const (
	// BlockSize is the fixed size of one compressed block.
	BlockSize = 144

	// xorStride is the self-reference distance of the XOR pass. It
	// matches RecordSize: each record is XORed against the previous one.
	xorStride = 32

	symbolBits = 9
	literalBit = 0x100
)

// ErrCorruptBlock marks a compressed stream this decoder cannot make
// sense of. The whole dive is unprocessable; other dives are unaffected.
var ErrCorruptBlock = errors.New("corrupt block")

// bitCursor reads 9-bit symbols from a block. Symbols are bit-packed
// with no byte alignment, so the cursor tracks an absolute bit position.
type bitCursor struct {
	data []byte
	pos  int // bits consumed so far
}

func (c *bitCursor) remaining() int {
	return len(c.data)*8 - c.pos
}

// next9 returns the next 9-bit symbol. Caller must check remaining()
// first; a symbol always spans two bytes of a full block.
func (c *bitCursor) next9() uint16 {
	byteIdx := c.pos / 8
	bitIdx := c.pos % 8
	raw := uint16(c.data[byteIdx])<<8 | uint16(c.data[byteIdx+1])
	c.pos += symbolBits
	return (raw >> (16 - bitIdx - symbolBits)) & 0x1FF
}

// decompressBlock decodes one 144-byte block. A symbol with the high
// bit set is a literal byte, zero is the end-of-block marker, anything
// else is a run of that many zero bytes. Bits after the marker are
// inert padding.
func decompressBlock(block []byte) ([]byte, error) {
	cur := bitCursor{data: block}
	var out []byte
	for cur.remaining() >= symbolBits {
		v := cur.next9()
		switch {
		case v&literalBit != 0:
			out = append(out, byte(v))
		case v == 0:
			if len(out) == 0 {
				return nil, fmt.Errorf("end marker before any output: %w", ErrCorruptBlock)
			}
			return out, nil
		default:
			out = append(out, make([]byte, v)...)
		}
	}
	return nil, fmt.Errorf("no end marker in block: %w", ErrCorruptBlock)
}

// deobfuscate reverses the XOR pass in place. Must run left to right:
// each byte depends on the already-decoded byte 32 back, not on the
// stored value.
func deobfuscate(buf []byte) {
	for i := xorStride; i < len(buf); i++ {
		buf[i] ^= buf[i-xorStride]
	}
}

// Decompress decodes a raw ZRAWDATA blob into the flat dive log.
func Decompress(raw []byte) ([]byte, error) {
	if len(raw) == 0 {
		return nil, fmt.Errorf("empty blob: %w", ErrCorruptBlock)
	}
	if len(raw)%BlockSize != 0 {
		return nil, fmt.Errorf("blob length %d is not a multiple of %d: %w",
			len(raw), BlockSize, ErrCorruptBlock)
	}

	var out []byte
	for i := 0; i < len(raw); i += BlockSize {
		decoded, err := decompressBlock(raw[i : i+BlockSize])
		if err != nil {
			return nil, fmt.Errorf("block %d: %w", i/BlockSize, err)
		}
		out = append(out, decoded...)
	}

	deobfuscate(out)
	return out, nil
}
