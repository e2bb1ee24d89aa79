// Package codectest builds Shearwater-format compressed blobs for
// tests: the inverse of the production decoder (XOR obfuscation, then
// LRE encoding into 144-byte blocks of 9-bit packed symbols).
package codectest

const (
	blockSize  = 144
	xorStride  = 32
	symbolBits = 9
)

// blockWriter packs 9-bit symbols into a fixed 144-byte block.
type blockWriter struct {
	buf [blockSize]byte
	pos int // bits written
}

func (w *blockWriter) fits(n int) bool {
	return w.pos+n*symbolBits <= blockSize*8
}

func (w *blockWriter) put9(v uint16) {
	for i := symbolBits - 1; i >= 0; i-- {
		if v&(1<<i) != 0 {
			w.buf[w.pos/8] |= 1 << (7 - w.pos%8)
		}
		w.pos++
	}
}

// Obfuscate applies the forward XOR pass: each output byte is the
// plaintext byte XORed with the plaintext 32 bytes back. The production
// decoder's in-place left-to-right pass inverts it exactly.
func Obfuscate(plain []byte) []byte {
	out := make([]byte, len(plain))
	copy(out, plain)
	for i := len(out) - 1; i >= xorStride; i-- {
		out[i] ^= out[i-xorStride]
	}
	return out
}

// EncodeLRE packs bytes into 144-byte blocks: literals as 0x100|b,
// zero runs as their length, a zero symbol to close each block. Runs
// longer than 255 are split so they stay within one symbol.
func EncodeLRE(data []byte) []byte {
	var blocks []byte
	w := &blockWriter{}

	flush := func() {
		w.put9(0)
		blocks = append(blocks, w.buf[:]...)
		w = &blockWriter{}
	}

	i := 0
	for i < len(data) {
		if data[i] == 0 {
			run := 0
			for i+run < len(data) && data[i+run] == 0 && run < 0xFF {
				run++
			}
			// leave room for the end marker of this block
			if !w.fits(2) {
				flush()
			}
			w.put9(uint16(run))
			i += run
			continue
		}
		if !w.fits(2) {
			flush()
		}
		w.put9(0x100 | uint16(data[i]))
		i++
	}
	flush()
	return blocks
}

// Compress is the full inverse pipeline: obfuscate, then LRE-encode.
// Decompressing the result yields data exactly.
func Compress(data []byte) []byte {
	return EncodeLRE(Obfuscate(data))
}
