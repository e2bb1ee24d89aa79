package codec

// Opening record 4 layout (the two fields this tool needs).
const (
	logVersionOffset = 16
	modeOffset       = 28

	// minGPSLogVersion is the first log version that carries the AI
	// mode byte at offset 28. Older logs reuse those bytes.
	minGPSLogVersion = 7
)

// Classify finds the opening record 4 and reads the transmitter mode.
// ok is false when no usable mode exists: no such record, or a log
// version too old to carry the mode byte. An unrecognized mode value is
// still ok=true; the caller decides what to do with it.
//
// A dive is expected to carry exactly one opening record 4. Should a
// log carry more, the first one wins.
func Classify(recs []Record) (mode TransmitterMode, ok bool) {
	for _, r := range recs {
		if r.Type() != RecOpening4 {
			continue
		}
		if r.byteAt(logVersionOffset) < minGPSLogVersion {
			return 0, false
		}
		return TransmitterMode(r.byteAt(modeOffset)), true
	}
	return 0, false
}
