package codec

import "encoding/binary"

// RecordSize is the fixed span of one decoded record.
const RecordSize = 32

// Record is a read-only 32-byte view into the decoded log. Field
// interpretation belongs to the classifier and extractor; the scanner
// only exposes the tag and raw bytes.
type Record []byte

// Type returns the tag byte at offset 0.
func (r Record) Type() RecordType {
	return RecordType(r[0])
}

func (r Record) byteAt(off int) byte {
	return r[off]
}

func (r Record) int32At(off int) int32 {
	return int32(binary.BigEndian.Uint32(r[off : off+4]))
}

// ScanRecords walks the decoded log in 32-byte strides from offset 0.
// A trailing partial segment is not a record; it is dropped and
// reported via truncated so the caller can surface the condition.
func ScanRecords(log []byte) (recs []Record, truncated bool) {
	n := len(log) / RecordSize
	recs = make([]Record, 0, n)
	for i := 0; i < n; i++ {
		recs = append(recs, Record(log[i*RecordSize:(i+1)*RecordSize]))
	}
	return recs, len(log)%RecordSize != 0
}
