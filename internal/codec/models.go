package codec

import "fmt"

// RecordType is the tag byte at offset 0 of every 32-byte record.
type RecordType byte

const (
	// RecOpening4 carries dive setup, including the AI transmitter mode.
	RecOpening4 RecordType = 0x14
	// RecOpening9 carries the entry GPS fix.
	RecOpening9 RecordType = 0x19
	// RecClosing9 carries the exit GPS fix.
	RecClosing9 RecordType = 0x29
)

func (t RecordType) String() string {
	switch t {
	case RecOpening4:
		return "opening_record_4"
	case RecOpening9:
		return "opening_record_9"
	case RecClosing9:
		return "closing_record_9"
	default:
		return fmt.Sprintf("record_0x%02x", byte(t))
	}
}

// TransmitterMode is the AI mode byte from opening record 4. Values not
// in the table below have been seen in the wild; they decode to
// themselves and String() reports them as unknown.
type TransmitterMode byte

const (
	ModeOff     TransmitterMode = 0
	ModeHPCCR   TransmitterMode = 4
	ModeAIOn    TransmitterMode = 5
	ModeAIOnGPS TransmitterMode = 6
)

// GPSCapable reports whether this mode authorizes coordinate extraction.
func (m TransmitterMode) GPSCapable() bool {
	return m == ModeAIOnGPS
}

func (m TransmitterMode) String() string {
	switch m {
	case ModeOff:
		return "off"
	case ModeHPCCR:
		return "hp_ccr"
	case ModeAIOn:
		return "ai_on"
	case ModeAIOnGPS:
		return "ai_on_gps"
	default:
		return fmt.Sprintf("unknown(%d)", byte(m))
	}
}

// GeoFix is a decoded coordinate pair in decimal degrees. The source
// values are fixed-point with a 100000 divisor, so the useful precision
// is 5 decimals (~1.1 m).
type GeoFix struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Plausible reports whether the fix is within Earth coordinate bounds.
func (f GeoFix) Plausible() bool {
	if f.Lat < -90 || f.Lat > 90 {
		return false
	}
	if f.Lon < -180 || f.Lon > 180 {
		return false
	}
	return true
}

func (f GeoFix) String() string {
	return fmt.Sprintf("%.5f, %.5f", f.Lat, f.Lon)
}
