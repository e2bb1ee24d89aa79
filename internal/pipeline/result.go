package pipeline

import "gps-backfill/internal/codec"

// Outcome tags a per-dive decode result. Exactly one applies; callers
// switch on it and cannot mistake "not capable" for an extraction error.
type Outcome int

const (
	// OutcomeExtracted means both fixes decoded and passed validation.
	OutcomeExtracted Outcome = iota
	// OutcomeNotGpsCapable is the common case: no AI-On-GPS transmitter.
	OutcomeNotGpsCapable
	// OutcomeAlreadyHasGps means the dive site already has a fix; the
	// blob was never touched.
	OutcomeAlreadyHasGps
	// OutcomeCorruptBlock means the compressed stream is unreadable.
	OutcomeCorruptBlock
	// OutcomeMissingGpsRecord means a GPS-capable dive lacks an entry
	// or exit record 9.
	OutcomeMissingGpsRecord
	// OutcomeImplausibleCoordinate means a fix decoded outside Earth
	// bounds.
	OutcomeImplausibleCoordinate
)

func (o Outcome) String() string {
	switch o {
	case OutcomeExtracted:
		return "extracted"
	case OutcomeNotGpsCapable:
		return "not_gps_capable"
	case OutcomeAlreadyHasGps:
		return "already_has_gps"
	case OutcomeCorruptBlock:
		return "corrupt_block"
	case OutcomeMissingGpsRecord:
		return "missing_gps_record"
	case OutcomeImplausibleCoordinate:
		return "implausible_coordinate"
	default:
		return "unknown"
	}
}

// Result is the unit handed to the persistence side. Entry and Exit are
// meaningful only when Outcome is OutcomeExtracted.
type Result struct {
	Outcome Outcome
	Entry   codec.GeoFix
	Exit    codec.GeoFix

	// Mode is the classified transmitter mode, when classification ran.
	Mode codec.TransmitterMode

	// Truncated reports a trailing partial record in the decoded log.
	// Records before the truncation point were still used.
	Truncated bool

	// Err carries detail for the error outcomes.
	Err error
}
