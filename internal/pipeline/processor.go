// Package pipeline turns one compressed dive blob into a backfill
// decision. It is pure computation: no I/O, no shared state, safe to
// run one goroutine per dive.
package pipeline

import (
	"errors"

	"gps-backfill/internal/codec"
)

// Process runs decompress → scan → classify → extract for one dive.
// alreadyHasGps is the idempotency flag owned by the persistence side;
// when set, the blob is not decompressed at all.
func Process(blob []byte, alreadyHasGps bool) Result {
	if alreadyHasGps {
		return Result{Outcome: OutcomeAlreadyHasGps}
	}

	decoded, err := codec.Decompress(blob)
	if err != nil {
		return Result{Outcome: OutcomeCorruptBlock, Err: err}
	}

	recs, truncated := codec.ScanRecords(decoded)
	res := Result{Truncated: truncated}

	mode, ok := codec.Classify(recs)
	res.Mode = mode
	if !ok || !mode.GPSCapable() {
		// Unknown modes land here too: fail open to "skip", never to
		// "extract with unknown state".
		res.Outcome = OutcomeNotGpsCapable
		return res
	}

	entry, exit, err := codec.ExtractFixes(recs)
	if err != nil {
		res.Err = err
		switch {
		case errors.Is(err, codec.ErrImplausibleCoordinate):
			res.Outcome = OutcomeImplausibleCoordinate
		default:
			res.Outcome = OutcomeMissingGpsRecord
		}
		return res
	}

	res.Outcome = OutcomeExtracted
	res.Entry = entry
	res.Exit = exit
	return res
}
