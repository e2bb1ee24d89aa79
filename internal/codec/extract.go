package codec

import (
	"errors"
	"fmt"
)

// Record 9 layout: fixed-point coordinates, big-endian, signed.
const (
	latOffset = 21
	lonOffset = 25

	coordDivisor = 100000.0
)

var (
	// ErrMissingGPSRecord means the transmitter reported AI-On-GPS but
	// an entry or exit GPS record is absent (or holds the no-fix
	// sentinel). Distinct from "not capable" so operators can tell
	// "no transmitter" from "transmitter present but data unreadable".
	ErrMissingGPSRecord = errors.New("missing gps record")

	// ErrImplausibleCoordinate means a decoded fix is outside Earth
	// bounds. Silent corruption is worse than a visible skip.
	ErrImplausibleCoordinate = errors.New("implausible coordinate")
)

// decodeFix reads the coordinate pair of a record 9. ok is false for
// the (0,0) and (-1,-1) sentinels the firmware writes when the fix was
// never acquired.
func decodeFix(r Record) (GeoFix, bool) {
	lat := r.int32At(latOffset)
	lon := r.int32At(lonOffset)
	if (lat == 0 && lon == 0) || (lat == -1 && lon == -1) {
		return GeoFix{}, false
	}
	return GeoFix{
		Lat: float64(lat) / coordDivisor,
		Lon: float64(lon) / coordDivisor,
	}, true
}

// ExtractFixes locates the entry (opening record 9) and exit (closing
// record 9) fixes. The first record of each tag wins; behavior on GPS
// reacquisition mid-dive is undocumented, so the fix closest to the
// dive start is used.
func ExtractFixes(recs []Record) (entry, exit GeoFix, err error) {
	var haveEntry, haveExit bool
	for _, r := range recs {
		switch r.Type() {
		case RecOpening9:
			if !haveEntry {
				entry, haveEntry = decodeFix(r)
			}
		case RecClosing9:
			if !haveExit {
				exit, haveExit = decodeFix(r)
			}
		}
	}

	if !haveEntry {
		return GeoFix{}, GeoFix{}, fmt.Errorf("no entry fix: %w", ErrMissingGPSRecord)
	}
	if !haveExit {
		return GeoFix{}, GeoFix{}, fmt.Errorf("no exit fix: %w", ErrMissingGPSRecord)
	}
	if !entry.Plausible() {
		return GeoFix{}, GeoFix{}, fmt.Errorf("entry %s: %w", entry, ErrImplausibleCoordinate)
	}
	if !exit.Plausible() {
		return GeoFix{}, GeoFix{}, fmt.Errorf("exit %s: %w", exit, ErrImplausibleCoordinate)
	}
	return entry, exit, nil
}
