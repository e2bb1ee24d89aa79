package dispatcher

import (
	"fmt"
	"strings"

	"gps-backfill/internal/codec"
	"gps-backfill/internal/geocode"
)

const notesTag = "[Swift AI GPS]"

// GPSText renders the human-readable line appended to the dive's notes,
// e.g. "Suva, Fiji — Entry: -17.85270, 177.18138 / Exit: ...".
func GPSText(entry, exit codec.GeoFix, place geocode.Place) string {
	text := fmt.Sprintf("Entry: %s / Exit: %s", entry, exit)

	var parts []string
	for _, p := range []string{place.Location, place.Country} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	if len(parts) > 0 {
		text = strings.Join(parts, ", ") + " — " + text
	}
	return text
}

// AppendNotes adds the tagged GPS line to the dive's existing notes,
// separated by a blank line when notes already exist.
func AppendNotes(existing, gpsText string) string {
	line := notesTag + " " + gpsText
	if existing == "" {
		return line
	}
	return existing + "\n\n" + line
}
