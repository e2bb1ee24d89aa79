// Package dispatcher drives one backfill run: decode every candidate
// blob, geocode the hits, and apply (or report) the updates in dive
// order.
package dispatcher

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"gps-backfill/internal/geocode"
	"gps-backfill/internal/observability"
	"gps-backfill/internal/pipeline"
	"gps-backfill/internal/store"
	"gps-backfill/internal/utilities"
)

type Dispatcher struct {
	DB      *store.DB
	Geo     *geocode.Client // nil disables reverse geocoding
	Log     *slog.Logger
	DryRun  bool
	Workers int
}

type Summary struct {
	Updated int // sites created (or would be, in dry-run)
	Skipped int // no GPS data to extract
	Failed  int // corrupt or inconsistent raw data
}

// Run processes every candidate dive. Per-dive failures never abort the
// run; they are logged, counted and skipped.
func (d *Dispatcher) Run(ctx context.Context) (Summary, error) {
	siteEnt, err := d.DB.DiveSiteEntity()
	if err != nil {
		return Summary{}, err
	}

	cands, err := d.DB.Candidates()
	if err != nil {
		return Summary{}, fmt.Errorf("candidate query: %w", err)
	}
	if len(cands) == 0 {
		d.Log.Info("no Shearwater dives found with missing GPS")
		return Summary{}, nil
	}
	d.Log.Info("found candidate dives", "count", len(cands))

	results := d.decodeAll(cands)

	var sum Summary
	for i, c := range cands {
		observability.DivesScanned.Inc()
		res := results[i]
		observability.DiveOutcomes.WithLabelValues(res.Outcome.String()).Inc()
		if res.Truncated {
			observability.TruncatedLogs.Inc()
			d.Log.Warn("decoded log has a trailing partial record", "dive", c.Label())
		}

		switch res.Outcome {
		case pipeline.OutcomeExtracted:
			if err := d.apply(ctx, c, siteEnt, res); err != nil {
				d.Log.Error("apply failed", "dive", c.Label(), "error", err)
				sum.Failed++
				continue
			}
			sum.Updated++

		case pipeline.OutcomeNotGpsCapable:
			d.Log.Info("no Swift AI GPS in raw data, skipped",
				"dive", c.Label(), "mode", res.Mode.String())
			sum.Skipped++

		case pipeline.OutcomeAlreadyHasGps:
			d.Log.Info("dive site already has GPS, skipped", "dive", c.Label())
			sum.Skipped++

		default:
			// corrupt block, missing record, implausible coordinate
			d.Log.Warn("raw data unusable",
				"dive", c.Label(), "outcome", res.Outcome.String(), "error", res.Err)
			sum.Failed++
		}
	}
	return sum, nil
}

// decodeAll runs the pure pipeline over every candidate with a small
// worker pool. Dives are independent, so order of execution does not
// matter; results land at the candidate's index.
func (d *Dispatcher) decodeAll(cands []store.Candidate) []pipeline.Result {
	workers := d.Workers
	if workers < 1 {
		workers = 1
	}
	if workers > len(cands) {
		workers = len(cands)
	}

	results := make([]pipeline.Result, len(cands))
	jobs := make(chan int)
	var wg sync.WaitGroup

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				start := time.Now()
				// The candidate query already filters out dives whose
				// site has GPS, so the idempotency flag is false here.
				results[i] = pipeline.Process(cands[i].RawData, false)
				observability.ObserveDecodeLatency(start)
			}
		}()
	}
	for i := range cands {
		jobs <- i
	}
	close(jobs)
	wg.Wait()
	return results
}

func (d *Dispatcher) apply(ctx context.Context, c store.Candidate, siteEnt int64, res pipeline.Result) error {
	var place geocode.Place
	if d.Geo != nil {
		p, err := d.Geo.Reverse(ctx, res.Entry.Lat, res.Entry.Lon)
		if err != nil {
			// Place names are a nicety; the coordinates still land.
			d.Log.Warn("reverse geocoding failed", "dive", c.Label(), "error", err)
		} else {
			place = p
		}
	}

	gpsText := GPSText(res.Entry, res.Exit, place)

	if d.DryRun {
		d.Log.Info("would update", "dive", c.Label(), "gps", gpsText)
		observability.DivesUpdated.Inc()
		return nil
	}

	newNotes := AppendNotes(c.Notes, gpsText)
	sitePlace := store.SitePlace{
		Country:  place.Country,
		Location: place.Location,
		Water:    place.Water,
	}
	if err := d.DB.ApplyGPS(c, siteEnt, res.Entry.Lat, res.Entry.Lon, sitePlace, newNotes); err != nil {
		return err
	}

	observability.DivesUpdated.Inc()
	utilities.AppendAudit("BACKFILL", c.Label()+": "+gpsText)
	d.Log.Info("updated", "dive", c.Label(), "gps", gpsText)
	return nil
}
