package rules

import (
	"context"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/heinrichnel/fleetops/internal/db"
	"github.com/heinrichnel/fleetops/internal/models"
)

// DieselCostCategory is the category of cost entries derived from diesel
// records.
const DieselCostCategory = "Diesel"

// DieselReference is the reference number stamped on a diesel-derived cost
// entry.
func DieselReference(dieselID string) string {
	return "FUEL-" + dieselID
}

// syntheticDieselCost builds the cost entry that mirrors a diesel purchase
// on its linked trip. Fuel is bought in rand regardless of the trip's
// revenue currency.
func (e *Engine) syntheticDieselCost(rec models.DieselConsumptionRecord, tripID string) models.CostEntry {
	return models.CostEntry{
		ID:              "C" + e.newID(),
		TripID:          tripID,
		Category:        DieselCostCategory,
		SubCategory:     fmt.Sprintf("%s - %s", rec.FuelStation, rec.FleetNumber),
		Amount:          rec.TotalCost,
		Currency:        models.CurrencyZAR,
		ReferenceNumber: DieselReference(rec.ID),
		Date:            rec.Date,
		Notes:           fmt.Sprintf("Diesel: %gL at %s. KM: %g. %s", rec.LitresFilled, rec.FuelStation, rec.KmReading, rec.Notes),
		Attachments:     []models.Attachment{},
		Origin: models.CostOrigin{
			Kind:           models.OriginDieselDerived,
			DieselRecordID: rec.ID,
		},
		IsSystemGenerated: true,
	}
}

func isDieselCostFor(c models.CostEntry, dieselID string) bool {
	if c.Origin.Kind == models.OriginDieselDerived && c.Origin.DieselRecordID == dieselID {
		return true
	}
	return c.ReferenceNumber == DieselReference(dieselID)
}

// stripDieselCost removes every cost entry derived from the given diesel
// record across all trips in the snapshot and returns the modified trips.
// A diesel record has at most one derived entry, but a stale snapshot can
// momentarily show duplicates; stripping everywhere keeps relinking
// idempotent.
func stripDieselCost(snap db.Snapshot, dieselID string) []models.Trip {
	var modified []models.Trip
	for _, trip := range snap.Trips {
		kept := trip.Costs[:0:0]
		changed := false
		for _, c := range trip.Costs {
			if isDieselCostFor(c, dieselID) {
				changed = true
				continue
			}
			kept = append(kept, c)
		}
		if changed {
			trip.Costs = kept
			modified = append(modified, trip)
		}
	}
	return modified
}

// AllocateDieselToTrip links a diesel record to a trip, replacing any
// existing derived cost entry so at most one exists for the record.
func (e *Engine) AllocateDieselToTrip(ctx context.Context, snap db.Snapshot, dieselID, tripID string) (Result, error) {
	rec, ok := findDiesel(snap, dieselID)
	if !ok {
		return skipped("diesel record not found: " + dieselID), nil
	}
	target, ok := findTrip(snap, tripID)
	if !ok {
		return skipped("trip not found: " + tripID), nil
	}

	stripped := stripDieselCost(snap, dieselID)
	for _, t := range stripped {
		if t.ID == tripID {
			target = t
		}
	}
	target.Costs = append(target.Costs, e.syntheticDieselCost(rec, tripID))

	for _, t := range stripped {
		if t.ID == tripID {
			continue
		}
		if err := e.trips.UpdateTrip(ctx, t); err != nil {
			return Result{}, err
		}
	}
	if err := e.trips.UpdateTrip(ctx, target); err != nil {
		return Result{}, err
	}

	rec.TripID = tripID
	if err := e.diesel.UpdateDieselRecord(ctx, rec); err != nil {
		return Result{}, err
	}
	log.WithFields(log.Fields{
		"diesel_id": dieselID,
		"trip_id":   tripID,
		"amount":    rec.TotalCost,
	}).Info("diesel cost allocated to trip")
	return applied(dieselID), nil
}

// RemoveDieselFromTrip unlinks a diesel record and removes its derived
// cost entry wherever it landed.
func (e *Engine) RemoveDieselFromTrip(ctx context.Context, snap db.Snapshot, dieselID string) (Result, error) {
	rec, ok := findDiesel(snap, dieselID)
	if !ok {
		return skipped("diesel record not found: " + dieselID), nil
	}
	for _, t := range stripDieselCost(snap, dieselID) {
		if err := e.trips.UpdateTrip(ctx, t); err != nil {
			return Result{}, err
		}
	}
	rec.TripID = ""
	if err := e.diesel.UpdateDieselRecord(ctx, rec); err != nil {
		return Result{}, err
	}
	return applied(dieselID), nil
}

// AddDieselRecord ingests a fuel purchase, computing its derived fields,
// and allocates its cost when a trip link is supplied.
func (e *Engine) AddDieselRecord(ctx context.Context, snap db.Snapshot, rec models.DieselConsumptionRecord) (Result, error) {
	if rec.ID == "" {
		rec.ID = "D" + e.newID()
	}
	ApplyDerivedFields(&rec)
	if err := e.diesel.InsertDieselRecord(ctx, rec); err != nil {
		return Result{}, err
	}
	if rec.TripID != "" {
		trip, ok := findTrip(snap, rec.TripID)
		if !ok {
			log.WithFields(log.Fields{
				"diesel_id": rec.ID,
				"trip_id":   rec.TripID,
			}).Warn("linked trip not in view, diesel cost not allocated")
			return applied(rec.ID), nil
		}
		trip.Costs = append(trip.Costs, e.syntheticDieselCost(rec, trip.ID))
		if err := e.trips.UpdateTrip(ctx, trip); err != nil {
			return Result{}, err
		}
	}
	return applied(rec.ID), nil
}

// UpdateDieselRecord rewrites a fuel purchase, recomputing derived fields
// and reconciling the trip link: the old derived cost entry is removed and
// a fresh one written when a link remains.
func (e *Engine) UpdateDieselRecord(ctx context.Context, snap db.Snapshot, rec models.DieselConsumptionRecord) (Result, error) {
	if _, ok := findDiesel(snap, rec.ID); !ok {
		return skipped("diesel record not found: " + rec.ID), nil
	}
	ApplyDerivedFields(&rec)

	stripped := stripDieselCost(snap, rec.ID)
	byID := make(map[string]models.Trip, len(stripped))
	for _, t := range stripped {
		byID[t.ID] = t
	}
	if rec.TripID != "" {
		target, ok := byID[rec.TripID]
		if !ok {
			target, ok = findTrip(snap, rec.TripID)
		}
		if ok {
			target.Costs = append(target.Costs, e.syntheticDieselCost(rec, target.ID))
			byID[target.ID] = target
		} else {
			log.WithFields(log.Fields{
				"diesel_id": rec.ID,
				"trip_id":   rec.TripID,
			}).Warn("linked trip not in view, diesel cost not allocated")
		}
	}
	for _, t := range byID {
		if err := e.trips.UpdateTrip(ctx, t); err != nil {
			return Result{}, err
		}
	}

	if err := e.diesel.UpdateDieselRecord(ctx, rec); err != nil {
		return Result{}, err
	}
	return applied(rec.ID), nil
}

// DeleteDieselRecord removes a fuel purchase together with any derived
// cost entry.
func (e *Engine) DeleteDieselRecord(ctx context.Context, snap db.Snapshot, id string) (Result, error) {
	if _, ok := findDiesel(snap, id); !ok {
		return skipped("diesel record not found: " + id), nil
	}
	for _, t := range stripDieselCost(snap, id) {
		if err := e.trips.UpdateTrip(ctx, t); err != nil {
			return Result{}, err
		}
	}
	if err := e.diesel.DeleteDieselRecord(ctx, id); err != nil {
		return Result{}, err
	}
	return applied(id), nil
}

// DebriefUpdate carries the outcome of a driver debrief on a diesel
// record flagged for review.
type DebriefUpdate struct {
	Date     *time.Time `json:"debriefDate,omitempty"`
	Notes    string     `json:"debriefNotes"`
	SignedBy string     `json:"debriefSignedBy,omitempty"`
}

// UpdateDieselDebrief records the debrief outcome on a diesel record.
func (e *Engine) UpdateDieselDebrief(ctx context.Context, snap db.Snapshot, id string, upd DebriefUpdate) (Result, error) {
	rec, ok := findDiesel(snap, id)
	if !ok {
		return skipped("diesel record not found: " + id), nil
	}
	now := e.now()
	if upd.Date != nil {
		rec.DebriefDate = upd.Date
	} else if rec.DebriefDate == nil {
		rec.DebriefDate = &now
	}
	rec.DebriefNotes = upd.Notes
	if upd.SignedBy != "" {
		rec.DebriefSignedBy = upd.SignedBy
		rec.DebriefSignedAt = &now
	}
	if err := e.diesel.UpdateDieselRecord(ctx, rec); err != nil {
		return Result{}, err
	}
	return applied(id), nil
}
