package rules

import (
	"context"

	"github.com/heinrichnel/fleetops/internal/db"
	"github.com/heinrichnel/fleetops/internal/models"
)

// AddCostEntry appends an expense line to its trip and re-evaluates
// auto-completion.
func (e *Engine) AddCostEntry(ctx context.Context, snap db.Snapshot, entry models.CostEntry) (Result, error) {
	trip, ok := findTrip(snap, entry.TripID)
	if !ok {
		return skipped("trip not found: " + entry.TripID), nil
	}
	if entry.ID == "" {
		entry.ID = "C" + e.newID()
	}
	if entry.Origin.Kind == "" {
		entry.Origin.Kind = models.OriginManual
	}
	if entry.Date.IsZero() {
		entry.Date = e.now()
	}
	e.stampFlagTransitions(&entry, nil)
	trip.Costs = append(trip.Costs, entry)

	res := applied(entry.ID)
	res.AutoCompleted = e.maybeAutoComplete(&trip)
	if err := e.trips.UpdateTrip(ctx, trip); err != nil {
		return Result{}, err
	}
	return res, nil
}

// UpdateCostEntry replaces an expense line in place, stamps flag and
// resolution timestamps on transitions, and re-evaluates auto-completion.
func (e *Engine) UpdateCostEntry(ctx context.Context, snap db.Snapshot, entry models.CostEntry) (Result, error) {
	trip, ok := findTrip(snap, entry.TripID)
	if !ok {
		return skipped("trip not found: " + entry.TripID), nil
	}
	idx := -1
	for i := range trip.Costs {
		if trip.Costs[i].ID == entry.ID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return skipped("cost entry not found: " + entry.ID), nil
	}
	e.stampFlagTransitions(&entry, &trip.Costs[idx])
	trip.Costs[idx] = entry

	res := applied(entry.ID)
	res.AutoCompleted = e.maybeAutoComplete(&trip)
	if err := e.trips.UpdateTrip(ctx, trip); err != nil {
		return Result{}, err
	}
	return res, nil
}

// stampFlagTransitions fills in the investigation timestamps a caller
// typically omits. prev is nil for brand new entries.
func (e *Engine) stampFlagTransitions(entry *models.CostEntry, prev *models.CostEntry) {
	if entry.IsFlagged {
		if entry.InvestigationStatus == "" {
			entry.InvestigationStatus = models.InvestigationPending
		}
		if entry.FlaggedAt == nil {
			if prev != nil && prev.FlaggedAt != nil {
				entry.FlaggedAt = prev.FlaggedAt
			} else {
				now := e.now()
				entry.FlaggedAt = &now
			}
		}
		if entry.InvestigationStatus == models.InvestigationResolved && entry.ResolvedAt == nil {
			now := e.now()
			entry.ResolvedAt = &now
		}
	}
}

// DeleteCostEntry removes an expense line from its trip. Removal never
// completes a trip; lifting a flag requires a resolution, not a deletion.
func (e *Engine) DeleteCostEntry(ctx context.Context, snap db.Snapshot, tripID, costID string) (Result, error) {
	trip, ok := findTrip(snap, tripID)
	if !ok {
		return skipped("trip not found: " + tripID), nil
	}
	kept := trip.Costs[:0:0]
	found := false
	for _, c := range trip.Costs {
		if c.ID == costID {
			found = true
			continue
		}
		kept = append(kept, c)
	}
	if !found {
		return skipped("cost entry not found: " + costID), nil
	}
	trip.Costs = kept
	if err := e.trips.UpdateTrip(ctx, trip); err != nil {
		return Result{}, err
	}
	return applied(costID), nil
}

// AddAttachment records a supporting document against a cost entry.
func (e *Engine) AddAttachment(ctx context.Context, snap db.Snapshot, tripID, costID string, att models.Attachment) (Result, error) {
	trip, ok := findTrip(snap, tripID)
	if !ok {
		return skipped("trip not found: " + tripID), nil
	}
	if att.ID == "" {
		att.ID = "A" + e.newID()
	}
	att.CostEntryID = costID
	att.TripID = tripID
	if att.UploadedAt.IsZero() {
		att.UploadedAt = e.now()
	}
	for i := range trip.Costs {
		if trip.Costs[i].ID == costID {
			trip.Costs[i].Attachments = append(trip.Costs[i].Attachments, att)
			if err := e.trips.UpdateTrip(ctx, trip); err != nil {
				return Result{}, err
			}
			return applied(att.ID), nil
		}
	}
	return skipped("cost entry not found: " + costID), nil
}

// DeleteAttachment removes a supporting document from a cost entry.
func (e *Engine) DeleteAttachment(ctx context.Context, snap db.Snapshot, tripID, costID, attachmentID string) (Result, error) {
	trip, ok := findTrip(snap, tripID)
	if !ok {
		return skipped("trip not found: " + tripID), nil
	}
	for i := range trip.Costs {
		if trip.Costs[i].ID != costID {
			continue
		}
		kept := trip.Costs[i].Attachments[:0:0]
		found := false
		for _, a := range trip.Costs[i].Attachments {
			if a.ID == attachmentID {
				found = true
				continue
			}
			kept = append(kept, a)
		}
		if !found {
			return skipped("attachment not found: " + attachmentID), nil
		}
		trip.Costs[i].Attachments = kept
		if err := e.trips.UpdateTrip(ctx, trip); err != nil {
			return Result{}, err
		}
		return applied(attachmentID), nil
	}
	return skipped("cost entry not found: " + costID), nil
}

// AddAdditionalCost appends a pre-invoice extra to a trip.
func (e *Engine) AddAdditionalCost(ctx context.Context, snap db.Snapshot, cost models.AdditionalCost) (Result, error) {
	trip, ok := findTrip(snap, cost.TripID)
	if !ok {
		return skipped("trip not found: " + cost.TripID), nil
	}
	if cost.ID == "" {
		cost.ID = "AC" + e.newID()
	}
	if cost.AddedAt.IsZero() {
		cost.AddedAt = e.now()
	}
	if cost.SupportingDocuments == nil {
		cost.SupportingDocuments = []models.Attachment{}
	}
	trip.AdditionalCosts = append(trip.AdditionalCosts, cost)
	if err := e.trips.UpdateTrip(ctx, trip); err != nil {
		return Result{}, err
	}
	return applied(cost.ID), nil
}

// RemoveAdditionalCost removes a pre-invoice extra from a trip.
func (e *Engine) RemoveAdditionalCost(ctx context.Context, snap db.Snapshot, tripID, costID string) (Result, error) {
	trip, ok := findTrip(snap, tripID)
	if !ok {
		return skipped("trip not found: " + tripID), nil
	}
	kept := trip.AdditionalCosts[:0:0]
	found := false
	for _, c := range trip.AdditionalCosts {
		if c.ID == costID {
			found = true
			continue
		}
		kept = append(kept, c)
	}
	if !found {
		return skipped("additional cost not found: " + costID), nil
	}
	trip.AdditionalCosts = kept
	if err := e.trips.UpdateTrip(ctx, trip); err != nil {
		return Result{}, err
	}
	return applied(costID), nil
}

// AddDelayReason records a delay against a trip.
func (e *Engine) AddDelayReason(ctx context.Context, snap db.Snapshot, delay models.DelayReason) (Result, error) {
	trip, ok := findTrip(snap, delay.TripID)
	if !ok {
		return skipped("trip not found: " + delay.TripID), nil
	}
	if delay.ID == "" {
		delay.ID = "DR" + e.newID()
	}
	if delay.ReportedAt.IsZero() {
		delay.ReportedAt = e.now()
	}
	trip.DelayReasons = append(trip.DelayReasons, delay)
	if err := e.trips.UpdateTrip(ctx, trip); err != nil {
		return Result{}, err
	}
	return applied(delay.ID), nil
}
