// Package rules derives secondary state changes from mutation intents: trip
// auto-completion, diesel cost allocation, payment bookkeeping. The engine
// operates on the snapshot it is handed and issues writes through narrow
// writer interfaces; it never reads ambient state and never talks to the
// user.
package rules

import (
	"context"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/heinrichnel/fleetops/internal/db"
	"github.com/heinrichnel/fleetops/internal/models"
)

// Outcome says what happened to a mutation intent.
type Outcome string

const (
	// OutcomeApplied means the writes were issued.
	OutcomeApplied Outcome = "applied"
	// OutcomeSkipped means a referenced record was not in the snapshot.
	// With a real-time replicated snapshot that is a benign race, not an
	// error: the caller's view was stale.
	OutcomeSkipped Outcome = "skipped"
)

// Result is the structured outcome of a mutation operation. The
// presentation layer decides how to surface it.
type Result struct {
	Outcome       Outcome `json:"outcome"`
	ID            string  `json:"id,omitempty"`
	AutoCompleted bool    `json:"autoCompleted,omitempty"`
	SkipReason    string  `json:"skipReason,omitempty"`
}

// TripWriter issues trip writes to the record store.
type TripWriter interface {
	InsertTrip(ctx context.Context, trip models.Trip) error
	UpdateTrip(ctx context.Context, trip models.Trip) error
	DeleteTrip(ctx context.Context, id string) error
}

// DieselWriter issues diesel record writes to the record store.
type DieselWriter interface {
	InsertDieselRecord(ctx context.Context, rec models.DieselConsumptionRecord) error
	UpdateDieselRecord(ctx context.Context, rec models.DieselConsumptionRecord) error
	DeleteDieselRecord(ctx context.Context, id string) error
}

// MissedLoadWriter issues missed load writes to the record store.
type MissedLoadWriter interface {
	InsertMissedLoad(ctx context.Context, load models.MissedLoad) error
	UpdateMissedLoad(ctx context.Context, load models.MissedLoad) error
	DeleteMissedLoad(ctx context.Context, id string) error
}

// Engine applies mutation intents against a snapshot and issues the
// resulting writes.
type Engine struct {
	trips  TripWriter
	diesel DieselWriter
	missed MissedLoadWriter
	norms  []models.DieselNorm

	now   func() time.Time
	newID func() string
}

// NewEngine creates a rule engine writing through the given stores, with
// the stock diesel norms.
func NewEngine(trips TripWriter, diesel DieselWriter, missed MissedLoadWriter) *Engine {
	return &Engine{
		trips:  trips,
		diesel: diesel,
		missed: missed,
		norms:  models.DefaultDieselNorms(),
		now:    time.Now,
		newID:  func() string { return uuid.NewString() },
	}
}

// SetNorms replaces the per-fleet efficiency norms used for classification.
func (e *Engine) SetNorms(norms []models.DieselNorm) {
	e.norms = norms
}

func applied(id string) Result {
	return Result{Outcome: OutcomeApplied, ID: id}
}

func skipped(reason string) Result {
	log.WithField("reason", reason).Debug("rule engine skipped stale reference")
	return Result{Outcome: OutcomeSkipped, SkipReason: reason}
}

func findTrip(snap db.Snapshot, id string) (models.Trip, bool) {
	for _, t := range snap.Trips {
		if t.ID == id {
			return t, true
		}
	}
	return models.Trip{}, false
}

func findDiesel(snap db.Snapshot, id string) (models.DieselConsumptionRecord, bool) {
	for _, r := range snap.DieselRecords {
		if r.ID == id {
			return r, true
		}
	}
	return models.DieselConsumptionRecord{}, false
}

// AddTrip inserts a new trip with entry defaults: active, unpaid, empty
// child collections, external client type unless stated.
func (e *Engine) AddTrip(ctx context.Context, trip models.Trip) (Result, error) {
	if trip.ID == "" {
		trip.ID = e.newID()
	}
	trip.Status = models.TripActive
	trip.PaymentStatus = models.PaymentUnpaid
	trip.Costs = []models.CostEntry{}
	trip.AdditionalCosts = []models.AdditionalCost{}
	trip.FollowUpHistory = []models.FollowUpRecord{}
	if trip.ClientType == "" {
		trip.ClientType = models.ClientExternal
	}
	if err := e.trips.InsertTrip(ctx, trip); err != nil {
		return Result{}, err
	}
	return applied(trip.ID), nil
}

// UpdateTrip writes an edited trip back as-is. Status changes through this
// path are explicit user edits, not rule evaluation.
func (e *Engine) UpdateTrip(ctx context.Context, trip models.Trip) (Result, error) {
	if err := e.trips.UpdateTrip(ctx, trip); err != nil {
		return Result{}, err
	}
	return applied(trip.ID), nil
}

// DeleteTrip removes a trip. The removal is unrecoverable, so the audit
// summary (who, why, how many costs went with it) is logged before the
// write.
func (e *Engine) DeleteTrip(ctx context.Context, snap db.Snapshot, id, deletedBy, reason string) (Result, error) {
	trip, ok := findTrip(snap, id)
	if !ok {
		return skipped("trip not found: " + id), nil
	}
	log.WithFields(log.Fields{
		"trip_id":    id,
		"deleted_by": deletedBy,
		"reason":     reason,
		"costs":      len(trip.Costs),
	}).Info("deleting trip")
	if err := e.trips.DeleteTrip(ctx, id); err != nil {
		return Result{}, err
	}
	return applied(id), nil
}

// AddMissedLoad records a load the fleet could not carry.
func (e *Engine) AddMissedLoad(ctx context.Context, load models.MissedLoad) (Result, error) {
	if load.ID == "" {
		load.ID = e.newID()
	}
	if load.RecordedAt.IsZero() {
		load.RecordedAt = e.now()
	}
	if load.ResolutionStatus == "" {
		load.ResolutionStatus = models.ResolutionPending
	}
	if err := e.missed.InsertMissedLoad(ctx, load); err != nil {
		return Result{}, err
	}
	return applied(load.ID), nil
}

// UpdateMissedLoad writes an edited missed load back.
func (e *Engine) UpdateMissedLoad(ctx context.Context, load models.MissedLoad) (Result, error) {
	if err := e.missed.UpdateMissedLoad(ctx, load); err != nil {
		return Result{}, err
	}
	return applied(load.ID), nil
}

// DeleteMissedLoad removes a missed load record.
func (e *Engine) DeleteMissedLoad(ctx context.Context, id string) (Result, error) {
	if err := e.missed.DeleteMissedLoad(ctx, id); err != nil {
		return Result{}, err
	}
	return applied(id), nil
}
