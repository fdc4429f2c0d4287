package db

import (
	"context"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/heinrichnel/fleetops/internal/models"
)

// Snapshot is a point-in-time view of all operational records. Snapshots
// are replaced wholesale on every refresh; consumers never mutate one.
type Snapshot struct {
	Trips         []models.Trip
	DieselRecords []models.DieselConsumptionRecord
	MissedLoads   []models.MissedLoad
	LoadedAt      time.Time
}

// Lister reads the full contents of the three operational collections.
type Lister interface {
	ListTrips(ctx context.Context) ([]models.Trip, error)
	ListDieselRecords(ctx context.Context) ([]models.DieselConsumptionRecord, error)
	ListMissedLoads(ctx context.Context) ([]models.MissedLoad, error)
}

// ListTrips implements Lister over the bundled stores.
func (s *Stores) ListTrips(ctx context.Context) ([]models.Trip, error) {
	return s.Trips.ListTrips(ctx)
}

// ListDieselRecords implements Lister over the bundled stores.
func (s *Stores) ListDieselRecords(ctx context.Context) ([]models.DieselConsumptionRecord, error) {
	return s.Diesel.ListDieselRecords(ctx)
}

// ListMissedLoads implements Lister over the bundled stores.
func (s *Stores) ListMissedLoads(ctx context.Context) ([]models.MissedLoad, error) {
	return s.MissedLoads.ListMissedLoads(ctx)
}

// Watcher holds the current snapshot and keeps it fresh. Change events
// trigger a full re-read rather than incremental patching; the record
// volumes here are small and replacement keeps every consumer's view
// internally consistent.
type Watcher struct {
	source Lister

	mu      sync.RWMutex
	snap    Snapshot
	subs    map[int]func(Snapshot)
	nextSub int
}

// NewWatcher creates a watcher over the given source. Call Refresh once
// before serving so the first snapshot is populated.
func NewWatcher(source Lister) *Watcher {
	return &Watcher{
		source: source,
		subs:   make(map[int]func(Snapshot)),
	}
}

// Snapshot returns the current snapshot.
func (w *Watcher) Snapshot() Snapshot {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.snap
}

// Subscribe registers a callback invoked with each replaced snapshot. The
// returned function cancels the subscription. Callbacks run synchronously
// inside Refresh and must not block.
func (w *Watcher) Subscribe(fn func(Snapshot)) func() {
	w.mu.Lock()
	defer w.mu.Unlock()
	id := w.nextSub
	w.nextSub++
	w.subs[id] = fn
	return func() {
		w.mu.Lock()
		defer w.mu.Unlock()
		delete(w.subs, id)
	}
}

// Refresh re-reads all three collections and replaces the snapshot.
func (w *Watcher) Refresh(ctx context.Context) error {
	trips, err := w.source.ListTrips(ctx)
	if err != nil {
		return err
	}
	diesel, err := w.source.ListDieselRecords(ctx)
	if err != nil {
		return err
	}
	loads, err := w.source.ListMissedLoads(ctx)
	if err != nil {
		return err
	}
	snap := Snapshot{
		Trips:         trips,
		DieselRecords: diesel,
		MissedLoads:   loads,
		LoadedAt:      time.Now(),
	}

	w.mu.Lock()
	w.snap = snap
	subs := make([]func(Snapshot), 0, len(w.subs))
	for _, fn := range w.subs {
		subs = append(subs, fn)
	}
	w.mu.Unlock()

	for _, fn := range subs {
		fn(snap)
	}
	return nil
}

// Watch opens a change stream per collection and refreshes the snapshot on
// every event. Streams end when ctx is cancelled. Change streams require a
// replica set; on standalone mongo the caller falls back to polling.
func (w *Watcher) Watch(ctx context.Context, colls ...*mongo.Collection) error {
	for _, coll := range colls {
		stream, err := coll.Watch(ctx, mongo.Pipeline{})
		if err != nil {
			return err
		}
		go w.consume(ctx, coll.Name(), stream)
	}
	return nil
}

func (w *Watcher) consume(ctx context.Context, name string, stream *mongo.ChangeStream) {
	defer stream.Close(context.Background())
	for stream.Next(ctx) {
		if err := w.Refresh(ctx); err != nil {
			log.WithFields(log.Fields{
				"collection": name,
				"error":      err,
			}).Error("snapshot refresh failed")
		}
	}
	if err := stream.Err(); err != nil && ctx.Err() == nil {
		log.WithFields(log.Fields{
			"collection": name,
			"error":      err,
		}).Error("change stream ended")
	}
}

// Poll refreshes the snapshot on a fixed interval until ctx is cancelled.
// Used when change streams are unavailable.
func (w *Watcher) Poll(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := w.Refresh(ctx); err != nil {
				log.WithError(err).Error("snapshot refresh failed")
			}
		}
	}
}
