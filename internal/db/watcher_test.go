package db

import (
	"context"
	"errors"
	"testing"

	"github.com/heinrichnel/fleetops/internal/models"
)

type fakeLister struct {
	trips  []models.Trip
	diesel []models.DieselConsumptionRecord
	loads  []models.MissedLoad
	err    error
}

func (f *fakeLister) ListTrips(ctx context.Context) ([]models.Trip, error) {
	return f.trips, f.err
}

func (f *fakeLister) ListDieselRecords(ctx context.Context) ([]models.DieselConsumptionRecord, error) {
	return f.diesel, f.err
}

func (f *fakeLister) ListMissedLoads(ctx context.Context) ([]models.MissedLoad, error) {
	return f.loads, f.err
}

func TestWatcherRefresh(t *testing.T) {
	src := &fakeLister{
		trips:  []models.Trip{{ID: "T1"}},
		diesel: []models.DieselConsumptionRecord{{ID: "D1"}},
		loads:  []models.MissedLoad{{ID: "M1"}},
	}
	w := NewWatcher(src)

	if snap := w.Snapshot(); len(snap.Trips) != 0 {
		t.Fatalf("expected empty snapshot before refresh, got %d trips", len(snap.Trips))
	}

	if err := w.Refresh(context.Background()); err != nil {
		t.Fatalf("Refresh: %v", err)
	}

	snap := w.Snapshot()
	if len(snap.Trips) != 1 || snap.Trips[0].ID != "T1" {
		t.Errorf("unexpected trips: %+v", snap.Trips)
	}
	if len(snap.DieselRecords) != 1 || len(snap.MissedLoads) != 1 {
		t.Errorf("unexpected snapshot: %+v", snap)
	}
	if snap.LoadedAt.IsZero() {
		t.Error("LoadedAt not stamped")
	}

	src.trips = append(src.trips, models.Trip{ID: "T2"})
	if err := w.Refresh(context.Background()); err != nil {
		t.Fatalf("Refresh: %v", err)
	}
	if got := len(w.Snapshot().Trips); got != 2 {
		t.Errorf("expected 2 trips after refresh, got %d", got)
	}
}

func TestWatcherRefreshError(t *testing.T) {
	src := &fakeLister{trips: []models.Trip{{ID: "T1"}}}
	w := NewWatcher(src)
	if err := w.Refresh(context.Background()); err != nil {
		t.Fatalf("Refresh: %v", err)
	}

	src.err = errors.New("connection reset")
	if err := w.Refresh(context.Background()); err == nil {
		t.Fatal("expected refresh error")
	}
	// failed refresh keeps the previous snapshot
	if got := len(w.Snapshot().Trips); got != 1 {
		t.Errorf("expected previous snapshot to survive, got %d trips", got)
	}
}

func TestWatcherSubscribe(t *testing.T) {
	src := &fakeLister{}
	w := NewWatcher(src)

	calls := 0
	unsubscribe := w.Subscribe(func(snap Snapshot) {
		calls++
	})

	if err := w.Refresh(context.Background()); err != nil {
		t.Fatalf("Refresh: %v", err)
	}
	if calls != 1 {
		t.Fatalf("expected 1 callback, got %d", calls)
	}

	unsubscribe()
	if err := w.Refresh(context.Background()); err != nil {
		t.Fatalf("Refresh: %v", err)
	}
	if calls != 1 {
		t.Errorf("expected no callback after unsubscribe, got %d", calls)
	}
}
