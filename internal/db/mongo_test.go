package db

import (
	"context"
	"os"
	"testing"

	"github.com/heinrichnel/fleetops/internal/models"
)

func TestConnectMongo_BadURI(t *testing.T) {
	os.Setenv("MONGO_URI", "mongodb://bad:uri")
	client, err := ConnectMongo()
	if err == nil {
		t.Error("expected error for bad URI, got nil")
	}
	if client != nil {
		t.Error("expected nil client on error")
	}
}

func TestDatabaseName(t *testing.T) {
	os.Unsetenv("MONGO_DB")
	if got := DatabaseName(); got != "fleetops" {
		t.Errorf("expected default database name, got %q", got)
	}
	os.Setenv("MONGO_DB", "fleetops_test")
	defer os.Unsetenv("MONGO_DB")
	if got := DatabaseName(); got != "fleetops_test" {
		t.Errorf("expected fleetops_test, got %q", got)
	}
}

func TestTripStore_NilCollection(t *testing.T) {
	store := &TripStore{Collection: nil}
	ctx := context.Background()

	if err := store.InsertTrip(ctx, models.Trip{}); err == nil {
		t.Error("expected error when collection is nil")
	}
	if err := store.UpdateTrip(ctx, models.Trip{}); err == nil {
		t.Error("expected error when collection is nil")
	}
	if err := store.DeleteTrip(ctx, "T1"); err == nil {
		t.Error("expected error when collection is nil")
	}
	if _, err := store.FindTripByID(ctx, "T1"); err == nil {
		t.Error("expected error when collection is nil")
	}
	if _, err := store.ListTrips(ctx); err == nil {
		t.Error("expected error when collection is nil")
	}
}

func TestDieselStore_NilCollection(t *testing.T) {
	store := &DieselStore{Collection: nil}
	ctx := context.Background()

	if err := store.InsertDieselRecord(ctx, models.DieselConsumptionRecord{}); err == nil {
		t.Error("expected error when collection is nil")
	}
	if _, err := store.ListDieselRecords(ctx); err == nil {
		t.Error("expected error when collection is nil")
	}
}

func TestMissedLoadStore_NilCollection(t *testing.T) {
	store := &MissedLoadStore{Collection: nil}
	ctx := context.Background()

	if err := store.InsertMissedLoad(ctx, models.MissedLoad{}); err == nil {
		t.Error("expected error when collection is nil")
	}
	if _, err := store.ListMissedLoads(ctx); err == nil {
		t.Error("expected error when collection is nil")
	}
}
