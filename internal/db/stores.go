package db

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/heinrichnel/fleetops/internal/models"
)

// TripStore wraps the trips collection. Trip documents use the business id
// string as _id; costs and other child records are embedded.
type TripStore struct {
	Collection *mongo.Collection
}

// InsertTrip inserts a trip record into the collection.
func (s *TripStore) InsertTrip(ctx context.Context, trip models.Trip) error {
	if s.Collection == nil {
		return fmt.Errorf("mongo collection is nil")
	}
	_, err := s.Collection.InsertOne(ctx, trip)
	return err
}

// UpdateTrip replaces a trip document by its id.
func (s *TripStore) UpdateTrip(ctx context.Context, trip models.Trip) error {
	if s.Collection == nil {
		return fmt.Errorf("mongo collection is nil")
	}
	result, err := s.Collection.ReplaceOne(ctx, bson.M{"_id": trip.ID}, trip)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("trip not found: %s", trip.ID)
	}
	return nil
}

// DeleteTrip deletes a trip by its id.
func (s *TripStore) DeleteTrip(ctx context.Context, id string) error {
	if s.Collection == nil {
		return fmt.Errorf("mongo collection is nil")
	}
	_, err := s.Collection.DeleteOne(ctx, bson.M{"_id": id})
	return err
}

// FindTripByID finds a trip by its id.
func (s *TripStore) FindTripByID(ctx context.Context, id string) (*models.Trip, error) {
	if s.Collection == nil {
		return nil, fmt.Errorf("mongo collection is nil")
	}
	var trip models.Trip
	err := s.Collection.FindOne(ctx, bson.M{"_id": id}).Decode(&trip)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("trip not found: %s", id)
		}
		return nil, err
	}
	return &trip, nil
}

// ListTrips returns all trips, newest start date first.
func (s *TripStore) ListTrips(ctx context.Context) ([]models.Trip, error) {
	if s.Collection == nil {
		return nil, fmt.Errorf("mongo collection is nil")
	}
	opts := options.Find().SetSort(bson.D{{Key: "start_date", Value: -1}})
	cursor, err := s.Collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)
	trips := []models.Trip{}
	if err := cursor.All(ctx, &trips); err != nil {
		return nil, err
	}
	return trips, nil
}

// DieselStore wraps the diesel consumption collection.
type DieselStore struct {
	Collection *mongo.Collection
}

// InsertDieselRecord inserts a fuel purchase into the collection.
func (s *DieselStore) InsertDieselRecord(ctx context.Context, rec models.DieselConsumptionRecord) error {
	if s.Collection == nil {
		return fmt.Errorf("mongo collection is nil")
	}
	_, err := s.Collection.InsertOne(ctx, rec)
	return err
}

// UpdateDieselRecord replaces a fuel purchase document by its id.
func (s *DieselStore) UpdateDieselRecord(ctx context.Context, rec models.DieselConsumptionRecord) error {
	if s.Collection == nil {
		return fmt.Errorf("mongo collection is nil")
	}
	result, err := s.Collection.ReplaceOne(ctx, bson.M{"_id": rec.ID}, rec)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("diesel record not found: %s", rec.ID)
	}
	return nil
}

// DeleteDieselRecord deletes a fuel purchase by its id.
func (s *DieselStore) DeleteDieselRecord(ctx context.Context, id string) error {
	if s.Collection == nil {
		return fmt.Errorf("mongo collection is nil")
	}
	_, err := s.Collection.DeleteOne(ctx, bson.M{"_id": id})
	return err
}

// FindDieselRecordByID finds a fuel purchase by its id.
func (s *DieselStore) FindDieselRecordByID(ctx context.Context, id string) (*models.DieselConsumptionRecord, error) {
	if s.Collection == nil {
		return nil, fmt.Errorf("mongo collection is nil")
	}
	var rec models.DieselConsumptionRecord
	err := s.Collection.FindOne(ctx, bson.M{"_id": id}).Decode(&rec)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("diesel record not found: %s", id)
		}
		return nil, err
	}
	return &rec, nil
}

// ListDieselRecords returns all fuel purchases, newest first.
func (s *DieselStore) ListDieselRecords(ctx context.Context) ([]models.DieselConsumptionRecord, error) {
	if s.Collection == nil {
		return nil, fmt.Errorf("mongo collection is nil")
	}
	opts := options.Find().SetSort(bson.D{{Key: "date", Value: -1}})
	cursor, err := s.Collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)
	recs := []models.DieselConsumptionRecord{}
	if err := cursor.All(ctx, &recs); err != nil {
		return nil, err
	}
	return recs, nil
}

// MissedLoadStore wraps the missed loads collection.
type MissedLoadStore struct {
	Collection *mongo.Collection
}

// InsertMissedLoad inserts a missed load into the collection.
func (s *MissedLoadStore) InsertMissedLoad(ctx context.Context, load models.MissedLoad) error {
	if s.Collection == nil {
		return fmt.Errorf("mongo collection is nil")
	}
	_, err := s.Collection.InsertOne(ctx, load)
	return err
}

// UpdateMissedLoad replaces a missed load document by its id.
func (s *MissedLoadStore) UpdateMissedLoad(ctx context.Context, load models.MissedLoad) error {
	if s.Collection == nil {
		return fmt.Errorf("mongo collection is nil")
	}
	result, err := s.Collection.ReplaceOne(ctx, bson.M{"_id": load.ID}, load)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("missed load not found: %s", load.ID)
	}
	return nil
}

// DeleteMissedLoad deletes a missed load by its id.
func (s *MissedLoadStore) DeleteMissedLoad(ctx context.Context, id string) error {
	if s.Collection == nil {
		return fmt.Errorf("mongo collection is nil")
	}
	_, err := s.Collection.DeleteOne(ctx, bson.M{"_id": id})
	return err
}

// ListMissedLoads returns all missed loads, newest first.
func (s *MissedLoadStore) ListMissedLoads(ctx context.Context) ([]models.MissedLoad, error) {
	if s.Collection == nil {
		return nil, fmt.Errorf("mongo collection is nil")
	}
	opts := options.Find().SetSort(bson.D{{Key: "recorded_at", Value: -1}})
	cursor, err := s.Collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)
	loads := []models.MissedLoad{}
	if err := cursor.All(ctx, &loads); err != nil {
		return nil, err
	}
	return loads, nil
}
