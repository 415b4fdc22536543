package tripstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/wayfarer-app/wayfarer/pkg/database"
	"github.com/wayfarer-app/wayfarer/pkg/model"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

const tripsCollectionName = "trips"

type MongoStore struct {
}

func NewMongoStore() *MongoStore {
	return &MongoStore{}
}

func (s *MongoStore) StartTrip(ctx context.Context, session *model.TripSession) (*model.TripSession, error) {
	now := time.Now()

	started := *session
	started.PrimaryIdentifier = fmt.Sprintf("WAYFARER:TRIP:%s:%d", session.UserID, now.UnixNano())
	started.Status = model.TripStatusActive
	started.CurrentLegIndex = 0
	started.StartTime = now
	started.CreationDateTime = now
	started.ModificationDateTime = now

	tripsCollection := database.GetCollection(tripsCollectionName)
	_, err := tripsCollection.InsertOne(ctx, started)
	if err != nil {
		return nil, err
	}

	return &started, nil
}

func (s *MongoStore) UpdateProgress(ctx context.Context, tripID string, legIndex int) (*model.TripSession, error) {
	tripsCollection := database.GetCollection(tripsCollectionName)

	update := bson.M{"$set": bson.M{
		"currentlegindex":      legIndex,
		"modificationdatetime": time.Now(),
	}}

	result, err := tripsCollection.UpdateOne(ctx, bson.M{"primaryidentifier": tripID}, update)
	if err != nil {
		return nil, err
	}
	if result.MatchedCount == 0 {
		return nil, errors.New("trip not found")
	}

	var updated model.TripSession
	err = tripsCollection.FindOne(ctx, bson.M{"primaryidentifier": tripID}).Decode(&updated)
	if err != nil {
		return nil, err
	}

	return &updated, nil
}

func (s *MongoStore) CompleteTrip(ctx context.Context, tripID string) error {
	tripsCollection := database.GetCollection(tripsCollectionName)

	now := time.Now()

	var trip model.TripSession
	err := tripsCollection.FindOne(ctx, bson.M{"primaryidentifier": tripID}).Decode(&trip)
	if err != nil {
		return err
	}

	update := bson.M{"$set": bson.M{
		"status":               model.TripStatusCompleted,
		"currentlegindex":      len(trip.Route.Legs),
		"endtime":              now,
		"modificationdatetime": now,
	}}

	_, err = tripsCollection.UpdateOne(ctx, bson.M{"primaryidentifier": tripID}, update)

	return err
}

func (s *MongoStore) GetActiveTrip(ctx context.Context, userID string) (*model.TripSession, error) {
	tripsCollection := database.GetCollection(tripsCollectionName)

	var trip model.TripSession
	err := tripsCollection.FindOne(ctx, bson.M{
		"userid": userID,
		"status": model.TripStatusActive,
	}).Decode(&trip)

	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &trip, nil
}
