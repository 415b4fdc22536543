package database

import (
	"context"

	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func createIndexes() {
	createTripsIndexes()
	createAccountIndexes()
}

func createTripsIndexes() {
	tripsCollection := GetCollection("trips")
	userStatusIndexName := "TripUserStatus"
	_, err := tripsCollection.Indexes().CreateMany(context.Background(), []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "primaryidentifier", Value: 1}},
		},
		{
			Options: &options.IndexOptions{
				Name: &userStatusIndexName,
			},
			Keys: bson.D{
				{Key: "userid", Value: 1},
				{Key: "status", Value: 1},
			},
		},
		{
			Keys:    bson.D{{Key: "endtime", Value: 1}},
			Options: options.Index().SetExpireAfterSeconds(90 * 24 * 3600), // Expire completed trips after 90 days
		},
	}, options.CreateIndexes())
	if err != nil {
		log.Error().Err(err).Msg("Creating Index")
	}
}

func createAccountIndexes() {
	userPushNotificationTargetCollection := GetCollection("user_push_notification_target")
	_, err := userPushNotificationTargetCollection.Indexes().CreateMany(context.Background(), []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "userid", Value: 1}},
		},
	}, options.CreateIndexes())
	if err != nil {
		log.Error().Err(err).Msg("Creating Index")
	}
}
