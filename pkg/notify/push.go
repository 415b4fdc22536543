package notify

import (
	"context"
	"encoding/base64"
	"errors"
	"os"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/messaging"
	"github.com/rs/zerolog/log"
	"github.com/wayfarer-app/wayfarer/pkg/database"
	"github.com/wayfarer-app/wayfarer/pkg/model"
	"go.mongodb.org/mongo-driver/bson"
	"google.golang.org/api/option"
)

// PushSink sends notifications over Firebase Cloud Messaging.
type PushSink struct {
	FirebaseApp *firebase.App
}

func (s *PushSink) Setup() error {
	fireBaseAuthKey := os.Getenv("WAYFARER_FIREBASE_SERVICE_ACCOUNT")

	decodedKey, err := base64.StdEncoding.DecodeString(fireBaseAuthKey)
	if err != nil {
		return err
	}

	opts := []option.ClientOption{option.WithCredentialsJSON(decodedKey)}

	app, err := firebase.NewApp(context.Background(), nil, opts...)

	if err != nil {
		return err
	}

	s.FirebaseApp = app

	return nil
}

func (s *PushSink) Show(notification model.Notification) error {
	userPushNotificationTargetCollection := database.GetCollection("user_push_notification_target")
	var userPushNotificationTarget *model.UserPushNotificationTarget

	userPushNotificationTargetCollection.FindOne(context.Background(), bson.M{
		"userid": notification.TargetUser,
	}).Decode(&userPushNotificationTarget)

	if userPushNotificationTarget == nil {
		return errors.New("failed to find user token")
	}

	fcmClient, err := s.FirebaseApp.Messaging(context.Background())

	if err != nil {
		return err
	}

	message := &messaging.Message{
		Notification: &messaging.Notification{
			Title: notification.Title,
			Body:  notification.Message,
		},
		Token: userPushNotificationTarget.PushNotificationToken,
	}

	if notification.Urgency == model.NotificationUrgencyHigh {
		message.Android = &messaging.AndroidConfig{
			Priority: "high",
		}
	}

	_, err = fcmClient.Send(context.Background(), message)

	if err != nil {
		return err
	}

	log.Info().Str("target", notification.TargetUser).Str("urgency", string(notification.Urgency)).Msg("Sent Push Notification")

	return nil
}

// HasRegisteredTarget reports whether the user has registered a push token.
// Users without one have not granted notification permission.
func HasRegisteredTarget(userID string) bool {
	userPushNotificationTargetCollection := database.GetCollection("user_push_notification_target")

	count, err := userPushNotificationTargetCollection.CountDocuments(context.Background(), bson.M{
		"userid": userID,
	})
	if err != nil {
		log.Error().Err(err).Str("user", userID).Msg("Failed to check push notification target")
		return false
	}

	return count > 0
}
