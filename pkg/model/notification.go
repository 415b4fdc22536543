package model

import "time"

type NotificationUrgency string

const (
	NotificationUrgencyNormal NotificationUrgency = "Normal"
	NotificationUrgencyHigh   NotificationUrgency = "High"
)

type Notification struct {
	TargetUser string

	Title   string
	Message string

	Urgency NotificationUrgency
}

type UserPushNotificationTarget struct {
	UserID                string `bson:"userid"`
	PushNotificationToken string `bson:"pushnotificationtoken"`

	ModificationDateTime time.Time `bson:"modificationdatetime"`
}
