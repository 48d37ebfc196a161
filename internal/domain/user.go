package domain

import "time"

// User represents a bot user
type User struct {
	UserID     int64
	Authorized bool
	WebhookURL string
	CreatedAt  time.Time
}

// UserState represents where the user is in the deck form dialogue
type UserState string

const (
	StateIdle            UserState = "idle"
	StateWaitingTopic    UserState = "waiting_topic"
	StateWaitingWebhook  UserState = "waiting_webhook"
	StateWaitingSecret   UserState = "waiting_secret"
	StateWaitingPassword UserState = "waiting_password"
)

// StateData holds the partially filled form for the user's current state
type StateData struct {
	State      UserState
	Topic      string
	WebhookURL string
}

// Submission returns the form collected so far
func (d *StateData) Submission(secret string) Submission {
	return Submission{
		Topic:      d.Topic,
		WebhookURL: d.WebhookURL,
		SecretKey:  secret,
	}
}
