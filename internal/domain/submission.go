package domain

import (
	"strings"
	"time"
)

// TimestampLayout matches ISO-8601 UTC with milliseconds, e.g. 2024-06-15T10:00:00.000Z
const TimestampLayout = "2006-01-02T15:04:05.000Z"

// Submission is the deck request collected from the user
type Submission struct {
	Topic      string `json:"topic" validate:"required,max=200"`
	WebhookURL string `json:"webhook_url" validate:"required,url,startswith=http"`
	SecretKey  string `json:"secret_key" validate:"max=512"`
}

// Normalize trims the topic and URL. The secret key is sent as typed.
func (s Submission) Normalize() Submission {
	return Submission{
		Topic:      strings.TrimSpace(s.Topic),
		WebhookURL: strings.TrimSpace(s.WebhookURL),
		SecretKey:  s.SecretKey,
	}
}

// HasSecret reports whether a non-blank secret key was given
func (s Submission) HasSecret() bool {
	return strings.TrimSpace(s.SecretKey) != ""
}

// WebhookPayload is the JSON body posted to the user's endpoint
type WebhookPayload struct {
	Topic         string `json:"topic"`
	Timestamp     string `json:"timestamp"`
	TriggeredFrom string `json:"triggered_from"`
	SecretKey     string `json:"secretKey,omitempty"`
}

// NewWebhookPayload builds the outbound body; a blank secret is omitted
func NewWebhookPayload(sub Submission, origin string, now time.Time) WebhookPayload {
	payload := WebhookPayload{
		Topic:         sub.Topic,
		Timestamp:     now.UTC().Format(TimestampLayout),
		TriggeredFrom: origin,
	}
	if sub.HasSecret() {
		payload.SecretKey = sub.SecretKey
	}
	return payload
}
