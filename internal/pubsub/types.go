package pubsub

import "cloud.google.com/go/pubsub"

type client struct {
	client   *pubsub.Client
	teardown func()
}

// EventType represents the type of event/message sent via pubsub.
// It doubles as the topic name.
type EventType string

const (
	EventFinalizeGame EventType = "finalize-game"
)

// FinalizeGameEvent asks for a game to be finalized and aggregated.
type FinalizeGameEvent struct {
	TournamentID string `msgpack:"tournament_id"`
	GameID       string `msgpack:"game_id"`
	RequestedBy  string `msgpack:"requested_by,omitempty"`
}

// PushRequest is the body Pub/Sub posts to push subscriptions.
type PushRequest struct {
	Message struct {
		Data      []byte `json:"data,omitempty"`
		ID        string `json:"id"`
		MessageID string `json:"messageId"`
	} `json:"message"`
	Subscription string `json:"subscription"`
}
