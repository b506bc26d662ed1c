package pubsub

// PubSubClient publishes msgpack encoded events and decodes received ones.
type PubSubClient interface {
	SendMessage(topic EventType, data any) error
	ProcessMessage(data []byte, returnValue any) error
	Close()
}
