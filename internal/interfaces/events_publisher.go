package interfaces

// EventPublisher delivers domain events, such as events.TransactionRecorded, to a topic.
type EventPublisher interface {
	Publish(topic string, event any) error
}
