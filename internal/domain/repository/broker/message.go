package broker

import "assetpipe/internal/domain/entity"

// Message is one change-feed entry delivered to a consumer group member.
type Message interface {
	ID() string
	Event() (entity.Event, error)
	Ack() error
}
