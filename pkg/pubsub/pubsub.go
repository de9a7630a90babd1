package pubsub

import (
	"context"
	"time"
)

// Pack is a message moving through a topic. Packs sharing a Key are delivered
// in the order they were published.
type Pack struct {
	Key []byte
	Msg []byte
}

type Publisher interface {
	Publish(ctx context.Context, topic string, pack *Pack) error
}

// SubscribeHandler handles one pack. t is the time the pack was published.
type SubscribeHandler func(ctx context.Context, pack *Pack, t time.Time)

type Subscriber interface {
	// Subscribe consumes the topics until ctx is done or Stop is called.
	Subscribe(ctx context.Context) error
	Stop(ctx context.Context) error
}
