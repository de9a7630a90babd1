package testutil

import (
	"context"
	"sync"

	"github.com/go4it-sports/starpath/pkg/pubsub"
)

type MockPublisher struct {
	PublishFunc func(context.Context, string, *pubsub.Pack) error
}

func (m *MockPublisher) Publish(ctx context.Context, topic string, pack *pubsub.Pack) error {
	if m.PublishFunc != nil {
		return m.PublishFunc(ctx, topic, pack)
	}

	return nil
}

// RecordPublisher keeps every published pack in memory.
type RecordPublisher struct {
	mutex sync.Mutex
	packs map[string][]*pubsub.Pack
}

func (p *RecordPublisher) Publish(ctx context.Context, topic string, pack *pubsub.Pack) error {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	if p.packs == nil {
		p.packs = make(map[string][]*pubsub.Pack)
	}

	p.packs[topic] = append(p.packs[topic], pack)
	return nil
}

func (p *RecordPublisher) Packs(topic string) []*pubsub.Pack {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	return append([]*pubsub.Pack(nil), p.packs[topic]...)
}
