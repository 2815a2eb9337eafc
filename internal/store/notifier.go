package store

import (
	"context"
	"sync"
	"time"
)

// Notifier carries "something changed" signals between writers and
// subscribers. Signals carry no data: subscribers re-read the ordered list.
type Notifier interface {
	Publish(ctx context.Context, topic string) error
	Subscribe(ctx context.Context, topic string) (<-chan struct{}, error)
}

// ChangeEvent - Wire payload for notifiers that cross a process boundary.
type ChangeEvent struct {
	Topic     string    `json:"topic"`
	Origin    string    `json:"origin"`
	Timestamp time.Time `json:"timestamp"`
}

// signal does a non-blocking send on a capacity-1 channel so bursts
// collapse into a single pending refresh.
func signal(ch chan struct{}) {
	select {
	case ch <- struct{}{}:
	default:
	}
}

// LocalNotifier - In-process fan-out for a single server instance.
type LocalNotifier struct {
	mu   sync.Mutex
	subs map[string]map[chan struct{}]struct{}
}

func NewLocalNotifier() *LocalNotifier {
	return &LocalNotifier{subs: make(map[string]map[chan struct{}]struct{})}
}

func (n *LocalNotifier) Publish(_ context.Context, topic string) error {
	n.mu.Lock()
	defer n.mu.Unlock()

	for ch := range n.subs[topic] {
		signal(ch)
	}
	return nil
}

func (n *LocalNotifier) Subscribe(ctx context.Context, topic string) (<-chan struct{}, error) {
	ch := make(chan struct{}, 1)

	n.mu.Lock()
	if n.subs[topic] == nil {
		n.subs[topic] = make(map[chan struct{}]struct{})
	}
	n.subs[topic][ch] = struct{}{}
	n.mu.Unlock()

	go func() {
		<-ctx.Done()
		n.mu.Lock()
		delete(n.subs[topic], ch)
		close(ch)
		n.mu.Unlock()
	}()

	return ch, nil
}
