package application

import "sync"

// Event is a change notification emitted after a successful store mutation.
// Consumers re-fetch a snapshot rather than reading payloads off the event.
type Event struct {
	Topic  string // "auth" or "memes"
	Action string // "login", "logout", "create", "vote", "comment", "flag"
	MemeID string
}

const (
	TopicAuth  = "auth"
	TopicMemes = "memes"
)

// Notifier fans change events out to in-process subscribers. Delivery is
// synchronous; subscribers must not block.
type Notifier struct {
	mu   sync.Mutex
	next int
	subs map[int]func(Event)
}

func NewNotifier() *Notifier {
	return &Notifier{subs: make(map[int]func(Event))}
}

// Subscribe registers fn and returns an unsubscribe func.
func (n *Notifier) Subscribe(fn func(Event)) func() {
	n.mu.Lock()
	defer n.mu.Unlock()
	id := n.next
	n.next++
	n.subs[id] = fn
	return func() {
		n.mu.Lock()
		defer n.mu.Unlock()
		delete(n.subs, id)
	}
}

// Publish delivers ev to all current subscribers.
func (n *Notifier) Publish(ev Event) {
	n.mu.Lock()
	fns := make([]func(Event), 0, len(n.subs))
	for _, fn := range n.subs {
		fns = append(fns, fn)
	}
	n.mu.Unlock()
	for _, fn := range fns {
		fn(ev)
	}
}
