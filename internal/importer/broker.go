package importer

import "sync"

// subscriberBuffer is the per-subscriber event buffer. A subscriber
// that falls further behind than this starts losing events rather than
// stalling the processing pass.
const subscriberBuffer = 64

// Subscriber is one live observer of a task's progress events.
type Subscriber struct {
	events chan Event
}

// Events returns the subscriber's receive channel. It is closed when
// the subscriber is unsubscribed.
func (s *Subscriber) Events() <-chan Event { return s.events }

// Broker fans progress events out to the live subscribers of each task.
// There is no buffering or replay: a subscriber that connects after
// events were published will not see them, and recovers current state
// through the synchronous task view instead.
type Broker struct {
	mu   sync.RWMutex
	subs map[string]map[*Subscriber]bool
}

// NewBroker creates an empty broker.
func NewBroker() *Broker {
	return &Broker{subs: make(map[string]map[*Subscriber]bool)}
}

// Subscribe registers a new subscriber for a task id. Subscribing to a
// task with no prior subscribers, or to one that does not exist yet, is
// not an error.
func (b *Broker) Subscribe(taskID string) *Subscriber {
	sub := &Subscriber{events: make(chan Event, subscriberBuffer)}

	b.mu.Lock()
	defer b.mu.Unlock()

	if b.subs[taskID] == nil {
		b.subs[taskID] = make(map[*Subscriber]bool)
	}
	b.subs[taskID][sub] = true
	return sub
}

// Unsubscribe removes one subscriber and closes its channel. The
// task's channel entry is dropped once its subscriber set is empty.
// Unsubscribing twice, or from an unknown task, is a no-op.
func (b *Broker) Unsubscribe(taskID string, sub *Subscriber) {
	b.mu.Lock()
	defer b.mu.Unlock()

	set, ok := b.subs[taskID]
	if !ok {
		return
	}
	if _, registered := set[sub]; !registered {
		return
	}

	delete(set, sub)
	close(sub.events)
	if len(set) == 0 {
		delete(b.subs, taskID)
	}
}

// Publish delivers an event to every current subscriber of the task.
// Sends never block: a subscriber whose buffer is full misses the
// event, and the remaining subscribers still receive it.
func (b *Broker) Publish(taskID string, ev Event) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	for sub := range b.subs[taskID] {
		select {
		case sub.events <- ev:
		default:
			// Subscriber is not keeping up, skip this event.
		}
	}
}

// SubscriberCount returns how many subscribers a task currently has.
func (b *Broker) SubscriberCount(taskID string) int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subs[taskID])
}
