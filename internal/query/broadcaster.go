// Package query holds the shared search text and fans it out to the list
// views subscribed to it.
package query

import (
	"strings"
	"sync"
)

// Normalize lowercases and trims raw search input.
func Normalize(text string) string {
	return strings.ToLower(strings.TrimSpace(text))
}

// Broadcaster is the single holder of the current search query. One
// broadcaster is shared by every view of an application shell, so the query
// carries over when the user switches views.
type Broadcaster struct {
	mu      sync.Mutex
	current string
	seq     uint64
	subs    map[int]*Subscription
	nextID  int
}

// NewBroadcaster returns a broadcaster with an empty query.
func NewBroadcaster() *Broadcaster {
	return &Broadcaster{subs: make(map[int]*Subscription)}
}

// Subscription is a registered listener. After Unsubscribe returns, its
// function is never called again.
type Subscription struct {
	b  *Broadcaster
	id int
	fn func(string)

	// deliver serializes calls to fn with Unsubscribe.
	deliver sync.Mutex
	active  bool
	// seen is the sequence of the last query passed to fn; older ones are
	// dropped so racing updates cannot leave fn on a superseded query.
	seen uint64
}

// Subscribe registers fn and immediately delivers the current query to it.
func (b *Broadcaster) Subscribe(fn func(query string)) *Subscription {
	b.mu.Lock()
	s := &Subscription{b: b, id: b.nextID, fn: fn, active: true}
	b.nextID++
	b.subs[s.id] = s
	current, seq := b.current, b.seq
	b.mu.Unlock()

	s.send(current, seq)
	return s
}

func (s *Subscription) send(q string, seq uint64) {
	s.deliver.Lock()
	defer s.deliver.Unlock()
	if !s.active || seq < s.seen {
		return
	}
	s.seen = seq
	s.fn(q)
}

// Unsubscribe releases the subscription. It blocks until an in-progress
// delivery to this subscription finishes, and is safe to call twice. It must
// not be called from inside the subscription's own callback.
func (s *Subscription) Unsubscribe() {
	s.b.mu.Lock()
	delete(s.b.subs, s.id)
	s.b.mu.Unlock()

	s.deliver.Lock()
	s.active = false
	s.deliver.Unlock()
}

// Update normalizes text, stores it and publishes it to every subscriber.
// It returns the normalized query.
func (b *Broadcaster) Update(text string) string {
	q := Normalize(text)
	b.mu.Lock()
	b.current = q
	b.seq++
	seq := b.seq
	subs := make([]*Subscription, 0, len(b.subs))
	for _, s := range b.subs {
		subs = append(subs, s)
	}
	b.mu.Unlock()

	for _, s := range subs {
		s.send(q, seq)
	}
	return q
}

// Clear resets the query to empty and publishes it.
func (b *Broadcaster) Clear() {
	b.Update("")
}

// Current returns the normalized query.
func (b *Broadcaster) Current() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.current
}

// Subscribers returns the number of live subscriptions.
func (b *Broadcaster) Subscribers() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.subs)
}
