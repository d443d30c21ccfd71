// Package progress fans out solve-progress events to observers. The
// default broker is in-process; with REDIS_URL set events travel over
// Redis pub/sub so observers can watch a batch run from another process.
package progress

import (
    "sync"
)

// Event is one step of a solve: a finished attempt, a new best, a
// recovery pass, or run completion.
type Event struct {
    Type      string  `json:"type"` // attempt | best | recovered | done
    Instance  string  `json:"instance"`
    Attempt   int     `json:"attempt,omitempty"`
    Cost      int     `json:"cost"`
    ElapsedMs float64 `json:"elapsedMs,omitempty"`
}

// Broker publishes events per instance and fans them out to subscribers.
type Broker interface {
    Subscribe(instance string) chan Event
    Unsubscribe(instance string, ch chan Event)
    Publish(instance string, evt Event)
}

// Memory is the in-process broker.
type Memory struct {
    mu   sync.Mutex
    subs map[string]map[chan Event]struct{} // instance -> set of channels
}

func NewMemory() *Memory {
    return &Memory{subs: map[string]map[chan Event]struct{}{}}
}

func (b *Memory) Subscribe(instance string) chan Event {
    ch := make(chan Event, 8)
    b.mu.Lock()
    if b.subs[instance] == nil { b.subs[instance] = map[chan Event]struct{}{} }
    b.subs[instance][ch] = struct{}{}
    b.mu.Unlock()
    return ch
}

func (b *Memory) Unsubscribe(instance string, ch chan Event) {
    b.mu.Lock()
    if m := b.subs[instance]; m != nil {
        delete(m, ch)
        if len(m) == 0 { delete(b.subs, instance) }
    }
    b.mu.Unlock()
    close(ch)
}

func (b *Memory) Publish(instance string, evt Event) {
    b.mu.Lock()
    m := b.subs[instance]
    for ch := range m {
        select { case ch <- evt: default: }
    }
    b.mu.Unlock()
}
