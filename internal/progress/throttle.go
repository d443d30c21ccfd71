package progress

import "golang.org/x/time/rate"

// Throttled wraps a Broker and drops plain attempt events beyond the
// configured rate; a fast restart loop can finish thousands of attempts
// per second and subscribers only need a sample. New-best, recovery and
// completion events always pass.
type Throttled struct {
    Broker
    lim *rate.Limiter
}

func NewThrottled(b Broker, perSec float64, burst int) *Throttled {
    return &Throttled{Broker: b, lim: rate.NewLimiter(rate.Limit(perSec), burst)}
}

func (t *Throttled) Publish(instance string, evt Event) {
    if evt.Type == "attempt" && !t.lim.Allow() {
        return
    }
    t.Broker.Publish(instance, evt)
}
