package progress

import (
    "context"
    "encoding/json"
    "time"

    redis "github.com/redis/go-redis/v9"
)

// RedisBroker implements Broker over Redis Pub/Sub.
type RedisBroker struct {
    rdb *redis.Client
}

func NewRedisBroker(url string) (*RedisBroker, error) {
    opt, err := redis.ParseURL(url)
    if err != nil { return nil, err }
    return &RedisBroker{rdb: redis.NewClient(opt)}, nil
}

func (b *RedisBroker) Subscribe(instance string) chan Event {
    ch := make(chan Event, 16)
    ctx := context.Background()
    ps := b.rdb.Subscribe(ctx, b.chanName(instance))
    // initial consume to ensure subscription
    _, _ = ps.Receive(ctx)
    go func() {
        defer close(ch)
        for msg := range ps.Channel() {
            var evt Event
            if err := json.Unmarshal([]byte(msg.Payload), &evt); err == nil {
                select { case ch <- evt: default: }
            }
        }
    }()
    return ch
}

func (b *RedisBroker) Unsubscribe(instance string, ch chan Event) {
    // the reader goroutine exits when the pubsub channel closes; closing
    // our channel is enough for subscribers
    close(ch)
}

func (b *RedisBroker) Publish(instance string, evt Event) {
    ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
    defer cancel()
    data, _ := json.Marshal(evt)
    _ = b.rdb.Publish(ctx, b.chanName(instance), data).Err()
}

func (b *RedisBroker) chanName(instance string) string {
    return "coiote.progress." + instance
}
