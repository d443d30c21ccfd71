package store

import (
    "context"
    "sync"
    "time"

    "github.com/google/uuid"
    "github.com/kevincorizi/PoliTO-CoIoTe/internal/model"
)

// Memory is a simple in-memory store used when no DATABASE_URL is set.
type Memory struct {
    mu   sync.Mutex
    runs map[string][]model.RunSummary // instance -> runs, insertion order
}

func NewMemory() *Memory {
    return &Memory{runs: map[string][]model.RunSummary{}}
}

func (m *Memory) SaveRun(_ context.Context, run model.RunSummary) (string, error) {
    m.mu.Lock()
    defer m.mu.Unlock()
    run.ID = uuid.NewString()
    if run.CreatedAt.IsZero() { run.CreatedAt = time.Now().UTC() }
    m.runs[run.Instance] = append(m.runs[run.Instance], run)
    return run.ID, nil
}

func (m *Memory) ListRuns(_ context.Context, instance string, limit int) ([]model.RunSummary, error) {
    m.mu.Lock()
    defer m.mu.Unlock()
    runs := m.runs[instance]
    // newest first
    out := make([]model.RunSummary, 0, len(runs))
    for i := len(runs) - 1; i >= 0; i-- {
        out = append(out, runs[i])
        if limit > 0 && len(out) >= limit { break }
    }
    return out, nil
}

func (m *Memory) BestRun(_ context.Context, instance string) (model.RunSummary, error) {
    m.mu.Lock()
    defer m.mu.Unlock()
    runs := m.runs[instance]
    if len(runs) == 0 { return model.RunSummary{}, ErrNotFound }
    best := runs[0]
    for _, r := range runs[1:] {
        if r.Cost < best.Cost { best = r }
    }
    return best, nil
}
