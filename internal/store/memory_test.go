package store

import (
    "context"
    "errors"
    "testing"

    "github.com/kevincorizi/PoliTO-CoIoTe/internal/model"
)

func TestMemorySaveListBest(t *testing.T) {
    m := NewMemory()
    ctx := context.Background()

    id1, err := m.SaveRun(ctx, model.RunSummary{Instance: "inst", Cost: 30, Feasibility: "FEASIBLE"})
    if err != nil { t.Fatalf("save: %v", err) }
    id2, err := m.SaveRun(ctx, model.RunSummary{Instance: "inst", Cost: 20, Feasibility: "FEASIBLE"})
    if err != nil { t.Fatalf("save: %v", err) }
    if id1 == "" || id1 == id2 { t.Fatalf("ids must be unique and non-empty: %q %q", id1, id2) }

    runs, err := m.ListRuns(ctx, "inst", 0)
    if err != nil { t.Fatalf("list: %v", err) }
    if len(runs) != 2 { t.Fatalf("runs: %d", len(runs)) }
    if runs[0].Cost != 20 { t.Fatalf("newest first expected, got cost %d", runs[0].Cost) }

    runs, err = m.ListRuns(ctx, "inst", 1)
    if err != nil || len(runs) != 1 { t.Fatalf("limited list: %v %d", err, len(runs)) }

    best, err := m.BestRun(ctx, "inst")
    if err != nil { t.Fatalf("best: %v", err) }
    if best.Cost != 20 { t.Fatalf("best cost: %d", best.Cost) }
}

func TestMemoryBestRunNotFound(t *testing.T) {
    m := NewMemory()
    if _, err := m.BestRun(context.Background(), "nope"); !errors.Is(err, ErrNotFound) {
        t.Fatalf("want ErrNotFound, got %v", err)
    }
}
