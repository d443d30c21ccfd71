//go:build postgres_integration

package store

import (
    "context"
    "os"
    "testing"

    "github.com/kevincorizi/PoliTO-CoIoTe/internal/model"
)

func TestPostgresRoundTrip(t *testing.T) {
    dsn := os.Getenv("DATABASE_URL")
    if dsn == "" { t.Skip("DATABASE_URL not set; skipping integration test") }
    p, err := NewPostgres(dsn)
    if err != nil { t.Fatalf("NewPostgres: %v", err) }
    ctx := context.Background()
    if err := p.Ping(ctx); err != nil { t.Fatalf("Ping: %v", err) }
    if err := p.Migrate(ctx); err != nil { t.Fatalf("Migrate: %v", err) }

    id, err := p.SaveRun(ctx, model.RunSummary{Instance: "it_test", Cost: 11, Feasibility: "FEASIBLE", Coherence: "COHERENT"})
    if err != nil { t.Fatalf("SaveRun: %v", err) }
    if id == "" { t.Fatal("empty id") }
    runs, err := p.ListRuns(ctx, "it_test", 1)
    if err != nil { t.Fatalf("ListRuns: %v", err) }
    if len(runs) == 0 { t.Fatal("no runs listed") }
    if _, err := p.BestRun(ctx, "it_test"); err != nil { t.Fatalf("BestRun: %v", err) }
}
