package store

import (
    "context"
    "database/sql"
    "errors"
    "time"

    "github.com/google/uuid"
    _ "github.com/jackc/pgx/v5/stdlib"

    "github.com/kevincorizi/PoliTO-CoIoTe/internal/model"
)

type Postgres struct {
    db *sql.DB
}

func NewPostgres(dsn string) (*Postgres, error) {
    db, err := sql.Open("pgx", dsn)
    if err != nil {
        return nil, err
    }
    if err := db.Ping(); err != nil {
        return nil, err
    }
    return &Postgres{db: db}, nil
}

func (p *Postgres) Ping(ctx context.Context) error { return p.db.PingContext(ctx) }

// Migrate creates the runs table if missing (dev helper).
func (p *Postgres) Migrate(ctx context.Context) error {
    _, err := p.db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS solver_runs (
        id UUID PRIMARY KEY,
        instance TEXT NOT NULL,
        cost BIGINT NOT NULL,
        elapsed_ms DOUBLE PRECISION NOT NULL,
        assigned_t0 INT NOT NULL,
        assigned_t1 INT NOT NULL,
        assigned_t2 INT NOT NULL,
        feasibility TEXT NOT NULL,
        coherence TEXT NOT NULL,
        seed BIGINT NOT NULL DEFAULT 0,
        created_at TIMESTAMPTZ NOT NULL DEFAULT now()
    )`)
    if err != nil { return err }
    _, err = p.db.ExecContext(ctx, `CREATE INDEX IF NOT EXISTS solver_runs_instance_idx ON solver_runs (instance, cost)`)
    return err
}

func (p *Postgres) SaveRun(ctx context.Context, run model.RunSummary) (string, error) {
    id := uuid.New()
    if run.CreatedAt.IsZero() { run.CreatedAt = time.Now().UTC() }
    _, err := p.db.ExecContext(ctx, `INSERT INTO solver_runs
        (id, instance, cost, elapsed_ms, assigned_t0, assigned_t1, assigned_t2, feasibility, coherence, seed, created_at)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)`,
        id, run.Instance, run.Cost, run.ElapsedMs, run.Assigned[0], run.Assigned[1], run.Assigned[2],
        run.Feasibility, run.Coherence, run.Seed, run.CreatedAt)
    if err != nil { return "", err }
    return id.String(), nil
}

func (p *Postgres) ListRuns(ctx context.Context, instance string, limit int) ([]model.RunSummary, error) {
    if limit <= 0 { limit = 50 }
    rows, err := p.db.QueryContext(ctx, `SELECT id::text, instance, cost, elapsed_ms, assigned_t0, assigned_t1, assigned_t2, feasibility, coherence, seed, created_at
        FROM solver_runs WHERE instance=$1 ORDER BY created_at DESC LIMIT $2`, instance, limit)
    if err != nil { return nil, err }
    defer func(){ _ = rows.Close() }()
    var out []model.RunSummary
    for rows.Next() {
        var r model.RunSummary
        if err := rows.Scan(&r.ID, &r.Instance, &r.Cost, &r.ElapsedMs, &r.Assigned[0], &r.Assigned[1], &r.Assigned[2], &r.Feasibility, &r.Coherence, &r.Seed, &r.CreatedAt); err != nil {
            return nil, err
        }
        out = append(out, r)
    }
    return out, rows.Err()
}

func (p *Postgres) BestRun(ctx context.Context, instance string) (model.RunSummary, error) {
    var r model.RunSummary
    err := p.db.QueryRowContext(ctx, `SELECT id::text, instance, cost, elapsed_ms, assigned_t0, assigned_t1, assigned_t2, feasibility, coherence, seed, created_at
        FROM solver_runs WHERE instance=$1 ORDER BY cost ASC, created_at ASC LIMIT 1`, instance).
        Scan(&r.ID, &r.Instance, &r.Cost, &r.ElapsedMs, &r.Assigned[0], &r.Assigned[1], &r.Assigned[2], &r.Feasibility, &r.Coherence, &r.Seed, &r.CreatedAt)
    if errors.Is(err, sql.ErrNoRows) { return model.RunSummary{}, ErrNotFound }
    if err != nil { return model.RunSummary{}, err }
    return r, nil
}
