package store

import (
    "context"
    "errors"

    "github.com/kevincorizi/PoliTO-CoIoTe/internal/model"
)

// Store is the run-history persistence interface. It records outcomes of
// solver runs, never solver state: runs are not resumable.
type Store interface {
    SaveRun(ctx context.Context, run model.RunSummary) (id string, err error)
    ListRuns(ctx context.Context, instance string, limit int) ([]model.RunSummary, error)
    BestRun(ctx context.Context, instance string) (model.RunSummary, error)
}

var ErrNotFound = errors.New("not found")
