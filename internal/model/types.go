package model

import "time"

// RunSummary is the persisted outcome of solving one instance: what the
// batch CSV line records, plus the feasibility and coherence verdicts.
type RunSummary struct {
    ID          string    `json:"id"`
    Instance    string    `json:"instance"`
    Cost        int       `json:"cost"`
    ElapsedMs   float64   `json:"elapsedMs"`
    Assigned    [3]int    `json:"assigned"` // users dispatched per type
    Feasibility string    `json:"feasibility"`
    Coherence   string    `json:"coherence"`
    Seed        int64     `json:"seed,omitempty"`
    CreatedAt   time.Time `json:"createdAt"`
}
