package metrics

import (
    "sync"

    "github.com/prometheus/client_golang/prometheus"
    "github.com/prometheus/client_golang/prometheus/collectors"
)

var (
    // Registry is the dedicated Prometheus registry for the solver.
    Registry = prometheus.NewRegistry()
    // SolveAttempts counts finished greedy attempts per instance.
    SolveAttempts = prometheus.NewCounterVec(
        prometheus.CounterOpts{Name: "coiote_solve_attempts_total", Help: "Greedy construction attempts."},
        []string{"instance"},
    )
    // AttemptDuration records per-attempt wall-clock in seconds.
    AttemptDuration = prometheus.NewHistogramVec(
        prometheus.HistogramOpts{Name: "coiote_attempt_duration_seconds", Help: "Greedy attempt duration in seconds.", Buckets: []float64{.001, .005, .01, .05, .1, .25, .5, 1, 2.5, 5}},
        []string{"instance"},
    )
    // BestCost tracks the cheapest cost seen so far per instance.
    BestCost = prometheus.NewGaugeVec(
        prometheus.GaugeOpts{Name: "coiote_best_cost", Help: "Best solution cost retained so far."},
        []string{"instance"},
    )
    // Recoveries counts runs that fell back to the deterministic recovery pass.
    Recoveries = prometheus.NewCounterVec(
        prometheus.CounterOpts{Name: "coiote_recoveries_total", Help: "Runs recovered after an infeasible best."},
        []string{"instance"},
    )
)

// RegisterDefault registers collectors to the solver registry.
func RegisterDefault() {
    regOnce.Do(func(){
        Registry.MustRegister(SolveAttempts)
        Registry.MustRegister(AttemptDuration)
        Registry.MustRegister(BestCost)
        Registry.MustRegister(Recoveries)
        // Go/process collectors on our registry
        Registry.MustRegister(collectors.NewGoCollector())
        Registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
    })
}

var regOnce sync.Once
