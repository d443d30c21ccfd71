// Command coiote solves crowd-dispatch instances: it reads a problem
// file, runs the time-boxed restart solver, and reports the result as a
// CSV summary line, a verbose assignment listing, an optimality gap, or
// a feasibility verdict.
package main

import (
    "context"
    "flag"
    "fmt"
    "log"
    "os"
    "time"

    "github.com/kevincorizi/PoliTO-CoIoTe/internal/buildinfo"
    "github.com/kevincorizi/PoliTO-CoIoTe/internal/config"
    "github.com/kevincorizi/PoliTO-CoIoTe/internal/live"
    "github.com/kevincorizi/PoliTO-CoIoTe/internal/loader"
    "github.com/kevincorizi/PoliTO-CoIoTe/internal/metrics"
    "github.com/kevincorizi/PoliTO-CoIoTe/internal/model"
    "github.com/kevincorizi/PoliTO-CoIoTe/internal/opt"
    "github.com/kevincorizi/PoliTO-CoIoTe/internal/progress"
    "github.com/kevincorizi/PoliTO-CoIoTe/internal/report"
    "github.com/kevincorizi/PoliTO-CoIoTe/internal/store"
)

type inputList []string

func (l *inputList) String() string { return fmt.Sprint(*l) }
func (l *inputList) Set(v string) error { *l = append(*l, v); return nil }

func main() {
    var inputs inputList
    flag.Var(&inputs, "i", "input instance file (repeatable for batch runs)")
    output := flag.String("o", "", "append a CSV summary line per instance to this file")
    solution := flag.String("s", "", "append the verbose solution per instance to this file")
    optima := flag.String("os", "", "optimal-cost listing to compare against")
    testMode := flag.Bool("test", false, "print a feasibility verdict instead of results")
    cfgPath := flag.String("config", "", "YAML config file")
    budget := flag.Duration("budget", 0, "override the solve time budget")
    seed := flag.Int64("seed", 0, "random seed (0 = time-derived)")
    flag.Parse()

    if len(inputs) == 0 {
        printHelp()
        return
    }

    cfg, err := config.Load(*cfgPath)
    if err != nil {
        log.Fatalf("config: %v", err)
    }
    if *budget > 0 { cfg.BudgetMs = int(budget.Milliseconds()) }
    if *seed != 0 { cfg.Seed = *seed }

    log.Printf("coiote %s", buildinfo.String())

    var broker progress.Broker
    if cfg.RedisURL != "" {
        rb, err := progress.NewRedisBroker(cfg.RedisURL)
        if err != nil { log.Fatalf("redis broker: %v", err) }
        broker = rb
    } else {
        broker = progress.NewMemory()
    }
    pub := progress.NewThrottled(broker, 20, 20)

    var runs store.Store
    if cfg.DatabaseURL != "" {
        pg, err := store.NewPostgres(cfg.DatabaseURL)
        if err != nil { log.Fatalf("store: %v", err) }
        if err := pg.Migrate(context.Background()); err != nil { log.Fatalf("migrate: %v", err) }
        runs = pg
    } else {
        runs = store.NewMemory()
    }

    metrics.RegisterDefault()
    if cfg.MetricsAddr != "" {
        srv := live.NewServer(broker)
        go func() {
            if err := srv.ListenAndServe(cfg.MetricsAddr); err != nil {
                log.Printf("observation endpoint: %v", err)
            }
        }()
    }

    exit := 0
    for _, input := range inputs {
        if err := solveOne(input, cfg, pub, runs, *output, *solution, *optima, *testMode); err != nil {
            log.Printf("%s: %v", input, err)
            exit = 1
        }
    }
    os.Exit(exit)
}

func solveOne(input string, cfg config.Config, pub progress.Broker, runs store.Store, output, solution, optima string, testMode bool) error {
    p, err := loader.LoadFile(input)
    if err != nil {
        return err
    }
    instance := report.InstanceName(input)

    s := opt.New(p)
    if b := cfg.Budget(); b > 0 { s.Budget = b }
    s.Seed = cfg.Seed
    s.OnAttempt = func(ai opt.AttemptInfo) {
        if ai.Attempt < 0 {
            metrics.Recoveries.WithLabelValues(instance).Inc()
            pub.Publish(instance, progress.Event{Type: "recovered", Instance: instance, Cost: ai.Cost, ElapsedMs: float64(ai.Elapsed) / float64(time.Millisecond)})
            return
        }
        metrics.SolveAttempts.WithLabelValues(instance).Inc()
        metrics.AttemptDuration.WithLabelValues(instance).Observe(ai.Elapsed.Seconds())
        evt := progress.Event{Type: "attempt", Instance: instance, Attempt: ai.Attempt, Cost: ai.Cost}
        if ai.Best {
            evt.Type = "best"
            metrics.BestCost.WithLabelValues(instance).Set(float64(ai.Cost))
        }
        pub.Publish(instance, evt)
    }

    sol, err := s.Solve()
    if err != nil {
        return err
    }
    feas := p.CheckFeasibility(sol)
    coh := sol.CheckCoherence()
    if coh != opt.Coherent {
        log.Printf("warning %s: incoherent solution: %v", instance, coh)
    }
    pub.Publish(instance, progress.Event{Type: "done", Instance: instance, Cost: sol.TotalCost(), ElapsedMs: sol.ElapsedMillis})

    if _, err := runs.SaveRun(context.Background(), model.RunSummary{
        Instance:    instance,
        Cost:        sol.TotalCost(),
        ElapsedMs:   sol.ElapsedMillis,
        Assigned:    [3]int{sol.CountOfType(0), sol.CountOfType(1), sol.CountOfType(2)},
        Feasibility: feas.String(),
        Coherence:   coh.String(),
        Seed:        cfg.Seed,
    }); err != nil {
        log.Printf("warning %s: saving run: %v", instance, err)
    }

    if testMode {
        switch feas {
        case opt.Feasible:
            fmt.Printf("%s: Solution is feasible\n", instance)
        case opt.UnfDemand:
            fmt.Printf("%s: Solution is not feasible: demand not satisfied\n", instance)
        case opt.UnfCustomers:
            fmt.Printf("%s: Solution is not feasible: exceeded number of available users\n", instance)
        }
        return nil
    }

    if output != "" {
        if err := report.AppendLine(output, report.SummaryLine(instance, sol)); err != nil {
            return fmt.Errorf("writing summary: %w", err)
        }
    }
    if solution != "" {
        if err := report.AppendText(solution, report.Verbose(p, sol)); err != nil {
            return fmt.Errorf("writing solution: %w", err)
        }
    }
    if optima != "" {
        gap, found, err := report.GapFromFile(optima, instance, sol.TotalCost())
        if err != nil {
            return fmt.Errorf("reading optima: %w", err)
        }
        if found {
            fmt.Printf("%s: %.3f percent\n", instance, gap)
        } else {
            fmt.Printf("%s Cost: %d\n", instance, sol.TotalCost())
        }
    }
    if output == "" && solution == "" && optima == "" {
        fmt.Printf("%s Cost: %d (%s, %.3fs)\n", instance, sol.TotalCost(), feas, sol.ElapsedMillis/1000)
    }
    return nil
}

func printHelp() {
    fmt.Println("Usage: coiote -i inputFile [-i more...] [-o summaryFile] [-s solutionFile] [-os optimaFile] [-test] [-config file] [-budget 5s] [-seed N]")
}
