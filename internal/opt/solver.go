package opt

import (
	"math/rand"
	"time"
)

// DefaultBudget is the wall-clock budget for the restart loop, matching
// the threshold the solver was tuned against.
const DefaultBudget = 4950 * time.Millisecond

// AttemptInfo describes one finished greedy attempt, for progress hooks.
type AttemptInfo struct {
	Attempt int
	Cost    int
	Best    bool
	Elapsed time.Duration
}

// Solver runs time-boxed random-restart greedy construction over one
// problem and keeps the cheapest solution seen. Attempts are independent:
// each builds a fresh Solution from the shared read-only Problem, so the
// only randomness between them is the destination visitation order.
type Solver struct {
	Problem *Problem
	Budget  time.Duration // 0 means DefaultBudget
	Seed    int64         // 0 means time-derived

	// OnAttempt, when set, is called after every attempt and after a
	// recovery pass (Attempt < 0 marks recovery).
	OnAttempt func(AttemptInfo)

	now func() time.Time // injectable clock for the stopping guard
}

// New returns a Solver with the default budget and wall clock.
func New(p *Problem) *Solver {
	return &Solver{Problem: p, Budget: DefaultBudget, now: time.Now}
}

func (s *Solver) clock() time.Time {
	if s.now == nil {
		return time.Now()
	}
	return s.now()
}

// Solve runs greedy attempts back-to-back until starting another one is
// predicted to overrun the budget, keeping the cheapest. At least one
// attempt always runs; an attempt in flight is never preempted. If the
// retained best is infeasible it is discarded for the deterministic
// recovery solution. ElapsedMillis on the returned solution covers the
// whole call.
func (s *Solver) Solve() (*Solution, error) {
	start := s.clock()
	budget := s.Budget
	if budget <= 0 {
		budget = DefaultBudget
	}
	seed := s.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	var best *Solution
	bestCost := 0
	var lastAttempt time.Duration
	attempt := 0
	for attempt == 0 || s.clock().Sub(start)+lastAttempt < budget {
		before := s.clock()
		sol, err := s.greedy(rng)
		if err != nil {
			return nil, err
		}
		lastAttempt = s.clock().Sub(before)
		attempt++
		improved := best == nil || sol.TotalCost() < bestCost
		if improved {
			best = sol
			bestCost = sol.TotalCost()
		}
		if s.OnAttempt != nil {
			s.OnAttempt(AttemptInfo{Attempt: attempt, Cost: sol.TotalCost(), Best: improved, Elapsed: lastAttempt})
		}
	}

	if s.Problem.CheckFeasibility(best) != Feasible {
		recovered, err := s.Recover()
		if err != nil {
			return nil, err
		}
		best = recovered
		if s.OnAttempt != nil {
			s.OnAttempt(AttemptInfo{Attempt: -1, Cost: best.TotalCost(), Elapsed: s.clock().Sub(start)})
		}
	}

	best.ElapsedMillis = float64(s.clock().Sub(start)) / float64(time.Millisecond)
	return best, nil
}

// greedy builds one solution for a uniformly random visitation order of
// the destinations with non-zero demand. For each destination it asks the
// generator for candidate covers capped by what is both needed and
// available, prices every candidate against the cheapest-first reservoir
// extraction, and materializes the best of the minimum-cost tie set.
// Construction stops outright once the pool cannot cover a destination;
// the partial result still competes on cost with the other attempts.
func (s *Solver) greedy(rng *rand.Rand) (*Solution, error) {
	p := s.Problem
	sol := NewSolution(p)

	order := destinationsWithDemand(p)
	rng.Shuffle(len(order), func(a, b int) { order[a], order[b] = order[b], order[a] })

	available := sol.unassigned.AllTypeCounts()
	possibleTasks := 0
	for m := 0; m < p.NTypes; m++ {
		possibleTasks += available[m] * p.TypeTasks[m]
	}

	for _, j := range order {
		toDo := p.Demand[j]
		if possibleTasks < toDo {
			break
		}

		var dispatchable [3]int
		for m := 0; m < p.NTypes; m++ {
			required := ceilDiv(toDo, p.TypeTasks[m])
			if required < available[m] {
				dispatchable[m] = required
			} else {
				dispatchable[m] = available[m]
			}
		}
		combinations := p.Combinations(toDo, dispatchable)
		if len(combinations) == 0 {
			continue
		}

		var tied []Combination
		bestCost := -1
		for _, comb := range combinations {
			extraction := sol.unassigned.ExtractFor(j, comb)
			cost := 0
			for u, n := range extraction {
				cost += p.cost(u, j) * n
			}
			switch {
			case bestCost < 0 || cost < bestCost:
				tied = append(tied[:0], comb)
				bestCost = cost
			case cost == bestCost:
				tied = append(tied, comb)
			}
		}

		chosen := bestByOrdering(tied)
		extraction := sol.unassigned.ExtractFor(j, chosen)
		if err := sol.apply(j, extraction); err != nil {
			return nil, err
		}
		for u, n := range extraction {
			available[u.Type] -= n
			possibleTasks -= n * p.TypeTasks[u.Type]
		}
	}
	return sol, nil
}

// bestByOrdering picks the single best combination by residual magnitude
// then penalty.
func bestByOrdering(combs []Combination) Combination {
	best := combs[0]
	for _, c := range combs[1:] {
		if c.Better(best) {
			best = c
		}
	}
	return best
}

func destinationsWithDemand(p *Problem) []int {
	var out []int
	for j := 0; j < p.NCells; j++ {
		if p.Demand[j] != 0 {
			out = append(out, j)
		}
	}
	return out
}
