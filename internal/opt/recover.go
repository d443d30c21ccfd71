package opt

import "sort"

// Recover is the deterministic fallback used when every greedy attempt
// came out infeasible. Destinations are visited smallest demand first, so
// when total capacity is tight many small destinations get satisfied
// rather than few large ones, and for each one the single best cover by
// residual-then-penalty is taken without the cost tie-break scan. One
// pass, no restarts. The result is feasible whenever total capacity
// covers total demand; otherwise it is the best partial coverage and the
// caller reports the remaining shortfall instead of crashing.
func (s *Solver) Recover() (*Solution, error) {
	p := s.Problem
	sol := NewSolution(p)

	order := destinationsWithDemand(p)
	sort.Slice(order, func(a, b int) bool { return p.Demand[order[a]] < p.Demand[order[b]] })

	available := sol.unassigned.AllTypeCounts()
	possibleTasks := 0
	for m := 0; m < p.NTypes; m++ {
		possibleTasks += available[m] * p.TypeTasks[m]
	}

	for _, j := range order {
		toDo := p.Demand[j]
		if possibleTasks < toDo {
			continue
		}
		combinations := p.Combinations(toDo, [3]int{available[0], available[1], available[2]})
		if len(combinations) == 0 {
			continue
		}
		chosen := bestByOrdering(combinations)
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
