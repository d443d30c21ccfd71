package opt

// Combination is one candidate way of covering a task demand with the
// three user types: Counts[m] users of type m, the overshoot over the
// demand (Residual, always >= 0 by construction) and the total number of
// users consumed (Penalty). Combinations are transient, generated per
// destination per iteration.
type Combination struct {
	Counts   [3]int
	Residual int
	Penalty  int
}

// Better reports whether c beats o: smaller residual magnitude wins, ties
// go to the combination that consumes fewer users.
func (c Combination) Better(o Combination) bool {
	cr, or := c.Residual, o.Residual
	if cr < 0 {
		cr = -cr
	}
	if or < 0 {
		or = -or
	}
	if cr != or {
		return cr < or
	}
	return c.Penalty < o.Penalty
}

// ceilDiv returns ceil(a/b) for positive b.
func ceilDiv(a, b int) int {
	return (a + b - 1) / b
}

// Combinations enumerates the candidate covers for toDo tasks given the
// per-type availability caps. The per-type search space is bounded by
// ceil(toDo/TypeTasks[m]) on top of availability, and for each (v0, v1)
// pair only the first v2 that reaches coverage is kept: a larger v2 would
// add penalty without being needed. Selection by realized cost happens at
// the caller, not here. The generator is specialized to exactly three
// user types.
func (p *Problem) Combinations(toDo int, avail [3]int) []Combination {
	var max [3]int
	for m := 0; m < 3; m++ {
		max[m] = ceilDiv(toDo, p.TypeTasks[m])
		if avail[m] < max[m] {
			max[m] = avail[m]
		}
	}
	t0, t1, t2 := p.TypeTasks[0], p.TypeTasks[1], p.TypeTasks[2]

	var combinations []Combination
	for v0 := 0; v0 <= max[0]; v0++ {
		for v1 := 0; v1 <= max[1]; v1++ {
			for v2 := 0; v2 <= max[2]; v2++ {
				if v0 == 0 && v1 == 0 && v2 == 0 {
					continue
				}
				total := v0*t0 + v1*t1 + v2*t2
				if total >= toDo {
					combinations = append(combinations, Combination{
						Counts:   [3]int{v0, v1, v2},
						Residual: total - toDo,
						Penalty:  v0 + v1 + v2,
					})
					break
				}
			}
		}
	}
	return combinations
}
