package opt

import "sort"

// Solution is one (possibly partial) assignment of the user pool to the
// destination cells, plus the reservoir of everyone not yet dispatched.
// A fresh solution holds every user in the reservoir and is therefore
// infeasible by definition; it only ever changes through apply, which
// moves an extraction batch and updates cost and per-type totals in the
// same step.
type Solution struct {
	p              *Problem
	cells          []*Cell
	unassigned     *Cell
	totalCustomers []int
	totalCost      int

	// ElapsedMillis is the wall-clock cost of producing this solution,
	// set by the restart driver on whatever it returns.
	ElapsedMillis float64
}

// NewSolution builds the empty solution: one cell per destination and the
// whole supply in the reservoir.
func NewSolution(p *Problem) *Solution {
	s := &Solution{
		p:              p,
		cells:          make([]*Cell, p.NCells),
		unassigned:     newCell(p, 0),
		totalCustomers: make([]int, p.NTypes),
	}
	for j := 0; j < p.NCells; j++ {
		s.cells[j] = newCell(p, p.Demand[j])
	}
	for u, n := range p.Supply {
		s.unassigned.Add(u, n)
	}
	return s
}

// apply moves an extraction batch from the reservoir into destination j,
// updating both cells, the running cost and the per-type totals together.
// An invalid removal aborts before any destination-side change.
func (s *Solution) apply(j int, extraction map[User]int) error {
	if err := s.unassigned.RemoveAll(extraction); err != nil {
		return err
	}
	s.cells[j].AddAll(extraction)
	for u, n := range extraction {
		s.totalCost += s.p.cost(u, j) * n
		s.totalCustomers[u.Type] += n
	}
	return nil
}

// TotalCost returns the realized cost of all assignments so far.
func (s *Solution) TotalCost() int { return s.totalCost }

// CountOfType returns how many users of type m are assigned across all
// destinations.
func (s *Solution) CountOfType(m int) int { return s.totalCustomers[m] }

// Unassigned exposes the reservoir read-only operations.
func (s *Solution) Unassigned() *Cell { return s.unassigned }

// Cell returns the destination cell for j.
func (s *Solution) Cell(j int) *Cell { return s.cells[j] }

// Assignment is one non-zero (origin, destination, type, slot, count)
// quadruple of a solution, the unit the reporter formats.
type Assignment struct {
	Origin int
	Dest   int
	Type   int
	Slot   int
	Count  int
}

// Assignments enumerates all non-zero assignments, ordered by destination
// and then by origin, type and slot so output is deterministic.
func (s *Solution) Assignments() []Assignment {
	var out []Assignment
	for j, c := range s.cells {
		for u, n := range c.assignments {
			if n == 0 {
				continue
			}
			out = append(out, Assignment{Origin: u.Origin, Dest: j, Type: u.Type, Slot: u.Slot, Count: n})
		}
	}
	sort.Slice(out, func(a, b int) bool {
		x, y := out[a], out[b]
		if x.Dest != y.Dest {
			return x.Dest < y.Dest
		}
		if x.Origin != y.Origin {
			return x.Origin < y.Origin
		}
		if x.Type != y.Type {
			return x.Type < y.Type
		}
		return x.Slot < y.Slot
	})
	return out
}

// computeCost recomputes the solution cost from the assignments. Test
// oracle for the incremental counter; never on the hot path.
func (s *Solution) computeCost() int {
	cost := 0
	for j, c := range s.cells {
		for u, n := range c.assignments {
			cost += n * s.p.cost(u, j)
		}
	}
	return cost
}

// Coherence categorizes which derived counter, if any, disagrees with the
// value recomputed from the raw assignments. A mismatch is a diagnostic,
// not a fatal error: callers log it and keep the solution.
type Coherence int

const (
	Coherent Coherence = iota
	IncFulfilled
	IncCost
	IncCustomers
)

func (c Coherence) String() string {
	switch c {
	case Coherent:
		return "COHERENT"
	case IncFulfilled:
		return "INC_FULFILLED"
	case IncCost:
		return "INC_COST"
	case IncCustomers:
		return "INC_CUSTOMERS"
	}
	return "UNKNOWN"
}

// CheckCoherence cross-checks fulfilled per cell, then total cost, then
// per-type customer totals, returning the first mismatch found.
func (s *Solution) CheckCoherence() Coherence {
	for _, c := range s.cells {
		if c.ComputeFulfilled() != c.fulfilled {
			return IncFulfilled
		}
	}
	if s.computeCost() != s.totalCost {
		return IncCost
	}
	for m := 0; m < s.p.NTypes; m++ {
		typeCount := 0
		for _, c := range s.cells {
			typeCount += c.TypeCount(m)
		}
		if typeCount != s.totalCustomers[m] {
			return IncCustomers
		}
	}
	return Coherent
}
