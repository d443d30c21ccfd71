package opt

import "fmt"

// User identifies one homogeneous group of mobile participants by its
// origin cell, customer type, and time slot of availability. It is a
// value type: equality and map hashing go by the triple.
type User struct {
	Origin int
	Type   int
	Slot   int
}

func (u User) String() string {
	return fmt.Sprintf("(%d, %d, %d)", u.Origin, u.Type, u.Slot)
}

// Problem is the read-only cost model for one instance: the 4-dimensional
// cost tensor, per-type task rates, per-destination demand, and the initial
// user supply. The loader validates index bounds before handing one over;
// the solver never mutates it.
type Problem struct {
	NCells   int
	NPeriods int
	NTypes   int

	TypeTasks []int       // tasks one user of type m completes
	Costs     [][][][]int // [origin][dest][type][slot]
	Demand    []int       // tasks destination j requires
	Supply    map[User]int
}

// cost is a bounds-trusting accessor for the tensor.
func (p *Problem) cost(u User, dest int) int {
	return p.Costs[u.Origin][dest][u.Type][u.Slot]
}

// TotalDemand sums the task demand over all destinations.
func (p *Problem) TotalDemand() int {
	total := 0
	for _, d := range p.Demand {
		total += d
	}
	return total
}

// TotalCapacity sums TypeTasks-weighted supply, i.e. how many tasks the
// whole initial user pool could complete if fully dispatched.
func (p *Problem) TotalCapacity() int {
	total := 0
	for u, n := range p.Supply {
		total += n * p.TypeTasks[u.Type]
	}
	return total
}

// Feasibility classifies a constructed solution against the two hard
// constraint families: task demand per destination and user availability.
type Feasibility int

const (
	Feasible Feasibility = iota
	UnfDemand
	UnfCustomers
)

func (f Feasibility) String() string {
	switch f {
	case Feasible:
		return "FEASIBLE"
	case UnfDemand:
		return "UNF_DEMAND"
	case UnfCustomers:
		return "UNF_CUSTOMERS"
	}
	return "UNKNOWN"
}

// CheckFeasibility verifies demand first (per destination, in index order),
// then availability aggregated across all destinations. It never mutates
// the solution, so repeated calls return the same result.
func (p *Problem) CheckFeasibility(s *Solution) Feasibility {
	for j := 0; j < p.NCells; j++ {
		if s.cells[j].fulfilled < p.Demand[j] {
			return UnfDemand
		}
	}

	cumulative := map[User]int{}
	for _, c := range s.cells {
		for u, n := range c.assignments {
			cumulative[u] += n
		}
	}
	for u, assigned := range cumulative {
		if assigned > p.Supply[u] {
			return UnfCustomers
		}
	}
	return Feasible
}
