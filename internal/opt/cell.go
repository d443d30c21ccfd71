package opt

import (
	"fmt"
	"sort"
)

// Cell is the mutable multiset of users placed at one destination, and
// doubles as the reservoir of not-yet-assigned users (demand 0). The
// backing map is never exposed; all mutation goes through Assign/Add/
// Remove so that the fulfilled counter moves in the same step as the
// structural change.
type Cell struct {
	p           *Problem
	assignments map[User]int
	typeIndex   [][]User // users grouped by type, in current scan order
	demand      int
	fulfilled   int
	sortedFor   int // destination the index is sorted for, -1 when stale
}

func newCell(p *Problem, demand int) *Cell {
	return &Cell{
		p:           p,
		assignments: map[User]int{},
		typeIndex:   make([][]User, p.NTypes),
		demand:      demand,
		sortedFor:   -1,
	}
}

// Demand returns the task quota this cell must fulfill (0 for the reservoir).
func (c *Cell) Demand() int { return c.demand }

// Fulfilled returns the incrementally maintained count of tasks completed
// by the users currently held.
func (c *Cell) Fulfilled() int { return c.fulfilled }

// Count returns how many users of the given kind are held.
func (c *Cell) Count(u User) int { return c.assignments[u] }

// Assign overwrites the count for u with n. Existing assignments are
// replaced, not accumulated; use Add for that.
func (c *Cell) Assign(u User, n int) {
	current, ok := c.assignments[u]
	c.assignments[u] = n
	if ok {
		c.fulfilled -= current * c.p.TypeTasks[u.Type]
	} else {
		c.typeIndex[u.Type] = append(c.typeIndex[u.Type], u)
	}
	c.fulfilled += n * c.p.TypeTasks[u.Type]
	c.sortedFor = -1
}

// Add increments the count for u by n, creating the entry if absent.
func (c *Cell) Add(u User, n int) {
	if _, ok := c.assignments[u]; !ok {
		c.typeIndex[u.Type] = append(c.typeIndex[u.Type], u)
		c.sortedFor = -1
	}
	c.assignments[u] += n
	c.fulfilled += n * c.p.TypeTasks[u.Type]
}

// Remove decrements the count for u by n. When the count reaches zero the
// entry is dropped from both the map and the type index, so no zero counts
// linger. Removing an absent user, or more than are held, is an invariant
// violation and fails without touching the cell.
func (c *Cell) Remove(u User, n int) error {
	current, ok := c.assignments[u]
	if !ok {
		return fmt.Errorf("invalid removal: user %v not in cell", u)
	}
	if current < n {
		return fmt.Errorf("invalid removal: %d of user %v held, %d requested", current, u, n)
	}
	if current > n {
		c.assignments[u] = current - n
	} else {
		delete(c.assignments, u)
		idx := c.typeIndex[u.Type]
		for i, v := range idx {
			if v == u {
				c.typeIndex[u.Type] = append(idx[:i], idx[i+1:]...)
				break
			}
		}
		c.sortedFor = -1
	}
	c.fulfilled -= n * c.p.TypeTasks[u.Type]
	return nil
}

// AddAll applies Add over a batch of (user, amount) pairs.
func (c *Cell) AddAll(counts map[User]int) {
	for u, n := range counts {
		c.Add(u, n)
	}
}

// RemoveAll applies Remove over a batch of (user, amount) pairs. It stops
// at the first invalid removal; callers treat that as a broken invariant,
// not a recoverable condition.
func (c *Cell) RemoveAll(counts map[User]int) error {
	for u, n := range counts {
		if err := c.Remove(u, n); err != nil {
			return err
		}
	}
	return nil
}

// TypeCount recomputes how many users of type m are held by scanning the
// type index. Derived on purpose, so it doubles as a coherence cross-check.
func (c *Cell) TypeCount(m int) int {
	count := 0
	for _, u := range c.typeIndex[m] {
		count += c.assignments[u]
	}
	return count
}

// AllTypeCounts returns TypeCount for every type.
func (c *Cell) AllTypeCounts() []int {
	counts := make([]int, c.p.NTypes)
	for m := range counts {
		counts[m] = c.TypeCount(m)
	}
	return counts
}

// sortFor orders every type index by ascending cost of sending that user
// to destination dest, stably, so extraction prefers the cheapest users.
// The ordering is cached per destination and invalidated by any mutation
// that changes index membership.
func (c *Cell) sortFor(dest int) {
	if c.sortedFor == dest {
		return
	}
	for m := range c.typeIndex {
		idx := c.typeIndex[m]
		sort.SliceStable(idx, func(a, b int) bool {
			return c.p.cost(idx[a], dest) < c.p.cost(idx[b], dest)
		})
	}
	c.sortedFor = dest
}

// ExtractFor picks which users, and how many of each, would satisfy the
// combination's per-type counts at destination dest, walking each type
// cheapest-first. The sort and the scan are one operation so a caller can
// never extract against a stale order. The cell itself is not modified;
// removal is a separate step.
func (c *Cell) ExtractFor(dest int, comb Combination) map[User]int {
	c.sortFor(dest)
	extraction := map[User]int{}
	for m := 0; m < c.p.NTypes; m++ {
		quota := comb.Counts[m]
		extracted := 0
		for _, u := range c.typeIndex[m] {
			if extracted >= quota {
				break
			}
			take := c.assignments[u]
			if take > quota-extracted {
				take = quota - extracted
			}
			extraction[u] = take
			extracted += take
		}
	}
	return extraction
}

// ComputeFulfilled recomputes the fulfilled counter from scratch. Test
// oracle for the incremental bookkeeping; not used on the hot path.
func (c *Cell) ComputeFulfilled() int {
	computed := 0
	for u, n := range c.assignments {
		computed += n * c.p.TypeTasks[u.Type]
	}
	return computed
}
