package opt

import "testing"

func combProblem(t *testing.T, typeTasks []int) *Problem {
	t.Helper()
	return &Problem{NCells: 1, NPeriods: 1, NTypes: 3, TypeTasks: typeTasks}
}

func TestCombinationsCoverDemandWithinCaps(t *testing.T) {
	p := combProblem(t, []int{2, 1, 3})
	for _, tc := range []struct {
		toDo  int
		avail [3]int
	}{
		{5, [3]int{3, 5, 2}},
		{1, [3]int{1, 1, 1}},
		{7, [3]int{0, 10, 0}},
		{4, [3]int{2, 0, 2}},
	} {
		combs := p.Combinations(tc.toDo, tc.avail)
		if len(combs) == 0 {
			t.Fatalf("toDo=%d avail=%v: no combinations", tc.toDo, tc.avail)
		}
		seen := map[[2]int]int{}
		for _, c := range combs {
			total := 0
			for m := 0; m < 3; m++ {
				if c.Counts[m] > tc.avail[m] {
					t.Fatalf("toDo=%d: %v exceeds avail %v", tc.toDo, c.Counts, tc.avail)
				}
				total += c.Counts[m] * p.TypeTasks[m]
			}
			if total < tc.toDo {
				t.Fatalf("toDo=%d: %v covers only %d", tc.toDo, c.Counts, total)
			}
			if c.Residual != total-tc.toDo {
				t.Fatalf("residual mismatch: got %d, want %d", c.Residual, total-tc.toDo)
			}
			if c.Penalty != c.Counts[0]+c.Counts[1]+c.Counts[2] {
				t.Fatalf("penalty mismatch for %v", c.Counts)
			}
			seen[[2]int{c.Counts[0], c.Counts[1]}]++
		}
		for k, n := range seen {
			if n > 1 {
				t.Fatalf("pair %v produced %d combinations, want at most one", k, n)
			}
		}
	}
}

func TestCombinationsExcludeAllZero(t *testing.T) {
	p := combProblem(t, []int{2, 1, 3})
	// demand 0 is never asked for, but the all-zero triple must still be
	// excluded when a single user already covers
	for _, c := range p.Combinations(1, [3]int{2, 2, 2}) {
		if c.Counts == [3]int{0, 0, 0} {
			t.Fatal("all-zero combination returned")
		}
	}
}

func TestCombinationsBreakOnFirstCover(t *testing.T) {
	p := combProblem(t, []int{2, 1, 3})
	// with v0=0, v1=0 the first covering v2 for toDo=4 is 2; v2=3 must
	// not appear for that pair
	for _, c := range p.Combinations(4, [3]int{0, 0, 5}) {
		if c.Counts[0] == 0 && c.Counts[1] == 0 && c.Counts[2] != 2 {
			t.Fatalf("expected minimal v2=2, got %v", c.Counts)
		}
	}
}

func TestCombinationOrdering(t *testing.T) {
	a := Combination{Counts: [3]int{1, 0, 0}, Residual: 1, Penalty: 1}
	b := Combination{Counts: [3]int{0, 3, 0}, Residual: 0, Penalty: 3}
	if !b.Better(a) {
		t.Fatal("smaller residual should win over smaller penalty")
	}
	c := Combination{Counts: [3]int{0, 0, 1}, Residual: 1, Penalty: 1}
	d := Combination{Counts: [3]int{2, 0, 0}, Residual: 1, Penalty: 2}
	if !c.Better(d) {
		t.Fatal("penalty should break residual ties")
	}
	if c.Better(c) {
		t.Fatal("a combination is not better than itself")
	}
}
