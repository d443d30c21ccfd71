package loader

import (
	"strings"
	"testing"

	"github.com/kevincorizi/PoliTO-CoIoTe/internal/opt"
)

const sampleInstance = `2 1 3

2 1 3

0 0
1.0 2.7
3.2 4.9
1 0
5 6
7 8
2 0
9 10
11 12

4 2

0 0
3 0
1 0
0 4
2 0
1 0
`

func TestParseSampleInstance(t *testing.T) {
	p, err := Parse(strings.NewReader(sampleInstance))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if p.NCells != 2 || p.NPeriods != 1 || p.NTypes != 3 {
		t.Fatalf("cardinalities: %d %d %d", p.NCells, p.NPeriods, p.NTypes)
	}
	if p.TypeTasks[0] != 2 || p.TypeTasks[1] != 1 || p.TypeTasks[2] != 3 {
		t.Fatalf("type tasks: %v", p.TypeTasks)
	}
	// floats are floored
	if p.Costs[0][1][0][0] != 2 || p.Costs[1][1][0][0] != 4 {
		t.Fatalf("cost flooring: %d %d", p.Costs[0][1][0][0], p.Costs[1][1][0][0])
	}
	if p.Costs[0][0][2][0] != 9 {
		t.Fatalf("block placement: %d", p.Costs[0][0][2][0])
	}
	if p.Demand[0] != 4 || p.Demand[1] != 2 {
		t.Fatalf("demand: %v", p.Demand)
	}
	want := map[opt.User]int{
		{Origin: 0, Type: 0, Slot: 0}: 3,
		{Origin: 1, Type: 1, Slot: 0}: 4,
		{Origin: 0, Type: 2, Slot: 0}: 1,
	}
	if len(p.Supply) != len(want) {
		t.Fatalf("supply entries: got %d, want %d (zero counts must be skipped)", len(p.Supply), len(want))
	}
	for u, n := range want {
		if p.Supply[u] != n {
			t.Fatalf("supply[%v]: got %d, want %d", u, p.Supply[u], n)
		}
	}
}

func TestParseRejectsWrongTypeCount(t *testing.T) {
	if _, err := Parse(strings.NewReader("2 1 2\n1 1\n")); err == nil {
		t.Fatal("2-type instance should be rejected")
	}
}

func TestParseRejectsNegativeCost(t *testing.T) {
	bad := strings.Replace(sampleInstance, "3.2", "-3.2", 1)
	if _, err := Parse(strings.NewReader(bad)); err == nil {
		t.Fatal("negative cost should be rejected")
	}
}

func TestParseRejectsTruncatedInput(t *testing.T) {
	trunc := sampleInstance[:len(sampleInstance)/2]
	if _, err := Parse(strings.NewReader(trunc)); err == nil {
		t.Fatal("truncated instance should be rejected")
	}
}

func TestParseRejectsOutOfBoundsBlockHeader(t *testing.T) {
	bad := strings.Replace(sampleInstance, "1 0\n5 6", "1 5\n5 6", 1)
	if _, err := Parse(strings.NewReader(bad)); err == nil {
		t.Fatal("out-of-bounds period in block header should be rejected")
	}
}
