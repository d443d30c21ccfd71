package report

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/kevincorizi/PoliTO-CoIoTe/internal/opt"
)

func solvedSample(t *testing.T) (*opt.Problem, *opt.Solution) {
	t.Helper()
	costs := make([][][][]int, 2)
	for i := range costs {
		costs[i] = make([][][]int, 2)
		for j := range costs[i] {
			costs[i][j] = make([][]int, 3)
			for m := range costs[i][j] {
				costs[i][j][m] = make([]int, 1)
			}
		}
	}
	p := &opt.Problem{
		NCells: 2, NPeriods: 1, NTypes: 3,
		TypeTasks: []int{2, 1, 1},
		Costs:     costs,
		Demand:    []int{2, 0},
		Supply:    map[opt.User]int{{Origin: 1, Type: 0, Slot: 0}: 1},
	}
	s := opt.New(p)
	s.Seed = 3
	sol, err := s.Recover()
	if err != nil {
		t.Fatalf("recover: %v", err)
	}
	sol.ElapsedMillis = 1234
	return p, sol
}

func TestVerboseFormat(t *testing.T) {
	p, sol := solvedSample(t)
	out := Verbose(p, sol)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if lines[0] != "2; 1; 3" {
		t.Fatalf("header: %q", lines[0])
	}
	if len(lines) != 2 || lines[1] != "1;0;0;0;1" {
		t.Fatalf("assignment lines: %v", lines[1:])
	}
}

func TestSummaryLine(t *testing.T) {
	_, sol := solvedSample(t)
	line := SummaryLine("instance01.txt", sol)
	if line != "instance01.txt;0;1.234;1;0;0" {
		t.Fatalf("summary: %q", line)
	}
}

func TestAppendLine(t *testing.T) {
	path := filepath.Join(t.TempDir(), "summary.csv")
	if err := AppendLine(path, "a;1"); err != nil {
		t.Fatalf("append: %v", err)
	}
	if err := AppendLine(path, "b;2"); err != nil {
		t.Fatalf("append: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(data) != "a;1\nb;2\n" {
		t.Fatalf("content: %q", string(data))
	}
}

func TestGap(t *testing.T) {
	optima := `"other";0;50.0
"instance01";0;	200.0
`
	gap, found, err := Gap(strings.NewReader(optima), "instance01", 250)
	if err != nil {
		t.Fatalf("gap: %v", err)
	}
	if !found {
		t.Fatal("instance01 should be found")
	}
	if gap != 25 {
		t.Fatalf("gap: got %f, want 25", gap)
	}
	_, found, err = Gap(strings.NewReader(optima), "missing", 10)
	if err != nil || found {
		t.Fatalf("missing instance: found=%v err=%v", found, err)
	}
}

func TestInstanceName(t *testing.T) {
	if got := InstanceName("data/instances/co_30_1.txt"); got != "co_30_1" {
		t.Fatalf("instance name: %q", got)
	}
}
