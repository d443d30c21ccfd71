// Package report formats solved instances for the outside world: the
// verbose assignment listing, the one-line CSV summary appended to batch
// result files, and the optimality-gap comparison against externally
// supplied optima.
package report

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"regexp"
	"strconv"
	"strings"

	"github.com/kevincorizi/PoliTO-CoIoTe/internal/opt"
)

// Verbose renders all non-zero assignments, ordered by destination, under
// a cardinality header.
func Verbose(p *opt.Problem, sol *opt.Solution) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%d; %d; %d\n", p.NCells, p.NPeriods, p.NTypes)
	for _, a := range sol.Assignments() {
		fmt.Fprintf(&b, "%d;%d;%d;%d;%d\n", a.Origin, a.Dest, a.Type, a.Slot, a.Count)
	}
	return b.String()
}

// SummaryLine renders the batch CSV line:
// instance;cost;seconds;type0;type1;type2
func SummaryLine(instance string, sol *opt.Solution) string {
	return fmt.Sprintf("%s;%d;%.3f;%d;%d;%d",
		instance,
		sol.TotalCost(),
		sol.ElapsedMillis/1000,
		sol.CountOfType(0),
		sol.CountOfType(1),
		sol.CountOfType(2))
}

// AppendLine appends one line to the file at path, creating it if needed.
func AppendLine(path, line string) error {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()
	_, err = fmt.Fprintln(f, line)
	return err
}

// AppendText appends raw text (already newline-terminated) to path.
func AppendText(path, text string) error {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()
	_, err = io.WriteString(f, text)
	return err
}

var optimaSeparators = regexp.MustCompile(`[";\t ]+`)

// Gap scans an optima listing for the named instance and returns the cost
// gap percentage against its optimal cost. found is false when the
// instance has no entry, in which case callers print the raw cost.
func Gap(r io.Reader, instance string, cost int) (gap float64, found bool, err error) {
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		fields := optimaSeparators.Split(sc.Text(), -1)
		filtered := fields[:0]
		for _, f := range fields {
			if f != "" {
				filtered = append(filtered, f)
			}
		}
		if len(filtered) < 3 || filtered[0] != instance {
			continue
		}
		optimal, perr := strconv.ParseFloat(filtered[2], 64)
		if perr != nil {
			return 0, false, fmt.Errorf("optima entry for %s: %w", instance, perr)
		}
		return (float64(cost) - optimal) / optimal * 100, true, nil
	}
	return 0, false, sc.Err()
}

// GapFromFile is Gap over a file path.
func GapFromFile(path, instance string, cost int) (float64, bool, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, false, err
	}
	defer func() { _ = f.Close() }()
	return Gap(f, instance, cost)
}

// InstanceName strips directory and extension from an input path, the
// form instance entries are keyed by in optima listings.
func InstanceName(path string) string {
	base := path
	if i := strings.LastIndexAny(base, "/\\"); i >= 0 {
		base = base[i+1:]
	}
	if i := strings.IndexByte(base, '.'); i >= 0 {
		base = base[:i]
	}
	return base
}
