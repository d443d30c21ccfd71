// Package loader parses problem instances from their text format into the
// in-memory cost model. The format, in order: a header line with the
// three cardinalities, the per-type task rates, nPeriods*nTypes cost
// matrices each introduced by a "type period" line, the per-destination
// demand, and nPeriods*nTypes user-count rows with the same introducers.
// Costs are written as floats and floored to integers.
package loader

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"

	"github.com/kevincorizi/PoliTO-CoIoTe/internal/opt"
)

// LoadFile parses the instance at path.
func LoadFile(path string) (*opt.Problem, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()
	p, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return p, nil
}

// Parse reads one instance from r, validating cardinalities, index bounds
// and sign constraints so the solver can trust the tensors blindly.
func Parse(r io.Reader) (*opt.Problem, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1<<20)
	sc.Split(bufio.ScanWords)
	next := func() (string, error) {
		if !sc.Scan() {
			if err := sc.Err(); err != nil {
				return "", err
			}
			return "", io.ErrUnexpectedEOF
		}
		return sc.Text(), nil
	}
	nextInt := func(what string) (int, error) {
		tok, err := next()
		if err != nil {
			return 0, fmt.Errorf("reading %s: %w", what, err)
		}
		v, err := strconv.Atoi(tok)
		if err != nil {
			return 0, fmt.Errorf("reading %s: %q is not an integer", what, tok)
		}
		return v, nil
	}

	nCells, err := nextInt("cell count")
	if err != nil {
		return nil, err
	}
	nPeriods, err := nextInt("period count")
	if err != nil {
		return nil, err
	}
	nTypes, err := nextInt("type count")
	if err != nil {
		return nil, err
	}
	if nCells <= 0 || nPeriods <= 0 {
		return nil, fmt.Errorf("invalid cardinalities: %d cells, %d periods", nCells, nPeriods)
	}
	if nTypes != 3 {
		return nil, fmt.Errorf("instance declares %d user types, solver supports exactly 3", nTypes)
	}

	p := &opt.Problem{
		NCells:    nCells,
		NPeriods:  nPeriods,
		NTypes:    nTypes,
		TypeTasks: make([]int, nTypes),
		Demand:    make([]int, nCells),
		Supply:    map[opt.User]int{},
	}
	for m := 0; m < nTypes; m++ {
		v, err := nextInt("type task rate")
		if err != nil {
			return nil, err
		}
		if v <= 0 {
			return nil, fmt.Errorf("type %d: task rate %d must be positive", m, v)
		}
		p.TypeTasks[m] = v
	}

	p.Costs = make([][][][]int, nCells)
	for i := range p.Costs {
		p.Costs[i] = make([][][]int, nCells)
		for j := range p.Costs[i] {
			p.Costs[i][j] = make([][]int, nTypes)
			for m := range p.Costs[i][j] {
				p.Costs[i][j][m] = make([]int, nPeriods)
			}
		}
	}

	readBlockHeader := func() (m, t int, err error) {
		if m, err = nextInt("block type"); err != nil {
			return
		}
		if t, err = nextInt("block period"); err != nil {
			return
		}
		if m < 0 || m >= nTypes || t < 0 || t >= nPeriods {
			err = fmt.Errorf("block header (%d, %d) out of bounds", m, t)
		}
		return
	}

	for k := 0; k < nPeriods*nTypes; k++ {
		m, t, err := readBlockHeader()
		if err != nil {
			return nil, err
		}
		for i := 0; i < nCells; i++ {
			for j := 0; j < nCells; j++ {
				tok, err := next()
				if err != nil {
					return nil, fmt.Errorf("reading cost[%d][%d] for block (%d, %d): %w", i, j, m, t, err)
				}
				f, err := strconv.ParseFloat(tok, 64)
				if err != nil {
					return nil, fmt.Errorf("cost[%d][%d]: %q is not a number", i, j, tok)
				}
				if f < 0 {
					return nil, fmt.Errorf("cost[%d][%d] for block (%d, %d) is negative", i, j, m, t)
				}
				p.Costs[i][j][m][t] = int(math.Floor(f))
			}
		}
	}

	for j := 0; j < nCells; j++ {
		v, err := nextInt("demand")
		if err != nil {
			return nil, err
		}
		if v < 0 {
			return nil, fmt.Errorf("destination %d: negative demand %d", j, v)
		}
		p.Demand[j] = v
	}

	for k := 0; k < nPeriods*nTypes; k++ {
		m, t, err := readBlockHeader()
		if err != nil {
			return nil, err
		}
		for i := 0; i < nCells; i++ {
			v, err := nextInt("user count")
			if err != nil {
				return nil, err
			}
			if v < 0 {
				return nil, fmt.Errorf("cell %d block (%d, %d): negative user count %d", i, m, t, v)
			}
			if v == 0 {
				continue
			}
			p.Supply[opt.User{Origin: i, Type: m, Slot: t}] = v
		}
	}
	return p, nil
}
