// Package dimacs loads DIMACS CNF instances into a sat.Solver and
// reads ".models" fixture files (one expected model per line). Grounded on the teacher's parsers/parsers.go, which wraps the
// real third-party github.com/rhartert/dimacs scanner rather than
// reimplementing one by hand (the teacher also ships a redundant
// hand-rolled bufio scanner at internal/dimacs/dimacs.go; this package
// keeps only the library-backed approach — see DESIGN.md).
package dimacs

import (
	"compress/gzip"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/rhartert/dimacs"

	"github.com/solvergo/cdcl/internal/sat"
)

// ClauseSink is the producer-boundary interface this package feeds:
// implemented by *sat.Solver.
type ClauseSink interface {
	AddVariable() sat.VarID
	AddClause(lits []sat.Literal) error
}

func openReader(filename string) (io.ReadCloser, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	rc := io.ReadCloser(f)
	if isGzipName(filename) {
		gz, err := gzip.NewReader(rc)
		if err != nil {
			f.Close()
			return nil, err
		}
		rc = gz
	}
	return rc, nil
}

func isGzipName(filename string) bool {
	n := len(filename)
	return n > 3 && filename[n-3:] == ".gz"
}

// LoadFile opens filename (transparently gunzipping a ".gz" suffix)
// and loads its DIMACS CNF formula into sink via Load.
func LoadFile(filename string, sink ClauseSink) error {
	r, err := openReader(filename)
	if err != nil {
		return fmt.Errorf("dimacs: opening %q: %w", filename, err)
	}
	defer r.Close()
	return Load(r, sink)
}

// Load scans a DIMACS CNF stream — a "p cnf N M" header followed by
// zero-terminated signed-integer clauses — and feeds it to sink. No
// normalization happens here: sorting, deduplication, tautology
// dropping and level-0 unit reduction are sink.AddClause's
// responsibility (sat.Solver.AddClause already does this). An
// sat.ErrInconsistent from sink.AddClause does not stop loading; any
// other error from the sink is returned.
func Load(r io.Reader, sink ClauseSink) error {
	return dimacs.ReadBuilder(r, &builder{sink: sink})
}

// builder adapts a ClauseSink to github.com/rhartert/dimacs.Builder.
type builder struct {
	sink ClauseSink
}

func (b *builder) Problem(problem string, nVars int, nClauses int) error {
	if problem != "cnf" {
		return fmt.Errorf("dimacs: unsupported problem type %q", problem)
	}
	for i := 0; i < nVars; i++ {
		b.sink.AddVariable()
	}
	return nil
}

func (b *builder) Clause(raw []int) error {
	lits := make([]sat.Literal, len(raw))
	for i, l := range raw {
		lits[i] = sat.IntLiteral(l)
	}
	// An inconsistent formula is not a parse error: the sink latches it
	// and reports the instance as unsatisfiable when solved.
	if err := b.sink.AddClause(lits); err != nil && !errors.Is(err, sat.ErrInconsistent) {
		return err
	}
	return nil
}

func (b *builder) Comment(string) error {
	return nil
}
