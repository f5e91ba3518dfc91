package dimacs

import (
	"fmt"
	"os"

	"github.com/rhartert/dimacs"
)

// ParseModels reads a ".models" fixture file: one model per line, each
// a DIMACS-style zero-terminated list of signed integers whose sign
// gives that variable's expected truth value. internal/sat's fixture
// tests do not read these files; they check each returned model
// against the instance's clauses instead. Grounded on the teacher's internal/dimacs/models.go,
// adapted to scan via the same third-party dimacs.ReadBuilder this
// package's Load already depends on rather than a second hand-rolled
// bufio scanner.
func ParseModels(filename string) ([][]bool, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	b := &modelBuilder{}
	if err := dimacs.ReadBuilder(f, b); err != nil {
		return nil, fmt.Errorf("dimacs: parsing models %q: %w", filename, err)
	}
	return b.models, nil
}

type modelBuilder struct {
	models [][]bool
}

func (b *modelBuilder) Problem(problem string, nVars int, nClauses int) error {
	return fmt.Errorf("dimacs: a models file must not contain a problem line")
}

func (b *modelBuilder) Comment(string) error {
	return nil
}

func (b *modelBuilder) Clause(raw []int) error {
	model := make([]bool, len(raw))
	for i, l := range raw {
		model[i] = l > 0
	}
	b.models = append(b.models, model)
	return nil
}
