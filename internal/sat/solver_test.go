package sat_test

import (
	"context"
	"io/fs"
	"path/filepath"
	"strings"
	"testing"

	"github.com/solvergo/cdcl/internal/dimacs"
	"github.com/solvergo/cdcl/internal/sat"
)

// This suite follows the teacher's yass_test.go fixture-directory
// convention: every testdata/*.cnf file is solved, and its result is
// checked against what the instance is known to be (encoded in the
// file name: an "unsat" prefix means unsatisfiable; the *.cnf.models
// sidecars are not read). Unlike the teacher, which enumerates every
// model by repeatedly adding a blocking clause and re-solving, this
// suite solves once per instance and, for a satisfiable instance,
// verifies the returned model directly against the clause set instead
// of against a fixed expected model (any model is a correct answer).

const testdataDir = "testdata"

type clauseRecorder struct {
	numVars int
	clauses [][]sat.Literal
}

func (r *clauseRecorder) AddVariable() sat.VarID {
	r.numVars++
	return sat.VarID(r.numVars)
}

func (r *clauseRecorder) AddClause(lits []sat.Literal) error {
	r.clauses = append(r.clauses, append([]sat.Literal(nil), lits...))
	return nil
}

func listCNFFiles(t *testing.T, dir string) []string {
	t.Helper()
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(path, ".cnf") {
			return nil
		}
		files = append(files, path)
		return nil
	})
	if err != nil {
		t.Fatalf("listing testdata: %s", err)
	}
	return files
}

func modelSatisfiesClauses(model []sat.LBool, clauses [][]sat.Literal) bool {
	for _, clause := range clauses {
		satisfied := false
		for _, l := range clause {
			v := model[l.VarID()]
			if (l.IsPositive() && v == sat.True) || (!l.IsPositive() && v == sat.False) {
				satisfied = true
				break
			}
		}
		if !satisfied {
			return false
		}
	}
	return true
}

func TestFixtures(t *testing.T) {
	for _, path := range listCNFFiles(t, testdataDir) {
		path := path
		name := strings.TrimSuffix(filepath.Base(path), ".cnf")
		t.Run(name, func(t *testing.T) {
			expectSAT := !strings.HasPrefix(name, "unsat")

			rec := &clauseRecorder{}
			if err := dimacs.LoadFile(path, rec); err != nil {
				t.Fatalf("recording clauses: %s", err)
			}

			s := sat.NewDefaultSolver()
			if err := dimacs.LoadFile(path, s); err != nil {
				t.Fatalf("loading instance: %s", err)
			}

			result, err := s.Solve(context.Background())
			if err != nil {
				t.Fatalf("Solve: %s", err)
			}

			gotSAT := result.Status == sat.StatusSatisfiable
			if gotSAT != expectSAT {
				t.Fatalf("Status = %v, want satisfiable=%v", result.Status, expectSAT)
			}

			if gotSAT && !modelSatisfiesClauses(result.Model, rec.clauses) {
				t.Errorf("returned model does not satisfy all clauses: %v", result.Model)
			}
		})
	}
}

func TestAddClauseDetectsRootConflict(t *testing.T) {
	s := sat.NewDefaultSolver()
	v := s.AddVariable()

	if err := s.AddClause([]sat.Literal{sat.PositiveLiteral(v)}); err != nil {
		t.Fatalf("AddClause(unit) = %v, want nil", err)
	}
	err := s.AddClause([]sat.Literal{sat.NegativeLiteral(v)})
	if err != sat.ErrInconsistent {
		t.Fatalf("AddClause(contradicting unit) = %v, want ErrInconsistent", err)
	}

	result, err := s.Solve(context.Background())
	if err != nil {
		t.Fatalf("Solve: %s", err)
	}
	if result.Status != sat.StatusUnsatisfiable {
		t.Errorf("Status = %v, want StatusUnsatisfiable", result.Status)
	}
}

func TestAddClauseDropsTautology(t *testing.T) {
	s := sat.NewDefaultSolver()
	v := s.AddVariable()

	if err := s.AddClause([]sat.Literal{sat.PositiveLiteral(v), sat.NegativeLiteral(v)}); err != nil {
		t.Fatalf("AddClause(tautology) = %v, want nil", err)
	}

	result, err := s.Solve(context.Background())
	if err != nil {
		t.Fatalf("Solve: %s", err)
	}
	if result.Status != sat.StatusSatisfiable {
		t.Errorf("Status = %v, want StatusSatisfiable (tautology imposes no constraint)", result.Status)
	}
}

// TestForcedPartialModel is spec.md §8's scenario S3: (1∨2)∧(¬1∨2)∧(¬2∨3)
// is satisfiable only with 2 and 3 forced true, regardless of 1.
func TestForcedPartialModel(t *testing.T) {
	s := sat.NewDefaultSolver()
	v1, v2, v3 := s.AddVariable(), s.AddVariable(), s.AddVariable()

	clauses := [][]sat.Literal{
		{sat.PositiveLiteral(v1), sat.PositiveLiteral(v2)},
		{sat.NegativeLiteral(v1), sat.PositiveLiteral(v2)},
		{sat.NegativeLiteral(v2), sat.PositiveLiteral(v3)},
	}
	for _, c := range clauses {
		if err := s.AddClause(c); err != nil {
			t.Fatalf("AddClause(%v): %s", c, err)
		}
	}

	result, err := s.Solve(context.Background())
	if err != nil {
		t.Fatalf("Solve: %s", err)
	}
	if result.Status != sat.StatusSatisfiable {
		t.Fatalf("Status = %v, want StatusSatisfiable", result.Status)
	}
	if result.Model[v2] != sat.True {
		t.Errorf("Model[2] = %v, want True (forced)", result.Model[v2])
	}
	if result.Model[v3] != sat.True {
		t.Errorf("Model[3] = %v, want True (forced)", result.Model[v3])
	}
}

// TestForcedSingleValue is spec.md §8's scenario S5: (1∨2)∧(¬1∨3)∧(¬2∨3)∧(¬3∨4)
// is satisfiable only with 4 forced true.
func TestForcedSingleValue(t *testing.T) {
	s := sat.NewDefaultSolver()
	v1, v2, v3, v4 := s.AddVariable(), s.AddVariable(), s.AddVariable(), s.AddVariable()

	clauses := [][]sat.Literal{
		{sat.PositiveLiteral(v1), sat.PositiveLiteral(v2)},
		{sat.NegativeLiteral(v1), sat.PositiveLiteral(v3)},
		{sat.NegativeLiteral(v2), sat.PositiveLiteral(v3)},
		{sat.NegativeLiteral(v3), sat.PositiveLiteral(v4)},
	}
	for _, c := range clauses {
		if err := s.AddClause(c); err != nil {
			t.Fatalf("AddClause(%v): %s", c, err)
		}
	}

	result, err := s.Solve(context.Background())
	if err != nil {
		t.Fatalf("Solve: %s", err)
	}
	if result.Status != sat.StatusSatisfiable {
		t.Fatalf("Status = %v, want StatusSatisfiable", result.Status)
	}
	if result.Model[v4] != sat.True {
		t.Errorf("Model[4] = %v, want True (forced)", result.Model[v4])
	}
}

func TestAddClauseRejectsEmptyClause(t *testing.T) {
	// An empty clause can never be satisfied, regardless of the rest of
	// the instance; it must be distinguished from a tautology/already
	// satisfied clause (both of which also produce a zero-constraint
	// outcome but must NOT flip the solver to unsat).
	for name, lits := range map[string][]sat.Literal{
		"nil":   nil,
		"empty": {},
	} {
		t.Run(name, func(t *testing.T) {
			s := sat.NewDefaultSolver()
			s.AddVariable()

			err := s.AddClause(lits)
			if err != sat.ErrInconsistent {
				t.Fatalf("AddClause(%s) = %v, want ErrInconsistent", name, err)
			}

			result, err := s.Solve(context.Background())
			if err != nil {
				t.Fatalf("Solve: %s", err)
			}
			if result.Status != sat.StatusUnsatisfiable {
				t.Errorf("Status = %v, want StatusUnsatisfiable", result.Status)
			}
		})
	}
}
