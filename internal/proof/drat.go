// Package proof emits a DRAT certificate of the search: every clause
// the core learns or deletes, as a line of DIMACS-style literals
// terminated by a "0". No teacher file ships a proof writer; this
// package is built in the same idiom as the DIMACS-writing code in the
// corpus (a thin bufio.Writer wrapper with one method per record
// kind), per spec.md §6's external-interface contract for the
// consumer boundary THE CORE calls into.
package proof

import (
	"bufio"
	"fmt"
	"io"

	"github.com/solvergo/cdcl/internal/sat"
)

// Writer is the consumer-boundary interface sat.Solver calls into when
// a proof.Writer has been installed via Solver.SetProofWriter.
type Writer interface {
	// Add records lits as a clause added to the database (a learnt
	// clause, or — at the caller's discretion — an original one).
	Add(lits []sat.Literal)
	// Delete records lits as a clause removed from the database.
	Delete(lits []sat.Literal)
}

// NopWriter discards every record. A Solver with no writer installed
// emits no proof either (its writer is nil by default); NopWriter
// serves callers that need a non-nil Writer that records nothing.
type NopWriter struct{}

// Add implements Writer by doing nothing.
func (NopWriter) Add([]sat.Literal) {}

// Delete implements Writer by doing nothing.
func (NopWriter) Delete([]sat.Literal) {}

// FileWriter emits a DRAT-format certificate to an underlying writer:
// "add" lines are the bare literal list, "delete" lines are prefixed
// "d ", both zero-terminated.
type FileWriter struct {
	w   *bufio.Writer
	err error
}

// NewFileWriter wraps w for buffered DRAT output. Callers must call
// Flush before closing the underlying writer.
func NewFileWriter(w io.Writer) *FileWriter {
	return &FileWriter{w: bufio.NewWriter(w)}
}

// Add writes lits as an "add" record.
func (f *FileWriter) Add(lits []sat.Literal) {
	f.writeLine("", lits)
}

// Delete writes lits as a "delete" record.
func (f *FileWriter) Delete(lits []sat.Literal) {
	f.writeLine("d ", lits)
}

func (f *FileWriter) writeLine(prefix string, lits []sat.Literal) {
	if f.err != nil {
		return
	}
	if prefix != "" {
		if _, err := f.w.WriteString(prefix); err != nil {
			f.err = err
			return
		}
	}
	for _, l := range lits {
		if _, err := fmt.Fprintf(f.w, "%d ", l.Int()); err != nil {
			f.err = err
			return
		}
	}
	if _, err := f.w.WriteString("0\n"); err != nil {
		f.err = err
	}
}

// Flush flushes any buffered output and returns the first write error
// encountered, if any.
func (f *FileWriter) Flush() error {
	if f.err != nil {
		return f.err
	}
	return f.w.Flush()
}
