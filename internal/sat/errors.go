package sat

import "errors"

// ErrInconsistent is returned by AddClause when the problem has been
// proven unsatisfiable by unit propagation alone at decision level 0,
// independent of any search. Solve reports such an instance as
// StatusUnsatisfiable with a nil error.
var ErrInconsistent = errors.New("sat: instance is inconsistent at decision level 0")

// ErrOutOfMemory names a clause database grown past a memory ceiling.
// The solver does not check Config.MaxMemoryMB, and no function in
// this package returns this error.
var ErrOutOfMemory = errors.New("sat: clause database exceeded configured memory ceiling")

// ErrTimeoutExpired is returned by Solve when Config.Timeout elapses
// before the search concludes.
var ErrTimeoutExpired = errors.New("sat: search exceeded configured timeout")
