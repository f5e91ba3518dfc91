package sat

// clauseRecord is the in-place storage for one clause. Records live in a
// dense per-kind arena (see database.go) and are never individually
// freed back to the Go allocator: a dead record is unlinked from its
// watch chains and its slot is pushed onto the partition's recycle
// freelist for reuse by a later NewClause call.
//
// next holds the intrusive "next watcher" links: next[0] is the next
// clause in the watch chain headed at lits[0], next[1] the same for
// lits[1]. This lets propagation walk a literal's watch list without
// any separately allocated slice.
type clauseRecord struct {
	lits []Literal
	next [2]ClauseID

	rank     uint32  // LBD at the time of learning / last recompute
	activity float64 // bumped on participation in a conflict, rescaled per BumpClauseActivity

	flags clauseFlags
}

type clauseFlags uint8

const (
	// flagDead marks a removed clause (MarkDead). The record stays on
	// its watch chains, with its literals unchanged, until the next
	// GarbageCollect unlinks it and sets its lits to
	// {recycleLit, recycleLit} on the freelist.
	flagDead clauseFlags = 1 << iota
	// flagJustUsed grants a removable clause a one-time reprieve from
	// reduction after it served as a conflict reason since the last
	// reduction pass.
	flagJustUsed
)

func (r *clauseRecord) hasFlag(f clauseFlags) bool { return r.flags&f != 0 }
func (r *clauseRecord) setFlag(f clauseFlags)       { r.flags |= f }
func (r *clauseRecord) clearFlag(f clauseFlags)     { r.flags &^= f }

// garbageLit is a sentinel literal value that can never be produced by
// PositiveLiteral/NegativeLiteral for a real variable (variable 0 is
// reserved, so literal 0/1 are unused). isWatchable treats it like
// recycleLit, but no code in this package writes it: dead clauses are
// unlinked by GarbageCollect rebuilding their touched chains instead.
const garbageLit Literal = -1

// recycleLit marks a record slot that has been fully unlinked from
// every watch chain and is now sitting on its partition's freelist.
const recycleLit Literal = -2

// isWatchable reports whether the record still participates in
// propagation — i.e. has not been marked dead or recycled.
func (r *clauseRecord) isWatchable() bool {
	return len(r.lits) < 2 || (r.lits[0] != garbageLit && r.lits[0] != recycleLit)
}

// Len returns the number of literals in the clause.
func (r *clauseRecord) Len() int { return len(r.lits) }
