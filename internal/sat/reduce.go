package sat

// dbIncSize is the unconditional per-reduction increase to the next
// reduction's conflict-count trigger (original_source/src/clause.rs's
// DB_INC_SIZE).
const dbIncSize = 200

// reduceMedianRankThreshold is the rank at or below which the clause at the
// sorted median of a reduction pass is considered evidence that the
// search is still producing tight, valuable learnt clauses, earning
// an extra slowdown of the next reduction. spec.md's prose states this
// threshold as "≤ 5"; original_source/src/clause.rs's reduce() checks
// "<= 4". Since spec.md is the authoritative contract here and
// original_source is consulted only to resolve what spec.md leaves
// ambiguous, this implementation follows spec.md's literal "≤ 5".
const reduceMedianRankThreshold = 5

// ResetLBD recomputes the rank of every live Removable clause from the
// trail's *current* decision levels (spec.md §4.1's reset_lbd, §4.6
// step 1) rather than trusting the LBD computed once at learning time,
// which can only ever overstate a clause's current quality as earlier
// decision levels get merged or backtracked past. Levels are
// epoch-stamped in scratch (sized for the declared variables, since a
// decision level never exceeds the variable count) instead of
// allocated into a per-clause set, per original_source/src/clause.rs's
// reset_lbd.
func ResetLBD(trail *AssignTrail, db *ClauseDatabase) {
	scratch := make([]uint32, db.NumVars()+1)
	var epoch uint32
	for _, id := range db.LiveClauseIDs(KindRemovable) {
		epoch++
		var count uint32
		for _, l := range db.Literals(id) {
			lvl := trail.LevelOf(l.VarID())
			if lvl == 0 {
				continue
			}
			if scratch[lvl] != epoch {
				scratch[lvl] = epoch
				count++
			}
		}
		db.SetRank(id, count)
	}
}

// ReduceDB recomputes every Removable clause's rank (ResetLBD), then
// halves the partition, keeping the lower-rank / higher-activity half
// and deleting the rest — except a deleted candidate gets one grace
// period if its JustUsed flag is set (it served as a conflict reason
// since the last reduction), in which case the flag is cleared and the
// clause survives this pass instead. Grounded on
// original_source/src/clause.rs's reduce(), generalizing the teacher's
// Solver.ReduceDB (which has no rank/activity sort or JustUsed grace —
// the teacher reduces a fixed age window instead).
func ReduceDB(trail *AssignTrail, db *ClauseDatabase, hook ElimHook, w proofWriter) {
	ResetLBD(trail, db)

	ids := db.LiveClauseIDs(KindRemovable)
	candidates := ids[:0]
	for _, id := range ids {
		if !isLockedClause(trail, db, id) {
			candidates = append(candidates, id)
		}
	}
	SortByRankThenActivity(db, candidates)

	half := len(candidates) / 2
	if half > 0 {
		medianRank := db.Rank(candidates[half])
		if medianRank <= reduceMedianRankThreshold {
			db.nextReduction += 1000
		}
	}
	db.nextReduction += dbIncSize

	for _, id := range candidates[half:] {
		if db.JustUsed(id) {
			db.SetJustUsed(id, false)
			continue
		}
		db.MarkDead(id, w)
	}

	db.GarbageCollect(hook)
}

// isLockedClause reports whether id currently serves as the reason for
// one of its own watched literals' assignment — such a clause must
// never be deleted, since the implication graph edge it represents is
// still live. A clause's asserting literal always sits in one of its
// two watched positions, so checking both is sufficient without a
// reverse clause-to-reason index.
func isLockedClause(trail *AssignTrail, db *ClauseDatabase, id ClauseID) bool {
	lits := db.Literals(id)
	for _, l := range lits[:2] {
		if trail.Value(l) == True && trail.ReasonOf(l.VarID()) == id {
			return true
		}
	}
	return false
}

// Simplify marks dead, in every partition, each clause that has a
// literal assigned True (at decision level 0 every assignment is a
// root-level fact), except a clause that is currently the reason for
// one of its own literals, which is kept. It then garbage-collects,
// so hook is notified for each variable of every clause removed. Must
// only be called when DecisionLevel() == 0. Grounded on
// original_source/src/clause.rs's simplify().
func Simplify(trail *AssignTrail, db *ClauseDatabase, hook ElimHook, w proofWriter) {
	for k := ClauseKind(0); k < numClauseKinds; k++ {
		for _, id := range db.LiveClauseIDs(k) {
			if isLockedClause(trail, db, id) {
				continue
			}
			for _, l := range db.Literals(id) {
				if trail.Value(l) == True {
					db.MarkDead(id, w)
					break
				}
			}
		}
	}
	db.GarbageCollect(hook)
}
