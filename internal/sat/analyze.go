package sat

// levelBitmapSize is the width (in bits) of the decision-level
// abstraction used to fast-reject minimization candidates, per
// original_source/src/search.rs's LEVEL_BITMAP_SIZE. A literal's level
// maps to bit (level % levelBitmapSize); the bitmap is therefore an
// over-approximation (two different levels can collide into the same
// bit). A collision only lets litRedundant keep walking a reason chain
// it could have rejected at once; it never causes a truly-needed
// literal to be dropped, so collisions cost time, never correctness.
const levelBitmapSize = 256

type levelBitmap [levelBitmapSize / 64]uint64

func (b *levelBitmap) set(level int32) {
	b[(level%levelBitmapSize)/64] |= 1 << uint(level%64)
}

func (b *levelBitmap) test(level int32) bool {
	return b[(level%levelBitmapSize)/64]&(1<<uint(level%64)) != 0
}

// AnalysisResult is the output of Analyze: the learnt clause (with the
// asserting literal in position 0), the level to backtrack to, and the
// clause's LBD (used both as its initial rank and to feed the restart
// EMA).
type AnalysisResult struct {
	Learnt      []Literal
	BacktrackTo int
	LBD         uint32
}

// Analyze performs first-UIP conflict analysis starting from the
// clause conflict, which must currently be fully falsified. Grounded
// on original_source/src/search.rs's analyze()/analyze_removable(),
// translated from MiniSat-style reason-clause resolution. heap is
// bumped for every variable resolved over, and the activity of every
// Removable clause whose reason is visited is bumped too (spec §4.5
// step 4, matching original_source/src/search.rs's bump_ci alongside
// bump_vi); seen must have room for every VarID (numVars+1 entries) and is fully cleared by this
// call before use. clauseDecay is the clause-activity decay rate
// (Config.ClauseDecayRate) used for that bump.
func Analyze(trail *AssignTrail, db *ClauseDatabase, heap *VarHeap, seen *ResetSet, conflict ClauseID, clauseDecay float64) AnalysisResult {
	seen.Clear()

	learnt := []Literal{NullLiteral} // placeholder for the asserting literal
	btLevel := int32(0)
	pathCount := 0

	p := NullLiteral
	reasonID := conflict
	index := trail.Len() - 1

	for {
		if reasonID.Kind() == KindRemovable {
			db.SetJustUsed(reasonID, true)
			db.BumpClauseActivity(reasonID, clauseDecay)
		}
		lits := db.Literals(reasonID)
		for _, q := range lits {
			if q == p {
				continue
			}
			v := q.VarID()
			if seen.Contains(int(v)) {
				continue
			}
			lvl := trail.LevelOf(v)
			if lvl == 0 {
				continue
			}
			seen.Add(int(v))
			heap.BumpActivity(v)
			if lvl >= int32(trail.DecisionLevel()) {
				pathCount++
			} else {
				learnt = append(learnt, q)
				if lvl > btLevel {
					btLevel = lvl
				}
			}
		}

		for !seen.Contains(int(trail.At(index).VarID())) {
			index--
		}
		p = trail.At(index)
		reasonID = trail.ReasonOf(p.VarID())
		index--
		pathCount--
		if pathCount <= 0 {
			break
		}
	}
	learnt[0] = p.Opposite()
	learnt = minimizeLearnt(trail, db, seen, learnt)
	lbd := computeLBD(trail, learnt)

	// Spec step 6: the literal with the greatest remaining decision
	// level becomes the second watch. Minimization can drop literals
	// and change which level is greatest, so this must run after it.
	if len(learnt) >= 2 {
		maxIdx, maxLvl := 1, trail.LevelOf(learnt[1].VarID())
		for i := 2; i < len(learnt); i++ {
			if lvl := trail.LevelOf(learnt[i].VarID()); lvl > maxLvl {
				maxIdx, maxLvl = i, lvl
			}
		}
		learnt[1], learnt[maxIdx] = learnt[maxIdx], learnt[1]
	}

	return AnalysisResult{Learnt: learnt, BacktrackTo: int(btLevel), LBD: lbd}
}

// minimizeLearnt drops any literal (other than the asserting literal at
// index 0) whose variable's assignment is implied entirely by other
// variables already in seen — i.e. every literal of its reason clause
// is seen, assigned at level 0, or itself (recursively) redundant. The
// level bitmap is a fast pre-filter: a reason literal that is a
// decision, or whose level is not represented among the learnt
// clause's levels, makes the candidate non-redundant without its own
// reason clause being fetched.
func minimizeLearnt(trail *AssignTrail, db *ClauseDatabase, seen *ResetSet, learnt []Literal) []Literal {
	var bitmap levelBitmap
	for _, l := range learnt {
		bitmap.set(trail.LevelOf(l.VarID()))
	}

	out := learnt[:1]
	for _, l := range learnt[1:] {
		if trail.ReasonOf(l.VarID()) == NullClauseID || !litRedundant(trail, db, seen, &bitmap, l) {
			out = append(out, l)
		}
	}
	return out
}

// litRedundant reports whether every ancestor of l's assignment (via
// its reason clause, transitively) is already accounted for by seen,
// making l removable from the learnt clause without weakening it.
func litRedundant(trail *AssignTrail, db *ClauseDatabase, seen *ResetSet, bitmap *levelBitmap, l Literal) bool {
	stack := []Literal{l}
	var marked []VarID

	redundant := true
walk:
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		reason := trail.ReasonOf(cur.VarID())
		for _, q := range db.Literals(reason) {
			if q.VarID() == cur.VarID() {
				continue
			}
			v := q.VarID()
			if seen.Contains(int(v)) {
				continue
			}
			lvl := trail.LevelOf(v)
			if lvl == 0 {
				continue
			}
			if trail.ReasonOf(v) == NullClauseID || !bitmap.test(lvl) {
				redundant = false
				break walk
			}
			seen.Add(int(v))
			marked = append(marked, v)
			stack = append(stack, q)
		}
	}
	if !redundant {
		for _, v := range marked {
			seen.Remove(int(v))
		}
	}
	return redundant
}

// computeLBD returns the number of distinct decision levels represented
// among learnt's literals — the Literal Block Distance used both as a
// clause's initial rank and, via the caller, to feed the restart EMA.
func computeLBD(trail *AssignTrail, learnt []Literal) uint32 {
	count := uint32(0)
	seenLevels := make(map[int32]bool, len(learnt))
	for _, l := range learnt {
		lvl := trail.LevelOf(l.VarID())
		if lvl == 0 {
			continue
		}
		if seenLevels[lvl] {
			continue
		}
		seenLevels[lvl] = true
		count++
	}
	return count
}
