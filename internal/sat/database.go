package sat

import "sort"

// activityRescaleThreshold is the ceiling past which every clause's
// activity (and the running bump increment) is divided down together,
// keeping the values inside float64's useful range. This is the value
// splr's clause.rs actually checks in bump_cid (1.0e20), not the 1e100
// the teacher repo uses for variable activity — spec.md is explicit
// that clause activity rescales at 1e20, so that is what is used here.
const activityRescaleThreshold = 1.0e20

// clausePartition is the dense arena backing one ClauseKind. Index 0 is
// a reserved dummy record so that ClauseID's zero value (NullClauseID)
// never aliases a real clause.
type clausePartition struct {
	kind     ClauseKind
	records  []clauseRecord
	freeHead ClauseID // head of the recycled-slot freelist, chained through next[0]
	numLive  int
	actInc   float64 // current clause-activity bump increment (Removable partition only)
}

func newClausePartition(kind ClauseKind) *clausePartition {
	p := &clausePartition{kind: kind, actInc: 1.0}
	p.records = append(p.records, clauseRecord{lits: []Literal{recycleLit, recycleLit}, flags: flagDead})
	return p
}

func (p *clausePartition) alloc() (ClauseID, *clauseRecord) {
	if p.freeHead != NullClauseID {
		id := p.freeHead
		rec := &p.records[id.Index()]
		p.freeHead = rec.next[0]
		*rec = clauseRecord{}
		p.numLive++
		return id, rec
	}
	p.records = append(p.records, clauseRecord{})
	id := newClauseID(p.kind, len(p.records)-1)
	p.numLive++
	return id, &p.records[id.Index()]
}

func (p *clausePartition) record(id ClauseID) *clauseRecord {
	return &p.records[id.Index()]
}

// ClauseDatabase owns every clause in the solver, partitioned by
// ClauseKind, plus the literal-indexed watch-chain heads shared across
// all partitions (a literal's watchers may be any mix of removable,
// permanent, and binary clauses).
type ClauseDatabase struct {
	parts   [numClauseKinds]*clausePartition
	watch   []ClauseID // indexed by Literal; head of the watch chain for that literal
	touched []bool     // indexed by Literal; spec.md §4.1's "touched" flags, set by MarkDead

	nextReduction int // conflict count at which the next ReduceDB should fire
}

// NewClauseDatabase returns an empty database sized for numVars
// variables (1-indexed; literal space is 2*(numVars+1)).
func NewClauseDatabase(numVars int) *ClauseDatabase {
	db := &ClauseDatabase{
		watch:         make([]ClauseID, 2*(numVars+1)),
		touched:       make([]bool, 2*(numVars+1)),
		nextReduction: 1000,
	}
	for k := ClauseKind(0); k < numClauseKinds; k++ {
		db.parts[k] = newClausePartition(k)
	}
	return db
}

// EnsureVar grows the watch-head table to cover v.
func (db *ClauseDatabase) EnsureVar(v VarID) {
	need := int(PositiveLiteral(v)) + 2
	for len(db.watch) < need {
		db.watch = append(db.watch, NullClauseID)
		db.touched = append(db.touched, false)
	}
}

// NumVars returns the number of variables the watch-head table is
// currently sized for (the literal space is 2*(NumVars()+1)).
func (db *ClauseDatabase) NumVars() int {
	return len(db.watch)/2 - 1
}

func (db *ClauseDatabase) partitionFor(id ClauseID) *clausePartition {
	return db.parts[id.Kind()]
}

// Literals returns the live literal slice of id. Callers must not
// mutate the watched positions (indices 0 and 1) directly; use
// watch-maintaining helpers instead.
func (db *ClauseDatabase) Literals(id ClauseID) []Literal {
	return db.partitionFor(id).record(id).lits
}

// Len returns the number of literals in id.
func (db *ClauseDatabase) Len(id ClauseID) int {
	return db.partitionFor(id).record(id).Len()
}

// Rank returns id's current LBD-derived rank.
func (db *ClauseDatabase) Rank(id ClauseID) uint32 {
	return db.partitionFor(id).record(id).rank
}

// SetRank updates id's rank (recomputed LBD).
func (db *ClauseDatabase) SetRank(id ClauseID, rank uint32) {
	db.partitionFor(id).record(id).rank = rank
}

// Activity returns id's current bump-scaled activity.
func (db *ClauseDatabase) Activity(id ClauseID) float64 {
	return db.partitionFor(id).record(id).activity
}

// JustUsed reports whether id has the one-time reduction reprieve flag set.
func (db *ClauseDatabase) JustUsed(id ClauseID) bool {
	return db.partitionFor(id).record(id).hasFlag(flagJustUsed)
}

// SetJustUsed sets or clears id's reprieve flag.
func (db *ClauseDatabase) SetJustUsed(id ClauseID, used bool) {
	r := db.partitionFor(id).record(id)
	if used {
		r.setFlag(flagJustUsed)
	} else {
		r.clearFlag(flagJustUsed)
	}
}

// IsDead reports whether id has been marked dead (MarkDead), whether or
// not GarbageCollect has recycled its slot yet.
func (db *ClauseDatabase) IsDead(id ClauseID) bool {
	return db.partitionFor(id).record(id).hasFlag(flagDead)
}

// BumpClauseActivity bumps id's activity by the Removable partition's
// current increment and rescales every removable clause's activity
// (and the increment itself) if the bumped value crosses
// activityRescaleThreshold, following the variable-activity
// bump/rescale pattern but keyed to clause participation in a conflict
// (spec.md's clause-activity heuristic, used to break rank ties during
// reduction). Unlike VarHeap, which decays once per conflict, the
// increment is divided by decay after every bump. Clauses of other
// kinds are left as they are and the increment is not decayed.
func (db *ClauseDatabase) BumpClauseActivity(id ClauseID, decay float64) {
	p := db.parts[KindRemovable]
	if id.Kind() != KindRemovable {
		return
	}
	rec := p.record(id)
	rec.activity += p.actInc
	if rec.activity > activityRescaleThreshold {
		for i := range p.records {
			p.records[i].activity /= activityRescaleThreshold
		}
		p.actInc /= activityRescaleThreshold
	}
	p.actInc /= decay
}

// NewClause allocates a fresh clause of the given kind holding lits
// (which must already be normalized — sorted, deduplicated, free of
// tautologies — by the caller; spec.md assigns that responsibility to
// AddClause) and threads it onto the watch chains of lits[0] and
// lits[1]. Clauses of length 1 are never stored here; the caller
// enqueues the unit directly on the trail instead.
func (db *ClauseDatabase) NewClause(kind ClauseKind, lits []Literal) ClauseID {
	if len(lits) < 2 {
		panic("sat: NewClause requires at least two literals")
	}
	p := db.parts[kind]
	id, rec := p.alloc()
	rec.lits = append([]Literal(nil), lits...)
	db.attachWatch(id, rec, 0)
	db.attachWatch(id, rec, 1)
	return id
}

func (db *ClauseDatabase) attachWatch(id ClauseID, rec *clauseRecord, slot int) {
	lit := rec.lits[slot]
	rec.next[slot] = db.watch[lit]
	db.watch[lit] = id
}

// WatchHead returns the first clause watching lit, or NullClauseID.
func (db *ClauseDatabase) WatchHead(lit Literal) ClauseID {
	return db.watch[lit]
}

// NextWatcher returns the next clause in lit's watch chain after id,
// and the slot (0 or 1) that id watches lit through — the caller needs
// the slot to relink or replace that entry in place.
func (db *ClauseDatabase) NextWatcher(id ClauseID, lit Literal) (next ClauseID, slot int) {
	rec := db.partitionFor(id).record(id)
	if rec.lits[0] == lit {
		return rec.next[0], 0
	}
	return rec.next[1], 1
}

// SetNextWatcher rewrites the next-link in id's slot-th watch position;
// used while walking and relinking a watch chain in place.
func (db *ClauseDatabase) SetNextWatcher(id ClauseID, slot int, next ClauseID) {
	db.partitionFor(id).record(id).next[slot] = next
}

// SetWatchHead rewrites lit's chain head; used after relinking during
// in-place propagation or garbage collection.
func (db *ClauseDatabase) SetWatchHead(lit Literal, id ClauseID) {
	db.watch[lit] = id
}

// ReplaceWatchedLiteral moves clause id's watch from its old slot value
// to newLit (written into the same slot position) and threads id onto
// newLit's chain head, for a watched literal that was falsified and
// replaced by a new non-false watch. Propagate does not call it; it
// swaps the literals itself and relinks through attachWatch.
func (db *ClauseDatabase) ReplaceWatchedLiteral(id ClauseID, slot int, newLit Literal) {
	rec := db.partitionFor(id).record(id)
	rec.lits[slot] = newLit
	rec.next[slot] = db.watch[newLit]
	db.watch[newLit] = id
}

// MarkDead flags id as dead (its slot is not yet recycled — that
// happens during the next GarbageCollect sweep), marks both of its
// watched-literal slots touched so GarbageCollect knows to rebuild
// those chains (spec.md §4.1's remove_clause), and, if w is non-nil,
// emits a proof deletion line.
func (db *ClauseDatabase) MarkDead(id ClauseID, w proofWriter) {
	rec := db.partitionFor(id).record(id)
	if rec.hasFlag(flagDead) {
		return
	}
	if w != nil {
		w.Delete(rec.lits)
	}
	db.touched[rec.lits[0]] = true
	db.touched[rec.lits[1]] = true
	rec.setFlag(flagDead)
	db.parts[id.Kind()].numLive--
}

// proofWriter is the minimal slice of internal/proof.Writer the
// database needs; kept as an unexported interface here so that
// internal/sat does not import internal/proof (the dependency runs the
// other way: cmd/cdclsolve wires a concrete Writer into Solver, which
// passes it down to the database).
type proofWriter interface {
	Add(lits []Literal)
	Delete(lits []Literal)
}

// GarbageCollect sweeps every literal slot MarkDead marked touched,
// unlinking dead clauses from that chain in place and clearing the
// flag once rebuilt, then pushes fully-unlinked dead clauses onto
// their partition's recycle freelist (spec.md §4.1's garbage_collect:
// "for each literal slot marked touched, traverse its watch list"). A
// clause whose watch chains have both been rebuilt without it has its
// slot's literals set to recycleLit and is linked onto freeHead.
//
// For every variable touched by a clause that becomes fully recycled,
// hook.Enqueue is called exactly once, matching spec.md §4.1/§4.7's
// elimination-hook contract; hook may be NoopElimHook{}.
func (db *ClauseDatabase) GarbageCollect(hook ElimHook) {
	for lit := Literal(2); int(lit) < len(db.touched); lit++ {
		if !db.touched[lit] {
			continue
		}
		db.touched[lit] = false
		db.rebuildChain(lit)
	}
	for k := ClauseKind(0); k < numClauseKinds; k++ {
		db.recycleDead(db.parts[k], hook)
	}
}

func (db *ClauseDatabase) rebuildChain(lit Literal) {
	var headKept, tailKept ClauseID
	cur := db.watch[lit]
	for cur != NullClauseID {
		rec := db.partitionFor(cur).record(cur)
		next, slot := db.NextWatcher(cur, lit)
		if rec.hasFlag(flagDead) {
			cur = next
			continue
		}
		if headKept == NullClauseID {
			headKept = cur
		} else {
			db.SetNextWatcher(tailKept, watchSlotOf(db, tailKept, lit), cur)
		}
		tailKept = cur
		_ = slot
		cur = next
	}
	if tailKept != NullClauseID {
		db.SetNextWatcher(tailKept, watchSlotOf(db, tailKept, lit), NullClauseID)
	}
	db.watch[lit] = headKept
}

func watchSlotOf(db *ClauseDatabase, id ClauseID, lit Literal) int {
	rec := db.partitionFor(id).record(id)
	if rec.lits[0] == lit {
		return 0
	}
	return 1
}

func (db *ClauseDatabase) recycleDead(p *clausePartition, hook ElimHook) {
	for i := 1; i < len(p.records); i++ {
		rec := &p.records[i]
		if !rec.hasFlag(flagDead) || rec.lits[0] == recycleLit {
			continue
		}
		for _, l := range rec.lits {
			hook.Enqueue(l.VarID())
		}
		rec.lits = []Literal{recycleLit, recycleLit}
		id := newClauseID(p.kind, i)
		rec.next[0] = p.freeHead
		p.freeHead = id
	}
}

// LiveClauseIDs returns, in arena order, the IDs of every non-dead
// clause in the given partition. Used by ReduceDB and by tests.
func (db *ClauseDatabase) LiveClauseIDs(kind ClauseKind) []ClauseID {
	p := db.parts[kind]
	ids := make([]ClauseID, 0, p.numLive)
	for i := 1; i < len(p.records); i++ {
		if !p.records[i].hasFlag(flagDead) {
			ids = append(ids, newClauseID(kind, i))
		}
	}
	return ids
}

// NumLive returns the number of live (non-dead) clauses in kind.
func (db *ClauseDatabase) NumLive(kind ClauseKind) int {
	return db.parts[kind].numLive
}

// ShouldReduce reports whether conflicts (the total conflict count so
// far) has reached the threshold set by the last ReduceDB call.
func (db *ClauseDatabase) ShouldReduce(conflicts int) bool {
	return conflicts >= db.nextReduction
}

// SortByRankThenActivity orders ids ascending by rank, breaking ties by
// descending activity — the ordering ReduceDB uses to decide which
// half of the removable partition survives (spec.md's reduction
// policy: keep the lower-LBD, more-active half).
func SortByRankThenActivity(db *ClauseDatabase, ids []ClauseID) {
	sort.Slice(ids, func(i, j int) bool {
		ri, rj := db.Rank(ids[i]), db.Rank(ids[j])
		if ri != rj {
			return ri < rj
		}
		return db.Activity(ids[i]) > db.Activity(ids[j])
	})
}
