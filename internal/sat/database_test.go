package sat

import "testing"

func newTestClauseLits(vars ...VarID) []Literal {
	lits := make([]Literal, len(vars))
	for i, v := range vars {
		lits[i] = PositiveLiteral(v)
	}
	return lits
}

func TestNewClauseAttachesWatches(t *testing.T) {
	db := NewClauseDatabase(4)
	lits := newTestClauseLits(1, 2, 3)
	id := db.NewClause(KindPermanent, lits)

	if db.WatchHead(lits[0]) != id {
		t.Errorf("WatchHead(%v) = %v, want %v", lits[0], db.WatchHead(lits[0]), id)
	}
	if db.WatchHead(lits[1]) != id {
		t.Errorf("WatchHead(%v) = %v, want %v", lits[1], db.WatchHead(lits[1]), id)
	}
	if got := db.Literals(id); len(got) != 3 {
		t.Errorf("Literals(id) has %d literals, want 3", len(got))
	}
}

func TestGarbageCollectRecyclesSlots(t *testing.T) {
	db := NewClauseDatabase(4)
	id1 := db.NewClause(KindRemovable, newTestClauseLits(1, 2))
	if db.NumLive(KindRemovable) != 1 {
		t.Fatalf("NumLive = %d, want 1", db.NumLive(KindRemovable))
	}

	db.MarkDead(id1, nil)
	db.GarbageCollect(NoopElimHook{})
	if db.NumLive(KindRemovable) != 0 {
		t.Fatalf("NumLive after GC = %d, want 0", db.NumLive(KindRemovable))
	}

	id2 := db.NewClause(KindRemovable, newTestClauseLits(1, 3))
	if id2.Index() != id1.Index() {
		t.Errorf("NewClause after GC did not reuse recycled slot: got index %d, want %d", id2.Index(), id1.Index())
	}
	if db.WatchHead(PositiveLiteral(1)) != id2 {
		t.Errorf("WatchHead(1) = %v, want %v (stale watch from recycled clause not cleared)", db.WatchHead(PositiveLiteral(1)), id2)
	}
}

func TestBumpClauseActivityRescales(t *testing.T) {
	db := NewClauseDatabase(4)
	id := db.NewClause(KindRemovable, newTestClauseLits(1, 2))

	p := db.parts[KindRemovable]
	p.actInc = activityRescaleThreshold * 10

	decay := 0.999
	db.BumpClauseActivity(id, decay)

	// 1e21 scaled by 1e-20 is 10; the increment is then decayed once.
	if got := db.Activity(id); got != 10 {
		t.Errorf("Activity(id) after rescale = %v, want 10", got)
	}
	if want := 10 / decay; p.actInc != want {
		t.Errorf("actInc after rescale = %v, want %v", p.actInc, want)
	}
}

func TestElimHookCalledOnFullRecycle(t *testing.T) {
	db := NewClauseDatabase(4)
	id := db.NewClause(KindRemovable, newTestClauseLits(1, 2))
	db.MarkDead(id, nil)

	touched := map[VarID]bool{}
	hook := recordingHook{fn: func(v VarID) { touched[v] = true }}
	db.GarbageCollect(hook)

	if !touched[1] || !touched[2] {
		t.Errorf("GarbageCollect did not notify hook for all touched vars: %v", touched)
	}
}

type recordingHook struct {
	fn func(VarID)
}

func (h recordingHook) Enqueue(v VarID) { h.fn(v) }

func TestGarbageCollectOnlyRebuildsTouchedChains(t *testing.T) {
	db := NewClauseDatabase(4)
	dead := db.NewClause(KindRemovable, newTestClauseLits(1, 2))
	live := db.NewClause(KindRemovable, newTestClauseLits(3, 4))

	db.MarkDead(dead, nil)
	db.GarbageCollect(NoopElimHook{})

	if db.WatchHead(PositiveLiteral(3)) != live {
		t.Errorf("WatchHead(3) = %v, want %v (untouched chain disturbed by GC)", db.WatchHead(PositiveLiteral(3)), live)
	}
	if db.WatchHead(PositiveLiteral(4)) != live {
		t.Errorf("WatchHead(4) = %v, want %v (untouched chain disturbed by GC)", db.WatchHead(PositiveLiteral(4)), live)
	}
}
