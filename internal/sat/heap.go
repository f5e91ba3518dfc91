package sat

import "github.com/rhartert/yagh"

// VarHeap maintains the decision order: a max-heap over per-variable
// activity, broken by phase-saving to pick the polarity last assigned
// to (or dropped from) the trail. Grounded on the teacher's
// internal/sat/ordering.go, which wraps the same yagh.IntMap[float64]
// min-heap (activities are stored negated so Pop yields the max).
//
// Unlike the teacher, the rescale threshold here is 1e20, matching
// spec.md and original_source/src/clause.rs's bump_cid — the teacher's
// 1e100 is not reused.
type VarHeap struct {
	order *yagh.IntMap[float64]

	activity []float64
	actInc   float64
	decay    float64

	phases      []LBool
	phaseSaving bool
}

// NewVarHeap returns an empty heap. decay is the per-conflict activity
// decay rate (VariableDecayRate in Config); phaseSaving enables
// polarity memory across backtracks. Slot 0 is a placeholder for the
// reserved VarID 0 and is never selectable, so the first AddVar
// returns VarID 1.
func NewVarHeap(decay float64, phaseSaving bool) *VarHeap {
	return &VarHeap{
		order:       yagh.New[float64](1),
		activity:    []float64{0},
		phases:      []LBool{Bottom},
		actInc:      1,
		decay:       decay,
		phaseSaving: phaseSaving,
	}
}

// AddVar registers a freshly declared variable with the given initial
// activity and initial phase, and makes it eligible for selection.
func (h *VarHeap) AddVar(initActivity float64, initPhase bool) VarID {
	v := VarID(len(h.phases))
	h.activity = append(h.activity, initActivity)
	h.phases = append(h.phases, Lift(initPhase))
	h.order.GrowBy(1)
	h.order.Put(int(v), -initActivity)
	return v
}

// Reinsert makes v eligible for selection again (called when v is
// unassigned by backtracking); val is the value v held just before
// being unassigned, remembered for phase saving.
func (h *VarHeap) Reinsert(v VarID, val LBool) {
	if h.phaseSaving && val != Bottom {
		h.phases[v] = val
	}
	h.order.Put(int(v), -h.activity[v])
}

// Contains reports whether v is currently a selectable candidate.
func (h *VarHeap) Contains(v VarID) bool {
	return h.order.Contains(int(v))
}

// DecayActivity bumps the activity increment so that future BumpActivity
// calls count for relatively more than past ones, implementing decay
// without touching every variable's stored activity.
func (h *VarHeap) DecayActivity() {
	h.actInc /= h.decay
	if h.actInc > activityRescaleThreshold {
		h.rescale()
	}
}

// BumpActivity increases v's activity by the current increment,
// rescaling every variable's activity (and the increment) if v's new
// activity crosses activityRescaleThreshold.
func (h *VarHeap) BumpActivity(v VarID) {
	newAct := h.activity[v] + h.actInc
	h.activity[v] = newAct
	if h.order.Contains(int(v)) {
		h.order.Put(int(v), -newAct)
	}
	if newAct > activityRescaleThreshold {
		h.rescale()
	}
}

func (h *VarHeap) rescale() {
	h.actInc /= activityRescaleThreshold
	for v, a := range h.activity {
		newAct := a / activityRescaleThreshold
		h.activity[v] = newAct
		if h.order.Contains(v) {
			h.order.Put(v, -newAct)
		}
	}
}

// PopDecision pops the highest-activity still-unassigned variable and
// returns the literal to assign it to, honoring phase saving. assigned
// reports, for each variable, whether it currently holds a value.
// Returns NullLiteral if the heap is exhausted.
func (h *VarHeap) PopDecision(assigned func(VarID) bool) Literal {
	for {
		item, ok := h.order.Pop()
		if !ok {
			return NullLiteral
		}
		v := VarID(item.Elem)
		if assigned(v) {
			continue
		}
		if h.phases[v] == False {
			return NegativeLiteral(v)
		}
		return PositiveLiteral(v)
	}
}

// Activity returns v's current activity score (for diagnostics/tests).
func (h *VarHeap) Activity(v VarID) float64 {
	return h.activity[v]
}
