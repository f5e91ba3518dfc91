package sat

// Ema is a calibrated exponential moving average: besides the raw
// running value it tracks a calibrator that corrects the bias an
// ordinary EMA has while its window is still filling (an uncalibrated
// EMA under-reports during warm-up because it starts from zero).
// Grounded on original_source/src/types.rs's Ema, replacing the
// teacher's uncalibrated sat/avg.go, which spec.md's "not biased
// during warm-up" requirement rules out.
type Ema struct {
	value      float64
	calibrator float64
	decay      float64
}

// NewEma returns a zeroed Ema with the given per-update decay rate
// (closer to 1 means a longer effective window).
func NewEma(decay float64) Ema {
	return Ema{decay: decay}
}

// Update folds x into the average.
func (e *Ema) Update(x float64) {
	e.value = e.value*e.decay + x*(1-e.decay)
	e.calibrator = e.calibrator*e.decay + (1 - e.decay)
}

// Get returns the calibrated average; 0 before the first Update.
func (e *Ema) Get() float64 {
	if e.calibrator == 0 {
		return 0
	}
	return e.value / e.calibrator
}

// RestartController decides, after every conflict, whether the search
// should restart (unwind to decision level 0 and let the heap pick a
// fresh decision order) or stay its course. It tracks a fast- and a
// slow-moving LBD average (a rising fast/slow ratio signals the search
// has wandered into a region producing worse and worse learnt clauses)
// and a trail-length average used to block a restart that would just
// redo work the search was about to finish anyway. Grounded on
// original_source/src/restart.rs's force_restart/block_restart.
type RestartController struct {
	fastLBD   Ema
	slowLBD   Ema
	assignAvg Ema // long-run average of the trail length at each conflict

	lastTrailLen          int
	conflictsSinceRestart int

	thresholdK float64 // force restart once fastLBD/slowLBD exceeds this
	blockingR  float64 // suppress restart while the trail is more than this multiple of its own recent average
	minGap     int     // minimum conflicts between consecutive restarts
}

// NewRestartController builds a controller from the solver's restart
// configuration.
func NewRestartController(thresholdK, blockingR float64, minGap int) *RestartController {
	return &RestartController{
		fastLBD:    NewEma(1 - 1.0/32),
		slowLBD:    NewEma(1 - 1.0/4096),
		assignAvg:  NewEma(1 - 1.0/32),
		thresholdK: thresholdK,
		blockingR:  blockingR,
		minGap:     minGap,
	}
}

// OnConflict records one conflict's LBD and the trail's length at the
// time of the conflict, and advances the restart-gap counter.
func (rc *RestartController) OnConflict(lbd uint32, trailLen int) {
	rc.fastLBD.Update(float64(lbd))
	rc.slowLBD.Update(float64(lbd))
	rc.assignAvg.Update(float64(trailLen))
	rc.lastTrailLen = trailLen
	rc.conflictsSinceRestart++
}

// ShouldRestart reports whether the search should restart now. A
// restart is blocked while the trail is deeper than blockingR times
// its own recent average — the search is plausibly about to finish
// this branch, so unwinding now would just redo the work.
func (rc *RestartController) ShouldRestart() bool {
	if rc.conflictsSinceRestart < rc.minGap {
		return false
	}
	if avg := rc.assignAvg.Get(); avg > 0 && float64(rc.lastTrailLen) > rc.blockingR*avg {
		return false
	}
	slow := rc.slowLBD.Get()
	if slow == 0 {
		return false
	}
	return rc.thresholdK < rc.fastLBD.Get()/slow
}

// NoteRestart resets the inter-restart conflict counter.
func (rc *RestartController) NoteRestart() {
	rc.conflictsSinceRestart = 0
}
