package sat

// Propagate drains the trail from its current qHead, enqueuing every
// forced literal it finds and returning the ID of the first clause
// found to be fully falsified, or NullClauseID if the trail was
// drained without conflict. Grounded on
// original_source/src/propagator.rs's propagate(), translated to the
// intrusive per-literal watch chains of database.go.
//
// For each newly-true literal p, the watch chain of ¬p is walked in
// place: a clause whose other watched literal is already true is left
// untouched (the "blocking literal" optimization — no need to scan its
// remaining literals at all); otherwise the clause's non-watched
// literals are scanned for a new non-false watch. If none is found the
// clause is either unit (its other watch is forced true) or a conflict
// (its other watch is already false). Either way the chain being
// walked is fully relinked before Propagate returns, so the watch
// structure is always left consistent even on a conflicting return.
func Propagate(trail *AssignTrail, db *ClauseDatabase) ClauseID {
	for trail.qHead < trail.Len() {
		p := trail.At(trail.qHead)
		trail.qHead++
		falseLit := p.Opposite()

		conflict := db.walkWatchers(falseLit, func(cur ClauseID, rec *clauseRecord, mySlot int) (keep, stop bool) {
			otherSlot := 1 - mySlot
			other := rec.lits[otherSlot]

			if trail.Value(other) == True {
				return true, false
			}

			for i := 2; i < len(rec.lits); i++ {
				cand := rec.lits[i]
				if trail.Value(cand) != False {
					rec.lits[i] = falseLit
					rec.lits[mySlot] = cand
					db.attachWatch(cur, rec, mySlot)
					return false, false
				}
			}

			if trail.Value(other) == False {
				return true, true
			}

			trail.Enqueue(other, cur)
			return true, false
		})
		if conflict != NullClauseID {
			return conflict
		}
	}
	return NullClauseID
}

// walkWatchers walks falseLit's watch chain once, calling visit for
// every clause currently watching falseLit through slot mySlot.
//
//   - visit returns keep=true to leave the clause linked on falseLit's
//     chain (its watched literal at mySlot is unchanged); keep=false
//     means visit already relinked the clause onto a different
//     literal's chain via db.attachWatch, so it must be dropped from
//     falseLit's chain here.
//   - visit returns stop=true to end the walk immediately after this
//     clause (used to report a conflict); the ID of that clause is
//     returned by walkWatchers. The clause is always kept per the
//     keep flag before stopping, so the chain stays consistent.
func (db *ClauseDatabase) walkWatchers(falseLit Literal, visit func(id ClauseID, rec *clauseRecord, slot int) (keep, stop bool)) ClauseID {
	var head, tail ClauseID
	var tailSlot int
	cur := db.WatchHead(falseLit)
	var conflict ClauseID

	for cur != NullClauseID {
		rec := db.partitionFor(cur).record(cur)
		mySlot := 0
		if rec.lits[0] != falseLit {
			mySlot = 1
		}
		next := rec.next[mySlot]

		keep, stop := visit(cur, rec, mySlot)
		if keep {
			if head == NullClauseID {
				head = cur
			} else {
				db.SetNextWatcher(tail, tailSlot, cur)
			}
			tail, tailSlot = cur, mySlot
		}
		if stop {
			conflict = cur
			cur = next
			break
		}
		cur = next
	}

	if tail != NullClauseID {
		db.SetNextWatcher(tail, tailSlot, cur)
	} else {
		head = cur
	}
	db.SetWatchHead(falseLit, head)

	return conflict
}
