package galaxy

import "slices"

// FrameQueue is the bookkeeping behind a Scheduler: hosts embed it and call
// Fire once per frame. The zero value is ready to use.
type FrameQueue struct {
	next    FrameID
	pending map[FrameID]FrameFunc
}

func (q *FrameQueue) Schedule(fn FrameFunc) FrameID {
	if q.pending == nil {
		q.pending = make(map[FrameID]FrameFunc)
	}
	q.next++
	q.pending[q.next] = fn
	return q.next
}

func (q *FrameQueue) Cancel(id FrameID) { delete(q.pending, id) }

// Len returns the number of scheduled frames.
func (q *FrameQueue) Len() int { return len(q.pending) }

// Fire runs the frames pending at call time in scheduling order. Frames they
// schedule wait for the next Fire; frames they cancel do not run.
func (q *FrameQueue) Fire(now float64) {
	if len(q.pending) == 0 {
		return
	}
	ids := make([]FrameID, 0, len(q.pending))
	for id := range q.pending {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	for _, id := range ids {
		fn, ok := q.pending[id]
		if !ok {
			continue
		}
		delete(q.pending, id)
		fn(now)
	}
}
