package engrave

import (
	"github.com/jsphweid/engraver/notator"
	"golang.org/x/exp/slices"
)

// event is the next token of a channel and the time it starts at.
type event struct {
	chan_ int
	start int
	token notator.Token
}

// syncQueue orders channels by the start of their next token, first in first
// out among equal starts.
type syncQueue struct {
	events []event
}

func (q *syncQueue) push(e event) {
	i := slices.IndexFunc(q.events, func(o event) bool {
		return o.start > e.start
	})
	if i < 0 {
		i = len(q.events)
	}
	q.events = slices.Insert(q.events, i, e)
}

func (q *syncQueue) pop() (event, bool) {
	if len(q.events) == 0 {
		return event{}, false
	}
	e := q.events[0]
	q.events = q.events[1:]
	return e, true
}
