package notator

import (
	"github.com/jsphweid/engraver/model"
	"github.com/jsphweid/engraver/pitch"
	"github.com/jsphweid/engraver/score"
)

// Whole is the length of one measure in 128ths.
const Whole = 128

// Token is one notated duration of a marking. A marking whose duration is not
// a power of two turns into several tied tokens.
type Token struct {
	// Pitches is empty for rests.
	Pitches  []pitch.Pitch
	Duration int
	IsCursor bool
	// Articulation is only set on the first token of a marking.
	Articulation []model.Articulation
}

func (t Token) IsRest() bool {
	return len(t.Pitches) == 0
}

// Decompose splits a duration in 128ths into strictly decreasing powers of
// two, largest first.
func Decompose(dur int) []int {
	var res []int
	for check := 4 * Whole; dur > 0 && check > 0; check /= 2 {
		if dur >= check {
			res = append(res, check)
			dur -= check
		}
	}
	return res
}

// Notator walks the markings of one channel in one measure and yields its
// notated tokens. It is single pass and can not be restarted.
type Notator struct {
	score  *score.Score
	user   score.Cursor
	curs   score.Cursor
	chunks []int
	pitch  []pitch.Pitch
	artic  []model.Articulation
	ic     bool
}

// New creates a Notator starting at curs. Tokens of the marking under the
// user's cursor are flagged.
func New(s *score.Score, user, curs score.Cursor) *Notator {
	return &Notator{score: s, user: user, curs: curs}
}

// Next returns the next token, or false once the channel is exhausted.
func (n *Notator) Next() (Token, bool) {
	for len(n.chunks) == 0 {
		m, ok := n.score.Marking(n.curs)
		if !ok {
			return Token{}, false
		}
		c := n.curs
		n.curs = n.curs.RightUnchecked()
		if !m.IsTimed() {
			continue
		}
		n.ic = c == n.user
		n.pitch = m.Note.Pitch
		n.artic = m.Note.Articulation
		n.chunks = Decompose(m.Note.Duration.MulInt(Whole))
	}
	tok := Token{Pitches: n.pitch, Duration: n.chunks[0], IsCursor: n.ic, Articulation: n.artic}
	n.chunks = n.chunks[1:]
	n.artic = nil
	return tok, true
}
