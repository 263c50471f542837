package engrave

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/jsphweid/engraver/beams"
	"github.com/jsphweid/engraver/glyph"
	"github.com/jsphweid/engraver/notator"
	"github.com/jsphweid/engraver/pitch"
	"github.com/jsphweid/engraver/score"
)

// CursorFill is the color of the edit cursor highlight.
const CursorFill = 0xFF9AF0

// Bar is one measure engraved across all channel rows.
type Bar struct {
	Staff Staff
	// StepsTop and StepsBottom are the visual distances of the row margins.
	StepsTop    pitch.Steps
	StepsBottom pitch.Steps
	Width       int
	Elements    []Element
}

// NewBar creates an empty bar tall enough for notes between low and high.
func NewBar(staff Staff, high, low pitch.Steps) *Bar {
	return &Bar{
		Staff:       staff,
		StepsTop:    staff.stepsTop(high),
		StepsBottom: staff.stepsBottom(low),
	}
}

func (b *Bar) offsetY(steps pitch.Steps) int {
	return int(b.StepsTop-steps) * StepDY
}

// RowHeight is the height of one channel row.
func (b *Bar) RowHeight() int {
	return int(b.StepsTop-b.StepsBottom) * StepDY
}

func (b *Bar) rowOffset(row int) int {
	return row * b.RowHeight()
}

func (b *Bar) middle() int {
	return b.offsetY(b.Staff.Middle())
}

func (b *Bar) stamp(g glyph.Glyph, x, y int) {
	b.Elements = append(b.Elements, Stamp{X: x, Y: y, Glyph: g})
}

func (b *Bar) rect(x, y, width, height int) {
	b.Elements = append(b.Elements, Rect{X: x, Y: y, Width: width, Height: height})
}

// AddSignatures draws the clef and the time signature at the start of each
// row, widening the bar.
func (b *Bar) AddSignatures(rows int, time string) {
	for i := 0; i < rows; i++ {
		b.stamp(b.Staff.Clef, MarginX+150, b.offsetY(b.Staff.clefAnchor())+b.rowOffset(i))
	}
	b.Width += 1000

	num, den, ok := strings.Cut(time, "/")
	if !ok {
		slog.Warn("skipping time signature", "time", time)
		return
	}
	digits := max(len(num), len(den))
	for i := 0; i < rows; i++ {
		ofs := b.rowOffset(i)
		b.timeDigits(num, b.Width, b.middle()-2*StepDY+ofs)
		b.timeDigits(den, b.Width, b.middle()+2*StepDY+ofs)
	}
	b.Width += 640 + 420*(digits-1)
}

func (b *Bar) timeDigits(s string, x, y int) {
	for i, c := range s {
		d, err := strconv.Atoi(string(c))
		if err != nil {
			continue
		}
		if g, ok := glyph.TimeDigit(d); ok {
			b.stamp(g, MarginX+x+50+420*i, y)
		}
	}
}

// placement is a token laid out at a horizontal position in spacing units.
type placement struct {
	row   int
	x     float64
	token notator.Token
}

// AddMarkings engraves one measure of every channel. The channels share one
// time axis: each step of the merge advances the horizontal position once,
// by the spacing of the time since the previous step. It returns the cursor
// highlight if the user's cursor is in this measure.
func (b *Bar) AddMarkings(s *score.Score, user, measure score.Cursor) (*Rect, bool) {
	rows := s.NumChannels(measure.Movement)
	prefix := b.Width

	notators := make([]*notator.Notator, rows)
	groups := make([]*beams.Beams, rows)
	empty := make([]bool, rows)
	var q syncQueue
	for i := 0; i < rows; i++ {
		notators[i] = notator.New(s, user, measure.FirstMarking().WithChan(i))
		groups[i] = beams.New()
		tok, ok := notators[i].Next()
		if !ok {
			empty[i] = true
			continue
		}
		q.push(event{chan_: i, start: 0, token: tok})
	}

	var (
		cur, end             int
		x                    float64
		times                = []int{0}
		xs                   = []float64{0}
		placed               []placement
		cursorFrom, cursorTo = -1, -1
	)
	for e, ok := q.pop(); ok; e, ok = q.pop() {
		if e.start > cur {
			x += Spacing(e.start - cur)
			cur = e.start
			times = append(times, cur)
			xs = append(xs, x)
		}
		placed = append(placed, placement{row: e.chan_, x: x, token: e.token})

		var head *beams.Head
		if !e.token.IsRest() {
			head = &beams.Head{Pitches: e.token.Pitches, Row: e.chan_, Middle: b.Staff.Middle()}
		}
		groups[e.chan_].Advance(e.token.Duration, x, head)

		stop := e.start + e.token.Duration
		end = max(end, stop)
		if e.token.IsCursor {
			if cursorFrom < 0 {
				cursorFrom = e.start
			}
			cursorTo = stop
		}
		if tok, ok := notators[e.chan_].Next(); ok {
			q.push(event{chan_: e.chan_, start: stop, token: tok})
		}
	}
	if end > cur {
		x += Spacing(end - cur)
		times = append(times, end)
		xs = append(xs, x)
	}

	content := int(x * SpacingUnit)
	width := max(NoteMargin+content, BarWidth)
	scale := 0.0
	if x > 0 {
		scale = float64(width-NoteMargin) / x
	}
	px := func(at float64) int {
		return prefix + NoteMargin + int(at*scale)
	}
	b.Width = prefix + width
	slog.Debug("engraved bar", "measure", measure.Measure, "content", content, "width", b.Width)

	for row, isEmpty := range empty {
		if isEmpty {
			b.addMeasureRest(prefix, width, row)
		}
	}
	for _, p := range placed {
		if p.token.IsRest() {
			b.addRest(p.token.Duration, px(p.x), p.row)
		} else {
			b.addChord(p.token, px(p.x), p.row)
		}
	}
	for row := rows - 1; row >= 0; row-- {
		for sh, ok := groups[row].Next(); ok; sh, ok = groups[row].Next() {
			switch sh.Kind {
			case beams.KindFlag:
				b.addFlag(sh, px(sh.X))
			case beams.KindBeam:
				b.addBeam(sh, px)
			}
		}
	}
	for row := 0; row < rows; row++ {
		ofs := b.rowOffset(row)
		b.Elements = append(b.Elements, b.Staff.path(b.offsetY(b.Staff.Top), b.Width-MarginX, ofs))
		b.addBarline(0, row)
		b.addBarline(b.Width-BarlineWidth, row)
	}

	if user.Movement != measure.Movement || user.Measure != measure.Measure ||
		user.Chan < 0 || user.Chan >= rows {
		return nil, false
	}
	cursor := &Rect{Y: b.rowOffset(user.Chan), Height: b.RowHeight(), Fill: ptr[uint32](CursorFill)}
	switch {
	case empty[user.Chan]:
		cursor.X = prefix
		cursor.Width = width
	case cursorFrom >= 0:
		from := px(interpolate(times, xs, cursorFrom))
		to := px(interpolate(times, xs, cursorTo))
		cursor.X = from
		cursor.Width = to - from
	default:
		return nil, false
	}
	return cursor, true
}

// interpolate finds the horizontal position of a time between two
// synchronization points.
func interpolate(times []int, xs []float64, t int) float64 {
	for i, at := range times {
		if at == t {
			return xs[i]
		}
		if at > t && i > 0 {
			amount := float64(t-times[i-1]) / float64(at-times[i-1])
			return xs[i-1] + (xs[i]-xs[i-1])*amount
		}
	}
	return xs[len(xs)-1]
}

func (b *Bar) addBarline(x, row int) {
	ofs := b.rowOffset(row)
	y := b.offsetY(b.Staff.Top) + ofs
	bottom := b.offsetY(b.Staff.Bottom()) + ofs
	b.rect(x+(MarginX-BarlineWidth), y, BarlineWidth, bottom-y)
}

func (b *Bar) addMeasureRest(prefix, width, row int) {
	x := prefix + (MarginX - BarlineWidth) + (width-WholeRestWidth)/2
	y := b.middle() + b.rowOffset(row) - 2*StepDY
	b.stamp(glyph.Rest1, x, y)
}

func (b *Bar) addRest(dur, x, row int) {
	g, ok := glyph.RestDuration(dur)
	if !ok {
		slog.Warn("no rest glyph", "duration", dur)
		return
	}
	y := b.middle() + b.rowOffset(row)
	// whole rests hang from the line above the middle
	if g == glyph.Rest1 {
		y -= 2 * StepDY
	}
	b.stamp(g, x, y)
}

// headYs returns the notehead positions of a chord, and the topmost and
// bottommost of them.
func (b *Bar) headYs(pitches []pitch.Pitch, row int) ([]int, int, int) {
	ofs := b.rowOffset(row)
	ys := make([]int, len(pitches))
	for i, p := range pitches {
		ys[i] = b.offsetY(p.VisualDistance()) + ofs
	}
	top, bottom := ys[0], ys[0]
	for _, y := range ys[1:] {
		top = min(top, y)
		bottom = max(bottom, y)
	}
	return ys, top, bottom
}

// stemsUp is true for notes below the middle line.
func (b *Bar) stemsUp(y, row int) bool {
	return y > b.middle()+b.rowOffset(row)
}

func (b *Bar) addChord(tok notator.Token, x, row int) {
	ys, top, bottom := b.headYs(tok.Pitches, row)
	head := glyph.NoteheadDuration(tok.Duration)
	for i, p := range tok.Pitches {
		b.stamp(head, x, ys[i])
		if g, ok := glyph.ForAccidental(p.Class.Accidental); ok {
			b.stamp(g, x-HeadWidth-StepDY/2, ys[i])
		}
		b.addLedgerLines(p.VisualDistance(), tok.Duration, x, row)
	}
	up := b.stemsUp(ys[0], row)
	// flagged and beamed stems are drawn with their groups
	if tok.Duration >= 32 && tok.Duration < 128 {
		b.addStem(x, top, bottom, up)
	}
	// articulations go on the notehead side
	for i, a := range tok.Articulation {
		g, ok := glyph.ForArticulation(a)
		if !ok {
			continue
		}
		if up {
			b.stamp(g, x, bottom+(2+2*i)*StepDY)
		} else {
			b.stamp(g, x, top-(2+2*i)*StepDY)
		}
	}
}

func (b *Bar) addStem(x, top, bottom int, up bool) {
	rx, ry := ptr(StemWidth/2), ptr(StemWidth)
	if up {
		b.Elements = append(b.Elements, Rect{
			X: x + HeadWidth, Y: top - StemLength,
			Width: StemWidth, Height: bottom - top + StemLength,
			RX: rx, RY: ry,
		})
	} else {
		b.Elements = append(b.Elements, Rect{
			X: x, Y: top,
			Width: StemWidth, Height: bottom - top + StemLength,
			RX: rx, RY: ry,
		})
	}
}

func (b *Bar) addLedgerLines(vd pitch.Steps, dur, x, row int) {
	width := HeadWidth
	// whole notes and longer have wide noteheads
	if dur >= 128 {
		width += HeadWidth / 2
	}
	x -= (HeadWidth - StemWidth/2) / 2
	ofs := b.rowOffset(row)
	for line := b.Staff.Top + 2; line <= vd; line += 2 {
		b.rect(x, b.offsetY(line)+ofs-LineWidth/2, HeadWidth+width, LineWidth)
	}
	for line := b.Staff.Bottom() - 2; line >= vd; line -= 2 {
		b.rect(x, b.offsetY(line)+ofs-LineWidth/2, HeadWidth+width, LineWidth)
	}
}

func (b *Bar) addFlag(sh beams.Short, x int) {
	row := sh.Head.Row
	ys, top, bottom := b.headYs(sh.Head.Pitches, row)
	up := b.stemsUp(ys[0], row)
	b.addStem(x, top, bottom, up)
	g, ok := glyph.FlagDuration(sh.Duration, up)
	if !ok {
		slog.Warn("no flag glyph", "duration", sh.Duration)
		return
	}
	if up {
		b.stamp(g, x+HeadWidth, top-StemLength)
	} else {
		b.stamp(g, x, bottom+StemLength)
	}
}

// beamCount is the number of beams a duration in 128ths needs.
func beamCount(dur int) int {
	switch {
	case dur >= 16:
		return 1
	case dur >= 8:
		return 2
	case dur >= 4:
		return 3
	case dur >= 2:
		return 4
	}
	return 5
}

func (b *Bar) addBeam(sh beams.Short, px func(float64) int) {
	n := len(sh.Members)
	if n == 0 {
		return
	}
	row := sh.Members[0].Head.Row
	xs := make([]int, n)
	tops := make([]int, n)
	bottoms := make([]int, n)
	for i, m := range sh.Members {
		xs[i] = px(m.X)
		_, tops[i], bottoms[i] = b.headYs(m.Head.Pitches, row)
	}

	// beams are drawn flat, at the stem end farthest from the middle
	end := tops[0]
	for i := range sh.Members {
		if sh.StemsUp {
			end = min(end, tops[i]-StemLength)
		} else {
			end = max(end, bottoms[i]+StemLength)
		}
	}

	stemX := make([]int, n)
	for i := range sh.Members {
		rx, ry := ptr(StemWidth/2), ptr(StemWidth)
		if sh.StemsUp {
			stemX[i] = xs[i] + HeadWidth
			b.Elements = append(b.Elements, Rect{
				X: stemX[i], Y: end, Width: StemWidth, Height: bottoms[i] - end, RX: rx, RY: ry,
			})
		} else {
			stemX[i] = xs[i]
			b.Elements = append(b.Elements, Rect{
				X: stemX[i], Y: tops[i], Width: StemWidth, Height: end - tops[i], RX: rx, RY: ry,
			})
		}
	}

	levelY := func(level int) int {
		if sh.StemsUp {
			return end + level*(BeamThickness+BeamGap)
		}
		return end - BeamThickness - level*(BeamThickness+BeamGap)
	}
	var d strings.Builder
	segment := func(x1, x2, y int) {
		fmt.Fprintf(&d, "M%v %vL%v %vL%v %vL%v %vz", x1, y, x2, y, x2, y+BeamThickness, x1, y+BeamThickness)
	}

	segment(stemX[0], stemX[n-1]+StemWidth, levelY(0))
	for level := 1; level < 5; level++ {
		for i := range sh.Members {
			if beamCount(sh.Members[i].Duration) <= level {
				continue
			}
			joinsNext := i+1 < n && beamCount(sh.Members[i+1].Duration) > level && !sh.Members[i+1].OneBeam
			joinsPrev := i > 0 && beamCount(sh.Members[i-1].Duration) > level && !sh.Members[i].OneBeam
			switch {
			case joinsNext:
				segment(stemX[i], stemX[i+1]+StemWidth, levelY(level))
			case joinsPrev:
			case i > 0:
				segment(stemX[i]-HeadWidth/2, stemX[i]+StemWidth, levelY(level))
			default:
				segment(stemX[i], stemX[i]+HeadWidth/2, levelY(level))
			}
		}
	}
	b.Elements = append(b.Elements, Path{D: d.String()})
}
