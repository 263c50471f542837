package editor

import (
	"log/slog"
	"strings"

	"github.com/jsphweid/engraver/fraction"
	"github.com/jsphweid/engraver/model"
	"github.com/jsphweid/engraver/pitch"
	"github.com/jsphweid/engraver/score"
	"github.com/pkg/errors"
)

// Editor is a score with a user cursor on it. Every command re-resolves the
// cursor against the score.
type Editor struct {
	Score  *score.Score
	Cursor score.Cursor
}

func New(s *score.Score) *Editor {
	return &Editor{Score: s, Cursor: score.NewCursor(0, 0, 0, 0)}
}

// Left moves the cursor one marking back.
func (e *Editor) Left() {
	e.Cursor.Left(e.Score)
}

// Right moves the cursor one marking on. Moving past the last measure of the
// movement appends a new one, so Left after Right restores the cursor but not
// the measure count.
func (e *Editor) Right() {
	e.Cursor.Right(e.Score)
	if !e.Score.MeasureExists(e.Cursor) {
		slog.Debug("cursor moved past the last measure", "cursor", e.Cursor)
		e.Score.NewMeasure(e.Cursor.Movement)
	}
}

// step applies a transposition to the first chord member at the cursor. An
// implicit measure rest turns into a whole note middle C.
func (e *Editor) step(move func(model.Note, int, pitch.Pitch) model.Note) {
	n, ok := e.Score.Note(e.Cursor)
	if !ok {
		if e.Score.MarkingLen(e.Cursor) == 0 {
			e.Score.SetWholePitch(e.Cursor)
		}
		return
	}
	e.Score.SetNote(e.Cursor, move(n, 0, pitch.MiddleC))
}

func (e *Editor) UpStep() {
	e.step(model.Note.StepUp)
}

func (e *Editor) DownStep() {
	e.step(model.Note.StepDown)
}

func (e *Editor) UpHalfStep() {
	e.step(model.Note.HalfStepUp)
}

func (e *Editor) DownHalfStep() {
	e.step(model.Note.HalfStepDown)
}

func (e *Editor) UpQuarterStep() {
	e.step(model.Note.QuarterStepUp)
}

func (e *Editor) DownQuarterStep() {
	e.step(model.Note.QuarterStepDown)
}

// SetDur changes the duration at the cursor. On an implicit measure rest it
// writes a rest of that duration at the start of the measure.
func (e *Editor) SetDur(d fraction.Fraction) {
	if _, ok := e.Score.Note(e.Cursor); ok {
		e.Score.SetDuration(e.Cursor, d)
		return
	}
	if e.Score.MarkingLen(e.Cursor) == 0 {
		e.Score.SetWholeDuration(e.Cursor, d)
	}
}

// Commands are the editor operations reachable by name.
var Commands = map[string]func(*Editor){
	"left":              (*Editor).Left,
	"right":             (*Editor).Right,
	"up-step":           (*Editor).UpStep,
	"down-step":         (*Editor).DownStep,
	"up-half-step":      (*Editor).UpHalfStep,
	"down-half-step":    (*Editor).DownHalfStep,
	"up-quarter-step":   (*Editor).UpQuarterStep,
	"down-quarter-step": (*Editor).DownQuarterStep,
}

// Run executes one named command. "dur=1/8" sets a duration.
func (e *Editor) Run(command string) error {
	if ds, ok := strings.CutPrefix(command, "dur="); ok {
		d, err := fraction.Parse(ds)
		if err != nil {
			return errors.Wrapf(err, "bad duration in %q", command)
		}
		if d.IsZero() {
			return errors.Errorf("zero duration in %q", command)
		}
		e.SetDur(d)
		return nil
	}
	run, ok := Commands[command]
	if !ok {
		return errors.Errorf("unknown command %q", command)
	}
	run(e)
	return nil
}
