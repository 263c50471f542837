package engrave

import (
	"fmt"
	"strings"

	"github.com/jsphweid/engraver/glyph"
	"github.com/jsphweid/engraver/pitch"
	"github.com/pkg/errors"
)

const (
	// BarWidth is the minimum width of one bar.
	BarWidth     = 3200
	BarlineWidth = 36
	// NoteMargin is the space before the first note of a bar.
	NoteMargin     = BarlineWidth
	WholeRestWidth = 230

	// StepDY is the height of one visual step (half a staff space).
	StepDY      = 125
	MarginX     = BarlineWidth
	MarginSteps = pitch.Steps(6)
	LineWidth   = BarlineWidth

	StemWidth  = 30
	StemLength = 7 * StepDY
	HeadWidth  = 266

	BeamThickness = StepDY
	BeamGap       = StepDY / 2
)

// Staff describes the lines one channel is drawn on.
type Staff struct {
	Lines int
	// Top is the visual distance of the top line from middle C.
	Top  pitch.Steps
	Clef glyph.Glyph
}

func Treble() Staff { return Staff{Lines: 5, Top: 10, Clef: glyph.GClef} }
func Alto() Staff   { return Staff{Lines: 5, Top: 4, Clef: glyph.CClef} }
func Bass() Staff   { return Staff{Lines: 5, Top: -2, Clef: glyph.FClef} }

// StaffFor looks up a staff by clef name.
func StaffFor(clef string) (Staff, error) {
	switch strings.ToLower(clef) {
	case "treble", "g":
		return Treble(), nil
	case "alto", "c", "":
		return Alto(), nil
	case "bass", "f":
		return Bass(), nil
	}
	return Staff{}, errors.Errorf("unknown clef %q", clef)
}

func (s Staff) HeightSteps() pitch.Steps {
	if s.Lines > 0 {
		return pitch.Steps(2 * (s.Lines - 1))
	}
	return 0
}

// Middle is the visual distance of the middle line.
func (s Staff) Middle() pitch.Steps {
	return s.Top - s.HeightSteps()/2
}

func (s Staff) Bottom() pitch.Steps {
	return s.Top - s.HeightSteps()
}

// clefAnchor is the line the clef glyph is centered on.
func (s Staff) clefAnchor() pitch.Steps {
	switch s.Clef {
	case glyph.GClef:
		return s.Bottom() + 2
	case glyph.FClef:
		return s.Top - 2
	}
	return s.Middle()
}

// stepsTop is the top margin, rounded to a line above the highest note.
func (s Staff) stepsTop(high pitch.Steps) pitch.Steps {
	top := (high/2)*2 + 2
	return max(s.Top+MarginSteps, top)
}

func (s Staff) stepsBottom(low pitch.Steps) pitch.Steps {
	bottom := (low/2)*2 - 2
	return min(s.Bottom()-MarginSteps, bottom)
}

// path draws the staff lines starting at y top, shifted down by ofs pixels.
func (s Staff) path(top, width, ofs int) Path {
	width += BarlineWidth / 2
	x := MarginX - BarlineWidth/2
	var d strings.Builder
	for i := 0; i < s.Lines; i++ {
		y := top + StepDY*i*2 - LineWidth/2 + ofs
		fmt.Fprintf(&d, "M%v %vh%vv%vh-%vv-%vz", x, y, width, LineWidth, width, LineWidth)
	}
	return Path{D: d.String()}
}
