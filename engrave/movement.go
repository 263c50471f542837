package engrave

import (
	"fmt"
	"io"

	"github.com/jsphweid/engraver/pitch"
	"github.com/jsphweid/engraver/score"
	"github.com/jsphweid/engraver/util"
	"github.com/pkg/errors"
)

type Options struct {
	Staff Staff
	// Signatures draws the clef and time signature on the first bar.
	Signatures bool
	// MaxBars limits the number of engraved measures, 0 for all.
	MaxBars int
}

func DefaultOptions() Options {
	return Options{Staff: Alto(), Signatures: true}
}

// Layout is a movement engraved bar after bar.
type Layout struct {
	Bars   []Group
	Cursor *Rect
	Width  int
	Height int
}

// noteRange is the lowest and highest visual distance of any note in a
// movement, so every bar shares one row height.
func noteRange(s *score.Score, movement int, staff Staff) (pitch.Steps, pitch.Steps) {
	var steps []pitch.Steps
	for _, bar := range s.Movement[movement].Bar {
		for _, ch := range bar.Chan {
			for _, m := range ch.Notes {
				if !m.HasNote() {
					continue
				}
				for _, p := range m.Note.Pitch {
					steps = append(steps, p.VisualDistance())
				}
			}
		}
	}
	low, high, ok := util.Extent(steps)
	if !ok {
		return staff.Middle(), staff.Middle()
	}
	return low, high
}

// Movement engraves the measures of one movement. The cursor highlight is
// returned in layout coordinates.
func Movement(s *score.Score, user score.Cursor, movement int, opts Options) (*Layout, error) {
	if movement < 0 || movement >= len(s.Movement) {
		return nil, errors.Errorf("no movement %v", movement)
	}
	if opts.Staff.Lines == 0 {
		opts.Staff = Alto()
	}
	mv := s.Movement[movement]
	low, high := noteRange(s, movement, opts.Staff)
	rows := s.NumChannels(movement)

	layout := &Layout{}
	for i := range mv.Bar {
		if opts.MaxBars > 0 && i >= opts.MaxBars {
			break
		}
		bar := NewBar(opts.Staff, high, low)
		if i == 0 && opts.Signatures {
			time := score.DefaultSig().Time
			if len(mv.Sig) > 0 {
				time = mv.Sig[0].Time
			}
			bar.AddSignatures(rows, time)
		}
		rect, ok := bar.AddMarkings(s, user, score.NewCursor(movement, i, 0, 0))
		if ok {
			rect.X += layout.Width
			layout.Cursor = rect
		}
		layout.Bars = append(layout.Bars, Group{
			ID:       fmt.Sprintf("m%v", i),
			X:        layout.Width,
			Elements: bar.Elements,
		})
		layout.Width += bar.Width
		layout.Height = rows * bar.RowHeight()
	}
	return layout, nil
}

// WriteSVG writes a layout as an SVG document. Glyph stamps reference
// symbols by codepoint id, to be provided by the renderer's font defs.
func WriteSVG(w io.Writer, l *Layout) error {
	_, err := fmt.Fprintf(w,
		"<svg xmlns='http://www.w3.org/2000/svg' xmlns:xlink='http://www.w3.org/1999/xlink' viewBox='0 0 %v %v'>",
		l.Width, l.Height)
	if err != nil {
		return errors.Wrap(err, "could not write svg")
	}
	if l.Cursor != nil {
		if _, err := io.WriteString(w, l.Cursor.SVG()); err != nil {
			return errors.Wrap(err, "could not write svg")
		}
	}
	page := Group{ID: "page"}
	for _, bar := range l.Bars {
		page.Elements = append(page.Elements, bar)
	}
	if _, err := io.WriteString(w, page.SVG()+"</svg>\n"); err != nil {
		return errors.Wrap(err, "could not write svg")
	}
	return nil
}
