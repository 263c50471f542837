package engrave

import (
	"fmt"
	"strings"

	"github.com/jsphweid/engraver/glyph"
)

// Element is a drawing primitive handed to a rendering backend.
type Element interface {
	SVG() string
}

// Rect is a filled rectangle. Nil fields are left to the renderer.
type Rect struct {
	X      int
	Y      int
	Width  int
	Height int
	RX     *int
	RY     *int
	Fill   *uint32
}

func (r Rect) SVG() string {
	var b strings.Builder
	fmt.Fprintf(&b, "<rect x='%v' y='%v' width='%v' height='%v'", r.X, r.Y, r.Width, r.Height)
	if r.RX != nil {
		fmt.Fprintf(&b, " rx='%v'", *r.RX)
	}
	if r.RY != nil {
		fmt.Fprintf(&b, " ry='%v'", *r.RY)
	}
	if r.Fill != nil {
		fmt.Fprintf(&b, " fill='#%06x'", *r.Fill)
	}
	b.WriteString("/>")
	return b.String()
}

// Stamp places one glyph.
type Stamp struct {
	X     int
	Y     int
	Glyph glyph.Glyph
}

func (s Stamp) SVG() string {
	return fmt.Sprintf("<use x='%v' y='%v' xlink:href='#%v'/>", s.X, s.Y, s.Glyph.ID())
}

// Path is a freeform shape in SVG path syntax.
type Path struct {
	ID string
	D  string
}

func (p Path) SVG() string {
	if p.ID != "" {
		return fmt.Sprintf("<path id='%v' d='%v'/>", p.ID, p.D)
	}
	return fmt.Sprintf("<path d='%v'/>", p.D)
}

// Group translates its elements.
type Group struct {
	ID       string
	X        int
	Y        int
	Elements []Element
}

func (g Group) SVG() string {
	var b strings.Builder
	b.WriteString("<g")
	if g.ID != "" {
		fmt.Fprintf(&b, " id='%v'", g.ID)
	}
	if g.X != 0 || g.Y != 0 {
		fmt.Fprintf(&b, " transform='translate(%v %v)'", g.X, g.Y)
	}
	b.WriteString(">")
	for _, e := range g.Elements {
		b.WriteString(e.SVG())
	}
	b.WriteString("</g>")
	return b.String()
}

func ptr[T any](v T) *T {
	return &v
}
