// Package glyph maps notation symbols to SMuFL codepoints.
package glyph

import (
	"fmt"

	"github.com/jsphweid/engraver/model"
	"github.com/jsphweid/engraver/pitch"
)

// Glyph is a SMuFL codepoint.
type Glyph rune

const (
	// Clefs
	GClef Glyph = 0xE050
	CClef Glyph = 0xE05C
	FClef Glyph = 0xE062

	// Time signatures
	TimeSig0      Glyph = 0xE080
	TimeSigCommon Glyph = 0xE08A
	TimeSigCut    Glyph = 0xE08B

	// Noteheads
	NoteheadDouble Glyph = 0xE0A0
	NoteheadWhole  Glyph = 0xE0A2
	NoteheadHalf   Glyph = 0xE0A3
	NoteheadFill   Glyph = 0xE0A4

	// Flags
	FlagUp8     Glyph = 0xE240
	FlagDown8   Glyph = 0xE241
	FlagUp16    Glyph = 0xE242
	FlagDown16  Glyph = 0xE243
	FlagUp32    Glyph = 0xE244
	FlagDown32  Glyph = 0xE245
	FlagUp64    Glyph = 0xE246
	FlagDown64  Glyph = 0xE247
	FlagUp128   Glyph = 0xE248
	FlagDown128 Glyph = 0xE249

	// Accidentals
	Flat                   Glyph = 0xE260
	Natural                Glyph = 0xE261
	Sharp                  Glyph = 0xE262
	DoubleSharp            Glyph = 0xE263
	DoubleFlat             Glyph = 0xE264
	QuarterToneFlat        Glyph = 0xE280
	ThreeQuarterTonesFlat  Glyph = 0xE281
	QuarterToneSharp       Glyph = 0xE282
	ThreeQuarterTonesSharp Glyph = 0xE283

	// Articulations, above the note
	AccentAbove        Glyph = 0xE4A0
	StaccatoAbove      Glyph = 0xE4A2
	TenutoAbove        Glyph = 0xE4A4
	StaccatissimoAbove Glyph = 0xE4A6
	MarcatoAbove       Glyph = 0xE4AC
	BrassMuteClosed    Glyph = 0xE5E5
	BrassMuteOpen      Glyph = 0xE5E7
	StringsHarmonic    Glyph = 0xE614
	KeyboardPedal      Glyph = 0xE650

	// Rests
	RestLonga  Glyph = 0xE4E1
	RestDouble Glyph = 0xE4E2
	Rest1      Glyph = 0xE4E3
	Rest2      Glyph = 0xE4E4
	Rest4      Glyph = 0xE4E5
	Rest8      Glyph = 0xE4E6
	Rest16     Glyph = 0xE4E7
	Rest32     Glyph = 0xE4E8
	Rest64     Glyph = 0xE4E9
	Rest128    Glyph = 0xE4EA
)

// ID is the lowercase hex codepoint, used as the SVG symbol id.
func (g Glyph) ID() string {
	return fmt.Sprintf("%x", rune(g))
}

func (g Glyph) String() string {
	return string(rune(g))
}

// RestDuration is the rest for a duration in 128ths, dotted values included.
func RestDuration(dur int) (Glyph, bool) {
	switch dur {
	case 1:
		return Rest128, true
	case 2, 3:
		return Rest64, true
	case 4, 6, 9:
		return Rest32, true
	case 8, 12, 18, 27:
		return Rest16, true
	case 16, 24, 36, 54, 81:
		return Rest8, true
	case 32, 48, 72, 108, 162:
		return Rest4, true
	case 64, 96, 144, 216:
		return Rest2, true
	case 128, 192, 288:
		return Rest1, true
	case 256, 384:
		return RestDouble, true
	case 512:
		return RestLonga, true
	}
	return 0, false
}

// FlagDuration is the flag for a duration in 128ths. Quarter notes and
// longer have none.
func FlagDuration(dur int, up bool) (Glyph, bool) {
	pick := func(u, d Glyph) (Glyph, bool) {
		if up {
			return u, true
		}
		return d, true
	}
	switch dur {
	case 1:
		return pick(FlagUp128, FlagDown128)
	case 2, 3:
		return pick(FlagUp64, FlagDown64)
	case 4, 6, 9:
		return pick(FlagUp32, FlagDown32)
	case 8, 12, 18, 27:
		return pick(FlagUp16, FlagDown16)
	case 16, 24, 36, 54, 81:
		return pick(FlagUp8, FlagDown8)
	}
	return 0, false
}

func variants(double, whole, half, fill Glyph, dur int) Glyph {
	switch {
	case dur >= 1 && dur <= 63:
		return fill
	case dur >= 64 && dur <= 127:
		return half
	case dur >= 128 && dur <= 255:
		return whole
	}
	return double
}

// NoteheadDuration is the notehead for a duration in 128ths.
func NoteheadDuration(dur int) Glyph {
	return variants(NoteheadDouble, NoteheadWhole, NoteheadHalf, NoteheadFill, dur)
}

// TimeDigit is the time signature numeral 0-9.
func TimeDigit(d int) (Glyph, bool) {
	if d < 0 || d > 9 {
		return 0, false
	}
	return TimeSig0 + Glyph(d), true
}

var accidentals = map[pitch.Accidental]Glyph{
	pitch.DoubleFlat:        DoubleFlat,
	pitch.FlatQuarterFlat:   ThreeQuarterTonesFlat,
	pitch.Flat:              Flat,
	pitch.QuarterFlat:       QuarterToneFlat,
	pitch.Natural:           Natural,
	pitch.QuarterSharp:      QuarterToneSharp,
	pitch.Sharp:             Sharp,
	pitch.SharpQuarterSharp: ThreeQuarterTonesSharp,
	pitch.DoubleSharp:       DoubleSharp,
}

// ForAccidental is false for pitches written without an accidental.
func ForAccidental(a pitch.Accidental) (Glyph, bool) {
	g, ok := accidentals[a]
	return g, ok
}

var articulations = map[model.Articulation]Glyph{
	model.Staccatissimo: StaccatissimoAbove,
	model.Staccato:      StaccatoAbove,
	model.Tenuto:        TenutoAbove,
	model.Marcato:       MarcatoAbove,
	model.Accent:        AccentAbove,
	model.MuteClosed:    BrassMuteClosed,
	model.MuteOpen:      BrassMuteOpen,
	model.Harmonic:      StringsHarmonic,
	model.Pedal:         KeyboardPedal,
}

func ForArticulation(a model.Articulation) (Glyph, bool) {
	g, ok := articulations[a]
	return g, ok
}
