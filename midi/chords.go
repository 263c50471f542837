package midi

import (
	"sort"

	"github.com/jsphweid/engraver/util"
	"gitlab.com/gomidi/midi/v2/smf"
)

// Chord is the set of keys sounding after the events at one tick.
type Chord struct {
	Ticks int64
	Keys  []uint8
}

type reducedEvent struct {
	ticks     int64
	isNoteOff bool
	key       uint8
}

func pressedChord(ticks int64, pressed map[uint8]bool) Chord {
	keys := util.GetKeys(pressed)
	sort.Slice(keys, func(i, j int) bool {
		return keys[i] < keys[j]
	})
	return Chord{Ticks: ticks, Keys: keys}
}

// Chords merges the note events of all tracks and returns the sounding
// chords in tick order. Silences are left out.
func Chords(s *smf.SMF) []Chord {
	var reducedEvents []reducedEvent
	for _, events := range s.Tracks {
		var absTicks int64
		for _, event := range events {
			absTicks += int64(event.Delta)
			var channel, key, velocity uint8
			switch {
			case event.Message.GetNoteOn(&channel, &key, &velocity):
				reducedEvents = append(reducedEvents, reducedEvent{
					ticks:     absTicks,
					isNoteOff: velocity == 0,
					key:       key,
				})
			case event.Message.GetNoteOff(&channel, &key, &velocity):
				reducedEvents = append(reducedEvents, reducedEvent{
					ticks:     absTicks,
					isNoteOff: true,
					key:       key,
				})
			}
		}
	}

	// earlier ticks first, then note offs
	sort.SliceStable(reducedEvents, func(i, j int) bool {
		if reducedEvents[i].ticks != reducedEvents[j].ticks {
			return reducedEvents[i].ticks < reducedEvents[j].ticks
		}
		return reducedEvents[i].isNoteOff && !reducedEvents[j].isNoteOff
	})

	var chords []Chord
	pressed := make(map[uint8]bool)
	for i, evt := range reducedEvents {
		if evt.isNoteOff {
			delete(pressed, evt.key)
		} else {
			pressed[evt.key] = true
		}
		last := i == len(reducedEvents)-1 || reducedEvents[i+1].ticks != evt.ticks
		if last && len(pressed) > 0 {
			chords = append(chords, pressedChord(evt.ticks, pressed))
		}
	}
	return chords
}
