package midi

import (
	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"
)

// Excerpt copies a MIDI file starting at the given tick. Notes starting
// before it are dropped along with their note offs; other events before it
// are kept at the start so tempo and meter still apply.
func Excerpt(mf *smf.SMF, fromTicks uint64) *smf.SMF {
	var res smf.SMF
	res.TimeFormat = mf.TimeFormat

	for _, track := range mf.Tracks {
		var newTrack smf.Track
		var absTicks, lastTicks uint64
		dropped := map[[2]uint8]int{}
		for _, evt := range track {
			absTicks += uint64(evt.Delta)
			var channel, key, velocity uint8
			isOn := evt.Message.GetNoteOn(&channel, &key, &velocity) && velocity > 0
			isOff := !isOn && (evt.Message.Is(midi.NoteOffMsg) || evt.Message.Is(midi.NoteOnMsg))
			if isOff {
				evt.Message.GetNoteOff(&channel, &key, &velocity)
			}
			note := [2]uint8{channel, key}

			switch {
			case isOn && absTicks < fromTicks:
				dropped[note]++
				continue
			case isOff && dropped[note] > 0:
				dropped[note]--
				continue
			}

			at := max(absTicks, fromTicks)
			evt.Delta = uint32(at - max(lastTicks, fromTicks))
			lastTicks = at
			newTrack = append(newTrack, evt)
		}
		res.Tracks = append(res.Tracks, newTrack)
	}
	return &res
}
