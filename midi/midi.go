package midi

import (
	"bytes"
	"fmt"
	"os"

	"github.com/jsphweid/engraver/fraction"
	"github.com/jsphweid/engraver/model"
	"github.com/jsphweid/engraver/score"
	"github.com/pkg/errors"
	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"
)

const TicksPerQuarter = 960

// TicksPerMeasure is the length of the fixed whole measure grid.
const TicksPerMeasure = 4 * TicksPerQuarter

var velocities = map[model.Dynamic]uint8{
	model.PPPPPP: 4,
	model.PPPPP:  10,
	model.PPPP:   16,
	model.PPP:    24,
	model.PP:     36,
	model.P:      50,
	model.MP:     64,
	model.MF:     80,
	model.F:      96,
	model.FF:     108,
	model.FFF:    116,
	model.FFFF:   122,
	model.FFFFF:  125,
	model.FFFFFF: 127,
	model.N:      1,
	model.SF:     112,
	model.SFZ:    120,
	model.FP:     96,
	model.SFP:    112,
}

func Velocity(d model.Dynamic) uint8 {
	if v, ok := velocities[d]; ok {
		return v
	}
	return velocities[model.MF]
}

func ReadMidiFile(filepath string) (s *smf.SMF, e error) {
	var blank smf.SMF

	// smf.ReadFrom can panic on malformed input
	// https://github.com/gomidi/midi/issues/20
	defer func() {
		if r := recover(); r != nil {
			s, e = &blank, errors.Errorf("could not parse midi file %v: %v", filepath, r)
		}
	}()

	dat, err := os.ReadFile(filepath)
	if err != nil {
		return &blank, errors.Wrap(err, "could not read midi file")
	}
	res, err := smf.ReadFrom(bytes.NewReader(dat))
	if err != nil {
		return &blank, errors.Wrap(err, "could not parse midi file")
	}
	return res, nil
}

func WriteMidiFile(filepath string, s *smf.SMF) error {
	f, err := os.Create(filepath)
	if err != nil {
		return errors.Wrap(err, "could not create midi file")
	}
	defer f.Close()
	if _, err := s.WriteTo(f); err != nil {
		return errors.Wrap(err, "could not write midi file")
	}
	return nil
}

// Export renders a score as a type 1 MIDI file: a conductor track with the
// title, meter and tempo of the first movement, then one track per channel.
func Export(s *score.Score) (*smf.SMF, error) {
	res := smf.New()
	res.TimeFormat = smf.MetricTicks(TicksPerQuarter)

	sig := score.DefaultSig()
	if len(s.Movement) > 0 && len(s.Movement[0].Sig) > 0 {
		sig = s.Movement[0].Sig[0]
	}
	meter, err := fraction.Parse(sig.Time)
	if err != nil {
		return nil, errors.Wrap(err, "bad time signature")
	}

	var conductor smf.Track
	conductor.Add(0, smf.MetaTrackSequenceName(s.Title))
	conductor.Add(0, smf.MetaMeter(uint8(meter.Num), uint8(meter.Den)))
	conductor.Add(0, smf.MetaTempo(float64(sig.Tempo)))
	conductor.Close(0)
	if err := res.Add(conductor); err != nil {
		return nil, errors.Wrap(err, "could not add conductor track")
	}

	channels := 0
	for i := range s.Movement {
		channels = max(channels, s.NumChannels(i))
	}
	for ch := 0; ch < channels; ch++ {
		if err := res.Add(channelTrack(s, ch)); err != nil {
			return nil, errors.Wrapf(err, "could not add track for channel %v", ch)
		}
	}
	return res, nil
}

func noteKeys(n model.Note) []uint8 {
	seen := map[uint8]bool{}
	var keys []uint8
	for _, p := range n.Pitch {
		k := p.MIDIKey()
		if !seen[k] {
			seen[k] = true
			keys = append(keys, k)
		}
	}
	return keys
}

func channelTrack(s *score.Score, ch int) smf.Track {
	var tr smf.Track
	tr.Add(0, smf.MetaTrackSequenceName(fmt.Sprintf("Channel %v", ch+1)))

	midiChan := uint8(ch % 16)
	velocity := Velocity(model.MF)
	var delta uint32
	for _, mv := range s.Movement {
		for _, bar := range mv.Bar {
			if ch >= len(bar.Chan) || len(bar.Chan[ch].Notes) == 0 {
				delta += TicksPerMeasure
				continue
			}
			for _, m := range bar.Chan[ch].Notes {
				switch m.Kind {
				case model.KindDynamic:
					velocity = Velocity(m.Dynamic)
				case model.KindNote:
					ticks := uint32(m.Note.Duration.MulInt(TicksPerMeasure))
					keys := noteKeys(m.Note)
					if len(keys) == 0 || ticks == 0 {
						delta += ticks
						continue
					}
					for _, k := range keys {
						tr.Add(delta, midi.NoteOn(midiChan, k, velocity))
						delta = 0
					}
					delta = ticks
					for _, k := range keys {
						tr.Add(delta, midi.NoteOff(midiChan, k))
						delta = 0
					}
				}
			}
		}
	}
	tr.Close(delta)
	return tr
}

// CountNotes counts the sounding note starts of every track.
func CountNotes(s *smf.SMF) int {
	n := 0
	for _, track := range s.Tracks {
		for _, evt := range track {
			var channel, key, velocity uint8
			if evt.Message.GetNoteOn(&channel, &key, &velocity) && velocity > 0 {
				n++
			}
		}
	}
	return n
}
