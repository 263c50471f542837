package pitch

// StepUp moves one diatonic step up within the key. The octave only changes
// going from B to C; a pitch that would leave the octave range is returned
// unchanged.
func (p Pitch) StepUp() Pitch {
	if p.Class.Name == B {
		octave, ok := p.Octave.Raise()
		if !ok {
			return p
		}
		p.Octave = octave
		p.Class.Name = C
		return p
	}
	p.Class.Name++
	return p
}

// StepDown moves one diatonic step down within the key, changing the octave
// only going from C to B.
func (p Pitch) StepDown() Pitch {
	if p.Class.Name == C {
		octave, ok := p.Octave.Lower()
		if !ok {
			return p
		}
		p.Octave = octave
		p.Class.Name = B
		return p
	}
	p.Class.Name--
	return p
}

// TODO: HalfStepUp/Down and QuarterStepUp/Down need accidental spelling rules
// before they can differ from the diatonic step.

func (p Pitch) HalfStepUp() Pitch {
	return p.StepUp()
}

func (p Pitch) HalfStepDown() Pitch {
	return p.StepDown()
}

func (p Pitch) QuarterStepUp() Pitch {
	return p.StepUp()
}

func (p Pitch) QuarterStepDown() Pitch {
	return p.StepDown()
}
