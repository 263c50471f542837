package engrave

// SpacingUnit converts Spacing into bar width units.
const SpacingUnit = 250

type band struct {
	from, to   int
	wide, next float64
}

// bands span duration ranges in 128ths, from 128th notes up to a double
// whole note.
var bands = []band{
	{1, 8, 1.75, 2.0},
	{8, 16, 2.0, 2.5},
	{16, 24, 2.5, 3.0},
	{24, 32, 3.0, 3.5},
	{32, 48, 3.5, 4.0},
	{48, 64, 4.0, 5.0},
	{64, 96, 5.0, 6.0},
	{96, 128, 6.0, 7.0},
	{128, 256, 7.0, 8.0},
	{256, 384, 8.0, 9.0},
	{384, 512, 9.0, 10.0},
}

// Spacing is the horizontal space a duration in 128ths takes up, linearly
// interpolated within its band. It rises from the band's start value to its
// end value, so longer notes never take less space than shorter ones.
func Spacing(dur int) float64 {
	if dur <= 0 {
		return 0
	}
	for _, b := range bands {
		if dur < b.to {
			amount := float64(dur-b.from) / float64(b.to-b.from)
			return b.wide + (b.next-b.wide)*amount
		}
	}
	return 10.0
}
