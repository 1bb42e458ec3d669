package game

// BeatsPerBar is the number of beats in a measure, common time
const BeatsPerBar = 4

// Downbeat reports whether beat index starts a measure
func Downbeat(index int64) bool {
	return index%BeatsPerBar == 0
}
