package tide

const minutesPerDay = 24 * 60

// Cumulative height fractions at each sixth of a tidal half-cycle. The
// per-segment increments are 1,2,3,3,2,1 twelfths of the total range,
// the standard maritime approximation of sinusoidal rise and fall.
var twelfths = [7]float64{0, 1.0 / 12, 3.0 / 12, 6.0 / 12, 9.0 / 12, 11.0 / 12, 1}

// Interpolate returns the tide height at minute t between two extrema
// (t1,h1) and (t2,h2) using the Rule of Twelfths. Times are minutes since
// local midnight; a bracket that crosses midnight (t2 < t1) is unwrapped
// by a day, and t is unwrapped the same way when it falls before t1.
// A zero-length or inverted bracket yields h1.
func Interpolate(t, t1 int, h1 float64, t2 int, h2 float64) float64 {
	if t2 < t1 {
		t2 += minutesPerDay
	}
	if t < t1 {
		t += minutesPerDay
	}

	duration := t2 - t1
	if duration <= 0 {
		return h1
	}

	progress := float64(t-t1) / float64(duration)
	if progress < 0 {
		progress = 0
	}
	if progress > 1 {
		progress = 1
	}

	// Scale progress onto six virtual hours and blend linearly between
	// the cumulative fractions bounding the current segment.
	scaled := progress * 6
	segment := int(scaled)
	within := scaled - float64(segment)

	var heightFraction float64
	if segment >= 6 {
		heightFraction = 1.0
	} else {
		heightFraction = twelfths[segment] + (twelfths[segment+1]-twelfths[segment])*within
	}

	return h1 + (h2-h1)*heightFraction
}
