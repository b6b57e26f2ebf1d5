package tahti

import "math"

// Conversions between musical ticks and wall-clock time. All of these are
// pure; bpm and ppq are validated at the project boundary, so a
// non-positive value here just yields zero instead of an error.

// TicksToSeconds converts ticks to seconds at the given tempo:
// seconds = ticks * 60 / (bpm * ppq).
func TicksToSeconds(ticks int, bpm float64, ppq int) float64 {
	if bpm <= 0 || ppq <= 0 || ticks <= 0 {
		return 0
	}
	beats := float64(ticks) / float64(ppq)
	return beats * (60 / bpm)
}

// SecondsToTicks is the inverse of TicksToSeconds, rounded to the nearest
// tick.
func SecondsToTicks(seconds, bpm float64, ppq int) int {
	if seconds <= 0 || bpm <= 0 || ppq <= 0 {
		return 0
	}
	beats := seconds * (bpm / 60)
	return int(math.Round(beats * float64(ppq)))
}

// TicksToSamples converts ticks to a frame count at the given sample rate.
func TicksToSamples(ticks int, bpm float64, ppq, sampleRate int) int {
	return int(math.Round(TicksToSeconds(ticks, bpm, ppq) * float64(sampleRate)))
}

// SamplesToTicks converts a frame count back to the nearest tick.
func SamplesToTicks(samples int, bpm float64, ppq, sampleRate int) int {
	if sampleRate <= 0 {
		return 0
	}
	return SecondsToTicks(float64(samples)/float64(sampleRate), bpm, ppq)
}

// RowsToTicks converts a tracker row count to ticks at the given grid
// resolution.
func RowsToTicks(rows, linesPerBeat, ppq int) int {
	if linesPerBeat <= 0 || rows <= 0 {
		return 0
	}
	ticksPerRow := float64(ppq) / float64(linesPerBeat)
	return int(math.Round(float64(rows) * ticksPerRow))
}
