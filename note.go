package tahti

import "sort"

// Note is a single gated note event inside a note-bearing clip. Ticks are
// relative to the clip start.
type Note struct {
	Pitch       int `yaml:"pitch" json:"pitch"`
	Velocity    int `yaml:"velocity" json:"velocity"`
	StartTick   int `yaml:"start_tick" json:"start_tick"`
	LengthTicks int `yaml:"length_ticks" json:"length_ticks"`
	Channel     int `yaml:"channel" json:"channel"`
}

// EndTick is the tick just past the note, relative to the clip start.
func (n Note) EndTick() int {
	return n.StartTick + n.LengthTicks
}

// Clamp forces every field into its valid range: pitch and velocity to
// 0..127, channel to 0..15, start tick to >= 0 and length to >= 1.
func (n Note) Clamp() Note {
	n.Pitch = clampInt(n.Pitch, 0, 127)
	n.Velocity = clampInt(n.Velocity, 0, 127)
	n.Channel = clampInt(n.Channel, 0, 15)
	n.StartTick = max(n.StartTick, 0)
	n.LengthTicks = max(n.LengthTicks, 1)
	return n
}

// SortNotes orders notes by start tick ascending, keeping the relative
// order of simultaneous notes.
func SortNotes(notes []Note) {
	sort.SliceStable(notes, func(i, j int) bool {
		return notes[i].StartTick < notes[j].StartTick
	})
}

func copyNotes(notes []Note) []Note {
	ret := make([]Note, len(notes))
	copy(ret, notes)
	return ret
}

func clampInt(value, lo, hi int) int {
	if value < lo {
		return lo
	}
	if value > hi {
		return hi
	}
	return value
}
