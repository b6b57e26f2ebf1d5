package tahti

// ClipKind tags the payload variant of a clip. A clip carries exactly one
// payload matching its kind; every operation site matches on the kind
// exhaustively instead of probing for fields.
type ClipKind string

const (
	ClipMidi       ClipKind = "midi"
	ClipChip       ClipKind = "chip"
	ClipAudio      ClipKind = "audio"
	ClipAutomation ClipKind = "automation"
)

type (
	Clip struct {
		ID          string   `yaml:"id" json:"id"`
		Name        string   `yaml:"name" json:"name"`
		StartTick   int      `yaml:"start_tick" json:"start_tick"`
		LengthTicks int      `yaml:"length_ticks" json:"length_ticks"`
		Disabled    bool     `yaml:"disabled" json:"disabled"`
		Kind        ClipKind `yaml:"kind" json:"kind"`

		Midi       *NoteClip       `yaml:"midi,omitempty" json:"midi,omitempty"`
		Pattern    *PatternClip    `yaml:"pattern,omitempty" json:"pattern,omitempty"`
		Audio      *AudioClip      `yaml:"audio,omitempty" json:"audio,omitempty"`
		Automation *AutomationClip `yaml:"automation,omitempty" json:"automation,omitempty"`
	}

	// NoteClip is the payload of a plain midi clip: an optional instrument
	// name and a sequence of notes ordered by start tick.
	NoteClip struct {
		Instrument string `yaml:"instrument,omitempty" json:"instrument,omitempty"`
		Notes      []Note `yaml:"notes" json:"notes"`
	}
)

// Copy makes a deep copy of a Clip.
func (c *Clip) Copy() Clip {
	ret := *c
	if c.Midi != nil {
		midi := NoteClip{Instrument: c.Midi.Instrument, Notes: copyNotes(c.Midi.Notes)}
		ret.Midi = &midi
	}
	if c.Pattern != nil {
		pattern := c.Pattern.Copy()
		ret.Pattern = &pattern
	}
	if c.Audio != nil {
		audio := c.Audio.Copy()
		ret.Audio = &audio
	}
	if c.Automation != nil {
		automation := c.Automation.Copy()
		ret.Automation = &automation
	}
	return ret
}

// EndTick is the tick just past the clip on the timeline.
func (c *Clip) EndTick() int {
	return c.StartTick + c.LengthTicks
}

// NoteBearing reports whether the clip payload holds editable notes.
func (c *Clip) NoteBearing() bool {
	return c.Kind == ClipMidi || c.Kind == ClipChip
}

// Notes returns the note sequence of a note-bearing clip, or nil for audio
// and automation clips.
func (c *Clip) Notes() []Note {
	switch c.Kind {
	case ClipMidi:
		if c.Midi != nil {
			return c.Midi.Notes
		}
	case ClipChip:
		if c.Pattern != nil {
			return c.Pattern.Notes
		}
	}
	return nil
}

// SetNotes replaces the note sequence of a note-bearing clip. For chip
// clips the tracker rows must be resynchronized by the caller; the notes
// are the canonical view.
func (c *Clip) SetNotes(notes []Note) bool {
	switch c.Kind {
	case ClipMidi:
		if c.Midi != nil {
			c.Midi.Notes = notes
			return true
		}
	case ClipChip:
		if c.Pattern != nil {
			c.Pattern.Notes = notes
			return true
		}
	}
	return false
}

func (c *Clip) NoteCount() int {
	return len(c.Notes())
}

func (c *Clip) Validate() error {
	if c.StartTick < 0 {
		return NewInvalidArgument("clip start tick should be >= 0")
	}
	if c.LengthTicks < 1 {
		return NewInvalidArgument("clip length should be >= 1 tick")
	}
	var payloads int
	for _, present := range []bool{c.Midi != nil, c.Pattern != nil, c.Audio != nil, c.Automation != nil} {
		if present {
			payloads++
		}
	}
	if payloads != 1 {
		return NewInvalidArgument("clip " + c.ID + " should have exactly one payload")
	}
	switch c.Kind {
	case ClipMidi:
		if c.Midi == nil {
			return NewInvalidArgument("midi clip " + c.ID + " is missing its payload")
		}
	case ClipChip:
		if c.Pattern == nil {
			return NewInvalidArgument("chip clip " + c.ID + " is missing its payload")
		}
		if c.Pattern.LinesPerBeat < 1 {
			return NewInvalidArgument("chip clip lines per beat should be >= 1")
		}
	case ClipAudio:
		if c.Audio == nil {
			return NewInvalidArgument("audio clip " + c.ID + " is missing its payload")
		}
	case ClipAutomation:
		if c.Automation == nil {
			return NewInvalidArgument("automation clip " + c.ID + " is missing its payload")
		}
	default:
		return NewInvalidArgument("unknown clip kind " + string(c.Kind))
	}
	return nil
}
