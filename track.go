package tahti

import "github.com/google/uuid"

// TrackKind tells what a track lane holds. Bus tracks are routing
// destinations only and never hold clips.
type TrackKind string

const (
	TrackMidi       TrackKind = "midi"
	TrackChip       TrackKind = "chip"
	TrackAudio      TrackKind = "audio"
	TrackAutomation TrackKind = "automation"
	TrackBus        TrackKind = "bus"
)

const (
	MinGainDB = -96.0
	MaxGainDB = 12.0
)

type (
	// Track owns its clips, sends and effects exclusively; no entity is
	// shared by reference across two tracks. OutputBus and send targets
	// reference other tracks by id only, they never imply ownership.
	Track struct {
		ID        string       `yaml:"id" json:"id"`
		Name      string       `yaml:"name" json:"name"`
		Color     string       `yaml:"color" json:"color"`
		Kind      TrackKind    `yaml:"kind" json:"kind"`
		Hidden    bool         `yaml:"hidden" json:"hidden"`
		Mute      bool         `yaml:"mute" json:"mute"`
		Solo      bool         `yaml:"solo" json:"solo"`
		Enabled   bool         `yaml:"enabled" json:"enabled"`
		GainDB    float64      `yaml:"gain_db" json:"gain_db"`
		Pan       float64      `yaml:"pan" json:"pan"`
		OutputBus string       `yaml:"output_bus,omitempty" json:"output_bus,omitempty"`
		Sends     []Send       `yaml:"sends" json:"sends"`
		Effects   []EffectSpec `yaml:"effects" json:"effects"`
		Clips     []Clip       `yaml:"clips" json:"clips"`
	}

	// Send routes a parallel copy of the track's signal to a bus track at
	// an independent level and pan, either pre- or post-fader.
	Send struct {
		ID        string  `yaml:"id" json:"id"`
		TargetBus string  `yaml:"target_bus" json:"target_bus"`
		LevelDB   float64 `yaml:"level_db" json:"level_db"`
		Pan       float64 `yaml:"pan" json:"pan"`
		PreFader  bool    `yaml:"pre_fader" json:"pre_fader"`
		Enabled   bool    `yaml:"enabled" json:"enabled"`
	}
)

// NewTrack returns a track with neutral mix state: unity gain, centered
// pan, no output bus, no sends, clips or effects.
func NewTrack(name, color string, kind TrackKind) Track {
	return Track{
		ID:      uuid.NewString(),
		Name:    name,
		Color:   color,
		Kind:    kind,
		Enabled: true,
	}
}

// Copy makes a deep copy of a Track.
func (t *Track) Copy() Track {
	sends := make([]Send, len(t.Sends))
	copy(sends, t.Sends)
	effects := make([]EffectSpec, len(t.Effects))
	for i, e := range t.Effects {
		effects[i] = e.Copy()
	}
	clips := make([]Clip, len(t.Clips))
	for i, c := range t.Clips {
		clips[i] = c.Copy()
	}
	ret := *t
	ret.Sends = sends
	ret.Effects = effects
	ret.Clips = clips
	return ret
}

// Send returns a pointer to the send with the given id, or nil.
func (t *Track) Send(id string) *Send {
	for i := range t.Sends {
		if t.Sends[i].ID == id {
			return &t.Sends[i]
		}
	}
	return nil
}

// Clip returns a pointer to the clip with the given id, or nil.
func (t *Track) Clip(id string) *Clip {
	for i := range t.Clips {
		if t.Clips[i].ID == id {
			return &t.Clips[i]
		}
	}
	return nil
}

func (t *Track) Validate() error {
	switch t.Kind {
	case TrackMidi, TrackChip, TrackAudio, TrackAutomation, TrackBus:
	default:
		return NewInvalidArgument("unknown track kind " + string(t.Kind))
	}
	if t.Kind == TrackBus && len(t.Clips) > 0 {
		return NewUnsupportedOperation("bus track " + t.ID + " holds clips")
	}
	for i := range t.Clips {
		if err := t.Clips[i].Validate(); err != nil {
			return err
		}
	}
	return nil
}

// ClampGainDB clamps a fader or send level to the mixer's dB range.
func ClampGainDB(gain float64) float64 {
	return clampFloat(gain, MinGainDB, MaxGainDB)
}

// ClampPan clamps a pan position to [-1, 1].
func ClampPan(pan float64) float64 {
	return clampFloat(pan, -1, 1)
}

func clampFloat(value, lo, hi float64) float64 {
	if value < lo {
		return lo
	}
	if value > hi {
		return hi
	}
	return value
}
