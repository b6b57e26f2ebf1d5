package tahti

import (
	"time"

	"github.com/google/uuid"
)

const (
	// DefaultPPQ is the tick resolution of new projects, in pulses per
	// quarter note. 480 divides evenly into all the common tracker and
	// piano-roll grids (2, 3, 4, 5, 6, 8, 12, 16 lines per beat).
	DefaultPPQ = 480

	DefaultSampleRate = 48000

	DefaultBPM = 140.0
)

type (
	// Project is the top-level container of an arrangement: metadata,
	// transport state and the ordered track list. Track order is
	// semantically meaningful; it is both the display order and the bus
	// evaluation order. Exactly one Project is live per session: load and
	// create replace it wholesale, every other command mutates it in place
	// and bumps UpdatedAt.
	Project struct {
		ID         string    `yaml:"id" json:"id"`
		SessionID  string    `yaml:"session_id" json:"session_id"`
		Title      string    `yaml:"title" json:"title"`
		BPM        float64   `yaml:"bpm" json:"bpm"`
		PPQ        int       `yaml:"ppq" json:"ppq"`
		SampleRate int       `yaml:"sample_rate" json:"sample_rate"`
		Transport  Transport `yaml:"transport" json:"transport"`
		Tracks     []Track   `yaml:"tracks" json:"tracks"`
		CreatedAt  time.Time `yaml:"created_at" json:"created_at"`
		UpdatedAt  time.Time `yaml:"updated_at" json:"updated_at"`
	}

	// Transport is owned exclusively by the Project and mutated only
	// through transport commands.
	Transport struct {
		PlayheadTick     int  `yaml:"playhead_tick" json:"playhead_tick"`
		LoopEnabled      bool `yaml:"loop_enabled" json:"loop_enabled"`
		LoopStartTick    int  `yaml:"loop_start_tick" json:"loop_start_tick"`
		LoopEndTick      int  `yaml:"loop_end_tick" json:"loop_end_tick"`
		MetronomeEnabled bool `yaml:"metronome_enabled" json:"metronome_enabled"`
		IsPlaying        bool `yaml:"is_playing" json:"is_playing"`
	}
)

// NewProject returns an empty project with fresh ids and a default
// transport. BPM and sample rate are clamped to sane minimums here so that
// the tick math downstream never divides by zero.
func NewProject(title string, bpm float64, sampleRate int) Project {
	now := time.Now().UTC()
	return Project{
		ID:         uuid.NewString(),
		SessionID:  uuid.NewString(),
		Title:      title,
		BPM:        max(bpm, 20),
		PPQ:        DefaultPPQ,
		SampleRate: max(sampleRate, 8000),
		Transport:  DefaultTransport(),
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

func DefaultTransport() Transport {
	return Transport{
		LoopEndTick:      DefaultPPQ * 4,
		MetronomeEnabled: true,
	}
}

// Touch bumps UpdatedAt; called after every successful mutation.
func (p *Project) Touch() {
	p.UpdatedAt = time.Now().UTC()
}

// Copy makes a deep copy of a Project.
func (p *Project) Copy() Project {
	tracks := make([]Track, len(p.Tracks))
	for i, t := range p.Tracks {
		tracks[i] = t.Copy()
	}
	ret := *p
	ret.Tracks = tracks
	return ret
}

// ClipCount sums the clips over every track.
func (p *Project) ClipCount() int {
	ret := 0
	for _, t := range p.Tracks {
		ret += len(t.Clips)
	}
	return ret
}

// NoteCount sums the notes of the note-bearing clips (midi and chip) over
// every track. Audio and automation clips contribute zero.
func (p *Project) NoteCount() int {
	ret := 0
	for _, t := range p.Tracks {
		for _, c := range t.Clips {
			ret += c.NoteCount()
		}
	}
	return ret
}

// MaxTick returns the end tick of the clip reaching furthest in the
// arrangement, or 0 for an empty project.
func (p *Project) MaxTick() int {
	ret := 0
	for _, t := range p.Tracks {
		for _, c := range t.Clips {
			if end := c.EndTick(); end > ret {
				ret = end
			}
		}
	}
	return ret
}

// Track returns a pointer to the track with the given id, or nil.
func (p *Project) Track(id string) *Track {
	for i := range p.Tracks {
		if p.Tracks[i].ID == id {
			return &p.Tracks[i]
		}
	}
	return nil
}

// Validate checks the structural invariants a loaded project must satisfy
// before the engine accepts it.
func (p *Project) Validate() error {
	if p.BPM <= 0 {
		return NewInvalidArgument("bpm should be > 0")
	}
	if p.PPQ <= 0 {
		return NewInvalidArgument("ppq should be > 0")
	}
	if p.Transport.LoopEnabled && p.Transport.LoopEndTick <= p.Transport.LoopStartTick {
		return NewInvalidArgument("loop end should be after loop start")
	}
	for i := range p.Tracks {
		if err := p.Tracks[i].Validate(); err != nil {
			return err
		}
	}
	return p.validateRouting()
}

// validateRouting checks every routing reference and walks the bus graph
// for cycles. The engine enforces the same invariants on each routing
// write, but a loaded file bypasses those writes, so they are re-checked
// here before a project goes live.
func (p *Project) validateRouting() error {
	for i := range p.Tracks {
		track := &p.Tracks[i]
		if track.OutputBus != "" {
			if err := p.ValidateRouteTarget(track.ID, track.OutputBus); err != nil {
				return err
			}
		}
		for _, send := range track.Sends {
			if err := p.ValidateRouteTarget(track.ID, send.TargetBus); err != nil {
				return err
			}
		}
	}
	for i := range p.Tracks {
		if p.routeCycleFrom(p.Tracks[i].ID) {
			return NewInvalidRouting(p.Tracks[i].ID, "bus routing contains a cycle")
		}
	}
	return nil
}

// ValidateRouteTarget checks a single routing reference: the destination
// must exist, be a bus track and differ from the source.
func (p *Project) ValidateRouteTarget(fromTrackID, toBusID string) error {
	if toBusID == fromTrackID {
		return NewInvalidRouting(fromTrackID, "track cannot route to itself")
	}
	target := p.Track(toBusID)
	if target == nil {
		return NewInvalidRouting(fromTrackID, "routing target "+toBusID+" does not exist")
	}
	if target.Kind != TrackBus {
		return NewInvalidRouting(fromTrackID, "routing target "+toBusID+" is not a bus track")
	}
	return nil
}

// routeCycleFrom reports whether the track can reach itself by following
// output bus and send edges forward.
func (p *Project) routeCycleFrom(trackID string) bool {
	visited := map[string]bool{}
	stack := routeTargets(p.Track(trackID))
	for len(stack) > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if id == trackID {
			return true
		}
		if visited[id] {
			continue
		}
		visited[id] = true
		if track := p.Track(id); track != nil {
			stack = append(stack, routeTargets(track)...)
		}
	}
	return false
}

func routeTargets(t *Track) []string {
	if t == nil {
		return nil
	}
	targets := make([]string, 0, len(t.Sends)+1)
	if t.OutputBus != "" {
		targets = append(targets, t.OutputBus)
	}
	for _, send := range t.Sends {
		targets = append(targets, send.TargetBus)
	}
	return targets
}
