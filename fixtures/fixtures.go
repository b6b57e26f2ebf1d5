// Package fixtures builds fully deterministic demo content. Every id
// and timestamp is pinned, so two runs produce byte-identical projects
// and identical parity fingerprints, which is what makes the demo
// usable as a cross-machine smoke test.
package fixtures

import (
	"time"

	"github.com/jkataja/tahti"
)

// DemoProject returns a small two-track arrangement: a midi lead phrase
// and a chip bassline, one bar each at 138 BPM.
func DemoProject() tahti.Project {
	project := tahti.NewProject("Tahti Demo", 138.0, tahti.DefaultSampleRate)
	project.ID = "9ed0a3fa-4064-458f-b95f-1fdd0bc4f0be"
	project.SessionID = "11eb0ce5-cdb7-4f30-bc14-53a3a1e10de3"
	fixed := time.Date(2026, time.February, 23, 0, 0, 0, 0, time.UTC)
	project.CreatedAt = fixed
	project.UpdatedAt = fixed

	lead := tahti.NewTrack("Lead", "#00d1b2", tahti.TrackMidi)
	lead.ID = "a959fd97-0e35-445d-a7e8-fe6d81d49235"
	lead.Clips = append(lead.Clips, tahti.Clip{
		ID:          "fbf41a8f-c5b4-464b-a9f3-6e62eebf6efb",
		Name:        "Lead phrase",
		StartTick:   0,
		LengthTicks: 1920,
		Kind:        tahti.ClipMidi,
		Midi: &tahti.NoteClip{
			Instrument: "Pulse Lead",
			Notes: []tahti.Note{
				{Pitch: 72, Velocity: 118, StartTick: 0, LengthTicks: 240, Channel: 0},
				{Pitch: 74, Velocity: 118, StartTick: 240, LengthTicks: 240, Channel: 0},
				{Pitch: 79, Velocity: 110, StartTick: 480, LengthTicks: 720, Channel: 0},
				{Pitch: 81, Velocity: 104, StartTick: 1200, LengthTicks: 720, Channel: 0},
			},
		},
	})

	bass := tahti.NewTrack("Chip Bass", "#f77f00", tahti.TrackChip)
	bass.ID = "2695613e-3bef-4f17-b44d-c8e753f2268e"
	pattern := &tahti.PatternClip{
		SourceChip: "gameboy_apu",
		Notes: []tahti.Note{
			{Pitch: 36, Velocity: 100, StartTick: 0, LengthTicks: 480, Channel: 1},
			{Pitch: 43, Velocity: 95, StartTick: 480, LengthTicks: 480, Channel: 1},
			{Pitch: 41, Velocity: 95, StartTick: 960, LengthTicks: 480, Channel: 1},
			{Pitch: 38, Velocity: 98, StartTick: 1440, LengthTicks: 480, Channel: 1},
		},
		LinesPerBeat: tahti.DefaultLinesPerBeat,
	}
	pattern.SyncRowsFromNotes(project.PPQ)
	bass.Clips = append(bass.Clips, tahti.Clip{
		ID:          "0caa5e8d-6ec2-4b74-9e87-d7f60111f3f2",
		Name:        "Bassline",
		StartTick:   0,
		LengthTicks: 1920,
		Kind:        tahti.ClipChip,
		Pattern:     pattern,
	})

	project.Tracks = append(project.Tracks, lead, bass)
	return project
}
