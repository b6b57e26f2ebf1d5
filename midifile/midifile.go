// Package midifile renders a project's note content into a standard MIDI
// file. The output is a pure, deterministic function of the project: one
// tempo track followed by one SMF track per note-bearing clip in project
// order, with metric ticks equal to the project ppq. The parity engine
// hashes these bytes, so any change to the event layout here changes the
// midi fingerprint of every project.
package midifile

import (
	"bytes"
	"fmt"
	"os"
	"sort"

	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"

	"github.com/jkataja/tahti"
)

type absEvent struct {
	tick int
	// note-offs sort before note-ons on the same tick so retriggered
	// notes never overlap themselves
	order int
	msg   smf.Message
}

// Bytes serializes the project's note-bearing clips to SMF format 1 bytes.
func Bytes(project *tahti.Project) ([]byte, error) {
	sm := smf.New()
	sm.TimeFormat = smf.MetricTicks(project.PPQ)

	var tempo smf.Track
	tempo.Add(0, smf.MetaMeter(4, 4))
	tempo.Add(0, smf.MetaTempo(project.BPM))
	tempo.Close(0)
	if err := sm.Add(tempo); err != nil {
		return nil, fmt.Errorf("adding tempo track: %w", err)
	}

	for ti := range project.Tracks {
		track := &project.Tracks[ti]
		for ci := range track.Clips {
			clip := &track.Clips[ci]
			if !clip.NoteBearing() {
				continue
			}
			if err := sm.Add(clipTrack(clip)); err != nil {
				return nil, fmt.Errorf("adding clip track: %w", err)
			}
		}
	}

	var buf bytes.Buffer
	if _, err := sm.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("writing smf: %w", err)
	}
	return buf.Bytes(), nil
}

// WriteFile writes the project's SMF bytes to path.
func WriteFile(project *tahti.Project, path string) error {
	b, err := Bytes(project)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("writing midi file: %w", err)
	}
	return nil
}

func clipTrack(clip *tahti.Clip) smf.Track {
	events := make([]absEvent, 0, 2*clip.NoteCount())
	end := 0
	for _, note := range clip.Notes() {
		on := clip.StartTick + note.StartTick
		off := on + note.LengthTicks
		ch, key := uint8(note.Channel), uint8(note.Pitch)
		events = append(events,
			absEvent{tick: on, order: 1, msg: smf.Message(midi.NoteOn(ch, key, uint8(note.Velocity)))},
			absEvent{tick: off, order: 0, msg: smf.Message(midi.NoteOff(ch, key))},
		)
		if off > end {
			end = off
		}
	}
	sort.SliceStable(events, func(i, j int) bool {
		if events[i].tick != events[j].tick {
			return events[i].tick < events[j].tick
		}
		return events[i].order < events[j].order
	})

	var track smf.Track
	prev := 0
	for _, ev := range events {
		track.Add(uint32(ev.tick-prev), ev.msg)
		prev = ev.tick
	}
	track.Close(uint32(max(clip.EndTick(), end) - prev))
	return track
}
