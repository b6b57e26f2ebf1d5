package tahti

import "testing"

func testProject() Project {
	project := NewProject("Test", 120, DefaultSampleRate)
	track := NewTrack("Lead", "#ffffff", TrackMidi)
	track.Clips = append(track.Clips, Clip{
		ID:          "clip-1",
		Name:        "Phrase",
		LengthTicks: 1920,
		Kind:        ClipMidi,
		Midi: &NoteClip{Notes: []Note{
			{Pitch: 60, Velocity: 100, StartTick: 0, LengthTicks: 480},
			{Pitch: 64, Velocity: 100, StartTick: 480, LengthTicks: 480},
		}},
	})
	project.Tracks = append(project.Tracks, track)
	return project
}

func TestNewProjectClampsDegenerateInputs(t *testing.T) {
	p := NewProject("X", 0, 0)
	if p.BPM < 20 {
		t.Errorf("bpm = %v, expected clamp to >= 20", p.BPM)
	}
	if p.SampleRate < 8000 {
		t.Errorf("sample rate = %v, expected clamp to >= 8000", p.SampleRate)
	}
	if p.ID == "" || p.SessionID == "" {
		t.Error("expected fresh ids")
	}
	if err := p.Validate(); err != nil {
		t.Errorf("new project should validate, got %v", err)
	}
}

func TestProjectCopyIsDeep(t *testing.T) {
	p := testProject()
	c := p.Copy()
	c.Tracks[0].Name = "Changed"
	c.Tracks[0].Clips[0].Midi.Notes[0].Pitch = 72
	if p.Tracks[0].Name != "Lead" {
		t.Error("copy shares track data with the original")
	}
	if p.Tracks[0].Clips[0].Midi.Notes[0].Pitch != 60 {
		t.Error("copy shares note data with the original")
	}
}

func TestProjectCounts(t *testing.T) {
	p := testProject()
	if got := p.ClipCount(); got != 1 {
		t.Errorf("ClipCount() = %v, expected 1", got)
	}
	if got := p.NoteCount(); got != 2 {
		t.Errorf("NoteCount() = %v, expected 2", got)
	}
	if got := p.MaxTick(); got != 1920 {
		t.Errorf("MaxTick() = %v, expected 1920", got)
	}
}

func TestNoteCountSkipsAudioAndAutomation(t *testing.T) {
	p := testProject()
	audio := NewTrack("Audio", "#000000", TrackAudio)
	audio.Clips = append(audio.Clips, Clip{
		ID: "clip-2", LengthTicks: 960, Kind: ClipAudio,
		Audio: &AudioClip{SourcePath: "a.wav", StretchRatio: 1},
	})
	auto := NewTrack("Auto", "#000000", TrackAutomation)
	auto.Clips = append(auto.Clips, Clip{
		ID: "clip-3", LengthTicks: 960, Kind: ClipAutomation,
		Automation: &AutomationClip{TargetParameterID: "x", Points: []AutomationPoint{{Tick: 0, Value: 1}}},
	})
	p.Tracks = append(p.Tracks, audio, auto)
	if got := p.NoteCount(); got != 2 {
		t.Errorf("NoteCount() = %v, expected 2", got)
	}
	if got := p.ClipCount(); got != 3 {
		t.Errorf("ClipCount() = %v, expected 3", got)
	}
}

func TestProjectValidate(t *testing.T) {
	p := testProject()
	p.BPM = 0
	if err := p.Validate(); KindOf(err) != ErrInvalidArgument {
		t.Errorf("zero bpm gave %v, expected INVALID_ARGUMENT", err)
	}

	p = testProject()
	p.Transport.LoopEnabled = true
	p.Transport.LoopStartTick = 960
	p.Transport.LoopEndTick = 480
	if err := p.Validate(); KindOf(err) != ErrInvalidArgument {
		t.Errorf("inverted loop gave %v, expected INVALID_ARGUMENT", err)
	}

	p = testProject()
	bus := NewTrack("Bus", "#333333", TrackBus)
	bus.Clips = append(bus.Clips, Clip{ID: "clip-b", LengthTicks: 1, Kind: ClipMidi, Midi: &NoteClip{}})
	p.Tracks = append(p.Tracks, bus)
	if err := p.Validate(); KindOf(err) != ErrUnsupportedOperation {
		t.Errorf("bus with clips gave %v, expected UNSUPPORTED_OPERATION", err)
	}
}

func TestProjectValidateRouting(t *testing.T) {
	p := testProject()
	p.Tracks[0].OutputBus = "missing"
	if err := p.Validate(); KindOf(err) != ErrInvalidRouting {
		t.Errorf("dangling output bus gave %v, expected INVALID_ROUTING", err)
	}

	p = testProject()
	other := NewTrack("Other", "#222222", TrackMidi)
	p.Tracks = append(p.Tracks, other)
	p.Tracks[0].OutputBus = other.ID
	if err := p.Validate(); KindOf(err) != ErrInvalidRouting {
		t.Errorf("non-bus output target gave %v, expected INVALID_ROUTING", err)
	}

	p = testProject()
	p.Tracks[0].Sends = append(p.Tracks[0].Sends, Send{ID: "s", TargetBus: p.Tracks[0].ID})
	if err := p.Validate(); KindOf(err) != ErrInvalidRouting {
		t.Errorf("self send gave %v, expected INVALID_ROUTING", err)
	}

	p = testProject()
	busA := NewTrack("Bus A", "#333333", TrackBus)
	busB := NewTrack("Bus B", "#444444", TrackBus)
	busA.OutputBus = busB.ID
	busB.Sends = append(busB.Sends, Send{ID: "s", TargetBus: busA.ID})
	p.Tracks = append(p.Tracks, busA, busB)
	if err := p.Validate(); KindOf(err) != ErrInvalidRouting {
		t.Errorf("bus cycle gave %v, expected INVALID_ROUTING", err)
	}

	busB.Sends = nil
	p.Tracks[len(p.Tracks)-1] = busB
	if err := p.Validate(); err != nil {
		t.Errorf("acyclic routing gave %v", err)
	}
}

func TestClipValidateRequiresExactlyOnePayload(t *testing.T) {
	c := Clip{ID: "c", LengthTicks: 1, Kind: ClipMidi}
	if err := c.Validate(); KindOf(err) != ErrInvalidArgument {
		t.Errorf("payloadless clip gave %v, expected INVALID_ARGUMENT", err)
	}
	c.Midi = &NoteClip{}
	c.Audio = &AudioClip{StretchRatio: 1}
	if err := c.Validate(); KindOf(err) != ErrInvalidArgument {
		t.Errorf("double payload gave %v, expected INVALID_ARGUMENT", err)
	}
	c.Audio = nil
	if err := c.Validate(); err != nil {
		t.Errorf("valid midi clip gave %v", err)
	}
}

func TestClipKindMustMatchPayload(t *testing.T) {
	c := Clip{ID: "c", LengthTicks: 1, Kind: ClipChip, Midi: &NoteClip{}}
	if err := c.Validate(); KindOf(err) != ErrInvalidArgument {
		t.Errorf("mismatched payload gave %v, expected INVALID_ARGUMENT", err)
	}
}
