package engine

import (
	"github.com/google/uuid"

	"github.com/jkataja/tahti"
)

type (
	// AddNoteClipRequest creates a midi clip, or a chip pattern clip when
	// SourceChip is set, with an optional initial note sequence.
	AddNoteClipRequest struct {
		TrackID      string
		Name         string
		StartTick    int
		LengthTicks  int
		Instrument   string
		SourceChip   string
		LinesPerBeat int
		Notes        []tahti.Note
	}

	AddAutomationClipRequest struct {
		TrackID           string
		Name              string
		StartTick         int
		LengthTicks       int
		TargetParameterID string
		Points            []tahti.AutomationPoint
	}

	// ImportAudioClipRequest places an analyzed audio file on a track.
	// The analysis is produced outside the engine by an Analyzer
	// collaborator so that no command blocks on I/O.
	ImportAudioClipRequest struct {
		TrackID   string
		Name      string
		StartTick int
		GainDB    float64
		Pan       float64
	}

	// AudioClipPatch updates any subset of an audio clip's editable
	// fields; nil fields are left unchanged. The clip length is re-derived
	// from the resulting trim and stretch, never patched directly.
	AudioClipPatch struct {
		GainDB           *float64
		Pan              *float64
		TrimStartSeconds *float64
		TrimEndSeconds   *float64
		FadeInSeconds    *float64
		FadeOutSeconds   *float64
		Reverse          *bool
		StretchRatio     *float64
	}
)

// clipHost resolves the destination track for a new clip and rejects bus
// tracks, which never hold clips.
func (e *Engine) clipHost(trackID string) (*tahti.Track, error) {
	track, err := e.findTrack(trackID)
	if err != nil {
		return nil, err
	}
	if track.Kind == tahti.TrackBus {
		return nil, tahti.NewUnsupportedOperation("bus track " + trackID + " cannot hold clips")
	}
	return track, nil
}

// AddNoteClip adds a midi or chip clip with the given initial notes. Notes
// are clamped and sorted exactly as in AddClipNote; chip clips get their
// row grid generated from the notes.
func (e *Engine) AddNoteClip(req AddNoteClipRequest) (tahti.Project, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	track, err := e.clipHost(req.TrackID)
	if err != nil {
		return tahti.Project{}, err
	}
	notes := make([]tahti.Note, len(req.Notes))
	for i, note := range req.Notes {
		notes[i] = note.Clamp()
	}
	tahti.SortNotes(notes)

	clip := tahti.Clip{
		ID:          uuid.NewString(),
		Name:        req.Name,
		StartTick:   max(req.StartTick, 0),
		LengthTicks: max(req.LengthTicks, 1),
	}
	if req.SourceChip != "" {
		pattern := tahti.PatternClip{
			SourceChip:   req.SourceChip,
			Notes:        notes,
			LinesPerBeat: req.LinesPerBeat,
		}
		if pattern.LinesPerBeat < 1 {
			pattern.LinesPerBeat = tahti.DefaultLinesPerBeat
		}
		pattern.SyncRowsFromNotes(e.project.PPQ)
		clip.Kind = tahti.ClipChip
		clip.Pattern = &pattern
	} else {
		clip.Kind = tahti.ClipMidi
		clip.Midi = &tahti.NoteClip{Instrument: req.Instrument, Notes: notes}
	}
	track.Clips = append(track.Clips, clip)
	return e.commit(), nil
}

// AddAutomationClip adds an automation lane clip. A blank target defaults
// to the host track's gain parameter; non-finite points are dropped.
func (e *Engine) AddAutomationClip(req AddAutomationClipRequest) (tahti.Project, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	track, err := e.clipHost(req.TrackID)
	if err != nil {
		return tahti.Project{}, err
	}
	target := req.TargetParameterID
	if target == "" {
		target = TrackGainParameterID(track.ID)
	}
	clip := tahti.Clip{
		ID:          uuid.NewString(),
		Name:        req.Name,
		StartTick:   max(req.StartTick, 0),
		LengthTicks: max(req.LengthTicks, 1),
		Kind:        tahti.ClipAutomation,
		Automation: &tahti.AutomationClip{
			TargetParameterID: target,
			Points:            tahti.SanitizePoints(req.Points),
		},
	}
	track.Clips = append(track.Clips, clip)
	return e.commit(), nil
}

// ImportAudioClip places an audio clip on an audio track from a
// materialized analysis. The clip starts untrimmed at unity stretch, so
// its initial length covers the full source duration.
func (e *Engine) ImportAudioClip(req ImportAudioClipRequest, analysis tahti.AudioAnalysis) (tahti.Project, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	track, err := e.clipHost(req.TrackID)
	if err != nil {
		return tahti.Project{}, err
	}
	if track.Kind != tahti.TrackAudio {
		return tahti.Project{}, tahti.NewUnsupportedOperation("track " + req.TrackID + " is not an audio track")
	}
	if analysis.BucketSize < 1 {
		return tahti.Project{}, tahti.NewInvalidArgument("audio analysis bucket size should be >= 1")
	}
	audio := tahti.AudioClip{
		SourcePath:            analysis.SourcePath,
		GainDB:                tahti.ClampGainDB(req.GainDB),
		Pan:                   tahti.ClampPan(req.Pan),
		SourceSampleRate:      analysis.SampleRate,
		SourceChannels:        max(analysis.Channels, 1),
		SourceDurationSeconds: max(analysis.DurationSeconds, 0),
		TrimStartSeconds:      0,
		TrimEndSeconds:        max(analysis.DurationSeconds, 0),
		StretchRatio:          1,
		WaveformBucketSize:    analysis.BucketSize,
		WaveformPeaks:         analysis.Peaks,
		WaveformCachePath:     analysis.CachePath,
	}
	if err := audio.Sanitize(); err != nil {
		return tahti.Project{}, err
	}
	clip := tahti.Clip{
		ID:          uuid.NewString(),
		Name:        req.Name,
		StartTick:   max(req.StartTick, 0),
		LengthTicks: e.audioLengthTicks(&audio),
		Kind:        tahti.ClipAudio,
		Audio:       &audio,
	}
	track.Clips = append(track.Clips, clip)
	return e.commit(), nil
}

// UpdateAudioClip patches the editable fields of an audio clip and
// re-derives its timeline length. The whole patch is validated against a
// scratch copy first; a rejected patch leaves the clip untouched.
func (e *Engine) UpdateAudioClip(trackID, clipID string, patch AudioClipPatch) (tahti.Project, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	clip, err := e.findClip(trackID, clipID)
	if err != nil {
		return tahti.Project{}, err
	}
	if clip.Kind != tahti.ClipAudio || clip.Audio == nil {
		return tahti.Project{}, tahti.NewWrongPayload(clipID, "audio")
	}
	audio := clip.Audio.Copy()
	if patch.GainDB != nil {
		audio.GainDB = *patch.GainDB
	}
	if patch.Pan != nil {
		audio.Pan = *patch.Pan
	}
	if patch.TrimStartSeconds != nil {
		audio.TrimStartSeconds = *patch.TrimStartSeconds
	}
	if patch.TrimEndSeconds != nil {
		audio.TrimEndSeconds = *patch.TrimEndSeconds
	}
	if patch.FadeInSeconds != nil {
		audio.FadeInSeconds = *patch.FadeInSeconds
	}
	if patch.FadeOutSeconds != nil {
		audio.FadeOutSeconds = *patch.FadeOutSeconds
	}
	if patch.Reverse != nil {
		audio.Reverse = *patch.Reverse
	}
	if patch.StretchRatio != nil {
		audio.StretchRatio = *patch.StretchRatio
	}
	if err := audio.Sanitize(); err != nil {
		return tahti.Project{}, err
	}
	*clip.Audio = audio
	clip.LengthTicks = e.audioLengthTicks(clip.Audio)
	return e.commit(), nil
}

// MoveClip moves and resizes a clip on the timeline. Audio clip lengths
// are derived from their trim and stretch, so resizing them here is
// rejected; only the start tick moves.
func (e *Engine) MoveClip(trackID, clipID string, startTick, lengthTicks int) (tahti.Project, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	clip, err := e.findClip(trackID, clipID)
	if err != nil {
		return tahti.Project{}, err
	}
	clip.StartTick = max(startTick, 0)
	if clip.Kind != tahti.ClipAudio {
		clip.LengthTicks = max(lengthTicks, 1)
	}
	return e.commit(), nil
}

// RemoveClip removes a clip from a track.
func (e *Engine) RemoveClip(trackID, clipID string) (tahti.Project, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	track, err := e.findTrack(trackID)
	if err != nil {
		return tahti.Project{}, err
	}
	for i := range track.Clips {
		if track.Clips[i].ID == clipID {
			track.Clips = append(track.Clips[:i], track.Clips[i+1:]...)
			return e.commit(), nil
		}
	}
	return tahti.Project{}, tahti.NewNotFound("clip", clipID)
}

func (e *Engine) audioLengthTicks(audio *tahti.AudioClip) int {
	return max(tahti.SecondsToTicks(audio.EffectiveDurationSeconds(), e.project.BPM, e.project.PPQ), 1)
}
