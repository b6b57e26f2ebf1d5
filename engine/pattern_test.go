package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jkataja/tahti"
)

func intPtr(v int) *int { return &v }

func newChipClip(t *testing.T, e *Engine) (string, string) {
	t.Helper()
	chipID := addTrack(t, e, "Chip", tahti.TrackChip)
	project, err := e.AddNoteClip(AddNoteClipRequest{
		TrackID:     chipID,
		SourceChip:  "gameboy_apu",
		LengthTicks: 1920,
	})
	require.NoError(t, err)
	return chipID, project.Track(chipID).Clips[0].ID
}

func TestUpdatePatternRowsRegeneratesNotes(t *testing.T) {
	e := NewDefault()
	chipID, clipID := newChipClip(t, e)
	project, err := e.UpdatePatternRows(chipID, clipID, []tahti.TrackerRow{
		{Row: 0, Note: intPtr(36), Velocity: 100, Gate: true},
		{Row: 2, Note: intPtr(43), Velocity: 300, Gate: true},
		{Row: 3, Note: intPtr(41), Velocity: 95, Gate: false},
		{Row: -2, Note: intPtr(41), Velocity: 95, Gate: true},
	}, nil)
	require.NoError(t, err)
	pattern := project.Track(chipID).Clip(clipID).Pattern
	require.NotNil(t, pattern)
	require.Len(t, pattern.Rows, 3, "negative rows are dropped")
	assert.Equal(t, 127, pattern.Rows[1].Velocity, "velocity clamps to midi range")
	require.Len(t, pattern.Notes, 2, "only gated rows with a note become notes")
	assert.Equal(t, 36, pattern.Notes[0].Pitch)
	assert.Equal(t, 240, pattern.Notes[1].StartTick)
	assert.Equal(t, 120, pattern.Notes[1].LengthTicks)
}

func TestUpdatePatternRowsChangesGridResolution(t *testing.T) {
	e := NewDefault()
	chipID, clipID := newChipClip(t, e)
	project, err := e.UpdatePatternRows(chipID, clipID, []tahti.TrackerRow{
		{Row: 8, Note: intPtr(36), Velocity: 100, Gate: true},
	}, intPtr(8))
	require.NoError(t, err)
	pattern := project.Track(chipID).Clip(clipID).Pattern
	assert.Equal(t, 8, pattern.LinesPerBeat)
	assert.Equal(t, 480, pattern.Notes[0].StartTick, "row 8 at eight lines per beat is one beat in")
}

func TestUpdatePatternRowsRejectsBadLinesPerBeat(t *testing.T) {
	e := NewDefault()
	chipID, clipID := newChipClip(t, e)
	_, err := e.UpdatePatternRows(chipID, clipID, nil, intPtr(0))
	assert.Equal(t, tahti.ErrInvalidArgument, tahti.KindOf(err))
}

func TestUpdatePatternRowsClampsEffectValues(t *testing.T) {
	e := NewDefault()
	chipID, clipID := newChipClip(t, e)
	project, err := e.UpdatePatternRows(chipID, clipID, []tahti.TrackerRow{
		{Row: 0, Note: intPtr(36), Velocity: 100, Gate: true, Effect: "arp", EffectValue: intPtr(0x12345)},
	}, nil)
	require.NoError(t, err)
	row := project.Track(chipID).Clip(clipID).Pattern.Rows[0]
	assert.Equal(t, "arp", row.Effect)
	assert.Equal(t, 0xFFFF, *row.EffectValue)
}

func TestUpdatePatternRejectsNonChipClips(t *testing.T) {
	e, trackID, clipID := newTestEngine(t)
	_, err := e.UpdatePatternRows(trackID, clipID, nil, nil)
	assert.True(t, tahti.IsWrongPayload(err))
	_, err = e.UpdatePatternMacros(trackID, clipID, nil)
	assert.True(t, tahti.IsWrongPayload(err))
}

func TestUpdatePatternMacros(t *testing.T) {
	e := NewDefault()
	chipID, clipID := newChipClip(t, e)
	project, err := e.UpdatePatternMacros(chipID, clipID, []tahti.ChipMacroLane{
		{Target: " Duty ", Enabled: true, Values: []int{0, 64, 200, -300}},
	})
	require.NoError(t, err)
	macros := project.Track(chipID).Clip(clipID).Pattern.Macros
	require.Len(t, macros, 1)
	assert.Equal(t, "duty", macros[0].Target)
	assert.Equal(t, []int{0, 64, 127, -127}, macros[0].Values)
}

func TestUpdateAutomationClip(t *testing.T) {
	e := NewDefault()
	autoID := addTrack(t, e, "Auto", tahti.TrackAutomation)
	project, err := e.AddAutomationClip(AddAutomationClipRequest{
		TrackID:           autoID,
		LengthTicks:       960,
		TargetParameterID: "custom:param",
	})
	require.NoError(t, err)
	clipID := project.Track(autoID).Clips[0].ID

	// nil target keeps the current one
	project, err = e.UpdateAutomationClip(autoID, clipID, nil, []tahti.AutomationPoint{{Tick: 0, Value: 1}})
	require.NoError(t, err)
	clip := project.Track(autoID).Clip(clipID)
	assert.Equal(t, "custom:param", clip.Automation.TargetParameterID)
	assert.Len(t, clip.Automation.Points, 1)

	// blank target falls back to the track gain parameter
	project, err = e.UpdateAutomationClip(autoID, clipID, stringPtr(""), nil)
	require.NoError(t, err)
	clip = project.Track(autoID).Clip(clipID)
	assert.Equal(t, TrackGainParameterID(autoID), clip.Automation.TargetParameterID)
	assert.Empty(t, clip.Automation.Points)
}

func TestTransportCommands(t *testing.T) {
	e := NewDefault()
	project := e.SetPlayback(true)
	assert.True(t, project.Transport.IsPlaying)

	project = e.SetPlayhead(-50)
	assert.Equal(t, 0, project.Transport.PlayheadTick)
	project = e.SetPlayhead(960)
	assert.Equal(t, 960, project.Transport.PlayheadTick)

	project = e.SetMetronome(false)
	assert.False(t, project.Transport.MetronomeEnabled)

	project, err := e.SetLoopRegion(480, 1920, true)
	require.NoError(t, err)
	assert.Equal(t, 480, project.Transport.LoopStartTick)
	assert.Equal(t, 1920, project.Transport.LoopEndTick)
	assert.True(t, project.Transport.LoopEnabled)

	_, err = e.SetLoopRegion(1920, 480, true)
	assert.Equal(t, tahti.ErrInvalidArgument, tahti.KindOf(err))
}

func TestSetLoopRegionNegativeTicks(t *testing.T) {
	e, _, _ := newTestEngine(t)

	// both bounds below zero collapse to an empty region after clamping
	_, err := e.SetLoopRegion(-10, -5, true)
	assert.Equal(t, tahti.ErrInvalidArgument, tahti.KindOf(err))
	snapshot := e.Project()
	assert.NoError(t, snapshot.Validate(), "rejected loop leaves the project loadable")

	project, err := e.SetLoopRegion(-10, 480, true)
	require.NoError(t, err)
	assert.Equal(t, 0, project.Transport.LoopStartTick)
	assert.Equal(t, 480, project.Transport.LoopEndTick)
	assert.True(t, project.Transport.LoopEnabled)
}
