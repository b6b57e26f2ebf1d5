package engine

import "github.com/jkataja/tahti"

// noteClip resolves a (track, clip) address to a note-bearing clip.
func (e *Engine) noteClip(trackID, clipID string) (*tahti.Clip, error) {
	clip, err := e.findClip(trackID, clipID)
	if err != nil {
		return nil, err
	}
	if !clip.NoteBearing() {
		return nil, tahti.NewWrongPayload(clipID, "midi or pattern")
	}
	return clip, nil
}

// setNotes installs an edited note sequence and, for chip clips,
// regenerates the tracker row view from it.
func (e *Engine) setNotes(clip *tahti.Clip, notes []tahti.Note) {
	clip.SetNotes(notes)
	if clip.Kind == tahti.ClipChip && clip.Pattern != nil {
		clip.Pattern.SyncRowsFromNotes(e.project.PPQ)
	}
}

// AddClipNote clamps and inserts a note, keeping the sequence ordered by
// start tick.
func (e *Engine) AddClipNote(trackID, clipID string, note tahti.Note) (tahti.Project, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	clip, err := e.noteClip(trackID, clipID)
	if err != nil {
		return tahti.Project{}, err
	}
	notes := append(copySlice(clip.Notes()), note.Clamp())
	tahti.SortNotes(notes)
	e.setNotes(clip, notes)
	return e.commit(), nil
}

// RemoveClipNote removes the note at the given index in the sorted
// sequence.
func (e *Engine) RemoveClipNote(trackID, clipID string, index int) (tahti.Project, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	clip, err := e.noteClip(trackID, clipID)
	if err != nil {
		return tahti.Project{}, err
	}
	notes := clip.Notes()
	if index < 0 || index >= len(notes) {
		return tahti.Project{}, tahti.NewIndexOutOfRange("note", index, len(notes))
	}
	next := copySlice(notes)
	next = append(next[:index], next[index+1:]...)
	e.setNotes(clip, next)
	return e.commit(), nil
}

// UpdateClipNotes replaces the whole note sequence; every incoming note is
// clamped exactly as in AddClipNote.
func (e *Engine) UpdateClipNotes(trackID, clipID string, notes []tahti.Note) (tahti.Project, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	clip, err := e.noteClip(trackID, clipID)
	if err != nil {
		return tahti.Project{}, err
	}
	next := make([]tahti.Note, len(notes))
	for i, note := range notes {
		next[i] = note.Clamp()
	}
	tahti.SortNotes(next)
	e.setNotes(clip, next)
	return e.commit(), nil
}

// TransposeClipNotes shifts every note by the given number of semitones,
// saturating at the ends of the midi pitch range instead of wrapping.
func (e *Engine) TransposeClipNotes(trackID, clipID string, semitones int) (tahti.Project, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	clip, err := e.noteClip(trackID, clipID)
	if err != nil {
		return tahti.Project{}, err
	}
	next := copySlice(clip.Notes())
	for i := range next {
		next[i].Pitch = next[i].Pitch + semitones
		next[i] = next[i].Clamp()
	}
	e.setNotes(clip, next)
	return e.commit(), nil
}

// QuantizeClipNotes snaps every note start to the nearest multiple of
// gridTicks and rounds lengths up to at least one grid unit.
func (e *Engine) QuantizeClipNotes(trackID, clipID string, gridTicks int) (tahti.Project, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if gridTicks <= 0 {
		return tahti.Project{}, tahti.NewInvalidArgument("quantize grid should be > 0 ticks")
	}
	clip, err := e.noteClip(trackID, clipID)
	if err != nil {
		return tahti.Project{}, err
	}
	next := copySlice(clip.Notes())
	for i := range next {
		next[i].StartTick = roundToGrid(next[i].StartTick, gridTicks)
		next[i].LengthTicks = max(roundToGrid(next[i].LengthTicks, gridTicks), gridTicks)
		next[i] = next[i].Clamp()
	}
	tahti.SortNotes(next)
	e.setNotes(clip, next)
	return e.commit(), nil
}

// roundToGrid snaps a tick to the nearest multiple of grid.
func roundToGrid(tick, grid int) int {
	return (tick + grid/2) / grid * grid
}

func copySlice(notes []tahti.Note) []tahti.Note {
	ret := make([]tahti.Note, len(notes))
	copy(ret, notes)
	return ret
}
