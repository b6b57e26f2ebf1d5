package engine

import "github.com/jkataja/tahti"

// patternClip resolves a (track, clip) address to a chip pattern clip.
func (e *Engine) patternClip(trackID, clipID string) (*tahti.Clip, error) {
	clip, err := e.findClip(trackID, clipID)
	if err != nil {
		return nil, err
	}
	if clip.Kind != tahti.ClipChip || clip.Pattern == nil {
		return nil, tahti.NewWrongPayload(clipID, "pattern")
	}
	return clip, nil
}

// UpdatePatternRows replaces the tracker row grid of a chip clip and
// regenerates its canonical note sequence from the gated rows. A non-nil
// linesPerBeat also changes the grid resolution; zero or negative values
// are rejected before anything is written. Row effect columns are stored
// as given; this is the one edit path that can set them.
func (e *Engine) UpdatePatternRows(trackID, clipID string, rows []tahti.TrackerRow, linesPerBeat *int) (tahti.Project, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if linesPerBeat != nil && *linesPerBeat < 1 {
		return tahti.Project{}, tahti.NewInvalidArgument("lines per beat should be >= 1")
	}
	clip, err := e.patternClip(trackID, clipID)
	if err != nil {
		return tahti.Project{}, err
	}
	pattern := clip.Pattern
	if linesPerBeat != nil {
		pattern.LinesPerBeat = *linesPerBeat
	}
	next := make([]tahti.TrackerRow, 0, len(rows))
	for _, row := range rows {
		if row.Row < 0 {
			continue
		}
		row = row.Copy()
		if row.Note != nil {
			*row.Note = clampRange(*row.Note, 0, 127)
		}
		row.Velocity = clampRange(row.Velocity, 0, 127)
		if row.EffectValue != nil {
			*row.EffectValue = clampRange(*row.EffectValue, 0, 0xFFFF)
		}
		next = append(next, row)
	}
	pattern.Rows = next
	pattern.Notes = tahti.RowsToNotes(next, e.project.PPQ, pattern.LinesPerBeat)
	return e.commit(), nil
}

// UpdatePatternMacros replaces the macro lanes of a chip clip, sanitizing
// each lane (lower-cased trimmed target, clamped values, capped length,
// non-negative loop bounds).
func (e *Engine) UpdatePatternMacros(trackID, clipID string, lanes []tahti.ChipMacroLane) (tahti.Project, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	clip, err := e.patternClip(trackID, clipID)
	if err != nil {
		return tahti.Project{}, err
	}
	next := make([]tahti.ChipMacroLane, len(lanes))
	for i, lane := range lanes {
		next[i] = tahti.SanitizeMacroLane(lane)
	}
	clip.Pattern.Macros = next
	return e.commit(), nil
}

func clampRange(value, lo, hi int) int {
	if value < lo {
		return lo
	}
	if value > hi {
		return hi
	}
	return value
}
