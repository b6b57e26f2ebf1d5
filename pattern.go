package tahti

import "strings"

// MaxMacroValues caps the length of a chip macro lane.
const MaxMacroValues = 256

// DefaultLinesPerBeat is the tracker grid resolution of new chip clips.
const DefaultLinesPerBeat = 4

type (
	// PatternClip is the chip-tune payload: the same note sequence as a
	// midi clip plus a parallel tracker row grid and per-chip macro lanes.
	// The notes and the rows are two views of the same gated-event data;
	// the notes are canonical and the rows are regenerated from them on
	// every note edit. Row effect columns are not derivable from notes and
	// survive only direct row edits.
	PatternClip struct {
		SourceChip   string          `yaml:"source_chip" json:"source_chip"`
		Notes        []Note          `yaml:"notes" json:"notes"`
		Rows         []TrackerRow    `yaml:"rows" json:"rows"`
		Macros       []ChipMacroLane `yaml:"macros" json:"macros"`
		LinesPerBeat int             `yaml:"lines_per_beat" json:"lines_per_beat"`
	}

	// TrackerRow is one line of the tracker grid. A nil note is a rest;
	// only gated rows with a note turn into midi events.
	TrackerRow struct {
		Row         int    `yaml:"row" json:"row"`
		Note        *int   `yaml:"note,omitempty" json:"note,omitempty"`
		Velocity    int    `yaml:"velocity" json:"velocity"`
		Gate        bool   `yaml:"gate" json:"gate"`
		Effect      string `yaml:"effect,omitempty" json:"effect,omitempty"`
		EffectValue *int   `yaml:"effect_value,omitempty" json:"effect_value,omitempty"`
	}

	// ChipMacroLane is a stepped modulation table for a chip parameter
	// (arpeggio, envelope, duty and the like), advanced one value per
	// tracker row.
	ChipMacroLane struct {
		Target    string `yaml:"target" json:"target"`
		Enabled   bool   `yaml:"enabled" json:"enabled"`
		Values    []int  `yaml:"values" json:"values"`
		LoopStart *int   `yaml:"loop_start,omitempty" json:"loop_start,omitempty"`
		LoopEnd   *int   `yaml:"loop_end,omitempty" json:"loop_end,omitempty"`
	}
)

// Copy makes a deep copy of a PatternClip.
func (p *PatternClip) Copy() PatternClip {
	rows := make([]TrackerRow, len(p.Rows))
	for i, r := range p.Rows {
		rows[i] = r.Copy()
	}
	macros := make([]ChipMacroLane, len(p.Macros))
	for i, m := range p.Macros {
		macros[i] = m.Copy()
	}
	return PatternClip{
		SourceChip:   p.SourceChip,
		Notes:        copyNotes(p.Notes),
		Rows:         rows,
		Macros:       macros,
		LinesPerBeat: p.LinesPerBeat,
	}
}

// Copy makes a deep copy of a TrackerRow.
func (r TrackerRow) Copy() TrackerRow {
	if r.Note != nil {
		note := *r.Note
		r.Note = &note
	}
	if r.EffectValue != nil {
		value := *r.EffectValue
		r.EffectValue = &value
	}
	return r
}

// Copy makes a deep copy of a ChipMacroLane.
func (m ChipMacroLane) Copy() ChipMacroLane {
	values := make([]int, len(m.Values))
	copy(values, m.Values)
	m.Values = values
	if m.LoopStart != nil {
		start := *m.LoopStart
		m.LoopStart = &start
	}
	if m.LoopEnd != nil {
		end := *m.LoopEnd
		m.LoopEnd = &end
	}
	return m
}

// TicksPerRow is the tick span of one tracker row, never less than one
// tick: round(ppq / linesPerBeat).
func TicksPerRow(ppq, linesPerBeat int) int {
	if linesPerBeat < 1 {
		return 1
	}
	return max((ppq+linesPerBeat/2)/linesPerBeat, 1)
}

// RowsToNotes converts a tracker row grid into the equivalent note
// sequence. Only gated rows with a non-rest note become notes; each note
// spans exactly one row. The result is ordered by start tick.
func RowsToNotes(rows []TrackerRow, ppq, linesPerBeat int) []Note {
	ticksPerRow := TicksPerRow(ppq, linesPerBeat)
	notes := make([]Note, 0, len(rows))
	for _, row := range rows {
		if !row.Gate || row.Note == nil || row.Row < 0 {
			continue
		}
		notes = append(notes, Note{
			Pitch:       clampInt(*row.Note, 0, 127),
			Velocity:    clampInt(row.Velocity, 0, 127),
			StartTick:   row.Row * ticksPerRow,
			LengthTicks: ticksPerRow,
		})
	}
	SortNotes(notes)
	return notes
}

// NotesToRows converts a note sequence into tracker rows, snapping each
// note onto the nearest row. Notes carry no effect data, so the effect
// columns of the synthesized rows are left empty.
func NotesToRows(notes []Note, ppq, linesPerBeat int) []TrackerRow {
	ticksPerRow := TicksPerRow(ppq, linesPerBeat)
	rows := make([]TrackerRow, 0, len(notes))
	for _, note := range notes {
		pitch := note.Pitch
		rows = append(rows, TrackerRow{
			Row:      (note.StartTick + ticksPerRow/2) / ticksPerRow,
			Note:     &pitch,
			Velocity: note.Velocity,
			Gate:     true,
		})
	}
	return rows
}

// SyncRowsFromNotes regenerates the row view after a note edit. Effect
// columns on rows that keep their position are carried over; everything
// else about the grid is rebuilt from the notes.
func (p *PatternClip) SyncRowsFromNotes(ppq int) {
	effects := make(map[int]TrackerRow, len(p.Rows))
	for _, row := range p.Rows {
		if row.Effect != "" || row.EffectValue != nil {
			effects[row.Row] = row
		}
	}
	rows := NotesToRows(p.Notes, ppq, p.LinesPerBeat)
	for i := range rows {
		if old, ok := effects[rows[i].Row]; ok {
			rows[i].Effect = old.Effect
			rows[i].EffectValue = old.EffectValue
		}
	}
	p.Rows = rows
}

// SanitizeMacroLane normalizes a macro lane: target lower-cased and
// trimmed, values clamped to the signed chip range and truncated to the
// lane cap, loop bounds clamped to >= 0.
func SanitizeMacroLane(lane ChipMacroLane) ChipMacroLane {
	lane = lane.Copy()
	lane.Target = strings.ToLower(strings.TrimSpace(lane.Target))
	if len(lane.Values) > MaxMacroValues {
		lane.Values = lane.Values[:MaxMacroValues]
	}
	for i, v := range lane.Values {
		lane.Values[i] = clampInt(v, -127, 127)
	}
	if lane.LoopStart != nil && *lane.LoopStart < 0 {
		*lane.LoopStart = 0
	}
	if lane.LoopEnd != nil && *lane.LoopEnd < 0 {
		*lane.LoopEnd = 0
	}
	return lane
}
