package engine

import (
	"github.com/jkataja/tahti/midifile"
	"github.com/jkataja/tahti/parity"
)

// MeasureParity fingerprints the current project.
func (e *Engine) MeasureParity() (parity.Report, error) {
	snapshot := e.Project()
	return parity.Measure(&snapshot)
}

// ExportMidi renders the current project's note content to a standard
// MIDI file at path.
func (e *Engine) ExportMidi(path string) error {
	snapshot := e.Project()
	return midifile.WriteFile(&snapshot, path)
}
