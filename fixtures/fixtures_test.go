package fixtures

import (
	"reflect"
	"testing"

	"github.com/jkataja/tahti"
)

func TestDemoProjectIsValid(t *testing.T) {
	project := DemoProject()
	if err := project.Validate(); err != nil {
		t.Fatalf("demo project does not validate: %v", err)
	}
	if project.BPM != 138.0 {
		t.Errorf("bpm = %v, expected 138", project.BPM)
	}
	if len(project.Tracks) != 2 {
		t.Fatalf("expected 2 tracks, got %v", len(project.Tracks))
	}
	if project.NoteCount() != 8 {
		t.Errorf("note count = %v, expected 8", project.NoteCount())
	}
	if project.Tracks[0].Kind != tahti.TrackMidi || project.Tracks[1].Kind != tahti.TrackChip {
		t.Errorf("track kinds = (%v, %v)", project.Tracks[0].Kind, project.Tracks[1].Kind)
	}
}

func TestDemoProjectIsDeterministic(t *testing.T) {
	first := DemoProject()
	second := DemoProject()
	if !reflect.DeepEqual(first, second) {
		t.Error("two demo projects differ")
	}
	if first.ID != "9ed0a3fa-4064-458f-b95f-1fdd0bc4f0be" {
		t.Errorf("project id = %v, expected the pinned fixture id", first.ID)
	}
	if !first.CreatedAt.Equal(first.UpdatedAt) {
		t.Error("fixture timestamps should match")
	}
}

func TestDemoPatternHasRowGrid(t *testing.T) {
	project := DemoProject()
	pattern := project.Tracks[1].Clips[0].Pattern
	if pattern == nil {
		t.Fatal("chip clip is missing its pattern payload")
	}
	if pattern.SourceChip != "gameboy_apu" {
		t.Errorf("source chip = %v", pattern.SourceChip)
	}
	if len(pattern.Rows) != len(pattern.Notes) {
		t.Errorf("rows (%v) and notes (%v) out of sync", len(pattern.Rows), len(pattern.Notes))
	}
	// quarter notes at 4 lines per beat land on every fourth row
	for i, row := range pattern.Rows {
		if row.Row != i*4 {
			t.Errorf("row %v at position %v, expected %v", i, row.Row, i*4)
		}
	}
}
