package tahti

import (
	"reflect"
	"testing"
)

func TestNoteClamp(t *testing.T) {
	tests := []struct {
		name     string
		note     Note
		expected Note
	}{
		{"valid", Note{Pitch: 60, Velocity: 100, StartTick: 480, LengthTicks: 240, Channel: 5},
			Note{Pitch: 60, Velocity: 100, StartTick: 480, LengthTicks: 240, Channel: 5}},
		{"high", Note{Pitch: 300, Velocity: 200, StartTick: 0, LengthTicks: 1, Channel: 99},
			Note{Pitch: 127, Velocity: 127, StartTick: 0, LengthTicks: 1, Channel: 15}},
		{"negative", Note{Pitch: -5, Velocity: -1, StartTick: -480, LengthTicks: 0, Channel: -2},
			Note{Pitch: 0, Velocity: 0, StartTick: 0, LengthTicks: 1, Channel: 0}},
	}
	for _, test := range tests {
		if got := test.note.Clamp(); got != test.expected {
			t.Errorf("%v: Clamp() = %+v, expected %+v", test.name, got, test.expected)
		}
	}
}

func TestSortNotesIsStable(t *testing.T) {
	notes := []Note{
		{Pitch: 64, StartTick: 480},
		{Pitch: 60, StartTick: 0},
		{Pitch: 67, StartTick: 480},
		{Pitch: 62, StartTick: 240},
	}
	SortNotes(notes)
	expected := []Note{
		{Pitch: 60, StartTick: 0},
		{Pitch: 62, StartTick: 240},
		{Pitch: 64, StartTick: 480},
		{Pitch: 67, StartTick: 480},
	}
	if !reflect.DeepEqual(notes, expected) {
		t.Errorf("SortNotes gave %v, expected %v", notes, expected)
	}
}

func TestNoteEndTick(t *testing.T) {
	n := Note{StartTick: 480, LengthTicks: 240}
	if got := n.EndTick(); got != 720 {
		t.Errorf("EndTick() = %v, expected 720", got)
	}
}
