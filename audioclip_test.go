package tahti

import (
	"math"
	"testing"
)

func TestAudioClipEffectiveDuration(t *testing.T) {
	tests := []struct {
		name     string
		clip     AudioClip
		expected float64
	}{
		{"plain trim", AudioClip{TrimStartSeconds: 1, TrimEndSeconds: 7, StretchRatio: 1}, 6},
		{"stretched", AudioClip{TrimStartSeconds: 0, TrimEndSeconds: 4, StretchRatio: 0.5}, 2},
		{"inverted trim", AudioClip{TrimStartSeconds: 5, TrimEndSeconds: 2, StretchRatio: 1}, 0},
	}
	for _, test := range tests {
		if got := test.clip.EffectiveDurationSeconds(); math.Abs(got-test.expected) > 1e-9 {
			t.Errorf("%v: EffectiveDurationSeconds() = %v, expected %v", test.name, got, test.expected)
		}
	}
}

func TestAudioClipSanitize(t *testing.T) {
	clip := AudioClip{
		GainDB:                100,
		Pan:                   -3,
		SourceDurationSeconds: 10,
		TrimStartSeconds:      -1,
		TrimEndSeconds:        15,
		FadeInSeconds:         -2,
		StretchRatio:          1,
	}
	if err := clip.Sanitize(); err != nil {
		t.Fatalf("Sanitize() returned error: %v", err)
	}
	if clip.GainDB != MaxGainDB {
		t.Errorf("gain = %v, expected clamp to %v", clip.GainDB, MaxGainDB)
	}
	if clip.Pan != -1 {
		t.Errorf("pan = %v, expected clamp to -1", clip.Pan)
	}
	if clip.TrimStartSeconds != 0 {
		t.Errorf("trim start = %v, expected 0", clip.TrimStartSeconds)
	}
	if clip.TrimEndSeconds != 10 {
		t.Errorf("trim end = %v, expected clamp to source duration 10", clip.TrimEndSeconds)
	}
	if clip.FadeInSeconds != 0 {
		t.Errorf("fade in = %v, expected 0", clip.FadeInSeconds)
	}
}

func TestAudioClipSanitizeRejectsBadStretch(t *testing.T) {
	clip := AudioClip{SourceDurationSeconds: 10, TrimEndSeconds: 5, StretchRatio: 0}
	if err := clip.Sanitize(); KindOf(err) != ErrInvalidArgument {
		t.Errorf("zero stretch ratio gave %v, expected INVALID_ARGUMENT", err)
	}
	clip = AudioClip{SourceDurationSeconds: 10, TrimStartSeconds: 6, TrimEndSeconds: 3, StretchRatio: 1}
	if err := clip.Sanitize(); KindOf(err) != ErrInvalidArgument {
		t.Errorf("inverted trim gave %v, expected INVALID_ARGUMENT", err)
	}
}

func TestAudioClipSanitizeScalesFades(t *testing.T) {
	clip := AudioClip{
		SourceDurationSeconds: 10,
		TrimStartSeconds:      0,
		TrimEndSeconds:        2,
		FadeInSeconds:         3,
		FadeOutSeconds:        1,
		StretchRatio:          1,
	}
	if err := clip.Sanitize(); err != nil {
		t.Fatalf("Sanitize() returned error: %v", err)
	}
	// 4 seconds of fades squeezed into a 2 second span keeps their ratio
	if math.Abs(clip.FadeInSeconds-1.5) > 1e-9 || math.Abs(clip.FadeOutSeconds-0.5) > 1e-9 {
		t.Errorf("fades scaled to (%v, %v), expected (1.5, 0.5)", clip.FadeInSeconds, clip.FadeOutSeconds)
	}
}
