package tahti

// AudioClip references an imported audio file plus the non-destructive
// edits applied to it. The source fields are captured at import time and
// immutable afterwards. The owning clip's length in ticks is always derived
// from the trimmed, stretched duration; it is never set independently.
type AudioClip struct {
	SourcePath            string    `yaml:"source_path" json:"source_path"`
	GainDB                float64   `yaml:"gain_db" json:"gain_db"`
	Pan                   float64   `yaml:"pan" json:"pan"`
	SourceSampleRate      int       `yaml:"source_sample_rate" json:"source_sample_rate"`
	SourceChannels        int       `yaml:"source_channels" json:"source_channels"`
	SourceDurationSeconds float64   `yaml:"source_duration_seconds" json:"source_duration_seconds"`
	TrimStartSeconds      float64   `yaml:"trim_start_seconds" json:"trim_start_seconds"`
	TrimEndSeconds        float64   `yaml:"trim_end_seconds" json:"trim_end_seconds"`
	FadeInSeconds         float64   `yaml:"fade_in_seconds" json:"fade_in_seconds"`
	FadeOutSeconds        float64   `yaml:"fade_out_seconds" json:"fade_out_seconds"`
	Reverse               bool      `yaml:"reverse" json:"reverse"`
	StretchRatio          float64   `yaml:"stretch_ratio" json:"stretch_ratio"`
	WaveformBucketSize    int       `yaml:"waveform_bucket_size" json:"waveform_bucket_size"`
	WaveformPeaks         []float32 `yaml:"waveform_peaks" json:"waveform_peaks"`
	WaveformCachePath     string    `yaml:"waveform_cache_path,omitempty" json:"waveform_cache_path,omitempty"`
}

// Copy makes a deep copy of an AudioClip.
func (a *AudioClip) Copy() AudioClip {
	peaks := make([]float32, len(a.WaveformPeaks))
	copy(peaks, a.WaveformPeaks)
	ret := *a
	ret.WaveformPeaks = peaks
	return ret
}

// EffectiveDurationSeconds is the audible length on the timeline: the
// trimmed span scaled by the stretch ratio.
func (a *AudioClip) EffectiveDurationSeconds() float64 {
	span := a.TrimEndSeconds - a.TrimStartSeconds
	if span < 0 {
		span = 0
	}
	return span * a.StretchRatio
}

// Sanitize clamps the mutable fields into their valid ranges and checks
// the trim and stretch invariants. The trim bounds are clamped to the
// source duration; fades that together exceed the audible span are scaled
// down proportionally.
func (a *AudioClip) Sanitize() error {
	a.GainDB = ClampGainDB(a.GainDB)
	a.Pan = ClampPan(a.Pan)
	a.SourceDurationSeconds = max(a.SourceDurationSeconds, 0)
	a.TrimStartSeconds = max(a.TrimStartSeconds, 0)
	a.TrimEndSeconds = max(a.TrimEndSeconds, 0)
	a.FadeInSeconds = max(a.FadeInSeconds, 0)
	a.FadeOutSeconds = max(a.FadeOutSeconds, 0)

	if a.StretchRatio <= 0 {
		return NewInvalidArgument("audio stretch ratio should be > 0")
	}
	if a.TrimEndSeconds < a.TrimStartSeconds {
		return NewInvalidArgument("audio trim end should not precede trim start")
	}
	a.TrimStartSeconds = min(a.TrimStartSeconds, a.SourceDurationSeconds)
	a.TrimEndSeconds = min(a.TrimEndSeconds, a.SourceDurationSeconds)

	if total := a.FadeInSeconds + a.FadeOutSeconds; total > a.EffectiveDurationSeconds() {
		if available := a.EffectiveDurationSeconds(); available > 0 {
			scale := available / total
			a.FadeInSeconds *= scale
			a.FadeOutSeconds *= scale
		} else {
			a.FadeInSeconds = 0
			a.FadeOutSeconds = 0
		}
	}
	return nil
}
