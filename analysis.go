package tahti

// AudioAnalysis is the result of scanning an audio file for import:
// captured source properties plus a bucketed waveform peak array for lane
// rendering. The core treats the values as opaque and trusts them when
// deriving clip lengths; producing them is the audioscan package's (or any
// other analyzer collaborator's) job.
type AudioAnalysis struct {
	SourcePath      string    `yaml:"source_path" json:"source_path"`
	SampleRate      int       `yaml:"sample_rate" json:"sample_rate"`
	Channels        int       `yaml:"channels" json:"channels"`
	TotalFrames     int       `yaml:"total_frames" json:"total_frames"`
	DurationSeconds float64   `yaml:"duration_seconds" json:"duration_seconds"`
	BucketSize      int       `yaml:"bucket_size" json:"bucket_size"`
	Peaks           []float32 `yaml:"peaks" json:"peaks"`
	CachePath       string    `yaml:"cache_path,omitempty" json:"cache_path,omitempty"`
}
