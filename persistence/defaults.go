package persistence

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/jkataja/tahti"
)

// Defaults are the seed values for newly created projects. Hosts can
// override them with a small YAML file.
type Defaults struct {
	Title      string  `yaml:"title"`
	BPM        float64 `yaml:"bpm"`
	SampleRate int     `yaml:"sample_rate"`
}

// BuiltinDefaults returns the defaults a session starts with when no
// override file is given.
func BuiltinDefaults() Defaults {
	return Defaults{
		Title:      "Untitled",
		BPM:        tahti.DefaultBPM,
		SampleRate: tahti.DefaultSampleRate,
	}
}

// LoadDefaults reads a defaults override file. Fields left out of the
// file keep their built-in values.
func LoadDefaults(path string) (Defaults, error) {
	defaults := BuiltinDefaults()
	data, err := os.ReadFile(path)
	if err != nil {
		return Defaults{}, fmt.Errorf("reading defaults: %w", err)
	}
	if err := yaml.Unmarshal(data, &defaults); err != nil {
		return Defaults{}, fmt.Errorf("parsing defaults: %w", err)
	}
	if defaults.BPM <= 0 {
		return Defaults{}, tahti.NewInvalidArgument("defaults bpm should be > 0")
	}
	if defaults.SampleRate <= 0 {
		return Defaults{}, tahti.NewInvalidArgument("defaults sample rate should be > 0")
	}
	return defaults, nil
}

// NewProject creates a project seeded from the defaults.
func (d Defaults) NewProject() tahti.Project {
	return tahti.NewProject(d.Title, d.BPM, d.SampleRate)
}
