// Package engine owns the one live project of a session and exposes the
// command surface the host bridge talks to. Commands are serialized behind
// a mutex: at most one mutation is in flight per project, and reads
// observe a consistent snapshot, never a half-applied command. Every
// command validates its input fully before touching the project, so a
// failed command leaves the project exactly as it was.
package engine

import (
	"sync"

	"github.com/jkataja/tahti"
)

// Analyzer is the audio-analysis collaborator contract. Implementations
// (the audioscan package, or a host-provided decoder) do their blocking
// work outside the engine and hand commands fully materialized values.
type Analyzer interface {
	Analyze(path string, bucketSize int) (tahti.AudioAnalysis, error)
}

type Engine struct {
	mu      sync.Mutex
	project tahti.Project
}

// New returns an engine owning the given project.
func New(project tahti.Project) *Engine {
	return &Engine{project: project}
}

// NewDefault returns an engine with an untitled default project, the state
// a session starts in before the host loads or creates anything.
func NewDefault() *Engine {
	return New(tahti.NewProject("Untitled", tahti.DefaultBPM, tahti.DefaultSampleRate))
}

// Project returns a deep-copied snapshot of the live project.
func (e *Engine) Project() tahti.Project {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.project.Copy()
}

// CreateProject replaces the live project wholesale with a fresh one.
func (e *Engine) CreateProject(title string, bpm float64, sampleRate int) tahti.Project {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.project = tahti.NewProject(title, bpm, sampleRate)
	return e.project.Copy()
}

// ReplaceProject swaps in an externally materialized project (load,
// collaborative sync). The project must already be structurally valid.
func (e *Engine) ReplaceProject(project tahti.Project) (tahti.Project, error) {
	if err := project.Validate(); err != nil {
		return tahti.Project{}, err
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	e.project = project.Copy()
	return e.project.Copy(), nil
}

// findTrack resolves a track id inside a held lock.
func (e *Engine) findTrack(trackID string) (*tahti.Track, error) {
	if t := e.project.Track(trackID); t != nil {
		return t, nil
	}
	return nil, tahti.NewNotFound("track", trackID)
}

// findClip resolves a (track, clip) address inside a held lock.
func (e *Engine) findClip(trackID, clipID string) (*tahti.Clip, error) {
	track, err := e.findTrack(trackID)
	if err != nil {
		return nil, err
	}
	if c := track.Clip(clipID); c != nil {
		return c, nil
	}
	return nil, tahti.NewNotFound("clip", clipID)
}

// commit bumps the project timestamp and returns the snapshot every
// successful mutating command ends with.
func (e *Engine) commit() tahti.Project {
	e.project.Touch()
	return e.project.Copy()
}
