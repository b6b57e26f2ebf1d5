package engine

import "github.com/jkataja/tahti"

// SetPlayback starts or stops the transport.
func (e *Engine) SetPlayback(isPlaying bool) tahti.Project {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.project.Transport.IsPlaying = isPlaying
	return e.commit()
}

// SetPlayhead moves the playhead; negative ticks are clamped to zero.
func (e *Engine) SetPlayhead(tick int) tahti.Project {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.project.Transport.PlayheadTick = max(tick, 0)
	return e.commit()
}

// SetMetronome toggles the metronome click.
func (e *Engine) SetMetronome(enabled bool) tahti.Project {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.project.Transport.MetronomeEnabled = enabled
	return e.commit()
}

// SetLoopRegion sets the loop bounds and enabled flag. The end must lie
// after the start; an inverted region is rejected on write instead of
// being silently stored.
func (e *Engine) SetLoopRegion(startTick, endTick int, enabled bool) (tahti.Project, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	startTick = max(startTick, 0)
	if endTick <= startTick {
		return tahti.Project{}, tahti.NewInvalidArgument("loop end should be after loop start")
	}
	e.project.Transport.LoopStartTick = startTick
	e.project.Transport.LoopEndTick = endTick
	e.project.Transport.LoopEnabled = enabled
	return e.commit(), nil
}
