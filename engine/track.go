package engine

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/jkataja/tahti"
)

type (
	AddTrackRequest struct {
		Name  string
		Color string
		Kind  tahti.TrackKind
	}

	// TrackStatePatch updates any subset of the track flags; nil fields
	// are left unchanged.
	TrackStatePatch struct {
		Hidden  *bool
		Mute    *bool
		Solo    *bool
		Enabled *bool
	}

	// TrackMixPatch updates any subset of the track mix parameters. For
	// OutputBus, nil leaves the routing unchanged and a pointer to the
	// empty string clears it (routes to the implicit master sink).
	TrackMixPatch struct {
		GainDB    *float64
		Pan       *float64
		OutputBus *string
	}

	// SendUpsert inserts or replaces a send on a track. An unset ID means
	// a new send with a generated id; an ID matching an existing send
	// replaces it in place.
	SendUpsert struct {
		ID        string
		TargetBus string
		LevelDB   float64
		Pan       float64
		PreFader  bool
		Enabled   bool
	}
)

// AddTrack appends a track to the arrangement in neutral mix state.
func (e *Engine) AddTrack(req AddTrackRequest) tahti.Project {
	e.mu.Lock()
	defer e.mu.Unlock()
	name := req.Name
	if name == "" {
		name = "Track"
	}
	kind := req.Kind
	if kind == "" {
		kind = tahti.TrackMidi
	}
	e.project.Tracks = append(e.project.Tracks, tahti.NewTrack(name, req.Color, kind))
	return e.commit()
}

// RemoveTrack removes a track and clears any routes that pointed at it.
func (e *Engine) RemoveTrack(trackID string) (tahti.Project, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	idx := -1
	for i := range e.project.Tracks {
		if e.project.Tracks[i].ID == trackID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return tahti.Project{}, tahti.NewNotFound("track", trackID)
	}
	e.project.Tracks = append(e.project.Tracks[:idx], e.project.Tracks[idx+1:]...)
	for i := range e.project.Tracks {
		track := &e.project.Tracks[i]
		if track.OutputBus == trackID {
			track.OutputBus = ""
		}
		sends := track.Sends[:0]
		for _, send := range track.Sends {
			if send.TargetBus != trackID {
				sends = append(sends, send)
			}
		}
		track.Sends = sends
	}
	return e.commit(), nil
}

// ReorderTrack moves the track at index from to index to. Out-of-range
// indices are a no-op, not an error, so repeated invalid calls stay
// idempotent.
func (e *Engine) ReorderTrack(from, to int) tahti.Project {
	e.mu.Lock()
	defer e.mu.Unlock()
	n := len(e.project.Tracks)
	if from < 0 || from >= n || to < 0 || to >= n || from == to {
		return e.project.Copy()
	}
	track := e.project.Tracks[from]
	e.project.Tracks = append(e.project.Tracks[:from], e.project.Tracks[from+1:]...)
	rest := e.project.Tracks
	e.project.Tracks = append(rest[:to], append([]tahti.Track{track}, rest[to:]...)...)
	return e.commit()
}

// PatchTrackState updates the given subset of a track's flags.
func (e *Engine) PatchTrackState(trackID string, patch TrackStatePatch) (tahti.Project, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	track, err := e.findTrack(trackID)
	if err != nil {
		return tahti.Project{}, err
	}
	if patch.Hidden != nil {
		track.Hidden = *patch.Hidden
	}
	if patch.Mute != nil {
		track.Mute = *patch.Mute
	}
	if patch.Solo != nil {
		track.Solo = *patch.Solo
	}
	if patch.Enabled != nil {
		track.Enabled = *patch.Enabled
	}
	return e.commit(), nil
}

// PatchTrackMix updates gain, pan and the output bus assignment. Routing
// changes are validated against the whole bus graph before anything is
// written: the target must exist, be a bus, not be the track itself, and
// must not close a cycle through output buses or sends.
func (e *Engine) PatchTrackMix(trackID string, patch TrackMixPatch) (tahti.Project, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	track, err := e.findTrack(trackID)
	if err != nil {
		return tahti.Project{}, err
	}
	if patch.OutputBus != nil && *patch.OutputBus != "" {
		if err := e.validateRoute(trackID, *patch.OutputBus); err != nil {
			return tahti.Project{}, err
		}
	}
	if patch.GainDB != nil {
		track.GainDB = tahti.ClampGainDB(*patch.GainDB)
	}
	if patch.Pan != nil {
		track.Pan = tahti.ClampPan(*patch.Pan)
	}
	if patch.OutputBus != nil {
		track.OutputBus = *patch.OutputBus
	}
	return e.commit(), nil
}

// UpsertTrackSend validates the target bus and then either replaces the
// send with a matching id in place or appends a new one.
func (e *Engine) UpsertTrackSend(trackID string, send SendUpsert) (tahti.Project, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	track, err := e.findTrack(trackID)
	if err != nil {
		return tahti.Project{}, err
	}
	if err := e.validateRoute(trackID, send.TargetBus); err != nil {
		return tahti.Project{}, err
	}
	next := tahti.Send{
		ID:        send.ID,
		TargetBus: send.TargetBus,
		LevelDB:   tahti.ClampGainDB(send.LevelDB),
		Pan:       tahti.ClampPan(send.Pan),
		PreFader:  send.PreFader,
		Enabled:   send.Enabled,
	}
	if next.ID == "" {
		next.ID = uuid.NewString()
	} else if existing := track.Send(next.ID); existing != nil {
		*existing = next
		return e.commit(), nil
	}
	track.Sends = append(track.Sends, next)
	return e.commit(), nil
}

// RemoveTrackSend removes the send with the given id from the track.
func (e *Engine) RemoveTrackSend(trackID, sendID string) (tahti.Project, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	track, err := e.findTrack(trackID)
	if err != nil {
		return tahti.Project{}, err
	}
	for i := range track.Sends {
		if track.Sends[i].ID == sendID {
			track.Sends = append(track.Sends[:i], track.Sends[i+1:]...)
			return e.commit(), nil
		}
	}
	return tahti.Project{}, tahti.NewNotFound("send", sendID)
}

// AddEffect appends an effect with its catalog defaults to a track's
// insert chain.
func (e *Engine) AddEffect(trackID, effectName string) (tahti.Project, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	track, err := e.findTrack(trackID)
	if err != nil {
		return tahti.Project{}, err
	}
	track.Effects = append(track.Effects, tahti.NewEffect(effectName))
	return e.commit(), nil
}

// AutomationParameterIDs enumerates the addressable parameter space in
// track order: gain and pan for every track, then each effect's params in
// sorted key order.
func (e *Engine) AutomationParameterIDs() []string {
	e.mu.Lock()
	defer e.mu.Unlock()
	ids := []string{}
	for i := range e.project.Tracks {
		track := &e.project.Tracks[i]
		ids = append(ids, TrackGainParameterID(track.ID), TrackPanParameterID(track.ID))
		for j := range track.Effects {
			effect := &track.Effects[j]
			for _, name := range effect.ParamNames() {
				ids = append(ids, fmt.Sprintf("track:%s:effect:%s:%s", track.ID, effect.ID, name))
			}
		}
	}
	return ids
}

// TrackGainParameterID is the automation address of a track's fader gain.
func TrackGainParameterID(trackID string) string {
	return fmt.Sprintf("track:%s:gain_db", trackID)
}

// TrackPanParameterID is the automation address of a track's pan.
func TrackPanParameterID(trackID string) string {
	return fmt.Sprintf("track:%s:pan", trackID)
}

// validateRoute checks a routing edge from a track to a destination bus:
// the destination must exist, be a bus track, differ from the source, and
// adding the edge must not make any bus reachable from itself.
func (e *Engine) validateRoute(fromTrackID, toBusID string) error {
	if err := e.project.ValidateRouteTarget(fromTrackID, toBusID); err != nil {
		return err
	}
	// Walk forward from the destination; reaching the source again would
	// close a cycle through output buses or sends.
	visited := map[string]bool{}
	stack := []string{toBusID}
	for len(stack) > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if id == fromTrackID {
			return tahti.NewInvalidRouting(fromTrackID, "routing to "+toBusID+" would create a cycle")
		}
		if visited[id] {
			continue
		}
		visited[id] = true
		track := e.project.Track(id)
		if track == nil {
			continue
		}
		if track.OutputBus != "" {
			stack = append(stack, track.OutputBus)
		}
		for _, send := range track.Sends {
			stack = append(stack, send.TargetBus)
		}
	}
	return nil
}
