package engine

import "github.com/jkataja/tahti"

// UpdateAutomationClip replaces the target parameter and/or points of an
// automation clip. A nil target leaves the parameter unchanged; points are
// sanitized (non-finite values dropped) and ordered by tick.
func (e *Engine) UpdateAutomationClip(trackID, clipID string, targetParameterID *string, points []tahti.AutomationPoint) (tahti.Project, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	clip, err := e.findClip(trackID, clipID)
	if err != nil {
		return tahti.Project{}, err
	}
	if clip.Kind != tahti.ClipAutomation || clip.Automation == nil {
		return tahti.Project{}, tahti.NewWrongPayload(clipID, "automation")
	}
	if targetParameterID != nil {
		target := *targetParameterID
		if target == "" {
			target = TrackGainParameterID(trackID)
		}
		clip.Automation.TargetParameterID = target
	}
	clip.Automation.Points = tahti.SanitizePoints(points)
	return e.commit(), nil
}
