package engine

import (
	"github.com/jkataja/tahti"
	"github.com/jkataja/tahti/persistence"
)

// SaveProject writes the current project to path. The snapshot is taken
// under the lock but the disk write happens outside it, so editing is
// never blocked on I/O.
func (e *Engine) SaveProject(path string) error {
	snapshot := e.Project()
	return persistence.Save(&snapshot, path)
}

// LoadProject reads a project from path and makes it the current one.
func (e *Engine) LoadProject(path string) (tahti.Project, error) {
	project, err := persistence.Load(path)
	if err != nil {
		return tahti.Project{}, err
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	e.project = project
	return e.project.Copy(), nil
}

// Autosave writes a snapshot of the current project into dir and
// returns the snapshot path.
func (e *Engine) Autosave(dir string) (string, error) {
	snapshot := e.Project()
	return persistence.Autosave(&snapshot, dir)
}
