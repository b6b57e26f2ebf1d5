// Package persistence reads and writes project documents. Two formats
// are supported, chosen by file extension: JSON (.json) and YAML (.yml,
// .yaml). Saves go through a temp file in the target directory followed
// by a rename, so a crash mid-write never leaves a truncated project on
// disk.
package persistence

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/jkataja/tahti"
)

// Encode serializes the project in the format implied by path.
func Encode(project *tahti.Project, path string) ([]byte, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		b, err := json.MarshalIndent(project, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("serializing project: %w", err)
		}
		return append(b, '\n'), nil
	case ".yml", ".yaml":
		b, err := yaml.Marshal(project)
		if err != nil {
			return nil, fmt.Errorf("serializing project: %w", err)
		}
		return b, nil
	default:
		return nil, tahti.NewInvalidArgument(fmt.Sprintf("unknown project format %q", filepath.Ext(path)))
	}
}

// Decode parses project bytes in the format implied by path.
func Decode(data []byte, path string) (tahti.Project, error) {
	var project tahti.Project
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		if err := json.Unmarshal(data, &project); err != nil {
			return tahti.Project{}, fmt.Errorf("parsing project: %w", err)
		}
	case ".yml", ".yaml":
		if err := yaml.Unmarshal(data, &project); err != nil {
			return tahti.Project{}, fmt.Errorf("parsing project: %w", err)
		}
	default:
		return tahti.Project{}, tahti.NewInvalidArgument(fmt.Sprintf("unknown project format %q", filepath.Ext(path)))
	}
	return project, nil
}

// Save writes the project to path atomically.
func Save(project *tahti.Project, path string) error {
	data, err := Encode(project, path)
	if err != nil {
		return err
	}
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".tmp*")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("writing project: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("replacing project file: %w", err)
	}
	return nil
}

// Load reads and validates a project from path.
func Load(path string) (tahti.Project, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return tahti.Project{}, fmt.Errorf("reading project: %w", err)
	}
	project, err := Decode(data, path)
	if err != nil {
		return tahti.Project{}, err
	}
	if err := project.Validate(); err != nil {
		return tahti.Project{}, fmt.Errorf("loaded project is invalid: %w", err)
	}
	return project, nil
}

// AutosavePath returns where periodic snapshots of the project go,
// inside dir. The project id keeps snapshots of different projects in
// the same directory from clobbering each other.
func AutosavePath(project *tahti.Project, dir string) string {
	return filepath.Join(dir, project.ID+".autosave.tahti.json")
}

// Autosave writes a JSON snapshot to the autosave path for dir and
// returns that path.
func Autosave(project *tahti.Project, dir string) (string, error) {
	path := AutosavePath(project, dir)
	if err := Save(project, path); err != nil {
		return "", err
	}
	return path, nil
}
