package project

import (
	"encoding/json"
	"os"

	"github.com/piwi3910/BuildEst/internal/model"
)

// SaveProjects writes the project store to a JSON file as an object keyed by
// project name.
func SaveProjects(path string, store model.ProjectStore) error {
	return writeJSON(path, store)
}

// LoadProjects reads the project store from a JSON file. A missing or corrupt
// file falls back to an empty store without error.
func LoadProjects(path string) model.ProjectStore {
	data, err := os.ReadFile(path)
	if err != nil {
		return model.NewProjectStore()
	}
	var store model.ProjectStore
	if err := json.Unmarshal(data, &store); err != nil {
		return model.NewProjectStore()
	}
	if store == nil {
		store = model.NewProjectStore()
	}
	return store
}

// LoadDefaultProjects loads the project store from the default path.
func LoadDefaultProjects() model.ProjectStore {
	return LoadProjects(DefaultProjectsPath())
}

// SaveDefaultProjects saves the project store to the default path.
func SaveDefaultProjects(store model.ProjectStore) error {
	return SaveProjects(DefaultProjectsPath(), store)
}
