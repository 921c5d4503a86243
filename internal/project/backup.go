package project

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/piwi3910/BuildEst/internal/model"
)

// BackupData is the top-level structure for import/export of all application
// data: configuration, the materials and template catalogs, and saved projects.
type BackupData struct {
	Version   string                 `json:"version"`
	CreatedAt string                 `json:"created_at"`
	Config    model.AppConfig        `json:"config"`
	Materials []model.MaterialRecord `json:"materials"`
	Templates model.RoomTemplates    `json:"templates"`
	Projects  model.ProjectStore     `json:"projects"`
}

// ExportAllData exports all application data to a single JSON file.
func ExportAllData(exportPath string, config model.AppConfig, materials []model.MaterialRecord, templates model.RoomTemplates, projects model.ProjectStore) error {
	backup := BackupData{
		Version:   "1.0.0",
		CreatedAt: time.Now().UTC().Format(time.RFC3339),
		Config:    config,
		Materials: materials,
		Templates: templates,
		Projects:  projects,
	}
	if err := writeJSON(exportPath, backup); err != nil {
		return fmt.Errorf("failed to write backup file: %w", err)
	}
	return nil
}

// ImportAllData reads a backup JSON file and returns the contained data.
// The caller is responsible for applying and persisting the imported stores.
func ImportAllData(importPath string) (BackupData, error) {
	data, err := os.ReadFile(importPath)
	if err != nil {
		return BackupData{}, fmt.Errorf("failed to read backup file: %w", err)
	}
	var backup BackupData
	if err := json.Unmarshal(data, &backup); err != nil {
		return BackupData{}, fmt.Errorf("failed to parse backup file: %w", err)
	}
	if backup.Version == "" {
		return BackupData{}, fmt.Errorf("invalid backup file: missing version field")
	}
	if backup.Config.RecentProjects == nil {
		backup.Config.RecentProjects = []string{}
	}
	if backup.Projects == nil {
		backup.Projects = model.NewProjectStore()
	}
	return backup, nil
}
