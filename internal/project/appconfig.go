package project

import (
	"encoding/json"
	"os"

	"github.com/piwi3910/BuildEst/internal/model"
)

// SaveAppConfig persists an AppConfig to the given path as JSON.
func SaveAppConfig(path string, config model.AppConfig) error {
	return writeJSON(path, config)
}

// LoadAppConfig reads an AppConfig from the given path. If the file does not
// exist or cannot be parsed, it returns DefaultAppConfig with no error.
func LoadAppConfig(path string) model.AppConfig {
	data, err := os.ReadFile(path)
	if err != nil {
		return model.DefaultAppConfig()
	}
	var config model.AppConfig
	if err := json.Unmarshal(data, &config); err != nil {
		return model.DefaultAppConfig()
	}
	// Ensure RecentProjects is never nil
	if config.RecentProjects == nil {
		config.RecentProjects = []string{}
	}
	if config.DefaultRoomCounts == nil {
		config.DefaultRoomCounts = map[string]int{}
	}
	return config
}
