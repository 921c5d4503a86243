package project

import (
	"encoding/json"
	"os"

	"github.com/piwi3910/BuildEst/internal/model"
)

// SaveTemplates writes the room template catalog to a JSON file.
func SaveTemplates(path string, templates model.RoomTemplates) error {
	return writeJSON(path, templates)
}

// LoadTemplates reads the room template catalog from a JSON file. A missing
// or corrupt file falls back to the built-in room types without error.
func LoadTemplates(path string) model.RoomTemplates {
	data, err := os.ReadFile(path)
	if err != nil {
		return model.DefaultRoomTemplates()
	}
	var templates model.RoomTemplates
	if err := json.Unmarshal(data, &templates); err != nil {
		return model.DefaultRoomTemplates()
	}
	if len(templates) == 0 {
		return model.DefaultRoomTemplates()
	}
	for name, tpl := range templates {
		if tpl.Fixtures == nil {
			tpl.Fixtures = map[string]float64{}
			templates[name] = tpl
		}
	}
	return templates
}

// LoadDefaultTemplates loads the template catalog from the default path.
func LoadDefaultTemplates() model.RoomTemplates {
	return LoadTemplates(DefaultTemplatesPath())
}

// SaveDefaultTemplates saves the template catalog to the default path.
func SaveDefaultTemplates(templates model.RoomTemplates) error {
	return SaveTemplates(DefaultTemplatesPath(), templates)
}
