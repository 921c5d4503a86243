package project

import (
	"encoding/json"
	"os"

	"github.com/piwi3910/BuildEst/internal/model"
)

// SaveMaterials writes the materials catalog to a JSON file as an array of
// records, creating parent directories as needed.
func SaveMaterials(path string, materials []model.MaterialRecord) error {
	return writeJSON(path, materials)
}

// LoadMaterials reads the materials catalog from a JSON file. A missing or
// corrupt file falls back to the built-in default catalog without error;
// malformed numeric fields inside individual records coerce to zero.
func LoadMaterials(path string) []model.MaterialRecord {
	data, err := os.ReadFile(path)
	if err != nil {
		return model.DefaultMaterials()
	}
	var materials []model.MaterialRecord
	if err := json.Unmarshal(data, &materials); err != nil {
		return model.DefaultMaterials()
	}
	if len(materials) == 0 {
		return model.DefaultMaterials()
	}
	return materials
}

// LoadOrCreateMaterials loads the catalog from the default path, writing the
// built-in defaults there first if the file does not exist.
func LoadOrCreateMaterials() ([]model.MaterialRecord, string, error) {
	path := DefaultMaterialsPath()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		materials := model.DefaultMaterials()
		if saveErr := SaveMaterials(path, materials); saveErr != nil {
			return materials, path, saveErr
		}
		return materials, path, nil
	}
	return LoadMaterials(path), path, nil
}
