package model

import (
	"sort"
	"time"

	"github.com/google/uuid"
)

// ProjectSnapshot captures one saved estimation project: room counts, the
// multipliers, and a full copy of the room template catalog at save time so
// that later template edits do not retroactively change a saved project.
type ProjectSnapshot struct {
	ID                 string         `json:"id"`
	Name               string         `json:"name"`
	CreatedAt          string         `json:"created_at"`
	RoomCounts         map[string]int `json:"counts"`
	RoomTemplates      RoomTemplates  `json:"room_templates"`
	QualityMultiplier  float64        `json:"quality_multiplier"`
	LocationMultiplier float64        `json:"location_multiplier"`
}

// NewProjectSnapshot creates a snapshot with a generated ID, capturing deep
// copies of the counts and template catalog.
func NewProjectSnapshot(name string, counts map[string]int, templates RoomTemplates, qualityMult, locationMult float64) ProjectSnapshot {
	cp := make(map[string]int, len(counts))
	for room, cnt := range counts {
		cp[room] = cnt
	}
	return ProjectSnapshot{
		ID:                 uuid.New().String()[:8],
		Name:               name,
		CreatedAt:          time.Now().UTC().Format(time.RFC3339),
		RoomCounts:         cp,
		RoomTemplates:      templates.Clone(),
		QualityMultiplier:  qualityMult,
		LocationMultiplier: locationMult,
	}
}

// ProjectStore holds saved projects keyed by project name. Saving under an
// existing name overwrites the previous snapshot.
type ProjectStore map[string]ProjectSnapshot

// NewProjectStore creates an empty project store.
func NewProjectStore() ProjectStore {
	return ProjectStore{}
}

// Save stores a snapshot under its name, replacing any previous one.
func (ps ProjectStore) Save(snap ProjectSnapshot) {
	ps[snap.Name] = snap
}

// Delete removes a project by name. Returns true if found and removed.
func (ps ProjectStore) Delete(name string) bool {
	if _, ok := ps[name]; !ok {
		return false
	}
	delete(ps, name)
	return true
}

// Get returns the snapshot with the given name, if present.
func (ps ProjectStore) Get(name string) (ProjectSnapshot, bool) {
	snap, ok := ps[name]
	return snap, ok
}

// Names returns the saved project names in sorted order.
func (ps ProjectStore) Names() []string {
	names := make([]string, 0, len(ps))
	for name := range ps {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
