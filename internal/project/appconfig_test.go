package project

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/piwi3910/BuildEst/internal/model"
)

func TestSaveLoadAppConfigRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	cfg := model.DefaultAppConfig()
	cfg.DefaultQualityMultiplier = 1.25
	cfg.DefaultInflationPct = 15
	cfg.AddRecentProject("dream-house")

	if err := SaveAppConfig(path, cfg); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	got := LoadAppConfig(path)
	if got.DefaultQualityMultiplier != 1.25 {
		t.Errorf("quality multiplier not preserved: %v", got.DefaultQualityMultiplier)
	}
	if got.DefaultInflationPct != 15 {
		t.Errorf("inflation pct not preserved: %v", got.DefaultInflationPct)
	}
	if len(got.RecentProjects) != 1 || got.RecentProjects[0] != "dream-house" {
		t.Errorf("recent projects not preserved: %v", got.RecentProjects)
	}
}

func TestLoadAppConfigMissingFileFallsBack(t *testing.T) {
	got := LoadAppConfig(filepath.Join(t.TempDir(), "nope.json"))
	def := model.DefaultAppConfig()
	if got.DefaultMonthlyIncome != def.DefaultMonthlyIncome {
		t.Error("missing file should yield the default config")
	}
	if got.RecentProjects == nil {
		t.Error("recent projects must not be nil")
	}
}

func TestLoadAppConfigCorruptFileFallsBack(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte("???"), 0o644); err != nil {
		t.Fatal(err)
	}
	got := LoadAppConfig(path)
	if got.DefaultSavePercent != model.DefaultAppConfig().DefaultSavePercent {
		t.Error("corrupt file should yield the default config")
	}
}

func TestLoadAppConfigRepairsNilRecentList(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte("{}"), 0o644); err != nil {
		t.Fatal(err)
	}
	got := LoadAppConfig(path)
	if got.RecentProjects == nil {
		t.Error("recent projects should be repaired to an empty slice")
	}
	if got.DefaultRoomCounts == nil {
		t.Error("default room counts should be repaired to an empty map")
	}
}
