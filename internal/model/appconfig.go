package model

// AppConfig holds application-wide preferences and the default inputs applied
// to a new estimation run.
type AppConfig struct {
	// Default projection inputs
	DefaultRoomCounts         map[string]int `json:"default_room_counts"`
	DefaultQualityMultiplier  float64        `json:"default_quality_multiplier"`
	DefaultLocationMultiplier float64        `json:"default_location_multiplier"`
	DefaultMarginPct          float64        `json:"default_margin_pct"`      // fraction, e.g. 0.10
	DefaultFeePct             float64        `json:"default_fee_pct"`         // fraction
	DefaultContingencyPct     float64        `json:"default_contingency_pct"` // fraction

	// Default funding inputs
	DefaultUpfrontCash   float64 `json:"default_upfront_cash"`
	DefaultMonthlyIncome float64 `json:"default_monthly_income"`
	DefaultSavePercent   float64 `json:"default_save_percent"`  // percent of income saved
	DefaultInflationPct  float64 `json:"default_inflation_pct"` // annual, percent

	// Application preferences
	RecentProjects []string `json:"recent_projects"`
}

// DefaultAppConfig returns an AppConfig populated with sensible defaults.
func DefaultAppConfig() AppConfig {
	return AppConfig{
		DefaultRoomCounts:         map[string]int{"Standard Bedroom": 1},
		DefaultQualityMultiplier:  1.0,
		DefaultLocationMultiplier: 1.0,
		DefaultMarginPct:          0.10,
		DefaultFeePct:             0.06,
		DefaultContingencyPct:     0.10,
		DefaultUpfrontCash:        0,
		DefaultMonthlyIncome:      5000,
		DefaultSavePercent:        30,
		DefaultInflationPct:       10,
		RecentProjects:            []string{},
	}
}

// AddRecentProject prepends a project name to the recent list, deduplicating
// and keeping at most ten entries.
func (c *AppConfig) AddRecentProject(name string) {
	recent := []string{name}
	for _, existing := range c.RecentProjects {
		if existing != name {
			recent = append(recent, existing)
		}
	}
	if len(recent) > 10 {
		recent = recent[:10]
	}
	c.RecentProjects = recent
}
