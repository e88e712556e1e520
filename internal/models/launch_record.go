package models

// Outcome class values.
const (
	ClassFailure = 0
	ClassSuccess = 1
)

// LaunchRecord is one historical launch. Records are immutable once loaded.
type LaunchRecord struct {
	Site                   string  `json:"site"`
	PayloadMassKg          float64 `json:"payload_mass_kg"`
	Class                  int     `json:"class"`
	BoosterVersionCategory string  `json:"booster_version_category"`
}

// IsSuccess returns true if the launch outcome class is success.
func (r LaunchRecord) IsSuccess() bool {
	return r.Class == ClassSuccess
}
