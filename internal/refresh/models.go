package refresh

import "statboard/models"

// Output is the final document printed to stdout and written to the results
// directory after a refresh cycle.
type Output struct {
	Status          string            `json:"status" yaml:"status"` // success, partial_fallback, auth_failure
	CycleID         int64             `json:"cycle_id,omitempty" yaml:"cycle_id,omitempty"`
	FallbackSlots   []string          `json:"fallback_slots,omitempty" yaml:"fallback_slots,omitempty"`
	FailedEndpoints []string          `json:"failed_endpoints,omitempty" yaml:"failed_endpoints,omitempty"`
	View            *models.ViewModel `json:"view" yaml:"view"`
	Stats           Stats             `json:"stats" yaml:"stats"`
}

// Stats summarizes one cycle for the trailing block of the output document.
type Stats struct {
	Endpoints        int     `json:"endpoints" yaml:"endpoints"`
	Decoded          int     `json:"decoded" yaml:"decoded"`
	Fallbacks        int     `json:"fallbacks" yaml:"fallbacks"`
	TotalTimeSeconds float64 `json:"total_time_seconds" yaml:"total_time_seconds"`
}
