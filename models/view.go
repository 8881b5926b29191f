package models

import "time"

// Confidence records how a normalized value was obtained.
type Confidence string

const (
	ConfidenceExact    Confidence = "exact"    // read directly from the payload
	ConfidenceInferred Confidence = "inferred" // recovered heuristically
	ConfidenceFallback Confidence = "fallback" // substituted by policy
)

// MetricCard is one dashboard stat card. ChangePercent and RelativePercent are
// preformatted strings ("+4.2%", "61.3") or nil when not applicable.
type MetricCard struct {
	Label           string     `json:"label" yaml:"label"`
	Value           float64    `json:"value" yaml:"value"`
	ChangePercent   *string    `json:"change_percent,omitempty" yaml:"change_percent,omitempty"`
	RelativePercent *string    `json:"relative_percent,omitempty" yaml:"relative_percent,omitempty"`
	Confidence      Confidence `json:"confidence" yaml:"confidence"`
}

// ContentRecord is a normalized generated-content or template row. CreatedAt
// is nil when no instant could be recovered from the source row.
type ContentRecord struct {
	ID           string     `json:"id" yaml:"id"`
	Title        string     `json:"title" yaml:"title"`
	Type         string     `json:"type" yaml:"type"` // taxonomy member
	CreatedAtRaw string     `json:"created_at_raw,omitempty" yaml:"created_at_raw,omitempty"`
	CreatedAt    *time.Time `json:"created_at,omitempty" yaml:"created_at,omitempty"`
	Uses         int        `json:"uses" yaml:"uses"`
	Language     string     `json:"language,omitempty" yaml:"language,omitempty"` // ISO-639-1 guess
}

// UserRecord is a deduplicated user derived from activity rows. Key is the
// userId when present, else the email. CreatedAt is the earliest instant seen
// for the key.
type UserRecord struct {
	Key       string    `json:"key" yaml:"key"`
	Name      string    `json:"name" yaml:"name"`
	Email     string    `json:"email,omitempty" yaml:"email,omitempty"`
	CreatedAt time.Time `json:"created_at" yaml:"created_at"`
}

// ActivityStat is one action's share of the activity log.
type ActivityStat struct {
	Action  string `json:"action" yaml:"action"`
	Count   int    `json:"count" yaml:"count"`
	Percent string `json:"percent" yaml:"percent"` // one decimal, e.g. "33.3"
}

// ActiveUser ranks a user by total actions.
type ActiveUser struct {
	Name    string `json:"name" yaml:"name"`
	Actions int    `json:"actions" yaml:"actions"`
}

// ViewModel is the fully populated dashboard state produced by one refresh
// cycle. Compose always returns every field populated; degraded slots carry
// ConfidenceFallback in Slots.
type ViewModel struct {
	GeneratedAt time.Time `json:"generated_at" yaml:"generated_at"`

	Cards []MetricCard `json:"cards" yaml:"cards"`

	MostUsedTemplates       []ContentRecord `json:"most_used_templates" yaml:"most_used_templates"`
	RecentTemplates         []ContentRecord `json:"recent_templates" yaml:"recent_templates"`
	RecentGeneratedContent  []ContentRecord `json:"recent_generated_content" yaml:"recent_generated_content"`
	MostUsedGeneratedContent []ContentRecord `json:"most_used_generated_content" yaml:"most_used_generated_content"`

	Users           []UserRecord   `json:"users" yaml:"users"`
	ActivitySummary []ActivityStat `json:"activity_summary" yaml:"activity_summary"`
	MostActiveUsers []ActiveUser   `json:"most_active_users" yaml:"most_active_users"`

	// Slots maps slot name to the confidence of the value that filled it.
	Slots map[string]Confidence `json:"slots" yaml:"slots"`
}

// Card returns the card with the given label, or nil.
func (vm *ViewModel) Card(label string) *MetricCard {
	for i := range vm.Cards {
		if vm.Cards[i].Label == label {
			return &vm.Cards[i]
		}
	}
	return nil
}
