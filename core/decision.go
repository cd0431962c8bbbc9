package core

// Category labels recognised by the classification prompt. Store-worthy and
// skip-worthy labels come from the prompt taxonomy; the filter_* labels are
// synthesised locally and never produced by a backend.
const (
	CategoryEnvQuirk          = "env-quirk"
	CategoryUserPref          = "user-pref"
	CategoryExternalAPI       = "external-api"
	CategoryHistoricalContext = "historical-context"
	CategoryCrossProject      = "cross-project"
	CategoryWorkaround        = "workaround"

	CategoryBugInCode    = "bug-in-code"
	CategoryConfigInRepo = "config-in-repo"
	CategoryDocsAdded    = "docs-added"
	CategoryFirstSuccess = "first-success"

	CategoryFilterDisabled = "filter_disabled"
	CategoryFilterError    = "filter_error"
)

// Decision is the structured verdict returned for one observed event. It is
// consumed by the export/storage collaborator and never persisted here.
type Decision struct {
	ShouldStore bool    `json:"should_store"`
	Category    string  `json:"category"`
	Reason      string  `json:"reason,omitempty"`
	Confidence  float64 `json:"confidence,omitempty"`
	SessionID   string  `json:"session_id,omitempty"`
}
