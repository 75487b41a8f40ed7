package entity

// ExtensionStats aggregates tab counts for diagnostics.
type ExtensionStats struct {
	Total     int `json:"total"`
	Suspended int `json:"suspended"`
	Scheduled int `json:"scheduled"`
	Skipped   int `json:"skipped"`
}

// SkippedTab describes a tab excluded from scheduling and why.
type SkippedTab struct {
	TabID  TabID  `json:"tabId"`
	Title  string `json:"title"`
	URL    string `json:"url"`
	Reason string `json:"reason"`
}
