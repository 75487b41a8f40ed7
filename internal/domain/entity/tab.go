package entity

// TabID uniquely identifies a browser tab.
type TabID int

// TabIDNone is the sentinel for "no tab".
const TabIDNone TabID = -1

// Valid reports whether the id refers to a real tab.
func (id TabID) Valid() bool {
	return id > 0
}

// TabStatus mirrors the host's tab loading status values.
type TabStatus string

const (
	TabStatusLoading  TabStatus = "loading"
	TabStatusComplete TabStatus = "complete"
)

// Tab is a descriptor of a browser tab as reported by the host.
type Tab struct {
	ID        TabID     `json:"id"`
	WindowID  WindowID  `json:"windowId"`
	URL       string    `json:"url"`
	Title     string    `json:"title"`
	Active    bool      `json:"active"`
	Pinned    bool      `json:"pinned"`
	Audible   bool      `json:"audible"`
	Status    TabStatus `json:"status"`
	Suspended bool      `json:"suspended"` // true when showing the placeholder page
}

// TabChange describes the delta reported by a tab update event.
// Nil fields were not part of the change.
type TabChange struct {
	URL     *string    `json:"url,omitempty"`
	Audible *bool      `json:"audible,omitempty"`
	Pinned  *bool      `json:"pinned,omitempty"`
	Status  *TabStatus `json:"status,omitempty"`
}

// Significant reports whether the change should trigger rescheduling.
// Only URL, audio, pinned, or a completed load matter; everything else
// is noise that would cause rescheduling storms.
func (c TabChange) Significant() bool {
	if c.URL != nil || c.Audible != nil || c.Pinned != nil {
		return true
	}
	return c.Status != nil && *c.Status == TabStatusComplete
}
