package models

// PackingReminderPayload is the task payload for a pre-departure packing
// reminder, enqueued when a trip's start date is set.
type PackingReminderPayload struct {
	UserID      string `json:"userId"`
	SessionID   string `json:"sessionId"`
	Destination string `json:"destination"`
	StartDate   string `json:"startDate"`
	Title       string `json:"title"`
	Body        string `json:"body"`
}
