package dto

// ReportRequest asks for the journal report of a day.
type ReportRequest struct {
	// Summary is the trader's own review; blank renders a placeholder.
	Summary string `json:"summary"`
	// Date is YYYY-MM-DD in local time; blank means today.
	Date string `json:"date"`
}

// ReportResponse is returned by the narrative and Telegram endpoints.
type ReportResponse struct {
	Report string `json:"report"`
	Sent   bool   `json:"sent,omitempty"`
}
