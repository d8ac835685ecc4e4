package models

// Project groups tasks under one client. Deadline is a calendar date
// (YYYY-MM-DD) and EstimatedDuration is in milliseconds; both are optional.
type Project struct {
	ID                string `json:"id"`
	Name              string `json:"name"`
	Color             string `json:"color"`
	ClientID          string `json:"clientId"`
	Deadline          string `json:"deadline,omitempty"`
	EstimatedDuration int64  `json:"estimatedDuration,omitempty"`
}

type ProjectDraft struct {
	Name              string
	Color             string
	ClientID          string
	Deadline          string
	EstimatedDuration int64
}

type ProjectPatch struct {
	Name              *string
	Color             *string
	ClientID          *string
	Deadline          *string
	EstimatedDuration *int64
}
