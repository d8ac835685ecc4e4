package models

// Client is a billable organization with an hourly rate and an ISO 4217
// currency code.
type Client struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	HourlyRate float64 `json:"hourlyRate"`
	Currency   string  `json:"currency"`
}

// ClientDraft optionally carries login credentials: the backend provisions
// a client-role account when email and password are set.
type ClientDraft struct {
	Name       string
	HourlyRate float64
	Currency   string
	Email      string
	Password   string
}

type ClientPatch struct {
	Name       *string
	HourlyRate *float64
	Currency   *string
}
