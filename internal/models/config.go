package models

// AIConfig selects between a user-supplied insight endpoint and the default
// provider. Persisted locally, independent of the session lifecycle.
type AIConfig struct {
	UseCustom bool   `json:"useCustom"`
	Endpoint  string `json:"endpoint"`
	APIKey    string `json:"apiKey"`
	Model     string `json:"model,omitempty"`
}
