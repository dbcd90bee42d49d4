package models

// Suggestion is the weekly focus a mentor points the user at.
type Suggestion struct {
	EntryID string  `json:"registro_id"`
	Message *string `json:"mensaje_opcional,omitempty"`
}
