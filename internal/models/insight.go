package models

// InsightType classifies a generated insight.
type InsightType string

const (
	InsightPattern InsightType = "pattern"
	InsightVoid    InsightType = "void"
)

// Insight is a generated observation about recent activity. It is never
// stored.
type Insight struct {
	ID             string      `json:"id"`
	Type           InsightType `json:"type"`
	Message        string      `json:"message"`
	RelatedEntryID string      `json:"related_registro_id,omitempty"`
}
