package api

import (
	"encoding/json"
	"time"

	"github.com/dmitrijs2005/conciencia/internal/models"
	"github.com/dmitrijs2005/conciencia/internal/timeline"
)

type PingRequest struct{}

type PingResponse struct {
	Status string `json:"status"`
}

type RegisterRequest struct {
	Login    string `json:"login"`
	Password string `json:"password"`
}

type RegisterResponse struct {
	UserID string `json:"user_id"`
}

type LoginRequest struct {
	Login    string `json:"login"`
	Password string `json:"password"`
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// TokenResponse answers Login and RefreshToken.
type TokenResponse struct {
	UserID       string `json:"user_id"`
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

type CreateEntryRequest struct {
	Entry models.Entry `json:"registro"`
}

type GetEntryRequest struct {
	ID string `json:"id"`
}

type EntryResponse struct {
	Entry *models.Entry `json:"registro"`
}

// ListEntriesRequest lists completed entries.
type ListEntriesRequest struct{}

type ListIntentionsRequest struct {
	// Sort is "chronological" (default) or "priority".
	Sort string `json:"sort,omitempty"`
}

type EntriesResponse struct {
	Entries []*models.Entry `json:"registros"`
}

type UpdateEntryStateRequest struct {
	ID    string       `json:"id"`
	State models.State `json:"estado"`
}

type AddNoteRequest struct {
	Note models.Note `json:"nota"`
}

type NoteResponse struct {
	Note *models.Note `json:"nota"`
}

type ListNotesRequest struct {
	EntryID string `json:"registro_id"`
}

type NotesResponse struct {
	Notes []*models.Note `json:"notas"`
}

type NoteExistsRequest struct {
	EntryID string        `json:"registro_id"`
	Text    string        `json:"texto"`
	Author  models.Author `json:"autor"`
}

type NoteExistsResponse struct {
	Exists bool `json:"exists"`
}

type DailyTimelineRequest struct {
	// Date is YYYY-MM-DD in the server's timezone.
	Date string `json:"date"`
}

type DailyTimelineResponse struct {
	Date              string             `json:"date"`
	Segments          []timeline.Segment `json:"segments"`
	TotalEmptyMinutes int                `json:"total_empty_minutes"`
}

type AnnotateEmptyPeriodRequest struct {
	Period models.EmptyPeriod `json:"periodo"`
}

type EmptyPeriodResponse struct {
	Period *models.EmptyPeriod `json:"periodo"`
}

type ListEmptyPeriodsRequest struct {
	From string `json:"from,omitempty"`
	To   string `json:"to,omitempty"`
}

type EmptyPeriodsResponse struct {
	Periods []*models.EmptyPeriod `json:"periodos"`
}

type AnalyzePatternsRequest struct{}

type InsightsResponse struct {
	Insights []models.Insight `json:"insights"`
}

// ExportRequest serves both Export and ExportToStorage.
type ExportRequest struct {
	From                string `json:"from,omitempty"`
	To                  string `json:"to,omitempty"`
	IncludeEmptyPeriods bool   `json:"include_empty_periods,omitempty"`
}

type ExportResponse struct {
	Document json.RawMessage `json:"document"`
}

type ExportLinkResponse struct {
	Key       string    `json:"key"`
	URL       string    `json:"url"`
	ExpiresAt time.Time `json:"expires_at"`
}
