package reconciler

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	"github.com/dmitrijs2005/conciencia/internal/models"
)

// ErrInvalidDocument is returned when the document is neither a list of
// entries nor an object.
var ErrInvalidDocument = errors.New("invalid import document: expected an array or an object with key \"registros\"")

// Shape tells which of the two accepted document layouts was read.
type Shape int

const (
	// ShapeLegacyList is a bare array of entries.
	ShapeLegacyList Shape = iota + 1
	// ShapeDocument is an object with optional registros, anotaciones_vacio
	// and sugerencia_enfoque_semanal keys.
	ShapeDocument
)

func (s Shape) String() string {
	switch s {
	case ShapeLegacyList:
		return "legacy-list"
	case ShapeDocument:
		return "document"
	}
	return "unknown"
}

// ImportedNote is a note as it appears inside an imported entry.
type ImportedNote struct {
	Text      string          `json:"texto"`
	Author    models.Author   `json:"autor"`
	Privacy   models.Privacy  `json:"privacidad"`
	CreatedAt *time.Time      `json:"timestamp_creacion"`
	Kind      models.NoteKind `json:"tipo_nota"`
}

// ImportedEntry is an entry as it appears in an export or a mentor file.
type ImportedEntry struct {
	models.Entry
	Notes []ImportedNote `json:"notas"`
	// IChing is carried through exports untouched and ignored on import.
	IChing json.RawMessage `json:"iching_consulta,omitempty"`
}

// Rejection records an element that failed the validating parse. A key
// whose value is not an array is rejected as a whole with Index -1.
type Rejection struct {
	Key    string
	Index  int
	Reason string
}

// Payload is the validated form of an import document.
type Payload struct {
	Shape        Shape
	Entries      []ImportedEntry
	Rejected     []Rejection
	EmptyPeriods []models.EmptyPeriod
	Suggestion   *models.Suggestion
}

const (
	keyEntries      = "registros"
	keyEmptyPeriods = "anotaciones_vacio"
)

type document struct {
	Entries      json.RawMessage `json:"registros"`
	EmptyPeriods json.RawMessage `json:"anotaciones_vacio"`
	Suggestion   json.RawMessage `json:"sugerencia_enfoque_semanal"`
}

// Parse decodes an import document. Only a document that is not JSON, or is
// JSON of the wrong top-level kind, fails as a whole; malformed elements are
// reported in Payload.Rejected.
func Parse(data []byte) (*Payload, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, ErrInvalidDocument
	}

	switch trimmed[0] {
	case '[':
		var raw []json.RawMessage
		if err := sonic.Unmarshal(trimmed, &raw); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
		}
		p := &Payload{Shape: ShapeLegacyList}
		p.addEntries(keyEntries, raw)
		return p, nil

	case '{':
		var doc document
		if err := sonic.Unmarshal(trimmed, &doc); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
		}
		p := &Payload{Shape: ShapeDocument}
		if raw, ok := p.array(keyEntries, doc.Entries); ok {
			p.addEntries(keyEntries, raw)
		}
		if raw, ok := p.array(keyEmptyPeriods, doc.EmptyPeriods); ok {
			p.addEmptyPeriods(raw)
		}
		p.Suggestion = parseSuggestion(doc.Suggestion)
		return p, nil
	}

	return nil, ErrInvalidDocument
}

// array splits the value of an optional document key into its elements. An
// absent or null key yields nothing; any other non-array value is recorded
// as a rejection of the key.
func (p *Payload) array(key string, raw json.RawMessage) ([]json.RawMessage, bool) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil, false
	}
	if trimmed[0] != '[' {
		p.Rejected = append(p.Rejected, Rejection{Key: key, Index: -1, Reason: "not an array"})
		return nil, false
	}
	var out []json.RawMessage
	if err := sonic.Unmarshal(trimmed, &out); err != nil {
		p.Rejected = append(p.Rejected, Rejection{Key: key, Index: -1, Reason: err.Error()})
		return nil, false
	}
	return out, true
}

func (p *Payload) addEntries(key string, raw []json.RawMessage) {
	for i, r := range raw {
		var e ImportedEntry
		if err := sonic.Unmarshal(r, &e); err != nil {
			p.Rejected = append(p.Rejected, Rejection{Key: key, Index: i, Reason: err.Error()})
			continue
		}
		if reason := missingField(&e); reason != "" {
			p.Rejected = append(p.Rejected, Rejection{Key: key, Index: i, Reason: reason})
			continue
		}
		p.Entries = append(p.Entries, e)
	}
}

func (p *Payload) addEmptyPeriods(raw []json.RawMessage) {
	for _, r := range raw {
		var ep models.EmptyPeriod
		if err := sonic.Unmarshal(r, &ep); err != nil {
			continue
		}
		p.EmptyPeriods = append(p.EmptyPeriods, ep)
	}
}

func parseSuggestion(raw json.RawMessage) *models.Suggestion {
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil
	}
	var s models.Suggestion
	if err := sonic.Unmarshal(raw, &s); err != nil {
		return &models.Suggestion{}
	}
	return &s
}

func missingField(e *ImportedEntry) string {
	switch {
	case strings.TrimSpace(e.ID) == "":
		return "missing id"
	case strings.TrimSpace(e.Description) == "":
		return "missing descripcion"
	case e.State == "":
		return "missing estado"
	case !e.State.Valid():
		return fmt.Sprintf("unknown estado %q", e.State)
	}
	return ""
}
