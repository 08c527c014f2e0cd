package models

import (
	"encoding/json"
	"time"
)

// Slide holds an opaque JSON document. The content is never interpreted here.
type Slide struct {
	ID             string          `json:"id" db:"id"`
	PresentationID string          `json:"presentation_id" db:"presentation_id"`
	Content        json.RawMessage `json:"content" db:"content"`
	SlideOrder     int             `json:"slide_order" db:"slide_order"`
	CreatedBy      string          `json:"created_by" db:"created_by"`
	CreatedAt      time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at" db:"updated_at"`
}

// PrettyContent renders the slide content as indented JSON.
// Content that fails to indent is returned verbatim.
func (s *Slide) PrettyContent() string {
	if len(s.Content) == 0 {
		return "null"
	}
	buf, err := json.MarshalIndent(json.RawMessage(s.Content), "", "  ")
	if err != nil {
		return string(s.Content)
	}
	return string(buf)
}
