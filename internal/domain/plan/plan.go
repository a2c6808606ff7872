// Package plan defines AI-generated planning documents attached to ideas.
package plan

import "time"

// Document kinds.
const (
	KindPRD     = "prd"
	KindRoadmap = "roadmap"
	KindPitch   = "pitch"
)

// Kinds lists the supported document kinds.
var Kinds = []string{KindPRD, KindRoadmap, KindPitch}

// ValidKind reports whether k is a supported document kind.
func ValidKind(k string) bool {
	return k == KindPRD || k == KindRoadmap || k == KindPitch
}

// Document is a generated planning document.
type Document struct {
	ID        string    `json:"id" db:"id"`
	IdeaID    string    `json:"idea_id" db:"idea_id"`
	OwnerID   string    `json:"owner_id" db:"owner_id"`
	Kind      string    `json:"kind" db:"kind"`
	Title     string    `json:"title" db:"title"`
	Content   string    `json:"content" db:"content"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
