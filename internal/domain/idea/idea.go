// Package idea defines the startup-idea aggregate.
package idea

import "time"

// UnscoredScore marks an idea that has not been through analysis yet.
const UnscoredScore = -1

// Idea is a submitted startup idea.
type Idea struct {
	ID        string    `json:"id" db:"id"`
	OwnerID   string    `json:"owner_id" db:"owner_id"`
	Title     string    `json:"title" db:"title"`
	Summary   string    `json:"summary" db:"summary"`
	Category  string    `json:"category" db:"category"`
	Locale    string    `json:"locale" db:"locale"`
	Score     float64   `json:"score" db:"score"`
	Public    bool      `json:"public" db:"public"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// Analysis is the scored verdict produced for an idea.
type Analysis struct {
	IdeaID      string    `json:"idea_id"`
	Verdict     string    `json:"verdict"`
	Strengths   []string  `json:"strengths"`
	Risks       []string  `json:"risks"`
	Score       float64   `json:"score"`
	GeneratedAt time.Time `json:"generated_at"`
}

// Categories an idea may be filed under.
var Categories = []string{"saas", "fintech", "health", "devtools", "consumer", "ai", "climate", "other"}

// ValidCategory reports whether c is a known category.
func ValidCategory(c string) bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// SortableFields are the columns a search may order by.
var SortableFields = map[string]bool{
	"created_at": true,
	"updated_at": true,
	"score":      true,
	"title":      true,
	"category":   true,
}
