// Package project defines the hackathon-project aggregate.
package project

import "time"

// UnscoredScore marks a project that has not been through analysis yet.
const UnscoredScore = -1

// Project is a submitted hackathon project.
type Project struct {
	ID        string    `json:"id" db:"id"`
	OwnerID   string    `json:"owner_id" db:"owner_id"`
	Name      string    `json:"name" db:"name"`
	Event     string    `json:"event" db:"event"`
	TeamSize  int       `json:"team_size" db:"team_size"`
	Score     float64   `json:"score" db:"score"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// Team size bounds enforced at the request boundary.
const (
	MinTeamSize = 1
	MaxTeamSize = 10
)

// SortableFields are the columns a search may order by.
var SortableFields = map[string]bool{
	"created_at": true,
	"updated_at": true,
	"score":      true,
	"name":       true,
	"team_size":  true,
}
