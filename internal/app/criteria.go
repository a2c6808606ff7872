package app

import (
	"github.com/LaunchLens/analysis_layer/internal/request"
	"github.com/LaunchLens/analysis_layer/internal/search"
)

// ideaCriteria translates a validated idea search into storage-agnostic
// criteria. Nil fields impose no constraint.
func ideaCriteria(r request.SearchIdeas) search.Criteria {
	c := search.Criteria{}
	if r.Category != nil {
		c = c.WithEqual("category", *r.Category)
	}
	if r.Locale != nil {
		c = c.WithEqual("locale", *r.Locale)
	}
	if r.OwnerID != nil {
		c = c.WithEqual("owner_id", *r.OwnerID)
	}
	if r.MinScore != nil || r.MaxScore != nil {
		c = c.WithRange("score", r.MinScore, r.MaxScore)
	}
	if r.CreatedAfter != nil || r.CreatedBefore != nil {
		c = c.WithTimeRange("created_at", r.CreatedAfter, r.CreatedBefore)
	}
	if r.TitleContains != "" {
		c = c.WithContains("title", r.TitleContains)
	}
	if r.Public != nil {
		c = c.WithFlag("public", *r.Public)
	}
	return c
}

// projectCriteria translates a validated project search into criteria.
func projectCriteria(r request.SearchProjects) search.Criteria {
	c := search.Criteria{}
	if r.Event != nil {
		c = c.WithEqual("event", *r.Event)
	}
	if r.OwnerID != nil {
		c = c.WithEqual("owner_id", *r.OwnerID)
	}
	if r.MinScore != nil || r.MaxScore != nil {
		c = c.WithRange("score", r.MinScore, r.MaxScore)
	}
	if r.MinTeamSize != nil || r.MaxTeamSize != nil {
		c = c.WithRange("team_size", r.MinTeamSize, r.MaxTeamSize)
	}
	if r.NameContains != "" {
		c = c.WithContains("name", r.NameContains)
	}
	return c
}
