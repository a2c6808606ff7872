// Package storage defines the persistence boundary of the analysis core.
// Implementations translate their client-specific failures into the result
// taxonomy at this seam; nothing storage-specific leaks past it. Missing
// rows become NotFound, connectivity/timeout-class failures become
// TransientStorage, constraint violations become Validation, anything
// unrecognized becomes Unexpected.
package storage

import (
	"context"

	"github.com/LaunchLens/analysis_layer/internal/domain/idea"
	"github.com/LaunchLens/analysis_layer/internal/domain/plan"
	"github.com/LaunchLens/analysis_layer/internal/domain/project"
	"github.com/LaunchLens/analysis_layer/internal/search"
)

// IdeaStore persists idea records.
type IdeaStore interface {
	CreateIdea(ctx context.Context, it idea.Idea) (idea.Idea, error)
	GetIdea(ctx context.Context, id string) (idea.Idea, error)
	UpdateIdea(ctx context.Context, it idea.Idea) (idea.Idea, error)
	DeleteIdea(ctx context.Context, id string) error
	CountIdeas(ctx context.Context, criteria search.Criteria) (int, error)
	SelectIdeas(ctx context.Context, criteria search.Criteria, sort search.Sort, limit, offset int) ([]idea.Idea, error)
}

// ProjectStore persists hackathon project records.
type ProjectStore interface {
	CreateProject(ctx context.Context, p project.Project) (project.Project, error)
	GetProject(ctx context.Context, id string) (project.Project, error)
	UpdateProject(ctx context.Context, p project.Project) (project.Project, error)
	CountProjects(ctx context.Context, criteria search.Criteria) (int, error)
	SelectProjects(ctx context.Context, criteria search.Criteria, sort search.Sort, limit, offset int) ([]project.Project, error)
}

// PlanStore persists generated planning documents.
type PlanStore interface {
	CreatePlan(ctx context.Context, doc plan.Document) (plan.Document, error)
	GetPlan(ctx context.Context, id string) (plan.Document, error)
	DeletePlan(ctx context.Context, id string) error
	CountPlans(ctx context.Context, criteria search.Criteria) (int, error)
	SelectPlans(ctx context.Context, criteria search.Criteria, sort search.Sort, limit, offset int) ([]plan.Document, error)
}

// Store bundles all aggregate stores; concrete backends implement the lot.
type Store interface {
	IdeaStore
	ProjectStore
	PlanStore
}

// IdeaSearch adapts an IdeaStore to the search engine's read surface.
type IdeaSearch struct{ Store IdeaStore }

func (a IdeaSearch) Count(ctx context.Context, c search.Criteria) (int, error) {
	return a.Store.CountIdeas(ctx, c)
}

func (a IdeaSearch) Select(ctx context.Context, c search.Criteria, s search.Sort, limit, offset int) ([]idea.Idea, error) {
	return a.Store.SelectIdeas(ctx, c, s, limit, offset)
}

// ProjectSearch adapts a ProjectStore to the search engine's read surface.
type ProjectSearch struct{ Store ProjectStore }

func (a ProjectSearch) Count(ctx context.Context, c search.Criteria) (int, error) {
	return a.Store.CountProjects(ctx, c)
}

func (a ProjectSearch) Select(ctx context.Context, c search.Criteria, s search.Sort, limit, offset int) ([]project.Project, error) {
	return a.Store.SelectProjects(ctx, c, s, limit, offset)
}

// PlanSearch adapts a PlanStore to the search engine's read surface.
type PlanSearch struct{ Store PlanStore }

func (a PlanSearch) Count(ctx context.Context, c search.Criteria) (int, error) {
	return a.Store.CountPlans(ctx, c)
}

func (a PlanSearch) Select(ctx context.Context, c search.Criteria, s search.Sort, limit, offset int) ([]plan.Document, error) {
	return a.Store.SelectPlans(ctx, c, s, limit, offset)
}
