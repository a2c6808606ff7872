// Package plans implements the business rules for generated planning
// documents.
package plans

import (
	"context"

	"github.com/LaunchLens/analysis_layer/internal/app/services"
	"github.com/LaunchLens/analysis_layer/internal/domain/plan"
	"github.com/LaunchLens/analysis_layer/internal/result"
	"github.com/LaunchLens/analysis_layer/internal/search"
	"github.com/LaunchLens/analysis_layer/internal/storage"
	"github.com/LaunchLens/analysis_layer/pkg/logger"
)

// Service owns plan generation, listing, and deletion.
type Service struct {
	store   storage.PlanStore
	ideas   storage.IdeaStore
	engine  *search.Engine[plan.Document]
	planner services.Planner
	log     *logger.Logger
}

// New creates the service. Plan listings are newest-first.
func New(store storage.PlanStore, ideas storage.IdeaStore, planner services.Planner, log *logger.Logger) *Service {
	return &Service{
		store:   store,
		ideas:   ideas,
		engine:  search.NewEngine[plan.Document](storage.PlanSearch{Store: store}, search.Sort{}),
		planner: planner,
		log:     log,
	}
}

// Generate produces a planning document for an existing idea and persists it.
// The document inherits the idea's owner regardless of what the planner
// returns.
func (s *Service) Generate(ctx context.Context, ideaID, ownerID, kind string) (plan.Document, error) {
	it, err := s.ideas.GetIdea(ctx, ideaID)
	if err != nil {
		return plan.Document{}, err
	}
	if ownerID != "" && it.OwnerID != ownerID {
		return plan.Document{}, result.NotFound("idea not found: " + ideaID)
	}

	doc, err := s.planner.GeneratePlan(ctx, it, kind)
	if err != nil {
		return plan.Document{}, services.DelegateError(ctx, err, "plan generation")
	}

	doc.IdeaID = it.ID
	doc.OwnerID = it.OwnerID
	doc.Kind = kind
	created, err := s.store.CreatePlan(ctx, doc)
	if err != nil {
		return plan.Document{}, err
	}
	s.log.WithField("plan_id", created.ID).WithField("idea_id", ideaID).Info("plan generated")
	return created, nil
}

// Delete removes a planning document. An ownership mismatch reads the same
// as a missing row.
func (s *Service) Delete(ctx context.Context, id, ownerID string) error {
	doc, err := s.store.GetPlan(ctx, id)
	if err != nil {
		return err
	}
	if ownerID != "" && doc.OwnerID != ownerID {
		return result.NotFound("plan not found: " + id)
	}
	return s.store.DeletePlan(ctx, id)
}

// List returns the documents generated for one idea, newest first.
func (s *Service) List(ctx context.Context, ideaID string, page search.Page) result.Result[search.Paginated[plan.Document]] {
	criteria := search.Criteria{}.WithEqual("idea_id", ideaID)
	return s.engine.Search(ctx, criteria, search.Sort{}, page)
}
