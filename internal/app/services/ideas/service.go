// Package ideas implements the business rules for startup-idea submissions.
package ideas

import (
	"context"

	"github.com/LaunchLens/analysis_layer/internal/app/services"
	"github.com/LaunchLens/analysis_layer/internal/domain/idea"
	"github.com/LaunchLens/analysis_layer/internal/result"
	"github.com/LaunchLens/analysis_layer/internal/search"
	"github.com/LaunchLens/analysis_layer/internal/storage"
	"github.com/LaunchLens/analysis_layer/pkg/logger"
)

// Service owns idea lifecycle and search.
type Service struct {
	store    storage.IdeaStore
	engine   *search.Engine[idea.Idea]
	analyzer services.Analyzer
	log      *logger.Logger
}

// New creates the service. The search engine defaults to newest-first.
func New(store storage.IdeaStore, analyzer services.Analyzer, log *logger.Logger) *Service {
	return &Service{
		store:    store,
		engine:   search.NewEngine[idea.Idea](storage.IdeaSearch{Store: store}, search.Sort{}),
		analyzer: analyzer,
		log:      log,
	}
}

// Submit records a new idea. Ideas always enter unscored; scoring is a
// separate explicit step.
func (s *Service) Submit(ctx context.Context, it idea.Idea) (idea.Idea, error) {
	it.Score = idea.UnscoredScore
	created, err := s.store.CreateIdea(ctx, it)
	if err != nil {
		return idea.Idea{}, err
	}
	s.log.WithField("idea_id", created.ID).Info("idea submitted")
	return created, nil
}

// Get fetches one idea by id.
func (s *Service) Get(ctx context.Context, id string) (idea.Idea, error) {
	return s.store.GetIdea(ctx, id)
}

// Score runs the analysis boundary over an existing idea and persists the
// resulting score on the idea row.
func (s *Service) Score(ctx context.Context, id string) (idea.Analysis, error) {
	it, err := s.store.GetIdea(ctx, id)
	if err != nil {
		return idea.Analysis{}, err
	}

	analysis, err := s.analyzer.AnalyzeIdea(ctx, it)
	if err != nil {
		return idea.Analysis{}, services.DelegateError(ctx, err, "idea analysis")
	}

	it.Score = analysis.Score
	if _, err := s.store.UpdateIdea(ctx, it); err != nil {
		return idea.Analysis{}, err
	}
	s.log.WithField("idea_id", id).WithField("score", analysis.Score).Info("idea scored")
	return analysis, nil
}

// Delete removes an idea. Callers only ever see their own ideas, so an
// ownership mismatch reads the same as a missing row.
func (s *Service) Delete(ctx context.Context, id, ownerID string) error {
	it, err := s.store.GetIdea(ctx, id)
	if err != nil {
		return err
	}
	if ownerID != "" && it.OwnerID != ownerID {
		return result.NotFound("idea not found: " + id)
	}
	return s.store.DeleteIdea(ctx, id)
}

// Search runs a criteria-driven search over ideas.
func (s *Service) Search(ctx context.Context, criteria search.Criteria, sort search.Sort, page search.Page) result.Result[search.Paginated[idea.Idea]] {
	return s.engine.Search(ctx, criteria, sort, page)
}
