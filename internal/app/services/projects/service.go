// Package projects implements the business rules for hackathon projects.
package projects

import (
	"context"

	"github.com/LaunchLens/analysis_layer/internal/app/services"
	"github.com/LaunchLens/analysis_layer/internal/domain/project"
	"github.com/LaunchLens/analysis_layer/internal/result"
	"github.com/LaunchLens/analysis_layer/internal/search"
	"github.com/LaunchLens/analysis_layer/internal/storage"
	"github.com/LaunchLens/analysis_layer/pkg/logger"
)

// Service owns project lifecycle and search.
type Service struct {
	store    storage.ProjectStore
	engine   *search.Engine[project.Project]
	analyzer services.Analyzer
	log      *logger.Logger
}

// New creates the service. The search engine defaults to newest-first.
func New(store storage.ProjectStore, analyzer services.Analyzer, log *logger.Logger) *Service {
	return &Service{
		store:    store,
		engine:   search.NewEngine[project.Project](storage.ProjectSearch{Store: store}, search.Sort{}),
		analyzer: analyzer,
		log:      log,
	}
}

// Submit records a new project. Projects enter unscored.
func (s *Service) Submit(ctx context.Context, p project.Project) (project.Project, error) {
	p.Score = project.UnscoredScore
	created, err := s.store.CreateProject(ctx, p)
	if err != nil {
		return project.Project{}, err
	}
	s.log.WithField("project_id", created.ID).Info("project submitted")
	return created, nil
}

// Score runs the analysis boundary over an existing project and persists the
// resulting score.
func (s *Service) Score(ctx context.Context, id string) (project.Project, error) {
	p, err := s.store.GetProject(ctx, id)
	if err != nil {
		return project.Project{}, err
	}

	score, err := s.analyzer.ScoreProject(ctx, p)
	if err != nil {
		return project.Project{}, services.DelegateError(ctx, err, "project analysis")
	}

	p.Score = score
	updated, err := s.store.UpdateProject(ctx, p)
	if err != nil {
		return project.Project{}, err
	}
	s.log.WithField("project_id", id).WithField("score", score).Info("project scored")
	return updated, nil
}

// Search runs a criteria-driven search over projects.
func (s *Service) Search(ctx context.Context, criteria search.Criteria, sort search.Sort, page search.Page) result.Result[search.Paginated[project.Project]] {
	return s.engine.Search(ctx, criteria, sort, page)
}
