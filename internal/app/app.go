// Package app wires the request envelope to the business services. Process
// is the single entry point: raw external input goes through schema
// validation, the typed request is routed to exactly one handler, and the
// outcome travels back as a Result.
package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/LaunchLens/analysis_layer/internal/app/services"
	"github.com/LaunchLens/analysis_layer/internal/app/services/ideas"
	"github.com/LaunchLens/analysis_layer/internal/app/services/plans"
	"github.com/LaunchLens/analysis_layer/internal/app/services/projects"
	"github.com/LaunchLens/analysis_layer/internal/domain/idea"
	"github.com/LaunchLens/analysis_layer/internal/domain/project"
	"github.com/LaunchLens/analysis_layer/internal/request"
	"github.com/LaunchLens/analysis_layer/internal/result"
	"github.com/LaunchLens/analysis_layer/internal/storage"
	"github.com/LaunchLens/analysis_layer/pkg/logger"
)

// Deleted acknowledges a successful delete.
type Deleted struct {
	ID string `json:"id"`
}

// Application bundles the services behind the dispatch switch.
type Application struct {
	ideas    *ideas.Service
	projects *projects.Service
	plans    *plans.Service
	log      *logger.Logger
}

// New assembles the application over one storage backend and the AI
// boundary implementations.
func New(store storage.Store, analyzer services.Analyzer, planner services.Planner, log *logger.Logger) *Application {
	return &Application{
		ideas:    ideas.New(store, analyzer, log),
		projects: projects.New(store, analyzer, log),
		plans:    plans.New(store, store, planner, log),
		log:      log,
	}
}

// Process validates raw external input and dispatches the typed request.
// Validation failure short-circuits; no handler ever sees a partially
// constructed request.
func (a *Application) Process(ctx context.Context, kind string, raw map[string]any, correlationID string) result.Result[any] {
	validated := request.Validate(kind, raw, correlationID)
	if !validated.IsOK() {
		return result.Convert[any](validated)
	}
	return a.Dispatch(ctx, validated.Value())
}

// Dispatch routes a typed request to its handler. The request set is closed,
// so the switch is exhaustive; a type that slips past it is a defect. Panics
// inside handlers are recovered here and surfaced as Unexpected with the
// correlation id logged.
func (a *Application) Dispatch(ctx context.Context, req request.Request) (out result.Result[any]) {
	log := a.log.
		WithField("correlation_id", req.Correlation()).
		WithField("kind", req.RequestKind())

	defer func() {
		if r := recover(); r != nil {
			log.Errorf("handler panic: %v", r)
			out = result.Fail[any](result.Unexpected(fmt.Sprintf("handler panic: %v", r)))
		}
	}()

	switch r := req.(type) {
	case *request.SubmitIdea:
		return wrap(a.ideas.Submit(ctx, idea.Idea{
			OwnerID:  r.OwnerID,
			Title:    r.Title,
			Summary:  r.Summary,
			Category: r.Category,
			Locale:   r.Locale,
			Public:   r.Public,
		}))
	case *request.ScoreIdea:
		return wrap(a.ideas.Score(ctx, r.IdeaID))
	case *request.DeleteIdea:
		if err := a.ideas.Delete(ctx, r.IdeaID, r.OwnerID); err != nil {
			return fail(log, err)
		}
		return result.OK[any](Deleted{ID: r.IdeaID})
	case *request.GetIdea:
		return wrap(a.ideas.Get(ctx, r.IdeaID))
	case *request.SearchIdeas:
		return toAny(a.ideas.Search(ctx, ideaCriteria(*r), r.Sort, r.Page))

	case *request.SubmitProject:
		return wrap(a.projects.Submit(ctx, project.Project{
			OwnerID:  r.OwnerID,
			Name:     r.Name,
			Event:    r.Event,
			TeamSize: r.TeamSize,
		}))
	case *request.ScoreProject:
		return wrap(a.projects.Score(ctx, r.ProjectID))
	case *request.SearchProjects:
		return toAny(a.projects.Search(ctx, projectCriteria(*r), r.Sort, r.Page))

	case *request.GeneratePlan:
		return wrap(a.plans.Generate(ctx, r.IdeaID, r.OwnerID, r.PlanKind))
	case *request.DeletePlan:
		if err := a.plans.Delete(ctx, r.PlanID, r.OwnerID); err != nil {
			return fail(log, err)
		}
		return result.OK[any](Deleted{ID: r.PlanID})
	case *request.ListPlans:
		return toAny(a.plans.List(ctx, r.IdeaID, r.Page))
	}

	log.Error("request type missing from dispatch")
	return result.Fail[any](result.Unexpected("unhandled request kind: " + req.RequestKind()))
}

// wrap lifts a (value, error) pair into the Result shape handlers return.
func wrap[T any](v T, err error) result.Result[any] {
	if err != nil {
		return result.Fail[any](asError(err))
	}
	return result.OK[any](v)
}

// toAny erases the value type of a typed Result for the dispatch surface.
func toAny[T any](r result.Result[T]) result.Result[any] {
	if !r.IsOK() {
		return result.Convert[any](r)
	}
	return result.OK[any](r.Value())
}

func fail(log *logger.Logger, err error) result.Result[any] {
	e := asError(err)
	if e.Kind == result.KindUnexpected {
		log.WithError(err).Error("request failed")
	}
	return result.Fail[any](e)
}

func asError(err error) *result.Error {
	var e *result.Error
	if errors.As(err, &e) {
		return e
	}
	return result.Unexpected(err.Error())
}
