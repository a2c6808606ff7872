// Package services holds the business services behind the request handlers
// and the boundary interfaces to the external AI provider. The provider
// itself lives outside this repo; tests use fakes.
package services

import (
	"context"
	"errors"

	"github.com/LaunchLens/analysis_layer/internal/domain/idea"
	"github.com/LaunchLens/analysis_layer/internal/domain/plan"
	"github.com/LaunchLens/analysis_layer/internal/domain/project"
	"github.com/LaunchLens/analysis_layer/internal/result"
)

// Analyzer scores submissions. Implementations call the external analysis
// provider and may take seconds; they must honor ctx.
type Analyzer interface {
	AnalyzeIdea(ctx context.Context, it idea.Idea) (idea.Analysis, error)
	ScoreProject(ctx context.Context, p project.Project) (float64, error)
}

// Planner produces planning documents for an idea.
type Planner interface {
	GeneratePlan(ctx context.Context, it idea.Idea, kind string) (plan.Document, error)
}

// Unconfigured stands in when no analysis provider is wired into the
// deployment. Submissions and searches work normally; scoring and plan
// generation fail cleanly.
type Unconfigured struct{}

func (Unconfigured) AnalyzeIdea(context.Context, idea.Idea) (idea.Analysis, error) {
	return idea.Analysis{}, result.Unexpected("analysis provider not configured")
}

func (Unconfigured) ScoreProject(context.Context, project.Project) (float64, error) {
	return 0, result.Unexpected("analysis provider not configured")
}

func (Unconfigured) GeneratePlan(context.Context, idea.Idea, string) (plan.Document, error) {
	return plan.Document{}, result.Unexpected("planning provider not configured")
}

// DelegateError translates a boundary failure into the taxonomy. Taxonomy
// errors pass through unchanged; cancellations become retryable; anything
// else from an external provider is unclassified.
func DelegateError(ctx context.Context, err error, op string) error {
	var taxonomy *result.Error
	if errors.As(err, &taxonomy) {
		return taxonomy
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) || ctx.Err() != nil {
		return result.TransientStorage("cancelled")
	}
	return result.Unexpected(op + " failed: " + err.Error())
}
