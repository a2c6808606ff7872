package projects

import (
	"context"
	"testing"

	"github.com/LaunchLens/analysis_layer/internal/domain/idea"
	"github.com/LaunchLens/analysis_layer/internal/domain/project"
	"github.com/LaunchLens/analysis_layer/internal/result"
	"github.com/LaunchLens/analysis_layer/internal/search"
	"github.com/LaunchLens/analysis_layer/internal/storage/memory"
	"github.com/LaunchLens/analysis_layer/pkg/logger"
)

type fakeAnalyzer struct {
	score float64
	err   error
}

func (f fakeAnalyzer) AnalyzeIdea(context.Context, idea.Idea) (idea.Analysis, error) {
	return idea.Analysis{}, nil
}

func (f fakeAnalyzer) ScoreProject(context.Context, project.Project) (float64, error) {
	return f.score, f.err
}

func newService(analyzer fakeAnalyzer) (*Service, *memory.Store) {
	store := memory.New()
	return New(store, analyzer, logger.NewNop()), store
}

func TestSubmitEntersUnscored(t *testing.T) {
	svc, _ := newService(fakeAnalyzer{})

	created, err := svc.Submit(context.Background(), project.Project{Name: "Hack", TeamSize: 3, Score: 50})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if created.Score != project.UnscoredScore {
		t.Fatalf("submitted project must be unscored, got %v", created.Score)
	}
}

func TestScorePersists(t *testing.T) {
	svc, store := newService(fakeAnalyzer{score: 72})
	created, _ := svc.Submit(context.Background(), project.Project{Name: "Hack", TeamSize: 3})

	updated, err := svc.Score(context.Background(), created.ID)
	if err != nil {
		t.Fatalf("score: %v", err)
	}
	if updated.Score != 72 {
		t.Fatalf("score not applied: %+v", updated)
	}

	stored, _ := store.GetProject(context.Background(), created.ID)
	if stored.Score != 72 {
		t.Fatalf("score not persisted: %+v", stored)
	}
}

func TestScoreMissingProjectIsNotFound(t *testing.T) {
	svc, _ := newService(fakeAnalyzer{})

	_, err := svc.Score(context.Background(), "missing")
	if result.KindOf(err) != result.KindNotFound {
		t.Fatalf("expected not_found, got %v", err)
	}
}

func TestScoreDelegateFailurePropagatesKind(t *testing.T) {
	svc, _ := newService(fakeAnalyzer{err: result.TransientStorage("provider busy")})
	created, _ := svc.Submit(context.Background(), project.Project{Name: "Hack", TeamSize: 3})

	_, err := svc.Score(context.Background(), created.ID)
	if result.KindOf(err) != result.KindTransientStorage {
		t.Fatalf("taxonomy error must pass through unchanged, got %v", err)
	}
}

func TestSearchByEventAndTeamSize(t *testing.T) {
	svc, store := newService(fakeAnalyzer{})
	seed := []project.Project{
		{Name: "A", Event: "spring-2026", TeamSize: 2},
		{Name: "B", Event: "spring-2026", TeamSize: 5},
		{Name: "C", Event: "fall-2025", TeamSize: 5},
	}
	for _, p := range seed {
		if _, err := store.CreateProject(context.Background(), p); err != nil {
			t.Fatalf("seed: %v", err)
		}
	}

	min := 3.0
	criteria := search.Criteria{}.WithEqual("event", "spring-2026").WithRange("team_size", &min, nil)
	res := svc.Search(context.Background(), criteria, search.Sort{}, search.Page{Number: 1, Limit: 20})
	if !res.IsOK() {
		t.Fatalf("search: %v", res.Err())
	}
	page := res.Value()
	if page.Total != 1 || len(page.Items) != 1 || page.Items[0].Name != "B" {
		t.Fatalf("wrong page: %+v", page)
	}
}
