package ideas

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/LaunchLens/analysis_layer/internal/domain/idea"
	"github.com/LaunchLens/analysis_layer/internal/domain/project"
	"github.com/LaunchLens/analysis_layer/internal/result"
	"github.com/LaunchLens/analysis_layer/internal/search"
	"github.com/LaunchLens/analysis_layer/internal/storage/memory"
	"github.com/LaunchLens/analysis_layer/pkg/logger"
)

type fakeAnalyzer struct {
	analysis idea.Analysis
	err      error
}

func (f fakeAnalyzer) AnalyzeIdea(context.Context, idea.Idea) (idea.Analysis, error) {
	return f.analysis, f.err
}

// ScoreProject satisfies the Analyzer interface; this service never calls it.
func (f fakeAnalyzer) ScoreProject(context.Context, project.Project) (float64, error) {
	return 0, nil
}

func newService(analyzer fakeAnalyzer) (*Service, *memory.Store) {
	store := memory.New()
	return New(store, analyzer, logger.NewNop()), store
}

func TestSubmitEntersUnscored(t *testing.T) {
	svc, _ := newService(fakeAnalyzer{})

	created, err := svc.Submit(context.Background(), idea.Idea{Title: "Solar planner", Score: 95})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if created.Score != idea.UnscoredScore {
		t.Fatalf("submitted idea must be unscored, got %v", created.Score)
	}
	if created.ID == "" {
		t.Fatalf("id not assigned")
	}
}

func TestScorePersistsAnalysisScore(t *testing.T) {
	analysis := idea.Analysis{Verdict: "promising", Score: 87, GeneratedAt: time.Now().UTC()}
	svc, store := newService(fakeAnalyzer{analysis: analysis})

	created, err := svc.Submit(context.Background(), idea.Idea{Title: "Solar planner"})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}

	got, err := svc.Score(context.Background(), created.ID)
	if err != nil {
		t.Fatalf("score: %v", err)
	}
	if got.Score != 87 || got.Verdict != "promising" {
		t.Fatalf("analysis not returned: %+v", got)
	}

	stored, err := store.GetIdea(context.Background(), created.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if stored.Score != 87 {
		t.Fatalf("score not persisted, got %v", stored.Score)
	}
}

func TestScoreMissingIdeaIsNotFound(t *testing.T) {
	svc, _ := newService(fakeAnalyzer{})

	_, err := svc.Score(context.Background(), "missing")
	if result.KindOf(err) != result.KindNotFound {
		t.Fatalf("expected not_found, got %v", err)
	}
}

func TestScoreDelegateFailurePropagatesKind(t *testing.T) {
	svc, _ := newService(fakeAnalyzer{err: result.TransientStorage("provider busy")})
	created, _ := svc.Submit(context.Background(), idea.Idea{Title: "X"})

	_, err := svc.Score(context.Background(), created.ID)
	if result.KindOf(err) != result.KindTransientStorage {
		t.Fatalf("taxonomy error must pass through unchanged, got %v", err)
	}
}

func TestScoreUnclassifiedDelegateFailureIsUnexpected(t *testing.T) {
	svc, _ := newService(fakeAnalyzer{err: errors.New("model exploded")})
	created, _ := svc.Submit(context.Background(), idea.Idea{Title: "X"})

	_, err := svc.Score(context.Background(), created.ID)
	if result.KindOf(err) != result.KindUnexpected {
		t.Fatalf("expected unexpected, got %v", err)
	}
}

func TestDeleteOwnershipMismatchReadsAsMissing(t *testing.T) {
	svc, _ := newService(fakeAnalyzer{})
	created, _ := svc.Submit(context.Background(), idea.Idea{Title: "X", OwnerID: "user-1"})

	err := svc.Delete(context.Background(), created.ID, "user-2")
	if result.KindOf(err) != result.KindNotFound {
		t.Fatalf("expected not_found for foreign owner, got %v", err)
	}
	if err := svc.Delete(context.Background(), created.ID, "user-1"); err != nil {
		t.Fatalf("owner delete: %v", err)
	}
}

func TestSearchAppliesCriteriaAndWindow(t *testing.T) {
	svc, store := newService(fakeAnalyzer{})
	base := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)
	for i, score := range []float64{80, 85, 90} {
		_, err := store.CreateIdea(context.Background(), idea.Idea{
			Category:  "saas",
			Score:     score,
			CreatedAt: base.Add(time.Duration(i) * time.Hour),
		})
		if err != nil {
			t.Fatalf("seed: %v", err)
		}
	}

	min := 85.0
	criteria := search.Criteria{}.WithEqual("category", "saas").WithRange("score", &min, nil)
	res := svc.Search(context.Background(), criteria,
		search.Sort{Field: "score", Descending: true}, search.Page{Number: 1, Limit: 1})
	if !res.IsOK() {
		t.Fatalf("search: %v", res.Err())
	}
	page := res.Value()
	if page.Total != 2 || len(page.Items) != 1 || page.Items[0].Score != 90 {
		t.Fatalf("wrong page: %+v", page)
	}
}
