package memory

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/LaunchLens/analysis_layer/internal/domain/idea"
	"github.com/LaunchLens/analysis_layer/internal/domain/plan"
	"github.com/LaunchLens/analysis_layer/internal/domain/project"
	"github.com/LaunchLens/analysis_layer/internal/result"
	"github.com/LaunchLens/analysis_layer/internal/search"
)

func TestIdeaLifecycle(t *testing.T) {
	s := New()
	ctx := context.Background()

	created, err := s.CreateIdea(ctx, idea.Idea{Title: "Solar planner", Category: "climate", OwnerID: "user-1"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.ID == "" || created.CreatedAt.IsZero() {
		t.Fatalf("identity not assigned: %+v", created)
	}

	got, err := s.GetIdea(ctx, created.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Title != "Solar planner" {
		t.Fatalf("wrong row: %+v", got)
	}

	got.Score = 85
	updated, err := s.UpdateIdea(ctx, got)
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Score != 85 {
		t.Fatalf("score not persisted: %+v", updated)
	}
	if !updated.CreatedAt.Equal(created.CreatedAt) {
		t.Fatalf("update must not change creation time")
	}

	if err := s.DeleteIdea(ctx, created.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := s.GetIdea(ctx, created.ID); result.KindOf(err) != result.KindNotFound {
		t.Fatalf("expected not_found after delete, got %v", err)
	}
}

func TestMissingRowsAreNotFound(t *testing.T) {
	s := New()
	ctx := context.Background()

	if _, err := s.GetIdea(ctx, "nope"); result.KindOf(err) != result.KindNotFound {
		t.Fatalf("get idea: %v", err)
	}
	if _, err := s.UpdateIdea(ctx, idea.Idea{ID: "nope"}); result.KindOf(err) != result.KindNotFound {
		t.Fatalf("update idea: %v", err)
	}
	if err := s.DeleteIdea(ctx, "nope"); result.KindOf(err) != result.KindNotFound {
		t.Fatalf("delete idea: %v", err)
	}
	if _, err := s.GetProject(ctx, "nope"); result.KindOf(err) != result.KindNotFound {
		t.Fatalf("get project: %v", err)
	}
	if _, err := s.GetPlan(ctx, "nope"); result.KindOf(err) != result.KindNotFound {
		t.Fatalf("get plan: %v", err)
	}
	if err := s.DeletePlan(ctx, "nope"); result.KindOf(err) != result.KindNotFound {
		t.Fatalf("delete plan: %v", err)
	}
}

func TestCountAndSelectApplyCriteria(t *testing.T) {
	s := New()
	ctx := context.Background()
	base := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	scores := []float64{80, 85, 90, 95, 40}
	for i, score := range scores {
		_, err := s.CreateIdea(ctx, idea.Idea{
			ID:        fmt.Sprintf("idea-%d", i),
			Title:     fmt.Sprintf("Idea %d", i),
			Category:  "saas",
			Score:     score,
			Public:    true,
			CreatedAt: base.Add(time.Duration(i) * time.Hour),
		})
		if err != nil {
			t.Fatalf("seed: %v", err)
		}
	}
	_, err := s.CreateIdea(ctx, idea.Idea{ID: "other", Title: "Other", Category: "fintech", Score: 99, CreatedAt: base})
	if err != nil {
		t.Fatalf("seed: %v", err)
	}

	min := 80.0
	c := search.Criteria{}.WithEqual("category", "saas").WithRange("score", &min, nil).WithFlag("public", true)

	total, err := s.CountIdeas(ctx, c)
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if total != 4 {
		t.Fatalf("expected 4 matches, got %d", total)
	}

	rows, err := s.SelectIdeas(ctx, c, search.Sort{Field: "score", Descending: true}, 2, 0)
	if err != nil {
		t.Fatalf("select: %v", err)
	}
	if len(rows) != 2 || rows[0].Score != 95 || rows[1].Score != 90 {
		t.Fatalf("wrong page: %+v", rows)
	}

	rows, err = s.SelectIdeas(ctx, c, search.Sort{Field: "score", Descending: true}, 2, 10)
	if err != nil {
		t.Fatalf("select beyond: %v", err)
	}
	if len(rows) != 0 {
		t.Fatalf("expected empty page beyond data, got %+v", rows)
	}
}

func TestSortTieBreakIsNewestFirstThenID(t *testing.T) {
	s := New()
	ctx := context.Background()
	base := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	seed := []idea.Idea{
		{ID: "b", Score: 90, CreatedAt: base},
		{ID: "a", Score: 90, CreatedAt: base},
		{ID: "c", Score: 90, CreatedAt: base.Add(time.Hour)},
	}
	for _, it := range seed {
		if _, err := s.CreateIdea(ctx, it); err != nil {
			t.Fatalf("seed: %v", err)
		}
	}

	rows, err := s.SelectIdeas(ctx, search.Criteria{}, search.Sort{Field: "score", Descending: true}, 10, 0)
	if err != nil {
		t.Fatalf("select: %v", err)
	}
	var ids []string
	for _, r := range rows {
		ids = append(ids, r.ID)
	}
	want := []string{"c", "a", "b"}
	for i := range want {
		if ids[i] != want[i] {
			t.Fatalf("tie-break order wrong: got %v want %v", ids, want)
		}
	}
}

func TestContainsIsCaseInsensitive(t *testing.T) {
	s := New()
	ctx := context.Background()
	if _, err := s.CreateIdea(ctx, idea.Idea{ID: "1", Title: "Solar Powered Logistics"}); err != nil {
		t.Fatalf("seed: %v", err)
	}

	total, err := s.CountIdeas(ctx, search.Criteria{}.WithContains("title", "solar"))
	if err != nil || total != 1 {
		t.Fatalf("expected case-insensitive match, got %d (%v)", total, err)
	}
}

func TestUnknownCriteriaFieldMatchesNothing(t *testing.T) {
	s := New()
	ctx := context.Background()
	if _, err := s.CreateIdea(ctx, idea.Idea{ID: "1", Title: "X"}); err != nil {
		t.Fatalf("seed: %v", err)
	}

	total, err := s.CountIdeas(ctx, search.Criteria{}.WithEqual("nonsense", "y"))
	if err != nil || total != 0 {
		t.Fatalf("unknown field must exclude rows, got %d (%v)", total, err)
	}
}

func TestProjectAndPlanRoundTrips(t *testing.T) {
	s := New()
	ctx := context.Background()

	p, err := s.CreateProject(ctx, project.Project{Name: "Hack", Event: "spring-2026", TeamSize: 3, OwnerID: "user-1"})
	if err != nil {
		t.Fatalf("create project: %v", err)
	}
	p.Score = 72
	if _, err := s.UpdateProject(ctx, p); err != nil {
		t.Fatalf("update project: %v", err)
	}
	total, err := s.CountProjects(ctx, search.Criteria{}.WithEqual("owner_id", "user-1"))
	if err != nil || total != 1 {
		t.Fatalf("count projects: %d (%v)", total, err)
	}

	doc, err := s.CreatePlan(ctx, plan.Document{IdeaID: "idea-1", Kind: plan.KindPRD, Title: "PRD"})
	if err != nil {
		t.Fatalf("create plan: %v", err)
	}
	docs, err := s.SelectPlans(ctx, search.Criteria{}.WithEqual("idea_id", "idea-1"),
		search.Sort{Field: "created_at", Descending: true}, 10, 0)
	if err != nil || len(docs) != 1 || docs[0].ID != doc.ID {
		t.Fatalf("select plans: %+v (%v)", docs, err)
	}
	if err := s.DeletePlan(ctx, doc.ID); err != nil {
		t.Fatalf("delete plan: %v", err)
	}
}
