package search_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/LaunchLens/analysis_layer/internal/domain/idea"
	"github.com/LaunchLens/analysis_layer/internal/result"
	"github.com/LaunchLens/analysis_layer/internal/search"
	"github.com/LaunchLens/analysis_layer/internal/storage"
	"github.com/LaunchLens/analysis_layer/internal/storage/memory"
)

func seedIdeas(t *testing.T, store *memory.Store, scores []float64) []idea.Idea {
	t.Helper()
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	out := make([]idea.Idea, 0, len(scores))
	for i, score := range scores {
		it, err := store.CreateIdea(context.Background(), idea.Idea{
			ID:        fmt.Sprintf("idea-%02d", i),
			OwnerID:   "user-1",
			Title:     fmt.Sprintf("Idea %02d", i),
			Summary:   "a summary",
			Category:  "saas",
			Locale:    "en",
			Score:     score,
			Public:    true,
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		})
		if err != nil {
			t.Fatalf("seed idea: %v", err)
		}
		out = append(out, it)
	}
	return out
}

func newIdeaEngine(store *memory.Store) *search.Engine[idea.Idea] {
	return search.NewEngine[idea.Idea](storage.IdeaSearch{Store: store}, search.Sort{})
}

func TestSearchEmptyCriteriaMatchesAll(t *testing.T) {
	store := memory.New()
	seedIdeas(t, store, []float64{10, 20, 30})
	engine := newIdeaEngine(store)

	res := engine.Search(context.Background(), search.Criteria{}, search.Sort{}, search.Page{Number: 1, Limit: 10})
	if !res.IsOK() {
		t.Fatalf("search: %v", res.Err())
	}
	page := res.Value()
	if page.Total != 3 || len(page.Items) != 3 {
		t.Fatalf("expected all 3 rows, got total=%d items=%d", page.Total, len(page.Items))
	}
}

func TestSearchNoMatches(t *testing.T) {
	store := memory.New()
	seedIdeas(t, store, []float64{10})
	engine := newIdeaEngine(store)

	criteria := search.Criteria{}.WithEqual("category", "fintech")
	res := engine.Search(context.Background(), criteria, search.Sort{}, search.Page{Number: 1, Limit: 10})
	if !res.IsOK() {
		t.Fatalf("search: %v", res.Err())
	}
	page := res.Value()
	if page.Total != 0 || len(page.Items) != 0 || page.Page != 1 || page.Limit != 10 {
		t.Fatalf("expected empty result with window echoed, got %+v", page)
	}
}

func TestSearchScoreRangeWithTieBreak(t *testing.T) {
	store := memory.New()
	// Seeded oldest-to-newest, so later indexes are newer.
	seedIdeas(t, store, []float64{80, 85, 85, 90, 95, 100, 100})
	engine := newIdeaEngine(store)

	min, max := 80.0, 100.0
	criteria := search.Criteria{}.WithRange("score", &min, &max)
	res := engine.Search(context.Background(), criteria,
		search.Sort{Field: "score", Descending: true}, search.Page{Number: 1, Limit: 5})
	if !res.IsOK() {
		t.Fatalf("search: %v", res.Err())
	}
	page := res.Value()
	if page.Total != 7 {
		t.Fatalf("expected total 7, got %d", page.Total)
	}
	if len(page.Items) != 5 {
		t.Fatalf("expected 5 items, got %d", len(page.Items))
	}
	wantScores := []float64{100, 100, 95, 90, 85}
	for i, it := range page.Items {
		if it.Score != wantScores[i] {
			t.Fatalf("position %d: expected score %v, got %v", i, wantScores[i], it.Score)
		}
	}
	// The two 100s tie on score; newest-first breaks the tie.
	if !page.Items[0].CreatedAt.After(page.Items[1].CreatedAt) {
		t.Fatalf("expected newest-first tie-break, got %v then %v",
			page.Items[0].CreatedAt, page.Items[1].CreatedAt)
	}
}

func TestSearchBeyondLastPage(t *testing.T) {
	store := memory.New()
	seedIdeas(t, store, []float64{10, 20, 30})
	engine := newIdeaEngine(store)

	res := engine.Search(context.Background(), search.Criteria{}, search.Sort{}, search.Page{Number: 9, Limit: 10})
	if !res.IsOK() {
		t.Fatalf("expected success, got %v", res.Err())
	}
	page := res.Value()
	if len(page.Items) != 0 {
		t.Fatalf("expected empty page, got %d items", len(page.Items))
	}
	if page.Total != 3 {
		t.Fatalf("expected total 3, got %d", page.Total)
	}
}

func TestSearchPagesPartitionTotal(t *testing.T) {
	store := memory.New()
	seedIdeas(t, store, []float64{1, 2, 3, 4, 5, 6, 7})
	engine := newIdeaEngine(store)

	seen := map[string]bool{}
	collected := 0
	for pageNo := 1; ; pageNo++ {
		res := engine.Search(context.Background(), search.Criteria{},
			search.Sort{Field: "score", Descending: false}, search.Page{Number: pageNo, Limit: 3})
		if !res.IsOK() {
			t.Fatalf("page %d: %v", pageNo, res.Err())
		}
		page := res.Value()
		if page.Total != 7 {
			t.Fatalf("total drifted to %d", page.Total)
		}
		if len(page.Items) == 0 {
			break
		}
		for _, it := range page.Items {
			if seen[it.ID] {
				t.Fatalf("row %s appeared on two pages", it.ID)
			}
			seen[it.ID] = true
		}
		collected += len(page.Items)
	}
	if collected != 7 {
		t.Fatalf("pages collected %d rows, expected 7", collected)
	}
}

func TestSearchOrderingIsStable(t *testing.T) {
	store := memory.New()
	seedIdeas(t, store, []float64{85, 85, 85, 85})
	engine := newIdeaEngine(store)

	first := engine.Search(context.Background(), search.Criteria{},
		search.Sort{Field: "score", Descending: true}, search.Page{Number: 1, Limit: 10})
	second := engine.Search(context.Background(), search.Criteria{},
		search.Sort{Field: "score", Descending: true}, search.Page{Number: 1, Limit: 10})
	if !first.IsOK() || !second.IsOK() {
		t.Fatalf("searches failed: %v %v", first.Err(), second.Err())
	}
	a, b := first.Value().Items, second.Value().Items
	if len(a) != len(b) {
		t.Fatalf("result sizes differ")
	}
	for i := range a {
		if a[i].ID != b[i].ID {
			t.Fatalf("ordering unstable at %d: %s vs %s", i, a[i].ID, b[i].ID)
		}
	}
	// Ties on score resolve newest-first.
	for i := 1; i < len(a); i++ {
		if a[i-1].CreatedAt.Before(a[i].CreatedAt) {
			t.Fatalf("tie-break violated at %d", i)
		}
	}
}

func TestSearchOutOfContractWindow(t *testing.T) {
	engine := newIdeaEngine(memory.New())

	res := engine.Search(context.Background(), search.Criteria{}, search.Sort{}, search.Page{Number: 0, Limit: 10})
	if res.IsOK() {
		t.Fatalf("expected failure for out-of-contract window")
	}
	if res.Err().Kind != result.KindUnexpected {
		t.Fatalf("expected unexpected, got %s", res.Err().Kind)
	}

	res = engine.Search(context.Background(), search.Criteria{}, search.Sort{}, search.Page{Number: 1, Limit: 500})
	if res.IsOK() || res.Err().Kind != result.KindUnexpected {
		t.Fatalf("expected unexpected for oversized limit, got %v", res.Err())
	}
}

// failingStore simulates a storage client failing under a given error.
type failingStore struct{ err error }

func (f failingStore) Count(context.Context, search.Criteria) (int, error) { return 0, f.err }
func (f failingStore) Select(context.Context, search.Criteria, search.Sort, int, int) ([]idea.Idea, error) {
	return nil, f.err
}

func TestSearchStorageTimeoutIsTransient(t *testing.T) {
	engine := search.NewEngine[idea.Idea](failingStore{err: result.TransientStorage("request timed out")}, search.Sort{})

	res := engine.Search(context.Background(), search.Criteria{}, search.Sort{}, search.Page{Number: 1, Limit: 10})
	if res.IsOK() {
		t.Fatalf("expected failure")
	}
	if res.Err().Kind != result.KindTransientStorage {
		t.Fatalf("expected transient_storage, got %s", res.Err().Kind)
	}
}

func TestSearchCancellationIsTransient(t *testing.T) {
	engine := search.NewEngine[idea.Idea](failingStore{err: context.DeadlineExceeded}, search.Sort{})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	res := engine.Search(ctx, search.Criteria{}, search.Sort{}, search.Page{Number: 1, Limit: 10})
	if res.IsOK() {
		t.Fatalf("expected failure")
	}
	if res.Err().Kind != result.KindTransientStorage {
		t.Fatalf("expected transient_storage, got %s", res.Err().Kind)
	}
	if res.Err().Message != "cancelled" {
		t.Fatalf("expected cancelled message, got %q", res.Err().Message)
	}
}

func TestSearchUnknownStoreErrorIsUnexpected(t *testing.T) {
	engine := search.NewEngine[idea.Idea](failingStore{err: errors.New("split brain")}, search.Sort{})

	res := engine.Search(context.Background(), search.Criteria{}, search.Sort{}, search.Page{Number: 1, Limit: 10})
	if res.IsOK() || res.Err().Kind != result.KindUnexpected {
		t.Fatalf("expected unexpected, got %v", res.Err())
	}
}
