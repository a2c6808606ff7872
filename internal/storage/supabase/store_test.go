package supabase

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/LaunchLens/analysis_layer/internal/domain/idea"
	"github.com/LaunchLens/analysis_layer/internal/result"
	"github.com/LaunchLens/analysis_layer/internal/search"
)

func newTestStore(t *testing.T, handler http.HandlerFunc) (*Store, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	client, err := NewClient(Config{ProjectURL: srv.URL, ServiceKey: "test-key", Timeout: 2 * time.Second})
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	return New(client), srv
}

func TestCountIdeasUsesContentRange(t *testing.T) {
	store, _ := newTestStore(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/rest/v1/ideas" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if got := r.Header.Get("Prefer"); got != "count=exact" {
			t.Errorf("expected count=exact, got %q", got)
		}
		if r.URL.Query().Get("category") != "eq.saas" {
			t.Errorf("criteria not translated: %s", r.URL.RawQuery)
		}
		w.Header().Set("Content-Range", "0-0/42")
		w.Write([]byte(`[{"id":"idea-1"}]`))
	})

	total, err := store.CountIdeas(context.Background(), search.Criteria{}.WithEqual("category", "saas"))
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if total != 42 {
		t.Fatalf("expected 42, got %d", total)
	}
}

func TestSelectIdeasDecodesRows(t *testing.T) {
	rows := []idea.Idea{
		{ID: "idea-2", Title: "Second", Score: 90},
		{ID: "idea-1", Title: "First", Score: 80},
	}
	store, _ := newTestStore(t, func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("order") != "score.desc,created_at.desc" {
			t.Errorf("unexpected order: %q", q.Get("order"))
		}
		if q.Get("limit") != "10" || q.Get("offset") != "0" {
			t.Errorf("unexpected window: %s", r.URL.RawQuery)
		}
		json.NewEncoder(w).Encode(rows)
	})

	got, err := store.SelectIdeas(context.Background(), search.Criteria{},
		search.Sort{Field: "score", Descending: true}, 10, 0)
	if err != nil {
		t.Fatalf("select: %v", err)
	}
	if len(got) != 2 || got[0].ID != "idea-2" {
		t.Fatalf("rows not decoded: %+v", got)
	}
}

func TestGetIdeaNotFound(t *testing.T) {
	store, _ := newTestStore(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotAcceptable)
		w.Write([]byte(`{"code":"PGRST116","message":"JSON object requested, multiple (or no) rows returned"}`))
	})

	_, err := store.GetIdea(context.Background(), "missing")
	if err == nil {
		t.Fatalf("expected error")
	}
	if result.KindOf(err) != result.KindNotFound {
		t.Fatalf("expected not_found, got %v", err)
	}
}

func TestDeleteIdeaNotFound(t *testing.T) {
	store, _ := newTestStore(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[]`))
	})

	err := store.DeleteIdea(context.Background(), "missing")
	if result.KindOf(err) != result.KindNotFound {
		t.Fatalf("expected not_found for empty delete, got %v", err)
	}
}

func TestConstraintViolationIsValidation(t *testing.T) {
	store, _ := newTestStore(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		w.Write([]byte(`{"code":"23505","message":"duplicate key value violates unique constraint"}`))
	})

	_, err := store.CreateIdea(context.Background(), idea.Idea{Title: "dup"})
	if result.KindOf(err) != result.KindValidation {
		t.Fatalf("expected validation for constraint violation, got %v", err)
	}
}

func TestTimeoutIsTransientStorage(t *testing.T) {
	store, _ := newTestStore(t, func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(300 * time.Millisecond)
		w.Write([]byte(`[]`))
	})
	// Force a client-side timeout well below the handler delay.
	store.client.httpClient.Timeout = 50 * time.Millisecond

	_, err := store.SelectIdeas(context.Background(), search.Criteria{}, search.Sort{Field: "created_at", Descending: true}, 10, 0)
	if result.KindOf(err) != result.KindTransientStorage {
		t.Fatalf("expected transient_storage on timeout, got %v", err)
	}
}

func TestCancellationIsTransientStorage(t *testing.T) {
	store, _ := newTestStore(t, func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := store.CountIdeas(ctx, search.Criteria{})
	if err == nil {
		t.Fatalf("expected error")
	}
	e := err.(*result.Error)
	if e.Kind != result.KindTransientStorage || e.Message != "cancelled" {
		t.Fatalf("expected transient_storage cancelled, got %v", err)
	}
}

func TestServerErrorIsUnexpected(t *testing.T) {
	store, _ := newTestStore(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"message":"stack overflow in trigger"}`))
	})

	_, err := store.GetIdea(context.Background(), "idea-1")
	if result.KindOf(err) != result.KindUnexpected {
		t.Fatalf("expected unexpected for 500, got %v", err)
	}
}

func TestUnavailableIsTransient(t *testing.T) {
	store, _ := newTestStore(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	})

	_, err := store.CountIdeas(context.Background(), search.Criteria{})
	if result.KindOf(err) != result.KindTransientStorage {
		t.Fatalf("expected transient_storage for 503, got %v", err)
	}
}
