// Package memory is an in-memory implementation of the storage interfaces.
// It is safe for concurrent use and is primarily intended for tests and
// local development.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/LaunchLens/analysis_layer/internal/domain/idea"
	"github.com/LaunchLens/analysis_layer/internal/domain/plan"
	"github.com/LaunchLens/analysis_layer/internal/domain/project"
	"github.com/LaunchLens/analysis_layer/internal/result"
	"github.com/LaunchLens/analysis_layer/internal/search"
	"github.com/LaunchLens/analysis_layer/internal/storage"
)

// Store holds all aggregates in maps guarded by one lock.
type Store struct {
	mu       sync.RWMutex
	ideas    map[string]idea.Idea
	projects map[string]project.Project
	plans    map[string]plan.Document
}

var _ storage.Store = (*Store)(nil)

// New creates an empty store.
func New() *Store {
	return &Store{
		ideas:    make(map[string]idea.Idea),
		projects: make(map[string]project.Project),
		plans:    make(map[string]plan.Document),
	}
}

// IdeaStore implementation ----------------------------------------------------

func (s *Store) CreateIdea(_ context.Context, it idea.Idea) (idea.Idea, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if it.ID == "" {
		it.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if it.CreatedAt.IsZero() {
		it.CreatedAt = now
	}
	it.UpdatedAt = it.CreatedAt
	s.ideas[it.ID] = it
	return it, nil
}

func (s *Store) GetIdea(_ context.Context, id string) (idea.Idea, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	it, ok := s.ideas[id]
	if !ok {
		return idea.Idea{}, result.NotFound("idea not found: " + id)
	}
	return it, nil
}

func (s *Store) UpdateIdea(_ context.Context, it idea.Idea) (idea.Idea, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.ideas[it.ID]
	if !ok {
		return idea.Idea{}, result.NotFound("idea not found: " + it.ID)
	}
	it.CreatedAt = existing.CreatedAt
	it.UpdatedAt = time.Now().UTC()
	s.ideas[it.ID] = it
	return it, nil
}

func (s *Store) DeleteIdea(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.ideas[id]; !ok {
		return result.NotFound("idea not found: " + id)
	}
	delete(s.ideas, id)
	return nil
}

func (s *Store) CountIdeas(_ context.Context, criteria search.Criteria) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	count := 0
	for _, it := range s.ideas {
		if matches(criteria, ideaField(it)) {
			count++
		}
	}
	return count, nil
}

func (s *Store) SelectIdeas(_ context.Context, criteria search.Criteria, spec search.Sort, limit, offset int) ([]idea.Idea, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []idea.Idea
	for _, it := range s.ideas {
		if matches(criteria, ideaField(it)) {
			out = append(out, it)
		}
	}
	sortSlice(out, spec, ideaField)
	return window(out, limit, offset), nil
}

// ProjectStore implementation -------------------------------------------------

func (s *Store) CreateProject(_ context.Context, p project.Project) (project.Project, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if p.CreatedAt.IsZero() {
		p.CreatedAt = now
	}
	p.UpdatedAt = p.CreatedAt
	s.projects[p.ID] = p
	return p, nil
}

func (s *Store) GetProject(_ context.Context, id string) (project.Project, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.projects[id]
	if !ok {
		return project.Project{}, result.NotFound("project not found: " + id)
	}
	return p, nil
}

func (s *Store) UpdateProject(_ context.Context, p project.Project) (project.Project, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.projects[p.ID]
	if !ok {
		return project.Project{}, result.NotFound("project not found: " + p.ID)
	}
	p.CreatedAt = existing.CreatedAt
	p.UpdatedAt = time.Now().UTC()
	s.projects[p.ID] = p
	return p, nil
}

func (s *Store) CountProjects(_ context.Context, criteria search.Criteria) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	count := 0
	for _, p := range s.projects {
		if matches(criteria, projectField(p)) {
			count++
		}
	}
	return count, nil
}

func (s *Store) SelectProjects(_ context.Context, criteria search.Criteria, spec search.Sort, limit, offset int) ([]project.Project, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []project.Project
	for _, p := range s.projects {
		if matches(criteria, projectField(p)) {
			out = append(out, p)
		}
	}
	sortSlice(out, spec, projectField)
	return window(out, limit, offset), nil
}

// PlanStore implementation ----------------------------------------------------

func (s *Store) CreatePlan(_ context.Context, doc plan.Document) (plan.Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if doc.ID == "" {
		doc.ID = uuid.NewString()
	}
	if doc.CreatedAt.IsZero() {
		doc.CreatedAt = time.Now().UTC()
	}
	s.plans[doc.ID] = doc
	return doc, nil
}

func (s *Store) GetPlan(_ context.Context, id string) (plan.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	doc, ok := s.plans[id]
	if !ok {
		return plan.Document{}, result.NotFound("plan not found: " + id)
	}
	return doc, nil
}

func (s *Store) DeletePlan(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.plans[id]; !ok {
		return result.NotFound("plan not found: " + id)
	}
	delete(s.plans, id)
	return nil
}

func (s *Store) CountPlans(_ context.Context, criteria search.Criteria) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	count := 0
	for _, doc := range s.plans {
		if matches(criteria, planField(doc)) {
			count++
		}
	}
	return count, nil
}

func (s *Store) SelectPlans(_ context.Context, criteria search.Criteria, spec search.Sort, limit, offset int) ([]plan.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []plan.Document
	for _, doc := range s.plans {
		if matches(criteria, planField(doc)) {
			out = append(out, doc)
		}
	}
	sortSlice(out, spec, planField)
	return window(out, limit, offset), nil
}

// Criteria evaluation ---------------------------------------------------------

// getter resolves a field name to its value on one entity.
type getter func(field string) (any, bool)

func ideaField(it idea.Idea) getter {
	return func(field string) (any, bool) {
		switch field {
		case "id":
			return it.ID, true
		case "owner_id":
			return it.OwnerID, true
		case "title":
			return it.Title, true
		case "summary":
			return it.Summary, true
		case "category":
			return it.Category, true
		case "locale":
			return it.Locale, true
		case "score":
			return it.Score, true
		case "public":
			return it.Public, true
		case "created_at":
			return it.CreatedAt, true
		case "updated_at":
			return it.UpdatedAt, true
		}
		return nil, false
	}
}

func projectField(p project.Project) getter {
	return func(field string) (any, bool) {
		switch field {
		case "id":
			return p.ID, true
		case "owner_id":
			return p.OwnerID, true
		case "name":
			return p.Name, true
		case "event":
			return p.Event, true
		case "team_size":
			return float64(p.TeamSize), true
		case "score":
			return p.Score, true
		case "created_at":
			return p.CreatedAt, true
		case "updated_at":
			return p.UpdatedAt, true
		}
		return nil, false
	}
}

func planField(doc plan.Document) getter {
	return func(field string) (any, bool) {
		switch field {
		case "id":
			return doc.ID, true
		case "idea_id":
			return doc.IdeaID, true
		case "owner_id":
			return doc.OwnerID, true
		case "kind":
			return doc.Kind, true
		case "title":
			return doc.Title, true
		case "created_at":
			return doc.CreatedAt, true
		}
		return nil, false
	}
}

// matches applies every predicate with AND semantics. Predicates naming an
// unknown field or mismatching the field type never match; the validator
// keeps such criteria out of real traffic.
func matches(c search.Criteria, get getter) bool {
	for field, want := range c.Equals() {
		v, ok := get(field)
		if !ok {
			return false
		}
		s, ok := v.(string)
		if !ok || s != want {
			return false
		}
	}
	for field, r := range c.Ranges() {
		v, ok := get(field)
		if !ok {
			return false
		}
		n, ok := v.(float64)
		if !ok {
			return false
		}
		if r.Min != nil && n < *r.Min {
			return false
		}
		if r.Max != nil && n > *r.Max {
			return false
		}
	}
	for field, r := range c.TimeRanges() {
		v, ok := get(field)
		if !ok {
			return false
		}
		t, ok := v.(time.Time)
		if !ok {
			return false
		}
		if r.From != nil && t.Before(*r.From) {
			return false
		}
		if r.To != nil && t.After(*r.To) {
			return false
		}
	}
	for field, substr := range c.Contains() {
		v, ok := get(field)
		if !ok {
			return false
		}
		s, ok := v.(string)
		if !ok || !strings.Contains(strings.ToLower(s), strings.ToLower(substr)) {
			return false
		}
	}
	for field, want := range c.Flags() {
		v, ok := get(field)
		if !ok {
			return false
		}
		b, ok := v.(bool)
		if !ok || b != want {
			return false
		}
	}
	return true
}

// sortSlice orders items by the sort field with the documented tie-break:
// creation time descending, then id, so pagination over unchanged data is
// deterministic even when the sort field has duplicate values.
func sortSlice[T any](items []T, spec search.Sort, field func(T) getter) {
	sort.Slice(items, func(i, j int) bool {
		gi, gj := field(items[i]), field(items[j])
		if cmp := compareField(gi, gj, spec.Field); cmp != 0 {
			if spec.Descending {
				return cmp > 0
			}
			return cmp < 0
		}
		ti, _ := gi("created_at")
		tj, _ := gj("created_at")
		ci, _ := ti.(time.Time)
		cj, _ := tj.(time.Time)
		if !ci.Equal(cj) {
			return ci.After(cj)
		}
		idi, _ := gi("id")
		idj, _ := gj("id")
		si, _ := idi.(string)
		sj, _ := idj.(string)
		return si < sj
	})
}

func compareField(gi, gj getter, field string) int {
	vi, oki := gi(field)
	vj, okj := gj(field)
	if !oki || !okj {
		return 0
	}
	switch a := vi.(type) {
	case string:
		b, _ := vj.(string)
		return strings.Compare(a, b)
	case float64:
		b, _ := vj.(float64)
		switch {
		case a < b:
			return -1
		case a > b:
			return 1
		}
		return 0
	case bool:
		b, _ := vj.(bool)
		switch {
		case !a && b:
			return -1
		case a && !b:
			return 1
		}
		return 0
	case time.Time:
		b, _ := vj.(time.Time)
		switch {
		case a.Before(b):
			return -1
		case a.After(b):
			return 1
		}
		return 0
	}
	return 0
}

func window[T any](items []T, limit, offset int) []T {
	if offset >= len(items) {
		return nil
	}
	end := offset + limit
	if end > len(items) {
		end = len(items)
	}
	return items[offset:end]
}
