package supabase

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	neturl "net/url"
	"time"

	"github.com/google/uuid"

	"github.com/LaunchLens/analysis_layer/internal/domain/idea"
	"github.com/LaunchLens/analysis_layer/internal/domain/plan"
	"github.com/LaunchLens/analysis_layer/internal/domain/project"
	"github.com/LaunchLens/analysis_layer/internal/result"
	"github.com/LaunchLens/analysis_layer/internal/search"
	"github.com/LaunchLens/analysis_layer/internal/storage"
)

// Table names in the hosted project.
const (
	tableIdeas    = "ideas"
	tableProjects = "projects"
	tablePlans    = "plans"
)

// Store implements the storage interfaces against PostgREST.
type Store struct {
	client *Client
}

var _ storage.Store = (*Store)(nil)

// New creates a Store over an existing client.
func New(client *Client) *Store {
	return &Store{client: client}
}

// --- IdeaStore ---------------------------------------------------------------

func (s *Store) CreateIdea(ctx context.Context, it idea.Idea) (idea.Idea, error) {
	if it.ID == "" {
		it.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if it.CreatedAt.IsZero() {
		it.CreatedAt = now
	}
	it.UpdatedAt = it.CreatedAt
	return insertRow(ctx, s.client, tableIdeas, it)
}

func (s *Store) GetIdea(ctx context.Context, id string) (idea.Idea, error) {
	return fetchRow[idea.Idea](ctx, s.client, tableIdeas, id)
}

func (s *Store) UpdateIdea(ctx context.Context, it idea.Idea) (idea.Idea, error) {
	it.UpdatedAt = time.Now().UTC()
	return patchRow(ctx, s.client, tableIdeas, it.ID, it)
}

func (s *Store) DeleteIdea(ctx context.Context, id string) error {
	return deleteRow(ctx, s.client, tableIdeas, id)
}

func (s *Store) CountIdeas(ctx context.Context, criteria search.Criteria) (int, error) {
	return countRows(ctx, s.client, tableIdeas, criteria)
}

func (s *Store) SelectIdeas(ctx context.Context, criteria search.Criteria, spec search.Sort, limit, offset int) ([]idea.Idea, error) {
	return selectRows[idea.Idea](ctx, s.client, tableIdeas, criteria, spec, limit, offset)
}

// --- ProjectStore ------------------------------------------------------------

func (s *Store) CreateProject(ctx context.Context, p project.Project) (project.Project, error) {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if p.CreatedAt.IsZero() {
		p.CreatedAt = now
	}
	p.UpdatedAt = p.CreatedAt
	return insertRow(ctx, s.client, tableProjects, p)
}

func (s *Store) GetProject(ctx context.Context, id string) (project.Project, error) {
	return fetchRow[project.Project](ctx, s.client, tableProjects, id)
}

func (s *Store) UpdateProject(ctx context.Context, p project.Project) (project.Project, error) {
	p.UpdatedAt = time.Now().UTC()
	return patchRow(ctx, s.client, tableProjects, p.ID, p)
}

func (s *Store) CountProjects(ctx context.Context, criteria search.Criteria) (int, error) {
	return countRows(ctx, s.client, tableProjects, criteria)
}

func (s *Store) SelectProjects(ctx context.Context, criteria search.Criteria, spec search.Sort, limit, offset int) ([]project.Project, error) {
	return selectRows[project.Project](ctx, s.client, tableProjects, criteria, spec, limit, offset)
}

// --- PlanStore ---------------------------------------------------------------

func (s *Store) CreatePlan(ctx context.Context, doc plan.Document) (plan.Document, error) {
	if doc.ID == "" {
		doc.ID = uuid.NewString()
	}
	if doc.CreatedAt.IsZero() {
		doc.CreatedAt = time.Now().UTC()
	}
	return insertRow(ctx, s.client, tablePlans, doc)
}

func (s *Store) GetPlan(ctx context.Context, id string) (plan.Document, error) {
	return fetchRow[plan.Document](ctx, s.client, tablePlans, id)
}

func (s *Store) DeletePlan(ctx context.Context, id string) error {
	return deleteRow(ctx, s.client, tablePlans, id)
}

func (s *Store) CountPlans(ctx context.Context, criteria search.Criteria) (int, error) {
	return countRows(ctx, s.client, tablePlans, criteria)
}

func (s *Store) SelectPlans(ctx context.Context, criteria search.Criteria, spec search.Sort, limit, offset int) ([]plan.Document, error) {
	return selectRows[plan.Document](ctx, s.client, tablePlans, criteria, spec, limit, offset)
}

// --- Row helpers -------------------------------------------------------------

func insertRow[T any](ctx context.Context, c *Client, table string, row T) (T, error) {
	var zero T
	body, err := json.Marshal(row)
	if err != nil {
		return zero, result.Unexpected("marshal row: " + err.Error())
	}
	resp, status, _, err := c.do(ctx, http.MethodPost, table, "", body, map[string]string{
		"Prefer": "return=representation",
	})
	if err != nil {
		return zero, err
	}
	if status >= 400 {
		return zero, classifyStatus(status, resp)
	}
	return decodeSingle[T](resp)
}

func fetchRow[T any](ctx context.Context, c *Client, table, id string) (T, error) {
	var zero T
	query := "id=eq." + neturl.QueryEscape(id) + "&limit=1"
	resp, status, _, err := c.do(ctx, http.MethodGet, table, query, nil, map[string]string{
		"Accept": "application/vnd.pgrst.object+json",
	})
	if err != nil {
		return zero, err
	}
	if status >= 400 {
		return zero, classifyStatus(status, resp)
	}
	var row T
	if err := json.Unmarshal(resp, &row); err != nil {
		return zero, result.Unexpected("decode row: " + err.Error())
	}
	return row, nil
}

func patchRow[T any](ctx context.Context, c *Client, table, id string, row T) (T, error) {
	var zero T
	body, err := json.Marshal(row)
	if err != nil {
		return zero, result.Unexpected("marshal row: " + err.Error())
	}
	query := "id=eq." + neturl.QueryEscape(id)
	resp, status, _, err := c.do(ctx, http.MethodPatch, table, query, body, map[string]string{
		"Prefer": "return=representation",
	})
	if err != nil {
		return zero, err
	}
	if status >= 400 {
		return zero, classifyStatus(status, resp)
	}
	return decodeSingle[T](resp)
}

func deleteRow(ctx context.Context, c *Client, table, id string) error {
	query := "id=eq." + neturl.QueryEscape(id)
	resp, status, _, err := c.do(ctx, http.MethodDelete, table, query, nil, map[string]string{
		"Prefer": "return=representation",
	})
	if err != nil {
		return err
	}
	if status >= 400 {
		return classifyStatus(status, resp)
	}
	var rows []json.RawMessage
	if err := json.Unmarshal(resp, &rows); err != nil {
		return result.Unexpected("decode delete response: " + err.Error())
	}
	if len(rows) == 0 {
		return result.NotFound("row not found")
	}
	return nil
}

func countRows(ctx context.Context, c *Client, table string, criteria search.Criteria) (int, error) {
	resp, status, header, err := c.do(ctx, http.MethodGet, table, encodeCount(criteria), nil, map[string]string{
		"Prefer": "count=exact",
	})
	if err != nil {
		return 0, err
	}
	if status >= 400 {
		return 0, classifyStatus(status, resp)
	}
	total, err := parseContentRange(header)
	if err != nil {
		return 0, result.Unexpected("count read: " + err.Error())
	}
	return total, nil
}

func selectRows[T any](ctx context.Context, c *Client, table string, criteria search.Criteria, spec search.Sort, limit, offset int) ([]T, error) {
	resp, status, _, err := c.do(ctx, http.MethodGet, table, encodeSelect(criteria, spec, limit, offset), nil, nil)
	if err != nil {
		return nil, err
	}
	if status >= 400 {
		return nil, classifyStatus(status, resp)
	}
	var rows []T
	if err := json.Unmarshal(resp, &rows); err != nil {
		return nil, result.Unexpected("decode rows: " + err.Error())
	}
	return rows, nil
}

// decodeSingle unwraps a return=representation response, which PostgREST
// sends as a one-element array.
func decodeSingle[T any](body []byte) (T, error) {
	var zero T
	var rows []T
	if err := json.Unmarshal(body, &rows); err != nil {
		return zero, result.Unexpected("decode row: " + err.Error())
	}
	if len(rows) == 0 {
		return zero, result.NotFound("row not found")
	}
	if len(rows) > 1 {
		return zero, result.Unexpected(fmt.Sprintf("expected one row, got %d", len(rows)))
	}
	return rows[0], nil
}
