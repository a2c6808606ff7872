// Package postgres implements the storage interfaces directly against
// PostgreSQL for self-hosted deployments. It mirrors the hosted PostgREST
// backend: same tables, same criteria translation discipline, same error
// taxonomy at the seam.
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/LaunchLens/analysis_layer/internal/domain/idea"
	"github.com/LaunchLens/analysis_layer/internal/domain/plan"
	"github.com/LaunchLens/analysis_layer/internal/domain/project"
	"github.com/LaunchLens/analysis_layer/internal/result"
	"github.com/LaunchLens/analysis_layer/internal/search"
	"github.com/LaunchLens/analysis_layer/internal/storage"
)

// Store implements the storage interfaces backed by PostgreSQL.
type Store struct {
	db *sqlx.DB
}

var _ storage.Store = (*Store)(nil)

// New creates a Store using the provided database handle.
func New(db *sqlx.DB) *Store {
	return &Store{db: db}
}

// Open connects to the database and returns a ready Store.
func Open(dsn string) (*Store, error) {
	db, err := sqlx.Connect("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}
	return New(db), nil
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

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO ideas (id, owner_id, title, summary, category, locale, score, public, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`, it.ID, it.OwnerID, it.Title, it.Summary, it.Category, it.Locale, it.Score, it.Public, it.CreatedAt, it.UpdatedAt)
	if err != nil {
		return idea.Idea{}, translate(ctx, err)
	}
	return it, nil
}

func (s *Store) GetIdea(ctx context.Context, id string) (idea.Idea, error) {
	var it idea.Idea
	err := s.db.GetContext(ctx, &it, `
		SELECT id, owner_id, title, summary, category, locale, score, public, created_at, updated_at
		FROM ideas WHERE id = $1
	`, id)
	if err != nil {
		return idea.Idea{}, translate(ctx, err)
	}
	return it, nil
}

func (s *Store) UpdateIdea(ctx context.Context, it idea.Idea) (idea.Idea, error) {
	it.UpdatedAt = time.Now().UTC()
	res, err := s.db.ExecContext(ctx, `
		UPDATE ideas
		SET title = $2, summary = $3, category = $4, locale = $5, score = $6, public = $7, updated_at = $8
		WHERE id = $1
	`, it.ID, it.Title, it.Summary, it.Category, it.Locale, it.Score, it.Public, it.UpdatedAt)
	if err != nil {
		return idea.Idea{}, translate(ctx, err)
	}
	if rows, _ := res.RowsAffected(); rows == 0 {
		return idea.Idea{}, result.NotFound("idea not found: " + it.ID)
	}
	return it, nil
}

func (s *Store) DeleteIdea(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM ideas WHERE id = $1`, id)
	if err != nil {
		return translate(ctx, err)
	}
	if rows, _ := res.RowsAffected(); rows == 0 {
		return result.NotFound("idea not found: " + id)
	}
	return nil
}

func (s *Store) CountIdeas(ctx context.Context, criteria search.Criteria) (int, error) {
	return s.count(ctx, "ideas", criteria)
}

func (s *Store) SelectIdeas(ctx context.Context, criteria search.Criteria, spec search.Sort, limit, offset int) ([]idea.Idea, error) {
	query, args := selectQuery("ideas",
		"id, owner_id, title, summary, category, locale, score, public, created_at, updated_at",
		criteria, spec, limit, offset)
	var out []idea.Idea
	if err := s.db.SelectContext(ctx, &out, query, args...); err != nil {
		return nil, translate(ctx, err)
	}
	return out, nil
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

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO projects (id, owner_id, name, event, team_size, score, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`, p.ID, p.OwnerID, p.Name, p.Event, p.TeamSize, p.Score, p.CreatedAt, p.UpdatedAt)
	if err != nil {
		return project.Project{}, translate(ctx, err)
	}
	return p, nil
}

func (s *Store) GetProject(ctx context.Context, id string) (project.Project, error) {
	var p project.Project
	err := s.db.GetContext(ctx, &p, `
		SELECT id, owner_id, name, event, team_size, score, created_at, updated_at
		FROM projects WHERE id = $1
	`, id)
	if err != nil {
		return project.Project{}, translate(ctx, err)
	}
	return p, nil
}

func (s *Store) UpdateProject(ctx context.Context, p project.Project) (project.Project, error) {
	p.UpdatedAt = time.Now().UTC()
	res, err := s.db.ExecContext(ctx, `
		UPDATE projects
		SET name = $2, event = $3, team_size = $4, score = $5, updated_at = $6
		WHERE id = $1
	`, p.ID, p.Name, p.Event, p.TeamSize, p.Score, p.UpdatedAt)
	if err != nil {
		return project.Project{}, translate(ctx, err)
	}
	if rows, _ := res.RowsAffected(); rows == 0 {
		return project.Project{}, result.NotFound("project not found: " + p.ID)
	}
	return p, nil
}

func (s *Store) CountProjects(ctx context.Context, criteria search.Criteria) (int, error) {
	return s.count(ctx, "projects", criteria)
}

func (s *Store) SelectProjects(ctx context.Context, criteria search.Criteria, spec search.Sort, limit, offset int) ([]project.Project, error) {
	query, args := selectQuery("projects",
		"id, owner_id, name, event, team_size, score, created_at, updated_at",
		criteria, spec, limit, offset)
	var out []project.Project
	if err := s.db.SelectContext(ctx, &out, query, args...); err != nil {
		return nil, translate(ctx, err)
	}
	return out, nil
}

// --- PlanStore ---------------------------------------------------------------

func (s *Store) CreatePlan(ctx context.Context, doc plan.Document) (plan.Document, error) {
	if doc.ID == "" {
		doc.ID = uuid.NewString()
	}
	if doc.CreatedAt.IsZero() {
		doc.CreatedAt = time.Now().UTC()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO plans (id, idea_id, owner_id, kind, title, content, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, doc.ID, doc.IdeaID, doc.OwnerID, doc.Kind, doc.Title, doc.Content, doc.CreatedAt)
	if err != nil {
		return plan.Document{}, translate(ctx, err)
	}
	return doc, nil
}

func (s *Store) GetPlan(ctx context.Context, id string) (plan.Document, error) {
	var doc plan.Document
	err := s.db.GetContext(ctx, &doc, `
		SELECT id, idea_id, owner_id, kind, title, content, created_at
		FROM plans WHERE id = $1
	`, id)
	if err != nil {
		return plan.Document{}, translate(ctx, err)
	}
	return doc, nil
}

func (s *Store) DeletePlan(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM plans WHERE id = $1`, id)
	if err != nil {
		return translate(ctx, err)
	}
	if rows, _ := res.RowsAffected(); rows == 0 {
		return result.NotFound("plan not found: " + id)
	}
	return nil
}

func (s *Store) CountPlans(ctx context.Context, criteria search.Criteria) (int, error) {
	return s.count(ctx, "plans", criteria)
}

func (s *Store) SelectPlans(ctx context.Context, criteria search.Criteria, spec search.Sort, limit, offset int) ([]plan.Document, error) {
	query, args := selectQuery("plans",
		"id, idea_id, owner_id, kind, title, content, created_at",
		criteria, spec, limit, offset)
	var out []plan.Document
	if err := s.db.SelectContext(ctx, &out, query, args...); err != nil {
		return nil, translate(ctx, err)
	}
	return out, nil
}

// --- Criteria translation ----------------------------------------------------

func (s *Store) count(ctx context.Context, table string, criteria search.Criteria) (int, error) {
	where, args := whereClause(criteria)
	var total int
	if err := s.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM "+table+where, args...); err != nil {
		return 0, translate(ctx, err)
	}
	return total, nil
}

func selectQuery(table, columns string, criteria search.Criteria, spec search.Sort, limit, offset int) (string, []any) {
	where, args := whereClause(criteria)
	query := fmt.Sprintf("SELECT %s FROM %s%s ORDER BY %s LIMIT %d OFFSET %d",
		columns, table, where, orderClause(spec), limit, offset)
	return query, args
}

// whereClause translates an immutable Criteria into SQL in one step.
// Predicates come out in a deterministic order so generated queries are
// stable and assertable in tests.
func whereClause(c search.Criteria) (string, []any) {
	var (
		conds []string
		args  []any
	)
	next := func() string { return fmt.Sprintf("$%d", len(args)+1) }

	equals := c.Equals()
	for _, field := range sortedKeys(equals) {
		conds = append(conds, field+" = "+next())
		args = append(args, equals[field])
	}
	ranges := c.Ranges()
	for _, field := range sortedKeys(ranges) {
		r := ranges[field]
		if r.Min != nil {
			conds = append(conds, field+" >= "+next())
			args = append(args, *r.Min)
		}
		if r.Max != nil {
			conds = append(conds, field+" <= "+next())
			args = append(args, *r.Max)
		}
	}
	times := c.TimeRanges()
	for _, field := range sortedKeys(times) {
		r := times[field]
		if r.From != nil {
			conds = append(conds, field+" >= "+next())
			args = append(args, r.From.UTC())
		}
		if r.To != nil {
			conds = append(conds, field+" <= "+next())
			args = append(args, r.To.UTC())
		}
	}
	contains := c.Contains()
	for _, field := range sortedKeys(contains) {
		conds = append(conds, field+" ILIKE "+next())
		args = append(args, "%"+escapeLike(contains[field])+"%")
	}
	flags := c.Flags()
	for _, field := range sortedKeys(flags) {
		conds = append(conds, field+" = "+next())
		args = append(args, flags[field])
	}

	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

func orderClause(spec search.Sort) string {
	dir := "ASC"
	if spec.Descending {
		dir = "DESC"
	}
	order := spec.Field + " " + dir
	if spec.Field != "created_at" {
		order += ", created_at DESC"
	}
	return order
}

func escapeLike(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, "%", `\%`)
	return strings.ReplaceAll(s, "_", `\_`)
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// --- Error translation -------------------------------------------------------

// translate converts driver errors into the taxonomy at this single seam.
func translate(ctx context.Context, err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return result.NotFound("row not found")
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) || ctx.Err() != nil {
		return result.TransientStorage("cancelled")
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch {
		case pqErr.Code.Class() == "23":
			return result.Validation("conflicts with stored data", pqErr.Message)
		case pqErr.Code.Class() == "08", pqErr.Code == "57014":
			return result.TransientStorage("storage unavailable: " + pqErr.Message)
		}
	}
	if errors.Is(err, sql.ErrConnDone) || errors.Is(err, sql.ErrTxDone) {
		return result.TransientStorage("connection lost")
	}
	return result.Unexpected("storage error: " + err.Error())
}
