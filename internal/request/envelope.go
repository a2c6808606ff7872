// Package request defines the command/query envelope model and the schema
// validation that turns untyped external input into typed, immutable
// requests. Every request enters the core through Validate; handlers only
// ever see fully constructed values.
package request

import (
	"time"

	"github.com/google/uuid"

	"github.com/LaunchLens/analysis_layer/internal/search"
)

// Request kinds. The set is closed: dispatch is an exhaustive switch over
// the concrete types below, and an unknown kind never survives validation.
const (
	KindIdeaSubmit     = "idea.submit"
	KindIdeaScore      = "idea.score"
	KindIdeaDelete     = "idea.delete"
	KindIdeaGet        = "idea.get"
	KindIdeaSearch     = "idea.search"
	KindProjectSubmit  = "project.submit"
	KindProjectScore   = "project.score"
	KindProjectSearch  = "project.search"
	KindPlanGenerate   = "plan.generate"
	KindPlanDelete     = "plan.delete"
	KindPlanList       = "plan.list"
)

// Meta is the envelope plumbing shared by every command and query: a stable
// kind tag for routing and logging, a correlation id threading the request
// through every log line, and the construction time. Handlers route on the
// concrete request type and must not branch on these fields for business
// decisions.
type Meta struct {
	Kind          string
	CorrelationID string
	CreatedAt     time.Time
}

// RequestKind returns the kind tag.
func (m Meta) RequestKind() string { return m.Kind }

// Correlation returns the correlation id.
func (m Meta) Correlation() string { return m.CorrelationID }

// IssuedAt returns the envelope construction time.
func (m Meta) IssuedAt() time.Time { return m.CreatedAt }

func (m Meta) isRequest() {}

// newMeta stamps an envelope. A missing correlation id gets a fresh opaque
// token so the request stays traceable end to end.
func newMeta(kind, correlationID string) Meta {
	if correlationID == "" {
		correlationID = uuid.NewString()
	}
	return Meta{Kind: kind, CorrelationID: correlationID, CreatedAt: time.Now().UTC()}
}

// Request is the closed union of all commands and queries. The unexported
// method keeps the set closed to this package.
type Request interface {
	RequestKind() string
	Correlation() string
	IssuedAt() time.Time
	isRequest()
}

// --- Commands ---------------------------------------------------------------

// SubmitIdea records a new startup idea for the owning user.
type SubmitIdea struct {
	Meta
	OwnerID  string
	Title    string
	Summary  string
	Category string
	Locale   string
	Public   bool
}

// ScoreIdea asks the analysis boundary to score an existing idea.
type ScoreIdea struct {
	Meta
	IdeaID string
}

// DeleteIdea removes an idea owned by the caller.
type DeleteIdea struct {
	Meta
	IdeaID  string
	OwnerID string
}

// SubmitProject records a new hackathon project.
type SubmitProject struct {
	Meta
	OwnerID  string
	Name     string
	Event    string
	TeamSize int
}

// ScoreProject asks the analysis boundary to score an existing project.
type ScoreProject struct {
	Meta
	ProjectID string
}

// GeneratePlan asks the planning boundary to produce a document for an idea.
type GeneratePlan struct {
	Meta
	IdeaID   string
	OwnerID  string
	PlanKind string
}

// DeletePlan removes a planning document owned by the caller.
type DeletePlan struct {
	Meta
	PlanID  string
	OwnerID string
}

// --- Queries ----------------------------------------------------------------

// GetIdea fetches a single idea by id.
type GetIdea struct {
	Meta
	IdeaID string
}

// SearchIdeas is a multi-criteria idea search. Nil pointer fields impose no
// constraint.
type SearchIdeas struct {
	Meta
	Category      *string
	Locale        *string
	OwnerID       *string
	MinScore      *float64
	MaxScore      *float64
	TitleContains string
	Public        *bool
	CreatedAfter  *time.Time
	CreatedBefore *time.Time
	Sort          search.Sort
	Page          search.Page
}

// SearchProjects is a multi-criteria project search.
type SearchProjects struct {
	Meta
	Event        *string
	OwnerID      *string
	MinScore     *float64
	MaxScore     *float64
	MinTeamSize  *float64
	MaxTeamSize  *float64
	NameContains string
	Sort         search.Sort
	Page         search.Page
}

// ListPlans lists the planning documents generated for an idea.
type ListPlans struct {
	Meta
	IdeaID string
	Page   search.Page
}
