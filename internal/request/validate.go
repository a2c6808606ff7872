package request

import (
	"github.com/LaunchLens/analysis_layer/internal/domain/idea"
	"github.com/LaunchLens/analysis_layer/internal/domain/plan"
	"github.com/LaunchLens/analysis_layer/internal/domain/project"
	"github.com/LaunchLens/analysis_layer/internal/result"
	"github.com/LaunchLens/analysis_layer/internal/search"
)

// Field length caps shared by the schemas below.
const (
	maxTitleLen   = 200
	maxSummaryLen = 4000
	maxNameLen    = 200
	maxIDLen      = 64
)

var locales = []string{"en", "de", "fr", "es", "pt", "ja", "zh"}

// Validate converts untyped external input into a typed request envelope.
// All field, coercion and cross-field violations for the payload are
// collected in one pass; on any violation the result is a Validation
// failure carrying one message per violated constraint and no envelope is
// constructed. An empty correlationID gets a generated token.
func Validate(kind string, raw map[string]any, correlationID string) result.Result[Request] {
	switch kind {
	case KindIdeaSubmit:
		return validateSubmitIdea(raw, correlationID)
	case KindIdeaScore:
		return validateScoreIdea(raw, correlationID)
	case KindIdeaDelete:
		return validateDeleteIdea(raw, correlationID)
	case KindIdeaGet:
		return validateGetIdea(raw, correlationID)
	case KindIdeaSearch:
		return validateSearchIdeas(raw, correlationID)
	case KindProjectSubmit:
		return validateSubmitProject(raw, correlationID)
	case KindProjectScore:
		return validateScoreProject(raw, correlationID)
	case KindProjectSearch:
		return validateSearchProjects(raw, correlationID)
	case KindPlanGenerate:
		return validateGeneratePlan(raw, correlationID)
	case KindPlanDelete:
		return validateDeletePlan(raw, correlationID)
	case KindPlanList:
		return validateListPlans(raw, correlationID)
	default:
		return result.Fail[Request](result.Validation("invalid request", "kind unknown: "+kind))
	}
}

func invalid(f *form) result.Result[Request] {
	return result.Fail[Request](result.Validation("invalid request", f.violations...))
}

func validateSubmitIdea(raw map[string]any, correlationID string) result.Result[Request] {
	f := newForm(raw)
	ownerID := f.requireString("owner_id", maxIDLen)
	title := f.requireString("title", maxTitleLen)
	summary := f.requireString("summary", maxSummaryLen)
	category := f.requireString("category", 32)
	f.enum("category", category, idea.Categories)
	locale := "en"
	if l := f.optionalString("locale", 8); l != nil {
		locale = *l
		f.enum("locale", locale, locales)
	}
	public := f.boolOr("public", false)
	if !f.ok() {
		return invalid(f)
	}
	return result.OK[Request](&SubmitIdea{
		Meta:     newMeta(KindIdeaSubmit, correlationID),
		OwnerID:  ownerID,
		Title:    title,
		Summary:  summary,
		Category: category,
		Locale:   locale,
		Public:   public,
	})
}

func validateScoreIdea(raw map[string]any, correlationID string) result.Result[Request] {
	f := newForm(raw)
	ideaID := f.requireString("idea_id", maxIDLen)
	if !f.ok() {
		return invalid(f)
	}
	return result.OK[Request](&ScoreIdea{Meta: newMeta(KindIdeaScore, correlationID), IdeaID: ideaID})
}

func validateDeleteIdea(raw map[string]any, correlationID string) result.Result[Request] {
	f := newForm(raw)
	ideaID := f.requireString("idea_id", maxIDLen)
	ownerID := f.requireString("owner_id", maxIDLen)
	if !f.ok() {
		return invalid(f)
	}
	return result.OK[Request](&DeleteIdea{Meta: newMeta(KindIdeaDelete, correlationID), IdeaID: ideaID, OwnerID: ownerID})
}

func validateGetIdea(raw map[string]any, correlationID string) result.Result[Request] {
	f := newForm(raw)
	ideaID := f.requireString("idea_id", maxIDLen)
	if !f.ok() {
		return invalid(f)
	}
	return result.OK[Request](&GetIdea{Meta: newMeta(KindIdeaGet, correlationID), IdeaID: ideaID})
}

func validateSearchIdeas(raw map[string]any, correlationID string) result.Result[Request] {
	f := newForm(raw)
	category := f.optionalString("category", 32)
	if category != nil {
		f.enum("category", *category, idea.Categories)
	}
	locale := f.optionalString("locale", 8)
	if locale != nil {
		f.enum("locale", *locale, locales)
	}
	ownerID := f.optionalString("owner_id", maxIDLen)
	minScore := f.optionalNumber("min_score", 0, 100)
	maxScore := f.optionalNumber("max_score", 0, 100)
	if minScore != nil && maxScore != nil && *minScore > *maxScore {
		f.fail("min_score", "must not exceed max_score")
	}
	var titleContains string
	if q := f.optionalString("title_contains", maxTitleLen); q != nil {
		titleContains = *q
	}
	public := f.optionalBool("public")
	createdAfter := f.optionalTime("created_after")
	createdBefore := f.optionalTime("created_before")
	if createdAfter != nil && createdBefore != nil && createdAfter.After(*createdBefore) {
		f.fail("created_after", "must not be later than created_before")
	}
	sort := f.sortSpec(idea.SortableFields)
	page := f.pageSpec()
	if !f.ok() {
		return invalid(f)
	}
	return result.OK[Request](&SearchIdeas{
		Meta:          newMeta(KindIdeaSearch, correlationID),
		Category:      category,
		Locale:        locale,
		OwnerID:       ownerID,
		MinScore:      minScore,
		MaxScore:      maxScore,
		TitleContains: titleContains,
		Public:        public,
		CreatedAfter:  createdAfter,
		CreatedBefore: createdBefore,
		Sort:          sort,
		Page:          page,
	})
}

func validateSubmitProject(raw map[string]any, correlationID string) result.Result[Request] {
	f := newForm(raw)
	ownerID := f.requireString("owner_id", maxIDLen)
	name := f.requireString("name", maxNameLen)
	event := f.requireString("event", maxNameLen)
	teamSize := f.requireInt("team_size", project.MinTeamSize, project.MaxTeamSize)
	if !f.ok() {
		return invalid(f)
	}
	return result.OK[Request](&SubmitProject{
		Meta:     newMeta(KindProjectSubmit, correlationID),
		OwnerID:  ownerID,
		Name:     name,
		Event:    event,
		TeamSize: teamSize,
	})
}

func validateScoreProject(raw map[string]any, correlationID string) result.Result[Request] {
	f := newForm(raw)
	projectID := f.requireString("project_id", maxIDLen)
	if !f.ok() {
		return invalid(f)
	}
	return result.OK[Request](&ScoreProject{Meta: newMeta(KindProjectScore, correlationID), ProjectID: projectID})
}

func validateSearchProjects(raw map[string]any, correlationID string) result.Result[Request] {
	f := newForm(raw)
	event := f.optionalString("event", maxNameLen)
	ownerID := f.optionalString("owner_id", maxIDLen)
	minScore := f.optionalNumber("min_score", 0, 100)
	maxScore := f.optionalNumber("max_score", 0, 100)
	if minScore != nil && maxScore != nil && *minScore > *maxScore {
		f.fail("min_score", "must not exceed max_score")
	}
	minTeam := f.optionalNumber("min_team_size", project.MinTeamSize, project.MaxTeamSize)
	maxTeam := f.optionalNumber("max_team_size", project.MinTeamSize, project.MaxTeamSize)
	if minTeam != nil && maxTeam != nil && *minTeam > *maxTeam {
		f.fail("min_team_size", "must not exceed max_team_size")
	}
	var nameContains string
	if q := f.optionalString("name_contains", maxNameLen); q != nil {
		nameContains = *q
	}
	sort := f.sortSpec(project.SortableFields)
	page := f.pageSpec()
	if !f.ok() {
		return invalid(f)
	}
	return result.OK[Request](&SearchProjects{
		Meta:         newMeta(KindProjectSearch, correlationID),
		Event:        event,
		OwnerID:      ownerID,
		MinScore:     minScore,
		MaxScore:     maxScore,
		MinTeamSize:  minTeam,
		MaxTeamSize:  maxTeam,
		NameContains: nameContains,
		Sort:         sort,
		Page:         page,
	})
}

func validateGeneratePlan(raw map[string]any, correlationID string) result.Result[Request] {
	f := newForm(raw)
	ideaID := f.requireString("idea_id", maxIDLen)
	ownerID := f.requireString("owner_id", maxIDLen)
	kind := f.requireString("kind", 16)
	f.enum("kind", kind, plan.Kinds)
	if !f.ok() {
		return invalid(f)
	}
	return result.OK[Request](&GeneratePlan{
		Meta:     newMeta(KindPlanGenerate, correlationID),
		IdeaID:   ideaID,
		OwnerID:  ownerID,
		PlanKind: kind,
	})
}

func validateDeletePlan(raw map[string]any, correlationID string) result.Result[Request] {
	f := newForm(raw)
	planID := f.requireString("plan_id", maxIDLen)
	ownerID := f.requireString("owner_id", maxIDLen)
	if !f.ok() {
		return invalid(f)
	}
	return result.OK[Request](&DeletePlan{Meta: newMeta(KindPlanDelete, correlationID), PlanID: planID, OwnerID: ownerID})
}

func validateListPlans(raw map[string]any, correlationID string) result.Result[Request] {
	f := newForm(raw)
	ideaID := f.requireString("idea_id", maxIDLen)
	page := f.pageSpec()
	if !f.ok() {
		return invalid(f)
	}
	return result.OK[Request](&ListPlans{Meta: newMeta(KindPlanList, correlationID), IdeaID: ideaID, Page: page})
}

// sortSpec parses the optional sort/direction pair against the sortable
// fields of the target aggregate. Absent sort means the handler default.
func (f *form) sortSpec(sortable map[string]bool) search.Sort {
	field := f.optionalString("sort", 64)
	if field == nil {
		return search.Sort{}
	}
	if !sortable[*field] {
		f.fail("sort", "is not a sortable field: "+*field)
		return search.Sort{}
	}
	descending := false
	if dir := f.optionalString("direction", 8); dir != nil {
		switch *dir {
		case "asc":
		case "desc":
			descending = true
		default:
			f.fail("direction", "must be asc or desc")
		}
	}
	return search.Sort{Field: *field, Descending: descending}
}

// pageSpec parses the pagination window, defaulting to the first page with
// the standard limit. Bounds are enforced here so the search engine can
// assume a valid window.
func (f *form) pageSpec() search.Page {
	number := f.intOr("page", 1, 1, 0)
	limit := f.intOr("limit", search.DefaultLimit, 1, search.MaxLimit)
	return search.Page{Number: number, Limit: limit}
}
