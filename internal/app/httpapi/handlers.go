package httpapi

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/LaunchLens/analysis_layer/internal/request"
)

// Handlers translate route shape into raw request payloads. The caller
// identity always overrides any owner field in the body; clients cannot act
// on someone else's behalf.

func (s *Server) handleSubmitIdea(w http.ResponseWriter, r *http.Request) {
	raw, errResp := decodeBody(r)
	if errResp != nil {
		s.writeError(w, r.Header.Get(correlationHeader), request.KindIdeaSubmit, errResp)
		return
	}
	raw["owner_id"] = SubjectFrom(r.Context())
	s.process(w, r, request.KindIdeaSubmit, raw, http.StatusCreated)
}

func (s *Server) handleGetIdea(w http.ResponseWriter, r *http.Request) {
	raw := map[string]any{"idea_id": mux.Vars(r)["id"]}
	s.process(w, r, request.KindIdeaGet, raw, http.StatusOK)
}

func (s *Server) handleDeleteIdea(w http.ResponseWriter, r *http.Request) {
	raw := map[string]any{
		"idea_id":  mux.Vars(r)["id"],
		"owner_id": SubjectFrom(r.Context()),
	}
	s.process(w, r, request.KindIdeaDelete, raw, http.StatusOK)
}

func (s *Server) handleScoreIdea(w http.ResponseWriter, r *http.Request) {
	raw := map[string]any{"idea_id": mux.Vars(r)["id"]}
	s.process(w, r, request.KindIdeaScore, raw, http.StatusOK)
}

func (s *Server) handleSearchIdeas(w http.ResponseWriter, r *http.Request) {
	raw, errResp := decodeBody(r)
	if errResp != nil {
		s.writeError(w, r.Header.Get(correlationHeader), request.KindIdeaSearch, errResp)
		return
	}
	s.process(w, r, request.KindIdeaSearch, raw, http.StatusOK)
}

func (s *Server) handleSubmitProject(w http.ResponseWriter, r *http.Request) {
	raw, errResp := decodeBody(r)
	if errResp != nil {
		s.writeError(w, r.Header.Get(correlationHeader), request.KindProjectSubmit, errResp)
		return
	}
	raw["owner_id"] = SubjectFrom(r.Context())
	s.process(w, r, request.KindProjectSubmit, raw, http.StatusCreated)
}

func (s *Server) handleScoreProject(w http.ResponseWriter, r *http.Request) {
	raw := map[string]any{"project_id": mux.Vars(r)["id"]}
	s.process(w, r, request.KindProjectScore, raw, http.StatusOK)
}

func (s *Server) handleSearchProjects(w http.ResponseWriter, r *http.Request) {
	raw, errResp := decodeBody(r)
	if errResp != nil {
		s.writeError(w, r.Header.Get(correlationHeader), request.KindProjectSearch, errResp)
		return
	}
	s.process(w, r, request.KindProjectSearch, raw, http.StatusOK)
}

func (s *Server) handleGeneratePlan(w http.ResponseWriter, r *http.Request) {
	raw, errResp := decodeBody(r)
	if errResp != nil {
		s.writeError(w, r.Header.Get(correlationHeader), request.KindPlanGenerate, errResp)
		return
	}
	raw["idea_id"] = mux.Vars(r)["id"]
	raw["owner_id"] = SubjectFrom(r.Context())
	s.process(w, r, request.KindPlanGenerate, raw, http.StatusCreated)
}

func (s *Server) handleListPlans(w http.ResponseWriter, r *http.Request) {
	raw := map[string]any{"idea_id": mux.Vars(r)["id"]}
	// Pagination rides on the query string for GET routes; validation of the
	// values happens in the core like everywhere else.
	if page := r.URL.Query().Get("page"); page != "" {
		raw["page"] = queryNumber(page)
	}
	if limit := r.URL.Query().Get("limit"); limit != "" {
		raw["limit"] = queryNumber(limit)
	}
	s.process(w, r, request.KindPlanList, raw, http.StatusOK)
}

func (s *Server) handleDeletePlan(w http.ResponseWriter, r *http.Request) {
	raw := map[string]any{
		"plan_id":  mux.Vars(r)["id"],
		"owner_id": SubjectFrom(r.Context()),
	}
	s.process(w, r, request.KindPlanDelete, raw, http.StatusOK)
}

// queryNumber passes numeric query values through as numbers and leaves
// anything else as the raw string for the validator to reject with a field
// message.
func queryNumber(v string) any {
	if n, err := strconv.Atoi(v); err == nil {
		return n
	}
	return v
}
