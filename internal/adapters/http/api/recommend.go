// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	classify "github.com/d6vs-git/us-squash-sub000/internal/domain/classify"
	division "github.com/d6vs-git/us-squash-sub000/internal/domain/division"
	planner "github.com/d6vs-git/us-squash-sub000/internal/planner"
)

// recommendRequest mirrors the request schema for POST /recommendations.
type recommendRequest struct {
	UserData    planner.UserData      `json:"user_data"`
	Tournaments []classify.Tournament `json:"tournaments"`
	Goal        planner.Goal          `json:"goal"`
}

func (r recommendRequest) validate() error {
	switch {
	case r.UserData.PlayerID <= 0:
		return errors.New("missing user_data.player_id")
	case strings.TrimSpace(r.UserData.BirthDate) == "":
		return errors.New("missing user_data.birth_date")
	case strings.TrimSpace(r.UserData.Gender) == "":
		return errors.New("missing user_data.gender")
	case r.Goal.TargetRanking < 0:
		return errors.New("goal.target_ranking must not be negative")
	}
	return nil
}

// RecommendHandler handles tournament plan requests.
type RecommendHandler struct {
	deps Dependencies
}

// NewRecommendHandler creates a new recommendation handler.
func NewRecommendHandler(deps Dependencies) *RecommendHandler {
	return &RecommendHandler{deps: deps}
}

// HandlePostRecommendations handles POST /recommendations requests.
func (h *RecommendHandler) HandlePostRecommendations(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", nil)
		return
	}

	var req recommendRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", ErrBadRequest)
		return
	}
	if err := req.validate(); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", err)
		return
	}

	rec, err := h.deps.GenerateRecommendations(r.Context(), req.UserData, req.Tournaments, req.Goal)
	if err != nil {
		status, code, werr := planStatus(err)
		writeError(w, status, code, werr)
		return
	}

	writeJSON(w, http.StatusOK, rec)
}

// planStatus translates pipeline failures to HTTP statuses. Division
// resolution is a caller-data problem; everything else is upstream.
func planStatus(err error) (int, string, error) {
	switch {
	case errors.Is(err, division.ErrUnresolved):
		return http.StatusUnprocessableEntity, "division_unresolved", err
	case errors.Is(err, planner.ErrGeneration):
		return http.StatusBadGateway, "generation_failed", err
	default:
		return http.StatusBadGateway, "plan_failed", fmt.Errorf("%w: %v", ErrUpstream, err)
	}
}
