package api

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/louisbranch/solo.space/internal/campaign"
	"github.com/louisbranch/solo.space/internal/core/check"
	apperrors "github.com/louisbranch/solo.space/internal/platform/errors"
	"github.com/louisbranch/solo.space/internal/tables"
)

type createCampaignRequest struct {
	Name string `json:"name"`
	// Seed is a decimal string so 64-bit values survive JavaScript clients.
	Seed       *uint64  `json:"seed,omitempty,string"`
	Characters []string `json:"characters,omitempty"`
	Threads    []string `json:"threads,omitempty"`
}

type endSceneRequest struct {
	InControl          bool     `json:"in_control"`
	NewCharacters      []string `json:"new_characters,omitempty"`
	FeaturedCharacters []string `json:"featured_characters,omitempty"`
	RemovedCharacters  []string `json:"removed_characters,omitempty"`
	NewThreads         []string `json:"new_threads,omitempty"`
	FeaturedThreads    []string `json:"featured_threads,omitempty"`
	ClosedThreads      []string `json:"closed_threads,omitempty"`
}

type fateRequest struct {
	Question   string `json:"question,omitempty"`
	Likelihood string `json:"likelihood"`
}

type checkRequest struct {
	Skill              string `json:"skill"`
	Ability            string `json:"ability,omitempty"`
	Kind               string `json:"kind,omitempty"`
	Difficulty         int    `json:"difficulty,omitempty"`
	OpponentDifficulty int    `json:"opponent_difficulty,omitempty"`
	Advantage          string `json:"advantage,omitempty"`
	Stakes             string `json:"stakes,omitempty"`
	PartialThreshold   *int   `json:"partial_threshold,omitempty"`
	PartialOutcome     string `json:"partial_outcome,omitempty"`
	Reason             string `json:"reason,omitempty"`
	Modifier           int    `json:"modifier,omitempty"`
}

type rollTableRequest struct {
	SceneID    string   `json:"scene_id,omitempty"`
	LocationID string   `json:"location_id,omitempty"`
	NodeID     string   `json:"node_id,omitempty"`
	Tags       []string `json:"tags,omitempty"`
	Danger     int      `json:"danger,omitempty"`
}

type rollDiceRequest struct {
	Dice []string `json:"dice"`
}

type tableSummary struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Scope string `json:"scope"`
	Dice  string `json:"dice"`
}

func (s *Server) listTables(w http.ResponseWriter, _ *http.Request) {
	defs := s.service.Tables()
	out := make([]tableSummary, 0, len(defs))
	for _, t := range defs {
		out = append(out, tableSummary{ID: t.ID, Name: t.Name, Scope: t.Scope, Dice: t.Dice})
	}
	writeJSON(w, http.StatusOK, map[string]any{"tables": out})
}

func (s *Server) createCampaign(w http.ResponseWriter, r *http.Request) {
	var req createCampaignRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	created, err := s.service.Create(r.Context(), campaign.CreateInput{
		Name:       req.Name,
		Seed:       req.Seed,
		Characters: req.Characters,
		Threads:    req.Threads,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (s *Server) getCampaign(w http.ResponseWriter, r *http.Request) {
	c, err := s.service.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

func (s *Server) beginScene(w http.ResponseWriter, r *http.Request) {
	result, err := s.service.BeginScene(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) endScene(w http.ResponseWriter, r *http.Request) {
	var req endSceneRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	c, err := s.service.EndScene(r.Context(), chi.URLParam(r, "id"), campaign.EndSceneInput{
		InControl:          req.InControl,
		NewCharacters:      req.NewCharacters,
		FeaturedCharacters: req.FeaturedCharacters,
		RemovedCharacters:  req.RemovedCharacters,
		NewThreads:         req.NewThreads,
		FeaturedThreads:    req.FeaturedThreads,
		ClosedThreads:      req.ClosedThreads,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

func (s *Server) askFate(w http.ResponseWriter, r *http.Request) {
	var req fateRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	result, err := s.service.AskFate(r.Context(), chi.URLParam(r, "id"), campaign.FateInput{
		Question:   req.Question,
		Likelihood: req.Likelihood,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) rollCheck(w http.ResponseWriter, r *http.Request) {
	var req checkRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	result, err := s.service.RollCheck(r.Context(), chi.URLParam(r, "id"), campaign.CheckInput{
		Request: check.Request{
			Skill:              req.Skill,
			Ability:            req.Ability,
			Kind:               check.ParseKind(req.Kind),
			Difficulty:         req.Difficulty,
			OpponentDifficulty: req.OpponentDifficulty,
			Advantage:          check.ParseAdvantage(req.Advantage),
			Stakes:             req.Stakes,
			PartialThreshold:   req.PartialThreshold,
			PartialOutcome:     req.PartialOutcome,
			Reason:             req.Reason,
		},
		Modifier: req.Modifier,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) rollTable(w http.ResponseWriter, r *http.Request) {
	var req rollTableRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	result, err := s.service.RollTable(r.Context(), chi.URLParam(r, "id"), chi.URLParam(r, "table"), tables.Context{
		SceneID:        req.SceneID,
		LocationID:     req.LocationID,
		NodeID:         req.NodeID,
		Tags:           req.Tags,
		DangerModifier: req.Danger,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) rollDice(w http.ResponseWriter, r *http.Request) {
	var req rollDiceRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	result, err := s.service.RollDice(r.Context(), chi.URLParam(r, "id"), req.Dice)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) listRolls(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			writeError(w, r, apperrors.WithMetadata(apperrors.CodeInvalidRequest,
				"limit must be a non-negative integer",
				map[string]string{"limit": raw}))
			return
		}
		limit = parsed
	}
	entries, err := s.service.ListRolls(r.Context(), chi.URLParam(r, "id"), limit)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"rolls": entries})
}
