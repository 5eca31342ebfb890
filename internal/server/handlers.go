package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/jonathan/fairpath/internal/model"
	"github.com/jonathan/fairpath/internal/recommend"
	"github.com/jonathan/fairpath/internal/schemas"
	"github.com/jonathan/fairpath/internal/types"
	embedded "github.com/jonathan/fairpath/schemas"
)

// MaxBatchPairs bounds a batch transition request
const MaxBatchPairs = 50

func (s *Server) handleRoot(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"message": "FairPath API is running",
	})
}

type healthResponse struct {
	Status      string `json:"status"`
	DataLoaded  bool   `json:"data_loaded"`
	ModelLoaded bool   `json:"model_loaded"`
	ModelState  string `json:"model_state"`
}

// handleHealth reports healthy once the catalog is loaded; the model is optional.
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	models := s.svc.Models()
	resp := healthResponse{
		Status:      "healthy",
		DataLoaded:  s.svc.Catalogs().Loaded(),
		ModelLoaded: models.State() == model.StateLoaded,
		ModelState:  models.State().String(),
	}
	if !resp.DataLoaded {
		resp.Status = "degraded"
	}
	s.jsonResponse(w, http.StatusOK, resp)
}

func (s *Server) handleVersion(w http.ResponseWriter, _ *http.Request) {
	resp := map[string]string{
		"version":         s.version,
		"dataset_version": "",
		"model_version":   s.svc.Models().Version(),
	}
	if c := s.svc.Catalogs().Peek(); c != nil {
		resp["dataset_version"] = c.Version
	}
	s.jsonResponse(w, http.StatusOK, resp)
}

type careerSummary struct {
	CareerID string `json:"career_id"`
	Name     string `json:"name"`
	SOCCode  string `json:"soc_code,omitempty"`
}

func (s *Server) handleListCareers(w http.ResponseWriter, r *http.Request) {
	c, err := s.svc.Catalogs().Get(r.Context())
	if err != nil {
		s.failure(w, r, err)
		return
	}

	careers := make([]careerSummary, 0, c.Len())
	for _, o := range c.Occupations {
		careers = append(careers, careerSummary{CareerID: o.CareerID, Name: o.Name, SOCCode: o.SOCCode})
	}
	s.jsonResponse(w, http.StatusOK, map[string]any{
		"version": c.Version,
		"count":   len(careers),
		"careers": careers,
	})
}

func (s *Server) handleRecommend(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		s.failure(w, r, err)
		return
	}

	if err := schemas.ValidateBytes(embedded.RecommendRequest, body); err != nil {
		var ve *schemas.ValidationError
		if errors.As(err, &ve) && len(ve.Errors) > 0 {
			s.failure(w, r, &ErrValidation{Field: ve.Errors[0].Field, Message: ve.Errors[0].Message})
			return
		}
		s.failure(w, r, &ErrValidation{Field: "body", Message: "invalid JSON"})
		return
	}

	var req recommend.Request
	if err := json.Unmarshal(body, &req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	resp, err := s.svc.Recommend(r.Context(), req)
	if err != nil {
		var demographic *types.DemographicInputError
		if errors.As(err, &demographic) {
			s.jsonResponse(w, HTTPStatus(err), map[string]any{
				"error":           "demographic_input",
				"message":         "Demographic information is not used for recommendations. Remove the flagged inputs and try again.",
				"issues":          demographic.Issues,
				"recommendations": []types.Recommendation{},
			})
			return
		}
		s.failure(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, resp)
}

func (s *Server) handleCareerSwitch(w http.ResponseWriter, r *http.Request) {
	source := strings.TrimSpace(r.URL.Query().Get("source"))
	target := strings.TrimSpace(r.URL.Query().Get("target"))
	if source == "" || target == "" {
		s.failure(w, r, &ErrValidation{Field: "source,target", Message: "required"})
		return
	}

	report, err := s.svc.AnalyzeTransition(r.Context(), source, target)
	if err != nil {
		var unresolved *types.UnresolvedEntityError
		if errors.As(err, &unresolved) {
			s.jsonResponse(w, http.StatusNotFound, map[string]any{
				"overlap_percentage": 0.0,
				"error":              err.Error(),
			})
			return
		}
		s.failure(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, report)
}

type batchRequest struct {
	Pairs []types.TransitionPair `json:"pairs" validate:"required,min=1,max=50,dive"`
}

type batchItem struct {
	SourceCareerID string                  `json:"source_career_id"`
	TargetCareerID string                  `json:"target_career_id"`
	Report         *types.TransitionReport `json:"report,omitempty"`
	Error          string                  `json:"error,omitempty"`
}

func (s *Server) handleCareerSwitchBatch(w http.ResponseWriter, r *http.Request) {
	var req batchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			s.failure(w, r, err)
			return
		}
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := s.validate.Struct(req); err != nil {
		s.failure(w, r, validationError(err))
		return
	}

	results, err := s.svc.AnalyzeTransitions(r.Context(), req.Pairs)
	if err != nil {
		s.failure(w, r, err)
		return
	}

	items := make([]batchItem, len(results))
	failed := 0
	for i, res := range results {
		items[i] = batchItem{
			SourceCareerID: res.Pair.SourceCareerID,
			TargetCareerID: res.Pair.TargetCareerID,
			Report:         res.Report,
		}
		if res.Err != nil {
			items[i].Error = res.Err.Error()
			failed++
		}
	}
	s.jsonResponse(w, http.StatusOK, map[string]any{
		"results":   items,
		"succeeded": len(items) - failed,
		"failed":    failed,
	})
}
