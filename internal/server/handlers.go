package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/bernstein1/touchcarecalc-sub000/internal/config"
	"github.com/bernstein1/touchcarecalc-sub000/internal/domain"
	"github.com/bernstein1/touchcarecalc-sub000/internal/storage"
)

type healthResponse struct {
	Status          string `json:"status"`
	DefaultPlanYear int    `json:"default_plan_year"`
	PlanYears       []int  `json:"plan_years"`
}

type calculateRequest struct {
	PlanYear int             `json:"plan_year"`
	Inputs   json.RawMessage `json:"inputs"`
	Save     bool            `json:"save"`
}

type calculateResponse struct {
	Report    *domain.Report `json:"report"`
	SessionID string         `json:"session_id,omitempty"`
}

type compareRequest struct {
	PlanYear  int `json:"plan_year"`
	Scenarios []struct {
		Name   string          `json:"name"`
		Inputs json.RawMessage `json:"inputs"`
	} `json:"scenarios"`
}

type sessionRequest struct {
	CalculatorType domain.CalculatorType `json:"calculator_type"`
	InputData      json.RawMessage       `json:"input_data"`
	Results        json.RawMessage       `json:"results"`
}

// sessionResponse embeds the stored JSON documents instead of re-quoting them
type sessionResponse struct {
	ID             string                `json:"id"`
	CalculatorType domain.CalculatorType `json:"calculator_type"`
	InputData      json.RawMessage       `json:"input_data"`
	Results        json.RawMessage       `json:"results"`
	CreatedAt      time.Time             `json:"created_at"`
}

func toSessionResponse(s *domain.Session) sessionResponse {
	return sessionResponse{
		ID:             s.ID,
		CalculatorType: s.CalculatorType,
		InputData:      json.RawMessage(s.InputData),
		Results:        json.RawMessage(s.Results),
		CreatedAt:      s.CreatedAt,
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	body := map[string]string{"error": code}
	if err != nil {
		body["message"] = err.Error()
	}
	writeJSON(w, status, body)
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", err)
		return false
	}
	return true
}

// decodeInputs decodes and shape-checks one calculator input document
func decodeInputs(calcType domain.CalculatorType, raw json.RawMessage) (domain.CalculatorInputs, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return nil, errors.New("inputs are required")
	}
	in, err := domain.DecodeInputs(calcType, func(v any) error { return json.Unmarshal(raw, v) })
	if err != nil {
		return nil, err
	}
	if err := config.ValidateInputs(in); err != nil {
		return nil, err
	}
	return in, nil
}

// Health handles GET /api/health.
func (s *Server) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{
		Status:          "ok",
		DefaultPlanYear: s.defaultYear,
		PlanYears:       s.limits.Years(),
	})
}

// ListLimits handles GET /api/limits.
func (s *Server) ListLimits(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string][]int{"plan_years": s.limits.Years()})
}

// GetLimits handles GET /api/limits/{year}.
func (s *Server) GetLimits(w http.ResponseWriter, r *http.Request) {
	year, err := strconv.Atoi(r.PathValue("year"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_plan_year", nil)
		return
	}
	limits, err := s.limits.Lookup(year)
	if err != nil {
		writeError(w, http.StatusNotFound, "unknown_plan_year", err)
		return
	}
	writeJSON(w, http.StatusOK, limits)
}

// Calculate handles POST /api/calculate/{type}. With "save": true the report is also stored as a session.
func (s *Server) Calculate(w http.ResponseWriter, r *http.Request) {
	calcType, err := calculatorFromPath(r)
	if err != nil {
		writeError(w, http.StatusNotFound, "unknown_calculator", err)
		return
	}

	var req calculateRequest
	if !decodeBody(w, r, &req) {
		return
	}

	inputs, err := decodeInputs(calcType, req.Inputs)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_inputs", err)
		return
	}

	engine, err := s.engine(req.PlanYear)
	if err != nil {
		writeError(w, http.StatusBadRequest, "unknown_plan_year", err)
		return
	}

	report, err := engine.Calculate(inputs)
	if err != nil {
		s.logger.Error("calculation failed", zap.String("calculator", string(calcType)), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "calculation_failed", nil)
		return
	}

	resp := calculateResponse{Report: report}
	if req.Save {
		sess, err := storage.SaveReport(r.Context(), s.store, report)
		if err != nil {
			s.logger.Error("failed to save session", zap.Error(err))
			writeError(w, http.StatusInternalServerError, "save_failed", nil)
			return
		}
		resp.SessionID = sess.ID
	}

	writeJSON(w, http.StatusOK, resp)
}

// Compare handles POST /api/compare/{type}.
func (s *Server) Compare(w http.ResponseWriter, r *http.Request) {
	calcType, err := calculatorFromPath(r)
	if err != nil {
		writeError(w, http.StatusNotFound, "unknown_calculator", err)
		return
	}

	var req compareRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if len(req.Scenarios) < 2 {
		writeError(w, http.StatusBadRequest, "scenarios_required", errors.New("at least two scenarios are required"))
		return
	}

	scenarios := make([]domain.NamedInputs, 0, len(req.Scenarios))
	for _, sc := range req.Scenarios {
		in, err := decodeInputs(calcType, sc.Inputs)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_inputs", err)
			return
		}
		scenarios = append(scenarios, domain.NamedInputs{Name: sc.Name, Inputs: in})
	}

	engine, err := s.engine(req.PlanYear)
	if err != nil {
		writeError(w, http.StatusBadRequest, "unknown_plan_year", err)
		return
	}

	comparison, err := engine.CompareScenarios(scenarios)
	if err != nil {
		writeError(w, http.StatusBadRequest, "comparison_failed", err)
		return
	}
	writeJSON(w, http.StatusOK, comparison)
}

// CreateSession handles POST /api/sessions.
func (s *Server) CreateSession(w http.ResponseWriter, r *http.Request) {
	var req sessionRequest
	if !decodeBody(w, r, &req) {
		return
	}

	sess := &domain.Session{
		CalculatorType: req.CalculatorType,
		InputData:      string(req.InputData),
		Results:        string(req.Results),
	}
	if err := s.store.Create(r.Context(), sess); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_session", err)
		return
	}
	writeJSON(w, http.StatusCreated, toSessionResponse(sess))
}

// GetSession handles GET /api/sessions/{id}.
func (s *Server) GetSession(w http.ResponseWriter, r *http.Request) {
	sess, err := s.store.Get(r.Context(), r.PathValue("id"))
	if errors.Is(err, storage.ErrNotFound) {
		writeError(w, http.StatusNotFound, "not_found", nil)
		return
	}
	if err != nil {
		s.logger.Error("failed to get session", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "get_failed", nil)
		return
	}
	writeJSON(w, http.StatusOK, toSessionResponse(sess))
}

// ListSessions handles GET /api/sessions, optionally filtered with ?type=.
func (s *Server) ListSessions(w http.ResponseWriter, r *http.Request) {
	var (
		sessions []domain.Session
		err      error
	)
	if t := r.URL.Query().Get("type"); t != "" {
		calcType, perr := domain.ParseCalculatorType(t)
		if perr != nil {
			writeError(w, http.StatusBadRequest, "unknown_calculator", perr)
			return
		}
		sessions, err = s.store.ListByType(r.Context(), calcType)
	} else {
		sessions, err = s.store.List(r.Context())
	}
	if err != nil {
		s.logger.Error("failed to list sessions", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "list_failed", nil)
		return
	}

	out := make([]sessionResponse, 0, len(sessions))
	for i := range sessions {
		out = append(out, toSessionResponse(&sessions[i]))
	}
	writeJSON(w, http.StatusOK, out)
}
