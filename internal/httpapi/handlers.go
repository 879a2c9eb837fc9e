package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/godilite/presentation-scoring/internal/scoring"
	"github.com/godilite/presentation-scoring/internal/service"
)

type apiResponse struct {
	Success bool      `json:"success"`
	Data    any       `json:"data,omitempty"`
	Error   *apiError `json:"error,omitempty"`
}

type apiError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (s *Server) respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	resp := apiResponse{
		Success: status >= 200 && status < 300,
		Data:    data,
	}
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		s.logger.Error("failed to encode response", zap.Error(err))
	}
}

func (s *Server) respondError(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	resp := apiResponse{Error: &apiError{Code: code, Message: message}}
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		s.logger.Error("failed to encode error response", zap.Error(err))
	}
}

func (s *Server) handleServiceError(w http.ResponseWriter, r *http.Request, op string, err error) {
	switch {
	case r.Context().Err() != nil:
		s.logger.Warn("request aborted", zap.String("op", op), zap.Error(r.Context().Err()))
		s.respondError(w, http.StatusServiceUnavailable, "request_aborted", "request canceled or timed out")
	case errors.Is(err, service.ErrStorageFailure):
		s.logger.Error("storage failure", zap.String("op", op), zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, "storage_failure", "database error")
	default:
		s.logger.Error("unexpected error", zap.String("op", op), zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, "internal_error", op+" failed")
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleRubric(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, s.results.Rubric())
}

func (s *Server) handleEvaluations(w http.ResponseWriter, r *http.Request) {
	evals, err := s.results.Evaluations(r.Context())
	if err != nil {
		s.handleServiceError(w, r, "list evaluations", err)
		return
	}
	if evals == nil {
		evals = []scoring.Evaluation{}
	}
	s.respondJSON(w, http.StatusOK, evals)
}

func (s *Server) handleResults(w http.ResponseWriter, r *http.Request) {
	res, err := s.results.Results(r.Context())
	if err != nil {
		s.handleServiceError(w, r, "build results", err)
		return
	}
	s.respondJSON(w, http.StatusOK, res)
}
