package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"fortio.org/safecast"

	"github.com/agbru/bigcalc/internal/arith"
	apperrors "github.com/agbru/bigcalc/internal/errors"
	"github.com/agbru/bigcalc/pkg/bigint"
	"github.com/agbru/bigcalc/pkg/models"
)

// handleHealth reports liveness.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if !s.allowMethods(w, r, http.MethodGet) {
		return
	}
	s.writeResponse(w, r, http.StatusOK, models.HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now().Unix(),
	})
}

func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	if !s.allowMethods(w, r, http.MethodGet) {
		return
	}
	s.writeResponse(w, r, http.StatusOK, s.version)
}

// handleOperations lists the registered operations and, for those that have
// one, their dedicated endpoint.
func (s *Server) handleOperations(w http.ResponseWriter, r *http.Request) {
	if !s.allowMethods(w, r, http.MethodGet) {
		return
	}
	ops := s.operations
	if ops == nil {
		ops = []models.OperationInfo{}
	}
	s.writeResponse(w, r, http.StatusOK, models.OperationsResponse{Operations: ops})
}

// handleEvaluate evaluates the expression given in the "expr" query
// parameter (GET) or in an EvaluateRequest body (POST).
func (s *Server) handleEvaluate(w http.ResponseWriter, r *http.Request) {
	var expression string
	switch r.Method {
	case http.MethodGet:
		expression = r.URL.Query().Get("expr")
	case http.MethodPost:
		req, status, err := s.decodeEvaluateRequest(w, r)
		if err != nil {
			s.writeErrorResponse(w, r, status, err.Error())
			return
		}
		expression = req.Expression
	default:
		s.methodNotAllowed(w, r, http.MethodGet, http.MethodPost)
		return
	}

	if strings.TrimSpace(expression) == "" {
		s.writeErrorResponse(w, r, http.StatusBadRequest, "Missing 'expr' parameter")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), s.timeouts.RequestTimeout)
	defer cancel()

	start := time.Now()
	result, err := s.service.Evaluate(ctx, expression, nil)
	s.respond(w, r, expression, result, time.Since(start), err)
}

// handleOperation returns the handler applying one binary operation to the
// "a" and "b" query parameters.
func (s *Server) handleOperation(name, symbol string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !s.allowMethods(w, r, http.MethodGet) {
			return
		}
		q := r.URL.Query()
		a, b := q.Get("a"), q.Get("b")
		for _, p := range [...]struct{ name, value string }{{"a", a}, {"b", b}} {
			if p.value == "" {
				s.writeErrorResponse(w, r, http.StatusBadRequest, fmt.Sprintf("Missing '%s' parameter", p.name))
				return
			}
		}

		ctx, cancel := context.WithTimeout(r.Context(), s.timeouts.RequestTimeout)
		defer cancel()

		start := time.Now()
		result, err := s.service.Apply(ctx, name, a, b)
		s.respond(w, r, fmt.Sprintf("%s %s %s", a, symbol, b), result, time.Since(start), err)
	}
}

func (s *Server) decodeEvaluateRequest(w http.ResponseWriter, r *http.Request) (models.EvaluateRequest, int, error) {
	var req models.EvaluateRequest
	limit, err := safecast.Conv[int64](s.securityConfig.MaxBodyBytes)
	if err != nil || limit <= 0 {
		limit = defaultMaxBodyBytes
	}
	if err := decodeBody(r, http.MaxBytesReader(w, r.Body, limit), &req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return req, http.StatusRequestEntityTooLarge,
				fmt.Errorf("request body exceeds %d bytes", tooLarge.Limit)
		}
		return req, http.StatusBadRequest, err
	}
	return req, http.StatusOK, nil
}

// respond writes the outcome of an evaluation.
func (s *Server) respond(w http.ResponseWriter, r *http.Request, expression string, result bigint.Int, duration time.Duration, err error) {
	if err != nil {
		status := statusForError(err)
		msg := err.Error()
		if status == http.StatusGatewayTimeout {
			msg = fmt.Sprintf("Evaluation did not complete within %s", s.timeouts.RequestTimeout)
		}
		if status >= http.StatusInternalServerError {
			s.logger.Error("evaluation failed", err)
		}
		s.writeErrorResponse(w, r, status, msg)
		return
	}
	s.writeResponse(w, r, http.StatusOK, models.EvaluateResponse{
		Expression: expression,
		Result:     result.String(),
		Digits:     result.DigitCount(),
		Duration:   duration.String(),
	})
}

// statusForError maps evaluation failures to HTTP status codes.
func statusForError(err error) int {
	switch {
	case apperrors.IsInputError(err):
		return http.StatusBadRequest
	case errors.Is(err, arith.ErrUnknownOperation):
		return http.StatusNotFound
	case apperrors.IsContextError(err):
		if errors.Is(err, context.DeadlineExceeded) {
			return http.StatusGatewayTimeout
		}
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// allowMethods answers 405 unless the request uses one of methods.
func (s *Server) allowMethods(w http.ResponseWriter, r *http.Request, methods ...string) bool {
	for _, m := range methods {
		if r.Method == m {
			return true
		}
	}
	s.methodNotAllowed(w, r, methods...)
	return false
}

func (s *Server) methodNotAllowed(w http.ResponseWriter, r *http.Request, methods ...string) {
	w.Header().Set("Allow", strings.Join(methods, ", "))
	s.writeErrorResponse(w, r, http.StatusMethodNotAllowed, "Method not allowed")
}

func (s *Server) writeResponse(w http.ResponseWriter, r *http.Request, statusCode int, data any) {
	if err := writeEncoded(w, r, statusCode, data); err != nil {
		s.logger.Error("failed to encode response", err)
	}
}

func (s *Server) writeErrorResponse(w http.ResponseWriter, r *http.Request, statusCode int, message string) {
	s.writeResponse(w, r, statusCode, models.ErrorResponse{
		Error:   http.StatusText(statusCode),
		Message: message,
	})
}
