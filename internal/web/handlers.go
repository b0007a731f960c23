package web

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/averycrespi/calc-mcp/internal/calculator"
	"github.com/averycrespi/calc-mcp/internal/results"
)

// pressRequest is the body of POST /api/press. Key is a single button label;
// Keys is a sequence as accepted by calculator.ParseKeys.
type pressRequest struct {
	Key  string `json:"key,omitempty"`
	Keys string `json:"keys,omitempty"`
}

// withCalculator runs fn on the visitor's calculator and returns the resulting
// state. A request without a live session starts a new one and sets the cookie.
func (s *Server) withCalculator(w http.ResponseWriter, r *http.Request, fn func(c *calculator.Calculator) error) (results.CalculatorState, error) {
	var cookieID string
	if cookie, err := r.Cookie(sessionCookieName); err == nil {
		cookieID = cookie.Value
	}

	var state results.CalculatorState
	id, created, err := s.sessions.DoOrStart(cookieID, func(id string, c *calculator.Calculator) error {
		if err := fn(c); err != nil {
			return err
		}
		state = results.NewCalculatorState(id, c)
		return nil
	})

	if created {
		http.SetCookie(w, &http.Cookie{
			Name:     sessionCookieName,
			Value:    id,
			Path:     "/",
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		})
		s.logger.Debug("Started calculator session", "session_id", id)
	}
	return state, err
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	state, err := s.withCalculator(w, r, func(c *calculator.Calculator) error { return nil })
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	data := pageData{
		Previous: state.Display.Previous,
		Current:  state.Display.Current,
		Buttons:  keypad,
	}
	if err := indexTemplate.Execute(w, data); err != nil {
		s.logger.Error("Failed to render calculator page", "error", err)
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ok"))
}

func (s *Server) handleStatic(w http.ResponseWriter, r *http.Request) {
	asset, ok := s.assets[r.PathValue("name")]
	if !ok {
		http.NotFound(w, r)
		return
	}

	w.Header().Set("ETag", asset.etag)
	w.Header().Set("Cache-Control", "no-cache")
	if match := r.Header.Get("If-None-Match"); match != "" && etagMatches(match, asset.etag) {
		w.WriteHeader(http.StatusNotModified)
		return
	}

	w.Header().Set("Content-Type", asset.contentType)
	_, _ = w.Write(asset.data)
}

func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	state, err := s.withCalculator(w, r, func(c *calculator.Calculator) error { return nil })
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err)
		return
	}
	s.writeJSON(w, http.StatusOK, state)
}

func (s *Server) handlePress(w http.ResponseWriter, r *http.Request) {
	var req pressRequest
	decoder := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBytes))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, fmt.Errorf("failed to decode press request: %w", err))
		return
	}

	keys, err := parsePressRequest(req)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}

	state, err := s.withCalculator(w, r, func(c *calculator.Calculator) error {
		return c.PressAll(keys)
	})
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}
	s.writeJSON(w, http.StatusOK, state)
}

func (s *Server) handleClear(w http.ResponseWriter, r *http.Request) {
	state, err := s.withCalculator(w, r, func(c *calculator.Calculator) error {
		c.Clear()
		return nil
	})
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err)
		return
	}
	s.writeJSON(w, http.StatusOK, state)
}

// parsePressRequest validates the request and converts it to keys
func parsePressRequest(req pressRequest) ([]calculator.Key, error) {
	switch {
	case req.Key != "" && req.Keys != "":
		return nil, errors.New("press request must set either key or keys, not both")
	case req.Key != "":
		key, err := calculator.ParseKey(req.Key)
		if err != nil {
			return nil, err
		}
		return []calculator.Key{key}, nil
	case strings.TrimSpace(req.Keys) != "":
		return calculator.ParseKeys(req.Keys)
	default:
		return nil, errors.New("press request must set key or keys")
	}
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("Failed to write JSON response", "error", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, err error) {
	s.logger.Debug("Rejected request", "status", status, "error", err)
	s.writeJSON(w, status, results.ErrorResult{Error: err.Error()})
}

// etagMatches reports whether an If-None-Match header value lists etag
func etagMatches(header, etag string) bool {
	for _, candidate := range strings.Split(header, ",") {
		candidate = strings.TrimSpace(candidate)
		if candidate == "*" || strings.TrimPrefix(candidate, "W/") == etag {
			return true
		}
	}
	return false
}
