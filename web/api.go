package web

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"

	"github.com/Jumpaku/go-screening"
	screeningerrors "github.com/Jumpaku/go-screening/errors"
	"github.com/Jumpaku/go-screening/sink"
	"github.com/santhosh-tekuri/jsonschema/v6"
)

const maxRequestBytes = 64 << 10

//go:embed request.schema.json
var requestSchemaJSON []byte

var (
	requestSchemaOnce sync.Once
	requestSchema     *jsonschema.Schema
	requestSchemaErr  error
)

func compiledRequestSchema() (*jsonschema.Schema, error) {
	requestSchemaOnce.Do(func() {
		var doc any
		if err := json.Unmarshal(requestSchemaJSON, &doc); err != nil {
			requestSchemaErr = fmt.Errorf("parse request schema: %w", err)
			return
		}
		c := jsonschema.NewCompiler()
		const url = "schema://screening-request.json"
		if err := c.AddResource(url, doc); err != nil {
			requestSchemaErr = fmt.Errorf("add resource: %w", err)
			return
		}
		requestSchema, requestSchemaErr = c.Compile(url)
	})
	return requestSchema, requestSchemaErr
}

// ScreeningRequest is the body of POST /api/v1/screenings.
// A null or missing answer marks the question as unanswered.
type ScreeningRequest struct {
	Answers []*string `json:"answers"`
}

// ScreeningResponse is returned for a scored submission.
type ScreeningResponse struct {
	ID        string `json:"id"`
	Timestamp string `json:"timestamp"`
	Positive  bool   `json:"positive"`
	Verdict   string `json:"verdict"`
	YesCount  int    `json:"yes_count"`
	// Saved reports whether at least one store kept the record. SavedTo names them.
	Saved   bool     `json:"saved"`
	SavedTo []string `json:"saved_to,omitempty"`
	// Warning describes every store that failed.
	Warning string `json:"warning,omitempty"`
}

type errorResponse struct {
	Error string `json:"error"`
}

type questionResponse struct {
	Index int    `json:"index"`
	Text  string `json:"text"`
}

func (s *Server) handleQuestions(w http.ResponseWriter, r *http.Request) {
	var resp []questionResponse
	for _, q := range screening.Questions() {
		resp = append(resp, questionResponse{Index: q.Index, Text: q.Text})
	}
	s.writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleScreening(w http.ResponseWriter, r *http.Request) {
	req, err := decodeScreeningRequest(r)
	if err != nil {
		s.writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}
	values := make([]string, len(req.Answers))
	for i, a := range req.Answers {
		if a != nil {
			values[i] = *a
		}
	}
	answers, err := screening.ParseAnswers(values)
	if err != nil {
		s.writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	submission, err := s.score(answers)
	if errors.Is(err, screening.ErrIncompleteAnswers) {
		s.writeJSON(w, http.StatusUnprocessableEntity, errorResponse{Error: err.Error()})
		return
	}
	if err != nil {
		s.logger.WithError(err).Error("Failed to score submission")
		s.writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "failed to score submission"})
		return
	}

	record := submission.Record(s.location)
	results := s.save(r.Context(), record)
	resp := ScreeningResponse{
		ID:        record.SubmissionID,
		Timestamp: record.Timestamp,
		Positive:  submission.Verdict().Positive(),
		Verdict:   record.Verdict,
		YesCount:  submission.YesCount(),
		SavedTo:   sink.Saved(results),
	}
	resp.Saved = len(resp.SavedTo) > 0
	var warnings []string
	for _, f := range sink.Failed(results) {
		warnings = append(warnings, fmt.Sprintf("failed to save to %s: %v", f.Name, f.Err))
	}
	resp.Warning = strings.Join(warnings, "; ")
	s.writeJSON(w, http.StatusOK, resp)
}

func decodeScreeningRequest(r *http.Request) (req ScreeningRequest, err error) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxRequestBytes+1))
	if err != nil {
		return req, screeningerrors.NewIOError("failed to read request body", err)
	}
	if len(body) > maxRequestBytes {
		return req, screeningerrors.NewRequestError("request body too large", nil)
	}
	var parsed any
	if err := json.Unmarshal(body, &parsed); err != nil {
		return req, screeningerrors.NewRequestError("invalid JSON", err)
	}
	schema, err := compiledRequestSchema()
	if err != nil {
		return req, fmt.Errorf("failed to compile request schema: %w", err)
	}
	if err := schema.Validate(parsed); err != nil {
		return req, screeningerrors.NewRequestError("schema validation failed", err)
	}
	if err := json.Unmarshal(body, &req); err != nil {
		return req, screeningerrors.NewRequestError("invalid request", err)
	}
	return req, nil
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.WithError(err).Error("Failed to write response")
	}
}
