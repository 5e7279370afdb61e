/*
Package server exposes advisor operations to a host process over stdio.

The protocol is JSON lines: one request object per line on stdin, one
response object per line on stdout.

Operations:
  - recommend: run the recommendation pipeline for a prompt
  - feedback:  attach an outcome to an invocation (by ID or skill name)
  - stats:     recent success rate and top skills
  - skills:    list the current candidate skill set
*/
package server

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"

	"github.com/hoangnm/skill-advisor/internal/advisor"
)

// Server handles stdio requests against an advisor.
type Server struct {
	advisor *advisor.Advisor
}

// NewServer creates a server over the given advisor.
func NewServer(a *advisor.Advisor) *Server {
	return &Server{advisor: a}
}

// Request is one JSON-line request.
type Request struct {
	// Op selects the operation: recommend, feedback, stats, or skills.
	Op string `json:"op"`

	// Prompt is the task description (recommend).
	Prompt string `json:"prompt,omitempty"`

	// Rationale is the optional secondary text (recommend).
	Rationale string `json:"rationale,omitempty"`

	// Hints are opaque contextual hints, echoed back unmodified.
	Hints map[string]string `json:"hints,omitempty"`

	// InvocationID targets a specific invocation (feedback).
	InvocationID string `json:"invocationId,omitempty"`

	// Skill targets the most recent invocation by name (feedback).
	Skill string `json:"skill,omitempty"`

	// Outcome is success, failure, or partial (feedback).
	Outcome string `json:"outcome,omitempty"`

	// Feedback is optional free-text feedback (feedback).
	Feedback string `json:"feedback,omitempty"`
}

// Response is one JSON-line response.
type Response struct {
	OK     bool              `json:"ok"`
	Error  string            `json:"error,omitempty"`
	Result interface{}       `json:"result,omitempty"`
	Hints  map[string]string `json:"hints,omitempty"`
}

// Run reads requests line by line until the input is closed.
func (s *Server) Run(in io.Reader, out io.Writer) error {
	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	encoder := json.NewEncoder(out)

	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		response := s.handleRequest(line)
		if err := encoder.Encode(response); err != nil {
			return fmt.Errorf("failed to write response: %w", err)
		}
	}

	return scanner.Err()
}

// handleRequest parses and dispatches one request.
func (s *Server) handleRequest(line []byte) Response {
	var req Request
	if err := json.Unmarshal(line, &req); err != nil {
		return errorResponse(fmt.Errorf("invalid request: %w", err))
	}

	switch req.Op {
	case "recommend":
		return s.handleRecommend(req)
	case "feedback":
		return s.handleFeedback(req)
	case "stats":
		return s.handleStats(req)
	case "skills":
		return s.handleSkills(req)
	default:
		return errorResponse(fmt.Errorf("unknown op: %q", req.Op))
	}
}

// handleRecommend runs the recommendation pipeline. Hints are passed through
// untouched.
func (s *Server) handleRecommend(req Request) Response {
	result, err := s.advisor.Recommend(req.Prompt, req.Rationale)
	if err != nil {
		return errorResponse(err)
	}
	return Response{OK: true, Result: result, Hints: req.Hints}
}

// handleFeedback dispatches by-ID feedback when an invocation ID is present,
// otherwise the skill-name recency heuristic.
func (s *Server) handleFeedback(req Request) Response {
	var err error
	if req.InvocationID != "" {
		err = s.advisor.RecordFeedbackByID(req.InvocationID, req.Outcome, req.Feedback)
	} else {
		err = s.advisor.RecordFeedback(req.Skill, req.Outcome, req.Feedback)
	}
	if err != nil {
		return errorResponse(err)
	}
	return Response{OK: true}
}

// handleStats returns recent statistics.
func (s *Server) handleStats(Request) Response {
	stats, err := s.advisor.Statistics()
	if err != nil {
		return errorResponse(err)
	}
	return Response{OK: true, Result: stats}
}

// handleSkills lists the candidate skill set.
func (s *Server) handleSkills(Request) Response {
	return Response{OK: true, Result: s.advisor.Skills()}
}

// errorResponse wraps an error into a response.
func errorResponse(err error) Response {
	return Response{OK: false, Error: err.Error()}
}
