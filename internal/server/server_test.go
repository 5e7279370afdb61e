/*
Package server tests drive the JSON-lines protocol end to end against a
temp-database advisor.
*/
package server

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"github.com/hoangnm/skill-advisor/internal/advisor"
	"github.com/hoangnm/skill-advisor/internal/matcher"
	"github.com/hoangnm/skill-advisor/internal/storage"
)

// newTestServer creates a server over a temp-database advisor with one
// candidate skill.
func newTestServer(t *testing.T) *Server {
	t.Helper()

	store := storage.NewStorageAt(filepath.Join(t.TempDir(), "test.db"))
	if err := store.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	a := advisor.New(store, advisor.DefaultConfig())
	skills := []matcher.Skill{{
		Name:        "frontend-helper",
		Description: "Optimize react component rendering and frontend performance",
		Category:    "frontend",
		Tags:        []string{"react", "performance"},
	}}
	if err := a.UpdateSkills(skills); err != nil {
		t.Fatalf("UpdateSkills failed: %v", err)
	}

	return NewServer(a)
}

// roundTrip sends one request line and decodes the response.
func roundTrip(t *testing.T, s *Server, req Request) Response {
	t.Helper()

	line, err := json.Marshal(req)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}

	var out bytes.Buffer
	if err := s.Run(strings.NewReader(string(line)+"\n"), &out); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	var resp Response
	if err := json.Unmarshal(out.Bytes(), &resp); err != nil {
		t.Fatalf("Unmarshal response failed: %v (raw: %s)", err, out.String())
	}
	return resp
}

// TestRecommendOp verifies the recommend operation returns a result and
// echoes hints.
func TestRecommendOp(t *testing.T) {
	s := newTestServer(t)

	resp := roundTrip(t, s, Request{
		Op:     "recommend",
		Prompt: "optimize my React app for better performance",
		Hints:  map[string]string{"session": "abc"},
	})

	if !resp.OK {
		t.Fatalf("Expected ok response, got error: %s", resp.Error)
	}
	if resp.Result == nil {
		t.Fatal("Expected a result payload")
	}
	if resp.Hints["session"] != "abc" {
		t.Errorf("Expected hints echoed, got %v", resp.Hints)
	}
}

// TestFeedbackOp verifies feedback by skill name succeeds.
func TestFeedbackOp(t *testing.T) {
	s := newTestServer(t)

	roundTrip(t, s, Request{Op: "recommend", Prompt: "optimize my React app for better performance"})

	resp := roundTrip(t, s, Request{
		Op:      "feedback",
		Skill:   "frontend-helper",
		Outcome: storage.OutcomeSuccess,
	})
	if !resp.OK {
		t.Errorf("Expected ok feedback response, got: %s", resp.Error)
	}
}

// TestStatsOp verifies the stats operation.
func TestStatsOp(t *testing.T) {
	s := newTestServer(t)

	resp := roundTrip(t, s, Request{Op: "stats"})
	if !resp.OK {
		t.Errorf("Expected ok stats response, got: %s", resp.Error)
	}
}

// TestSkillsOp verifies the skills listing.
func TestSkillsOp(t *testing.T) {
	s := newTestServer(t)

	resp := roundTrip(t, s, Request{Op: "skills"})
	if !resp.OK {
		t.Fatalf("Expected ok skills response, got: %s", resp.Error)
	}

	payload, err := json.Marshal(resp.Result)
	if err != nil {
		t.Fatalf("Marshal result failed: %v", err)
	}
	var skills []matcher.Skill
	if err := json.Unmarshal(payload, &skills); err != nil {
		t.Fatalf("Unmarshal skills failed: %v", err)
	}
	if len(skills) != 1 || skills[0].Name != "frontend-helper" {
		t.Errorf("Expected one skill frontend-helper, got %v", skills)
	}
}

// TestUnknownOp verifies unknown operations produce an error response, not a
// dropped connection.
func TestUnknownOp(t *testing.T) {
	s := newTestServer(t)

	resp := roundTrip(t, s, Request{Op: "bogus"})
	if resp.OK {
		t.Error("Expected error response for unknown op")
	}
	if !strings.Contains(resp.Error, "unknown op") {
		t.Errorf("Expected unknown-op error, got %q", resp.Error)
	}
}

// TestMalformedLine verifies invalid JSON produces an error response.
func TestMalformedLine(t *testing.T) {
	s := newTestServer(t)

	var out bytes.Buffer
	if err := s.Run(strings.NewReader("{not json}\n"), &out); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	var resp Response
	if err := json.Unmarshal(out.Bytes(), &resp); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if resp.OK {
		t.Error("Expected error response for malformed line")
	}
}
