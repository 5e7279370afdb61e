package cli

import (
	"strings"
	"testing"
)

func TestNewRecommendCmd(t *testing.T) {
	cmd := NewRecommendCmd()

	if cmd == nil {
		t.Fatal("NewRecommendCmd() returned nil")
	}

	if !strings.HasPrefix(cmd.Use, "recommend") {
		t.Errorf("Expected Use to start with 'recommend', got %q", cmd.Use)
	}

	aliases := cmd.Aliases
	if len(aliases) == 0 || aliases[0] != "rec" {
		t.Errorf("Expected alias 'rec', got %v", aliases)
	}

	// Verify flags are registered
	for _, flag := range []string{"rationale", "config", "json"} {
		if cmd.Flags().Lookup(flag) == nil {
			t.Errorf("Flag %q not registered", flag)
		}
	}
}

func TestRecommendCommandHelp(t *testing.T) {
	cmd := NewRecommendCmd()

	if cmd.Short == "" {
		t.Error("Command missing short description")
	}
	if !strings.Contains(cmd.Short, "Recommend") {
		t.Errorf("Short description doesn't mention recommending: %q", cmd.Short)
	}
}

func TestRecommendCommandFlags(t *testing.T) {
	tests := []struct {
		name          string
		args          []string
		wantRationale string
		wantJSON      bool
	}{
		{
			name:          "no flags",
			args:          []string{"fix", "the", "bug"},
			wantRationale: "",
			wantJSON:      false,
		},
		{
			name:          "rationale flag",
			args:          []string{"fix the bug", "--rationale", "users report 500s"},
			wantRationale: "users report 500s",
			wantJSON:      false,
		},
		{
			name:          "short flags",
			args:          []string{"fix the bug", "-r", "context", "-j"},
			wantRationale: "context",
			wantJSON:      true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := NewRecommendCmd()

			if err := cmd.ParseFlags(tt.args); err != nil {
				t.Fatalf("ParseFlags() failed: %v", err)
			}

			rationale, _ := cmd.Flags().GetString("rationale")
			if rationale != tt.wantRationale {
				t.Errorf("rationale flag = %q, want %q", rationale, tt.wantRationale)
			}

			jsonFlag, _ := cmd.Flags().GetBool("json")
			if jsonFlag != tt.wantJSON {
				t.Errorf("json flag = %v, want %v", jsonFlag, tt.wantJSON)
			}
		})
	}
}

func TestRecommendRequiresPrompt(t *testing.T) {
	cmd := NewRecommendCmd()
	if err := cmd.Args(cmd, []string{}); err == nil {
		t.Error("Expected an args error for missing prompt")
	}
	if err := cmd.Args(cmd, []string{"optimize my app"}); err != nil {
		t.Errorf("Unexpected args error with a prompt: %v", err)
	}
}
