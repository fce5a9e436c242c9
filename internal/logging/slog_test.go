package logging

import (
	"errors"
	"log/slog"
	"testing"
)

func TestWithOperation(t *testing.T) {
	logger := slog.Default()
	result := WithOperation(logger, "test_operation")
	if result == nil {
		t.Error("WithOperation returned nil")
	}
}

func TestWithTool(t *testing.T) {
	logger := slog.Default()
	result := WithTool(logger, "test_tool")
	if result == nil {
		t.Error("WithTool returned nil")
	}
}

func TestWithIssue(t *testing.T) {
	logger := slog.Default()
	result := WithIssue(logger, "PROJ-1")
	if result == nil {
		t.Error("WithIssue returned nil")
	}
}

func TestOperationAttr(t *testing.T) {
	attr := Operation("test_op")
	if attr.Key != KeyOperation {
		t.Errorf("Operation key = %q, want %q", attr.Key, KeyOperation)
	}
	if attr.Value.String() != "test_op" {
		t.Errorf("Operation value = %q, want %q", attr.Value.String(), "test_op")
	}
}

func TestIssueAttr(t *testing.T) {
	attr := Issue("PROJ-42")
	if attr.Key != KeyIssue {
		t.Errorf("Issue key = %q, want %q", attr.Key, KeyIssue)
	}
	if attr.Value.String() != "PROJ-42" {
		t.Errorf("Issue value = %q, want %q", attr.Value.String(), "PROJ-42")
	}
}

func TestFieldAttr(t *testing.T) {
	attr := Field("Rank")
	if attr.Key != KeyField {
		t.Errorf("Field key = %q, want %q", attr.Key, KeyField)
	}
	if attr.Value.String() != "Rank" {
		t.Errorf("Field value = %q, want %q", attr.Value.String(), "Rank")
	}
}

func TestActorAttr(t *testing.T) {
	attr := Actor("automation-bot")
	if attr.Key != KeyActor {
		t.Errorf("Actor key = %q, want %q", attr.Key, KeyActor)
	}
	if attr.Value.String() != "automation-bot" {
		t.Errorf("Actor value = %q, want %q", attr.Value.String(), "automation-bot")
	}
}

func TestJQLAttr(t *testing.T) {
	attr := JQL("project = PROJ")
	if attr.Key != KeyJQL {
		t.Errorf("JQL key = %q, want %q", attr.Key, KeyJQL)
	}
	if attr.Value.String() != "project = PROJ" {
		t.Errorf("JQL value = %q, want %q", attr.Value.String(), "project = PROJ")
	}
}

func TestToolAttr(t *testing.T) {
	attr := Tool("jira_stale_issues")
	if attr.Key != KeyTool {
		t.Errorf("Tool key = %q, want %q", attr.Key, KeyTool)
	}
	if attr.Value.String() != "jira_stale_issues" {
		t.Errorf("Tool value = %q, want %q", attr.Value.String(), "jira_stale_issues")
	}
}

func TestStatusAttr(t *testing.T) {
	attr := Status(StatusSuccess)
	if attr.Key != KeyStatus {
		t.Errorf("Status key = %q, want %q", attr.Key, KeyStatus)
	}
	if attr.Value.String() != StatusSuccess {
		t.Errorf("Status value = %q, want %q", attr.Value.String(), StatusSuccess)
	}
}

func TestErr(t *testing.T) {
	// Test with error
	err := errors.New("test error")
	attr := Err(err)
	if attr.Key != KeyError {
		t.Errorf("Err key = %q, want %q", attr.Key, KeyError)
	}
	if attr.Value.String() != "test error" {
		t.Errorf("Err value = %q, want %q", attr.Value.String(), "test error")
	}

	// Test with nil - should return an empty group that slog will omit
	attr = Err(nil)
	// Empty Group has empty key
	if attr.Key != "" {
		t.Errorf("Err(nil) key = %q, want empty string (empty group)", attr.Key)
	}
}

func TestSanitizeToken(t *testing.T) {
	tests := []struct {
		token    string
		expected string
	}{
		{"", "<empty>"},
		{"abc123", "[token:6 chars]"},
		{"a_very_long_token_string", "[token:24 chars]"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			result := SanitizeToken(tt.token)
			if result != tt.expected {
				t.Errorf("SanitizeToken(%q) = %q, want %q", tt.token, result, tt.expected)
			}
		})
	}
}

func TestStatusConstants(t *testing.T) {
	if StatusSuccess != "success" {
		t.Errorf("StatusSuccess = %q, want %q", StatusSuccess, "success")
	}
	if StatusError != "error" {
		t.Errorf("StatusError = %q, want %q", StatusError, "error")
	}
}
