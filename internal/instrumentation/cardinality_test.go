package instrumentation

import "testing"

func TestProjectFromKey(t *testing.T) {
	tests := []struct {
		key      string
		expected string
	}{
		{"PROJ-123", "PROJ"},
		{"OPS-7", "OPS"},
		{"ABC-1-2", "ABC"},
		{"invalid", "unknown"},
		{"-123", "unknown"},
		{"", "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			if got := ProjectFromKey(tt.key); got != tt.expected {
				t.Errorf("ProjectFromKey(%q) = %q, want %q", tt.key, got, tt.expected)
			}
		})
	}
}

func TestOperationConstants(t *testing.T) {
	operations := map[string]string{
		OperationSearch:     "search",
		OperationGetIssue:   "getIssue",
		OperationChangelog:  "changelog",
		OperationComment:    "addComment",
		OperationLabel:      "addLabel",
		OperationTransition: "transition",
		OperationFields:     "fields",
	}

	for constant, expected := range operations {
		if constant != expected {
			t.Errorf("Operation constant = %q, want %q", constant, expected)
		}
	}
}
