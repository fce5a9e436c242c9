package common

import "testing"

func TestGetIssueKeyFromArgs(t *testing.T) {
	tests := []struct {
		name string
		args map[string]interface{}
		want string
	}{
		{
			name: "present",
			args: map[string]interface{}{"issueKey": "PROJ-123"},
			want: "PROJ-123",
		},
		{
			name: "missing",
			args: map[string]interface{}{"jql": "project = PROJ"},
			want: "",
		},
		{
			name: "wrong type",
			args: map[string]interface{}{"issueKey": 42},
			want: "",
		},
		{
			name: "nil args",
			args: nil,
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GetIssueKeyFromArgs(tt.args); got != tt.want {
				t.Errorf("GetIssueKeyFromArgs() = %q, want %q", got, tt.want)
			}
		})
	}
}
