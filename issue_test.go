package pipingester

import "testing"

func TestIssueIsError(t *testing.T) {
	if !ErrorIssue(CodeValue, "bad", "x").IsError() {
		t.Error("error issue should report IsError")
	}
	if WarningIssue(CodeProcessing, "hm", "").IsError() {
		t.Error("warning issue should not report IsError")
	}
}

func TestIssueString(t *testing.T) {
	tests := []struct {
		name  string
		issue Issue
		want  string
	}{
		{
			name:  "with path",
			issue: ErrorIssue(CodeValue, "Invalid ui.theme value", "preferences.ui.theme"),
			want:  "error: Invalid ui.theme value at preferences.ui.theme",
		},
		{
			name:  "without path",
			issue: ErrorIssue(CodeStructure, "Identity must be an object", ""),
			want:  "error: Identity must be an object",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.issue.String(); got != tt.want {
				t.Errorf("String() = %q; want %q", got, tt.want)
			}
		})
	}
}
