package phase

import (
	"testing"
)

func TestMetadataPhase(t *testing.T) {
	tests := []struct {
		name     string
		identity map[string]any
		want     []string
	}{
		{
			name: "valid",
			identity: map[string]any{"metadata": map[string]any{
				"created": "2025-01-10T12:00:00Z",
				"updated": "2025-01-10T12:00:00Z",
			}},
			want: nil,
		},
		{
			name:     "missing metadata",
			identity: map[string]any{},
			want:     []string{"Missing required field: metadata"},
		},
		{
			name:     "non-object metadata",
			identity: map[string]any{"metadata": "yesterday"},
			want:     []string{`Field "metadata" must be an object`},
		},
		{
			name:     "missing both timestamps",
			identity: map[string]any{"metadata": map[string]any{}},
			want: []string{
				"Missing required field: metadata.created",
				"Missing required field: metadata.updated",
			},
		},
		{
			name: "bad created, missing updated",
			identity: map[string]any{"metadata": map[string]any{
				"created": "not-a-date",
			}},
			want: []string{
				`Field "metadata.created" must be a valid ISO 8601 date-time`,
				"Missing required field: metadata.updated",
			},
		},
		{
			name: "non-string timestamp",
			identity: map[string]any{"metadata": map[string]any{
				"created": float64(1736510400),
				"updated": "2025-01-10T12:00:00Z",
			}},
			want: []string{`Field "metadata.created" must be a valid ISO 8601 date-time`},
		},
	}

	p := NewMetadataPhase()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, issues := runPhase(t, p, tt.identity)
			if len(issues) != len(tt.want) {
				t.Fatalf("Validate() returned %d issues; want %d: %v", len(issues), len(tt.want), issues)
			}
			for i, msg := range tt.want {
				if issues[i].Diagnostics != msg {
					t.Errorf("issue[%d] = %q; want %q", i, issues[i].Diagnostics, msg)
				}
			}
		})
	}
}

func TestIsValidDateTime(t *testing.T) {
	tests := []struct {
		name  string
		value any
		want  bool
	}{
		{"rfc3339 utc", "2025-01-10T12:00:00Z", true},
		{"rfc3339 offset", "2025-01-10T12:00:00+02:00", true},
		{"fractional seconds", "2025-01-10T12:00:00.123456Z", true},
		{"zone-less", "2025-01-10T12:00:00", true},
		{"zone-less fractional", "2025-01-10T12:00:00.5", true},
		{"date only", "2025-01-10", false},
		{"space separator", "2025-01-10 12:00:00", false},
		{"garbage", "next tuesday", false},
		{"empty", "", false},
		{"month out of range", "2025-13-10T12:00:00Z", false},
		{"not a string", float64(1736510400), false},
		{"nil", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsValidDateTime(tt.value); got != tt.want {
				t.Errorf("IsValidDateTime(%v) = %v; want %v", tt.value, got, tt.want)
			}
		})
	}
}
